// Package probe inspects video containers with a single ffprobe JSON call
// and returns the stream dimensions and creation tags it reports.
//
// Types:
//   - FormatInfo, VideoStream, ProbeResult
//   - Prober (Available, Probe)
//
// Functions:
//   - ParseJSON(data) → *ProbeResult, for testing without a real binary
package probe
