package probe

import "strconv"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64
	Tags       map[string]string
}

// CreationTime returns the container creation_time tag, or "".
func (f FormatInfo) CreationTime() string {
	return f.Tags["creation_time"]
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index        int
	Codec        string
	Width        int
	Height       int
	CreationTime string
}

// ProbeResult is the parsed output of one ffprobe call. VideoStreams
// excludes attached pictures such as cover art; PrimaryVideo is the first
// of them (nil if none).
type ProbeResult struct {
	Format       FormatInfo
	VideoStreams []VideoStream
	PrimaryVideo *VideoStream
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Width <= 0 || p.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.PrimaryVideo.Width) + "x" + strconv.Itoa(p.PrimaryVideo.Height)
}

// CreationTimes returns every non-empty creation_time tag, container
// first, then streams in index order.
func (p *ProbeResult) CreationTimes() []string {
	var out []string
	if v := p.Format.CreationTime(); v != "" {
		out = append(out, v)
	}
	for _, vs := range p.VideoStreams {
		if vs.CreationTime != "" {
			out = append(out, vs.CreationTime)
		}
	}
	return out
}
