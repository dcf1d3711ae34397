package decode

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/probe"
)

// ffprobeSource turns one ffprobe call into a container directory plus
// one directory per video stream. It works on the path, not the handle.
func ffprobeSource(p *probe.Prober) sourceFunc {
	return func(_ io.ReadSeeker, _ int64, path string) (metadata.Directories, error) {
		pr, err := p.Probe(context.Background(), path)
		if err != nil {
			return nil, err
		}
		return probeDirectories(pr), nil
	}
}

func probeDirectories(pr *probe.ProbeResult) metadata.Directories {
	container := metadata.NewDirectory(metadata.DirFFprobe)
	container.Set(metadata.TagCreationTime, pr.Format.CreationTime())
	if pr.Format.Duration > 0 {
		container.Set(metadata.TagDuration, fmt.Sprintf("%.3f", pr.Format.Duration))
	}
	out := metadata.Directories{container}

	for _, vs := range pr.VideoStreams {
		d := metadata.NewDirectory(metadata.DirFFprobe)
		if vs.Width > 0 {
			d.Set(metadata.TagWidth, strconv.Itoa(vs.Width))
		}
		if vs.Height > 0 {
			d.Set(metadata.TagHeight, strconv.Itoa(vs.Height))
		}
		d.Set(metadata.TagCreationTime, vs.CreationTime)
		d.Set(metadata.TagCodec, vs.Codec)
		out = append(out, d)
	}
	return out
}
