package decode

import (
	"fmt"
	"io"
	"strconv"
	"time"

	mp4 "github.com/abema/go-mp4"
	"github.com/pkg/errors"

	"github.com/backmassage/renamer/internal/metadata"
)

// mp4Epoch is the origin of ISO-BMFF timestamps.
var mp4Epoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

const boxTimeLayout = "2006-01-02 15:04:05"

// mp4Source reads the movie header (mvhd), every track header (tkhd) and
// every media header (mdhd) of an ISO-BMFF file.
func mp4Source(r io.ReadSeeker, _ int64, _ string) (metadata.Directories, error) {
	var out metadata.Directories

	mvhds, err := extract(r, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return nil, err
	}
	for _, b := range mvhds {
		mvhd, ok := b.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		var created, modified, duration uint64
		if mvhd.GetVersion() == 1 {
			created, modified, duration = mvhd.CreationTimeV1, mvhd.ModificationTimeV1, mvhd.DurationV1
		} else {
			created, modified, duration = uint64(mvhd.CreationTimeV0), uint64(mvhd.ModificationTimeV0), uint64(mvhd.DurationV0)
		}
		d := metadata.NewDirectory(metadata.DirQuickTime)
		d.Set(metadata.TagCreationTime, boxTime(created))
		d.Set(metadata.TagModificationTime, boxTime(modified))
		if mvhd.Timescale > 0 {
			d.Set(metadata.TagDuration, fmt.Sprintf("%.3f", float64(duration)/float64(mvhd.Timescale)))
		}
		out = append(out, d)
	}

	tkhds, err := extract(r, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeTrak(), mp4.BoxTypeTkhd()})
	if err != nil {
		return nil, err
	}
	for _, b := range tkhds {
		tkhd, ok := b.Payload.(*mp4.Tkhd)
		if !ok {
			continue
		}
		// Width and height are 16.16 fixed point; audio tracks report 0.
		w, h := tkhd.Width>>16, tkhd.Height>>16
		if w == 0 || h == 0 {
			continue
		}
		d := metadata.NewDirectory(metadata.DirMP4Video)
		d.Set(metadata.TagWidth, strconv.FormatUint(uint64(w), 10))
		d.Set(metadata.TagHeight, strconv.FormatUint(uint64(h), 10))
		out = append(out, d)
	}

	mdhds, err := extract(r, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeTrak(), mp4.BoxTypeMdia(), mp4.BoxTypeMdhd()})
	if err != nil {
		return nil, err
	}
	for _, b := range mdhds {
		mdhd, ok := b.Payload.(*mp4.Mdhd)
		if !ok {
			continue
		}
		created := uint64(mdhd.CreationTimeV0)
		if mdhd.GetVersion() == 1 {
			created = mdhd.CreationTimeV1
		}
		d := metadata.NewDirectory(metadata.DirMP4Media)
		d.Set(metadata.TagCreationTime, boxTime(created))
		out = append(out, d)
	}

	return out, nil
}

func extract(r io.ReadSeeker, path mp4.BoxPath) ([]*mp4.BoxInfoWithPayload, error) {
	if err := rewind(r); err != nil {
		return nil, err
	}
	boxes, err := mp4.ExtractBoxWithPayload(r, nil, path)
	if err != nil {
		return nil, errors.Wrap(err, "read mp4 boxes")
	}
	return boxes, nil
}

// boxTime renders seconds since mp4Epoch; 0 means unset and yields "".
func boxTime(secs uint64) string {
	if secs == 0 {
		return ""
	}
	return time.Unix(mp4Epoch.Unix()+int64(secs), 0).UTC().Format(boxTimeLayout)
}
