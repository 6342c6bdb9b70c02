package tags

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flac "github.com/go-flac/go-flac"
	"github.com/tcolgate/mp3"
)

// probeLength returns a file's playing time, or zero when the format carries
// none we can decode. Failures are not errors; the record just shows no
// length.
func probeLength(path string) time.Duration {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		if d, err := mp3Length(path); err == nil {
			return d
		}
	case ".flac":
		if d, err := flacLength(path); err == nil {
			return d
		}
	}
	return 0
}

// mp3Length sums frame durations across the stream. MP3 has no header field
// for total length, so this is the honest way.
func mp3Length(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total time.Duration

	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		total += frame.Duration()
	}
	return total, nil
}

// flacLength computes length from the STREAMINFO block.
func flacLength(path string) (time.Duration, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return 0, err
	}
	info, err := f.GetStreamInfo()
	if err != nil {
		return 0, err
	}
	if info.SampleRate <= 0 || info.SampleCount <= 0 {
		return 0, nil
	}
	seconds := float64(info.SampleCount) / float64(info.SampleRate)
	return time.Duration(seconds * float64(time.Second)), nil
}
