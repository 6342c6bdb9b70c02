package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"tracktable/types"
)

// reader reads tags with the dhowden/tag library (supports FLAC, MP3, MP4
// family, OGG, DSF).
type reader struct{}

// NewReader returns the production tag reader.
func NewReader() Reader {
	return &reader{}
}

func (r *reader) CanRead(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac", ".m4a", ".m4b", ".m4p", ".mp4", ".ogg", ".dsf":
		return true
	}
	return false
}

func (r *reader) Read(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("parse tags from %s: %w", path, err)
	}

	meta := &Meta{Fields: map[types.Field][]string{}}
	put := func(field types.Field, raw string) {
		if values := splitValues(raw); len(values) > 0 {
			meta.Fields[field] = values
		}
	}
	put(types.FieldTitle, m.Title())
	put(types.FieldArtist, m.Artist())
	put(types.FieldAlbumArtist, m.AlbumArtist())
	put(types.FieldAlbum, m.Album())
	put(types.FieldGenre, m.Genre())
	put(types.FieldYear, yearValue(m))
	if track, _ := m.Track(); track > 0 {
		meta.Fields[types.FieldTrack] = []string{strconv.Itoa(track)}
	}

	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 {
		mime := pic.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		meta.Picture = &Picture{MIME: mime, Data: pic.Data}
	}

	meta.Length = probeLength(path)
	return meta, nil
}

// yearValue prefers the parsed year and falls back to raw date frames,
// truncated at the first '-' so "2023-12-01" sorts numerically as "2023".
func yearValue(m tag.Metadata) string {
	if y := m.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	raw := m.Raw()
	for _, key := range []string{"date", "DATE", "TDRC", "TYER", "year", "YEAR"} {
		if s, ok := raw[key].(string); ok && s != "" {
			return truncYear(s)
		}
	}
	return ""
}

func truncYear(date string) string {
	if i := strings.IndexByte(date, '-'); i > 0 {
		return date[:i]
	}
	return date
}

// splitValues breaks a multi-valued tag into its parts. ID3v2.4 packs
// multiple values NUL-separated; Vorbis taggers conventionally use ';'.
func splitValues(raw string) []string {
	var values []string
	for _, v := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == 0 || r == ';'
	}) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
