package types

import (
	"errors"
	"time"
)

// Errors reported to the user. Per-file problems are recovered locally and
// never surface here; these two abort the run.
var (
	ErrInvalidPath = errors.New("invalid folder path")
	ErrWrite       = errors.New("cannot write output file")
)

// Unknown is substituted for any metadata field with no usable value.
const Unknown = "Unknown"

// Field identifies one of the fixed metadata columns extracted per file.
type Field string

const (
	FieldAlbumArtist Field = "albumArtist"
	FieldArtist      Field = "artist"
	FieldTitle       Field = "title"
	FieldAlbum       Field = "album"
	FieldYear        Field = "year"
	FieldGenre       Field = "genre"
	FieldTrack       Field = "track"
)

// Fields is the column order used wherever records are displayed or exported.
var Fields = []Field{
	FieldAlbumArtist,
	FieldArtist,
	FieldTitle,
	FieldAlbum,
	FieldYear,
	FieldGenre,
	FieldTrack,
}

// Label returns the human readable column header for a field.
func (f Field) Label() string {
	switch f {
	case FieldAlbumArtist:
		return "Album Artist"
	case FieldArtist:
		return "Artist"
	case FieldTitle:
		return "Track Name"
	case FieldAlbum:
		return "Album Name"
	case FieldYear:
		return "Year"
	case FieldGenre:
		return "Genre"
	case FieldTrack:
		return "Track #"
	}
	return string(f)
}

// CoverSource says where a record's cover art came from.
type CoverSource string

const (
	CoverNone     CoverSource = "none"
	CoverEmbedded CoverSource = "embedded"
	CoverSibling  CoverSource = "sibling"
)

// CoverArt is a record's resolved album art. Embedded art carries the image
// bytes; sibling art carries the path of the image file next to the track.
type CoverArt struct {
	Source CoverSource `json:"source"`
	MIME   string      `json:"mime,omitempty"`
	Data   []byte      `json:"-"`
	Path   string      `json:"path,omitempty"`
}

// AudioRecord represents one discovered audio file (FLAC, MP3, etc.)
type AudioRecord struct {
	FilePath string           `json:"filePath"`
	Size     int64            `json:"size"`
	Length   time.Duration    `json:"length"`
	Fields   map[Field]string `json:"fields"`
	Cover    CoverArt         `json:"cover"`
}
