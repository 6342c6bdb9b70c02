// Package tags isolates the audio tagging library behind a narrow interface
// so the rest of the pipeline can be exercised with fake inputs.
package tags

import (
	"time"

	"tracktable/types"
)

// Reader parses audio files into metadata. Implementations decide which
// paths they can handle; Read on an unparseable file returns an error and
// the caller skips the file.
type Reader interface {
	CanRead(path string) bool
	Read(path string) (*Meta, error)
}

// Picture is artwork embedded in an audio file's tag container.
type Picture struct {
	MIME string
	Data []byte
}

// Meta is the raw extraction result for one file. Fields may be missing or
// multi-valued; defaulting and joining happen downstream.
type Meta struct {
	Fields  map[types.Field][]string
	Picture *Picture
	Length  time.Duration
}
