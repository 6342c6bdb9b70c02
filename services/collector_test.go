package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracktable/tags"
	"tracktable/types"
)

// fakeReader serves canned metadata keyed by file base name, so collector
// logic runs without real tag parsing. Files with no entry read as
// unparseable.
type fakeReader struct {
	metas map[string]*tags.Meta
}

func (f *fakeReader) CanRead(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac":
		return true
	}
	return false
}

func (f *fakeReader) Read(path string) (*tags.Meta, error) {
	meta, ok := f.metas[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("cannot parse %s", path)
	}
	return meta, nil
}

func fakeMeta(fields map[types.Field][]string) *tags.Meta {
	return &tags.Meta{Fields: fields}
}

func writeTestFile(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("audio bytes"), 0o644))
	return path
}

func TestScanInvalidPath(t *testing.T) {
	collector := NewCollector(&fakeReader{})

	_, err := collector.Scan(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidPath))

	file := writeTestFile(t, t.TempDir(), "track.mp3")
	_, err = collector.Scan(file, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidPath))
}

func TestScanFieldDefaulting(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "track.mp3")

	collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
		"track.mp3": fakeMeta(map[types.Field][]string{
			types.FieldArtist: {"Some Artist"},
		}),
	}})

	result, err := collector.Scan(root, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.Equal(t, "Some Artist", record.Fields[types.FieldArtist])
	// album artist falls back to artist, title to the file name
	assert.Equal(t, "Some Artist", record.Fields[types.FieldAlbumArtist])
	assert.Equal(t, "track", record.Fields[types.FieldTitle])
	// everything else gets the sentinel, never empty
	for _, field := range []types.Field{types.FieldAlbum, types.FieldYear, types.FieldGenre, types.FieldTrack} {
		assert.Equal(t, types.Unknown, record.Fields[field], "field %s", field)
	}
}

func TestScanMultiValueJoin(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "track.flac")

	collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
		"track.flac": fakeMeta(map[types.Field][]string{
			types.FieldGenre: {"Rock", "Pop", "Electronic"},
		}),
	}})

	result, err := collector.Scan(root, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Rock; Pop; Electronic", result.Records[0].Fields[types.FieldGenre])
}

func TestScanEmbeddedCoverWinsOverSibling(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "track.mp3")
	writeTestFile(t, root, "cover.jpg")

	collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
		"track.mp3": {
			Fields:  map[types.Field][]string{},
			Picture: &tags.Picture{MIME: "image/png", Data: []byte("png bytes")},
		},
	}})

	result, err := collector.Scan(root, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	cover := result.Records[0].Cover
	assert.Equal(t, types.CoverEmbedded, cover.Source)
	assert.Equal(t, "image/png", cover.MIME)
	assert.Equal(t, []byte("png bytes"), cover.Data)
	assert.Empty(t, cover.Path)
}

func TestScanSiblingCoverCaseInsensitive(t *testing.T) {
	tests := []struct {
		name     string
		siblings []string
		want     string
	}{
		{"upper case name and extension", []string{"Cover.JPG"}, "Cover.JPG"},
		{"folder png only", []string{"FOLDER.png"}, "FOLDER.png"},
		{"cover jpg beats folder jpg", []string{"folder.jpg", "cover.jpg"}, "cover.jpg"},
		{"folder jpg beats cover png", []string{"cover.png", "Folder.Jpg"}, "Folder.Jpg"},
		{"no candidate names", []string{"front.jpg", "art.png"}, ""},
		{"gif never matches", []string{"cover.gif"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTestFile(t, root, "track.mp3")
			for _, sibling := range tt.siblings {
				writeTestFile(t, root, sibling)
			}

			collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
				"track.mp3": fakeMeta(map[types.Field][]string{}),
			}})

			result, err := collector.Scan(root, nil)
			require.NoError(t, err)
			require.Len(t, result.Records, 1)

			cover := result.Records[0].Cover
			if tt.want == "" {
				assert.Equal(t, types.CoverNone, cover.Source)
				assert.Empty(t, cover.Path)
				return
			}
			assert.Equal(t, types.CoverSibling, cover.Source)
			assert.Equal(t, filepath.Join(root, tt.want), cover.Path)
		})
	}
}

func TestScanSkipsUnparseable(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "good.mp3")
	writeTestFile(t, root, "corrupt.mp3")
	writeTestFile(t, root, "notes.txt")

	collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
		"good.mp3": fakeMeta(map[types.Field][]string{}),
	}})

	result, err := collector.Scan(root, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, filepath.Join(root, "good.mp3"), result.Records[0].FilePath)
	assert.Equal(t, 1, result.Skipped)
}

func TestScanDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	// created out of lexicographic order on purpose
	for _, rel := range []string{"b/track.mp3", "a/track.flac", "c.mp3", "a/z.mp3"} {
		writeTestFile(t, root, rel)
	}

	metas := map[string]*tags.Meta{
		"track.mp3":  fakeMeta(map[types.Field][]string{}),
		"track.flac": fakeMeta(map[types.Field][]string{}),
		"c.mp3":      fakeMeta(map[types.Field][]string{}),
		"z.mp3":      fakeMeta(map[types.Field][]string{}),
	}
	collector := NewCollector(&fakeReader{metas: metas})

	first, err := collector.Scan(root, nil)
	require.NoError(t, err)
	second, err := collector.Scan(root, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var paths []string
	for _, record := range first.Records {
		rel, err := filepath.Rel(root, record.FilePath)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a/track.flac", "a/z.mp3", "b/track.mp3", "c.mp3"}, paths)
}

func TestScanVisitCallback(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "one.mp3")
	writeTestFile(t, root, "two.mp3")

	collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
		"one.mp3": fakeMeta(map[types.Field][]string{}),
		"two.mp3": fakeMeta(map[types.Field][]string{}),
	}})

	var visited []string
	result, err := collector.Scan(root, func(path string) {
		visited = append(visited, filepath.Base(path))
	})
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, []string{"one.mp3", "two.mp3"}, visited)
}

// The two-track scenario: a fully tagged mp3 with embedded art next to a
// flac with no album, no art, and a sibling Cover.JPG.
func TestScanMixedFolder(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "album/track1.mp3")
	writeTestFile(t, root, "album/track2.flac")
	writeTestFile(t, root, "album/Cover.JPG")

	collector := NewCollector(&fakeReader{metas: map[string]*tags.Meta{
		"track1.mp3": {
			Fields: map[types.Field][]string{
				types.FieldTitle:       {"First Track"},
				types.FieldArtist:      {"The Artist"},
				types.FieldAlbumArtist: {"The Artist"},
				types.FieldAlbum:       {"The Album"},
				types.FieldYear:        {"1994"},
				types.FieldGenre:       {"Rock"},
				types.FieldTrack:       {"1"},
			},
			Picture: &tags.Picture{MIME: "image/jpeg", Data: []byte("embedded art")},
			Length:  3 * time.Minute,
		},
		"track2.flac": fakeMeta(map[types.Field][]string{
			types.FieldTitle:  {"Second Track"},
			types.FieldArtist: {"The Artist"},
		}),
	}})

	result, err := collector.Scan(root, nil)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	first, second := result.Records[0], result.Records[1]
	assert.Equal(t, "The Album", first.Fields[types.FieldAlbum])
	assert.Equal(t, "1994", first.Fields[types.FieldYear])
	assert.Equal(t, types.CoverEmbedded, first.Cover.Source)
	assert.Equal(t, []byte("embedded art"), first.Cover.Data)

	assert.Equal(t, types.Unknown, second.Fields[types.FieldAlbum])
	assert.Equal(t, types.CoverSibling, second.Cover.Source)
	assert.Equal(t, filepath.Join(root, "album", "Cover.JPG"), second.Cover.Path)
	assert.Equal(t, "image/jpeg", second.Cover.MIME)
}
