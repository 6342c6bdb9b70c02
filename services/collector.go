package services

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tracktable/config"
	"tracktable/tags"
	"tracktable/types"
)

// Collector walks a folder tree and produces one AudioRecord per parseable
// audio file. It only reads the filesystem.
type Collector struct {
	reader tags.Reader
}

// NewCollector creates a collector on top of a tag reader.
func NewCollector(reader tags.Reader) *Collector {
	return &Collector{reader: reader}
}

// ScanResult holds the outcome of one collection pass.
type ScanResult struct {
	Records []types.AudioRecord
	Skipped int
}

// Scan collects records under root in walk order, which filepath.WalkDir
// keeps lexicographic, so re-running over an unchanged tree yields identical
// results. visit, when non-nil, is called once per collected file so the
// caller can show progress. Files the tag reader rejects are skipped and
// counted, never fatal.
func (c *Collector) Scan(root string, visit func(path string)) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidPath, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrInvalidPath, root)
	}

	result := &ScanResult{}
	coverCache := map[string]string{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: cannot access %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !c.reader.CanRead(path) {
			return nil
		}

		meta, err := c.reader.Read(path)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			result.Skipped++
			return nil
		}

		record := c.buildRecord(path, d, meta, coverCache)
		result.Records = append(result.Records, record)
		if visit != nil {
			visit(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return result, nil
}

func (c *Collector) buildRecord(path string, d fs.DirEntry, meta *tags.Meta, coverCache map[string]string) types.AudioRecord {
	fields := make(map[types.Field]string, len(types.Fields))
	for _, field := range types.Fields {
		fields[field] = joinValues(meta.Fields[field])
	}

	// Fallback chain before the sentinel: the track name comes from the
	// file name, and the album artist from the artist.
	if fields[types.FieldTitle] == "" {
		name := d.Name()
		fields[types.FieldTitle] = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if fields[types.FieldAlbumArtist] == "" {
		fields[types.FieldAlbumArtist] = fields[types.FieldArtist]
	}
	for _, field := range types.Fields {
		if fields[field] == "" {
			fields[field] = types.Unknown
		}
	}

	record := types.AudioRecord{
		FilePath: path,
		Length:   meta.Length,
		Fields:   fields,
		Cover:    c.resolveCover(path, meta, coverCache),
	}
	if info, err := d.Info(); err == nil {
		record.Size = info.Size()
	}
	return record
}

// resolveCover prefers embedded artwork; a file that has it never falls back
// to a sibling image, even when one exists.
func (c *Collector) resolveCover(path string, meta *tags.Meta, coverCache map[string]string) types.CoverArt {
	if meta.Picture != nil {
		return types.CoverArt{
			Source: types.CoverEmbedded,
			MIME:   meta.Picture.MIME,
			Data:   meta.Picture.Data,
		}
	}
	dir := filepath.Dir(path)
	sibling, ok := coverCache[dir]
	if !ok {
		sibling = findSiblingCover(dir)
		coverCache[dir] = sibling
	}
	if sibling == "" {
		return types.CoverArt{Source: types.CoverNone}
	}
	return types.CoverArt{
		Source: types.CoverSibling,
		MIME:   coverMIME(sibling),
		Path:   sibling,
	}
}

// findSiblingCover scans one directory (non-recursive) for a cover image,
// honoring the fixed candidate priority. Names are matched case-insensitively
// and ties within one candidate slot go to the lexicographically smallest
// directory entry.
func findSiblingCover(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, candidate := range config.CoverCandidates() {
		best := ""
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(entry.Name(), candidate) {
				continue
			}
			if best == "" || entry.Name() < best {
				best = entry.Name()
			}
		}
		if best != "" {
			return filepath.Join(dir, best)
		}
	}
	return ""
}

func coverMIME(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

// joinValues collapses a multi-valued tag to one display string.
func joinValues(values []string) string {
	return strings.Join(values, "; ")
}
