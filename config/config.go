package config

import (
	"os"
	"strconv"
)

const (
	// DefaultOutputFile is written to the current working directory.
	DefaultOutputFile = "output.html"

	// DefaultCoverBound is the widest a cover thumbnail gets before it is
	// downscaled for inlining. Images are never upscaled.
	DefaultCoverBound = 128
)

// GetOutputFile returns the output file name, with an environment override
// for scripted use.
func GetOutputFile() string {
	if custom := os.Getenv("TRACKTABLE_OUTPUT"); custom != "" {
		return custom
	}
	return DefaultOutputFile
}

// GetCoverBound returns the thumbnail width bound in pixels.
func GetCoverBound() int {
	if custom := os.Getenv("TRACKTABLE_COVER_SIZE"); custom != "" {
		if n, err := strconv.Atoi(custom); err == nil && n > 0 {
			return n
		}
	}
	return DefaultCoverBound
}

// CoverCandidates lists sibling cover file names in resolution priority
// order. Matching is case-insensitive; the first name with a match wins.
func CoverCandidates() []string {
	return []string{"cover.jpg", "folder.jpg", "cover.png", "folder.png"}
}
