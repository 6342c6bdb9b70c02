package cmd

import (
	"log"

	"github.com/schollz/progressbar/v3"

	"tracktable/services"
	"tracktable/tags"
)

// RunExport performs one full pass: collect records under root, then write
// the table document to outputFile.
func RunExport(root, outputFile string) error {
	collector := services.NewCollector(tags.NewReader())

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning for audio files"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
	)
	result, err := collector.Scan(root, func(string) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}
	log.Printf("Found %d audio files (%d skipped)", len(result.Records), result.Skipped)

	if err := services.NewRenderer(outputFile).Render(result.Records); err != nil {
		return err
	}
	log.Printf("Metadata table written to %s", outputFile)
	return nil
}
