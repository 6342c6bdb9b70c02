package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"

	"tracktable/config"
	"tracktable/types"
)

// Renderer turns collected records into one self-contained HTML document.
// Covers are inlined as data URIs so the page needs nothing else to view.
type Renderer struct {
	outputFile string
	coverBound int
}

// NewRenderer creates a renderer that writes to outputFile, overwriting it.
func NewRenderer(outputFile string) *Renderer {
	return &Renderer{
		outputFile: outputFile,
		coverBound: config.GetCoverBound(),
	}
}

// tableRow is a record flattened for the embedded JSON payload: textual
// cells in column order plus an optional cover data URI.
type tableRow struct {
	Cells []string `json:"cells"`
	Cover string   `json:"cover,omitempty"`
}

type tablePayload struct {
	Columns []string   `json:"columns"`
	Rows    []tableRow `json:"rows"`
}

// viewRow feeds the server-rendered fallback table. The cover is typed so
// the template engine accepts the data: scheme.
type viewRow struct {
	Cells []string
	Cover template.URL
}

type pageData struct {
	Columns []string
	Rows    []viewRow
	Payload template.JS
	Script  template.JS
}

var pageTmpl = template.Must(template.
	New("page").
	Funcs(template.FuncMap(sprig.FuncMap())).
	Funcs(template.FuncMap{
		"formatLength": formatLength,
		"sizeHuman":    func(n int64) string { return humanize.Bytes(uint64(n)) },
	}).
	Parse(pageHTML))

// Render writes the document for records, in order. A zero-record slice
// still produces a complete page with an empty table.
func (r *Renderer) Render(records []types.AudioRecord) error {
	columns := columnLabels()

	rows := make([]tableRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, tableRow{
			Cells: r.cellValues(rec),
			Cover: r.coverDataURI(rec.Cover),
		})
	}

	payload, err := json.Marshal(tablePayload{Columns: columns, Rows: rows})
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	data := pageData{
		Columns: columns,
		Payload: template.JS(payload),
		Script:  template.JS(tableScript),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, viewRow{
			Cells: row.Cells,
			Cover: template.URL(row.Cover),
		})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	if err := os.WriteFile(r.outputFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", types.ErrWrite, err)
	}
	return nil
}

// columnLabels is the textual column set, matching cellValues order.
func columnLabels() []string {
	columns := make([]string, 0, len(types.Fields)+3)
	for _, field := range types.Fields {
		columns = append(columns, field.Label())
	}
	return append(columns, "Length", "Size", "Path")
}

func (r *Renderer) cellValues(rec types.AudioRecord) []string {
	cells := make([]string, 0, len(types.Fields)+3)
	for _, field := range types.Fields {
		cells = append(cells, rec.Fields[field])
	}
	return append(cells,
		formatLength(rec.Length),
		humanize.Bytes(uint64(rec.Size)),
		rec.FilePath,
	)
}

// coverDataURI loads, bounds, and inlines a record's cover. Anything
// unreadable or undecodable degrades to no cover; a bad image never fails
// the run.
func (r *Renderer) coverDataURI(cover types.CoverArt) string {
	var raw []byte
	switch cover.Source {
	case types.CoverEmbedded:
		raw = cover.Data
	case types.CoverSibling:
		b, err := os.ReadFile(cover.Path)
		if err != nil {
			return ""
		}
		raw = b
	default:
		return ""
	}

	encoded, mime, err := shrinkCover(raw, cover.MIME, r.coverBound)
	if err != nil {
		return ""
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(encoded)
}

// shrinkCover re-encodes cover bytes, downscaled to bound pixels wide when
// larger. Never upscales.
func shrinkCover(raw []byte, mime string, bound int) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decoding cover: %w", err)
	}
	if img.Bounds().Dx() > bound {
		img = imaging.Resize(img, bound, 0, imaging.Lanczos)
	}

	format, outMIME := imaging.JPEG, "image/jpeg"
	if mime == "image/png" {
		format, outMIME = imaging.PNG, "image/png"
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", fmt.Errorf("encoding cover: %w", err)
	}
	return buf.Bytes(), outMIME, nil
}

// formatLength renders a duration as h:mm:ss, or m:ss under an hour.
func formatLength(d time.Duration) string {
	if d <= 0 {
		return types.Unknown
	}
	total := int(d.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
