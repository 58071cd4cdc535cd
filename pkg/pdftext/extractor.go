package pdftext

// Pure-Go text-layer extraction via github.com/ledongthuc/pdf. Only the
// embedded text layer is read; scanned (image-only) PDFs are not handled.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

// cellGapFactor times the font size is the horizontal gap that separates
// two table cells on the same row.
const cellGapFactor = 1.5

// Extractor reads the text layer of PDF documents, rendering detected
// table rows as pipe-joined cells ahead of the running text of each page.
type Extractor struct{}

// NewExtractor builds a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile extracts text from the PDF at the given path.
func (e *Extractor) ExtractFile(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return e.extract(r)
}

// ExtractBytes extracts text from an in-memory PDF, typically an upload.
func (e *Extractor) ExtractBytes(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	return e.extract(r)
}

func (e *Extractor) extract(r *pdf.Reader) (string, error) {
	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var pages []string

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		pageText := e.pageByRows(p)
		if pageText == "" {
			// Row grouping failed, fall back to the raw text stream.
			for _, name := range p.Fonts() {
				if _, ok := fonts[name]; !ok {
					f2 := p.Font(name)
					fonts[name] = &f2
				}
			}
			plain, err := p.GetPlainText(fonts)
			if err != nil {
				continue
			}
			pageText = strings.TrimSpace(plain)
		}

		if pageText != "" {
			pages = append(pages, pageText)
		}
	}

	result := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if result == "" {
		return "", appErrors.ErrEmptyExtraction
	}

	return result, nil
}

// pageByRows renders a page line by line. Rows whose words cluster into
// two or more cells are joined with " | " so downstream prompts see the
// table structure the way a human reader would.
func (e *Extractor) pageByRows(p pdf.Page) string {
	rows, err := p.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return ""
	}

	var lines []string
	for _, row := range rows {
		cells := clusterCells(row.Content)
		if len(cells) == 0 {
			continue
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// clusterCells splits the words of one visual row into cells wherever the
// horizontal gap between consecutive words exceeds the cell threshold.
func clusterCells(words []pdf.Text) []string {
	if len(words) == 0 {
		return nil
	}

	var cells []string
	var current strings.Builder
	prevEnd := words[0].X

	for i, w := range words {
		if i > 0 {
			gap := w.X - prevEnd
			threshold := w.FontSize * cellGapFactor
			if threshold <= 0 {
				threshold = 10
			}
			if gap > threshold {
				if cell := normalizeCell(current.String()); cell != "" {
					cells = append(cells, cell)
				}
				current.Reset()
			}
		}
		current.WriteString(w.S)
		prevEnd = w.X + w.W
	}
	if cell := normalizeCell(current.String()); cell != "" {
		cells = append(cells, cell)
	}

	return cells
}

func normalizeCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
