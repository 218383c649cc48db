package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pii-radar/piiradar/internal/models"
)

// PDFExtractor extracts plain text from PDF documents via
// github.com/ledongthuc/pdf.
type PDFExtractor struct{}

func (e *PDFExtractor) Name() string                  { return "pdf" }
func (e *PDFExtractor) SupportedExtensions() []string { return []string{".pdf"} }

func (e *PDFExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			return "", &models.ExtractionFailedError{SourceID: path, Kind: models.ExtractionEncrypted, Reason: err.Error()}
		}
		return "", &models.ExtractionFailedError{SourceID: path, Kind: models.ExtractionCorruptedFile, Reason: err.Error()}
	}
	defer f.Close()

	b, err := r.GetPlainText()
	if err != nil {
		return "", &models.ExtractionFailedError{SourceID: path, Kind: models.ExtractionCorruptedFile, Reason: err.Error()}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return "", &models.ExtractionFailedError{SourceID: path, Kind: models.ExtractionIO, Reason: err.Error()}
	}
	return buf.String(), nil
}
