package extract

import (
	"github.com/nguyenthenguyen/docx"

	"github.com/pii-radar/piiradar/internal/models"
)

// DOCXExtractor extracts text from Word documents via
// github.com/nguyenthenguyen/docx.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Name() string                  { return "docx" }
func (e *DOCXExtractor) SupportedExtensions() []string { return []string{".docx"} }

func (e *DOCXExtractor) Extract(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &models.ExtractionFailedError{SourceID: path, Kind: models.ExtractionCorruptedFile, Reason: err.Error()}
	}
	defer r.Close()

	return r.Editable().GetContent(), nil
}
