// Package extract implements the Document Extractor Registry (C9):
// pluggable text extractors keyed by lowercased file extension.
// Grounded on pocketninja-co-guardian's extractor.go dispatch shape,
// narrowed to the PDF/DOCX/XLSX formats spec §4.8 names.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pii-radar/piiradar/internal/models"
)

// Extractor pulls text out of one document format.
type Extractor interface {
	Name() string
	SupportedExtensions() []string
	Extract(path string) (string, error)
}

// Registry dispatches by lowercased extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry builds a Registry from extractors, indexing each by every
// extension it reports supporting.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// DefaultRegistry returns a Registry wired with the PDF, DOCX, and XLSX
// extractors.
func DefaultRegistry() *Registry {
	return NewRegistry(&PDFExtractor{}, &DOCXExtractor{}, &XLSXExtractor{})
}

// Supports reports whether ext (with or without a leading dot) has a
// registered extractor.
func (r *Registry) Supports(ext string) bool {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	_, ok := r.byExt[ext]
	return ok
}

// Extract dispatches path to the extractor registered for its
// extension. An unregistered extension yields an
// *models.ExtractionFailedError with Kind ExtractionUnsupportedFormat.
func (r *Registry) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return "", &models.ExtractionFailedError{
			SourceID: path,
			Kind:     models.ExtractionUnsupportedFormat,
			Reason:   fmt.Sprintf("no extractor registered for %q", ext),
		}
	}
	return e.Extract(path)
}
