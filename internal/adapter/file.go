// Package adapter implements the source adapters (C12): file,
// Postgres/SQLite/MongoDB, HTTP, and a bonus S3 object-storage
// adapter. Each is a thin (source_id, text_provider, location_factory)
// producer per spec §2/§4.12 — detector dispatch, overlap resolution,
// and context analysis all stay in internal/engine.
package adapter

import (
	"os"
	"strings"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/extract"
	"github.com/pii-radar/piiradar/internal/models"
	"github.com/pii-radar/piiradar/internal/walker"
)

// FileConfig configures the file adapter.
type FileConfig struct {
	Root       string
	Walk       walker.Options
	Extractors *extract.Registry // nil disables document extraction
	FullPaths  bool              // report absolute paths instead of root-relative ones
}

// FileAdapter walks a directory tree and yields each surviving file's
// contents, extracting documents via Extractors when the walker
// deferred a known document extension to it.
type FileAdapter struct {
	cfg     FileConfig
	skipped []walker.SkipReason
}

// NewFileAdapter returns a FileAdapter over cfg.Root.
func NewFileAdapter(cfg FileConfig) *FileAdapter {
	return &FileAdapter{cfg: cfg}
}

// Skipped returns the reasons the walker excluded candidate paths from
// the most recent Iter call (oversized, binary, ignored, ...).
func (a *FileAdapter) Skipped() []walker.SkipReason { return a.skipped }

func (a *FileAdapter) Iter(yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	items, skipped, err := walker.Walk(a.cfg.Root, a.cfg.Walk)
	if err != nil {
		return err
	}
	a.skipped = skipped

	for _, item := range items {
		item := item
		sourceID := item.RelPath
		if a.cfg.FullPaths {
			sourceID = item.Path
		}

		var cached string
		var cacheErr error
		var read bool
		provider := func() (string, error) {
			if !read {
				read = true
				cached, cacheErr = a.readFile(item)
			}
			return cached, cacheErr
		}

		locate := func(offset int) models.Location {
			line, col := lineColumn(cached, offset)
			return models.Location{Kind: models.LocationFile, Path: sourceID, Line: line, Column: col, ByteOffset: offset}
		}

		if err := yield(sourceID, provider, locate); err != nil {
			return err
		}
	}
	return nil
}

func (a *FileAdapter) readFile(item walker.Item) (string, error) {
	ext := strings.ToLower(pathExt(item.RelPath))
	if a.cfg.Extractors != nil && a.cfg.Extractors.Supports(ext) {
		return a.cfg.Extractors.Extract(item.Path)
	}
	b, err := os.ReadFile(item.Path)
	if err != nil {
		return "", &models.InputUnreadableError{SourceID: item.RelPath, Err: err}
	}
	return string(b), nil
}

func pathExt(p string) string {
	i := strings.LastIndexByte(p, '.')
	if i < 0 {
		return ""
	}
	return p[i:]
}

// lineColumn converts a byte offset into 1-based line/column numbers.
func lineColumn(text string, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(text) {
		offset = len(text)
	}
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
