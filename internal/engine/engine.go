// Package engine implements the parallel scan engine (C10): a
// fork-join worker pool that dispatches every enabled detector over
// each source item, resolves overlapping candidate matches, runs the
// context analyzer over survivors, and accumulates a ScanResults.
// Grounded on nelssec-qualys-dspm's internal/scanner worker-pool shape
// (bucket/object channels + sync.WaitGroup), generalized from S3
// object scanning to adapter-agnostic source items.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pii-radar/piiradar/internal/contextan"
	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/models"
	"github.com/pii-radar/piiradar/internal/registry"
)

// TextProvider returns an item's text, or an error if it could not be
// read or extracted. The engine invokes it at most once per item.
type TextProvider func() (string, error)

// SourceAdapter enumerates work items. Iter must call yield once per
// item, in the adapter's natural enumeration order. A non-nil error
// from yield stops the iteration and Iter returns it; per-item read
// failures surface through the item's TextProvider instead. Any error
// Iter returns is fatal and the engine stops the scan.
type SourceAdapter interface {
	Iter(yield func(sourceID string, text TextProvider, locate detector.LocationFactory) error) error
}

// ProgressFunc is invoked once per completed item when progress
// reporting is enabled. It must be safe for concurrent invocation.
type ProgressFunc func(done, total int)

// Config tunes one Scan invocation.
type Config struct {
	// ThreadCount is the worker pool size. 0 selects runtime.NumCPU().
	ThreadCount int

	// Registry supplies the enabled detectors, in the order used for
	// overlap-resolution tie-breaking.
	Registry *registry.Registry

	// ContextAnalyzer annotates surviving matches with GDPR Article 9
	// categories and a masked context snippet. Nil disables it
	// (severity and snippet are left as the detector produced them).
	ContextAnalyzer *contextan.Analyzer

	// Progress is invoked after each item completes. Nil disables it.
	Progress ProgressFunc

	// Logger receives per-item Debug records and Warn records for
	// recorded per-source errors. Nil selects slog.Default().
	Logger *slog.Logger
}

func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

type workItem struct {
	index    int
	sourceID string
	text     TextProvider
	locate   detector.LocationFactory
}

// Scan enumerates adapter's items eagerly into a work list, distributes
// them across Config.ThreadCount workers, and joins into a single
// ScanResults. ctx is polled between items; in-flight item work is
// allowed to finish (spec §5 cancellation semantics).
func Scan(ctx context.Context, adapter SourceAdapter, cfg Config) (*models.ScanResults, error) {
	started := time.Now()

	var items []workItem
	enumErr := adapter.Iter(func(sourceID string, text TextProvider, locate detector.LocationFactory) error {
		items = append(items, workItem{index: len(items), sourceID: sourceID, text: text, locate: locate})
		return nil
	})
	if enumErr != nil {
		return nil, enumErr
	}

	workers := cfg.ThreadCount
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]models.FileResult, len(items))
	total := len(items)
	var done atomic.Int64

	itemCh := make(chan workItem, len(items))
	var wg sync.WaitGroup

	var mergeMu sync.Mutex
	detectorTally := make(map[string]int)
	severityTally := make(map[models.Severity]int)
	var extractedOK int
	var extractionFailures []models.ExtractionFailure

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			localDetectorTally := make(map[string]int)
			localSeverityTally := make(map[models.Severity]int)
			localExtractedOK := 0
			var localFailures []models.ExtractionFailure

			for item := range itemCh {
				select {
				case <-ctx.Done():
					results[item.index] = models.FileResult{SourceID: item.sourceID, Error: ctx.Err()}
					continue
				default:
				}

				fr := processItem(item, cfg)
				results[item.index] = fr
				cfg.logger().Debug("scanned item", "source_id", item.sourceID, "matches", len(fr.Matches))

				if fr.Error != nil {
					cfg.logger().Warn("recorded per-source error", "source_id", item.sourceID, "error", fr.Error)
					if failure, ok := extractionFailure(item.sourceID, fr.Error); ok {
						localFailures = append(localFailures, failure)
					}
				} else {
					localExtractedOK++
				}
				for _, m := range fr.Matches {
					localDetectorTally[m.DetectorID]++
					localSeverityTally[m.Severity]++
				}

				if cfg.Progress != nil {
					cfg.Progress(int(done.Add(1)), total)
				}
			}

			mergeMu.Lock()
			for k, v := range localDetectorTally {
				detectorTally[k] += v
			}
			for k, v := range localSeverityTally {
				severityTally[k] += v
			}
			extractedOK += localExtractedOK
			extractionFailures = append(extractionFailures, localFailures...)
			mergeMu.Unlock()
		}()
	}

	for _, item := range items {
		select {
		case itemCh <- item:
		case <-ctx.Done():
		}
	}
	close(itemCh)
	wg.Wait()

	r := models.NewScanResults()
	r.Findings = results
	r.ExtractedOK = extractedOK
	r.ExtractionFailures = extractionFailures
	r.ScanDurationSeconds = time.Since(started).Seconds()
	r.DetectorTally = detectorTally
	r.SeverityTally = severityTally
	r.ItemsScanned = len(results)
	for _, f := range results {
		if len(f.Matches) > 0 {
			r.ItemsWithMatches++
		}
		r.TotalMatches += len(f.Matches)
	}
	return r, nil
}

// processItem runs steps 2-5 of spec §4.9 for a single work item:
// obtain text, dispatch every enabled detector, resolve overlaps, run
// the context analyzer over survivors. A panic anywhere in that path
// (a detector defect, not a recoverable input error) is isolated to
// this item's FileResult rather than taking down the worker (§7).
func processItem(item workItem, cfg Config) (result models.FileResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = models.FileResult{SourceID: item.sourceID, Error: fmt.Errorf("panic scanning %q: %v", item.sourceID, rec)}
		}
	}()

	text, err := item.text()
	if err != nil {
		return models.FileResult{SourceID: item.sourceID, Error: err}
	}

	var candidates []models.Match
	for _, d := range cfg.Registry.IterEnabled() {
		candidates = append(candidates, d.Detect(text, item.locate)...)
	}

	survivors := resolveOverlaps(candidates, cfg.Registry)
	sortMatchesByOffset(survivors)

	if cfg.ContextAnalyzer != nil {
		for i, m := range survivors {
			survivors[i] = cfg.ContextAnalyzer.Annotate(text, m)
		}
	}

	return models.FileResult{SourceID: item.sourceID, Matches: survivors}
}

// extractionFailure reports whether err names a recorded extraction
// failure (spec §4.8/§4.13: Encrypted/CorruptedFile/UnsupportedFormat
// are recorded and skipped, not treated as a generic read error).
func extractionFailure(sourceID string, err error) (models.ExtractionFailure, bool) {
	var extErr *models.ExtractionFailedError
	if errors.As(err, &extErr) {
		return models.ExtractionFailure{SourceID: sourceID, Reason: err.Error()}, true
	}
	return models.ExtractionFailure{}, false
}

// sortMatchesByOffset orders matches ascending by byte_offset, used
// after overlap resolution (spec §5 ordering guarantee). Matches with
// no usable offset (DB rows) sort after those that have one, retaining
// their relative detection order.
func sortMatchesByOffset(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		ai, _ := matches[i].Range()
		aj, _ := matches[j].Range()
		if ai < 0 && aj >= 0 {
			return false
		}
		if aj < 0 && ai >= 0 {
			return true
		}
		return ai < aj
	})
}
