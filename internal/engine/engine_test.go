package engine

import (
	"context"
	"testing"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/models"
	"github.com/pii-radar/piiradar/internal/registry"
)

type memItem struct {
	sourceID string
	text     string
	err      error
}

type memAdapter struct {
	items []memItem
}

func (a *memAdapter) Iter(yield func(sourceID string, text TextProvider, locate detector.LocationFactory) error) error {
	for _, item := range a.items {
		item := item
		locate := func(offset int) models.Location {
			return models.Location{Kind: models.LocationFile, Path: item.sourceID, ByteOffset: offset}
		}
		provider := func() (string, error) { return item.text, item.err }
		if err := yield(item.sourceID, provider, locate); err != nil {
			return err
		}
	}
	return nil
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Build(detector.BuiltinDetectors(detector.EntropyConfig{MinBitsPerChar: 3.5, MinLength: 20})...)
	if err != nil {
		t.Fatalf("registry.Build: %v", err)
	}
	return reg
}

func TestScanFindsMatchesAndCounts(t *testing.T) {
	adapter := &memAdapter{items: []memItem{
		{sourceID: "a.txt", text: "Dutch BSN 111222333 on file."},
		{sourceID: "b.txt", text: "nothing interesting here."},
	}}

	r, err := Scan(context.Background(), adapter, Config{Registry: testRegistry(t)})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if r.ItemsScanned != 2 {
		t.Fatalf("ItemsScanned = %d, want 2", r.ItemsScanned)
	}
	if r.ItemsWithMatches != 1 {
		t.Fatalf("ItemsWithMatches = %d, want 1", r.ItemsWithMatches)
	}
	if r.TotalMatches == 0 {
		t.Fatal("expected at least one match")
	}
	if r.DetectorTally["nl_bsn"] != 1 {
		t.Errorf("DetectorTally[nl_bsn] = %d, want 1", r.DetectorTally["nl_bsn"])
	}
}

func TestScanPreservesAdapterOrder(t *testing.T) {
	adapter := &memAdapter{items: []memItem{
		{sourceID: "1.txt", text: "one"},
		{sourceID: "2.txt", text: "two"},
		{sourceID: "3.txt", text: "three"},
	}}

	r, err := Scan(context.Background(), adapter, Config{Registry: testRegistry(t), ThreadCount: 4})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{"1.txt", "2.txt", "3.txt"}
	for i, w := range want {
		if r.Findings[i].SourceID != w {
			t.Errorf("Findings[%d].SourceID = %q, want %q", i, r.Findings[i].SourceID, w)
		}
	}
}

func TestScanRecordsExtractionFailureWithoutStoppingScan(t *testing.T) {
	adapter := &memAdapter{items: []memItem{
		{sourceID: "bad.pdf", err: &models.ExtractionFailedError{SourceID: "bad.pdf", Kind: models.ExtractionCorruptedFile, Reason: "truncated"}},
		{sourceID: "ok.txt", text: "nothing sensitive"},
	}}

	r, err := Scan(context.Background(), adapter, Config{Registry: testRegistry(t)})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if r.ItemsScanned != 2 {
		t.Fatalf("ItemsScanned = %d, want 2", r.ItemsScanned)
	}
	if len(r.ExtractionFailures) != 1 {
		t.Fatalf("ExtractionFailures = %d, want 1", len(r.ExtractionFailures))
	}
	if r.ExtractedOK != 1 {
		t.Errorf("ExtractedOK = %d, want 1", r.ExtractedOK)
	}
}

func TestScanInvokesProgressCallback(t *testing.T) {
	adapter := &memAdapter{items: []memItem{
		{sourceID: "a.txt", text: "a"},
		{sourceID: "b.txt", text: "b"},
	}}

	calls := 0
	lastDone, lastTotal := 0, 0
	progress := func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}

	_, err := Scan(context.Background(), adapter, Config{Registry: testRegistry(t), Progress: progress})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if calls != 2 {
		t.Fatalf("progress invoked %d times, want 2", calls)
	}
	if lastDone != lastTotal {
		t.Errorf("final progress call done=%d total=%d, want equal", lastDone, lastTotal)
	}
}

func TestResolveOverlapsKeepsHigherConfidence(t *testing.T) {
	reg := testRegistry(t)
	high := models.Match{
		DetectorID: "nl_bsn",
		Confidence: models.ConfidenceHigh,
		ValueRaw:   "111222333",
		Location:   models.Location{Kind: models.LocationFile, ByteOffset: 10},
	}
	low := models.Match{
		DetectorID: "generic_secret",
		Confidence: models.ConfidenceLow,
		ValueRaw:   "1112223339999",
		Location:   models.Location{Kind: models.LocationFile, ByteOffset: 10},
	}

	survivors := resolveOverlaps([]models.Match{low, high}, reg)
	if len(survivors) != 1 {
		t.Fatalf("got %d survivors, want 1", len(survivors))
	}
	if survivors[0].DetectorID != "nl_bsn" {
		t.Errorf("survivor = %q, want nl_bsn (higher confidence)", survivors[0].DetectorID)
	}
}

type panickingDetector struct{}

func (panickingDetector) ID() string                       { return "panicking" }
func (panickingDetector) Country() string                  { return models.Universal }
func (panickingDetector) Category() models.Category        { return models.CategoryCustom }
func (panickingDetector) DefaultSeverity() models.Severity { return models.SeverityLow }
func (panickingDetector) Detect(text string, locate detector.LocationFactory) []models.Match {
	panic("detector defect")
}

func TestScanIsolatesDetectorPanicToOneItem(t *testing.T) {
	reg, err := registry.Build(panickingDetector{})
	if err != nil {
		t.Fatalf("registry.Build: %v", err)
	}

	adapter := &memAdapter{items: []memItem{
		{sourceID: "bad.txt", text: "anything"},
		{sourceID: "ok.txt", text: "anything else"},
	}}

	r, err := Scan(context.Background(), adapter, Config{Registry: reg})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if r.ItemsScanned != 2 {
		t.Fatalf("ItemsScanned = %d, want 2 (a detector panic must not abort the scan)", r.ItemsScanned)
	}
	for _, f := range r.Findings {
		if f.Error == nil {
			t.Errorf("FileResult for %q: want a recorded panic error, got nil", f.SourceID)
		}
	}
}

func TestResolveOverlapsKeepsNonOverlappingMatches(t *testing.T) {
	reg := testRegistry(t)
	a := models.Match{
		DetectorID: "email",
		Confidence: models.ConfidenceMedium,
		ValueRaw:   "a@b.com",
		Location:   models.Location{Kind: models.LocationFile, ByteOffset: 0},
	}
	b := models.Match{
		DetectorID: "email",
		Confidence: models.ConfidenceMedium,
		ValueRaw:   "c@d.com",
		Location:   models.Location{Kind: models.LocationFile, ByteOffset: 50},
	}

	survivors := resolveOverlaps([]models.Match{a, b}, reg)
	if len(survivors) != 2 {
		t.Fatalf("got %d survivors, want 2 (non-overlapping)", len(survivors))
	}
}
