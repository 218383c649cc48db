package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/pii-radar/piiradar/internal/models"
)

// jsonReport mirrors the persisted JSON report schema of spec §6:
// scan.*, stats.*, extraction.*, findings[].
type jsonReport struct {
	Scan struct {
		ID         string `json:"id"`
		StartedAt  string `json:"started_at"`
		DurationMs int64  `json:"duration_ms"`
	} `json:"scan"`
	Stats struct {
		ItemsScanned     int            `json:"items_scanned"`
		ItemsWithMatches int            `json:"items_with_matches"`
		TotalMatches     int            `json:"total_matches"`
		DetectorTally    map[string]int `json:"detector_tally"`
		SeverityTally    map[string]int `json:"severity_tally"`
	} `json:"stats"`
	Extraction struct {
		ExtractedOK int           `json:"extracted_ok"`
		Failures    []failureJSON `json:"failures"`
	} `json:"extraction"`
	Findings []fileResultJSON `json:"findings"`
}

type failureJSON struct {
	SourceID string `json:"source_id"`
	Reason   string `json:"reason"`
}

type fileResultJSON struct {
	SourceID string      `json:"source_id"`
	Matches  []matchJSON `json:"matches"`
	Error    string      `json:"error,omitempty"`
}

type matchJSON struct {
	DetectorID   string `json:"detector_id"`
	DetectorName string `json:"detector_name,omitempty"`
	Country      string `json:"country"`
	Category     string `json:"category"`
	ValueMasked  string `json:"value_masked"`
	Path         string `json:"path,omitempty"`
	Line         int    `json:"line,omitempty"`
	Column       int    `json:"column,omitempty"`
	Table        string `json:"table_or_collection,omitempty"`
	RowKey       string `json:"row_key,omitempty"`
	ColumnField  string `json:"column_or_field,omitempty"`
	URL          string `json:"url,omitempty"`
	Confidence   string `json:"confidence"`
	Severity     string `json:"severity"`
	Article9     string `json:"gdpr_article9_category,omitempty"`
	Snippet      string `json:"context_snippet,omitempty"`
}

func toJSONReport(r *models.ScanResults, startedAt time.Time) jsonReport {
	var out jsonReport
	out.Scan.ID = r.ScanID.String()
	out.Scan.StartedAt = startedAt.UTC().Format(time.RFC3339)
	out.Scan.DurationMs = int64(r.ScanDurationSeconds * 1000)

	out.Stats.ItemsScanned = r.ItemsScanned
	out.Stats.ItemsWithMatches = r.ItemsWithMatches
	out.Stats.TotalMatches = r.TotalMatches
	out.Stats.DetectorTally = r.DetectorTally
	out.Stats.SeverityTally = make(map[string]int, len(r.SeverityTally))
	for sev, count := range r.SeverityTally {
		out.Stats.SeverityTally[sev.String()] = count
	}

	out.Extraction.ExtractedOK = r.ExtractedOK
	for _, f := range r.ExtractionFailures {
		out.Extraction.Failures = append(out.Extraction.Failures, failureJSON{SourceID: f.SourceID, Reason: f.Reason})
	}

	for _, fr := range r.Findings {
		entry := fileResultJSON{SourceID: fr.SourceID}
		if fr.Error != nil {
			entry.Error = fr.Error.Error()
		}
		for _, m := range fr.Matches {
			entry.Matches = append(entry.Matches, toMatchJSON(m))
		}
		out.Findings = append(out.Findings, entry)
	}
	return out
}

func toMatchJSON(m models.Match) matchJSON {
	mj := matchJSON{
		DetectorID:   m.DetectorID,
		DetectorName: m.DetectorName,
		Country:      m.Country,
		Category:     string(m.Category),
		ValueMasked:  m.ValueMasked,
		Confidence:   m.Confidence.String(),
		Severity:     m.Severity.String(),
		Article9:     string(m.GDPRArticle9Category),
		Snippet:      m.ContextSnippet,
	}
	switch m.Location.Kind {
	case models.LocationFile:
		mj.Path, mj.Line, mj.Column = m.Location.Path, m.Location.Line, m.Location.Column
	case models.LocationRow:
		mj.Table, mj.RowKey, mj.ColumnField = m.Location.TableOrCollection, m.Location.RowKey, m.Location.ColumnOrField
	case models.LocationAPI:
		mj.URL = m.Location.URL
	}
	return mj
}

func writeJSON(w io.Writer, r *models.ScanResults, indent bool) error {
	report := toJSONReport(r, time.Now().Add(-time.Duration(r.ScanDurationSeconds*float64(time.Second))))
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

// writeCSV emits the spec §6 CSV schema: one row per match, columns
// source, line, column, detector_id, country, category, confidence,
// severity, gdpr_article9, value_masked.
func writeCSV(w io.Writer, r *models.ScanResults) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"source", "line", "column", "detector_id", "country", "category", "confidence", "severity", "gdpr_article9", "value_masked"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, fr := range r.Findings {
		for _, m := range fr.Matches {
			row := []string{
				fr.SourceID,
				itoaOrEmpty(m.Location.Line),
				itoaOrEmpty(m.Location.Column),
				m.DetectorID,
				m.Country,
				string(m.Category),
				m.Confidence.String(),
				m.Severity.String(),
				string(m.GDPRArticle9Category),
				m.ValueMasked,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func writeTerminal(w io.Writer, r *models.ScanResults) error {
	fmt.Fprintf(w, "scanned %d item(s), %d with matches, %d total match(es)\n", r.ItemsScanned, r.ItemsWithMatches, r.TotalMatches)
	if r.ExtractedOK > 0 || len(r.ExtractionFailures) > 0 {
		fmt.Fprintf(w, "extraction: %d ok, %d failed\n", r.ExtractedOK, len(r.ExtractionFailures))
	}
	for _, f := range r.ExtractionFailures {
		fmt.Fprintf(w, "  ! %s: %s\n", f.SourceID, f.Reason)
	}
	for _, fr := range r.Findings {
		if fr.Error != nil {
			fmt.Fprintf(w, "! %s: %v\n", fr.SourceID, fr.Error)
			continue
		}
		if len(fr.Matches) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", fr.SourceID)
		for _, m := range fr.Matches {
			loc := locationSummary(m)
			fmt.Fprintf(w, "  %-20s %-8s %-8s %-10s %s", m.DetectorID, m.Confidence, m.Severity, loc, m.ValueMasked)
			if m.GDPRArticle9Category != "" {
				fmt.Fprintf(w, "  [article9: %s]", m.GDPRArticle9Category)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func locationSummary(m models.Match) string {
	switch m.Location.Kind {
	case models.LocationFile:
		return fmt.Sprintf("%d:%d", m.Location.Line, m.Location.Column)
	case models.LocationRow:
		return fmt.Sprintf("%s.%s", m.Location.TableOrCollection, m.Location.ColumnOrField)
	case models.LocationAPI:
		return m.Location.URL
	default:
		return ""
	}
}

var htmlReportTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>PII-Radar report</title></head>
<body>
<h1>PII-Radar report</h1>
<p>{{.ItemsScanned}} item(s) scanned, {{.ItemsWithMatches}} with matches, {{.TotalMatches}} total match(es).</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Source</th><th>Detector</th><th>Confidence</th><th>Severity</th><th>Location</th><th>Value</th><th>Article 9</th></tr>
{{range .Findings}}{{$source := .SourceID}}{{range .Matches}}<tr>
<td>{{$source}}</td><td>{{.DetectorID}}</td><td>{{.Confidence}}</td><td>{{.Severity}}</td><td>{{.Location.Line}}:{{.Location.Column}}{{.Location.TableOrCollection}}{{.Location.ColumnOrField}}{{.Location.URL}}</td><td>{{.ValueMasked}}</td><td>{{.GDPRArticle9Category}}</td>
</tr>{{end}}{{end}}
</table>
</body></html>
`))

func writeHTML(w io.Writer, r *models.ScanResults) error {
	return htmlReportTemplate.Execute(w, r)
}
