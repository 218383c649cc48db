package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pii-radar/piiradar/internal/models"
)

// XLSXExtractor extracts text from spreadsheets via
// github.com/xuri/excelize/v2, prepending a `Sheet: <name>` line before
// each sheet's rows so locations stay meaningful (spec §4.8).
type XLSXExtractor struct{}

func (e *XLSXExtractor) Name() string                  { return "xlsx" }
func (e *XLSXExtractor) SupportedExtensions() []string { return []string{".xlsx"} }

func (e *XLSXExtractor) Extract(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", &models.ExtractionFailedError{SourceID: path, Kind: models.ExtractionCorruptedFile, Reason: err.Error()}
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		sb.WriteString(fmt.Sprintf("Sheet: %s\n", sheet))
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, " "))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
