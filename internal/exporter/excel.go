package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	sheetPoints    = "Points"
	sheetSummary   = "Summary"
	sheetUnmatched = "Unmatched"
)

// WorkbookSheets lists the sheets BuildWorkbook creates, in order.
var WorkbookSheets = []string{sheetSummary, sheetPoints, sheetUnmatched}

// BuildWorkbook lays out r as a workbook with a summary, the point table and
// the unmatched indices. The caller owns the returned file.
func BuildWorkbook(r Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range WorkbookSheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	for i, kv := range r.SummaryRows() {
		row := i + 1
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", row), &[]interface{}{kv[0], kv[1]}); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(r.SummaryRows())), bold); err != nil {
		f.Close()
		return nil, err
	}

	if err := writePointsSheet(f, r, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTable(f, sheetUnmatched, r.UnmatchedTable(), bold); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteWorkbook streams the workbook for r to w.
func WriteWorkbook(w io.Writer, r Report) error {
	f, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last+"1", style)
}

// writePointsSheet stores numbers as numbers; NaN cells stay empty.
func writePointsSheet(f *excelize.File, r Report, style int) error {
	var points = r.Stats
	withRes := points != nil && hasResolution(points.Points)
	if err := writeHeader(f, sheetPoints, pointHeaders(withRes), style); err != nil {
		return err
	}
	if points == nil {
		return nil
	}
	for i, p := range points.Points {
		row := []interface{}{
			p.Index.H, p.Index.K, p.Index.L,
			cellValue(p.I1), cellValue(p.Sigma1),
			cellValue(p.I2), cellValue(p.Sigma2),
			cellValue(p.Mean), cellValue(p.RelDiff), cellValue(p.LogMean),
		}
		if withRes {
			var stl interface{}
			if p.HasResolution {
				stl = cellValue(p.Resolution)
			}
			row = append(row, stl)
		}
		if err := f.SetSheetRow(sheetPoints, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table WriteOptions, style int) error {
	if err := writeHeader(f, sheet, table.Headers, style); err != nil {
		return err
	}
	for i, rec := range table.Records {
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

// SaveWorkbook writes the workbook for r to path, creating parent directories.
func SaveWorkbook(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
