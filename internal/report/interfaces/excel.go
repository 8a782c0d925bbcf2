package interfaces

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	report "feedertrack/internal/report/domain"
)

const (
	performanceSheet = "Feeder Performance"

	// Day columns start at column I; each day takes three value columns
	// plus one spacer.
	firstDateColumn  = 9
	dateColumnStride = 4

	headerDateRow  = 3
	headerLabelRow = 4
	firstDataRow   = 5
)

type styleSet struct {
	title        int
	dateHeader   int
	subHeader    int
	regionBanner int
	cell         int
	varPositive  int
	varNegative  int
}

// BuildReportXLSX renders the assembled report as the feeder performance
// tracker workbook: the main grid sheet plus one analysis sheet per bucket.
func BuildReportXLSX(rpt *report.Report) ([]byte, error) {
	if rpt == nil {
		return nil, fmt.Errorf("report export: nil report")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	_ = f.SetSheetName("Sheet1", performanceSheet)

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, fmt.Errorf("report export: styles: %w", err)
	}

	writeGridHeader(f, performanceSheet, rpt, styles)

	row := firstDataRow
	for _, group := range rpt.Groups {
		writeRegionBanner(f, performanceSheet, row, group.Region, len(rpt.Days), styles)
		row++
		for _, feederRow := range group.Rows {
			writeFeederRow(f, performanceSheet, row, feederRow, styles)
			row++
		}
	}

	for _, category := range report.AnalysisCategories {
		if _, err := f.NewSheet(category); err != nil {
			return nil, fmt.Errorf("report export: sheet %q: %w", category, err)
		}
		if category == report.CategoryFailedChecksSummary {
			writeSummarySheet(f, rpt, styles)
			continue
		}
		writeGridHeader(f, category, rpt, styles)
		bucketRow := firstDataRow
		for _, feederRow := range rpt.Bucket(category) {
			writeFeederRow(f, category, bucketRow, feederRow, styles)
			bucketRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	border := []excelize.Border{
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, err
	}
	if s.dateHeader, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Border: border, Alignment: center}); err != nil {
		return s, err
	}
	if s.subHeader, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    border,
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
	}); err != nil {
		return s, err
	}
	if s.regionBanner, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Border:    border,
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center}); err != nil {
		return s, err
	}
	if s.varPositive, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
	}); err != nil {
		return s, err
	}
	if s.varNegative, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00FF00"}},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// writeGridHeader writes the tracker title, per-day merged date headers and
// the Nomination/Actual/Variance sub-headers, and sets column widths.
func writeGridHeader(f *excelize.File, sheet string, rpt *report.Report, styles styleSet) {
	title := fmt.Sprintf("FEEDER PERFORMANCE TRACKER (%s TO %s)", formatDay(rpt.Range.Start), formatDay(rpt.Range.End))
	_ = f.SetCellValue(sheet, "F1", title)
	_ = f.SetCellStyle(sheet, "F1", "F1", styles.title)

	col := firstDateColumn
	for _, day := range rpt.Days {
		startCell := cellName(col, headerDateRow)
		endCell := cellName(col+2, headerDateRow)
		_ = f.MergeCell(sheet, startCell, endCell)
		_ = f.SetCellValue(sheet, startCell, formatDay(day))
		_ = f.SetCellStyle(sheet, startCell, endCell, styles.dateHeader)

		for i, label := range []string{"Nomination", "Actual", "Variance"} {
			cell := cellName(col+i, headerLabelRow)
			_ = f.SetCellValue(sheet, cell, label)
			_ = f.SetCellStyle(sheet, cell, cell, styles.subHeader)
			name, _ := excelize.ColumnNumberToName(col + i)
			_ = f.SetColWidth(sheet, name, name, 15)
		}
		col += dateColumnStride
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 35)
	_ = f.SetColWidth(sheet, "D", "G", 15)
}

// writeRegionBanner writes the merged region divider row.
func writeRegionBanner(f *excelize.File, sheet string, row int, region string, dayCount int, styles styleSet) {
	start := cellName(1, row)
	end := cellName(7, row)
	_ = f.MergeCell(sheet, start, end)
	_ = f.SetCellValue(sheet, start, region)
	_ = f.SetCellStyle(sheet, start, end, styles.regionBanner)
	_ = f.SetRowHeight(sheet, row, 22)

	col := firstDateColumn
	for i := 0; i < dayCount; i++ {
		_ = f.SetCellStyle(sheet, cellName(col, row), cellName(col+2, row), styles.cell)
		col += dateColumnStride
	}
}

// writeFeederRow writes one feeder's static attributes and day triples.
func writeFeederRow(f *excelize.File, sheet string, row int, r report.Row, styles styleSet) {
	_ = f.SetCellValue(sheet, cellName(1, row), r.Serial)
	_ = f.SetCellValue(sheet, cellName(2, row), r.BusinessHub)
	_ = f.SetCellValue(sheet, cellName(3, row), r.FeederName)
	_ = f.SetCellValue(sheet, cellName(4, row), r.Region)
	_ = f.SetCellValue(sheet, cellName(5, row), r.Band)
	_ = f.SetCellValue(sheet, cellName(6, row), r.DailyEnergyUptake)
	_ = f.SetCellValue(sheet, cellName(7, row), r.MonthlyDeliveryPlan)
	_ = f.SetCellStyle(sheet, cellName(1, row), cellName(7, row), styles.cell)

	col := firstDateColumn
	for _, day := range r.Days {
		_ = f.SetCellValue(sheet, cellName(col, row), day.Nomination)
		_ = f.SetCellValue(sheet, cellName(col+1, row), day.Actual)
		_ = f.SetCellValue(sheet, cellName(col+2, row), day.Variance)
		_ = f.SetCellStyle(sheet, cellName(col, row), cellName(col+1, row), styles.cell)

		varianceCell := cellName(col+2, row)
		switch {
		case day.Variance > 0:
			_ = f.SetCellStyle(sheet, varianceCell, varianceCell, styles.varPositive)
		case day.Variance < 0:
			_ = f.SetCellStyle(sheet, varianceCell, varianceCell, styles.varNegative)
		default:
			_ = f.SetCellStyle(sheet, varianceCell, varianceCell, styles.cell)
		}
		col += dateColumnStride
	}
}

// writeSummarySheet writes the consolidated failed-checks list.
func writeSummarySheet(f *excelize.File, rpt *report.Report, styles styleSet) {
	sheet := report.CategoryFailedChecksSummary
	title := fmt.Sprintf("FEEDER PERFORMANCE TRACKER (%s TO %s)", formatDay(rpt.Range.Start), formatDay(rpt.Range.End))
	_ = f.SetCellValue(sheet, "F1", title)
	_ = f.SetCellStyle(sheet, "F1", "F1", styles.title)

	headers := []string{"Region", "Business Hub", "Feeder Name", "Date", "Failed Checks"}
	for i, header := range headers {
		cell := cellName(i+1, firstDataRow)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, styles.subHeader)
	}

	row := firstDataRow + 1
	for _, entry := range rpt.Summary {
		_ = f.SetCellValue(sheet, cellName(1, row), entry.Region)
		_ = f.SetCellValue(sheet, cellName(2, row), entry.BusinessHub)
		_ = f.SetCellValue(sheet, cellName(3, row), entry.FeederName)
		_ = f.SetCellValue(sheet, cellName(4, row), formatDay(entry.Date))
		_ = f.SetCellValue(sheet, cellName(5, row), strings.Join(entry.FailedChecks, ", "))
		_ = f.SetCellStyle(sheet, cellName(1, row), cellName(5, row), styles.cell)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 15)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 35)
	_ = f.SetColWidth(sheet, "D", "D", 15)
	_ = f.SetColWidth(sheet, "E", "E", 40)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func formatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
