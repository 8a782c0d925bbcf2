package interfaces

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	report "feedertrack/internal/report/domain"
)

// BuildFailedChecksPDF renders the failed-checks summary as a PDF table.
func BuildFailedChecksPDF(rpt *report.Report) ([]byte, error) {
	if rpt == nil {
		return nil, fmt.Errorf("report export: nil report")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Feeder Performance - Failed Checks Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Range: %s to %s", formatDay(rpt.Range.Start), formatDay(rpt.Range.End)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Region", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Business Hub", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Feeder", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "Failed Checks", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, entry := range rpt.Summary {
		pdf.CellFormat(40, 6, entry.Region, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, entry.BusinessHub, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, entry.FeederName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, formatDay(entry.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 6, strings.Join(entry.FailedChecks, ", "), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	if len(rpt.Summary) == 0 {
		pdf.CellFormat(275, 6, "No failed checks in range", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
