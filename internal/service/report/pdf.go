package report

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Employee", 60},
	{"Clock In", 45},
	{"Clock Out", 45},
	{"Hours", 30},
}

func renderPDF(r report.HoursReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Hours Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Hours Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(r.PeriodLabel))
	pdf.Ln(6)
	if r.EmployeeName != "" {
		pdf.Cell(0, 7, tr("Employee: "+r.EmployeeName))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if len(r.Records) == 0 {
		pdf.Cell(0, 8, tr(r.EmptyMessage))
		return output(pdf)
	}

	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, rec := range r.Records {
		clockOut, hours := "In progress", "-"
		if rec.ClockOut != nil {
			clockOut = *rec.ClockOut
		}
		if rec.Hours != nil {
			hours = fmt.Sprintf("%.2f", *rec.Hours)
		}
		cells := []string{tr(rec.Employee), rec.ClockIn, clockOut, hours}
		for i, c := range pdfColumns {
			align := "L"
			if i == len(pdfColumns)-1 {
				align = "R"
			}
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 7, "Total Hours", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", r.TotalHours), "1", 0, "R", false, 0, "")

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
