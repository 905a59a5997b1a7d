package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Payroll"
)

var workbookHeader = []interface{}{"Employee", "Name", "Hours", "Bonus", "Salaried", "Export Line"}

// buildWorkbook lays out one row per line under a period title row.
func buildWorkbook(period payperiod.Period, lines []payroll.Line) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", "Pay Period: "+period.Label()); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A2", &workbookHeader); err != nil {
		return nil, err
	}

	for i, l := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			payroll.DisplayName(l.Name),
			l.Name,
			l.ExportHours,
			l.Bonus.InexactFloat64(),
			l.IsManager,
			payroll.FormatLine(l),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "F", "F", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
