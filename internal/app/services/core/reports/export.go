package reports

import (
	"clinic-service/internal/app/models"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Sheet1"

var summaryHeaders = []interface{}{"Period", "Revenue", "Due", "Invoices", "Appointments"}

// ExportSummaryXLSX writes one row per period followed by a totals row.
func ExportSummaryXLSX(summary *models.ReportSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, summaryHeaders); err != nil {
		return nil, err
	}

	row := 2
	for _, period := range summary.ByPeriod {
		values := []interface{}{
			period.Period,
			period.Revenue.Decimal().InexactFloat64(),
			period.Due.Decimal().InexactFloat64(),
			period.Invoices,
			period.Appointments,
		}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}

	totals := []interface{}{
		"Total",
		summary.Totals.Revenue.Decimal().InexactFloat64(),
		summary.Totals.Due.Decimal().InexactFloat64(),
	}
	if err := setRow(f, row, totals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
