package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
	"github.com/astek-sistemas/participacao-backend-go/internal/domain/participation"
)

// ReportService renders participation records into downloadable files.
type ReportService interface {
	// QuarterSpreadsheet builds an XLSX with one row per record.
	QuarterSpreadsheet(ctx context.Context, quarter string) ([]byte, error)
	// EmployeeStatement builds a PDF statement for one record.
	EmployeeStatement(ctx context.Context, employeeID, quarter string) ([]byte, error)
}

type ReportServiceImpl struct {
	recordRepo   participation.RecordRepository
	employeeRepo employee.EmployeeRepository
}

func NewReportService(
	recordRepo participation.RecordRepository,
	employeeRepo employee.EmployeeRepository,
) ReportService {
	return &ReportServiceImpl{
		recordRepo:   recordRepo,
		employeeRepo: employeeRepo,
	}
}

var hundred = decimal.NewFromInt(100)

var spreadsheetHeader = []string{
	"Employee", "Sector", "Quarter", "Worked Days", "Gross", "Discount %",
	"Penalty", "Adjustment", "Final", "Status",
}

func (s *ReportServiceImpl) QuarterSpreadsheet(ctx context.Context, quarter string) ([]byte, error) {
	records, err := s.recordRepo.ListByQuarter(ctx, quarter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Participation"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range spreadsheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i := range records {
		rec := &records[i]
		status := "editable"
		if !rec.Editable {
			status = "locked"
		}
		name := rec.EmployeeID
		if rec.EmployeeName != nil {
			name = *rec.EmployeeName
		}
		sectorName := ""
		if rec.SectorName != nil {
			sectorName = *rec.SectorName
		}

		row := []interface{}{
			name,
			sectorName,
			rec.Quarter,
			rec.WorkedDays,
			rec.GrossValue.InexactFloat64(),
			rec.DiscountTotal.Mul(hundred).InexactFloat64(),
			rec.PenaltyAmount.InexactFloat64(),
			rec.ManualAdjustment.InexactFloat64(),
			rec.FinalValue.InexactFloat64(),
			status,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportServiceImpl) EmployeeStatement(ctx context.Context, employeeID, quarter string) ([]byte, error) {
	rec, err := s.recordRepo.GetByEmployeeAndQuarter(ctx, employeeID, quarter)
	if err != nil {
		return nil, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Participation Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", emp.Name, emp.RegistrationNumber))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Quarter: %s   Payout date: %s", rec.Quarter, rec.PayoutDate.Format("2006-01-02")))
	pdf.Ln(10)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 7, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(60, 7, value, "1", 1, "R", false, 0, "")
	}

	line("Worked days", fmt.Sprintf("%d", rec.WorkedDays))
	line("Gross value", rec.GrossValue.StringFixed(2))
	line("Discount total", rec.DiscountTotal.Mul(hundred).StringFixed(2)+"%")
	line("Penalty amount", rec.PenaltyAmount.StringFixed(2))
	line("Manual adjustment", rec.ManualAdjustment.StringFixed(2))
	line("Final value", rec.FinalValue.StringFixed(2))

	if len(rec.DiscountItems) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, "Itemized discounts")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for _, item := range rec.DiscountItems {
			pdf.CellFormat(130, 6, item.Reason, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, item.Value.StringFixed(2), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
