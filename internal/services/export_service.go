package services

import (
	"context"
	"fmt"

	"fleetops/internal/finance"
	"fleetops/internal/money"
	"fleetops/internal/utils"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	vehiclesSheet = "By Vehicle"
	driversSheet  = "By Driver"
	balancesSheet = "Trip Balances"
)

// ExportService writes reports as spreadsheets.
type ExportService struct {
	Reports   ReportsService
	RequestID string
}

// SummaryXLSX renders the report for f as a workbook and returns it with a
// download filename.
func (s ExportService) SummaryXLSX(ctx context.Context, f finance.ReportFilter) ([]byte, string, error) {
	rep, err := s.Reports.Summary(ctx, f)
	if err != nil {
		return nil, "", err
	}
	data, err := buildSummaryWorkbook(rep)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "summary_xlsx", utils.KV("trips", rep.TripCount, "bytes", len(data)))
	return data, "report_" + reportFileTag(rep.Filter) + ".xlsx", nil
}

func reportFileTag(f finance.ReportFilter) string {
	switch {
	case f.Month != nil:
		return fmt.Sprintf("%04d-%02d", f.Month.Year, int(f.Month.Month))
	case !f.From.IsZero() || !f.To.IsZero():
		return utils.SafeFilenamePart(f.From.String() + "_" + f.To.String())
	default:
		return "all"
	}
}

func rupees(m money.Money) float64 {
	return m.Decimal().InexactFloat64()
}

func buildSummaryWorkbook(rep finance.ReportSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	f.SetColWidth(summarySheet, "A", "A", 22)
	f.SetColWidth(summarySheet, "B", "B", 18)
	f.SetCellValue(summarySheet, "A1", "Metric")
	f.SetCellValue(summarySheet, "B1", "Value")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	rows := []struct {
		label string
		value any
		money bool
	}{
		{"Trips", rep.TripCount, false},
		{"Distance (km)", rep.DistanceKM.InexactFloat64(), false},
		{"Total revenue", rupees(rep.TotalRevenue), true},
		{"Received", rupees(rep.TotalPaid), true},
		{"Pending", rupees(rep.TotalPending), true},
		{"Trip expenses", rupees(rep.TripExpenses), true},
		{"Fuel expenses", rupees(rep.FuelExpenses), true},
		{"Spare part expenses", rupees(rep.SpareExpenses), true},
		{"Total expenses", rupees(rep.TotalExpenses), true},
		{"Net profit", rupees(rep.NetProfit), true},
		{"Paid trips", rep.Status.Paid, false},
		{"Partially paid trips", rep.Status.Partial, false},
		{"Unpaid trips", rep.Status.Pending, false},
	}
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r.label)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r.value)
		if r.money {
			f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), amountStyle)
		}
	}

	if _, err := f.NewSheet(vehiclesSheet); err != nil {
		return nil, err
	}
	writeHeader(f, vehiclesSheet, headerStyle, "Vehicle", "Trips", "Distance (km)", "Revenue")
	for i, v := range rep.ByVehicle {
		row := i + 2
		f.SetCellValue(vehiclesSheet, fmt.Sprintf("A%d", row), v.VehicleNumber)
		f.SetCellValue(vehiclesSheet, fmt.Sprintf("B%d", row), v.Trips)
		f.SetCellValue(vehiclesSheet, fmt.Sprintf("C%d", row), v.DistanceKM.InexactFloat64())
		f.SetCellValue(vehiclesSheet, fmt.Sprintf("D%d", row), rupees(v.Revenue))
		f.SetCellStyle(vehiclesSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), amountStyle)
	}

	if _, err := f.NewSheet(driversSheet); err != nil {
		return nil, err
	}
	writeHeader(f, driversSheet, headerStyle, "Driver ID", "Trips", "Distance (km)", "Revenue")
	for i, d := range rep.ByDriver {
		row := i + 2
		f.SetCellValue(driversSheet, fmt.Sprintf("A%d", row), d.DriverID)
		f.SetCellValue(driversSheet, fmt.Sprintf("B%d", row), d.Trips)
		f.SetCellValue(driversSheet, fmt.Sprintf("C%d", row), d.DistanceKM.InexactFloat64())
		f.SetCellValue(driversSheet, fmt.Sprintf("D%d", row), rupees(d.Revenue))
		f.SetCellStyle(driversSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), amountStyle)
	}

	if _, err := f.NewSheet(balancesSheet); err != nil {
		return nil, err
	}
	writeHeader(f, balancesSheet, headerStyle, "Trip ID", "Total", "Received", "Pending", "Status")
	for i, b := range rep.Balances {
		row := i + 2
		f.SetCellValue(balancesSheet, fmt.Sprintf("A%d", row), b.TripID)
		f.SetCellValue(balancesSheet, fmt.Sprintf("B%d", row), rupees(b.Total))
		f.SetCellValue(balancesSheet, fmt.Sprintf("C%d", row), rupees(b.Received))
		f.SetCellValue(balancesSheet, fmt.Sprintf("D%d", row), rupees(b.Pending))
		f.SetCellValue(balancesSheet, fmt.Sprintf("E%d", row), string(b.Status))
		f.SetCellStyle(balancesSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("D%d", row), amountStyle)
	}
	if n := len(rep.Balances); n > 0 {
		total := n + 2
		f.SetCellValue(balancesSheet, fmt.Sprintf("A%d", total), "TOTAL")
		for _, col := range []string{"B", "C", "D"} {
			f.SetCellFormula(balancesSheet, fmt.Sprintf("%s%d", col, total), fmt.Sprintf("SUM(%s2:%s%d)", col, col, total-1))
		}
		f.SetCellStyle(balancesSheet, fmt.Sprintf("A%d", total), fmt.Sprintf("E%d", total), headerStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers ...string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, style)
	f.SetColWidth(sheet, "A", "E", 16)
}
