package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fleetops/internal/domain/models"
	"fleetops/internal/finance"
	"fleetops/internal/money"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders trip invoices as JSON and PDF.
type DocsService struct {
	DB        *sql.DB
	RequestID string
	Loader    func(ctx context.Context, tripID int64) (Invoice, error)
}

// InvoiceLine is one billed item.
type InvoiceLine struct {
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
}

// Invoice is everything printed on a trip invoice.
type Invoice struct {
	InvoiceNumber string              `json:"invoice_number"`
	TripID        int64               `json:"trip_id"`
	TripDate      models.Date         `json:"trip_date"`
	Route         string              `json:"route"`
	VehicleNumber string              `json:"vehicle_number"`
	DriverName    string              `json:"driver_name"`
	Customer      models.Customer     `json:"customer"`
	PricingType   models.PricingType  `json:"pricing_type"`
	Lines         []InvoiceLine       `json:"lines"`
	Balance       finance.TripBalance `json:"balance"`
	Payments      []models.Payment    `json:"payments"`
}

func (s DocsService) Invoice(ctx context.Context, tripID int64) (Invoice, error) {
	if s.Loader != nil {
		return s.Loader(ctx, tripID)
	}
	trip, err := repositories.TripRepository{DB: s.DB}.GetByID(ctx, tripID)
	if err != nil {
		return Invoice{}, err
	}
	payments, err := repositories.PaymentRepository{DB: s.DB}.ListByTrip(ctx, tripID)
	if err != nil {
		return Invoice{}, err
	}
	customer, err := repositories.CustomerRepository{DB: s.DB}.GetByID(ctx, trip.CustomerID)
	if err != nil {
		return Invoice{}, err
	}

	inv := Invoice{
		InvoiceNumber: trip.InvoiceNumber,
		TripID:        trip.ID,
		TripDate:      trip.TripDate,
		Route:         safe(trip.FromLocation, "-") + " -> " + safe(trip.ToLocation, "-"),
		VehicleNumber: trip.VehicleNumber,
		Customer:      customer,
		PricingType:   trip.PricingType,
		Lines:         invoiceLines(trip),
		Balance:       finance.ComputeTripBalance(trip, payments),
		Payments:      payments,
	}
	// a removed driver should not block the invoice
	if d, err := (repositories.DriverRepository{DB: s.DB}).GetByID(ctx, trip.DriverID); err == nil {
		inv.DriverName = d.Name
	}
	return inv, nil
}

func invoiceLines(t models.Trip) []InvoiceLine {
	var lines []InvoiceLine
	if t.PricingType == models.PricingPackage {
		lines = append(lines, InvoiceLine{Description: "Package fare", Amount: t.PackageAmount})
	} else {
		lines = append(lines, InvoiceLine{
			Description: fmt.Sprintf("Distance %s km @ %s/km", t.DistanceKM.StringFixed(1), t.CostPerKM.StringFixed(2)),
			Amount:      money.AtRate(t.CostPerKM, t.DistanceKM),
		})
	}
	if !t.ChargedTollAmount.IsZero() {
		lines = append(lines, InvoiceLine{Description: "Toll", Amount: t.ChargedTollAmount})
	}
	if !t.ChargedParkingAmount.IsZero() {
		lines = append(lines, InvoiceLine{Description: "Parking", Amount: t.ChargedParkingAmount})
	}
	return lines
}

// InvoicePDF returns the rendered invoice and its download filename.
func (s DocsService) InvoicePDF(ctx context.Context, tripID int64) ([]byte, string, error) {
	inv, err := s.Invoice(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("trip_id=%d", tripID))
	return buildInvoicePDF(inv, time.Now())
}

func buildInvoicePDF(inv Invoice, printedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, s := range []string{
		"Invoice No : " + safe(inv.InvoiceNumber, "-"),
		"Trip Date  : " + safe(inv.TripDate.String(), "-"),
		"Printed    : " + printedAt.Format("2006-01-02 15:04"),
	} {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+safe(inv.Customer.Name, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone : "+safe(inv.Customer.Phone, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Route %s, vehicle %s, driver %s",
		inv.Route, safe(inv.VehicleNumber, "-"), safe(inv.DriverName, "-")), "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(130, 8, "Description", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range inv.Lines {
		pdf.CellFormat(130, 8, l.Description, "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 8, utils.FormatRupeeASCII(l.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	for _, row := range [][2]string{
		{"Total", utils.FormatRupeeASCII(inv.Balance.Total)},
		{"Received", utils.FormatRupeeASCII(inv.Balance.Received)},
		{"Balance Due", utils.FormatRupeeASCII(inv.Balance.Pending)},
	} {
		pdf.CellFormat(130, 8, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment status: "+strings.ToUpper(string(inv.Balance.Status)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s.pdf", utils.SafeFilenamePart(inv.InvoiceNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
