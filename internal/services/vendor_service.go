package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/finance"
	"fleetops/internal/money"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type VendorService struct {
	DB        *sql.DB
	RequestID string
}

func (s VendorService) repo() repositories.VendorRepository {
	return repositories.VendorRepository{DB: s.DB}
}

func validCategory(c string) bool {
	switch c {
	case "", models.VendorCategoryFuel, models.VendorCategorySpare, models.VendorCategoryBoth:
		return true
	}
	return false
}

func (s VendorService) Create(ctx context.Context, v models.Vendor) (models.Vendor, error) {
	v.Name = utils.NormalizeSpace(v.Name)
	v.Category = strings.ToLower(strings.TrimSpace(v.Category))
	if err := requireText("name", v.Name); err != nil {
		return models.Vendor{}, err
	}
	if !validCategory(v.Category) {
		return models.Vendor{}, domain.ValidationError{Field: "category", Msg: "must be fuel, spare or both"}
	}
	id, err := s.repo().Create(ctx, v)
	if err != nil {
		return models.Vendor{}, err
	}
	v.ID = id
	utils.LogEvent(s.RequestID, "vendor", "create", utils.KV("id", id, "category", v.Category))
	return v, nil
}

func (s VendorService) List(ctx context.Context, category string) ([]models.Vendor, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if !validCategory(category) {
		return nil, domain.ValidationError{Field: "category", Msg: "must be fuel, spare or both"}
	}
	return s.repo().List(ctx, category)
}

// LedgerView is the vendor ledger plus in-trip fuel bought from the vendor.
type LedgerView struct {
	finance.VendorLedger
	TripFuelCost money.Money `json:"trip_fuel_cost"`
}

func (s VendorService) Ledger(ctx context.Context, vendorID int64) (LedgerView, error) {
	v, err := s.repo().GetByID(ctx, vendorID)
	if err != nil {
		return LedgerView{}, err
	}
	snap, err := loadSnapshot(ctx, s.DB)
	if err != nil {
		return LedgerView{}, err
	}
	payments, err := s.repo().ListPayments(ctx, vendorID)
	if err != nil {
		return LedgerView{}, err
	}

	l := finance.ComputeVendorLedger(v, snap.Fuel, snap.Spares, payments)
	logIssues(s.RequestID, "vendor", l.Issues)
	return LedgerView{
		VendorLedger: l,
		TripFuelCost: finance.VendorTripFuelCost(v, snap.Trips),
	}, nil
}

func (s VendorService) RecordPayment(ctx context.Context, p models.VendorPayment) (models.VendorPayment, error) {
	if _, err := s.repo().GetByID(ctx, p.VendorID); err != nil {
		return models.VendorPayment{}, err
	}
	if err := requirePositive("amount", p.Amount); err != nil {
		return models.VendorPayment{}, err
	}
	if p.PaidOn.IsZero() {
		p.PaidOn = models.DateOf(time.Now())
	}
	p.Notes = strings.TrimSpace(p.Notes)

	id, err := s.repo().CreatePayment(ctx, p)
	if err != nil {
		return models.VendorPayment{}, err
	}
	p.ID = id
	utils.LogEvent(s.RequestID, "vendor", "payment", utils.KV("vendor_id", p.VendorID, "amount", p.Amount))
	return p, nil
}

func (s VendorService) ListPayments(ctx context.Context, vendorID int64) ([]models.VendorPayment, error) {
	if _, err := s.repo().GetByID(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.repo().ListPayments(ctx, vendorID)
}

func (s VendorService) DeletePayment(ctx context.Context, id int64) error {
	if err := s.repo().DeletePayment(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "vendor", "delete_payment", utils.KV("id", id))
	return nil
}
