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

// TripView is a trip with its derived billing figures.
type TripView struct {
	models.Trip
	finance.TripBalance
	TotalCost money.Money      `json:"total_cost"`
	Payments  []models.Payment `json:"payments,omitempty"`
}

func newTripView(t models.Trip, payments []models.Payment, withPayments bool) TripView {
	v := TripView{
		Trip:        t,
		TripBalance: finance.ComputeTripBalance(t, payments),
		TotalCost:   finance.ComputeTripCost(t),
	}
	if withPayments {
		v.Payments = payments
		if v.Payments == nil {
			v.Payments = []models.Payment{}
		}
	}
	return v
}

// TripInput is the create/update payload. AdvanceAmount, when set on create,
// is stored as the trip's first payment.
type TripInput struct {
	models.Trip
	AdvanceAmount money.Money `json:"advance_amount"`
}

type TripService struct {
	DB        *sql.DB
	RequestID string
}

func (s TripService) trips() repositories.TripRepository {
	return repositories.TripRepository{DB: s.DB}
}

func (s TripService) payments() repositories.PaymentRepository {
	return repositories.PaymentRepository{DB: s.DB}
}

func normalizeTrip(t *models.Trip) {
	t.InvoiceNumber = strings.TrimSpace(t.InvoiceNumber)
	t.VehicleNumber = utils.NormalizeVehicleNumber(t.VehicleNumber)
	t.FromLocation = utils.NormalizeSpace(t.FromLocation)
	t.ToLocation = utils.NormalizeSpace(t.ToLocation)
	t.Vendor = strings.TrimSpace(t.Vendor)
	if t.PricingType == "" {
		t.PricingType = models.PricingPerKM
	}
}

func validateTrip(t models.Trip) error {
	if err := firstErr(
		requireText("invoice_number", t.InvoiceNumber),
		requireText("vehicle_number", t.VehicleNumber),
	); err != nil {
		return err
	}
	if t.TripDate.IsZero() {
		return domain.ValidationError{Field: "trip_date", Msg: "is required"}
	}
	if t.DriverID <= 0 {
		return domain.ValidationError{Field: "driver_id", Msg: "is required"}
	}
	if t.CustomerID <= 0 {
		return domain.ValidationError{Field: "customer_id", Msg: "is required"}
	}
	if t.DistanceKM.IsNegative() {
		return domain.ValidationError{Field: "distance_km", Msg: "must not be negative"}
	}
	if err := firstErr(
		requireNonNegativeRate("cost_per_km", t.CostPerKM),
		requireNonNegative("package_amount", t.PackageAmount),
		requireNonNegative("charged_toll_amount", t.ChargedTollAmount),
		requireNonNegative("charged_parking_amount", t.ChargedParkingAmount),
		requireNonNegative("diesel_used", t.DieselUsed),
		requireNonNegative("petrol_used", t.PetrolUsed),
		requireNonNegative("toll_amount", t.TollAmount),
		requireNonNegative("parking_amount", t.ParkingAmount),
		requireNonNegative("other_expenses", t.OtherExpenses),
	); err != nil {
		return err
	}

	switch t.PricingType {
	case models.PricingPerKM:
		if !t.DistanceKM.IsPositive() {
			return domain.ValidationError{Field: "distance_km", Msg: "is required for per_km pricing"}
		}
	case models.PricingPackage:
		if t.PackageAmount.IsZero() {
			return domain.ValidationError{Field: "package_amount", Msg: "is required for package pricing"}
		}
	default:
		return domain.ValidationError{Field: "pricing_type", Msg: "must be per_km or package"}
	}
	if t.ReturnAt != nil && t.DepartureAt != nil && t.ReturnAt.Before(*t.DepartureAt) {
		return domain.ValidationError{Field: "return_datetime", Msg: "is before departure"}
	}
	return nil
}

// checkReferences confirms the vehicle, driver and customer exist.
func (s TripService) checkReferences(ctx context.Context, t models.Trip) error {
	if _, err := (repositories.VehicleRepository{DB: s.DB}).GetActive(ctx, t.VehicleNumber); err != nil {
		return err
	}
	if _, err := (repositories.DriverRepository{DB: s.DB}).GetByID(ctx, t.DriverID); err != nil {
		return err
	}
	if _, err := (repositories.CustomerRepository{DB: s.DB}).GetByID(ctx, t.CustomerID); err != nil {
		return err
	}
	return nil
}

func (s TripService) checkInvoice(ctx context.Context, invoice string, exceptID int64) error {
	taken, err := s.trips().InvoiceNumberTaken(ctx, invoice, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ConflictError{Resource: "trip", Msg: "invoice number already used"}
	}
	return nil
}

func (s TripService) Create(ctx context.Context, in TripInput) (TripView, error) {
	trip := in.Trip
	normalizeTrip(&trip)
	if err := validateTrip(trip); err != nil {
		return TripView{}, err
	}
	if err := requireNonNegative("advance_amount", in.AdvanceAmount); err != nil {
		return TripView{}, err
	}
	if in.AdvanceAmount > finance.ComputeTripCharge(trip) {
		return TripView{}, domain.ValidationError{Field: "advance_amount", Msg: "exceeds trip total"}
	}
	if err := s.checkReferences(ctx, trip); err != nil {
		return TripView{}, err
	}
	if err := s.checkInvoice(ctx, trip.InvoiceNumber, 0); err != nil {
		return TripView{}, err
	}

	var payments []models.Payment
	err := withTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		id, err := s.trips().WithTx(tx).Create(ctx, trip)
		if err != nil {
			return err
		}
		trip.ID = id
		trip.CreatedAt = time.Now()

		if in.AdvanceAmount.IsZero() {
			return nil
		}
		advance := models.Payment{
			TripID:      id,
			PaymentDate: trip.TripDate,
			PaymentMode: models.PaymentAdvance,
			Amount:      in.AdvanceAmount,
			Notes:       "advance at booking",
		}
		if advance.ID, err = s.payments().WithTx(tx).Create(ctx, advance); err != nil {
			return err
		}
		payments = append(payments, advance)
		return nil
	})
	if err != nil {
		return TripView{}, err
	}

	utils.LogEvent(s.RequestID, "trip", "create", utils.KV(
		"trip_id", trip.ID, "invoice", trip.InvoiceNumber, "advance", in.AdvanceAmount,
	))
	return newTripView(trip, payments, true), nil
}

// Update replaces the trip's fields. The new total may not fall below what
// has already been received.
func (s TripService) Update(ctx context.Context, id int64, in models.Trip) (TripView, error) {
	trip := in
	trip.ID = id
	normalizeTrip(&trip)
	if err := validateTrip(trip); err != nil {
		return TripView{}, err
	}

	var payments []models.Payment
	err := withTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		existing, err := s.trips().WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		trip.CreatedAt = existing.CreatedAt

		if err := s.checkReferences(ctx, trip); err != nil {
			return err
		}
		if err := s.checkInvoice(ctx, trip.InvoiceNumber, id); err != nil {
			return err
		}
		if payments, err = s.payments().WithTx(tx).ListByTrip(ctx, id); err != nil {
			return err
		}
		bal := finance.ComputeTripBalance(trip, payments)
		if bal.Received > bal.Total {
			return domain.ValidationError{Field: "total_charged", Msg: "below amount already received " + bal.Received.String()}
		}
		return s.trips().WithTx(tx).Update(ctx, trip)
	})
	if err != nil {
		return TripView{}, err
	}

	now := time.Now()
	trip.UpdatedAt = &now
	utils.LogEvent(s.RequestID, "trip", "update", utils.KV("trip_id", id))
	return newTripView(trip, payments, true), nil
}

// Delete removes a trip together with its payments.
func (s TripService) Delete(ctx context.Context, id int64) error {
	err := withTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		if _, err := s.trips().WithTx(tx).GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		if err := s.payments().WithTx(tx).DeleteByTrip(ctx, id); err != nil {
			return err
		}
		return s.trips().WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trip", "delete", utils.KV("trip_id", id))
	return nil
}

func (s TripService) Get(ctx context.Context, id int64) (TripView, error) {
	trip, err := s.trips().GetByID(ctx, id)
	if err != nil {
		return TripView{}, err
	}
	payments, err := s.payments().ListByTrip(ctx, id)
	if err != nil {
		return TripView{}, err
	}
	return newTripView(trip, payments, true), nil
}

func (s TripService) Balance(ctx context.Context, id int64) (finance.TripBalance, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return finance.TripBalance{}, err
	}
	return v.TripBalance, nil
}

func (s TripService) List(ctx context.Context, f models.TripFilter) ([]TripView, error) {
	f.VehicleNumber = utils.NormalizeVehicleNumber(f.VehicleNumber)
	trips, err := s.trips().List(ctx, f)
	if err != nil {
		return nil, err
	}
	all, err := s.payments().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byTrip := make(map[int64][]models.Payment, len(trips))
	for _, p := range all {
		byTrip[p.TripID] = append(byTrip[p.TripID], p)
	}

	out := make([]TripView, 0, len(trips))
	for _, t := range trips {
		out = append(out, newTripView(t, byTrip[t.ID], false))
	}
	return out, nil
}
