package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fleetops/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r TripRepository) conn() conn { return conn{DB: r.DB, Tx: r.Tx} }

// WithTx scopes the repository to tx.
func (r TripRepository) WithTx(tx *sql.Tx) TripRepository {
	return TripRepository{DB: r.DB, Tx: tx}
}

const tripColumns = `
	id,
	invoice_number,
	trip_date,
	departure_datetime,
	return_datetime,
	COALESCE(from_location,''),
	COALESCE(to_location,''),
	COALESCE(route_details,''),
	vehicle_number,
	driver_id,
	customer_id,
	distance_km,
	diesel_used,
	petrol_used,
	toll_amount,
	parking_amount,
	other_expenses,
	COALESCE(vendor,''),
	pricing_type,
	package_amount,
	cost_per_km,
	charged_toll_amount,
	charged_parking_amount,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var (
		t         models.Trip
		departure sql.NullTime
		ret       sql.NullTime
		updated   sql.NullTime
		pricing   string
	)
	err := row.Scan(
		&t.ID,
		&t.InvoiceNumber,
		&t.TripDate,
		&departure,
		&ret,
		&t.FromLocation,
		&t.ToLocation,
		&t.RouteDetails,
		&t.VehicleNumber,
		&t.DriverID,
		&t.CustomerID,
		&t.DistanceKM,
		&t.DieselUsed,
		&t.PetrolUsed,
		&t.TollAmount,
		&t.ParkingAmount,
		&t.OtherExpenses,
		&t.Vendor,
		&pricing,
		&t.PackageAmount,
		&t.CostPerKM,
		&t.ChargedTollAmount,
		&t.ChargedParkingAmount,
		&t.CreatedAt,
		&updated,
	)
	if err != nil {
		return models.Trip{}, err
	}
	t.PricingType = models.PricingType(pricing)
	t.DepartureAt = optionalTime(departure)
	t.ReturnAt = optionalTime(ret)
	t.UpdatedAt = optionalTime(updated)
	return t, nil
}

func tripArgs(t models.Trip) []any {
	return []any{
		t.InvoiceNumber,
		t.TripDate,
		t.DepartureAt,
		t.ReturnAt,
		t.FromLocation,
		t.ToLocation,
		t.RouteDetails,
		t.VehicleNumber,
		t.DriverID,
		t.CustomerID,
		t.DistanceKM,
		t.DieselUsed,
		t.PetrolUsed,
		t.TollAmount,
		t.ParkingAmount,
		t.OtherExpenses,
		t.Vendor,
		string(t.PricingType),
		t.PackageAmount,
		t.CostPerKM,
		t.ChargedTollAmount,
		t.ChargedParkingAmount,
	}
}

func (r TripRepository) Create(ctx context.Context, t models.Trip) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO trips (
			invoice_number, trip_date, departure_datetime, return_datetime,
			from_location, to_location, route_details,
			vehicle_number, driver_id, customer_id,
			distance_km, diesel_used, petrol_used, toll_amount, parking_amount, other_expenses, vendor,
			pricing_type, package_amount, cost_per_km, charged_toll_amount, charged_parking_amount,
			created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		tripArgs(t)...,
	)
	if err != nil {
		return 0, conflictOr(fmt.Errorf("insert trip: %w", err), "trip", "invoice number already used")
	}
	return res.LastInsertId()
}

// Update replaces every editable field of the trip.
func (r TripRepository) Update(ctx context.Context, t models.Trip) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	args := append(tripArgs(t), t.ID)
	res, err := q.ExecContext(ctx, `
		UPDATE trips SET
			invoice_number=?, trip_date=?, departure_datetime=?, return_datetime=?,
			from_location=?, to_location=?, route_details=?,
			vehicle_number=?, driver_id=?, customer_id=?,
			distance_km=?, diesel_used=?, petrol_used=?, toll_amount=?, parking_amount=?, other_expenses=?, vendor=?,
			pricing_type=?, package_amount=?, cost_per_km=?, charged_toll_amount=?, charged_parking_amount=?,
			updated_at=NOW()
		WHERE id=?`,
		args...,
	)
	if err != nil {
		return conflictOr(fmt.Errorf("update trip: %w", err), "trip", "invoice number already used")
	}
	return affectedOrNotFound(res, "trip", t.ID)
}

func (r TripRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return affectedOrNotFound(res, "trip", id)
}

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate locks the trip row until the surrounding transaction ends.
func (r TripRepository) GetByIDForUpdate(ctx context.Context, id int64) (models.Trip, error) {
	return r.get(ctx, id, true)
}

func (r TripRepository) get(ctx context.Context, id int64, lock bool) (models.Trip, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Trip{}, err
	}
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id=? LIMIT 1`
	if lock {
		query += ` FOR UPDATE`
	}
	t, err := scanTrip(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.Trip{}, notFound(err, "trip", id)
	}
	return t, nil
}

func (r TripRepository) List(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}

	where := []string{"1=1"}
	args := []any{}
	if v := strings.TrimSpace(f.VehicleNumber); v != "" {
		where = append(where, "vehicle_number=?")
		args = append(args, v)
	}
	if f.DriverID > 0 {
		where = append(where, "driver_id=?")
		args = append(args, f.DriverID)
	}
	if f.CustomerID > 0 {
		where = append(where, "customer_id=?")
		args = append(args, f.CustomerID)
	}
	if !f.From.IsZero() {
		where = append(where, "trip_date>=?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "trip_date<=?")
		args = append(args, f.To)
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE ` + strings.Join(where, " AND ") + ` ORDER BY trip_date DESC, id DESC`
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InvoiceNumberTaken reports whether another trip already uses invoice.
func (r TripRepository) InvoiceNumberTaken(ctx context.Context, invoice string, exceptID int64) (bool, error) {
	q, err := r.conn().q()
	if err != nil {
		return false, err
	}
	var n int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trips WHERE invoice_number=? AND id<>?`, invoice, exceptID,
	).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
