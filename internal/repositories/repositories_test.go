package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

var tripCols = []string{
	"id", "invoice_number", "trip_date", "departure_datetime", "return_datetime",
	"from_location", "to_location", "route_details",
	"vehicle_number", "driver_id", "customer_id",
	"distance_km", "diesel_used", "petrol_used", "toll_amount", "parking_amount", "other_expenses", "vendor",
	"pricing_type", "package_amount", "cost_per_km", "charged_toll_amount", "charged_parking_amount",
	"created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestTripRepository_GetByIDScansMoney(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	mock.ExpectQuery("FROM trips WHERE id=\\? LIMIT 1$").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(tripCols).AddRow(
			7, "INV-7", "2026-03-05", nil, nil,
			"Bengaluru", "Mysuru", "",
			"KA01", 1, 2,
			"100.000", "0.00", "0.00", "50.00", "0.00", "0.00", "",
			"per_km", "0.00", "15.00", "50.00", "0.00",
			created, nil,
		))

	trip, err := TripRepository{DB: db}.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !trip.CostPerKM.Equal(decimal.NewFromInt(15)) || !trip.DistanceKM.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected trip %+v", trip)
	}
	if trip.TripDate.String() != "2026-03-05" || trip.PricingType != models.PricingPerKM {
		t.Fatalf("unexpected trip date/pricing %s %s", trip.TripDate, trip.PricingType)
	}
	if trip.DepartureAt != nil || trip.UpdatedAt != nil {
		t.Fatalf("NULL datetimes should scan to nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM trips WHERE id=\\?").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(tripCols))

	_, err := TripRepository{DB: db}.GetByID(context.Background(), 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestTripRepository_ForUpdateUsesTx(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("FROM trips WHERE id=\\? LIMIT 1 FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(tripCols).AddRow(
			3, "INV-3", "2026-03-05", nil, nil, "", "", "", "KA01", 1, 2,
			"0", "0", "0", "0", "0", "0", "", "package", "5000.00", "0", "0", "0",
			time.Now(), nil,
		))
	mock.ExpectRollback()

	tx, err := BeginTx(context.Background(), db)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	trip, err := TripRepository{DB: db}.WithTx(tx).GetByIDForUpdate(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	_ = tx.Rollback()
	if trip.PackageAmount != money.FromRupees(5000) {
		t.Fatalf("package = %s", trip.PackageAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepository_ListFilters(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND vehicle_number=? AND customer_id=? ORDER BY trip_date DESC")).
		WithArgs("KA01", int64(4)).
		WillReturnRows(sqlmock.NewRows(tripCols))

	trips, err := TripRepository{DB: db}.List(context.Background(), models.TripFilter{VehicleNumber: " KA01 ", CustomerID: 4})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if trips == nil || len(trips) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", trips)
	}
}

func TestTripRepository_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM trips WHERE id=\\?").WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (TripRepository{DB: db}).Delete(context.Background(), 5); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestPaymentRepository_CreateAndList(t *testing.T) {
	db, mock := newMock(t)
	paidAt := time.Date(2026, 3, 6, 0, 0, 0, 0, time.Local)

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(7), "2026-03-06", "upi", "600.00", "first").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("FROM payments WHERE trip_id=\\?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "payment_date", "payment_mode", "amount", "notes", "created_at"}).
			AddRow(11, 7, paidAt, "upi", "600.00", "first", paidAt))

	repo := PaymentRepository{DB: db}
	id, err := repo.Create(context.Background(), models.Payment{
		TripID: 7, PaymentDate: models.DateOf(paidAt), PaymentMode: models.PaymentUPI, Amount: money.FromRupees(600), Notes: "first",
	})
	if err != nil || id != 11 {
		t.Fatalf("Create = %d, %v", id, err)
	}
	ps, err := repo.ListByTrip(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByTrip: %v", err)
	}
	if len(ps) != 1 || ps[0].Amount != money.FromRupees(600) || ps[0].PaymentMode != models.PaymentUPI {
		t.Fatalf("unexpected payments %+v", ps)
	}
}

func TestFuelRepository_NullVendorID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM fuel_entries WHERE vehicle_number=\\?").
		WithArgs("KA01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_number", "fuel_type", "quantity", "rate_per_litre", "total_cost", "vendor_id", "vendor", "filled_date", "created_at"}).
			AddRow(1, "KA01", "diesel", "40.500", "95.00", "3847.50", nil, "XYZ Diesel", "2026-03-06", time.Now()).
			AddRow(2, "KA01", "petrol", "10.000", "105.00", "1050.00", 4, "", "2026-03-07", time.Now()))

	entries, err := FuelRepository{DB: db}.List(context.Background(), "KA01")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries[0].VendorID != nil || entries[0].Vendor != "XYZ Diesel" {
		t.Fatalf("legacy row should keep name only: %+v", entries[0])
	}
	if entries[1].VendorID == nil || *entries[1].VendorID != 4 {
		t.Fatalf("vendor id not scanned: %+v", entries[1])
	}
	if entries[0].TotalCost != money.FromMinor(384750) {
		t.Fatalf("total = %s", entries[0].TotalCost)
	}
}

func TestVendorRepository_DuplicateNameIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO vendors").
		WithArgs("XYZ Diesel", "fuel").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'XYZ Diesel'"})

	_, err := VendorRepository{DB: db}.Create(context.Background(), models.Vendor{Name: "XYZ Diesel", Category: "fuel"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestTripRepository_DuplicateInvoiceIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO trips").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'INV-7' for key 'uq_trips_invoice'"})
	mock.ExpectExec("UPDATE trips SET").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'INV-7' for key 'uq_trips_invoice'"})

	repo := TripRepository{DB: db}
	if _, err := repo.Create(context.Background(), models.Trip{InvoiceNumber: "INV-7"}); !domain.IsConflict(err) {
		t.Fatalf("Create: expected ConflictError, got %v", err)
	}
	if err := repo.Update(context.Background(), models.Trip{ID: 8, InvoiceNumber: "INV-7"}); !domain.IsConflict(err) {
		t.Fatalf("Update: expected ConflictError, got %v", err)
	}
}

func TestVehicleRepository_DuplicateActiveNumberIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO vehicles").WithArgs("KA01AB1234").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'KA01AB1234' for key 'uq_vehicles_active_number'"})

	_, err := VehicleRepository{DB: db}.Create(context.Background(), "KA01AB1234")
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestVendorRepository_ListCategoryIncludesUncategorized(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE category IS NULL OR category='' OR category=? OR category=?")).
		WithArgs("fuel", "both").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category"}).
			AddRow(1, "ABC", "").
			AddRow(2, "XYZ", "fuel"))

	vs, err := VendorRepository{DB: db}.List(context.Background(), "fuel")
	if err != nil || len(vs) != 2 {
		t.Fatalf("List = %v, %v", vs, err)
	}
}

func TestVehicleRepository_SoftDelete(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles SET is_deleted=1, deleted_at=NOW() WHERE id=? AND is_deleted=0")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vehicles SET is_deleted=1").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := VehicleRepository{DB: db}
	if err := repo.SoftDelete(context.Background(), 2); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if err := repo.SoftDelete(context.Background(), 2); !domain.IsNotFound(err) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
}

func TestUserRepository_GetByUsernameNormalizesRole(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE username=\\?").
		WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
			AddRow(1, "root", "$2a$10$hash", " Admin ", time.Now()))

	u, err := UserRepository{DB: db}.GetByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Fatalf("role = %q", u.Role)
	}
}
