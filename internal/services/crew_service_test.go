package services

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"

	"github.com/DATA-DOG/go-sqlmock"
)

var (
	driverCols        = []string{"id", "name", "phone", "license_number"}
	driverExpenseCols = []string{"id", "trip_id", "driver_id", "description", "amount", "notes", "created_at", "updated_at"}
	vehicleCols       = []string{"id", "vehicle_number", "is_deleted", "deleted_at", "created_at"}
)

func TestDriverSalaryServiceRecordDefaultsPaidOn(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 3, 6, 18, 30, 0, 0, time.Local)

	mock.ExpectQuery("FROM drivers WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(driverCols).AddRow(1, "Ravi", "", ""))
	mock.ExpectExec("INSERT INTO driver_salaries").
		WithArgs(int64(1), "2500.00", "2026-03-06", nil).
		WillReturnResult(sqlmock.NewResult(4, 1))

	svc := DriverSalaryService{DB: db, now: func() time.Time { return now }}
	out, err := svc.Record(context.Background(), models.DriverSalary{DriverID: 1, Amount: money.FromRupees(2500), Notes: "  "})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if out.ID != 4 || out.PaidOn.String() != "2026-03-06" {
		t.Fatalf("unexpected salary %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDriverSalaryServiceRejectsZeroAmount(t *testing.T) {
	_, err := DriverSalaryService{}.Record(context.Background(), models.DriverSalary{DriverID: 1})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDriverSalaryServiceUnknownDriver(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM drivers WHERE id=\\?").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(driverCols))

	_, err := DriverSalaryService{DB: db}.Record(context.Background(), models.DriverSalary{DriverID: 9, Amount: money.FromRupees(10)})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDriverSalaryServiceListTotals(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM drivers WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(driverCols).AddRow(1, "Ravi", "", ""))
	mock.ExpectQuery("FROM driver_salaries").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "driver_id", "amount", "paid_on", "notes", "created_at"}).
			AddRow(2, 1, "12000.00", "2026-03-01", "", time.Now()).
			AddRow(1, 1, "11500.50", "2026-02-01", "advance", time.Now()))

	out, err := DriverSalaryService{DB: db}.ListByDriver(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByDriver returned error: %v", err)
	}
	if len(out.Salaries) != 2 || out.Total != money.FromMinor(2350050) {
		t.Fatalf("unexpected salaries %+v", out)
	}
}

func TestDriverSalaryServiceDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM driver_salaries WHERE id=\\?").WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (DriverSalaryService{DB: db}).Delete(context.Background(), 8); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDriverExpenseServiceCreateDefaultsToTripDriver(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM trips WHERE id=\\? LIMIT 1").WithArgs(int64(7)).WillReturnRows(perKMRow())
	mock.ExpectQuery("FROM drivers WHERE id=\\?").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(driverCols).AddRow(1, "Ravi", "", ""))
	mock.ExpectExec("INSERT INTO driver_expenses").
		WithArgs(int64(7), int64(1), "Police fine", "200.00", nil).
		WillReturnResult(sqlmock.NewResult(5, 1))

	out, err := DriverExpenseService{DB: db}.Create(context.Background(), models.DriverExpense{
		TripID: 7, Description: " Police   fine ", Amount: money.FromRupees(200),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if out.ID != 5 || out.DriverID != 1 {
		t.Fatalf("unexpected expense %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDriverExpenseServiceRequiresDescription(t *testing.T) {
	_, err := DriverExpenseService{}.Create(context.Background(), models.DriverExpense{TripID: 7, Amount: money.FromRupees(5)})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDriverExpenseServiceUpdateKeepsUnsentFields(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM driver_expenses WHERE id=\\?").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(driverExpenseCols).AddRow(5, 7, 1, "Toll", "100.00", "keep", time.Now(), nil))
	mock.ExpectExec("UPDATE driver_expenses SET").
		WithArgs("Toll", "150.00", "keep", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	amount := money.FromRupees(150)
	out, err := DriverExpenseService{DB: db}.Update(context.Background(), 5, models.DriverExpensePatch{Amount: &amount})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if out.Description != "Toll" || out.Amount != amount || out.TripID != 7 || out.UpdatedAt == nil {
		t.Fatalf("unexpected expense %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDriverExpenseServiceUpdateRejectsBlankDescription(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM driver_expenses WHERE id=\\?").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(driverExpenseCols).AddRow(5, 7, 1, "Toll", "100.00", "", time.Now(), nil))

	blank := "   "
	_, err := DriverExpenseService{DB: db}.Update(context.Background(), 5, models.DriverExpensePatch{Description: &blank})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDriverExpenseServiceListByTripTotals(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM trips WHERE id=\\? LIMIT 1").WithArgs(int64(7)).WillReturnRows(perKMRow())
	mock.ExpectQuery("FROM driver_expenses WHERE trip_id=\\?").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(driverExpenseCols).
			AddRow(2, 7, 1, "Tea", "40.00", "", time.Now(), nil).
			AddRow(1, 7, 1, "Fine", "500.00", "", time.Now(), nil))

	out, err := DriverExpenseService{DB: db}.ListByTrip(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByTrip returned error: %v", err)
	}
	if len(out.Expenses) != 2 || out.Total != money.FromRupees(540) {
		t.Fatalf("unexpected expenses %+v", out)
	}
}

func TestVehicleNoteServiceCreate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM vehicles\\s+WHERE id=\\?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(vehicleCols).AddRow(3, "KA01AB1234", false, nil, time.Now()))
	mock.ExpectExec("INSERT INTO vehicle_notes").
		WithArgs(int64(3), "Tyre rotation due", "2026-02-14", int64(9)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	out, err := VehicleNoteService{DB: db}.Create(context.Background(), models.VehicleNote{
		VehicleID: 3, Note: " Tyre rotation due ", NoteDate: models.NewDate(2026, time.February, 14),
	}, 9)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if out.ID != 11 || out.CreatedBy == nil || *out.CreatedBy != 9 {
		t.Fatalf("unexpected note %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVehicleNoteServiceRejectsDeletedVehicle(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM vehicles\\s+WHERE id=\\?").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(vehicleCols).AddRow(3, "KA01AB1234", true, time.Now(), time.Now()))

	_, err := VehicleNoteService{DB: db}.Create(context.Background(), models.VehicleNote{
		VehicleID: 3, Note: "sold", NoteDate: models.NewDate(2026, time.February, 14),
	}, 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestVehicleNoteServiceRequiresNoteDate(t *testing.T) {
	_, err := VehicleNoteService{}.Create(context.Background(), models.VehicleNote{VehicleID: 3, Note: "x"}, 0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestVehicleNoteServiceListForMonthBounds(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM vehicle_notes").
		WithArgs(int64(3), "2026-02-01", "2026-02-28").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "note", "note_date", "created_by", "created_at"}).
			AddRow(1, 3, "Service", "2026-02-03", nil, time.Now()).
			AddRow(2, 3, "Insurance", "2026-02-28", 9, time.Now()))

	out, err := VehicleNoteService{DB: db}.ListForMonth(context.Background(), 3, domain.YearMonth{Year: 2026, Month: time.February})
	if err != nil {
		t.Fatalf("ListForMonth returned error: %v", err)
	}
	if len(out) != 2 || out[0].CreatedBy != nil || out[1].CreatedBy == nil || *out[1].CreatedBy != 9 {
		t.Fatalf("unexpected notes %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
