package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// DriverSalaryService records salary payouts per driver.
type DriverSalaryService struct {
	DB        *sql.DB
	RequestID string

	now func() time.Time
}

func (s DriverSalaryService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s DriverSalaryService) Record(ctx context.Context, sal models.DriverSalary) (models.DriverSalary, error) {
	if sal.DriverID <= 0 {
		return models.DriverSalary{}, domain.ValidationError{Field: "driver_id", Msg: "is required"}
	}
	if err := requirePositive("amount", sal.Amount); err != nil {
		return models.DriverSalary{}, err
	}
	sal.Notes = strings.TrimSpace(sal.Notes)
	if sal.PaidOn.IsZero() {
		sal.PaidOn = models.DateOf(s.clock())
	}
	if _, err := (repositories.DriverRepository{DB: s.DB}).GetByID(ctx, sal.DriverID); err != nil {
		return models.DriverSalary{}, err
	}
	id, err := repositories.DriverSalaryRepository{DB: s.DB}.Create(ctx, sal)
	if err != nil {
		return models.DriverSalary{}, err
	}
	sal.ID = id
	sal.CreatedAt = s.clock()
	utils.LogEvent(s.RequestID, "driver_salary", "record", utils.KV("id", id, "driver_id", sal.DriverID, "amount", sal.Amount))
	return sal, nil
}

// DriverSalaries is a driver's payout history with its total.
type DriverSalaries struct {
	DriverID int64                 `json:"driver_id"`
	Salaries []models.DriverSalary `json:"salaries"`
	Total    money.Money           `json:"total"`
}

func (s DriverSalaryService) ListByDriver(ctx context.Context, driverID int64) (DriverSalaries, error) {
	if _, err := (repositories.DriverRepository{DB: s.DB}).GetByID(ctx, driverID); err != nil {
		return DriverSalaries{}, err
	}
	rows, err := repositories.DriverSalaryRepository{DB: s.DB}.ListByDriver(ctx, driverID)
	if err != nil {
		return DriverSalaries{}, err
	}
	out := DriverSalaries{DriverID: driverID, Salaries: rows}
	for _, r := range rows {
		out.Total = out.Total.Add(r.Amount)
	}
	return out, nil
}

func (s DriverSalaryService) Delete(ctx context.Context, id int64) error {
	if err := (repositories.DriverSalaryRepository{DB: s.DB}).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "driver_salary", "delete", utils.KV("id", id))
	return nil
}

// DriverExpenseService tracks what drivers spend on the road per trip.
type DriverExpenseService struct {
	DB        *sql.DB
	RequestID string
}

// DriverExpenses is a list of expenses with their total.
type DriverExpenses struct {
	Expenses []models.DriverExpense `json:"expenses"`
	Total    money.Money            `json:"total"`
}

func totalDriverExpenses(rows []models.DriverExpense) DriverExpenses {
	out := DriverExpenses{Expenses: rows}
	for _, r := range rows {
		out.Total = out.Total.Add(r.Amount)
	}
	return out
}

func validateDriverExpense(e *models.DriverExpense) error {
	e.Description = utils.NormalizeSpace(e.Description)
	e.Notes = strings.TrimSpace(e.Notes)
	return firstErr(
		requireText("description", e.Description),
		requirePositive("amount", e.Amount),
	)
}

// Create stores an expense against a trip. Without an explicit driver the
// trip's own driver is charged.
func (s DriverExpenseService) Create(ctx context.Context, e models.DriverExpense) (models.DriverExpense, error) {
	if e.TripID <= 0 {
		return models.DriverExpense{}, domain.ValidationError{Field: "trip_id", Msg: "is required"}
	}
	if err := validateDriverExpense(&e); err != nil {
		return models.DriverExpense{}, err
	}
	trip, err := repositories.TripRepository{DB: s.DB}.GetByID(ctx, e.TripID)
	if err != nil {
		return models.DriverExpense{}, err
	}
	if e.DriverID == 0 {
		e.DriverID = trip.DriverID
	}
	if e.DriverID <= 0 {
		return models.DriverExpense{}, domain.ValidationError{Field: "driver_id", Msg: "is required"}
	}
	if _, err := (repositories.DriverRepository{DB: s.DB}).GetByID(ctx, e.DriverID); err != nil {
		return models.DriverExpense{}, err
	}
	id, err := repositories.DriverExpenseRepository{DB: s.DB}.Create(ctx, e)
	if err != nil {
		return models.DriverExpense{}, err
	}
	e.ID = id
	e.CreatedAt = time.Now()
	utils.LogEvent(s.RequestID, "driver_expense", "create", utils.KV("id", id, "trip_id", e.TripID, "amount", e.Amount))
	return e, nil
}

func (s DriverExpenseService) Get(ctx context.Context, id int64) (models.DriverExpense, error) {
	return repositories.DriverExpenseRepository{DB: s.DB}.GetByID(ctx, id)
}

// Update applies a partial edit. Trip and driver cannot be changed.
func (s DriverExpenseService) Update(ctx context.Context, id int64, patch models.DriverExpensePatch) (models.DriverExpense, error) {
	repo := repositories.DriverExpenseRepository{DB: s.DB}
	cur, err := repo.GetByID(ctx, id)
	if err != nil {
		return models.DriverExpense{}, err
	}
	next := patch.Apply(cur)
	if err := validateDriverExpense(&next); err != nil {
		return models.DriverExpense{}, err
	}
	if err := repo.Update(ctx, next); err != nil {
		return models.DriverExpense{}, err
	}
	now := time.Now()
	next.UpdatedAt = &now
	utils.LogEvent(s.RequestID, "driver_expense", "update", utils.KV("id", id))
	return next, nil
}

func (s DriverExpenseService) Delete(ctx context.Context, id int64) error {
	if err := (repositories.DriverExpenseRepository{DB: s.DB}).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "driver_expense", "delete", utils.KV("id", id))
	return nil
}

func (s DriverExpenseService) ListByTrip(ctx context.Context, tripID int64) (DriverExpenses, error) {
	if _, err := (repositories.TripRepository{DB: s.DB}).GetByID(ctx, tripID); err != nil {
		return DriverExpenses{}, err
	}
	rows, err := repositories.DriverExpenseRepository{DB: s.DB}.ListByTrip(ctx, tripID)
	if err != nil {
		return DriverExpenses{}, err
	}
	return totalDriverExpenses(rows), nil
}

func (s DriverExpenseService) ListByDriver(ctx context.Context, driverID int64) (DriverExpenses, error) {
	if _, err := (repositories.DriverRepository{DB: s.DB}).GetByID(ctx, driverID); err != nil {
		return DriverExpenses{}, err
	}
	rows, err := repositories.DriverExpenseRepository{DB: s.DB}.ListByDriver(ctx, driverID)
	if err != nil {
		return DriverExpenses{}, err
	}
	return totalDriverExpenses(rows), nil
}

// VehicleNoteService keeps dated remarks per vehicle.
type VehicleNoteService struct {
	DB        *sql.DB
	RequestID string
}

// Create adds a note to an active vehicle. createdBy is the session user,
// zero when unknown.
func (s VehicleNoteService) Create(ctx context.Context, n models.VehicleNote, createdBy int64) (models.VehicleNote, error) {
	if n.VehicleID <= 0 {
		return models.VehicleNote{}, domain.ValidationError{Field: "vehicle_id", Msg: "is required"}
	}
	n.Note = strings.TrimSpace(n.Note)
	if err := requireText("note", n.Note); err != nil {
		return models.VehicleNote{}, err
	}
	if n.NoteDate.IsZero() {
		return models.VehicleNote{}, domain.ValidationError{Field: "note_date", Msg: "is required"}
	}
	v, err := repositories.VehicleRepository{DB: s.DB}.GetByID(ctx, n.VehicleID)
	if err != nil {
		return models.VehicleNote{}, err
	}
	if v.IsDeleted {
		return models.VehicleNote{}, domain.ValidationError{Field: "vehicle_id", Msg: "vehicle " + v.VehicleNumber + " is deleted"}
	}
	n.CreatedBy = nil
	if createdBy > 0 {
		n.CreatedBy = &createdBy
	}
	id, err := repositories.VehicleNoteRepository{DB: s.DB}.Create(ctx, n)
	if err != nil {
		return models.VehicleNote{}, err
	}
	n.ID = id
	n.CreatedAt = time.Now()
	utils.LogEvent(s.RequestID, "vehicle_note", "create", utils.KV("id", id, "vehicle_id", n.VehicleID))
	return n, nil
}

// ListForMonth returns the vehicle's notes dated within month, oldest first.
func (s VehicleNoteService) ListForMonth(ctx context.Context, vehicleID int64, month domain.YearMonth) ([]models.VehicleNote, error) {
	if vehicleID <= 0 {
		return nil, domain.ValidationError{Field: "vehicle_id", Msg: "is required"}
	}
	start := month.Start(time.Local)
	from := models.DateOf(start)
	to := models.DateOf(start.AddDate(0, 1, -1))
	return repositories.VehicleNoteRepository{DB: s.DB}.ListBetween(ctx, vehicleID, from, to)
}

func (s VehicleNoteService) Delete(ctx context.Context, id int64) error {
	if err := (repositories.VehicleNoteRepository{DB: s.DB}).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "vehicle_note", "delete", utils.KV("id", id))
	return nil
}
