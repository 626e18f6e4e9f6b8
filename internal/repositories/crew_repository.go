package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

type DriverSalaryRepository struct {
	DB *sql.DB
}

func (r DriverSalaryRepository) conn() conn { return conn{DB: r.DB} }

func (r DriverSalaryRepository) Create(ctx context.Context, s models.DriverSalary) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO driver_salaries (driver_id, amount, paid_on, notes, created_at)
		VALUES (?,?,?,?,NOW())`,
		s.DriverID, s.Amount, s.PaidOn, intdb.NullIfEmpty(s.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert driver salary: %w", err)
	}
	return res.LastInsertId()
}

// ListByDriver returns the driver's payouts, latest first.
func (r DriverSalaryRepository) ListByDriver(ctx context.Context, driverID int64) ([]models.DriverSalary, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT id, driver_id, amount, paid_on, COALESCE(notes,''), created_at
		FROM driver_salaries
		WHERE driver_id=?
		ORDER BY paid_on DESC, id DESC`, driverID)
	if err != nil {
		return nil, fmt.Errorf("list driver salaries: %w", err)
	}
	defer rows.Close()

	out := []models.DriverSalary{}
	for rows.Next() {
		var s models.DriverSalary
		if err := rows.Scan(&s.ID, &s.DriverID, &s.Amount, &s.PaidOn, &s.Notes, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r DriverSalaryRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM driver_salaries WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete driver salary: %w", err)
	}
	return affectedOrNotFound(res, "driver salary", id)
}

type DriverExpenseRepository struct {
	DB *sql.DB
}

func (r DriverExpenseRepository) conn() conn { return conn{DB: r.DB} }

const driverExpenseColumns = `id, trip_id, driver_id, description, amount, COALESCE(notes,''), created_at, updated_at`

func scanDriverExpense(row rowScanner) (models.DriverExpense, error) {
	var (
		e       models.DriverExpense
		updated sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.TripID, &e.DriverID, &e.Description, &e.Amount, &e.Notes, &e.CreatedAt, &updated); err != nil {
		return models.DriverExpense{}, err
	}
	e.UpdatedAt = optionalTime(updated)
	return e, nil
}

func (r DriverExpenseRepository) Create(ctx context.Context, e models.DriverExpense) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO driver_expenses (trip_id, driver_id, description, amount, notes, created_at)
		VALUES (?,?,?,?,?,NOW())`,
		e.TripID, e.DriverID, e.Description, e.Amount, intdb.NullIfEmpty(e.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert driver expense: %w", err)
	}
	return res.LastInsertId()
}

func (r DriverExpenseRepository) GetByID(ctx context.Context, id int64) (models.DriverExpense, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.DriverExpense{}, err
	}
	e, err := scanDriverExpense(q.QueryRowContext(ctx, `SELECT `+driverExpenseColumns+` FROM driver_expenses WHERE id=?`, id))
	if err != nil {
		return models.DriverExpense{}, notFound(err, "driver expense", id)
	}
	return e, nil
}

func (r DriverExpenseRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.DriverExpense, error) {
	return r.list(ctx, `trip_id=?`, tripID)
}

func (r DriverExpenseRepository) ListByDriver(ctx context.Context, driverID int64) ([]models.DriverExpense, error) {
	return r.list(ctx, `driver_id=?`, driverID)
}

func (r DriverExpenseRepository) list(ctx context.Context, where string, arg int64) ([]models.DriverExpense, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT `+driverExpenseColumns+` FROM driver_expenses WHERE `+where+` ORDER BY created_at DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list driver expenses: %w", err)
	}
	defer rows.Close()

	out := []models.DriverExpense{}
	for rows.Next() {
		e, err := scanDriverExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r DriverExpenseRepository) Update(ctx context.Context, e models.DriverExpense) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `
		UPDATE driver_expenses SET description=?, amount=?, notes=?, updated_at=NOW()
		WHERE id=?`,
		e.Description, e.Amount, intdb.NullIfEmpty(e.Notes), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update driver expense: %w", err)
	}
	return affectedOrNotFound(res, "driver expense", e.ID)
}

func (r DriverExpenseRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM driver_expenses WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete driver expense: %w", err)
	}
	return affectedOrNotFound(res, "driver expense", id)
}

type VehicleNoteRepository struct {
	DB *sql.DB
}

func (r VehicleNoteRepository) conn() conn { return conn{DB: r.DB} }

func (r VehicleNoteRepository) Create(ctx context.Context, n models.VehicleNote) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO vehicle_notes (vehicle_id, note, note_date, created_by, created_at)
		VALUES (?,?,?,?,NOW())`,
		n.VehicleID, n.Note, n.NoteDate, intdb.NullIfZeroID(n.CreatedBy),
	)
	if err != nil {
		return 0, fmt.Errorf("insert vehicle note: %w", err)
	}
	return res.LastInsertId()
}

// ListBetween returns the vehicle's notes dated within [from, to], oldest first.
func (r VehicleNoteRepository) ListBetween(ctx context.Context, vehicleID int64, from, to models.Date) ([]models.VehicleNote, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `
		SELECT id, vehicle_id, note, note_date, created_by, created_at
		FROM vehicle_notes
		WHERE vehicle_id=? AND note_date BETWEEN ? AND ?
		ORDER BY note_date ASC, id ASC`, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list vehicle notes: %w", err)
	}
	defer rows.Close()

	out := []models.VehicleNote{}
	for rows.Next() {
		var (
			n  models.VehicleNote
			by sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.VehicleID, &n.Note, &n.NoteDate, &by, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.CreatedBy = optionalID(by)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r VehicleNoteRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM vehicle_notes WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle note: %w", err)
	}
	return affectedOrNotFound(res, "vehicle note", id)
}
