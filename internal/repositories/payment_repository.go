package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"fleetops/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r PaymentRepository) conn() conn { return conn{DB: r.DB, Tx: r.Tx} }

func (r PaymentRepository) WithTx(tx *sql.Tx) PaymentRepository {
	return PaymentRepository{DB: r.DB, Tx: tx}
}

const paymentColumns = `id, trip_id, payment_date, payment_mode, amount, COALESCE(notes,''), created_at`

func scanPayment(row rowScanner) (models.Payment, error) {
	var (
		p    models.Payment
		mode string
	)
	if err := row.Scan(&p.ID, &p.TripID, &p.PaymentDate, &mode, &p.Amount, &p.Notes, &p.CreatedAt); err != nil {
		return models.Payment{}, err
	}
	p.PaymentMode = models.PaymentMode(mode)
	return p, nil
}

func (r PaymentRepository) Create(ctx context.Context, p models.Payment) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO payments (trip_id, payment_date, payment_mode, amount, notes, created_at)
		VALUES (?,?,?,?,?,NOW())`,
		p.TripID, p.PaymentDate, string(p.PaymentMode), p.Amount, p.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(ctx context.Context, id int64) (models.Payment, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Payment{}, err
	}
	p, err := scanPayment(q.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.Payment{}, notFound(err, "payment", id)
	}
	return p, nil
}

func (r PaymentRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Payment, error) {
	return r.list(ctx, `WHERE trip_id=?`, tripID)
}

func (r PaymentRepository) ListAll(ctx context.Context) ([]models.Payment, error) {
	return r.list(ctx, ``)
}

func (r PaymentRepository) list(ctx context.Context, where string, args ...any) ([]models.Payment, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments `+where+` ORDER BY payment_date ASC, id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PaymentRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM payments WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return affectedOrNotFound(res, "payment", id)
}

// DeleteByTrip removes a trip's payments; used when the trip itself is deleted.
func (r PaymentRepository) DeleteByTrip(ctx context.Context, tripID int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM payments WHERE trip_id=?`, tripID); err != nil {
		return fmt.Errorf("delete trip payments: %w", err)
	}
	return nil
}
