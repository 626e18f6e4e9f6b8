package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

type VendorRepository struct {
	DB *sql.DB
}

func (r VendorRepository) conn() conn { return conn{DB: r.DB} }

func (r VendorRepository) Create(ctx context.Context, v models.Vendor) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `INSERT INTO vendors (name, category) VALUES (?,?)`, v.Name, intdb.NullIfEmpty(v.Category))
	if err != nil {
		return 0, conflictOr(fmt.Errorf("insert vendor: %w", err), "vendor", "name already exists")
	}
	return res.LastInsertId()
}

func (r VendorRepository) GetByID(ctx context.Context, id int64) (models.Vendor, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Vendor{}, err
	}
	var v models.Vendor
	if err := q.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(category,'') FROM vendors WHERE id=? LIMIT 1`, id,
	).Scan(&v.ID, &v.Name, &v.Category); err != nil {
		return models.Vendor{}, notFound(err, "vendor", id)
	}
	return v, nil
}

// List returns vendors usable for category: uncategorized vendors and vendors
// tagged "both" are included for any category filter.
func (r VendorRepository) List(ctx context.Context, category string) ([]models.Vendor, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	query := `SELECT id, name, COALESCE(category,'') FROM vendors`
	args := []any{}
	if c := strings.TrimSpace(category); c != "" {
		query += ` WHERE category IS NULL OR category='' OR category=? OR category=?`
		args = append(args, c, models.VendorCategoryBoth)
	}
	query += ` ORDER BY name ASC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	out := []models.Vendor{}
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Category); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VendorRepository) CreatePayment(ctx context.Context, p models.VendorPayment) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO vendor_payments (vendor_id, amount, paid_on, notes, created_at)
		VALUES (?,?,?,?,NOW())`,
		p.VendorID, p.Amount, p.PaidOn, intdb.NullIfEmpty(p.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert vendor payment: %w", err)
	}
	return res.LastInsertId()
}

// ListPayments returns payments for one vendor, or all when vendorID is 0.
func (r VendorRepository) ListPayments(ctx context.Context, vendorID int64) ([]models.VendorPayment, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	query := `SELECT id, vendor_id, amount, paid_on, COALESCE(notes,''), created_at FROM vendor_payments`
	args := []any{}
	if vendorID > 0 {
		query += ` WHERE vendor_id=?`
		args = append(args, vendorID)
	}
	query += ` ORDER BY paid_on DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendor payments: %w", err)
	}
	defer rows.Close()

	out := []models.VendorPayment{}
	for rows.Next() {
		var p models.VendorPayment
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Amount, &p.PaidOn, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r VendorRepository) DeletePayment(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM vendor_payments WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete vendor payment: %w", err)
	}
	return affectedOrNotFound(res, "vendor payment", id)
}
