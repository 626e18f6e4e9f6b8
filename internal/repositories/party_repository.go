package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) conn() conn { return conn{DB: r.DB} }

func (r VehicleRepository) Create(ctx context.Context, vehicleNumber string) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `INSERT INTO vehicles (vehicle_number, is_deleted, created_at) VALUES (?,0,NOW())`, vehicleNumber)
	if err != nil {
		return 0, conflictOr(fmt.Errorf("insert vehicle: %w", err), "vehicle", "vehicle "+vehicleNumber+" already exists")
	}
	return res.LastInsertId()
}

// GetActive finds a non-deleted vehicle by registration number.
func (r VehicleRepository) GetActive(ctx context.Context, vehicleNumber string) (models.Vehicle, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Vehicle{}, err
	}
	var (
		v       models.Vehicle
		deleted sql.NullTime
	)
	if err := q.QueryRowContext(ctx, `
		SELECT id, vehicle_number, is_deleted, deleted_at, created_at
		FROM vehicles
		WHERE vehicle_number=? AND is_deleted=0
		LIMIT 1`, vehicleNumber,
	).Scan(&v.ID, &v.VehicleNumber, &v.IsDeleted, &deleted, &v.CreatedAt); err != nil {
		return models.Vehicle{}, notFound(err, "vehicle", vehicleNumber)
	}
	v.DeletedAt = optionalTime(deleted)
	return v, nil
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Vehicle{}, err
	}
	var (
		v       models.Vehicle
		deleted sql.NullTime
	)
	if err := q.QueryRowContext(ctx, `
		SELECT id, vehicle_number, is_deleted, deleted_at, created_at
		FROM vehicles
		WHERE id=?`, id,
	).Scan(&v.ID, &v.VehicleNumber, &v.IsDeleted, &deleted, &v.CreatedAt); err != nil {
		return models.Vehicle{}, notFound(err, "vehicle", id)
	}
	v.DeletedAt = optionalTime(deleted)
	return v, nil
}

// List returns vehicles; tombstoned ones only when includeDeleted is set.
func (r VehicleRepository) List(ctx context.Context, includeDeleted bool) ([]models.Vehicle, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	query := `SELECT id, vehicle_number, is_deleted, deleted_at, created_at FROM vehicles`
	if !includeDeleted {
		query += ` WHERE is_deleted=0`
	}
	query += ` ORDER BY vehicle_number ASC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var (
			v       models.Vehicle
			deleted sql.NullTime
		)
		if err := rows.Scan(&v.ID, &v.VehicleNumber, &v.IsDeleted, &deleted, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.DeletedAt = optionalTime(deleted)
		out = append(out, v)
	}
	return out, rows.Err()
}

// SoftDelete tombstones the vehicle. Its trips and expenses stay reportable.
func (r VehicleRepository) SoftDelete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `UPDATE vehicles SET is_deleted=1, deleted_at=NOW() WHERE id=? AND is_deleted=0`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return affectedOrNotFound(res, "vehicle", id)
}

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) conn() conn { return conn{DB: r.DB} }

const driverColumns = `id, name, COALESCE(phone,''), COALESCE(license_number,'')`

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `INSERT INTO drivers (name, phone, license_number) VALUES (?,?,?)`,
		d.Name, intdb.NullIfEmpty(d.Phone), intdb.NullIfEmpty(d.LicenseNumber))
	if err != nil {
		return 0, fmt.Errorf("insert driver: %w", err)
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `UPDATE drivers SET name=?, phone=?, license_number=? WHERE id=?`,
		d.Name, intdb.NullIfEmpty(d.Phone), intdb.NullIfEmpty(d.LicenseNumber), d.ID)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return affectedOrNotFound(res, "driver", d.ID)
}

func (r DriverRepository) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Driver{}, err
	}
	var d models.Driver
	if err := q.QueryRowContext(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=? LIMIT 1`, id).
		Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber); err != nil {
		return models.Driver{}, notFound(err, "driver", id)
	}
	return d, nil
}

func (r DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) conn() conn { return conn{DB: r.DB} }

const customerColumns = `id, name, COALESCE(phone,''), COALESCE(email,'')`

func (r CustomerRepository) Create(ctx context.Context, c models.Customer) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `INSERT INTO customers (name, phone, email) VALUES (?,?,?)`,
		c.Name, intdb.NullIfEmpty(c.Phone), intdb.NullIfEmpty(c.Email))
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return res.LastInsertId()
}

func (r CustomerRepository) Update(ctx context.Context, c models.Customer) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `UPDATE customers SET name=?, phone=?, email=? WHERE id=?`,
		c.Name, intdb.NullIfEmpty(c.Phone), intdb.NullIfEmpty(c.Email), c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return affectedOrNotFound(res, "customer", c.ID)
}

func (r CustomerRepository) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.Customer{}, err
	}
	var c models.Customer
	if err := q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=? LIMIT 1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
		return models.Customer{}, notFound(err, "customer", id)
	}
	return c, nil
}

func (r CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) conn() conn { return conn{DB: r.DB} }

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.User{}, err
	}
	var (
		u    models.User
		role string
	)
	if err := q.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username=? LIMIT 1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return models.User{}, notFound(err, "user", username)
	}
	u.Role = roleOf(role)
	return u, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, created_at) VALUES (?,?,?,NOW())`,
		u.Username, u.PasswordHash, string(u.Role),
	)
	if err != nil {
		return 0, conflictOr(fmt.Errorf("insert user: %w", err), "user", "username already exists")
	}
	return res.LastInsertId()
}

func roleOf(s string) domain.Role {
	return domain.Role(strings.ToLower(strings.TrimSpace(s)))
}
