package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "fleetops/internal/db"
	"fleetops/internal/domain/models"
)

// FuelRepository persists fuel_entries.
type FuelRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r FuelRepository) conn() conn { return conn{DB: r.DB, Tx: r.Tx} }

func (r FuelRepository) WithTx(tx *sql.Tx) FuelRepository {
	return FuelRepository{DB: r.DB, Tx: tx}
}

const fuelColumns = `id, vehicle_number, fuel_type, quantity, rate_per_litre, total_cost, vendor_id, COALESCE(vendor,''), filled_date, created_at`

func scanFuel(row rowScanner) (models.FuelEntry, error) {
	var (
		f        models.FuelEntry
		fuelType string
		vendorID sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.VehicleNumber, &fuelType, &f.Quantity, &f.RatePerLitre, &f.TotalCost, &vendorID, &f.Vendor, &f.FilledDate, &f.CreatedAt); err != nil {
		return models.FuelEntry{}, err
	}
	f.FuelType = models.FuelType(fuelType)
	f.VendorID = optionalID(vendorID)
	return f, nil
}

func (r FuelRepository) Create(ctx context.Context, f models.FuelEntry) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO fuel_entries (vehicle_number, fuel_type, quantity, rate_per_litre, total_cost, vendor_id, vendor, filled_date, created_at)
		VALUES (?,?,?,?,?,?,?,?,NOW())`,
		f.VehicleNumber, string(f.FuelType), f.Quantity, f.RatePerLitre, f.TotalCost,
		intdb.NullIfZeroID(f.VendorID), intdb.NullIfEmpty(f.Vendor), f.FilledDate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert fuel entry: %w", err)
	}
	return res.LastInsertId()
}

// List returns fuel entries, optionally for one vehicle.
func (r FuelRepository) List(ctx context.Context, vehicleNumber string) ([]models.FuelEntry, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + fuelColumns + ` FROM fuel_entries`
	args := []any{}
	if vehicleNumber != "" {
		query += ` WHERE vehicle_number=?`
		args = append(args, vehicleNumber)
	}
	query += ` ORDER BY filled_date DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fuel entries: %w", err)
	}
	defer rows.Close()

	out := []models.FuelEntry{}
	for rows.Next() {
		f, err := scanFuel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r FuelRepository) GetByID(ctx context.Context, id int64) (models.FuelEntry, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.FuelEntry{}, err
	}
	f, err := scanFuel(q.QueryRowContext(ctx, `SELECT `+fuelColumns+` FROM fuel_entries WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.FuelEntry{}, notFound(err, "fuel entry", id)
	}
	return f, nil
}

// Update replaces every editable column of the entry.
func (r FuelRepository) Update(ctx context.Context, f models.FuelEntry) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `
		UPDATE fuel_entries SET vehicle_number=?, fuel_type=?, quantity=?, rate_per_litre=?, total_cost=?,
			vendor_id=?, vendor=?, filled_date=?
		WHERE id=?`,
		f.VehicleNumber, string(f.FuelType), f.Quantity, f.RatePerLitre, f.TotalCost,
		intdb.NullIfZeroID(f.VendorID), intdb.NullIfEmpty(f.Vendor), f.FilledDate, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update fuel entry: %w", err)
	}
	return affectedOrNotFound(res, "fuel entry", f.ID)
}

func (r FuelRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM fuel_entries WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete fuel entry: %w", err)
	}
	return affectedOrNotFound(res, "fuel entry", id)
}

// SparePartRepository persists spare_parts.
type SparePartRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r SparePartRepository) conn() conn { return conn{DB: r.DB, Tx: r.Tx} }

func (r SparePartRepository) WithTx(tx *sql.Tx) SparePartRepository {
	return SparePartRepository{DB: r.DB, Tx: tx}
}

const spareColumns = `id, vehicle_number, part_name, cost, quantity, vendor_id, COALESCE(vendor,''), replaced_date, created_at`

func scanSpare(row rowScanner) (models.SparePartEntry, error) {
	var (
		s        models.SparePartEntry
		vendorID sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.VehicleNumber, &s.PartName, &s.Cost, &s.Quantity, &vendorID, &s.Vendor, &s.ReplacedDate, &s.CreatedAt); err != nil {
		return models.SparePartEntry{}, err
	}
	s.VendorID = optionalID(vendorID)
	return s, nil
}

func (r SparePartRepository) Create(ctx context.Context, s models.SparePartEntry) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO spare_parts (vehicle_number, part_name, cost, quantity, vendor_id, vendor, replaced_date, created_at)
		VALUES (?,?,?,?,?,?,?,NOW())`,
		s.VehicleNumber, s.PartName, s.Cost, s.Quantity,
		intdb.NullIfZeroID(s.VendorID), intdb.NullIfEmpty(s.Vendor), s.ReplacedDate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert spare part: %w", err)
	}
	return res.LastInsertId()
}

func (r SparePartRepository) List(ctx context.Context, vehicleNumber string) ([]models.SparePartEntry, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + spareColumns + ` FROM spare_parts`
	args := []any{}
	if vehicleNumber != "" {
		query += ` WHERE vehicle_number=?`
		args = append(args, vehicleNumber)
	}
	query += ` ORDER BY replaced_date DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spare parts: %w", err)
	}
	defer rows.Close()

	out := []models.SparePartEntry{}
	for rows.Next() {
		s, err := scanSpare(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r SparePartRepository) GetByID(ctx context.Context, id int64) (models.SparePartEntry, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.SparePartEntry{}, err
	}
	sp, err := scanSpare(q.QueryRowContext(ctx, `SELECT `+spareColumns+` FROM spare_parts WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.SparePartEntry{}, notFound(err, "spare part", id)
	}
	return sp, nil
}

func (r SparePartRepository) Update(ctx context.Context, s models.SparePartEntry) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `
		UPDATE spare_parts SET vehicle_number=?, part_name=?, cost=?, quantity=?, vendor_id=?, vendor=?, replaced_date=?
		WHERE id=?`,
		s.VehicleNumber, s.PartName, s.Cost, s.Quantity,
		intdb.NullIfZeroID(s.VendorID), intdb.NullIfEmpty(s.Vendor), s.ReplacedDate, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update spare part: %w", err)
	}
	return affectedOrNotFound(res, "spare part", s.ID)
}

func (r SparePartRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM spare_parts WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete spare part: %w", err)
	}
	return affectedOrNotFound(res, "spare part", id)
}

// MaintenanceRepository persists maintenance records.
type MaintenanceRepository struct {
	DB *sql.DB
}

func (r MaintenanceRepository) conn() conn { return conn{DB: r.DB} }

const maintenanceColumns = `id, vehicle_number, maintenance_type, COALESCE(description,''), amount, start_date, created_at`

func scanMaintenance(row rowScanner) (models.MaintenanceRecord, error) {
	var (
		m   models.MaintenanceRecord
		typ string
	)
	if err := row.Scan(&m.ID, &m.VehicleNumber, &typ, &m.Description, &m.Amount, &m.StartDate, &m.CreatedAt); err != nil {
		return models.MaintenanceRecord{}, err
	}
	m.MaintenanceType = models.MaintenanceType(typ)
	return m, nil
}

func (r MaintenanceRepository) Create(ctx context.Context, m models.MaintenanceRecord) (int64, error) {
	q, err := r.conn().q()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, `
		INSERT INTO maintenance (vehicle_number, maintenance_type, description, amount, start_date, created_at)
		VALUES (?,?,?,?,?,NOW())`,
		m.VehicleNumber, string(m.MaintenanceType), intdb.NullIfEmpty(m.Description), m.Amount, m.StartDate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert maintenance: %w", err)
	}
	return res.LastInsertId()
}

func (r MaintenanceRepository) GetByID(ctx context.Context, id int64) (models.MaintenanceRecord, error) {
	q, err := r.conn().q()
	if err != nil {
		return models.MaintenanceRecord{}, err
	}
	m, err := scanMaintenance(q.QueryRowContext(ctx, `SELECT `+maintenanceColumns+` FROM maintenance WHERE id=? LIMIT 1`, id))
	if err != nil {
		return models.MaintenanceRecord{}, notFound(err, "maintenance record", id)
	}
	return m, nil
}

// List filters by vehicle and type when given, newest start date first.
func (r MaintenanceRepository) List(ctx context.Context, vehicleNumber string, typ models.MaintenanceType) ([]models.MaintenanceRecord, error) {
	q, err := r.conn().q()
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance WHERE 1=1`
	args := []any{}
	if vehicleNumber != "" {
		query += ` AND vehicle_number=?`
		args = append(args, vehicleNumber)
	}
	if typ != "" {
		query += ` AND maintenance_type=?`
		args = append(args, string(typ))
	}
	query += ` ORDER BY start_date DESC, id DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer rows.Close()

	out := []models.MaintenanceRecord{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MaintenanceRepository) Update(ctx context.Context, m models.MaintenanceRecord) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `
		UPDATE maintenance SET vehicle_number=?, maintenance_type=?, description=?, amount=?, start_date=?
		WHERE id=?`,
		m.VehicleNumber, string(m.MaintenanceType), intdb.NullIfEmpty(m.Description), m.Amount, m.StartDate, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update maintenance: %w", err)
	}
	return affectedOrNotFound(res, "maintenance record", m.ID)
}

func (r MaintenanceRepository) Delete(ctx context.Context, id int64) error {
	q, err := r.conn().q()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, `DELETE FROM maintenance WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	return affectedOrNotFound(res, "maintenance record", id)
}
