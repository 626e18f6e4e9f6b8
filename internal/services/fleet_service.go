package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/finance"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type VehicleService struct {
	DB        *sql.DB
	RequestID string
}

func (s VehicleService) repo() repositories.VehicleRepository {
	return repositories.VehicleRepository{DB: s.DB}
}

// Create registers a vehicle. A number may be reused once its previous
// holder has been deleted.
func (s VehicleService) Create(ctx context.Context, number string) (models.Vehicle, error) {
	number = utils.NormalizeVehicleNumber(number)
	if err := requireText("vehicle_number", number); err != nil {
		return models.Vehicle{}, err
	}
	_, err := s.repo().GetActive(ctx, number)
	switch {
	case err == nil:
		return models.Vehicle{}, domain.ConflictError{Resource: "vehicle", Msg: "vehicle " + number + " already exists"}
	case !domain.IsNotFound(err):
		return models.Vehicle{}, err
	}

	id, err := s.repo().Create(ctx, number)
	if err != nil {
		return models.Vehicle{}, err
	}
	utils.LogEvent(s.RequestID, "vehicle", "create", utils.KV("id", id, "number", number))
	return models.Vehicle{ID: id, VehicleNumber: number, CreatedAt: time.Now()}, nil
}

func (s VehicleService) List(ctx context.Context, includeDeleted bool) ([]models.Vehicle, error) {
	return s.repo().List(ctx, includeDeleted)
}

func (s VehicleService) Get(ctx context.Context, number string) (models.Vehicle, error) {
	return s.repo().GetActive(ctx, utils.NormalizeVehicleNumber(number))
}

func (s VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo().SoftDelete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "vehicle", "delete", utils.KV("id", id))
	return nil
}

// Summary profiles the vehicle across all of its trips and expenses, with
// maintenance amortized for month.
func (s VehicleService) Summary(ctx context.Context, number string, month domain.YearMonth) (finance.VehicleStats, error) {
	number = utils.NormalizeVehicleNumber(number)
	v, err := s.repo().GetActive(ctx, number)
	if err != nil {
		return finance.VehicleStats{}, err
	}

	trips, err := repositories.TripRepository{DB: s.DB}.List(ctx, models.TripFilter{VehicleNumber: number})
	if err != nil {
		return finance.VehicleStats{}, err
	}
	fuel, err := repositories.FuelRepository{DB: s.DB}.List(ctx, number)
	if err != nil {
		return finance.VehicleStats{}, err
	}
	spares, err := repositories.SparePartRepository{DB: s.DB}.List(ctx, number)
	if err != nil {
		return finance.VehicleStats{}, err
	}
	maintenance, err := repositories.MaintenanceRepository{DB: s.DB}.List(ctx, number, "")
	if err != nil {
		return finance.VehicleStats{}, err
	}
	// a reused number must not inherit the deleted holder's history
	trips = createdSince(trips, v.CreatedAt, func(t models.Trip) time.Time { return t.CreatedAt })
	fuel = createdSince(fuel, v.CreatedAt, func(f models.FuelEntry) time.Time { return f.CreatedAt })
	spares = createdSince(spares, v.CreatedAt, func(sp models.SparePartEntry) time.Time { return sp.CreatedAt })
	maintenance = createdSince(maintenance, v.CreatedAt, func(m models.MaintenanceRecord) time.Time { return m.CreatedAt })

	for _, f := range fuel {
		if _, err := finance.FuelLineCost(f); err != nil {
			utils.LogEvent(s.RequestID, "vehicle", "data_issue", err.Error())
		}
	}
	return finance.VehicleSummary(number, trips, fuel, spares, maintenance, month), nil
}

func createdSince[T any](rows []T, since time.Time, createdAt func(T) time.Time) []T {
	if since.IsZero() {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if !createdAt(r).Before(since) {
			out = append(out, r)
		}
	}
	return out
}

type DriverService struct {
	DB        *sql.DB
	RequestID string
}

func normalizeDriver(d *models.Driver) error {
	d.Name = utils.NormalizeSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.LicenseNumber = strings.ToUpper(strings.TrimSpace(d.LicenseNumber))
	return requireText("name", d.Name)
}

func (s DriverService) Create(ctx context.Context, d models.Driver) (models.Driver, error) {
	if err := normalizeDriver(&d); err != nil {
		return models.Driver{}, err
	}
	id, err := repositories.DriverRepository{DB: s.DB}.Create(ctx, d)
	if err != nil {
		return models.Driver{}, err
	}
	d.ID = id
	utils.LogEvent(s.RequestID, "driver", "create", utils.KV("id", id))
	return d, nil
}

func (s DriverService) Update(ctx context.Context, id int64, d models.Driver) (models.Driver, error) {
	d.ID = id
	if err := normalizeDriver(&d); err != nil {
		return models.Driver{}, err
	}
	if err := (repositories.DriverRepository{DB: s.DB}).Update(ctx, d); err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

func (s DriverService) Get(ctx context.Context, id int64) (models.Driver, error) {
	return repositories.DriverRepository{DB: s.DB}.GetByID(ctx, id)
}

func (s DriverService) List(ctx context.Context) ([]models.Driver, error) {
	return repositories.DriverRepository{DB: s.DB}.List(ctx)
}

type CustomerService struct {
	DB        *sql.DB
	RequestID string
}

func normalizeCustomer(c *models.Customer) error {
	c.Name = utils.NormalizeSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if err := requireText("name", c.Name); err != nil {
		return err
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return domain.ValidationError{Field: "email", Msg: "is not a valid address"}
	}
	return nil
}

func (s CustomerService) Create(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := normalizeCustomer(&c); err != nil {
		return models.Customer{}, err
	}
	id, err := repositories.CustomerRepository{DB: s.DB}.Create(ctx, c)
	if err != nil {
		return models.Customer{}, err
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "customer", "create", utils.KV("id", id))
	return c, nil
}

func (s CustomerService) Update(ctx context.Context, id int64, c models.Customer) (models.Customer, error) {
	c.ID = id
	if err := normalizeCustomer(&c); err != nil {
		return models.Customer{}, err
	}
	if err := (repositories.CustomerRepository{DB: s.DB}).Update(ctx, c); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (s CustomerService) Get(ctx context.Context, id int64) (models.Customer, error) {
	return repositories.CustomerRepository{DB: s.DB}.GetByID(ctx, id)
}

func (s CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return repositories.CustomerRepository{DB: s.DB}.List(ctx)
}

// Statement is the customer's billed, received and pending totals over all trips.
func (s CustomerService) Statement(ctx context.Context, id int64) (finance.CustomerStatement, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return finance.CustomerStatement{}, err
	}
	trips, err := repositories.TripRepository{DB: s.DB}.List(ctx, models.TripFilter{CustomerID: id})
	if err != nil {
		return finance.CustomerStatement{}, err
	}
	payments, err := repositories.PaymentRepository{DB: s.DB}.ListAll(ctx)
	if err != nil {
		return finance.CustomerStatement{}, err
	}
	return finance.ComputeCustomerStatement(id, trips, payments), nil
}
