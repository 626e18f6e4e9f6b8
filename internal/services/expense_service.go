package services

import (
	"context"
	"database/sql"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/finance"
	"fleetops/internal/money"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// ExpenseService covers the per-vehicle cost books: fuel fills, spare parts
// and recurring maintenance.
type ExpenseService struct {
	DB        *sql.DB
	RequestID string
}

func (s ExpenseService) requireVehicle(ctx context.Context, number string) (string, error) {
	number = utils.NormalizeVehicleNumber(number)
	if number == "" {
		return "", domain.ValidationError{Field: "vehicle_number", Msg: "is required"}
	}
	if _, err := (repositories.VehicleRepository{DB: s.DB}).GetActive(ctx, number); err != nil {
		return "", err
	}
	return number, nil
}

// resolveVendor fills the vendor name from vendor_id so legacy name matching
// keeps working for entries that carry both.
func (s ExpenseService) resolveVendor(ctx context.Context, id *int64, name string) (*int64, string, error) {
	name = strings.TrimSpace(name)
	if id == nil || *id <= 0 {
		return nil, name, nil
	}
	v, err := repositories.VendorRepository{DB: s.DB}.GetByID(ctx, *id)
	if err != nil {
		return nil, "", err
	}
	return id, v.Name, nil
}

// --- fuel ---

func (s ExpenseService) validateFuel(ctx context.Context, f *models.FuelEntry) error {
	var err error
	if f.VehicleNumber, err = s.requireVehicle(ctx, f.VehicleNumber); err != nil {
		return err
	}
	f.FuelType = models.FuelType(strings.ToLower(strings.TrimSpace(string(f.FuelType))))
	if f.FuelType != models.FuelDiesel && f.FuelType != models.FuelPetrol {
		return domain.ValidationError{Field: "fuel_type", Msg: "must be diesel or petrol"}
	}
	if !f.Quantity.IsPositive() {
		return domain.ValidationError{Field: "quantity", Msg: "must be greater than zero"}
	}
	if err := requireNonNegativeRate("rate_per_litre", f.RatePerLitre); err != nil {
		return err
	}
	if f.FilledDate.IsZero() {
		return domain.ValidationError{Field: "filled_date", Msg: "is required"}
	}
	if f.VendorID, f.Vendor, err = s.resolveVendor(ctx, f.VendorID, f.Vendor); err != nil {
		return err
	}

	// stored total always agrees with quantity x rate
	f.TotalCost = money.AtRate(f.RatePerLitre, f.Quantity)
	return nil
}

func (s ExpenseService) CreateFuel(ctx context.Context, f models.FuelEntry) (models.FuelEntry, error) {
	if err := s.validateFuel(ctx, &f); err != nil {
		return models.FuelEntry{}, err
	}
	id, err := repositories.FuelRepository{DB: s.DB}.Create(ctx, f)
	if err != nil {
		return models.FuelEntry{}, err
	}
	f.ID = id
	utils.LogEvent(s.RequestID, "fuel", "create", utils.KV("id", f.ID, "vehicle", f.VehicleNumber, "total", f.TotalCost))
	return f, nil
}

// UpdateFuel replaces the entry; the client-sent total is ignored.
func (s ExpenseService) UpdateFuel(ctx context.Context, id int64, f models.FuelEntry) (models.FuelEntry, error) {
	f.ID = id
	if err := s.validateFuel(ctx, &f); err != nil {
		return models.FuelEntry{}, err
	}
	if err := (repositories.FuelRepository{DB: s.DB}).Update(ctx, f); err != nil {
		return models.FuelEntry{}, err
	}
	utils.LogEvent(s.RequestID, "fuel", "update", utils.KV("id", id, "total", f.TotalCost))
	return f, nil
}

func (s ExpenseService) GetFuel(ctx context.Context, id int64) (models.FuelEntry, error) {
	return repositories.FuelRepository{DB: s.DB}.GetByID(ctx, id)
}

func (s ExpenseService) ListFuel(ctx context.Context, vehicleNumber string) ([]models.FuelEntry, error) {
	return repositories.FuelRepository{DB: s.DB}.List(ctx, utils.NormalizeVehicleNumber(vehicleNumber))
}

func (s ExpenseService) DeleteFuel(ctx context.Context, id int64) error {
	return repositories.FuelRepository{DB: s.DB}.Delete(ctx, id)
}

// --- spare parts ---

func (s ExpenseService) validateSparePart(ctx context.Context, sp *models.SparePartEntry) error {
	var err error
	if sp.VehicleNumber, err = s.requireVehicle(ctx, sp.VehicleNumber); err != nil {
		return err
	}
	sp.PartName = utils.NormalizeSpace(sp.PartName)
	if err := requireText("part_name", sp.PartName); err != nil {
		return err
	}
	if sp.Quantity < 1 {
		return domain.ValidationError{Field: "quantity", Msg: "must be at least 1"}
	}
	if err := requireNonNegative("cost", sp.Cost); err != nil {
		return err
	}
	if sp.ReplacedDate.IsZero() {
		return domain.ValidationError{Field: "replaced_date", Msg: "is required"}
	}
	sp.VendorID, sp.Vendor, err = s.resolveVendor(ctx, sp.VendorID, sp.Vendor)
	return err
}

func (s ExpenseService) CreateSparePart(ctx context.Context, sp models.SparePartEntry) (models.SparePartEntry, error) {
	if err := s.validateSparePart(ctx, &sp); err != nil {
		return models.SparePartEntry{}, err
	}
	id, err := repositories.SparePartRepository{DB: s.DB}.Create(ctx, sp)
	if err != nil {
		return models.SparePartEntry{}, err
	}
	sp.ID = id
	utils.LogEvent(s.RequestID, "spare_part", "create", utils.KV("id", sp.ID, "vehicle", sp.VehicleNumber))
	return sp, nil
}

func (s ExpenseService) UpdateSparePart(ctx context.Context, id int64, sp models.SparePartEntry) (models.SparePartEntry, error) {
	sp.ID = id
	if err := s.validateSparePart(ctx, &sp); err != nil {
		return models.SparePartEntry{}, err
	}
	if err := (repositories.SparePartRepository{DB: s.DB}).Update(ctx, sp); err != nil {
		return models.SparePartEntry{}, err
	}
	utils.LogEvent(s.RequestID, "spare_part", "update", utils.KV("id", id))
	return sp, nil
}

func (s ExpenseService) GetSparePart(ctx context.Context, id int64) (models.SparePartEntry, error) {
	return repositories.SparePartRepository{DB: s.DB}.GetByID(ctx, id)
}

func (s ExpenseService) ListSpareParts(ctx context.Context, vehicleNumber string) ([]models.SparePartEntry, error) {
	return repositories.SparePartRepository{DB: s.DB}.List(ctx, utils.NormalizeVehicleNumber(vehicleNumber))
}

func (s ExpenseService) DeleteSparePart(ctx context.Context, id int64) error {
	return repositories.SparePartRepository{DB: s.DB}.Delete(ctx, id)
}

// --- maintenance ---

func (s ExpenseService) validateMaintenance(ctx context.Context, m *models.MaintenanceRecord) error {
	var err error
	if m.VehicleNumber, err = s.requireVehicle(ctx, m.VehicleNumber); err != nil {
		return err
	}
	m.MaintenanceType = models.MaintenanceType(strings.ToLower(strings.TrimSpace(string(m.MaintenanceType))))
	if !m.MaintenanceType.Valid() {
		return domain.ValidationError{Field: "maintenance_type", Msg: "must be emi, insurance or tax"}
	}
	if err := requireNonNegative("amount", m.Amount); err != nil {
		return err
	}
	if m.StartDate.IsZero() {
		return domain.ValidationError{Field: "start_date", Msg: "is required"}
	}
	m.Description = strings.TrimSpace(m.Description)
	return nil
}

func (s ExpenseService) CreateMaintenance(ctx context.Context, m models.MaintenanceRecord) (models.MaintenanceRecord, error) {
	if err := s.validateMaintenance(ctx, &m); err != nil {
		return models.MaintenanceRecord{}, err
	}
	id, err := repositories.MaintenanceRepository{DB: s.DB}.Create(ctx, m)
	if err != nil {
		return models.MaintenanceRecord{}, err
	}
	m.ID = id
	utils.LogEvent(s.RequestID, "maintenance", "create", utils.KV("id", id, "type", m.MaintenanceType))
	return m, nil
}

func (s ExpenseService) UpdateMaintenance(ctx context.Context, id int64, m models.MaintenanceRecord) (models.MaintenanceRecord, error) {
	m.ID = id
	if err := s.validateMaintenance(ctx, &m); err != nil {
		return models.MaintenanceRecord{}, err
	}
	if err := (repositories.MaintenanceRepository{DB: s.DB}).Update(ctx, m); err != nil {
		return models.MaintenanceRecord{}, err
	}
	return m, nil
}

func (s ExpenseService) GetMaintenance(ctx context.Context, id int64) (models.MaintenanceRecord, error) {
	return repositories.MaintenanceRepository{DB: s.DB}.GetByID(ctx, id)
}

func (s ExpenseService) ListMaintenance(ctx context.Context, vehicleNumber string, typ models.MaintenanceType) ([]models.MaintenanceRecord, error) {
	return repositories.MaintenanceRepository{DB: s.DB}.List(ctx, utils.NormalizeVehicleNumber(vehicleNumber), typ)
}

func (s ExpenseService) DeleteMaintenance(ctx context.Context, id int64) error {
	return repositories.MaintenanceRepository{DB: s.DB}.Delete(ctx, id)
}

// MonthlyLine is a maintenance record with its monthly equivalent.
type MonthlyLine struct {
	models.MaintenanceRecord
	MonthlyAmount money.Money `json:"monthly_amount"`
}

// MonthlyMaintenance is a vehicle's amortized maintenance for one month.
type MonthlyMaintenance struct {
	VehicleNumber string           `json:"vehicle_number"`
	Month         domain.YearMonth `json:"month"`
	Records       []MonthlyLine    `json:"records"`
	Total         money.Money      `json:"total"`
}

func (s ExpenseService) Monthly(ctx context.Context, vehicleNumber string, month domain.YearMonth) (MonthlyMaintenance, error) {
	vehicleNumber = utils.NormalizeVehicleNumber(vehicleNumber)
	if vehicleNumber == "" {
		return MonthlyMaintenance{}, domain.ValidationError{Field: "vehicle", Msg: "is required"}
	}
	records, err := s.ListMaintenance(ctx, vehicleNumber, "")
	if err != nil {
		return MonthlyMaintenance{}, err
	}

	out := MonthlyMaintenance{
		VehicleNumber: vehicleNumber,
		Month:         month,
		Records:       make([]MonthlyLine, 0, len(records)),
		Total:         finance.MonthlyMaintenanceCost(records, vehicleNumber, month),
	}
	for _, r := range records {
		monthly, err := finance.AmortizeMaintenance(r.MaintenanceType, r.Amount)
		if err != nil {
			utils.LogEvent(s.RequestID, "maintenance", "data_issue", utils.KV("id", r.ID, "err", err))
			continue
		}
		out.Records = append(out.Records, MonthlyLine{MaintenanceRecord: r, MonthlyAmount: monthly})
	}
	return out, nil
}
