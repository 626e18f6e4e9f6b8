package models

import (
	"time"

	"fleetops/internal/money"

	"github.com/shopspring/decimal"
)

type FuelType string

const (
	FuelDiesel FuelType = "diesel"
	FuelPetrol FuelType = "petrol"
)

// FuelEntry is a fuel purchase for a vehicle. TotalCost is stored for
// compatibility but aggregations recompute Quantity x RatePerLitre.
type FuelEntry struct {
	ID            int64           `json:"id"`
	VehicleNumber string          `json:"vehicle_number"`
	FuelType      FuelType        `json:"fuel_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	RatePerLitre  decimal.Decimal `json:"rate_per_litre"`
	TotalCost     money.Money     `json:"total_cost"`
	VendorID      *int64          `json:"vendor_id,omitempty"`
	Vendor        string          `json:"vendor"`
	FilledDate    Date            `json:"filled_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SparePartEntry is a part replaced on a vehicle. Cost is the unit cost.
type SparePartEntry struct {
	ID            int64       `json:"id"`
	VehicleNumber string      `json:"vehicle_number"`
	PartName      string      `json:"part_name"`
	Cost          money.Money `json:"cost"`
	Quantity      int64       `json:"quantity"`
	VendorID      *int64      `json:"vendor_id,omitempty"`
	Vendor        string      `json:"vendor"`
	ReplacedDate  Date        `json:"replaced_date"`
	CreatedAt     time.Time   `json:"created_at"`
}

type MaintenanceType string

const (
	MaintenanceEMI       MaintenanceType = "emi"
	MaintenanceInsurance MaintenanceType = "insurance"
	MaintenanceTax       MaintenanceType = "tax"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceEMI, MaintenanceInsurance, MaintenanceTax:
		return true
	}
	return false
}

// MaintenanceRecord is a recurring obligation: a monthly EMI, an annual
// insurance premium or a quarterly road tax.
type MaintenanceRecord struct {
	ID              int64           `json:"id"`
	VehicleNumber   string          `json:"vehicle_number"`
	MaintenanceType MaintenanceType `json:"maintenance_type"`
	Description     string          `json:"description"`
	Amount          money.Money     `json:"amount"`
	StartDate       Date            `json:"start_date"`
	CreatedAt       time.Time       `json:"created_at"`
}
