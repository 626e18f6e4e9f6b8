package models

import (
	"time"

	"fleetops/internal/money"

	"github.com/shopspring/decimal"
)

type PricingType string

const (
	PricingPerKM   PricingType = "per_km"
	PricingPackage PricingType = "package"
)

// Trip is one billable job tying a vehicle, driver and customer together.
// Billing fields (pricing, package, per-km rate, charged toll/parking) are what
// the customer pays; DieselUsed..OtherExpenses are internal operating cost.
// Totals, received and pending amounts are never stored: they are derived on read.
type Trip struct {
	ID            int64      `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	TripDate      Date       `json:"trip_date"`
	DepartureAt   *time.Time `json:"departure_datetime,omitempty"`
	ReturnAt      *time.Time `json:"return_datetime,omitempty"`
	FromLocation  string     `json:"from_location"`
	ToLocation    string     `json:"to_location"`
	RouteDetails  string     `json:"route_details"`

	VehicleNumber string `json:"vehicle_number"`
	DriverID      int64  `json:"driver_id"`
	CustomerID    int64  `json:"customer_id"`

	DistanceKM decimal.Decimal `json:"distance_km"`

	DieselUsed    money.Money `json:"diesel_used"`
	PetrolUsed    money.Money `json:"petrol_used"`
	TollAmount    money.Money `json:"toll_amount"`
	ParkingAmount money.Money `json:"parking_amount"`
	OtherExpenses money.Money `json:"other_expenses"`
	Vendor        string      `json:"vendor"`

	PricingType          PricingType     `json:"pricing_type"`
	PackageAmount        money.Money     `json:"package_amount"`
	CostPerKM            decimal.Decimal `json:"cost_per_km"`
	ChargedTollAmount    money.Money     `json:"charged_toll_amount"`
	ChargedParkingAmount money.Money     `json:"charged_parking_amount"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TripFilter narrows trip listings. Zero values do not constrain.
type TripFilter struct {
	VehicleNumber string
	DriverID      int64
	CustomerID    int64
	From          Date
	To            Date
}
