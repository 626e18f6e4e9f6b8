package domain

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleLimited Role = "limited"
	RoleUser    Role = "user"
)

// Resource names an area of the application guarded by CanAccess.
type Resource string

const (
	ResourceVehicles          Resource = "vehicles"
	ResourceVehicleEfficiency Resource = "vehicle_efficiency"
	ResourceDrivers           Resource = "drivers"
	ResourceCustomers         Resource = "customers"
	ResourceTrips             Resource = "trips"
	ResourcePayments          Resource = "payments"
	ResourceInvoices          Resource = "invoices"
	ResourceFuel              Resource = "fuel"
	ResourceSpareParts        Resource = "spare_parts"
	ResourceMaintenance       Resource = "maintenance"
	ResourceVendors           Resource = "vendors"
	ResourceReports           Resource = "reports"
	ResourceDashboard         Resource = "dashboard"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Contains reports whether t falls within the month.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// Start returns the first day of the month in loc.
func (ym YearMonth) Start(loc *time.Location) time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
}
