package finance

import (
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"

	"github.com/shopspring/decimal"
)

// VehicleStats is the cost and usage profile of one vehicle.
type VehicleStats struct {
	VehicleNumber          string                          `json:"vehicle_number"`
	TotalTrips             int                             `json:"total_trips"`
	TotalKM                decimal.Decimal                 `json:"total_km"`
	TripCost               money.Money                     `json:"trip_cost"`
	MaintenanceCost        money.Money                     `json:"maintenance_cost"`
	MonthlyMaintenanceCost money.Money                     `json:"monthly_maintenance_cost"`
	FuelCosts              map[models.FuelType]money.Money `json:"fuel_costs"`
	TotalFuelCost          money.Money                     `json:"total_fuel_cost"`
	TotalVehicleCost       money.Money                     `json:"total_vehicle_cost"`
	CustomersServed        int                             `json:"customers_served"`
	CostPerKM              money.Money                     `json:"cost_per_km"`
	FuelCostPerKM          money.Money                     `json:"fuel_cost_per_km"`
}

// VehicleSummary profiles a vehicle over all of its records. month selects
// which month the amortized maintenance figure is computed for. Per-km ratios
// are zero when the vehicle has no recorded distance.
func VehicleSummary(
	vehicleNumber string,
	trips []models.Trip,
	fuel []models.FuelEntry,
	spares []models.SparePartEntry,
	maintenance []models.MaintenanceRecord,
	month domain.YearMonth,
) VehicleStats {
	s := VehicleStats{
		VehicleNumber: vehicleNumber,
		TotalKM:       decimal.Zero,
		FuelCosts:     map[models.FuelType]money.Money{},
	}

	customers := map[int64]struct{}{}
	for _, t := range trips {
		if t.VehicleNumber != vehicleNumber {
			continue
		}
		s.TotalTrips++
		s.TotalKM = s.TotalKM.Add(t.DistanceKM)
		s.TripCost = s.TripCost.Add(ComputeTripCost(t))
		customers[t.CustomerID] = struct{}{}
	}
	s.CustomersServed = len(customers)

	for _, f := range fuel {
		if f.VehicleNumber != vehicleNumber {
			continue
		}
		cost, _ := FuelLineCost(f)
		s.FuelCosts[f.FuelType] = s.FuelCosts[f.FuelType].Add(cost)
		s.TotalFuelCost = s.TotalFuelCost.Add(cost)
	}
	for _, sp := range spares {
		if sp.VehicleNumber != vehicleNumber {
			continue
		}
		s.MaintenanceCost = s.MaintenanceCost.Add(SpareLineCost(sp))
	}
	s.MonthlyMaintenanceCost = MonthlyMaintenanceCost(maintenance, vehicleNumber, month)
	s.TotalVehicleCost = money.Sum(s.TripCost, s.MaintenanceCost, s.TotalFuelCost, s.MonthlyMaintenanceCost)

	if s.TotalKM.IsPositive() {
		s.CostPerKM = money.FromDecimal(s.TotalVehicleCost.Decimal().Div(s.TotalKM))
		s.FuelCostPerKM = money.FromDecimal(s.TotalFuelCost.Decimal().Div(s.TotalKM))
	}
	return s
}

// DashboardSummary is the fleet-wide headline view.
type DashboardSummary struct {
	Trips    int         `json:"trips"`
	Income   money.Money `json:"income"`
	TotalDue money.Money `json:"total_due"`
	Expenses money.Money `json:"expenses"`
	Profit   money.Money `json:"profit"`
}

func Dashboard(
	trips []models.Trip,
	payments []models.Payment,
	fuel []models.FuelEntry,
	spares []models.SparePartEntry,
) DashboardSummary {
	byTrip := make(map[int64][]models.Payment)
	for _, p := range payments {
		byTrip[p.TripID] = append(byTrip[p.TripID], p)
	}

	var d DashboardSummary
	for _, t := range trips {
		bal := ComputeTripBalance(t, byTrip[t.ID])
		d.Trips++
		d.Income = d.Income.Add(bal.Total)
		d.TotalDue = d.TotalDue.Add(bal.Pending)
		d.Expenses = d.Expenses.Add(ComputeTripCost(t))
	}
	for _, f := range fuel {
		cost, _ := FuelLineCost(f)
		d.Expenses = d.Expenses.Add(cost)
	}
	for _, s := range spares {
		d.Expenses = d.Expenses.Add(SpareLineCost(s))
	}
	d.Profit = d.Income.Sub(d.Expenses)
	return d
}

// CustomerStatement summarizes what a customer has been billed and still owes.
type CustomerStatement struct {
	CustomerID int64         `json:"customer_id"`
	Trips      int           `json:"trips"`
	Billed     money.Money   `json:"billed"`
	Received   money.Money   `json:"received"`
	Pending    money.Money   `json:"pending"`
	Balances   []TripBalance `json:"balances"`
}

func ComputeCustomerStatement(customerID int64, trips []models.Trip, payments []models.Payment) CustomerStatement {
	byTrip := make(map[int64][]models.Payment)
	for _, p := range payments {
		byTrip[p.TripID] = append(byTrip[p.TripID], p)
	}
	st := CustomerStatement{CustomerID: customerID, Balances: []TripBalance{}}
	for _, t := range trips {
		if t.CustomerID != customerID {
			continue
		}
		bal := ComputeTripBalance(t, byTrip[t.ID])
		st.Trips++
		st.Billed = st.Billed.Add(bal.Total)
		st.Received = st.Received.Add(bal.Received)
		st.Pending = st.Pending.Add(bal.Pending)
		st.Balances = append(st.Balances, bal)
	}
	return st
}
