package finance

import (
	"sort"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"

	"github.com/shopspring/decimal"
)

// ReportFilter narrows a report. Every set criterion must hold.
type ReportFilter struct {
	VehicleNumber string            `json:"vehicle_number,omitempty"`
	DriverID      int64             `json:"driver_id,omitempty"`
	From          models.Date       `json:"from"`
	To            models.Date       `json:"to"`
	Month         *domain.YearMonth `json:"month,omitempty"`
}

func (f ReportFilter) matchDate(d models.Date) bool {
	if !f.From.IsZero() && d.Key() < f.From.Key() {
		return false
	}
	if !f.To.IsZero() && d.Key() > f.To.Key() {
		return false
	}
	if f.Month != nil && !f.Month.Contains(d.Time) {
		return false
	}
	return true
}

func (f ReportFilter) matchVehicle(vehicle string) bool {
	return f.VehicleNumber == "" || f.VehicleNumber == vehicle
}

func (f ReportFilter) matchTrip(t models.Trip) bool {
	if !f.matchVehicle(t.VehicleNumber) {
		return false
	}
	if f.DriverID != 0 && t.DriverID != f.DriverID {
		return false
	}
	return f.matchDate(t.TripDate)
}

// ReportInput is one consistent snapshot of the records a report reads.
type ReportInput struct {
	Trips    []models.Trip
	Payments []models.Payment
	Fuel     []models.FuelEntry
	Spares   []models.SparePartEntry
}

type VehicleRollup struct {
	VehicleNumber string          `json:"vehicle_number"`
	Trips         int             `json:"trips"`
	DistanceKM    decimal.Decimal `json:"distance_km"`
	Revenue       money.Money     `json:"revenue"`
}

type DriverRollup struct {
	DriverID   int64           `json:"driver_id"`
	Trips      int             `json:"trips"`
	DistanceKM decimal.Decimal `json:"distance_km"`
	Revenue    money.Money     `json:"revenue"`
}

type StatusHistogram struct {
	Paid    int `json:"paid"`
	Partial int `json:"partial"`
	Pending int `json:"pending"`
}

type ReportSummary struct {
	Filter        ReportFilter    `json:"filter"`
	TripCount     int             `json:"trip_count"`
	DistanceKM    decimal.Decimal `json:"distance_km"`
	TotalRevenue  money.Money     `json:"total_revenue"`
	TotalPaid     money.Money     `json:"total_paid"`
	TotalPending  money.Money     `json:"total_pending"`
	TripExpenses  money.Money     `json:"trip_expenses"`
	FuelExpenses  money.Money     `json:"fuel_expenses"`
	SpareExpenses money.Money     `json:"spare_expenses"`
	TotalExpenses money.Money     `json:"total_expenses"`
	NetProfit     money.Money     `json:"net_profit"`

	ByVehicle []VehicleRollup `json:"by_vehicle"`
	ByDriver  []DriverRollup  `json:"by_driver"`
	Status    StatusHistogram `json:"status"`
	Balances  []TripBalance   `json:"balances"`

	Issues []error `json:"-"`
}

// AggregateReport rolls the snapshot up under f. Orphan payments and fuel
// totals that disagree with quantity x rate are recorded in Issues and the
// report carries on with the remaining data.
func AggregateReport(in ReportInput, f ReportFilter) ReportSummary {
	out := ReportSummary{
		Filter:     f,
		DistanceKM: decimal.Zero,
		ByVehicle:  []VehicleRollup{},
		ByDriver:   []DriverRollup{},
		Balances:   []TripBalance{},
	}

	known := make(map[int64]struct{}, len(in.Trips))
	for _, t := range in.Trips {
		known[t.ID] = struct{}{}
	}
	paymentsByTrip := make(map[int64][]models.Payment)
	for _, p := range in.Payments {
		if _, ok := known[p.TripID]; !ok {
			out.Issues = append(out.Issues, domain.MissingReferenceError{
				Entity: "payment", ID: p.ID, Ref: "trip", RefID: p.TripID,
			})
			continue
		}
		paymentsByTrip[p.TripID] = append(paymentsByTrip[p.TripID], p)
	}

	vehicles := map[string]*VehicleRollup{}
	drivers := map[int64]*DriverRollup{}

	for _, t := range in.Trips {
		if !f.matchTrip(t) {
			continue
		}
		bal := ComputeTripBalance(t, paymentsByTrip[t.ID])

		out.TripCount++
		out.DistanceKM = out.DistanceKM.Add(t.DistanceKM)
		out.TotalRevenue = out.TotalRevenue.Add(bal.Total)
		out.TotalPaid = out.TotalPaid.Add(bal.Received)
		out.TotalPending = out.TotalPending.Add(bal.Pending)
		out.TripExpenses = out.TripExpenses.Add(tripExpenses(t))
		out.Balances = append(out.Balances, bal)

		switch bal.Status {
		case StatusPaid:
			out.Status.Paid++
		case StatusPartial:
			out.Status.Partial++
		default:
			out.Status.Pending++
		}

		vr, ok := vehicles[t.VehicleNumber]
		if !ok {
			vr = &VehicleRollup{VehicleNumber: t.VehicleNumber, DistanceKM: decimal.Zero}
			vehicles[t.VehicleNumber] = vr
		}
		vr.Trips++
		vr.DistanceKM = vr.DistanceKM.Add(t.DistanceKM)
		vr.Revenue = vr.Revenue.Add(bal.Total)

		dr, ok := drivers[t.DriverID]
		if !ok {
			dr = &DriverRollup{DriverID: t.DriverID, DistanceKM: decimal.Zero}
			drivers[t.DriverID] = dr
		}
		dr.Trips++
		dr.DistanceKM = dr.DistanceKM.Add(t.DistanceKM)
		dr.Revenue = dr.Revenue.Add(bal.Total)
	}

	for _, fe := range in.Fuel {
		if !f.matchVehicle(fe.VehicleNumber) || !f.matchDate(fe.FilledDate) {
			continue
		}
		cost, err := FuelLineCost(fe)
		if err != nil {
			out.Issues = append(out.Issues, err)
		}
		out.FuelExpenses = out.FuelExpenses.Add(cost)
	}
	for _, s := range in.Spares {
		if !f.matchVehicle(s.VehicleNumber) || !f.matchDate(s.ReplacedDate) {
			continue
		}
		out.SpareExpenses = out.SpareExpenses.Add(SpareLineCost(s))
	}

	out.TotalExpenses = money.Sum(out.TripExpenses, out.FuelExpenses, out.SpareExpenses)
	out.NetProfit = out.TotalRevenue.Sub(out.TotalExpenses)

	for _, vr := range vehicles {
		out.ByVehicle = append(out.ByVehicle, *vr)
	}
	sort.Slice(out.ByVehicle, func(i, j int) bool {
		return out.ByVehicle[i].VehicleNumber < out.ByVehicle[j].VehicleNumber
	})
	for _, dr := range drivers {
		out.ByDriver = append(out.ByDriver, *dr)
	}
	sort.Slice(out.ByDriver, func(i, j int) bool {
		return out.ByDriver[i].DriverID < out.ByDriver[j].DriverID
	})
	return out
}
