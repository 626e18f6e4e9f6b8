package finance

import (
	"fmt"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"
)

// taxWindowDays bounds how long after its start a quarterly tax payment still
// contributes to a month's maintenance cost.
const taxWindowDays = 90

// AmortizeMaintenance converts a maintenance amount to its monthly equivalent.
func AmortizeMaintenance(t models.MaintenanceType, amount money.Money) (money.Money, error) {
	switch t {
	case models.MaintenanceEMI:
		return amount, nil
	case models.MaintenanceInsurance:
		return amount.Div(12), nil
	case models.MaintenanceTax:
		return amount.Div(3), nil
	default:
		return money.Zero, domain.ValidationError{
			Field: "maintenance_type",
			Msg:   fmt.Sprintf("unknown type %q", t),
		}
	}
}

// MonthlyMaintenanceCost sums the monthly equivalents of a vehicle's records
// that had started by the first day of month. Tax records stop contributing
// once the month start is more than 90 days past their start date.
func MonthlyMaintenanceCost(records []models.MaintenanceRecord, vehicleNumber string, month domain.YearMonth) money.Money {
	monthStart := models.NewDate(month.Year, month.Month, 1)
	total := money.Zero
	for _, r := range records {
		if r.VehicleNumber != vehicleNumber || r.StartDate.IsZero() {
			continue
		}
		if r.StartDate.Key() > monthStart.Key() {
			continue
		}
		if r.MaintenanceType == models.MaintenanceTax && daysBetween(r.StartDate, monthStart) > taxWindowDays {
			continue
		}
		monthly, err := AmortizeMaintenance(r.MaintenanceType, r.Amount)
		if err != nil {
			continue
		}
		total = total.Add(monthly)
	}
	return total
}

func daysBetween(from, to models.Date) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
