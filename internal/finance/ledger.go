package finance

import (
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"
)

// VendorLedger is what the fleet owes a supplier net of payments made.
type VendorLedger struct {
	VendorID   int64       `json:"vendor_id"`
	VendorName string      `json:"vendor_name"`
	FuelTotal  money.Money `json:"fuel_total"`
	SpareTotal money.Money `json:"spare_total"`
	TotalOwed  money.Money `json:"total_owed"`
	TotalPaid  money.Money `json:"total_paid"`
	Pending    money.Money `json:"pending"`
	FuelCount  int         `json:"fuel_entries"`
	SpareCount int         `json:"spare_entries"`
	Issues     []error     `json:"-"`
}

// FuelLineCost recomputes quantity x rate. When the stored total disagrees by
// more than a paisa the mismatch is returned alongside the recomputed value.
func FuelLineCost(f models.FuelEntry) (money.Money, error) {
	computed := money.AtRate(f.RatePerLitre, f.Quantity)
	diff := f.TotalCost.Sub(computed)
	if diff > 1 || diff < -1 {
		return computed, domain.InconsistentDataError{
			Entity:   "fuel_entry",
			ID:       f.ID,
			Field:    "total_cost",
			Stored:   f.TotalCost.String(),
			Computed: computed.String(),
		}
	}
	return computed, nil
}

// SpareLineCost is unit cost x quantity.
func SpareLineCost(s models.SparePartEntry) money.Money {
	return s.Cost.MulInt(s.Quantity)
}

// belongsTo matches by vendor id when the entry carries one. Rows recorded
// before ids existed fall back to exact, case-sensitive name equality.
func belongsTo(v models.Vendor, vendorID *int64, vendorName string) bool {
	if vendorID != nil {
		return *vendorID == v.ID
	}
	return vendorName != "" && vendorName == v.Name
}

func ComputeVendorLedger(
	v models.Vendor,
	fuel []models.FuelEntry,
	spares []models.SparePartEntry,
	payments []models.VendorPayment,
) VendorLedger {
	l := VendorLedger{VendorID: v.ID, VendorName: v.Name}

	for _, f := range fuel {
		if !belongsTo(v, f.VendorID, f.Vendor) {
			continue
		}
		cost, err := FuelLineCost(f)
		if err != nil {
			l.Issues = append(l.Issues, err)
		}
		l.FuelTotal = l.FuelTotal.Add(cost)
		l.FuelCount++
	}
	for _, s := range spares {
		if !belongsTo(v, s.VendorID, s.Vendor) {
			continue
		}
		l.SpareTotal = l.SpareTotal.Add(SpareLineCost(s))
		l.SpareCount++
	}
	for _, p := range payments {
		if p.VendorID != v.ID {
			continue
		}
		l.TotalPaid = l.TotalPaid.Add(p.Amount)
	}

	l.TotalOwed = l.FuelTotal.Add(l.SpareTotal)
	l.Pending = l.TotalOwed.Sub(l.TotalPaid).ClampZero()
	return l
}

// VendorTripFuelCost is diesel and petrol bought on trips from this vendor.
// It is reported beside the ledger and is not payable through it.
func VendorTripFuelCost(v models.Vendor, trips []models.Trip) money.Money {
	total := money.Zero
	for _, t := range trips {
		if t.Vendor == "" || t.Vendor != v.Name {
			continue
		}
		total = total.Add(t.DieselUsed).Add(t.PetrolUsed)
	}
	return total
}
