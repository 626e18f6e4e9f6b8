package finance

import (
	"testing"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"

	"github.com/shopspring/decimal"
)

func rupees(n int64) money.Money { return money.FromRupees(n) }

func perKMTrip(id int64, km string, rate, toll, parking int64) models.Trip {
	return models.Trip{
		ID:                   id,
		PricingType:          models.PricingPerKM,
		DistanceKM:           decimal.RequireFromString(km),
		CostPerKM:            decimal.NewFromInt(rate),
		ChargedTollAmount:    rupees(toll),
		ChargedParkingAmount: rupees(parking),
	}
}

func pay(id, tripID int64, amount money.Money) models.Payment {
	return models.Payment{ID: id, TripID: tripID, Amount: amount, PaymentMode: models.PaymentCash}
}

func TestComputeTripCharge_PerKM(t *testing.T) {
	trip := perKMTrip(1, "100", 15, 50, 0)
	if got := ComputeTripCharge(trip); got != rupees(1550) {
		t.Fatalf("charge = %s, want 1550.00", got)
	}
}

func TestComputeTripCharge_IgnoresInternalCosts(t *testing.T) {
	trip := perKMTrip(1, "10", 20, 0, 0)
	trip.TollAmount = rupees(300)
	trip.ParkingAmount = rupees(40)
	trip.DieselUsed = rupees(900)
	trip.OtherExpenses = rupees(15)
	if got := ComputeTripCharge(trip); got != rupees(200) {
		t.Fatalf("charge = %s, want 200.00", got)
	}
}

func TestComputeTripCharge_PackageIgnoresDistance(t *testing.T) {
	trip := perKMTrip(1, "420", 18, 100, 20)
	trip.PricingType = models.PricingPackage
	trip.PackageAmount = rupees(5000)
	if got := ComputeTripCharge(trip); got != rupees(5120) {
		t.Fatalf("charge = %s, want 5120.00", got)
	}
}

func TestComputeTripCharge_RoundsHalfUp(t *testing.T) {
	trip := perKMTrip(1, "0.5", 0, 0, 0)
	trip.CostPerKM = decimal.RequireFromString("0.01") // 0.01/km x 0.5 = half a paisa
	if got := ComputeTripCharge(trip); got != money.FromMinor(1) {
		t.Fatalf("charge = %d paise, want 1", got)
	}
}

func TestComputeTripCharge_SubPaisaRateRoundedOnce(t *testing.T) {
	trip := perKMTrip(1, "100", 0, 0, 0)
	trip.CostPerKM = decimal.RequireFromString("10.555")
	if got := ComputeTripCharge(trip); got != money.FromMinor(105550) {
		t.Fatalf("charge = %s, want 1055.50", got)
	}
}

func TestFuelLineCost_SubPaisaRate(t *testing.T) {
	f := models.FuelEntry{ID: 4, Quantity: decimal.NewFromInt(3), RatePerLitre: decimal.RequireFromString("10.555"), TotalCost: money.FromMinor(3167)}
	got, err := FuelLineCost(f)
	if err != nil {
		t.Fatalf("FuelLineCost: %v", err)
	}
	if got != money.FromMinor(3167) {
		t.Fatalf("cost = %s, want 31.67 (not 31.68)", got)
	}
}

func TestComputeTripCharge_MissingFieldsAreZero(t *testing.T) {
	if got := ComputeTripCharge(models.Trip{}); !got.IsZero() {
		t.Fatalf("empty trip charge = %s", got)
	}
}

func TestComputeTripBalance_Partial(t *testing.T) {
	trip := perKMTrip(7, "100", 15, 50, 0)
	bal := ComputeTripBalance(trip, []models.Payment{pay(1, 7, rupees(600))})
	if bal.Total != rupees(1550) || bal.Received != rupees(600) || bal.Pending != rupees(950) {
		t.Fatalf("unexpected balance %+v", bal)
	}
	if bal.Status != StatusPartial {
		t.Fatalf("status = %s, want partial", bal.Status)
	}
}

func TestComputeTripBalance_PackagePaid(t *testing.T) {
	trip := models.Trip{ID: 3, PricingType: models.PricingPackage, PackageAmount: rupees(5000)}
	bal := ComputeTripBalance(trip, []models.Payment{pay(1, 3, rupees(5000))})
	if bal.Pending != money.Zero || bal.Status != StatusPaid {
		t.Fatalf("unexpected balance %+v", bal)
	}
}

func TestComputeTripBalance_IgnoresOtherTripsPayments(t *testing.T) {
	trip := models.Trip{ID: 3, PricingType: models.PricingPackage, PackageAmount: rupees(100)}
	bal := ComputeTripBalance(trip, []models.Payment{pay(1, 4, rupees(100))})
	if bal.Received != money.Zero || bal.Status != StatusPending {
		t.Fatalf("unexpected balance %+v", bal)
	}
}

func TestClassifyPayment(t *testing.T) {
	cases := []struct {
		total, received money.Money
		want            PaymentStatus
	}{
		{rupees(100), 0, StatusPending},
		{rupees(100), rupees(40), StatusPartial},
		{rupees(100), rupees(100), StatusPaid},
		{rupees(100), rupees(120), StatusPaid},
		{0, 0, StatusPaid},
	}
	for _, tc := range cases {
		if got := ClassifyPayment(tc.total, tc.received); got != tc.want {
			t.Fatalf("ClassifyPayment(%s, %s) = %s, want %s", tc.total, tc.received, got, tc.want)
		}
	}
}

func TestAcceptPayment(t *testing.T) {
	trip := perKMTrip(7, "100", 15, 50, 0)
	existing := []models.Payment{pay(1, 7, rupees(600))}

	if err := AcceptPayment(trip, existing, rupees(950)); err != nil {
		t.Fatalf("exact pending should be accepted: %v", err)
	}
	if err := AcceptPayment(trip, existing, rupees(951)); !domain.IsValidation(err) {
		t.Fatalf("overpayment should be a validation error, got %v", err)
	}
	if err := AcceptPayment(trip, existing, 0); !domain.IsValidation(err) {
		t.Fatalf("zero payment should be a validation error, got %v", err)
	}
	if err := AcceptPayment(trip, existing, -5); !domain.IsValidation(err) {
		t.Fatalf("negative payment should be a validation error, got %v", err)
	}
}

func vendorID(id int64) *int64 { return &id }

func TestComputeVendorLedger_Scenario(t *testing.T) {
	v := models.Vendor{ID: 9, Name: "XYZ Diesel"}
	fuel := []models.FuelEntry{
		{ID: 1, Vendor: "XYZ Diesel", Quantity: decimal.NewFromInt(100), RatePerLitre: decimal.NewFromInt(90), TotalCost: rupees(9000)},
		{ID: 2, VendorID: vendorID(9), Vendor: "XYZ Diesel", Quantity: decimal.NewFromInt(30), RatePerLitre: decimal.NewFromInt(100), TotalCost: rupees(3000)},
	}
	payments := []models.VendorPayment{
		{ID: 1, VendorID: 9, Amount: rupees(5000)},
		{ID: 2, VendorID: 9, Amount: rupees(3000)},
		{ID: 3, VendorID: 10, Amount: rupees(700)},
	}

	l := ComputeVendorLedger(v, fuel, nil, payments)
	if l.TotalOwed != rupees(12000) || l.TotalPaid != rupees(8000) || l.Pending != rupees(4000) {
		t.Fatalf("unexpected ledger %+v", l)
	}
	if len(l.Issues) != 0 {
		t.Fatalf("unexpected issues %v", l.Issues)
	}
}

func TestComputeVendorLedger_NameMatchIsCaseSensitive(t *testing.T) {
	v := models.Vendor{ID: 1, Name: "ABC Fuels"}
	fuel := []models.FuelEntry{
		{ID: 1, Vendor: "abc fuels", Quantity: decimal.NewFromInt(10), RatePerLitre: decimal.NewFromInt(100), TotalCost: rupees(1000)},
	}
	l := ComputeVendorLedger(v, fuel, nil, nil)
	if l.TotalOwed != money.Zero || l.FuelCount != 0 {
		t.Fatalf("lower-case vendor name must not match: %+v", l)
	}
}

func TestComputeVendorLedger_IDWinsOverName(t *testing.T) {
	v := models.Vendor{ID: 1, Name: "ABC Fuels"}
	spares := []models.SparePartEntry{
		{ID: 1, VendorID: vendorID(2), Vendor: "ABC Fuels", Cost: rupees(500), Quantity: 1},
		{ID: 2, VendorID: vendorID(1), Vendor: "ABC Fuels (old name)", Cost: rupees(250), Quantity: 2},
	}
	l := ComputeVendorLedger(v, nil, spares, nil)
	if l.SpareTotal != rupees(500) || l.SpareCount != 1 {
		t.Fatalf("unexpected spare total %+v", l)
	}
}

func TestComputeVendorLedger_FuelMismatchUsesRecomputed(t *testing.T) {
	v := models.Vendor{ID: 1, Name: "ABC"}
	fuel := []models.FuelEntry{
		{ID: 5, Vendor: "ABC", Quantity: decimal.RequireFromString("10.5"), RatePerLitre: decimal.NewFromInt(100), TotalCost: rupees(1000)},
	}
	l := ComputeVendorLedger(v, fuel, nil, nil)
	if l.FuelTotal != rupees(1050) {
		t.Fatalf("fuel total = %s, want 1050.00", l.FuelTotal)
	}
	if len(l.Issues) != 1 || !domain.IsInconsistentData(l.Issues[0]) {
		t.Fatalf("expected one inconsistency, got %v", l.Issues)
	}
	if fuel[0].TotalCost != rupees(1000) {
		t.Fatalf("stored record must not be rewritten")
	}
}

func TestComputeVendorLedger_PendingClamped(t *testing.T) {
	v := models.Vendor{ID: 1, Name: "ABC"}
	l := ComputeVendorLedger(v, nil, nil, []models.VendorPayment{{VendorID: 1, Amount: rupees(10)}})
	if l.Pending != money.Zero {
		t.Fatalf("pending = %s, want 0.00", l.Pending)
	}
}

func TestVendorTripFuelCost(t *testing.T) {
	v := models.Vendor{ID: 1, Name: "ABC"}
	trips := []models.Trip{
		{ID: 1, Vendor: "ABC", DieselUsed: rupees(400), PetrolUsed: rupees(100)},
		{ID: 2, Vendor: "Other", DieselUsed: rupees(900)},
	}
	if got := VendorTripFuelCost(v, trips); got != rupees(500) {
		t.Fatalf("trip fuel = %s, want 500.00", got)
	}
}

func TestAmortizeMaintenance(t *testing.T) {
	cases := []struct {
		typ    models.MaintenanceType
		amount money.Money
		want   money.Money
	}{
		{models.MaintenanceInsurance, rupees(12000), rupees(1000)},
		{models.MaintenanceTax, rupees(3000), rupees(1000)},
		{models.MaintenanceEMI, rupees(5000), rupees(5000)},
		{models.MaintenanceTax, rupees(1000), money.FromMinor(33333)},
	}
	for _, tc := range cases {
		got, err := AmortizeMaintenance(tc.typ, tc.amount)
		if err != nil {
			t.Fatalf("AmortizeMaintenance(%s): %v", tc.typ, err)
		}
		if got != tc.want {
			t.Fatalf("AmortizeMaintenance(%s, %s) = %s, want %s", tc.typ, tc.amount, got, tc.want)
		}
	}
	if _, err := AmortizeMaintenance("service", rupees(10)); !domain.IsValidation(err) {
		t.Fatalf("unknown type should fail validation, got %v", err)
	}
}

func TestMonthlyMaintenanceCost(t *testing.T) {
	records := []models.MaintenanceRecord{
		{VehicleNumber: "KA01", MaintenanceType: models.MaintenanceEMI, Amount: rupees(5000), StartDate: models.NewDate(2026, 1, 10)},
		{VehicleNumber: "KA01", MaintenanceType: models.MaintenanceInsurance, Amount: rupees(12000), StartDate: models.NewDate(2025, 6, 1)},
		{VehicleNumber: "KA01", MaintenanceType: models.MaintenanceTax, Amount: rupees(3000), StartDate: models.NewDate(2026, 2, 15)},
		{VehicleNumber: "KA01", MaintenanceType: models.MaintenanceTax, Amount: rupees(9000), StartDate: models.NewDate(2025, 9, 1)},
		{VehicleNumber: "KA01", MaintenanceType: models.MaintenanceEMI, Amount: rupees(777), StartDate: models.NewDate(2026, 3, 2)},
		{VehicleNumber: "KA02", MaintenanceType: models.MaintenanceEMI, Amount: rupees(9999), StartDate: models.NewDate(2025, 1, 1)},
	}
	// March 2026: EMI 5000 + insurance 1000 + recent tax 1000; old tax and
	// the EMI starting after the 1st are excluded.
	got := MonthlyMaintenanceCost(records, "KA01", domain.YearMonth{Year: 2026, Month: time.March})
	if got != rupees(7000) {
		t.Fatalf("monthly = %s, want 7000.00", got)
	}
}
