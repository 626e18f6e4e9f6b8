// Package finance derives every customer, vendor and fleet figure from raw
// records. Nothing here touches storage; callers pass a snapshot in and get a
// view back, so the same inputs always give the same outputs.
package finance

import (
	"fleetops/internal/domain/models"
	"fleetops/internal/money"
)

// ComputeTripCharge returns the amount billed to the customer for a trip:
// the package amount or distance x rate, plus charged toll and parking.
// Internal cost fields (diesel, petrol, toll, parking, other) are not read.
func ComputeTripCharge(trip models.Trip) money.Money {
	var base money.Money
	switch trip.PricingType {
	case models.PricingPackage:
		base = trip.PackageAmount
	default:
		base = money.AtRate(trip.CostPerKM, trip.DistanceKM)
	}
	return money.Sum(base, trip.ChargedTollAmount, trip.ChargedParkingAmount)
}

// ComputeTripCost is the operating cost of a trip to the fleet owner.
func ComputeTripCost(trip models.Trip) money.Money {
	return money.Sum(
		trip.DieselUsed,
		trip.PetrolUsed,
		trip.TollAmount,
		trip.ParkingAmount,
		trip.OtherExpenses,
	)
}

// tripExpenses is the non-fuel part of a trip's operating cost. Fuel is
// accounted for through fuel entries in period reports.
func tripExpenses(trip models.Trip) money.Money {
	return money.Sum(trip.TollAmount, trip.ParkingAmount, trip.OtherExpenses)
}
