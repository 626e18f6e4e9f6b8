package finance

import (
	"fmt"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/money"
)

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusPending PaymentStatus = "pending"
)

// TripBalance is the derived billing view of one trip.
type TripBalance struct {
	TripID   int64         `json:"trip_id"`
	Total    money.Money   `json:"total_charged"`
	Received money.Money   `json:"amount_received"`
	Pending  money.Money   `json:"pending_amount"`
	Status   PaymentStatus `json:"payment_status"`
}

// ClassifyPayment maps totals to a status. Pending is clamped before the
// comparison, so an over-received trip still reads as paid.
func ClassifyPayment(total, received money.Money) PaymentStatus {
	pending := total.Sub(received).ClampZero()
	switch {
	case pending.IsZero():
		return StatusPaid
	case received.IsZero():
		return StatusPending
	default:
		return StatusPartial
	}
}

// ComputeTripBalance sums the trip's payments. Payments that belong to
// another trip are ignored.
func ComputeTripBalance(trip models.Trip, payments []models.Payment) TripBalance {
	total := ComputeTripCharge(trip)
	received := money.Zero
	for _, p := range payments {
		if p.TripID != trip.ID {
			continue
		}
		received = received.Add(p.Amount)
	}
	return TripBalance{
		TripID:   trip.ID,
		Total:    total,
		Received: received,
		Pending:  total.Sub(received).ClampZero(),
		Status:   ClassifyPayment(total, received),
	}
}

// AcceptPayment validates a new payment against the trip's current balance.
// It must run against the same snapshot that will be written.
func AcceptPayment(trip models.Trip, existing []models.Payment, amount money.Money) error {
	if amount.IsNegative() || amount.IsZero() {
		return domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	bal := ComputeTripBalance(trip, existing)
	if amount > bal.Pending {
		return domain.ValidationError{
			Field: "amount",
			Msg:   fmt.Sprintf("exceeds pending balance %s", bal.Pending),
		}
	}
	return nil
}
