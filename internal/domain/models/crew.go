package models

import (
	"time"

	"fleetops/internal/money"
)

// DriverSalary is one salary payout to a driver.
type DriverSalary struct {
	ID        int64       `json:"id"`
	DriverID  int64       `json:"driver_id"`
	Amount    money.Money `json:"amount"`
	PaidOn    Date        `json:"paid_on"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
}

// DriverExpense is money a driver spent on the road during a trip (fines,
// local tolls, tips). It is shown against the trip but never billed.
type DriverExpense struct {
	ID          int64       `json:"id"`
	TripID      int64       `json:"trip_id"`
	DriverID    int64       `json:"driver_id"`
	Description string      `json:"description"`
	Amount      money.Money `json:"amount"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

// DriverExpensePatch carries only the fields the client sent.
type DriverExpensePatch struct {
	Description *string      `json:"description"`
	Amount      *money.Money `json:"amount"`
	Notes       *string      `json:"notes"`
}

func (p DriverExpensePatch) Apply(e DriverExpense) DriverExpense {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}

// VehicleNote is a dated remark shown on the dashboard calendar.
type VehicleNote struct {
	ID        int64     `json:"id"`
	VehicleID int64     `json:"vehicle_id"`
	Note      string    `json:"note"`
	NoteDate  Date      `json:"note_date"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
