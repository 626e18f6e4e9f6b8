package models

import (
	"strings"
	"time"

	"fleetops/internal/money"
)

type PaymentMode string

const (
	PaymentCash         PaymentMode = "cash"
	PaymentCheque       PaymentMode = "cheque"
	PaymentUPI          PaymentMode = "upi"
	PaymentBankTransfer PaymentMode = "bank_transfer"
	PaymentCard         PaymentMode = "card"
	PaymentAdvance      PaymentMode = "advance"
)

// ParsePaymentMode normalizes user input ("Cash", "Bank Transfer") to a known mode.
func ParsePaymentMode(s string) (PaymentMode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	switch PaymentMode(s) {
	case PaymentCash, PaymentCheque, PaymentUPI, PaymentBankTransfer, PaymentCard, PaymentAdvance:
		return PaymentMode(s), true
	case "check":
		return PaymentCheque, true
	case "online":
		return PaymentBankTransfer, true
	}
	return "", false
}

// Payment is money received from a customer against exactly one trip.
type Payment struct {
	ID          int64       `json:"id"`
	TripID      int64       `json:"trip_id"`
	PaymentDate Date        `json:"payment_date"`
	PaymentMode PaymentMode `json:"payment_mode"`
	Amount      money.Money `json:"amount"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
}
