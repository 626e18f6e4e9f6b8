package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/finance"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

// PaymentService records customer payments against trips.
type PaymentService struct {
	DB        *sql.DB
	RequestID string

	now func() time.Time
}

func (s PaymentService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// PaymentResult is the stored payment plus the trip balance after it.
type PaymentResult struct {
	Payment models.Payment      `json:"payment"`
	Balance finance.TripBalance `json:"balance"`
}

// Record validates and stores a payment. The trip row is locked for the
// duration so two concurrent payments cannot both pass the pending check.
func (s PaymentService) Record(ctx context.Context, p models.Payment) (PaymentResult, error) {
	if p.TripID <= 0 {
		return PaymentResult{}, domain.ValidationError{Field: "trip_id", Msg: "is required"}
	}
	mode, ok := models.ParsePaymentMode(string(p.PaymentMode))
	if !ok {
		return PaymentResult{}, domain.ValidationError{Field: "payment_mode", Msg: "unknown mode " + string(p.PaymentMode)}
	}
	p.PaymentMode = mode
	p.Notes = strings.TrimSpace(p.Notes)
	if p.PaymentDate.IsZero() {
		p.PaymentDate = models.DateOf(s.clock())
	}

	var res PaymentResult
	err := withTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
		trip, err := repositories.TripRepository{DB: s.DB}.WithTx(tx).GetByIDForUpdate(ctx, p.TripID)
		if err != nil {
			return err
		}
		payRepo := repositories.PaymentRepository{DB: s.DB}.WithTx(tx)
		existing, err := payRepo.ListByTrip(ctx, p.TripID)
		if err != nil {
			return err
		}
		if err := finance.AcceptPayment(trip, existing, p.Amount); err != nil {
			return err
		}
		if p.ID, err = payRepo.Create(ctx, p); err != nil {
			return err
		}
		p.CreatedAt = s.clock()
		res = PaymentResult{
			Payment: p,
			Balance: finance.ComputeTripBalance(trip, append(existing, p)),
		}
		return nil
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "record", utils.KV("trip_id", p.TripID, "err", err))
		return PaymentResult{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "record", utils.KV(
		"trip_id", p.TripID, "amount", p.Amount, "mode", p.PaymentMode, "status", res.Balance.Status,
	))
	return res, nil
}

func (s PaymentService) ListByTrip(ctx context.Context, tripID int64) ([]models.Payment, error) {
	if _, err := (repositories.TripRepository{DB: s.DB}).GetByID(ctx, tripID); err != nil {
		return nil, err
	}
	return repositories.PaymentRepository{DB: s.DB}.ListByTrip(ctx, tripID)
}

func (s PaymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	return repositories.PaymentRepository{DB: s.DB}.ListAll(ctx)
}

func (s PaymentService) Delete(ctx context.Context, id int64) error {
	if err := (repositories.PaymentRepository{DB: s.DB}).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payment", "delete", utils.KV("payment_id", id))
	return nil
}
