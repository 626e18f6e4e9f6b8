package services

import (
	"context"
	"database/sql"

	"fleetops/internal/domain"
	"fleetops/internal/finance"
	"fleetops/internal/utils"
)

type ReportsService struct {
	DB        *sql.DB
	RequestID string
}

// Summary aggregates one consistent snapshot of trips, payments and expenses
// under f.
func (s ReportsService) Summary(ctx context.Context, f finance.ReportFilter) (finance.ReportSummary, error) {
	f.VehicleNumber = utils.NormalizeVehicleNumber(f.VehicleNumber)
	if !f.From.IsZero() && !f.To.IsZero() && f.From.Key() > f.To.Key() {
		return finance.ReportSummary{}, domain.ValidationError{Field: "from", Msg: "is after to"}
	}

	snap, err := loadSnapshot(ctx, s.DB)
	if err != nil {
		return finance.ReportSummary{}, err
	}
	out := finance.AggregateReport(snap, f)
	logIssues(s.RequestID, "reports", out.Issues)
	utils.LogEvent(s.RequestID, "reports", "summary", utils.KV(
		"trips", out.TripCount, "revenue", out.TotalRevenue, "issues", len(out.Issues),
	))
	return out, nil
}

func (s ReportsService) Dashboard(ctx context.Context) (finance.DashboardSummary, error) {
	snap, err := loadSnapshot(ctx, s.DB)
	if err != nil {
		return finance.DashboardSummary{}, err
	}
	return finance.Dashboard(snap.Trips, snap.Payments, snap.Fuel, snap.Spares), nil
}
