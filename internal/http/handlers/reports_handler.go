package handlers

import (
	"net/http"

	"fleetops/internal/finance"
	"fleetops/internal/services"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportFilter reads ?vehicle=&driver_id=&from=&to=&month=YYYY-MM.
func reportFilter(c *gin.Context) (finance.ReportFilter, bool) {
	var (
		f  finance.ReportFilter
		ok bool
	)
	f.VehicleNumber = utils.TrimOrEmpty(c.Query("vehicle"))
	if f.DriverID, ok = queryInt64(c, "driver_id"); !ok {
		return f, false
	}
	if f.From, ok = queryDate(c, "from"); !ok {
		return f, false
	}
	if f.To, ok = queryDate(c, "to"); !ok {
		return f, false
	}
	if f.Month, ok = queryMonth(c, "month"); !ok {
		return f, false
	}
	return f, true
}

// GET /api/reports/summary
func GetReportSummary(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	out, err := services.ReportsService{RequestID: reqID(c)}.Summary(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/reports/summary.xlsx
func GetReportSummaryXLSX(c *gin.Context) {
	f, ok := reportFilter(c)
	if !ok {
		return
	}
	svc := services.ExportService{
		Reports:   services.ReportsService{RequestID: reqID(c)},
		RequestID: reqID(c),
	}
	data, filename, err := svc.SummaryXLSX(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, xlsxContentType, filename, data, false)
}

// GET /api/dashboard
func GetDashboard(c *gin.Context) {
	out, err := services.ReportsService{RequestID: reqID(c)}.Dashboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
