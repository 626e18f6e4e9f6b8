package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fleetops backend running"})
}

// requiredSchema lists the tables and columns the API cannot work without.
var requiredSchema = map[string][]string{
	"trips":           {"invoice_number", "pricing_type", "charged_toll_amount"},
	"payments":        {"trip_id", "payment_mode"},
	"fuel_entries":    {"vendor_id", "total_cost"},
	"spare_parts":     {"vendor_id", "quantity"},
	"vendors":         {"category"},
	"maintenance":     {"maintenance_type", "start_date"},
	"vehicles":        {"is_deleted", "active_number"},
	"users":           {"role"},
	"vendor_payments": {"paid_on"},
	"driver_salaries": {"driver_id", "paid_on"},
	"driver_expenses": {"trip_id", "driver_id"},
	"vehicle_notes":   {"vehicle_id", "note_date"},
}

func DBCheck(c *gin.Context) {
	db := intconfig.DB
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed", err.Error())
		return
	}

	missing := []string{}
	for table, cols := range requiredSchema {
		if !intdb.HasTable(ctx, db, table) {
			missing = append(missing, table)
			continue
		}
		for _, col := range cols {
			if !intdb.HasColumn(ctx, db, table, col) {
				missing = append(missing, table+"."+col)
			}
		}
	}
	if len(missing) > 0 {
		respondError(c, http.StatusInternalServerError, "schema_incomplete", "database schema incomplete", gin.H{"missing": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK"})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
