package handlers

import (
	"net/http"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/services"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

func expenses(c *gin.Context) services.ExpenseService {
	return services.ExpenseService{RequestID: reqID(c)}
}

// GET /api/fuel?vehicle=
func ListFuel(c *gin.Context) {
	out, err := expenses(c).ListFuel(c.Request.Context(), c.Query("vehicle"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/fuel
func CreateFuel(c *gin.Context) {
	var f models.FuelEntry
	if !BindJSONOrError(c, &f) {
		return
	}
	out, err := expenses(c).CreateFuel(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/fuel/:id
func GetFuel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := expenses(c).GetFuel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/fuel/:id
func UpdateFuel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var f models.FuelEntry
	if !BindJSONOrError(c, &f) {
		return
	}
	out, err := expenses(c).UpdateFuel(c.Request.Context(), id, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/fuel/:id
func DeleteFuel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := expenses(c).DeleteFuel(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fuel entry deleted", "id": id})
}

// GET /api/spare-parts?vehicle=
func ListSpareParts(c *gin.Context) {
	out, err := expenses(c).ListSpareParts(c.Request.Context(), c.Query("vehicle"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/spare-parts
func CreateSparePart(c *gin.Context) {
	var sp models.SparePartEntry
	if !BindJSONOrError(c, &sp) {
		return
	}
	out, err := expenses(c).CreateSparePart(c.Request.Context(), sp)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/spare-parts/:id
func GetSparePart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := expenses(c).GetSparePart(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/spare-parts/:id
func UpdateSparePart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var sp models.SparePartEntry
	if !BindJSONOrError(c, &sp) {
		return
	}
	out, err := expenses(c).UpdateSparePart(c.Request.Context(), id, sp)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/spare-parts/:id
func DeleteSparePart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := expenses(c).DeleteSparePart(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "spare part deleted", "id": id})
}

// GET /api/maintenance?vehicle=&type=
func ListMaintenance(c *gin.Context) {
	typ := models.MaintenanceType(utils.TrimOrEmpty(c.Query("type")))
	if typ != "" && !typ.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "type", Msg: "must be emi, insurance or tax"})
		return
	}
	out, err := expenses(c).ListMaintenance(c.Request.Context(), c.Query("vehicle"), typ)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/maintenance/:id
func GetMaintenance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := expenses(c).GetMaintenance(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/maintenance
func CreateMaintenance(c *gin.Context) {
	var m models.MaintenanceRecord
	if !BindJSONOrError(c, &m) {
		return
	}
	out, err := expenses(c).CreateMaintenance(c.Request.Context(), m)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /api/maintenance/:id
func UpdateMaintenance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var m models.MaintenanceRecord
	if !BindJSONOrError(c, &m) {
		return
	}
	out, err := expenses(c).UpdateMaintenance(c.Request.Context(), id, m)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/maintenance/:id
func DeleteMaintenance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := expenses(c).DeleteMaintenance(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "maintenance record deleted", "id": id})
}

// GET /api/maintenance/monthly?vehicle=KA01AB1234&month=2026-03
func GetMonthlyMaintenance(c *gin.Context) {
	month, ok := queryMonth(c, "month")
	if !ok {
		return
	}
	ym := utils.CurrentMonth(time.Now())
	if month != nil {
		ym = *month
	}
	out, err := expenses(c).Monthly(c.Request.Context(), c.Query("vehicle"), ym)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
