package handlers

import (
	"net/http"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/driver-salaries/driver/:id
func GetDriverSalaries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.DriverSalaryService{RequestID: reqID(c)}.ListByDriver(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/driver-salaries
func CreateDriverSalary(c *gin.Context) {
	var s models.DriverSalary
	if !BindJSONOrError(c, &s) {
		return
	}
	out, err := services.DriverSalaryService{RequestID: reqID(c)}.Record(c.Request.Context(), s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// DELETE /api/driver-salaries/:id
func DeleteDriverSalary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := (services.DriverSalaryService{RequestID: reqID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver salary deleted", "id": id})
}

// POST /api/driver-expenses
func CreateDriverExpense(c *gin.Context) {
	var e models.DriverExpense
	if !BindJSONOrError(c, &e) {
		return
	}
	out, err := services.DriverExpenseService{RequestID: reqID(c)}.Create(c.Request.Context(), e)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/driver-expenses/trip/:id
func GetTripDriverExpenses(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.DriverExpenseService{RequestID: reqID(c)}.ListByTrip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/driver-expenses/driver/:id
func GetDriverDriverExpenses(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.DriverExpenseService{RequestID: reqID(c)}.ListByDriver(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/driver-expenses/:id
func GetDriverExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.DriverExpenseService{RequestID: reqID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/driver-expenses/:id
func UpdateDriverExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch models.DriverExpensePatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	out, err := services.DriverExpenseService{RequestID: reqID(c)}.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/driver-expenses/:id
func DeleteDriverExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := (services.DriverExpenseService{RequestID: reqID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver expense deleted", "id": id})
}

// GET /api/vehicle-notes?vehicle_id=1&month=2026-01
func GetVehicleNotes(c *gin.Context) {
	vehicleID, ok := queryInt64(c, "vehicle_id")
	if !ok {
		return
	}
	month, ok := queryMonth(c, "month")
	if !ok {
		return
	}
	if month == nil {
		RespondDomainError(c, domain.ValidationError{Field: "month", Msg: "is required"})
		return
	}
	out, err := services.VehicleNoteService{RequestID: reqID(c)}.ListForMonth(c.Request.Context(), vehicleID, *month)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/vehicle-notes
func CreateVehicleNote(c *gin.Context) {
	var n models.VehicleNote
	if !BindJSONOrError(c, &n) {
		return
	}
	var createdBy int64
	if u := middleware.GetSession(c).User(); u != nil {
		createdBy = u.UserID
	}
	out, err := services.VehicleNoteService{RequestID: reqID(c)}.Create(c.Request.Context(), n, createdBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// DELETE /api/vehicle-notes/:id
func DeleteVehicleNote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := (services.VehicleNoteService{RequestID: reqID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle note deleted", "id": id})
}
