package handlers

import (
	"net/http"
	"strconv"
	"time"

	"fleetops/internal/services"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

type vehiclePayload struct {
	VehicleNumber string `json:"vehicle_number"`
}

// GET /api/vehicles?include_deleted=true
func GetVehicles(c *gin.Context) {
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted"))
	out, err := services.VehicleService{RequestID: reqID(c)}.List(c.Request.Context(), includeDeleted)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var p vehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	v, err := services.VehicleService{RequestID: reqID(c)}.Create(c.Request.Context(), p.VehicleNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /api/vehicles/:number
func GetVehicle(c *gin.Context) {
	v, err := services.VehicleService{RequestID: reqID(c)}.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /api/vehicles/:number  (numeric id)
func DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c, "number")
	if !ok {
		return
	}
	if err := (services.VehicleService{RequestID: reqID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted", "id": id})
}

// GET /api/vehicles/:number/summary?month=YYYY-MM
func GetVehicleSummary(c *gin.Context) {
	month, ok := queryMonth(c, "month")
	if !ok {
		return
	}
	ym := utils.CurrentMonth(time.Now())
	if month != nil {
		ym = *month
	}
	out, err := services.VehicleService{RequestID: reqID(c)}.Summary(c.Request.Context(), c.Param("number"), ym)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
