package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"
	"fleetops/internal/services"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/trips?vehicle=&driver_id=&customer_id=&from=&to=
func GetTrips(c *gin.Context) {
	var (
		f  models.TripFilter
		ok bool
	)
	f.VehicleNumber = utils.TrimOrEmpty(c.Query("vehicle"))
	if f.DriverID, ok = queryInt64(c, "driver_id"); !ok {
		return
	}
	if f.CustomerID, ok = queryInt64(c, "customer_id"); !ok {
		return
	}
	if f.From, ok = queryDate(c, "from"); !ok {
		return
	}
	if f.To, ok = queryDate(c, "to"); !ok {
		return
	}

	out, err := services.TripService{RequestID: reqID(c)}.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := services.TripService{RequestID: reqID(c)}.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.TripService{RequestID: reqID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var t models.Trip
	if !BindJSONOrError(c, &t) {
		return
	}
	out, err := services.TripService{RequestID: reqID(c)}.Update(c.Request.Context(), id, t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := (services.TripService{RequestID: reqID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted", "id": id})
}

// GET /api/trips/:id/balance
func GetTripBalance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.TripService{RequestID: reqID(c)}.Balance(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/:id/payments
func GetTripPayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.PaymentService{RequestID: reqID(c)}.ListByTrip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/trips/:id/payments
func CreateTripPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.Payment
	if !BindJSONOrError(c, &p) {
		return
	}
	p.TripID = id
	out, err := services.PaymentService{RequestID: reqID(c)}.Record(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
