package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	out, err := services.DriverService{RequestID: reqID(c)}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/drivers/:id
func GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := services.DriverService{RequestID: reqID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	out, err := services.DriverService{RequestID: reqID(c)}.Create(c.Request.Context(), d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	out, err := services.DriverService{RequestID: reqID(c)}.Update(c.Request.Context(), id, d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/customers
func GetCustomers(c *gin.Context) {
	out, err := services.CustomerService{RequestID: reqID(c)}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/customers/:id
func GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.CustomerService{RequestID: reqID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/customers
func CreateCustomer(c *gin.Context) {
	var cu models.Customer
	if !BindJSONOrError(c, &cu) {
		return
	}
	out, err := services.CustomerService{RequestID: reqID(c)}.Create(c.Request.Context(), cu)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PUT /api/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var cu models.Customer
	if !BindJSONOrError(c, &cu) {
		return
	}
	out, err := services.CustomerService{RequestID: reqID(c)}.Update(c.Request.Context(), id, cu)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/customers/:id/statement
func GetCustomerStatement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.CustomerService{RequestID: reqID(c)}.Statement(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
