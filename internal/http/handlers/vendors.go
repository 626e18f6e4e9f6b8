package handlers

import (
	"net/http"

	"fleetops/internal/domain/models"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/vendors?category=fuel
func GetVendors(c *gin.Context) {
	out, err := services.VendorService{RequestID: reqID(c)}.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/vendors
func CreateVendor(c *gin.Context) {
	var v models.Vendor
	if !BindJSONOrError(c, &v) {
		return
	}
	out, err := services.VendorService{RequestID: reqID(c)}.Create(c.Request.Context(), v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/vendors/:id/ledger
func GetVendorLedger(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.VendorService{RequestID: reqID(c)}.Ledger(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/vendors/:id/payments
func GetVendorPayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	out, err := services.VendorService{RequestID: reqID(c)}.ListPayments(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/vendors/:id/payments
func CreateVendorPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.VendorPayment
	if !BindJSONOrError(c, &p) {
		return
	}
	p.VendorID = id
	out, err := services.VendorService{RequestID: reqID(c)}.RecordPayment(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// DELETE /api/vendor-payments/:id
func DeleteVendorPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := (services.VendorService{RequestID: reqID(c)}).DeletePayment(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vendor payment deleted", "id": id})
}
