package handlers

import (
	"net/http"

	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/payments
func GetPayments(c *gin.Context) {
	out, err := services.PaymentService{RequestID: reqID(c)}.ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/payments/:id
func DeletePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := (services.PaymentService{RequestID: reqID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment deleted", "id": id})
}
