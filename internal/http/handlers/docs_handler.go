package handlers

import (
	"net/http"

	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/invoice
func GetTripInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := services.DocsService{RequestID: reqID(c)}.Invoice(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GET /api/trips/:id/invoice.pdf returns the invoice inline.
func GetTripInvoicePDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := services.DocsService{RequestID: reqID(c)}.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendAttachment(c, "application/pdf", filename, pdf, true)
}
