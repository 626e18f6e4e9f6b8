package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/http/middleware"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "invalid id", Err: err})
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, key string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		RespondDomainError(c, domain.ValidationError{Field: key, Msg: "must be a number", Err: err})
		return 0, false
	}
	return n, true
}

func queryDate(c *gin.Context, key string) (models.Date, bool) {
	d, err := models.ParseDate(c.Query(key))
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: key, Msg: "expected YYYY-MM-DD", Err: err})
		return models.Date{}, false
	}
	return d, true
}

// queryMonth parses ?month=YYYY-MM; absent yields nil.
func queryMonth(c *gin.Context, key string) (*domain.YearMonth, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	ym, err := utils.ParseMonth(raw)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: key, Msg: err.Error()})
		return nil, false
	}
	return &ym, true
}

func reqID(c *gin.Context) string { return middleware.GetRequestID(c) }

func sendAttachment(c *gin.Context, contentType, filename string, data []byte, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
