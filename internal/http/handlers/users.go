package handlers

import (
	"net/http"

	"fleetops/internal/domain"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// POST /api/users (admin)
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := services.AuthService{RequestID: reqID(c)}.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}
