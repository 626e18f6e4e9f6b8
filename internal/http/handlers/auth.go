package handlers

import (
	"net/http"
	"sync"

	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/http/middleware"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	tokensMu sync.RWMutex
	tokens   *auth.TokenService
)

// SetTokenService installs the token issuer used by Login.
func SetTokenService(t *auth.TokenService) {
	tokensMu.Lock()
	defer tokensMu.Unlock()
	tokens = t
}

func tokenService() *auth.TokenService {
	tokensMu.RLock()
	defer tokensMu.RUnlock()
	return tokens
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	ts := tokenService()
	if ts == nil {
		RespondDomainError(c, domain.InternalError{Msg: "token service not configured"})
		return
	}
	svc := services.AuthService{Tokens: ts, RequestID: reqID(c)}
	res, err := svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/auth/me
func Me(c *gin.Context) {
	u := middleware.GetSession(c).User()
	if u == nil {
		RespondDomainError(c, domain.UnauthorizedError{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
