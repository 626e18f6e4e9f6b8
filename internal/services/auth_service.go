package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type AuthService struct {
	DB        *sql.DB
	Tokens    *auth.TokenService
	RequestID string
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        models.PublicUser `json:"user"`
}

// Login checks credentials and issues an access token. Unknown users and wrong
// passwords produce the same error.
func (s AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Field: "username", Msg: "username and password are required"}
	}

	u, err := repositories.UserRepository{DB: s.DB}.GetByUsername(ctx, username)
	if err != nil && !domain.IsNotFound(err) {
		return LoginResult{}, err
	}
	if err != nil || !auth.CheckPassword(u.PasswordHash, password) {
		utils.LogEvent(s.RequestID, "auth", "login_failed", utils.KV("username", username))
		return LoginResult{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}

	token, exp, err := s.Tokens.Issue(auth.Principal{UserID: u.ID, Username: u.Username, Role: u.Role})
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "issue token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", utils.KV("user_id", u.ID, "role", u.Role))
	return LoginResult{AccessToken: token, TokenType: "bearer", ExpiresAt: exp, User: u.ToPublic()}, nil
}

func validRole(r domain.Role) bool {
	switch r {
	case domain.RoleAdmin, domain.RoleLimited, domain.RoleUser:
		return true
	}
	return false
}

func (s AuthService) CreateUser(ctx context.Context, username, password string, role domain.Role) (models.PublicUser, error) {
	username = strings.TrimSpace(username)
	role = domain.Role(strings.ToLower(strings.TrimSpace(string(role))))
	if role == "" {
		role = domain.RoleUser
	}
	if err := requireText("username", username); err != nil {
		return models.PublicUser{}, err
	}
	if len(password) < 6 {
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	if !validRole(role) {
		return models.PublicUser{}, domain.ValidationError{Field: "role", Msg: "must be admin, limited or user"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "hash password", Err: err}
	}
	u := models.User{Username: username, PasswordHash: hash, Role: role}
	if u.ID, err = (repositories.UserRepository{DB: s.DB}).Create(ctx, u); err != nil {
		return models.PublicUser{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "create_user", utils.KV("user_id", u.ID, "role", role))
	return u.ToPublic(), nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil
	}
	_, err := repositories.UserRepository{DB: s.DB}.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}
	_, err = s.CreateUser(ctx, username, password, domain.RoleAdmin)
	return err
}
