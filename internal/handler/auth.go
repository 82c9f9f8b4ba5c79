package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/config"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
	"github.com/iliyamo/event-ticket-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg        config.Config
	Users      *repository.UserRepo
	Organizers *repository.OrganizerRepo
	Tokens     *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, o *repository.OrganizerRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Organizers: o, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"` // user | organizer | admin
	TIN         string `json:"tin"`  // required when role=organizer
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func nullable(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// Register creates a user and, for the organizer role, its
// event_organizers row in the same transaction.  Duplicate usernames and
// organizer registrations without a TIN are rejected with 400.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = "user"
	}
	if role != "user" && role != "organizer" && role != "admin" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}
	if role == "organizer" && strings.TrimSpace(req.TIN) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tin is required for organizers"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Users.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	u := repository.User{
		Username:    req.Username,
		Email:       nullable(req.Email),
		PhoneNumber: nullable(req.PhoneNumber),
		FullName:    nullable(req.FullName),
		Role:        role,
		Status:      "active",
	}
	uid, err := h.Users.CreateTx(ctx, tx, &u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	if role == "organizer" {
		if _, err := h.Organizers.CreateTx(ctx, tx, uid, u.FullName, strings.TrimSpace(req.TIN)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create organizer failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user_id": uid,
	})
}

// Login verifies credentials and returns a signed access token.  The
// signed value is also persisted so the session can be revoked by logout.
// An unknown username and a wrong password produce the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect username or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Tokens.Store(ctx, u.ID, access.Token, access.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": access.Token,
		"token_type":   "bearer",
		"user_id":      u.ID,
		"user_role":    u.Role,
	})
}

// Logout revokes the presented token by deleting its persisted row.  A
// token that was never issued (or already revoked) yields 401.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, _ := c.Get("token").(string)
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.DeleteByToken(ctx, raw); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully logged out"})
}

// Me returns the authenticated user's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var email *string
	if u.Email.Valid {
		email = &u.Email.String
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    email,
	})
}
