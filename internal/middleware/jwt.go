package middleware // middleware contains reusable HTTP middleware functions

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-ticket-booking/internal/repository"
    "github.com/iliyamo/event-ticket-booking/internal/utils"
)

// UserResolver resolves the token subject to a stored user.  It is
// satisfied by *repository.UserRepo.
type UserResolver interface {
    GetByUsername(ctx context.Context, username string) (repository.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and resolves its subject to an existing user.  The provided secret must
// match the one used when issuing tokens.  On success the middleware
// injects the resolved user and its identifying claims into the request
// context under "user", "user_id", "username" and "role" so handlers can
// read them via c.Get().
//
// Validation is signature-and-expiry only: the persisted jwt_tokens row
// created at login is not consulted here, so a token revoked by logout
// keeps passing until its exp claim runs out.  See DESIGN.md.
func JWTAuth(secret string, users UserResolver) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            sub, _ := claims["sub"].(string)
            if sub == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // The subject must resolve to a user that still exists; a
            // deleted account invalidates every outstanding token.
            u, err := users.GetByUsername(c.Request().Context(), sub)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
            }

            c.Set("user", u)
            c.Set("user_id", u.ID)
            c.Set("username", u.Username)
            c.Set("role", u.Role)
            // The raw token is kept around for logout, which revokes the
            // persisted row matching this exact string.
            c.Set("token", raw)
            return next(c)
        }
    }
}
