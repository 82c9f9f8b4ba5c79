package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/handler"
	"github.com/iliyamo/event-ticket-booking/internal/middleware"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// RegisterAdmin registers the moderation endpoints under /admins.  All
// routes require a valid JWT and the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group(
		"/admins",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("admin"),
	)
	g.GET("/events", h.ListEvents)
	g.POST("/censor-event", h.CensorEvent)
}
