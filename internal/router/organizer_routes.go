package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/handler"
	"github.com/iliyamo/event-ticket-booking/internal/middleware"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// RegisterOrganizer registers event management endpoints under
// /organizers.  All routes require a valid JWT and the organizer role.
func RegisterOrganizer(e *echo.Echo, h *handler.OrganizerHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group(
		"/organizers",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("organizer"),
	)
	g.POST("/create-event", h.CreateEvent)
	g.POST("/update-event/:id", h.UpdateEvent)
	g.DELETE("/event/:id", h.DeleteEvent)
	g.GET("/events", h.ListEvents)
}
