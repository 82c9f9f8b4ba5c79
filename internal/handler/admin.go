package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// AdminHandler serves the moderation endpoints behind RequireRole("admin").
type AdminHandler struct {
	EventRepo *repository.EventRepo
	SeatRepo  *repository.SeatRepo
}

func NewAdminHandler(e *repository.EventRepo, s *repository.SeatRepo) *AdminHandler {
	return &AdminHandler{EventRepo: e, SeatRepo: s}
}

// ListEvents handles GET /admins/events, returning every event including
// pending and rejected ones, with the moderation fields visible.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	events, err := h.EventRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type adminEventOut struct {
		eventOut
		CensorReason *string `json:"censor_reason"`
		CensoredAt   *string `json:"censored_at"`
	}
	out := make([]adminEventOut, 0, len(events))
	for _, e := range events {
		ae := adminEventOut{eventOut: toEventOut(e)}
		if e.CensorReason.Valid {
			ae.CensorReason = &e.CensorReason.String
		}
		if e.CensoredAt.Valid {
			ts := e.CensoredAt.Time.UTC().Format(time.RFC3339)
			ae.CensoredAt = &ts
		}
		out = append(out, ae)
	}
	return c.JSON(http.StatusOK, out)
}

// CensorEvent handles POST /admins/censor-event?event_id=&censor_val=.
// The decision string is written verbatim to both censored_status and
// censor_reason.  The exact value "Approved" additionally generates the
// event's seat grid in the same transaction; any other value (including
// "approved") records the decision without creating seats.  A repeated
// approval inserts the grid again, so the decision and its side effect
// stay mechanically coupled.
func (h *AdminHandler) CensorEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.QueryParam("event_id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event_id"})
	}
	decision := strings.TrimSpace(c.QueryParam("censor_val"))
	if decision == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "censor_val is required"})
	}

	ctx := c.Request().Context()
	if _, err := h.EventRepo.GetByID(ctx, eventID); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.EventRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.EventRepo.CensorTx(ctx, tx, eventID, decision); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "censor failed"})
	}
	seatsCreated := 0
	if decision == "Approved" {
		seats := repository.GenerateSeatGrid(eventID)
		if err := h.SeatRepo.BulkCreateTx(ctx, tx, seats); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seat generation failed"})
		}
		seatsCreated = len(seats)
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Event censored successfully",
		"event_id":      eventID,
		"censor_val":    decision,
		"seats_created": seatsCreated,
	})
}
