package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// OrganizerHandler serves the event management endpoints available to the
// organizer role.  Every route here sits behind JWTAuth plus
// RequireRole("organizer"), so handlers resolve the caller's organizer
// row rather than re-checking the role.
type OrganizerHandler struct {
	EventRepo     *repository.EventRepo
	OrganizerRepo *repository.OrganizerRepo
	CategoryRepo  *repository.CategoryRepo
}

func NewOrganizerHandler(e *repository.EventRepo, o *repository.OrganizerRepo, cat *repository.CategoryRepo) *OrganizerHandler {
	return &OrganizerHandler{EventRepo: e, OrganizerRepo: o, CategoryRepo: cat}
}

type eventReq struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"` // "YYYY-MM-DD"
	EndDate       string `json:"end_date"`
	StartDateTime string `json:"start_date_time"` // "HH:MM"
	EndDateTime   string `json:"end_date_time"`
	Location      string `json:"location"`
	CategoryID    uint64 `json:"category_id"`
}

func (r *eventReq) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.StartDateTime = strings.TrimSpace(r.StartDateTime)
	r.EndDateTime = strings.TrimSpace(r.EndDateTime)
}

// validateEventDates rejects missing dates and inverted ranges.  The date
// columns are plain strings, so the comparison is lexicographic; it is
// correct for the "YYYY-MM-DD" layout used here.
func validateEventDates(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return errors.New("start_date and end_date are required")
	}
	if startDate > endDate {
		return errors.New("start_date must not be after end_date")
	}
	return nil
}

// organizerFor resolves the caller's event_organizers row.
func (h *OrganizerHandler) organizerFor(c echo.Context) (repository.EventOrganizer, error) {
	userID, err := getUserID(c)
	if err != nil {
		return repository.EventOrganizer{}, err
	}
	return h.OrganizerRepo.GetByUserID(c.Request().Context(), userID)
}

// CreateEvent handles POST /organizers/create-event.  The event starts in
// moderation state Pending and is invisible to customers until approved.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	org, err := h.organizerFor(c)
	if err != nil {
		if err == repository.ErrOrganizerNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no organizer profile for this user"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.trim()
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := validateEventDates(req.StartDate, req.EndDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.CategoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id is required"})
	}
	ctx := c.Request().Context()
	if _, err := h.CategoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	event := repository.Event{
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Location:      req.Location,
		OrganizerID:   sql.NullInt64{Int64: int64(org.ID), Valid: true},
		CategoryID:    sql.NullInt64{Int64: int64(req.CategoryID), Valid: true},
		Status:        "upcoming",
	}
	if err := h.EventRepo.Create(ctx, &event); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create event"})
	}
	return c.JSON(http.StatusCreated, toEventOut(event))
}

// UpdateEvent handles POST /organizers/update-event/:id.  Only events
// belonging to the caller's organizer profile can be edited.
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
	org, err := h.organizerFor(c)
	if err != nil {
		if err == repository.ErrOrganizerNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no organizer profile for this user"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	event, err := h.EventRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !event.OrganizerID.Valid || uint64(event.OrganizerID.Int64) != org.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	}

	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.trim()
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := validateEventDates(req.StartDate, req.EndDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	event.Name = req.Name
	event.Description = req.Description
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.StartDateTime = req.StartDateTime
	event.EndDateTime = req.EndDateTime
	event.Location = req.Location
	if err := h.EventRepo.Update(ctx, event); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toEventOut(*event))
}

// DeleteEvent handles DELETE /organizers/event/:id.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	org, err := h.organizerFor(c)
	if err != nil {
		if err == repository.ErrOrganizerNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no organizer profile for this user"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	event, err := h.EventRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !event.OrganizerID.Valid || uint64(event.OrganizerID.Int64) != org.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your event"})
	}
	if err := h.EventRepo.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully", "event_id": id})
}

// ListEvents handles GET /organizers/events: every approved event plus
// the caller's own regardless of moderation state.
func (h *OrganizerHandler) ListEvents(c echo.Context) error {
	org, err := h.organizerFor(c)
	if err != nil {
		if err == repository.ErrOrganizerNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no organizer profile for this user"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.EventRepo.ListApprovedOrOwned(c.Request().Context(), org.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventOut, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOut(e))
	}
	return c.JSON(http.StatusOK, out)
}
