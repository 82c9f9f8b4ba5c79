// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the customer-facing catalog handlers:
// browsing, searching, event detail composition and the caller's own
// profile.  Moderation internals (censor reason and timestamps) are kept
// out of public responses.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// CustomerHandler aggregates the repositories needed for catalog browsing
// and profile management.
type CustomerHandler struct {
	EventRepo       *repository.EventRepo
	OrganizerRepo   *repository.OrganizerRepo
	TicketClassRepo *repository.TicketClassRepo
	CategoryRepo    *repository.CategoryRepo
	OrderRepo       *repository.OrderRepo
	UserRepo        *repository.UserRepo
}

func NewCustomerHandler(e *repository.EventRepo, o *repository.OrganizerRepo, tc *repository.TicketClassRepo, cat *repository.CategoryRepo, ord *repository.OrderRepo, u *repository.UserRepo) *CustomerHandler {
	return &CustomerHandler{EventRepo: e, OrganizerRepo: o, TicketClassRepo: tc, CategoryRepo: cat, OrderRepo: ord, UserRepo: u}
}

// eventOut is the public JSON shape of an event.
type eventOut struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	StartDateTime  string  `json:"start_date_time"`
	EndDateTime    string  `json:"end_date_time"`
	Location       string  `json:"location"`
	OrganizerID    *int64  `json:"organizer_id"`
	CategoryID     *int64  `json:"category_id"`
	Status         string  `json:"status"`
	CensoredStatus string  `json:"censored_status"`
}

// ticketClassOut is the public JSON shape of a ticket class.
type ticketClassOut struct {
	ID             uint64  `json:"id"`
	EventID        uint64  `json:"event_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Quantity       uint32  `json:"quantity"`
	SalesStartTime string  `json:"sales_start_time"`
	SalesEndTime   string  `json:"sales_end_time"`
	Status         string  `json:"status"`
}

func toEventOut(e repository.Event) eventOut {
	out := eventOut{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		StartDateTime:  e.StartDateTime,
		EndDateTime:    e.EndDateTime,
		Location:       e.Location,
		Status:         e.Status,
		CensoredStatus: e.CensoredStatus,
	}
	if e.OrganizerID.Valid {
		out.OrganizerID = &e.OrganizerID.Int64
	}
	if e.CategoryID.Valid {
		out.CategoryID = &e.CategoryID.Int64
	}
	return out
}

func toTicketClassOut(tc repository.TicketClass) ticketClassOut {
	return ticketClassOut{
		ID:             tc.ID,
		EventID:        tc.EventID,
		Name:           tc.Name,
		Description:    tc.Description,
		Price:          tc.Price,
		Quantity:       tc.Quantity,
		SalesStartTime: tc.SalesStartTime,
		SalesEndTime:   tc.SalesEndTime,
		Status:         tc.Status,
	}
}

// BrowseEvents handles GET /customers/ with name ordering and offset
// pagination.  page and page_size below 1 are rejected.
func (h *CustomerHandler) BrowseEvents(c echo.Context) error {
	order, page, pageSize, err := parsePagination(
		c.QueryParam("order"), c.QueryParam("page"), c.QueryParam("page_size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	events, err := h.EventRepo.List(c.Request().Context(), order, page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventOut, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOut(e))
	}
	return c.JSON(http.StatusOK, out)
}

// SearchEvents handles GET /customers/search?query= with a case-insensitive
// substring match on the event name.  Query length is bounded to 3..255.
func (h *CustomerHandler) SearchEvents(c echo.Context) error {
	query := c.QueryParam("query")
	if err := validateSearchQuery(query); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	events, err := h.EventRepo.Search(c.Request().Context(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventOut, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOut(e))
	}
	return c.JSON(http.StatusOK, out)
}

// EventDetail handles GET /customers/events/:id.  The response composes
// the event with its resolved organizer (null when the event has none)
// and the full ticket class list.
func (h *CustomerHandler) EventDetail(c echo.Context) error {
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

	var organizer echo.Map
	if event.OrganizerID.Valid {
		if o, err := h.OrganizerRepo.GetByID(ctx, uint64(event.OrganizerID.Int64)); err == nil {
			var name *string
			if o.Name.Valid {
				name = &o.Name.String
			}
			organizer = echo.Map{"id": o.ID, "user_id": o.UserID, "name": name, "tin": o.TIN}
		}
	}

	classes, err := h.TicketClassRepo.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	classesOut := make([]ticketClassOut, 0, len(classes))
	for _, tc := range classes {
		classesOut = append(classesOut, toTicketClassOut(tc))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"event":          toEventOut(*event),
		"organizer":      organizer,
		"ticket_classes": classesOut,
	})
}

// ListTicketClasses handles GET /customers/ticket-classes/:event_id.  An
// event with no classes yields 404, matching the browse contract clients
// rely on.
func (h *CustomerHandler) ListTicketClasses(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	classes, err := h.TicketClassRepo.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(classes) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no ticket classes found for this event"})
	}
	out := make([]ticketClassOut, 0, len(classes))
	for _, tc := range classes {
		out = append(out, toTicketClassOut(tc))
	}
	return c.JSON(http.StatusOK, out)
}

// ListEventTickets handles GET /customers/tickets/:event_id and returns
// every ticket sold across the event's classes.
func (h *CustomerHandler) ListEventTickets(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	classes, err := h.TicketClassRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(classes) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no tickets found for this event"})
	}
	tickets := []ticketOut{}
	for _, tc := range classes {
		rows, err := h.OrderRepo.ListTicketsByClass(ctx, tc.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, t := range rows {
			tickets = append(tickets, toTicketOut(t))
		}
	}
	return c.JSON(http.StatusOK, tickets)
}

// ListCategories handles GET /customers/categories.
func (h *CustomerHandler) ListCategories(c echo.Context) error {
	cats, err := h.CategoryRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type catOut struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	out := make([]catOut, 0, len(cats))
	for _, cat := range cats {
		out = append(out, catOut{ID: cat.ID, Name: cat.Name, Description: cat.Description})
	}
	return c.JSON(http.StatusOK, out)
}

// Profile handles GET /customers/profile, returning the caller's record
// without the password hash.
func (h *CustomerHandler) Profile(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, userProfileOut(u))
}

// UpdateInfo handles POST /customers/info.  A caller may only update
// their own record.
func (h *CustomerHandler) UpdateInfo(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		ID          uint64 `json:"id"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		FullName    string `json:"full_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID != 0 && req.ID != u.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to update this user"})
	}
	u.Email = nullable(req.Email)
	u.PhoneNumber = nullable(req.PhoneNumber)
	u.FullName = nullable(req.FullName)
	if err := h.UserRepo.UpdateProfile(c.Request().Context(), &u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, userProfileOut(u))
}

func userProfileOut(u repository.User) echo.Map {
	var email, phone, fullName *string
	if u.Email.Valid {
		email = &u.Email.String
	}
	if u.PhoneNumber.Valid {
		phone = &u.PhoneNumber.String
	}
	if u.FullName.Valid {
		fullName = &u.FullName.String
	}
	return echo.Map{
		"id":           u.ID,
		"username":     u.Username,
		"email":        email,
		"phone_number": phone,
		"full_name":    fullName,
		"role":         u.Role,
		"status":       u.Status,
	}
}
