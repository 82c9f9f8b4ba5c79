package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/queue"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
	queue_publisher "github.com/iliyamo/event-ticket-booking/internal/service"
)

// OrderHandler groups the repositories required to create, complete and
// inspect orders.  Order creation is the one multi-statement write in the
// system and runs inside a single transaction: the order row and every
// ticket row commit together or not at all.
//
// There is deliberately no seat locking or quantity enforcement here: two
// concurrent purchases of the same class or seat are not serialized, so
// overselling is possible under load.  That matches the documented
// contract; do not add guards without changing the contract first.
type OrderHandler struct {
	OrderRepo       *repository.OrderRepo
	EventRepo       *repository.EventRepo
	TicketClassRepo *repository.TicketClassRepo
	PaymentRepo     *repository.PaymentMethodRepo
	SeatRepo        *repository.SeatRepo
}

func NewOrderHandler(ord *repository.OrderRepo, e *repository.EventRepo, tc *repository.TicketClassRepo, pm *repository.PaymentMethodRepo, s *repository.SeatRepo) *OrderHandler {
	return &OrderHandler{OrderRepo: ord, EventRepo: e, TicketClassRepo: tc, PaymentRepo: pm, SeatRepo: s}
}

// ----- DTOs -----

type orderLineReq struct {
	TicketClassID uint64    `json:"ticket_class_id"`
	Quantity      int       `json:"quantity"`
	SeatIDs       []*uint64 `json:"seat_ids"` // positional; null entries allowed
}

type createOrderReq struct {
	EventID       uint64         `json:"event_id"`
	Tickets       []orderLineReq `json:"tickets"`
	PaymentMethod string         `json:"payment_method"` // e.g. 'vnpay', 'momo', 'zalopay', 'visa'
	TotalAmount   float64        `json:"total_amount"`
}

type ticketOut struct {
	ID            uint64 `json:"id"`
	TicketClassID uint64 `json:"ticket_class_id"`
	OrderID       uint64 `json:"order_id"`
	UserID        uint64 `json:"user_id"`
	SeatID        *int64 `json:"seat_id"`
}

type orderOut struct {
	ID              uint64      `json:"id"`
	UserID          uint64      `json:"user_id"`
	PaymentMethodID uint64      `json:"payment_method_id"`
	TotalAmount     float64     `json:"total_amount"`
	Status          string      `json:"status"`
	Tickets         []ticketOut `json:"tickets"`
}

func toTicketOut(t repository.Ticket) ticketOut {
	out := ticketOut{
		ID:            t.ID,
		TicketClassID: t.TicketClassID,
		OrderID:       t.OrderID,
		UserID:        t.UserID,
	}
	if t.SeatID.Valid {
		out.SeatID = &t.SeatID.Int64
	}
	return out
}

// CreateOrder handles POST /customers/order.  The declared total_amount
// is stored as-is; it is not recomputed from ticket class prices.
// Quantity availability and sales windows are likewise not checked.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}
	if len(req.Tickets) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets is required"})
	}
	for _, line := range req.Tickets {
		if line.TicketClassID == 0 || line.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each ticket line needs a ticket_class_id and quantity >= 1"})
		}
	}

	ctx := c.Request().Context()

	// The event must exist before anything is written.
	event, err := h.EventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Resolve the payment method by name, creating it lazily on first use.
	pm, err := h.PaymentRepo.GetByNameTx(ctx, tx, req.PaymentMethod)
	if err == repository.ErrPaymentMethodNotFound {
		pm, err = h.PaymentRepo.CreateTx(ctx, tx, req.PaymentMethod)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve payment method"})
	}

	order := repository.Order{
		UserID:          userID,
		PaymentMethodID: pm.ID,
		TotalAmount:     req.TotalAmount,
		Status:          "pending",
	}
	if err := h.OrderRepo.CreateTx(ctx, tx, &order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	created := []repository.Ticket{}
	for _, line := range req.Tickets {
		// Any unknown ticket class aborts the whole order; the deferred
		// rollback removes the order row and every ticket written so far.
		if _, err := h.TicketClassRepo.GetByID(ctx, line.TicketClassID); err != nil {
			if err == repository.ErrTicketClassNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket class not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for _, t := range repository.BuildTickets(order.ID, userID, line.TicketClassID, line.Quantity, line.SeatIDs) {
			ticket := t
			if err := h.OrderRepo.CreateTicketTx(ctx, tx, &ticket); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create ticket"})
			}
			created = append(created, ticket)
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	out := orderOut{
		ID:              order.ID,
		UserID:          order.UserID,
		PaymentMethodID: order.PaymentMethodID,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		Tickets:         make([]ticketOut, 0, len(created)),
	}
	for _, t := range created {
		out.Tickets = append(out.Tickets, toTicketOut(t))
	}

	// Best-effort notification after commit; a broker outage must not fail
	// a purchase that is already durable.
	ev := queue.OrderCreatedEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		EventID:       req.EventID,
		EventName:     event.Name,
		PaymentMethod: pm.Name,
		TotalAmount:   order.TotalAmount,
		TicketCount:   len(created),
		SeatLabels:    h.seatLabels(c, created),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	_ = queue_publisher.PublishOrderCreated(ctx, ev)

	return c.JSON(http.StatusCreated, out)
}

// seatLabels resolves seat numbers for the event payload.  Lookups are
// best-effort: a missing seat row simply drops out of the label list.
func (h *OrderHandler) seatLabels(c echo.Context, tickets []repository.Ticket) []string {
	labels := []string{}
	for _, t := range tickets {
		if !t.SeatID.Valid {
			continue
		}
		if s, err := h.SeatRepo.GetByID(c.Request().Context(), uint64(t.SeatID.Int64)); err == nil {
			labels = append(labels, s.SeatNumber)
		}
	}
	return labels
}

// CompleteOrder handles PUT /customers/order/:id/complete.  Only the
// order's owner may complete it, and completing twice is a conflict.
func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	ctx := c.Request().Context()
	order, err := h.OrderRepo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if order.Status == "completed" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order already completed"})
	}
	if err := h.OrderRepo.Complete(ctx, orderID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order completed successfully", "order_id": orderID})
}

// ViewOrder handles GET /customers/order/:id.
func (h *OrderHandler) ViewOrder(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	order, err := h.OrderRepo.GetByID(c.Request().Context(), orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                order.ID,
		"user_id":           order.UserID,
		"payment_method_id": order.PaymentMethodID,
		"total_amount":      order.TotalAmount,
		"status":            order.Status,
	})
}

// DeleteOrder handles DELETE /customers/order/:id.  Ownership is not
// checked here; any authenticated caller can delete any order.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	ctx := c.Request().Context()
	order, err := h.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.OrderRepo.Delete(ctx, orderID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                order.ID,
		"user_id":           order.UserID,
		"payment_method_id": order.PaymentMethodID,
		"total_amount":      order.TotalAmount,
		"status":            order.Status,
	})
}

// PurchaseHistory handles GET /customers/orders/:user_id.  Each order is
// enriched by resolving its tickets, each ticket's class and seat, the
// event reached through the first ticket's class, and the payment method
// name.  The resolution is read-amplifying but side-effect free.
func (h *OrderHandler) PurchaseHistory(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx := c.Request().Context()
	orders, err := h.OrderRepo.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	type historyTicket struct {
		ID            uint64  `json:"id"`
		TicketClassID uint64  `json:"ticket_class_id"`
		ClassName     string  `json:"class_name"`
		Price         float64 `json:"price"`
		SeatNumber    *string `json:"seat_number"`
	}
	type historyOrder struct {
		ID              uint64          `json:"id"`
		UserID          uint64          `json:"user_id"`
		PaymentMethodID uint64          `json:"payment_method_id"`
		PaymentMethod   string          `json:"payment_method"`
		TotalAmount     float64         `json:"total_amount"`
		Status          string          `json:"status"`
		Tickets         []historyTicket `json:"tickets"`
		Event           *eventOut       `json:"event"`
	}

	out := make([]historyOrder, 0, len(orders))
	for _, order := range orders {
		ho := historyOrder{
			ID:              order.ID,
			UserID:          order.UserID,
			PaymentMethodID: order.PaymentMethodID,
			TotalAmount:     order.TotalAmount,
			Status:          order.Status,
			PaymentMethod:   "Unknown",
			Tickets:         []historyTicket{},
		}
		if pm, err := h.PaymentRepo.GetByID(ctx, order.PaymentMethodID); err == nil {
			ho.PaymentMethod = pm.Name
		}

		tickets, err := h.OrderRepo.ListTicketsByOrder(ctx, order.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		for i, t := range tickets {
			ht := historyTicket{ID: t.ID, TicketClassID: t.TicketClassID}
			if tc, err := h.TicketClassRepo.GetByID(ctx, t.TicketClassID); err == nil {
				ht.ClassName = tc.Name
				ht.Price = tc.Price
				// All tickets in one order reference the same event, so
				// the first ticket's class is enough to resolve it.
				if i == 0 {
					if ev, err := h.EventRepo.GetByID(ctx, tc.EventID); err == nil {
						e := toEventOut(*ev)
						ho.Event = &e
					}
				}
			}
			if t.SeatID.Valid {
				if seat, err := h.SeatRepo.GetByID(ctx, uint64(t.SeatID.Int64)); err == nil {
					ht.SeatNumber = &seat.SeatNumber
				}
			}
			ho.Tickets = append(ho.Tickets, ht)
		}
		out = append(out, ho)
	}
	return c.JSON(http.StatusOK, out)
}
