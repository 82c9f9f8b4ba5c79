package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Order groups the tickets purchased in one checkout.  The total amount
// is the value the client declared at checkout; it is stored verbatim and
// never recomputed from ticket class prices.
type Order struct {
	ID              uint64  // orders.id
	UserID          uint64  // orders.user_id
	PaymentMethodID uint64  // orders.payment_method_id
	TotalAmount     float64 // orders.total_amount
	Status          string  // orders.status (pending, completed)
}

// Ticket is a single unit of admission: one row per purchased unit, bound
// to its order, ticket class and purchasing user, and optionally to a
// seat from the event's grid.
type Ticket struct {
	ID            uint64        // tickets.ticket_id
	TicketClassID uint64        // tickets.ticket_class_id
	OrderID       uint64        // tickets.order_id
	UserID        uint64        // tickets.user_id
	SeatID        sql.NullInt64 // tickets.seat_id (null for unseated units)
}

var ErrOrderNotFound = errors.New("order not found")

// OrderRepo manages persistence for orders and their tickets.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying sql.DB so handlers can begin transactions
// spanning the order, ticket and payment method repositories.
func (r *OrderRepo) DB() *sql.DB {
	return r.db
}

// BuildTickets expands one requested order line into its ticket rows.
// Seat IDs pair positionally with units: the i-th unit receives the i-th
// entry of seatIDs, and units beyond the end of the list (or with a nil
// entry) are created unseated.
func BuildTickets(orderID, userID, ticketClassID uint64, quantity int, seatIDs []*uint64) []Ticket {
	tickets := make([]Ticket, 0, quantity)
	for i := 0; i < quantity; i++ {
		t := Ticket{
			TicketClassID: ticketClassID,
			OrderID:       orderID,
			UserID:        userID,
		}
		if i < len(seatIDs) && seatIDs[i] != nil {
			t.SeatID = sql.NullInt64{Int64: int64(*seatIDs[i]), Valid: true}
		}
		tickets = append(tickets, t)
	}
	return tickets
}

// CreateTx inserts a new order within the caller's transaction and
// populates the generated ID on the provided record.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *Order) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, payment_method_id, total_amount, status) VALUES (?, ?, ?, ?)",
		o.UserID, o.PaymentMethodID, o.TotalAmount, o.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// CreateTicketTx inserts a single ticket row within the caller's
// transaction, populating its generated ID.  Tickets are inserted one per
// unit so each row gets its identifier back for the response.
func (r *OrderRepo) CreateTicketTx(ctx context.Context, tx *sql.Tx, t *Ticket) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO tickets (ticket_class_id, order_id, user_id, seat_id) VALUES (?, ?, ?, ?)",
		t.TicketClassID, t.OrderID, t.UserID, t.SeatID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

const orderCols = "id, user_id, payment_method_id, total_amount, status"

func scanOrder(row *sql.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.PaymentMethodID, &o.TotalAmount, &o.Status)
	if err == sql.ErrNoRows {
		return o, ErrOrderNotFound
	}
	return o, err
}

// GetByID retrieves an order regardless of owner.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (Order, error) {
	return scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE id = ? LIMIT 1", id))
}

// GetByIDAndUser retrieves an order only when it belongs to the given
// user; a missing row and a foreign owner are indistinguishable to the
// caller, both yielding ErrOrderNotFound.
func (r *OrderRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (Order, error) {
	return scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE id = ? AND user_id = ? LIMIT 1", id, userID))
}

// Complete marks an order completed.
func (r *OrderRepo) Complete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE orders SET status = 'completed' WHERE id = ?", id)
	return err
}

// Delete removes an order row.  Returns ErrOrderNotFound when nothing was
// deleted.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ListByUser returns all orders owned by a user, oldest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE user_id = ? ORDER BY id ASC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.PaymentMethodID, &o.TotalAmount, &o.Status); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListTicketsByOrder returns the tickets created under an order.
func (r *OrderRepo) ListTicketsByOrder(ctx context.Context, orderID uint64) ([]Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT ticket_id, ticket_class_id, order_id, user_id, seat_id FROM tickets WHERE order_id = ? ORDER BY ticket_id ASC",
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Ticket{}
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.TicketClassID, &t.OrderID, &t.UserID, &t.SeatID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTicketsByClass returns the tickets sold against a ticket class.
func (r *OrderRepo) ListTicketsByClass(ctx context.Context, ticketClassID uint64) ([]Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT ticket_id, ticket_class_id, order_id, user_id, seat_id FROM tickets WHERE ticket_class_id = ? ORDER BY ticket_id ASC",
		ticketClassID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Ticket{}
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.TicketClassID, &t.OrderID, &t.UserID, &t.SeatID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
