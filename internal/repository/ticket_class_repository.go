package repository

import (
	"context"
	"database/sql"
	"errors"
)

// TicketClass is a priced category of admission for an event (e.g. "VIP",
// "General").  Sales window dates are "YYYY-MM-DD" strings like the event
// dates they bracket.
type TicketClass struct {
	ID             uint64  // ticket_classes.id
	EventID        uint64  // ticket_classes.event_id
	Name           string  // ticket_classes.name
	Description    string  // ticket_classes.description
	Price          float64 // ticket_classes.price
	Quantity       uint32  // ticket_classes.quantity
	SalesStartTime string  // ticket_classes.sales_start_time
	SalesEndTime   string  // ticket_classes.sales_end_time
	Status         string  // ticket_classes.status (available, sold out)
}

// ErrTicketClassNotFound indicates the requested ticket class does not exist.
var ErrTicketClassNotFound = errors.New("ticket class not found")

type TicketClassRepo struct {
	db *sql.DB
}

func NewTicketClassRepo(db *sql.DB) *TicketClassRepo { return &TicketClassRepo{db: db} }

const ticketClassCols = "id, event_id, name, description, price, quantity, sales_start_time, sales_end_time, status"

// GetByID retrieves a single ticket class, returning
// ErrTicketClassNotFound when absent.
func (r *TicketClassRepo) GetByID(ctx context.Context, id uint64) (*TicketClass, error) {
	var tc TicketClass
	err := r.db.QueryRowContext(ctx,
		"SELECT "+ticketClassCols+" FROM ticket_classes WHERE id = ?", id).
		Scan(&tc.ID, &tc.EventID, &tc.Name, &tc.Description, &tc.Price, &tc.Quantity,
			&tc.SalesStartTime, &tc.SalesEndTime, &tc.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTicketClassNotFound
		}
		return nil, err
	}
	return &tc, nil
}

// ListByEvent returns all ticket classes attached to an event.
func (r *TicketClassRepo) ListByEvent(ctx context.Context, eventID uint64) ([]TicketClass, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ticketClassCols+" FROM ticket_classes WHERE event_id = ? ORDER BY id ASC", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []TicketClass{}
	for rows.Next() {
		var tc TicketClass
		if err := rows.Scan(&tc.ID, &tc.EventID, &tc.Name, &tc.Description, &tc.Price, &tc.Quantity,
			&tc.SalesStartTime, &tc.SalesEndTime, &tc.Status); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
