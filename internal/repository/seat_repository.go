package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// EventSeat is a single seat in an event's venue grid.  Rows are created
// in bulk when an event's moderation status transitions to Approved; a
// seat may later be assigned to the user who booked it.
type EventSeat struct {
	ID         uint64        // event_seats.id
	EventID    uint64        // event_seats.event_id
	UserID     sql.NullInt64 // event_seats.user_id (null until assigned)
	SeatNumber string        // event_seats.seat_number (e.g. "A1")
	Status     string        // event_seats.status (available, booked)
}

// Grid dimensions generated on event approval: rows A..G, seats 1..10.
const (
	gridFirstRow    = 'A'
	gridLastRow     = 'G'
	gridSeatsPerRow = 10
)

type SeatRepo struct {
	db *sql.DB
}

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// GenerateSeatGrid builds the fixed venue grid for an event: one seat per
// row letter and number combination, all available and unassigned.  The
// caller persists them with BulkCreateTx.
func GenerateSeatGrid(eventID uint64) []EventSeat {
	seats := make([]EventSeat, 0, int(gridLastRow-gridFirstRow+1)*gridSeatsPerRow)
	for row := gridFirstRow; row <= gridLastRow; row++ {
		for n := 1; n <= gridSeatsPerRow; n++ {
			seats = append(seats, EventSeat{
				EventID:    eventID,
				SeatNumber: fmt.Sprintf("%c%d", row, n),
				Status:     "available",
			})
		}
	}
	return seats
}

// BulkCreateTx inserts seats in a single statement within the caller's
// transaction.  Passing an empty slice has no effect and returns nil.
func (r *SeatRepo) BulkCreateTx(ctx context.Context, tx *sql.Tx, seats []EventSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := "INSERT INTO event_seats (event_id, user_id, seat_number, status) VALUES "
	args := make([]interface{}, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, s.EventID, s.UserID, s.SeatNumber, s.Status)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByEvent returns all seats generated for an event.
func (r *SeatRepo) ListByEvent(ctx context.Context, eventID uint64) ([]EventSeat, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, event_id, user_id, seat_number, status FROM event_seats WHERE event_id = ? ORDER BY id ASC",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []EventSeat{}
	for rows.Next() {
		var s EventSeat
		if err := rows.Scan(&s.ID, &s.EventID, &s.UserID, &s.SeatNumber, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID returns a seat row or sql.ErrNoRows.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (EventSeat, error) {
	var s EventSeat
	err := r.db.QueryRowContext(ctx,
		"SELECT id, event_id, user_id, seat_number, status FROM event_seats WHERE id = ? LIMIT 1", id).
		Scan(&s.ID, &s.EventID, &s.UserID, &s.SeatNumber, &s.Status)
	return s, err
}
