// Package repository contains data access logic for the event catalog. This
// file defines the Event model and repository methods for events. An Event
// is created by an organizer, gated by an admin moderation decision
// (censored_status) and only then exposed to customers for booking.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
	"strings"      // strings for building LIKE patterns
	"time"         // time for the NOW()-stamped columns
)

// Event represents a bookable happening published by an organizer.
// Dates are stored as "YYYY-MM-DD" strings and the day times as "HH:MM",
// matching the column types; CensoredStatus starts at "Pending" and is
// only changed through the moderation flow.
type Event struct {
	ID             uint64         // events.id
	Name           string         // events.name
	Description    string         // events.description
	StartDate      string         // events.start_date ("YYYY-MM-DD")
	EndDate        string         // events.end_date ("YYYY-MM-DD")
	StartDateTime  string         // events.start_date_time ("HH:MM")
	EndDateTime    string         // events.end_date_time ("HH:MM")
	Location       string         // events.location
	OrganizerID    sql.NullInt64  // events.organizer_id (references event_organizers.id)
	CategoryID     sql.NullInt64  // events.category_id
	Status         string         // events.status (upcoming, ongoing, completed)
	CensoredStatus string         // events.censored_status (Pending, Approved, Rejected)
	CensorReason   sql.NullString // events.censor_reason
	CensoredAt     sql.NullTime   // events.censored_at
	CreatedAt      time.Time      // events.created_at
	UpdatedAt      time.Time      // events.updated_at
}

// ErrEventNotFound indicates that an event was not located in the DB.
var ErrEventNotFound = errors.New("event not found")

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

const eventCols = `id, name, description, start_date, end_date, start_date_time, end_date_time,
	location, organizer_id, category_id, status, censored_status, censor_reason, censored_at,
	created_at, updated_at`

func scanEvent(s interface {
	Scan(dest ...any) error
}) (Event, error) {
	var e Event
	err := s.Scan(&e.ID, &e.Name, &e.Description, &e.StartDate, &e.EndDate,
		&e.StartDateTime, &e.EndDateTime, &e.Location, &e.OrganizerID, &e.CategoryID,
		&e.Status, &e.CensoredStatus, &e.CensorReason, &e.CensoredAt,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create inserts a new event and populates the generated ID plus the
// DB-default moderation fields on the given Event.
func (r *EventRepo) Create(ctx context.Context, e *Event) error {
	const q = `INSERT INTO events
		(name, description, start_date, end_date, start_date_time, end_date_time, location, organizer_id, category_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Description, e.StartDate, e.EndDate,
		e.StartDateTime, e.EndDateTime, e.Location, e.OrganizerID, e.CategoryID, e.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Query the inserted row to obtain default fields such as censored_status and timestamps.
	got, err := scanEvent(r.db.QueryRowContext(ctx, "SELECT "+eventCols+" FROM events WHERE id = ?", e.ID))
	if err != nil {
		return err
	}
	*e = got
	return nil
}

// GetByID retrieves an event by its ID.  It returns ErrEventNotFound if
// no row exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, "SELECT "+eventCols+" FROM events WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// List returns events ordered by name with offset/limit pagination.
// order must be "asc" or "desc"; anything else falls back to ascending so
// the ORDER BY clause is never built from raw caller input.
func (r *EventRepo) List(ctx context.Context, order string, page, pageSize int) ([]Event, error) {
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}
	offset := (page - 1) * pageSize
	return r.queryEvents(ctx,
		"SELECT "+eventCols+" FROM events ORDER BY name "+dir+" LIMIT ? OFFSET ?",
		pageSize, offset)
}

// Search performs a case-insensitive substring match on the event name.
func (r *EventRepo) Search(ctx context.Context, query string) ([]Event, error) {
	return r.queryEvents(ctx,
		"SELECT "+eventCols+" FROM events WHERE LOWER(name) LIKE ? ORDER BY name ASC",
		"%"+strings.ToLower(query)+"%")
}

// ListAll returns every event regardless of moderation state.  Used by the
// admin dashboard.
func (r *EventRepo) ListAll(ctx context.Context) ([]Event, error) {
	return r.queryEvents(ctx, "SELECT "+eventCols+" FROM events ORDER BY id ASC")
}

// ListApprovedOrOwned returns events that passed moderation plus the
// (possibly unapproved) events belonging to the given organizer, so an
// organizer always sees their own drafts.
func (r *EventRepo) ListApprovedOrOwned(ctx context.Context, organizerID uint64) ([]Event, error) {
	return r.queryEvents(ctx,
		"SELECT "+eventCols+" FROM events WHERE censored_status = 'Approved' OR organizer_id = ? ORDER BY id ASC",
		organizerID)
}

// Update overwrites the organizer-editable columns of an event.
func (r *EventRepo) Update(ctx context.Context, e *Event) error {
	const q = `UPDATE events SET name=?, description=?, start_date=?, end_date=?,
		start_date_time=?, end_date_time=?, location=?, updated_at=NOW() WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Description, e.StartDate, e.EndDate,
		e.StartDateTime, e.EndDateTime, e.Location, e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Row may exist with identical values; distinguish by re-reading.
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an event row.  Returns ErrEventNotFound when no row was
// deleted.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// CensorTx records a moderation decision inside the caller's transaction.
// The decision string becomes both the censored_status and the censor
// reason, and censored_at is stamped with the current time.  Seat grid
// generation on approval lives with the caller so it commits atomically
// with this update.
func (r *EventRepo) CensorTx(ctx context.Context, tx *sql.Tx, id uint64, decision string) error {
	const q = `UPDATE events SET censored_status=?, censor_reason=?, censored_at=NOW(), updated_at=NOW() WHERE id=?`
	// MySQL reports zero affected rows when the new values equal the old
	// ones, which legitimately happens on a repeated decision; existence is
	// checked by the caller before the transaction starts.
	_, err := tx.ExecContext(ctx, q, decision, decision, id)
	return err
}
