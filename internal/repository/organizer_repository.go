package repository

import (
	"context"
	"database/sql"
	"errors"
)

// EventOrganizer mirrors the 'event_organizers' table.  It links a user to
// a tax identification number and optional payment configuration.  Exactly
// one row is created when a user registers with the organizer role.
type EventOrganizer struct {
	ID              uint64
	UserID          uint64
	Name            sql.NullString
	TIN             string
	BankID          sql.NullInt64
	PaymentMethodID sql.NullInt64
}

type OrganizerRepo struct{ DB *sql.DB }

func NewOrganizerRepo(db *sql.DB) *OrganizerRepo { return &OrganizerRepo{DB: db} }

var ErrOrganizerNotFound = errors.New("organizer not found")

// CreateTx inserts an organizer row inside the caller's transaction, so a
// failed registration leaves neither a user nor an organizer behind.
func (r *OrganizerRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64, name sql.NullString, tin string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO event_organizers (user_id, name, tin) VALUES (?,?,?)",
		userID, name, tin)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *OrganizerRepo) scanRow(row *sql.Row) (EventOrganizer, error) {
	var o EventOrganizer
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.TIN, &o.BankID, &o.PaymentMethodID)
	if err == sql.ErrNoRows {
		return o, ErrOrganizerNotFound
	}
	return o, err
}

// GetByID fetches an organizer row by primary key.
func (r *OrganizerRepo) GetByID(ctx context.Context, id uint64) (EventOrganizer, error) {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,tin,bank_id,payment_method_id FROM event_organizers WHERE id=? LIMIT 1", id))
}

// GetByUserID fetches the organizer row owned by a user.
func (r *OrganizerRepo) GetByUserID(ctx context.Context, userID uint64) (EventOrganizer, error) {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,tin,bank_id,payment_method_id FROM event_organizers WHERE user_id=? LIMIT 1", userID))
}
