package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/event-ticket-booking/internal/utils"
)

// User mirrors the 'users' table.  Optional profile columns are
// nullable in the schema and use sql.NullString here.
type User struct {
	ID           uint64
	Username     string
	Email        sql.NullString
	PasswordHash string
	PhoneNumber  sql.NullString
	FullName     sql.NullString
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrUsernameExists = errors.New("username already registered")

// ErrUserNotFound indicates the requested user row does not exist.
var ErrUserNotFound = errors.New("user not found")

const userCols = "id,username,email,password_hash,phone_number,full_name,role,status,created_at,updated_at"

// CreateTx inserts a user inside the caller's transaction and returns the
// new ID.  The plain password is hashed here so handlers never touch the
// hash directly.  A duplicate username surfaces as ErrUsernameExists.
func (r *UserRepo) CreateTx(ctx context.Context, tx *sql.Tx, u *User, password string, cost int) (uint64, error) {
	u.Username = strings.TrimSpace(u.Username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, phone_number, full_name, role, status) VALUES (?,?,?,?,?,?,?)",
		u.Username, u.Email, hash, u.PhoneNumber, u.FullName, u.Role, u.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	u.ID = uint64(id)
	return u.ID, nil
}

func (r *UserRepo) scanRow(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.PhoneNumber, &u.FullName, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByUsername fetches a user by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1", username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return r.scanRow(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateProfile overwrites the caller-editable profile columns.  Role and
// password are intentionally excluded; they have their own flows.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, phone_number=?, full_name=?, updated_at=NOW() WHERE id=?",
		u.Email, u.PhoneNumber, u.FullName, u.ID)
	return err
}
