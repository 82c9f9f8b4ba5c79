package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists issued access tokens in the 'jwt_tokens' table.
// Storing the signed value alongside its expiry makes individual sessions
// revocable: logout deletes the row.  Validation of incoming requests is
// signature-based and does not read this table (see middleware.JWTAuth).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a token row for a freshly issued access token.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO jwt_tokens (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, exp)
	return err
}

// DeleteByToken removes the persisted row for a token.  sql.ErrNoRows is
// returned when no such token was ever issued (or it was already revoked),
// which handlers map to 401.
func (r *TokenRepo) DeleteByToken(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM jwt_tokens WHERE token=?", token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteExpired removes rows whose expiry has passed.  There is no
// background sweep; this is exposed for operational cleanup.
func (r *TokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM jwt_tokens WHERE expires_at < NOW()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
