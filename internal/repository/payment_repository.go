package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PaymentMethod mirrors the 'payment_method' lookup table.  Methods are
// not pre-seeded: the first order paid with an unseen method name creates
// its row lazily.
type PaymentMethod struct {
	ID          uint64
	Name        string
	Description string
	Status      string
}

var ErrPaymentMethodNotFound = errors.New("payment method not found")

type PaymentMethodRepo struct {
	db *sql.DB
}

func NewPaymentMethodRepo(db *sql.DB) *PaymentMethodRepo { return &PaymentMethodRepo{db: db} }

// GetByNameTx looks a payment method up by case-insensitive substring
// match inside the caller's transaction, mirroring how order creation
// resolves the caller-supplied method name.
func (r *PaymentMethodRepo) GetByNameTx(ctx context.Context, tx *sql.Tx, name string) (PaymentMethod, error) {
	var pm PaymentMethod
	err := tx.QueryRowContext(ctx,
		"SELECT id, name, description, status FROM payment_method WHERE LOWER(name) LIKE ? LIMIT 1",
		"%"+strings.ToLower(strings.TrimSpace(name))+"%").
		Scan(&pm.ID, &pm.Name, &pm.Description, &pm.Status)
	if err == sql.ErrNoRows {
		return pm, ErrPaymentMethodNotFound
	}
	return pm, err
}

// CreateTx lazily materializes a payment method from a caller-supplied
// name: the stored name is upper-cased, the description synthesized and
// the method activated immediately.  Runs inside the order transaction so
// a failed order does not leave a stray method behind.
func (r *PaymentMethodRepo) CreateTx(ctx context.Context, tx *sql.Tx, name string) (PaymentMethod, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	pm := PaymentMethod{
		Name:        upper,
		Description: "Payment via " + upper,
		Status:      "active",
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO payment_method (name, description, status) VALUES (?,?,?)",
		pm.Name, pm.Description, pm.Status)
	if err != nil {
		return pm, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pm, err
	}
	pm.ID = uint64(id)
	return pm, nil
}

// GetByID fetches a payment method by primary key, used when composing
// purchase history responses.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, id uint64) (PaymentMethod, error) {
	var pm PaymentMethod
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, status FROM payment_method WHERE id = ? LIMIT 1", id).
		Scan(&pm.ID, &pm.Name, &pm.Description, &pm.Status)
	if err == sql.ErrNoRows {
		return pm, ErrPaymentMethodNotFound
	}
	return pm, err
}
