package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Category mirrors the 'categories' lookup table.
type Category struct {
	ID          uint64
	Name        string
	Description string
}

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListAll returns every category, used to populate event creation forms.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, description FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches one category.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM categories WHERE id = ? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Description)
	if err == sql.ErrNoRows {
		return c, ErrCategoryNotFound
	}
	return c, err
}
