package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
)

type customerRow struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	Email       string    `db:"email"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type CustomerRepository struct{ db *sqlx.DB }

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `INSERT INTO customers (display_name, email, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.DisplayName, c.Email, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("顧客作成に失敗: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var row customerRow
	query := `SELECT id, display_name, email, created_at, updated_at FROM customers WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("顧客取得に失敗: %w", err)
	}
	return toCustomerEntity(&row), nil
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	var rows []customerRow
	query := `SELECT id, display_name, email, created_at, updated_at FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("顧客一覧取得に失敗: %w", err)
	}
	result := make([]*customer.Customer, len(rows))
	for i := range rows {
		result[i] = toCustomerEntity(&rows[i])
	}
	return result, nil
}

func toCustomerEntity(row *customerRow) *customer.Customer {
	return &customer.Customer{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Email:       row.Email,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

var _ customer.Repository = (*CustomerRepository)(nil)
