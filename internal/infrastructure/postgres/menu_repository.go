package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
)

type dishRow struct {
	ID           string         `db:"id"`
	RestaurantID string         `db:"restaurant_id"`
	Name         string         `db:"name"`
	Description  string         `db:"description"`
	Price        int            `db:"price"`
	Allergens    pq.StringArray `db:"allergens"`
	Available    bool           `db:"available"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

const dishColumns = `id, restaurant_id, name, description, price, allergens, available, created_at, updated_at`

type MenuRepository struct{ db *sqlx.DB }

func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Create(ctx context.Context, d *menu.Dish) error {
	query := `INSERT INTO dishes (restaurant_id, name, description, price, allergens, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		d.RestaurantID, d.Name, d.Description, d.Price, pq.StringArray(d.Allergens), d.Available, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("料理作成に失敗: %w", err)
	}
	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*menu.Dish, error) {
	var row dishRow
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menu.ErrDishNotFound
		}
		return nil, fmt.Errorf("料理取得に失敗: %w", err)
	}
	return toDishEntity(&row), nil
}

func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*menu.Dish, error) {
	var rows []dishRow
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE restaurant_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID); err != nil {
		return nil, fmt.Errorf("メニュー取得に失敗: %w", err)
	}
	result := make([]*menu.Dish, len(rows))
	for i := range rows {
		result[i] = toDishEntity(&rows[i])
	}
	return result, nil
}

func (r *MenuRepository) Update(ctx context.Context, d *menu.Dish) error {
	query := `UPDATE dishes SET name = $1, description = $2, price = $3, allergens = $4, available = $5, updated_at = $6 WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		d.Name, d.Description, d.Price, pq.StringArray(d.Allergens), d.Available, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("料理更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return menu.ErrDishNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("料理削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return menu.ErrDishNotFound
	}
	return nil
}

func toDishEntity(row *dishRow) *menu.Dish {
	return &menu.Dish{
		ID:           row.ID,
		RestaurantID: row.RestaurantID,
		Name:         row.Name,
		Description:  row.Description,
		Price:        row.Price,
		Allergens:    []string(row.Allergens),
		Available:    row.Available,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

var _ menu.Repository = (*MenuRepository)(nil)
