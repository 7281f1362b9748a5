package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ari1008/vegnbio-reservation/internal/domain/review"
)

type reviewRow struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	RestaurantID string    `db:"restaurant_id"`
	Rating       int       `db:"rating"`
	Comment      string    `db:"comment"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const reviewColumns = `id, customer_id, restaurant_id, rating, comment, status, created_at, updated_at`

type ReviewRepository struct{ db *sqlx.DB }

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	query := `INSERT INTO reviews (customer_id, restaurant_id, rating, comment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		rev.CustomerID, rev.RestaurantID, rev.Rating, rev.Comment, string(rev.Status), rev.CreatedAt, rev.UpdatedAt,
	).Scan(&rev.ID)
	if err != nil {
		return fmt.Errorf("レビュー作成に失敗: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*review.Review, error) {
	var row reviewRow
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("レビュー取得に失敗: %w", err)
	}
	return toReviewEntity(&row), nil
}

func (r *ReviewRepository) ListApprovedByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*review.Review, error) {
	var rows []reviewRow
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE restaurant_id = $1 AND status = 'approved' ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID, limit, offset); err != nil {
		return nil, fmt.Errorf("レビュー一覧取得に失敗: %w", err)
	}
	return toReviewEntities(rows), nil
}

func (r *ReviewRepository) ListPending(ctx context.Context, limit, offset int) ([]*review.Review, error) {
	var rows []reviewRow
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE status = 'pending' ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("モデレーション待ちレビュー取得に失敗: %w", err)
	}
	return toReviewEntities(rows), nil
}

func (r *ReviewRepository) UpdateStatus(ctx context.Context, rev *review.Review) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET status = $1, updated_at = $2 WHERE id = $3`,
		string(rev.Status), rev.UpdatedAt, rev.ID)
	if err != nil {
		return fmt.Errorf("レビュー更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func toReviewEntity(row *reviewRow) *review.Review {
	return &review.Review{
		ID:           row.ID,
		CustomerID:   row.CustomerID,
		RestaurantID: row.RestaurantID,
		Rating:       row.Rating,
		Comment:      row.Comment,
		Status:       review.Status(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toReviewEntities(rows []reviewRow) []*review.Review {
	result := make([]*review.Review, len(rows))
	for i := range rows {
		result[i] = toReviewEntity(&rows[i])
	}
	return result
}

var _ review.Repository = (*ReviewRepository)(nil)
