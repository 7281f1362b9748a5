package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/event"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
)

type eventRequestRow struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	RestaurantID string    `db:"restaurant_id"`
	EventType    string    `db:"event_type"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Status       string    `db:"status"`
	StartsAt     time.Time `db:"starts_at"`
	EndsAt       time.Time `db:"ends_at"`
	PartySize    int       `db:"party_size"`
	Price        int       `db:"price"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const eventRequestColumns = `id, customer_id, restaurant_id, event_type, title, description, status, starts_at, ends_at, party_size, price, created_at, updated_at`

type EventRequestRepository struct{ db *sqlx.DB }

func NewEventRequestRepository(db *sqlx.DB) *EventRequestRepository {
	return &EventRequestRepository{db: db}
}

func (r *EventRequestRepository) Create(ctx context.Context, tx transaction.Tx, e *event.EventRequest) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO event_requests (customer_id, restaurant_id, event_type, title, description, status, starts_at, ends_at, party_size, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := sqlxTx.QueryRowContext(ctx, query,
		e.CustomerID, e.RestaurantID, string(e.Type), e.Title, e.Description, string(e.Status),
		e.Window.Start, e.Window.End, e.PartySize, e.Price, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == pgExclusionViolation {
			return booking.ErrSchedulingConflict
		}
		return fmt.Errorf("イベントリクエスト作成に失敗: %w", err)
	}
	return nil
}

func (r *EventRequestRepository) GetByID(ctx context.Context, id string) (*event.EventRequest, error) {
	var row eventRequestRow
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventRequestNotFound
		}
		return nil, fmt.Errorf("イベントリクエスト取得に失敗: %w", err)
	}
	return toEventRequestEntity(&row), nil
}

func (r *EventRequestRepository) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*event.EventRequest, error) {
	var rows []eventRequestRow
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID, limit, offset); err != nil {
		return nil, fmt.Errorf("イベントリクエスト一覧取得に失敗: %w", err)
	}
	return toEventRequestEntities(rows), nil
}

func (r *EventRequestRepository) ListAll(ctx context.Context, limit, offset int) ([]*event.EventRequest, error) {
	var rows []eventRequestRow
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("イベントリクエスト一覧取得に失敗: %w", err)
	}
	return toEventRequestEntities(rows), nil
}

func (r *EventRequestRepository) FindActiveOverlapping(ctx context.Context, tx transaction.Tx, restaurantID string, w booking.Window) ([]*event.EventRequest, error) {
	sqlxTx := UnwrapTx(tx)
	var rows []eventRequestRow
	query := `SELECT ` + eventRequestColumns + ` FROM event_requests
		WHERE restaurant_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND starts_at < $2 AND ends_at > $3`
	if err := sqlxTx.SelectContext(ctx, &rows, query, restaurantID, w.End, w.Start); err != nil {
		return nil, fmt.Errorf("競合イベントの検索に失敗: %w", err)
	}
	return toEventRequestEntities(rows), nil
}

// UpdateStatus は遷移元ステータスを条件に含めて更新する
// 0行更新は並行する別の遷移が先に確定したことを意味する
func (r *EventRequestRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, e *event.EventRequest, prev booking.Status) error {
	sqlxTx := UnwrapTx(tx)
	result, err := sqlxTx.ExecContext(ctx,
		`UPDATE event_requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(e.Status), e.UpdatedAt, e.ID, string(prev))
	if err != nil {
		return fmt.Errorf("イベントリクエスト更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: イベントリクエストは並行して更新されています", booking.ErrInvalidStatusTransition)
	}
	return nil
}

func toEventRequestEntity(row *eventRequestRow) *event.EventRequest {
	return &event.EventRequest{
		ID:           row.ID,
		CustomerID:   row.CustomerID,
		RestaurantID: row.RestaurantID,
		Type:         event.Type(row.EventType),
		Title:        row.Title,
		Description:  row.Description,
		Status:       booking.Status(row.Status),
		Window:       booking.Window{Start: row.StartsAt, End: row.EndsAt},
		PartySize:    row.PartySize,
		Price:        row.Price,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toEventRequestEntities(rows []eventRequestRow) []*event.EventRequest {
	result := make([]*event.EventRequest, len(rows))
	for i := range rows {
		result[i] = toEventRequestEntity(&rows[i])
	}
	return result
}

var _ event.Repository = (*EventRequestRepository)(nil)
