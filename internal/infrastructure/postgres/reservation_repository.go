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
	"github.com/ari1008/vegnbio-reservation/internal/domain/reservation"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
)

// pgExclusionViolation は排他制約違反（btree_gist の EXCLUDE）のSQLSTATE
const pgExclusionViolation = "23P01"

type reservationRow struct {
	ID            string         `db:"id"`
	CustomerID    string         `db:"customer_id"`
	RestaurantID  string         `db:"restaurant_id"`
	MeetingRoomID sql.NullString `db:"meeting_room_id"`
	BookingType   string         `db:"booking_type"`
	Status        string         `db:"status"`
	StartsAt      time.Time      `db:"starts_at"`
	EndsAt        time.Time      `db:"ends_at"`
	PartySize     int            `db:"party_size"`
	Notes         string         `db:"notes"`
	Price         int            `db:"price"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

const reservationColumns = `id, customer_id, restaurant_id, meeting_room_id, booking_type, status, starts_at, ends_at, party_size, notes, price, created_at, updated_at`

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	query := `INSERT INTO reservations (customer_id, restaurant_id, meeting_room_id, booking_type, status, starts_at, ends_at, party_size, notes, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := sqlxTx.QueryRowContext(ctx, query,
		res.CustomerID, res.RestaurantID, nullString(res.MeetingRoomID), string(res.Type), string(res.Status),
		res.Window.Start, res.Window.End, res.PartySize, res.Notes, res.Price, res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID)
	if err != nil {
		// 排他制約による競合は同期チェック敗退と区別せずに返す
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == pgExclusionViolation {
			return booking.ErrSchedulingConflict
		}
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toReservationEntity(&row), nil
}

func (r *ReservationRepository) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toReservationEntities(rows), nil
}

func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, customerID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toReservationEntities(rows), nil
}

func (r *ReservationRepository) ListAll(ctx context.Context, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toReservationEntities(rows), nil
}

// FindActiveOverlapping は半開区間 [start, end) に重なるアクティブな予約を取得する
// 貸切予約はレストランの全予約と、会議室予約は貸切予約および同一会議室の予約と競合する
func (r *ReservationRepository) FindActiveOverlapping(ctx context.Context, tx transaction.Tx, restaurantID, roomID string, typ reservation.Type, w booking.Window) ([]*reservation.Reservation, error) {
	sqlxTx := UnwrapTx(tx)

	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE restaurant_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND starts_at < $2 AND ends_at > $3`
	args := []interface{}{restaurantID, w.End, w.Start}

	if typ == reservation.TypeMeetingRoom {
		query += ` AND (booking_type = 'restaurant_full' OR meeting_room_id = $4)`
		args = append(args, roomID)
	}

	var rows []reservationRow
	if err := sqlxTx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("競合予約の検索に失敗: %w", err)
	}
	return toReservationEntities(rows), nil
}

// UpdateStatus は遷移元ステータスを条件に含めて更新する
// 0行更新は並行する別の遷移が先に確定したことを意味する
func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, res *reservation.Reservation, prev booking.Status) error {
	sqlxTx := UnwrapTx(tx)
	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := sqlxTx.ExecContext(ctx, query, string(res.Status), res.UpdatedAt, res.ID, string(prev))
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: 予約は並行して更新されています", booking.ErrInvalidStatusTransition)
	}
	return nil
}

func (r *ReservationRepository) FindElapsedConfirmed(ctx context.Context, limit int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = 'confirmed' AND ends_at < NOW() ORDER BY ends_at LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("終了済み予約の検索に失敗: %w", err)
	}
	return toReservationEntities(rows), nil
}

func toReservationEntity(row *reservationRow) *reservation.Reservation {
	return &reservation.Reservation{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		RestaurantID:  row.RestaurantID,
		MeetingRoomID: row.MeetingRoomID.String,
		Type:          reservation.Type(row.BookingType),
		Status:        booking.Status(row.Status),
		Window:        booking.Window{Start: row.StartsAt, End: row.EndsAt},
		PartySize:     row.PartySize,
		Notes:         row.Notes,
		Price:         row.Price,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toReservationEntities(rows []reservationRow) []*reservation.Reservation {
	result := make([]*reservation.Reservation, len(rows))
	for i := range rows {
		result[i] = toReservationEntity(&rows[i])
	}
	return result
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ reservation.Repository = (*ReservationRepository)(nil)
