package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
)

// pgForeignKeyViolation は外部キー制約違反のSQLSTATE
const pgForeignKeyViolation = "23503"

type restaurantRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Capacity  int       `db:"capacity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type openingHoursRow struct {
	RestaurantID string `db:"restaurant_id"`
	DayOfWeek    int    `db:"day_of_week"`
	OpenTime     string `db:"open_time"`
	CloseTime    string `db:"close_time"`
}

type meetingRoomRow struct {
	ID           string    `db:"id"`
	RestaurantID string    `db:"restaurant_id"`
	Name         string    `db:"name"`
	Capacity     int       `db:"capacity"`
	Reservable   bool      `db:"reservable"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type RestaurantRepository struct{ db *sqlx.DB }

func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, entity *restaurant.Restaurant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO restaurants (name, capacity, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, entity.Name, entity.Capacity, entity.CreatedAt, entity.UpdatedAt).Scan(&entity.ID); err != nil {
		return fmt.Errorf("レストラン作成に失敗: %w", err)
	}
	if err := r.insertHours(ctx, tx, entity); err != nil {
		return err
	}
	if err := r.insertRooms(ctx, tx, entity); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	var row restaurantRow
	query := `SELECT id, name, capacity, created_at, updated_at FROM restaurants WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurant.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("レストラン取得に失敗: %w", err)
	}
	return r.loadAggregate(ctx, &row)
}

func (r *RestaurantRepository) List(ctx context.Context, limit, offset int) ([]*restaurant.Restaurant, error) {
	var rows []restaurantRow
	query := `SELECT id, name, capacity, created_at, updated_at FROM restaurants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("レストラン一覧取得に失敗: %w", err)
	}
	result := make([]*restaurant.Restaurant, len(rows))
	for i := range rows {
		entity, err := r.loadAggregate(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		result[i] = entity
	}
	return result, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, entity *restaurant.Restaurant) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE restaurants SET name = $1, capacity = $2, updated_at = $3 WHERE id = $4`,
		entity.Name, entity.Capacity, entity.UpdatedAt, entity.ID)
	if err != nil {
		return fmt.Errorf("レストラン更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return restaurant.ErrRestaurantNotFound
	}

	if err := r.syncHours(ctx, tx, entity); err != nil {
		return err
	}
	if err := r.syncRooms(ctx, tx, entity); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

// LockForBooking はレストラン行を FOR UPDATE でロックする
// 貸切と会議室の種類をまたぐ競合チェックと挿入を直列化するためのロック
func (r *RestaurantRepository) LockForBooking(ctx context.Context, tx transaction.Tx, id string) error {
	sqlxTx := UnwrapTx(tx)
	var lockedID string
	err := sqlxTx.QueryRowContext(ctx, `SELECT id FROM restaurants WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return restaurant.ErrRestaurantNotFound
		}
		return fmt.Errorf("レストラン行のロックに失敗: %w", err)
	}
	return nil
}

// syncHours は営業時間を曜日キーで upsert し、指定から外れた曜日だけを削除する
func (r *RestaurantRepository) syncHours(ctx context.Context, tx *sqlx.Tx, entity *restaurant.Restaurant) error {
	days := make([]int, 0, len(entity.OpeningHours))
	for day, h := range entity.OpeningHours {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO opening_hours (restaurant_id, day_of_week, open_time, close_time)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (restaurant_id, day_of_week)
			 DO UPDATE SET open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time`,
			entity.ID, int(day), h.Open, h.Close)
		if err != nil {
			return fmt.Errorf("営業時間更新に失敗: %w", err)
		}
		days = append(days, int(day))
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM opening_hours WHERE restaurant_id = $1 AND NOT (day_of_week = ANY($2))`,
		entity.ID, pq.Array(days)); err != nil {
		return fmt.Errorf("営業時間削除に失敗: %w", err)
	}
	return nil
}

// syncRooms は会議室を (restaurant_id, name) キーで upsert し、既存のIDを保持する
// 指定から外れた会議室のみ削除し、予約が参照している場合はドメインエラーを返す
func (r *RestaurantRepository) syncRooms(ctx context.Context, tx *sqlx.Tx, entity *restaurant.Restaurant) error {
	names := make([]string, 0, len(entity.MeetingRooms))
	for i := range entity.MeetingRooms {
		room := &entity.MeetingRooms[i]
		err := tx.QueryRowContext(ctx,
			`INSERT INTO meeting_rooms (restaurant_id, name, capacity, reservable, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, NOW(), NOW())
			 ON CONFLICT (restaurant_id, name)
			 DO UPDATE SET capacity = EXCLUDED.capacity, reservable = EXCLUDED.reservable, updated_at = NOW()
			 RETURNING id`,
			entity.ID, room.Name, room.Capacity, room.Reservable).Scan(&room.ID)
		if err != nil {
			return fmt.Errorf("会議室更新に失敗: %w", err)
		}
		room.RestaurantID = entity.ID
		names = append(names, room.Name)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM meeting_rooms WHERE restaurant_id = $1 AND NOT (name = ANY($2))`,
		entity.ID, pq.Array(names)); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == pgForeignKeyViolation {
			return restaurant.ErrMeetingRoomInUse
		}
		return fmt.Errorf("会議室削除に失敗: %w", err)
	}
	return nil
}

func (r *RestaurantRepository) insertHours(ctx context.Context, tx *sqlx.Tx, entity *restaurant.Restaurant) error {
	for day, h := range entity.OpeningHours {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO opening_hours (restaurant_id, day_of_week, open_time, close_time) VALUES ($1, $2, $3, $4)`,
			entity.ID, int(day), h.Open, h.Close)
		if err != nil {
			return fmt.Errorf("営業時間登録に失敗: %w", err)
		}
	}
	return nil
}

func (r *RestaurantRepository) insertRooms(ctx context.Context, tx *sqlx.Tx, entity *restaurant.Restaurant) error {
	for i := range entity.MeetingRooms {
		room := &entity.MeetingRooms[i]
		err := tx.QueryRowContext(ctx,
			`INSERT INTO meeting_rooms (restaurant_id, name, capacity, reservable, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING id`,
			entity.ID, room.Name, room.Capacity, room.Reservable).Scan(&room.ID)
		if err != nil {
			return fmt.Errorf("会議室登録に失敗: %w", err)
		}
		room.RestaurantID = entity.ID
	}
	return nil
}

func (r *RestaurantRepository) loadAggregate(ctx context.Context, row *restaurantRow) (*restaurant.Restaurant, error) {
	var hourRows []openingHoursRow
	if err := r.db.SelectContext(ctx, &hourRows,
		`SELECT restaurant_id, day_of_week, to_char(open_time, 'HH24:MI') AS open_time, to_char(close_time, 'HH24:MI') AS close_time
		 FROM opening_hours WHERE restaurant_id = $1`, row.ID); err != nil {
		return nil, fmt.Errorf("営業時間取得に失敗: %w", err)
	}
	hours := make(map[time.Weekday]restaurant.OpeningHours, len(hourRows))
	for _, h := range hourRows {
		hours[time.Weekday(h.DayOfWeek)] = restaurant.OpeningHours{Open: h.OpenTime, Close: h.CloseTime}
	}

	var roomRows []meetingRoomRow
	if err := r.db.SelectContext(ctx, &roomRows,
		`SELECT id, restaurant_id, name, capacity, reservable, created_at, updated_at
		 FROM meeting_rooms WHERE restaurant_id = $1 ORDER BY name`, row.ID); err != nil {
		return nil, fmt.Errorf("会議室取得に失敗: %w", err)
	}
	rooms := make([]restaurant.MeetingRoom, len(roomRows))
	for i, room := range roomRows {
		rooms[i] = restaurant.MeetingRoom{
			ID:           room.ID,
			RestaurantID: room.RestaurantID,
			Name:         room.Name,
			Capacity:     room.Capacity,
			Reservable:   room.Reservable,
			CreatedAt:    room.CreatedAt,
			UpdatedAt:    room.UpdatedAt,
		}
	}

	return &restaurant.Restaurant{
		ID:           row.ID,
		Name:         row.Name,
		Capacity:     row.Capacity,
		OpeningHours: hours,
		MeetingRooms: rooms,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

var _ restaurant.Repository = (*RestaurantRepository)(nil)
