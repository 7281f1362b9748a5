package restaurant

import (
	"fmt"
	"time"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
)

// OpeningHours は曜日ごとの営業時間帯（時刻のみ、"15:04" 形式）
type OpeningHours struct {
	Open  string
	Close string
}

// MeetingRoom は会議室エンティティを表す
// 1つのレストランに属し、レストラン内で名前は一意
type MeetingRoom struct {
	ID           string
	RestaurantID string
	Name         string
	Capacity     int
	Reservable   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Restaurant はレストランエンティティを表す
type Restaurant struct {
	ID           string
	Name         string
	Capacity     int
	OpeningHours map[time.Weekday]OpeningHours
	MeetingRooms []MeetingRoom
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRestaurant は新しいレストランを作成する
func NewRestaurant(name string, capacity int, hours map[time.Weekday]OpeningHours) *Restaurant {
	now := time.Now()
	return &Restaurant{
		Name:         name,
		Capacity:     capacity,
		OpeningHours: hours,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate はレストランの検証を行う
func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	for day, h := range r.OpeningHours {
		open, err := parseClock(h.Open)
		if err != nil {
			return fmt.Errorf("%w: %s %s", ErrInvalidOpeningHours, day, h.Open)
		}
		closeAt, err := parseClock(h.Close)
		if err != nil {
			return fmt.Errorf("%w: %s %s", ErrInvalidOpeningHours, day, h.Close)
		}
		if closeAt <= open {
			return fmt.Errorf("%w: %s", ErrInvalidOpeningHours, day)
		}
	}
	seen := make(map[string]bool, len(r.MeetingRooms))
	for _, room := range r.MeetingRooms {
		if room.Name == "" {
			return ErrRoomNameRequired
		}
		if room.Capacity <= 0 {
			return ErrInvalidCapacity
		}
		if seen[room.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateRoomName, room.Name)
		}
		seen[room.Name] = true
	}
	return nil
}

// RoomByID は会議室をIDで探す
func (r *Restaurant) RoomByID(roomID string) (*MeetingRoom, error) {
	for i := range r.MeetingRooms {
		if r.MeetingRooms[i].ID == roomID {
			return &r.MeetingRooms[i], nil
		}
	}
	return nil, ErrMeetingRoomNotFound
}

// CheckOpenDuring は時間枠が開始日の曜日の営業時間内に収まっているかを検証する
// 比較は時刻（分単位）のみで行い、深夜をまたぐ予約はモデル化しない
func (r *Restaurant) CheckOpenDuring(w booking.Window) error {
	hours, ok := r.OpeningHours[w.Start.Weekday()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRestaurantClosed, w.Start.Weekday())
	}
	open, err := parseClock(hours.Open)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOpeningHours, hours.Open)
	}
	closeAt, err := parseClock(hours.Close)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOpeningHours, hours.Close)
	}
	if minuteOfDay(w.Start) < open || minuteOfDay(w.End) > closeAt {
		return fmt.Errorf("%w: %s-%s の営業時間外", ErrOutsideOpeningHours, hours.Open, hours.Close)
	}
	return nil
}

// CheckPartySize は対象リソース（レストラン全体または会議室）の収容人数を検証する
// roomID が空ならレストラン全体が対象
func (r *Restaurant) CheckPartySize(roomID string, partySize int) error {
	if partySize <= 0 {
		return ErrInvalidPartySize
	}
	if roomID == "" {
		if partySize > r.Capacity {
			return fmt.Errorf("%w: %d 名（収容 %d 名）", ErrInsufficientCapacity, partySize, r.Capacity)
		}
		return nil
	}
	room, err := r.RoomByID(roomID)
	if err != nil {
		return err
	}
	if !room.Reservable {
		return fmt.Errorf("%w: %s", ErrRoomNotReservable, room.Name)
	}
	if partySize > room.Capacity {
		return fmt.Errorf("%w: %d 名（収容 %d 名）", ErrInsufficientCapacity, partySize, room.Capacity)
	}
	return nil
}

// parseClock は "15:04" 形式の時刻を0時からの分数に変換する
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
