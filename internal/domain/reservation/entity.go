package reservation

import (
	"time"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
)

// Type は予約の種別を表す
type Type string

const (
	// TypeRestaurantFull はレストラン全体の貸切予約
	TypeRestaurantFull Type = "restaurant_full"
	// TypeMeetingRoom は会議室単位の予約
	TypeMeetingRoom Type = "meeting_room"
)

// IsValid は種別が定義済みかを返す
func (t Type) IsValid() bool {
	return t == TypeRestaurantFull || t == TypeMeetingRoom
}

// 種別ごとの1時間あたりの基本料金（円）
const (
	hourlyRateRestaurantFull = 30000
	hourlyRateMeetingRoom    = 5000
)

// Reservation は予約エンティティを表す
// 物理削除はせず、キャンセルはステータスとして表現する
type Reservation struct {
	ID            string
	CustomerID    string
	RestaurantID  string
	MeetingRoomID string // TypeMeetingRoom の場合のみ
	Type          Type
	Status        booking.Status
	Window        booking.Window
	PartySize     int
	Notes         string
	Price         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReservation は新しい予約を pending 状態で作成する
// ステータスは呼び出し側からは指定できない
func NewReservation(customerID, restaurantID, roomID string, typ Type, w booking.Window, partySize int, notes string) *Reservation {
	now := time.Now()
	return &Reservation{
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		MeetingRoomID: roomID,
		Type:          typ,
		Status:        booking.StatusPending,
		Window:        w,
		PartySize:     partySize,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate は予約の構造的な検証を行う
func (r *Reservation) Validate() error {
	if r.CustomerID == "" {
		return ErrCustomerIDRequired
	}
	if r.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	if !r.Type.IsValid() {
		return ErrInvalidType
	}
	if r.Type == TypeMeetingRoom && r.MeetingRoomID == "" {
		return ErrMeetingRoomIDRequired
	}
	if r.Type == TypeRestaurantFull && r.MeetingRoomID != "" {
		return ErrUnexpectedMeetingRoomID
	}
	if r.PartySize <= 0 {
		return ErrInvalidPartySize
	}
	return r.Window.Validate()
}

// ComputePrice は料金を計算して設定する
// 基本料金 × 時間数 × 人数係数（10名以下 ×1.0、50名以下 ×1.5、それ以上 ×2.0）
func (r *Reservation) ComputePrice() {
	base := hourlyRateMeetingRoom
	if r.Type == TypeRestaurantFull {
		base = hourlyRateRestaurantFull
	}
	hours := r.Window.Duration().Hours()
	r.Price = int(float64(base) * hours * partySizeMultiplier(r.PartySize))
}

func partySizeMultiplier(partySize int) float64 {
	switch {
	case partySize <= 10:
		return 1.0
	case partySize <= 50:
		return 1.5
	default:
		return 2.0
	}
}

// ChangeStatus は状態遷移表を検証した上でステータスを変更する
func (r *Reservation) ChangeStatus(next booking.Status) error {
	if err := booking.Transition(r.Status, next); err != nil {
		return err
	}
	r.Status = next
	r.UpdatedAt = time.Now()
	return nil
}

// Cancel は予約をキャンセルする（cancelled への遷移の別名）
func (r *Reservation) Cancel() error {
	return r.ChangeStatus(booking.StatusCancelled)
}
