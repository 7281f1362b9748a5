package event

import (
	"time"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
)

// Type はイベントの種別を表す
type Type string

const (
	TypeConference   Type = "conference"
	TypePrivateParty Type = "private_party"
	TypeBirthday     Type = "birthday"
	TypeSeminar      Type = "seminar"
)

// IsValid はイベント種別が定義済みかを返す
func (t Type) IsValid() bool {
	switch t {
	case TypeConference, TypePrivateParty, TypeBirthday, TypeSeminar:
		return true
	}
	return false
}

// EventRequest は大規模予約（会議・パーティ等）のリクエストを表す
// レストラン全体を占有し、通常予約と同じ状態遷移表に従う
type EventRequest struct {
	ID           string
	CustomerID   string
	RestaurantID string
	Type         Type
	Title        string
	Description  string
	Status       booking.Status
	Window       booking.Window
	PartySize    int
	Price        int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// 1時間あたりの基本料金（円）
const hourlyRateEvent = 40000

// NewEventRequest は新しいイベントリクエストを pending 状態で作成する
func NewEventRequest(customerID, restaurantID string, typ Type, title, description string, w booking.Window, partySize int) *EventRequest {
	now := time.Now()
	return &EventRequest{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Type:         typ,
		Title:        title,
		Description:  description,
		Status:       booking.StatusPending,
		Window:       w,
		PartySize:    partySize,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate はイベントリクエストの検証を行う
func (e *EventRequest) Validate() error {
	if e.CustomerID == "" {
		return ErrCustomerIDRequired
	}
	if e.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	if !e.Type.IsValid() {
		return ErrInvalidEventType
	}
	if e.Title == "" {
		return ErrTitleRequired
	}
	if e.PartySize <= 0 {
		return ErrInvalidPartySize
	}
	return e.Window.Validate()
}

// ComputePrice は料金を計算して設定する（通常予約と同じ人数係数を使う）
func (e *EventRequest) ComputePrice() {
	hours := e.Window.Duration().Hours()
	mult := 1.0
	switch {
	case e.PartySize > 50:
		mult = 2.0
	case e.PartySize > 10:
		mult = 1.5
	}
	e.Price = int(float64(hourlyRateEvent) * hours * mult)
}

// ChangeStatus は通常予約と同じ遷移表でステータスを変更する
// かつてイベントリクエストだけステータスが無検証で設定できたが、予約と同じガードに統一した
func (e *EventRequest) ChangeStatus(next booking.Status) error {
	if err := booking.Transition(e.Status, next); err != nil {
		return err
	}
	e.Status = next
	e.UpdatedAt = time.Now()
	return nil
}

// Cancel はイベントリクエストをキャンセルする
func (e *EventRequest) Cancel() error {
	return e.ChangeStatus(booking.StatusCancelled)
}
