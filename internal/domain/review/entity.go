package review

import (
	"fmt"
	"time"
)

// Status はレビューのモデレーション状態を表す
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid はステータス値が定義済みかを返す
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Review はレストランへのレビューを表す
// 投稿時は pending で、オーナーによる承認か却下で終端状態になる
type Review struct {
	ID           string
	CustomerID   string
	RestaurantID string
	Rating       int
	Comment      string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReview は新しいレビューを pending 状態で作成する
func NewReview(customerID, restaurantID string, rating int, comment string) *Review {
	now := time.Now()
	return &Review{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Rating:       rating,
		Comment:      comment,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate はレビューの検証を行う
func (r *Review) Validate() error {
	if r.CustomerID == "" {
		return ErrCustomerIDRequired
	}
	if r.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// Moderate はモデレーション結果を適用する
// pending 以外からの遷移は許可しない（承認・却下は終端状態）
func (r *Review) Moderate(next Status) error {
	if next != StatusApproved && next != StatusRejected {
		return fmt.Errorf("%w: %s", ErrInvalidModeration, next)
	}
	if r.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidModeration, r.Status, next)
	}
	r.Status = next
	r.UpdatedAt = time.Now()
	return nil
}
