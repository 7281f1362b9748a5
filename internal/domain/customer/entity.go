package customer

import "time"

// Customer は顧客エンティティを表す
// 予約はオーナーが顧客に代わって作成するため、顧客は参照データに近い
type Customer struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCustomer は新しい顧客を作成する
func NewCustomer(displayName, email string) *Customer {
	now := time.Now()
	return &Customer{
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate は顧客の検証を行う
func (c *Customer) Validate() error {
	if c.DisplayName == "" {
		return ErrDisplayNameRequired
	}
	return nil
}
