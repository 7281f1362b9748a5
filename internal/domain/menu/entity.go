package menu

import "time"

// Dish は料理エンティティを表す
type Dish struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Price        int
	Allergens    []string
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDish は新しい料理を作成する
func NewDish(restaurantID, name, description string, price int, allergens []string) *Dish {
	now := time.Now()
	return &Dish{
		RestaurantID: restaurantID,
		Name:         name,
		Description:  description,
		Price:        price,
		Allergens:    allergens,
		Available:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate は料理の検証を行う
func (d *Dish) Validate() error {
	if d.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	if d.Name == "" {
		return ErrNameRequired
	}
	if d.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
