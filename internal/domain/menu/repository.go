package menu

import "context"

// Repository はメニューリポジトリのインターフェース
type Repository interface {
	// Create は新しい料理を作成する
	Create(ctx context.Context, d *Dish) error

	// GetByID はIDから料理を取得する
	GetByID(ctx context.Context, id string) (*Dish, error)

	// ListByRestaurant はレストランのメニューを取得する
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Dish, error)

	// Update は料理を更新する
	Update(ctx context.Context, d *Dish) error

	// Delete は料理を削除する
	Delete(ctx context.Context, id string) error
}
