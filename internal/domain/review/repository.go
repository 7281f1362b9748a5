package review

import "context"

// Repository はレビューリポジトリのインターフェース
type Repository interface {
	// Create は新しいレビューを作成する
	Create(ctx context.Context, r *Review) error

	// GetByID はIDからレビューを取得する
	GetByID(ctx context.Context, id string) (*Review, error)

	// ListApprovedByRestaurant は承認済みレビューを作成日時の降順で取得する
	ListApprovedByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*Review, error)

	// ListPending はモデレーション待ちのレビューを取得する
	ListPending(ctx context.Context, limit, offset int) ([]*Review, error)

	// UpdateStatus はレビューのモデレーション状態を更新する
	UpdateStatus(ctx context.Context, r *Review) error
}
