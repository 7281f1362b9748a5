package customer

import "context"

// Repository は顧客リポジトリのインターフェース
type Repository interface {
	// Create は新しい顧客を作成する
	Create(ctx context.Context, c *Customer) error

	// GetByID はIDから顧客を取得する
	GetByID(ctx context.Context, id string) (*Customer, error)

	// List は顧客一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Customer, error)
}
