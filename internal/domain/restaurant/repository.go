package restaurant

import (
	"context"

	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
)

// Repository はレストランリポジトリのインターフェース
type Repository interface {
	// Create は新しいレストランを営業時間・会議室ごと作成する
	Create(ctx context.Context, r *Restaurant) error

	// GetByID はIDからレストランを取得する（営業時間・会議室を含む）
	GetByID(ctx context.Context, id string) (*Restaurant, error)

	// List はレストラン一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Restaurant, error)

	// Update はレストランと営業時間・会議室を更新する
	Update(ctx context.Context, r *Restaurant) error

	// LockForBooking は予約処理のためレストラン行をロックする
	// 競合チェックと挿入を同一トランザクション内で直列化するために使う
	LockForBooking(ctx context.Context, tx transaction.Tx, id string) error
}
