package event

import (
	"context"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
)

// Repository はイベントリクエストリポジトリのインターフェース
type Repository interface {
	// Create は新しいイベントリクエストを作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, e *EventRequest) error

	// GetByID はIDからイベントリクエストを取得する
	GetByID(ctx context.Context, id string) (*EventRequest, error)

	// ListByRestaurant はレストランのイベントリクエスト一覧を作成日時の降順で取得する
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*EventRequest, error)

	// ListAll は全イベントリクエストを作成日時の降順で取得する
	ListAll(ctx context.Context, limit, offset int) ([]*EventRequest, error)

	// FindActiveOverlapping は時間枠に重なる pending/confirmed のイベントを取得する
	FindActiveOverlapping(ctx context.Context, tx transaction.Tx, restaurantID string, w booking.Window) ([]*EventRequest, error)

	// UpdateStatus はイベントリクエストのステータスを更新する（トランザクション必須）
	// 遷移元ステータス prev が一致する行のみ更新し、並行遷移で一致しない場合はエラーを返す
	UpdateStatus(ctx context.Context, tx transaction.Tx, e *EventRequest, prev booking.Status) error
}
