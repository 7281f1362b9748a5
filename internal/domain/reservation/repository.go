package reservation

import (
	"context"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	// ストレージ層の排他制約に競合した場合は booking.ErrSchedulingConflict を返す
	Create(ctx context.Context, tx transaction.Tx, r *Reservation) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// ListByRestaurant はレストランの予約一覧を作成日時の降順で取得する
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*Reservation, error)

	// ListByCustomer は顧客の予約一覧を作成日時の降順で取得する
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*Reservation, error)

	// ListAll は全予約を作成日時の降順で取得する
	ListAll(ctx context.Context, limit, offset int) ([]*Reservation, error)

	// FindActiveOverlapping は時間枠に重なる pending/confirmed の予約を取得する
	// 貸切予約の場合はレストランの全予約、会議室予約の場合は貸切予約と同一会議室の予約が対象
	// 競合チェックと挿入を同一トランザクションで行うため tx を受け取る
	FindActiveOverlapping(ctx context.Context, tx transaction.Tx, restaurantID, roomID string, typ Type, w booking.Window) ([]*Reservation, error)

	// UpdateStatus は予約のステータスを更新する（トランザクション必須）
	// 遷移元ステータス prev が一致する行のみ更新し、並行遷移で一致しない場合はエラーを返す
	UpdateStatus(ctx context.Context, tx transaction.Tx, r *Reservation, prev booking.Status) error

	// FindElapsedConfirmed は終了時刻を過ぎた confirmed の予約を取得する
	FindElapsedConfirmed(ctx context.Context, limit int) ([]*Reservation, error)
}
