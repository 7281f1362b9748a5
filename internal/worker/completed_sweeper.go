package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ari1008/vegnbio-reservation/internal/pkg/logger"
)

// BookingCompleter は終了済み予約を完了に遷移させるインターフェース
type BookingCompleter interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

// CompletedSweeper は終了時刻を過ぎた confirmed の予約を completed に掃き出すワーカー
type CompletedSweeper struct {
	reservationService BookingCompleter
	interval           time.Duration
	stopCh             chan struct{}
	doneCh             chan struct{}
}

// NewCompletedSweeper は新しいスイーパーを作成
func NewCompletedSweeper(rs BookingCompleter, interval time.Duration) *CompletedSweeper {
	return &CompletedSweeper{
		reservationService: rs,
		interval:           interval,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start はスイーパーを開始
func (s *CompletedSweeper) Start(ctx context.Context) {
	logger.Info("終了済み予約スイーパー開始", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("終了済み予約スイーパー停止（コンテキストキャンセル）")
			return
		case <-s.stopCh:
			logger.Info("終了済み予約スイーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop はスイーパーを停止
func (s *CompletedSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

// sweep は終了済み予約を完了に遷移させる
func (s *CompletedSweeper) sweep(ctx context.Context) {
	log := logger.Get()
	log.Debug("終了済み予約のスイープ開始")

	count, err := s.reservationService.CompleteElapsed(ctx)
	if err != nil {
		log.Error("終了済み予約のスイープ失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("終了済み予約を完了に遷移", zap.Int("count", count))
	} else {
		log.Debug("終了済み予約なし")
	}
}
