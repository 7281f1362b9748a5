package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/reservation"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
	"github.com/ari1008/vegnbio-reservation/internal/infrastructure/rabbitmq"
	redislock "github.com/ari1008/vegnbio-reservation/internal/infrastructure/redis"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/logger"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/metrics"
)

type ReservationService struct {
	txManager       transaction.Manager
	reservationRepo reservation.Repository
	restaurantRepo  restaurant.Repository
	customerRepo    customer.Repository
	resolver        identity.Resolver
	lockManager     *redislock.LockManager
	notifier        *rabbitmq.Notifier
	metrics         *metrics.Metrics
}

func NewReservationService(
	tm transaction.Manager,
	rr reservation.Repository,
	restoRepo restaurant.Repository,
	cr customer.Repository,
	resolver identity.Resolver,
	lm *redislock.LockManager,
	notifier *rabbitmq.Notifier,
	m *metrics.Metrics,
) *ReservationService {
	return &ReservationService{
		txManager:       tm,
		reservationRepo: rr,
		restaurantRepo:  restoRepo,
		customerRepo:    cr,
		resolver:        resolver,
		lockManager:     lm,
		notifier:        notifier,
		metrics:         m,
	}
}

type CreateReservationInput struct {
	ActorToken    string
	CustomerID    string
	RestaurantID  string
	MeetingRoomID string
	Type          reservation.Type
	Start         time.Time
	End           time.Time
	PartySize     int
	Notes         string
}

// CreateReservation は予約を作成する
// 営業時間・収容人数の検証後、トランザクション内で競合チェックと挿入を行う
// レストラン行の FOR UPDATE ロックにより check-then-act の競合を直列化し、
// さらにストレージ層の排他制約が同種予約の重複挿入をアトミックに拒否する
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	if _, err := requireOwner(ctx, s.resolver, input.ActorToken); err != nil {
		return nil, err
	}

	w, err := booking.NewWindow(input.Start, input.End)
	if err != nil {
		s.countBooking("rejected")
		return nil, err
	}
	res := reservation.NewReservation(input.CustomerID, input.RestaurantID, input.MeetingRoomID, input.Type, w, input.PartySize, input.Notes)
	if err := res.Validate(); err != nil {
		s.countBooking("rejected")
		return nil, err
	}

	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	resto, err := s.restaurantRepo.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	if err := resto.CheckOpenDuring(w); err != nil {
		s.countBooking("rejected")
		return nil, err
	}
	if err := resto.CheckPartySize(input.MeetingRoomID, input.PartySize); err != nil {
		s.countBooking("rejected")
		return nil, err
	}

	// 分散ロックを取得（貸切と会議室の競合を直列化するためレストラン単位）
	if s.lockManager != nil {
		lock, err := s.acquireResourceLock(ctx, input.RestaurantID)
		if err != nil {
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				s.countBooking("conflict")
				return nil, booking.ErrSchedulingConflict
			}
			return nil, err
		}
		defer lock.Release(ctx)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 行ロックで同一レストランへの同時予約を直列化する
	if err := s.restaurantRepo.LockForBooking(ctx, tx, input.RestaurantID); err != nil {
		return nil, err
	}

	conflicts, err := s.reservationRepo.FindActiveOverlapping(ctx, tx, input.RestaurantID, input.MeetingRoomID, input.Type, w)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		s.countBooking("conflict")
		return nil, fmt.Errorf("%w: 重複する予約が%d件あります", booking.ErrSchedulingConflict, len(conflicts))
	}

	res.ComputePrice()

	if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
		if errors.Is(err, booking.ErrSchedulingConflict) {
			s.countBooking("conflict")
		} else {
			s.countBooking("error")
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.countBooking("error")
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.countBooking("success")
	s.adjustActiveGauge("", booking.StatusPending)
	s.publish(ctx, res, "created")
	return res, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

// ListByRestaurant はレストランの予約一覧を返す（オーナー権限が必要）
func (s *ReservationService) ListByRestaurant(ctx context.Context, actorToken, restaurantID string, limit, offset int) ([]*reservation.Reservation, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListByRestaurant(ctx, restaurantID, normalizeLimit(limit), normalizeOffset(offset))
}

// ListByCustomer は顧客の予約一覧を返す
func (s *ReservationService) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*reservation.Reservation, error) {
	return s.reservationRepo.ListByCustomer(ctx, customerID, normalizeLimit(limit), normalizeOffset(offset))
}

// ListAll は全予約の一覧を返す（オーナー権限が必要）
func (s *ReservationService) ListAll(ctx context.Context, actorToken string, limit, offset int) ([]*reservation.Reservation, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListAll(ctx, normalizeLimit(limit), normalizeOffset(offset))
}

// UpdateStatus は状態遷移表を検証した上で予約のステータスを変更する
func (s *ReservationService) UpdateStatus(ctx context.Context, actorToken, id string, next booking.Status) (*reservation.Reservation, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := res.Status
	if err := res.ChangeStatus(next); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.UpdateStatus(ctx, tx, res, prev); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.adjustActiveGauge(prev, res.Status)
	s.publish(ctx, res, "status_changed")
	return res, nil
}

// CancelReservation は予約をキャンセルする（cancelled への遷移の別名）
func (s *ReservationService) CancelReservation(ctx context.Context, actorToken, id string) (*reservation.Reservation, error) {
	return s.UpdateStatus(ctx, actorToken, id, booking.StatusCancelled)
}

// CompleteElapsed は終了時刻を過ぎた confirmed の予約を completed に遷移させる
// バックグラウンドワーカーから定期的に呼ばれる
func (s *ReservationService) CompleteElapsed(ctx context.Context) (int, error) {
	elapsed, err := s.reservationRepo.FindElapsedConfirmed(ctx, 100)
	if err != nil {
		return 0, err
	}
	if len(elapsed) == 0 {
		return 0, nil
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, res := range elapsed {
		if err := res.ChangeStatus(booking.StatusCompleted); err != nil {
			logger.Warn("終了済み予約の遷移に失敗", zap.String("id", res.ID), zap.Error(err))
			continue
		}
		if err := s.reservationRepo.UpdateStatus(ctx, tx, res, booking.StatusConfirmed); err != nil {
			return 0, err
		}
		s.adjustActiveGauge(booking.StatusConfirmed, booking.StatusCompleted)
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("コミットに失敗: %w", err)
	}
	return count, nil
}

func (s *ReservationService) acquireResourceLock(ctx context.Context, restaurantID string) (*redislock.DistributedLock, error) {
	start := time.Now()
	lock, err := s.lockManager.AcquireLockWithRetry(ctx, redislock.ResourceLockKey(restaurantID), 10*time.Second, 3, 100*time.Millisecond)
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "failed"
		}
		s.metrics.DistributedLockDuration.WithLabelValues("acquire", status).Observe(time.Since(start).Seconds())
	}
	return lock, err
}

func (s *ReservationService) countBooking(outcome string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues("reservation", outcome).Inc()
	}
}

// adjustActiveGauge はアクティブ予約数のゲージを遷移に合わせて更新する
func (s *ReservationService) adjustActiveGauge(from, to booking.Status) {
	if s.metrics == nil {
		return
	}
	if from.IsActive() {
		s.metrics.ActiveBookings.WithLabelValues(string(from)).Dec()
	}
	if to.IsActive() {
		s.metrics.ActiveBookings.WithLabelValues(string(to)).Inc()
	}
}

func (s *ReservationService) publish(ctx context.Context, res *reservation.Reservation, action string) {
	if s.notifier == nil {
		return
	}
	// 通知の失敗は予約処理を妨げない
	if err := s.notifier.Publish(ctx, rabbitmq.BookingEvent{
		Kind:         "reservation",
		Action:       action,
		BookingID:    res.ID,
		RestaurantID: res.RestaurantID,
		CustomerID:   res.CustomerID,
		Status:       string(res.Status),
		OccurredAt:   time.Now(),
	}); err != nil {
		logger.Warn("予約通知の発行に失敗", zap.String("action", action), zap.Error(err))
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
