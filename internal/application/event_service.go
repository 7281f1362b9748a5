package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
	"github.com/ari1008/vegnbio-reservation/internal/domain/event"
	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
	"github.com/ari1008/vegnbio-reservation/internal/domain/transaction"
	"github.com/ari1008/vegnbio-reservation/internal/infrastructure/rabbitmq"
	redislock "github.com/ari1008/vegnbio-reservation/internal/infrastructure/redis"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/logger"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/metrics"
)

// EventRequestService は大規模予約（会議・パーティ等）を扱う
// 通常予約と同じ検証パイプラインを通り、イベント同士の会場占有で競合判定する
type EventRequestService struct {
	txManager      transaction.Manager
	eventRepo      event.Repository
	restaurantRepo restaurant.Repository
	customerRepo   customer.Repository
	resolver       identity.Resolver
	lockManager    *redislock.LockManager
	notifier       *rabbitmq.Notifier
	metrics        *metrics.Metrics
}

func NewEventRequestService(
	tm transaction.Manager,
	er event.Repository,
	restoRepo restaurant.Repository,
	cr customer.Repository,
	resolver identity.Resolver,
	lm *redislock.LockManager,
	notifier *rabbitmq.Notifier,
	m *metrics.Metrics,
) *EventRequestService {
	return &EventRequestService{
		txManager:      tm,
		eventRepo:      er,
		restaurantRepo: restoRepo,
		customerRepo:   cr,
		resolver:       resolver,
		lockManager:    lm,
		notifier:       notifier,
		metrics:        m,
	}
}

type CreateEventRequestInput struct {
	ActorToken   string
	CustomerID   string
	RestaurantID string
	Type         event.Type
	Title        string
	Description  string
	Start        time.Time
	End          time.Time
	PartySize    int
}

// CreateEventRequest はイベントリクエストを作成する
func (s *EventRequestService) CreateEventRequest(ctx context.Context, input CreateEventRequestInput) (*event.EventRequest, error) {
	if _, err := requireOwner(ctx, s.resolver, input.ActorToken); err != nil {
		return nil, err
	}

	w, err := booking.NewWindow(input.Start, input.End)
	if err != nil {
		s.countBooking("rejected")
		return nil, err
	}
	req := event.NewEventRequest(input.CustomerID, input.RestaurantID, input.Type, input.Title, input.Description, w, input.PartySize)
	if err := req.Validate(); err != nil {
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
	// イベントはレストラン全体を占有する
	if err := resto.CheckPartySize("", input.PartySize); err != nil {
		s.countBooking("rejected")
		return nil, err
	}

	if s.lockManager != nil {
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, redislock.ResourceLockKey(input.RestaurantID), 10*time.Second, 3, 100*time.Millisecond)
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

	if err := s.restaurantRepo.LockForBooking(ctx, tx, input.RestaurantID); err != nil {
		return nil, err
	}

	conflicts, err := s.eventRepo.FindActiveOverlapping(ctx, tx, input.RestaurantID, w)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		s.countBooking("conflict")
		return nil, fmt.Errorf("%w: 重複するイベントが%d件あります", booking.ErrSchedulingConflict, len(conflicts))
	}

	req.ComputePrice()

	if err := s.eventRepo.Create(ctx, tx, req); err != nil {
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
	s.publish(ctx, req, "created")
	return req, nil
}

func (s *EventRequestService) GetEventRequest(ctx context.Context, id string) (*event.EventRequest, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListByRestaurant はレストランのイベントリクエスト一覧を返す（オーナー権限が必要）
func (s *EventRequestService) ListByRestaurant(ctx context.Context, actorToken, restaurantID string, limit, offset int) ([]*event.EventRequest, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	return s.eventRepo.ListByRestaurant(ctx, restaurantID, normalizeLimit(limit), normalizeOffset(offset))
}

// ListAll は全イベントリクエストの一覧を返す（オーナー権限が必要）
func (s *EventRequestService) ListAll(ctx context.Context, actorToken string, limit, offset int) ([]*event.EventRequest, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	return s.eventRepo.ListAll(ctx, normalizeLimit(limit), normalizeOffset(offset))
}

// UpdateStatus は予約と同じ遷移表でイベントリクエストのステータスを変更する
func (s *EventRequestService) UpdateStatus(ctx context.Context, actorToken, id string, next booking.Status) (*event.EventRequest, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	req, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := req.Status
	if err := req.ChangeStatus(next); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.eventRepo.UpdateStatus(ctx, tx, req, prev); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.publish(ctx, req, "status_changed")
	return req, nil
}

// CancelEventRequest はイベントリクエストをキャンセルする
func (s *EventRequestService) CancelEventRequest(ctx context.Context, actorToken, id string) (*event.EventRequest, error) {
	return s.UpdateStatus(ctx, actorToken, id, booking.StatusCancelled)
}

func (s *EventRequestService) countBooking(outcome string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues("event_request", outcome).Inc()
	}
}

func (s *EventRequestService) publish(ctx context.Context, req *event.EventRequest, action string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, rabbitmq.BookingEvent{
		Kind:         "event_request",
		Action:       action,
		BookingID:    req.ID,
		RestaurantID: req.RestaurantID,
		CustomerID:   req.CustomerID,
		Status:       string(req.Status),
		OccurredAt:   time.Now(),
	}); err != nil {
		logger.Warn("イベント通知の発行に失敗", zap.String("action", action), zap.Error(err))
	}
}
