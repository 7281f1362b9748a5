package application

import (
	"context"
	"fmt"

	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
	"github.com/ari1008/vegnbio-reservation/internal/domain/review"
)

type ReviewService struct {
	reviewRepo     review.Repository
	customerRepo   customer.Repository
	restaurantRepo restaurant.Repository
	resolver       identity.Resolver
}

func NewReviewService(
	rr review.Repository,
	cr customer.Repository,
	rer restaurant.Repository,
	resolver identity.Resolver,
) *ReviewService {
	return &ReviewService{
		reviewRepo:     rr,
		customerRepo:   cr,
		restaurantRepo: rer,
		resolver:       resolver,
	}
}

type SubmitReviewInput struct {
	CustomerID   string
	RestaurantID string
	Rating       int
	Comment      string
}

// SubmitReview はレビューを pending 状態で投稿する
func (s *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*review.Review, error) {
	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.restaurantRepo.GetByID(ctx, input.RestaurantID); err != nil {
		return nil, err
	}
	r := review.NewReview(input.CustomerID, input.RestaurantID, input.Rating, input.Comment)
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*review.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

// ModerateReview はレビューを承認または却下する（オーナー専用）
func (s *ReviewService) ModerateReview(ctx context.Context, actorToken, id string, next review.Status) (*review.Review, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	r, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Moderate(next); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.UpdateStatus(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListApprovedByRestaurant は公開済みレビューを返す（認証不要）
func (s *ReviewService) ListApprovedByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*review.Review, error) {
	return s.reviewRepo.ListApprovedByRestaurant(ctx, restaurantID, normalizeLimit(limit), normalizeOffset(offset))
}

// ListPending はモデレーション待ちの一覧を返す（オーナー専用）
func (s *ReviewService) ListPending(ctx context.Context, actorToken string, limit, offset int) ([]*review.Review, error) {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListPending(ctx, normalizeLimit(limit), normalizeOffset(offset))
}
