package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
	redisinfra "github.com/ari1008/vegnbio-reservation/internal/infrastructure/redis"
	"github.com/ari1008/vegnbio-reservation/internal/pkg/logger"
)

// メニューキャッシュの有効期限
const menuCacheTTL = 5 * time.Minute

type MenuService struct {
	menuRepo menu.Repository
	resolver identity.Resolver
	cache    *redisinfra.MenuCache
}

func NewMenuService(mr menu.Repository, resolver identity.Resolver, cache *redisinfra.MenuCache) *MenuService {
	return &MenuService{menuRepo: mr, resolver: resolver, cache: cache}
}

type CreateDishInput struct {
	ActorToken   string
	RestaurantID string
	Name         string
	Description  string
	Price        int
	Allergens    []string
}

func (s *MenuService) CreateDish(ctx context.Context, input CreateDishInput) (*menu.Dish, error) {
	if _, err := requireOwner(ctx, s.resolver, input.ActorToken); err != nil {
		return nil, err
	}
	d := menu.NewDish(input.RestaurantID, input.Name, input.Description, input.Price, input.Allergens)
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.menuRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.invalidate(ctx, input.RestaurantID)
	return d, nil
}

func (s *MenuService) GetDish(ctx context.Context, id string) (*menu.Dish, error) {
	return s.menuRepo.GetByID(ctx, id)
}

// ListByRestaurant はレストランのメニューを返す（キャッシュ優先）
func (s *MenuService) ListByRestaurant(ctx context.Context, restaurantID string) ([]*menu.Dish, error) {
	if s.cache != nil {
		if dishes, err := s.cache.Get(ctx, restaurantID); err == nil {
			return dishes, nil
		}
	}
	dishes, err := s.menuRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, restaurantID, dishes, menuCacheTTL); err != nil {
			logger.Warn("メニューキャッシュの保存に失敗", zap.Error(err))
		}
	}
	return dishes, nil
}

type UpdateDishInput struct {
	ActorToken  string
	ID          string
	Name        string
	Description string
	Price       int
	Allergens   []string
	Available   bool
}

func (s *MenuService) UpdateDish(ctx context.Context, input UpdateDishInput) (*menu.Dish, error) {
	if _, err := requireOwner(ctx, s.resolver, input.ActorToken); err != nil {
		return nil, err
	}
	d, err := s.menuRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	d.Name = input.Name
	d.Description = input.Description
	d.Price = input.Price
	d.Allergens = input.Allergens
	d.Available = input.Available
	d.UpdatedAt = time.Now()
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.menuRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.invalidate(ctx, d.RestaurantID)
	return d, nil
}

func (s *MenuService) DeleteDish(ctx context.Context, actorToken, id string) error {
	if _, err := requireOwner(ctx, s.resolver, actorToken); err != nil {
		return err
	}
	d, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, d.RestaurantID)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context, restaurantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, restaurantID); err != nil {
		logger.Warn("メニューキャッシュの無効化に失敗", zap.Error(err))
	}
}
