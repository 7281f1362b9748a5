package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
)

func newMenuService() (*MenuService, *MockMenuRepository, *MockResolver) {
	menuRepo := new(MockMenuRepository)
	resolver := new(MockResolver)
	// キャッシュはnil許容なのでユニットテストでは省略する
	return NewMenuService(menuRepo, resolver, nil), menuRepo, resolver
}

func TestMenuService_CreateDish_Success(t *testing.T) {
	service, menuRepo, resolver := newMenuService()
	ctx := context.Background()

	resolver.On("Resolve", ctx, ownerToken).Return(ownerUser(), nil)
	menuRepo.On("Create", ctx, mock.AnythingOfType("*menu.Dish")).Return(nil)

	dish, err := service.CreateDish(ctx, CreateDishInput{
		ActorToken:   ownerToken,
		RestaurantID: "resto-1",
		Name:         "季節野菜のタジン",
		Price:        1800,
		Allergens:    []string{"セロリ"},
	})

	require.NoError(t, err)
	assert.True(t, dish.Available)
	assert.Equal(t, []string{"セロリ"}, dish.Allergens)
	menuRepo.AssertExpectations(t)
}

func TestMenuService_CreateDish_ForbiddenForCustomer(t *testing.T) {
	service, menuRepo, resolver := newMenuService()
	ctx := context.Background()

	resolver.On("Resolve", ctx, customerToken).Return(customerUser(), nil)

	_, err := service.CreateDish(ctx, CreateDishInput{
		ActorToken:   customerToken,
		RestaurantID: "resto-1",
		Name:         "季節野菜のタジン",
		Price:        1800,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrForbidden)
	menuRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMenuService_CreateDish_InvalidPrice(t *testing.T) {
	service, menuRepo, resolver := newMenuService()
	ctx := context.Background()

	resolver.On("Resolve", ctx, ownerToken).Return(ownerUser(), nil)

	_, err := service.CreateDish(ctx, CreateDishInput{
		ActorToken:   ownerToken,
		RestaurantID: "resto-1",
		Name:         "スープ",
		Price:        -100,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, menu.ErrInvalidPrice)
	menuRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMenuService_ListByRestaurant(t *testing.T) {
	service, menuRepo, _ := newMenuService()
	ctx := context.Background()

	dishes := []*menu.Dish{
		{ID: "dish-1", RestaurantID: "resto-1", Name: "タジン", Price: 1800},
	}
	menuRepo.On("ListByRestaurant", ctx, "resto-1").Return(dishes, nil)

	result, err := service.ListByRestaurant(ctx, "resto-1")

	require.NoError(t, err)
	assert.Len(t, result, 1)
	menuRepo.AssertExpectations(t)
}

func TestMenuService_UpdateDish(t *testing.T) {
	service, menuRepo, resolver := newMenuService()
	ctx := context.Background()

	existing := &menu.Dish{
		ID:           "dish-1",
		RestaurantID: "resto-1",
		Name:         "タジン",
		Price:        1800,
		Available:    true,
	}
	resolver.On("Resolve", ctx, ownerToken).Return(ownerUser(), nil)
	menuRepo.On("GetByID", ctx, "dish-1").Return(existing, nil)
	menuRepo.On("Update", ctx, existing).Return(nil)

	dish, err := service.UpdateDish(ctx, UpdateDishInput{
		ActorToken: ownerToken,
		ID:         "dish-1",
		Name:       "タジン（大盛）",
		Price:      2200,
		Available:  false,
	})

	require.NoError(t, err)
	assert.Equal(t, "タジン（大盛）", dish.Name)
	assert.Equal(t, 2200, dish.Price)
	assert.False(t, dish.Available)
}

func TestMenuService_DeleteDish(t *testing.T) {
	service, menuRepo, resolver := newMenuService()
	ctx := context.Background()

	resolver.On("Resolve", ctx, ownerToken).Return(ownerUser(), nil)
	menuRepo.On("GetByID", ctx, "dish-1").Return(&menu.Dish{ID: "dish-1", RestaurantID: "resto-1"}, nil)
	menuRepo.On("Delete", ctx, "dish-1").Return(nil)

	err := service.DeleteDish(ctx, ownerToken, "dish-1")

	require.NoError(t, err)
	menuRepo.AssertExpectations(t)
}
