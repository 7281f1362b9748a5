package application

import (
	"context"
	"fmt"
	"time"

	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
)

type RestaurantService struct {
	restaurantRepo restaurant.Repository
	resolver       identity.Resolver
}

func NewRestaurantService(rr restaurant.Repository, resolver identity.Resolver) *RestaurantService {
	return &RestaurantService{restaurantRepo: rr, resolver: resolver}
}

type MeetingRoomInput struct {
	Name       string
	Capacity   int
	Reservable bool
}

type CreateRestaurantInput struct {
	ActorToken   string
	Name         string
	Capacity     int
	OpeningHours map[time.Weekday]restaurant.OpeningHours
	MeetingRooms []MeetingRoomInput
}

// CreateRestaurant はレストランを作成する（オーナー権限が必要）
func (s *RestaurantService) CreateRestaurant(ctx context.Context, input CreateRestaurantInput) (*restaurant.Restaurant, error) {
	if _, err := requireOwner(ctx, s.resolver, input.ActorToken); err != nil {
		return nil, err
	}
	r := restaurant.NewRestaurant(input.Name, input.Capacity, input.OpeningHours)
	for _, room := range input.MeetingRooms {
		r.MeetingRooms = append(r.MeetingRooms, restaurant.MeetingRoom{
			Name:       room.Name,
			Capacity:   room.Capacity,
			Reservable: room.Reservable,
		})
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.restaurantRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, limit, offset int) ([]*restaurant.Restaurant, error) {
	return s.restaurantRepo.List(ctx, normalizeLimit(limit), normalizeOffset(offset))
}

type UpdateRestaurantInput struct {
	ActorToken   string
	ID           string
	Name         string
	Capacity     int
	OpeningHours map[time.Weekday]restaurant.OpeningHours
	MeetingRooms []MeetingRoomInput
}

// UpdateRestaurant はレストランの基本情報・営業時間・会議室を更新する（オーナー権限が必要）
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, input UpdateRestaurantInput) (*restaurant.Restaurant, error) {
	if _, err := requireOwner(ctx, s.resolver, input.ActorToken); err != nil {
		return nil, err
	}
	r, err := s.restaurantRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	r.Name = input.Name
	r.Capacity = input.Capacity
	r.OpeningHours = input.OpeningHours
	r.MeetingRooms = nil
	for _, room := range input.MeetingRooms {
		r.MeetingRooms = append(r.MeetingRooms, restaurant.MeetingRoom{
			RestaurantID: r.ID,
			Name:         room.Name,
			Capacity:     room.Capacity,
			Reservable:   room.Reservable,
		})
	}
	r.UpdatedAt = time.Now()
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.restaurantRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
