package handler

import (
	"context"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
	"github.com/ari1008/vegnbio-reservation/internal/domain/event"
	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
	"github.com/ari1008/vegnbio-reservation/internal/domain/reservation"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
	"github.com/ari1008/vegnbio-reservation/internal/domain/review"
)

// RestaurantServiceInterface はレストランサービスのインターフェース
type RestaurantServiceInterface interface {
	CreateRestaurant(ctx context.Context, input application.CreateRestaurantInput) (*restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error)
	ListRestaurants(ctx context.Context, limit, offset int) ([]*restaurant.Restaurant, error)
	UpdateRestaurant(ctx context.Context, input application.UpdateRestaurantInput) (*restaurant.Restaurant, error)
}

// CustomerServiceInterface は顧客サービスのインターフェース
type CustomerServiceInterface interface {
	CreateCustomer(ctx context.Context, input application.CreateCustomerInput) (*customer.Customer, error)
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]*customer.Customer, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	ListByRestaurant(ctx context.Context, actorToken, restaurantID string, limit, offset int) ([]*reservation.Reservation, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*reservation.Reservation, error)
	ListAll(ctx context.Context, actorToken string, limit, offset int) ([]*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, actorToken, id string, next booking.Status) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, actorToken, id string) (*reservation.Reservation, error)
}

// EventRequestServiceInterface はイベントリクエストサービスのインターフェース
type EventRequestServiceInterface interface {
	CreateEventRequest(ctx context.Context, input application.CreateEventRequestInput) (*event.EventRequest, error)
	GetEventRequest(ctx context.Context, id string) (*event.EventRequest, error)
	ListByRestaurant(ctx context.Context, actorToken, restaurantID string, limit, offset int) ([]*event.EventRequest, error)
	ListAll(ctx context.Context, actorToken string, limit, offset int) ([]*event.EventRequest, error)
	UpdateStatus(ctx context.Context, actorToken, id string, next booking.Status) (*event.EventRequest, error)
	CancelEventRequest(ctx context.Context, actorToken, id string) (*event.EventRequest, error)
}

// MenuServiceInterface はメニューサービスのインターフェース
type MenuServiceInterface interface {
	CreateDish(ctx context.Context, input application.CreateDishInput) (*menu.Dish, error)
	GetDish(ctx context.Context, id string) (*menu.Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*menu.Dish, error)
	UpdateDish(ctx context.Context, input application.UpdateDishInput) (*menu.Dish, error)
	DeleteDish(ctx context.Context, actorToken, id string) error
}

// ReviewServiceInterface はレビューサービスのインターフェース
type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, input application.SubmitReviewInput) (*review.Review, error)
	GetReview(ctx context.Context, id string) (*review.Review, error)
	ModerateReview(ctx context.Context, actorToken, id string, next review.Status) (*review.Review, error)
	ListApprovedByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*review.Review, error)
	ListPending(ctx context.Context, actorToken string, limit, offset int) ([]*review.Review, error)
}
