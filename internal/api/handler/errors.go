package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
	"github.com/ari1008/vegnbio-reservation/internal/domain/event"
	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
	"github.com/ari1008/vegnbio-reservation/internal/domain/reservation"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
	"github.com/ari1008/vegnbio-reservation/internal/domain/review"
)

// ドメインエラーとHTTPステータスの対応表
// 競合（時間帯の重複・不正な状態遷移）は 409、ビジネスルール違反は 422 に揃える
var notFoundErrors = []error{
	customer.ErrCustomerNotFound,
	restaurant.ErrRestaurantNotFound,
	restaurant.ErrMeetingRoomNotFound,
	reservation.ErrReservationNotFound,
	event.ErrEventRequestNotFound,
	menu.ErrDishNotFound,
	review.ErrReviewNotFound,
}

var conflictErrors = []error{
	booking.ErrSchedulingConflict,
	booking.ErrInvalidStatusTransition,
	restaurant.ErrMeetingRoomInUse,
	review.ErrInvalidModeration,
}

var unprocessableErrors = []error{
	booking.ErrWindowRequired,
	booking.ErrInvalidWindow,
	booking.ErrUnknownStatus,
	restaurant.ErrRestaurantClosed,
	restaurant.ErrOutsideOpeningHours,
	restaurant.ErrInsufficientCapacity,
	restaurant.ErrRoomNotReservable,
	restaurant.ErrInvalidOpeningHours,
	restaurant.ErrDuplicateRoomName,
	restaurant.ErrNameRequired,
	restaurant.ErrRoomNameRequired,
	restaurant.ErrInvalidCapacity,
	restaurant.ErrInvalidPartySize,
	reservation.ErrCustomerIDRequired,
	reservation.ErrRestaurantIDRequired,
	reservation.ErrMeetingRoomIDRequired,
	reservation.ErrUnexpectedMeetingRoomID,
	reservation.ErrInvalidType,
	reservation.ErrInvalidPartySize,
	event.ErrCustomerIDRequired,
	event.ErrRestaurantIDRequired,
	event.ErrTitleRequired,
	event.ErrInvalidEventType,
	event.ErrInvalidPartySize,
	menu.ErrRestaurantIDRequired,
	menu.ErrNameRequired,
	menu.ErrInvalidPrice,
	review.ErrCustomerIDRequired,
	review.ErrRestaurantIDRequired,
	review.ErrInvalidRating,
	customer.ErrDisplayNameRequired,
}

// toHTTPError はドメインエラーをHTTPエラーに変換する
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, identity.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, identity.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
	}
	for _, target := range unprocessableErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
