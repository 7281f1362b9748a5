package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/reservation"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	CustomerID    string    `json:"customer_id" validate:"required"`
	RestaurantID  string    `json:"restaurant_id" validate:"required"`
	MeetingRoomID string    `json:"meeting_room_id"`
	Type          string    `json:"type" validate:"required,oneof=restaurant_full meeting_room"`
	StartsAt      time.Time `json:"starts_at" validate:"required"`
	EndsAt        time.Time `json:"ends_at" validate:"required"`
	PartySize     int       `json:"party_size" validate:"required,min=1"`
	Notes         string    `json:"notes"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type ReservationResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	RestaurantID  string    `json:"restaurant_id"`
	MeetingRoomID string    `json:"meeting_room_id,omitempty"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	PartySize     int       `json:"party_size"`
	Notes         string    `json:"notes,omitempty"`
	Price         int       `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		RestaurantID:  r.RestaurantID,
		MeetingRoomID: r.MeetingRoomID,
		Type:          string(r.Type),
		Status:        string(r.Status),
		StartsAt:      r.Window.Start,
		EndsAt:        r.Window.End,
		PartySize:     r.PartySize,
		Notes:         r.Notes,
		Price:         r.Price,
		CreatedAt:     r.CreatedAt,
	}
}

func toReservationResponses(reservations []*reservation.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return resp
}

// Create は予約を作成する（オーナー権限が必要）
func (h *ReservationHandler) Create(c echo.Context) error {
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		ActorToken:    bearerToken(c),
		CustomerID:    req.CustomerID,
		RestaurantID:  req.RestaurantID,
		MeetingRoomID: req.MeetingRoomID,
		Type:          reservation.Type(req.Type),
		Start:         req.StartsAt,
		End:           req.EndsAt,
		PartySize:     req.PartySize,
		Notes:         req.Notes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// GetByID は予約を取得する
func (h *ReservationHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// List は全予約の一覧を取得する（オーナー権限が必要）
func (h *ReservationHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	reservations, err := h.service.ListAll(c.Request().Context(), bearerToken(c), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// ListByRestaurant はレストランの予約一覧を取得する（オーナー権限が必要）
func (h *ReservationHandler) ListByRestaurant(c echo.Context) error {
	limit, offset := pagination(c)
	reservations, err := h.service.ListByRestaurant(c.Request().Context(), bearerToken(c), c.Param("id"), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// ListByCustomer は顧客の予約一覧を取得する
func (h *ReservationHandler) ListByCustomer(c echo.Context) error {
	limit, offset := pagination(c)
	reservations, err := h.service.ListByCustomer(c.Request().Context(), c.Param("id"), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// UpdateStatus は予約のステータスを変更する（オーナー権限が必要）
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req UpdateReservationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.UpdateStatus(c.Request().Context(), bearerToken(c), c.Param("id"), booking.Status(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Cancel は予約をキャンセルする（オーナー権限が必要）
func (h *ReservationHandler) Cancel(c echo.Context) error {
	r, err := h.service.CancelReservation(c.Request().Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}
