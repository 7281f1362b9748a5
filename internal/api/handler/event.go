package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/event"
)

type EventRequestHandler struct {
	service EventRequestServiceInterface
}

func NewEventRequestHandler(s EventRequestServiceInterface) *EventRequestHandler {
	return &EventRequestHandler{service: s}
}

type CreateEventRequestRequest struct {
	CustomerID   string    `json:"customer_id" validate:"required"`
	RestaurantID string    `json:"restaurant_id" validate:"required"`
	Type         string    `json:"type" validate:"required,oneof=conference private_party birthday seminar"`
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	StartsAt     time.Time `json:"starts_at" validate:"required"`
	EndsAt       time.Time `json:"ends_at" validate:"required"`
	PartySize    int       `json:"party_size" validate:"required,min=1"`
}

type UpdateEventRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type EventRequestResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	PartySize    int       `json:"party_size"`
	Price        int       `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

func toEventRequestResponse(e *event.EventRequest) EventRequestResponse {
	return EventRequestResponse{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		RestaurantID: e.RestaurantID,
		Type:         string(e.Type),
		Title:        e.Title,
		Description:  e.Description,
		Status:       string(e.Status),
		StartsAt:     e.Window.Start,
		EndsAt:       e.Window.End,
		PartySize:    e.PartySize,
		Price:        e.Price,
		CreatedAt:    e.CreatedAt,
	}
}

func toEventRequestResponses(requests []*event.EventRequest) []EventRequestResponse {
	resp := make([]EventRequestResponse, len(requests))
	for i, e := range requests {
		resp[i] = toEventRequestResponse(e)
	}
	return resp
}

// Create はイベントリクエストを作成する（オーナー権限が必要）
func (h *EventRequestHandler) Create(c echo.Context) error {
	var req CreateEventRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	e, err := h.service.CreateEventRequest(c.Request().Context(), application.CreateEventRequestInput{
		ActorToken:   bearerToken(c),
		CustomerID:   req.CustomerID,
		RestaurantID: req.RestaurantID,
		Type:         event.Type(req.Type),
		Title:        req.Title,
		Description:  req.Description,
		Start:        req.StartsAt,
		End:          req.EndsAt,
		PartySize:    req.PartySize,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toEventRequestResponse(e))
}

// GetByID はイベントリクエストを取得する
func (h *EventRequestHandler) GetByID(c echo.Context) error {
	e, err := h.service.GetEventRequest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventRequestResponse(e))
}

// List は全イベントリクエストの一覧を取得する（オーナー権限が必要）
func (h *EventRequestHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	requests, err := h.service.ListAll(c.Request().Context(), bearerToken(c), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventRequestResponses(requests))
}

// ListByRestaurant はレストランのイベントリクエスト一覧を取得する（オーナー権限が必要）
func (h *EventRequestHandler) ListByRestaurant(c echo.Context) error {
	limit, offset := pagination(c)
	requests, err := h.service.ListByRestaurant(c.Request().Context(), bearerToken(c), c.Param("id"), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventRequestResponses(requests))
}

// UpdateStatus はイベントリクエストのステータスを変更する（オーナー権限が必要）
func (h *EventRequestHandler) UpdateStatus(c echo.Context) error {
	var req UpdateEventRequestStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	e, err := h.service.UpdateStatus(c.Request().Context(), bearerToken(c), c.Param("id"), booking.Status(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventRequestResponse(e))
}

// Cancel はイベントリクエストをキャンセルする（オーナー権限が必要）
func (h *EventRequestHandler) Cancel(c echo.Context) error {
	e, err := h.service.CancelEventRequest(c.Request().Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toEventRequestResponse(e))
}
