package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/restaurant"
)

type RestaurantHandler struct {
	service RestaurantServiceInterface
}

func NewRestaurantHandler(s RestaurantServiceInterface) *RestaurantHandler {
	return &RestaurantHandler{service: s}
}

// OpeningHoursRequest は曜日ごとの営業時間（"15:04" 形式）
type OpeningHoursRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	Open      string `json:"open" validate:"required"`
	Close     string `json:"close" validate:"required"`
}

type MeetingRoomRequest struct {
	Name       string `json:"name" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,min=1"`
	Reservable bool   `json:"reservable"`
}

type CreateRestaurantRequest struct {
	Name         string                `json:"name" validate:"required"`
	Capacity     int                   `json:"capacity" validate:"required,min=1"`
	OpeningHours []OpeningHoursRequest `json:"opening_hours" validate:"dive"`
	MeetingRooms []MeetingRoomRequest  `json:"meeting_rooms" validate:"dive"`
}

type UpdateRestaurantRequest struct {
	Name         string                `json:"name" validate:"required"`
	Capacity     int                   `json:"capacity" validate:"required,min=1"`
	OpeningHours []OpeningHoursRequest `json:"opening_hours" validate:"dive"`
	MeetingRooms []MeetingRoomRequest  `json:"meeting_rooms" validate:"dive"`
}

type OpeningHoursResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	Open      string `json:"open"`
	Close     string `json:"close"`
}

type MeetingRoomResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Reservable bool   `json:"reservable"`
}

type RestaurantResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Capacity     int                    `json:"capacity"`
	OpeningHours []OpeningHoursResponse `json:"opening_hours"`
	MeetingRooms []MeetingRoomResponse  `json:"meeting_rooms"`
	CreatedAt    time.Time              `json:"created_at"`
}

func toOpeningHoursMap(hours []OpeningHoursRequest) map[time.Weekday]restaurant.OpeningHours {
	m := make(map[time.Weekday]restaurant.OpeningHours, len(hours))
	for _, h := range hours {
		m[time.Weekday(h.DayOfWeek)] = restaurant.OpeningHours{Open: h.Open, Close: h.Close}
	}
	return m
}

func toMeetingRoomInputs(rooms []MeetingRoomRequest) []application.MeetingRoomInput {
	inputs := make([]application.MeetingRoomInput, len(rooms))
	for i, r := range rooms {
		inputs[i] = application.MeetingRoomInput{Name: r.Name, Capacity: r.Capacity, Reservable: r.Reservable}
	}
	return inputs
}

func toRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	hours := make([]OpeningHoursResponse, 0, len(r.OpeningHours))
	// time.Weekday の昇順（日曜始まり）で返す
	for day := time.Sunday; day <= time.Saturday; day++ {
		if h, ok := r.OpeningHours[day]; ok {
			hours = append(hours, OpeningHoursResponse{DayOfWeek: int(day), Open: h.Open, Close: h.Close})
		}
	}
	rooms := make([]MeetingRoomResponse, len(r.MeetingRooms))
	for i, room := range r.MeetingRooms {
		rooms[i] = MeetingRoomResponse{ID: room.ID, Name: room.Name, Capacity: room.Capacity, Reservable: room.Reservable}
	}
	return RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Capacity:     r.Capacity,
		OpeningHours: hours,
		MeetingRooms: rooms,
		CreatedAt:    r.CreatedAt,
	}
}

// Create はレストランを作成する（オーナー権限が必要）
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateRestaurant(c.Request().Context(), application.CreateRestaurantInput{
		ActorToken:   bearerToken(c),
		Name:         req.Name,
		Capacity:     req.Capacity,
		OpeningHours: toOpeningHoursMap(req.OpeningHours),
		MeetingRooms: toMeetingRoomInputs(req.MeetingRooms),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toRestaurantResponse(r))
}

// GetByID はレストランを取得する
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetRestaurant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// List はレストラン一覧を取得する
func (h *RestaurantHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	restaurants, err := h.service.ListRestaurants(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		resp[i] = toRestaurantResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update はレストランを更新する（オーナー権限が必要）
func (h *RestaurantHandler) Update(c echo.Context) error {
	var req UpdateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.UpdateRestaurant(c.Request().Context(), application.UpdateRestaurantInput{
		ActorToken:   bearerToken(c),
		ID:           c.Param("id"),
		Name:         req.Name,
		Capacity:     req.Capacity,
		OpeningHours: toOpeningHoursMap(req.OpeningHours),
		MeetingRooms: toMeetingRoomInputs(req.MeetingRooms),
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}
