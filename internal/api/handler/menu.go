package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
)

type MenuHandler struct {
	service MenuServiceInterface
}

func NewMenuHandler(s MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

type CreateDishRequest struct {
	RestaurantID string   `json:"restaurant_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Price        int      `json:"price" validate:"min=0"`
	Allergens    []string `json:"allergens"`
}

type UpdateDishRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       int      `json:"price" validate:"min=0"`
	Allergens   []string `json:"allergens"`
	Available   bool     `json:"available"`
}

type DishResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        int       `json:"price"`
	Allergens    []string  `json:"allergens"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDishResponse(d *menu.Dish) DishResponse {
	return DishResponse{
		ID:           d.ID,
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Allergens:    d.Allergens,
		Available:    d.Available,
		CreatedAt:    d.CreatedAt,
	}
}

// Create は料理を作成する（オーナー権限が必要）
func (h *MenuHandler) Create(c echo.Context) error {
	var req CreateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	d, err := h.service.CreateDish(c.Request().Context(), application.CreateDishInput{
		ActorToken:   bearerToken(c),
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Allergens:    req.Allergens,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toDishResponse(d))
}

// GetByID は料理を取得する
func (h *MenuHandler) GetByID(c echo.Context) error {
	d, err := h.service.GetDish(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toDishResponse(d))
}

// ListByRestaurant はレストランのメニューを取得する
func (h *MenuHandler) ListByRestaurant(c echo.Context) error {
	dishes, err := h.service.ListByRestaurant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]DishResponse, len(dishes))
	for i, d := range dishes {
		resp[i] = toDishResponse(d)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update は料理を更新する（オーナー権限が必要）
func (h *MenuHandler) Update(c echo.Context) error {
	var req UpdateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	d, err := h.service.UpdateDish(c.Request().Context(), application.UpdateDishInput{
		ActorToken:  bearerToken(c),
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Allergens:   req.Allergens,
		Available:   req.Available,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toDishResponse(d))
}

// Delete は料理を削除する（オーナー権限が必要）
func (h *MenuHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteDish(c.Request().Context(), bearerToken(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
