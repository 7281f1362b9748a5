package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/review"
)

type ReviewHandler struct {
	service ReviewServiceInterface
}

func NewReviewHandler(s ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{service: s}
}

type SubmitReviewRequest struct {
	CustomerID   string `json:"customer_id" validate:"required"`
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

type ModerateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		RestaurantID: r.RestaurantID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

func toReviewResponses(reviews []*review.Review) []ReviewResponse {
	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = toReviewResponse(r)
	}
	return resp
}

// Submit はレビューを投稿する
func (h *ReviewHandler) Submit(c echo.Context) error {
	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.SubmitReview(c.Request().Context(), application.SubmitReviewInput{
		CustomerID:   req.CustomerID,
		RestaurantID: req.RestaurantID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toReviewResponse(r))
}

// GetByID はレビューを取得する
func (h *ReviewHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(r))
}

// Moderate はレビューを承認または却下する（オーナー権限が必要）
func (h *ReviewHandler) Moderate(c echo.Context) error {
	var req ModerateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.ModerateReview(c.Request().Context(), bearerToken(c), c.Param("id"), review.Status(req.Status))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReviewResponse(r))
}

// ListByRestaurant は承認済みレビューの一覧を取得する
func (h *ReviewHandler) ListByRestaurant(c echo.Context) error {
	limit, offset := pagination(c)
	reviews, err := h.service.ListApprovedByRestaurant(c.Request().Context(), c.Param("id"), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// ListPending はモデレーション待ちレビューの一覧を取得する（オーナー権限が必要）
func (h *ReviewHandler) ListPending(c echo.Context) error {
	limit, offset := pagination(c)
	reviews, err := h.service.ListPending(c.Request().Context(), bearerToken(c), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}
