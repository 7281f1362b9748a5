package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
)

type CustomerHandler struct {
	service CustomerServiceInterface
}

func NewCustomerHandler(s CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{service: s}
}

type CreateCustomerRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type CustomerResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCustomerResponse(cust *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          cust.ID,
		DisplayName: cust.DisplayName,
		Email:       cust.Email,
		CreatedAt:   cust.CreatedAt,
	}
}

// Create は顧客を作成する
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cust, err := h.service.CreateCustomer(c.Request().Context(), application.CreateCustomerInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toCustomerResponse(cust))
}

// GetByID は顧客を取得する
func (h *CustomerHandler) GetByID(c echo.Context) error {
	cust, err := h.service.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toCustomerResponse(cust))
}

// List は顧客一覧を取得する
func (h *CustomerHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	customers, err := h.service.ListCustomers(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = toCustomerResponse(cust)
	}
	return c.JSON(http.StatusOK, resp)
}
