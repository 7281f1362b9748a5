package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ari1008/vegnbio-reservation/internal/application"
	"github.com/ari1008/vegnbio-reservation/internal/domain/booking"
	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
	"github.com/ari1008/vegnbio-reservation/internal/domain/reservation"
)

// MockReservationService はReservationServiceInterfaceのモック
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) ListByRestaurant(ctx context.Context, actorToken, restaurantID string, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, actorToken, restaurantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) ListAll(ctx context.Context, actorToken string, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, actorToken, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateStatus(ctx context.Context, actorToken, id string, next booking.Status) (*reservation.Reservation, error) {
	args := m.Called(ctx, actorToken, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, actorToken, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, actorToken, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func fixtureReservation() *reservation.Reservation {
	now := time.Now()
	w, _ := booking.NewWindow(
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	)
	return &reservation.Reservation{
		ID:            "res-123",
		CustomerID:    "cust-123",
		RestaurantID:  "resto-123",
		MeetingRoomID: "room-1",
		Type:          reservation.TypeMeetingRoom,
		Status:        booking.StatusPending,
		Window:        w,
		PartySize:     8,
		Price:         10000,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestReservationHandler_Create(t *testing.T) {
	e := NewTestEcho()

	reqBody := `{
		"customer_id": "cust-123",
		"restaurant_id": "resto-123",
		"meeting_room_id": "room-1",
		"type": "meeting_room",
		"starts_at": "2025-06-02T10:00:00Z",
		"ends_at": "2025-06-02T12:00:00Z",
		"party_size": 8
	}`

	t.Run("正常に予約を作成できる", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("CreateReservation", mock.Anything, mock.AnythingOfType("application.CreateReservationInput")).
			Return(fixtureReservation(), nil)

		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ReservationResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "res-123", resp.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, 10000, resp.Price)

		mockService.AssertExpectations(t)

		// ハンドラーはトークンをそのままアプリケーション層に渡す
		input := mockService.Calls[0].Arguments.Get(1).(application.CreateReservationInput)
		assert.Equal(t, "owner-token", input.ActorToken)
	})

	t.Run("認証トークンがない場合401", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("CreateReservation", mock.Anything, mock.AnythingOfType("application.CreateReservationInput")).
			Return(nil, identity.ErrUnauthorized)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("時間帯が重複している場合409", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("CreateReservation", mock.Anything, mock.AnythingOfType("application.CreateReservationInput")).
			Return(nil, booking.ErrSchedulingConflict)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("必須項目がない場合422", func(t *testing.T) {
		mockService := new(MockReservationService)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(`{"customer_id": "cust-123"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
		mockService.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
	})

	t.Run("不正なJSONの場合400", func(t *testing.T) {
		mockService := new(MockReservationService)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader("invalid"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestReservationHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に予約を取得できる", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("GetReservation", mock.Anything, "res-123").Return(fixtureReservation(), nil)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/reservations/res-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("res-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("存在しない場合404", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("GetReservation", mock.Anything, "missing").Return(nil, reservation.ErrReservationNotFound)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/reservations/missing", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.GetByID(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestReservationHandler_UpdateStatus(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にステータスを変更できる", func(t *testing.T) {
		confirmed := fixtureReservation()
		confirmed.Status = booking.StatusConfirmed

		mockService := new(MockReservationService)
		mockService.On("UpdateStatus", mock.Anything, "owner-token", "res-123", booking.StatusConfirmed).
			Return(confirmed, nil)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPatch, "/reservations/res-123/status", strings.NewReader(`{"status": "confirmed"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("res-123")

		err := handler.UpdateStatus(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	})

	t.Run("不正な遷移の場合409", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("UpdateStatus", mock.Anything, "owner-token", "res-123", booking.StatusPending).
			Return(nil, booking.ErrInvalidStatusTransition)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPatch, "/reservations/res-123/status", strings.NewReader(`{"status": "pending"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("res-123")

		err := handler.UpdateStatus(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("オーナー権限がない場合403", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("UpdateStatus", mock.Anything, "customer-token", "res-123", booking.StatusConfirmed).
			Return(nil, identity.ErrForbidden)
		handler := NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPatch, "/reservations/res-123/status", strings.NewReader(`{"status": "confirmed"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer customer-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("res-123")

		err := handler.UpdateStatus(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}

func TestReservationHandler_Cancel(t *testing.T) {
	e := NewTestEcho()

	cancelled := fixtureReservation()
	cancelled.Status = booking.StatusCancelled

	mockService := new(MockReservationService)
	mockService.On("CancelReservation", mock.Anything, "owner-token", "res-123").Return(cancelled, nil)
	handler := NewReservationHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-123/cancel", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("res-123")

	err := handler.Cancel(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestReservationHandler_List(t *testing.T) {
	e := NewTestEcho()

	mockService := new(MockReservationService)
	mockService.On("ListAll", mock.Anything, "owner-token", 10, 5).
		Return([]*reservation.Reservation{fixtureReservation()}, nil)
	handler := NewReservationHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/reservations?limit=10&offset=5", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer owner-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	mockService.AssertExpectations(t)
}
