package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/models"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/services/mocks"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderHandler_GetOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	path := map[string]string{"id": orderID.String()}

	t.Run("Success", func(t *testing.T) {
		mockOrderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("GetOrder", mock.Anything, userID, orderID).Return(&models.Order{ID: orderID, UserID: userID}, nil).Once()

		rr := httptest.NewRecorder()
		h.GetOrder()(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID, path))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Forbidden", func(t *testing.T) {
		mockOrderService := mocks.NewOrderService(t)
		h := handlers.NewOrderHandler(mockOrderService)

		mockOrderService.On("GetOrder", mock.Anything, userID, orderID).Return(nil, appErrors.ForbiddenError("You do not have access to this order")).Once()

		rr := httptest.NewRecorder()
		h.GetOrder()(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID, path))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Failure - Invalid id", func(t *testing.T) {
		h := handlers.NewOrderHandler(mocks.NewOrderService(t))

		rr := httptest.NewRecorder()
		h.GetOrder()(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/x", nil, userID, map[string]string{"id": "x"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		query        string
		expectedPage int
		expectedSize int
	}{
		{name: "Defaults", query: "", expectedPage: 1, expectedSize: 10},
		{name: "Explicit", query: "?page=3&pageSize=25", expectedPage: 3, expectedSize: 25},
		{name: "Out of range", query: "?page=-1&pageSize=500", expectedPage: 1, expectedSize: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockOrderService := mocks.NewOrderService(t)
			h := handlers.NewOrderHandler(mockOrderService)

			orders := []*models.Order{{ID: uuid.New(), UserID: userID}}
			mockOrderService.On("ListOrders", mock.Anything, userID, tc.expectedPage, tc.expectedSize).Return(orders, 1, nil).Once()

			rr := httptest.NewRecorder()
			h.ListOrders()(rr, testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders"+tc.query, nil, userID, nil))

			assert.Equal(t, http.StatusOK, rr.Code)

			var got models.PaginatedResponse
			testutils.DecodeResponse(t, rr, &got)
			assert.Equal(t, 1, got.Total)
			assert.Equal(t, tc.expectedPage, got.Page)
			assert.Equal(t, tc.expectedSize, got.PageSize)
		})
	}
}
