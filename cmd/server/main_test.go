package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greencart-be/internal/auth"
	"greencart-be/internal/order"
	"greencart-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-secret"

func TestSetupRouter(t *testing.T) {
	// An empty handler is enough to test the HTTP wiring; handler logic has
	// its own tests.
	router := setupRouter(order.NewHandler(nil), testSecret)

	t.Run("Health Check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Order routes require authentication", func(t *testing.T) {
		paths := []struct {
			method string
			path   string
		}{
			{http.MethodPost, "/api/order/cod"},
			{http.MethodPost, "/api/order/razorpay/create-order"},
			{http.MethodPost, "/api/order/razorpay/verify"},
			{http.MethodGet, "/api/order/user"},
			{http.MethodGet, "/api/order/seller"},
		}

		for _, p := range paths {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(p.method, p.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", p.method, p.path)
		}
	})

	t.Run("Seller route rejects plain users", func(t *testing.T) {
		token, err := auth.GenerateToken(testSecret, 7, "u@example.com", utils.RoleUser, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/order/seller", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
