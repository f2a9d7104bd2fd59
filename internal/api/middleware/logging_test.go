package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return &buf
}

func TestLogging(t *testing.T) {
	t.Run("Generates a request id and logs the status", func(t *testing.T) {
		buf := captureDefaultLogger(t)

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotSame(t, slog.Default(), middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusTeapot)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

		require.Equal(t, http.StatusTeapot, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), `"http_status":418`)
		assert.Contains(t, buf.String(), `"http_path":"/products"`)
	})

	t.Run("Propagates the caller's request id", func(t *testing.T) {
		buf := captureDefaultLogger(t)

		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middleware.LoggerFromContext(r.Context()).Info("inside")
		}))

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "req-123", rr.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), `"correlation_id":"req-123"`)
	})
}

func TestLoggerFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.LoggerFromContext(t.Context()))
}
