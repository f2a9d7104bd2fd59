package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/api/middleware"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name            string
		cfg             config.CORSConfig
		method          string
		origin          string
		preflight       bool
		expectedStatus  int
		expectedOrigin  string
		expectedCredits string
	}{
		{
			name:           "Wildcard origin",
			cfg:            config.CORSConfig{AllowedOrigins: []string{"*"}},
			method:         http.MethodGet,
			origin:         "http://shop.test",
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:            "Wildcard with credentials echoes the origin",
			cfg:             config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true},
			method:          http.MethodGet,
			origin:          "http://shop.test",
			expectedStatus:  http.StatusOK,
			expectedOrigin:  "http://shop.test",
			expectedCredits: "true",
		},
		{
			name:           "Listed origin",
			cfg:            config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
			method:         http.MethodGet,
			origin:         "http://localhost:5173",
			expectedStatus: http.StatusOK,
			expectedOrigin: "http://localhost:5173",
		},
		{
			name:           "Unlisted origin gets no allow header",
			cfg:            config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
			method:         http.MethodGet,
			origin:         "http://evil.test",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Preflight short-circuits",
			cfg:            config.CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 600},
			method:         http.MethodOptions,
			origin:         "http://shop.test",
			preflight:      true,
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "*",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/v1/cart", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			rr := httptest.NewRecorder()
			middleware.CORS(tc.cfg)(ok).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.expectedCredits, rr.Header().Get("Access-Control-Allow-Credentials"))

			if tc.preflight {
				assert.Equal(t, "600", rr.Header().Get("Access-Control-Max-Age"))
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
			}
		})
	}
}
