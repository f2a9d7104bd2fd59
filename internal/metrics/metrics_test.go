package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Middleware(mux)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("204", http.MethodDelete, "/api/v1/cart/{id}"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/cart/"+id, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("204", http.MethodDelete, "/api/v1/cart/{id}"))
	assert.InDelta(t, 2, after-before, 0.001)
	assert.InDelta(t, 0, testutil.ToFloat64(httpRequestsInFlight), 0.001)
}

func TestMiddleware_UnmatchedPathFallsBackToURL(t *testing.T) {
	handler := Middleware(http.NotFoundHandler())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "/nowhere"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "/nowhere"))
	assert.InDelta(t, 1, after-before, 0.001)
}

func TestDomainCounters(t *testing.T) {
	checkoutBefore := testutil.ToFloat64(checkoutTotal.WithLabelValues(CheckoutRejected))
	cartBefore := testutil.ToFloat64(cartMutationsTotal.WithLabelValues(CartAdd))

	RecordCheckout(CheckoutRejected)
	RecordCartMutation(CartAdd)
	RecordCartMutation(CartAdd)

	assert.InDelta(t, 1, testutil.ToFloat64(checkoutTotal.WithLabelValues(CheckoutRejected))-checkoutBefore, 0.001)
	assert.InDelta(t, 2, testutil.ToFloat64(cartMutationsTotal.WithLabelValues(CartAdd))-cartBefore, 0.001)
}
