package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method, path, status string
}

type recordingMetrics struct {
	observed []observation
}

func (m *recordingMetrics) ObserveHTTP(method, path, status string, _ float64) {
	m.observed = append(m.observed, observation{method, path, status})
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	m := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/bookings/42", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{"GET", "/api/v1/bookings/{bookingId}", "404"}, m.observed[0])
}
