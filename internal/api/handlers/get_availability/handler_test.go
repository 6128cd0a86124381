package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*domain.Availability, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}

func serve(uc *mockUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/services/{serviceId}/availability", NewHandler(uc, logger.Nop()).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandleReturnsSlots(t *testing.T) {
	uc := new(mockUseCase)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	slot := domain.NewAvailabilitySlot(domain.Slot{Time: "08:00", Enabled: true}, 16, 13)

	uc.On("Execute", mock.Anything, &getAvailability.Request{ServiceID: "yoga", Date: date}).
		Return(&domain.Availability{
			ServiceID: "yoga",
			Date:      date,
			Slots:     []domain.AvailabilitySlot{slot},
			Summary:   domain.Summarize([]domain.AvailabilitySlot{slot}),
		}, nil)

	w := serve(uc, "/services/yoga/availability?date=2025-03-10")
	require.Equal(t, http.StatusOK, w.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 3, resp.Slots[0].Available)
	assert.Equal(t, "almost-full", resp.Slots[0].Status)
	assert.Equal(t, 3, resp.Summary.TotalAvailable)
}

func TestHandleErrors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"missing date", "/services/yoga/availability", nil, http.StatusBadRequest},
		{"bad date", "/services/yoga/availability?date=10.03.2025", nil, http.StatusBadRequest},
		{"not configured", "/services/yoga/availability?date=2025-03-10", getAvailability.ErrServiceNotConfigured, http.StatusNotFound},
		{"unavailable", "/services/yoga/availability?date=2025-03-10",
			fmt.Errorf("%w: boom", getAvailability.ErrUnavailable), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(mockUseCase)
			if tc.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)
			}

			w := serve(uc, tc.target)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
