package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelBooking.Response), args.Error(1)
}

func serve(uc *mockUseCase, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPatch)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/cancel", nil))
	return w
}

func TestCancelReportsPromotion(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &cancelBooking.Request{BookingID: 5}).Return(&cancelBooking.Response{
		Booking:  &domain.Booking{ID: 5, ServiceID: "yoga", Time: "08:00", Status: domain.StatusCancelled},
		Promoted: &domain.WaitlistEntry{ID: 9, PatientID: "w1", Status: domain.WaitlistNotified},
	}, nil)

	w := serve(uc, "5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Booking.Status)
	require.NotNil(t, resp.Promoted)
	assert.Equal(t, int64(9), resp.Promoted.ID)
	assert.False(t, resp.PromotionFailed)
}

func TestCancelStandsWhenPromotionFails(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&cancelBooking.Response{
		Booking:      &domain.Booking{ID: 5, Status: domain.StatusCancelled},
		PromotionErr: errors.New("broker down"),
	}, nil)

	w := serve(uc, "5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"promotionFailed":true`)
}

func TestCancelErrors(t *testing.T) {
	cases := map[error]int{
		cancelBooking.ErrBookingNotFound: http.StatusNotFound,
		cancelBooking.ErrCannotCancel:    http.StatusConflict,
		cancelBooking.ErrUnavailable:     http.StatusServiceUnavailable,
	}

	for err, status := range cases {
		uc := new(mockUseCase)
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, err)

		assert.Equal(t, status, serve(uc, "5").Code, err.Error())
	}

	assert.Equal(t, http.StatusBadRequest, serve(new(mockUseCase), "abc").Code)
}
