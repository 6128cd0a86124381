package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на проверку бронирования
type Request struct {
	ServiceID string
	Date      time.Time
	Time      types.TimeString
	PatientID string
}
