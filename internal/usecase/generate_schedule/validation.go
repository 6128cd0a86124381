package generate_schedule

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	for _, day := range req.Days {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidInput, day)
		}
	}

	return nil
}
