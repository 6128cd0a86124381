package domain

import "time"

// ServiceBlock administrative override suppressing all availability of a service on a date
type ServiceBlock struct {
	ServiceID string
	Date      time.Time
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers returns true if the block applies to the given date
func (b *ServiceBlock) Covers(date time.Time) bool {
	return SameDay(b.Date, date)
}
