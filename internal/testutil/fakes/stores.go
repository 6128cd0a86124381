package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/block"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
)

// ServiceRepo in-memory service configs
type ServiceRepo struct {
	mu       sync.Mutex
	services map[string]*domain.ServiceCapacityConfig
}

func NewServiceRepo(configs ...*domain.ServiceCapacityConfig) *ServiceRepo {
	r := &ServiceRepo{services: make(map[string]*domain.ServiceCapacityConfig)}
	for _, cfg := range configs {
		r.services[cfg.ID] = cfg
	}
	return r
}

func (r *ServiceRepo) Create(_ context.Context, cfg *domain.ServiceCapacityConfig) (*domain.ServiceCapacityConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[cfg.ID]; ok {
		return nil, serviceRepo.ErrDuplicateService
	}
	stored := *cfg
	r.services[cfg.ID] = &stored
	return &stored, nil
}

func (r *ServiceRepo) GetByID(_ context.Context, id string) (*domain.ServiceCapacityConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	copied := *cfg
	return &copied, nil
}

func (r *ServiceRepo) Update(_ context.Context, cfg *domain.ServiceCapacityConfig) (*domain.ServiceCapacityConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[cfg.ID]; !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	stored := *cfg
	r.services[cfg.ID] = &stored
	return &stored, nil
}

// ScheduleRepo in-memory schedule templates
type ScheduleRepo struct {
	mu        sync.Mutex
	templates map[string]*domain.ScheduleTemplate
	Puts      int
}

func NewScheduleRepo(templates ...*domain.ScheduleTemplate) *ScheduleRepo {
	r := &ScheduleRepo{templates: make(map[string]*domain.ScheduleTemplate)}
	for _, t := range templates {
		r.templates[t.ServiceID] = t
	}
	return r
}

func (r *ScheduleRepo) GetTemplate(_ context.Context, serviceID string) (*domain.ScheduleTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[serviceID]
	if !ok {
		return nil, scheduleRepo.ErrTemplateNotFound
	}
	return cloneTemplate(t), nil
}

func (r *ScheduleRepo) PutTemplate(_ context.Context, template *domain.ScheduleTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[template.ServiceID] = cloneTemplate(template)
	r.Puts++
	return nil
}

func cloneTemplate(t *domain.ScheduleTemplate) *domain.ScheduleTemplate {
	c := domain.NewScheduleTemplate(t.ServiceID)
	c.UpdatedAt = t.UpdatedAt
	for day, slots := range t.WeeklySlots {
		c.WeeklySlots[day] = append([]domain.Slot(nil), slots...)
	}
	return c
}

// BlockRepo in-memory date blocks
type BlockRepo struct {
	mu     sync.Mutex
	blocks map[string]map[time.Time]*domain.ServiceBlock
}

func NewBlockRepo() *BlockRepo {
	return &BlockRepo{blocks: make(map[string]map[time.Time]*domain.ServiceBlock)}
}

func (r *BlockRepo) Upsert(_ context.Context, serviceID string, dates []time.Time, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blocks[serviceID] == nil {
		r.blocks[serviceID] = make(map[time.Time]*domain.ServiceBlock)
	}
	for _, date := range dates {
		d := domain.DateOnly(date)
		r.blocks[serviceID][d] = &domain.ServiceBlock{ServiceID: serviceID, Date: d, Reason: reason}
	}
	return nil
}

func (r *BlockRepo) GetBlocks(_ context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	result := make([]*domain.ServiceBlock, 0)
	for d, block := range r.blocks[serviceID] {
		if !d.Before(from) && !d.After(to) {
			copied := *block
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *BlockRepo) Delete(_ context.Context, serviceID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := domain.DateOnly(date)
	if _, ok := r.blocks[serviceID][d]; !ok {
		return blockRepo.ErrBlockNotFound
	}
	delete(r.blocks[serviceID], d)
	return nil
}

// BookingRepo in-memory bookings
type BookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{}
}

func (r *BookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *booking
	stored.ID = r.nextID
	stored.Date = domain.DateOnly(stored.Date)
	r.bookings = append(r.bookings, &stored)
	result := stored
	return &result, nil
}

func (r *BookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *BookingRepo) Query(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, to := domain.DateOnly(filter.StartDate), domain.DateOnly(filter.EndDate)
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ServiceID != filter.ServiceID || b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		if !filter.Time.IsZero() && b.Time != filter.Time {
			continue
		}
		if filter.PatientID != "" && b.PatientID != filter.PatientID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, b.Status) {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *BookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

// Add stores bookings directly, bypassing validation
func (r *BookingRepo) Add(bookings ...*domain.Booking) {
	for _, b := range bookings {
		_, _ = r.Create(context.Background(), b)
	}
}

func containsStatus(statuses []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// WaitlistRepo in-memory waitlist
type WaitlistRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []*domain.WaitlistEntry
	Now     func() time.Time
}

func NewWaitlistRepo() *WaitlistRepo {
	return &WaitlistRepo{Now: time.Now}
}

func (r *WaitlistRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *entry
	stored.ID = r.nextID
	stored.Date = domain.DateOnly(stored.Date)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.Now()
	}
	r.entries = append(r.entries, &stored)
	result := stored
	return &result, nil
}

func (r *WaitlistRepo) GetByID(_ context.Context, id int64) (*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, waitlistRepo.ErrEntryNotFound
}

func (r *WaitlistRepo) Query(_ context.Context, key domain.WaitlistKey, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.WaitlistEntry, 0)
	for _, e := range r.entries {
		if e.ServiceID != key.ServiceID || !domain.SameDay(e.Date, key.Date) {
			continue
		}
		if !key.Time.IsZero() && e.Time != key.Time {
			continue
		}
		if len(statuses) > 0 && !containsWaitlistStatus(statuses, e.Status) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	domain.SortWaitlist(result)
	return result, nil
}

func (r *WaitlistRepo) ListNotifiedBefore(_ context.Context, cutoff time.Time) ([]*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.WaitlistEntry, 0)
	for _, e := range r.entries {
		if e.Status == domain.WaitlistNotified && e.NotifiedAt != nil && e.NotifiedAt.Before(cutoff) {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *WaitlistRepo) UpdateStatus(_ context.Context, id int64, from, to domain.WaitlistStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID != id {
			continue
		}
		if e.Status != from {
			return false, nil
		}
		e.Status = to
		if to == domain.WaitlistNotified {
			now := r.Now()
			e.NotifiedAt = &now
		}
		return true, nil
	}
	return false, nil
}

func containsWaitlistStatus(statuses []domain.WaitlistStatus, s domain.WaitlistStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}
