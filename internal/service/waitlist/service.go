package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис листа ожидания.
// Статусы: waiting -> notified -> booked | expired, обратно в waiting записи не возвращаются
type Service struct {
	repo      WaitlistRepository
	notifier  Notifier
	contacts  ContactResolver
	notifyTTL time.Duration
	metrics   Metrics
	logger    Logger
	now       func() time.Time
}

// NewService создает новый экземпляр сервиса листа ожидания.
// notifyTTL - сколько уведомленный пациент держит право на запись
func NewService(
	repo WaitlistRepository,
	notifier Notifier,
	contacts ContactResolver,
	notifyTTL time.Duration,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		notifier:  notifier,
		contacts:  contacts,
		notifyTTL: notifyTTL,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Add добавляет пациента в лист ожидания. Длина очереди не ограничена
func (s *Service) Add(ctx context.Context, req *models.AddRequest) (int64, error) {
	s.logger.Info("Add: service=%s, date=%s, time=%s, patient=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, req.PatientID)

	at, err := validateAdd(req)
	if err != nil {
		s.logger.Warn("Add: validation failed: %v", err)
		return 0, err
	}

	priority := domain.DefaultWaitlistPriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	created, err := s.repo.Create(ctx, &domain.WaitlistEntry{
		ServiceID:      req.ServiceID,
		Date:           domain.DateOnly(req.Date),
		Time:           at,
		PatientID:      req.PatientID,
		PatientContact: req.PatientContact,
		Priority:       priority,
		Status:         domain.WaitlistWaiting,
	})
	if err != nil {
		s.logger.Error("Add: repository error: %v", err)
		return 0, fmt.Errorf("%w: Add - repository error: %w", ErrUnavailable, err)
	}

	s.logger.Info("Add: created waitlist entry id=%d", created.ID)
	return created.ID, nil
}

// Promote переводит первую ожидающую запись слота в notified и уведомляет пациента.
// Продвигается не больше одной записи за вызов; пустая очередь - nil без ошибки.
// Ошибка уведомления не откатывает смену статуса
func (s *Service) Promote(ctx context.Context, serviceID string, date time.Time, at types.TimeString) (*models.PromotionResult, error) {
	key := domain.WaitlistKey{ServiceID: serviceID, Date: domain.DateOnly(date), Time: at}

	candidates, err := s.repo.Query(ctx, key, domain.WaitlistWaiting)
	if err != nil {
		s.logger.Error("Promote: failed to get waitlist for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Promote - repository error: %w", ErrUnavailable, err)
	}

	// Порядок из репозитория уже правильный, сортировка нужна для других хранилищ
	domain.SortWaitlist(candidates)

	for _, entry := range candidates {
		// Условное обновление: параллельный вызов мог забрать эту запись первым
		ok, err := s.repo.UpdateStatus(ctx, entry.ID, domain.WaitlistWaiting, domain.WaitlistNotified)
		if err != nil {
			s.logger.Error("Promote: failed to update entry id=%d: %v", entry.ID, err)
			return nil, fmt.Errorf("%w: Promote - update status: %w", ErrUnavailable, err)
		}
		if !ok {
			s.logger.Info("Promote: entry id=%d already taken, trying next", entry.ID)
			continue
		}

		now := s.now()
		entry.Status = domain.WaitlistNotified
		entry.NotifiedAt = &now

		notified := s.notify(ctx, entry)
		if notified {
			s.metrics.IncWaitlistPromotion("notified")
		} else {
			s.metrics.IncWaitlistPromotion("notify_failed")
		}

		s.logger.Info("Promote: entry id=%d of patient=%s promoted", entry.ID, entry.PatientID)
		return &models.PromotionResult{Entry: entry, Notified: notified}, nil
	}

	s.metrics.IncWaitlistPromotion("empty")
	return nil, nil
}

// MarkBooked закрывает уведомленную запись после записи пациента
func (s *Service) MarkBooked(ctx context.Context, id int64) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("%w: MarkBooked - repository error: %w", ErrUnavailable, err)
	}

	if !entry.Status.CanTransitionTo(domain.WaitlistBooked) {
		return fmt.Errorf("%w: entry id=%d is %s", ErrInvalidTransition, id, entry.Status)
	}

	ok, err := s.repo.UpdateStatus(ctx, id, domain.WaitlistNotified, domain.WaitlistBooked)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - update status: %w", ErrUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: entry id=%d changed concurrently", ErrInvalidTransition, id)
	}

	return nil
}

// MarkPatientBooked закрывает уведомленную запись пациента на слот, если она есть
func (s *Service) MarkPatientBooked(ctx context.Context, key domain.WaitlistKey, patientID string) (bool, error) {
	entries, err := s.repo.Query(ctx, key, domain.WaitlistNotified)
	if err != nil {
		return false, fmt.Errorf("%w: MarkPatientBooked - repository error: %w", ErrUnavailable, err)
	}

	for _, entry := range entries {
		if entry.PatientID != patientID {
			continue
		}
		ok, err := s.repo.UpdateStatus(ctx, entry.ID, domain.WaitlistNotified, domain.WaitlistBooked)
		if err != nil {
			return false, fmt.Errorf("%w: MarkPatientBooked - update status: %w", ErrUnavailable, err)
		}
		return ok, nil
	}

	return false, nil
}

// ExpireStale переводит в expired записи, уведомленные раньше notifyTTL,
// и пробует продвинуть очередь каждого затронутого слота
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.notifyTTL)

	stale, err := s.repo.ListNotifiedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("ExpireStale: failed to list notified entries: %v", err)
		return 0, fmt.Errorf("%w: ExpireStale - repository error: %w", ErrUnavailable, err)
	}

	expired := 0
	keys := make([]domain.WaitlistKey, 0)
	seen := make(map[domain.WaitlistKey]struct{})

	for _, entry := range stale {
		ok, err := s.repo.UpdateStatus(ctx, entry.ID, domain.WaitlistNotified, domain.WaitlistExpired)
		if err != nil {
			s.logger.Error("ExpireStale: failed to expire entry id=%d: %v", entry.ID, err)
			return expired, fmt.Errorf("%w: ExpireStale - update status: %w", ErrUnavailable, err)
		}
		if !ok {
			continue
		}
		expired++

		key := entry.Key()
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	if expired > 0 {
		s.metrics.AddWaitlistExpired(expired)
		s.logger.Info("ExpireStale: expired %d entries", expired)
	}

	for _, key := range keys {
		if _, err := s.Promote(ctx, key.ServiceID, key.Date, key.Time); err != nil {
			s.logger.Error("ExpireStale: promotion for service=%s time=%s failed: %v", key.ServiceID, key.Time, err)
		}
	}

	return expired, nil
}

// RunExpiry периодически вызывает ExpireStale до отмены контекста
func (s *Service) RunExpiry(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ExpireStale(ctx); err != nil {
				s.logger.Warn("RunExpiry: %v", err)
			}
		}
	}
}

// List получает записи листа ожидания в порядке обслуживания
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*domain.WaitlistEntry, error) {
	if req.ServiceID == "" || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: serviceID and date are required", ErrInvalidInput)
	}
	if req.Status != "" && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var at types.TimeString
	if !req.Time.IsZero() {
		parsed, err := types.NewTimeStringFromString(string(req.Time))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		at = parsed
	}

	key := domain.WaitlistKey{ServiceID: req.ServiceID, Date: domain.DateOnly(req.Date), Time: at}

	var statuses []domain.WaitlistStatus
	if req.Status != "" {
		statuses = append(statuses, req.Status)
	}

	entries, err := s.repo.Query(ctx, key, statuses...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrUnavailable, err)
	}

	return entries, nil
}

// notify отправляет уведомление; ошибки только логируются
func (s *Service) notify(ctx context.Context, entry *domain.WaitlistEntry) bool {
	contact := entry.PatientContact
	if contact == "" {
		resolved, err := s.contacts.GetContact(ctx, entry.PatientID)
		if err != nil {
			s.logger.Warn("Promote: no contact for patient=%s: %v", entry.PatientID, err)
			return false
		}
		contact = resolved
	}

	message := fmt.Sprintf("Освободилось место: услуга %s, %s в %s. Запишитесь в течение %s.",
		entry.ServiceID, entry.Date.Format(domain.DateFormat), entry.Time, s.notifyTTL)

	if err := s.notifier.Notify(ctx, contact, message); err != nil {
		s.logger.Warn("Promote: notification for entry id=%d failed: %v", entry.ID, err)
		return false
	}

	return true
}

func validateAdd(req *models.AddRequest) (types.TimeString, error) {
	if req.ServiceID == "" {
		return "", fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.PatientID == "" {
		return "", fmt.Errorf("%w: patientID is required", ErrInvalidInput)
	}

	at, err := types.NewTimeStringFromString(string(req.Time))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return at, nil
}
