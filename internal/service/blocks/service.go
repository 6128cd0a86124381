package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/block"
	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks/models"
)

// Service реестр заблокированных дат.
// Блокировка скрывает доступность на дату, существующие бронирования не меняются
type Service struct {
	repo   BlockRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// BlockDates блокирует даты услуги. Повторная блокировка перезаписывает причину
func (s *Service) BlockDates(ctx context.Context, req *models.BlockRequest) error {
	s.logger.Info("BlockDates: service=%s, dates=%d", req.ServiceID, len(req.Dates))

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	if len(req.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(req.Dates) > domain.MaxBlockDatesBatch {
		return fmt.Errorf("%w: at most %d dates per request", ErrInvalidInput, domain.MaxBlockDatesBatch)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxBlockReasonLen {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxBlockReasonLen)
	}

	dates := uniqueDates(req.Dates)

	if err := s.repo.Upsert(ctx, req.ServiceID, dates, req.Reason); err != nil {
		s.logger.Error("BlockDates: repository error for service=%s: %v", req.ServiceID, err)
		return fmt.Errorf("%w: BlockDates - repository error: %w", ErrUnavailable, err)
	}

	s.logger.Info("BlockDates: blocked %d dates of service=%s", len(dates), req.ServiceID)
	return nil
}

// IsBlocked проверяет, заблокирована ли дата
func (s *Service) IsBlocked(ctx context.Context, serviceID string, date time.Time) (bool, error) {
	day := domain.DateOnly(date)

	blocks, err := s.repo.GetBlocks(ctx, serviceID, day, day)
	if err != nil {
		s.logger.Error("IsBlocked: repository error for service=%s: %v", serviceID, err)
		return false, fmt.Errorf("%w: IsBlocked - repository error: %w", ErrUnavailable, err)
	}

	for _, b := range blocks {
		if b.Covers(day) {
			return true, nil
		}
	}
	return false, nil
}

// List возвращает блокировки в диапазоне дат включительно
func (s *Service) List(ctx context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error) {
	s.logger.Info("List: service=%s, from=%s, to=%s",
		serviceID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidInput)
	}

	blocks, err := s.repo.GetBlocks(ctx, serviceID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrUnavailable, err)
	}

	return blocks, nil
}

// Unblock снимает блокировку с даты
func (s *Service) Unblock(ctx context.Context, serviceID string, date time.Time) error {
	s.logger.Info("Unblock: service=%s, date=%s", serviceID, date.Format(domain.DateFormat))

	if err := s.repo.Delete(ctx, serviceID, domain.DateOnly(date)); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Unblock: date %s of service=%s is not blocked", date.Format(domain.DateFormat), serviceID)
			return ErrBlockNotFound
		}
		s.logger.Error("Unblock: repository error for service=%s: %v", serviceID, err)
		return fmt.Errorf("%w: Unblock - repository error: %w", ErrUnavailable, err)
	}

	return nil
}

func uniqueDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := domain.DateOnly(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		result = append(result, day)
	}
	return result
}
