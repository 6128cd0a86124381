package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AddRequest запрос на добавление пациента в лист ожидания
type AddRequest struct {
	ServiceID      string
	Date           time.Time
	Time           types.TimeString
	PatientID      string
	PatientContact string // Пустое значение - контакт берется из справочника пациентов
	Priority       *int   // nil - приоритет по умолчанию; меньшее значение обслуживается раньше
}

// ListRequest запрос списка записей по слоту
type ListRequest struct {
	ServiceID string
	Date      time.Time
	Time      types.TimeString      // Пустое значение - все слоты даты
	Status    domain.WaitlistStatus // Пустое значение - любой статус
}

// PromotionResult результат продвижения очереди
type PromotionResult struct {
	Entry    *domain.WaitlistEntry
	Notified bool                  // Уведомление принято отправителем
}
