package generate_schedule

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перегенерацию шаблона
type Request struct {
	ServiceID           string
	Days                []time.Weekday // Пустой список - вся неделя
	PreserveAnnotations bool           // Сохранить enabled/staff у слотов с тем же временем
}

// Response модель ответа с сохраненным шаблоном
type Response struct {
	Template *domain.ScheduleTemplate
}
