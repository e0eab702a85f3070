package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

type CachePort interface {
	// Кэширование дневных сеток слотов
	GetDaySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.DailySchedule, bool)
	StoreDaySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date, schedule domain.DailySchedule)

	// Инвалидация: по дню, по врачу целиком, полная
	InvalidateDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date)
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID)
	InvalidateAll(ctx context.Context)
}
