package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

type ScheduleUseCase interface {
	// Сетка слотов врача на одну дату
	GetDailySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.DailySchedule, error)

	// Недельная сетка: неделя с понедельника по воскресенье, содержащая date
	GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.WeeklySchedule, error)

	// Начала свободных слотов на дату, для внешнего флоу создания записи
	GetAvailableSlotStarts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]json_types.TimeOfDay, error)

	// Массовая замена еженедельных правил доступности врача
	ReplaceWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, rules []domain.AvailabilityRule) ([]domain.AvailabilityRule, error)

	GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error)
}

type ShiftUseCase interface {
	CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error)
	UpdateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error)
	UpdateShiftStatus(ctx context.Context, shiftID uuid.UUID, status domain.ShiftStatus) (*domain.Shift, error)
	DeleteShift(ctx context.Context, shiftID uuid.UUID) error
	ListDoctorShifts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Shift, error)

	// Неотмененные смены врача на дату, пересекающиеся с окном [start, end)
	FindConflicts(ctx context.Context, doctorID uuid.UUID, date json_types.Date, start, end json_types.TimeOfDay, excludeID uuid.UUID) ([]domain.Shift, error)
}

// CacheInvalidationUseCase дергают слушатели событий изменения данных.
type CacheInvalidationUseCase interface {
	InvalidateDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date)
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID)
	InvalidateAll(ctx context.Context)
}
