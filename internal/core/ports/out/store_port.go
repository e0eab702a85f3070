package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

type RuleStorePort interface {
	// Все еженедельные правила врача
	GetDoctorRules(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error)

	// Правило врача на день недели в календарной нотации.
	// Отсутствие правила и день вне [0,6] - (nil, nil), день считается нерабочим.
	GetDoctorDayRule(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*domain.AvailabilityRule, error)

	// Массовая замена правил: создает отсутствующие, обновляет существующие
	ReplaceDoctorRules(ctx context.Context, doctorID uuid.UUID, rules []domain.AvailabilityRule) error
}

type ShiftStorePort interface {
	GetShift(ctx context.Context, shiftID uuid.UUID) (*domain.Shift, error)
	ListDoctorShifts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Shift, error)
	SaveShift(ctx context.Context, shift domain.Shift) error
	DeleteShift(ctx context.Context, shiftID uuid.UUID) error

	// WithDoctorDay выполняет fn в критической секции по ключу (врач, дата).
	// Проверка конфликтов и запись смены обязаны происходить внутри fn,
	// иначе два конкурентных создания могут пройти проверку по одному снимку.
	WithDoctorDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date, fn func(ctx context.Context) error) error
}

// BookingPort - снимок записей пациентов, которым владеет внешняя подсистема.
type BookingPort interface {
	ListDoctorBookings(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Booking, error)
}
