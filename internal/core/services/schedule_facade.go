package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

// ScheduleFacade - единая точка входа для адаптеров: дневная и недельная
// сетки, свободные слоты, правила доступности и инвалидация кэша.
// Никакой своей логики, только композиция сервисов.
type ScheduleFacade struct {
	slots        *SlotGeneratorService
	weeks        *WeekPlannerService
	availability *AvailabilityService
}

func NewScheduleFacade(
	slots *SlotGeneratorService,
	weeks *WeekPlannerService,
	availability *AvailabilityService,
) *ScheduleFacade {
	return &ScheduleFacade{
		slots:        slots,
		weeks:        weeks,
		availability: availability,
	}
}

func (f *ScheduleFacade) GetDailySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.DailySchedule, error) {
	return f.slots.GetDailySchedule(ctx, doctorID, date)
}

func (f *ScheduleFacade) GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.WeeklySchedule, error) {
	return f.weeks.GetWeeklySchedule(ctx, doctorID, date)
}

func (f *ScheduleFacade) GetAvailableSlotStarts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]json_types.TimeOfDay, error) {
	return f.availability.GetAvailableSlotStarts(ctx, doctorID, date)
}

func (f *ScheduleFacade) ReplaceWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, rules []domain.AvailabilityRule) ([]domain.AvailabilityRule, error) {
	return f.availability.ReplaceWeeklyAvailability(ctx, doctorID, rules)
}

func (f *ScheduleFacade) GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error) {
	return f.availability.GetWeeklyAvailability(ctx, doctorID)
}

func (f *ScheduleFacade) InvalidateDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date) {
	f.slots.InvalidateDay(ctx, doctorID, date)
}

func (f *ScheduleFacade) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	f.slots.InvalidateDoctor(ctx, doctorID)
}

func (f *ScheduleFacade) InvalidateAll(ctx context.Context) {
	f.slots.InvalidateAll(ctx)
}
