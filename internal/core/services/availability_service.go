package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// AvailabilityService управляет еженедельными правилами доступности
// и отвечает на запрос свободных начал слотов.
type AvailabilityService struct {
	ruleStore out.RuleStorePort
	bookings  out.BookingPort
	cache     out.CachePort
	logger    out.LoggerPort
}

func NewAvailabilityService(
	ruleStore out.RuleStorePort,
	bookings out.BookingPort,
	cache out.CachePort,
	logger out.LoggerPort,
) *AvailabilityService {
	return &AvailabilityService{
		ruleStore: ruleStore,
		bookings:  bookings,
		cache:     cache,
		logger:    logger.WithModule("AvailabilityService"),
	}
}

// ReplaceWeeklyAvailability валидирует и сохраняет набор правил врача:
// не больше одного правила на день недели, upsert по (врач, день).
func (s *AvailabilityService) ReplaceWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, rules []domain.AvailabilityRule) ([]domain.AvailabilityRule, error) {
	seenDays := make(map[int]bool)

	for i := range rules {
		rules[i].DoctorID = doctorID

		if err := rules[i].Validate(); err != nil {
			return nil, err
		}
		if seenDays[rules[i].DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate rule for day %d",
				domain.ErrInvalidScheduleWindow, rules[i].DayOfWeek)
		}
		seenDays[rules[i].DayOfWeek] = true
	}

	if err := s.ruleStore.ReplaceDoctorRules(ctx, doctorID, rules); err != nil {
		s.logger.Error("availability.replace.failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("availability.replace.failed: %w", err)
	}

	// Правила поменялись - все закэшированные сетки врача устарели
	if s.cache != nil {
		s.cache.InvalidateDoctor(ctx, doctorID)
	}

	s.logger.Info("availability.replaced", out.LogFields{
		"doctorId":   doctorID,
		"rulesCount": len(rules),
	})

	return rules, nil
}

func (s *AvailabilityService) GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error) {
	return s.ruleStore.GetDoctorRules(ctx, doctorID)
}

// GetAvailableSlotStarts возвращает начала свободных слотов врача на дату.
// Нет правила на день или день нерабочий - пустой список.
func (s *AvailabilityService) GetAvailableSlotStarts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]json_types.TimeOfDay, error) {
	rule, err := s.ruleStore.GetDoctorDayRule(ctx, doctorID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("availability.slots.rule.fetch_failed: %w", err)
	}

	starts := []json_types.TimeOfDay{}
	if rule == nil || !rule.IsAvailable {
		return starts, nil
	}

	bookings, err := s.bookings.ListDoctorBookings(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("availability.slots.bookings.fetch_failed: %w", err)
	}

	schedule := GenerateDailySchedule(date, rule, bookings)
	for _, slot := range schedule.Slots {
		if slot.Status == domain.SlotStatusAvailable {
			starts = append(starts, slot.StartTime)
		}
	}

	return starts, nil
}
