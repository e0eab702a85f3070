package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// SlotGeneratorService строит дневную сетку слотов из еженедельного правила
// и снимка записей пациентов. Сама генерация - чистая функция GenerateDailySchedule,
// сервис только достает входные данные через порты и держит кэш перед ней.
type SlotGeneratorService struct {
	ruleStore out.RuleStorePort
	bookings  out.BookingPort
	cache     out.CachePort
	logger    out.LoggerPort
}

func NewSlotGeneratorService(
	ruleStore out.RuleStorePort,
	bookings out.BookingPort,
	cache out.CachePort,
	logger out.LoggerPort,
) *SlotGeneratorService {
	return &SlotGeneratorService{
		ruleStore: ruleStore,
		bookings:  bookings,
		cache:     cache,
		logger:    logger.WithModule("SlotGeneratorService"),
	}
}

func (s *SlotGeneratorService) GetDailySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.DailySchedule, error) {
	if s.cache != nil {
		if schedule, exists := s.cache.GetDaySchedule(ctx, doctorID, date); exists {
			s.logger.Debug("schedule.day.cache.hit", out.LogFields{
				"doctorId": doctorID,
				"date":     date,
			})
			return schedule, nil
		}
	}

	rule, err := s.ruleStore.GetDoctorDayRule(ctx, doctorID, date.Weekday())
	if err != nil {
		s.logger.Error("schedule.day.rule.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("schedule.day.rule.fetch_failed: %w", err)
	}

	var bookings []domain.Booking
	if rule != nil && rule.IsAvailable {
		bookings, err = s.bookings.ListDoctorBookings(ctx, doctorID, date)
		if err != nil {
			s.logger.Error("schedule.day.bookings.fetch_failed", out.LogFields{
				"doctorId": doctorID,
				"date":     date,
				"error":    err.Error(),
			})
			return nil, fmt.Errorf("schedule.day.bookings.fetch_failed: %w", err)
		}
	}

	schedule := GenerateDailySchedule(date, rule, bookings)

	if s.cache != nil {
		s.cache.StoreDaySchedule(ctx, doctorID, date, schedule)
	}

	s.logger.Debug("schedule.day.generated", out.LogFields{
		"doctorId":   doctorID,
		"date":       date,
		"slotsCount": schedule.TotalSlots,
	})

	return &schedule, nil
}

func (s *SlotGeneratorService) InvalidateDay(ctx context.Context, doctorID uuid.UUID, date json_types.Date) {
	if s.cache != nil {
		s.cache.InvalidateDay(ctx, doctorID, date)
	}
}

func (s *SlotGeneratorService) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateDoctor(ctx, doctorID)
	}
}

func (s *SlotGeneratorService) InvalidateAll(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}

// GenerateDailySchedule разворачивает правило в упорядоченную сетку слотов.
// Правило nil или с IsAvailable=false дает пустой нерабочий день.
//
// Курсор идет от начала рабочего окна с шагом в длительность слота, пока
// целый слот помещается в окно - неполный хвост не выдается. Для каждого
// кандидата [cursor, cursor+duration):
//  1. курсор внутри окна перерыва - слот со статусом break, записи не смотрим;
//  2. есть активная запись, начинающаяся ровно в cursor - booked;
//  3. иначе - available.
//
// Запись, не выровненная по сетке, в проверке не участвует: сопоставление
// идет по точному равенству начала, не по пересечению интервалов.
func GenerateDailySchedule(date json_types.Date, rule *domain.AvailabilityRule, bookings []domain.Booking) domain.DailySchedule {
	schedule := domain.DailySchedule{
		Date:      date,
		DayOfWeek: domain.DisplayDayOfWeek(date.Weekday()),
		Slots:     []domain.TimeSlot{},
	}

	if rule == nil || !rule.IsAvailable {
		return schedule
	}
	schedule.IsWorkingDay = true

	// Первая активная запись на каждое время начала
	bookingsByStart := make(map[json_types.TimeOfDay]domain.Booking)
	for _, booking := range bookings {
		if !booking.Active() {
			continue
		}
		if _, taken := bookingsByStart[booking.StartTime]; !taken {
			bookingsByStart[booking.StartTime] = booking
		}
	}

	duration := json_types.TimeOfDay(rule.SlotDuration())

	for cursor := rule.StartTime; cursor+duration <= rule.EndTime; cursor += duration {
		slot := domain.TimeSlot{
			StartTime: cursor,
			EndTime:   cursor + duration,
			Status:    domain.SlotStatusAvailable,
		}

		if rule.HasBreak() && cursor >= *rule.BreakStart && cursor < *rule.BreakEnd {
			slot.Status = domain.SlotStatusBreak
			schedule.BreakSlots++
		} else if booking, booked := bookingsByStart[cursor]; booked {
			bookingID := booking.ID
			slot.Status = domain.SlotStatusBooked
			slot.BookingID = &bookingID
			slot.PatientName = booking.PatientName
			slot.AppointmentType = booking.AppointmentType
			schedule.BookedSlots++
		} else {
			schedule.AvailableSlots++
		}

		schedule.Slots = append(schedule.Slots, slot)
	}

	schedule.TotalSlots = len(schedule.Slots)

	return schedule
}
