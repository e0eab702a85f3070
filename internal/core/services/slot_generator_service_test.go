package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

func workingRule(t *testing.T) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		DoctorID:            uuid.New(),
		DayOfWeek:           1, // понедельник в календарной нотации
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "17:00"),
		IsAvailable:         true,
		SlotDurationMinutes: 30,
	}
}

func TestGenerateDailyScheduleFullDay(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10) // понедельник
	rule := workingRule(t)

	schedule := GenerateDailySchedule(date, rule, nil)

	// 09:00-17:00 по 30 минут = 16 слотов
	if schedule.TotalSlots != 16 {
		t.Fatalf("expected 16 slots, got %d", schedule.TotalSlots)
	}
	if !schedule.IsWorkingDay {
		t.Fatalf("expected working day")
	}
	if schedule.DayOfWeek != 1 {
		t.Fatalf("expected display day 1, got %d", schedule.DayOfWeek)
	}
	if schedule.AvailableSlots != 16 || schedule.BookedSlots != 0 || schedule.BreakSlots != 0 {
		t.Fatalf("unexpected counters: %+v", schedule)
	}

	first := schedule.Slots[0]
	if first.StartTime.String() != "09:00" || first.EndTime.String() != "09:30" {
		t.Fatalf("unexpected first slot [%s, %s)", first.StartTime, first.EndTime)
	}
	last := schedule.Slots[15]
	if last.StartTime.String() != "16:30" || last.EndTime.String() != "17:00" {
		t.Fatalf("unexpected last slot [%s, %s)", last.StartTime, last.EndTime)
	}
}

func TestGenerateDailySchedulePartialTailDropped(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	rule.EndTime = mustTime(t, "17:15")

	schedule := GenerateDailySchedule(date, rule, nil)

	// Хвост 17:00-17:15 короче слота и не выдается
	if schedule.TotalSlots != 16 {
		t.Fatalf("expected 16 slots with partial tail dropped, got %d", schedule.TotalSlots)
	}
}

func TestGenerateDailyScheduleBreak(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	rule.BreakStart = timePtr(t, "12:00")
	rule.BreakEnd = timePtr(t, "13:00")

	schedule := GenerateDailySchedule(date, rule, nil)

	if schedule.BreakSlots != 2 {
		t.Fatalf("expected 2 break slots, got %d", schedule.BreakSlots)
	}
	if schedule.AvailableSlots != 14 {
		t.Fatalf("expected 14 available slots, got %d", schedule.AvailableSlots)
	}

	for _, slot := range schedule.Slots {
		inBreak := slot.StartTime >= *rule.BreakStart && slot.StartTime < *rule.BreakEnd
		if inBreak && slot.Status != domain.SlotStatusBreak {
			t.Fatalf("slot %s inside break has status %s", slot.StartTime, slot.Status)
		}
		if !inBreak && slot.Status == domain.SlotStatusBreak {
			t.Fatalf("slot %s outside break marked as break", slot.StartTime)
		}
	}
}

func TestGenerateDailyScheduleBookedSlot(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	booking := domain.Booking{
		ID:              uuid.New(),
		DoctorID:        rule.DoctorID,
		Date:            date,
		StartTime:       mustTime(t, "10:00"),
		EndTime:         mustTime(t, "10:30"),
		Status:          domain.BookingStatusConfirmed,
		PatientName:     "Иванов И.И.",
		AppointmentType: "consultation",
	}

	schedule := GenerateDailySchedule(date, rule, []domain.Booking{booking})

	if schedule.BookedSlots != 1 || schedule.AvailableSlots != 15 {
		t.Fatalf("expected 1 booked / 15 available, got %d / %d", schedule.BookedSlots, schedule.AvailableSlots)
	}

	for _, slot := range schedule.Slots {
		if slot.StartTime == booking.StartTime {
			if slot.Status != domain.SlotStatusBooked {
				t.Fatalf("expected booked slot at %s, got %s", slot.StartTime, slot.Status)
			}
			if slot.BookingID == nil || *slot.BookingID != booking.ID {
				t.Fatalf("expected booking id on slot at %s", slot.StartTime)
			}
			if slot.PatientName != booking.PatientName || slot.AppointmentType != booking.AppointmentType {
				t.Fatalf("booking details not carried to slot: %+v", slot)
			}
		} else if slot.Status == domain.SlotStatusBooked {
			t.Fatalf("unexpected booked slot at %s", slot.StartTime)
		}
	}
}

// Запись не по сетке сопоставляется по точному началу и слот не занимает.
func TestGenerateDailyScheduleMisalignedBooking(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	booking := domain.Booking{
		ID:        uuid.New(),
		DoctorID:  rule.DoctorID,
		Date:      date,
		StartTime: mustTime(t, "10:15"),
		EndTime:   mustTime(t, "10:45"),
		Status:    domain.BookingStatusScheduled,
	}

	schedule := GenerateDailySchedule(date, rule, []domain.Booking{booking})

	if schedule.BookedSlots != 0 || schedule.AvailableSlots != 16 {
		t.Fatalf("expected misaligned booking to be ignored, got %d booked", schedule.BookedSlots)
	}
}

func TestGenerateDailyScheduleInactiveBookingIgnored(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	booking := domain.Booking{
		ID:        uuid.New(),
		DoctorID:  rule.DoctorID,
		Date:      date,
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "10:30"),
		Status:    domain.BookingStatusCancelled,
	}

	schedule := GenerateDailySchedule(date, rule, []domain.Booking{booking})

	if schedule.BookedSlots != 0 {
		t.Fatalf("expected cancelled booking to be ignored, got %d booked", schedule.BookedSlots)
	}
}

// Перерыв имеет приоритет над записью, попавшей в его окно.
func TestGenerateDailyScheduleBreakBeatsBooking(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	rule.BreakStart = timePtr(t, "12:00")
	rule.BreakEnd = timePtr(t, "13:00")

	booking := domain.Booking{
		ID:        uuid.New(),
		DoctorID:  rule.DoctorID,
		Date:      date,
		StartTime: mustTime(t, "12:00"),
		EndTime:   mustTime(t, "12:30"),
		Status:    domain.BookingStatusScheduled,
	}

	schedule := GenerateDailySchedule(date, rule, []domain.Booking{booking})

	if schedule.BookedSlots != 0 || schedule.BreakSlots != 2 {
		t.Fatalf("expected break to win over booking, got %d booked / %d break", schedule.BookedSlots, schedule.BreakSlots)
	}
}

func TestGenerateDailyScheduleNonWorkingDay(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 16) // воскресенье

	for _, rule := range []*domain.AvailabilityRule{
		nil,
		{DayOfWeek: 0, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "17:00"), IsAvailable: false},
	} {
		schedule := GenerateDailySchedule(date, rule, nil)

		if schedule.IsWorkingDay {
			t.Fatalf("expected non-working day for rule %+v", rule)
		}
		if len(schedule.Slots) != 0 || schedule.TotalSlots != 0 {
			t.Fatalf("expected empty grid, got %d slots", len(schedule.Slots))
		}
		if schedule.DayOfWeek != 7 {
			t.Fatalf("expected display day 7 for sunday, got %d", schedule.DayOfWeek)
		}
	}
}

func TestGenerateDailyScheduleDefaultDuration(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	rule.SlotDurationMinutes = 0

	schedule := GenerateDailySchedule(date, rule, nil)

	// Нулевая длительность заменяется дефолтными 30 минутами
	if schedule.TotalSlots != 16 {
		t.Fatalf("expected 16 slots with default duration, got %d", schedule.TotalSlots)
	}
}

// Генерация детерминирована: одинаковый вход дает одинаковую сетку.
func TestGenerateDailyScheduleDeterministic(t *testing.T) {
	date := json_types.NewDate(2025, time.March, 10)
	rule := workingRule(t)
	rule.BreakStart = timePtr(t, "12:00")
	rule.BreakEnd = timePtr(t, "13:00")

	bookings := []domain.Booking{{
		ID:        uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"),
		DoctorID:  rule.DoctorID,
		Date:      date,
		StartTime: mustTime(t, "09:30"),
		EndTime:   mustTime(t, "10:00"),
		Status:    domain.BookingStatusScheduled,
	}}

	first := GenerateDailySchedule(date, rule, bookings)
	second := GenerateDailySchedule(date, rule, bookings)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical schedules:\n%+v\n%+v", first, second)
	}
}
