package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/adapters/out/memstore"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

func newWeekPlanner(store *memstore.MemStoreAdapter) *WeekPlannerService {
	slots := NewSlotGeneratorService(store, store, nil, nopLogger{})
	return NewWeekPlannerService(slots, nopLogger{})
}

func TestGetWeeklyScheduleAlwaysStartsMonday(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemStoreAdapter(nopLogger{})
	planner := newWeekPlanner(store)
	doctorID := uuid.New()

	// Любой день недели 10-16 марта 2025 дает одну и ту же неделю
	for day := 10; day <= 16; day++ {
		week, err := planner.GetWeeklySchedule(ctx, doctorID, json_types.NewDate(2025, time.March, day))
		if err != nil {
			t.Fatalf("GetWeeklySchedule(march %d): %v", day, err)
		}

		if week.WeekStart.String() != "2025-03-10" {
			t.Fatalf("march %d: expected week start 2025-03-10, got %s", day, week.WeekStart)
		}
		if week.WeekEnd.String() != "2025-03-16" {
			t.Fatalf("march %d: expected week end 2025-03-16, got %s", day, week.WeekEnd)
		}
		if len(week.Days) != 7 {
			t.Fatalf("march %d: expected 7 days, got %d", day, len(week.Days))
		}
	}
}

func TestGetWeeklyScheduleDaysOrdered(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemStoreAdapter(nopLogger{})
	planner := newWeekPlanner(store)

	week, err := planner.GetWeeklySchedule(ctx, uuid.New(), json_types.NewDate(2025, time.March, 12))
	if err != nil {
		t.Fatalf("GetWeeklySchedule: %v", err)
	}

	for i, day := range week.Days {
		if day.DayOfWeek != i+1 {
			t.Fatalf("day %d: expected display day %d, got %d", i, i+1, day.DayOfWeek)
		}
		if !day.Date.Equal(week.WeekStart.AddDays(i)) {
			t.Fatalf("day %d: expected date %s, got %s", i, week.WeekStart.AddDays(i), day.Date)
		}
	}
}

func TestGetWeeklyScheduleSummary(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewMemStoreAdapter(nopLogger{})
	planner := newWeekPlanner(store)
	doctorID := uuid.New()

	// Рабочий только понедельник: 09:00-13:00 по 30 минут = 8 слотов
	rules := []domain.AvailabilityRule{{
		DoctorID:            doctorID,
		DayOfWeek:           1,
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "13:00"),
		IsAvailable:         true,
		SlotDurationMinutes: 30,
	}}
	if err := store.ReplaceDoctorRules(ctx, doctorID, rules); err != nil {
		t.Fatalf("ReplaceDoctorRules: %v", err)
	}

	monday := json_types.NewDate(2025, time.March, 10)
	for _, start := range []string{"09:00", "09:30", "10:00", "10:30"} {
		store.AddBooking(ctx, domain.Booking{
			ID:        uuid.New(),
			DoctorID:  doctorID,
			Date:      monday,
			StartTime: mustTime(t, start),
			EndTime:   mustTime(t, start) + 30,
			Status:    domain.BookingStatusScheduled,
		})
	}

	week, err := planner.GetWeeklySchedule(ctx, doctorID, monday)
	if err != nil {
		t.Fatalf("GetWeeklySchedule: %v", err)
	}

	if week.Summary.TotalWorkingDays != 1 {
		t.Fatalf("expected 1 working day, got %d", week.Summary.TotalWorkingDays)
	}
	if week.Summary.TotalSlots != 8 || week.Summary.TotalBooked != 4 || week.Summary.TotalAvailable != 4 {
		t.Fatalf("unexpected summary: %+v", week.Summary)
	}
	if week.Summary.OccupancyRate != 50.00 {
		t.Fatalf("expected occupancy 50.00, got %v", week.Summary.OccupancyRate)
	}
}
