package domain

import "testing"

func TestBuildWeeklySummary(t *testing.T) {
	days := []DailySchedule{
		{IsWorkingDay: true, TotalSlots: 8, BookedSlots: 4, AvailableSlots: 3, BreakSlots: 1},
		{IsWorkingDay: true, TotalSlots: 8, BookedSlots: 3, AvailableSlots: 4, BreakSlots: 1},
		{IsWorkingDay: false},
	}

	summary := BuildWeeklySummary(days)

	if summary.TotalWorkingDays != 2 {
		t.Fatalf("expected 2 working days, got %d", summary.TotalWorkingDays)
	}
	if summary.TotalSlots != 16 {
		t.Fatalf("expected 16 total slots, got %d", summary.TotalSlots)
	}
	if summary.TotalBooked != 7 || summary.TotalAvailable != 7 {
		t.Fatalf("expected 7 booked / 7 available, got %d / %d", summary.TotalBooked, summary.TotalAvailable)
	}
	// Перерывы в знаменатель занятости не входят: 7 из 14, а не из 16
	if summary.OccupancyRate != 50.00 {
		t.Fatalf("expected occupancy 50.00, got %v", summary.OccupancyRate)
	}
}

func TestBuildWeeklySummaryRounding(t *testing.T) {
	days := []DailySchedule{
		{IsWorkingDay: true, TotalSlots: 3, BookedSlots: 1, AvailableSlots: 2},
	}

	summary := BuildWeeklySummary(days)

	// 1/3 = 33.333..., округляем до двух знаков
	if summary.OccupancyRate != 33.33 {
		t.Fatalf("expected occupancy 33.33, got %v", summary.OccupancyRate)
	}
}

func TestBuildWeeklySummaryEmptyWeek(t *testing.T) {
	summary := BuildWeeklySummary([]DailySchedule{
		{IsWorkingDay: false},
		{IsWorkingDay: false},
	})

	if summary.OccupancyRate != 0 {
		t.Fatalf("expected zero occupancy for empty week, got %v", summary.OccupancyRate)
	}
	if summary.TotalSlots != 0 || summary.TotalWorkingDays != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}
