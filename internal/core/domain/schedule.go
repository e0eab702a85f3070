package domain

import (
	"math"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

// DailySchedule - сетка слотов врача на одну дату.
type DailySchedule struct {
	Date         json_types.Date `json:"date"`
	DayOfWeek    int             `json:"dayOfWeek"` // отображаемая нотация: 1=понедельник .. 7=воскресенье
	IsWorkingDay bool            `json:"isWorkingDay"`
	Slots        []TimeSlot      `json:"slots"`

	// TotalSlots включает слоты перерыва, BookedSlots и AvailableSlots - нет.
	TotalSlots     int `json:"totalSlots"`
	BookedSlots    int `json:"bookedSlots"`
	AvailableSlots int `json:"availableSlots"`
	BreakSlots     int `json:"breakSlots"`
}

type WeeklySummary struct {
	TotalWorkingDays int     `json:"totalWorkingDays"`
	TotalSlots       int     `json:"totalSlots"`
	TotalBooked      int     `json:"totalBooked"`
	TotalAvailable   int     `json:"totalAvailable"`
	OccupancyRate    float64 `json:"occupancyRate"`
}

type WeeklySchedule struct {
	DoctorID  uuid.UUID       `json:"doctorId"`
	WeekStart json_types.Date `json:"weekStart"`
	WeekEnd   json_types.Date `json:"weekEnd"`
	Days      []DailySchedule `json:"days"`
	Summary   WeeklySummary   `json:"summary"`
}

// BuildWeeklySummary агрегирует счетчики по дням недели.
// Занятость считается от слотов вне перерыва (booked + available),
// при их отсутствии равна нулю.
func BuildWeeklySummary(days []DailySchedule) WeeklySummary {
	summary := WeeklySummary{}

	for _, day := range days {
		if day.IsWorkingDay {
			summary.TotalWorkingDays++
		}
		summary.TotalSlots += day.TotalSlots
		summary.TotalBooked += day.BookedSlots
		summary.TotalAvailable += day.AvailableSlots
	}

	eligible := summary.TotalBooked + summary.TotalAvailable
	if eligible > 0 {
		rate := float64(summary.TotalBooked) / float64(eligible) * 100
		summary.OccupancyRate = math.Round(rate*100) / 100
	}

	return summary
}
