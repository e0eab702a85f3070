package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

const DefaultSlotDurationMinutes = 30

// AvailabilityRule - еженедельное правило доступности врача.
// Одно правило на пару (врач, день недели), день без правила - нерабочий.
type AvailabilityRule struct {
	DoctorID            uuid.UUID             `json:"doctorId"`
	DayOfWeek           int                   `json:"dayOfWeek"` // календарная нотация: 0=воскресенье .. 6=суббота
	StartTime           json_types.TimeOfDay  `json:"startTime"`
	EndTime             json_types.TimeOfDay  `json:"endTime"`
	IsAvailable         bool                  `json:"isAvailable"`
	BreakStart          *json_types.TimeOfDay `json:"breakStart,omitempty"`
	BreakEnd            *json_types.TimeOfDay `json:"breakEnd,omitempty"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	MaxAppointments     int                   `json:"maxAppointments"`
}

// SlotDuration возвращает длительность слота в минутах, подставляя дефолт.
func (r AvailabilityRule) SlotDuration() int {
	if r.SlotDurationMinutes <= 0 {
		return DefaultSlotDurationMinutes
	}
	return r.SlotDurationMinutes
}

// HasBreak - заданы ли оба конца окна перерыва.
func (r AvailabilityRule) HasBreak() bool {
	return r.BreakStart != nil && r.BreakEnd != nil
}

// Validate проверяет инварианты правила: рабочее окно не пустое,
// перерыв не пустой и лежит внутри рабочего окна.
func (r AvailabilityRule) Validate() error {
	if !IsValidStorageDay(r.DayOfWeek) {
		return fmt.Errorf("%w: %d", ErrUnknownDay, r.DayOfWeek)
	}

	if r.StartTime >= r.EndTime {
		return fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidScheduleWindow, r.StartTime, r.EndTime)
	}

	if r.BreakStart != nil || r.BreakEnd != nil {
		if !r.HasBreak() {
			return fmt.Errorf("%w: break window requires both start and end",
				ErrInvalidScheduleWindow)
		}
		if *r.BreakStart >= *r.BreakEnd {
			return fmt.Errorf("%w: break start %s is not before break end %s",
				ErrInvalidScheduleWindow, *r.BreakStart, *r.BreakEnd)
		}
		if *r.BreakStart < r.StartTime || *r.BreakEnd > r.EndTime {
			return fmt.Errorf("%w: break [%s, %s) outside working window [%s, %s)",
				ErrInvalidScheduleWindow, *r.BreakStart, *r.BreakEnd, r.StartTime, r.EndTime)
		}
	}

	return nil
}
