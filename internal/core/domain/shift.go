package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeAfternoon ShiftType = "afternoon"
	ShiftTypeNight     ShiftType = "night"
	ShiftTypeEmergency ShiftType = "emergency"
)

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// Finalized - терминальный ли статус. Такие смены дальше не меняются.
func (s ShiftStatus) Finalized() bool {
	return s == ShiftStatusCompleted || s == ShiftStatusCancelled
}

// Shift - назначение врача на конкретную дату, не повторяющееся.
type Shift struct {
	ID           uuid.UUID            `json:"id"`
	DoctorID     uuid.UUID            `json:"doctorId"`
	Type         ShiftType            `json:"shiftType"`
	Date         json_types.Date      `json:"shiftDate"`
	StartTime    json_types.TimeOfDay `json:"startTime"`
	EndTime      json_types.TimeOfDay `json:"endTime"`
	DepartmentID uuid.UUID            `json:"departmentId"`
	Status       ShiftStatus          `json:"status"`
	IsEmergency  bool                 `json:"isEmergencyShift"`
	Notes        string               `json:"notes,omitempty"`
}

func (s Shift) Validate() error {
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidScheduleWindow, s.StartTime, s.EndTime)
	}

	switch s.Type {
	case ShiftTypeMorning, ShiftTypeAfternoon, ShiftTypeNight, ShiftTypeEmergency:
	default:
		return fmt.Errorf("%w: unknown shift type %q", ErrInvalidScheduleWindow, s.Type)
	}

	return nil
}

// Overlaps - строгое пересечение полуоткрытых интервалов [s.Start, s.End) и [start, end).
// Смены встык не пересекаются.
func (s Shift) Overlaps(start, end json_types.TimeOfDay) bool {
	return s.StartTime < end && s.EndTime > start
}

// FindConflicts возвращает смены из shifts, пересекающиеся с окном [start, end).
// Отмененные смены и смена с id excludeID не участвуют в проверке.
func FindConflicts(shifts []Shift, start, end json_types.TimeOfDay, excludeID uuid.UUID) []Shift {
	var conflicts []Shift

	for _, shift := range shifts {
		if shift.Status == ShiftStatusCancelled {
			continue
		}
		if excludeID != uuid.Nil && shift.ID == excludeID {
			continue
		}
		if shift.Overlaps(start, end) {
			conflicts = append(conflicts, shift)
		}
	}

	return conflicts
}
