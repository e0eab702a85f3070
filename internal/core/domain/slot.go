package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusBooked      SlotStatus = "booked"
	SlotStatusBreak       SlotStatus = "break"
	SlotStatusUnavailable SlotStatus = "unavailable"
)

// TimeSlot - производная единица бронируемости, никогда не хранится.
type TimeSlot struct {
	StartTime       json_types.TimeOfDay `json:"startTime"`
	EndTime         json_types.TimeOfDay `json:"endTime"`
	Status          SlotStatus           `json:"status"`
	BookingID       *uuid.UUID           `json:"bookingId,omitempty"`
	PatientName     string               `json:"patientName,omitempty"`
	AppointmentType string               `json:"appointmentType,omitempty"`
}
