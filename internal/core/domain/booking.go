package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "scheduled"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking - запись пациента из внешней подсистемы бронирования.
// Движок ее только читает; генератор слотов смотрит на StartTime и Status.
type Booking struct {
	ID              uuid.UUID            `json:"id"`
	DoctorID        uuid.UUID            `json:"doctorId"`
	Date            json_types.Date      `json:"date"`
	StartTime       json_types.TimeOfDay `json:"startTime"`
	EndTime         json_types.TimeOfDay `json:"endTime"`
	Status          BookingStatus        `json:"status"`
	PatientName     string               `json:"patientName,omitempty"`
	AppointmentType string               `json:"appointmentType,omitempty"`
}

// Active - занимает ли запись слот в сетке.
func (b Booking) Active() bool {
	return b.Status == BookingStatusScheduled || b.Status == BookingStatusConfirmed
}
