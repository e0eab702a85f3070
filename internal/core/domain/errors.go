package domain

import "errors"

var (
	// Окно работы или перерыва задано некорректно
	ErrInvalidScheduleWindow = errors.New("invalid schedule window")

	// Смена пересекается с другой неотмененной сменой врача на эту дату
	ErrShiftConflict = errors.New("shift conflict")

	ErrShiftNotFound = errors.New("shift not found")

	// Завершенные и отмененные смены не редактируются и не удаляются
	ErrShiftFinalized = errors.New("shift already finalized")

	ErrInvalidShiftStatus = errors.New("invalid shift status transition")

	// День недели вне диапазона хранения [0,6]
	ErrUnknownDay = errors.New("unknown day of week")
)
