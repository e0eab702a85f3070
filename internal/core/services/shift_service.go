package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
)

// ShiftService управляет датированными сменами врачей.
// Любая запись смены проходит проверку конфликтов внутри критической секции
// хранилища по ключу (врач, дата) - снимок для проверки не переживает секцию.
type ShiftService struct {
	shiftStore out.ShiftStorePort
	logger     out.LoggerPort
}

func NewShiftService(shiftStore out.ShiftStorePort, logger out.LoggerPort) *ShiftService {
	return &ShiftService{
		shiftStore: shiftStore,
		logger:     logger.WithModule("ShiftService"),
	}
}

func (s *ShiftService) CreateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	if err := shift.Validate(); err != nil {
		return nil, err
	}

	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	if shift.Status == "" {
		shift.Status = domain.ShiftStatusScheduled
	}
	if shift.Type == domain.ShiftTypeEmergency {
		shift.IsEmergency = true
	}

	err := s.shiftStore.WithDoctorDay(ctx, shift.DoctorID, shift.Date, func(ctx context.Context) error {
		existing, err := s.shiftStore.ListDoctorShifts(ctx, shift.DoctorID, shift.Date)
		if err != nil {
			return err
		}

		if conflicts := domain.FindConflicts(existing, shift.StartTime, shift.EndTime, uuid.Nil); len(conflicts) > 0 {
			s.logger.Warn("shift.create.conflict", out.LogFields{
				"doctorId":       shift.DoctorID,
				"date":           shift.Date,
				"conflictsCount": len(conflicts),
			})
			return fmt.Errorf("%w: %d overlapping shift(s)", domain.ErrShiftConflict, len(conflicts))
		}

		return s.shiftStore.SaveShift(ctx, shift)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift.created", out.LogFields{
		"shiftId":  shift.ID,
		"doctorId": shift.DoctorID,
		"date":     shift.Date,
	})

	return &shift, nil
}

func (s *ShiftService) UpdateShift(ctx context.Context, shift domain.Shift) (*domain.Shift, error) {
	if err := shift.Validate(); err != nil {
		return nil, err
	}

	current, err := s.shiftStore.GetShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrShiftNotFound, shift.ID)
	}
	if current.Status.Finalized() {
		return nil, fmt.Errorf("%w: %s", domain.ErrShiftFinalized, current.Status)
	}

	shift.DoctorID = current.DoctorID
	if shift.Status == "" {
		shift.Status = current.Status
	}
	if shift.Type == domain.ShiftTypeEmergency {
		shift.IsEmergency = true
	}

	// Конфликты проверяются на целевой дате, сама смена исключается по id
	err = s.shiftStore.WithDoctorDay(ctx, shift.DoctorID, shift.Date, func(ctx context.Context) error {
		existing, err := s.shiftStore.ListDoctorShifts(ctx, shift.DoctorID, shift.Date)
		if err != nil {
			return err
		}

		if conflicts := domain.FindConflicts(existing, shift.StartTime, shift.EndTime, shift.ID); len(conflicts) > 0 {
			s.logger.Warn("shift.update.conflict", out.LogFields{
				"shiftId":        shift.ID,
				"doctorId":       shift.DoctorID,
				"date":           shift.Date,
				"conflictsCount": len(conflicts),
			})
			return fmt.Errorf("%w: %d overlapping shift(s)", domain.ErrShiftConflict, len(conflicts))
		}

		return s.shiftStore.SaveShift(ctx, shift)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shift.updated", out.LogFields{
		"shiftId":  shift.ID,
		"doctorId": shift.DoctorID,
		"date":     shift.Date,
	})

	return &shift, nil
}

func (s *ShiftService) UpdateShiftStatus(ctx context.Context, shiftID uuid.UUID, status domain.ShiftStatus) (*domain.Shift, error) {
	switch status {
	case domain.ShiftStatusScheduled, domain.ShiftStatusConfirmed,
		domain.ShiftStatusCompleted, domain.ShiftStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidShiftStatus, status)
	}

	shift, err := s.shiftStore.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrShiftNotFound, shiftID)
	}
	if shift.Status.Finalized() {
		return nil, fmt.Errorf("%w: %s", domain.ErrShiftFinalized, shift.Status)
	}

	shift.Status = status
	if err := s.shiftStore.SaveShift(ctx, *shift); err != nil {
		return nil, err
	}

	s.logger.Info("shift.status_updated", out.LogFields{
		"shiftId": shiftID,
		"status":  status,
	})

	return shift, nil
}

// DeleteShift физически удаляет смену. Завершенные и отмененные смены
// остаются в истории, для них удаление запрещено.
func (s *ShiftService) DeleteShift(ctx context.Context, shiftID uuid.UUID) error {
	shift, err := s.shiftStore.GetShift(ctx, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return fmt.Errorf("%w: %s", domain.ErrShiftNotFound, shiftID)
	}
	if shift.Status.Finalized() {
		return fmt.Errorf("%w: %s", domain.ErrShiftFinalized, shift.Status)
	}

	if err := s.shiftStore.DeleteShift(ctx, shiftID); err != nil {
		return err
	}

	s.logger.Info("shift.deleted", out.LogFields{
		"shiftId":  shiftID,
		"doctorId": shift.DoctorID,
		"date":     shift.Date,
	})

	return nil
}

func (s *ShiftService) ListDoctorShifts(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.Shift, error) {
	return s.shiftStore.ListDoctorShifts(ctx, doctorID, date)
}

func (s *ShiftService) FindConflicts(ctx context.Context, doctorID uuid.UUID, date json_types.Date, start, end json_types.TimeOfDay, excludeID uuid.UUID) ([]domain.Shift, error) {
	if start >= end {
		return nil, fmt.Errorf("%w: start %s is not before end %s", domain.ErrInvalidScheduleWindow, start, end)
	}

	existing, err := s.shiftStore.ListDoctorShifts(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	return domain.FindConflicts(existing, start, end, excludeID), nil
}
