package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
	"github.com/suchimauz/doctor-schedule-engine/internal/utils"
)

// WeekPlannerService собирает семь дневных сеток в недельную с итоговой сводкой.
type WeekPlannerService struct {
	slots  *SlotGeneratorService
	logger out.LoggerPort
}

func NewWeekPlannerService(slots *SlotGeneratorService, logger out.LoggerPort) *WeekPlannerService {
	return &WeekPlannerService{
		slots:  slots,
		logger: logger.WithModule("WeekPlannerService"),
	}
}

// GetWeeklySchedule строит расписание недели, содержащей date.
// Неделя всегда с понедельника по воскресенье, независимо от дня date.
func (s *WeekPlannerService) GetWeeklySchedule(ctx context.Context, doctorID uuid.UUID, date json_types.Date) (*domain.WeeklySchedule, error) {
	weekStart := utils.WeekStart(date)

	week := &domain.WeeklySchedule{
		DoctorID:  doctorID,
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDays(6),
		Days:      make([]domain.DailySchedule, 0, 7),
	}

	for i := 0; i < 7; i++ {
		day, err := s.slots.GetDailySchedule(ctx, doctorID, weekStart.AddDays(i))
		if err != nil {
			s.logger.Error("schedule.week.day_failed", out.LogFields{
				"doctorId": doctorID,
				"date":     weekStart.AddDays(i),
				"error":    err.Error(),
			})
			return nil, fmt.Errorf("schedule.week.day_failed: %w", err)
		}
		week.Days = append(week.Days, *day)
	}

	week.Summary = domain.BuildWeeklySummary(week.Days)

	s.logger.Debug("schedule.week.generated", out.LogFields{
		"doctorId":    doctorID,
		"weekStart":   week.WeekStart,
		"weekEnd":     week.WeekEnd,
		"workingDays": week.Summary.TotalWorkingDays,
	})

	return week, nil
}
