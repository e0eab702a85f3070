package utils

import (
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
)

// WeekStart возвращает понедельник календарной недели, содержащей date.
// Смещение назад: (weekday + 6) mod 7 дней, где weekday - 0=воскресенье.
func WeekStart(date json_types.Date) json_types.Date {
	offset := (date.Weekday() + 6) % 7
	return date.AddDays(-offset)
}

// WeekEnd возвращает воскресенье той же недели.
func WeekEnd(date json_types.Date) json_types.Date {
	return WeekStart(date).AddDays(6)
}
