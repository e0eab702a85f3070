package domain

// Дни недели живут в двух нотациях:
//   - календарная (хранение): 0=воскресенье .. 6=суббота, как у time.Weekday;
//   - отображаемая: 1=понедельник .. 7=воскресенье.
// Конвертация между ними происходит только здесь.

const (
	MinStorageDay = 0
	MaxStorageDay = 6
)

func IsValidStorageDay(day int) bool {
	return day >= MinStorageDay && day <= MaxStorageDay
}

// DisplayDayOfWeek переводит календарный день недели в отображаемый.
// Некорректный вход возвращается как 0 - "дня нет".
func DisplayDayOfWeek(calendarDay int) int {
	if !IsValidStorageDay(calendarDay) {
		return 0
	}
	if calendarDay == 0 {
		return 7
	}
	return calendarDay
}

// StorageDayOfWeek переводит отображаемый день недели в календарный.
// Некорректный вход возвращается как -1 - "дня нет".
func StorageDayOfWeek(displayDay int) int {
	if displayDay < 1 || displayDay > 7 {
		return -1
	}
	if displayDay == 7 {
		return 0
	}
	return displayDay
}
