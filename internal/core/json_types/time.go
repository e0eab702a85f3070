package json_types

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// TimeOfDay - время суток в минутах от полуночи.
// Не несет ни даты, ни таймзоны, окно через полночь не поддерживается.
type TimeOfDay int

const MinutesPerDay = 24 * 60

// ParseTimeOfDay парсит строку строго в формате "HH:MM" (24 часа, с ведущими нулями).
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	if len(str) != 5 || str[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, str)
	}

	for _, i := range []int{0, 1, 3, 4} {
		if str[i] < '0' || str[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, str)
		}
	}

	hours := int(str[0]-'0')*10 + int(str[1]-'0')
	minutes := int(str[3]-'0')*10 + int(str[4]-'0')

	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, str)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, string(data))
	}
	str := string(data[1 : len(data)-1])

	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
