package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date - календарная дата без времени суток.
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf обрезает время суток, оставляя только дату.
func DateOf(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// ParseDate парсит дату в формате "2006-01-02".
func ParseDate(str string) (Date, error) {
	parsed, err := time.ParseInLocation("2006-01-02", str, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return Date{Date: parsed}, nil
}

func (d Date) String() string {
	return d.Date.Format("2006-01-02")
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

// Weekday возвращает день недели в календарной нотации: 0=воскресенье .. 6=суббота.
func (d Date) Weekday() int {
	return int(d.Date.Weekday())
}

func (d Date) AddDays(days int) Date {
	return DateOf(d.Date.AddDate(0, 0, days))
}

func (d Date) Equal(other Date) bool {
	return d.Date.Equal(other.Date)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("failed to parse date: %s", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
