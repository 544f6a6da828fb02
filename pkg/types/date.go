package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Date календарная дата без времени в формате YYYY-MM-DD
// Строковое представление ISO-8601 сортируется лексикографически,
// поэтому Date пригодна как ключ map и для прямого сравнения
type Date string

// NewDate создает Date из time.Time (время отбрасывается)
func NewDate(t time.Time) Date {
	return Date(t.Format(DateFormat))
}

// ParseDate парсит дату из строки YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateFormat, s); err != nil {
		return "", fmt.Errorf("types: invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Validate проверяет корректность формата даты
func (d Date) Validate() error {
	_, err := d.Time()
	return err
}

// Time конвертирует Date в time.Time (полночь UTC)
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(DateFormat, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("types: invalid date %q: %w", string(d), err)
	}
	return t, nil
}

// IsZero возвращает true для пустой даты
func (d Date) IsZero() bool {
	return d == ""
}

// Before лексикографическое сравнение дат (корректно для ISO-8601)
func (d Date) Before(other Date) bool {
	return d < other
}

// InPast возвращает true, если дата раньше сегодняшнего дня
func (d Date) InPast(now time.Time) bool {
	return d < NewDate(now)
}

// AddDays возвращает дату, сдвинутую на указанное количество дней
func (d Date) AddDays(days int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDate(t.AddDate(0, 0, days)), nil
}

// String возвращает строковое представление даты
func (d Date) String() string {
	return string(d)
}

// Scan реализует sql.Scanner для колонок типа DATE
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into Date", src)
	}
}

// Value реализует driver.Valuer для колонок типа DATE
func (d Date) Value() (driver.Value, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}
