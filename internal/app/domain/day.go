package domain

import "time"

const dayLayout = "2006-01-02"

// Day is a UTC calendar day.
type Day struct {
	start time.Time
}

// DayOf returns the UTC day containing t.
func DayOf(t time.Time) Day {
	t = t.UTC()
	return Day{start: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(value string) (Day, error) {
	t, err := time.ParseInLocation(dayLayout, value, time.UTC)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// Start is the first instant of the day.
func (d Day) Start() time.Time {
	return d.start
}

// End is the last millisecond of the day.
func (d Day) End() time.Time {
	return d.start.Add(24*time.Hour - time.Millisecond)
}

// AddDays returns the day n days later (or earlier for negative n).
func (d Day) AddDays(n int) Day {
	return Day{start: d.start.AddDate(0, 0, n)}
}

// Before reports whether d is strictly before other.
func (d Day) Before(other Day) bool {
	return d.start.Before(other.start)
}

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool {
	return d.start.IsZero()
}

func (d Day) String() string {
	return d.start.Format(dayLayout)
}
