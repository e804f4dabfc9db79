package model

import (
	"fmt"
	"time"
)

// DayLayout is the wire and form format of a calendar day.
const DayLayout = "2006-01-02"

// Day is a calendar day in the user's local time, formatted YYYY-MM-DD.
// It is never derived through a UTC conversion, so late-evening entries stay on
// the day the user saw on the clock.
type Day string

// Today returns the calendar day of now in now's own location.
func Today(now time.Time) Day {
	return Day(now.Format(DayLayout))
}

func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(DayLayout, s); err != nil {
		return "", fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day(s), nil
}

func (d Day) String() string { return string(d) }

func (d Day) Valid() bool {
	_, err := time.Parse(DayLayout, string(d))
	return err == nil
}

// Time returns midnight of d. UTC is used only as a neutral calendar so day
// arithmetic is not affected by daylight-saving transitions.
func (d Day) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) AddDays(n int) Day {
	return Day(d.Time().AddDate(0, 0, n).Format(DayLayout))
}

func (d Day) Before(o Day) bool { return d < o }

func (d Day) After(o Day) bool { return d > o }

// Format renders d with a time layout, e.g. "Jan 2".
func (d Day) Format(layout string) string {
	return d.Time().Format(layout)
}
