// Package workday computes the randomized start and stop times of a working
// day.
package workday

import (
	"fmt"
	"time"

	"github.com/sporadisk/punchclock/format"
)

// ClockTime is a wall-clock time of day.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

func ClockOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseClock accepts "HH:MM" or "HH:MM:SS".
func ParseClock(s string) (ClockTime, error) {
	t, err := format.ParseTimestamp(s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("format.ParseTimestamp: %w", err)
	}
	return ClockOf(t), nil
}

// Seconds returns the number of seconds since midnight.
func (c ClockTime) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

func (c ClockTime) Before(o ClockTime) bool {
	return c.Seconds() < o.Seconds()
}

// On returns the instant at this clock time on t's date, in t's location.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, c.Second, 0, t.Location())
}

// String renders HH:MM, or HH:MM:SS when the seconds field is set.
func (c ClockTime) String() string {
	return c.Format(c.Second != 0)
}

func (c ClockTime) Format(withSeconds bool) string {
	ref := c.On(time.Time{})
	if withSeconds {
		return format.TimestampSeconds(ref)
	}
	return format.Timestamp(ref)
}
