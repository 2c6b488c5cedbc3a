package format

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimestamp accepts "15:04" or "15:04:05".
func ParseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	layout := ClockHM
	if strings.Count(ts, ":") == 2 {
		layout = ClockHMS
	}

	t, err := time.Parse(layout, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse(%q): %w", ts, err)
	}
	return t, nil
}

func CleanParam(param string) string {
	return strings.ToLower(strings.TrimSpace(param))
}
