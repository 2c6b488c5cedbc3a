package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	ClockHM  = "15:04"
	ClockHMS = "15:04:05"
)

func Timestamp(ts time.Time) string {
	return ts.Format(ClockHM)
}

func TimestampSeconds(ts time.Time) string {
	return ts.Format(ClockHMS)
}

// DurationHM renders d as e.g. "2h 5m". Durations under a minute render as
// seconds.
func DurationHM(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(math.Floor(d.Seconds())))
	}

	hours := int(math.Floor(d.Hours()))
	d = d - (time.Duration(hours) * time.Hour)
	minutes := int(math.Floor(d.Minutes()))

	var sb strings.Builder
	if hours > 0 {
		sb.WriteString(fmt.Sprintf("%dh", hours))
	}

	if minutes > 0 {
		if hours > 0 {
			sb.WriteString(" ")
		}

		sb.WriteString(fmt.Sprintf("%dm", minutes))
	}

	return sb.String()
}
