package workday

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const DefaultJitterMinutes = 5

// Anchors are the unjittered hours of the four daily triggers.
type Anchors struct {
	MorningStart   int
	MorningEnd     int
	AfternoonStart int
	AfternoonEnd   int
}

var DefaultAnchors = Anchors{
	MorningStart:   8,
	MorningEnd:     12,
	AfternoonStart: 13,
	AfternoonEnd:   17,
}

func (a Anchors) Validate() error {
	hours := []int{a.MorningStart, a.MorningEnd, a.AfternoonStart, a.AfternoonEnd}
	for _, h := range hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("anchor hour out of range: %d", h)
		}
	}
	for i := 1; i < len(hours); i++ {
		if hours[i] <= hours[i-1] {
			return fmt.Errorf("anchor hours must be increasing: %v", hours)
		}
	}
	return nil
}

// Plan holds the four trigger times of a working day. It is computed once
// and reused for every day the process runs.
type Plan struct {
	MorningStart   ClockTime
	MorningEnd     ClockTime
	AfternoonStart ClockTime
	AfternoonEnd   ClockTime

	// Seconds marks a test plan, whose times carry second precision.
	Seconds bool
}

// testPlanSpan is the latest offset TestPlan can draw.
const testPlanSpan = 210 * time.Second

// Jitter adds a uniform random offset in [-window, +window] minutes to
// anchorHour:00 on now's date and returns the resulting clock time. Offsets
// crossing midnight wrap around (00:00 - 3m is 23:57).
func Jitter(now time.Time, anchorHour, window int, r *rand.Rand) ClockTime {
	offset := 0
	if window > 0 {
		offset = r.IntN(2*window+1) - window
	}

	anchor := time.Date(now.Year(), now.Month(), now.Day(), anchorHour, 0, 0, 0, now.Location())
	return ClockOf(anchor.Add(time.Duration(offset) * time.Minute))
}

// NormalPlan jitters each anchor by up to window minutes.
func NormalPlan(now time.Time, anchors Anchors, window int, r *rand.Rand) Plan {
	return Plan{
		MorningStart:   Jitter(now, anchors.MorningStart, window, r),
		MorningEnd:     Jitter(now, anchors.MorningEnd, window, r),
		AfternoonStart: Jitter(now, anchors.AfternoonStart, window, r),
		AfternoonEnd:   Jitter(now, anchors.AfternoonEnd, window, r),
	}
}

// TestPlan compresses the working day into a few minutes starting at now.
// A compressed day that would cross midnight starts at the next midnight
// instead, so all four slots fall on the same date.
func TestPlan(now time.Time, r *rand.Rand) Plan {
	base := now
	if last := now.Add(testPlanSpan); last.Day() != now.Day() {
		base = time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	}

	after := func(min, max int) ClockTime {
		secs := min + r.IntN(max-min+1)
		return ClockOf(base.Add(time.Duration(secs) * time.Second))
	}

	return Plan{
		MorningStart:   after(10, 20),
		MorningEnd:     after(70, 90),
		AfternoonStart: after(130, 150),
		AfternoonEnd:   after(190, 210),
		Seconds:        true,
	}
}

// Working reports whether now falls inside the morning or afternoon window.
// Windows include their start and exclude their end.
func (p Plan) Working(now time.Time) bool {
	c := ClockOf(now)
	if !p.Seconds {
		c.Second = 0
	}
	return inWindow(c, p.MorningStart, p.MorningEnd) || inWindow(c, p.AfternoonStart, p.AfternoonEnd)
}

func inWindow(c, start, end ClockTime) bool {
	return !c.Before(start) && c.Before(end)
}

func (p Plan) String() string {
	return fmt.Sprintf("morning %s-%s, afternoon %s-%s",
		p.MorningStart.Format(p.Seconds), p.MorningEnd.Format(p.Seconds),
		p.AfternoonStart.Format(p.Seconds), p.AfternoonEnd.Format(p.Seconds))
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Weekdays lists Monday through Friday.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}
