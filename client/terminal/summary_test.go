package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sporadisk/punchclock/client/toggl"
	"github.com/sporadisk/punchclock/schedule"
	"github.com/sporadisk/punchclock/workday"
)

func TestSchedule(t *testing.T) {
	now := time.Date(2026, time.October, 19, 7, 0, 0, 0, time.UTC)
	plan := workday.Plan{
		MorningStart:   workday.ClockTime{Hour: 8, Minute: 2},
		MorningEnd:     workday.ClockTime{Hour: 11, Minute: 56},
		AfternoonStart: workday.ClockTime{Hour: 13, Minute: 4},
		AfternoonEnd:   workday.ClockTime{Hour: 16, Minute: 58},
	}

	s := schedule.New()
	noop := func(context.Context) error { return nil }
	err := s.Weekly(plan, noop, noop, now)
	if err != nil {
		t.Errorf("Weekly: %s", err.Error())
		return
	}

	var buf bytes.Buffer
	c := &Client{Out: &buf}
	if err := c.Init(); err != nil {
		t.Errorf("Init: %s", err.Error())
		return
	}
	err = c.OutputSchedule(plan, s.Jobs(), now)
	if err != nil {
		t.Errorf("OutputSchedule: %s", err.Error())
		return
	}

	out := buf.String()
	if !strings.Contains(out, "Plan: morning 08:02-11:56, afternoon 13:04-16:58") {
		t.Errorf("plan missing from output:\n%s", out)
	}
	if strings.Count(out, "\n Monday") != 4 || strings.Count(out, "\n Friday") != 4 {
		t.Errorf("expected four rows per weekday:\n%s", out)
	}
	if strings.Contains(out, "Saturday") || strings.Contains(out, "Sunday") {
		t.Errorf("weekend rows should not appear:\n%s", out)
	}
	if !strings.Contains(out, "next 2026-10-19 08:02:00 (in 1h 2m)") {
		t.Errorf("expected the first Monday trigger to be listed:\n%s", out)
	}
}

func TestEntry(t *testing.T) {
	c := &Client{}
	now := time.Date(2026, time.October, 19, 10, 30, 0, 0, time.UTC)

	if got := c.Entry(nil, now); got != "No entry is running.\n" {
		t.Errorf("unexpected output for nil entry: %q", got)
	}

	entry := &toggl.TimeEntry{
		ID:          12,
		Description: "Code review",
		Start:       now.Add(-90 * time.Minute),
		Duration:    -1,
	}
	out := c.Entry(entry, now)
	if !strings.Contains(out, `Entry 12: "Code review"`) || !strings.Contains(out, "Running for 1h 30m") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
