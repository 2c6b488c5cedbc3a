// Package driver runs the poll loop that fires scheduled start and stop
// triggers.
package driver

import (
	"context"
	"log/slog"
	"time"

	"github.com/sporadisk/punchclock/client/toggl"
	"github.com/sporadisk/punchclock/format"
	"github.com/sporadisk/punchclock/schedule"
	"github.com/sporadisk/punchclock/workday"
)

// Tracker is the remote time entry client driven by the loop.
type Tracker interface {
	Begin(ctx context.Context) error
	Stop(ctx context.Context) error
	CurrentEntry(ctx context.Context) (*toggl.TimeEntry, error)
	Adopt(entry *toggl.TimeEntry)
}

type Driver struct {
	Plan         workday.Plan
	Scheduler    *schedule.Scheduler
	Tracker      Tracker
	Logger       *slog.Logger
	Now          func() time.Time
	PollInterval time.Duration

	// AdoptRunning makes the driver pick up an entry that is already running
	// remotely before deciding whether to start one.
	AdoptRunning bool
}

// TickResult summarizes one poll of the scheduler.
type TickResult struct {
	At      time.Time
	Results []schedule.Result
}

func (r TickResult) Ran() int {
	return len(r.Results)
}

func (r TickResult) Failed() int {
	failed := 0
	for _, res := range r.Results {
		if res.Err != nil {
			failed++
		}
	}
	return failed
}

// Run performs the startup decision and then polls the scheduler until ctx
// is cancelled. On weekends it returns immediately.
func (d *Driver) Run(ctx context.Context) error {
	d.defaults()
	now := d.Now()

	if workday.IsWeekend(now) {
		d.Logger.Info("today is a weekend, not starting", "weekday", now.Weekday().String())
		return nil
	}

	if d.AdoptRunning {
		d.adopt(ctx)
	}

	if d.Plan.Working(now) {
		d.Logger.Info("inside working hours, starting an entry now")
		err := d.Tracker.Begin(ctx)
		if err != nil {
			d.Logger.Error("starting entry failed", "error", err)
		}
	} else {
		d.Logger.Info("outside working hours, waiting for the schedule")
	}

	d.Logger.Info("schedule", "plan", d.Plan.String(), "triggers", len(d.Scheduler.Jobs()))
	d.logNextRun(now)

	ticker := time.NewTicker(d.PollInterval)
	defer ticker.Stop()

	for {
		d.Tick(ctx)

		select {
		case <-ctx.Done():
			d.Logger.Info("shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick runs every due trigger once and logs the outcome. Failures are
// logged and never stop the loop.
func (d *Driver) Tick(ctx context.Context) TickResult {
	d.defaults()
	now := d.Now()
	tr := TickResult{
		At:      now,
		Results: d.Scheduler.RunPending(ctx, now),
	}

	for _, res := range tr.Results {
		logger := d.Logger.With("action", res.Job.Action, "weekday", res.Job.Weekday.String(), "at", res.Job.At.Format(d.Plan.Seconds))
		if res.Err != nil {
			logger.Error("trigger failed", "error", res.Err)
			continue
		}
		logger.Info("trigger fired")
	}

	if tr.Ran() > 0 {
		d.logNextRun(now)
	}
	return tr
}

func (d *Driver) adopt(ctx context.Context) {
	entry, err := d.Tracker.CurrentEntry(ctx)
	if err != nil {
		d.Logger.Error("reading the running entry failed", "error", err)
		return
	}
	if entry == nil {
		d.Logger.Debug("no running entry to adopt")
		return
	}

	d.Tracker.Adopt(entry)
	d.Logger.Info("adopted running entry", "id", entry.ID, "description", entry.Description)
}

func (d *Driver) logNextRun(now time.Time) {
	job, ok := d.Scheduler.NextRun()
	if !ok {
		return
	}
	d.Logger.Debug("next trigger",
		"action", job.Action,
		"weekday", job.Weekday.String(),
		"at", job.At.Format(d.Plan.Seconds),
		"in", format.DurationHM(job.Next.Sub(now)))
}

func (d *Driver) defaults() {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.PollInterval <= 0 {
		d.PollInterval = time.Minute
	}
	if d.Scheduler == nil {
		d.Scheduler = schedule.New()
	}
}
