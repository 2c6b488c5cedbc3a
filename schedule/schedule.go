// Package schedule keeps the weekly table of start and stop triggers.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/adhocore/gronx"
	"github.com/sporadisk/punchclock/workday"
)

type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// Func is the work bound to a job.
type Func func(ctx context.Context) error

// ErrInvalidExpr is returned when a job cannot be expressed as a cron
// expression.
var ErrInvalidExpr = errors.New("schedule: invalid trigger expression")

// Job fires Action every week on Weekday at At.
type Job struct {
	Weekday time.Weekday
	At      workday.ClockTime
	Action  Action
	Expr    string
	Next    time.Time

	fn Func
}

// Result is the outcome of running one job.
type Result struct {
	Job Job
	Err error
}

// Scheduler is not safe for concurrent use; it is owned by the driver loop.
type Scheduler struct {
	jobs []*Job
}

func New() *Scheduler {
	return &Scheduler{}
}

// Expr returns the six-segment cron expression (seconds first) for a weekly
// trigger.
func Expr(weekday time.Weekday, at workday.ClockTime) string {
	return fmt.Sprintf("%d %d %d * * %d", at.Second, at.Minute, at.Hour, int(weekday))
}

// Add registers a job. Its first run is the first matching instant strictly
// after now.
func (s *Scheduler) Add(weekday time.Weekday, at workday.ClockTime, action Action, fn Func, now time.Time) error {
	expr := Expr(weekday, at)
	if !gronx.IsValid(expr) {
		return fmt.Errorf("%w: %q", ErrInvalidExpr, expr)
	}

	next, err := gronx.NextTickAfter(expr, now, false)
	if err != nil {
		return fmt.Errorf("gronx.NextTickAfter(%q): %w", expr, err)
	}

	s.jobs = append(s.jobs, &Job{
		Weekday: weekday,
		At:      at,
		Action:  action,
		Expr:    expr,
		Next:    next,
		fn:      fn,
	})
	return nil
}

// Weekly registers the four daily triggers of plan for Monday to Friday.
func (s *Scheduler) Weekly(plan workday.Plan, begin, stop Func, now time.Time) error {
	slots := []struct {
		at     workday.ClockTime
		action Action
		fn     Func
	}{
		{plan.MorningStart, ActionStart, begin},
		{plan.MorningEnd, ActionStop, stop},
		{plan.AfternoonStart, ActionStart, begin},
		{plan.AfternoonEnd, ActionStop, stop},
	}

	for _, wd := range workday.Weekdays {
		for _, slot := range slots {
			err := s.Add(wd, slot.at, slot.action, slot.fn, now)
			if err != nil {
				return fmt.Errorf("s.Add(%s %s): %w", wd, slot.at, err)
			}
		}
	}
	return nil
}

// RunPending runs every job whose next run is at or before now, earliest
// first, and reschedules it to its next tick after now.
func (s *Scheduler) RunPending(ctx context.Context, now time.Time) []Result {
	due := []*Job{}
	for _, job := range s.jobs {
		if !job.Next.After(now) {
			due = append(due, job)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Next.Before(due[j].Next)
	})

	results := make([]Result, 0, len(due))
	for _, job := range due {
		err := job.run(ctx)
		results = append(results, Result{Job: *job, Err: err})

		next, nextErr := gronx.NextTickAfter(job.Expr, now, false)
		if nextErr != nil {
			// Unreachable for expressions accepted by Add.
			next = job.Next.AddDate(0, 0, 7)
		}
		job.Next = next
	}
	return results
}

func (j *Job) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s job panicked: %v", j.Action, r)
		}
	}()

	if j.fn == nil {
		return nil
	}
	return j.fn(ctx)
}

// Jobs returns a copy of the table ordered by weekday and time.
func (s *Scheduler) Jobs() []Job {
	jobs := make([]Job, len(s.jobs))
	for i, job := range s.jobs {
		jobs[i] = *job
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].Weekday != jobs[j].Weekday {
			return jobs[i].Weekday < jobs[j].Weekday
		}
		return jobs[i].At.Before(jobs[j].At)
	})
	return jobs
}

// NextRun returns the earliest upcoming job, if any.
func (s *Scheduler) NextRun() (Job, bool) {
	var next *Job
	for _, job := range s.jobs {
		if next == nil || job.Next.Before(next.Next) {
			next = job
		}
	}
	if next == nil {
		return Job{}, false
	}
	return *next, true
}
