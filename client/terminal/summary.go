package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/sporadisk/punchclock/client/toggl"
	"github.com/sporadisk/punchclock/format"
	"github.com/sporadisk/punchclock/schedule"
	"github.com/sporadisk/punchclock/workday"
)

func (c *Client) OutputSchedule(plan workday.Plan, jobs []schedule.Job, now time.Time) error {
	_, err := fmt.Fprint(c.Out, c.Schedule(plan, jobs, now))
	return err
}

// Schedule renders the plan and the weekly trigger table.
func (c *Client) Schedule(plan workday.Plan, jobs []schedule.Job, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("\n- Schedule / " + format.Timestamp(now) + " -\n")
	sb.WriteString("Plan: " + plan.String() + "\n\n")

	if len(jobs) == 0 {
		sb.WriteString("No triggers registered.\n")
		return sb.String()
	}

	for _, job := range jobs {
		sb.WriteString(fmt.Sprintf(" %-9s %s  %-5s  next %s (in %s)\n",
			job.Weekday.String(),
			job.At.Format(plan.Seconds),
			job.Action,
			job.Next.Format("2006-01-02 15:04:05"),
			format.DurationHM(job.Next.Sub(now)),
		))
	}

	return sb.String()
}

func (c *Client) OutputEntry(entry *toggl.TimeEntry, now time.Time) error {
	_, err := fmt.Fprint(c.Out, c.Entry(entry, now))
	return err
}

// Entry renders a running entry, or a note that nothing is running.
func (c *Client) Entry(entry *toggl.TimeEntry, now time.Time) string {
	if entry == nil {
		return "No entry is running.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Entry %d: %q\n", entry.ID, entry.Description))
	sb.WriteString("Started: " + entry.Start.In(now.Location()).Format("2006-01-02 15:04") + "\n")
	if entry.Running() {
		sb.WriteString("Running for " + format.DurationHM(now.Sub(entry.Start)) + "\n")
	}
	return sb.String()
}
