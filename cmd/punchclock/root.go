package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sporadisk/punchclock/driver"
	"github.com/sporadisk/punchclock/message"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "punchclock",
		Short: "Starts and stops Toggl Track entries on a weekday schedule",
		Long: `punchclock starts a Toggl Track time entry in the morning and the afternoon
and stops it before lunch and at the end of the day, Monday to Friday. Times
are jittered by a few minutes and descriptions are picked at random from
start_messages.txt and end_messages.txt.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default .punchclock.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.testMode, "test", false, "Compress the schedule into seconds and log at debug level")

	rootCmd.AddCommand(newScheduleCmd(opts))
	rootCmd.AddCommand(newStartCmd(opts))
	rootCmd.AddCommand(newStopCmd(opts))
	rootCmd.AddCommand(newLoginCmd(opts))

	return rootCmd
}

func runDaemon(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	a, err := newApp(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	poll, err := a.conf.PollInterval(opts.testMode)
	if err != nil {
		return fmt.Errorf("conf.PollInterval: %w", err)
	}

	now := a.now()
	plan := a.plan(now)
	sched, err := a.scheduler(plan, now)
	if err != nil {
		return err
	}

	if a.conf.Messages.Watch {
		go func() {
			err := a.store.Watch(ctx)
			if err != nil {
				a.logger.Error("watching message files failed", "error", err)
			}
		}()
	}

	d := &driver.Driver{
		Plan:         plan,
		Scheduler:    sched,
		Tracker:      a.client,
		Logger:       a.logger,
		Now:          a.now,
		PollInterval: poll,
		AdoptRunning: a.conf.AdoptRunning,
	}

	a.logger.Info("punchclock started",
		"workspace", a.conf.WorkspaceID,
		"startMessages", a.store.Pool(message.KindStart).Len(),
		"endMessages", a.store.Pool(message.KindEnd).Len(),
		"poll", poll.String(),
		"timezone", a.loc.String(),
		"at", now.Format(time.DateTime))

	return d.Run(ctx)
}
