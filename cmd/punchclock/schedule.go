package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sporadisk/punchclock/client/terminal"
	"github.com/sporadisk/punchclock/workday"
)

func newScheduleCmd(opts *options) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the trigger table this process would use",
		Long: `Computes a plan the same way the daemon does and prints the weekly trigger
table. Set PUNCHCLOCK_SEED to get the same plan the daemon will compute.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			now := a.now()
			plan := a.plan(now)
			sched, err := a.scheduler(plan, now)
			if err != nil {
				return err
			}

			term := &terminal.Client{Out: cmd.OutOrStdout()}
			err = term.Init()
			if err != nil {
				return err
			}
			err = term.OutputSchedule(plan, sched.Jobs(), now)
			if err != nil {
				return err
			}

			if at != "" {
				c, err := workday.ParseClock(at)
				if err != nil {
					return fmt.Errorf("workday.ParseClock: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWorking at %s: %t\n", c.Format(plan.Seconds), plan.Working(c.On(now)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Also report whether HH:MM[:SS] today falls inside a working window")
	return cmd
}
