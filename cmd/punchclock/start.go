package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sporadisk/punchclock/client/terminal"
)

func newStartCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a running entry now, with a random start description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			// Pick up the remote running entry so that Begin stops it first.
			running, err := a.client.CurrentEntry(ctx)
			if err != nil {
				return fmt.Errorf("CurrentEntry: %w", err)
			}
			a.client.Adopt(running)

			err = a.client.Begin(ctx)
			if err != nil {
				return fmt.Errorf("Begin: %w", err)
			}

			term := &terminal.Client{Out: cmd.OutOrStdout()}
			err = term.Init()
			if err != nil {
				return err
			}
			return term.OutputEntry(a.client.Current(), a.now())
		},
	}
}
