package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sporadisk/punchclock/client/terminal"
	"github.com/sporadisk/punchclock/console"
)

func newStopCmd(opts *options) *cobra.Command {
	var id int64
	var yes bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running entry, or the entry given by --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			term := &terminal.Client{Out: cmd.OutOrStdout()}
			err = term.Init()
			if err != nil {
				return err
			}

			if id == 0 {
				running, err := a.client.CurrentEntry(ctx)
				if err != nil {
					return fmt.Errorf("CurrentEntry: %w", err)
				}
				err = term.OutputEntry(running, a.now())
				if err != nil {
					return err
				}
				if running == nil {
					return nil
				}
				id = running.ID
			}

			if !yes && !console.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Stop entry %d?", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			err = a.client.StopByID(ctx, id)
			if err != nil {
				return fmt.Errorf("StopByID: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped entry %d.\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "ID of the entry to stop (default: the running entry)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
