package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sporadisk/punchclock/config"
)

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store the account password or API token in the OS keyring",
		Long: `Reads a secret from standard input and stores it in the OS keyring under the
configured email. Enable useKeyring in the config file to use it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadUnresolved(opts.configPath)
			if err != nil {
				return fmt.Errorf("config.LoadUnresolved: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Secret for %s: ", conf.Email)
			secret, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			secret = strings.TrimSpace(secret)
			if secret == "" {
				if err != nil {
					return fmt.Errorf("reading secret: %w", err)
				}
				return fmt.Errorf("empty secret")
			}

			err = config.StoreSecret(conf.Email, secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nStored.")
			return nil
		},
	}
}
