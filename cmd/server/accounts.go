package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/99minutos/decision-service/internal/infrastructure/credentials"
)

func newAccountsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the configured login accounts and their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = os.Getenv("ACCOUNTS_FILE")
			}
			store, err := credentials.Load(file)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USUARIO\tTIPO")
			for _, a := range store.Accounts() {
				fmt.Fprintf(w, "%s\t%s\n", a.Identifier, a.Role)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "accounts YAML file (defaults to $ACCOUNTS_FILE, then the built-in accounts)")
	return cmd
}
