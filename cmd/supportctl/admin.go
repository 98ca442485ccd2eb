package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func isAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "is-admin <uid>",
		Short: "Report whether a uid holds admin privileges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), a.admins.IsPrivileged(cmd.Context(), args[0]))
			return nil
		},
	}
}
