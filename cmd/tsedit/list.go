package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List commands and their key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.styles.title(pad("COMMAND", 24)+pad("KEY", 12)+"DESCRIPTION"))
			for _, c := range a.table.Commands() {
				fmt.Fprintln(out, pad(c.Name, 24)+a.styles.success(pad(c.Key, 12))+a.styles.muted(c.Doc))
			}
			return nil
		},
	}
}
