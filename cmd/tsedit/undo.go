package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newUndoCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "undo <file>",
		Short: "Restore a file to its content before the last written command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			j, err := a.openJournal()
			if err != nil {
				return err
			}
			if j == nil {
				return errors.New("history is disabled in the configuration")
			}
			defer j.Close()

			if list {
				entries, err := j.Entries(file)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
						a.styles.muted(e.Created.Format("2006-01-02 15:04:05")), e.Command)
				}
				return nil
			}

			e, err := j.Undo(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
				a.styles.success("restored"), file, a.styles.muted("(undid "+e.Command+")"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list recorded rewrites instead of undoing")
	return cmd
}
