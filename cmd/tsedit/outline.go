package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xonecas/tsedit/internal/treesitter"
)

func (a *app) newOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <file>",
		Short: "List the function-like symbols of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := treesitter.ParseFile(args[0])
			if err != nil {
				return err
			}
			defer tree.Close()

			syms := tree.Outline()
			if len(syms) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), a.styles.muted("no functions in "+args[0]))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), treesitter.FormatOutline(syms))
			return nil
		},
	}
}
