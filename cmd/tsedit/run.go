package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/command"
	"github.com/xonecas/tsedit/internal/diffview"
	"github.com/xonecas/tsedit/internal/treesitter"
)

type runOptions struct {
	point int
	line  int
	col   int
	mark  int
	write bool
	diff  bool
}

func (a *app) newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run <command> <file>",
		Short: "Run a refactoring command at a position in a file",
		Long: `Run a refactoring command with the cursor at --point (byte offset) or
--line/--col (1-based). --mark makes the region between mark and point the
selection. The result is printed to stdout unless --write is given.`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			var names []string
			for _, c := range command.NewTable().Commands() {
				names = append(names, c.Name+"\t"+c.Doc)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], args[1], opts)
		},
	}
	cmd.Flags().IntVar(&opts.point, "point", 0, "cursor byte offset")
	cmd.Flags().IntVar(&opts.line, "line", 0, "cursor line (1-based)")
	cmd.Flags().IntVar(&opts.col, "col", 1, "cursor column in bytes (1-based), with --line")
	cmd.Flags().IntVar(&opts.mark, "mark", -1, "selection mark byte offset")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff instead of the result")
	cmd.MarkFlagsMutuallyExclusive("point", "line")
	return cmd
}

func (a *app) run(cmd *cobra.Command, name, file string, opts runOptions) error {
	if _, ok := a.table.Lookup(name); !ok {
		return fmt.Errorf("unknown command %q (see %q)", name, "tsedit list")
	}

	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	before := string(data)

	b := buffer.New(before,
		buffer.WithPath(file),
		buffer.WithParser(treesitter.ParserFor(file)),
		buffer.WithIndenter(buffer.BraceIndenter{Unit: a.cfg.Indent.Unit()}),
	)
	if opts.line > 0 {
		start := b.LineStart(opts.line - 1)
		b.SetPoint(min(start+max(opts.col-1, 0), b.LineEnd(opts.line-1)))
	} else {
		b.SetPoint(opts.point)
	}
	if opts.mark >= 0 {
		b.SetMark(opts.mark)
	}
	if !b.HasParser() {
		log.Debug().Str("file", file).Msg("no grammar for file; tree commands will fail")
	} else if tree, err := treesitter.Parse(file, data); err == nil {
		if tree.HasError() {
			log.Warn().Str("file", file).Msg("file has syntax errors; results may be partial")
		}
		tree.Close()
	}

	if err := a.table.Run(name, &command.Context{Buffer: b, Funcs: a.logFuncs()}); err != nil {
		return err
	}
	after := b.Text()

	out := cmd.OutOrStdout()
	switch {
	case opts.diff:
		d := diffview.Unified(file, before, after)
		if a.color {
			d = diffview.Colorize(d, a.cfg.UI.SyntaxThemeOrDefault())
		}
		fmt.Fprint(out, d)
	case !opts.write:
		fmt.Fprint(out, after)
	}

	if !opts.write {
		return nil
	}
	if after == before {
		fmt.Fprintln(cmd.ErrOrStderr(), a.styles.muted(fmt.Sprintf("%s: %s unchanged", name, file)))
		return nil
	}

	if err := a.writeFile(file, []byte(after), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	j, err := a.openJournal()
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable; rewrite cannot be undone")
	}
	defer j.Close()
	if err := j.Record(file, name, data); err != nil {
		log.Warn().Err(err).Str("file", file).Msg("failed to record history")
	}
	j.Prune(a.cfg.History.KeepOrDefault())

	added, removed := diffview.Stats(diffview.Unified(file, before, after))
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
		a.styles.success(name),
		file,
		a.styles.muted(fmt.Sprintf("(+%d -%d)", added, removed)))
	return nil
}
