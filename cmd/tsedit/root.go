package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/tsedit/internal/command"
	"github.com/xonecas/tsedit/internal/config"
	"github.com/xonecas/tsedit/internal/constants"
	"github.com/xonecas/tsedit/internal/diffview"
	"github.com/xonecas/tsedit/internal/history"
	"github.com/xonecas/tsedit/internal/transform"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries the state shared by subcommands for one invocation.
type app struct {
	cfgFile  string
	logLevel string
	color    bool

	cfg    *config.Config
	table  *command.Table
	styles styles

	writeFile func(name string, data []byte, perm os.FileMode) error
}

func newApp() *app {
	return &app{
		styles:    newStyles(diffview.ThemePalette(constants.SyntaxTheme), false),
		writeFile: os.WriteFile,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   constants.AppName,
		Short: "Syntax-aware refactoring for TypeScript and JavaScript",
		Long: `tsedit performs structural edits on TypeScript and JavaScript source:
log-statement insertion, list-aware line moves, string/template conversion,
string split and join, async toggling and arrow/function conversion.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "diagnostics level (debug|info|warn|error)")
	root.PersistentFlags().BoolVar(&a.color, "color", false, "colourise output")

	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newOutlineCmd())
	root.AddCommand(a.newUndoCmd())
	return root
}

// setup loads configuration, installs the logger and builds the command table.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := a.logLevel
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	level := zerolog.WarnLevel
	if levelName != "" {
		if level, err = zerolog.ParseLevel(levelName); err != nil {
			return fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		TimeFormat: time.Kitchen,
		NoColor:    !a.color,
	}).Level(level).With().Timestamp().Logger()

	a.table = command.NewTable()
	if err := a.table.Bind(cfg.Keys); err != nil {
		return fmt.Errorf("config keys: %w", err)
	}

	a.styles = newStyles(diffview.ThemePalette(cfg.UI.SyntaxThemeOrDefault()), a.color)
	log.Debug().Str("config", a.cfgFile).Str("level", level.String()).Msg("configured")
	return nil
}

func (a *app) logFuncs() transform.LogFuncs {
	return transform.LogFuncs{
		Log:   a.cfg.Log.FunctionOrDefault(),
		Debug: a.cfg.Log.DebugFunctionOrDefault(),
		Dir:   a.cfg.Log.PrettyFunctionOrDefault(),
	}
}

// openJournal returns nil when history is disabled.
func (a *app) openJournal() (*history.Journal, error) {
	if a.cfg.History.Disabled {
		return nil, nil
	}
	path, err := a.cfg.History.PathOrDefault()
	if err != nil {
		return nil, fmt.Errorf("history path: %w", err)
	}
	return history.Open(path)
}
