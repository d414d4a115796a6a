// Package command exposes the refactoring operations as named, stateless
// commands. A Table is built once at setup and handed to whatever binds keys
// or parses arguments; no state is kept between invocations.
package command

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/tsedit/internal/buffer"
	"github.com/xonecas/tsedit/internal/locate"
	"github.com/xonecas/tsedit/internal/syntax"
	"github.com/xonecas/tsedit/internal/transform"
)

// Context is the state a command runs against.
type Context struct {
	Buffer *buffer.Buffer
	Funcs  transform.LogFuncs
}

// Command is one invokable operation.
type Command struct {
	Name string
	Doc  string
	Key  string
	Run  func(*Context) error
}

// Table holds the available commands in display order.
type Table struct {
	cmds   []Command
	byName map[string]int
}

// NewTable returns the command table with default key bindings.
func NewTable() *Table {
	t := &Table{byName: make(map[string]int)}
	for _, c := range []Command{
		{"log-this", "Log the expression at point or the selection", "C-c l", LogThis(transform.LogPlain)},
		{"log-this-pretty", "Log a label and a deep dump of the expression", "C-c L", LogThis(transform.LogPretty)},
		{"debug-this", "Log the expression at debug level", "C-c d", LogThis(transform.LogDebug)},
		{"move-line-down", "Move the line down, fixing list commas", "M-<down>", buffered(transform.MoveLineDown)},
		{"move-line-up", "Move the line up, fixing list commas", "M-<up>", buffered(transform.MoveLineUp)},
		{"string-to-template", "Convert the string at point to a template string", "C-c `", buffered(transform.StringToTemplate)},
		{"split-or-join-string", "Split the string at point, or join it with its neighbour", "C-c s", buffered(transform.SplitOrJoinString)},
		{"toggle-function-async", "Add or remove async on the enclosing function", "C-c a", buffered(transform.ToggleAsync)},
		{"toggle-arrow-function", "Convert between arrow function and function expression", "C-c f", buffered(transform.ToggleArrowFunction)},
	} {
		t.byName[c.Name] = len(t.cmds)
		t.cmds = append(t.cmds, c)
	}
	return t
}

// Commands returns a copy of the table in display order.
func (t *Table) Commands() []Command {
	out := make([]Command, len(t.cmds))
	copy(out, t.cmds)
	return out
}

// Lookup finds a command by name.
func (t *Table) Lookup(name string) (Command, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Command{}, false
	}
	return t.cmds[i], true
}

// Bind overrides key bindings by command name. Unknown commands and keys
// bound twice are rejected and leave the table unchanged.
func (t *Table) Bind(keys map[string]string) error {
	next := make([]Command, len(t.cmds))
	copy(next, t.cmds)

	var errs []error
	for name, key := range keys {
		i, ok := t.byName[name]
		if !ok {
			errs = append(errs, fmt.Errorf("keys.%s: unknown command", name))
			continue
		}
		next[i].Key = key
	}

	seen := make(map[string]string)
	for _, c := range next {
		if other, dup := seen[c.Key]; dup {
			errs = append(errs, fmt.Errorf("key %q bound to both %s and %s", c.Key, other, c.Name))
		}
		seen[c.Key] = c.Name
	}
	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
		return errors.Join(errs...)
	}
	t.cmds = next
	return nil
}

// Keymap returns key -> command name for the host's binding mechanism.
func (t *Table) Keymap() map[string]string {
	m := make(map[string]string, len(t.cmds))
	for _, c := range t.cmds {
		m[c.Key] = c.Name
	}
	return m
}

// Run executes the named command.
func (t *Table) Run(name string, ctx *Context) error {
	c, ok := t.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	logger := log.With().Str("command", name).Str("file", ctx.Buffer.Path()).Logger()
	logger.Debug().Int("point", ctx.Buffer.Point()).Msg("running command")

	if err := c.Run(ctx); err != nil {
		logger.Debug().Err(err).Msg("command aborted")
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug().Int("point", ctx.Buffer.Point()).Msg("command done")
	return nil
}

func buffered(op func(*buffer.Buffer) error) func(*Context) error {
	return func(ctx *Context) error {
		return op(ctx.Buffer)
	}
}

// LogThis resolves the log target at point and inserts log statements in
// the given style.
func LogThis(style transform.LogStyle) func(*Context) error {
	return func(ctx *Context) error {
		target, err := locate.ResolveLogTarget(ctx.Buffer)
		switch {
		case errors.Is(err, syntax.ErrNoSuitableNode):
			log.Warn().Str("expr", target.Expr).Msg("no suitable node at point, logging fallback")
		case err != nil:
			return err
		}
		if err := transform.InsertLog(ctx.Buffer, target, style, ctx.Funcs); err != nil {
			return err
		}
		// The selection has been consumed.
		ctx.Buffer.Deactivate()
		return nil
	}
}
