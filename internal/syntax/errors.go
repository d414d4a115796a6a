package syntax

import "errors"

// User-facing failures. Each aborts the command before any edit is made.
var (
	ErrNoParserAvailable = errors.New("no syntax tree available for this buffer")
	ErrNotOnString       = errors.New("point is not on a string")
	ErrNotInString       = errors.New("point is not in a string")
	ErrNoFunctionAtPoint = errors.New("no function at point")

	// ErrNoSuitableNode is non-fatal: callers receive a best-effort result
	// alongside it.
	ErrNoSuitableNode = errors.New("no suitable node at point")
)
