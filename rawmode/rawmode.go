// Package rawmode provides an RAII-style guard over terminal raw mode, so
// interactive callers always restore the terminal's prior state even on an
// early return or panic recovery path.
package rawmode

import (
	"fmt"

	"golang.org/x/term"
)

// Guard holds a terminal's prior state, acquired by Acquire and released by
// Release. The zero Guard is not acquired.
type Guard struct {
	fd       int
	oldState *term.State
}

// Acquire puts the terminal at fd into raw mode and returns a Guard that
// restores it on Release. It is a no-op error if fd is not a terminal.
func Acquire(fd int) (*Guard, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("rawmode: fd %d is not a terminal", fd)
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("rawmode: MakeRaw: %w", err)
	}
	return &Guard{fd: fd, oldState: oldState}, nil
}

// Release restores the terminal to the state it was in before Acquire. It is
// safe to call more than once; subsequent calls are no-ops.
func (g *Guard) Release() error {
	if g == nil || g.oldState == nil {
		return nil
	}
	err := term.Restore(g.fd, g.oldState)
	g.oldState = nil
	if err != nil {
		return fmt.Errorf("rawmode: Restore: %w", err)
	}
	return nil
}
