package main

import (
	"os"

	"golang.org/x/term"
)

// enterRawModeImpl switches the controlling terminal into raw mode for the
// duration of a single-key read (KEY/KEY?), per §4.8/§5. It returns a
// restore func; when the active input isn't backed by a real terminal (a
// file or a pipe in test harnesses), it is a no-op.
func enterRawModeImpl(ctx *Context) func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}
	}
	ctx.signals.termRestore = func() { _ = term.Restore(fd, state) }
	return func() {
		if ctx.signals.termRestore != nil {
			_ = term.Restore(fd, state)
			ctx.signals.termRestore = nil
		}
	}
}

// termGetSize queries the controlling terminal's current size, feeding the
// process-global size record that windowSize returns (updated on
// SIGWINCH; see signals.go).
func termGetSize() (cols, rows int) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0
	}
	return w, h
}
