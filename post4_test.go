package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestContext builds a Context with an in-memory output buffer and only
// New's default empty terminal source pushed, in the teacher's own style of constructing a
// fresh VM per test via functional options (see gothird's vmTest helper).
func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := New(WithOutput(&out))
	return ctx, &out
}

// evalString evaluates src as a single string input source and returns the
// THROW code run() reported (0 on normal completion). Output stays in
// whatever writer ctx was built with.
func evalString(t *testing.T, ctx *Context, src string) int {
	t.Helper()
	ctx.pushString(t.Name(), src)
	return ctx.run()
}

// mustEval evaluates src and fails the test if it did not complete cleanly.
func mustEval(t *testing.T, ctx *Context, src string) {
	t.Helper()
	code := evalString(t, ctx, src)
	require.Zero(t, code, "expected %q to evaluate without throwing", src)
}

// dsContents returns the live data stack as a plain slice, bottom first.
func dsContents(ctx *Context) []Cell {
	out := make([]Cell, len(ctx.ds.cells))
	copy(out, ctx.ds.cells)
	return out
}
