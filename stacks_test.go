package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tinyStackContext builds a Context with 2-cell data, return and float
// stacks so overflow/underflow are reachable in a few ops.
func tinyStackContext(t *testing.T) *Context {
	t.Helper()
	ctx := New(WithStackSizes(2, 2, 2))
	return ctx
}

func TestStack_OverflowThrows(t *testing.T) {
	ctx := tinyStackContext(t)
	code := evalString(t, ctx, "1 2 3")
	assert.Equal(t, int(throwDSOver), code)
}

func TestStack_UnderflowThrows(t *testing.T) {
	ctx := tinyStackContext(t)
	code := evalString(t, ctx, "DROP")
	assert.Equal(t, int(throwDSUnder), code)
}

func TestStack_ReturnStackUnderflowThrows(t *testing.T) {
	ctx := tinyStackContext(t)
	code := evalString(t, ctx, "R>")
	assert.Equal(t, int(throwRSUnder), code)
}

func TestStack_PickAndRoll(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "1 2 3 2 PICK")
	assert.Equal(t, []Cell{1, 2, 3, 1}, dsContents(ctx))

	ctx2, _ := newTestContext(t)
	mustEval(t, ctx2, "1 2 3 2 ROLL")
	assert.Equal(t, []Cell{2, 3, 1}, dsContents(ctx2))
}

func TestStack_RollZeroIsNoop(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "1 2 3 0 ROLL")
	assert.Equal(t, []Cell{1, 2, 3}, dsContents(ctx))
}

func TestStack_ToRFromRRoundtrip(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "9 >R R>")
	assert.Equal(t, []Cell{9}, dsContents(ctx))
	assert.Equal(t, 0, ctx.rs.depth())
}

func TestStack_DSOverThrowResetsDataStack(t *testing.T) {
	// DS-OVER is ABORT-class: after unwind the data stack is reset to
	// empty, discarding whatever fit before the overflowing push.
	ctx := New(WithStackSizes(1, defaultRSSize, defaultFSSize))
	code := evalString(t, ctx, "1 2")
	assert.Equal(t, int(throwDSOver), code)
	assert.Equal(t, []Cell{}, dsContents(ctx))
}
