package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwind_AbortClassResetsDataAndFloatStacks(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.push(ctx.ds, 1)
	ctx.push(ctx.ds, 2)
	ctx.fpush(3.5)
	ctx.unwind(throwAbort)
	assert.Equal(t, 0, ctx.ds.depth())
	assert.Equal(t, 0, len(ctx.fs.cells))
}

func TestUnwind_AbortClassAlsoResetsReturnStack(t *testing.T) {
	// §4.7: ABORT-class resets data and float stacks, then falls through
	// into QUIT-class's return-stack reset.
	for _, code := range []throwCode{throwAbort, throwAbortMsg, throwDSOver, throwDSUnder, throwFSOver, throwFSUnder} {
		ctx, _ := newTestContext(t)
		ctx.push(ctx.ds, 1)
		ctx.push(ctx.rs, 9)
		ctx.fpush(3.5)
		ctx.unwind(code)
		assert.Equal(t, 0, ctx.ds.depth(), "code %v must reset the data stack", code)
		assert.Equal(t, 0, len(ctx.fs.cells), "code %v must reset the float stack", code)
		assert.Equal(t, 0, ctx.rs.depth(), "code %v must also reset the return stack", code)
	}
}

func TestUnwind_QuitClassResetsOnlyReturnStack(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.push(ctx.ds, 1)
	ctx.push(ctx.ds, 2)
	ctx.push(ctx.rs, 9)
	ctx.unwind(throwQuit)
	assert.Equal(t, []Cell{1, 2}, dsContents(ctx), "QUIT-class unwind preserves the data stack")
	assert.Equal(t, 0, ctx.rs.depth())
}

func TestUnwind_DefaultCategoryResetsNeitherStack(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.push(ctx.ds, 1)
	ctx.push(ctx.rs, 9)
	ctx.unwind(throwDivZero)
	assert.Equal(t, []Cell{1}, dsContents(ctx))
	assert.Equal(t, 1, ctx.rs.depth())
}

func TestUnwind_AbandonsHiddenDefinitionInProgress(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, ": BAD")
	require.NotZero(t, ctx.latest)
	require.True(t, ctx.wordBits(ctx.latest).has(bitHidden))

	ctx.unwind(throwAbort)
	assert.Zero(t, ctx.findName("BAD"), "an unwind mid-definition must abandon the half-compiled word")
	assert.Equal(t, stateInterpret, ctx.state)
}

func TestUnwind_SuppressesDiagnosticForOKAbortQuit(t *testing.T) {
	ctx, out := newTestContext(t)
	for _, code := range []throwCode{0, throwAbort, throwAbortMsg, throwQuit} {
		out.Reset()
		ctx.unwind(code)
		assert.Empty(t, out.String(), "code %v must not print a diagnostic", code)
	}
}

func TestUnwind_ReportsOtherCodes(t *testing.T) {
	ctx, out := newTestContext(t)
	ctx.unwind(throwDivZero)
	assert.Contains(t, out.String(), throwDivZero.String())
	assert.Contains(t, out.String(), "-10")
}

func TestCatch_RestoresStackDepthsOnThrow(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.push(ctx.ds, 1)
	code := ctx.catch(func() {
		ctx.push(ctx.ds, 2)
		ctx.push(ctx.ds, 3)
		ctx.throw(throwUndefined)
	})
	assert.Equal(t, throwUndefined, code)
	assert.Equal(t, []Cell{1}, dsContents(ctx), "catch must restore the depth it saw on entry")
}

func TestCatch_ReturnsZeroOnNormalCompletion(t *testing.T) {
	ctx, _ := newTestContext(t)
	code := ctx.catch(func() { ctx.push(ctx.ds, 1) })
	assert.Equal(t, throwCode(0), code)
	assert.Equal(t, []Cell{1}, dsContents(ctx))
}

func TestRun_ReportsLastThrowCodeAsExitCode(t *testing.T) {
	ctx, _ := newTestContext(t)
	code := evalString(t, ctx, "1 0 / 2 0 /")
	assert.Equal(t, int(throwDivZero), code)
}
