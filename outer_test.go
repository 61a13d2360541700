package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestREPL_Arithmetic(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Cell
	}{
		{"add", "1 2 +", []Cell{3}},
		{"sub", "10 3 -", []Cell{7}},
		{"mul", "6 7 *", []Cell{42}},
		{"div", "13 3 /", []Cell{4}},
		{"mod", "13 3 MOD", []Cell{1}},
		{"stack shuffle", "1 2 SWAP", []Cell{2, 1}},
		{"dup drop identity", "5 DUP DROP", []Cell{5}},
		{"swap swap identity", "1 2 SWAP SWAP", []Cell{1, 2}},
		{"rstack roundtrip", "9 >R R>", []Cell{9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			mustEval(t, ctx, tc.src)
			assert.Equal(t, tc.want, dsContents(ctx))
		})
	}
}

func TestREPL_NumericBases(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Cell
	}{
		{"hex prefix", "$1F", 31},
		{"0x prefix", "0x1F", 31},
		{"binary prefix", "%101", 5},
		{"decimal prefix", "#42", 42},
		{"negative", "-7", -7},
		{"char literal", "'A'", 'A'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			mustEval(t, ctx, tc.src)
			require.Equal(t, []Cell{tc.want}, dsContents(ctx))
		})
	}
}

func TestREPL_EmitWritesOutput(t *testing.T) {
	ctx, out := newTestContext(t)
	mustEval(t, ctx, "65 EMIT 66 EMIT")
	assert.Equal(t, "AB", out.String())
}

func TestREPL_UndefinedWordThrows(t *testing.T) {
	ctx, out := newTestContext(t)
	code := evalString(t, ctx, "FROBNICATE")
	assert.Equal(t, int(throwUndefined), code)
	assert.Contains(t, out.String(), "FROBNICATE")
	assert.Equal(t, []Cell{}, dsContents(ctx))
}

func TestREPL_SourceAndToInMirrorRealParserState(t *testing.T) {
	ctx, _ := newTestContext(t)
	const src = "1 2 +"
	ctx.pushString(t.Name(), src)

	// Drive one token through the parser manually and check that SOURCE
	// and >IN observe the live source buffer/cursor, not stale values.
	tok := ctx.parseName()
	require.Equal(t, "1", string(tok))

	// parse() consumes the trailing delimiter along with the token, so
	// >IN lands just past the space following "1".
	n, err := ctx.mem.Load(ctx.toInAddr)
	require.NoError(t, err)
	assert.Equal(t, 2, n, ">IN should report the cursor after parsing \"1\"")

	buf := make([]int, len(src))
	require.NoError(t, ctx.mem.LoadInto(ctx.srcBufAddr, buf))
	for i, c := range src {
		assert.Equal(t, int(c), buf[i], "SOURCE buffer byte %d", i)
	}

	tok = ctx.parseName()
	require.Equal(t, "2", string(tok))
	n, err = ctx.mem.Load(ctx.toInAddr)
	require.NoError(t, err)
	assert.Equal(t, 4, n, ">IN should have advanced past \"1 2\"")
}

func TestEvaluateNestsAndRestoresSource(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.pushString("outer", "41")
	before := ctx.in.current()

	ctx.evaluate("inner", "99")

	require.Equal(t, before, ctx.in.current(), "evaluate must restore the outer source")
	assert.Equal(t, []Cell{99}, dsContents(ctx), "EVALUATE shares the data stack with its caller")
	// the outer token "41" is still unparsed; parse it now that we're back.
	tok := ctx.parseName()
	require.Equal(t, "41", string(tok))
}

func TestREPL_DivideByZeroThrows(t *testing.T) {
	ctx, out := newTestContext(t)
	code := evalString(t, ctx, "1 0 /")
	assert.Equal(t, int(throwDivZero), code)
	assert.Contains(t, out.String(), throwDivZero.String())
}
