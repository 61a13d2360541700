package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrnum_Prefixes(t *testing.T) {
	cases := []struct {
		name string
		str  string
		base int
		want Cell
	}{
		{"hex no prefix at base 16", "1F", 16, 31},
		{"dollar hex overrides base", "$1F", 10, 31},
		{"0x hex overrides base", "0x1F", 10, 31},
		{"percent binary overrides base", "%101", 10, 5},
		{"hash decimal overrides base", "#42", 16, 42},
		{"octal prefix", "0-7", 10, -7},
		{"bare negative", "-7", 10, -7},
		{"alpha digits at base 36", "abc", 36, 13368},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := strnum(tc.str, tc.base)
			require.Equal(t, len(tc.str), r.n, "strnum should consume the whole numeral")
			assert.False(t, r.isFloat)
			assert.Equal(t, tc.want, r.i)
		})
	}
}

func TestStrnum_CharLiterals(t *testing.T) {
	r := strnum("'A'", 10)
	require.Equal(t, 3, r.n)
	assert.Equal(t, Cell('A'), r.i)

	r = strnum(`'\n'`, 10)
	require.Equal(t, 4, r.n)
	assert.Equal(t, Cell(escapeLiteral('n')), r.i)
}

func TestStrnum_FloatAtBase10(t *testing.T) {
	r := strnum("3.14", 10)
	require.Equal(t, 4, r.n)
	require.True(t, r.isFloat)
	assert.InDelta(t, 3.14, r.f, 1e-9)
}

func TestStrnum_ShortConsumeOnTrailingGarbage(t *testing.T) {
	r := strnum("12x", 10)
	assert.Less(t, r.n, 3, "a trailing non-digit must leave the numeral short (§8's left-total law)")
}

func TestStrnum_FloatAtNonDecimalBaseSetsBadBase(t *testing.T) {
	r := strnum("1.5", 16)
	assert.True(t, r.badBase)
	assert.Zero(t, r.n)
}

func TestParseNumber_RejectsPartialConsumption(t *testing.T) {
	ctx, _ := newTestContext(t)
	_, ok := ctx.parseNumber("12x")
	assert.False(t, ok)
}

func TestREPL_BaseChangeAffectsSubsequentNumerals(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "16 BASE !")
	mustEval(t, ctx, "1F")
	assert.Equal(t, []Cell{31}, dsContents(ctx))
}

func TestREPL_FloatLiteralAtNonDecimalBaseThrowsBadBase(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "16 BASE !")
	code := evalString(t, ctx, "1.5")
	assert.Equal(t, int(throwBadBase), code)
}
