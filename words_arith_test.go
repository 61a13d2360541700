package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// §8's Law: "a b UM* b UM/MOD yields (0, a) when b != 0 and no overflow".
// 100000 * 100000 = 10,000,000,000, which overflows 32 bits (nonzero high
// cell), so this exercises the double-cell reassembly rather than just the
// low 32 bits.
func TestArith_UMStarThenUMSlashModRoundTrips(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "100000 100000 UM* 100000 UM/MOD")
	assert.Equal(t, []Cell{0, 100000}, dsContents(ctx), "remainder 0, quotient a")
}

func TestArith_UMSlashModHighWord(t *testing.T) {
	ctx, _ := newTestContext(t)
	// ud = 0x0000000300000001 (hi=3, lo=1), n = 2:
	// d = 3<<32 | 1 = 12884901889; 12884901889 / 2 = 6442450944 rem 1.
	mustEval(t, ctx, "1 3 2 UM/MOD")
	assert.Equal(t, []Cell{1, Cell(6442450944)}, dsContents(ctx))
}

func TestArith_SMSlashRemHighWord(t *testing.T) {
	ctx, _ := newTestContext(t)
	// Same double-cell dividend as above, signed divide.
	mustEval(t, ctx, "1 3 2 SM/REM")
	assert.Equal(t, []Cell{1, Cell(6442450944)}, dsContents(ctx))
}

func TestArith_UMStarHighWord(t *testing.T) {
	ctx, _ := newTestContext(t)
	mustEval(t, ctx, "100000 100000 UM*")
	assert.Equal(t, []Cell{Cell(1410065408), Cell(2)}, dsContents(ctx), "low cell, then high cell")
}
