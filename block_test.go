package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_ZeroIsInvalid(t *testing.T) {
	ctx, _ := newTestContext(t)
	code := evalString(t, ctx, "0 BLOCK")
	assert.Equal(t, int(throwBlockBad), code)
}

func TestBlock_BufferStartsSpaceFilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.fb")
	ctx := New(WithOutput(io.Discard), WithBlockFile(path))
	mustEval(t, ctx, "1 BUFFER C@")
	assert.Equal(t, []Cell{' '}, dsContents(ctx))
}

func TestBlock_WriteUpdateSaveThenReloadPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.fb")

	ctx1 := New(WithOutput(io.Discard), WithBlockFile(path))
	mustEval(t, ctx1, "1 BLOCK")
	addr := dsContents(ctx1)[0]
	mustEval(t, ctx1, "65 "+itoa(addr)+" C!")
	mustEval(t, ctx1, "UPDATE SAVE-BUFFERS")
	require.NoError(t, ctx1.Close()) // releases the block file's exclusive lock

	ctx2 := New(WithOutput(io.Discard), WithBlockFile(path))
	mustEval(t, ctx2, "1 BLOCK C@")
	assert.Equal(t, []Cell{'A'}, dsContents(ctx2))
}

func TestBlocks_ReportsFileSizeInBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.fb")
	ctx := New(WithOutput(io.Discard), WithBlockFile(path))
	mustEval(t, ctx, "3 BLOCK DROP UPDATE SAVE-BUFFERS")
	mustEval(t, ctx, "blocks")
	require.Len(t, dsContents(ctx), 1)
	assert.Equal(t, Cell(3), dsContents(ctx)[0])
}

func TestBlock_EmptyBuffersForgetsCachedBlock(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.block.path = filepath.Join(t.TempDir(), "blocks.fb")
	mustEval(t, ctx, "1 BLOCK")
	mustEval(t, ctx, "EMPTY-BUFFERS")
	assert.Equal(t, blockFree, ctx.block.state)
	assert.Equal(t, 0, ctx.block.num)
}

// itoa renders a Cell as a decimal numeral parseable back by strnum,
// since these tests feed addresses computed at runtime back into source
// text rather than poking ctx.mem directly.
func itoa(c Cell) string {
	neg := c < 0
	if neg {
		c = -c
	}
	if c == 0 {
		return "0"
	}
	var buf [24]byte
	i := len(buf)
	for c > 0 {
		i--
		buf[i] = byte('0' + c%10)
		c /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
