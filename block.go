package main

import (
	"fmt"
	"os"
	"syscall"
)

// blockSize is the fixed record size of the block file, per §4.9/§6.
const blockSize = 1024

// blockBufState tracks the one block buffer's relationship to the file,
// per §4.9: free (nothing loaded), clean (loaded, unmodified), dirty
// (modified, not yet written back).
type blockBufState int

const (
	blockFree blockBufState = iota
	blockClean
	blockDirty
)

// blockState is the context's block-I/O half: the open file (if any),
// the single buffer's bookkeeping, and the separate ALLOCATEd-heap table
// (words_mem.go) that, per §4.6, MARKER never frees.
type blockState struct {
	file  *os.File
	path  string
	state blockBufState
	num   int

	heap []heapBlock
}

// WithBlockFile records the block file's path; the file itself is opened
// lazily on first use by BLOCK, BUFFER or blocks, not here.
func WithBlockFile(path string) ContextOption {
	return ctxOptionFunc(func(ctx *Context) {
		ctx.block.path = path
	})
}

// ensureBlockFile opens the block file on first use, trying the given
// path then, if that cannot be opened or locked, the original's
// HOME-directory fallback (post4.c's p4BlockOpen).
func (ctx *Context) ensureBlockFile() {
	if ctx.block.file != nil {
		return
	}
	if ctx.block.path == "" {
		ctx.block.path = "blocks.fb"
	}
	f, err := tryLockBlockFile(ctx.block.path)
	if err != nil {
		if home := os.Getenv("HOME"); home != "" {
			alt := home + "/" + ctx.block.path
			f, err = tryLockBlockFile(alt)
			if err == nil {
				ctx.block.path = alt
			}
		}
	}
	if err != nil {
		ctx.throwf(throwBlockBad, "block file %s: %v", ctx.block.path, err)
	}
	ctx.block.file = f
	ctx.closers = append(ctx.closers, f)
}

// tryLockBlockFile opens path for read/write (creating it if absent) and
// takes a non-blocking advisory exclusive lock, reporting the original's
// "already in use" wording on conflict.
func tryLockBlockFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: already in use", path)
	}
	return f, nil
}

// blockGrow pads the block file with space-filled blocks up through n,
// per §4.9's "grown on write to a multiple of block size" contract.
func (ctx *Context) blockGrow(n int) {
	need := int64(n) * blockSize
	fi, err := ctx.block.file.Stat()
	if err != nil {
		ctx.throwf(throwBlockWrite, "stat: %v", err)
	}
	if fi.Size() >= need {
		return
	}
	pad := make([]byte, blockSize)
	for i := range pad {
		pad[i] = ' '
	}
	for off := fi.Size() / blockSize * blockSize; off < need; off += blockSize {
		if _, err := ctx.block.file.WriteAt(pad, off); err != nil {
			ctx.throwf(throwBlockWrite, "grow: %v", err)
		}
	}
}

// flushBlock writes the current buffer back to the file if dirty.
func (ctx *Context) flushBlock() {
	if ctx.block.state != blockDirty {
		return
	}
	buf := make([]int, blockSize)
	if err := ctx.mem.LoadInto(ctx.blockBufAddr, buf); err != nil {
		ctx.throwf(throwBlockWrite, "%v", err)
	}
	b := make([]byte, blockSize)
	for i, c := range buf {
		b[i] = byte(c)
	}
	ctx.blockGrow(ctx.block.num)
	if _, err := ctx.block.file.WriteAt(b, int64(ctx.block.num-1)*blockSize); err != nil {
		ctx.throwf(throwBlockWrite, "%v", err)
	}
	ctx.block.state = blockClean
}

// loadBlock reads block n from the file into the buffer, evicting
// (and, if dirty, flushing) whatever was loaded before.
func (ctx *Context) loadBlock(n int, withRead bool) uint {
	if n <= 0 {
		ctx.throw(throwBlockBad)
	}
	ctx.ensureBlockFile()
	if ctx.block.num != n || ctx.block.state == blockFree {
		ctx.flushBlock()
		b := make([]byte, blockSize)
		for i := range b {
			b[i] = ' '
		}
		if withRead {
			ctx.blockGrow(n)
			if _, err := ctx.block.file.ReadAt(b, int64(n-1)*blockSize); err != nil {
				ctx.throwf(throwBlockRead, "%v", err)
			}
		}
		cells := make([]int, blockSize)
		for i, c := range b {
			cells[i] = int(c)
		}
		if err := ctx.mem.Stor(ctx.blockBufAddr, cells...); err != nil {
			ctx.throwf(throwInvalidMemoryAddress, "%v", err)
		}
		ctx.block.num = n
		ctx.block.state = blockClean
	}
	if err := ctx.mem.Stor(ctx.blkNumAddr, Cell(n)); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "%v", err)
	}
	return ctx.blockBufAddr
}

// blockPrims implements the Blocks group: BLK BLOCK BUFFER blocks UPDATE
// SAVE-BUFFERS EMPTY-BUFFERS, grounded on post4.c's p4Block* family.
func blockPrims() []primDef {
	return []primDef{
		{name: "BLK", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(ctx.blkNumAddr)) }},
		{name: "BLOCK", fn: func(ctx *Context) {
			n := int(ctx.pop(ctx.ds))
			ctx.push(ctx.ds, Cell(ctx.loadBlock(n, true)))
		}},
		{name: "BUFFER", fn: func(ctx *Context) {
			n := int(ctx.pop(ctx.ds))
			ctx.push(ctx.ds, Cell(ctx.loadBlock(n, false)))
		}},
		{name: "blocks", fn: func(ctx *Context) {
			ctx.ensureBlockFile()
			fi, err := ctx.block.file.Stat()
			if err != nil {
				ctx.throwf(throwBlockBad, "%v", err)
			}
			ctx.push(ctx.ds, Cell(fi.Size()/blockSize))
		}},
		{name: "UPDATE", fn: func(ctx *Context) {
			if ctx.block.state != blockFree {
				ctx.block.state = blockDirty
			}
		}},
		{name: "SAVE-BUFFERS", fn: func(ctx *Context) { ctx.flushBlock() }},
		{name: "EMPTY-BUFFERS", fn: func(ctx *Context) {
			ctx.block.state = blockFree
			ctx.block.num = 0
		}},
	}
}
