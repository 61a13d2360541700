package main

import "strings"

// headerCells is the number of cells occupied by a word's fixed header,
// ahead of its data[]: prev, name (symbol id), bits, code, ndata.
const headerCells = 5

const (
	hPrev = iota
	hName
	hBits
	hCode
	hNData
)

// Word is an execution token: the address of a word's header in the
// context's arena. The zero Word is never a valid header address (the
// arena's base is always > 0), so it doubles as "not found".
type Word uint

// Data returns the address of this word's data[0].
func (w Word) Data() uint { return uint(w) + headerCells }

func (ctx *Context) wordField(w Word, field int) Cell {
	v, err := ctx.mem.Load(uint(w) + uint(field))
	if err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "word header read: %v", err)
	}
	return v
}

func (ctx *Context) setWordField(w Word, field int, v Cell) {
	if err := ctx.mem.Stor(uint(w)+uint(field), v); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "word header write: %v", err)
	}
}

func (ctx *Context) wordPrev(w Word) Word   { return Word(ctx.wordField(w, hPrev)) }
func (ctx *Context) wordBits(w Word) wordBits { return wordBits(ctx.wordField(w, hBits)) }
func (ctx *Context) wordCode(w Word) opCode   { return opCode(ctx.wordField(w, hCode)) }
func (ctx *Context) wordNData(w Word) uint    { return uint(ctx.wordField(w, hNData)) }

func (ctx *Context) setWordBits(w Word, b wordBits)  { ctx.setWordField(w, hBits, Cell(b)) }
func (ctx *Context) setWordCode(w Word, c opCode)    { ctx.setWordField(w, hCode, Cell(c)) }
func (ctx *Context) setWordNData(w Word, n uint)     { ctx.setWordField(w, hNData, Cell(n)) }

// wordName returns a word's name, or "" for :NONAME definitions.
func (ctx *Context) wordName(w Word) string {
	return ctx.symbolFor(uint(ctx.wordField(w, hName)))
}

// findName searches the dictionary chain, most-recently-defined first,
// for a non-hidden word matching name (case-insensitive, per spec §4.2).
// It returns 0 if no such word exists.
func (ctx *Context) findName(name string) Word {
	for w := ctx.latest; w != 0; w = ctx.wordPrev(w) {
		if ctx.wordBits(w).has(bitHidden) {
			continue
		}
		if strings.EqualFold(ctx.wordName(w), name) {
			return w
		}
	}
	return 0
}

// wordCreate aligns here to a cell boundary, allocates a new word header,
// interns name, links it as the new dictionary head, and returns it. The
// word's data[] is empty (ndata = 0) and code is set as given.
func (ctx *Context) wordCreate(name string, code opCode) Word {
	ctx.alignHere()
	addr := ctx.mem.Bump(headerCells)
	w := Word(addr)
	ctx.setWordField(w, hPrev, Cell(ctx.latest))
	ctx.setWordField(w, hName, Cell(ctx.internSymbol(name)))
	ctx.setWordField(w, hBits, 0)
	ctx.setWordField(w, hCode, Cell(code))
	ctx.setWordField(w, hNData, 0)
	ctx.latest = w
	return w
}

// wordAppend aligns here within w's data area and writes one cell,
// growing ndata accordingly. It is only valid to append to the word
// that currently owns the top of the arena (the word under construction).
func (ctx *Context) wordAppend(w Word, v Cell) uint {
	ctx.alignHere()
	addr := ctx.mem.Bump(1)
	if err := ctx.mem.Stor(addr, v); err != nil {
		ctx.throwf(throwDictionaryOverflow, "word-append: %v", err)
	}
	ctx.setWordNData(w, ctx.wordNData(w)+1)
	return addr
}

// alignHere rounds here up to a cell boundary. Cells are already the
// arena's native unit, so this is a no-op placeholder kept for the
// alignment points the spec names (ALIGN, word-create, word-append);
// C@/C! also address whole cells, so here is never misaligned.
func (ctx *Context) alignHere() {}

// wordOf resolves a raw cell compiled into a definition's data area back
// to the Word it names. Compiled streams hold plain addresses, so this is
// just a conversion, but it centralizes the bounds check.
func (ctx *Context) wordOf(xt Cell) Word {
	if xt <= 0 || uint(xt) < ctx.mem.Base() {
		ctx.throwf(throwInvalidMemoryAddress, "not an execution token: %d", xt)
	}
	return Word(xt)
}
