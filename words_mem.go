package main

// memPrims implements the Memory and Heap groups.
func memPrims() []primDef {
	return []primDef{
		{name: "@", fn: func(ctx *Context) {
			addr := uint(ctx.pop(ctx.ds))
			v, err := ctx.mem.Load(addr)
			if err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "@: %v", err)
			}
			ctx.push(ctx.ds, v)
		}},
		{name: "!", fn: func(ctx *Context) {
			addr := uint(ctx.pop(ctx.ds))
			v := ctx.pop(ctx.ds)
			if err := ctx.mem.Stor(addr, v); err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "!: %v", err)
			}
		}},
		{name: "C@", fn: func(ctx *Context) {
			addr := uint(ctx.pop(ctx.ds))
			v, err := ctx.mem.Load(addr)
			if err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "C@: %v", err)
			}
			ctx.push(ctx.ds, v&0xff)
		}},
		{name: "C!", fn: func(ctx *Context) {
			addr := uint(ctx.pop(ctx.ds))
			v := ctx.pop(ctx.ds)
			if err := ctx.mem.Stor(addr, v&0xff); err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "C!: %v", err)
			}
		}},
		{name: "MOVE", fn: primMove},
		{name: "HERE", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(ctx.mem.Here())) }},
		{name: "UNUSED", fn: func(ctx *Context) {
			ctx.push(ctx.ds, Cell(ctx.mem.Limit)-Cell(ctx.mem.Here()))
		}},
		{name: "ALLOT", fn: func(ctx *Context) { ctx.allot(int(ctx.pop(ctx.ds))) }},
		{name: "ALIGN", fn: func(ctx *Context) { ctx.alignHere() }},
		{name: "CELLS", fn: func(ctx *Context) { /* Cell already the native unit: n CELLS == n */ }},
		{name: "CHARS", fn: func(ctx *Context) { /* byte == cell in this arena */ }},
		{name: ">BODY", fn: primToBody},

		{name: "ALLOCATE", fn: primAllocate},
		{name: "FREE", fn: primFree},
		{name: "RESIZE", fn: primResize},
	}
}

// primMove copies n cells from src to dst, src/dst/n on the stack as
// (src dst n -- ), handling overlap like the standard word requires.
func primMove(ctx *Context) {
	n := int(ctx.pop(ctx.ds))
	dst := uint(ctx.pop(ctx.ds))
	src := uint(ctx.pop(ctx.ds))
	if n <= 0 {
		return
	}
	buf := make([]int, n)
	if err := ctx.mem.LoadInto(src, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "MOVE: %v", err)
	}
	if err := ctx.mem.Stor(dst, buf...); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "MOVE: %v", err)
	}
}

// allot implements §4.2's allot(n): advance here by n, refusing an
// overflow past the arena limit or a retreat below the newest word's
// data-area start (§9's resolved Open Question).
func (ctx *Context) allot(n int) {
	if n < 0 {
		w := ctx.latest
		newHere := int(ctx.mem.Here()) + n
		if w != 0 && uint(newHere) < w.Data() {
			ctx.throw(throwResize)
		}
	}
	ctx.mem.Bump(n)
	if ctx.mem.Limit != 0 && ctx.mem.Here() > ctx.mem.Limit {
		ctx.throw(throwAllocate)
	}
	if ctx.latest != 0 {
		ndata := int(ctx.wordNData(ctx.latest)) + n
		if ndata < 0 {
			ndata = 0
		}
		ctx.setWordNData(ctx.latest, uint(ndata))
	}
}

// heap is a separate ALLOCATEd-block table, distinct from the dictionary
// arena per §6's "ALLOCATEd heap storage is not freed [by MARKER]".
type heapBlock struct {
	addr uint
	size int
}

// primAllocate implements ALLOCATE ( u -- a-addr ior ): grabs u cells
// by bumping here, the same pointer the dictionary allocates from, and
// tracks it so FREE/RESIZE can find it again.
func primAllocate(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := ctx.mem.Bump(u)
	ctx.block.heap = append(ctx.block.heap, heapBlock{addr: addr, size: u})
	ctx.push(ctx.ds, Cell(addr))
	ctx.push(ctx.ds, 0)
}

func (ctx *Context) findHeap(addr uint) int {
	for i, h := range ctx.block.heap {
		if h.addr == addr {
			return i
		}
	}
	return -1
}

// primFree implements FREE ( a-addr -- ior ): since the arena is a bump
// allocator, storage is not physically reclaimed, but the block is
// forgotten so a later RESIZE/FREE on it reports an error.
func primFree(ctx *Context) {
	addr := uint(ctx.pop(ctx.ds))
	i := ctx.findHeap(addr)
	if i < 0 {
		ctx.push(ctx.ds, Cell(throwFree))
		return
	}
	ctx.block.heap = append(ctx.block.heap[:i], ctx.block.heap[i+1:]...)
	ctx.push(ctx.ds, 0)
}

// primResize implements RESIZE ( a-addr1 u -- a-addr2 ior ): always
// allocates a new block at here and copies the old contents into it; it
// never resizes in place.
func primResize(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	i := ctx.findHeap(addr)
	if i < 0 {
		ctx.push(ctx.ds, Cell(addr))
		ctx.push(ctx.ds, Cell(throwResize))
		return
	}
	old := ctx.block.heap[i]
	buf := make([]int, old.size)
	if err := ctx.mem.LoadInto(old.addr, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "RESIZE: %v", err)
	}
	newAddr := ctx.mem.Bump(u)
	if err := ctx.mem.Stor(newAddr, buf...); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "RESIZE: %v", err)
	}
	ctx.block.heap[i] = heapBlock{addr: newAddr, size: u}
	ctx.push(ctx.ds, Cell(newAddr))
	ctx.push(ctx.ds, 0)
}

// primToBody implements >BODY ( xt -- a-addr ): the address of data[1],
// the same address a CREATEd word's own handler would push.
func primToBody(ctx *Context) {
	xt := ctx.pop(ctx.ds)
	w := ctx.wordOf(xt)
	ctx.push(ctx.ds, Cell(w.Data())+1)
}
