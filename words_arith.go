package main

// arithPrims implements the Arithmetic and Comparison groups.
func arithPrims() []primDef {
	return []primDef{
		{name: "+", fn: binOp(func(a, b Cell) Cell { return a + b })},
		{name: "-", fn: binOp(func(a, b Cell) Cell { return a - b })},
		{name: "*", fn: binOp(func(a, b Cell) Cell { return a * b })},
		{name: "/", fn: func(ctx *Context) {
			b, a := ctx.pop(ctx.ds), ctx.pop(ctx.ds)
			if b == 0 {
				ctx.throw(throwDivZero)
			}
			ctx.push(ctx.ds, a/b)
		}},
		{name: "MOD", fn: func(ctx *Context) {
			b, a := ctx.pop(ctx.ds), ctx.pop(ctx.ds)
			if b == 0 {
				ctx.throw(throwDivZero)
			}
			ctx.push(ctx.ds, a%b)
		}},
		{name: "M*", fn: func(ctx *Context) {
			b, a := int64(ctx.pop(ctx.ds)), int64(ctx.pop(ctx.ds))
			d := a * b
			ctx.push(ctx.ds, Cell(int32(d)))
			ctx.push(ctx.ds, Cell(int32(d>>32)))
		}},
		{name: "UM*", fn: func(ctx *Context) {
			b, a := uint64(uint32(ctx.pop(ctx.ds))), uint64(uint32(ctx.pop(ctx.ds)))
			d := a * b
			ctx.push(ctx.ds, Cell(uint32(d)))
			ctx.push(ctx.ds, Cell(uint32(d>>32)))
		}},
		{name: "SM/REM", fn: func(ctx *Context) {
			b := int64(ctx.pop(ctx.ds))
			// The double-cell dividend was pushed low-cell-first (see
			// M*/UM*), so the current stack top is its high cell.
			hi, lo := int64(ctx.pop(ctx.ds)), int64(ctx.pop(ctx.ds))
			d := hi<<32 | (lo & 0xffffffff)
			if b == 0 {
				ctx.throw(throwDivZero)
			}
			q, r := d/b, d%b
			ctx.push(ctx.ds, Cell(r))
			ctx.push(ctx.ds, Cell(q))
		}},
		{name: "UM/MOD", fn: func(ctx *Context) {
			b := uint64(uint32(ctx.pop(ctx.ds)))
			// Same high/low ordering as SM/REM above.
			hi, lo := uint64(uint32(ctx.pop(ctx.ds))), uint64(uint32(ctx.pop(ctx.ds)))
			d := hi<<32 | lo
			if b == 0 {
				ctx.throw(throwDivZero)
			}
			ctx.push(ctx.ds, Cell(d%b))
			ctx.push(ctx.ds, Cell(d/b))
		}},
		{name: "AND", fn: binOp(func(a, b Cell) Cell { return a & b })},
		{name: "OR", fn: binOp(func(a, b Cell) Cell { return a | b })},
		{name: "XOR", fn: binOp(func(a, b Cell) Cell { return a ^ b })},
		{name: "INVERT", fn: func(ctx *Context) { ctx.push(ctx.ds, ^ctx.pop(ctx.ds)) }},
		{name: "LSHIFT", fn: func(ctx *Context) {
			n := ctx.pop(ctx.ds)
			v := ctx.pop(ctx.ds)
			ctx.push(ctx.ds, v<<uint(n))
		}},
		{name: "RSHIFT", fn: func(ctx *Context) {
			n := ctx.pop(ctx.ds)
			v := ctx.pop(ctx.ds)
			ctx.push(ctx.ds, Cell(uint(v)>>uint(n)))
		}},
		{name: "0=", fn: func(ctx *Context) { ctx.push(ctx.ds, boolCell(ctx.pop(ctx.ds) == 0)) }},
		{name: "0<", fn: func(ctx *Context) { ctx.push(ctx.ds, boolCell(ctx.pop(ctx.ds) < 0)) }},
		{name: "<", fn: func(ctx *Context) {
			b, a := ctx.pop(ctx.ds), ctx.pop(ctx.ds)
			ctx.push(ctx.ds, boolCell(a < b))
		}},
		{name: "U<", fn: func(ctx *Context) {
			b, a := uint(ctx.pop(ctx.ds)), uint(ctx.pop(ctx.ds))
			ctx.push(ctx.ds, boolCell(a < b))
		}},
	}
}

func binOp(f func(a, b Cell) Cell) opFunc {
	return func(ctx *Context) {
		b := ctx.pop(ctx.ds)
		a := ctx.pop(ctx.ds)
		ctx.push(ctx.ds, f(a, b))
	}
}

// boolCell maps a Go bool to Forth's all-bits-set true / all-bits-clear
// false flag convention.
func boolCell(v bool) Cell {
	if v {
		return -1
	}
	return 0
}
