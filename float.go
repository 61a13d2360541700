package main

import (
	"fmt"
	"math"
)

// floatPrims implements the optional Float group, bridging the float
// stack (fs) to the data stack and the cell arena exactly as LIT/FLIT do
// for integers (§3's "optional third stack for floating-point values").
func floatPrims() []primDef {
	return []primDef{
		{name: "F+", fn: fbinOp(func(a, b float64) float64 { return a + b })},
		{name: "F-", fn: fbinOp(func(a, b float64) float64 { return a - b })},
		{name: "F*", fn: fbinOp(func(a, b float64) float64 { return a * b })},
		{name: "F/", fn: func(ctx *Context) {
			b := ctx.fpop()
			a := ctx.fpop()
			if b == 0 {
				ctx.throw(throwDivZero)
			}
			ctx.fpush(a / b)
		}},
		{name: "F@", fn: func(ctx *Context) {
			addr := uint(ctx.pop(ctx.ds))
			v, err := ctx.mem.Load(addr)
			if err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "F@: %v", err)
			}
			ctx.fpush(cellBitsToFloat(v))
		}},
		{name: "F!", fn: func(ctx *Context) {
			addr := uint(ctx.pop(ctx.ds))
			v := ctx.fpop()
			if err := ctx.mem.Stor(addr, int(floatToCellBits(v))); err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "F!: %v", err)
			}
		}},
		{name: "F0=", fn: func(ctx *Context) { ctx.push(ctx.ds, boolCell(ctx.fpop() == 0)) }},
		{name: "F0<", fn: func(ctx *Context) { ctx.push(ctx.ds, boolCell(ctx.fpop() < 0)) }},
		{name: "FSQRT", fn: funOp(math.Sqrt)},
		{name: "FCOS", fn: funOp(math.Cos)},
		{name: "FSIN", fn: funOp(math.Sin)},
		{name: "FTAN", fn: funOp(math.Tan)},
		{name: "FLN", fn: funOp(math.Log)},
		{name: "FLOG", fn: funOp(math.Log10)},
		{name: "FEXP", fn: funOp(math.Exp)},
		{name: "FMAX", fn: fbinOp(math.Max)},
		{name: "FMIN", fn: fbinOp(math.Min)},
		{name: "F**", fn: fbinOp(math.Pow)},
		{name: "FROUND", fn: funOp(math.Round)},
		{name: "FTRUNC", fn: funOp(math.Trunc)},
		{name: "FLOOR", fn: funOp(math.Floor)},
		{name: "F>S", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(int(ctx.fpop()))) }},
		{name: "S>F", fn: func(ctx *Context) { ctx.fpush(float64(ctx.pop(ctx.ds))) }},
		{name: "F.", fn: func(ctx *Context) { ctx.writeString(fmt.Sprintf("%v ", ctx.fpop())) }},
		{name: "FS.", fn: func(ctx *Context) { ctx.writeString(fmt.Sprintf("%e ", ctx.fpop())) }},
		{name: ">FLOAT", fn: primToFloat},
		{name: "max-float", fn: func(ctx *Context) { ctx.fpush(math.MaxFloat64) }},
	}
}

// fbinOp lifts a float64 binary function to a primitive popping two
// float-stack values and pushing one.
func fbinOp(f func(a, b float64) float64) opFunc {
	return func(ctx *Context) {
		b := ctx.fpop()
		a := ctx.fpop()
		ctx.fpush(f(a, b))
	}
}

// funOp lifts a float64 unary function to a primitive.
func funOp(f func(float64) float64) opFunc {
	return func(ctx *Context) { ctx.fpush(f(ctx.fpop())) }
}

// primToFloat implements >FLOAT ( c-addr u -- r true | false ), parsing a
// string as a float via strnum's float path.
func primToFloat(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	buf := make([]int, u)
	if err := ctx.mem.LoadInto(addr, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, ">FLOAT: %v", err)
	}
	b := make([]byte, u)
	for i, c := range buf {
		b[i] = byte(c)
	}
	r := strnumFloat(string(b))
	if r.n != u {
		ctx.push(ctx.ds, boolCell(false))
		return
	}
	ctx.fpush(r.f)
	ctx.push(ctx.ds, boolCell(true))
}
