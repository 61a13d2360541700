package main

// picturedPrims implements the pictured-numeric-output primitives implied
// by the /hold//pad constants (§6): <# # #S #> HOLD SIGN. Digits are
// built right-to-left into the arena-resident hold buffer (ctx.holdBase,
// sized holdSize), addressable the same way PAD-based output is.
func picturedPrims() []primDef {
	return []primDef{
		{name: "<#", fn: func(ctx *Context) { ctx.holdAt = holdSize }},
		{name: "#", fn: primPicDigit},
		{name: "#S", fn: primPicDigits},
		{name: "#>", fn: primPicEnd},
		{name: "HOLD", fn: func(ctx *Context) { ctx.holdChar(byte(ctx.pop(ctx.ds))) }},
		{name: "SIGN", fn: func(ctx *Context) {
			if ctx.pop(ctx.ds) < 0 {
				ctx.holdChar('-')
			}
		}},
	}
}

// holdChar inserts one character immediately before the current hold
// position, throwing PIC-OVER if the buffer is exhausted.
func (ctx *Context) holdChar(c byte) {
	if ctx.holdAt <= 0 {
		ctx.throw(throwPicOver)
	}
	ctx.holdAt--
	if err := ctx.mem.Stor(ctx.holdBase+uint(ctx.holdAt), int(c)); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "HOLD: %v", err)
	}
}

// primPicDigit implements # ( u1 -- u2 ): divides by BASE, converts the
// remainder to a digit character, and holds it. The number is a single
// unsigned cell, not a double-cell ud.
func primPicDigit(ctx *Context) {
	v := ctx.pop(ctx.ds)
	base := Cell(ctx.getBase())
	u := uint64(v)
	ub := uint64(base)
	digit := u % ub
	u /= ub
	var c byte
	if digit < 10 {
		c = byte('0' + digit)
	} else {
		c = byte('A' + digit - 10)
	}
	ctx.holdChar(c)
	ctx.push(ctx.ds, Cell(u))
}

// primPicDigits implements #S ( u1 -- u2 ): repeats # until the value
// is zero, so at least one digit is always held.
func primPicDigits(ctx *Context) {
	for {
		primPicDigit(ctx)
		if ctx.pick(ctx.ds, 0) == 0 {
			return
		}
	}
}

// primPicEnd implements #> ( u -- c-addr len ): drops the remaining value
// and pushes the span of held digits.
func primPicEnd(ctx *Context) {
	ctx.pop(ctx.ds)
	addr := ctx.holdBase + uint(ctx.holdAt)
	ctx.push(ctx.ds, Cell(addr))
	ctx.push(ctx.ds, Cell(holdSize-ctx.holdAt))
}
