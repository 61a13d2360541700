package main

// stackPrims implements the Stack group: DROP DUP SWAP PICK ROLL >R R>
// CS-PICK CS-ROLL.
func stackPrims() []primDef {
	return []primDef{
		{name: "DROP", fn: func(ctx *Context) { ctx.pop(ctx.ds) }},
		{name: "DUP", fn: func(ctx *Context) {
			v := ctx.pick(ctx.ds, 0)
			ctx.push(ctx.ds, v)
		}},
		{name: "SWAP", fn: func(ctx *Context) {
			a := ctx.pop(ctx.ds)
			b := ctx.pop(ctx.ds)
			ctx.push(ctx.ds, a)
			ctx.push(ctx.ds, b)
		}},
		{name: "PICK", fn: func(ctx *Context) {
			n := int(ctx.pop(ctx.ds))
			ctx.push(ctx.ds, ctx.pick(ctx.ds, n))
		}},
		{name: "ROLL", fn: primRoll},
		{name: ">R", fn: func(ctx *Context) { ctx.push(ctx.rs, ctx.pop(ctx.ds)) }},
		{name: "R>", fn: func(ctx *Context) { ctx.push(ctx.ds, ctx.pop(ctx.rs)) }},
		{name: "CS-PICK", fn: func(ctx *Context) {
			n := int(ctx.pop(ctx.ds))
			ctx.push(ctx.ds, ctx.pick(ctx.ds, n))
		}},
		{name: "CS-ROLL", fn: primRoll},
	}
}

// primRoll implements n ROLL: remove the cell n positions down and push
// it on top, shifting the cells above it down by one.
func primRoll(ctx *Context) {
	n := int(ctx.pop(ctx.ds))
	if n == 0 {
		return
	}
	v := ctx.pick(ctx.ds, n)
	for i := n; i > 0; i-- {
		ctx.setPick(ctx.ds, i, ctx.pick(ctx.ds, i-1))
	}
	ctx.setPick(ctx.ds, 0, v)
}
