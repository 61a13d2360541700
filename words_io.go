package main

// ioPrims implements the I/O group: SOURCE SOURCE-ID >IN REFILL ACCEPT
// KEY KEY? EMIT PARSE-NAME _parse INCLUDED.
func ioPrims() []primDef {
	return []primDef{
		{name: "SOURCE", fn: func(ctx *Context) {
			s := ctx.in.current()
			n := len(s.buf)
			if uint(n) > ctx.srcBufCap {
				n = int(ctx.srcBufCap)
			}
			ctx.push(ctx.ds, Cell(ctx.srcBufAddr))
			ctx.push(ctx.ds, Cell(n))
		}},
		{name: "SOURCE-ID", fn: func(ctx *Context) {
			ctx.push(ctx.ds, Cell(ctx.in.current().sourceID()))
		}},
		{name: ">IN", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(ctx.toInAddr)) }},
		{name: "REFILL", fn: func(ctx *Context) {
			ok := ctx.in.current().refill()
			if ok {
				ctx.syncSourceBuf()
				ctx.syncInToMem()
			}
			ctx.push(ctx.ds, boolCell(ok))
		}},
		{name: "ACCEPT", fn: primAccept},
		{name: "KEY", fn: primKey},
		{name: "KEY?", fn: primKeyQ},
		{name: "EMIT", fn: func(ctx *Context) { ctx.writeRune(rune(ctx.pop(ctx.ds))) }},
		{name: "PARSE-NAME", fn: func(ctx *Context) {
			tok := ctx.parseName()
			ctx.pushParsedSpan(tok)
		}},
		{name: "_parse", fn: func(ctx *Context) {
			escape := ctx.pop(ctx.ds) != 0
			delim := byte(ctx.pop(ctx.ds))
			tok := ctx.parse(delim, escape)
			ctx.pushParsedSpan(tok)
		}},
		{name: "INCLUDED", fn: primIncluded},
	}
}

// pushParsedSpan leaves (c-addr u) on the stack for the bytes just
// parsed, copying them into the context's pad so the result remains
// addressable after the source buffer mutates.
func (ctx *Context) pushParsedSpan(tok []byte) {
	n := copy(ctx.pad[:], tok)
	addr := ctx.padAddr()
	for i := 0; i < n; i++ {
		if err := ctx.mem.Stor(addr+uint(i), Cell(ctx.pad[i])); err != nil {
			ctx.throwf(throwInvalidMemoryAddress, "parse span: %v", err)
		}
	}
	ctx.push(ctx.ds, Cell(addr))
	ctx.push(ctx.ds, Cell(n))
}

// primAccept implements ACCEPT ( c-addr n1 -- n2 ): line input into a
// caller buffer, from the active source (terminal cooked-mode or file).
func primAccept(ctx *Context) {
	n1 := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	s := ctx.in.current()
	if s.kind == srcTerminal {
		ctx.restoreCookedMode()
	}
	var line []byte
	for {
		r, err := ctx.readRune()
		if err != nil || r == '\n' {
			break
		}
		line = append(line, byte(r))
		if len(line) >= n1 {
			break
		}
	}
	for i, c := range line {
		if err := ctx.mem.Stor(addr+uint(i), Cell(c)); err != nil {
			ctx.throwf(throwInvalidMemoryAddress, "ACCEPT: %v", err)
		}
	}
	ctx.push(ctx.ds, Cell(len(line)))
}

// primKey implements KEY ( -- char ): one raw character, switching the
// terminal into raw mode for the duration if the active source is the
// terminal.
func primKey(ctx *Context) {
	s := ctx.in.current()
	if s.kind == srcTerminal {
		restore := ctx.enterRawMode()
		defer restore()
	}
	r, err := ctx.readRune()
	if err != nil {
		ctx.throwf(throwEIO, "KEY: %v", err)
	}
	ctx.push(ctx.ds, Cell(r))
}

// primKeyQ implements KEY? ( -- flag ): non-blocking check for pending
// terminal input.
func primKeyQ(ctx *Context) {
	s := ctx.in.current()
	ctx.push(ctx.ds, boolCell(s.hasUnget || (s.r != nil && s.r.Buffered() > 0)))
}

// primIncluded implements INCLUDED ( c-addr u -- ), per §4.8: resolve the
// file against POST4_PATH, push it as the active input, run the REPL
// recursively, then restore.
func primIncluded(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	buf := make([]int, u)
	if err := ctx.mem.LoadInto(addr, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "INCLUDED: %v", err)
	}
	b := make([]byte, u)
	for i, c := range buf {
		b[i] = byte(c)
	}
	name := string(b)
	f, err := openOnPath(name, ctx.searchPath)
	if err != nil {
		ctx.throwf(throwENoent, "%s", name)
	}
	ctx.included(name, f, ctx.nextHandle())
}

func (ctx *Context) nextHandle() int {
	ctx.handleCounter++
	return ctx.handleCounter
}

func (ctx *Context) restoreCookedMode() {
	if ctx.signals.termRestore != nil {
		ctx.signals.termRestore()
		ctx.signals.termRestore = nil
	}
}

// enterRawMode switches the terminal into raw mode if supported, and
// returns a func that restores it; see term.go.
func (ctx *Context) enterRawMode() func() {
	return enterRawModeImpl(ctx)
}

func (ctx *Context) padAddr() uint { return ctx.padBase }
