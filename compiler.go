package main

// compileCall appends a reference to w's xt to the word currently being
// defined, per §4.3 step 3's compile-time branch.
func (ctx *Context) compileCall(w Word) {
	ctx.wordAppend(ctx.latest, Cell(w))
}

// compileLiteral appends LIT followed by the literal value, per §4.3 step 4.
func (ctx *Context) compileLiteral(v Cell) {
	ctx.compileCall(ctx.litWord)
	ctx.wordAppend(ctx.latest, v)
}

// compileFLiteral appends FLIT followed by the float's bit pattern.
func (ctx *Context) compileFLiteral(f float64) {
	ctx.compileCall(ctx.flitWord)
	ctx.wordAppend(ctx.latest, floatToCellBits(f))
}

// colon implements `:`, per §4.6.
func opColon(ctx *Context) {
	if ctx.state != stateInterpret {
		ctx.throw(throwCompiling)
	}
	name := string(ctx.parseName())
	w := ctx.wordCreate(name, opEnter)
	ctx.setWordBits(w, bitHidden)
	ctx.push(ctx.ds, ctx.controlMark())
	ctx.setState(stateCompile)
}

// noname implements `:NONAME`.
func opNoname(ctx *Context) {
	if ctx.state != stateInterpret {
		ctx.throw(throwCompiling)
	}
	w := ctx.wordCreate("", opEnter)
	ctx.setWordBits(w, bitHidden)
	// The xt goes below the control mark, so `;` finds its mark on top
	// and the xt is what remains on the data stack afterwards.
	ctx.push(ctx.ds, Cell(w))
	ctx.push(ctx.ds, ctx.controlMark())
	ctx.setState(stateCompile)
}

// semicolon implements `;`, per §4.6: immediate, compile-only.
func opSemicolon(ctx *Context) {
	mark := ctx.pop(ctx.ds)
	if mark != ctx.controlMark() {
		ctx.throw(throwBadControl)
	}
	ctx.compileCall(ctx.exitWord)
	w := ctx.latest
	bits := ctx.wordBits(w) &^ bitHidden
	ctx.setWordBits(w, bits)
	ctx.setState(stateInterpret)
}

// create implements CREATE, per §4.6.
func opCreate(ctx *Context) {
	name := string(ctx.parseName())
	w := ctx.wordCreate(name, opDataField)
	ctx.wordAppend(w, 0) // data[0]: reserved for a later DOES> patch
	ctx.setWordBits(w, bitCreated)
}

// does implements DOES>, per §4.6: compile-only, rewrites the most
// recently CREATEd word's code and data[0] link, then exits the
// defining word. If the newest word was not made by CREATE, it throws
// NOT-CREATED.
func opDoes(ctx *Context) {
	w := ctx.latest
	if !ctx.wordBits(w).has(bitCreated) {
		ctx.throwf(throwNotCreated, "%s", ctx.wordName(w))
	}
	ctx.setWordCode(w, opDoDoes)
	if err := ctx.mem.Stor(w.Data(), Cell(ctx.ip)); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "DOES>: %v", err)
	}
	ctx.ip = uint(ctx.pop(ctx.rs))
}

// marker implements MARKER name, per §4.6. The created word's own prev
// link already records "everything below it"; runMarker need only
// restore ctx.latest to that link and rewind here to the marker word's
// own address to unlink and free the marker itself.
func opMarker(ctx *Context) {
	name := string(ctx.parseName())
	ctx.wordCreate(name, opMarkerCode)
}

// runMarker is dispatched via opTable when a MARKER word executes.
func runMarker(ctx *Context) {
	w := ctx.currentWord
	ctx.latest = ctx.wordPrev(w)
	ctx.mem.Bump(int(uint(w)) - int(ctx.mem.Here()))
}

// abandonDefinition implements §4.7's default unwind behavior: discard a
// word currently mid-compilation (dictionary head is HIDDEN).
func (ctx *Context) abandonDefinition() {
	w := ctx.latest
	name := ctx.wordName(w)
	ctx.latest = ctx.wordPrev(w)
	ctx.mem.Bump(int(uint(w)) - int(ctx.mem.Here()))
	ctx.lastThrowMess = name
}

// immediate sets the IMMEDIATE bit on the most recently defined word.
func opImmediate(ctx *Context) {
	ctx.setWordBits(ctx.latest, ctx.wordBits(ctx.latest)|bitImmediate)
}

// compileOnly sets the COMPILE-ONLY bit on the most recently defined word.
func opCompileOnly(ctx *Context) {
	ctx.setWordBits(ctx.latest, ctx.wordBits(ctx.latest)|bitCompileOnly)
}

// primImmediateQ implements immediate? ( xt -- flag ), an extension
// querying the IMMEDIATE bit of an arbitrary word.
func primImmediateQ(ctx *Context) {
	w := ctx.wordOf(ctx.pop(ctx.ds))
	ctx.push(ctx.ds, boolCell(ctx.wordBits(w).has(bitImmediate)))
}

// primCompileOnlyQ implements compile-only? ( xt -- flag ).
func primCompileOnlyQ(ctx *Context) {
	w := ctx.wordOf(ctx.pop(ctx.ds))
	ctx.push(ctx.ds, boolCell(ctx.wordBits(w).has(bitCompileOnly)))
}

// primState implements STATE ( -- a-addr ): pushes the address of a
// variable holding the interpreter's compile/interpret state, so user
// code's `STATE @` sees the live value. The state is exposed by the
// single reserved cell at ctx.stateAddr (see setState).
func primState(ctx *Context) {
	ctx.push(ctx.ds, Cell(ctx.stateCellAddr()))
}

// primTick implements ' ( "name" -- xt ), per the Defining group.
func primTick(ctx *Context) {
	name := string(ctx.parseName())
	w := ctx.findName(name)
	if w == 0 {
		ctx.throwf(throwUndefined, "%s", name)
	}
	ctx.push(ctx.ds, Cell(w))
}

// primEvaluate implements EVALUATE ( c-addr u -- ), per §4.8.
func primEvaluate(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	buf := make([]int, u)
	if err := ctx.mem.LoadInto(addr, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "EVALUATE: %v", err)
	}
	b := make([]byte, u)
	for i, c := range buf {
		b[i] = byte(c)
	}
	ctx.evaluate("EVALUATE", string(b))
}
