package main

import (
	"math"
	"runtime"
	"strings"
)

// ipSentinel is the address dispatch() installs as the "return to the
// REPL" frame, per §4.4's "two-cell array [xt, return-to-REPL]". Reaching
// it pops out of the threaded loop back into the outer interpreter.
const ipSentinel = 0

// loadProg reads the cell at ip and advances ip by one, the threaded
// code analogue of the original's program-counter fetch.
func (ctx *Context) loadProg() Cell {
	v, err := ctx.mem.Load(ctx.ip)
	if err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "loadProg @%d: %v", ctx.ip, err)
	}
	ctx.ip++
	return v
}

// execute dispatches w directly, per §4.4's EXECUTE contract. It runs one
// step of whatever w's code implies; for code = enter it runs the whole
// colon definition (via the threaded loop), not just one cell, and for a
// DOES>-patched word it runs the whole DOES> body the same way.
func (ctx *Context) execute(w Word) {
	if ctx.wordBits(w).has(bitCompileOnly) && ctx.state == stateInterpret {
		ctx.throwf(throwCompileOnly, "%s", ctx.wordName(w))
	}
	ctx.runRecovering(func() { ctx.dispatch(w) })
}

// dispatch implements the four code-field cases of §4.4 for word w, then
// (for opEnter and opDoDoes) drives the threaded NEXT loop until it
// returns to the instruction pointer that was active on entry.
func (ctx *Context) dispatch(w Word) {
	code := ctx.wordCode(w)
	if code != opEnter && code != opDoDoes {
		ctx.runPrimitive(w, code)
		return
	}

	savedIP := ctx.ip
	if code == opEnter {
		ctx.push(ctx.rs, Cell(ipSentinel))
		ctx.ip = w.Data()
	} else {
		// runPrimitive pushes the current ip (the sentinel) as the
		// return address and jumps into the DOES> body.
		ctx.ip = ipSentinel
		ctx.runPrimitive(w, code)
	}
	for ctx.ip != ipSentinel {
		ctx.checkSignal()
		xt := ctx.loadProg()
		next := ctx.wordOf(xt)
		code := ctx.wordCode(next)
		if code == opEnter {
			ctx.push(ctx.rs, Cell(ctx.ip))
			ctx.ip = next.Data()
			continue
		}
		ctx.runPrimitive(next, code)
	}
	ctx.ip = savedIP
}

// runPrimitive handles the non-enter code-field cases directly (§4.4),
// and otherwise looks the tag up in the builtin opTable.
func (ctx *Context) runPrimitive(w Word, code opCode) {
	switch code {
	case opDataField:
		ctx.push(ctx.ds, Cell(w.Data())+1)
	case opDoDoes:
		ctx.push(ctx.ds, Cell(w.Data())+1)
		ctx.push(ctx.rs, Cell(ctx.ip))
		doesIP, err := ctx.mem.Load(w.Data())
		if err != nil {
			ctx.throwf(throwInvalidMemoryAddress, "DOES> link: %v", err)
		}
		ctx.ip = uint(doesIP)
	case opLit:
		ctx.push(ctx.ds, ctx.loadProg())
	case opFLit:
		bits := ctx.loadProg()
		ctx.fpush(cellBitsToFloat(bits))
	case opBranch:
		off := ctx.loadProg()
		ctx.ip = uint(int(ctx.ip) + int(off) - 1)
	case opBranchZ:
		off := ctx.loadProg()
		if ctx.pop(ctx.ds) == 0 {
			ctx.ip = uint(int(ctx.ip) + int(off) - 1)
		}
	case opCall:
		off := ctx.loadProg()
		ctx.push(ctx.rs, Cell(ctx.ip))
		ctx.ip = uint(int(ctx.ip) + int(off) - 1)
	case opExit:
		ctx.ip = uint(ctx.pop(ctx.rs))
	case opExecute:
		xt := ctx.pop(ctx.ds)
		ctx.dispatch(ctx.wordOf(xt))
	case opLongjmp:
		ctx.throw(throwCode(ctx.pop(ctx.ds)))
	default:
		i := int(code) - int(opFirstNamed)
		if i < 0 || i >= len(opTable) || opTable[i] == nil {
			ctx.throwf(throwInvalidMemoryAddress, "bad code field %d on %s", code, ctx.wordName(w))
		}
		if ctx.traceOn() {
			ctx.logf(">", "%s", ctx.wordName(w))
		}
		saved := ctx.currentWord
		ctx.currentWord = w
		opTable[i](ctx)
		ctx.currentWord = saved
	}
}

// runRecovering classifies Go runtime faults (out-of-range/nil memory
// access, integer divide by zero) that escape a primitive into the
// THROW codes the original maps the corresponding hardware signal to,
// per SPEC_FULL's SIGFPE/SIGSEGV redesign. Any throwError panic passes
// through untouched for the REPL's catch site to handle.
func (ctx *Context) runRecovering(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(throwError); ok {
			panic(r)
		}
		if _, ok := r.(haltError); ok {
			panic(r)
		}
		if rt, ok := r.(runtime.Error); ok {
			if strings.Contains(rt.Error(), "divide by zero") {
				panic(throwError{Code: throwDivZero, Mess: rt.Error()})
			}
			panic(throwError{Code: throwSigbus, Mess: rt.Error()})
		}
		panic(r)
	}()
	fn()
}

// cellBitsToFloat and floatToCellBits round-trip a float64 through the
// bit pattern of a single Cell, the float-stack-analogue of opLit.
func cellBitsToFloat(bits Cell) float64 { return math.Float64frombits(uint64(bits)) }
func floatToCellBits(f float64) Cell    { return Cell(math.Float64bits(f)) }
