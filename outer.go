package main

import (
	"fmt"
	"io"
)

// controlMark encodes a `:`/control-flow balance checkpoint as
// (rs-length << 8) | ds-length, per §4.6.
func (ctx *Context) controlMark() Cell {
	return Cell(ctx.rs.depth()<<8) | Cell(ctx.ds.depth())
}

// repl is the outer interpreter: §4.3's refill/parse-name/lookup/
// classify loop. It runs until the active input source can no longer be
// refilled, at which point it returns (callers at nested input levels
// resume their own loop; the top level exits the program).
func (ctx *Context) repl() {
	for {
		s := ctx.in.current()
		if s == nil {
			return
		}
		if s.pos >= len(s.buf) {
			if s.kind == srcTerminal && ctx.state == stateInterpret {
				ctx.writeString("ok ")
			}
			if ctx.out != nil {
				if err := ctx.out.Flush(); err != nil {
					ctx.halt(err)
				}
			}
			if !s.refill() {
				return
			}
			ctx.syncSourceBuf()
			ctx.syncInToMem()
			continue
		}

		tok := ctx.parseName()
		if len(tok) == 0 {
			continue
		}
		name := string(tok)

		if w := ctx.findName(name); w != 0 {
			if ctx.state == stateInterpret || ctx.wordBits(w).has(bitImmediate) {
				ctx.execute(w)
			} else {
				ctx.compileCall(w)
			}
			continue
		}

		if r, ok := ctx.parseNumber(name); ok {
			if r.isFloat {
				if ctx.state == stateInterpret {
					ctx.fpush(r.f)
				} else {
					ctx.compileFLiteral(r.f)
				}
			} else {
				if ctx.state == stateInterpret {
					ctx.push(ctx.ds, r.i)
				} else {
					ctx.compileLiteral(r.i)
				}
			}
			continue
		}

		ctx.throwf(throwUndefined, "%s", name)
	}
}

// evaluate implements EVALUATE(str): push a string input source, run the
// REPL recursively against it alone, then restore the prior source.
func (ctx *Context) evaluate(name, text string) {
	ctx.pushString(name, text)
	defer func() {
		ctx.in.pop()
		ctx.syncSourceBuf()
		ctx.syncInToMem()
	}()
	ctx.repl()
}

// included implements INCLUDED/INCLUDE-FILE: push a file input source,
// run the REPL recursively, then restore the prior source and close it.
func (ctx *Context) included(name string, r io.ReadCloser, handle int) {
	ctx.pushFile(name, r, handle)
	defer func() {
		ctx.in.pop()
		r.Close()
		ctx.syncSourceBuf()
		ctx.syncInToMem()
	}()
	ctx.repl()
}

// reportThrow prints the one-line diagnostic §4.7 describes, suppressed
// for OK/ABORT/ABORT"/QUIT.
func (ctx *Context) reportThrow(code throwCode, mess string) {
	switch code {
	case 0, throwAbort, throwAbortMsg, throwQuit:
		return
	}
	if mess != "" {
		ctx.writeString(fmt.Sprintf("\n%d %s: %s\n", int(code), code, mess))
	} else {
		ctx.writeString(fmt.Sprintf("\n%d %s\n", int(code), code))
	}
}

// run installs the single catch point around the outer interpreter and
// loops it until the input is exhausted, per §4.7: a throw unwinds to here, stacks/compiler
// state are reset per its category, a diagnostic is printed, and the
// REPL resumes.
// run returns the last THROW code it handled (0 if none), per §6's "exit
// code is the last throw code". A bye-code panic is deliberately left
// unrecovered here: it is not a throwError, so catch() re-panics it for
// a top-level caller (main) to recover and translate into a process
// exit status.
func (ctx *Context) run() int {
	last := 0
	for {
		if ctx.in.current() == nil {
			return last
		}
		code := ctx.catch(ctx.repl)
		if code == 0 {
			return last // repl() returned normally: input exhausted
		}
		last = int(code)
		ctx.unwind(code)
	}
}

// unwind applies §4.7's three THROW categories and reports the result.
func (ctx *Context) unwind(code throwCode) {
	switch code {
	case throwAbort, throwAbortMsg, throwDSOver, throwDSUnder, throwFSOver, throwFSUnder:
		// ABORT-class resets data and float stacks, then falls through
		// into QUIT-class's return-stack reset (§4.7; the original's
		// switch has no break between these cases).
		ctx.ds.reset()
		ctx.fs.cells = ctx.fs.cells[:0]
		fallthrough
	case throwQuit, throwSigbus, throwRSOver, throwRSUnder, throwLoopDepth, throwUndefined:
		ctx.rs.reset() // data stack is preserved for UNDEFINED/SIGSEGV-class throws
	}

	if ctx.latest != 0 && ctx.wordBits(ctx.latest).has(bitHidden) {
		ctx.abandonDefinition()
	}
	ctx.setState(stateInterpret)

	mess := ctx.lastThrowMess
	ctx.lastThrowMess = ""
	ctx.reportThrow(code, mess)
}
