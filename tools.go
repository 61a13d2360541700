package main

import (
	"fmt"
	"strconv"

	"github.com/k0kubun/pp/v3"
)

// byeError carries bye-code's requested process exit status past the
// REPL's single throwError catch site; main.go recovers it at the top
// level and calls os.Exit.
type byeError struct{ code int }

func (e byeError) Error() string { return fmt.Sprintf("bye-code %d", e.code) }

// toolPrims implements the Tools group (DUMP, _stack_dump, _SEEXT, args,
// env, bye-code, TRACE) plus the Constants group (/hold /pad
// address-unit-bits floored BASE).
func toolPrims() []primDef {
	return []primDef{
		{name: "DUMP", fn: primDump},
		{name: "_stack_dump", fn: primStackDump},
		{name: "_SEEXT", fn: primSeext},
		{name: "args", fn: primArgs},
		{name: "env", fn: primEnv},
		{name: "bye-code", fn: func(ctx *Context) { panic(byeError{code: int(ctx.pop(ctx.ds))}) }},
		{name: "TRACE", fn: func(ctx *Context) {
			v := ctx.pop(ctx.ds)
			if err := ctx.mem.Stor(ctx.traceAddr, v); err != nil {
				ctx.throwf(throwInvalidMemoryAddress, "TRACE: %v", err)
			}
		}},

		{name: "/hold", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(holdSize)) }},
		{name: "/pad", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(padSize)) }},
		{name: "address-unit-bits", fn: func(ctx *Context) { ctx.push(ctx.ds, 8) }},
		{name: "floored", fn: func(ctx *Context) { ctx.push(ctx.ds, boolCell(true)) }},
		{name: "BASE", fn: func(ctx *Context) { ctx.push(ctx.ds, Cell(ctx.baseAddr)) }},
	}
}

// primDump implements DUMP ( addr u -- ): a hand-rolled per-cell raw
// memory formatter in gothird's dumper.go style (addr-width-aligned rows
// of values), since pp doesn't know post4's memory layout.
func primDump(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	if u <= 0 {
		return
	}
	width := len(strconv.Itoa(int(ctx.mem.Here()))) + 1
	buf := make([]int, u)
	if err := ctx.mem.LoadInto(addr, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "DUMP: %v", err)
	}
	for i, v := range buf {
		if i%8 == 0 {
			if i > 0 {
				ctx.writeString("\n")
			}
			ctx.writeString(fmt.Sprintf("@%*v ", width, addr+uint(i)))
		}
		ctx.writeString(fmt.Sprintf("%v ", v))
	}
	ctx.writeString("\n")
}

// primStackDump implements _stack_dump ( -- ): a structured, colorized
// dump of both stacks via pp, layered above the raw DUMP view.
func primStackDump(ctx *Context) {
	ctx.writeString(pp.Sprintln(map[string]interface{}{
		"ds": ctx.ds.cells[:ctx.ds.depth()],
		"rs": ctx.rs.cells[:ctx.rs.depth()],
	}))
}

// primSeext implements _SEEXT ( xt -- ): a structured dump of one
// dictionary entry's header fields, via pp.
func primSeext(ctx *Context) {
	w := ctx.wordOf(ctx.pop(ctx.ds))
	ctx.writeString(pp.Sprintln(map[string]interface{}{
		"name":  ctx.wordName(w),
		"prev":  uint(ctx.wordPrev(w)),
		"bits":  uint(ctx.wordBits(w)),
		"code":  int(ctx.wordCode(w)),
		"ndata": ctx.wordNData(w),
	}))
}

// primArgs implements args ( -- addr count ): the arena-resident table
// buildArgvTable prepared at startup, per SPEC_FULL's "argv/env access
// is explicitly in the Tools group".
func primArgs(ctx *Context) {
	ctx.push(ctx.ds, Cell(ctx.argvTableAddr))
	ctx.push(ctx.ds, Cell(len(ctx.argv)))
}

// primEnv implements env ( c-addr u -- addr len ior ): looks up a named
// environment variable and pushes its value as an arena string.
func primEnv(ctx *Context) {
	u := int(ctx.pop(ctx.ds))
	addr := uint(ctx.pop(ctx.ds))
	buf := make([]int, u)
	if err := ctx.mem.LoadInto(addr, buf); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "env: %v", err)
	}
	b := make([]byte, u)
	for i, c := range buf {
		b[i] = byte(c)
	}
	name := string(b)
	val, ok := lookupEnv(ctx.env, name)
	if !ok {
		ctx.push(ctx.ds, 0)
		ctx.push(ctx.ds, 0)
		ctx.push(ctx.ds, Cell(throwENoent))
		return
	}
	vaddr := ctx.mem.Bump(len(val))
	cells := make([]int, len(val))
	for i, c := range []byte(val) {
		cells[i] = int(c)
	}
	if len(cells) > 0 {
		if err := ctx.mem.Stor(vaddr, cells...); err != nil {
			ctx.throwf(throwInvalidMemoryAddress, "env: %v", err)
		}
	}
	ctx.push(ctx.ds, Cell(vaddr))
	ctx.push(ctx.ds, Cell(len(val)))
	ctx.push(ctx.ds, 0)
}

// lookupEnv scans a "KEY=VALUE" list for name, the same representation
// os.Environ() returns (ctx.env is built from it in main.go).
func lookupEnv(env []string, name string) (string, bool) {
	for _, kv := range env {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				if kv[:i] == name {
					return kv[i+1:], true
				}
				break
			}
		}
	}
	return "", false
}

// buildArgvTable populates an arena-resident table of (addr len) pairs,
// one per ctx.argv entry, so the `args` tool word can expose argv without
// holding any Go-side pointers into the arena's lifetime.
func (ctx *Context) buildArgvTable() {
	table := make([]int, 0, len(ctx.argv)*2)
	for _, a := range ctx.argv {
		addr := ctx.mem.Bump(len(a))
		if len(a) > 0 {
			cells := make([]int, len(a))
			for i, c := range []byte(a) {
				cells[i] = int(c)
			}
			if err := ctx.mem.Stor(addr, cells...); err != nil {
				panic(err)
			}
		}
		table = append(table, int(addr), len(a))
	}
	ctx.argvTableAddr = ctx.mem.Bump(len(table))
	if len(table) > 0 {
		if err := ctx.mem.Stor(ctx.argvTableAddr, table...); err != nil {
			panic(err)
		}
	}
}
