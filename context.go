package main

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/ruv/post4go/internal/cellmem"
	"github.com/ruv/post4go/internal/flushio"
)

// interpreter state, per §4.10's state machine.
const (
	stateInterpret = 0
	stateCompile   = 1
)

// memBase is the lowest legal address in a context's arena; addresses
// below it are reserved (so that 0 can mean "not a word" everywhere a
// Word/xt is stored).
const memBase = 16

const (
	defaultDSSize = 1024
	defaultRSSize = 1024
	defaultFSSize = 256
	padSize       = 80
	holdSize      = 80
)

// Context is the single state machine the interpreter runs: one arena,
// its stacks, its dictionary, its active input, and (if opened) one
// block buffer. Nothing here is shared between contexts except the
// read-only builtin table (see builtins.go).
type Context struct {
	ioCore

	mem cellmem.Cells
	sym symbols

	latest  Word
	highWater Word // dictionary head right after builtins load; recorded only, MARKER does not consult it

	ds *stack
	rs *stack
	fs *fstack

	ip        uint
	state     int
	stateAddr uint
	toInAddr  uint
	srcBufAddr uint
	srcBufCap  uint
	base      int

	padBase  uint
	holdBase uint

	baseAddr       uint
	traceAddr      uint
	argvTableAddr  uint
	blockBufAddr   uint
	blkNumAddr     uint

	searchPath    []string
	handleCounter int

	currentWord Word // the primitive currently executing; used by MARKER et al.

	litWord  Word
	flitWord Word
	exitWord Word

	lastThrowMess string

	pad    [padSize]byte
	holdAt int

	block blockState

	signals signalState

	argv []string
	env  []string
}

// ContextOption configures a Context at construction, in the style of
// gothird's VMOption/apply.
type ContextOption interface{ apply(ctx *Context) }

type ctxOptionFunc func(ctx *Context)

func (f ctxOptionFunc) apply(ctx *Context) { f(ctx) }

// WithInput sets the initial (terminal-class) input source.
func WithInput(r io.Reader) ContextOption {
	return ctxOptionFunc(func(ctx *Context) { ctx.pushTerminal(r) })
}

// WithOutput sets the context's output writer.
func WithOutput(w io.Writer) ContextOption {
	return ctxOptionFunc(func(ctx *Context) { ctx.out = flushio.NewWriteFlusher(w) })
}

// WithLogf installs the step-trace log function (TRACE, -trace).
func WithLogf(logfn func(mess string, args ...interface{})) ContextOption {
	return ctxOptionFunc(func(ctx *Context) { ctx.logfn = logfn })
}

// WithStackSizes overrides the data/return/float stack capacities (-d/-r
// set the first two; the float stack size has no CLI flag).
func WithStackSizes(ds, rs, fs int) ContextOption {
	return ctxOptionFunc(func(ctx *Context) {
		ctx.ds = newStack(ds, "data", throwDSOver, throwDSUnder)
		ctx.rs = newStack(rs, "return", throwRSOver, throwRSUnder)
		ctx.fs = newFStack(fs)
	})
}

// WithMemLimit caps the arena's total size (the -m mem-kb flag).
func WithMemLimit(limit uint) ContextOption {
	return ctxOptionFunc(func(ctx *Context) { ctx.mem.Limit = limit })
}

// WithArgs sets the argv/env tables exposed by the `args`/`env` tool words.
func WithArgs(argv, env []string) ContextOption {
	return ctxOptionFunc(func(ctx *Context) { ctx.argv = argv; ctx.env = env })
}

// setState updates both the Go-side state field and its mirror cell in
// the arena, so STATE @ observes the same value primitives branch on.
func (ctx *Context) setState(s int) {
	ctx.state = s
	if err := ctx.mem.Stor(ctx.stateAddr, Cell(s)); err != nil {
		ctx.throwf(throwInvalidMemoryAddress, "STATE: %v", err)
	}
}

// stateCellAddr returns the address of the STATE variable.
func (ctx *Context) stateCellAddr() uint { return ctx.stateAddr }

// getBase reads the live BASE cell, so a user store through `BASE !`
// immediately affects the next numeric conversion.
func (ctx *Context) getBase() int {
	v, err := ctx.mem.Load(ctx.baseAddr)
	if err != nil || v < 2 || v > 36 {
		return ctx.base
	}
	return int(v)
}

// traceOn reports whether the TRACE variable is non-zero, the runtime gate
// for the inner interpreter's step tracer (see inner.go's runPrimitive).
func (ctx *Context) traceOn() bool {
	v, err := ctx.mem.Load(ctx.traceAddr)
	return err == nil && v != 0
}

var defaultOptions = []ContextOption{
	WithInput(bytes.NewReader(nil)),
	WithOutput(ioutil.Discard),
	WithStackSizes(defaultDSSize, defaultRSSize, defaultFSSize),
}

// New builds a Context, applies opts over sensible defaults, loads the
// builtin word table, and records the dictionary high-water mark.
func New(opts ...ContextOption) *Context {
	ctx := &Context{base: 10}
	for _, opt := range defaultOptions {
		opt.apply(ctx)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ctx)
		}
	}
	ctx.mem.SetBase(memBase)
	ctx.mem.PageSize = 512
	ctx.stateAddr = ctx.mem.Bump(1)
	ctx.toInAddr = ctx.mem.Bump(1)
	ctx.srcBufCap = 256
	ctx.srcBufAddr = ctx.mem.Bump(int(ctx.srcBufCap))
	ctx.padBase = ctx.mem.Bump(padSize)
	ctx.holdBase = ctx.mem.Bump(holdSize)
	ctx.baseAddr = ctx.mem.Bump(1)
	ctx.traceAddr = ctx.mem.Bump(1)
	ctx.blockBufAddr = ctx.mem.Bump(blockSize)
	ctx.blkNumAddr = ctx.mem.Bump(1)
	if err := ctx.mem.Stor(ctx.baseAddr, Cell(10)); err != nil {
		panic(err)
	}
	ctx.base = 10
	loadBuiltins(ctx)
	ctx.highWater = ctx.latest
	ctx.searchPath = defaultSearchPath()
	ctx.buildArgvTable()
	return ctx
}
