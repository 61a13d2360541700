package main

// A Cell is a host-word-sized value; which of its several uses applies
// (signed integer, unsigned/address, or execution token) is
// determined by the reader at each use site, per the spec's data model.
// The arena that stores cells is int-addressed; word pointers compiled
// into a definition's body are stored as the numeric address of the
// referenced Word's header in that arena (see word.go), not as Go pointers,
// so that compiled code is plain data that ALLOT/`,`/DUMP can inspect.
type Cell = int

// wordBits is the flag set carried in a word header.
type wordBits uint

const (
	bitImmediate wordBits = 1 << iota
	bitCreated
	bitHidden
	bitCompileOnly
)

func (b wordBits) has(f wordBits) bool { return b&f == f }

// opCode tags the primitive that a word's code field names. Non-primitive
// words (ordinary colon definitions) carry opEnter.
type opCode int

const (
	opEnter    opCode = iota // colon definition: push IP, jump into data[]
	opDataField              // CREATEd word: push &data[1]
	opDoDoes                 // DOES>-patched word: push &data[1], jump into data[0]
	opLit                    // compiled literal: push next cell
	opFLit                   // compiled float literal: push next cell (as float bits) on fs
	opBranch                 // unconditional relative branch
	opBranchZ                // pop; branch if zero, else skip the offset cell
	opCall                   // push return, relative branch (_call)
	opExit                   // pop return stack into IP
	opExecute                // EXECUTE: pop xt, dispatch it directly
	opLongjmp                // _longjmp: pop n, throw it

	opFirstNamed // primitives at and above this tag have dictionary entries; see builtins.go
)

// opFunc is the signature of a primitive implementation.
type opFunc func(ctx *Context)
