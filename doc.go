/*
Command post4 implements the core of a post4-family Forth: a dual-stack
virtual machine, an indirect-threaded inner interpreter, a dictionary of
word definitions backed by a single bump-allocated cell arena, an outer
interpreter (REPL) that classifies input tokens as words or numbers, and
a compiler that builds new definitions by appending execution tokens to
that arena.

The source is organized the way a small threaded Forth usually is:

  - cell.go: the bit flags carried by a word header and the primitive
    opcode table used for indirect-threaded dispatch.
  - word.go: the dictionary — word records, lookup, creation, ALLOT.
  - stacks.go: the bounds-checked data/return/float stacks.
  - input.go / parser.go: the nested input-source stack and the
    delimiter-bounded token parser.
  - numeric.go: string-to-number conversion in the current radix.
  - inner.go: the threaded-code dispatch loop.
  - outer.go: the REPL — refill, parse, classify, execute or compile.
  - compiler.go: `:` `;` `CREATE` `DOES>` `MARKER` and friends.
  - throw.go: the THROW/CATCH non-local unwind installed around the REPL.
  - words_*.go: the built-in word table, grouped as in the external word
    list (stack, arithmetic, memory, heap, I/O, blocks, tools, float).
  - block.go: the 1024-byte block file.
  - main.go: the command-line front end.

A single Context owns one arena, its stacks, its dictionary, and (if a
block file was opened) one block buffer; nothing here is shared between
contexts except the read-only table of built-in primitives and the
process-wide signal-target pointer described in §5 of the design.
*/
package main
