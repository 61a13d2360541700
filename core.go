package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ruv/post4go/internal/flushio"
	"github.com/ruv/post4go/internal/runeio"
)

// logging is a leveled, wrappable step tracer in the teacher's own style:
// TRACE toggles it at runtime via logf, and -trace wires it from the CLI.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

// ioCore bundles the output writer and input-source stack shared by every
// word that reads or writes characters, plus any resources that must be
// closed when the context shuts down (block files, included files).
type ioCore struct {
	logging
	in      inputStack
	out     flushio.WriteFlusher
	closers []io.Closer
}

func (core *ioCore) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt flushes output, logs the cause, then panics with a haltError: a
// fatal condition (I/O failure writing the prompt, e.g.) distinct from an
// ordinary THROW, since it cannot be CATCHable state the REPL continues
// from.
func (core *ioCore) halt(err error) {
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()

	panic(haltError{err})
}

func (core *ioCore) writeRune(r rune) {
	if _, err := runeio.WriteANSIRune(core.out, r); err != nil {
		core.halt(err)
	}
}

func (core *ioCore) writeString(s string) {
	for _, r := range s {
		core.writeRune(r)
	}
}

// readRune reads the next rune from the active input source, flushing
// pending output first (so prompts appear before a blocking terminal
// read). It returns 0, io.EOF at the bottom of the input stack.
func (core *ioCore) readRune() (rune, error) {
	if core.out != nil {
		if err := core.out.Flush(); err != nil {
			core.halt(err)
		}
	}
	r, _, err := core.in.current().ReadRune()
	return r, err
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }
