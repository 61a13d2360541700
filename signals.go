package main

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// signalState is the per-context half of §5's signal model: process-wide
// signals are registered once (installSignals) and funnel into whichever
// context currently holds targetCtx, via an atomic pending-throw code
// checked at each inner-interpreter step boundary (checkSignal) rather
// than unwound from inside the handler itself, per the REDESIGN note on
// async signal delivery.
type signalState struct {
	pending     int32 // atomic: a throwCode, or 0 for none pending
	termRestore func()
}

// targetCtx is the process-level "one specific context" §5 requires
// signal delivery resolve to.
var targetCtx atomic.Value // holds *Context

// windowCols/windowRows mirror §5's process-global terminal size record,
// refreshed on SIGWINCH and returned by windowSize. No built-in word
// exposes it; there is no _window primitive.
var windowMu sync.Mutex
var windowCols, windowRows int

var installSignalsOnce sync.Once

// installSignals registers the process-wide SIGINT/SIGWINCH handlers.
// Safe to call more than once; only the first call installs anything.
func installSignals(ctx *Context) {
	targetCtx.Store(ctx)
	installSignalsOnce.Do(func() {
		sigCh := make(chan os.Signal, 4)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGWINCH)
		go func() {
			for sig := range sigCh {
				switch sig {
				case syscall.SIGINT:
					if c, ok := targetCtx.Load().(*Context); ok {
						atomic.StoreInt32(&c.signals.pending, int32(throwSigint))
					}
				case syscall.SIGWINCH:
					cols, rows := termGetSize()
					windowMu.Lock()
					windowCols, windowRows = cols, rows
					windowMu.Unlock()
				}
			}
		}()
	})
}

// checkSignal is polled at each inner-interpreter NEXT boundary; a
// pending signal-derived throw fires here, on the interpreter's own
// goroutine, where an ordinary panic/recover unwind is safe.
func (ctx *Context) checkSignal() {
	code := atomic.SwapInt32(&ctx.signals.pending, 0)
	if code != 0 {
		ctx.throw(throwCode(code))
	}
}

// windowSize returns the last SIGWINCH-reported terminal size.
func windowSize() (cols, rows int) {
	windowMu.Lock()
	defer windowMu.Unlock()
	return windowCols, windowRows
}
