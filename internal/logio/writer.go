package logio

import (
	"bytes"
	"sync"
)

// Writer adapts a leveled Logf function into an io.Writer: this is how
// main.go's --dump summary is routed through the same leveled Logger used
// for TRACE, rather than writing to stdout/stderr directly.
type Writer struct {
	Logf func(string, ...interface{})

	mu  sync.Mutex
	buf bytes.Buffer
}

// Write buffers p and emits any completed lines through Logf, one Logf
// call per line.
func (lw *Writer) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	lw.emit(false)
	return len(p), nil
}

// Close flushes whatever partial line remains buffered.
func (lw *Writer) Close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.emit(true)
	return nil
}

func (lw *Writer) emit(flushPartial bool) {
	for lw.buf.Len() > 0 {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i >= 0 {
			lw.Logf("%s", lw.buf.Next(i))
			lw.buf.Next(1)
			continue
		}
		if flushPartial {
			lw.Logf("%s", lw.buf.Next(lw.buf.Len()))
		}
		break
	}
}
