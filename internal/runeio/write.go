// Package runeio writes runes the way a Forth terminal's EMIT expects:
// printable ASCII goes out byte-for-byte, C1 controls (which a raw
// terminal would otherwise swallow) are down-converted to their classic
// 7-bit escape form, and everything else falls back to plain UTF-8.
package runeio

import "io"

// WriteANSIRune writes r to w:
//   - ASCII (r < 0x80) is written directly as one byte
//   - NEL (0x85) is written as the more conventional "\r\n"
//   - the rest of the C1 range is written in 7-bit form, e.g. CSI (0x9b)
//     becomes "\x1b\x5b"
//   - everything else is written as UTF-8
//
// EMIT routes every character a compiled word prints through this, so a
// post4 script that emits a raw C1 byte still produces something a
// terminal can render.
func WriteANSIRune(w io.Writer, r rune) (n int, err error) {
	switch {
	case r < 0x80:
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	case r == 0x85:
		return w.Write([]byte{'\r', '\n'})
	case r <= 0x9f:
		return w.Write([]byte{0x1b, byte(r ^ 0xc0)})
	}
	if rw, ok := w.(interface{ WriteRune(r rune) (int, error) }); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	return w.Write([]byte(string(r)))
}
