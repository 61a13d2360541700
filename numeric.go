package main

import (
	"strconv"
	"strings"
)

// strnumResult is the outcome of strnum: either an integer or a float was
// recognized (isFloat distinguishes which), and n reports how many bytes
// of str were consumed. A short count (n < len(str)) is strnum's failure
// signal, per §4.5.
type strnumResult struct {
	i       Cell
	f       float64
	isFloat bool
	n       int
	badBase bool // a '.'/E was seen mid-scan while base != 10
}

// strnum implements §4.5's number syntax: prefix characters override the
// base, a leading quote form reads a character literal, digits are taken
// while their base-36 value is < base, and a '.'/'E' encountered while
// base is 10 restarts the scan as a float.
func strnum(str string, base int) strnumResult {
	if str == "" {
		return strnumResult{}
	}

	i := 0
	b := base
	neg := false

	// character literal: 'c' or '\c'
	if str[0] == '\'' {
		rest := str[1:]
		if len(rest) >= 2 && rest[1] == '\'' {
			return strnumResult{i: Cell(rest[0]), n: 3}
		}
		if len(rest) >= 3 && rest[0] == '\\' && rest[2] == '\'' {
			return strnumResult{i: Cell(escapeLiteral(rest[1])), n: 4}
		}
		return strnumResult{n: 0}
	}

	switch {
	case strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X"):
		b, i = 16, 2
	case str[0] == '$':
		b, i = 16, 1
	case str[0] == '#':
		b, i = 10, 1
	case str[0] == '%':
		b, i = 2, 1
	case str[0] == '0' && len(str) > 1 && (isDigit36(str[1], 8) || str[1] == '-'):
		b, i = 8, 1
	}

	if i < len(str) && str[i] == '-' {
		neg = true
		i++
	}

	start := i
	for i < len(str) && isDigit36(str[i], b) {
		i++
	}

	if i < len(str) && b == 10 && (str[i] == '.' || str[i] == 'e' || str[i] == 'E') {
		return strnumFloat(str)
	}
	if i < len(str) && b != 10 && (str[i] == '.' || str[i] == 'e' || str[i] == 'E') {
		return strnumResult{n: 0, badBase: true}
	}

	if i == start {
		return strnumResult{n: 0}
	}

	v, err := strconv.ParseInt(str[start:i], b, 64)
	if err != nil {
		return strnumResult{n: 0}
	}
	if neg {
		v = -v
	}
	return strnumResult{i: Cell(v), n: i}
}

func strnumFloat(str string) strnumResult {
	end := len(str)
	for j, c := range str {
		if !(c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' || (c >= '0' && c <= '9')) {
			end = j
			break
		}
	}
	f, err := strconv.ParseFloat(str[:end], 64)
	if err != nil {
		return strnumResult{n: 0}
	}
	return strnumResult{f: f, isFloat: true, n: end}
}

func isDigit36(c byte, base int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < base
}

// parseNumber is the §4.3/§4.5 bridge: it attempts strnum against the
// full token and only accepts the result if every byte was consumed.
func (ctx *Context) parseNumber(tok string) (strnumResult, bool) {
	r := strnum(tok, ctx.getBase())
	if r.badBase {
		ctx.throwf(throwBadBase, "%s", tok)
	}
	if r.n != len(tok) {
		return strnumResult{}, false
	}
	return r, true
}
