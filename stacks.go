package main

// stackSentinel is the fixed magic value written one cell past the end
// of every data/return stack's backing array (see newStack), so that an overrunning push is
// detectable even if bounds checking were ever bypassed. It is never
// itself a legal stack value.
const stackSentinel Cell = ^Cell(0x5a5a5a5a)

// stack is a bounded LIFO of Cells: the data or the return stack (the
// float stack is the separate fstack below). Grounded on post4.h's P4_Stack/P4_PUSH/P4_POP/
// P4_PICK macros, generalized to a Go bounds-checked slice.
type stack struct {
	cells     []Cell
	size      int
	name      string
	overflow  throwCode
	underflow throwCode
}

func newStack(size int, name string, overflow, underflow throwCode) *stack {
	backing := make([]Cell, size+1)
	backing[size] = stackSentinel
	s := &stack{
		cells:     backing[:0],
		size:      size,
		name:      name,
		overflow:  overflow,
		underflow: underflow,
	}
	return s
}

func (ctx *Context) stackThrow(s *stack, code throwCode) {
	ctx.throwf(code, "%s stack", s.name)
}

func (ctx *Context) push(s *stack, v Cell) {
	if len(s.cells) >= s.size {
		ctx.stackThrow(s, s.overflow)
	}
	s.cells = append(s.cells, v)
}

func (ctx *Context) pop(s *stack) Cell {
	if len(s.cells) == 0 {
		ctx.stackThrow(s, s.underflow)
	}
	n := len(s.cells) - 1
	v := s.cells[n]
	s.cells = s.cells[:n]
	return v
}

// pick returns the cell offset positions below the top (0 is the top
// itself), without removing it.
func (ctx *Context) pick(s *stack, offset int) Cell {
	i := len(s.cells) - 1 - offset
	if i < 0 || i >= len(s.cells) {
		ctx.stackThrow(s, s.underflow)
	}
	return s.cells[i]
}

// setPick overwrites the cell offset positions below the top.
func (ctx *Context) setPick(s *stack, offset int, v Cell) {
	i := len(s.cells) - 1 - offset
	if i < 0 || i >= len(s.cells) {
		ctx.stackThrow(s, s.underflow)
	}
	s.cells[i] = v
}

func (s *stack) depth() int { return len(s.cells) }

func (s *stack) reset() { s.cells = s.cells[:0] }

// drop removes n cells from the top without returning them.
func (ctx *Context) drop(s *stack, n int) {
	if n < 0 || n > len(s.cells) {
		ctx.stackThrow(s, s.underflow)
	}
	s.cells = s.cells[:len(s.cells)-n]
}

// restoreDepth truncates (never grows) the stack back to depth n, used by
// CATCH to undo any net push/pop left behind by a thrown word.
func (s *stack) restoreDepth(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(s.cells) {
		n = len(s.cells)
	}
	s.cells = s.cells[:n]
}

// fstack is the floating-point analogue of stack, kept separate since
// post4's float stack holds float64 values, not Cells (§3, §4.10).
type fstack struct {
	cells     []float64
	size      int
	overflow  throwCode
	underflow throwCode
}

func newFStack(size int) *fstack {
	return &fstack{cells: make([]float64, 0, size+1), size: size, overflow: throwFSOver, underflow: throwFSUnder}
}

func (ctx *Context) fpush(v float64) {
	fs := ctx.fs
	if len(fs.cells) >= fs.size {
		ctx.throw(fs.overflow)
	}
	fs.cells = append(fs.cells, v)
}

func (ctx *Context) fpop() float64 {
	fs := ctx.fs
	if len(fs.cells) == 0 {
		ctx.throw(fs.underflow)
	}
	n := len(fs.cells) - 1
	v := fs.cells[n]
	fs.cells = fs.cells[:n]
	return v
}
