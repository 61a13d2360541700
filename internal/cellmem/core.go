// Package cellmem implements the paged, growable cell arena that backs a
// post4 context's data space: word headers, compiled definitions, and
// CREATEd data all live in one such arena, addressed by plain integers.
package cellmem

import "fmt"

// PagedCore provides bookkeeping common to any paged memory model: a
// monotonically increasing set of fixed-size pages, addressed by their
// base, plus an optional hard limit past which any access is an error.
type PagedCore struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit specifies a limit, past which any store or load should result in
	// an error. Zero means unlimited.
	Limit uint

	bases []uint
	sizes []uint
}

// LimitError indicates that a memory operation, like Load or Stor, exceeded
// the arena's Limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

func (m *PagedCore) findPage(addr uint) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := int(uint(i+j)>>1) + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

func (m *PagedCore) allocPage(pageID int, addr uint) (base, size uint, isNew bool) {
	if pageID == len(m.bases) {
		base = addr / m.PageSize * m.PageSize
		size = m.PageSize
		if i := len(m.bases) - 1; i >= 0 {
			lastEnd := m.bases[i] + m.sizes[i]
			if base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		m.bases = append(m.bases, base)
		m.sizes = append(m.sizes, size)
		return base, size, true
	}

	base = m.bases[pageID]
	if addr < base {
		size = m.PageSize
		nextBase := base
		base = addr / m.PageSize * m.PageSize
		if gapSize := nextBase - base; size > gapSize {
			size = gapSize
		}
		m.bases = append(m.bases, 0)
		m.sizes = append(m.sizes, 0)
		copy(m.bases[pageID+1:], m.bases[pageID:])
		copy(m.sizes[pageID+1:], m.sizes[pageID:])
		m.bases[pageID] = base
		m.sizes[pageID] = size
		return base, size, true
	}

	return base, m.sizes[pageID], false
}

func (m *PagedCore) checkLimit(addr uint, op string) error {
	if maxSize := m.Limit; maxSize != 0 && addr > maxSize {
		return LimitError{addr, op}
	}
	return nil
}

// Size returns an address one position past the end of the last page
// allocated so far.
func (m *PagedCore) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + m.sizes[i]
	}
	return 0
}

const defaultPageSize = 512

// Cells implements an int-cell-oriented paged arena. It is the sole
// storage for a context's data space: dictionary headers, compiled word
// bodies, and CREATEd variables/arrays are all cells within it, addressed
// by a bump-allocated "here" pointer (see Bump).
type Cells struct {
	PagedCore
	pages [][]int

	here uint
	base uint
}

// SetBase fixes the lowest legal address (the arena's "mem" bound); loads
// below it never happen in practice since Bump starts here is never below
// it, but Stor to an address below base is rejected by the caller
// (word-create/allot), not by Cells itself.
func (m *Cells) SetBase(base uint) {
	m.base = base
	if m.here < base {
		m.here = base
	}
}

// Base returns the arena's lowest legal address.
func (m *Cells) Base() uint { return m.base }

// Here returns the current bump pointer: the next free address.
func (m *Cells) Here() uint { return m.here }

// Bump advances (or, if n is negative, retreats) the bump pointer by n,
// returning the address it used to be at (i.e. the address at which n
// cells worth of space starts, for n >= 0). It is the caller's
// responsibility to reject bumps below Base() or past Limit.
func (m *Cells) Bump(n int) uint {
	start := m.here
	m.here = uint(int(m.here) + n)
	return start
}

// Load returns a single value from the given address. Unallocated pages
// read back as zero.
func (m *Cells) Load(addr uint) (int, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}
	if m.PageSize == 0 || len(m.pages) == 0 {
		return 0, nil
	}
	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}
	return 0, nil
}

// LoadInto reads len(buf) cells starting at addr, zeroing any portion that
// falls in an unallocated page.
func (m *Cells) LoadInto(addr uint, buf []int) error {
	if len(buf) == 0 {
		return nil
	}
	end := addr + uint(len(buf))
	if err := m.checkLimit(end, "load"); err != nil {
		return err
	}
	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}
		if skip := int(base) - int(addr); skip > 0 {
			if skip >= len(buf) {
				break
			}
			addr += uint(skip)
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
		}
		page := m.pages[pageID]
		if skip := int(addr) - int(base); skip > 0 {
			if skip >= len(page) {
				continue
			}
			base += uint(skip)
			page = page[skip:]
		}
		n := copy(buf, page)
		buf = buf[n:]
		addr += uint(n)
	}
	for i := range buf {
		buf[i] = 0
	}
	return nil
}

// Stor stores values starting at addr, allocating pages as needed.
func (m *Cells) Stor(addr uint, values ...int) error {
	if len(values) == 0 {
		return nil
	}
	end := addr + uint(len(values))
	if err := m.checkLimit(end, "stor"); err != nil {
		return err
	}
	if m.PageSize == 0 {
		m.PageSize = defaultPageSize
	}
	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			base += skip
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}
	return nil
}

func (m *Cells) allocPage(pageID int, addr uint) (base, size uint, page []int) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]int, size)
		if pageID == len(m.bases) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}
