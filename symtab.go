package main

// symbols interns word names so that a word header's name field can be a
// single cell (the symbol id) rather than a variable-length string
// embedded in the arena. Adapted directly from the teacher's own
// string-interning table.
type symbols struct {
	strings []string
	ids     map[string]uint
}

func (s symbols) string(id uint) string {
	if i := int(id) - 1; i >= 0 && i < len(s.strings) {
		return s.strings[i]
	}
	return ""
}

func (s *symbols) symbolicate(str string) uint {
	id, defined := s.ids[str]
	if !defined {
		if s.ids == nil {
			s.ids = make(map[string]uint)
		}
		id = uint(len(s.strings)) + 1
		s.strings = append(s.strings, str)
		s.ids[str] = id
	}
	return id
}

func (ctx *Context) internSymbol(s string) uint { return ctx.sym.symbolicate(s) }
func (ctx *Context) symbolFor(id uint) string   { return ctx.sym.string(id) }
