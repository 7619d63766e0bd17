// Package lexer turns W source text into the token stream the parser pulls
// from, one token at a time.
package lexer

import "strconv"

// Position is a location in the source code.
//
// Line and Column are 1-based; Column counts runes, not bytes. Offset is the
// 0-based byte offset into the source. The zero Position means "unknown".
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

// String returns the position in the GCC/Clang "file:line:column" form, which
// editors and CI systems turn into clickable links.
func (p Position) String() string {
	return p.Filename + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other in the same file.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}
