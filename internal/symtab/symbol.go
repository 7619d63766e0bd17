// Package symtab implements the symbol and function tables consulted while
// parsing.
//
// Variables live in a stack of scopes. The global scope holds top-level
// declarations; a function scope is pushed for each function body and a
// block scope for each nested block. A name may not be declared while it is
// visible from an enclosing scope, but sibling scopes may reuse names.
//
// Functions live in a separate, flat namespace.
package symtab

import (
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// SymbolKind distinguishes variables from parameters.
type SymbolKind int

const (
	// SymbolVariable is declared with dec, inside a function or globally.
	SymbolVariable SymbolKind = iota

	// SymbolParameter is a function parameter. It lives in the function
	// scope alongside the body's top-level variables.
	SymbolParameter
)

// String returns a human-readable representation of the symbol kind.
func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Symbol is a declared variable or parameter.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type types.DataType

	// Pos is where the symbol was declared, for "already declared at"
	// messages.
	Pos lexer.Position
}

// String returns "kind name: type at position",
// e.g. "variable x: num at main.w:3:5".
func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.Type.String() + " at " + s.Pos.String()
}
