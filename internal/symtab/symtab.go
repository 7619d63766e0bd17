package symtab

import (
	"errors"
	"fmt"

	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// ErrGlobalScope is returned when popping the global scope.
var ErrGlobalScope = errors.New("cannot pop the global scope")

// SymbolTable is the stack of variable scopes. It starts with the global
// scope open.
type SymbolTable struct {
	global  *Scope
	current *Scope
}

// New creates a symbol table holding an empty global scope.
func New() *SymbolTable {
	global := NewScope(ScopeGlobal, nil)
	return &SymbolTable{global: global, current: global}
}

// Global returns the global scope.
func (st *SymbolTable) Global() *Scope {
	return st.global
}

// Push opens a scope nested in the current one.
func (st *SymbolTable) Push(kind ScopeKind) *Scope {
	st.current = NewScope(kind, st.current)
	return st.current
}

// Pop closes the current scope and releases its symbols.
func (st *SymbolTable) Pop() error {
	if st.current == st.global {
		return ErrGlobalScope
	}
	closed := st.current
	st.current = closed.Parent
	closed.release()
	return nil
}

// Add declares a variable or parameter in the current scope. It fails with
// ErrAlreadyDeclared when the name is visible from the current scope.
func (st *SymbolTable) Add(name string, typ types.DataType, kind SymbolKind, pos lexer.Position) (*Symbol, error) {
	if existing, ok := st.current.Lookup(name); ok {
		return nil, fmt.Errorf("%w: variable '%s' at %s", ErrAlreadyDeclared, name, existing.Pos)
	}
	symbol := &Symbol{Name: name, Kind: kind, Type: typ, Pos: pos}
	if err := st.current.Define(symbol); err != nil {
		return nil, err
	}
	return symbol, nil
}

// Lookup finds the innermost visible symbol called name.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	return st.current.Lookup(name)
}

// Release closes every scope, the global one included. The table must not be
// used afterwards.
func (st *SymbolTable) Release() {
	for scope := st.current; scope != nil; scope = scope.Parent {
		scope.release()
	}
	st.current = st.global
}
