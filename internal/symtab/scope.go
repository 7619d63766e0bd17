package symtab

import (
	"errors"
	"fmt"

	"github.com/hassan/wlang/internal/container"
)

// ScopeKind says which construct opened a scope.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

func (sk ScopeKind) String() string {
	switch sk {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ErrAlreadyDeclared is returned when a name is declared twice in the
// visible scopes.
var ErrAlreadyDeclared = errors.New("already declared")

// Scope is one level of the scope stack.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	Depth  int

	symbols *container.Map[string, *Symbol]
}

// NewScope creates a scope nested in parent, which may be nil for the
// global scope.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	symbols := container.New(container.MinCapacity, container.Config[string, *Symbol]{
		Keys:         container.StringKeys{},
		KeyOwnership: container.OwnedStrings{},
	})
	return &Scope{
		Kind:    kind,
		Parent:  parent,
		Depth:   depth,
		symbols: symbols,
	}
}

// Define adds symbol to this scope only. Enclosing scopes are not checked;
// SymbolTable.Add does that.
func (s *Scope) Define(symbol *Symbol) error {
	if existing, ok := s.symbols.Get(symbol.Name); ok {
		return fmt.Errorf("%w: %s at %s", ErrAlreadyDeclared, existing.Name, existing.Pos)
	}
	s.symbols.Put(symbol.Name, symbol)
	return nil
}

// Lookup finds name in this scope or any enclosing scope.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if symbol, ok := scope.LookupLocal(name); ok {
			return symbol, true
		}
	}
	return nil, false
}

// LookupLocal finds name in this scope only.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	return s.symbols.Get(name)
}

// Len returns the number of symbols declared in this scope.
func (s *Scope) Len() int {
	return s.symbols.Len()
}

// release drops the scope's storage. The scope must not be used afterwards.
func (s *Scope) release() {
	s.symbols.Destroy()
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s scope (depth %d, %d symbols)", s.Kind, s.Depth, s.symbols.Len())
}
