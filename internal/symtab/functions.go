package symtab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hassan/wlang/internal/container"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// ErrFunctionExists is returned when a function name is declared twice.
var ErrFunctionExists = errors.New("function already declared")

// Function is a declared function. Params holds the parameter types in
// declaration order.
type Function struct {
	Name       string
	ReturnType types.DataType
	Params     []types.DataType
	Pos        lexer.Position
}

// String returns the W signature, e.g. "add(num, num): num".
func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return f.Name + "(" + strings.Join(params, ", ") + "): " + f.ReturnType.String()
}

// FunctionTable is the single global function namespace.
type FunctionTable struct {
	functions *container.Map[string, *Function]
	order     []*Function
}

// NewFunctionTable creates an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{
		functions: container.New(container.DefaultCapacity, container.Config[string, *Function]{
			Keys:         container.StringKeys{},
			KeyOwnership: container.OwnedStrings{},
		}),
	}
}

// Add declares fn. It fails if a function with the same name exists.
func (ft *FunctionTable) Add(fn *Function) error {
	if existing, ok := ft.functions.Get(fn.Name); ok {
		return fmt.Errorf("%w: '%s' at %s", ErrFunctionExists, fn.Name, existing.Pos)
	}
	ft.functions.Put(fn.Name, fn)
	ft.order = append(ft.order, fn)
	return nil
}

// Lookup returns the function called name.
func (ft *FunctionTable) Lookup(name string) (*Function, bool) {
	return ft.functions.Get(name)
}

// Len returns the number of declared functions.
func (ft *FunctionTable) Len() int {
	return ft.functions.Len()
}

// Functions returns the declared functions in declaration order.
func (ft *FunctionTable) Functions() []*Function {
	out := make([]*Function, len(ft.order))
	copy(out, ft.order)
	return out
}

// Release drops every function. The table must not be used afterwards.
func (ft *FunctionTable) Release() {
	ft.functions.Destroy()
	ft.order = nil
}
