// Package ast defines the abstract syntax tree of W programs.
//
// The parser builds the tree and type-checks it in the same pass, so every
// expression node leaves the parser with its resolved data type. After
// parsing the tree is not modified. Children are owned by exactly one parent
// and sequences are plain slices.
//
// Consumers either switch on the concrete node types or implement Visitor.
package ast

import (
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// Node is implemented by every AST node.
type Node interface {
	// Pos returns the position of the first token of the node.
	Pos() lexer.Position
}

// Expr is an expression node.
type Expr interface {
	Node

	// Type returns the resolved data type of the expression.
	Type() types.DataType

	Accept(v Visitor) (any, error)
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	Accept(v Visitor) error
	stmtNode()
}

// Visitor walks the tree. Expression visits return a value of the visitor's
// choosing; statement visits only report errors.
type Visitor interface {
	VisitNumber(expr *Number) (any, error)
	VisitFloat(expr *Float) (any, error)
	VisitString(expr *String) (any, error)
	VisitChar(expr *Char) (any, error)
	VisitBool(expr *Bool) (any, error)
	VisitVariable(expr *Variable) (any, error)
	VisitBinaryExpr(expr *BinaryExpr) (any, error)
	VisitUnaryExpr(expr *UnaryExpr) (any, error)
	VisitFunctionCall(expr *FunctionCall) (any, error)

	VisitBlock(stmt *Block) error
	VisitVarDeclaration(stmt *VarDeclaration) error
	VisitAssignment(stmt *Assignment) error
	VisitReturn(stmt *Return) error
	VisitLog(stmt *Log) error
	VisitExprStmt(stmt *ExprStmt) error

	VisitFunction(fn *Function) error
}

// Program is the root of the tree: the global declarations and the functions
// of one source file, each in source order.
type Program struct {
	Filename  string
	Globals   []*VarDeclaration
	Functions []*Function
}

func (p *Program) Pos() lexer.Position {
	return lexer.Position{Filename: p.Filename, Line: 1, Column: 1}
}

// Entry returns the entry point function w, or nil if the program has none.
func (p *Program) Entry() *Function {
	for _, fn := range p.Functions {
		if fn.IsEntry {
			return fn
		}
	}
	return nil
}

// Function is a function definition.
//
// The entry point is the function named w. It is emitted as C's main.
type Function struct {
	FunPos     lexer.Position
	Name       string
	Params     []*Parameter
	ReturnType types.DataType
	Body       *Block
	IsEntry    bool

	// HasReturn records whether a ret statement appeared in the body.
	HasReturn bool
}

func (f *Function) Pos() lexer.Position { return f.FunPos }
func (f *Function) Accept(v Visitor) error {
	return v.VisitFunction(f)
}

// ParamTypes returns the parameter types in declaration order.
func (f *Function) ParamTypes() []types.DataType {
	out := make([]types.DataType, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}

// Parameter is one `name: type` entry of a parameter list.
type Parameter struct {
	NamePos lexer.Position
	Name    string
	Type    types.DataType
}

func (p *Parameter) Pos() lexer.Position { return p.NamePos }
