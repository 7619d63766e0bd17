package ast

import (
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// Block is `{ Statements }`. A function body is a Block; nested blocks are
// statements of their own and open a new scope.
type Block struct {
	LeftBrace  lexer.Position
	Statements []Stmt
	RightBrace lexer.Position
}

func (b *Block) Pos() lexer.Position { return b.LeftBrace }
func (b *Block) stmtNode()           {}
func (b *Block) Accept(v Visitor) error {
	return v.VisitBlock(b)
}

// VarDeclaration is `dec Name: Type [= Init];`. Init is nil when the
// declaration has no initializer; the generator then emits the type's
// default value.
type VarDeclaration struct {
	DecPos lexer.Position
	Name   string
	Type   types.DataType
	Init   Expr
	Global bool
}

func (d *VarDeclaration) Pos() lexer.Position { return d.DecPos }
func (d *VarDeclaration) stmtNode()           {}
func (d *VarDeclaration) Accept(v Visitor) error {
	return v.VisitVarDeclaration(d)
}

// Assignment is `Name = Value;`. Target is the declared type of Name.
type Assignment struct {
	NamePos lexer.Position
	Name    string
	Target  types.DataType
	Value   Expr
}

func (a *Assignment) Pos() lexer.Position { return a.NamePos }
func (a *Assignment) stmtNode()           {}
func (a *Assignment) Accept(v Visitor) error {
	return v.VisitAssignment(a)
}

// Return is `ret [Value];`. Value is nil for a bare return.
type Return struct {
	RetPos lexer.Position
	Value  Expr
}

func (r *Return) Pos() lexer.Position { return r.RetPos }
func (r *Return) stmtNode()           {}
func (r *Return) Accept(v Visitor) error {
	return v.VisitReturn(r)
}

// Log is `log(Elements);`, lowered to one printf call.
type Log struct {
	LogPos   lexer.Position
	Elements []LogElement
}

func (l *Log) Pos() lexer.Position { return l.LogPos }
func (l *Log) stmtNode()           {}
func (l *Log) Accept(v Visitor) error {
	return v.VisitLog(l)
}

// LogElementKind says what a log element holds.
type LogElementKind int

const (
	// LogText is literal text, copied into the format string.
	LogText LogElementKind = iota

	// LogNumber is a numeric literal passed as a printf argument.
	LogNumber

	// LogVariable is a variable passed as a printf argument.
	LogVariable
)

func (k LogElementKind) String() string {
	switch k {
	case LogText:
		return "text"
	case LogNumber:
		return "number"
	case LogVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// LogElement is one piece of a log statement.
//
// For LogText, Value is the decoded text. For LogNumber, Value is the C
// spelling of the literal. For LogVariable, Value is the variable name.
// Placeholder is the printf conversion resolved from Type; it is empty for
// text.
type LogElement struct {
	Kind        LogElementKind
	Value       string
	Type        types.DataType
	Placeholder string
	Pos         lexer.Position
}

// ExprStmt is an expression evaluated for its effect, typically a call:
// `greet();`
type ExprStmt struct {
	X Expr
}

func (e *ExprStmt) Pos() lexer.Position { return e.X.Pos() }
func (e *ExprStmt) stmtNode()           {}
func (e *ExprStmt) Accept(v Visitor) error {
	return v.VisitExprStmt(e)
}
