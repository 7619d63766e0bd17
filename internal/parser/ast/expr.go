package ast

import (
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// Number is an integer literal: 42
type Number struct {
	ValuePos lexer.Position
	Value    int64
}

func (n *Number) Pos() lexer.Position  { return n.ValuePos }
func (n *Number) Type() types.DataType { return types.Integer }
func (n *Number) exprNode()            {}
func (n *Number) Accept(v Visitor) (any, error) {
	return v.VisitNumber(n)
}

// Float is a real literal: 2.5
type Float struct {
	ValuePos lexer.Position
	Value    float64
}

func (f *Float) Pos() lexer.Position  { return f.ValuePos }
func (f *Float) Type() types.DataType { return types.Real }
func (f *Float) exprNode()            {}
func (f *Float) Accept(v Visitor) (any, error) {
	return v.VisitFloat(f)
}

// String is a string literal. Value holds the decoded text.
type String struct {
	ValuePos lexer.Position
	Value    string
}

func (s *String) Pos() lexer.Position  { return s.ValuePos }
func (s *String) Type() types.DataType { return types.String }
func (s *String) exprNode()            {}
func (s *String) Accept(v Visitor) (any, error) {
	return v.VisitString(s)
}

// Char is a character literal: 'a'
type Char struct {
	ValuePos lexer.Position
	Value    rune
}

func (c *Char) Pos() lexer.Position  { return c.ValuePos }
func (c *Char) Type() types.DataType { return types.Char }
func (c *Char) exprNode()            {}
func (c *Char) Accept(v Visitor) (any, error) {
	return v.VisitChar(c)
}

// Bool is true or false.
type Bool struct {
	ValuePos lexer.Position
	Value    bool
}

func (b *Bool) Pos() lexer.Position  { return b.ValuePos }
func (b *Bool) Type() types.DataType { return types.Bool }
func (b *Bool) exprNode()            {}
func (b *Bool) Accept(v Visitor) (any, error) {
	return v.VisitBool(b)
}

// Variable is a reference to a declared variable or parameter. Resolved is
// the declared type of the symbol.
type Variable struct {
	NamePos  lexer.Position
	Name     string
	Resolved types.DataType
}

func (v *Variable) Pos() lexer.Position  { return v.NamePos }
func (v *Variable) Type() types.DataType { return v.Resolved }
func (v *Variable) exprNode()            {}
func (v *Variable) Accept(vis Visitor) (any, error) {
	return vis.VisitVariable(v)
}

// BinaryExpr is `Left Op Right`. Resolved is the operation type, which can
// differ from both operand types.
type BinaryExpr struct {
	Left     Expr
	Op       types.Operator
	OpPos    lexer.Position
	Right    Expr
	Resolved types.DataType
}

func (b *BinaryExpr) Pos() lexer.Position  { return b.Left.Pos() }
func (b *BinaryExpr) Type() types.DataType { return b.Resolved }
func (b *BinaryExpr) exprNode()            {}
func (b *BinaryExpr) Accept(v Visitor) (any, error) {
	return v.VisitBinaryExpr(b)
}

// UnaryExpr is a negation: -Operand
type UnaryExpr struct {
	OpPos   lexer.Position
	Operand Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.OpPos }

// Type is Real for a Real operand and Integer otherwise.
func (u *UnaryExpr) Type() types.DataType {
	if u.Operand.Type() == types.Real {
		return types.Real
	}
	return types.Integer
}
func (u *UnaryExpr) exprNode() {}
func (u *UnaryExpr) Accept(v Visitor) (any, error) {
	return v.VisitUnaryExpr(u)
}

// FunctionCall is `Name(Args)`. Resolved is the callee's return type.
type FunctionCall struct {
	NamePos  lexer.Position
	Name     string
	Args     []Expr
	Resolved types.DataType
}

func (c *FunctionCall) Pos() lexer.Position  { return c.NamePos }
func (c *FunctionCall) Type() types.DataType { return c.Resolved }
func (c *FunctionCall) exprNode()            {}
func (c *FunctionCall) Accept(v Visitor) (any, error) {
	return v.VisitFunctionCall(c)
}
