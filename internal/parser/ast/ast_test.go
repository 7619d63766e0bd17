package ast

import (
	"testing"

	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
	"github.com/nalgeon/be"
)

func at(line, col int) lexer.Position {
	return lexer.Position{Filename: "t.w", Line: line, Column: col}
}

func TestDump_Program(t *testing.T) {
	sum := &BinaryExpr{
		Left:     &Number{ValuePos: at(1, 26), Value: 2},
		Op:       types.Add,
		Right:    &Number{Value: 3},
		Resolved: types.Integer,
	}
	prog := &Program{
		Globals: []*VarDeclaration{{Name: "g", Type: types.Real, Global: true}},
		Functions: []*Function{{
			Name:       "w",
			ReturnType: types.Integer,
			IsEntry:    true,
			Body: &Block{Statements: []Stmt{
				&VarDeclaration{Name: "x", Type: types.Integer, Init: sum},
				&Return{Value: &Variable{Name: "x", Resolved: types.Integer}},
			}},
		}},
	}

	want := "(program\n" +
		"  (dec g real)\n" +
		"  (fun w () num entry\n" +
		"    (dec x num (+ num (int 2) (int 3)))\n" +
		"    (ret (var x num))))"
	be.Equal(t, Dump(prog), want)
}

func TestDump_Statements(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"bare return",
			&Return{},
			"(ret)",
		},
		{
			"assignment",
			&Assignment{Name: "r", Target: types.Real, Value: &Float{Value: 2.5}},
			"(assign r (real 2.5))",
		},
		{
			"call statement",
			&ExprStmt{X: &FunctionCall{Name: "f", Resolved: types.Void, Args: []Expr{&Char{Value: 'a'}, &Bool{Value: true}}}},
			"(expr (call f zil (chr 'a') (bool true)))",
		},
		{
			"log",
			&Log{Elements: []LogElement{
				{Kind: LogText, Value: "x="},
				{Kind: LogText, Value: " "},
				{Kind: LogVariable, Value: "x", Type: types.String, Placeholder: "%s"},
				{Kind: LogNumber, Value: "7", Type: types.Integer, Placeholder: "%d"},
			}},
			`(log "x=" " " %s:x %d:7)`,
		},
		{
			"nested block",
			&Block{Statements: []Stmt{&Block{}}},
			"(block\n  (block))",
		},
		{
			"unary",
			&UnaryExpr{Operand: &Float{Value: 1}},
			"(neg real (real 1))",
		},
		{
			"string escapes",
			&String{Value: "a\n\"b\""},
			`(str "a\n\"b\"")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, Dump(tt.node), tt.want)
		})
	}
}

func TestDump_FunctionParams(t *testing.T) {
	fn := &Function{
		Name:       "add",
		ReturnType: types.Integer,
		Params: []*Parameter{
			{Name: "a", Type: types.Integer},
			{Name: "b", Type: types.Char},
		},
		Body: &Block{},
	}
	be.Equal(t, Dump(fn), "(fun add ((a num) (b chr)) num)")
	be.Equal(t, fn.ParamTypes(), []types.DataType{types.Integer, types.Char})
}

func TestExpr_Types(t *testing.T) {
	tests := []struct {
		expr Expr
		want types.DataType
	}{
		{&Number{}, types.Integer},
		{&Float{}, types.Real},
		{&String{}, types.String},
		{&Char{}, types.Char},
		{&Bool{}, types.Bool},
		{&Variable{Resolved: types.Char}, types.Char},
		{&UnaryExpr{Operand: &Char{}}, types.Integer},
		{&UnaryExpr{Operand: &Float{}}, types.Real},
		{&FunctionCall{Resolved: types.String}, types.String},
	}
	for _, tt := range tests {
		be.Equal(t, tt.expr.Type(), tt.want)
	}
}

func TestPositions(t *testing.T) {
	left := &Number{ValuePos: at(2, 5)}
	bin := &BinaryExpr{Left: left, OpPos: at(2, 7), Right: &Number{ValuePos: at(2, 9)}}
	be.Equal(t, bin.Pos(), at(2, 5))

	stmt := &ExprStmt{X: &FunctionCall{NamePos: at(4, 3)}}
	be.Equal(t, stmt.Pos(), at(4, 3))

	prog := &Program{Filename: "t.w"}
	be.Equal(t, prog.Pos(), at(1, 1))
}

func TestProgram_Entry(t *testing.T) {
	helper := &Function{Name: "helper"}
	entry := &Function{Name: "w", IsEntry: true}

	be.True(t, (&Program{Functions: []*Function{helper, entry}}).Entry() == entry)
	be.True(t, (&Program{Functions: []*Function{helper}}).Entry() == nil)
}

func TestLogElementKind_String(t *testing.T) {
	be.Equal(t, LogText.String(), "text")
	be.Equal(t, LogVariable.String(), "variable")
	be.Equal(t, LogElementKind(9).String(), "unknown")
}
