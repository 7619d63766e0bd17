// Package codegen renders a checked W program as C source.
//
// The output is the three standard includes, the w_concat helper when a
// string concatenation survives constant folding, the global declarations,
// then every function in source order. The entry point w becomes main. The
// generator trusts the tree: it is only run on programs that parsed without
// diagnostics, and it fails only on nodes the parser never produces.
package codegen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/hassan/wlang/internal/registry"
	"github.com/hassan/wlang/internal/semantic/types"
)

// ErrNilProgram is returned when Generate is given no program.
var ErrNilProgram = errors.New("codegen: nil program")

// Generator emits C code. It implements ast.Visitor: expression visits
// return the rendered expression as a string, statement visits write whole
// lines to the buffer at the current indentation.
type Generator struct {
	buf    strings.Builder
	indent int
	types  *registry.TypeRegistry

	// concat is set once a non-constant string concatenation was emitted,
	// so the output needs the concatenation helper.
	concat bool

	// fn is the function being generated.
	fn *ast.Function
}

// New creates a generator.
func New() *Generator {
	return &Generator{types: registry.Types()}
}

// Generate renders prog. The generator can be reused.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	if prog == nil {
		return "", ErrNilProgram
	}
	g.buf.Reset()
	g.indent = 0
	g.concat = false

	for _, decl := range prog.Globals {
		if err := decl.Accept(g); err != nil {
			return "", err
		}
	}
	if len(prog.Globals) > 0 {
		g.write("\n")
	}

	for i, fn := range prog.Functions {
		if i > 0 {
			g.write("\n")
		}
		if err := fn.Accept(g); err != nil {
			return "", fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}

	out := includes
	if g.concat {
		out += concatHelper
	}
	return out + g.buf.String(), nil
}

// Generate renders prog with a fresh generator.
func Generate(prog *ast.Program) (string, error) {
	return New().Generate(prog)
}

func (g *Generator) write(format string, args ...any) {
	if len(args) == 0 {
		g.buf.WriteString(format)
		return
	}
	fmt.Fprintf(&g.buf, format, args...)
}

// line writes one indented line.
func (g *Generator) line(format string, args ...any) {
	g.buf.WriteString(strings.Repeat(indentUnit, g.indent))
	g.write(format, args...)
	g.buf.WriteByte('\n')
}

func (g *Generator) ctype(t types.DataType) (string, error) {
	rec, ok := g.types.ByType(t)
	if !ok {
		return "", fmt.Errorf("codegen: no C type for %s", t)
	}
	return rec.CType, nil
}

func (g *Generator) isMain() bool {
	return g.fn != nil && g.fn.IsEntry
}

// Functions

func (g *Generator) VisitFunction(fn *ast.Function) error {
	g.fn = fn
	defer func() { g.fn = nil }()

	name := fn.Name
	ret, err := g.ctype(fn.ReturnType)
	if err != nil {
		return err
	}
	if fn.IsEntry {
		name, ret = entryName, "int"
	}

	params := "void"
	if len(fn.Params) > 0 {
		parts := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			ct, err := g.ctype(p.Type)
			if err != nil {
				return err
			}
			parts[i] = ct + " " + p.Name
		}
		params = strings.Join(parts, ", ")
	}

	g.line("%s %s(%s) {", ret, name, params)
	g.indent++
	if fn.Body != nil {
		if err := g.statements(fn.Body.Statements); err != nil {
			return err
		}
	}
	if fn.IsEntry && fn.ReturnType == types.Void {
		g.line("return 0;")
	}
	g.indent--
	g.line("}")
	return nil
}

func (g *Generator) statements(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := stmt.Accept(g); err != nil {
			return err
		}
	}
	return nil
}

// Statements

func (g *Generator) VisitBlock(stmt *ast.Block) error {
	g.line("{")
	g.indent++
	if err := g.statements(stmt.Statements); err != nil {
		return err
	}
	g.indent--
	g.line("}")
	return nil
}

func (g *Generator) VisitVarDeclaration(stmt *ast.VarDeclaration) error {
	ct, err := g.ctype(stmt.Type)
	if err != nil {
		return err
	}
	value := g.types.Default(stmt.Type)
	if stmt.Init != nil {
		if value, err = g.converted(stmt.Init, stmt.Type); err != nil {
			return err
		}
	}
	g.line("%s %s = %s;", ct, stmt.Name, value)
	return nil
}

func (g *Generator) VisitAssignment(stmt *ast.Assignment) error {
	value, err := g.converted(stmt.Value, stmt.Target)
	if err != nil {
		return err
	}
	g.line("%s = %s;", stmt.Name, value)
	return nil
}

func (g *Generator) VisitReturn(stmt *ast.Return) error {
	if stmt.Value == nil {
		if g.isMain() {
			g.line("return 0;")
		} else {
			g.line("return;")
		}
		return nil
	}
	value, err := g.expr(stmt.Value)
	if err != nil {
		return err
	}
	g.line("return %s;", value)
	return nil
}

// VisitLog lowers a log statement to one printf call ending in a newline.
func (g *Generator) VisitLog(stmt *ast.Log) error {
	var format, args strings.Builder
	for _, el := range stmt.Elements {
		switch el.Kind {
		case ast.LogText:
			format.WriteString(formatText(el.Value))
		case ast.LogNumber, ast.LogVariable:
			if el.Placeholder == "" {
				return fmt.Errorf("codegen: log element %s has no placeholder", el.Value)
			}
			format.WriteString(el.Placeholder)
			args.WriteString(", " + el.Value)
		default:
			return fmt.Errorf("codegen: unknown log element %s", el.Kind)
		}
	}
	g.line(`printf("%s\n"%s);`, format.String(), args.String())
	return nil
}

func (g *Generator) VisitExprStmt(stmt *ast.ExprStmt) error {
	value, err := g.expr(stmt.X)
	if err != nil {
		return err
	}
	g.line("%s;", value)
	return nil
}

// Expressions

func (g *Generator) expr(e ast.Expr) (string, error) {
	if e == nil {
		return "", errors.New("codegen: missing expression")
	}
	v, err := e.Accept(g)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// converted renders e for a slot of type target, casting when the value
// changes type between compatible types.
func (g *Generator) converted(e ast.Expr, target types.DataType) (string, error) {
	s, err := g.expr(e)
	if err != nil {
		return "", err
	}
	if e.Type() == target || !types.Compatible(target, e.Type()) {
		return s, nil
	}
	return g.cast(e, s, target)
}

// operand renders one side of a binary expression whose result has type
// result. Nested binary expressions are parenthesized; an operand of another
// type is cast when the conversion is allowed.
func (g *Generator) operand(e ast.Expr, result types.DataType) (string, error) {
	s, err := g.expr(e)
	if err != nil {
		return "", err
	}
	if e.Type() != result && types.CanConvert(e.Type(), result) {
		return g.cast(e, s, result)
	}
	if _, ok := e.(*ast.BinaryExpr); ok {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (g *Generator) cast(e ast.Expr, s string, to types.DataType) (string, error) {
	ct, err := g.ctype(to)
	if err != nil {
		return "", err
	}
	if _, ok := e.(*ast.BinaryExpr); ok {
		s = "(" + s + ")"
	}
	return "(" + ct + ")" + s, nil
}

func (g *Generator) VisitNumber(expr *ast.Number) (any, error) {
	return strconv.FormatInt(expr.Value, 10), nil
}

func (g *Generator) VisitFloat(expr *ast.Float) (any, error) {
	return FloatLiteral(expr.Value), nil
}

func (g *Generator) VisitString(expr *ast.String) (any, error) {
	return StringLiteral(expr.Value), nil
}

func (g *Generator) VisitChar(expr *ast.Char) (any, error) {
	return CharLiteral(expr.Value), nil
}

func (g *Generator) VisitBool(expr *ast.Bool) (any, error) {
	return strconv.FormatBool(expr.Value), nil
}

func (g *Generator) VisitVariable(expr *ast.Variable) (any, error) {
	return expr.Name, nil
}

func (g *Generator) VisitBinaryExpr(expr *ast.BinaryExpr) (any, error) {
	if expr.Resolved == types.String {
		return g.concatenation(expr)
	}
	left, err := g.operand(expr.Left, expr.Resolved)
	if err != nil {
		return nil, err
	}
	right, err := g.operand(expr.Right, expr.Resolved)
	if err != nil {
		return nil, err
	}
	return left + " " + expr.Op.String() + " " + right, nil
}

// concatenation renders str + str. Sums of literals are folded into one
// literal, which also keeps global initializers constant; anything else
// calls the helper.
func (g *Generator) concatenation(expr *ast.BinaryExpr) (string, error) {
	if text, ok := constantString(expr); ok {
		return StringLiteral(text), nil
	}
	left, err := g.expr(expr.Left)
	if err != nil {
		return "", err
	}
	right, err := g.expr(expr.Right)
	if err != nil {
		return "", err
	}
	g.concat = true
	return concatName + "(" + left + ", " + right + ")", nil
}

// constantString returns the value of a string expression made only of
// literals.
func constantString(e ast.Expr) (string, bool) {
	switch e := e.(type) {
	case *ast.String:
		return e.Value, true
	case *ast.BinaryExpr:
		if e.Resolved != types.String {
			return "", false
		}
		left, ok := constantString(e.Left)
		if !ok {
			return "", false
		}
		right, ok := constantString(e.Right)
		return left + right, ok
	}
	return "", false
}

func (g *Generator) VisitUnaryExpr(expr *ast.UnaryExpr) (any, error) {
	operand, err := g.expr(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Operand.(type) {
	case *ast.BinaryExpr, *ast.UnaryExpr:
		operand = "(" + operand + ")"
	}
	return "-" + operand, nil
}

func (g *Generator) VisitFunctionCall(expr *ast.FunctionCall) (any, error) {
	args := make([]string, len(expr.Args))
	for i, arg := range expr.Args {
		s, err := g.expr(arg)
		if err != nil {
			return nil, err
		}
		args[i] = s
	}
	return expr.Name + "(" + strings.Join(args, ", ") + ")", nil
}
