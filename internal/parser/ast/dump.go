package ast

import (
	"strconv"
	"strings"
)

// Dump renders a node as an indented S-expression. Expressions print on
// one line; programs, functions and blocks put each child on its own line.
//
//	(program
//	  (fun w () num entry
//	    (dec x num (+ num (int 2) (int 3)))
//	    (ret (var x num))))
func Dump(n Node) string {
	var d dumper
	d.node(n, 0)
	return d.b.String()
}

type dumper struct {
	b strings.Builder
}

func (d *dumper) line(depth int) {
	d.b.WriteByte('\n')
	d.b.WriteString(strings.Repeat("  ", depth))
}

func (d *dumper) node(n Node, depth int) {
	switch n := n.(type) {
	case *Program:
		d.b.WriteString("(program")
		for _, g := range n.Globals {
			d.line(depth + 1)
			d.node(g, depth+1)
		}
		for _, fn := range n.Functions {
			d.line(depth + 1)
			d.node(fn, depth+1)
		}
		d.b.WriteString(")")
	case *Function:
		d.b.WriteString("(fun " + n.Name + " (")
		for i, p := range n.Params {
			if i > 0 {
				d.b.WriteByte(' ')
			}
			d.b.WriteString("(" + p.Name + " " + p.Type.String() + ")")
		}
		d.b.WriteString(") " + n.ReturnType.String())
		if n.IsEntry {
			d.b.WriteString(" entry")
		}
		if n.Body != nil {
			d.statements(n.Body.Statements, depth+1)
		}
		d.b.WriteString(")")
	case *Block:
		d.b.WriteString("(block")
		d.statements(n.Statements, depth+1)
		d.b.WriteString(")")
	case *VarDeclaration:
		d.b.WriteString("(dec " + n.Name + " " + n.Type.String())
		if n.Init != nil {
			d.b.WriteString(" " + dumpExpr(n.Init))
		}
		d.b.WriteString(")")
	case *Assignment:
		d.b.WriteString("(assign " + n.Name + " " + dumpExpr(n.Value) + ")")
	case *Return:
		if n.Value == nil {
			d.b.WriteString("(ret)")
		} else {
			d.b.WriteString("(ret " + dumpExpr(n.Value) + ")")
		}
	case *Log:
		d.b.WriteString("(log")
		for _, el := range n.Elements {
			d.b.WriteString(" " + dumpLogElement(el))
		}
		d.b.WriteString(")")
	case *ExprStmt:
		d.b.WriteString("(expr " + dumpExpr(n.X) + ")")
	case Expr:
		d.b.WriteString(dumpExpr(n))
	default:
		d.b.WriteString("(unknown)")
	}
}

func (d *dumper) statements(stmts []Stmt, depth int) {
	for _, s := range stmts {
		d.line(depth)
		d.node(s, depth)
	}
}

func dumpExpr(e Expr) string {
	switch e := e.(type) {
	case *Number:
		return "(int " + strconv.FormatInt(e.Value, 10) + ")"
	case *Float:
		return "(real " + strconv.FormatFloat(e.Value, 'g', -1, 64) + ")"
	case *String:
		return "(str " + strconv.Quote(e.Value) + ")"
	case *Char:
		return "(chr " + strconv.QuoteRune(e.Value) + ")"
	case *Bool:
		return "(bool " + strconv.FormatBool(e.Value) + ")"
	case *Variable:
		return "(var " + e.Name + " " + e.Resolved.String() + ")"
	case *BinaryExpr:
		return "(" + e.Op.String() + " " + e.Resolved.String() + " " +
			dumpExpr(e.Left) + " " + dumpExpr(e.Right) + ")"
	case *UnaryExpr:
		return "(neg " + e.Type().String() + " " + dumpExpr(e.Operand) + ")"
	case *FunctionCall:
		var b strings.Builder
		b.WriteString("(call " + e.Name + " " + e.Resolved.String())
		for _, arg := range e.Args {
			b.WriteString(" " + dumpExpr(arg))
		}
		b.WriteString(")")
		return b.String()
	default:
		return "(unknown)"
	}
}

func dumpLogElement(el LogElement) string {
	switch el.Kind {
	case LogText:
		return strconv.Quote(el.Value)
	default:
		return el.Placeholder + ":" + el.Value
	}
}
