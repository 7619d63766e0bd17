package parser

import (
	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/hassan/wlang/internal/semantic/types"
)

// parseExpression parses a full expression.
func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecTerm)
}

// parsePrecedence parses an expression whose binary operators bind at least
// as tightly as min.
func (p *Parser) parsePrecedence(min Precedence) ast.Expr {
	left := p.parseUnary()
	return p.parseInfix(left, min)
}

// parseInfix extends left with binary operators of at least min precedence.
// The right operand is parsed one level higher, which makes every operator
// left-associative.
func (p *Parser) parseInfix(left ast.Expr, min Precedence) ast.Expr {
	for {
		prec := getPrecedence(p.current.Type)
		if prec == PrecNone || prec < min {
			return left
		}
		opTok := p.current
		op, _ := operatorFor(opTok.Type)
		p.advance()

		right := p.parsePrecedence(prec + 1)
		left = p.binary(left, op, opTok, right)
	}
}

// binary builds a binary expression and resolves its type.
func (p *Parser) binary(left ast.Expr, op types.Operator, opTok lexer.Token, right ast.Expr) ast.Expr {
	resolved, err := types.OperationType(left.Type(), right.Type(), op)
	if err != nil {
		p.report(diag.Type, opTok.Line(), "Invalid operands for '%s': %s and %s", op, left.Type(), right.Type())
		panic(unwind{})
	}
	return &ast.BinaryExpr{Left: left, Op: op, OpPos: opTok.Position, Right: right, Resolved: resolved}
}

// parseUnary parses a negation or a factor.
//
// GRAMMAR:
//
//	unary = "-" unary | factor
func (p *Parser) parseUnary() ast.Expr {
	if !p.check(lexer.TokenMinus) {
		return p.parseFactor()
	}
	opTok := p.current
	p.advance()

	operand := p.parseUnary()
	if !operand.Type().IsNumeric() {
		p.report(diag.Type, opTok.Line(), "Cannot negate a value of type %s", operand.Type())
		panic(unwind{})
	}
	return &ast.UnaryExpr{OpPos: opTok.Position, Operand: operand}
}

// parseFactor parses a literal, a variable, a call or a parenthesized
// expression.
//
// GRAMMAR:
//
//	factor = literal | identifier [ "(" args ")" ] | "(" expression ")"
func (p *Parser) parseFactor() ast.Expr {
	tok := p.current
	switch tok.Type {
	case lexer.TokenIntLiteral:
		p.advance()
		v, _ := tok.Value.(int64)
		return &ast.Number{ValuePos: tok.Position, Value: v}
	case lexer.TokenFloatLiteral:
		p.advance()
		v, _ := tok.Value.(float64)
		return &ast.Float{ValuePos: tok.Position, Value: v}
	case lexer.TokenStringLiteral:
		p.advance()
		v, _ := tok.Value.(string)
		return &ast.String{ValuePos: tok.Position, Value: v}
	case lexer.TokenCharLiteral:
		p.advance()
		v, _ := tok.Value.(rune)
		return &ast.Char{ValuePos: tok.Position, Value: v}
	case lexer.TokenBoolLiteral:
		p.advance()
		v, _ := tok.Value.(bool)
		return &ast.Bool{ValuePos: tok.Position, Value: v}
	case lexer.TokenIdentifier:
		p.advance()
		return p.parseIdentifier(tok)
	case lexer.TokenLeftParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.TokenRightParen, "Expected ')' after expression")
		return inner
	default:
		p.fail(diag.Syntax, "Unexpected token %s in expression", p.describe(tok))
		return nil
	}
}

// parseIdentifier resolves an identifier whose token has been consumed: a
// call when '(' follows, a variable otherwise.
func (p *Parser) parseIdentifier(nameTok lexer.Token) ast.Expr {
	if p.check(lexer.TokenLeftParen) {
		return p.parseCall(nameTok)
	}

	symbol, ok := p.symbols.Lookup(nameTok.Lexeme)
	if !ok {
		p.report(diag.Resolution, nameTok.Line(), "Undefined variable '%s'", nameTok.Lexeme)
		panic(unwind{})
	}
	return &ast.Variable{NamePos: nameTok.Position, Name: nameTok.Lexeme, Resolved: symbol.Type}
}

// parseCall parses the argument list of a call. Arguments are parsed before
// the callee is resolved; their number and types are not checked against
// the callee.
//
// GRAMMAR:
//
//	args = [ expression { "," expression } ]
func (p *Parser) parseCall(nameTok lexer.Token) ast.Expr {
	p.expect(lexer.TokenLeftParen, "Expected '(' after function name")

	call := &ast.FunctionCall{NamePos: nameTok.Position, Name: nameTok.Lexeme}
	if !p.check(lexer.TokenRightParen) {
		for {
			call.Args = append(call.Args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.expect(lexer.TokenRightParen, "Expected ')' after arguments to '%s'", nameTok.Lexeme)

	fn, ok := p.functions.Lookup(nameTok.Lexeme)
	if !ok {
		p.report(diag.Resolution, nameTok.Line(), "Undefined function '%s'", nameTok.Lexeme)
		panic(unwind{})
	}
	call.Resolved = fn.ReturnType
	return call
}
