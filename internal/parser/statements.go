package parser

import (
	"errors"

	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/hassan/wlang/internal/semantic/types"
	"github.com/hassan/wlang/internal/symtab"
)

// parseStatement parses one statement. It returns nil when the statement
// was erroneous; the error has been recorded and no tokens are skipped
// beyond a trailing ';', or the offending token when nothing was consumed.
//
// GRAMMAR:
//
//	statement = block | log | varDecl | return | assignment | expression ";"
func (p *Parser) parseStatement() (stmt ast.Stmt) {
	before := p.pulled
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); !ok {
				panic(r)
			}
			if p.pulled == before {
				p.advance()
			}
			p.match(lexer.TokenSemicolon)
			stmt = nil
		}
	}()

	switch p.current.Type {
	case lexer.TokenLeftBrace:
		return p.parseNestedBlock()
	case lexer.TokenLog:
		return p.parseLog()
	case lexer.TokenDec:
		if decl := p.parseVarDeclaration(false); decl != nil {
			return decl
		}
		return nil
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenIdentifier:
		return p.parseIdentifierStatement()
	case lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenStringLiteral,
		lexer.TokenCharLiteral, lexer.TokenBoolLiteral,
		lexer.TokenLeftParen, lexer.TokenMinus:
		return p.parseExprStmt(p.parseExpression())
	case lexer.TokenUse:
		p.fail(diag.Syntax, "'use' is reserved and not supported yet")
	default:
		p.fail(diag.Syntax, "Unexpected token %s in statement", p.describe(p.current))
	}
	return nil
}

// parseVarDeclaration parses a variable declaration. A declaration whose
// initializer cannot be converted to the declared type is recorded and
// dropped after its tokens have been consumed.
//
// GRAMMAR:
//
//	varDecl = "dec" identifier ":" type [ "=" expression ] ";"
func (p *Parser) parseVarDeclaration(global bool) *ast.VarDeclaration {
	decTok := p.expect(lexer.TokenDec, "Expected 'dec'")

	nameTok := p.current
	if !p.check(lexer.TokenIdentifier) {
		p.fail(diag.Syntax, "Expected variable name after 'dec', found %s", p.describe(nameTok))
	}
	p.advance()
	name := nameTok.Lexeme

	switch p.current.Type {
	case lexer.TokenColon:
		p.advance()
	case lexer.TokenInferAssign, lexer.TokenAssign:
		p.advance()
		p.fail(diag.Declaration, "Missing type annotation for variable '%s'", name)
	case lexer.TokenSemicolon:
		p.fail(diag.Declaration, "Missing type annotation for variable '%s'", name)
	default:
		p.fail(diag.Syntax, "Expected ':' after variable name '%s'", name)
	}

	typ := p.parseType("variable '" + name + "'")
	if typ == types.Void {
		p.fail(diag.Type, "Variable '%s' cannot have type zil", name)
	}

	decl := &ast.VarDeclaration{DecPos: decTok.Position, Name: name, Type: typ, Global: global}
	if p.match(lexer.TokenAssign) {
		decl.Init = p.parseExpression()
	}
	p.expect(lexer.TokenSemicolon, "Expected ';' after variable declaration")

	if !p.checkName(nameTok) {
		return nil
	}
	if decl.Init != nil {
		if !types.CanConvert(decl.Init.Type(), typ) {
			p.report(diag.Type, decTok.Line(), "Type mismatch in initialization: cannot assign %s to %s",
				decl.Init.Type(), typ)
			return nil
		}
		if global && !isConstant(decl.Init) {
			p.report(diag.Declaration, decTok.Line(), "Initializer of global '%s' must be a constant expression", name)
			return nil
		}
	}

	if global {
		if _, ok := p.functions.Lookup(name); ok {
			p.report(diag.Declaration, decTok.Line(), "Global '%s' conflicts with a function", name)
			return nil
		}
	}
	if _, err := p.symbols.Add(name, typ, symtab.SymbolVariable, nameTok.Position); err != nil {
		if errors.Is(err, symtab.ErrAlreadyDeclared) {
			p.report(diag.Declaration, decTok.Line(), "Variable '%s' already declared", name)
			return nil
		}
		p.report(diag.Fatal, decTok.Line(), "%s", err.Error())
	}
	return decl
}

// isConstant reports whether e can initialize a C global.
func isConstant(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Number, *ast.Float, *ast.String, *ast.Char, *ast.Bool:
		return true
	case *ast.UnaryExpr:
		return isConstant(e.Operand)
	case *ast.BinaryExpr:
		return isConstant(e.Left) && isConstant(e.Right)
	default:
		return false
	}
}

// parseIdentifierStatement parses the statements that begin with an
// identifier: assignments, calls and other expressions.
//
// GRAMMAR:
//
//	assignment = identifier "=" expression ";"
func (p *Parser) parseIdentifierStatement() ast.Stmt {
	nameTok := p.current
	p.advance()

	switch p.current.Type {
	case lexer.TokenAssign:
		p.advance()
		return p.parseAssignment(nameTok)
	case lexer.TokenInferAssign:
		p.advance()
		p.fail(diag.Declaration, "Missing type annotation for variable '%s'", nameTok.Lexeme)
	}

	left := p.parseIdentifier(nameTok)
	return p.parseExprStmt(p.parseInfix(left, PrecTerm))
}

// parseAssignment parses the value of an assignment whose target and '='
// have been consumed. An undefined target is recorded, but the value is
// still parsed so that its own errors are found.
func (p *Parser) parseAssignment(nameTok lexer.Token) ast.Stmt {
	symbol, defined := p.symbols.Lookup(nameTok.Lexeme)
	if !defined {
		p.report(diag.Resolution, nameTok.Line(), "Undefined variable '%s'", nameTok.Lexeme)
	}

	value := p.parseExpression()
	p.expect(lexer.TokenSemicolon, "Expected ';' after assignment")
	if !defined {
		return nil
	}

	if !types.CanConvert(value.Type(), symbol.Type) {
		p.report(diag.Type, nameTok.Line(), "Type mismatch in assignment: cannot assign %s to %s",
			value.Type(), symbol.Type)
		return nil
	}
	return &ast.Assignment{NamePos: nameTok.Position, Name: nameTok.Lexeme, Target: symbol.Type, Value: value}
}

// parseReturn parses a return statement. The value is checked against the
// function's return type when the body ends.
//
// GRAMMAR:
//
//	return = "ret" [ expression ] ";"
func (p *Parser) parseReturn() ast.Stmt {
	retTok := p.expect(lexer.TokenReturn, "Expected 'ret'")

	ret := &ast.Return{RetPos: retTok.Position}
	if !p.check(lexer.TokenSemicolon) {
		ret.Value = p.parseExpression()
	}
	p.expect(lexer.TokenSemicolon, "Expected ';' after return statement")

	p.returned(retTok.Line(), ret.Value)
	return ret
}

// parseLog parses a log statement.
//
// A comma between elements inserts a single space into the output; '+'
// only joins and adds nothing. An undefined variable is recorded and its
// element left out.
//
// GRAMMAR:
//
//	log     = "log" "(" { element | "," | "+" } ")" ";"
//	element = string | number | real | char | bool | identifier
func (p *Parser) parseLog() ast.Stmt {
	logTok := p.expect(lexer.TokenLog, "Expected 'log'")
	p.expect(lexer.TokenLeftParen, "Expected '(' after 'log'")

	stmt := &ast.Log{LogPos: logTok.Position}
	for !p.check(lexer.TokenRightParen) {
		tok := p.current
		switch tok.Type {
		case lexer.TokenComma:
			stmt.Elements = append(stmt.Elements, ast.LogElement{Kind: ast.LogText, Value: " ", Pos: tok.Position})
		case lexer.TokenPlus:
		case lexer.TokenStringLiteral:
			text, _ := tok.Value.(string)
			stmt.Elements = append(stmt.Elements, ast.LogElement{Kind: ast.LogText, Value: text, Pos: tok.Position})
		case lexer.TokenCharLiteral:
			ch, _ := tok.Value.(rune)
			stmt.Elements = append(stmt.Elements, ast.LogElement{Kind: ast.LogText, Value: string(ch), Pos: tok.Position})
		case lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenBoolLiteral:
			stmt.Elements = append(stmt.Elements, p.logNumber(tok))
		case lexer.TokenIdentifier:
			symbol, ok := p.symbols.Lookup(tok.Lexeme)
			if !ok {
				p.report(diag.Resolution, tok.Line(), "Undefined variable '%s'", tok.Lexeme)
				break
			}
			stmt.Elements = append(stmt.Elements, ast.LogElement{
				Kind:        ast.LogVariable,
				Value:       tok.Lexeme,
				Type:        symbol.Type,
				Placeholder: p.types.Placeholder(symbol.Type),
				Pos:         tok.Position,
			})
		default:
			p.fail(diag.Syntax, "Unexpected token %s in log statement", p.describe(tok))
		}
		p.advance()
	}

	p.expect(lexer.TokenRightParen, "Expected ')' after log arguments")
	p.expect(lexer.TokenSemicolon, "Expected ';' after log statement")
	return stmt
}

// logNumber builds the element of a numeric or boolean literal. Its value
// is the literal's C spelling.
func (p *Parser) logNumber(tok lexer.Token) ast.LogElement {
	typ := types.Bool
	switch tok.Type {
	case lexer.TokenIntLiteral:
		typ = types.Integer
	case lexer.TokenFloatLiteral:
		typ = types.Real
	}
	return ast.LogElement{
		Kind:        ast.LogNumber,
		Value:       tok.Lexeme,
		Type:        typ,
		Placeholder: p.types.Placeholder(typ),
		Pos:         tok.Position,
	}
}

// parseExprStmt finishes an expression statement.
func (p *Parser) parseExprStmt(x ast.Expr) ast.Stmt {
	p.expect(lexer.TokenSemicolon, "Expected ';' after expression")
	return &ast.ExprStmt{X: x}
}
