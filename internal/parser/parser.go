// Package parser implements the W parser and semantic analyzer.
//
// PARSING STRATEGY:
// Recursive descent with one token of lookahead for declarations and
// statements, and precedence climbing for expressions. Analysis is fused
// into the same pass: declarations go into the symbol table as they are
// parsed, every expression leaves its production with a resolved type, and
// return statements are checked against the enclosing function.
//
// ERROR HANDLING STRATEGY:
//   - Every error is recorded through a diag.Reporter with its source line.
//   - A failing production panics with an unwind signal. Statements recover
//     it and yield no node; top-level declarations recover it and skip
//     tokens until the next `fun` or `dec`. That skip is the only place the
//     parser resynchronizes.
//   - When the reporter's policy says the run is over, the parser panics
//     with a bailout that Parse recovers. Parse releases the tables and
//     returns the fatal error to its caller.
package parser

import (
	"errors"

	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/hassan/wlang/internal/registry"
	"github.com/hassan/wlang/internal/semantic/types"
	"github.com/hassan/wlang/internal/symtab"
)

// TokenSource is the pull contract the parser consumes. *lexer.Lexer
// satisfies it. After the end of input NextToken keeps returning TokenEOF.
type TokenSource interface {
	NextToken() (lexer.Token, error)
}

// unwind is the panic value of a recorded, recoverable error.
type unwind struct{}

// bailout carries the fatal error out of the recursion to Parse.
type bailout struct {
	err error
}

// Parser converts a token stream into a type-checked AST.
type Parser struct {
	src      TokenSource
	reporter *diag.Reporter

	// current is the token being examined, previous the last one consumed.
	current  lexer.Token
	previous lexer.Token

	// pulled counts consumed tokens. Statement recovery uses it to skip a
	// token that failed without being consumed.
	pulled int

	symbols   *symtab.SymbolTable
	functions *symtab.FunctionTable
	types     *registry.TypeRegistry
	tokens    *registry.TokenRegistry

	blocks blockTracker
	fn     *functionContext

	eofReported bool
	released    bool
}

// New creates a parser reading from src and recording diagnostics in
// reporter. A nil reporter records silently with the default policy.
func New(src TokenSource, reporter *diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.NewReporter(nil, diag.Policy{})
	}
	return &Parser{
		src:       src,
		reporter:  reporter,
		symbols:   symtab.New(),
		functions: symtab.NewFunctionTable(),
		types:     registry.Types(),
		tokens:    registry.Tokens(),
	}
}

// Parse parses a whole program.
//
// GRAMMAR:
//
//	program = { function | globalDecl } EOF
//
// Recorded errors do not stop parsing; the caller inspects the reporter to
// decide whether the tree may be used. When the error budget is exhausted,
// Parse releases the tables and returns a nil program with
// diag.ErrTooManyErrors.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.Release()
			prog, err = nil, b.err
		}
	}()

	p.advance()
	prog = &ast.Program{Filename: p.current.Position.Filename}

	for !p.isAtEnd() {
		switch p.current.Type {
		case lexer.TokenFun, lexer.TokenDec:
			p.parseDecl(prog)
		case lexer.TokenRightBrace:
			p.closeBlock()
		default:
			p.report(diag.Syntax, p.current.Line(), "Unexpected token %s at top level", p.describe(p.current))
			p.synchronize()
		}
	}
	return prog, nil
}

// Functions returns the function table built while parsing.
func (p *Parser) Functions() *symtab.FunctionTable {
	return p.functions
}

// Release frees the symbol and function tables. It is safe to call more
// than once.
func (p *Parser) Release() {
	if p.released {
		return
	}
	p.released = true
	p.symbols.Release()
	p.functions.Release()
}

// parseDecl parses one top-level declaration and appends it to prog.
//
// GRAMMAR:
//
//	decl = function | globalDecl
func (p *Parser) parseDecl(prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); !ok {
				panic(r)
			}
			p.synchronize()
		}
	}()

	if p.check(lexer.TokenFun) {
		if fn := p.parseFunction(); fn != nil {
			prog.Functions = append(prog.Functions, fn)
		}
		return
	}
	if decl := p.parseVarDeclaration(true); decl != nil {
		prog.Globals = append(prog.Globals, decl)
	}
}

// parseFunction parses a function definition.
//
// GRAMMAR:
//
//	function = "fun" ( identifier | "w" ) "(" [ param { "," param } ] ")" [ ":" type ] block
//	param    = identifier ":" type
func (p *Parser) parseFunction() *ast.Function {
	funTok := p.expect(lexer.TokenFun, "Expected 'fun'")

	fn := &ast.Function{FunPos: funTok.Position, ReturnType: types.Void}
	switch p.current.Type {
	case lexer.TokenMain:
		fn.Name = p.current.Lexeme
		fn.IsEntry = true
		p.advance()
	case lexer.TokenIdentifier:
		p.checkName(p.current)
		fn.Name = p.current.Lexeme
		p.advance()
	default:
		p.fail(diag.Syntax, "Expected function name after 'fun'")
	}

	p.expect(lexer.TokenLeftParen, "Expected '(' after function name '%s'", fn.Name)
	fn.Params = p.parseParameters()
	p.expect(lexer.TokenRightParen, "Expected ')' after parameters of '%s'", fn.Name)

	if p.match(lexer.TokenColon) {
		fn.ReturnType = p.parseType("return type of '" + fn.Name + "'")
	}

	if fn.IsEntry {
		if len(fn.Params) > 0 {
			p.report(diag.Declaration, funTok.Line(), "Entry point 'w' cannot take parameters")
		}
		if fn.ReturnType != types.Integer && fn.ReturnType != types.Void {
			p.report(diag.Type, funTok.Line(), "Entry point 'w' must return num or zil, not %s", fn.ReturnType)
		}
	}
	p.declareFunction(fn)

	if !p.check(lexer.TokenLeftBrace) {
		p.fail(diag.Syntax, "Expected '{' before body of '%s'", fn.Name)
	}

	p.symbols.Push(symtab.ScopeFunction)
	for _, param := range fn.Params {
		if _, err := p.symbols.Add(param.Name, param.Type, symtab.SymbolParameter, param.NamePos); err != nil {
			p.report(diag.Declaration, param.NamePos.Line, "Parameter '%s' already declared", param.Name)
		}
	}

	p.fn = &functionContext{name: fn.Name, returnType: fn.ReturnType}
	body, closed := p.parseBlock()
	fn.Body = body
	fn.HasReturn = p.fn.hasReturn
	p.finishFunction(body, closed)
	p.fn = nil

	_ = p.symbols.Pop()
	return fn
}

// parseParameters parses a possibly empty parameter list. The parameters
// are declared once the whole header is known.
func (p *Parser) parseParameters() []*ast.Parameter {
	var params []*ast.Parameter
	if p.check(lexer.TokenRightParen) {
		return params
	}
	for {
		nameTok := p.current
		if !p.check(lexer.TokenIdentifier) {
			p.fail(diag.Syntax, "Expected parameter name, found %s", p.describe(p.current))
		}
		p.checkName(nameTok)
		p.advance()

		p.expect(lexer.TokenColon, "Expected ':' after parameter '%s'", nameTok.Lexeme)
		typ := p.parseType("parameter '" + nameTok.Lexeme + "'")
		if typ == types.Void {
			p.fail(diag.Type, "Parameter '%s' cannot have type zil", nameTok.Lexeme)
		}

		params = append(params, &ast.Parameter{NamePos: nameTok.Position, Name: nameTok.Lexeme, Type: typ})
		if !p.match(lexer.TokenComma) {
			return params
		}
	}
}

// declareFunction enters fn into the function table before its body is
// parsed, so the body may call it recursively.
func (p *Parser) declareFunction(fn *ast.Function) {
	line := fn.FunPos.Line
	if _, ok := p.symbols.Global().LookupLocal(fn.Name); ok {
		p.report(diag.Declaration, line, "Function '%s' conflicts with a global variable", fn.Name)
		return
	}
	err := p.functions.Add(&symtab.Function{
		Name:       fn.Name,
		ReturnType: fn.ReturnType,
		Params:     fn.ParamTypes(),
		Pos:        fn.FunPos,
	})
	if errors.Is(err, symtab.ErrFunctionExists) {
		p.report(diag.Declaration, line, "Function '%s' already declared", fn.Name)
	}
}

// parseType parses a type keyword. what names the thing being typed in
// error messages.
func (p *Parser) parseType(what string) types.DataType {
	tok := p.current
	if !p.tokens.IsType(tok.Type) {
		p.fail(diag.Syntax, "Expected type for %s, found %s", what, p.describe(tok))
	}
	p.advance()

	dt, ok := p.types.DataTypeForToken(tok.Type)
	if !ok {
		p.fail(diag.Declaration, "Unsupported type '%s'", tok.Lexeme)
	}
	return dt
}

// Helper methods

// advance moves to the next token. Lexical errors are recorded as syntax
// diagnostics and skipped, so current never holds an invalid token.
func (p *Parser) advance() {
	p.previous = p.current
	for {
		token, err := p.src.NextToken()
		if err == nil {
			p.current = token
			p.pulled++
			return
		}
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			p.report(diag.Syntax, lexErr.Pos.Line, "%s", lexErr.Msg)
		} else {
			p.report(diag.Syntax, token.Line(), "%s", err.Error())
		}
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given type or fails with the formatted
// message.
func (p *Parser) expect(tokenType lexer.TokenType, format string, args ...any) lexer.Token {
	if p.check(tokenType) {
		tok := p.current
		p.advance()
		return tok
	}
	p.fail(diag.Syntax, format, args...)
	return lexer.Token{}
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// report records an error. It does not return when the error ends the run.
func (p *Parser) report(kind diag.Kind, line int, format string, args ...any) {
	if err := p.reporter.Reportf(kind, line, format, args...); err != nil {
		panic(bailout{err: err})
	}
}

// fail records an error on the current line and unwinds to the nearest
// statement or declaration boundary.
func (p *Parser) fail(kind diag.Kind, format string, args ...any) {
	p.report(kind, p.current.Line(), format, args...)
	panic(unwind{})
}

// synchronize skips tokens until the next top-level declaration keyword.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.current.Type {
		case lexer.TokenFun, lexer.TokenDec:
			return
		}
		p.advance()
	}
}

// describe renders a token for diagnostics.
func (p *Parser) describe(tok lexer.Token) string {
	switch {
	case tok.Type == lexer.TokenEOF:
		return "end of file"
	case tok.Type == lexer.TokenIdentifier, tok.Type.IsLiteral():
		return "'" + tok.Lexeme + "'"
	default:
		return p.tokens.Describe(tok.Type)
	}
}

// reservedNames cannot be declared because the generated C would not
// compile or would collide with the runtime.
var reservedNames = map[string]bool{
	"main": true, "printf": true, "NULL": true, "true": true, "false": true,
	"int": true, "float": true, "double": true, "char": true, "void": true,
	"short": true, "long": true, "signed": true, "unsigned": true,
	"const": true, "static": true, "extern": true, "register": true, "volatile": true,
	"auto": true, "struct": true, "union": true, "enum": true, "typedef": true, "sizeof": true,
	"if": true, "else": true, "while": true, "for": true, "do": true, "switch": true,
	"case": true, "default": true, "break": true, "continue": true, "goto": true, "return": true,
	"inline": true, "restrict": true,
	"w_concat": true, "malloc": true, "strlen": true, "strcpy": true, "strcat": true,
}

// checkName records an error and reports false when tok names something
// reserved in the generated code.
func (p *Parser) checkName(tok lexer.Token) bool {
	if reservedNames[tok.Lexeme] {
		p.report(diag.Declaration, tok.Line(), "'%s' is a reserved name", tok.Lexeme)
		return false
	}
	return true
}
