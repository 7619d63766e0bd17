package parser

import (
	"fmt"

	"github.com/hassan/wlang/internal/diag"
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/parser/ast"
	"github.com/hassan/wlang/internal/semantic/types"
	"github.com/hassan/wlang/internal/symtab"
)

// blockTracker remembers the line of every open brace.
type blockTracker struct {
	lines []int
}

func (b *blockTracker) enter(line int) {
	if b.lines == nil {
		b.lines = make([]int, 0, 10)
	}
	b.lines = append(b.lines, line)
}

// exit closes the innermost block and returns the line it was opened on.
// It reports false when no block is open.
func (b *blockTracker) exit() (int, bool) {
	if len(b.lines) == 0 {
		return 0, false
	}
	line := b.lines[len(b.lines)-1]
	b.lines = b.lines[:len(b.lines)-1]
	return line, true
}

func (b *blockTracker) depth() int {
	return len(b.lines)
}

// functionContext is the state of the function whose body is being parsed.
type functionContext struct {
	name       string
	returnType types.DataType
	hasReturn  bool

	// violations are return errors held back until the body is complete.
	violations []violation
}

// hold records a violation to be reported when the body ends.
func (ctx *functionContext) hold(kind diag.Kind, line int, format string, args ...any) {
	ctx.violations = append(ctx.violations, violation{kind: kind, line: line, message: fmt.Sprintf(format, args...)})
}

type violation struct {
	kind    diag.Kind
	line    int
	message string
}

// parseBlock parses `{ statements }`. The caller owns the scope. It reports
// false when the input ended before the closing brace.
//
// GRAMMAR:
//
//	block = "{" { statement } "}"
func (p *Parser) parseBlock() (*ast.Block, bool) {
	open := p.expect(lexer.TokenLeftBrace, "Expected '{'")
	p.blocks.enter(open.Line())

	block := &ast.Block{LeftBrace: open.Position}
	for !p.check(lexer.TokenRightBrace) {
		if p.isAtEnd() {
			line, _ := p.blocks.exit()
			if !p.eofReported {
				p.eofReported = true
				p.report(diag.Syntax, p.current.Line(),
					"Unexpected end of file. Missing closing brace for block opened on line %d", line)
			}
			return block, false
		}

		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}

	block.RightBrace = p.current.Position
	p.advance()
	p.blocks.exit()
	return block, true
}

// parseNestedBlock parses a block statement in its own scope.
func (p *Parser) parseNestedBlock() ast.Stmt {
	p.symbols.Push(symtab.ScopeBlock)
	block, _ := p.parseBlock()
	_ = p.symbols.Pop()
	return block
}

// closeBlock handles a closing brace that has no block to close.
func (p *Parser) closeBlock() {
	if _, ok := p.blocks.exit(); !ok {
		p.report(diag.Syntax, p.current.Line(), "Unexpected closing brace")
	}
	p.advance()
}

// finishFunction raises the return errors of the body just parsed, now that
// it is complete.
func (p *Parser) finishFunction(body *ast.Block, closed bool) {
	for _, v := range p.fn.violations {
		p.report(v.kind, v.line, "%s", v.message)
	}
	if !closed || p.fn.returnType == types.Void || p.fn.hasReturn {
		return
	}
	p.report(diag.Type, body.RightBrace.Line,
		"Function '%s' with return type '%s' must return a value", p.fn.name, p.fn.returnType)
}

// returned records a ret statement of the current function. Violations are
// deferred until the body ends.
func (p *Parser) returned(line int, value ast.Expr) {
	ctx := p.fn
	ctx.hasReturn = true

	switch {
	case ctx.returnType == types.Void && value != nil:
		ctx.hold(diag.Type, line, "Function '%s' declared as zil, cannot return a value", ctx.name)
	case ctx.returnType != types.Void && value == nil:
		ctx.hold(diag.Type, line, "Function '%s' must return a value of type '%s'", ctx.name, ctx.returnType)
	case value != nil && value.Type() != ctx.returnType:
		ctx.hold(diag.Type, line, "Return type mismatch in function '%s'. Expected %s, got %s",
			ctx.name, ctx.returnType, value.Type())
	}
}
