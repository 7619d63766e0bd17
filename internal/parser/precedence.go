package parser

import (
	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
)

// Precedence represents operator precedence levels. Higher binds tighter.
//
// W has two binary levels and unary minus:
//
//	Expression = Term   { ("+" | "-") Term }
//	Term       = Factor { ("*" | "/") Factor }
//	Factor     = "-" Factor | literal | identifier [ "(" Args ")" ] | "(" Expression ")"
type Precedence int

const (
	PrecNone   Precedence = iota
	PrecTerm              // +, -
	PrecFactor            // *, /
	PrecUnary             // -x
)

// getPrecedence returns the binary precedence of a token, or PrecNone when
// the token does not continue an expression.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm
	case lexer.TokenStar, lexer.TokenSlash:
		return PrecFactor
	default:
		return PrecNone
	}
}

// operatorFor maps an operator token to the type system's operator.
func operatorFor(tokenType lexer.TokenType) (types.Operator, bool) {
	switch tokenType {
	case lexer.TokenPlus:
		return types.Add, true
	case lexer.TokenMinus:
		return types.Sub, true
	case lexer.TokenStar:
		return types.Mul, true
	case lexer.TokenSlash:
		return types.Div, true
	default:
		return 0, false
	}
}
