package parser

import (
	"testing"

	"github.com/hassan/wlang/internal/lexer"
	"github.com/hassan/wlang/internal/semantic/types"
	"github.com/nalgeon/be"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		token    lexer.TokenType
		expected Precedence
	}{
		{"plus", lexer.TokenPlus, PrecTerm},
		{"minus", lexer.TokenMinus, PrecTerm},
		{"star", lexer.TokenStar, PrecFactor},
		{"slash", lexer.TokenSlash, PrecFactor},

		{"assign", lexer.TokenAssign, PrecNone},
		{"semicolon", lexer.TokenSemicolon, PrecNone},
		{"right paren", lexer.TokenRightParen, PrecNone},
		{"identifier", lexer.TokenIdentifier, PrecNone},
		{"eof", lexer.TokenEOF, PrecNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, getPrecedence(tt.token), tt.expected)
		})
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	be.True(t, PrecNone < PrecTerm)
	be.True(t, PrecTerm < PrecFactor)
	be.True(t, PrecFactor < PrecUnary)
}

func TestOperatorFor(t *testing.T) {
	tests := []struct {
		token lexer.TokenType
		want  types.Operator
	}{
		{lexer.TokenPlus, types.Add},
		{lexer.TokenMinus, types.Sub},
		{lexer.TokenStar, types.Mul},
		{lexer.TokenSlash, types.Div},
	}
	for _, tt := range tests {
		op, ok := operatorFor(tt.token)
		be.True(t, ok)
		be.Equal(t, op, tt.want)
	}

	_, ok := operatorFor(lexer.TokenAssign)
	be.True(t, !ok)
}
