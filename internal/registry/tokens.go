package registry

import (
	"sync"

	"github.com/hassan/wlang/internal/container"
	"github.com/hassan/wlang/internal/lexer"
)

// Category groups token types.
type Category int

const (
	CategoryIdentifier Category = iota
	CategoryType
	CategoryKeyword
	CategoryOperator
	CategoryPunctuation
	CategoryLiteral
	CategoryAssignment
)

var categoryNames = [...]string{
	CategoryIdentifier:  "identifier",
	CategoryType:        "type",
	CategoryKeyword:     "keyword",
	CategoryOperator:    "operator",
	CategoryPunctuation: "punctuation",
	CategoryLiteral:     "literal",
	CategoryAssignment:  "assignment",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// TokenRecord describes one token type. Lexeme is empty for tokens whose
// text varies: literals and identifiers.
type TokenRecord struct {
	Token    lexer.TokenType
	Display  string
	Lexeme   string
	Category Category
}

func tokenRecords() []TokenRecord {
	var out []TokenRecord
	add := func(cat Category, tts ...lexer.TokenType) {
		for _, tt := range tts {
			out = append(out, TokenRecord{Token: tt, Display: tt.String(), Category: cat})
		}
	}
	add(CategoryType,
		lexer.TokenNum, lexer.TokenReal, lexer.TokenChr, lexer.TokenStr, lexer.TokenBool, lexer.TokenZil,
		lexer.TokenVec, lexer.TokenMap, lexer.TokenSet, lexer.TokenRef, lexer.TokenHeap,
		lexer.TokenStack, lexer.TokenQue, lexer.TokenLink, lexer.TokenTree, lexer.TokenPod)
	add(CategoryKeyword,
		lexer.TokenFun, lexer.TokenDec, lexer.TokenUse, lexer.TokenMain, lexer.TokenReturn, lexer.TokenLog)
	add(CategoryOperator,
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash)
	add(CategoryPunctuation,
		lexer.TokenLeftParen, lexer.TokenRightParen, lexer.TokenLeftBrace, lexer.TokenRightBrace,
		lexer.TokenSemicolon, lexer.TokenColon, lexer.TokenComma,
		lexer.TokenLeftBracket, lexer.TokenRightBracket)
	add(CategoryAssignment,
		lexer.TokenAssign, lexer.TokenInferAssign)
	add(CategoryLiteral,
		lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenStringLiteral,
		lexer.TokenCharLiteral, lexer.TokenBoolLiteral)
	add(CategoryIdentifier, lexer.TokenIdentifier)

	for i := range out {
		out[i].Lexeme = lexemes[out[i].Token]
	}
	return out
}

// lexemes holds the fixed spelling of keywords, operators and punctuation.
var lexemes = map[lexer.TokenType]string{
	lexer.TokenNum:          "num",
	lexer.TokenReal:         "real",
	lexer.TokenChr:          "chr",
	lexer.TokenStr:          "str",
	lexer.TokenBool:         "bool",
	lexer.TokenZil:          "zil",
	lexer.TokenVec:          "vec",
	lexer.TokenMap:          "map",
	lexer.TokenSet:          "set",
	lexer.TokenRef:          "ref",
	lexer.TokenHeap:         "heap",
	lexer.TokenStack:        "stack",
	lexer.TokenQue:          "que",
	lexer.TokenLink:         "link",
	lexer.TokenTree:         "tree",
	lexer.TokenPod:          "pod",
	lexer.TokenFun:          "fun",
	lexer.TokenDec:          "dec",
	lexer.TokenUse:          "use",
	lexer.TokenMain:         "w",
	lexer.TokenReturn:       "ret",
	lexer.TokenLog:          "log",
	lexer.TokenPlus:         "+",
	lexer.TokenMinus:        "-",
	lexer.TokenStar:         "*",
	lexer.TokenSlash:        "/",
	lexer.TokenLeftParen:    "(",
	lexer.TokenRightParen:   ")",
	lexer.TokenLeftBrace:    "{",
	lexer.TokenRightBrace:   "}",
	lexer.TokenSemicolon:    ";",
	lexer.TokenColon:        ":",
	lexer.TokenComma:        ",",
	lexer.TokenLeftBracket:  "[",
	lexer.TokenRightBracket: "]",
	lexer.TokenAssign:       "=",
	lexer.TokenInferAssign:  ":=",
}

// TokenRegistry indexes token records by token type.
type TokenRegistry struct {
	byToken *container.Map[lexer.TokenType, TokenRecord]
}

// NewTokenRegistry builds a registry from the built-in token table.
func NewTokenRegistry() *TokenRegistry {
	r := &TokenRegistry{
		byToken: container.New(64, container.Config[lexer.TokenType, TokenRecord]{
			Keys: container.IntKeys[lexer.TokenType]{},
		}),
	}
	for _, rec := range tokenRecords() {
		r.byToken.Put(rec.Token, rec)
	}
	return r
}

// Lookup returns the record of tt.
func (r *TokenRegistry) Lookup(tt lexer.TokenType) (TokenRecord, bool) {
	return r.byToken.Get(tt)
}

// Display returns the upper-case name of tt, or "UNKNOWN".
func (r *TokenRegistry) Display(tt lexer.TokenType) string {
	if rec, ok := r.Lookup(tt); ok {
		return rec.Display
	}
	return "UNKNOWN"
}

// Lexeme returns the fixed spelling of tt. It reports false for unknown
// tokens and for tokens whose text varies.
func (r *TokenRegistry) Lexeme(tt lexer.TokenType) (string, bool) {
	rec, ok := r.Lookup(tt)
	if !ok || rec.Lexeme == "" {
		return "", false
	}
	return rec.Lexeme, true
}

// Category returns the category of tt. Unknown tokens are identifiers.
func (r *TokenRegistry) Category(tt lexer.TokenType) Category {
	rec, ok := r.Lookup(tt)
	if !ok {
		return CategoryIdentifier
	}
	return rec.Category
}

// Describe renders tt for diagnostics: the quoted lexeme when it is fixed,
// the display name otherwise.
func (r *TokenRegistry) Describe(tt lexer.TokenType) string {
	if lexeme, ok := r.Lexeme(tt); ok {
		return "'" + lexeme + "'"
	}
	return r.Display(tt)
}

// IsType reports whether tt is a type keyword, reserved or not.
func (r *TokenRegistry) IsType(tt lexer.TokenType) bool {
	return r.Category(tt) == CategoryType
}

// IsOperator reports whether tt is an arithmetic operator.
func (r *TokenRegistry) IsOperator(tt lexer.TokenType) bool {
	return r.Category(tt) == CategoryOperator
}

// Tokens returns the shared token registry.
var Tokens = sync.OnceValue(NewTokenRegistry)
