package lexer

// TokenType classifies a token.
//
// The constants are grouped by category: special, literals, type keywords,
// control keywords, operators, punctuation and assignment forms. The
// Is* predicates below rely on that ordering.
type TokenType int

const (
	// Special tokens

	// TokenEOF marks the end of the input. Reading past the end keeps
	// returning TokenEOF.
	TokenEOF TokenType = iota

	// TokenInvalid is returned together with a lexical error.
	TokenInvalid

	// Literals. Token.Value carries the decoded payload.

	TokenIntLiteral    // 42          Value: int64
	TokenFloatLiteral  // 2.5         Value: float64
	TokenStringLiteral // "hi\n"      Value: string (escapes decoded)
	TokenCharLiteral   // 'a'         Value: rune
	TokenBoolLiteral   // true false  Value: bool

	// TokenIdentifier is a variable or function name; the name is the Lexeme.
	TokenIdentifier

	// Type keywords

	TokenNum  // num
	TokenReal // real
	TokenChr  // chr
	TokenStr  // str
	TokenBool // bool
	TokenZil  // zil

	// Reserved type keywords. They lex as types but have no semantics yet.

	TokenVec
	TokenMap
	TokenSet
	TokenRef
	TokenHeap
	TokenStack
	TokenQue
	TokenLink
	TokenTree
	TokenPod

	// Control keywords

	TokenFun    // fun
	TokenDec    // dec
	TokenUse    // use
	TokenMain   // w (entry point)
	TokenReturn // ret
	TokenLog    // log

	// Operators

	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Punctuation

	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenSemicolon    // ;
	TokenColon        // :
	TokenComma        // ,
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Assignment forms

	TokenAssign      // =
	TokenInferAssign // :=
)

var tokenNames = [...]string{
	TokenEOF:           "EOF",
	TokenInvalid:       "INVALID",
	TokenIntLiteral:    "INT_LITERAL",
	TokenFloatLiteral:  "FLOAT_LITERAL",
	TokenStringLiteral: "STRING_LITERAL",
	TokenCharLiteral:   "CHAR_LITERAL",
	TokenBoolLiteral:   "BOOL_LITERAL",
	TokenIdentifier:    "IDENTIFIER",
	TokenNum:           "NUM",
	TokenReal:          "REAL",
	TokenChr:           "CHR",
	TokenStr:           "STR",
	TokenBool:          "BOOL",
	TokenZil:           "ZIL",
	TokenVec:           "VEC",
	TokenMap:           "MAP",
	TokenSet:           "SET",
	TokenRef:           "REF",
	TokenHeap:          "HEAP",
	TokenStack:         "STACK",
	TokenQue:           "QUE",
	TokenLink:          "LINK",
	TokenTree:          "TREE",
	TokenPod:           "POD",
	TokenFun:           "FUN",
	TokenDec:           "DEC",
	TokenUse:           "USE",
	TokenMain:          "MAIN",
	TokenReturn:        "RETURN",
	TokenLog:           "LOG",
	TokenPlus:          "PLUS",
	TokenMinus:         "MINUS",
	TokenStar:          "MULTIPLY",
	TokenSlash:         "DIVIDE",
	TokenLeftParen:     "LPAREN",
	TokenRightParen:    "RPAREN",
	TokenLeftBrace:     "LBRACE",
	TokenRightBrace:    "RBRACE",
	TokenSemicolon:     "SEMICOLON",
	TokenColon:         "COLON",
	TokenComma:         "COMMA",
	TokenLeftBracket:   "LBRACKET",
	TokenRightBracket:  "RBRACKET",
	TokenAssign:        "ASSIGNMENT",
	TokenInferAssign:   "INFER_ASSIGN",
}

// String returns the upper-case name of the token type, e.g. "IDENTIFIER".
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return "UNKNOWN"
}

// IsLiteral reports whether the token is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenIntLiteral && tt <= TokenBoolLiteral
}

// IsTypeKeyword reports whether the token names a type, reserved or not.
func (tt TokenType) IsTypeKeyword() bool {
	return tt >= TokenNum && tt <= TokenPod
}

// IsKeyword reports whether the token is a control keyword.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenFun && tt <= TokenLog
}

// Token is a single lexical token. Tokens are immutable values.
type Token struct {
	Type TokenType

	// Lexeme is the source text of the token, quotes included for string
	// and character literals.
	Lexeme string

	// Value is the decoded literal payload, nil for non-literals.
	Value any

	Position Position
}

// Line returns the 1-based source line of the token.
func (t Token) Line() int {
	return t.Position.Line
}

// String returns "TYPE(lexeme) at file:line:col", for debugging.
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

var keywords = map[string]TokenType{
	"num":   TokenNum,
	"real":  TokenReal,
	"chr":   TokenChr,
	"str":   TokenStr,
	"bool":  TokenBool,
	"zil":   TokenZil,
	"vec":   TokenVec,
	"map":   TokenMap,
	"set":   TokenSet,
	"ref":   TokenRef,
	"heap":  TokenHeap,
	"stack": TokenStack,
	"que":   TokenQue,
	"link":  TokenLink,
	"tree":  TokenTree,
	"pod":   TokenPod,
	"fun":   TokenFun,
	"dec":   TokenDec,
	"use":   TokenUse,
	"w":     TokenMain,
	"ret":   TokenReturn,
	"log":   TokenLog,
}

// LookupKeyword returns the keyword token type for identifier, or
// TokenIdentifier when it is not a keyword. Boolean literals are handled by
// the scanner, not here.
func LookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TokenIdentifier
}
