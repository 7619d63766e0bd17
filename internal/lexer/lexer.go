package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error is a lexical error. Error() renders it as "file:line:col: message".
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Lexer converts W source code into tokens on demand.
//
// The lexer does not know the grammar. It skips whitespace and comments,
// recognizes keywords, literals and punctuation, decodes literal payloads,
// and tracks positions for diagnostics.
type Lexer struct {
	source   string
	filename string

	// start is the byte offset of the token being scanned, current the
	// offset of the next unread byte.
	start   int
	current int

	// line is 1-based; lineStart is the offset where that line begins, so
	// columns can be computed when a token is made.
	line      int
	lineStart int

	// Position of the token being scanned, captured once whitespace has
	// been skipped.
	startLine      int
	startLineStart int
}

// New creates a lexer over source. filename is only used in positions.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// Line returns the line the lexer has advanced to.
func (l *Lexer) Line() int {
	return l.line
}

// NextToken returns the next token. At the end of input it returns TokenEOF,
// repeatedly. A lexical error is returned together with a TokenInvalid token
// so the caller can report it and keep pulling tokens.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return l.makeToken(TokenInvalid, ""), err
	}

	l.start = l.current
	l.startLine = l.line
	l.startLineStart = l.lineStart

	if l.isAtEnd() {
		return l.makeToken(TokenEOF, ""), nil
	}

	ch := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}
	if isDigit(ch) {
		return l.scanNumber()
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), nil
	case ')':
		return l.makeToken(TokenRightParen, ")"), nil
	case '{':
		return l.makeToken(TokenLeftBrace, "{"), nil
	case '}':
		return l.makeToken(TokenRightBrace, "}"), nil
	case '[':
		return l.makeToken(TokenLeftBracket, "["), nil
	case ']':
		return l.makeToken(TokenRightBracket, "]"), nil
	case ';':
		return l.makeToken(TokenSemicolon, ";"), nil
	case ',':
		return l.makeToken(TokenComma, ","), nil
	case '+':
		return l.makeToken(TokenPlus, "+"), nil
	case '-':
		return l.makeToken(TokenMinus, "-"), nil
	case '*':
		return l.makeToken(TokenStar, "*"), nil
	case '/':
		return l.makeToken(TokenSlash, "/"), nil
	case '=':
		return l.makeToken(TokenAssign, "="), nil
	case ':':
		if l.match('=') {
			return l.makeToken(TokenInferAssign, ":="), nil
		}
		return l.makeToken(TokenColon, ":"), nil
	case '"':
		return l.scanString()
	case '\'':
		return l.scanChar()
	default:
		return l.makeToken(TokenInvalid, string(ch)),
			l.error(fmt.Sprintf("unexpected character %q", ch))
	}
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.peek() != expected || l.isAtEnd() {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) newline() {
	l.line++
	l.lineStart = l.current
}

// skipWhitespace skips blanks, newlines, // line comments and /* block
// comments */. An unterminated block comment is an error.
func (l *Lexer) skipWhitespace() error {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.advance()
			l.newline()
		case '/':
			switch l.peekNext() {
			case '/':
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			case '*':
				l.start = l.current
				l.startLine = l.line
				l.startLineStart = l.lineStart
				l.advance()
				l.advance()
				if !l.skipBlockComment() {
					return l.error("unterminated block comment")
				}
			default:
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) skipBlockComment() bool {
	for !l.isAtEnd() {
		ch := l.advance()
		if ch == '\n' {
			l.newline()
		}
		if ch == '*' && l.peek() == '/' {
			l.advance()
			return true
		}
	}
	return false
}

// scanIdentifier scans an identifier, keyword or boolean literal.
func (l *Lexer) scanIdentifier() Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	text := l.source[l.start:l.current]

	switch text {
	case "true", "false":
		tok := l.makeToken(TokenBoolLiteral, text)
		tok.Value = text == "true"
		return tok
	}
	return l.makeToken(LookupKeyword(text), text)
}

// scanNumber scans an integer (42) or real (2.5) literal. A trailing dot
// without digits is not part of the number.
func (l *Lexer) scanNumber() (Token, error) {
	for isDigit(l.peek()) {
		l.advance()
	}

	isReal := false
	if l.peek() == '.' && isDigit(l.peekNext()) {
		isReal = true
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	text := l.source[l.start:l.current]
	if isReal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.makeToken(TokenInvalid, text), l.error("invalid real literal " + text)
		}
		tok := l.makeToken(TokenFloatLiteral, text)
		tok.Value = v
		return tok, nil
	}

	// num is a C int, so literals must fit in 32 bits.
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return l.makeToken(TokenInvalid, text), l.error("integer literal out of range " + text)
	}
	tok := l.makeToken(TokenIntLiteral, text)
	tok.Value = v
	return tok, nil
}

// scanString scans a double-quoted string. Strings may not span lines.
func (l *Lexer) scanString() (Token, error) {
	var value strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()
		switch ch {
		case '"':
			l.advance()
			tok := l.makeToken(TokenStringLiteral, l.source[l.start:l.current])
			tok.Value = value.String()
			return tok, nil
		case '\n':
			return l.makeToken(TokenInvalid, l.source[l.start:l.current]),
				l.error("unterminated string literal")
		case '\\':
			l.advance()
			r, err := l.escape()
			if err != nil {
				return l.makeToken(TokenInvalid, l.source[l.start:l.current]), err
			}
			value.WriteRune(r)
		default:
			value.WriteRune(l.advance())
		}
	}
	return l.makeToken(TokenInvalid, l.source[l.start:l.current]),
		l.error("unterminated string literal")
}

// scanChar scans a single-quoted character literal holding exactly one
// character after escape decoding.
func (l *Lexer) scanChar() (Token, error) {
	var r rune
	switch ch := l.peek(); {
	case l.isAtEnd(), ch == '\n', ch == '\'':
		return l.makeToken(TokenInvalid, l.source[l.start:l.current]),
			l.error("empty or unterminated character literal")
	case ch == '\\':
		l.advance()
		var err error
		if r, err = l.escape(); err != nil {
			return l.makeToken(TokenInvalid, l.source[l.start:l.current]), err
		}
	default:
		r = l.advance()
	}

	if !l.match('\'') {
		return l.makeToken(TokenInvalid, l.source[l.start:l.current]),
			l.error("unterminated character literal")
	}
	tok := l.makeToken(TokenCharLiteral, l.source[l.start:l.current])
	tok.Value = r
	return tok, nil
}

// escape decodes the character after a backslash.
func (l *Lexer) escape() (rune, error) {
	if l.isAtEnd() {
		return 0, l.error("unterminated escape sequence")
	}
	ch := l.advance()
	switch ch {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\', '"', '\'':
		return ch, nil
	default:
		return 0, l.error(fmt.Sprintf("unknown escape sequence \\%c", ch))
	}
}

func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.startPosition(),
	}
}

func (l *Lexer) startPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.startLine,
		Column:   utf8.RuneCountInString(l.source[l.startLineStart:l.start]) + 1,
		Offset:   l.start,
	}
}

func (l *Lexer) error(message string) error {
	return &Error{Pos: l.startPosition(), Msg: message}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
