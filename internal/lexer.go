package internal

import (
	"fmt"
	"strconv"
	"unicode"
)

// lexer turns source into tokens on demand. It is single pass: once a
// token has been handed out it cannot be scanned again.
type lexer struct {
	source  []rune
	start   int
	current int
	line    int

	eof   *Token
	state Reporter
}

func newLexer(source string, state Reporter) *lexer {
	return &lexer{
		source: []rune(source),
		line:   1,
		state:  state,
	}
}

// next returns the following token. Once the source is exhausted it keeps
// returning the same EOF token.
func (l *lexer) next() *Token {
	for !l.isAtEnd() {
		l.start = l.current
		if tk := l.scanToken(); tk != nil {
			return tk
		}
	}
	if l.eof == nil {
		l.start = l.current
		l.eof = &Token{Type: tkEOF, Lexeme: "", Line: l.line}
	}
	return l.eof
}

// scan drains the lexer, EOF included.
func (l *lexer) scan() []Token {
	var tokens []Token
	for {
		tk := l.next()
		tokens = append(tokens, *tk)
		if tk.Type == tkEOF {
			return tokens
		}
	}
}

func (l *lexer) scanToken() *Token {
	c := l.advance()
	switch c {
	case '(':
		return l.emit(tkLeftParen, nil)
	case ')':
		return l.emit(tkRightParen, nil)
	case '{':
		return l.emit(tkLeftBrace, nil)
	case '}':
		return l.emit(tkRightBrace, nil)
	case ',':
		return l.emit(tkComma, nil)
	case '.':
		return l.emit(tkDot, nil)
	case '-':
		return l.emit(tkMinus, nil)
	case '+':
		return l.emit(tkPlus, nil)
	case ';':
		return l.emit(tkSemicolon, nil)
	case '*':
		return l.emit(tkStar, nil)
	case '!':
		if l.match('=') {
			return l.emit(tkBangEqual, nil)
		}
		return l.emit(tkBang, nil)
	case '=':
		if l.match('=') {
			return l.emit(tkEqualEqual, nil)
		}
		return l.emit(tkEqual, nil)
	case '<':
		if l.match('=') {
			return l.emit(tkLessEqual, nil)
		}
		return l.emit(tkLess, nil)
	case '>':
		if l.match('=') {
			return l.emit(tkGreaterEqual, nil)
		}
		return l.emit(tkGreater, nil)
	case '/':
		if l.match('/') {
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
			return nil
		}
		return l.emit(tkSlash, nil)

	// Ignore whitespace
	case ' ', '\r', '\t':
		return nil

	case '\n':
		l.line++
		return nil

	case '"':
		return l.string()

	default:
		if isDigit(c) {
			return l.number()
		}
		if unicode.IsLetter(c) {
			return l.identifier()
		}
		l.state.Error(l.line, fmt.Sprintf("Unexpected character '%c'", c))
		return nil
	}
}

func (l *lexer) string() *Token {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.state.Error(l.line, "Unterminated string")
		return nil
	}

	// Consume ending "
	l.advance()

	literal := string(l.source[l.start+1 : l.current-1])
	return l.emit(tkString, literal)
}

func (l *lexer) number() *Token {
	for isDigit(l.peek()) {
		l.advance()
	}

	// A trailing '.' belongs to whatever follows the number
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	literal, _ := strconv.ParseFloat(string(l.source[l.start:l.current]), 64)

	return l.emit(tkNumber, literal)
}

func (l *lexer) identifier() *Token {
	for isIdentifierPart(l.peek()) {
		l.advance()
	}

	identifier := string(l.source[l.start:l.current])

	tokenType, ok := keywords[identifier]
	if !ok {
		tokenType = tkIdentifier
	}

	return l.emit(tokenType, nil)
}

func (l *lexer) advance() rune {
	current := l.source[l.current]
	l.current++
	return current
}

func (l *lexer) match(c rune) bool {
	if l.peek() != c {
		return false
	}
	l.current++
	return true
}

func (l *lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *lexer) emit(token TokenType, literal interface{}) *Token {
	return &Token{
		Type:    token,
		Lexeme:  string(l.source[l.start:l.current]),
		Literal: literal,
		Line:    l.line,
	}
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
