package lexer

import (
	"strconv"

	"github.com/sable-lang/sable/internal/diag"
)

// Tab width used when measuring indentation.
const tabWidth = 4

// Lexer turns source text into a token sequence. It never fails: lexical
// errors become ERROR tokens (with the message in the lexeme) so the parser
// can recover locally, and are mirrored into the shared diagnostic handler.
type Lexer struct {
	input       []rune
	file        string
	pos         int
	line        int // 1-based line of the rune at pos
	column      int // 1-based column of the rune at pos
	atLineStart bool
	indentLevel int
	keywords    KeywordTable
	handler     *diag.Handler
	tokens      []Token
}

// New creates a lexer over the given source buffer using the default keyword
// table.
func New(src, filename string, handler *diag.Handler) *Lexer {
	return NewWithKeywords(src, filename, handler, Keywords())
}

// NewWithKeywords creates a lexer with an explicit keyword table. The table is
// never mutated by the lexer.
func NewWithKeywords(src, filename string, handler *diag.Handler, keywords KeywordTable) *Lexer {
	return &Lexer{
		input:       []rune(src),
		file:        filename,
		line:        1,
		column:      1,
		atLineStart: true,
		keywords:    keywords,
		handler:     handler,
	}
}

// Tokenize scans the whole input and returns the token sequence terminated by
// an EOF token. Pending indentation is flushed as DEDENT tokens first, so
// INDENT and DEDENT counts balance for any input.
func (l *Lexer) Tokenize() []Token {
	for {
		if l.atLineStart && !l.beginLine() {
			break
		}
		if l.ch() == 0 {
			break
		}
		l.scanToken()
	}
	for l.indentLevel > 0 {
		l.indentLevel--
		l.emitAt(DEDENT, "", l.line, l.column)
	}
	l.emitAt(EOF, "", l.line, l.column)
	return l.tokens
}

func (l *Lexer) ch() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// advance moves past the current rune, keeping line and column pointed at the
// new current rune.
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) emitAt(kind TokenType, lexeme string, line, column int) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: lexeme,
		File:   l.file,
		Line:   line,
		Column: column,
	})
}

// errorToken emits an ERROR token carrying msg and mirrors it into the
// diagnostic handler. Scanning continues afterwards.
func (l *Lexer) errorToken(code diag.Code, msg string, line, column int) {
	l.emitAt(ERROR, msg, line, column)
	if l.handler != nil {
		l.handler.Errorf(code, l.file, line, column, "%s", msg)
	}
}

// beginLine measures the indentation of the next logical line, skipping blank
// and comment-only lines without touching the indent level. It returns false
// when the input ends before any code is found.
func (l *Lexer) beginLine() bool {
	for {
		width := 0
		for l.ch() == ' ' || l.ch() == '\t' {
			if l.ch() == '\t' {
				width += tabWidth
			} else {
				width++
			}
			l.advance()
		}
		switch {
		case l.ch() == 0:
			return false
		case l.ch() == '\r':
			l.advance()
		case l.ch() == '\n':
			l.advance()
		case l.ch() == '#':
			l.skipComment()
			for l.ch() == ' ' || l.ch() == '\t' {
				l.advance()
			}
			if l.ch() == 0 {
				return false
			}
			if l.ch() == '\n' {
				l.advance()
				continue
			}
			// Code follows a block comment on the same line.
			l.applyIndent(width)
			l.atLineStart = false
			return true
		default:
			l.applyIndent(width)
			l.atLineStart = false
			return true
		}
	}
}

// applyIndent emits one INDENT per level of increase or one DEDENT per level
// of decrease relative to the current indent level.
func (l *Lexer) applyIndent(newLevel int) {
	for l.indentLevel < newLevel {
		l.indentLevel++
		l.emitAt(INDENT, "", l.line, l.column)
	}
	for l.indentLevel > newLevel {
		l.indentLevel--
		l.emitAt(DEDENT, "", l.line, l.column)
	}
}

// skipComment consumes a `#` line comment (up to but not including the
// newline) or a `##`-delimited block comment. Comments never produce tokens.
func (l *Lexer) skipComment() {
	if l.peek() == '#' {
		startLine, startColumn := l.line, l.column
		l.advance() // first '#'
		l.advance() // second '#'
		for {
			if l.ch() == 0 {
				l.errorToken(diag.CodeLexUnterminatedComment, "unterminated block comment", startLine, startColumn)
				return
			}
			if l.ch() == '#' && l.peek() == '#' {
				l.advance()
				l.advance()
				return
			}
			l.advance()
		}
	}
	for l.ch() != '\n' && l.ch() != 0 {
		l.advance()
	}
}

func (l *Lexer) scanToken() {
	startLine, startColumn := l.line, l.column

	switch ch := l.ch(); {
	case ch == '\n':
		l.advance()
		l.atLineStart = true

	case ch == ' ' || ch == '\t' || ch == '\r':
		l.advance()

	case ch == '#':
		l.skipComment()

	case ch == '"' || ch == '\'':
		l.scanString(ch, startLine, startColumn)

	case isDigit(ch):
		l.scanNumber(startLine, startColumn)

	case isLetter(ch):
		start := l.pos
		for isLetter(l.ch()) || isDigit(l.ch()) {
			l.advance()
		}
		lexeme := string(l.input[start:l.pos])
		l.emitAt(l.keywords.Lookup(lexeme), lexeme, startLine, startColumn)

	default:
		l.scanOperator(startLine, startColumn)
	}
}

// scanString captures a quoted literal including its surrounding quotes. A
// backslash keeps the next character raw; decoding escapes is the literal
// lowering's job, not the lexer's.
func (l *Lexer) scanString(quote rune, startLine, startColumn int) {
	start := l.pos
	l.advance() // opening quote
	for {
		switch l.ch() {
		case 0:
			l.errorToken(diag.CodeLexUnterminatedString, "unterminated string literal", startLine, startColumn)
			return
		case quote:
			l.advance()
			l.emitAt(STRING, string(l.input[start:l.pos]), startLine, startColumn)
			return
		case '\\':
			l.advance()
			if l.ch() != 0 {
				l.advance()
			}
		default:
			l.advance()
		}
	}
}

// scanNumber reads a base-10 integer, extended to a float by `.` followed by
// a digit run. There is no exponent notation.
func (l *Lexer) scanNumber(startLine, startColumn int) {
	start := l.pos
	for isDigit(l.ch()) {
		l.advance()
	}
	kind := INT
	if l.ch() == '.' && isDigit(l.peek()) {
		kind = FLOAT
		l.advance()
		for isDigit(l.ch()) {
			l.advance()
		}
	}
	l.emitAt(kind, string(l.input[start:l.pos]), startLine, startColumn)
}

// twoCharOps lists the maximal-munch operator forms tried before the
// single-character fallback.
var twoCharOps = map[string]TokenType{
	"+=": PLUS_ASSIGN,
	"-=": MINUS_ASSIGN,
	"->": ARROW,
	"==": EQ,
	"!=": NOT_EQ,
	"<=": LE,
	">=": GE,
	"::": DOUBLE_COLON,
}

var singleCharOps = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	'%': PERCENT,
	'=': ASSIGN,
	'!': BANG,
	'<': LT,
	'>': GT,
	'&': AMPERSAND,
	'|': PIPE,
	'?': QUESTION,
	',': COMMA,
	':': COLON,
	';': SEMICOLON,
	'.': DOT,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
}

func (l *Lexer) scanOperator(startLine, startColumn int) {
	if l.peek() != 0 {
		pair := string([]rune{l.ch(), l.peek()})
		if kind, ok := twoCharOps[pair]; ok {
			l.advance()
			l.advance()
			l.emitAt(kind, pair, startLine, startColumn)
			return
		}
	}
	if kind, ok := singleCharOps[l.ch()]; ok {
		lexeme := string(l.ch())
		l.advance()
		l.emitAt(kind, lexeme, startLine, startColumn)
		return
	}

	bad := string(l.ch())
	l.advance()
	l.errorToken(diag.CodeLexIllegalCharacter, "illegal character "+strconv.Quote(bad), startLine, startColumn)
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
