package lexer

// TokenType represents the type of a token
type TokenType string

// Token represents a lexical token. ERROR tokens carry the error message in
// Lexeme so the parser can recover locally instead of aborting the pass.
type Token struct {
	Kind   TokenType
	Lexeme string
	File   string
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Token type constants
const (
	// Special tokens
	ERROR  TokenType = "ERROR"
	EOF    TokenType = "EOF"
	INDENT TokenType = "INDENT"
	DEDENT TokenType = "DEDENT"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // counter, foo_bar, x
	INT    TokenType = "INT"    // 1343456
	FLOAT  TokenType = "FLOAT"  // 3.14
	STRING TokenType = "STRING" // "hello", 'hello'

	// Operators
	ASSIGN       TokenType = "="
	PLUS         TokenType = "+"
	MINUS        TokenType = "-"
	ASTERISK     TokenType = "*"
	SLASH        TokenType = "/"
	PERCENT      TokenType = "%"
	BANG         TokenType = "!"
	AMPERSAND    TokenType = "&"
	PIPE         TokenType = "|"
	QUESTION     TokenType = "?"
	PLUS_ASSIGN  TokenType = "+="
	MINUS_ASSIGN TokenType = "-="
	ARROW        TokenType = "->"
	EQ           TokenType = "=="
	NOT_EQ       TokenType = "!="
	LT           TokenType = "<"
	GT           TokenType = ">"
	LE           TokenType = "<="
	GE           TokenType = ">="
	DOUBLE_COLON TokenType = "::"

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	LET      TokenType = "LET"
	FN       TokenType = "FN"
	CLASS    TokenType = "CLASS"
	TRAIT    TokenType = "TRAIT"
	IMPL     TokenType = "IMPL"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	MATCH    TokenType = "MATCH"
	RETURN   TokenType = "RETURN"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	IMPORT   TokenType = "IMPORT"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
	GO       TokenType = "GO"
	CHAN     TokenType = "CHAN"
	SELECT   TokenType = "SELECT"
	AWAIT    TokenType = "AWAIT"
	MOVE     TokenType = "MOVE"
	SOME     TokenType = "SOME"
	NONE     TokenType = "NONE"
	OK       TokenType = "OK"
	ERR      TokenType = "ERR"
)

// KeywordTable maps keyword spellings to their token types. Instances are
// built once by Keywords and treated as immutable by every lexer they are
// handed to.
type KeywordTable map[string]TokenType

// Keywords returns the keyword table for the language.
func Keywords() KeywordTable {
	return KeywordTable{
		"let":      LET,
		"fn":       FN,
		"class":    CLASS,
		"trait":    TRAIT,
		"impl":     IMPL,
		"if":       IF,
		"else":     ELSE,
		"while":    WHILE,
		"for":      FOR,
		"in":       IN,
		"match":    MATCH,
		"return":   RETURN,
		"break":    BREAK,
		"continue": CONTINUE,
		"import":   IMPORT,
		"true":     TRUE,
		"false":    FALSE,
		"null":     NULL,
		"go":       GO,
		"chan":     CHAN,
		"select":   SELECT,
		"await":    AWAIT,
		"move":     MOVE,
		"Some":     SOME,
		"None":     NONE,
		"Ok":       OK,
		"Err":      ERR,
	}
}

// Lookup resolves an identifier spelling against the table.
func (kt KeywordTable) Lookup(ident string) TokenType {
	if tok, ok := kt[ident]; ok {
		return tok
	}
	return IDENT
}
