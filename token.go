package vcard4

import "fmt"

// tokenType classifies lexer tokens.
type tokenType uint8

const (
	tokenEOF tokenType = iota

	tokenIdent     // ALPHA / DIGIT / "-" run
	tokenDot       // "." group separator
	tokenSemicolon // ";"
	tokenColon     // ":"
	tokenComma     // ","
	tokenEquals    // "="
	tokenQuoted    // quoted parameter string, value without the quotes
	tokenParamText // unquoted parameter value run
	tokenText      // raw text run in value position
	tokenEscape    // backslash escape pair in value position, kept raw
)

// String returns the token type name.
func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenIdent:
		return "IDENT"
	case tokenDot:
		return "."
	case tokenSemicolon:
		return ";"
	case tokenColon:
		return ":"
	case tokenComma:
		return ","
	case tokenEquals:
		return "="
	case tokenQuoted:
		return "QUOTED"
	case tokenParamText:
		return "PARAMTEXT"
	case tokenText:
		return "TEXT"
	case tokenEscape:
		return "ESCAPE"
	default:
		return "UNKNOWN"
	}
}

// token is one lexed token with its byte offset in the logical line.
type token struct {
	typ tokenType
	val string
	pos int
}

// String returns a debug representation of the token.
func (t token) String() string {
	if t.val == "" {
		return t.typ.String()
	}
	return fmt.Sprintf("%s(%q)", t.typ, t.val)
}

// LexError is a malformed token: a bad escape target or an unterminated
// quoted string.
type LexError struct {
	Line int
	Pos  int
	Msg  string
}

func (e *LexError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("vcard4: lex error on line %d at byte %d: %s", e.Line, e.Pos, e.Msg)
	}
	return fmt.Sprintf("vcard4: lex error: %s", e.Msg)
}

// lexMode tracks which part of the content line the lexer is in. The
// grammar's three regions use different character classes, so the
// scanner is modal rather than context-free.
type lexMode uint8

const (
	modeName lexMode = iota
	modeParamName
	modeParamValue
	modeValue
)

// lexer tokenizes one unfolded logical line. It holds no state beyond
// the current scan, so independent lines (and inputs) tokenize without
// any shared mutable data.
type lexer struct {
	input string
	line  int // physical line for diagnostics
	pos   int
	mode  lexMode
}

func newLexer(l logicalLine) *lexer {
	return &lexer{input: l.text, line: l.num}
}

// tokenize scans the whole line into tokens, classifying maximal runs.
func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.typ == tokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	if l.pos >= len(l.input) {
		return token{typ: tokenEOF, pos: l.pos}, nil
	}
	if l.mode == modeValue {
		return l.nextValue()
	}
	return l.nextHeader()
}

// nextHeader scans the group/name/parameter region of the line. The
// structural bytes differ per position: "." only separates a group
// from a name, "=" only ends a parameter name, and parameter values
// admit a much wider character class than identifiers.
func (l *lexer) nextHeader() (token, error) {
	start := l.pos
	c := l.input[l.pos]

	switch c {
	case ';':
		l.pos++
		l.mode = modeParamName
		return token{typ: tokenSemicolon, val: ";", pos: start}, nil
	case ':':
		l.pos++
		l.mode = modeValue
		return token{typ: tokenColon, val: ":", pos: start}, nil
	case ',':
		l.pos++
		return token{typ: tokenComma, val: ",", pos: start}, nil
	}

	switch l.mode {
	case modeName:
		if c == '.' {
			l.pos++
			return token{typ: tokenDot, val: ".", pos: start}, nil
		}
	case modeParamName:
		if c == '=' {
			l.pos++
			l.mode = modeParamValue
			return token{typ: tokenEquals, val: "=", pos: start}, nil
		}
	case modeParamValue:
		if c == '"' {
			return l.scanQuoted()
		}
		if isParamSafeByte(c) {
			for l.pos < len(l.input) && isParamSafeByte(l.input[l.pos]) {
				l.pos++
			}
			return token{typ: tokenParamText, val: l.input[start:l.pos], pos: start}, nil
		}
		return token{}, l.errorf(start, "unexpected %q in parameter value", c)
	}

	if isIdentByte(c) {
		for l.pos < len(l.input) && isIdentByte(l.input[l.pos]) {
			l.pos++
		}
		return token{typ: tokenIdent, val: l.input[start:l.pos], pos: start}, nil
	}

	return token{}, l.errorf(start, "unexpected %q", c)
}

// scanQuoted scans an RFC6350 quoted-string: any byte except DQUOTE and
// raw control characters, with no escape mechanism.
func (l *lexer) scanQuoted() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '"' {
			val := l.input[start+1 : l.pos]
			l.pos++
			return token{typ: tokenQuoted, val: val, pos: start}, nil
		}
		if c < 0x20 && c != '\t' {
			return token{}, l.errorf(l.pos, "control character in quoted string")
		}
		l.pos++
	}
	return token{}, l.errorf(start, "unterminated quoted string")
}

// nextValue scans the value region: maximal raw runs, separators and
// escape pairs.
func (l *lexer) nextValue() (token, error) {
	start := l.pos
	switch c := l.input[l.pos]; c {
	case ';':
		l.pos++
		return token{typ: tokenSemicolon, val: ";", pos: start}, nil
	case ',':
		l.pos++
		return token{typ: tokenComma, val: ",", pos: start}, nil
	case '\\':
		if l.pos+1 >= len(l.input) {
			return token{}, l.errorf(start, "dangling escape at end of line")
		}
		t := l.input[l.pos+1]
		if !isEscapable(t) {
			return token{}, l.errorf(start, "invalid escape target %q", t)
		}
		l.pos += 2
		return token{typ: tokenEscape, val: l.input[start:l.pos], pos: start}, nil
	}

	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ';', ',', '\\':
			return token{typ: tokenText, val: l.input[start:l.pos], pos: start}, nil
		}
		l.pos++
	}
	return token{typ: tokenText, val: l.input[start:l.pos], pos: start}, nil
}

func (l *lexer) errorf(pos int, format string, args ...interface{}) error {
	return &LexError{Line: l.line, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Character classification

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-'
}

// isParamSafeByte matches SAFE-CHAR: anything except control bytes,
// DQUOTE and the ";" ":" "," delimiters. Multi-byte UTF-8 continuation
// bytes are all >= 0x80 and therefore safe.
func isParamSafeByte(c byte) bool {
	if c == '\t' {
		return true
	}
	if c < 0x20 || c == 0x7f {
		return false
	}
	switch c {
	case '"', ';', ':', ',':
		return false
	}
	return true
}

// tokenStream provides lookahead over a lexed line.
type tokenStream struct {
	tokens []token
	pos    int
}

func newTokenStream(tokens []token) *tokenStream {
	return &tokenStream{tokens: tokens}
}

// peek returns the current token without advancing.
func (ts *tokenStream) peek() token {
	if ts.pos >= len(ts.tokens) {
		return token{typ: tokenEOF}
	}
	return ts.tokens[ts.pos]
}

// advance moves past the current token and returns it.
func (ts *tokenStream) advance() token {
	tok := ts.peek()
	if ts.pos < len(ts.tokens) {
		ts.pos++
	}
	return tok
}

// match advances when the current token has the given type.
func (ts *tokenStream) match(typ tokenType) bool {
	if ts.peek().typ == typ {
		ts.advance()
		return true
	}
	return false
}

// atEnd reports whether the stream is exhausted.
func (ts *tokenStream) atEnd() bool {
	return ts.peek().typ == tokenEOF
}
