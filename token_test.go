package vcard4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, line string) []token {
	t.Helper()
	toks, err := newLexer(logicalLine{text: line, num: 1}).tokenize()
	require.NoError(t, err)
	return toks
}

func kinds(toks []token) []tokenType {
	out := make([]tokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.typ
	}
	return out
}

func TestLexer_SimpleProperty(t *testing.T) {
	toks := lex(t, "FN:Jane Doe")
	assert.Equal(t, []tokenType{tokenIdent, tokenColon, tokenText, tokenEOF}, kinds(toks))
	assert.Equal(t, "FN", toks[0].val)
	assert.Equal(t, "Jane Doe", toks[2].val)
}

func TestLexer_GroupAndParams(t *testing.T) {
	toks := lex(t, `item1.TEL;TYPE="work,voice";PREF=1:tel:+1-555-555-5555`)
	assert.Equal(t, []tokenType{
		tokenIdent, tokenDot, tokenIdent,
		tokenSemicolon, tokenIdent, tokenEquals, tokenQuoted,
		tokenSemicolon, tokenIdent, tokenEquals, tokenParamText,
		tokenColon, tokenText, tokenEOF,
	}, kinds(toks))
	assert.Equal(t, "item1", toks[0].val)
	assert.Equal(t, "work,voice", toks[6].val)
	// Colons in the value region are plain text.
	assert.Equal(t, "tel:+1-555-555-5555", toks[12].val)
}

func TestLexer_ParamValueAdmitsSafeChars(t *testing.T) {
	// '=' and '.' are SAFE-CHAR inside unquoted parameter values.
	toks := lex(t, "X-A;P=a=b.c:v")
	assert.Equal(t, "a=b.c", toks[4].val)
	assert.Equal(t, tokenParamText, toks[4].typ)
}

func TestLexer_MultiValuedParam(t *testing.T) {
	toks := lex(t, "TEL;TYPE=work,voice:1")
	assert.Equal(t, []tokenType{
		tokenIdent, tokenSemicolon, tokenIdent, tokenEquals,
		tokenParamText, tokenComma, tokenParamText, tokenColon,
		tokenText, tokenEOF,
	}, kinds(toks))
}

func TestLexer_ValueEscapes(t *testing.T) {
	toks := lex(t, `NOTE:a\nb\;c`)
	assert.Equal(t, []tokenType{
		tokenIdent, tokenColon,
		tokenText, tokenEscape, tokenText, tokenEscape, tokenText,
		tokenEOF,
	}, kinds(toks))
	assert.Equal(t, `\n`, toks[3].val)
	assert.Equal(t, `\;`, toks[5].val)
}

func TestLexer_ValueSeparators(t *testing.T) {
	toks := lex(t, "N:Doe;J.;;;")
	assert.Equal(t, []tokenType{
		tokenIdent, tokenColon,
		tokenText, tokenSemicolon, tokenText,
		tokenSemicolon, tokenSemicolon, tokenSemicolon,
		tokenEOF,
	}, kinds(toks))
}

func TestLexer_Errors(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"invalid escape target", `NOTE:a\tb`},
		{"dangling escape", `NOTE:a\`},
		{"unterminated quote", `TEL;TYPE="work:1`},
		{"space in name", "F N:x"},
		{"control in quoted string", "TEL;TYPE=\"a\x01b\":1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newLexer(logicalLine{text: tc.line, num: 7}).tokenize()
			require.Error(t, err)
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, 7, lexErr.Line)
		})
	}
}

func TestTokenStream(t *testing.T) {
	ts := newTokenStream(lex(t, "FN:x"))
	assert.Equal(t, tokenIdent, ts.peek().typ)
	assert.True(t, ts.match(tokenIdent))
	assert.False(t, ts.match(tokenSemicolon))
	assert.True(t, ts.match(tokenColon))
	assert.Equal(t, "x", ts.advance().val)
	assert.True(t, ts.atEnd())
}
