package vcard4

import (
	"fmt"
	"io"
	"strings"
)

// ParseError is a structural error: malformed property lines, stray
// content outside a vCard, or unbalanced BEGIN/END pairs.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("vcard4: parse error on line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("vcard4: parse error: %s", e.Msg)
}

func parseErrorf(line int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// CharsetError reports a CHARSET parameter naming anything other than
// UTF-8. Legacy vCard 2.1/3.0 data carries such parameters; 4.0 input
// is UTF-8 only.
type CharsetError struct {
	Line    int
	Charset string
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("vcard4: unsupported charset %q on line %d, input must be UTF-8", e.Charset, e.Line)
}

// Parse reads one or more vCards from src and fails on the first
// malformed line. Each card is validated against the RFC6350
// cardinality rules when its END:VCARD is reached. Blank lines are
// permitted between cards but not inside one.
func Parse(src string) ([]*Card, error) {
	it := NewIterator(src)
	var cards []*Card
	for {
		card, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, parseErrorf(0, "no vCard data")
	}
	return cards, nil
}

// checkDelimiter enforces the fixed shape of BEGIN/END lines.
func checkDelimiter(prop *Property, line int) error {
	if prop.Group != "" {
		return parseErrorf(line, "%s must not carry a group", prop.Name)
	}
	if len(prop.Params) != 0 {
		return parseErrorf(line, "%s must not carry parameters", prop.Name)
	}
	s, err := prop.Value.AsText()
	if err != nil || upper(s) != "VCARD" {
		return parseErrorf(line, "%s requires the literal value VCARD", prop.Name)
	}
	return nil
}

// parseProperty parses one logical line into a property:
//
//	[group "."] name *(";" param) ":" value
func parseProperty(ln logicalLine) (*Property, error) {
	toks, err := newLexer(ln).tokenize()
	if err != nil {
		return nil, err
	}
	ts := newTokenStream(toks)

	first := ts.advance()
	if first.typ != tokenIdent {
		return nil, parseErrorf(ln.num, "property name expected, got %s", first)
	}
	prop := &Property{Name: first.val}
	if ts.match(tokenDot) {
		nameTok := ts.advance()
		if nameTok.typ != tokenIdent {
			return nil, parseErrorf(ln.num, "property name expected after group, got %s", nameTok)
		}
		prop.Group = prop.Name
		prop.Name = nameTok.val
	}

	for ts.match(tokenSemicolon) {
		name, vals, err := parseParameter(ts, ln.num)
		if err != nil {
			return nil, err
		}
		prop.Params = mergeParam(prop.Params, name, vals)
	}

	if !ts.match(tokenColon) {
		return nil, parseErrorf(ln.num, "':' expected, got %s", ts.peek())
	}

	if err := applyCharsetGate(prop, ln.num); err != nil {
		return nil, err
	}
	if err := checkPref(prop, ln.num); err != nil {
		return nil, err
	}

	raw := rawValue(ts)
	val, err := parseValueFor(prop, raw)
	if err != nil {
		return nil, err
	}
	prop.Value = val
	return prop, nil
}

// parseParameter parses name ["=" value *("," value)]. A bare name is
// the vCard 3.0 TYPE shorthand: TEL;HOME reads as TEL;TYPE=HOME.
func parseParameter(ts *tokenStream, line int) (string, []string, error) {
	nameTok := ts.advance()
	if nameTok.typ != tokenIdent {
		return "", nil, parseErrorf(line, "parameter name expected, got %s", nameTok)
	}
	if !ts.match(tokenEquals) {
		switch ts.peek().typ {
		case tokenSemicolon, tokenColon:
			return paramType, []string{nameTok.val}, nil
		}
		return "", nil, parseErrorf(line, "'=' expected after parameter %s, got %s", nameTok.val, ts.peek())
	}

	var vals []string
	for {
		switch tok := ts.peek(); tok.typ {
		case tokenQuoted, tokenParamText:
			ts.advance()
			vals = append(vals, tok.val)
			if t := ts.peek(); t.typ == tokenQuoted || t.typ == tokenParamText {
				return "", nil, parseErrorf(line, "unexpected %s after parameter value", t)
			}
		default:
			// *SAFE-CHAR admits the empty value.
			vals = append(vals, "")
		}
		if !ts.match(tokenComma) {
			return nameTok.val, vals, nil
		}
	}
}

// mergeParam appends values onto an existing parameter of the same
// name, so TEL;TYPE=work;TYPE=voice and TEL;TYPE=work,voice read the
// same.
func mergeParam(params []Parameter, name string, vals []string) []Parameter {
	for i := range params {
		if upper(params[i].Name) == upper(name) {
			params[i].Values = append(params[i].Values, vals...)
			return params
		}
	}
	return append(params, Parameter{Name: name, Values: vals})
}

// applyCharsetGate discards CHARSET=UTF-8 and rejects every other
// charset. The parameter never survives into the model.
func applyCharsetGate(prop *Property, line int) error {
	cs := prop.Param(paramCharset)
	if cs == nil {
		return nil
	}
	for _, v := range cs.Values {
		if !strings.EqualFold(v, "UTF-8") {
			return &CharsetError{Line: line, Charset: v}
		}
	}
	kept := prop.Params[:0]
	for _, p := range prop.Params {
		if !strings.EqualFold(p.Name, paramCharset) {
			kept = append(kept, p)
		}
	}
	prop.Params = kept
	return nil
}

// checkPref bounds PREF to the RFC6350 range 1..100.
func checkPref(prop *Property, line int) error {
	pref := prop.Param(paramPref)
	if pref == nil {
		return nil
	}
	for _, v := range pref.Values {
		if !allDigits(v) || len(v) > 3 {
			return parseErrorf(line, "PREF=%s is not an integer in 1..100", v)
		}
		if n := atoi(v); n < 1 || n > 100 {
			return parseErrorf(line, "PREF=%d out of range 1..100", n)
		}
	}
	return nil
}

// rawValue reassembles the value region with escapes intact; the typed
// parsers decide how separators and escapes are interpreted.
func rawValue(ts *tokenStream) string {
	var sb strings.Builder
	for !ts.atEnd() {
		sb.WriteString(ts.advance().val)
	}
	return sb.String()
}
