package vcard4

import "strings"

// Encode validates the card and renders it as RFC6350 content lines:
// CRLF line breaks, 75-octet folding, and VERSION pinned directly
// after BEGIN:VCARD regardless of its position in the property list.
func (c *Card) Encode() (string, error) {
	if err := validateCard(c); err != nil {
		return "", err
	}

	var sb strings.Builder
	writeLine := func(line string) {
		sb.WriteString(foldLine(line))
		sb.WriteString("\r\n")
	}

	writeLine("BEGIN:VCARD")
	version := c.First(propVersion)
	line, err := renderProperty(version)
	if err != nil {
		return "", err
	}
	writeLine(line)
	for _, p := range c.props {
		if p == version {
			continue
		}
		line, err := renderProperty(p)
		if err != nil {
			return "", err
		}
		writeLine(line)
	}
	writeLine("END:VCARD")
	return sb.String(), nil
}

// String renders the card, or returns the empty string when the card
// cannot be encoded.
func (c *Card) String() string {
	s, err := c.Encode()
	if err != nil {
		return ""
	}
	return s
}

// renderProperty renders one unfolded content line.
func renderProperty(p *Property) (string, error) {
	var sb strings.Builder
	if p.Group != "" {
		if !validIdent(p.Group) {
			return "", valueErrorf(p.Name, p.Group, "invalid group name")
		}
		sb.WriteString(p.Group)
		sb.WriteByte('.')
	}
	if !validIdent(p.Name) {
		return "", valueErrorf(p.Name, p.Name, "invalid property name")
	}
	sb.WriteString(p.Name)

	for _, param := range p.Params {
		if !validIdent(param.Name) {
			return "", valueErrorf(p.Name, param.Name, "invalid parameter name")
		}
		sb.WriteByte(';')
		sb.WriteString(param.Name)
		if len(param.Values) == 0 {
			continue
		}
		sb.WriteByte('=')
		for i, v := range param.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			rendered, err := renderParamValue(p.Name, v)
			if err != nil {
				return "", err
			}
			sb.WriteString(rendered)
		}
	}

	sb.WriteByte(':')
	val, err := renderValue(p.Name, p.Value)
	if err != nil {
		return "", err
	}
	sb.WriteString(val)
	return sb.String(), nil
}

// renderParamValue quotes a parameter value when it contains structural
// bytes. DQUOTE and control characters other than HTAB have no
// representation in either form.
func renderParamValue(prop, v string) (string, error) {
	quote := false
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c == '"':
			return "", valueErrorf(prop, v, "parameter value cannot contain a double quote")
		case c < 0x20 && c != '\t', c == 0x7f:
			return "", valueErrorf(prop, v, "parameter value cannot contain control character %q", c)
		case c == ':' || c == ';' || c == ',':
			quote = true
		}
	}
	if quote {
		return `"` + v + `"`, nil
	}
	return v, nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}
