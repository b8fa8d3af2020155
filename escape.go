package vcard4

import "strings"

func upper(s string) string {
	return strings.ToUpper(s)
}

// isEscapable reports whether a byte may follow a backslash in a value.
func isEscapable(c byte) bool {
	switch c {
	case '\\', ';', ',', 'n', 'N':
		return true
	}
	return false
}

// escapeText renders a decoded text component back to wire form,
// escaping backslash, semicolon, comma and newline.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "\\;,\n") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case ';':
			sb.WriteString(`\;`)
		case ',':
			sb.WriteString(`\,`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// unescapeText decodes the RFC6350 value escapes. The lexer has already
// vetted escape targets on the parse path, but callers constructing
// values directly still get an error for a stray backslash.
func unescapeText(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", &LexError{Msg: "dangling escape at end of value"}
		}
		i++
		switch t := s[i]; t {
		case '\\', ';', ',':
			sb.WriteByte(t)
		case 'n', 'N':
			sb.WriteByte('\n')
		default:
			return "", &LexError{Msg: "invalid escape target " + string(t)}
		}
	}
	return sb.String(), nil
}

// splitUnescaped splits s on every separator byte that is not preceded
// by a backslash escape. The returned segments keep their escapes.
func splitUnescaped(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escape target
		case sep:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
