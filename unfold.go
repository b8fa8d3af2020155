package vcard4

import (
	"strings"
	"unicode/utf8"
)

// logicalLine is one unfolded content line together with the physical
// line number it started on, for diagnostics.
type logicalLine struct {
	text string
	num  int
}

// unfold splits the input into logical lines. A line break (CRLF, bare
// LF or bare CR) immediately followed by a single space or horizontal
// tab is a fold: the break and that one whitespace byte are removed and
// the physical line joins the previous logical line. Any other break
// terminates the logical line. This runs before any escape
// interpretation.
func unfold(src string) []logicalLine {
	var lines []logicalLine
	var sb strings.Builder
	num := 1   // current physical line
	first := 1 // physical line the pending logical line started on

	i := 0
	for i < len(src) {
		c := src[i]
		if c == '\r' || c == '\n' {
			// CRLF counts as one break.
			if c == '\r' && i+1 < len(src) && src[i+1] == '\n' {
				i += 2
			} else {
				i++
			}
			num++
			if i < len(src) && (src[i] == ' ' || src[i] == '\t') {
				// Fold marker: drop the break and the single
				// whitespace byte, keep accumulating.
				i++
				continue
			}
			lines = append(lines, logicalLine{text: sb.String(), num: first})
			sb.Reset()
			first = num
			continue
		}
		sb.WriteByte(c)
		i++
	}

	if sb.Len() > 0 {
		lines = append(lines, logicalLine{text: sb.String(), num: first})
	}
	return lines
}

// foldWidth is the maximum number of octets per physical line,
// excluding the line break, per RFC6350 section 3.2.
const foldWidth = 75

// foldLine folds one logical line at the 75-octet boundary, inserting
// CRLF plus a single space. Fold points never split a multi-byte UTF-8
// sequence or a backslash escape pair, so unfolding reconstructs the
// logical line exactly.
func foldLine(line string) string {
	if len(line) <= foldWidth {
		return line
	}

	var sb strings.Builder
	width := 0
	i := 0
	for i < len(line) {
		// A chunk is one rune, or an escape pair kept whole.
		var n int
		if line[i] == '\\' && i+1 < len(line) {
			_, w := utf8.DecodeRuneInString(line[i+1:])
			n = 1 + w
		} else {
			_, n = utf8.DecodeRuneInString(line[i:])
		}

		if width+n > foldWidth {
			sb.WriteString("\r\n ")
			width = 1
		}
		sb.WriteString(line[i : i+n])
		width += n
		i += n
	}
	return sb.String()
}
