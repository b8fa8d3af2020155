package vcard4

import (
	"io"
	"strings"
)

// Iterator yields cards from a source one at a time, parsing lazily:
// lines after the current card are untouched until Next is called
// again. Next returns io.EOF once the input is exhausted.
type Iterator struct {
	lines []logicalLine
	pos   int
}

func NewIterator(src string) *Iterator {
	return &Iterator{lines: unfold(src)}
}

// Next parses the next BEGIN:VCARD..END:VCARD block. The returned card
// has passed card-level validation.
func (it *Iterator) Next() (*Card, error) {
	var (
		cur   *Card
		begin int
	)
	for it.pos < len(it.lines) {
		ln := it.lines[it.pos]
		it.pos++

		if strings.TrimSpace(ln.text) == "" {
			if cur != nil {
				return nil, parseErrorf(ln.num, "blank line inside vCard")
			}
			continue
		}
		prop, err := parseProperty(ln)
		if err != nil {
			return nil, err
		}

		switch {
		case prop.Is(propBegin):
			if err := checkDelimiter(prop, ln.num); err != nil {
				return nil, err
			}
			if cur != nil {
				return nil, parseErrorf(ln.num, "nested BEGIN:VCARD, block opened on line %d is still open", begin)
			}
			cur = &Card{}
			begin = ln.num

		case prop.Is(propEnd):
			if err := checkDelimiter(prop, ln.num); err != nil {
				return nil, err
			}
			if cur == nil {
				return nil, parseErrorf(ln.num, "END:VCARD without matching BEGIN")
			}
			if err := validateCard(cur); err != nil {
				return nil, err
			}
			return cur, nil

		default:
			if cur == nil {
				return nil, parseErrorf(ln.num, "property %s outside BEGIN:VCARD", prop.Name)
			}
			cur.props = append(cur.props, prop)
		}
	}
	if cur != nil {
		return nil, parseErrorf(begin, "BEGIN:VCARD without matching END")
	}
	return nil, io.EOF
}
