package vcard4

import (
	"fmt"
	"strings"
)

// ValidationError is a card that is well formed line by line but
// violates a card-level rule: cardinality, the VERSION literal, or the
// MEMBER/KIND coupling.
type ValidationError struct {
	Property string
	Msg      string
}

func (e *ValidationError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("vcard4: invalid vCard: %s: %s", e.Property, e.Msg)
	}
	return fmt.Sprintf("vcard4: invalid vCard: %s", e.Msg)
}

func validationErrorf(prop, format string, args ...interface{}) error {
	return &ValidationError{Property: prop, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the card against the RFC6350 card-level rules
// without rendering it.
func (c *Card) Validate() error {
	return validateCard(c)
}

// validateCard checks the RFC6350 card-level rules. Parse calls it at
// each END:VCARD; Encode calls it before rendering.
func validateCard(c *Card) error {
	counts := make(map[string]int)
	for _, p := range c.props {
		counts[upper(p.Name)]++
	}

	for name, card := range cardinalities {
		n := counts[name]
		switch card {
		case ExactlyOne:
			if n != 1 {
				return validationErrorf(name, "required exactly once, found %d", n)
			}
		case OneOrMore:
			if n == 0 {
				return validationErrorf(name, "required at least once")
			}
		case ZeroOrOne:
			if n > 1 {
				return validationErrorf(name, "allowed at most once, found %d", n)
			}
		}
	}

	if v := c.Version(); v != "4.0" {
		return validationErrorf(propVersion, "unsupported version %q", v)
	}

	if counts[propMember] > 0 {
		if kind := c.First(propKind); kind == nil || !strings.EqualFold(textOf(kind), "group") {
			return validationErrorf(propMember, "only allowed when KIND is group")
		}
	}
	return nil
}

func textOf(p *Property) string {
	if p == nil || p.Value == nil {
		return ""
	}
	s, _ := p.Value.AsText()
	return s
}
