package vcard4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textProp(name, value string) *Property {
	return &Property{Name: name, Value: Text(value)}
}

func minimalCard() *Card {
	c := &Card{}
	c.Add(textProp(propVersion, "4.0"))
	c.Add(textProp(propFN, "Jane Doe"))
	return c
}

func TestValidate_MinimalCardOK(t *testing.T) {
	assert.NoError(t, minimalCard().Validate())
}

func TestValidate_Cardinality(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Card)
	}{
		{"missing VERSION", func(c *Card) { c.props = c.props[1:] }},
		{"duplicate VERSION", func(c *Card) { c.Add(textProp(propVersion, "4.0")) }},
		{"missing FN", func(c *Card) { c.props = c.props[:1] }},
		{"duplicate N", func(c *Card) {
			c.Add(&Property{Name: propN, Value: NameValue(Name{Family: "Doe"})})
			c.Add(&Property{Name: propN, Value: NameValue(Name{Family: "Roe"})})
		}},
		{"duplicate UID", func(c *Card) {
			c.Add(textProp(propUID, "a"))
			c.Add(textProp(propUID, "b"))
		}},
		{"duplicate GENDER", func(c *Card) {
			c.Add(&Property{Name: propGender, Value: GenderValue(Gender{Sex: "M"})})
			c.Add(&Property{Name: propGender, Value: GenderValue(Gender{Sex: "F"})})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := minimalCard()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestValidate_RepeatablePropertiesOK(t *testing.T) {
	c := minimalCard()
	c.Add(textProp(propFN, "J. Doe"))
	c.Add(textProp(propEmail, "a@example.com"))
	c.Add(textProp(propEmail, "b@example.com"))
	c.Add(textProp(propNote, "x"))
	assert.NoError(t, c.Validate())
}

func TestValidate_VersionLiteral(t *testing.T) {
	c := &Card{}
	c.Add(textProp(propVersion, "3.0"))
	c.Add(textProp(propFN, "Jane"))
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3.0")
}

func TestValidate_MemberRequiresGroupKind(t *testing.T) {
	mk := func(kind string) *Card {
		c := minimalCard()
		if kind != "" {
			c.Add(textProp(propKind, kind))
		}
		u, err := parseURIToken(propMember, "mailto:subscriber@example.com")
		if err != nil {
			panic(err)
		}
		c.Add(&Property{Name: propMember, Value: uriValue("mailto:subscriber@example.com", u)})
		return c
	}

	assert.NoError(t, mk("group").Validate())
	assert.NoError(t, mk("GROUP").Validate())
	assert.Error(t, mk("").Validate())
	assert.Error(t, mk("individual").Validate())
}
