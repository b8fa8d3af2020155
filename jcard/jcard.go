// Package jcard converts between vCard 4.0 cards and the jCard JSON
// representation defined by RFC 7095.
//
// jCard writes dates and times in the extended ISO 8601 format and
// lowercases property and parameter names; both are reversed on
// decode. jCard has no binary type, so base64 payloads travel as data
// URIs and come back as URI values.
package jcard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmpfs/vcard4"
)

// Encode renders a single card as a jCard array:
//
//	["vcard", [ [name, params, type, value...], ... ]]
func Encode(card *vcard4.Card) ([]byte, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	props := make([]interface{}, 0, len(card.Properties()))
	for _, p := range card.Properties() {
		entry, err := encodeProperty(p)
		if err != nil {
			return nil, err
		}
		props = append(props, entry)
	}
	return json.Marshal([]interface{}{"vcard", props})
}

func encodeProperty(p *vcard4.Property) ([]interface{}, error) {
	params := map[string]interface{}{}
	if p.Group != "" {
		params["group"] = strings.ToLower(p.Group)
	}
	for _, param := range p.Params {
		key := strings.ToLower(param.Name)
		// The type column replaces VALUE, and binary payloads travel
		// as data URIs, so neither parameter survives into jCard.
		if key == "value" || key == "encoding" {
			continue
		}
		switch len(param.Values) {
		case 0:
		case 1:
			params[key] = param.Values[0]
		default:
			vals := make([]interface{}, len(param.Values))
			for i, v := range param.Values {
				vals[i] = v
			}
			params[key] = vals
		}
	}

	typ, vals, err := encodeValue(p)
	if err != nil {
		return nil, err
	}
	entry := []interface{}{strings.ToLower(p.Name), params, typ}
	return append(entry, vals...), nil
}

// encodeValue maps a typed value to its jCard type tag and value
// columns. Structured compounds become a single array column; comma
// lists become multiple columns.
func encodeValue(p *vcard4.Property) (string, []interface{}, error) {
	v := p.Value
	if v == nil {
		return "text", []interface{}{""}, nil
	}
	switch v.Kind() {
	case vcard4.KindText:
		s, _ := v.AsText()
		return "text", []interface{}{s}, nil

	case vcard4.KindTextList:
		items, _ := v.AsTextList()
		// ORG is a structured value in jCard, not a multi-valued one.
		if strings.EqualFold(p.Name, "ORG") {
			return "text", []interface{}{toAny(items)}, nil
		}
		return "text", toAny(items), nil

	case vcard4.KindBoolean:
		b, _ := v.AsBoolean()
		return "boolean", []interface{}{b}, nil

	case vcard4.KindInteger:
		n, _ := v.AsInteger()
		return "integer", []interface{}{n}, nil

	case vcard4.KindFloat:
		f, _ := v.AsFloat()
		return "float", []interface{}{f}, nil

	case vcard4.KindDate:
		d, _ := v.AsDate()
		return "date", []interface{}{extendedDate(d)}, nil

	case vcard4.KindTime:
		t, _ := v.AsTime()
		return "time", []interface{}{extendedTime(t)}, nil

	case vcard4.KindDateTime:
		dt, _ := v.AsDateTime()
		return "date-time", []interface{}{extendedDate(dt.Date) + "T" + extendedTime(dt.Time)}, nil

	case vcard4.KindDateAndOrTime:
		daot, _ := v.AsDateAndOrTime()
		switch {
		case daot.HasDate && daot.HasTime:
			return "date-and-or-time", []interface{}{extendedDate(daot.Date) + "T" + extendedTime(daot.Time)}, nil
		case daot.HasDate:
			return "date-and-or-time", []interface{}{extendedDate(daot.Date)}, nil
		default:
			return "date-and-or-time", []interface{}{"T" + extendedTime(daot.Time)}, nil
		}

	case vcard4.KindUTCOffset:
		off, _ := v.AsUTCOffset()
		return "utc-offset", []interface{}{extendedOffset(off)}, nil

	case vcard4.KindLanguageTag:
		tag, _ := v.AsLanguageTag()
		return "language-tag", []interface{}{tag}, nil

	case vcard4.KindURI:
		u, _ := v.AsURI()
		return "uri", []interface{}{u.String()}, nil

	case vcard4.KindBinary:
		// jCard has no binary type; the payload travels as a data URI.
		data, _ := v.AsBinary()
		return "uri", []interface{}{vcard4.DataURI(data)}, nil

	case vcard4.KindName:
		n, _ := v.AsName()
		return "text", []interface{}{toAny([]string{
			n.Family, n.Given, n.Additional, n.Prefixes, n.Suffixes,
		})}, nil

	case vcard4.KindAddress:
		a, _ := v.AsAddress()
		return "text", []interface{}{toAny([]string{
			a.POBox, a.Extended, a.Street, a.Locality, a.Region, a.PostCode, a.Country,
		})}, nil

	case vcard4.KindGender:
		g, _ := v.AsGender()
		if g.Identity == "" {
			return "text", []interface{}{g.Sex}, nil
		}
		return "text", []interface{}{toAny([]string{g.Sex, g.Identity})}, nil

	case vcard4.KindClientPIDMap:
		m, _ := v.AsClientPIDMap()
		return "text", []interface{}{[]interface{}{m.PID, m.URI}}, nil
	}
	return "", nil, fmt.Errorf("jcard: no encoding for value kind %s", v.Kind())
}

func toAny(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
