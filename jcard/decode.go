package jcard

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tmpfs/vcard4"
)

// Decode parses a jCard array back into a card. The card is validated
// before it is returned. When the jCard type tag differs from the
// property's RFC6350 default, a VALUE parameter is added so the card
// re-parses identically after Encode.
func Decode(data []byte) (*vcard4.Card, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("jcard: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	top := root.Array()
	if !root.IsArray() || len(top) != 2 || top[0].String() != "vcard" {
		return nil, fmt.Errorf("jcard: expected [\"vcard\", [...]]")
	}
	if !top[1].IsArray() {
		return nil, fmt.Errorf("jcard: property list is not an array")
	}

	card := &vcard4.Card{}
	for _, entry := range top[1].Array() {
		prop, err := decodeProperty(entry)
		if err != nil {
			return nil, err
		}
		card.Add(prop)
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

func decodeProperty(entry gjson.Result) (*vcard4.Property, error) {
	cols := entry.Array()
	if !entry.IsArray() || len(cols) < 4 {
		return nil, fmt.Errorf("jcard: property entry must be [name, params, type, value...]")
	}
	name := strings.ToUpper(cols[0].String())
	if name == "" {
		return nil, fmt.Errorf("jcard: empty property name")
	}
	prop := &vcard4.Property{Name: name}

	if !cols[1].IsObject() {
		return nil, fmt.Errorf("jcard: %s: parameters must be an object", name)
	}
	cols[1].ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if strings.EqualFold(k, "group") {
			prop.Group = value.String()
			return true
		}
		param := vcard4.Parameter{Name: strings.ToUpper(k)}
		if value.IsArray() {
			for _, v := range value.Array() {
				param.Values = append(param.Values, v.String())
			}
		} else {
			param.Values = []string{value.String()}
		}
		prop.Params = append(prop.Params, param)
		return true
	})

	typ := cols[2].String()
	val, err := decodeValue(name, typ, cols[3:])
	if err != nil {
		return nil, err
	}
	prop.Value = val

	if typ != "unknown" && typ != vcard4.DefaultValueType(name) && prop.Param("VALUE") == nil {
		prop.SetParam("VALUE", typ)
	}
	return prop, nil
}

func decodeValue(name, typ string, cols []gjson.Result) (*vcard4.Value, error) {
	switch typ {
	case "text", "unknown":
		return decodeTextValue(name, cols)

	case "uri":
		s := cols[0].String()
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" {
			return nil, fmt.Errorf("jcard: %s: %q is not a uri", name, s)
		}
		return vcard4.URI(u), nil

	case "boolean":
		if !cols[0].IsBool() {
			return nil, fmt.Errorf("jcard: %s: expected a boolean", name)
		}
		return vcard4.Boolean(cols[0].Bool()), nil

	case "integer":
		if cols[0].Type != gjson.Number {
			return nil, fmt.Errorf("jcard: %s: expected an integer", name)
		}
		return vcard4.Integer(cols[0].Int()), nil

	case "float":
		if cols[0].Type != gjson.Number {
			return nil, fmt.Errorf("jcard: %s: expected a float", name)
		}
		return vcard4.Float(cols[0].Float()), nil

	case "date":
		d, err := parseExtendedDate(name, cols[0].String())
		if err != nil {
			return nil, err
		}
		return vcard4.DateValue(d), nil

	case "time":
		t, err := parseExtendedTime(name, cols[0].String())
		if err != nil {
			return nil, err
		}
		return vcard4.TimeValue(t), nil

	case "date-time", "timestamp":
		dt, err := parseExtendedDateTime(name, cols[0].String())
		if err != nil {
			return nil, err
		}
		return vcard4.DateTimeValue(dt), nil

	case "date-and-or-time":
		s := cols[0].String()
		switch {
		case strings.HasPrefix(s, "T"):
			t, err := parseExtendedTime(name, s[1:])
			if err != nil {
				return nil, err
			}
			return vcard4.DateAndOrTimeValue(vcard4.DateAndOrTime{HasTime: true, Time: t}), nil
		case strings.Contains(s, "T"):
			dt, err := parseExtendedDateTime(name, s)
			if err != nil {
				return nil, err
			}
			return vcard4.DateAndOrTimeValue(vcard4.DateAndOrTime{
				HasDate: true, HasTime: true, Date: dt.Date, Time: dt.Time,
			}), nil
		default:
			d, err := parseExtendedDate(name, s)
			if err != nil {
				return nil, err
			}
			return vcard4.DateAndOrTimeValue(vcard4.DateAndOrTime{HasDate: true, Date: d}), nil
		}

	case "utc-offset":
		off, err := parseExtendedOffset(name, cols[0].String())
		if err != nil {
			return nil, err
		}
		return vcard4.UTCOffsetValue(off), nil

	case "language-tag":
		return vcard4.LanguageTag(cols[0].String()), nil
	}
	return nil, fmt.Errorf("jcard: %s: unsupported type %q", name, typ)
}

// decodeTextValue handles the structured compounds and text lists that
// share the "text" type tag.
func decodeTextValue(name string, cols []gjson.Result) (*vcard4.Value, error) {
	switch name {
	case "N":
		c, err := componentStrings(name, cols[0], 5)
		if err != nil {
			return nil, err
		}
		return vcard4.NameValue(vcard4.Name{
			Family: c[0], Given: c[1], Additional: c[2], Prefixes: c[3], Suffixes: c[4],
		}), nil

	case "ADR":
		c, err := componentStrings(name, cols[0], 7)
		if err != nil {
			return nil, err
		}
		return vcard4.AddressValue(vcard4.Address{
			POBox: c[0], Extended: c[1], Street: c[2], Locality: c[3],
			Region: c[4], PostCode: c[5], Country: c[6],
		}), nil

	case "GENDER":
		c, err := componentStrings(name, cols[0], 2)
		if err != nil {
			return nil, err
		}
		switch c[0] {
		case "", "M", "F", "O", "N", "U":
		default:
			return nil, fmt.Errorf("jcard: GENDER: unknown sex component %q", c[0])
		}
		return vcard4.GenderValue(vcard4.Gender{Sex: c[0], Identity: c[1]}), nil

	case "CLIENTPIDMAP":
		parts := cols[0].Array()
		if !cols[0].IsArray() || len(parts) != 2 {
			return nil, fmt.Errorf("jcard: CLIENTPIDMAP requires [pid, uri]")
		}
		pid := int(parts[0].Int())
		if parts[0].Type != gjson.Number || pid < 1 {
			return nil, fmt.Errorf("jcard: CLIENTPIDMAP pid must be a positive integer")
		}
		return vcard4.ClientPIDMapValue(vcard4.ClientPIDMap{PID: pid, URI: parts[1].String()}), nil

	case "ORG":
		if cols[0].IsArray() {
			return vcard4.NewTextList(';', resultStrings(cols[0].Array())...), nil
		}
		return vcard4.NewTextList(';', cols[0].String()), nil
	}

	if len(cols) > 1 {
		return vcard4.TextList(resultStrings(cols)...), nil
	}
	return vcard4.Text(cols[0].String()), nil
}

// componentStrings reads a structured value column: an array of up to
// arity components, or a bare string standing for the first component.
func componentStrings(name string, col gjson.Result, arity int) ([]string, error) {
	out := make([]string, arity)
	if !col.IsArray() {
		out[0] = col.String()
		return out, nil
	}
	parts := col.Array()
	if len(parts) > arity {
		return nil, fmt.Errorf("jcard: %s: too many components: %d > %d", name, len(parts), arity)
	}
	for i, p := range parts {
		// Multi-valued components collapse to comma-joined text.
		if p.IsArray() {
			out[i] = strings.Join(resultStrings(p.Array()), ",")
		} else {
			out[i] = p.String()
		}
	}
	return out, nil
}

func resultStrings(results []gjson.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.String()
	}
	return out
}

// ============================================================
// Extended ISO 8601 forms (RFC 7095 section 3.5)
// ============================================================

func extendedDate(d vcard4.Date) string {
	switch {
	case d.HasYear && d.HasMonth && d.HasDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.HasYear && d.HasMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	case d.HasYear:
		return fmt.Sprintf("%04d", d.Year)
	case d.HasMonth && d.HasDay:
		return fmt.Sprintf("--%02d-%02d", d.Month, d.Day)
	case d.HasMonth:
		return fmt.Sprintf("--%02d", d.Month)
	default:
		return fmt.Sprintf("---%02d", d.Day)
	}
}

func extendedTime(t vcard4.Time) string {
	var sb strings.Builder
	switch {
	case t.HasHour:
		fmt.Fprintf(&sb, "%02d", t.Hour)
		if t.HasMinute {
			fmt.Fprintf(&sb, ":%02d", t.Minute)
			if t.HasSecond {
				fmt.Fprintf(&sb, ":%02d", t.Second)
			}
		}
	case t.HasMinute:
		fmt.Fprintf(&sb, "-%02d", t.Minute)
		if t.HasSecond {
			fmt.Fprintf(&sb, ":%02d", t.Second)
		}
	default:
		fmt.Fprintf(&sb, "--%02d", t.Second)
	}
	if t.Zone != nil {
		sb.WriteString(extendedOffset(*t.Zone))
	}
	return sb.String()
}

func extendedOffset(off vcard4.UTCOffset) string {
	if off.UTC {
		return "Z"
	}
	sign := "+"
	if off.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d:%02d", sign, off.Hours, off.Minutes)
}

func parseExtendedDate(name, s string) (vcard4.Date, error) {
	var d vcard4.Date
	bad := func() (vcard4.Date, error) {
		return vcard4.Date{}, fmt.Errorf("jcard: %s: %q is not a date", name, s)
	}
	switch {
	case len(s) == 10 && s[4] == '-' && s[7] == '-':
		if !digits(s[:4]) || !digits(s[5:7]) || !digits(s[8:]) {
			return bad()
		}
		d.Year, d.HasYear = num(s[:4]), true
		d.Month, d.HasMonth = num(s[5:7]), true
		d.Day, d.HasDay = num(s[8:]), true
	case len(s) == 7 && s[4] == '-' && digits(s[:4]) && digits(s[5:]):
		d.Year, d.HasYear = num(s[:4]), true
		d.Month, d.HasMonth = num(s[5:]), true
	case len(s) == 4 && digits(s):
		d.Year, d.HasYear = num(s), true
	case len(s) == 7 && strings.HasPrefix(s, "--") && s[4] == '-' && digits(s[2:4]) && digits(s[5:]):
		d.Month, d.HasMonth = num(s[2:4]), true
		d.Day, d.HasDay = num(s[5:]), true
	case len(s) == 4 && strings.HasPrefix(s, "--") && digits(s[2:]):
		d.Month, d.HasMonth = num(s[2:]), true
	case len(s) == 5 && strings.HasPrefix(s, "---") && digits(s[3:]):
		d.Day, d.HasDay = num(s[3:]), true
	default:
		return bad()
	}
	if d.HasMonth && (d.Month < 1 || d.Month > 12) || d.HasDay && (d.Day < 1 || d.Day > 31) {
		return bad()
	}
	return d, nil
}

func parseExtendedTime(name, s string) (vcard4.Time, error) {
	var t vcard4.Time
	bad := func() (vcard4.Time, error) {
		return vcard4.Time{}, fmt.Errorf("jcard: %s: %q is not a time", name, s)
	}

	body := s
	if strings.HasSuffix(body, "Z") {
		t.Zone = &vcard4.UTCOffset{UTC: true}
		body = body[:len(body)-1]
	} else {
		// Leading dashes are truncation, not a zone sign.
		i := 0
		for i < len(body) && body[i] == '-' {
			i++
		}
		for i < len(body) && (body[i] >= '0' && body[i] <= '9' || body[i] == ':') {
			i++
		}
		if i < len(body) {
			if body[i] != '+' && body[i] != '-' {
				return bad()
			}
			off, err := parseExtendedOffset(name, body[i:])
			if err != nil {
				return vcard4.Time{}, err
			}
			t.Zone = &off
			body = body[:i]
		}
	}

	switch {
	case strings.HasPrefix(body, "--") && len(body) == 4 && digits(body[2:]):
		t.Second, t.HasSecond = num(body[2:]), true
	case strings.HasPrefix(body, "-") && len(body) == 6 && body[3] == ':' && digits(body[1:3]) && digits(body[4:]):
		t.Minute, t.HasMinute = num(body[1:3]), true
		t.Second, t.HasSecond = num(body[4:]), true
	case strings.HasPrefix(body, "-") && len(body) == 3 && digits(body[1:]):
		t.Minute, t.HasMinute = num(body[1:]), true
	case len(body) == 8 && body[2] == ':' && body[5] == ':' && digits(body[:2]) && digits(body[3:5]) && digits(body[6:]):
		t.Hour, t.HasHour = num(body[:2]), true
		t.Minute, t.HasMinute = num(body[3:5]), true
		t.Second, t.HasSecond = num(body[6:]), true
	case len(body) == 5 && body[2] == ':' && digits(body[:2]) && digits(body[3:]):
		t.Hour, t.HasHour = num(body[:2]), true
		t.Minute, t.HasMinute = num(body[3:]), true
	case len(body) == 2 && digits(body):
		t.Hour, t.HasHour = num(body), true
	default:
		return bad()
	}
	if t.HasHour && t.Hour > 23 || t.HasMinute && t.Minute > 59 || t.HasSecond && t.Second > 59 {
		return bad()
	}
	return t, nil
}

func parseExtendedDateTime(name, s string) (vcard4.DateTime, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return vcard4.DateTime{}, fmt.Errorf("jcard: %s: %q is not a date-time", name, s)
	}
	d, err := parseExtendedDate(name, datePart)
	if err != nil {
		return vcard4.DateTime{}, err
	}
	t, err := parseExtendedTime(name, timePart)
	if err != nil {
		return vcard4.DateTime{}, err
	}
	return vcard4.DateTime{Date: d, Time: t}, nil
}

func parseExtendedOffset(name, s string) (vcard4.UTCOffset, error) {
	bad := func() (vcard4.UTCOffset, error) {
		return vcard4.UTCOffset{}, fmt.Errorf("jcard: %s: %q is not a utc-offset", name, s)
	}
	if s == "Z" {
		return vcard4.UTCOffset{UTC: true}, nil
	}
	var off vcard4.UTCOffset
	switch {
	case strings.HasPrefix(s, "+"):
	case strings.HasPrefix(s, "-"):
		off.Negative = true
	default:
		return bad()
	}
	switch {
	case len(s) == 6 && s[3] == ':' && digits(s[1:3]) && digits(s[4:]):
		off.Hours, off.Minutes = num(s[1:3]), num(s[4:])
	case len(s) == 3 && digits(s[1:]):
		off.Hours = num(s[1:])
	default:
		return bad()
	}
	if off.Hours > 23 || off.Minutes > 59 {
		return bad()
	}
	if off.Negative && off.Hours == 0 && off.Minutes == 0 {
		return bad()
	}
	return off, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func num(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
