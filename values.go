package vcard4

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// ValueError is a value that does not match its type's grammar. It
// carries the property name and the offending raw fragment.
type ValueError struct {
	Property string
	Fragment string
	Msg      string
}

func (e *ValueError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("vcard4: invalid %s value %q: %s", e.Property, e.Fragment, e.Msg)
	}
	return fmt.Sprintf("vcard4: invalid %s value: %s", e.Property, e.Msg)
}

func valueErrorf(prop, fragment, format string, args ...interface{}) error {
	return &ValueError{Property: prop, Fragment: fragment, Msg: fmt.Sprintf(format, args...)}
}

// valueType is the dispatch key for value parsing. It is finer grained
// than ValueKind: list separators and text-or-URI fallbacks matter for
// parsing but collapse to ordinary kinds in the model.
type valueType uint8

const (
	vtText valueType = iota
	vtTextListComma
	vtTextListSemi
	vtBoolean
	vtInteger
	vtFloat
	vtDate
	vtTime
	vtDateTime
	vtTimestamp
	vtDateAndOrTime
	vtUTCOffset
	vtLanguageTag
	vtURI
	vtTextOrURI
	vtBinary
	vtName
	vtAddress
	vtGender
	vtClientPIDMap
)

// defaultValueTypes maps canonical property names to the RFC6350
// default value type used when no VALUE parameter overrides it.
var defaultValueTypes = map[string]valueType{
	propSource: vtURI,
	propKind:   vtText,
	propXML:    vtText,

	propFN:          vtText,
	propN:           vtName,
	propNickname:    vtTextListComma,
	propPhoto:       vtURI,
	propBday:        vtDateAndOrTime,
	propAnniversary: vtDateAndOrTime,
	propGender:      vtGender,

	propAdr: vtAddress,

	propTel:   vtText,
	propEmail: vtText,
	propIMPP:  vtURI,
	propLang:  vtLanguageTag,

	propTZ:  vtText,
	propGeo: vtURI,

	propTitle:   vtText,
	propRole:    vtText,
	propLogo:    vtURI,
	propOrg:     vtTextListSemi,
	propMember:  vtURI,
	propRelated: vtTextOrURI,

	propCategories:   vtTextListComma,
	propNote:         vtText,
	propProdID:       vtText,
	propRev:          vtTimestamp,
	propSound:        vtURI,
	propUID:          vtTextOrURI,
	propClientPIDMap: vtClientPIDMap,
	propURL:          vtURI,
	propVersion:      vtText,

	propKey: vtTextOrURI,

	propFBURL:     vtURI,
	propCalAdrURI: vtURI,
	propCalURI:    vtURI,
}

// valueParamTypes maps VALUE parameter tokens to dispatch types.
var valueParamTypes = map[string]valueType{
	"text":             vtText,
	"uri":              vtURI,
	"date":             vtDate,
	"time":             vtTime,
	"date-time":        vtDateTime,
	"date-and-or-time": vtDateAndOrTime,
	"timestamp":        vtTimestamp,
	"boolean":          vtBoolean,
	"integer":          vtInteger,
	"float":            vtFloat,
	"utc-offset":       vtUTCOffset,
	"language-tag":     vtLanguageTag,
}

// valueTypeTokens is the inverse of valueParamTypes for the types a
// VALUE parameter can name; compound and list types all read "text".
var valueTypeTokens = map[valueType]string{
	vtText:          "text",
	vtTextListComma: "text",
	vtTextListSemi:  "text",
	vtBoolean:       "boolean",
	vtInteger:       "integer",
	vtFloat:         "float",
	vtDate:          "date",
	vtTime:          "time",
	vtDateTime:      "date-time",
	vtTimestamp:     "timestamp",
	vtDateAndOrTime: "date-and-or-time",
	vtUTCOffset:     "utc-offset",
	vtLanguageTag:   "language-tag",
	vtURI:           "uri",
	vtTextOrURI:     "uri",
	vtName:          "text",
	vtAddress:       "text",
	vtGender:        "text",
	vtClientPIDMap:  "text",
}

// DefaultValueType reports the RFC6350 default VALUE token for a
// property name. Unknown properties default to "text".
func DefaultValueType(name string) string {
	if vt, ok := defaultValueTypes[upper(name)]; ok {
		return valueTypeTokens[vt]
	}
	return "text"
}

// DataURI renders a binary payload as an RFC 2397 data URI with a
// base64 body.
func DataURI(data []byte) string {
	return "data:;base64," + base64.StdEncoding.EncodeToString(data)
}

// effectiveType resolves the dispatch type for a property: an ENCODING
// parameter forces binary, a VALUE parameter overrides, the RFC6350
// default applies otherwise, and unknown names fall back to text.
func effectiveType(prop *Property) (valueType, error) {
	if enc := prop.Param(paramEncoding); enc != nil {
		if len(enc.Values) != 1 {
			return 0, valueErrorf(prop.Name, "", "ENCODING takes exactly one value")
		}
		switch strings.ToLower(enc.Values[0]) {
		case "b", "base64":
			return vtBinary, nil
		default:
			return 0, valueErrorf(prop.Name, enc.Values[0], "unsupported encoding")
		}
	}
	if vp := prop.Param(paramValue); vp != nil {
		if len(vp.Values) != 1 {
			return 0, valueErrorf(prop.Name, "", "VALUE takes exactly one value")
		}
		vt, ok := valueParamTypes[strings.ToLower(vp.Values[0])]
		if !ok {
			return 0, valueErrorf(prop.Name, vp.Values[0], "unsupported value type")
		}
		return vt, nil
	}
	if vt, ok := defaultValueTypes[upper(prop.Name)]; ok {
		return vt, nil
	}
	return vtText, nil
}

// parseValueFor parses the raw (still escaped) value text for a
// property according to its effective type. The property is not
// mutated on failure.
func parseValueFor(prop *Property, raw string) (*Value, error) {
	vt, err := effectiveType(prop)
	if err != nil {
		return nil, err
	}
	name := prop.Name

	switch vt {
	case vtText:
		s, err := unescapeText(raw)
		if err != nil {
			return nil, valueErrorf(name, raw, "%v", err)
		}
		return Text(s), nil

	case vtTextListComma:
		return parseTextList(name, raw, ',')

	case vtTextListSemi:
		return parseTextList(name, raw, ';')

	case vtBoolean:
		switch strings.ToLower(raw) {
		case "true":
			return Boolean(true), nil
		case "false":
			return Boolean(false), nil
		}
		return nil, valueErrorf(name, raw, "not a boolean")

	case vtInteger:
		if !validIntegerToken(raw) {
			return nil, valueErrorf(name, raw, "not an integer")
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, valueErrorf(name, raw, "integer out of range")
		}
		return Integer(n), nil

	case vtFloat:
		if !validFloatToken(raw) {
			return nil, valueErrorf(name, raw, "not a float")
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, valueErrorf(name, raw, "float out of range")
		}
		return Float(f), nil

	case vtDate:
		d, err := parseDateToken(name, raw)
		if err != nil {
			return nil, err
		}
		return DateValue(d), nil

	case vtTime:
		t, err := parseTimeToken(name, raw)
		if err != nil {
			return nil, err
		}
		return TimeValue(t), nil

	case vtDateTime:
		dt, err := parseDateTimeToken(name, raw)
		if err != nil {
			return nil, err
		}
		return DateTimeValue(dt), nil

	case vtTimestamp:
		dt, err := parseTimestampToken(name, raw)
		if err != nil {
			return nil, err
		}
		return DateTimeValue(dt), nil

	case vtDateAndOrTime:
		v, err := parseDateAndOrTimeToken(name, raw)
		if err != nil {
			return nil, err
		}
		return DateAndOrTimeValue(v), nil

	case vtUTCOffset:
		off, err := parseUTCOffsetToken(name, raw)
		if err != nil {
			return nil, err
		}
		return UTCOffsetValue(off), nil

	case vtLanguageTag:
		if _, err := language.Parse(raw); err != nil {
			return nil, valueErrorf(name, raw, "not a language tag")
		}
		return LanguageTag(raw), nil

	case vtURI:
		u, err := parseURIToken(name, raw)
		if err != nil {
			return nil, err
		}
		return uriValue(raw, u), nil

	case vtTextOrURI:
		if u, err := parseURIToken(name, raw); err == nil {
			return uriValue(raw, u), nil
		}
		s, err := unescapeText(raw)
		if err != nil {
			return nil, valueErrorf(name, raw, "%v", err)
		}
		return Text(s), nil

	case vtBinary:
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, valueErrorf(name, raw, "invalid base64: %v", err)
		}
		return Binary(data), nil

	case vtName:
		return parseNameValue(name, raw)

	case vtAddress:
		return parseAddressValue(name, raw)

	case vtGender:
		return parseGenderValue(name, raw)

	case vtClientPIDMap:
		return parseClientPIDMapValue(name, raw)
	}

	return nil, valueErrorf(name, raw, "no parser for value type")
}

func parseTextList(name, raw string, sep byte) (*Value, error) {
	segs := splitUnescaped(raw, sep)
	items := make([]string, len(segs))
	for i, seg := range segs {
		s, err := unescapeText(seg)
		if err != nil {
			return nil, valueErrorf(name, seg, "%v", err)
		}
		items[i] = s
	}
	return NewTextList(sep, items...), nil
}

// Numeric token grammar: vCard integers and floats are signed decimal
// with no exponent, so strconv alone is too permissive.

func validIntegerToken(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return allDigits(s)
}

func validFloatToken(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	whole, frac, dot := strings.Cut(s, ".")
	if !allDigits(whole) || whole == "" {
		return false
	}
	if dot && (frac == "" || !allDigits(frac)) {
		return false
	}
	return true
}

func allDigits(s string) bool {
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

// ============================================================
// Date and time grammars (ISO 8601 basic format subset)
// ============================================================

// parseDateToken parses the RFC6350 date forms: YYYYMMDD, YYYY,
// YYYY-MM, --MMDD, --MM and ---DD. Separator-containing extended forms
// other than YYYY-MM are rejected.
func parseDateToken(name, s string) (Date, error) {
	var d Date
	switch {
	case len(s) == 8 && allDigits(s):
		d.Year, d.HasYear = atoi(s[:4]), true
		d.Month, d.HasMonth = atoi(s[4:6]), true
		d.Day, d.HasDay = atoi(s[6:8]), true
	case len(s) == 4 && allDigits(s):
		d.Year, d.HasYear = atoi(s), true
	case len(s) == 7 && s[4] == '-' && allDigits(s[:4]) && allDigits(s[5:]):
		d.Year, d.HasYear = atoi(s[:4]), true
		d.Month, d.HasMonth = atoi(s[5:]), true
	case strings.HasPrefix(s, "---") && len(s) == 5 && allDigits(s[3:]):
		d.Day, d.HasDay = atoi(s[3:]), true
	case strings.HasPrefix(s, "--") && len(s) == 6 && allDigits(s[2:]):
		d.Month, d.HasMonth = atoi(s[2:4]), true
		d.Day, d.HasDay = atoi(s[4:6]), true
	case strings.HasPrefix(s, "--") && len(s) == 4 && allDigits(s[2:]):
		d.Month, d.HasMonth = atoi(s[2:]), true
	default:
		return Date{}, valueErrorf(name, s, "not a date")
	}
	if d.HasMonth && (d.Month < 1 || d.Month > 12) {
		return Date{}, valueErrorf(name, s, "month out of range")
	}
	if d.HasDay && (d.Day < 1 || d.Day > 31) {
		return Date{}, valueErrorf(name, s, "day out of range")
	}
	return d, nil
}

// parseTimeToken parses HHMMSS and its left-truncated forms (-MMSS,
// -MM, --SS) with an optional trailing zone designator.
func parseTimeToken(name, s string) (Time, error) {
	body, zone, err := splitZone(name, s)
	if err != nil {
		return Time{}, err
	}

	var t Time
	t.Zone = zone
	switch {
	case strings.HasPrefix(body, "--") && len(body) == 4 && allDigits(body[2:]):
		t.Second, t.HasSecond = atoi(body[2:]), true
	case strings.HasPrefix(body, "-") && len(body) == 5 && allDigits(body[1:]):
		t.Minute, t.HasMinute = atoi(body[1:3]), true
		t.Second, t.HasSecond = atoi(body[3:5]), true
	case strings.HasPrefix(body, "-") && len(body) == 3 && allDigits(body[1:]):
		t.Minute, t.HasMinute = atoi(body[1:]), true
	case len(body) == 6 && allDigits(body):
		t.Hour, t.HasHour = atoi(body[:2]), true
		t.Minute, t.HasMinute = atoi(body[2:4]), true
		t.Second, t.HasSecond = atoi(body[4:6]), true
	case len(body) == 4 && allDigits(body):
		t.Hour, t.HasHour = atoi(body[:2]), true
		t.Minute, t.HasMinute = atoi(body[2:]), true
	case len(body) == 2 && allDigits(body):
		t.Hour, t.HasHour = atoi(body), true
	default:
		return Time{}, valueErrorf(name, s, "not a time")
	}

	if t.HasHour && t.Hour > 23 {
		return Time{}, valueErrorf(name, s, "hour out of range")
	}
	if t.HasMinute && t.Minute > 59 {
		return Time{}, valueErrorf(name, s, "minute out of range")
	}
	if t.HasSecond && t.Second > 59 {
		return Time{}, valueErrorf(name, s, "second out of range")
	}
	return t, nil
}

// splitZone strips a trailing zone designator from a time body. The
// zone sign is distinguished from truncation dashes, which only occur
// before any digit has been seen.
func splitZone(name, s string) (string, *UTCOffset, error) {
	if strings.HasSuffix(s, "Z") {
		return s[:len(s)-1], &UTCOffset{UTC: true}, nil
	}
	// Skip leading truncation dashes, then digits; a following sign
	// starts the zone.
	i := 0
	for i < len(s) && s[i] == '-' {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == len(s) {
		return s, nil, nil
	}
	if s[i] != '+' && s[i] != '-' {
		return "", nil, valueErrorf(name, s, "not a time")
	}
	off, err := parseUTCOffsetToken(name, s[i:])
	if err != nil {
		return "", nil, err
	}
	return s[:i], &off, nil
}

// parseDateTimeToken parses <date>T<time> where the date part includes
// a day (date-noreduc) and the time part is not truncated.
func parseDateTimeToken(name, s string) (DateTime, error) {
	datePart, timePart, ok := strings.Cut(s, "T")
	if !ok {
		return DateTime{}, valueErrorf(name, s, "not a date-time")
	}
	d, err := parseDateToken(name, datePart)
	if err != nil {
		return DateTime{}, err
	}
	if !d.HasDay {
		return DateTime{}, valueErrorf(name, s, "date-time requires a day component")
	}
	t, err := parseTimeToken(name, timePart)
	if err != nil {
		return DateTime{}, err
	}
	if !t.HasHour {
		return DateTime{}, valueErrorf(name, s, "date-time requires a non-truncated time")
	}
	return DateTime{Date: d, Time: t}, nil
}

// parseTimestampToken parses a complete date, "T", and a complete time
// with an optional zone (the REV grammar).
func parseTimestampToken(name, s string) (DateTime, error) {
	dt, err := parseDateTimeToken(name, s)
	if err != nil {
		return DateTime{}, err
	}
	if !dt.Date.HasYear || !dt.Date.HasMonth || !dt.Date.HasDay ||
		!dt.Time.HasHour || !dt.Time.HasMinute || !dt.Time.HasSecond {
		return DateTime{}, valueErrorf(name, s, "timestamp requires full precision")
	}
	return dt, nil
}

// parseDateAndOrTimeToken parses date-time / date / "T" time.
func parseDateAndOrTimeToken(name, s string) (DateAndOrTime, error) {
	if strings.HasPrefix(s, "T") {
		t, err := parseTimeToken(name, s[1:])
		if err != nil {
			return DateAndOrTime{}, err
		}
		return DateAndOrTime{HasTime: true, Time: t}, nil
	}
	if strings.Contains(s, "T") {
		dt, err := parseDateTimeToken(name, s)
		if err != nil {
			return DateAndOrTime{}, err
		}
		return DateAndOrTime{HasDate: true, HasTime: true, Date: dt.Date, Time: dt.Time}, nil
	}
	d, err := parseDateToken(name, s)
	if err != nil {
		return DateAndOrTime{}, err
	}
	return DateAndOrTime{HasDate: true, Date: d}, nil
}

// parseUTCOffsetToken parses (+/-)HH[MM]. The impossible -0000 is
// rejected.
func parseUTCOffsetToken(name, s string) (UTCOffset, error) {
	if len(s) != 3 && len(s) != 5 {
		return UTCOffset{}, valueErrorf(name, s, "not a utc-offset")
	}
	var off UTCOffset
	switch s[0] {
	case '+':
	case '-':
		off.Negative = true
	default:
		return UTCOffset{}, valueErrorf(name, s, "utc-offset requires a sign")
	}
	if !allDigits(s[1:]) {
		return UTCOffset{}, valueErrorf(name, s, "not a utc-offset")
	}
	off.Hours = atoi(s[1:3])
	if len(s) == 5 {
		off.Minutes = atoi(s[3:5])
	}
	if off.Hours > 23 || off.Minutes > 59 {
		return UTCOffset{}, valueErrorf(name, s, "utc-offset out of range")
	}
	if off.Negative && off.Hours == 0 && off.Minutes == 0 {
		return UTCOffset{}, valueErrorf(name, s, "-0000 is not a valid offset")
	}
	return off, nil
}

// parseURIToken validates generic URI syntax with a mandatory scheme.
// The URI is never resolved or dereferenced.
func parseURIToken(name, s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, valueErrorf(name, s, "not a uri: %v", err)
	}
	if u.Scheme == "" {
		return nil, valueErrorf(name, s, "uri requires a scheme")
	}
	return u, nil
}

// ============================================================
// Structured compound values
// ============================================================

// splitComponents splits a structured value into at most arity
// components, unescaping each. Missing trailing components read as
// empty; excess components are an error.
func splitComponents(name, raw string, arity int) ([]string, error) {
	segs := splitUnescaped(raw, ';')
	if len(segs) > arity {
		return nil, valueErrorf(name, raw, "too many components: %d > %d", len(segs), arity)
	}
	out := make([]string, arity)
	for i, seg := range segs {
		s, err := unescapeText(seg)
		if err != nil {
			return nil, valueErrorf(name, seg, "%v", err)
		}
		out[i] = s
	}
	return out, nil
}

func parseNameValue(name, raw string) (*Value, error) {
	c, err := splitComponents(name, raw, 5)
	if err != nil {
		return nil, err
	}
	return NameValue(Name{
		Family:     c[0],
		Given:      c[1],
		Additional: c[2],
		Prefixes:   c[3],
		Suffixes:   c[4],
	}), nil
}

func parseAddressValue(name, raw string) (*Value, error) {
	c, err := splitComponents(name, raw, 7)
	if err != nil {
		return nil, err
	}
	return AddressValue(Address{
		POBox:    c[0],
		Extended: c[1],
		Street:   c[2],
		Locality: c[3],
		Region:   c[4],
		PostCode: c[5],
		Country:  c[6],
	}), nil
}

func parseGenderValue(name, raw string) (*Value, error) {
	c, err := splitComponents(name, raw, 2)
	if err != nil {
		return nil, err
	}
	switch c[0] {
	case "", "M", "F", "O", "N", "U":
	default:
		return nil, valueErrorf(name, c[0], "unknown sex component")
	}
	if c[0] == "" && c[1] == "" {
		return nil, valueErrorf(name, raw, "gender requires a sex or identity component")
	}
	return GenderValue(Gender{Sex: c[0], Identity: c[1]}), nil
}

func parseClientPIDMapValue(name, raw string) (*Value, error) {
	segs := splitUnescaped(raw, ';')
	if len(segs) != 2 {
		return nil, valueErrorf(name, raw, "client-pid-map requires exactly two components")
	}
	if !allDigits(segs[0]) {
		return nil, valueErrorf(name, segs[0], "pid source must be a positive integer")
	}
	pid, err := strconv.Atoi(segs[0])
	if err != nil || pid < 1 {
		return nil, valueErrorf(name, segs[0], "pid source must be a positive integer")
	}
	if _, err := parseURIToken(name, segs[1]); err != nil {
		return nil, err
	}
	return ClientPIDMapValue(ClientPIDMap{PID: pid, URI: segs[1]}), nil
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// ============================================================
// Rendering (inverse of the parsers)
// ============================================================

// renderValue produces the escaped wire form of a value.
func renderValue(name string, v *Value) (string, error) {
	if v == nil {
		return "", nil
	}
	switch v.kind {
	case KindText:
		return renderText(name, v.textVal)

	case KindTextList:
		parts := make([]string, len(v.listVal))
		for i, item := range v.listVal {
			s, err := renderText(name, item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		sep := v.listSep
		if sep == 0 {
			sep = ','
		}
		return strings.Join(parts, string(sep)), nil

	case KindBoolean:
		if v.boolVal {
			return "TRUE", nil
		}
		return "FALSE", nil

	case KindInteger:
		return strconv.FormatInt(v.intVal, 10), nil

	case KindFloat:
		return strconv.FormatFloat(v.floatVal, 'f', -1, 64), nil

	case KindDate:
		return renderDate(v.dateVal), nil

	case KindTime:
		return renderTime(v.timeVal), nil

	case KindDateTime:
		return renderDate(v.dtVal.Date) + "T" + renderTime(v.dtVal.Time), nil

	case KindDateAndOrTime:
		switch {
		case v.daotVal.HasDate && v.daotVal.HasTime:
			return renderDate(v.daotVal.Date) + "T" + renderTime(v.daotVal.Time), nil
		case v.daotVal.HasDate:
			return renderDate(v.daotVal.Date), nil
		default:
			return "T" + renderTime(v.daotVal.Time), nil
		}

	case KindUTCOffset:
		return renderUTCOffset(v.offsetVal), nil

	case KindLanguageTag:
		return v.langVal, nil

	case KindURI:
		return v.uriRaw, nil

	case KindBinary:
		return base64.StdEncoding.EncodeToString(v.bytesVal), nil

	case KindName:
		return renderComponents(name,
			v.nameVal.Family, v.nameVal.Given, v.nameVal.Additional,
			v.nameVal.Prefixes, v.nameVal.Suffixes)

	case KindAddress:
		return renderComponents(name,
			v.addrVal.POBox, v.addrVal.Extended, v.addrVal.Street,
			v.addrVal.Locality, v.addrVal.Region, v.addrVal.PostCode,
			v.addrVal.Country)

	case KindGender:
		if v.genderVal.Identity == "" {
			return v.genderVal.Sex, nil
		}
		id, err := renderText(name, v.genderVal.Identity)
		if err != nil {
			return "", err
		}
		return v.genderVal.Sex + ";" + id, nil

	case KindClientPIDMap:
		return fmt.Sprintf("%d;%s", v.pidMapVal.PID, v.pidMapVal.URI), nil
	}

	return "", valueErrorf(name, "", "no renderer for value kind %s", v.kind)
}

// renderText escapes a text component, rejecting control characters
// that have no escaped form.
func renderText(name, s string) (string, error) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 && c != '\n' && c != '\t' {
			return "", valueErrorf(name, s, "unrepresentable control character %q", c)
		}
	}
	return escapeText(s), nil
}

func renderComponents(name string, comps ...string) (string, error) {
	parts := make([]string, len(comps))
	for i, c := range comps {
		s, err := renderText(name, c)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ";"), nil
}

func renderDate(d Date) string {
	switch {
	case d.HasYear && d.HasMonth && d.HasDay:
		return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
	case d.HasYear && d.HasMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	case d.HasYear:
		return fmt.Sprintf("%04d", d.Year)
	case d.HasMonth && d.HasDay:
		return fmt.Sprintf("--%02d%02d", d.Month, d.Day)
	case d.HasMonth:
		return fmt.Sprintf("--%02d", d.Month)
	default:
		return fmt.Sprintf("---%02d", d.Day)
	}
}

func renderTime(t Time) string {
	var sb strings.Builder
	switch {
	case t.HasHour:
		fmt.Fprintf(&sb, "%02d", t.Hour)
		if t.HasMinute {
			fmt.Fprintf(&sb, "%02d", t.Minute)
			if t.HasSecond {
				fmt.Fprintf(&sb, "%02d", t.Second)
			}
		}
	case t.HasMinute:
		fmt.Fprintf(&sb, "-%02d", t.Minute)
		if t.HasSecond {
			fmt.Fprintf(&sb, "%02d", t.Second)
		}
	default:
		fmt.Fprintf(&sb, "--%02d", t.Second)
	}
	if t.Zone != nil {
		sb.WriteString(renderUTCOffset(*t.Zone))
	}
	return sb.String()
}

func renderUTCOffset(off UTCOffset) string {
	if off.UTC {
		return "Z"
	}
	sign := "+"
	if off.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d%02d", sign, off.Hours, off.Minutes)
}
