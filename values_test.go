package vcard4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(name string) *Property {
	return &Property{Name: name}
}

func parseValue(t *testing.T, p *Property, raw string) *Value {
	t.Helper()
	v, err := parseValueFor(p, raw)
	require.NoError(t, err)
	return v
}

// ============================================================
// Dates and times
// ============================================================

func TestParseDate_TruncatedForms(t *testing.T) {
	cases := []struct {
		in   string
		want Date
	}{
		{"19850412", Date{Year: 1985, Month: 4, Day: 12, HasYear: true, HasMonth: true, HasDay: true}},
		{"1985", Date{Year: 1985, HasYear: true}},
		{"1985-04", Date{Year: 1985, Month: 4, HasYear: true, HasMonth: true}},
		{"--0412", Date{Month: 4, Day: 12, HasMonth: true, HasDay: true}},
		{"--04", Date{Month: 4, HasMonth: true}},
		{"---12", Date{Day: 12, HasDay: true}},
	}
	for _, tc := range cases {
		got, err := parseDateToken("BDAY", tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.in, renderDate(got), "render of %q", tc.in)
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{
		"", "198504", "1985-04-12", "19851341", "19850432", "--1301", "---00", "12"} {
		_, err := parseDateToken("BDAY", in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseTime_TruncatedForms(t *testing.T) {
	utc := &UTCOffset{UTC: true}
	cases := []struct {
		in   string
		want Time
	}{
		{"102200", Time{Hour: 10, Minute: 22, Second: 0, HasHour: true, HasMinute: true, HasSecond: true}},
		{"1022", Time{Hour: 10, Minute: 22, HasHour: true, HasMinute: true}},
		{"10", Time{Hour: 10, HasHour: true}},
		{"-2230", Time{Minute: 22, Second: 30, HasMinute: true, HasSecond: true}},
		{"-22", Time{Minute: 22, HasMinute: true}},
		{"--30", Time{Second: 30, HasSecond: true}},
		{"102200Z", Time{Hour: 10, Minute: 22, HasHour: true, HasMinute: true, HasSecond: true, Zone: utc}},
		{"102200-0800", Time{Hour: 10, Minute: 22, HasHour: true, HasMinute: true, HasSecond: true,
			Zone: &UTCOffset{Negative: true, Hours: 8}}},
		{"102200+0530", Time{Hour: 10, Minute: 22, HasHour: true, HasMinute: true, HasSecond: true,
			Zone: &UTCOffset{Hours: 5, Minutes: 30}}},
	}
	for _, tc := range cases {
		got, err := parseTimeToken("X", tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseTime_Rejects(t *testing.T) {
	for _, in := range []string{"", "246000", "106000", "102260", "10:22:00", "1", "102200X", "102200+5"} {
		_, err := parseTimeToken("X", in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseDateTime(t *testing.T) {
	dt, err := parseDateTimeToken("X", "19961022T140000Z")
	require.NoError(t, err)
	assert.Equal(t, 1996, dt.Date.Year)
	assert.Equal(t, 14, dt.Time.Hour)
	assert.True(t, dt.Time.Zone.UTC)

	// Day is required on the date side, hour on the time side.
	_, err = parseDateTimeToken("X", "1996T1400")
	assert.Error(t, err)
	_, err = parseDateTimeToken("X", "19961022T-30")
	assert.Error(t, err)

	// Truncated date with a day is fine.
	dt, err = parseDateTimeToken("X", "--1022T1400")
	require.NoError(t, err)
	assert.False(t, dt.Date.HasYear)
	assert.True(t, dt.Date.HasDay)
}

func TestParseTimestamp(t *testing.T) {
	_, err := parseTimestampToken("REV", "19951031T222710Z")
	require.NoError(t, err)
	_, err = parseTimestampToken("REV", "19951031T2227")
	assert.Error(t, err)
	_, err = parseTimestampToken("REV", "--1031T222710")
	assert.Error(t, err)
}

func TestParseDateAndOrTime(t *testing.T) {
	v, err := parseDateAndOrTimeToken("BDAY", "T1022")
	require.NoError(t, err)
	assert.False(t, v.HasDate)
	assert.True(t, v.HasTime)

	v, err = parseDateAndOrTimeToken("BDAY", "19850412T2330")
	require.NoError(t, err)
	assert.True(t, v.HasDate)
	assert.True(t, v.HasTime)

	v, err = parseDateAndOrTimeToken("BDAY", "--0412")
	require.NoError(t, err)
	assert.True(t, v.HasDate)
	assert.False(t, v.HasTime)
}

func TestParseUTCOffset(t *testing.T) {
	cases := []struct {
		in   string
		want UTCOffset
	}{
		{"+0500", UTCOffset{Hours: 5}},
		{"-0500", UTCOffset{Negative: true, Hours: 5}},
		{"+05", UTCOffset{Hours: 5}},
		{"+0530", UTCOffset{Hours: 5, Minutes: 30}},
	}
	for _, tc := range cases {
		got, err := parseUTCOffsetToken("TZ", tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
	for _, in := range []string{"0500", "-0000", "+05000", "+2500", "+0560", "Z"} {
		_, err := parseUTCOffsetToken("TZ", in)
		assert.Error(t, err, "input %q", in)
	}
}

// ============================================================
// Scalars
// ============================================================

func TestParseValue_Numbers(t *testing.T) {
	p := prop("X-N")
	p.SetParam(paramValue, "integer")
	for in, want := range map[string]int64{"5": 5, "+5": 5, "-5": -5, "1234567890": 1234567890} {
		v := parseValue(t, p, in)
		n, err := v.AsInteger()
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	for _, in := range []string{"5.0", "", "0x1f", "five"} {
		_, err := parseValueFor(p, in)
		assert.Error(t, err, "input %q", in)
	}

	f := prop("X-F")
	f.SetParam(paramValue, "float")
	for in, want := range map[string]float64{"5.5": 5.5, "-5.5": -5.5, "5": 5} {
		v := parseValue(t, f, in)
		got, err := v.AsFloat()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	// No exponent form in the vCard grammar.
	_, err := parseValueFor(f, "5.5e2")
	assert.Error(t, err)
}

func TestParseValue_Boolean(t *testing.T) {
	p := prop("X-B")
	p.SetParam(paramValue, "boolean")
	for in, want := range map[string]bool{"TRUE": true, "true": true, "False": false} {
		v := parseValue(t, p, in)
		b, err := v.AsBoolean()
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}
	_, err := parseValueFor(p, "yes")
	assert.Error(t, err)
}

func TestParseValue_LanguageTag(t *testing.T) {
	v := parseValue(t, prop("LANG"), "en-US")
	tag, err := v.AsLanguageTag()
	require.NoError(t, err)
	assert.Equal(t, "en-US", tag)

	_, err = parseValueFor(prop("LANG"), "!!!")
	assert.Error(t, err)
}

func TestParseValue_URI(t *testing.T) {
	v := parseValue(t, prop("SOURCE"), "ldap://ldap.example.com/cn=Babs%20J")
	u, err := v.AsURI()
	require.NoError(t, err)
	assert.Equal(t, "ldap", u.Scheme)

	_, err = parseValueFor(prop("SOURCE"), "no-scheme-here")
	assert.Error(t, err)
}

func TestParseValue_TextOrURIFallback(t *testing.T) {
	v := parseValue(t, prop("UID"), "urn:uuid:f81d4fae-7dec-11d0-a765-00a0c91e6bf6")
	assert.Equal(t, KindURI, v.Kind())

	v = parseValue(t, prop("UID"), "just an opaque string")
	assert.Equal(t, KindText, v.Kind())
}

// ============================================================
// Structured compounds
// ============================================================

func TestParseValue_Name(t *testing.T) {
	v := parseValue(t, prop("N"), "Public;John;Quinlan;Mr.;Esq.")
	n, err := v.AsName()
	require.NoError(t, err)
	assert.Equal(t, Name{
		Family: "Public", Given: "John", Additional: "Quinlan",
		Prefixes: "Mr.", Suffixes: "Esq.",
	}, n)

	// Missing trailing components read as empty.
	v = parseValue(t, prop("N"), "Doe;J.")
	n, err = v.AsName()
	require.NoError(t, err)
	assert.Equal(t, Name{Family: "Doe", Given: "J."}, n)

	_, err = parseValueFor(prop("N"), "a;b;c;d;e;f")
	assert.Error(t, err)
}

func TestParseValue_NameEscapedSeparators(t *testing.T) {
	v := parseValue(t, prop("N"), `Stevenson;John;Philip\;Paul;Dr.;Jr.`)
	n, err := v.AsName()
	require.NoError(t, err)
	assert.Equal(t, "Philip;Paul", n.Additional)
}

func TestParseValue_Address(t *testing.T) {
	v := parseValue(t, prop("ADR"), ";;123 Main Street;Any Town;CA;91921-1234;U.S.A.")
	a, err := v.AsAddress()
	require.NoError(t, err)
	assert.Equal(t, "123 Main Street", a.Street)
	assert.Equal(t, "U.S.A.", a.Country)
	assert.Empty(t, a.POBox)
}

func TestParseValue_Gender(t *testing.T) {
	cases := []struct {
		in   string
		want Gender
	}{
		{"M", Gender{Sex: "M"}},
		{"F;girl", Gender{Sex: "F", Identity: "girl"}},
		{";agender", Gender{Identity: "agender"}},
		{"O;intersex", Gender{Sex: "O", Identity: "intersex"}},
	}
	for _, tc := range cases {
		v := parseValue(t, prop("GENDER"), tc.in)
		g, err := v.AsGender()
		require.NoError(t, err)
		assert.Equal(t, tc.want, g)
	}
	for _, in := range []string{"X", "m", "", "M;a;b"} {
		_, err := parseValueFor(prop("GENDER"), in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseValue_ClientPIDMap(t *testing.T) {
	v := parseValue(t, prop("CLIENTPIDMAP"), "1;urn:uuid:3df403f4-5924-4bb7-b077-3c711d9eb34b")
	m, err := v.AsClientPIDMap()
	require.NoError(t, err)
	assert.Equal(t, 1, m.PID)

	for _, in := range []string{"0;urn:x:1", "1", "x;urn:x:1", "1;not a uri", "1;urn:x:1;extra"} {
		_, err := parseValueFor(prop("CLIENTPIDMAP"), in)
		assert.Error(t, err, "input %q", in)
	}
}

// ============================================================
// Lists and binary
// ============================================================

func TestParseValue_TextLists(t *testing.T) {
	v := parseValue(t, prop("NICKNAME"), `Jim,Jimmie,Slick\,er`)
	items, err := v.AsTextList()
	require.NoError(t, err)
	assert.Equal(t, []string{"Jim", "Jimmie", "Slick,er"}, items)

	v = parseValue(t, prop("ORG"), `ABC\, Inc.;North American Division;Marketing`)
	items, err = v.AsTextList()
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC, Inc.", "North American Division", "Marketing"}, items)

	// ORG re-renders with its semicolon separator.
	raw, err := renderValue("ORG", v)
	require.NoError(t, err)
	assert.Equal(t, `ABC\, Inc.;North American Division;Marketing`, raw)
}

func TestParseValue_Binary(t *testing.T) {
	p := prop("PHOTO")
	p.SetParam(paramEncoding, "b")
	v := parseValue(t, p, "AQID")
	data, err := v.AsBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, err = parseValueFor(p, "not base64!")
	assert.Error(t, err)

	bad := prop("PHOTO")
	bad.SetParam(paramEncoding, "quoted-printable")
	_, err = parseValueFor(bad, "AQID")
	assert.Error(t, err)
}

func TestEffectiveType_ValueOverride(t *testing.T) {
	p := prop("BDAY")
	p.SetParam(paramValue, "text")
	v := parseValue(t, p, "circa 1800")
	assert.Equal(t, KindText, v.Kind())

	bad := prop("BDAY")
	bad.SetParam(paramValue, "bogus")
	_, err := parseValueFor(bad, "19850412")
	assert.Error(t, err)
}

func TestDefaultValueType(t *testing.T) {
	assert.Equal(t, "uri", DefaultValueType("PHOTO"))
	assert.Equal(t, "date-and-or-time", DefaultValueType("bday"))
	assert.Equal(t, "text", DefaultValueType("X-UNKNOWN"))
	assert.Equal(t, "timestamp", DefaultValueType("REV"))
}

// ============================================================
// Rendering
// ============================================================

func TestRenderValue_RoundTrips(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"N", `Public;John;Quinlan;Mr.;Esq.`},
		{"ADR", ";;123 Main Street;Any Town;CA;91921-1234;U.S.A."},
		{"NICKNAME", `Jim,Jimmie`},
		{"GENDER", "M;man"},
		{"CLIENTPIDMAP", "1;urn:uuid:3df403f4-5924-4bb7-b077-3c711d9eb34b"},
		{"NOTE", `line one\nline two\; done`},
		{"SOURCE", "ldap://ldap.example.com/cn=Babs"},
		{"LANG", "fr-CA"},
	}
	for _, tc := range cases {
		p := prop(tc.name)
		v := parseValue(t, p, tc.raw)
		got, err := renderValue(tc.name, v)
		require.NoError(t, err)
		assert.Equal(t, tc.raw, got, "property %s", tc.name)
	}
}

func TestRenderValue_DateTimeForms(t *testing.T) {
	for _, raw := range []string{
		"19850412", "--0412", "---12",
		"19961022T140000Z", "T102200-0800",
	} {
		p := prop("BDAY")
		v := parseValue(t, p, raw)
		got, err := renderValue("BDAY", v)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}

func TestRenderText_RejectsControlChars(t *testing.T) {
	_, err := renderValue("NOTE", Text("a\x01b"))
	assert.Error(t, err)
}
