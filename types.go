package vcard4

import (
	"fmt"
	"net/url"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	KindText ValueKind = iota
	KindTextList
	KindBoolean
	KindInteger
	KindFloat
	KindDate
	KindTime
	KindDateTime
	KindDateAndOrTime
	KindUTCOffset
	KindLanguageTag
	KindURI
	KindBinary
	KindName
	KindAddress
	KindGender
	KindClientPIDMap
)

// String returns the kind name as used by the VALUE parameter where one
// exists, or a descriptive token otherwise.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTextList:
		return "text-list"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "date-time"
	case KindDateAndOrTime:
		return "date-and-or-time"
	case KindUTCOffset:
		return "utc-offset"
	case KindLanguageTag:
		return "language-tag"
	case KindURI:
		return "uri"
	case KindBinary:
		return "binary"
	case KindName:
		return "name"
	case KindAddress:
		return "address"
	case KindGender:
		return "gender"
	case KindClientPIDMap:
		return "client-pid-map"
	default:
		return "unknown"
	}
}

// Date is a calendar date in one of the truncated forms RFC6350 borrows
// from ISO 8601 basic format. Absent components have their Has flag
// unset so the original truncation survives a round trip.
type Date struct {
	Year  int
	Month int
	Day   int

	HasYear  bool
	HasMonth bool
	HasDay   bool
}

// Time is a clock time, possibly truncated from the left, with an
// optional zone designator.
type Time struct {
	Hour   int
	Minute int
	Second int

	HasHour   bool
	HasMinute bool
	HasSecond bool

	// Zone is nil for floating times.
	Zone *UTCOffset
}

// DateTime is a complete date joined to a non-truncated time.
type DateTime struct {
	Date Date
	Time Time
}

// DateAndOrTime holds a date, a time, or both.
type DateAndOrTime struct {
	HasDate bool
	HasTime bool
	Date    Date
	Time    Time
}

// UTCOffset is a signed offset from UTC. When UTC is set the offset
// renders as the "Z" designator instead of a numeric offset.
type UTCOffset struct {
	Negative bool
	Hours    int
	Minutes  int
	UTC      bool
}

// Name is the structured N value: five fixed positions, empty meaning
// absent.
type Name struct {
	Family     string
	Given      string
	Additional string
	Prefixes   string
	Suffixes   string
}

// Address is the structured ADR value: seven fixed positions, empty
// meaning absent.
type Address struct {
	POBox    string
	Extended string
	Street   string
	Locality string
	Region   string
	PostCode string
	Country  string
}

// Gender is the structured GENDER value. Sex is one of M, F, O, N, U
// or empty; Identity is free text.
type Gender struct {
	Sex      string
	Identity string
}

// ClientPIDMap is the structured CLIENTPIDMAP value.
type ClientPIDMap struct {
	PID int
	URI string
}

// Value is a tagged union over the RFC6350 value grammars. Use the
// constructors to build one and the As* accessors to read it back;
// dispatch is always on Kind, never on runtime type inspection.
type Value struct {
	kind ValueKind

	textVal   string
	listVal   []string
	listSep   byte
	boolVal   bool
	intVal    int64
	floatVal  float64
	dateVal   Date
	timeVal   Time
	dtVal     DateTime
	daotVal   DateAndOrTime
	offsetVal UTCOffset
	langVal   string
	uriRaw    string
	uriVal    *url.URL
	bytesVal  []byte
	nameVal   Name
	addrVal   Address
	genderVal Gender
	pidMapVal ClientPIDMap
}

// ============================================================
// Constructors
// ============================================================

// Text creates a text value.
func Text(v string) *Value {
	return &Value{kind: KindText, textVal: v}
}

// TextList creates a comma-separated text list value.
func TextList(values ...string) *Value {
	return NewTextList(',', values...)
}

// NewTextList creates a text list with an explicit wire separator.
// RFC6350 uses commas for NICKNAME and CATEGORIES and semicolons for
// the structured ORG list.
func NewTextList(sep byte, values ...string) *Value {
	return &Value{kind: KindTextList, listVal: values, listSep: sep}
}

// Boolean creates a boolean value.
func Boolean(v bool) *Value {
	return &Value{kind: KindBoolean, boolVal: v}
}

// Integer creates an integer value.
func Integer(v int64) *Value {
	return &Value{kind: KindInteger, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// DateValue creates a date value.
func DateValue(v Date) *Value {
	return &Value{kind: KindDate, dateVal: v}
}

// TimeValue creates a time value.
func TimeValue(v Time) *Value {
	return &Value{kind: KindTime, timeVal: v}
}

// DateTimeValue creates a date-time value.
func DateTimeValue(v DateTime) *Value {
	return &Value{kind: KindDateTime, dtVal: v}
}

// DateAndOrTimeValue creates a date-and-or-time value.
func DateAndOrTimeValue(v DateAndOrTime) *Value {
	return &Value{kind: KindDateAndOrTime, daotVal: v}
}

// UTCOffsetValue creates a utc-offset value.
func UTCOffsetValue(v UTCOffset) *Value {
	return &Value{kind: KindUTCOffset, offsetVal: v}
}

// LanguageTag creates a language-tag value. The tag is stored verbatim;
// Parse validates it against BCP47 before constructing one.
func LanguageTag(tag string) *Value {
	return &Value{kind: KindLanguageTag, langVal: tag}
}

// URI creates a URI value from a parsed URL. The rendered form is the
// URL's String.
func URI(u *url.URL) *Value {
	return &Value{kind: KindURI, uriRaw: u.String(), uriVal: u}
}

func uriValue(raw string, u *url.URL) *Value {
	return &Value{kind: KindURI, uriRaw: raw, uriVal: u}
}

// Binary creates a binary value from raw bytes.
func Binary(data []byte) *Value {
	return &Value{kind: KindBinary, bytesVal: data}
}

// NameValue creates a structured name value.
func NameValue(v Name) *Value {
	return &Value{kind: KindName, nameVal: v}
}

// AddressValue creates a structured address value.
func AddressValue(v Address) *Value {
	return &Value{kind: KindAddress, addrVal: v}
}

// GenderValue creates a gender value.
func GenderValue(v Gender) *Value {
	return &Value{kind: KindGender, genderVal: v}
}

// ClientPIDMapValue creates a client-pid-map value.
func ClientPIDMapValue(v ClientPIDMap) *Value {
	return &Value{kind: KindClientPIDMap, pidMapVal: v}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the variant held by the value.
func (v *Value) Kind() ValueKind {
	if v == nil {
		return KindText
	}
	return v.kind
}

// AsText returns the text payload.
func (v *Value) AsText() (string, error) {
	if v == nil || v.kind != KindText {
		return "", fmt.Errorf("vcard4: expected text, got %s", v.Kind())
	}
	return v.textVal, nil
}

// AsTextList returns the text list payload.
func (v *Value) AsTextList() ([]string, error) {
	if v == nil || v.kind != KindTextList {
		return nil, fmt.Errorf("vcard4: expected text-list, got %s", v.Kind())
	}
	return v.listVal, nil
}

// AsBoolean returns the boolean payload.
func (v *Value) AsBoolean() (bool, error) {
	if v == nil || v.kind != KindBoolean {
		return false, fmt.Errorf("vcard4: expected boolean, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsInteger returns the integer payload.
func (v *Value) AsInteger() (int64, error) {
	if v == nil || v.kind != KindInteger {
		return 0, fmt.Errorf("vcard4: expected integer, got %s", v.Kind())
	}
	return v.intVal, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float64, error) {
	if v == nil || v.kind != KindFloat {
		return 0, fmt.Errorf("vcard4: expected float, got %s", v.Kind())
	}
	return v.floatVal, nil
}

// AsDate returns the date payload.
func (v *Value) AsDate() (Date, error) {
	if v == nil || v.kind != KindDate {
		return Date{}, fmt.Errorf("vcard4: expected date, got %s", v.Kind())
	}
	return v.dateVal, nil
}

// AsTime returns the time payload.
func (v *Value) AsTime() (Time, error) {
	if v == nil || v.kind != KindTime {
		return Time{}, fmt.Errorf("vcard4: expected time, got %s", v.Kind())
	}
	return v.timeVal, nil
}

// AsDateTime returns the date-time payload.
func (v *Value) AsDateTime() (DateTime, error) {
	if v == nil || v.kind != KindDateTime {
		return DateTime{}, fmt.Errorf("vcard4: expected date-time, got %s", v.Kind())
	}
	return v.dtVal, nil
}

// AsDateAndOrTime returns the date-and-or-time payload.
func (v *Value) AsDateAndOrTime() (DateAndOrTime, error) {
	if v == nil || v.kind != KindDateAndOrTime {
		return DateAndOrTime{}, fmt.Errorf("vcard4: expected date-and-or-time, got %s", v.Kind())
	}
	return v.daotVal, nil
}

// AsUTCOffset returns the utc-offset payload.
func (v *Value) AsUTCOffset() (UTCOffset, error) {
	if v == nil || v.kind != KindUTCOffset {
		return UTCOffset{}, fmt.Errorf("vcard4: expected utc-offset, got %s", v.Kind())
	}
	return v.offsetVal, nil
}

// AsLanguageTag returns the language-tag payload.
func (v *Value) AsLanguageTag() (string, error) {
	if v == nil || v.kind != KindLanguageTag {
		return "", fmt.Errorf("vcard4: expected language-tag, got %s", v.Kind())
	}
	return v.langVal, nil
}

// AsURI returns the parsed URI payload.
func (v *Value) AsURI() (*url.URL, error) {
	if v == nil || v.kind != KindURI {
		return nil, fmt.Errorf("vcard4: expected uri, got %s", v.Kind())
	}
	return v.uriVal, nil
}

// AsBinary returns the decoded binary payload.
func (v *Value) AsBinary() ([]byte, error) {
	if v == nil || v.kind != KindBinary {
		return nil, fmt.Errorf("vcard4: expected binary, got %s", v.Kind())
	}
	return v.bytesVal, nil
}

// AsName returns the structured name payload.
func (v *Value) AsName() (Name, error) {
	if v == nil || v.kind != KindName {
		return Name{}, fmt.Errorf("vcard4: expected name, got %s", v.Kind())
	}
	return v.nameVal, nil
}

// AsAddress returns the structured address payload.
func (v *Value) AsAddress() (Address, error) {
	if v == nil || v.kind != KindAddress {
		return Address{}, fmt.Errorf("vcard4: expected address, got %s", v.Kind())
	}
	return v.addrVal, nil
}

// AsGender returns the gender payload.
func (v *Value) AsGender() (Gender, error) {
	if v == nil || v.kind != KindGender {
		return Gender{}, fmt.Errorf("vcard4: expected gender, got %s", v.Kind())
	}
	return v.genderVal, nil
}

// AsClientPIDMap returns the client-pid-map payload.
func (v *Value) AsClientPIDMap() (ClientPIDMap, error) {
	if v == nil || v.kind != KindClientPIDMap {
		return ClientPIDMap{}, fmt.Errorf("vcard4: expected client-pid-map, got %s", v.Kind())
	}
	return v.pidMapVal, nil
}

// ============================================================
// Parameter and Property
// ============================================================

// Parameter is one key with its ordered list of values. Duplicate keys
// on the wire merge into a single multi-valued Parameter.
type Parameter struct {
	Name   string
	Values []string
}

// Is reports whether the parameter name matches, case-insensitively.
func (p *Parameter) Is(name string) bool {
	return strings.EqualFold(p.Name, name)
}

// Property is one logical content line: an optional group, a name, an
// ordered parameter list and a typed value. The original casing of the
// group and name is preserved for round trips; lookups case-fold.
type Property struct {
	Group  string
	Name   string
	Params []Parameter
	Value  *Value
}

// Is reports whether the property name matches, case-insensitively.
func (p *Property) Is(name string) bool {
	return strings.EqualFold(p.Name, name)
}

// Param returns the parameter with the given name, or nil.
func (p *Property) Param(name string) *Parameter {
	for i := range p.Params {
		if p.Params[i].Is(name) {
			return &p.Params[i]
		}
	}
	return nil
}

// ParamValues returns the values of the named parameter, or nil.
func (p *Property) ParamValues(name string) []string {
	if param := p.Param(name); param != nil {
		return param.Values
	}
	return nil
}

// SetParam appends a parameter, merging into an existing one with the
// same case-insensitive name.
func (p *Property) SetParam(name string, values ...string) {
	if param := p.Param(name); param != nil {
		param.Values = append(param.Values, values...)
		return
	}
	p.Params = append(p.Params, Parameter{Name: name, Values: values})
}

// ============================================================
// Card
// ============================================================

// Card is a single parsed vCard: an ordered property sequence.
// Insertion order is preserved so serialization reproduces the input,
// except for the structural BEGIN/VERSION/END positions.
type Card struct {
	props []*Property
}

// Properties returns the ordered property list.
func (c *Card) Properties() []*Property {
	return c.props
}

// Add appends a property. Parsed cards are treated as immutable; Add
// exists for programmatic construction alongside CardBuilder.
func (c *Card) Add(p *Property) {
	c.props = append(c.props, p)
}

// Get returns all properties with the given case-insensitive name.
func (c *Card) Get(name string) []*Property {
	var out []*Property
	for _, p := range c.props {
		if p.Is(name) {
			out = append(out, p)
		}
	}
	return out
}

// First returns the first property with the given name, or nil.
func (c *Card) First(name string) *Property {
	for _, p := range c.props {
		if p.Is(name) {
			return p
		}
	}
	return nil
}

// Version returns the VERSION value, or the empty string.
func (c *Card) Version() string {
	if p := c.First(propVersion); p != nil {
		if s, err := p.Value.AsText(); err == nil {
			return s
		}
	}
	return ""
}

// FormattedNames returns all FN values in order.
func (c *Card) FormattedNames() []string {
	var out []string
	for _, p := range c.Get(propFN) {
		if s, err := p.Value.AsText(); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Name returns the structured N value, or nil when absent.
func (c *Card) Name() *Name {
	if p := c.First(propN); p != nil {
		if n, err := p.Value.AsName(); err == nil {
			return &n
		}
	}
	return nil
}

// UID returns the UID value rendered as text, or the empty string.
func (c *Card) UID() string {
	p := c.First(propUID)
	if p == nil {
		return ""
	}
	switch p.Value.Kind() {
	case KindURI:
		return p.Value.uriRaw
	case KindText:
		return p.Value.textVal
	}
	return ""
}
