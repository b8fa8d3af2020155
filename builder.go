package vcard4

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// CardBuilder assembles a version 4.0 card property by property. The
// first error sticks: later calls become no-ops and Build reports it.
type CardBuilder struct {
	card *Card
	err  error
}

// NewCardBuilder starts a card with VERSION:4.0 and the mandatory
// formatted name already in place.
func NewCardBuilder(formattedName string) *CardBuilder {
	b := &CardBuilder{card: &Card{}}
	b.card.Add(&Property{Name: propVersion, Value: Text("4.0")})
	b.card.Add(&Property{Name: propFN, Value: Text(formattedName)})
	return b
}

func (b *CardBuilder) add(name string, v *Value) *CardBuilder {
	if b.err == nil {
		b.card.Add(&Property{Name: name, Value: v})
	}
	return b
}

func (b *CardBuilder) addURI(name, raw string) *CardBuilder {
	if b.err != nil {
		return b
	}
	u, err := parseURIToken(name, raw)
	if err != nil {
		b.err = err
		return b
	}
	return b.add(name, uriValue(raw, u))
}

// Property appends an arbitrary prebuilt property.
func (b *CardBuilder) Property(p *Property) *CardBuilder {
	if b.err == nil {
		b.card.Add(p)
	}
	return b
}

// FormattedName appends an additional FN.
func (b *CardBuilder) FormattedName(s string) *CardBuilder {
	return b.add(propFN, Text(s))
}

func (b *CardBuilder) Name(n Name) *CardBuilder {
	return b.add(propN, NameValue(n))
}

func (b *CardBuilder) Nickname(names ...string) *CardBuilder {
	return b.add(propNickname, TextList(names...))
}

func (b *CardBuilder) Kind(kind string) *CardBuilder {
	return b.add(propKind, Text(kind))
}

func (b *CardBuilder) Gender(g Gender) *CardBuilder {
	if b.err == nil {
		switch g.Sex {
		case "", "M", "F", "O", "N", "U":
		default:
			b.err = valueErrorf(propGender, g.Sex, "unknown sex component")
			return b
		}
	}
	return b.add(propGender, GenderValue(g))
}

func (b *CardBuilder) Birthday(v DateAndOrTime) *CardBuilder {
	return b.add(propBday, DateAndOrTimeValue(v))
}

func (b *CardBuilder) Anniversary(v DateAndOrTime) *CardBuilder {
	return b.add(propAnniversary, DateAndOrTimeValue(v))
}

func (b *CardBuilder) Email(addr string) *CardBuilder {
	return b.add(propEmail, Text(addr))
}

// Tel adds a free-form telephone number. Use TelURI for tel: URIs.
func (b *CardBuilder) Tel(number string) *CardBuilder {
	return b.add(propTel, Text(number))
}

func (b *CardBuilder) TelURI(raw string) *CardBuilder {
	if b.err != nil {
		return b
	}
	u, err := parseURIToken(propTel, raw)
	if err != nil {
		b.err = err
		return b
	}
	p := &Property{Name: propTel, Value: uriValue(raw, u)}
	p.SetParam(paramValue, "uri")
	return b.Property(p)
}

func (b *CardBuilder) Address(a Address) *CardBuilder {
	return b.add(propAdr, AddressValue(a))
}

// Language adds a LANG property after checking the tag is well formed.
func (b *CardBuilder) Language(tag string) *CardBuilder {
	if b.err == nil {
		if _, err := language.Parse(tag); err != nil {
			b.err = valueErrorf(propLang, tag, "not a language tag")
			return b
		}
	}
	return b.add(propLang, LanguageTag(tag))
}

func (b *CardBuilder) Org(units ...string) *CardBuilder {
	return b.add(propOrg, NewTextList(';', units...))
}

func (b *CardBuilder) Title(s string) *CardBuilder {
	return b.add(propTitle, Text(s))
}

func (b *CardBuilder) Role(s string) *CardBuilder {
	return b.add(propRole, Text(s))
}

func (b *CardBuilder) Note(s string) *CardBuilder {
	return b.add(propNote, Text(s))
}

func (b *CardBuilder) Categories(cats ...string) *CardBuilder {
	return b.add(propCategories, TextList(cats...))
}

func (b *CardBuilder) ProdID(s string) *CardBuilder {
	return b.add(propProdID, Text(s))
}

// Rev records the revision timestamp in UTC at full precision.
func (b *CardBuilder) Rev(t time.Time) *CardBuilder {
	t = t.UTC()
	return b.add(propRev, DateTimeValue(DateTime{
		Date: Date{
			Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
			HasYear: true, HasMonth: true, HasDay: true,
		},
		Time: Time{
			Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
			HasHour: true, HasMinute: true, HasSecond: true,
			Zone: &UTCOffset{UTC: true},
		},
	}))
}

// UID sets an explicit identifier, URIs preferred over free text.
func (b *CardBuilder) UID(uid string) *CardBuilder {
	if u, err := parseURIToken(propUID, uid); err == nil {
		return b.add(propUID, uriValue(uid, u))
	}
	return b.add(propUID, Text(uid))
}

// NewUID assigns a fresh urn:uuid identifier.
func (b *CardBuilder) NewUID() *CardBuilder {
	return b.addURI(propUID, "urn:uuid:"+uuid.NewString())
}

func (b *CardBuilder) Photo(raw string) *CardBuilder   { return b.addURI(propPhoto, raw) }
func (b *CardBuilder) Logo(raw string) *CardBuilder    { return b.addURI(propLogo, raw) }
func (b *CardBuilder) Sound(raw string) *CardBuilder   { return b.addURI(propSound, raw) }
func (b *CardBuilder) URL(raw string) *CardBuilder     { return b.addURI(propURL, raw) }
func (b *CardBuilder) Source(raw string) *CardBuilder  { return b.addURI(propSource, raw) }
func (b *CardBuilder) IMPP(raw string) *CardBuilder    { return b.addURI(propIMPP, raw) }
func (b *CardBuilder) Geo(raw string) *CardBuilder     { return b.addURI(propGeo, raw) }
func (b *CardBuilder) Member(raw string) *CardBuilder  { return b.addURI(propMember, raw) }
func (b *CardBuilder) Related(raw string) *CardBuilder { return b.addURI(propRelated, raw) }

// Build validates and returns the card.
func (b *CardBuilder) Build() (*Card, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := validateCard(b.card); err != nil {
		return nil, err
	}
	return b.card, nil
}
