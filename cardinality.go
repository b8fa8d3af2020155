package vcard4

// Canonical property names from RFC6350 section 6.
const (
	propBegin   = "BEGIN"
	propEnd     = "END"
	propVersion = "VERSION"

	propSource = "SOURCE"
	propKind   = "KIND"
	propXML    = "XML"

	propFN          = "FN"
	propN           = "N"
	propNickname    = "NICKNAME"
	propPhoto       = "PHOTO"
	propBday        = "BDAY"
	propAnniversary = "ANNIVERSARY"
	propGender      = "GENDER"

	propAdr = "ADR"

	propTel   = "TEL"
	propEmail = "EMAIL"
	propIMPP  = "IMPP"
	propLang  = "LANG"

	propTZ  = "TZ"
	propGeo = "GEO"

	propTitle   = "TITLE"
	propRole    = "ROLE"
	propLogo    = "LOGO"
	propOrg     = "ORG"
	propMember  = "MEMBER"
	propRelated = "RELATED"

	propCategories   = "CATEGORIES"
	propNote         = "NOTE"
	propProdID       = "PRODID"
	propRev          = "REV"
	propSound        = "SOUND"
	propUID          = "UID"
	propClientPIDMap = "CLIENTPIDMAP"
	propURL          = "URL"

	propKey = "KEY"

	propFBURL     = "FBURL"
	propCalAdrURI = "CALADRURI"
	propCalURI    = "CALURI"
)

// Parameter names recognized on input.
const (
	paramLanguage  = "LANGUAGE"
	paramValue     = "VALUE"
	paramPref      = "PREF"
	paramAltID     = "ALTID"
	paramPID       = "PID"
	paramType      = "TYPE"
	paramMediaType = "MEDIATYPE"
	paramCalScale  = "CALSCALE"
	paramSortAs    = "SORT-AS"
	paramGeo       = "GEO"
	paramTZ        = "TZ"
	paramLabel     = "LABEL"
	paramEncoding  = "ENCODING"
	paramCharset   = "CHARSET"
)

// Cardinality is the allowed occurrence count of a property within one
// vCard.
type Cardinality uint8

const (
	// ZeroOrMore places no constraint (the "*" rule).
	ZeroOrMore Cardinality = iota
	// ZeroOrOne allows at most one occurrence ("*1").
	ZeroOrOne
	// ExactlyOne requires exactly one occurrence ("1").
	ExactlyOne
	// OneOrMore requires at least one occurrence ("1*").
	OneOrMore
)

// String returns the RFC6350 cardinality token.
func (c Cardinality) String() string {
	switch c {
	case ZeroOrOne:
		return "*1"
	case ExactlyOne:
		return "1"
	case OneOrMore:
		return "1*"
	default:
		return "*"
	}
}

// cardinalities is the occurrence table transcribed from RFC6350
// section 6, keyed by canonical property name. Names absent from the
// table (IANA extensions, X- names) carry no constraint.
var cardinalities = map[string]Cardinality{
	propVersion: ExactlyOne,
	propFN:      OneOrMore,

	propKind:        ZeroOrOne,
	propN:           ZeroOrOne,
	propBday:        ZeroOrOne,
	propAnniversary: ZeroOrOne,
	propGender:      ZeroOrOne,
	propProdID:      ZeroOrOne,
	propRev:         ZeroOrOne,
	propUID:         ZeroOrOne,

	propSource:       ZeroOrMore,
	propXML:          ZeroOrMore,
	propNickname:     ZeroOrMore,
	propPhoto:        ZeroOrMore,
	propAdr:          ZeroOrMore,
	propTel:          ZeroOrMore,
	propEmail:        ZeroOrMore,
	propIMPP:         ZeroOrMore,
	propLang:         ZeroOrMore,
	propTZ:           ZeroOrMore,
	propGeo:          ZeroOrMore,
	propTitle:        ZeroOrMore,
	propRole:         ZeroOrMore,
	propLogo:         ZeroOrMore,
	propOrg:          ZeroOrMore,
	propMember:       ZeroOrMore,
	propRelated:      ZeroOrMore,
	propCategories:   ZeroOrMore,
	propNote:         ZeroOrMore,
	propSound:        ZeroOrMore,
	propClientPIDMap: ZeroOrMore,
	propURL:          ZeroOrMore,
	propKey:          ZeroOrMore,
	propFBURL:        ZeroOrMore,
	propCalAdrURI:    ZeroOrMore,
	propCalURI:       ZeroOrMore,
}

// CardinalityOf returns the occurrence rule for a property name and
// whether the name is in the RFC6350 table at all.
func CardinalityOf(name string) (Cardinality, bool) {
	c, ok := cardinalities[upper(name)]
	return c, ok
}
