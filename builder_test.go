package vcard4

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardBuilder_FullCard(t *testing.T) {
	card, err := NewCardBuilder("Simon Perreault").
		Name(Name{Family: "Perreault", Given: "Simon", Suffixes: "ing. jr"}).
		Nickname("sim").
		Gender(Gender{Sex: "M"}).
		Birthday(DateAndOrTime{HasDate: true, Date: Date{Month: 2, Day: 3, HasMonth: true, HasDay: true}}).
		Email("simon.perreault@viagenie.ca").
		TelURI("tel:+1-418-656-9254;ext=102").
		Address(Address{Street: "2875 boul. Laurier, suite D2-630", Locality: "Quebec", Region: "QC", PostCode: "G1V 2M2", Country: "Canada"}).
		Language("fr").
		Language("en").
		Org("Viagenie").
		Title("Engineer").
		URL("http://nomis80.org").
		Rev(time.Date(2011, 10, 31, 22, 27, 10, 0, time.UTC)).
		Build()
	require.NoError(t, err)

	out, err := card.Encode()
	require.NoError(t, err)

	// The built card survives its own wire form.
	reparsed := parseOne(t, out)
	assert.Equal(t, []string{"Simon Perreault"}, reparsed.FormattedNames())
	assert.Equal(t, "Perreault", reparsed.Name().Family)
	assert.Len(t, reparsed.Get(propLang), 2)
	assert.Contains(t, out, "REV:20111031T222710Z\r\n")
	assert.Contains(t, out, "TEL;VALUE=uri:tel:+1-418-656-9254;ext=102\r\n")
}

func TestCardBuilder_NewUID(t *testing.T) {
	card, err := NewCardBuilder("Jane").NewUID().Build()
	require.NoError(t, err)

	uid := card.UID()
	require.True(t, strings.HasPrefix(uid, "urn:uuid:"))
	_, err = uuid.Parse(strings.TrimPrefix(uid, "urn:uuid:"))
	assert.NoError(t, err)
}

func TestCardBuilder_FirstErrorSticks(t *testing.T) {
	_, err := NewCardBuilder("Jane").
		URL("not a uri").
		Email("still@runs.example").
		Build()
	require.Error(t, err)
	var vErr *ValueError
	assert.ErrorAs(t, err, &vErr)
}

func TestCardBuilder_RejectsUnknownSex(t *testing.T) {
	_, err := NewCardBuilder("Jane").Gender(Gender{Sex: "Q"}).Build()
	assert.Error(t, err)
}

func TestCardBuilder_CardinalityEnforcedAtBuild(t *testing.T) {
	_, err := NewCardBuilder("Jane").
		Gender(Gender{Sex: "F"}).
		Gender(Gender{Sex: "F"}).
		Build()
	require.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
