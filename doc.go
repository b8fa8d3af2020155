// Package vcard4 implements the vCard 4.0 format defined by RFC 6350.
//
// The package is built to round-trip: what Parse reads, Encode writes
// back with property order, groups and parameters intact.
//
// # Reading
//
//	cards, err := vcard4.Parse(src)
//
// parses every card in the input and validates each against the
// RFC 6350 cardinality rules. For large inputs, Iterator yields one
// card at a time without parsing ahead.
//
// # Data Model
//
// A Card is an ordered list of Property values. Each Property carries
// a group, a name, parameters and a typed Value. Value is a tagged
// union over the RFC 6350 value types: text, text lists, booleans,
// integers, floats, the truncated ISO 8601 date and time forms,
// UTC offsets, language tags, URIs, base64 binary, and the structured
// N, ADR, GENDER and CLIENTPIDMAP compounds. Constructors build
// values; As accessors take them apart and fail on kind mismatch.
//
// # Writing
//
//	card, err := vcard4.NewCardBuilder("Jane Doe").
//		Email("jane@example.com").
//		NewUID().
//		Build()
//	out, err := card.Encode()
//
// Encode emits CRLF content lines folded at 75 octets, with VERSION
// pinned directly after BEGIN:VCARD.
//
// # Errors
//
// Failures are reported through five types, each naming where and why:
// LexError (malformed bytes in a line), ParseError (structure),
// CharsetError (non-UTF-8 CHARSET parameters on legacy input),
// ValueError (a value that does not match its type's grammar) and
// ValidationError (card-level rules such as cardinality).
package vcard4
