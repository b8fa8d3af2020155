package vcard4

// Scrub zeroes every binary payload held by the card (inline photos,
// sounds, keys) so decoded key material does not linger in memory once
// the caller is done with it. Scrubbed values keep kind KindBinary but
// read back empty.
func (c *Card) Scrub() {
	for _, p := range c.props {
		if p.Value == nil || p.Value.kind != KindBinary {
			continue
		}
		for i := range p.Value.bytesVal {
			p.Value.bytesVal[i] = 0
		}
		p.Value.bytesVal = nil
	}
}
