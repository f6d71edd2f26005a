package xmldom

// xmlStringState is the encoding-state tag carried by XmlString. It
// drives whether the writer must encode-on-write or a reader must
// decode-on-read.
type xmlStringState uint8

const (
	// stateNone: verbatim text, no XML escapes present and none needed
	// (e.g. CDATA content, already-validated plain text).
	stateNone xmlStringState = iota
	// stateEncoded: escapes have already been applied; writing this value
	// is a fast no-op copy.
	stateEncoded
	// stateCheck: not yet analyzed; the writer must inspect the value for
	// special characters before emitting it.
	stateCheck
	// stateDecoded: escapes have been resolved to their literal
	// characters (e.g. after parsing an attribute value); the writer must
	// encode this value before emitting it.
	stateDecoded
)

// XmlString wraps textual content (attribute values, text, CData,
// comments, PI data, public IDs, entity replacement text) together with
// an encoding-state tag.
type XmlString struct {
	value string
	state xmlStringState
}

func newRawString(s string) XmlString      { return XmlString{value: s, state: stateNone} }
func newEncodedString(s string) XmlString   { return XmlString{value: s, state: stateEncoded} }
func newDecodedString(s string) XmlString   { return XmlString{value: s, state: stateDecoded} }
func newUncheckedString(s string) XmlString { return XmlString{value: s, state: stateCheck} }

// Raw returns the string's stored bytes, exactly as held, with no
// decoding or encoding applied.
func (x XmlString) Raw() string { return x.value }

// Decoded returns the value with any necessary entity decoding applied.
// The entity table is required because custom entities are
// per-document.
func (x XmlString) Decoded(table *EntityTable) (string, error) {
	switch x.state {
	case stateDecoded, stateNone:
		return x.value, nil
	default:
		return decodeEntities(x.value, table, SourceLocation{})
	}
}

// EncodedForWrite returns the value ready to be written as XML text,
// applying encode-on-write only when the stored state requires it.
func (x XmlString) EncodedForWrite() string {
	switch x.state {
	case stateEncoded:
		return x.value
	default:
		return EncodeString(x.value)
	}
}

// decodeEntities expands every &name;/&#n;/&#xH; reference in s.
func decodeEntities(s string, table *EntityTable, loc SourceLocation) (string, error) {
	if table == nil {
		table = newEntityTable()
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			out = append(out, s[i])
			continue
		}
		end := indexByteFrom(s, i, ';')
		if end < 0 {
			return "", newParseError(ErrUnexpectedChar, loc, "unterminated entity reference")
		}
		repl, err := table.DecodeRef(s[i+1:end], loc)
		if err != nil {
			return "", err
		}
		out = append(out, repl...)
		i = end
	}
	return string(out), nil
}

func indexByteFrom(s string, from int, c byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
