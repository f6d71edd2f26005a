package xmldom

import (
	"strconv"
	"strings"
)

// predefinedEntities are the five entities every EntityTable is seeded
// with. Encoding always applies these regardless of what a
// document has added to its own table.
var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// entityEncodeOrder fixes the iteration order used when encoding, so that
// '&' is always replaced before the entities it introduces (&lt; etc.) are
// considered literal text again.
var entityEncodeOrder = []struct {
	char   byte
	entity string
}{
	{'&', "&amp;"},
	{'<', "&lt;"},
	{'>', "&gt;"},
	{'\'', "&apos;"},
	{'"', "&quot;"},
}

// EntityTable maps entity names to replacement text. The zero
// value is not usable; use newEntityTable.
type EntityTable struct {
	custom map[string]string
}

func newEntityTable() *EntityTable {
	return &EntityTable{custom: make(map[string]string)}
}

// Define registers a custom entity, as happens when a DOCTYPE internal
// subset contains an <!ENTITY name "replacement"> declaration. Defining a
// name already present in predefinedEntities is rejected: the five
// predefined entities are immutable.
func (t *EntityTable) Define(name, replacement string) error {
	if _, ok := predefinedEntities[name]; ok {
		return newOpError(ErrInvalidOp, "cannot redefine predefined entity %q", name)
	}
	t.custom[name] = replacement
	return nil
}

// Lookup returns the replacement text for name, consulting the predefined
// table first and then any custom entities registered via Define.
func (t *EntityTable) Lookup(name string) (string, bool) {
	if v, ok := predefinedEntities[name]; ok {
		return v, true
	}
	v, ok := t.custom[name]
	return v, ok
}

// DecodeRef decodes a single entity/character reference body (the text
// between '&' and ';', exclusive of both delimiters) into its replacement
// text. loc is used only to annotate a returned error.
func (t *EntityTable) DecodeRef(body string, loc SourceLocation) (string, error) {
	if strings.HasPrefix(body, "#x") || strings.HasPrefix(body, "#X") {
		n, err := strconv.ParseInt(body[2:], 16, 32)
		if err != nil {
			return "", newParseError(ErrUnexpectedChar, loc, "invalid hex character reference &%s;", body)
		}
		return string(rune(n)), nil
	}
	if strings.HasPrefix(body, "#") {
		n, err := strconv.ParseInt(body[1:], 10, 32)
		if err != nil {
			return "", newParseError(ErrUnexpectedChar, loc, "invalid decimal character reference &%s;", body)
		}
		return string(rune(n)), nil
	}
	if v, ok := t.Lookup(body); ok {
		return v, nil
	}
	logUnknownEntity(body, loc)
	return "", newParseError(ErrUnknownEntity, loc, "unknown entity &%s;", body)
}

// EncodeString replaces the five predefined specials in s with their named
// entity form. It never touches custom
// entities: those are resolved only on decode, not re-synthesized on
// write.
func EncodeString(s string) string {
	if !strings.ContainsAny(s, "&<>'\"") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
outer:
	for i := 0; i < len(s); i++ {
		c := s[i]
		for _, e := range entityEncodeOrder {
			if c == e.char {
				b.WriteString(e.entity)
				continue outer
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
