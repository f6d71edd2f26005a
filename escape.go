package xmldom

import (
	"io"
	"strings"
)

// EscapeText writes to w the properly escaped XML equivalent of plain text
// data: the five predefined specials ('&' '<' '>' '\'' '"') are replaced
// with their named entity form. Unlike encoding/xml.EscapeText this never
// emits numeric character references for the specials.
func EscapeText(w io.Writer, s []byte) error {
	_, err := io.WriteString(w, EncodeString(string(s)))
	return err
}

// EscapeString returns the properly escaped XML equivalent of plain text
// data. See EscapeText.
func EscapeString(s string) string {
	return EncodeString(s)
}

// UnescapeText decodes XML character and named entity references in s,
// using only the five predefined entities (lt, gt, amp, apos, quot) plus
// numeric character references. It does not consult any document's custom
// entity table; use EntityTable.DecodeRef for that.
func UnescapeText(w io.Writer, s []byte) error {
	_, err := io.WriteString(w, UnescapeString(string(s)))
	return err
}

// UnescapeString returns the decoded XML equivalent of escaped text data,
// resolving only the five predefined entities and numeric character
// references (named custom entities require a document's EntityTable).
func UnescapeString(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	table := newEntityTable()
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			b.WriteByte(s[i])
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteByte(s[i])
			continue
		}
		end += i
		body := s[i+1 : end]
		if repl, err := table.DecodeRef(body, SourceLocation{}); err == nil {
			b.WriteString(repl)
			i = end
			continue
		}
		// Unknown entity: pass the literal text through unchanged.
		b.WriteString(s[i : end+1])
		i = end
	}
	return b.String()
}
