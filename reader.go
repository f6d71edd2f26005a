package xmldom

import (
	"bufio"
	"io"
)

// reader is a forward-only rune cursor with one-rune lookahead over an XML
// source. It tracks 1-based line/column for diagnostics and
// leaves all structural decisions to the parser.
type reader struct {
	br   *bufio.Reader
	cur  rune
	ok   bool // false once the source is exhausted
	line int
	col  int
}

func newReader(r io.Reader) *reader {
	rd := &reader{br: bufio.NewReader(r), line: 1, col: 0}
	rd.popFront()
	return rd
}

// empty reports whether the source has no more runes.
func (r *reader) empty() bool { return !r.ok }

// front returns the current lookahead rune; callers must check empty
// first.
func (r *reader) front() rune { return r.cur }

// frontIf reports whether the current rune equals c.
func (r *reader) frontIf(c rune) bool { return r.ok && r.cur == c }

// sourceLoc returns the cursor's current diagnostic position.
func (r *reader) sourceLoc() SourceLocation { return SourceLocation{Line: r.line, Column: r.col} }

// popFront consumes and discards the current rune, advancing the cursor.
func (r *reader) popFront() {
	prev := r.cur
	rn, _, err := r.br.ReadRune()
	if err != nil {
		r.ok = false
		r.cur = 0
		if prev == '\n' {
			r.line++
			r.col = 0
		} else if r.col > 0 || r.line > 1 {
			r.col++
		}
		return
	}
	if prev == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	r.cur = rn
	r.ok = true
}

// moveFrontIf consumes the current rune if it equals c, reporting whether
// it did.
func (r *reader) moveFrontIf(c rune) bool {
	if !r.frontIf(c) {
		return false
	}
	r.popFront()
	return true
}

// skipSpaces consumes a (possibly empty) run of XML whitespace.
func (r *reader) skipSpaces() {
	for r.ok && isSpace(r.cur) {
		r.popFront()
	}
}

// readUntilNonSpace reads and returns a run of one or more whitespace
// characters, stopping at the first non-whitespace rune or EOF.
func (r *reader) readUntilNonSpace() (string, error) {
	var runes []rune
	for r.ok && isSpace(r.cur) {
		runes = append(runes, r.cur)
		r.popFront()
	}
	return string(runes), nil
}

// requireSpaces consumes at least one whitespace rune, or reports an
// error.
func (r *reader) requireSpaces() error {
	if !r.ok || !isSpace(r.cur) {
		return newParseError(ErrUnexpectedChar, r.sourceLoc(), "expected whitespace")
	}
	r.skipSpaces()
	return nil
}

// expect consumes the current rune if it equals c, else returns an error.
func (r *reader) expect(c rune) error {
	if !r.moveFrontIf(c) {
		return newParseError(ErrUnexpectedChar, r.sourceLoc(), "expected %q", c)
	}
	return nil
}

// expectLiteral consumes s rune-by-rune, or returns an error at the first
// mismatch.
func (r *reader) expectLiteral(s string) error {
	for _, want := range s {
		if !r.moveFrontIf(want) {
			return newParseError(ErrUnexpectedString, r.sourceLoc(), "expected %q", s)
		}
	}
	return nil
}

// peekLiteral reports whether the upcoming runes equal s, without
// consuming anything. It buffers through bufio.Reader.Peek, so it only
// works for literals whose UTF-8 byte length is known and ASCII (true of
// every fixed XML delimiter this reader matches against).
func (r *reader) peekLiteral(s string) bool {
	if s == "" {
		return true
	}
	if !r.ok || rune(s[0]) != r.cur {
		return false
	}
	rest := []byte(s[1:])
	if len(rest) == 0 {
		return true
	}
	buf, err := r.br.Peek(len(rest))
	if err != nil || len(buf) < len(rest) {
		return false
	}
	for i, b := range rest {
		if buf[i] != b {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------
// Name/text readers, using pooled scratch buffers
// ---------------------------------------------------------------------

// readAnyName reads a bare XML Name (used for PI targets, general entity
// references, notation names, etc.).
func (r *reader) readAnyName(pool *bufferPool) (string, error) {
	if !r.ok || !isNameStartChar(r.cur) {
		return "", newParseError(ErrInvalidName, r.sourceLoc(), "expected a name")
	}
	var out string
	err := pool.withBuffer(func(b *textBuffer) error {
		b.writeRune(r.cur)
		r.popFront()
		for r.ok && isNameChar(r.cur) {
			b.writeRune(r.cur)
			r.popFront()
		}
		out = b.valueAndClear()
		return nil
	})
	return out, err
}

// readElementXName reads an element or attribute qualified name (possibly
// "prefix:local").
func (r *reader) readElementXName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readElementPName reads a PI target name.
func (r *reader) readElementPName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readElementEName reads an entity or notation name.
func (r *reader) readElementEName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readElementXAttributeName reads an attribute name within a start tag.
func (r *reader) readElementXAttributeName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readDeclarationAttributeName reads a pseudo-attribute name in an XML
// declaration ("version", "encoding", "standalone").
func (r *reader) readDeclarationAttributeName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readDocumentTypeAttributeListChoiceName reads one member of an ATTLIST
// enumeration or NOTATION list.
func (r *reader) readDocumentTypeAttributeListChoiceName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readDocumentTypeElementChoiceName reads one element name inside an
// ELEMENT content-model group.
func (r *reader) readDocumentTypeElementChoiceName(pool *bufferPool) (string, error) {
	return r.readAnyName(pool)
}

// readQuotedLiteral reads a single- or double-quoted literal (AttValue
// without entity expansion, public/system IDs).
func (r *reader) readQuotedLiteral(pool *bufferPool) (string, error) {
	if !r.ok || (r.cur != '"' && r.cur != '\'') {
		return "", newParseError(ErrUnexpectedChar, r.sourceLoc(), "expected a quoted literal")
	}
	quote := r.cur
	r.popFront()
	var out string
	err := pool.withBuffer(func(b *textBuffer) error {
		for r.ok && r.cur != quote {
			b.writeRune(r.cur)
			r.popFront()
		}
		out = b.valueAndClear()
		return nil
	})
	if err != nil {
		return "", err
	}
	if !r.moveFrontIf(quote) {
		return "", newParseError(ErrUnexpectedEOF, r.sourceLoc(), "unterminated quoted literal")
	}
	return out, nil
}

// readUntilAdv reads runes up to (but not including) the first occurrence
// of delim, returning false if the source was exhausted first.
func (r *reader) readUntilAdv(pool *bufferPool, delim string) (string, bool, error) {
	var out string
	found := true
	err := pool.withBuffer(func(b *textBuffer) error {
		for {
			if r.peekLiteral(delim) {
				break
			}
			if !r.ok {
				found = false
				break
			}
			b.writeRune(r.cur)
			r.popFront()
		}
		out = b.valueAndClear()
		return nil
	})
	return out, found, err
}

// readElementXText reads character content up to the next '<' (or EOF),
// decoding entity and character references as it goes. allWhitespace
// reports whether every character produced was XML whitespace, letting
// the parser decide between Text and (Significant)Whitespace node kinds.
func (r *reader) readElementXText(pool *bufferPool, entities *EntityTable) (text string, allWhitespace bool, err error) {
	allWhitespace = true
	err = pool.withBuffer(func(b *textBuffer) error {
		for r.ok && r.cur != '<' {
			if r.cur == '&' {
				loc := r.sourceLoc()
				r.popFront()
				name, err := r.readUntilChar(pool, ';')
				if err != nil {
					return err
				}
				if !r.moveFrontIf(';') {
					return newParseError(ErrUnexpectedEOF, loc, "unterminated entity reference")
				}
				repl, err := entities.DecodeRef(name, loc)
				if err != nil {
					return err
				}
				for _, rr := range repl {
					if !isSpace(rr) {
						allWhitespace = false
					}
					b.writeRune(rr)
				}
				continue
			}
			if !isSpace(r.cur) {
				allWhitespace = false
			}
			b.writeRune(r.cur)
			r.popFront()
		}
		text = b.valueAndClear()
		return nil
	})
	return text, allWhitespace, err
}

// readUntilChar reads runes up to (not including) the first occurrence of
// c, erroring at EOF.
func (r *reader) readUntilChar(pool *bufferPool, c rune) (string, error) {
	var out string
	err := pool.withBuffer(func(b *textBuffer) error {
		for r.ok && r.cur != c {
			b.writeRune(r.cur)
			r.popFront()
		}
		if !r.ok {
			return newParseError(ErrUnexpectedEOF, r.sourceLoc(), "expected %q", c)
		}
		out = b.valueAndClear()
		return nil
	})
	return out, err
}
