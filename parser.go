package xmldom

// parser is the hand-rolled recursive-descent state machine that drives a
// reader, builds nodes through the owning Document's factory methods, and
// optionally fires SAXHandler callbacks as nodes are attached.
type parser struct {
	doc *Document
	r   *reader
}

func newParser(doc *Document, r *reader) *parser {
	return &parser{doc: doc, r: r}
}

func (p *parser) useSAX() bool { return p.doc.hasOption(OptUseSAX) && p.doc.sax != nil }

// fireOther invokes the OnOtherNode SAX hook (if enabled) after n has been
// attached to parent, detaching n again when the callback vetoes it.
func (p *parser) fireOther(parent, n *Node) {
	if !p.useSAX() {
		return
	}
	if !p.doc.sax.fireOtherNode(n) {
		parent.detachChild(n)
	}
}

// parseDocument parses the whole input into p.doc's tree: an optional XML
// declaration, misc items (comments/PIs/whitespace), an optional DOCTYPE,
// more misc items, exactly one root Element, and trailing misc items.
func (p *parser) parseDocument() error {
	root := p.doc.root

	if p.r.peekLiteral("<?xml") {
		decl, err := p.parseXMLDeclaration()
		if err != nil {
			return err
		}
		if _, err := root.AppendChild(decl); err != nil {
			return err
		}
		p.fireOther(root, decl)
	}

	if err := p.parseMisc(root); err != nil {
		return err
	}

	if p.r.peekLiteral("<!DOCTYPE") {
		dt, err := p.parseDocumentType()
		if err != nil {
			return err
		}
		if _, err := root.AppendChild(dt); err != nil {
			return err
		}
		p.fireOther(root, dt)
	}

	if err := p.parseMisc(root); err != nil {
		return err
	}

	if p.r.empty() || !p.r.frontIf('<') {
		return newParseError(ErrUnexpectedEOF, p.r.sourceLoc(), "expected a root element")
	}
	elem, err := p.parseElement(root)
	if err != nil {
		return err
	}
	_ = elem

	return p.parseMisc(root)
}

// parseMisc consumes comments, processing instructions, and whitespace
// runs, attaching each to parent (whitespace runs only when
// OptPreserveWhitespace is set; otherwise they are dropped), until
// something else (DOCTYPE, root element start tag, or EOF) is seen.
func (p *parser) parseMisc(parent *Node) error {
	for {
		switch {
		case p.r.empty():
			return nil
		case p.r.peekLiteral("<!--"):
			c, err := p.parseComment()
			if err != nil {
				return err
			}
			if _, err := parent.AppendChild(c); err != nil {
				return err
			}
			p.fireOther(parent, c)
		case p.r.peekLiteral("<?"):
			pi, err := p.parseProcessingInstruction()
			if err != nil {
				return err
			}
			if _, err := parent.AppendChild(pi); err != nil {
				return err
			}
			p.fireOther(parent, pi)
		case isSpace(p.r.front()):
			ws, err := p.parseWhitespaceRun(false)
			if err != nil {
				return err
			}
			if !p.doc.hasOption(OptPreserveWhitespace) {
				continue
			}
			if _, err := parent.AppendChild(ws); err != nil {
				return err
			}
			p.fireOther(parent, ws)
		default:
			return nil
		}
	}
}

func (p *parser) parseWhitespaceRun(significant bool) (*Node, error) {
	text, err := p.r.readUntilNonSpace()
	if err != nil {
		return nil, err
	}
	if significant {
		return p.doc.CreateSignificantWhitespace(text)
	}
	return p.doc.CreateWhitespace(text)
}

// parseXMLDeclaration parses "<?xml VersionInfo EncodingDecl? SDDecl? ?>".
func (p *parser) parseXMLDeclaration() (*Node, error) {
	if err := p.r.expectLiteral("<?xml"); err != nil {
		return nil, err
	}
	var version, encoding, standalone string
	for {
		p.r.skipSpaces()
		if p.r.peekLiteral("?>") {
			break
		}
		name, err := p.r.readDeclarationAttributeName(p.doc.buffers)
		if err != nil {
			return nil, err
		}
		p.r.skipSpaces()
		if err := p.r.expect('='); err != nil {
			return nil, err
		}
		p.r.skipSpaces()
		value, err := p.r.readQuotedLiteral(p.doc.buffers)
		if err != nil {
			return nil, err
		}
		switch name {
		case "version":
			version = value
		case "encoding":
			encoding = value
		case "standalone":
			standalone = value
		default:
			if p.doc.hasOption(OptValidate) {
				return nil, newParseError(ErrUnexpectedString, p.r.sourceLoc(), "unknown XML declaration attribute %q", name)
			}
		}
	}
	if err := p.r.expectLiteral("?>"); err != nil {
		return nil, err
	}
	return p.doc.CreateDeclaration(version, encoding, standalone)
}

func (p *parser) parseComment() (*Node, error) {
	if err := p.r.expectLiteral("<!--"); err != nil {
		return nil, err
	}
	text, found, err := p.r.readUntilAdv(p.doc.buffers, "-->")
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, newParseError(ErrUnexpectedEOF, p.r.sourceLoc(), "unterminated comment")
	}
	if err := p.r.expectLiteral("-->"); err != nil {
		return nil, err
	}
	return p.doc.CreateComment(text)
}

func (p *parser) parseProcessingInstruction() (*Node, error) {
	if err := p.r.expectLiteral("<?"); err != nil {
		return nil, err
	}
	target, err := p.r.readElementPName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	data, found, err := p.r.readUntilAdv(p.doc.buffers, "?>")
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, newParseError(ErrUnexpectedEOF, p.r.sourceLoc(), "unterminated processing instruction")
	}
	if err := p.r.expectLiteral("?>"); err != nil {
		return nil, err
	}
	return p.doc.CreateProcessingInstruction(target, data)
}

func (p *parser) parseCDATA() (*Node, error) {
	if err := p.r.expectLiteral("<![CDATA["); err != nil {
		return nil, err
	}
	text, found, err := p.r.readUntilAdv(p.doc.buffers, "]]>")
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, newParseError(ErrUnexpectedEOF, p.r.sourceLoc(), "unterminated CDATA section")
	}
	if err := p.r.expectLiteral("]]>"); err != nil {
		return nil, err
	}
	return p.doc.CreateCDATASection(text)
}

// parseElement parses one element (start tag, attributes, content or
// self-close, end tag) and appends it to parent.
func (p *parser) parseElement(parent *Node) (*Node, error) {
	startLoc := p.r.sourceLoc()
	if err := p.r.expect('<'); err != nil {
		return nil, err
	}
	name, err := p.r.readElementXName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	elem, err := p.doc.CreateElement(name)
	if err != nil {
		return nil, err
	}

	for {
		hadSpace := isSpace(orZero(p.r))
		p.r.skipSpaces()
		if p.r.peekLiteral("/>") || p.r.peekLiteral(">") {
			break
		}
		if !hadSpace {
			return nil, newParseError(ErrUnexpectedChar, p.r.sourceLoc(), "expected whitespace before attribute")
		}
		if err := p.parseAttribute(elem); err != nil {
			return nil, err
		}
	}

	if _, err := parent.AppendChild(elem); err != nil {
		return nil, err
	}

	selfClose := p.r.peekLiteral("/>")
	if selfClose {
		if err := p.r.expectLiteral("/>"); err != nil {
			return nil, err
		}
	} else {
		if err := p.r.expect('>'); err != nil {
			return nil, err
		}
	}

	vetoed := false
	if p.useSAX() {
		if !p.doc.sax.fireElementBegin(elem) {
			parent.detachChild(elem)
			vetoed = true
		}
	}

	if !selfClose {
		if err := p.parseContent(elem); err != nil {
			return nil, err
		}
		if err := p.parseEndTag(name, startLoc); err != nil {
			return nil, err
		}
	}

	if p.useSAX() && !vetoed {
		if !p.doc.sax.fireElementEnd(elem) {
			parent.detachChild(elem)
		}
	}

	return elem, nil
}

func orZero(r *reader) rune {
	if r.empty() {
		return 0
	}
	return r.front()
}

func (p *parser) parseAttribute(elem *Node) error {
	name, err := p.r.readElementXAttributeName(p.doc.buffers)
	if err != nil {
		return err
	}
	if p.doc.hasOption(OptValidate) && elem.FindAttribute(name) != nil {
		return newParseError(ErrAttributeDuplicate, p.r.sourceLoc(), "duplicate attribute %q", name)
	}
	p.r.skipSpaces()
	if err := p.r.expect('='); err != nil {
		return err
	}
	p.r.skipSpaces()
	raw, err := p.r.readQuotedLiteral(p.doc.buffers)
	if err != nil {
		return err
	}
	attr, err := p.doc.CreateAttribute(name)
	if err != nil {
		return err
	}
	value, err := decodeEntities(raw, p.doc.entities, p.r.sourceLoc())
	if err != nil {
		return err
	}
	attr.Value = newDecodedString(value)
	if _, err := elem.AppendAttributeNode(attr); err != nil {
		return err
	}
	if p.useSAX() {
		if !p.doc.sax.fireAttribute(attr) {
			elem.detachAttr(attr)
		}
	}
	return nil
}

// mustDecode decodes entity references within an already-quote-stripped
// attribute literal, passing through any decode failure as the raw text
// (callers that need the error should use decodeEntities directly).
func mustDecode(raw string, table *EntityTable, loc SourceLocation) string {
	out, err := decodeEntities(raw, table, loc)
	if err != nil {
		return raw
	}
	return out
}

func (p *parser) parseEndTag(openName string, openLoc SourceLocation) error {
	if err := p.r.expectLiteral("</"); err != nil {
		return err
	}
	name, err := p.r.readElementXName(p.doc.buffers)
	if err != nil {
		return err
	}
	p.r.skipSpaces()
	if err := p.r.expect('>'); err != nil {
		return err
	}
	if name != openName {
		return newParseError(ErrMismatchedEndTag, p.r.sourceLoc(),
			"end tag %q does not match start tag %q opened at %s", name, openName, openLoc)
	}
	return nil
}

// parseContent parses an element's children: text runs, child elements,
// CDATA, comments, PIs, and entity references, until the matching end tag.
func (p *parser) parseContent(parent *Node) error {
	for {
		if p.r.empty() {
			return newParseError(ErrUnexpectedEOF, p.r.sourceLoc(), "unexpected end of input inside <%s>", parent.NodeName())
		}
		switch {
		case p.r.peekLiteral("</"):
			return nil
		case p.r.peekLiteral("<!--"):
			c, err := p.parseComment()
			if err != nil {
				return err
			}
			if _, err := parent.AppendChild(c); err != nil {
				return err
			}
			p.fireOther(parent, c)
		case p.r.peekLiteral("<![CDATA["):
			c, err := p.parseCDATA()
			if err != nil {
				return err
			}
			if _, err := parent.AppendChild(c); err != nil {
				return err
			}
			p.fireOther(parent, c)
		case p.r.peekLiteral("<?"):
			pi, err := p.parseProcessingInstruction()
			if err != nil {
				return err
			}
			if _, err := parent.AppendChild(pi); err != nil {
				return err
			}
			p.fireOther(parent, pi)
		case p.r.frontIf('<'):
			if _, err := p.parseElement(parent); err != nil {
				return err
			}
		default:
			text, allWS, err := p.r.readElementXText(p.doc.buffers, p.doc.entities)
			if err != nil {
				return err
			}
			if text == "" {
				continue
			}
			if allWS && !p.doc.hasOption(OptPreserveWhitespace) {
				continue
			}
			var n *Node
			if allWS {
				n, err = p.doc.CreateSignificantWhitespace(text)
			} else {
				n = p.doc.CreateTextNode(text)
			}
			if err != nil {
				return err
			}
			if _, err := parent.AppendChild(n); err != nil {
				return err
			}
			p.fireOther(parent, n)
		}
	}
}

// ---------------------------------------------------------------------
// DOCTYPE and internal subset
// ---------------------------------------------------------------------

func (p *parser) parseDocumentType() (*Node, error) {
	if err := p.r.expectLiteral("<!DOCTYPE"); err != nil {
		return nil, err
	}
	if err := p.r.requireSpaces(); err != nil {
		return nil, err
	}
	name, err := p.r.readAnyName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()

	keyword, publicID, systemID, err := p.parseExternalID(true)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()

	dt := p.doc.CreateDocumentType(name, keyword, publicID, systemID)

	if p.r.moveFrontIf('[') {
		if err := p.parseInternalSubset(dt); err != nil {
			return nil, err
		}
		if err := p.r.expect(']'); err != nil {
			return nil, err
		}
		p.r.skipSpaces()
	}
	if err := p.r.expect('>'); err != nil {
		return nil, err
	}
	return dt, nil
}

// parseExternalID parses an optional "PUBLIC lit lit" or "SYSTEM lit"
// clause. optional allows neither keyword to be present.
func (p *parser) parseExternalID(optional bool) (keyword, publicID, systemID string, err error) {
	switch {
	case p.r.peekLiteral("PUBLIC"):
		if err = p.r.expectLiteral("PUBLIC"); err != nil {
			return
		}
		if err = p.r.requireSpaces(); err != nil {
			return
		}
		publicID, err = p.r.readQuotedLiteral(p.doc.buffers)
		if err != nil {
			return
		}
		p.r.skipSpaces()
		systemID, err = p.r.readQuotedLiteral(p.doc.buffers)
		if err != nil {
			return
		}
		keyword = "public"
	case p.r.peekLiteral("SYSTEM"):
		if err = p.r.expectLiteral("SYSTEM"); err != nil {
			return
		}
		if err = p.r.requireSpaces(); err != nil {
			return
		}
		systemID, err = p.r.readQuotedLiteral(p.doc.buffers)
		if err != nil {
			return
		}
		keyword = "system"
	default:
		if !optional {
			err = newParseError(ErrUnexpectedString, p.r.sourceLoc(), "expected PUBLIC or SYSTEM")
		}
	}
	return
}

// parseInternalSubset parses the bracketed markup declarations between
// the DOCTYPE's '[' and ']'.
func (p *parser) parseInternalSubset(dt *Node) error {
	for {
		p.r.skipSpaces()
		switch {
		case p.r.frontIf(']'):
			return nil
		case p.r.peekLiteral("<!--"):
			c, err := p.parseComment()
			if err != nil {
				return err
			}
			if _, err := dt.AppendChild(c); err != nil {
				return err
			}
			p.fireOther(dt, c)
		case p.r.peekLiteral("<?"):
			pi, err := p.parseProcessingInstruction()
			if err != nil {
				return err
			}
			if _, err := dt.AppendChild(pi); err != nil {
				return err
			}
			p.fireOther(dt, pi)
		case p.r.peekLiteral("<!ENTITY"):
			e, err := p.parseEntityDecl()
			if err != nil {
				return err
			}
			if _, err := dt.AppendChild(e); err != nil {
				return err
			}
			p.fireOther(dt, e)
		case p.r.peekLiteral("<!NOTATION"):
			n, err := p.parseNotationDecl()
			if err != nil {
				return err
			}
			if _, err := dt.AppendChild(n); err != nil {
				return err
			}
			p.fireOther(dt, n)
		case p.r.peekLiteral("<!ATTLIST"):
			a, err := p.parseAttlistDecl()
			if err != nil {
				return err
			}
			if _, err := dt.AppendChild(a); err != nil {
				return err
			}
			p.fireOther(dt, a)
		case p.r.peekLiteral("<!ELEMENT"):
			e, err := p.parseElementDecl()
			if err != nil {
				return err
			}
			if _, err := dt.AppendChild(e); err != nil {
				return err
			}
			p.fireOther(dt, e)
		case p.r.frontIf('%'):
			// Parameter-entity reference: stored verbatim as a Text child,
			// not expanded (Open Question Q4).
			loc := p.r.sourceLoc()
			p.r.popFront()
			name, err := p.r.readAnyName(p.doc.buffers)
			if err != nil {
				return err
			}
			if err := p.r.expect(';'); err != nil {
				return err
			}
			_ = loc
			txt := p.doc.CreateTextNode("%" + name + ";")
			if _, err := dt.AppendChild(txt); err != nil {
				return err
			}
			p.fireOther(dt, txt)
		default:
			return newParseError(ErrUnexpectedChar, p.r.sourceLoc(), "unexpected markup inside internal subset")
		}
	}
}

func (p *parser) parseEntityDecl() (*Node, error) {
	if err := p.r.expectLiteral("<!ENTITY"); err != nil {
		return nil, err
	}
	if err := p.r.requireSpaces(); err != nil {
		return nil, err
	}
	p.r.moveFrontIf('%') // parameter entity marker: consumed and not recorded; the entity is then handled as a general entity
	p.r.skipSpaces()
	name, err := p.r.readAnyName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()

	var publicID, systemID, notation string
	if p.r.peekLiteral("PUBLIC") || p.r.peekLiteral("SYSTEM") {
		_, publicID, systemID, err = p.parseExternalID(false)
		if err != nil {
			return nil, err
		}
		p.r.skipSpaces()
		if p.r.peekLiteral("NDATA") {
			if err := p.r.expectLiteral("NDATA"); err != nil {
				return nil, err
			}
			if err := p.r.requireSpaces(); err != nil {
				return nil, err
			}
			notation, err = p.r.readAnyName(p.doc.buffers)
			if err != nil {
				return nil, err
			}
			p.r.skipSpaces()
		}
		if err := p.r.expect('>'); err != nil {
			return nil, err
		}
		return p.doc.CreateEntity(name, publicID, systemID, notation), nil
	}

	value, err := p.r.readQuotedLiteral(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	if err := p.doc.entities.Define(name, value); err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	if err := p.r.expect('>'); err != nil {
		return nil, err
	}
	e := p.doc.CreateEntity(name, "", "", "")
	e.Value = newDecodedString(value)
	return e, nil
}

func (p *parser) parseNotationDecl() (*Node, error) {
	if err := p.r.expectLiteral("<!NOTATION"); err != nil {
		return nil, err
	}
	if err := p.r.requireSpaces(); err != nil {
		return nil, err
	}
	name, err := p.r.readAnyName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	_, publicID, systemID, err := p.parseExternalID(false)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	if err := p.r.expect('>'); err != nil {
		return nil, err
	}
	return p.doc.CreateNotation(name, publicID, systemID), nil
}

func (p *parser) parseAttlistDecl() (*Node, error) {
	if err := p.r.expectLiteral("<!ATTLIST"); err != nil {
		return nil, err
	}
	if err := p.r.requireSpaces(); err != nil {
		return nil, err
	}
	elemName, err := p.r.readAnyName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	var items []AttlistItem
	for {
		p.r.skipSpaces()
		if p.r.frontIf('>') {
			break
		}
		item, err := p.parseAttributeItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := p.r.expect('>'); err != nil {
		return nil, err
	}
	return p.doc.CreateAttributeListDecl(elemName, items), nil
}

// parseAttributeItem parses one AttDef inside an ATTLIST declaration: a
// name, a type, and a default-value clause. This is the single grammar
// shared by enumerated and keyword attribute types (Open Question Q2).
func (p *parser) parseAttributeItem() (AttlistItem, error) {
	var item AttlistItem
	name, err := p.r.readDocumentTypeAttributeListChoiceName(p.doc.buffers)
	if err != nil {
		return item, err
	}
	item.Name = name
	p.r.skipSpaces()

	switch {
	case p.r.frontIf('('):
		item.Type = "ENUMERATION"
		vals, err := p.parseNameChoiceGroup()
		if err != nil {
			return item, err
		}
		item.Values = vals
	case p.r.peekLiteral("NOTATION"):
		if err := p.r.expectLiteral("NOTATION"); err != nil {
			return item, err
		}
		item.Type = "NOTATION"
		p.r.skipSpaces()
		vals, err := p.parseNameChoiceGroup()
		if err != nil {
			return item, err
		}
		item.Values = vals
	default:
		typeName, err := p.r.readAnyName(p.doc.buffers)
		if err != nil {
			return item, err
		}
		item.Type = typeName
	}
	p.r.skipSpaces()

	switch {
	case p.r.moveFrontIf('#'):
		kw, err := p.r.readAnyName(p.doc.buffers)
		if err != nil {
			return item, err
		}
		switch kw {
		case "REQUIRED", "IMPLIED":
			item.DefaultKind = kw
		case "FIXED":
			item.DefaultKind = "FIXED"
			p.r.skipSpaces()
			lit, err := p.r.readQuotedLiteral(p.doc.buffers)
			if err != nil {
				return item, err
			}
			item.DefaultValue = lit
		default:
			return item, newParseError(ErrUnexpectedString, p.r.sourceLoc(), "unknown default clause #%s", kw)
		}
	default:
		lit, err := p.r.readQuotedLiteral(p.doc.buffers)
		if err != nil {
			return item, err
		}
		item.DefaultValue = lit
	}
	return item, nil
}

// parseNameChoiceGroup parses "( name (| name)* )" used by ENUMERATION and
// NOTATION attribute types. Neither caller consumes the opening '(', so
// this reads it itself.
func (p *parser) parseNameChoiceGroup() ([]string, error) {
	if err := p.r.expect('('); err != nil {
		return nil, err
	}
	var names []string
	for {
		p.r.skipSpaces()
		name, err := p.r.readDocumentTypeAttributeListChoiceName(p.doc.buffers)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		p.r.skipSpaces()
		if p.r.moveFrontIf('|') {
			continue
		}
		break
	}
	if err := p.r.expect(')'); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *parser) parseElementDecl() (*Node, error) {
	if err := p.r.expectLiteral("<!ELEMENT"); err != nil {
		return nil, err
	}
	if err := p.r.requireSpaces(); err != nil {
		return nil, err
	}
	name, err := p.r.readAnyName(p.doc.buffers)
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	spec, err := p.parseContentSpec()
	if err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	if err := p.r.expect('>'); err != nil {
		return nil, err
	}
	return p.doc.CreateElementDecl(name, spec), nil
}

// parseContentSpec parses an ELEMENT content specification: EMPTY, ANY,
// a mixed-content group "(#PCDATA | a | b)*", or a children group built
// from nested choice/sequence particles.
func (p *parser) parseContentSpec() (*ElementContentSpec, error) {
	switch {
	case p.r.peekLiteral("EMPTY"):
		if err := p.r.expectLiteral("EMPTY"); err != nil {
			return nil, err
		}
		return &ElementContentSpec{Kind: ContentEmpty}, nil
	case p.r.peekLiteral("ANY"):
		if err := p.r.expectLiteral("ANY"); err != nil {
			return nil, err
		}
		return &ElementContentSpec{Kind: ContentAny}, nil
	case p.r.frontIf('('):
		return p.parseGroupContentSpec()
	default:
		return nil, newParseError(ErrUnexpectedString, p.r.sourceLoc(), "expected EMPTY, ANY, or a content group")
	}
}

func (p *parser) parseGroupContentSpec() (*ElementContentSpec, error) {
	if err := p.r.expect('('); err != nil {
		return nil, err
	}
	p.r.skipSpaces()
	if p.r.peekLiteral("#PCDATA") {
		if err := p.r.expectLiteral("#PCDATA"); err != nil {
			return nil, err
		}
		var names []string
		for {
			p.r.skipSpaces()
			if p.r.moveFrontIf('|') {
				p.r.skipSpaces()
				name, err := p.r.readDocumentTypeElementChoiceName(p.doc.buffers)
				if err != nil {
					return nil, err
				}
				names = append(names, name)
				continue
			}
			break
		}
		p.r.skipSpaces()
		if err := p.r.expect(')'); err != nil {
			return nil, err
		}
		spec := &ElementContentSpec{Kind: ContentMixed, Names: names}
		spec.Multiplicity = p.parseMultiplicity()
		return spec, nil
	}

	var particles []*ElementContentSpec
	var op byte
	for {
		p.r.skipSpaces()
		var particle *ElementContentSpec
		var err error
		if p.r.frontIf('(') {
			particle, err = p.parseGroupContentSpec()
		} else {
			var name string
			name, err = p.r.readDocumentTypeElementChoiceName(p.doc.buffers)
			if err == nil {
				particle = &ElementContentSpec{Kind: ContentChildren, Name: name}
				particle.Multiplicity = p.parseMultiplicity()
			}
		}
		if err != nil {
			return nil, err
		}
		particles = append(particles, particle)
		p.r.skipSpaces()
		switch {
		case p.r.frontIf('|'):
			if op == 0 {
				op = '|'
			} else if op != '|' {
				return nil, newParseError(ErrUnexpectedChar, p.r.sourceLoc(), "mixed ',' and '|' in content group without nesting")
			}
			p.r.popFront()
			continue
		case p.r.frontIf(','):
			if op == 0 {
				op = ','
			} else if op != ',' {
				return nil, newParseError(ErrUnexpectedChar, p.r.sourceLoc(), "mixed ',' and '|' in content group without nesting")
			}
			p.r.popFront()
			continue
		}
		break
	}
	p.r.skipSpaces()
	if err := p.r.expect(')'); err != nil {
		return nil, err
	}
	if op == 0 {
		// A group holding a single particle is a sequence of one, so that
		// Operator stays zero only for leaves.
		op = ','
	}
	spec := &ElementContentSpec{Kind: ContentChildren, Operator: op, Children: particles}
	spec.Multiplicity = p.parseMultiplicity()
	return spec, nil
}

func (p *parser) parseMultiplicity() ElementContentMultiplicity {
	switch {
	case p.r.moveFrontIf('?'):
		return MultiplicityOptional
	case p.r.moveFrontIf('*'):
		return MultiplicityZeroOrMore
	case p.r.moveFrontIf('+'):
		return MultiplicityOneOrMore
	}
	return MultiplicityOne
}
