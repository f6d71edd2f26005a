package xmldom

import (
	"bufio"
	"io"
	"strings"
)

// writer serializes a Document back to XML text. Pretty
// printing indents one level per element depth and suppresses the
// indentation newline around an element whose only child is a single
// text-bearing node, so round-tripping "<a>text</a>" never grows spurious
// whitespace.
type writer struct {
	w      *bufio.Writer
	pretty bool
	level  int

	// onlyOneNodeText counts, per open element, whether pretty-printing
	// should suppress its surrounding newlines because its sole child is
	// text-bearing.
	onlyOneNodeText []bool
}

func newWriter(w io.Writer, pretty bool) *writer {
	return &writer{w: bufio.NewWriter(w), pretty: pretty}
}

func (wr *writer) put(s string) { wr.w.WriteString(s) }

func (wr *writer) incNodeLevel() { wr.level++ }
func (wr *writer) decNodeLevel() { wr.level-- }

func (wr *writer) indent() {
	if !wr.pretty {
		return
	}
	if len(wr.onlyOneNodeText) > 0 && wr.onlyOneNodeText[len(wr.onlyOneNodeText)-1] {
		return
	}
	wr.put("\n")
	wr.put(strings.Repeat("  ", wr.level))
}

func (wr *writer) pushOnlyOneNodeText(v bool) { wr.onlyOneNodeText = append(wr.onlyOneNodeText, v) }
func (wr *writer) popOnlyOneNodeText()        { wr.onlyOneNodeText = wr.onlyOneNodeText[:len(wr.onlyOneNodeText)-1] }

// isSoleTextChild reports whether n's only child is a single Text/CData
// node, the case where pretty-printing must not inject indentation.
func isSoleTextChild(n *Node) bool {
	c := n.FirstChild
	if c == nil || c.NextSibling != nil {
		return false
	}
	return c.Kind == TextNode || c.Kind == CDataNode
}

// WriteDocument serializes doc's full tree.
func (wr *writer) WriteDocument(doc *Document) error {
	for c := doc.root.FirstChild; c != nil; c = c.NextSibling {
		if err := wr.writeNode(c); err != nil {
			return err
		}
		if wr.pretty && c.NextSibling != nil {
			wr.put("\n")
		}
	}
	return wr.w.Flush()
}

func (wr *writer) writeNode(n *Node) error {
	switch n.Kind {
	case DeclarationNode:
		return wr.writeDeclaration(n)
	case DocumentTypeNode:
		return wr.writeDocumentType(n)
	case ElementNode:
		return wr.writeElement(n)
	case TextNode:
		wr.put(n.Value.EncodedForWrite())
		return nil
	case CDataNode:
		wr.putCData(n.Value.Raw())
		return nil
	case CommentNode:
		wr.putComment(n.Value.Raw())
		return nil
	case ProcessingInstructionNode:
		wr.putProcessingInstruction(n.piTarget, n.Value.Raw())
		return nil
	case WhitespaceNode, SignificantWhitespaceNode:
		wr.put(n.Value.Raw())
		return nil
	case EntityReferenceNode:
		wr.putEntityReference(n.QName.Local)
		return nil
	case EntityNode:
		return wr.writeEntityDecl(n)
	case NotationNode:
		return wr.writeNotationDecl(n)
	case AttributeListDeclNode:
		return wr.writeAttlistDecl(n)
	case ElementDeclNode:
		return wr.writeElementDecl(n)
	default:
		return newOpError(ErrInvalidOp, "%s nodes cannot be serialized directly", n.Kind)
	}
}

func (wr *writer) writeDeclaration(n *Node) error {
	wr.put("<?xml")
	if v := n.Version(); v != "" {
		wr.putAttribute("version", v)
	}
	if e := n.Encoding(); e != "" {
		wr.putAttribute("encoding", e)
	}
	if s := n.Standalone(); s != "" {
		wr.putAttribute("standalone", s)
	}
	wr.put("?>")
	return nil
}

func (wr *writer) putAttribute(name, value string) {
	wr.put(" ")
	wr.put(name)
	wr.put("=")
	wr.putWithQuote(EncodeString(value))
}

// putWithQuote chooses a double quote unless value itself contains one
// and no single quote, in which case it falls back to a single quote. A
// value containing both is written between double quotes unchanged.
func (wr *writer) putWithQuote(value string) {
	quote := byte('"')
	if strings.ContainsRune(value, '"') && !strings.ContainsRune(value, '\'') {
		quote = '\''
	}
	wr.put(string(quote))
	wr.put(value)
	wr.put(string(quote))
}

func (wr *writer) putCData(data string) {
	wr.put("<![CDATA[")
	wr.put(data)
	wr.put("]]>")
}

func (wr *writer) putComment(data string) {
	wr.put("<!--")
	wr.put(data)
	wr.put("-->")
}

func (wr *writer) putProcessingInstruction(target, data string) {
	wr.put("<?")
	wr.put(target)
	if data != "" {
		wr.put(" ")
		wr.put(data)
	}
	wr.put("?>")
}

func (wr *writer) putEntityReference(name string) {
	wr.put("&")
	wr.put(name)
	wr.put(";")
}

func (wr *writer) writeElement(n *Node) error {
	wr.put("<")
	wr.put(n.QName.FullName())
	for a := n.FirstAttr; a != nil; a = a.NextAttr {
		wr.putAttribute(a.QName.FullName(), a.Value.Raw())
	}
	if n.FirstChild == nil {
		wr.put("/>")
		return nil
	}
	wr.put(">")

	sole := isSoleTextChild(n)
	wr.pushOnlyOneNodeText(sole)
	wr.incNodeLevel()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		wr.indent()
		if err := wr.writeNode(c); err != nil {
			return err
		}
	}
	wr.decNodeLevel()
	wr.popOnlyOneNodeText()
	if !sole {
		wr.indent()
	}
	wr.put("</")
	wr.put(n.QName.FullName())
	wr.put(">")
	return nil
}

func (wr *writer) writeDocumentType(n *Node) error {
	wr.put("<!DOCTYPE ")
	wr.put(n.QName.Local)
	wr.putExternalID(n.doctypeKeyword, n.publicID, n.systemOrSubset)
	if n.FirstChild != nil {
		wr.put(" [")
		wr.incNodeLevel()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			wr.indent()
			if err := wr.writeNode(c); err != nil {
				return err
			}
		}
		wr.decNodeLevel()
		wr.indent()
		wr.put("]")
	}
	wr.put(">")
	return nil
}

func (wr *writer) putExternalID(keyword, publicID, systemID string) {
	switch keyword {
	case "public":
		wr.put(" PUBLIC ")
		wr.putWithQuote(publicID)
		wr.put(" ")
		wr.putWithQuote(systemID)
	case "system":
		wr.put(" SYSTEM ")
		wr.putWithQuote(systemID)
	}
}

func (wr *writer) writeEntityDecl(n *Node) error {
	wr.put("<!ENTITY ")
	wr.put(n.QName.Local)
	if n.entityPublicID != "" || n.entitySystemID != "" {
		wr.putExternalID(entityKeyword(n), n.entityPublicID, n.entitySystemID)
		if n.entityNotation != "" {
			wr.put(" NDATA ")
			wr.put(n.entityNotation)
		}
	} else {
		wr.put(" ")
		wr.putWithQuote(n.Value.Raw())
	}
	wr.put(">")
	return nil
}

func entityKeyword(n *Node) string {
	if n.entityPublicID != "" {
		return "public"
	}
	return "system"
}

func (wr *writer) writeNotationDecl(n *Node) error {
	wr.put("<!NOTATION ")
	wr.put(n.QName.Local)
	wr.putExternalID(entityKeyword(n), n.entityPublicID, n.entitySystemID)
	wr.put(">")
	return nil
}

func (wr *writer) writeAttlistDecl(n *Node) error {
	wr.put("<!ATTLIST ")
	wr.put(n.QName.Local)
	for _, item := range n.attlistItems {
		wr.put(" ")
		wr.put(item.Name)
		wr.put(" ")
		wr.putAttlistType(item)
		wr.put(" ")
		wr.putAttlistDefault(item)
	}
	wr.put(">")
	return nil
}

func (wr *writer) putAttlistType(item AttlistItem) {
	switch item.Type {
	case "ENUMERATION":
		wr.put("(")
		wr.put(strings.Join(item.Values, "|"))
		wr.put(")")
	case "NOTATION":
		wr.put("NOTATION (")
		wr.put(strings.Join(item.Values, "|"))
		wr.put(")")
	default:
		wr.put(item.Type)
	}
}

func (wr *writer) putAttlistDefault(item AttlistItem) {
	switch item.DefaultKind {
	case "REQUIRED", "IMPLIED":
		wr.put("#" + item.DefaultKind)
	case "FIXED":
		wr.put("#FIXED ")
		wr.putWithQuote(item.DefaultValue)
	default:
		wr.putWithQuote(item.DefaultValue)
	}
}

func (wr *writer) writeElementDecl(n *Node) error {
	wr.put("<!ELEMENT ")
	wr.put(n.QName.Local)
	wr.put(" ")
	wr.putContentSpec(n.elementSpec)
	wr.put(">")
	return nil
}

func (wr *writer) putContentSpec(spec *ElementContentSpec) {
	if spec == nil {
		wr.put("ANY")
		return
	}
	switch spec.Kind {
	case ContentEmpty:
		wr.put("EMPTY")
	case ContentAny:
		wr.put("ANY")
	case ContentMixed:
		if len(spec.Names) == 0 {
			wr.put("(#PCDATA)")
			return
		}
		wr.put("(#PCDATA|")
		wr.put(strings.Join(spec.Names, "|"))
		wr.put(")*")
	case ContentChildren:
		wr.putParticle(spec)
	}
}

func (wr *writer) putParticle(spec *ElementContentSpec) {
	if spec.Operator == 0 {
		wr.put(spec.Name)
		wr.put(multiplicitySuffix(spec.Multiplicity))
		return
	}
	wr.put("(")
	for i, child := range spec.Children {
		if i > 0 {
			wr.put(string(spec.Operator))
		}
		wr.putParticle(child)
	}
	wr.put(")")
	wr.put(multiplicitySuffix(spec.Multiplicity))
}

func multiplicitySuffix(m ElementContentMultiplicity) string {
	switch m {
	case MultiplicityOptional:
		return "?"
	case MultiplicityZeroOrMore:
		return "*"
	case MultiplicityOneOrMore:
		return "+"
	}
	return ""
}
