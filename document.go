package xmldom

import (
	"io"
	"os"
	"strings"
)

// Document is the root node and factory for every node variant. It owns
// the buffer pool, symbol table, entity table, parse options, default
// namespace URI, and name comparator.
type Document struct {
	root *Node

	entities  *EntityTable
	symbols   *symbolTable
	buffers   *bufferPool
	options   ParseOption
	sax       *SAXHandler
	defaultURI string
	nameEqual func(a, b string) bool

	isLoading bool

	declaration     *Node
	doctype         *Node
	documentElement *Node
}

// NewDocument creates an empty Document with the given options applied.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		entities:  newEntityTable(),
		buffers:   newBufferPool(),
		nameEqual: func(a, b string) bool { return a == b },
	}
	d.root = &Node{Kind: DocumentNode, Owner: d}
	for _, opt := range opts {
		opt(d)
	}
	if d.symbols == nil {
		d.symbols = newSymbolTable(d.hasOption(OptUseSymbolTable))
	}
	return d
}

// Root returns the Document's own node in the tree (Kind == DocumentNode).
func (d *Document) Root() *Node { return d.root }

// Declaration returns the document's Declaration child, or nil.
func (d *Document) Declaration() *Node { return d.declaration }

// DocumentType returns the document's DOCTYPE child, or nil.
func (d *Document) DocumentType() *Node { return d.doctype }

// DocumentElement returns the document's single root Element child, or
// nil.
func (d *Document) DocumentElement() *Node { return d.documentElement }

func (d *Document) intern(s string) string {
	if d.symbols == nil {
		return s
	}
	return d.symbols.Intern(s)
}

// ---------------------------------------------------------------------
// Factory methods
// ---------------------------------------------------------------------

func (d *Document) newNode(kind NodeType) *Node {
	return &Node{Kind: kind, Owner: d}
}

// CreateElement creates a detached Element node. name may be qualified
// ("prefix:local"); validated against the XML Name production when the
// document has OptValidate set.
func (d *Document) CreateElement(name string) (*Node, error) {
	if d.hasOption(OptValidate) && !isValidName(name) {
		return nil, newOpError(ErrInvalidName, "invalid element name %q", name)
	}
	n := d.newNode(ElementNode)
	n.QName = newQName(d.intern(name), d.defaultURI)
	return n, nil
}

// CreateAttribute creates a detached Attribute node owned by d but not yet
// attached to any element.
func (d *Document) CreateAttribute(name string) (*Node, error) {
	if d.hasOption(OptValidate) && !isValidName(name) {
		return nil, newOpError(ErrInvalidName, "invalid attribute name %q", name)
	}
	n := d.newNode(AttributeNode)
	n.QName = newQName(d.intern(name), d.defaultURI)
	return n, nil
}

// CreateTextNode creates a Text node holding data.
func (d *Document) CreateTextNode(data string) *Node {
	n := d.newNode(TextNode)
	n.Value = newDecodedString(data)
	return n
}

// CreateCDATASection creates a CData node. Per Open Question Q1, content
// containing "]]>" is rejected at construction.
func (d *Document) CreateCDATASection(data string) (*Node, error) {
	if strings.Contains(data, "]]>") {
		return nil, newOpError(ErrInvalidOp, "CDATA content may not contain ']]>'")
	}
	n := d.newNode(CDataNode)
	n.Value = newRawString(data)
	return n, nil
}

// CreateComment creates a Comment node.
func (d *Document) CreateComment(data string) (*Node, error) {
	if strings.Contains(data, "--") {
		return nil, newOpError(ErrInvalidOp, "comment content may not contain '--'")
	}
	n := d.newNode(CommentNode)
	n.Value = newDecodedString(data)
	return n, nil
}

// CreateProcessingInstruction creates a PI node with the given target and
// data.
func (d *Document) CreateProcessingInstruction(target, data string) (*Node, error) {
	if d.hasOption(OptValidate) && !isValidName(target) {
		return nil, newOpError(ErrInvalidName, "invalid processing instruction target %q", target)
	}
	n := d.newNode(ProcessingInstructionNode)
	n.piTarget = d.intern(target)
	n.Value = newDecodedString(data)
	return n, nil
}

// CreateWhitespace creates a (non-significant) Whitespace node.
func (d *Document) CreateWhitespace(data string) (*Node, error) {
	if !isAllWhitespace(data) {
		return nil, newOpError(ErrNotAllWhitespace, "value is not all XML whitespace")
	}
	n := d.newNode(WhitespaceNode)
	n.Value = newRawString(data)
	return n, nil
}

// CreateSignificantWhitespace creates a SignificantWhitespace node.
func (d *Document) CreateSignificantWhitespace(data string) (*Node, error) {
	if !isAllWhitespace(data) {
		return nil, newOpError(ErrNotAllWhitespace, "value is not all XML whitespace")
	}
	n := d.newNode(SignificantWhitespaceNode)
	n.Value = newRawString(data)
	return n, nil
}

// CreateEntityReference creates an EntityReference node for &name;.
func (d *Document) CreateEntityReference(name string) *Node {
	n := d.newNode(EntityReferenceNode)
	n.QName.Local = d.intern(name)
	return n
}

// CreateEntity creates an Entity declaration node (from a DOCTYPE internal
// subset <!ENTITY name "replacement"> or external form).
func (d *Document) CreateEntity(name, publicID, systemID, notation string) *Node {
	n := d.newNode(EntityNode)
	n.QName.Local = d.intern(name)
	n.entityPublicID = publicID
	n.entitySystemID = systemID
	n.entityNotation = notation
	return n
}

// CreateNotation creates a Notation declaration node.
func (d *Document) CreateNotation(name, publicID, systemID string) *Node {
	n := d.newNode(NotationNode)
	n.QName.Local = d.intern(name)
	n.entityPublicID = publicID
	n.entitySystemID = systemID
	return n
}

// CreateDeclaration creates an XML Declaration node. version and encoding
// are stored as its "version"/"encoding" attributes and standalone as
// "standalone", matching the DOM's modeling of pseudo-attributes as a
// regular attribute list.
func (d *Document) CreateDeclaration(version, encoding, standalone string) (*Node, error) {
	if version != "" && !isVersionString(version) {
		return nil, newOpError(ErrInvalidVersion, "invalid XML version literal %q", version)
	}
	if standalone != "" && standalone != "yes" && standalone != "no" {
		// Open Question Q3: reject anything other than yes/no (not the
		// teacher-observed `||` bug's effective always-true condition).
		return nil, newOpError(ErrInvalidStandalone, "standalone must be 'yes' or 'no', got %q", standalone)
	}
	n := d.newNode(DeclarationNode)
	if version != "" {
		a, _ := d.CreateAttribute("version")
		a.Value = newRawString(version)
		n.AppendAttributeNode(a)
	}
	if encoding != "" {
		a, _ := d.CreateAttribute("encoding")
		a.Value = newRawString(encoding)
		n.AppendAttributeNode(a)
	}
	if standalone != "" {
		a, _ := d.CreateAttribute("standalone")
		a.Value = newRawString(standalone)
		n.AppendAttributeNode(a)
	}
	return n, nil
}

// Version, Encoding, Standalone read back a Declaration's pseudo-attributes.
func (n *Node) Version() string {
	if a := n.FindAttribute("version"); a != nil {
		return a.NodeValue()
	}
	return ""
}
func (n *Node) Encoding() string {
	if a := n.FindAttribute("encoding"); a != nil {
		return a.NodeValue()
	}
	return ""
}
func (n *Node) Standalone() string {
	if a := n.FindAttribute("standalone"); a != nil {
		return a.NodeValue()
	}
	return ""
}

func isVersionString(s string) bool {
	if len(s) < 3 {
		return false
	}
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if !isDigit(r) {
				return false
			}
		}
	}
	return true
}

// CreateDocumentType creates a DOCTYPE node. keyword is
// "public", "system", or "" for no external ID; systemLiteral is the
// system literal (or, absent an external ID, unused here — the internal
// subset is built by appending children, not stored as a string).
func (d *Document) CreateDocumentType(name, keyword, publicID, systemLiteral string) *Node {
	n := d.newNode(DocumentTypeNode)
	n.QName.Local = d.intern(name)
	n.doctypeKeyword = keyword
	n.publicID = publicID
	n.systemOrSubset = systemLiteral
	return n
}

// CreateAttributeListDecl creates an <!ATTLIST name item...> node.
func (d *Document) CreateAttributeListDecl(elementName string, items []AttlistItem) *Node {
	n := d.newNode(AttributeListDeclNode)
	n.QName.Local = d.intern(elementName)
	n.attlistItems = items
	return n
}

// CreateElementDecl creates an <!ELEMENT name spec> node.
func (d *Document) CreateElementDecl(name string, spec *ElementContentSpec) *Node {
	n := d.newNode(ElementDeclNode)
	n.QName.Local = d.intern(name)
	n.elementSpec = spec
	return n
}

// CreateDocumentFragment creates an empty DocumentFragment node.
func (d *Document) CreateDocumentFragment() *Node {
	return d.newNode(DocumentFragmentNode)
}

// ---------------------------------------------------------------------
// Load / Save entry points
// ---------------------------------------------------------------------

// Load parses text into this Document's tree. Load may only be called
// once per Document.
func (d *Document) Load(text string) error {
	return d.LoadReader(strings.NewReader(text))
}

// LoadReader parses XML from r into this Document's tree. r is sniffed
// for a byte-order mark and transcoded to UTF-8 before parsing.
func (d *Document) LoadReader(r io.Reader) error {
	tr, err := NewTranscodingReader(r)
	if err != nil {
		return err
	}
	d.isLoading = true
	defer func() { d.isLoading = false }()
	p := newParser(d, newReader(tr))
	return p.parseDocument()
}

// LoadFromFile reads and parses the file at path.
func (d *Document) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return d.LoadReader(f)
}

// LoadDocument is the pseudo-constructor equivalent of "(new
// Document).Load(text)".
func LoadDocument(text string, opts ...Option) (*Document, error) {
	d := NewDocument(opts...)
	if err := d.Load(text); err != nil {
		return nil, err
	}
	return d, nil
}

// SaveToFile serializes the document to path, pretty-printing when pretty
// is true.
func (d *Document) SaveToFile(path string, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := newWriter(f, pretty)
	return w.WriteDocument(d)
}

// Save serializes the document to w.
func (d *Document) Save(w io.Writer, pretty bool) error {
	return newWriter(w, pretty).WriteDocument(d)
}

// String serializes the document (pretty=false) and returns the result,
// mainly useful for tests and debugging.
func (d *Document) String() string {
	var b strings.Builder
	_ = d.Save(&b, false)
	return b.String()
}
