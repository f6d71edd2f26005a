package xmldom

import "strings"

// NodeType tags a Node's variant. Node-kind inheritance is replaced here
// by a single Node struct carrying every variant's fields, with
// per-variant behavior dispatched on Kind rather than through a type
// hierarchy.
type NodeType uint8

const (
	DocumentNode NodeType = iota + 1
	DeclarationNode
	DocumentTypeNode
	ElementNode
	AttributeNode
	TextNode
	CDataNode
	CommentNode
	ProcessingInstructionNode
	WhitespaceNode
	SignificantWhitespaceNode
	EntityNode
	EntityReferenceNode
	NotationNode
	AttributeListDeclNode
	ElementDeclNode
	DocumentFragmentNode
)

func (k NodeType) String() string {
	switch k {
	case DocumentNode:
		return "Document"
	case DeclarationNode:
		return "Declaration"
	case DocumentTypeNode:
		return "DocumentType"
	case ElementNode:
		return "Element"
	case AttributeNode:
		return "Attribute"
	case TextNode:
		return "Text"
	case CDataNode:
		return "CData"
	case CommentNode:
		return "Comment"
	case ProcessingInstructionNode:
		return "ProcessingInstruction"
	case WhitespaceNode:
		return "Whitespace"
	case SignificantWhitespaceNode:
		return "SignificantWhitespace"
	case EntityNode:
		return "Entity"
	case EntityReferenceNode:
		return "EntityReference"
	case NotationNode:
		return "Notation"
	case AttributeListDeclNode:
		return "AttributeListDecl"
	case ElementDeclNode:
		return "ElementDecl"
	case DocumentFragmentNode:
		return "DocumentFragment"
	}
	return "Unknown"
}

// DOMString mirrors the DOM IDL string type; this implementation stores it
// as a Go UTF-8 string (a documented, pragmatic deviation, same call the
// teacher package makes for its own DOMString).
type DOMString = string

// QName is a qualified name: prefix + local name, with a
// namespace URI resolved either from the reserved xml/xmlns prefixes or
// from the owning document's default URI.
type QName struct {
	Prefix DOMString
	Local  DOMString
	URI    DOMString
}

// FullName reconstructs "prefix:local", or bare "local" when Prefix=="".
func (q QName) FullName() DOMString {
	if q.Prefix == "" {
		return q.Local
	}
	return q.Prefix + ":" + q.Local
}

const (
	xmlNamespaceURI   = "http://www.w3.org/XML/1998/namespace"
	xmlnsNamespaceURI = "http://www.w3.org/2000/xmlns/"
)

// resolveNamespace derives the namespace URI for a name's reserved
// xml/xmlns prefixes, falling back to the document's default URI.
func resolveNamespace(prefix, local, docDefaultURI string) string {
	if prefix == "xmlns" || (prefix == "" && local == "xmlns") {
		return xmlnsNamespaceURI
	}
	if prefix == "xml" {
		return xmlNamespaceURI
	}
	return docDefaultURI
}

func newQName(full string, docDefaultURI string) QName {
	if i := strings.IndexByte(full, ':'); i >= 0 {
		prefix, local := full[:i], full[i+1:]
		return QName{Prefix: prefix, Local: local, URI: resolveNamespace(prefix, local, docDefaultURI)}
	}
	return QName{Local: full, URI: resolveNamespace("", full, docDefaultURI)}
}

// Node is the single concrete representation for every DOM node variant.
// Doubly-linked sibling and attribute lists are rooted at the parent via
// FirstChild/LastChild and FirstAttr/LastAttr respectively.
type Node struct {
	Kind  NodeType
	QName QName
	Value XmlString
	Owner *Document

	Parent                   *Node
	FirstChild, LastChild    *Node
	PrevSibling, NextSibling *Node

	FirstAttr, LastAttr   *Node
	PrevAttr, NextAttr    *Node
	attrOwnerElem         *Node // for Attribute nodes: the element that owns them

	// DocumentType-only fields.
	doctypeKeyword string // "public" | "system" | ""
	publicID       string
	systemOrSubset string

	// Entity/Notation-only fields.
	entityPublicID, entitySystemID, entityNotation string

	// ProcessingInstruction target (kept apart from QName.Local for clarity).
	piTarget string

	// AttributeListDecl/ElementDecl private payloads, opaque to the rest
	// of the tree.
	attlistItems []AttlistItem
	elementSpec  *ElementContentSpec

	childMutation uint64 // incremented on every structural change to children
	attrMutation  uint64 // incremented on every structural change to attributes
}

// NodeName returns the node's qualified name, or a fixed sentinel for
// anonymous kinds.
func (n *Node) NodeName() DOMString {
	switch n.Kind {
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	case TextNode:
		return "#text"
	case CDataNode:
		return "#cdata-section"
	case CommentNode:
		return "#comment"
	case WhitespaceNode, SignificantWhitespaceNode:
		return "#whitespace"
	case DeclarationNode:
		return "xml"
	case ProcessingInstructionNode:
		return n.piTarget
	default:
		return n.QName.FullName()
	}
}

// NodeValue returns the node's stored value, decoded if necessary.
func (n *Node) NodeValue() DOMString {
	v, err := n.Value.Decoded(n.entityTable())
	if err != nil {
		return n.Value.Raw()
	}
	return v
}

func (n *Node) entityTable() *EntityTable {
	if n.Owner != nil {
		return n.Owner.entities
	}
	return nil
}

func (n *Node) ParentNode() *Node       { return n.Parent }
func (n *Node) FirstChildNode() *Node   { return n.FirstChild }
func (n *Node) LastChildNode() *Node    { return n.LastChild }
func (n *Node) PreviousSibling() *Node  { return n.PrevSibling }
func (n *Node) NextSiblingNode() *Node  { return n.NextSibling }
func (n *Node) FirstAttribute() *Node   { return n.FirstAttr }
func (n *Node) LastAttribute() *Node    { return n.LastAttr }
func (n *Node) OwnerDocument() *Document { return n.Owner }

// Level returns the node's depth from the owning Document (the Document
// itself is level 0).
func (n *Node) Level() int {
	level := 0
	for p := n.Parent; p != nil; p = p.Parent {
		level++
	}
	return level
}

func (n *Node) HasChildNodes() bool  { return n.FirstChild != nil }
func (n *Node) HasAttributes() bool  { return n.FirstAttr != nil }

// allowsChildren reports whether n's Kind may ever have children.
func allowsChildren(k NodeType) bool {
	switch k {
	case DocumentNode, DocumentTypeNode, ElementNode, DocumentFragmentNode:
		return true
	}
	return false
}

// allowsAttributes reports whether n's Kind may carry an attribute list.
func allowsAttributes(k NodeType) bool {
	switch k {
	case ElementNode, DeclarationNode:
		return true
	}
	return false
}

// childAllowed reports whether a node of kind child may be appended to a
// parent of kind parent.
func childAllowed(parent, child NodeType) bool {
	switch parent {
	case DocumentNode:
		switch child {
		case DeclarationNode, DocumentTypeNode, ElementNode, CommentNode,
			ProcessingInstructionNode, WhitespaceNode, SignificantWhitespaceNode:
			return true
		}
	case DocumentTypeNode:
		switch child {
		case CommentNode, ProcessingInstructionNode, EntityNode, EntityReferenceNode,
			NotationNode, AttributeListDeclNode, ElementDeclNode, TextNode,
			WhitespaceNode, SignificantWhitespaceNode:
			return true
		}
	case ElementNode:
		switch child {
		case ElementNode, TextNode, CDataNode, CommentNode, ProcessingInstructionNode,
			EntityReferenceNode, WhitespaceNode, SignificantWhitespaceNode:
			return true
		}
	case DocumentFragmentNode:
		switch child {
		case DocumentNode, DeclarationNode, DocumentTypeNode:
			return false
		default:
			return true
		}
	}
	return false
}

// isAncestorOf reports whether n is an ancestor of other, or the same
// node.
func (n *Node) isAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

func (n *Node) bumpChildMutation() {
	n.childMutation++
}

func (n *Node) bumpAttrMutation() {
	n.attrMutation++
}
