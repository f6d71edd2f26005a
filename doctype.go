package xmldom

// AttlistItem is one attribute-definition item inside an <!ATTLIST
// element ...> declaration: a name, a type keyword (CDATA, ID, IDREF,
// IDREFS, ENTITY, ENTITIES, NMTOKEN, NMTOKENS, NOTATION, or an
// enumeration), and a default-value clause (#REQUIRED, #IMPLIED, #FIXED
// with a literal, or a bare literal default).
type AttlistItem struct {
	Name string

	// Type is the type keyword, or "NOTATION"/"ENUMERATION" when Values is
	// populated.
	Type   string
	Values []string // enumeration/NOTATION member list, if any

	// DefaultKind is one of "REQUIRED", "IMPLIED", "FIXED", or "" for a
	// bare default literal.
	DefaultKind  string
	DefaultValue string // literal text for FIXED or a bare default
}

// ElementContentSpecKind discriminates the shape of an <!ELEMENT ...>
// content specification.
type ElementContentSpecKind uint8

const (
	ContentEmpty ElementContentSpecKind = iota
	ContentAny
	ContentMixed // "(#PCDATA | a | b)*" or plain "(#PCDATA)"
	ContentChildren
)

// ElementContentMultiplicity is the trailing ?, *, + (or none) applied to
// a content particle.
type ElementContentMultiplicity uint8

const (
	MultiplicityOne ElementContentMultiplicity = iota
	MultiplicityOptional
	MultiplicityZeroOrMore
	MultiplicityOneOrMore
)

// ElementContentSpec is the parsed content model of an <!ELEMENT>
// declaration. For ContentChildren it is a tree of particles connected by
// either sequence (",") or choice ("|") operators, each with its own
// multiplicity; Names holds the mixed-content element name list for
// ContentMixed.
type ElementContentSpec struct {
	Kind ElementContentSpecKind

	// ContentMixed: the allowed element names (empty for plain #PCDATA).
	Names []string

	// ContentChildren: either a leaf element Name, or a group of Children
	// combined with Operator ("," or "|").
	Name     string
	Operator byte // ',' or '|', zero for a leaf
	Children []*ElementContentSpec

	Multiplicity ElementContentMultiplicity
}

// AttlistItems returns n's parsed <!ATTLIST> items. n must be an
// AttributeListDecl node.
func (n *Node) AttlistItems() []AttlistItem { return n.attlistItems }

// ElementContentModel returns n's parsed <!ELEMENT> content spec. n must
// be an ElementDecl node.
func (n *Node) ElementContentModel() *ElementContentSpec { return n.elementSpec }

// DoctypeKeyword returns "public", "system", or "" for a DocumentType
// node's external ID form.
func (n *Node) DoctypeKeyword() string { return n.doctypeKeyword }

// PublicID returns the PUBLIC literal of a DocumentType, Entity, or
// Notation node.
func (n *Node) PublicID() string {
	if n.Kind == EntityNode || n.Kind == NotationNode {
		return n.entityPublicID
	}
	return n.publicID
}

// SystemID returns the SYSTEM literal of a DocumentType node, or, for
// Entity/Notation nodes, their system identifier.
func (n *Node) SystemID() string {
	if n.Kind == EntityNode || n.Kind == NotationNode {
		return n.entitySystemID
	}
	return n.systemOrSubset
}

// EntityPublicID, EntitySystemID, EntityNotationName expose an Entity
// node's external-ID fields.
func (n *Node) EntityPublicID() string     { return n.entityPublicID }
func (n *Node) EntitySystemID() string     { return n.entitySystemID }
func (n *Node) EntityNotationName() string { return n.entityNotation }

// PITarget returns a ProcessingInstruction node's target name.
func (n *Node) PITarget() string { return n.piTarget }
