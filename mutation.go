package xmldom

// Every mutator in this file either succeeds fully or returns a
// *ParseError with Kind ErrInvalidOp (or ErrNotAllWhitespace for the one
// whitespace-specific check) and leaves the tree unchanged.

// AppendChild appends node as the last child of n, detaching it from any
// previous parent first. If node is a DocumentFragment, its children are
// moved in order instead of the fragment itself.
func (n *Node) AppendChild(node *Node) (*Node, error) {
	return n.InsertChildBefore(node, nil)
}

// InsertChildBefore inserts node immediately before ref (or, when ref is
// nil, appends it) among n's children.
func (n *Node) InsertChildBefore(node, ref *Node) (*Node, error) {
	if node.Kind == DocumentFragmentNode {
		return n.spliceFragment(node, ref, true)
	}
	return n.insertOne(node, ref, true)
}

// InsertChildAfter inserts node immediately after ref among n's children.
func (n *Node) InsertChildAfter(node, ref *Node) (*Node, error) {
	if ref == nil {
		return n.InsertChildBefore(node, n.FirstChild)
	}
	return n.InsertChildBefore(node, ref.NextSibling)
}

func (n *Node) spliceFragment(frag, ref *Node, before bool) (*Node, error) {
	var children []*Node
	for c := frag.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		frag.detachChild(c)
		if _, err := n.insertOne(c, ref, before); err != nil {
			return nil, err
		}
	}
	return frag, nil
}

// insertOne is the core algorithm: validate, detach from old parent,
// relink into n's child list.
func (n *Node) insertOne(node, ref *Node, before bool) (*Node, error) {
	if node == nil {
		return nil, newOpError(ErrInvalidOp, "cannot insert a nil node")
	}
	if !allowsChildren(n.Kind) {
		return nil, newOpError(ErrInvalidOp, "%s nodes cannot have children", n.Kind)
	}
	if !childAllowed(n.Kind, node.Kind) {
		return nil, newOpError(ErrInvalidOp, "%s is not a permitted child of %s", node.Kind, n.Kind)
	}
	if node.isAncestorOf(n) || node == n {
		return nil, newOpError(ErrInvalidOp, "cannot insert a node as a descendant of itself")
	}
	if node.Owner != nil && n.Owner != nil && node.Owner != n.Owner {
		if n.Owner.isLoading && !n.Owner.hasOption(OptValidate) {
			// relaxed during load.I, unless validate requires strictness
		} else {
			return nil, newOpError(ErrInvalidOp, "cannot append a node created by a different document outside loading")
		}
	}
	if ref != nil && ref.Parent != n {
		return nil, newOpError(ErrInvalidOp, "reference node is not a child of this node")
	}
	if err := enforceSingletonLimits(n, node); err != nil {
		return nil, err
	}

	if node.Parent != nil {
		node.Parent.detachChild(node)
	}
	node.Owner = n.Owner
	node.Parent = n

	if ref == nil {
		node.PrevSibling = n.LastChild
		node.NextSibling = nil
		if n.LastChild != nil {
			n.LastChild.NextSibling = node
		}
		n.LastChild = node
		if n.FirstChild == nil {
			n.FirstChild = node
		}
	} else {
		node.NextSibling = ref
		node.PrevSibling = ref.PrevSibling
		if ref.PrevSibling != nil {
			ref.PrevSibling.NextSibling = node
		} else {
			n.FirstChild = node
		}
		ref.PrevSibling = node
	}
	n.bumpChildMutation()
	n.adoptSingleton(node)
	return node, nil
}

// enforceSingletonLimits enforces that a Document has at most one
// Declaration, DocumentType, and Element child.
func enforceSingletonLimits(parent, child *Node) error {
	if parent.Kind != DocumentNode {
		return nil
	}
	switch child.Kind {
	case DeclarationNode:
		if parent.Owner != nil && parent.Owner.declaration != nil {
			return newOpError(ErrInvalidOp, "document already has a Declaration")
		}
	case DocumentTypeNode:
		if parent.Owner != nil && parent.Owner.doctype != nil {
			return newOpError(ErrInvalidOp, "document already has a DocumentType")
		}
	case ElementNode:
		if parent.Owner != nil && parent.Owner.documentElement != nil {
			return newOpError(ErrInvalidOp, "document already has a root Element")
		}
	}
	return nil
}

func (d *Document) adoptSingletonFields(child *Node) {
	switch child.Kind {
	case DeclarationNode:
		d.declaration = child
	case DocumentTypeNode:
		d.doctype = child
	case ElementNode:
		if d.documentElement == nil {
			d.documentElement = child
		}
	}
}

func (n *Node) adoptSingleton(child *Node) {
	if n.Kind == DocumentNode && n.Owner != nil {
		n.Owner.adoptSingletonFields(child)
	}
}

// detachChild unlinks child from n's child list without touching any
// other parent (internal helper; child must currently be n's child).
func (n *Node) detachChild(child *Node) {
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	} else {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	} else {
		n.LastChild = child.PrevSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
	n.bumpChildMutation()
	if n.Kind == DocumentNode && n.Owner != nil {
		switch child.Kind {
		case DeclarationNode:
			n.Owner.declaration = nil
		case DocumentTypeNode:
			n.Owner.doctype = nil
		case ElementNode:
			if n.Owner.documentElement == child {
				n.Owner.documentElement = nil
			}
		}
	}
}

// RemoveChild detaches child from n. child must currently be a child of n.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.Parent != n {
		return nil, newOpError(ErrInvalidOp, "node is not a child of this node")
	}
	n.detachChild(child)
	return child, nil
}

// ReplaceChild removes oldChild and inserts newChild in its former
// position.
func (n *Node) ReplaceChild(newChild, oldChild *Node) (*Node, error) {
	if oldChild == nil || oldChild.Parent != n {
		return nil, newOpError(ErrInvalidOp, "old node is not a child of this node")
	}
	ref := oldChild.NextSibling
	if _, err := n.RemoveChild(oldChild); err != nil {
		return nil, err
	}
	if _, err := n.InsertChildBefore(newChild, ref); err != nil {
		// best-effort: re-attach the old child since the op must leave the
		// tree unchanged on failure
		n.InsertChildBefore(oldChild, ref)
		return nil, err
	}
	return oldChild, nil
}

// RemoveChildNodes removes every child of n. When deep is true it also
// recursively clears the children of any removed element-bearing child,
// matching the "remove-all" helper the element-tree factories expose.
func (n *Node) RemoveChildNodes(deep bool) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if deep {
			c.RemoveChildNodes(true)
		}
		n.detachChild(c)
		c = next
	}
}

// RemoveAll detaches every child and every attribute of n.
func (n *Node) RemoveAll() {
	n.RemoveChildNodes(false)
	n.RemoveAttributes()
}

// ---------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------

// AppendAttributeNode appends attr to n's attribute list, detaching it
// from any previous owner first. Unlike AppendAttributeByName this does
// not deduplicate by name; callers that want "create-or-get" semantics
// should use AppendAttributeByName.
func (n *Node) AppendAttributeNode(attr *Node) (*Node, error) {
	if !allowsAttributes(n.Kind) {
		return nil, newOpError(ErrInvalidOp, "%s nodes cannot have attributes", n.Kind)
	}
	if attr == nil || attr.Kind != AttributeNode {
		return nil, newOpError(ErrInvalidOp, "node is not an Attribute")
	}
	if attr.Parent != nil {
		attr.Parent.detachChild(attr)
	}
	if attr.attrOwnerElem != nil {
		attr.attrOwnerElem.detachAttr(attr)
	}
	attr.Owner = n.Owner
	attr.attrOwnerElem = n
	attr.PrevAttr = n.LastAttr
	attr.NextAttr = nil
	if n.LastAttr != nil {
		n.LastAttr.NextAttr = attr
	}
	n.LastAttr = attr
	if n.FirstAttr == nil {
		n.FirstAttr = attr
	}
	n.bumpAttrMutation()
	return attr, nil
}

// AppendAttributeByName ensures n has an attribute named name: returns the
// existing one if present, otherwise creates and appends a new empty
// attribute.
func (n *Node) AppendAttributeByName(name string) (*Node, error) {
	if existing := n.FindAttribute(name); existing != nil {
		return existing, nil
	}
	if n.Owner == nil {
		return nil, newOpError(ErrInvalidOp, "node has no owner document")
	}
	attr, err := n.Owner.CreateAttribute(name)
	if err != nil {
		return nil, err
	}
	return n.AppendAttributeNode(attr)
}

func (n *Node) detachAttr(attr *Node) {
	if attr.PrevAttr != nil {
		attr.PrevAttr.NextAttr = attr.NextAttr
	} else {
		n.FirstAttr = attr.NextAttr
	}
	if attr.NextAttr != nil {
		attr.NextAttr.PrevAttr = attr.PrevAttr
	} else {
		n.LastAttr = attr.PrevAttr
	}
	attr.attrOwnerElem = nil
	attr.PrevAttr = nil
	attr.NextAttr = nil
	n.bumpAttrMutation()
}

// RemoveAttribute removes the attribute named name, if present.
func (n *Node) RemoveAttribute(name string) (*Node, error) {
	attr := n.FindAttribute(name)
	if attr == nil {
		return nil, newOpError(ErrInvalidOp, "no attribute named %q", name)
	}
	n.detachAttr(attr)
	return attr, nil
}

// RemoveAttributeNode removes attr, which must currently belong to n.
func (n *Node) RemoveAttributeNode(attr *Node) (*Node, error) {
	if attr == nil || attr.attrOwnerElem != n {
		return nil, newOpError(ErrInvalidOp, "attribute does not belong to this node")
	}
	n.detachAttr(attr)
	return attr, nil
}

// RemoveAttributes detaches every attribute of n.
func (n *Node) RemoveAttributes() {
	for a := n.FirstAttr; a != nil; {
		next := a.NextAttr
		n.detachAttr(a)
		a = next
	}
}

// SetValue validates (for Whitespace/SignificantWhitespace) and sets n's
// stored value.
func (n *Node) SetValue(value string) error {
	if (n.Kind == WhitespaceNode || n.Kind == SignificantWhitespaceNode) && !isAllWhitespace(value) {
		return newOpError(ErrNotAllWhitespace, "value for a (significant) whitespace node must be all XML whitespace")
	}
	n.Value = newUncheckedString(value)
	return nil
}
