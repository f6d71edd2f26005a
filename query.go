package xmldom

import "strings"

// FindAttribute returns n's attribute named name, or nil. Comparison uses
// the owning document's name comparator when n has one.
func (n *Node) FindAttribute(name string) *Node {
	eq := defaultNameEqual
	if n.Owner != nil && n.Owner.nameEqual != nil {
		eq = n.Owner.nameEqual
	}
	for a := n.FirstAttr; a != nil; a = a.NextAttr {
		if eq(a.QName.FullName(), name) {
			return a
		}
	}
	return nil
}

// FindAttributeNS returns n's attribute matching local name and namespace
// URI, or nil.
func (n *Node) FindAttributeNS(local, uri string) *Node {
	for a := n.FirstAttr; a != nil; a = a.NextAttr {
		if a.QName.Local == local && a.QName.URI == uri {
			return a
		}
	}
	return nil
}

// FindAttributeByID returns n's "id" attribute using a case-insensitive
// name match, the common convention for ID-typed attributes absent a DTD
// ATTLIST declaration.
func (n *Node) FindAttributeByID() *Node {
	for a := n.FirstAttr; a != nil; a = a.NextAttr {
		if strings.EqualFold(a.QName.FullName(), "id") {
			return a
		}
	}
	return nil
}

func defaultNameEqual(a, b string) bool { return a == b }

// FindElement returns n's first child Element named name, or nil.
func (n *Node) FindElement(name string) *Node {
	eq := defaultNameEqual
	if n.Owner != nil && n.Owner.nameEqual != nil {
		eq = n.Owner.nameEqual
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode && eq(c.QName.FullName(), name) {
			return c
		}
	}
	return nil
}

// FindElementNS returns n's first child Element matching local name and
// namespace URI, or nil.
func (n *Node) FindElementNS(local, uri string) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == ElementNode && c.QName.Local == local && c.QName.URI == uri {
			return c
		}
	}
	return nil
}

// GetElementById searches the whole subtree rooted at n (inclusive) for an
// Element whose id-attribute value equals id, depth-first.
func (n *Node) GetElementById(id string) *Node {
	if n.Kind == ElementNode {
		if a := n.FindAttributeByID(); a != nil && a.NodeValue() == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := c.GetElementById(id); found != nil {
			return found
		}
	}
	return nil
}

// GetAttributes returns an Iterator over n's attribute list.
func (n *Node) GetAttributes() *Iterator {
	return newAttributeIterator(n)
}

// GetChildNodes returns an Iterator over n's children; deep selects
// preorder subtree traversal instead of direct children only.
func (n *Node) GetChildNodes(deep bool) *Iterator {
	return newChildIterator(n, deep)
}

// GetElements returns a deep iterator over n's descendant Elements only.
func (n *Node) GetElements() *Iterator {
	it := newChildIterator(n, true)
	return it.WithFilter(func(_ *Iterator, c *Node) bool { return c.Kind == ElementNode })
}

// GetElementsByTagName returns a deep iterator over descendant Elements
// whose qualified name matches name, or all Elements when name is "*".
func (n *Node) GetElementsByTagName(name string) *Iterator {
	eq := defaultNameEqual
	if n.Owner != nil && n.Owner.nameEqual != nil {
		eq = n.Owner.nameEqual
	}
	it := newChildIterator(n, true)
	return it.WithFilter(func(_ *Iterator, c *Node) bool {
		return c.Kind == ElementNode && (name == "*" || eq(c.QName.FullName(), name))
	})
}

// GetElementsByTagNameNS is the namespace-aware form of GetElementsByTagName.
// Either local or uri (or both) may be "*" to match any value.
func (n *Node) GetElementsByTagNameNS(local, uri string) *Iterator {
	it := newChildIterator(n, true)
	return it.WithFilter(func(_ *Iterator, c *Node) bool {
		if c.Kind != ElementNode {
			return false
		}
		localOK := local == "*" || c.QName.Local == local
		uriOK := uri == "*" || c.QName.URI == uri
		return localOK && uriOK
	})
}
