package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmldomgo/xmldom"
)

func newEl(t *testing.T, doc *xmldom.Document, name string) *xmldom.Node {
	t.Helper()
	n, err := doc.CreateElement(name)
	require.NoError(t, err)
	return n
}

func TestAppendAndRemoveChild(t *testing.T) {
	doc := xmldom.NewDocument()
	root := newEl(t, doc, "root")
	_, err := doc.Root().AppendChild(root)
	require.NoError(t, err)

	a := newEl(t, doc, "a")
	b := newEl(t, doc, "b")
	_, err = root.AppendChild(a)
	require.NoError(t, err)
	_, err = root.AppendChild(b)
	require.NoError(t, err)

	assert.Same(t, a, root.FirstChildNode())
	assert.Same(t, b, root.LastChildNode())
	assert.Same(t, root, a.ParentNode())

	_, err = root.RemoveChild(a)
	require.NoError(t, err)
	assert.Same(t, b, root.FirstChildNode())
	assert.Nil(t, a.ParentNode())
}

func TestInsertChildBeforeAndAfter(t *testing.T) {
	doc := xmldom.NewDocument()
	root := newEl(t, doc, "root")
	_, _ = doc.Root().AppendChild(root)

	a := newEl(t, doc, "a")
	c := newEl(t, doc, "c")
	_, _ = root.AppendChild(a)
	_, _ = root.AppendChild(c)

	b := newEl(t, doc, "b")
	_, err := root.InsertChildBefore(b, c)
	require.NoError(t, err)

	var order []string
	for n := root.FirstChildNode(); n != nil; n = n.NextSiblingNode() {
		order = append(order, n.NodeName())
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)

	d := newEl(t, doc, "d")
	_, err = root.InsertChildAfter(d, c)
	require.NoError(t, err)
	assert.Same(t, d, root.LastChildNode())
}

func TestReplaceChild(t *testing.T) {
	doc := xmldom.NewDocument()
	root := newEl(t, doc, "root")
	_, _ = doc.Root().AppendChild(root)

	a := newEl(t, doc, "a")
	_, _ = root.AppendChild(a)

	b := newEl(t, doc, "b")
	old, err := root.ReplaceChild(b, a)
	require.NoError(t, err)
	assert.Same(t, a, old)
	assert.Same(t, b, root.FirstChildNode())
	assert.Nil(t, a.ParentNode())
}

func TestInsertSelfAsDescendantRejected(t *testing.T) {
	doc := xmldom.NewDocument()
	root := newEl(t, doc, "root")
	_, _ = doc.Root().AppendChild(root)

	child := newEl(t, doc, "child")
	_, _ = root.AppendChild(child)

	_, err := child.AppendChild(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrInvalidOp})
}

func TestCrossDocumentInsertionRejectedOutsideLoad(t *testing.T) {
	docA := xmldom.NewDocument()
	docB := xmldom.NewDocument()

	rootA := newEl(t, docA, "rootA")
	_, _ = docA.Root().AppendChild(rootA)

	child := newEl(t, docB, "child")
	_, err := rootA.AppendChild(child)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrInvalidOp})
}

func TestAttributeAppendAndRemove(t *testing.T) {
	doc := xmldom.NewDocument()
	elem := newEl(t, doc, "elem")
	_, _ = doc.Root().AppendChild(elem)

	attr, err := elem.AppendAttributeByName("class")
	require.NoError(t, err)
	require.NoError(t, attr.SetValue("box"))

	again, err := elem.AppendAttributeByName("class")
	require.NoError(t, err)
	assert.Same(t, attr, again, "AppendAttributeByName should return the existing attribute")

	assert.Equal(t, "box", elem.FindAttribute("class").NodeValue())

	_, err = elem.RemoveAttribute("class")
	require.NoError(t, err)
	assert.Nil(t, elem.FindAttribute("class"))
}

func TestSetValueRejectsNonWhitespaceForWhitespaceNodes(t *testing.T) {
	doc := xmldom.NewDocument()
	ws, err := doc.CreateWhitespace("  \t\n")
	require.NoError(t, err)
	err = ws.SetValue("not all whitespace")
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrNotAllWhitespace})
}

func TestRemoveAllDetachesChildrenAndAttributes(t *testing.T) {
	doc := xmldom.NewDocument()
	elem := newEl(t, doc, "elem")
	_, _ = doc.Root().AppendChild(elem)
	_, _ = elem.AppendAttributeByName("a")
	child := newEl(t, doc, "child")
	_, _ = elem.AppendChild(child)

	elem.RemoveAll()
	assert.False(t, elem.HasChildNodes())
	assert.False(t, elem.HasAttributes())
}
