package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmldomgo/xmldom"
)

func TestChildIteratorDeepVisitsEveryDescendant(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a><b/><c/></a><d/></root>`)
	require.NoError(t, err)

	it := doc.DocumentElement().GetChildNodes(true)
	var names []string
	for !it.Empty() {
		names = append(names, it.PopFront().NodeName())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestChildIteratorShallowOnlyDirectChildren(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a><b/></a><c/></root>`)
	require.NoError(t, err)

	it := doc.DocumentElement().GetChildNodes(false)
	assert.EqualValues(t, 2, it.Length())
}

func TestAttributeIterator(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root a="1" b="2"/>`)
	require.NoError(t, err)

	it := doc.DocumentElement().GetAttributes()
	assert.EqualValues(t, 2, it.Length())
	first := it.PopFront()
	assert.Equal(t, "a", first.NodeName())
}

func TestIteratorListChangedDetection(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a/><b/></root>`)
	require.NoError(t, err)

	root := doc.DocumentElement()
	it := root.GetChildNodes(false)

	extra, err := doc.CreateElement("c")
	require.NoError(t, err)
	_, err = root.AppendChild(extra)
	require.NoError(t, err)

	_, popErr := it.PopFrontChecked()
	require.Error(t, popErr)
	assert.ErrorIs(t, popErr, &xmldom.ParseError{Kind: xmldom.ErrListChanged})
}

func TestIteratorNoFalsePositiveWithoutMutation(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a/><b/></root>`)
	require.NoError(t, err)

	it := doc.DocumentElement().GetChildNodes(false)
	_, popErr := it.PopFrontChecked()
	require.NoError(t, popErr)
}

func TestGetElementsByTagNameWildcard(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a/><b><a/></b></root>`)
	require.NoError(t, err)

	all := doc.DocumentElement().GetElementsByTagName("*")
	assert.EqualValues(t, 3, all.Length())
}

func TestLengthReflectsRemainingElementsAfterPopFront(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a/><b/><c/></root>`)
	require.NoError(t, err)

	it := doc.DocumentElement().GetChildNodes(false)
	assert.EqualValues(t, 3, it.Length())
	it.PopFront()
	assert.EqualValues(t, 2, it.Length())
	it.PopFront()
	assert.EqualValues(t, 1, it.Length())
	it.PopFront()
	assert.EqualValues(t, 0, it.Length())
}

func TestIteratorRemoveAll(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a/><b/><c/></root>`)
	require.NoError(t, err)

	root := doc.DocumentElement()
	root.GetElements().RemoveAll()
	assert.False(t, root.HasChildNodes())
}
