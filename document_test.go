package xmldom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmldomgo/xmldom"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	const src = `<?xml version="1.0" encoding="UTF-8"?><root><child attr="v">text</child></root>`
	doc, err := xmldom.LoadDocument(src)
	require.NoError(t, err)

	require.NotNil(t, doc.Declaration())
	assert.Equal(t, "1.0", doc.Declaration().Version())
	assert.Equal(t, "UTF-8", doc.Declaration().Encoding())

	require.NotNil(t, doc.DocumentElement())
	assert.Equal(t, "root", doc.DocumentElement().NodeName())

	child := doc.DocumentElement().FindElement("child")
	require.NotNil(t, child)
	assert.Equal(t, "v", child.FindAttribute("attr").NodeValue())
	assert.Equal(t, "text", child.FirstChild.NodeValue())

	out := doc.String()
	assert.Equal(t, src, out)
}

func TestLoadSaveRoundTripPretty(t *testing.T) {
	const src = `<root><a><b>x</b></a></root>`
	doc, err := xmldom.LoadDocument(src)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, doc.Save(&b, true))
	pretty := b.String()
	assert.Contains(t, pretty, "\n    <b>x</b>")

	reparsed, err := xmldom.LoadDocument(pretty)
	require.NoError(t, err)
	assert.Equal(t, "x", reparsed.DocumentElement().FindElement("a").FindElement("b").FirstChild.NodeValue())
}

func TestEntityEscapeRoundTrip(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root>a &lt; b &amp; c</root>`)
	require.NoError(t, err)
	assert.Equal(t, "a < b & c", doc.DocumentElement().FirstChild.NodeValue())
	assert.Contains(t, doc.String(), "&lt;")
	assert.Contains(t, doc.String(), "&amp;")
}

func TestMismatchedEndTagRejected(t *testing.T) {
	_, err := xmldom.LoadDocument(`<root><a></b></root>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrMismatchedEndTag})
}

func TestDuplicateAttributeRejectedUnderValidate(t *testing.T) {
	doc := xmldom.NewDocument(xmldom.WithValidate())
	err := doc.Load(`<root a="1" a="2"/>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrAttributeDuplicate})
}

func TestDuplicateAttributeAllowedWithoutValidate(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root a="1" a="2"/>`)
	require.NoError(t, err)
	assert.NotNil(t, doc.DocumentElement())
}

func TestCDATAContainingCloseMarkerRejected(t *testing.T) {
	doc := xmldom.NewDocument()
	_, err := doc.CreateCDATASection("foo]]>bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrInvalidOp})
}

func TestStandaloneMustBeYesOrNo(t *testing.T) {
	doc := xmldom.NewDocument()
	_, err := doc.CreateDeclaration("1.0", "", "maybe")
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrInvalidStandalone})

	decl, err := doc.CreateDeclaration("1.0", "", "yes")
	require.NoError(t, err)
	assert.Equal(t, "yes", decl.Standalone())
}

func TestDocumentTypeInternalSubsetRoundTrip(t *testing.T) {
	const src = `<!DOCTYPE note [` +
		`<!ELEMENT note (to,from)>` +
		`<!ATTLIST note id ID #REQUIRED>` +
		`<!ENTITY writer "Jane">` +
		`]><note id="n1">text</note>`
	doc, err := xmldom.LoadDocument(src)
	require.NoError(t, err)
	require.NotNil(t, doc.DocumentType())

	dt := doc.DocumentType()
	var sawAttlist, sawElement, sawEntity bool
	for c := dt.FirstChildNode(); c != nil; c = c.NextSiblingNode() {
		switch c.Kind {
		case xmldom.AttributeListDeclNode:
			sawAttlist = true
			require.Len(t, c.AttlistItems(), 1)
			assert.Equal(t, "id", c.AttlistItems()[0].Name)
			assert.Equal(t, "REQUIRED", c.AttlistItems()[0].DefaultKind)
		case xmldom.ElementDeclNode:
			sawElement = true
			assert.Equal(t, xmldom.ContentChildren, c.ElementContentModel().Kind)
		case xmldom.EntityNode:
			sawEntity = true
			assert.Equal(t, "writer", c.NodeName())
		}
	}
	assert.True(t, sawAttlist)
	assert.True(t, sawElement)
	assert.True(t, sawEntity)
}

func TestSingletonRootElementEnforced(t *testing.T) {
	doc := xmldom.NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	_, err = doc.Root().AppendChild(root)
	require.NoError(t, err)

	other, err := doc.CreateElement("other")
	require.NoError(t, err)
	_, err = doc.Root().AppendChild(other)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrInvalidOp})
}

func TestGetElementByIdAndTagName(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root><a id="x1"/><b><a id="x2"/></b></root>`)
	require.NoError(t, err)

	found := doc.DocumentElement().GetElementById("x2")
	require.NotNil(t, found)
	assert.Equal(t, "a", found.NodeName())

	it := doc.DocumentElement().GetElementsByTagName("a")
	assert.EqualValues(t, 2, it.Length())
}
