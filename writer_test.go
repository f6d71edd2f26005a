package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmldomgo/xmldom"
)

func TestSelfClosingElementWithNoChildren(t *testing.T) {
	doc := xmldom.NewDocument()
	elem, err := doc.CreateElement("empty")
	require.NoError(t, err)
	_, err = doc.Root().AppendChild(elem)
	require.NoError(t, err)
	assert.Equal(t, "<empty/>", doc.String())
}

func TestAttributeValueSpecialsAreAlwaysEntityEscaped(t *testing.T) {
	doc := xmldom.NewDocument()
	elem, err := doc.CreateElement("e")
	require.NoError(t, err)
	_, err = doc.Root().AppendChild(elem)
	require.NoError(t, err)
	attr, err := elem.AppendAttributeByName("a")
	require.NoError(t, err)
	require.NoError(t, attr.SetValue(`has "quotes" and 'apostrophes'`))
	out := doc.String()
	assert.Contains(t, out, `a="has &quot;quotes&quot; and &apos;apostrophes&apos;"`)
}

func TestDoctypeLiteralQuotingFallsBackToSingleQuote(t *testing.T) {
	const src = `<!DOCTYPE r [<!ENTITY e 'has "double quotes" inside'>]><r/>`
	doc, err := xmldom.LoadDocument(src)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), `'has "double quotes" inside'`)
}

func TestCommentAndProcessingInstructionRoundTrip(t *testing.T) {
	const src = `<?xml version="1.0"?><!-- a comment --><?target data?><root/>`
	doc, err := xmldom.LoadDocument(src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.String())
}

func TestElementDeclAndAttlistSerialization(t *testing.T) {
	const src = `<!DOCTYPE r [<!ELEMENT r (a,b)*><!ATTLIST r id ID #REQUIRED>]><r id="1"><a/><b/></r>`
	doc, err := xmldom.LoadDocument(src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.String())
}
