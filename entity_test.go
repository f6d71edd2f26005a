package xmldom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmldomgo/xmldom"
)

func TestPredefinedEntityRoundTrip(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root>&lt;&gt;&amp;&apos;&quot;</root>`)
	require.NoError(t, err)
	assert.Equal(t, `<>&'"`, doc.DocumentElement().FirstChild.NodeValue())
}

func TestNumericCharacterReferences(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<root>&#65;&#x42;</root>`)
	require.NoError(t, err)
	assert.Equal(t, "AB", doc.DocumentElement().FirstChild.NodeValue())
}

func TestUnknownEntityIsAnError(t *testing.T) {
	_, err := xmldom.LoadDocument(`<root>&bogus;</root>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrUnknownEntity})
}

func TestCustomEntityFromInternalSubset(t *testing.T) {
	doc, err := xmldom.LoadDocument(`<!DOCTYPE r [<!ENTITY who "world">]><r>hello &who;</r>`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", doc.DocumentElement().FirstChild.NodeValue())
}

func TestRedefiningPredefinedEntityRejected(t *testing.T) {
	_, err := xmldom.LoadDocument(`<!DOCTYPE r [<!ENTITY amp "x">]><r/>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, &xmldom.ParseError{Kind: xmldom.ErrInvalidOp})
}
