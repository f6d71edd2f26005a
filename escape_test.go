package xmldom_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmldomgo/xmldom"
)

func TestEscapeStringPredefinedOnly(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &apos;c&apos; &quot;d&quot;", xmldom.EscapeString(`a <b> & 'c' "d"`))
}

func TestEscapeStringNoOpWhenNothingSpecial(t *testing.T) {
	assert.Equal(t, "plain text", xmldom.EscapeString("plain text"))
}

func TestUnescapeStringRoundTrip(t *testing.T) {
	original := `a <b> & 'c' "d"`
	assert.Equal(t, original, xmldom.UnescapeString(xmldom.EscapeString(original)))
}

func TestUnescapeStringLeavesUnknownEntityLiteral(t *testing.T) {
	assert.Equal(t, "&bogus;", xmldom.UnescapeString("&bogus;"))
}

func TestEscapeTextWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xmldom.EscapeText(&buf, []byte("<x>")))
	assert.Equal(t, "&lt;x&gt;", buf.String())
}
