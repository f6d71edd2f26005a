package xmldom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xmldomgo/xmldom"
)

func TestDetectEncodingUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<r/>")...)
	name, n := xmldom.DetectEncoding(data)
	assert.Equal(t, "utf-8", name)
	assert.Equal(t, 3, n)
}

func TestDetectEncodingNoBOMDefaultsUTF8(t *testing.T) {
	name, n := xmldom.DetectEncoding([]byte("<r/>"))
	assert.Equal(t, "utf-8", name)
	assert.Equal(t, 0, n)
}

func TestDetectEncodingUTF16LE(t *testing.T) {
	data := append([]byte{0xFF, 0xFE}, []byte("<r/>")...)
	name, n := xmldom.DetectEncoding(data)
	assert.Equal(t, "utf-16le", name)
	assert.Equal(t, 2, n)
}

func TestLoadReaderStripsUTF8BOM(t *testing.T) {
	var b strings.Builder
	b.WriteByte(0xEF)
	b.WriteByte(0xBB)
	b.WriteByte(0xBF)
	b.WriteString(`<root>ok</root>`)

	doc := xmldom.NewDocument()
	err := doc.LoadReader(strings.NewReader(b.String()))
	assert.NoError(t, err)
	assert.Equal(t, "ok", doc.DocumentElement().FirstChild.NodeValue())
}
