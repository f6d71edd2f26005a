package xmldom

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// bufReader returns r itself if it already satisfies the Peek/Discard
// surface BOM-sniffing needs, else wraps it in a bufio.Reader.
func bufReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReaderSize(r, 4096)
}

// bomEncoding identifies one of the byte-order marks this package sniffs
// before handing a source to the parser. name is the IANA
// charset name passed to ianaindex.IANA.Encoding; bom is the marker
// bytes themselves.
type bomEncoding struct {
	name string
	bom  []byte
}

var knownBOMs = []bomEncoding{
	{name: "utf-32be", bom: []byte{0x00, 0x00, 0xFE, 0xFF}},
	{name: "utf-32le", bom: []byte{0xFF, 0xFE, 0x00, 0x00}},
	{name: "utf-8", bom: []byte{0xEF, 0xBB, 0xBF}},
	{name: "utf-16be", bom: []byte{0xFE, 0xFF}},
	{name: "utf-16le", bom: []byte{0xFF, 0xFE}},
}

// DetectEncoding inspects the leading bytes of data for a known BOM,
// returning the IANA charset name and the number of bytes the marker
// occupies (0 if no BOM was found, in which case the caller should
// assume plain UTF-8).
func DetectEncoding(data []byte) (name string, bomLen int) {
	// utf-16le's BOM is a byte-for-byte prefix of utf-32le's BOM (which adds
	// two NUL bytes), so the longer markers must be tried first.
	for _, cand := range knownBOMs {
		if bytes.HasPrefix(data, cand.bom) {
			return cand.name, len(cand.bom)
		}
	}
	return "utf-8", 0
}

// NewTranscodingReader strips any BOM from the front of r and wraps the
// remainder in a decoder for the charset that BOM names, so the parser
// sees decoded UTF-8 text. Only the BOM is consulted: the encoding named
// in an XML declaration is not, and input without a BOM is read as UTF-8.
func NewTranscodingReader(r io.Reader) (io.Reader, error) {
	br := bufReader(r)
	peek, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}
	name, bomLen := DetectEncoding(peek)
	if bomLen > 0 {
		if _, err := br.Discard(bomLen); err != nil {
			return nil, err
		}
	}
	if name == "utf-8" {
		return br, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("xmldom: unknown charset %q: %w", name, err)
	}
	return transformReader(br, enc), nil
}

func transformReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return enc.NewDecoder().Reader(r)
}
