package xmltree

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

var encodingDecl = regexp.MustCompile(`encoding\s*=\s*["']([A-Za-z][A-Za-z0-9._-]*)["']`)

// CharsetReader converts input in the character set named by label
// to UTF-8. It can be used as the CharsetReader of an xml.Decoder.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	return charset.NewReaderLabel(label, input)
}

// passthrough is installed on decoders reading text that toUTF8 has
// already converted, where the encoding declaration no longer holds.
func passthrough(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// DeclaredEncoding returns the encoding named in the XML declaration
// of doc, or the empty string if there is none.
func DeclaredEncoding(doc []byte) string {
	doc = bytes.TrimPrefix(doc, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(doc, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(doc, []byte("?>"))
	if end < 0 {
		return ""
	}
	m := encodingDecl.FindSubmatch(doc[:end])
	if m == nil {
		return ""
	}
	return string(m[1])
}

func toUTF8(doc []byte) ([]byte, error) {
	label := DeclaredEncoding(doc)
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return doc, nil
	}
	r, err := CharsetReader(label, bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
