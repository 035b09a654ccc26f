package binding

import (
	"encoding/xml"
	"errors"
)

// rootPrefix is bound to the namespace of the document element by
// MarshalXML. Child elements are written without a prefix, so they
// stay unqualified.
const rootPrefix = "ns1"

// MarshalXML encodes the root as a document element named after
// r.Name. The start element passed by the encoder is ignored.
func (r *Root) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if r.Value == nil {
		return errors.New("binding: marshal of a Root without a value")
	}
	start := xml.StartElement{Name: xml.Name{Local: r.Name.Local}}
	if r.Name.Space != "" {
		start.Name.Local = rootPrefix + ":" + r.Name.Local
		start.Attr = []xml.Attr{{
			Name:  xml.Name{Local: "xmlns:" + rootPrefix},
			Value: r.Name.Space,
		}}
	}
	return e.EncodeElement(r.Value, start)
}

// Marshal returns the XML document for root, starting with
// xml.Header.
func Marshal(root *Root) ([]byte, error) {
	body, err := xml.Marshal(root)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// MarshalIndent is like Marshal, but each XML element begins on a new
// indented line that starts with prefix and is followed by one or more
// copies of indent according to the nesting depth.
func MarshalIndent(root *Root, prefix, indent string) ([]byte, error) {
	body, err := xml.MarshalIndent(root, prefix, indent)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
