// Package xmltree converts XML documents into a tree of Go structs.
//
// The xmltree package provides routines for accessing an XML document
// as a tree, along with functionality to resolve namespace-prefixed
// strings at any point in the tree. A tree built by Parse is the node
// form accepted by the node parsers of the binding package; any
// Element can be decoded into a generated binding type with its
// Unmarshal method.
package xmltree // import "github.com/alexandria-dm/sirxml/xmltree"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxDepth is the deepest element nesting Parse accepts. The document
// element is at depth 0.
const MaxDepth = 3000

const recursionLimit = MaxDepth

const xmlURL = "http://www.w3.org/XML/1998/namespace"

// ErrTooDeep is returned for documents nested deeper than MaxDepth.
var ErrTooDeep = errors.New("xmltree: xml document too deeply nested")

// ErrNoRoot is returned by Parse when a document does not contain
// a root element.
var ErrNoRoot = errors.New("xmltree: document has no root element")

// An Element represents a single element in an XML document. Elements
// may have zero or more children. The byte array used by the Content
// field is shared among all elements in the document, and should not
// be modified. An Element also captures xml namespace prefixes, so
// that arbitrary QNames in attribute values can be resolved.
type Element struct {
	xml.StartElement
	// The raw, unescaped-as-written content between the start and
	// end tags of the element, including child elements.
	Content  []byte
	Children []Element
	// A list of defined XML namespace prefixes, from least specific to
	// most specific. The Space field is the canonical xml namespace,
	// and the Local field is the prefix.
	Scope []xml.Name
}

// Attr gets the value of the first attribute whose name matches the
// space and local arguments. If space is the empty string, only
// attributes' local names are considered when looking for a match.
// If an attribute could not be found, the empty string is returned.
func (el *Element) Attr(space, local string) string {
	for _, v := range el.StartElement.Attr {
		if v.Name.Local != local {
			continue
		}
		if space == "" || space == v.Name.Space {
			return v.Value
		}
	}
	return ""
}

// SetAttr adds an XML attribute to an Element's existing Attributes.
// If the attribute already exists, it is replaced.
func (el *Element) SetAttr(space, local, value string) {
	for i, a := range el.StartElement.Attr {
		if a.Name.Local != local {
			continue
		}
		if space == "" || a.Name.Space == space {
			el.StartElement.Attr[i].Value = value
			return
		}
	}
	el.StartElement.Attr = append(el.StartElement.Attr, xml.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
}

// Unmarshal parses the XML encoding of the Element and stores the result
// in the value pointed to by v. Unmarshal follows the same rules as
// xml.Unmarshal, but only parses the portion of the XML document
// contained by the Element. Every namespace prefix in scope at the
// Element is declared on the fragment, so prefixed names in the
// content resolve as they did in the original document.
func (el *Element) Unmarshal(v interface{}) error {
	var buf bytes.Buffer
	name, ok := el.qname(el.Name)
	if !ok {
		return fmt.Errorf("xmltree: could not find namespace prefix for %q when decoding %s",
			el.Name.Space, el.Name.Local)
	}
	if err := writeStart(&buf, el, name, visibleScope(el.Scope)); err != nil {
		return err
	}

	// BUG(xmltree) The Unmarshal method unmarshals an XML fragment as it
	// was returned by the Parse method; further modifications to a tree of
	// Elements are ignored by the Unmarshal method.
	buf.Write(el.Content)
	buf.WriteString("</" + name + ">")

	d := xml.NewDecoder(&buf)
	d.CharsetReader = passthrough
	return d.Decode(v)
}

// qname returns the prefixed form of name as seen from el. The
// second return value is false if the namespace is not in scope.
func (el *Element) qname(name xml.Name) (string, bool) {
	if name.Space == "" {
		return name.Local, true
	}
	if name.Space == xmlURL {
		return "xml:" + name.Local, true
	}
	prefix, ok := el.lookupPrefix(name.Space, true)
	if !ok {
		return "", false
	}
	if prefix == "" {
		return name.Local, true
	}
	return prefix + ":" + name.Local, true
}

// lookupPrefix returns the innermost prefix bound to uri that is not
// rebound to another namespace further down the scope. The default
// namespace is only considered if allowDefault is true.
func (el *Element) lookupPrefix(uri string, allowDefault bool) (string, bool) {
	for i := len(el.Scope) - 1; i >= 0; i-- {
		ns := el.Scope[i]
		if ns.Space != uri || (ns.Local == "" && !allowDefault) {
			continue
		}
		if rebound(el.Scope[i+1:], ns.Local) {
			continue
		}
		return ns.Local, true
	}
	return "", false
}

func rebound(scope []xml.Name, prefix string) bool {
	for _, ns := range scope {
		if ns.Local == prefix {
			return true
		}
	}
	return false
}

// Resolve translates an XML QName (namespace-prefixed string) to an
// xml.Name with a canonicalized namespace in its Space field.  This can
// be used when working with XSD documents, which put QNames in attribute
// values. If qname does not have a prefix, the default namespace is used.
// If a namespace prefix cannot be resolved, the returned value's Space
// field will be the unresolved prefix. Use the ResolveNS function to
// detect when a namespace prefix cannot be resolved.
func (el *Element) Resolve(qname string) xml.Name {
	name, _ := el.ResolveNS(qname)
	return name
}

// The ResolveNS method is like Resolve, but returns false for its second
// return value if a namespace prefix cannot be resolved.
func (el *Element) ResolveNS(qname string) (xml.Name, bool) {
	var prefix, local string
	parts := strings.SplitN(qname, ":", 2)
	if len(parts) == 2 {
		prefix, local = parts[0], parts[1]
	} else {
		prefix, local = "", parts[0]
	}
	for i := len(el.Scope) - 1; i >= 0; i-- {
		if el.Scope[i].Local == prefix {
			return xml.Name{Space: el.Scope[i].Space, Local: local}, true
		}
	}
	return xml.Name{Space: prefix, Local: local}, false
}

// ResolveDefault is like Resolve, but allows for the default namespace to
// be overridden. The namespace of strings without a namespace prefix
// (known as an NCName in XML terminology) will be defaultns.
func (el *Element) ResolveDefault(qname, defaultns string) xml.Name {
	if defaultns == "" || strings.Contains(qname, ":") {
		return el.Resolve(qname)
	}
	return xml.Name{Space: defaultns, Local: qname}
}

// Prefix is the inverse of Resolve. It uses the closest prefix
// defined for a namespace to create a string of the form
// prefix:local. If the namespace cannot be found, an empty string
// is returned.
func (el *Element) Prefix(name xml.Name) (qname string) {
	prefix, ok := el.lookupPrefix(name.Space, true)
	if !ok {
		return ""
	}
	if prefix == "" {
		return name.Local
	}
	return prefix + ":" + name.Local
}

func (el *Element) pushNS(tag xml.StartElement) {
	var scope []xml.Name
	for _, attr := range tag.Attr {
		if attr.Name.Space == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: attr.Name.Local})
		} else if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			scope = append(scope, xml.Name{Space: attr.Value, Local: ""})
		}
	}
	if len(scope) > 0 {
		el.Scope = append(el.Scope, scope...)
		// Ensure that future additions to the scope create
		// a new backing array. This prevents the scope from
		// being clobbered during parsing.
		el.Scope = el.Scope[:len(el.Scope):len(el.Scope)]
	}
}

// Save some typing when scanning xml
type scanner struct {
	*xml.Decoder
	tok xml.Token
	err error
}

func (s *scanner) scan() bool {
	if s.err != nil {
		return false
	}
	s.tok, s.err = s.Token()
	return s.err == nil
}

// Parse builds a tree of Elements by reading an XML document.  The
// byte slice passed to Parse is expected to be a valid XML document
// with a single root element. Documents declaring an encoding other
// than UTF-8 are converted to UTF-8 first; the Content of every
// Element then refers to the converted text.
func Parse(doc []byte) (*Element, error) {
	doc, err := toUTF8(doc)
	if err != nil {
		return nil, err
	}
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.CharsetReader = passthrough
	scanner := scanner{Decoder: d}
	root := new(Element)

	found := false
	for !found && scanner.scan() {
		switch tok := scanner.tok.(type) {
		case xml.StartElement:
			root.StartElement = tok.Copy()
			found = true
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				line, _ := scanner.InputPos()
				return nil, &xml.SyntaxError{Msg: "character data before the document element", Line: line}
			}
		}
	}
	if scanner.err != nil {
		if scanner.err == io.EOF {
			return nil, ErrNoRoot
		}
		return nil, scanner.err
	}
	if !found {
		return nil, ErrNoRoot
	}
	if err := root.parse(&scanner, doc, 0); err != nil {
		return nil, err
	}
	if err := epilogue(&scanner); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseReader is like Parse, but reads the document from r.
func ParseReader(r io.Reader) (*Element, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// epilogue consumes the rest of the document after the root element.
// Only comments, processing instructions and white space may follow.
func epilogue(s *scanner) error {
	for s.scan() {
		switch tok := s.tok.(type) {
		case xml.StartElement:
			line, _ := s.InputPos()
			return &xml.SyntaxError{
				Msg:  fmt.Sprintf("extra element <%s> after the document element", tok.Name.Local),
				Line: line,
			}
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				line, _ := s.InputPos()
				return &xml.SyntaxError{Msg: "character data after the document element", Line: line}
			}
		}
	}
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

func (el *Element) parse(scanner *scanner, data []byte, depth int) error {
	if depth > recursionLimit {
		return ErrTooDeep
	}
	el.pushNS(el.StartElement)

	begin := scanner.InputOffset()
	end := begin
walk:
	for scanner.scan() {
		switch tok := scanner.tok.(type) {
		case xml.StartElement:
			child := Element{StartElement: tok.Copy(), Scope: el.Scope}
			if err := child.parse(scanner, data, depth+1); err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case xml.EndElement:
			if tok.Name != el.Name {
				return fmt.Errorf("xmltree: expecting </%s>, got </%s>", el.Prefix(el.Name), el.Prefix(tok.Name))
			}
			el.Content = data[int(begin):int(end)]
			break walk
		}
		end = scanner.InputOffset()
	}
	return scanner.err
}

// The walk method calls the walkFunc for each of the Element's children.
func (el *Element) walk(fn walkFunc) {
	for i := 0; i < len(el.Children); i++ {
		fn(&el.Children[i])
	}
}

// walkFunc is the type of the function called for each of an Element's
// children.
type walkFunc func(*Element)

// SearchFunc traverses the Element tree in depth-first order and returns
// a slice of Elements for which the function fn returns true. The root
// itself is not tested.
func (root *Element) SearchFunc(fn func(*Element) bool) []*Element {
	var results []*Element
	var search func(el *Element)

	search = func(el *Element) {
		if fn(el) {
			results = append(results, el)
		}
		el.walk(search)
	}
	root.walk(search)
	return results
}

// Search searches the Element tree for Elements with an xml tag
// matching the name and xml namespace. If space is the empty string,
// any namespace is matched.
func (root *Element) Search(space, local string) []*Element {
	return root.SearchFunc(func(el *Element) bool {
		if local != el.Name.Local {
			return false
		}
		return space == "" || space == el.Name.Space
	})
}
