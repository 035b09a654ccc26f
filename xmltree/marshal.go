package xmltree

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Marshal produces the XML encoding of an Element as a self-contained
// document. Namespace prefixes used by the Element or its attributes
// are declared on the outermost tag, so the output of Marshal is a
// valid document even when el was taken from the middle of a larger
// tree.
func Marshal(el *Element) []byte {
	var buf bytes.Buffer
	if err := Encode(&buf, el); err != nil {
		// bytes.Buffer.Write should never return an error
		panic(err)
	}
	return buf.Bytes()
}

// MarshalIndent is like Marshal, but adds line breaks before each
// child element. Each line begins with prefix, followed by one copy
// of indent per level of nesting. Leaf content is left untouched.
func MarshalIndent(el *Element, prefix, indent string) []byte {
	var buf bytes.Buffer
	enc := encoder{w: bufio.NewWriter(&buf), prefix: prefix, indent: indent, pretty: true}
	if err := enc.encode(el, nil, 0); err != nil {
		panic(err)
	}
	if err := enc.w.Flush(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Encode writes the XML encoding of the Element to w.
// Encode returns any errors encountered writing to w.
func Encode(w io.Writer, el *Element) error {
	enc := encoder{w: bufio.NewWriter(w)}
	if err := enc.encode(el, nil, 0); err != nil {
		return err
	}
	return enc.w.Flush()
}

// String returns the XML encoding of an Element
// and its children as a string.
func (el *Element) String() string {
	return string(Marshal(el))
}

type encoder struct {
	w              *bufio.Writer
	prefix, indent string
	pretty         bool
}

func (e *encoder) encode(el, parent *Element, depth int) error {
	if depth > recursionLimit {
		return ErrTooDeep
	}
	name, ok := el.qname(el.Name)
	if !ok {
		name = el.Name.Local
	}
	if err := writeStart(e.w, el, name, diffScope(parent, el)); err != nil {
		return err
	}
	if len(el.Children) == 0 {
		if _, err := e.w.Write(el.Content); err != nil {
			return err
		}
	}
	for i := range el.Children {
		e.newline(depth + 1)
		if err := e.encode(&el.Children[i], el, depth+1); err != nil {
			return err
		}
	}
	if len(el.Children) > 0 {
		e.newline(depth)
	}
	_, err := e.w.WriteString("</" + name + ">")
	return err
}

func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.w.WriteByte('\n')
	e.w.WriteString(e.prefix)
	e.w.WriteString(strings.Repeat(e.indent, depth))
}

// visibleScope collapses a Scope into the set of prefix bindings that
// are in effect, keeping the order in which each prefix first appeared.
func visibleScope(scope []xml.Name) []xml.Name {
	index := make(map[string]int, len(scope))
	var result []xml.Name
	for _, ns := range scope {
		if i, ok := index[ns.Local]; ok {
			result[i] = ns
			continue
		}
		index[ns.Local] = len(result)
		result = append(result, ns)
	}
	return result
}

// diffScope returns the prefix bindings of child that are not already
// in effect at parent. For the root element every binding is returned.
func diffScope(parent, child *Element) []xml.Name {
	visible := visibleScope(child.Scope)
	if parent == nil {
		return visible
	}
	inherited := make(map[string]string)
	for _, ns := range visibleScope(parent.Scope) {
		inherited[ns.Local] = ns.Space
	}
	var result []xml.Name
	for _, ns := range visible {
		if uri, ok := inherited[ns.Local]; ok && uri == ns.Space {
			continue
		}
		result = append(result, ns)
	}
	return result
}

func isNamespaceDecl(attr xml.Attr) bool {
	return attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns")
}

// attrName returns the name of attr as written inside el's start tag.
// Unprefixed attributes never take the default namespace, so only
// non-empty prefixes are considered.
func (el *Element) attrName(attr xml.Attr) string {
	if attr.Name.Space == "" {
		return attr.Name.Local
	}
	if attr.Name.Space == xmlURL {
		return "xml:" + attr.Name.Local
	}
	if prefix, ok := el.lookupPrefix(attr.Name.Space, false); ok {
		return prefix + ":" + attr.Name.Local
	}
	return attr.Name.Space + ":" + attr.Name.Local
}

type stringWriter interface {
	io.Writer
	WriteString(string) (int, error)
}

func writeStart(w stringWriter, el *Element, name string, decls []xml.Name) error {
	w.WriteString("<" + name)
	for _, attr := range el.StartElement.Attr {
		if isNamespaceDecl(attr) {
			continue
		}
		w.WriteString(" " + el.attrName(attr) + `="`)
		if err := xml.EscapeText(w, []byte(attr.Value)); err != nil {
			return err
		}
		w.WriteString(`"`)
	}
	for _, ns := range decls {
		if ns.Local == "" {
			w.WriteString(` xmlns="`)
		} else {
			w.WriteString(" xmlns:" + ns.Local + `="`)
		}
		if err := xml.EscapeText(w, []byte(ns.Space)); err != nil {
			return err
		}
		w.WriteString(`"`)
	}
	_, err := w.WriteString(">")
	return err
}
