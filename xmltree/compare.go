package xmltree

import (
	"bytes"
	"encoding/xml"
	"sort"
)

// Equal returns true if two xmltree.Elements are equal, ignoring
// differences in white space, sub-element order, and namespace prefixes.
// Neither tree is modified.
func Equal(a, b *Element) bool {
	return equal(a, b, 0)
}

func byName(children []Element) []*Element {
	sorted := make([]*Element, len(children))
	for i := range children {
		sorted[i] = &children[i]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		x, y := sorted[i].Name, sorted[j].Name
		if x.Space != y.Space {
			return x.Space < y.Space
		}
		return x.Local < y.Local
	})
	return sorted
}

func equal(a, b *Element, depth int) bool {
	if depth > recursionLimit {
		return false
	}
	if !equalElement(a, b) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	if len(a.Children) == 0 {
		return bytes.Equal(bytes.TrimSpace(a.Content), bytes.TrimSpace(b.Content))
	}
	x, y := byName(a.Children), byName(b.Children)
	for i := range x {
		if !equal(x[i], y[i], depth+1) {
			return false
		}
	}
	return true
}

func equalElement(a, b *Element) bool {
	if a.Name != b.Name {
		return false
	}
	attrs := make(map[xml.Name]string)
	for _, attr := range a.StartElement.Attr {
		if isNamespaceDecl(attr) {
			continue
		}
		attrs[attr.Name] = attr.Value
	}

	n := 0
	for _, attr := range b.StartElement.Attr {
		if isNamespaceDecl(attr) {
			continue
		}
		if v, ok := attrs[attr.Name]; !ok || v != attr.Value {
			return false
		}
		n++
	}
	return n == len(attrs)
}
