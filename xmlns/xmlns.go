// Package xmlns holds the element and type bindings of XML namespaces.
//
// A Namespace is an immutable table that maps the local names declared
// in one XML namespace to the Go types that carry their content. Element
// bindings associate a top-level element name with a type; type bindings
// associate a schema type name with a type. Namespaces are assembled
// with a Builder, typically once, when a binding package is initialized.
//
// A Registry groups namespaces that import one another, and is what the
// parsers of the binding package use to turn the tag of a document
// element into a Go value. Neither type is modified after construction,
// so both are safe for concurrent use; there is no process-wide registry.
package xmlns // import "github.com/alexandria-dm/sirxml/xmlns"

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
)

// A Category partitions the names declared in a namespace. The same
// local name may be declared once in each category.
type Category string

const (
	// ElementBinding is the category of top-level element declarations.
	ElementBinding Category = "elementBinding"
	// TypeBinding is the category of named type definitions.
	TypeBinding Category = "typeBinding"
)

// A Binding associates a qualified name with the Go type of its content.
// The zero Binding is not valid, and is returned by lookups that fail.
type Binding struct {
	Name     xml.Name
	Category Category
	// Type is the type of the content, never a pointer type.
	Type reflect.Type
}

// Valid reports whether b was found by a lookup.
func (b Binding) Valid() bool {
	return b.Type != nil
}

// New returns a pointer to a new zero value of the bound type.
// New panics if b is not valid.
func (b Binding) New() interface{} {
	return reflect.New(b.Type).Interface()
}

// Is reports whether v is a value or pointer of the bound type.
func (b Binding) Is(v interface{}) bool {
	if !b.Valid() || v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t == b.Type
}

func (b Binding) String() string {
	if !b.Valid() {
		return fmt.Sprintf("{%s}%s (unbound)", b.Name.Space, b.Name.Local)
	}
	return fmt.Sprintf("{%s}%s -> %s", b.Name.Space, b.Name.Local, b.Type)
}

// A Namespace is an immutable set of bindings sharing one namespace URI.
type Namespace struct {
	uri      string
	doc      string
	imports  []string
	bindings map[Category]map[string]Binding
}

// URI returns the namespace name.
func (ns *Namespace) URI() string { return ns.uri }

// Doc returns the documentation attached to the namespace, if any.
func (ns *Namespace) Doc() string { return ns.doc }

// Imports returns the URIs of the namespaces whose bindings this
// namespace refers to.
func (ns *Namespace) Imports() []string {
	return append([]string(nil), ns.imports...)
}

// Lookup returns the binding declared under local in category cat.
func (ns *Namespace) Lookup(cat Category, local string) (Binding, bool) {
	b, ok := ns.bindings[cat][local]
	return b, ok
}

// Element returns the element binding named local.
func (ns *Namespace) Element(local string) (Binding, bool) {
	return ns.Lookup(ElementBinding, local)
}

// Type returns the type binding named local.
func (ns *Namespace) Type(local string) (Binding, bool) {
	return ns.Lookup(TypeBinding, local)
}

// Len returns the number of bindings in category cat.
func (ns *Namespace) Len(cat Category) int {
	return len(ns.bindings[cat])
}

// Elements returns every element binding, ordered by local name.
func (ns *Namespace) Elements() []Binding {
	return ns.sorted(ElementBinding)
}

// Types returns every type binding, ordered by local name.
func (ns *Namespace) Types() []Binding {
	return ns.sorted(TypeBinding)
}

func (ns *Namespace) sorted(cat Category) []Binding {
	result := make([]Binding, 0, len(ns.bindings[cat]))
	for _, b := range ns.bindings[cat] {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name.Local < result[j].Name.Local
	})
	return result
}

// ResolveElement returns the element binding for name. Names without
// a namespace are looked up in ns. A failed lookup returns an
// *UnresolvedError.
func (ns *Namespace) ResolveElement(name xml.Name, fallback string) (Binding, error) {
	space := name.Space
	if space == "" {
		space = fallback
	}
	if space == "" {
		space = ns.uri
	}
	if space == ns.uri {
		if b, ok := ns.Element(name.Local); ok {
			return b, nil
		}
	}
	return Binding{}, &UnresolvedError{
		Name:     xml.Name{Space: space, Local: name.Local},
		Category: ElementBinding,
		Known:    space == ns.uri,
	}
}

// An UnresolvedError is returned when a name has no binding.
type UnresolvedError struct {
	Name     xml.Name
	Category Category
	// Known is true if the namespace of Name is registered, but the
	// local name is not declared in it.
	Known bool
}

func (err *UnresolvedError) Error() string {
	if err.Name.Space == "" {
		return fmt.Sprintf("xmlns: no %s for %q without a namespace", err.Category, err.Name.Local)
	}
	if err.Known {
		return fmt.Sprintf("xmlns: %q is not declared as an %s in namespace %s",
			err.Name.Local, err.Category, err.Name.Space)
	}
	return fmt.Sprintf("xmlns: unknown namespace %s for %s %q",
		err.Name.Space, err.Category, err.Name.Local)
}
