package xmlns

import (
	"encoding/xml"
	"fmt"

	"github.com/alexandria-dm/sirxml/internal/dependency"
	"github.com/alexandria-dm/sirxml/internal/ordered"
)

// A Resolver maps the name of a document element to its binding.
// Names with an empty namespace are resolved in the fallback
// namespace. Both *Namespace and *Registry implement Resolver.
type Resolver interface {
	ResolveElement(name xml.Name, fallback string) (Binding, error)
}

// A Registry is an immutable collection of namespaces keyed by URI.
type Registry struct {
	byURI map[string]*Namespace
	// URIs in dependency order, imports first.
	order []string
}

// NewRegistry builds a Registry from a set of namespaces. Every
// namespace imported by one of the namespaces must be part of the
// set, and no URI may appear twice.
func NewRegistry(namespaces ...*Namespace) (*Registry, error) {
	reg := &Registry{byURI: make(map[string]*Namespace, len(namespaces))}
	var graph dependency.Graph
	for _, ns := range namespaces {
		if ns == nil {
			return nil, fmt.Errorf("xmlns: nil namespace passed to NewRegistry")
		}
		if _, dup := reg.byURI[ns.uri]; dup {
			return nil, fmt.Errorf("xmlns: namespace %s registered twice", ns.uri)
		}
		reg.byURI[ns.uri] = ns
		graph.Add(ns.uri, ns.imports...)
	}
	var missing []string
	ordered.RangeStrings(reg.byURI, func(uri string) {
		for _, dep := range graph.Dependencies(uri) {
			if _, ok := reg.byURI[dep]; !ok {
				missing = append(missing, fmt.Sprintf("%s (imported by %s)", dep, uri))
			}
		}
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("xmlns: missing imported namespaces: %v", missing)
	}
	graph.Flatten(func(uri string) {
		reg.order = append(reg.order, uri)
	})
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(namespaces ...*Namespace) *Registry {
	reg, err := NewRegistry(namespaces...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Namespace returns the namespace registered under uri.
func (r *Registry) Namespace(uri string) (*Namespace, bool) {
	ns, ok := r.byURI[uri]
	return ns, ok
}

// Namespaces returns the registered namespaces in dependency order;
// every namespace appears after the namespaces it imports.
func (r *Registry) Namespaces() []*Namespace {
	result := make([]*Namespace, 0, len(r.order))
	for _, uri := range r.order {
		result = append(result, r.byURI[uri])
	}
	return result
}

// URIs returns the registered namespace names in sorted order.
func (r *Registry) URIs() []string {
	return ordered.Keys(r.byURI)
}

// Lookup returns the binding declared for name in category cat.
func (r *Registry) Lookup(cat Category, name xml.Name) (Binding, error) {
	ns, ok := r.byURI[name.Space]
	if !ok {
		return Binding{}, &UnresolvedError{Name: name, Category: cat}
	}
	if b, ok := ns.Lookup(cat, name.Local); ok {
		return b, nil
	}
	return Binding{}, &UnresolvedError{Name: name, Category: cat, Known: true}
}

// ResolveElement returns the element binding for name, looking up
// names without a namespace in fallback.
func (r *Registry) ResolveElement(name xml.Name, fallback string) (Binding, error) {
	if name.Space == "" {
		name.Space = fallback
	}
	return r.Lookup(ElementBinding, name)
}
