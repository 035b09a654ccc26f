package xmlns

import (
	"encoding/xml"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// A Builder collects the declarations of a single namespace. Errors
// are recorded as declarations are added and reported by Build, so
// declarations can be chained without intermediate checks.
type Builder struct {
	ns   Namespace
	errs []string
}

// NewBuilder returns a Builder for the namespace uri.
func NewBuilder(uri string) *Builder {
	return &Builder{ns: Namespace{
		uri:      uri,
		bindings: make(map[Category]map[string]Binding),
	}}
}

// Doc sets the documentation of the namespace.
func (b *Builder) Doc(doc string) *Builder {
	b.ns.doc = doc
	return b
}

// Import records namespaces that the bindings of this namespace
// depend on.
func (b *Builder) Import(uri ...string) *Builder {
	for _, u := range uri {
		if u == b.ns.uri {
			b.errs = append(b.errs, fmt.Sprintf("namespace %s imports itself", u))
			continue
		}
		b.ns.imports = append(b.ns.imports, u)
	}
	return b
}

// Element declares a top-level element named local whose content has
// the type of proto. proto may be a value or a pointer; a nil
// pointer of the right type is enough.
func (b *Builder) Element(local string, proto interface{}) *Builder {
	return b.add(ElementBinding, local, proto)
}

// Type declares a named type whose values are represented by the type
// of proto.
func (b *Builder) Type(local string, proto interface{}) *Builder {
	return b.add(TypeBinding, local, proto)
}

func (b *Builder) add(cat Category, local string, proto interface{}) *Builder {
	if local == "" || strings.ContainsAny(local, ": \t\n") {
		b.errs = append(b.errs, fmt.Sprintf("invalid %s name %q", cat, local))
		return b
	}
	if proto == nil {
		b.errs = append(b.errs, fmt.Sprintf("%s %q has no type", cat, local))
		return b
	}
	t := reflect.TypeOf(proto)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	set, ok := b.ns.bindings[cat]
	if !ok {
		set = make(map[string]Binding)
		b.ns.bindings[cat] = set
	}
	if _, dup := set[local]; dup {
		b.errs = append(b.errs, fmt.Sprintf("%s %q declared twice", cat, local))
		return b
	}
	set[local] = Binding{
		Name:     xml.Name{Space: b.ns.uri, Local: local},
		Category: cat,
		Type:     t,
	}
	return b
}

// Build returns the Namespace described by the Builder. The Builder
// must not be used afterwards.
func (b *Builder) Build() (*Namespace, error) {
	if b.ns.uri == "" {
		b.errs = append(b.errs, "namespace URI is empty")
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("xmlns: %s: %w", b.ns.uri, errors.New(strings.Join(b.errs, "; ")))
	}
	ns := b.ns
	b.ns = Namespace{}
	return &ns, nil
}

// MustBuild is like Build but panics if the namespace is invalid. It
// is meant for package-level declarations of generated bindings.
func (b *Builder) MustBuild() *Namespace {
	ns, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ns
}
