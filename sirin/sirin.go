// Package sirin binds the SIR pipeline interface namespace
// http://euclid.esa.org/schema/Interfaces/pro/sir/in to Go.
//
// The namespace declares four document elements, each carrying a type
// of the mockup namespace:
//
//	OutputCatalog    mockup.OutputCatalog
//	InputImage       mockup.NispImage
//	InputCatalog     mockup.ParentCatalog
//	InputParameters  mockup.InputParameters
//
// CreateFromDocument parses a document rooted at any of them:
//
//	root, err := sirin.CreateFromDocument(data)
//	if err != nil {
//		return err
//	}
//	switch v := root.Value.(type) {
//	case *mockup.NispImage:
//		...
//	}
//
// The element catalog and the Registry are built when the package is
// initialized and never modified afterwards.
package sirin // import "github.com/alexandria-dm/sirxml/sirin"

import (
	"sync"

	"github.com/jacoelho/xsd"

	"github.com/alexandria-dm/sirxml/binding"
	"github.com/alexandria-dm/sirxml/mockup"
	"github.com/alexandria-dm/sirxml/schema"
	"github.com/alexandria-dm/sirxml/xmlns"
	"github.com/alexandria-dm/sirxml/xmltree"
)

// NamespaceURI is the target namespace of the sir/in schema.
const NamespaceURI = "http://euclid.esa.org/schema/Interfaces/pro/sir/in"

// Namespace is the element catalog of the sir/in schema.
var Namespace = xmlns.NewBuilder(NamespaceURI).
	Doc("Input and output products of the SIR spectra extraction stage.").
	Import(mockup.NamespaceURI).
	Element("OutputCatalog", (*mockup.OutputCatalog)(nil)).
	Element("InputImage", (*mockup.NispImage)(nil)).
	Element("InputCatalog", (*mockup.ParentCatalog)(nil)).
	Element("InputParameters", (*mockup.InputParameters)(nil)).
	MustBuild()

// Registry holds the sir/in namespace and the mockup namespace it
// imports.
var Registry = xmlns.MustRegistry(mockup.Namespace, Namespace)

// The element bindings of the namespace.
var (
	OutputCatalog   = mustElement("OutputCatalog")
	InputImage      = mustElement("InputImage")
	InputCatalog    = mustElement("InputCatalog")
	InputParameters = mustElement("InputParameters")
)

func mustElement(local string) xmlns.Binding {
	b, ok := Namespace.Element(local)
	if !ok {
		panic("sirin: element " + local + " is not declared")
	}
	return b
}

// NewConfig returns a binding.Config that resolves document elements
// with Registry. Unqualified document elements are resolved in
// NamespaceURI unless opts select another fallback namespace.
func NewConfig(opts ...binding.Option) *binding.Config {
	cfg := binding.New(Registry, binding.FallbackNamespace(NamespaceURI))
	cfg.Option(opts...)
	return cfg
}

// CreateFromDocument parses an XML document rooted at one of the
// elements of Registry. By default the document is decoded with
// binding.Stream; use binding.UseStrategy to select binding.DOM.
//
// Malformed documents fail with a *binding.SyntaxError, and documents
// rooted at an undeclared element with an *xmlns.UnresolvedError.
func CreateFromDocument(data []byte, opts ...binding.Option) (*binding.Root, error) {
	return NewConfig(opts...).Parse(data)
}

// CreateFromDOM decodes a parsed element. An element without a
// namespace is resolved in defaultNamespace, or in NamespaceURI if
// defaultNamespace is empty.
//
// Deprecated: use CreateFromDocument, which reads the document text
// directly.
func CreateFromDOM(el *xmltree.Element, defaultNamespace string) (*binding.Root, error) {
	if defaultNamespace == "" {
		defaultNamespace = NamespaceURI
	}
	return binding.New(Registry, binding.FallbackNamespace(defaultNamespace)).ParseElement(el)
}

var loadSchema = sync.OnceValues(func() (*xsd.Schema, error) {
	return xsd.Load(schema.FS, schema.SIRIn)
})

// LoadSchema compiles the sir/in schema and the mockup schema it
// imports. The schema is compiled once; later calls return the same
// value. Pass it to binding.ValidateWith to validate documents.
func LoadSchema() (*xsd.Schema, error) {
	return loadSchema()
}
