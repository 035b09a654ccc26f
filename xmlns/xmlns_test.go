package xmlns

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"
)

type frame struct{ File string }
type catalog struct{ Count int }

const (
	productsNS = "urn:example:products"
	runNS      = "urn:example:run"
)

func TestBuilder(t *testing.T) {
	ns, err := NewBuilder(productsNS).
		Doc("data products").
		Type("frame", (*frame)(nil)).
		Type("catalog", catalog{}).
		Element("Frame", (**frame)(nil)).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if ns.URI() != productsNS || ns.Doc() != "data products" {
		t.Errorf("got %q %q", ns.URI(), ns.Doc())
	}
	if n := ns.Len(TypeBinding); n != 2 {
		t.Errorf("%d types, want 2", n)
	}
	b, ok := ns.Element("Frame")
	if !ok {
		t.Fatal("Frame not declared")
	}
	if !b.Is(frame{}) || !b.Is(&frame{}) || b.Is(catalog{}) {
		t.Errorf("Frame bound to %s", b.Type)
	}
	if _, ok := b.New().(*frame); !ok {
		t.Errorf("New returned %T", b.New())
	}
	if _, ok := ns.Element("frame"); ok {
		t.Error("type name found in element category")
	}
	var names []string
	for _, b := range ns.Types() {
		names = append(names, b.Name.Local)
	}
	if got := strings.Join(names, ","); got != "catalog,frame" {
		t.Errorf("Types() = %s", got)
	}
	if !strings.Contains(b.String(), "xmlns.frame") {
		t.Errorf("String() = %s", b)
	}
	if (Binding{}).Valid() {
		t.Error("zero Binding is valid")
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build *Builder
		msg   string
	}{
		{"duplicate", NewBuilder(productsNS).Element("A", frame{}).Element("A", catalog{}), "declared twice"},
		{"empty name", NewBuilder(productsNS).Element("", frame{}), "invalid"},
		{"prefixed name", NewBuilder(productsNS).Type("p:frame", frame{}), "invalid"},
		{"nil prototype", NewBuilder(productsNS).Element("A", nil), "has no type"},
		{"empty uri", NewBuilder("").Element("A", frame{}), "namespace URI is empty"},
		{"self import", NewBuilder(productsNS).Import(productsNS), "imports itself"},
	}
	for _, tt := range tests {
		_, err := tt.build.Build()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.msg)
		}
	}

	// The same local name may be used once per category.
	if _, err := NewBuilder(productsNS).Type("frame", frame{}).Element("frame", frame{}).Build(); err != nil {
		t.Error(err)
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic")
		}
	}()
	NewBuilder("").MustBuild()
}

func TestNamespaceResolve(t *testing.T) {
	ns := NewBuilder(runNS).Element("Frame", frame{}).MustBuild()
	tests := []struct {
		name     xml.Name
		fallback string
		ok       bool
	}{
		{xml.Name{Space: runNS, Local: "Frame"}, "", true},
		{xml.Name{Local: "Frame"}, "", true},
		{xml.Name{Local: "Frame"}, runNS, true},
		{xml.Name{Local: "Frame"}, productsNS, false},
		{xml.Name{Space: runNS, Local: "Catalog"}, "", false},
	}
	for _, tt := range tests {
		_, err := ns.ResolveElement(tt.name, tt.fallback)
		if (err == nil) != tt.ok {
			t.Errorf("ResolveElement(%v, %q) = %v", tt.name, tt.fallback, err)
		}
		var unresolved *UnresolvedError
		if err != nil && !errors.As(err, &unresolved) {
			t.Errorf("error %T is not an *UnresolvedError", err)
		}
	}
}

func TestUnresolvedMessage(t *testing.T) {
	tests := []struct {
		err  UnresolvedError
		want string
	}{
		{
			UnresolvedError{Name: xml.Name{Local: "a"}, Category: ElementBinding},
			`xmlns: no elementBinding for "a" without a namespace`,
		},
		{
			UnresolvedError{Name: xml.Name{Space: runNS, Local: "a"}, Category: ElementBinding, Known: true},
			`xmlns: "a" is not declared as an elementBinding in namespace urn:example:run`,
		},
		{
			UnresolvedError{Name: xml.Name{Space: runNS, Local: "a"}, Category: TypeBinding},
			`xmlns: unknown namespace urn:example:run for typeBinding "a"`,
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
}
