// Package testutil loads test fixtures stored as txtar archives.
//
// A fixture archive groups the documents of one test case, so that a
// parser test can keep its input, its expected output and the name of
// the expected root element side by side:
//
//	-- root --
//	InputImage
//	-- input.xml --
//	<sirin:InputImage ...>
package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// A Fixture is one parsed txtar archive.
type Fixture struct {
	// Name is the archive file name without its directory and
	// extension.
	Name    string
	Comment string
	files   map[string][]byte
}

// File returns the contents of the named file in the archive. A
// missing file fails the test.
func (f *Fixture) File(t testing.TB, name string) []byte {
	t.Helper()
	data, ok := f.files[name]
	if !ok {
		t.Fatalf("fixture %s has no file %q", f.Name, name)
	}
	return data
}

// Lookup is like File, but reports whether the file exists instead of
// failing.
func (f *Fixture) Lookup(name string) ([]byte, bool) {
	data, ok := f.files[name]
	return data, ok
}

// Text returns the named file with surrounding white space removed.
func (f *Fixture) Text(t testing.TB, name string) string {
	t.Helper()
	return strings.TrimSpace(string(f.File(t, name)))
}

// Parse builds a Fixture from the text of an archive.
func Parse(name string, data []byte) *Fixture {
	return fromArchive(name, txtar.Parse(data))
}

func fromArchive(name string, ar *txtar.Archive) *Fixture {
	fx := &Fixture{
		Name:    name,
		Comment: strings.TrimSpace(string(ar.Comment)),
		files:   make(map[string][]byte, len(ar.Files)),
	}
	for _, file := range ar.Files {
		fx.files[file.Name] = file.Data
	}
	return fx
}

// Load parses every archive matching pattern, sorted by file name. A
// pattern that matches nothing fails the test.
func Load(t testing.TB, pattern string) []*Fixture {
	t.Helper()
	paths, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures match %s", pattern)
	}
	sort.Strings(paths)
	fixtures := make([]*Fixture, 0, len(paths))
	for _, path := range paths {
		ar, err := txtar.ParseFile(path)
		if err != nil {
			t.Fatal(err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		fixtures = append(fixtures, fromArchive(name, ar))
	}
	return fixtures
}
