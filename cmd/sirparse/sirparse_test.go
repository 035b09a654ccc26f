package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const catalogDoc = `<sirin:InputCatalog xmlns:sirin="http://euclid.esa.org/schema/Interfaces/pro/sir/in">
  <CatalogOrigin>%s</CatalogOrigin>
  <SourceCount>12</SourceCount>
  <Catalog filestatus="ARCHIVED"><FileName>cat.fits</FileName></Catalog>
</sirin:InputCatalog>`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := _main(args, os.Stdin, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFormats(t *testing.T) {
	path := writeDoc(t, "catalog.xml", strings.Replace(catalogDoc, "%s", "MER", 1))
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"--format=name"}, []string{
			"{http://euclid.esa.org/schema/Interfaces/pro/sir/in}InputCatalog\tmockup.ParentCatalog",
		}},
		{[]string{"--format=xml", "--style=dom"}, []string{
			`<ns1:InputCatalog xmlns:ns1="http://euclid.esa.org/schema/Interfaces/pro/sir/in">`,
			`<Catalog filestatus="ARCHIVED">`,
		}},
		{[]string{"--format=json", "--validate"}, []string{`"CatalogOrigin": "MER"`, `"SourceCount": "12"`}},
	}
	for _, tt := range tests {
		code, stdout, stderr := runCommand(t, append(tt.args, path)...)
		if code != 0 {
			t.Errorf("%v: exit %d: %s", tt.args, code, stderr)
			continue
		}
		for _, want := range tt.want {
			if !strings.Contains(stdout, want) {
				t.Errorf("%v: output does not contain %q:\n%s", tt.args, want, stdout)
			}
		}
	}
}

func TestEncodingFlag(t *testing.T) {
	path := writeDoc(t, "latin1.xml", strings.Replace(catalogDoc, "%s", "Caf\xe9", 1))
	code, stdout, stderr := runCommand(t, "--encoding=ISO-8859-1", "--format=xml", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "<CatalogOrigin>Café</CatalogOrigin>") {
		t.Errorf("output not transcoded:\n%s", stdout)
	}
}

func TestFailures(t *testing.T) {
	valid := writeDoc(t, "catalog.xml", strings.Replace(catalogDoc, "%s", "MER", 1))
	broken := writeDoc(t, "broken.xml", `<sirin:InputCatalog xmlns:sirin="http://euclid.esa.org/schema/Interfaces/pro/sir/in">`)
	invalid := writeDoc(t, "invalid.xml", strings.Replace(
		strings.Replace(catalogDoc, "%s", "MER", 1), `"ARCHIVED"`, `"LOST"`, 1))
	negative := writeDoc(t, "negative.xml", strings.Replace(
		strings.Replace(catalogDoc, "%s", "MER", 1), "<SourceCount>12", "<SourceCount>-12", 1))

	tests := []struct {
		args []string
		msg  string
	}{
		{[]string{valid, broken}, "broken.xml"},
		{[]string{"--validate", invalid}, "invalid document"},
		{[]string{negative}, "ParseUint"},
		{[]string{"--fallback-ns=urn:none", writeDoc(t, "bare.xml", `<InputCatalog/>`)}, "unknown namespace"},
		{[]string{"--style=sax", valid}, "unknown parser style"},
		{[]string{"--no-such-flag", valid}, "no-such-flag"},
		{[]string{valid, filepath.Join(t.TempDir(), "missing.xml")}, "missing.xml"},
	}
	for _, tt := range tests {
		code, _, stderr := runCommand(t, tt.args...)
		if code != 1 {
			t.Errorf("%v: exit %d, want 1", tt.args, code)
		}
		if !strings.Contains(stderr, tt.msg) {
			t.Errorf("%v: stderr does not mention %q:\n%s", tt.args, tt.msg, stderr)
		}
	}
}

func TestValidationReportedOnce(t *testing.T) {
	invalid := writeDoc(t, "invalid.xml", strings.Replace(
		strings.Replace(catalogDoc, "%s", "MER", 1), `"ARCHIVED"`, `"LOST"`, 1))
	code, _, stderr := runCommand(t, "-v", "-v", "--validate", invalid)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if n := strings.Count(stderr, "invalid document"); n != 1 {
		t.Errorf("validation failure reported %d times, want 1:\n%s", n, stderr)
	}
}

func TestHelp(t *testing.T) {
	code, stdout, stderr := runCommand(t, "--help")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "--validate") || stderr != "" {
		t.Errorf("help not written to stdout:\nstdout: %s\nstderr: %s", stdout, stderr)
	}
}

func pipeStdin(t *testing.T, content string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	go func() {
		w.WriteString(content)
		w.Close()
	}()
	return r
}

func TestStdin(t *testing.T) {
	tests := []struct {
		doc  string
		code int
		out  string
		msg  string
	}{
		{
			doc: strings.Replace(catalogDoc, "%s", "MER", 1),
			out: "{http://euclid.esa.org/schema/Interfaces/pro/sir/in}InputCatalog\tmockup.ParentCatalog",
		},
		{
			doc:  `<sirin:InputCatalog xmlns:sirin="http://euclid.esa.org/schema/Interfaces/pro/sir/in">`,
			code: 1,
			msg:  "<stdin>",
		},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		code := _main([]string{"--format=name"}, pipeStdin(t, tt.doc), &stdout, &stderr)
		if code != tt.code {
			t.Errorf("exit %d, want %d: %s", code, tt.code, stderr.String())
			continue
		}
		if !strings.Contains(stdout.String(), tt.out) {
			t.Errorf("output does not contain %q:\n%s", tt.out, stdout.String())
		}
		if !strings.Contains(stderr.String(), tt.msg) {
			t.Errorf("stderr does not mention %q:\n%s", tt.msg, stderr.String())
		}
	}
}
