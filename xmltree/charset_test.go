package xmltree

import "testing"

func TestDeclaredEncoding(t *testing.T) {
	tests := []struct {
		doc, want string
	}{
		{`<?xml version="1.0" encoding="ISO-8859-1"?><a/>`, "ISO-8859-1"},
		{`<?xml version='1.0' encoding='utf-8'?><a/>`, "utf-8"},
		{"\xef\xbb\xbf<?xml version=\"1.0\" encoding=\"UTF-16\"?><a/>", "UTF-16"},
		{`<?xml version="1.0"?><a encoding="latin1"/>`, ""},
		{`<a/>`, ""},
	}
	for _, tt := range tests {
		if got := DeclaredEncoding([]byte(tt.doc)); got != tt.want {
			t.Errorf("DeclaredEncoding(%q) = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestParseLatin1(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<Note>caf\xe9</Note>")
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if s := string(root.Content); s != "café" {
		t.Errorf("got %q, want %q", s, "café")
	}
	var note string
	if err := root.Unmarshal(&note); err != nil {
		t.Fatal(err)
	}
	if note != "café" {
		t.Errorf("Unmarshal: got %q", note)
	}
}

func TestParseUnknownEncoding(t *testing.T) {
	doc := []byte(`<?xml version="1.0" encoding="x-no-such-charset"?><a/>`)
	if _, err := Parse(doc); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}
