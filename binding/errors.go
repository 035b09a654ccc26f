package binding

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/alexandria-dm/sirxml/xmlns"
	"github.com/alexandria-dm/sirxml/xmltree"
)

// ErrNoRoot is returned when a document is empty or contains nothing
// but white space, comments and processing instructions.
var ErrNoRoot = xmltree.ErrNoRoot

// ErrTooDeep is returned by both strategies for documents whose
// elements nest deeper than xmltree.MaxDepth.
var ErrTooDeep = xmltree.ErrTooDeep

// A SyntaxError reports a document that is not well-formed XML.
type SyntaxError struct {
	// Location is the document name given with LocationBase.
	Location string
	Line     int
	Err      error
}

func (err *SyntaxError) Error() string {
	loc := err.Location
	if loc == "" {
		loc = "<input>"
	}
	if err.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", loc, err.Line, err.Err)
	}
	return fmt.Sprintf("%s: %v", loc, err.Err)
}

func (err *SyntaxError) Unwrap() error { return err.Err }

// A ValidationError is returned when a document is well-formed and
// bound, but rejected by the configured Validator.
type ValidationError struct {
	Location string
	Err      error
}

func (err *ValidationError) Error() string {
	if err.Location == "" {
		return fmt.Sprintf("invalid document: %v", err.Err)
	}
	return fmt.Sprintf("%s: invalid document: %v", err.Location, err.Err)
}

func (err *ValidationError) Unwrap() error { return err.Err }

// A MismatchError is returned by Expect when a document is rooted at
// a different element than the one requested.
type MismatchError struct {
	Want, Got xml.Name
}

func (err *MismatchError) Error() string {
	return fmt.Sprintf("binding: document element is {%s}%s, want {%s}%s",
		err.Got.Space, err.Got.Local, err.Want.Space, err.Want.Local)
}

// Expect returns a *MismatchError unless root was constructed from
// the element binding b.
func Expect(root *Root, b xmlns.Binding) error {
	if root.Name != b.Name || root.Binding.Type != b.Type {
		return &MismatchError{Want: b.Name, Got: root.Name}
	}
	return nil
}

// syntaxError wraps errors carrying an *xml.SyntaxError with the
// location of the document. Other errors are returned unchanged.
func (cfg *Config) syntaxError(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &SyntaxError{Location: cfg.location, Line: syn.Line, Err: err}
	}
	return err
}
