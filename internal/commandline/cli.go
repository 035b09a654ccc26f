// Package commandline contains value types for collecting
// command-line arguments with github.com/jessevdk/go-flags.
package commandline // import "github.com/alexandria-dm/sirxml/internal/commandline"

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/alexandria-dm/sirxml/binding"
)

// A Style selects the parsing strategy by name, "stream" or "dom".
// The zero Style selects binding.Stream.
type Style struct {
	binding.Strategy
}

// UnmarshalFlag implements flags.Unmarshaler.
func (s *Style) UnmarshalFlag(value string) error {
	for _, strategy := range []binding.Strategy{binding.Stream, binding.DOM} {
		if strings.EqualFold(value, strategy.String()) {
			s.Strategy = strategy
			return nil
		}
	}
	return fmt.Errorf("unknown parser style %q, must be %q or %q",
		value, binding.Stream, binding.DOM)
}

// MarshalFlag implements flags.Marshaler.
func (s Style) MarshalFlag() (string, error) {
	if s.Strategy == nil {
		return binding.Stream.String(), nil
	}
	return s.Strategy.String(), nil
}

// A Format is the output format of a decoded document.
type Format string

const (
	// FormatXML writes the decoded value back as XML.
	FormatXML Format = "xml"
	// FormatJSON writes the decoded value as JSON.
	FormatJSON Format = "json"
	// FormatName writes the qualified name of the document element
	// and the Go type it was bound to.
	FormatName Format = "name"
)

// UnmarshalFlag implements flags.Unmarshaler.
func (f *Format) UnmarshalFlag(value string) error {
	switch v := Format(strings.ToLower(value)); v {
	case FormatXML, FormatJSON, FormatName:
		*f = v
		return nil
	}
	return fmt.Errorf("unknown output format %q, must be xml, json or name", value)
}

// An Encoding is a character set named by its IANA label.
type Encoding struct {
	Label string
	enc   encoding.Encoding
}

// UnmarshalFlag implements flags.Unmarshaler.
func (e *Encoding) UnmarshalFlag(value string) error {
	enc, err := ianaindex.IANA.Encoding(value)
	if err != nil {
		return fmt.Errorf("unknown encoding %q: %v", value, err)
	}
	if enc == nil {
		return fmt.Errorf("encoding %q is not supported", value)
	}
	e.Label, e.enc = value, enc
	return nil
}

// MarshalFlag implements flags.Marshaler.
func (e Encoding) MarshalFlag() (string, error) {
	return e.Label, nil
}

// Reader returns a reader that converts r from the encoding to UTF-8.
// If no encoding was set, r is returned unchanged.
func (e Encoding) Reader(r io.Reader) io.Reader {
	if e.enc == nil {
		return r
	}
	return transform.NewReader(r, e.enc.NewDecoder())
}
