// Package binding turns XML documents into values of the Go types
// bound to their document element.
//
// The tag of the document element is looked up with an xmlns.Resolver,
// usually the Registry of a binding package such as sirin, and the
// element is decoded into a new value of the bound type. How the
// document text is read is decided by a Strategy: Stream decodes the
// element straight from the token stream of an xml.Decoder, while DOM
// builds an xmltree.Element first and decodes that. Both produce the
// same values for the same input.
//
// Parsing is synchronous and reads the whole document. A document is
// either returned as a complete *Root or rejected with an error; there
// are no partial results.
package binding // import "github.com/alexandria-dm/sirxml/binding"

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/alexandria-dm/sirxml/xmlns"
	"github.com/alexandria-dm/sirxml/xmltree"
)

// A Root is a decoded document element.
type Root struct {
	// Name is the qualified name of the document element, after
	// fallback namespace resolution.
	Name    xml.Name
	Binding xmlns.Binding
	// Value is a pointer to the decoded content, of the type
	// recorded in Binding.
	Value interface{}
}

// A Strategy reads a document from r and decodes its root element.
// Root tags without a namespace are resolved in fallback.
type Strategy interface {
	Parse(r io.Reader, res xmlns.Resolver, fallback string) (*Root, error)
	String() string
}

var (
	// Stream decodes the document element directly from the token
	// stream of an xml.Decoder, without building a tree.
	Stream Strategy = streamStrategy{}
	// DOM builds an xmltree.Element for the whole document and
	// decodes the document element from it.
	DOM Strategy = domStrategy{}
)

type streamStrategy struct{}

func (streamStrategy) String() string { return "stream" }

func (streamStrategy) Parse(r io.Reader, res xmlns.Resolver, fallback string) (*Root, error) {
	raw := xml.NewDecoder(r)
	raw.CharsetReader = xmltree.CharsetReader
	src := &depthLimiter{raw: raw}
	d := xml.NewTokenDecoder(src)

	start, err := prologue(d, src)
	if err != nil {
		return nil, err
	}
	b, err := res.ResolveElement(start.Name, fallback)
	if err != nil {
		return nil, err
	}
	v := b.New()
	if err := d.DecodeElement(v, &start); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", b.Name.Local, err)
	}
	if err := epilogue(d, src); err != nil {
		return nil, err
	}
	return &Root{Name: b.Name, Binding: b, Value: v}, nil
}

// A depthLimiter passes on the tokens of raw, failing with
// xmltree.ErrTooDeep once elements nest deeper than xmltree.MaxDepth.
type depthLimiter struct {
	raw   *xml.Decoder
	depth int
}

func (l *depthLimiter) Token() (xml.Token, error) {
	tok, err := l.raw.Token()
	switch tok.(type) {
	case xml.StartElement:
		if l.depth > xmltree.MaxDepth {
			return nil, ErrTooDeep
		}
		l.depth++
	case xml.EndElement:
		l.depth--
	}
	return tok, err
}

func (l *depthLimiter) line() int {
	line, _ := l.raw.InputPos()
	return line
}

// prologue skips to the document element. Only white space, comments,
// processing instructions and directives may precede it.
func prologue(d *xml.Decoder, src *depthLimiter) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return xml.StartElement{}, ErrNoRoot
		} else if err != nil {
			return xml.StartElement{}, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			return tok.Copy(), nil
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return xml.StartElement{}, &xml.SyntaxError{
					Msg:  "character data before the document element",
					Line: src.line(),
				}
			}
		}
	}
}

// epilogue consumes the rest of the document after the document
// element.
func epilogue(d *xml.Decoder, src *depthLimiter) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			return &xml.SyntaxError{
				Msg:  fmt.Sprintf("extra element <%s> after the document element", tok.Name.Local),
				Line: src.line(),
			}
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return &xml.SyntaxError{Msg: "character data after the document element", Line: src.line()}
			}
		}
	}
}

type domStrategy struct{}

func (domStrategy) String() string { return "dom" }

func (domStrategy) Parse(r io.Reader, res xmlns.Resolver, fallback string) (*Root, error) {
	el, err := xmltree.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return ParseElement(el, res, fallback)
}

// ParseElement decodes el into a new value of the type bound to its
// tag. Tags without a namespace are resolved in fallback.
func ParseElement(el *xmltree.Element, res xmlns.Resolver, fallback string) (*Root, error) {
	if el == nil {
		return nil, errors.New("binding: nil element")
	}
	b, err := res.ResolveElement(el.Name, fallback)
	if err != nil {
		return nil, err
	}
	v := b.New()
	if err := el.Unmarshal(v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", b.Name.Local, err)
	}
	return &Root{Name: b.Name, Binding: b, Value: v}, nil
}

// Parse decodes the document in data.
func (cfg *Config) Parse(data []byte) (*Root, error) {
	return cfg.parse(bytes.NewReader(data), data)
}

// ParseReader decodes the document read from r. Unless a Validator is
// configured, the Stream strategy decodes r without buffering it.
func (cfg *Config) ParseReader(r io.Reader) (*Root, error) {
	if cfg.validator == nil {
		return cfg.parse(r, nil)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return cfg.Parse(data)
}

func (cfg *Config) parse(r io.Reader, data []byte) (*Root, error) {
	cfg.debugf("parsing %s with the %s strategy", cfg.name(), cfg.strategy)
	root, err := cfg.strategy.Parse(r, cfg.resolver, cfg.fallback)
	if err != nil {
		cfg.debugf("%s: %v", cfg.name(), err)
		return nil, cfg.syntaxError(err)
	}
	cfg.logf("%s: document element %s bound to %s", cfg.name(), root.Name.Local, root.Binding.Type)
	if err := cfg.validate(data); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseElement decodes an element that has already been parsed into a
// tree. The configured strategy is not used.
func (cfg *Config) ParseElement(el *xmltree.Element) (*Root, error) {
	root, err := ParseElement(el, cfg.resolver, cfg.fallback)
	if err != nil {
		return nil, cfg.syntaxError(err)
	}
	if cfg.validator != nil {
		if err := cfg.validate(xmltree.Marshal(el)); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (cfg *Config) validate(data []byte) error {
	if cfg.validator == nil {
		return nil
	}
	if err := cfg.validator.Validate(bytes.NewReader(data)); err != nil {
		cfg.debugf("%s: rejected by validator", cfg.name())
		return &ValidationError{Location: cfg.location, Err: err}
	}
	cfg.debugf("%s: document is valid", cfg.name())
	return nil
}

func (cfg *Config) name() string {
	if cfg.location == "" {
		return "<input>"
	}
	return cfg.location
}
