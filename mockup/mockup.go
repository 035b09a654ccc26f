// Package mockup binds the types of the SIR mockup schema
// (http://euclid.esa.org/schema/pro/sir/mockup) to Go.
//
// The schema describes the data products exchanged by the SIR spectra
// extraction stage: NISP frames, the parent source catalog, processing
// parameters and the resulting catalog of extracted spectra. It only
// declares types; the elements that carry them are declared by
// interface schemas such as package sirin.
//
// Local elements of the schema are unqualified, so the struct tags of
// the types in this package carry no namespace.
package mockup

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/alexandria-dm/sirxml/xmlns"
)

// NamespaceURI is the target namespace of the mockup schema.
const NamespaceURI = "http://euclid.esa.org/schema/pro/sir/mockup"

// Namespace is the type catalog of the mockup schema.
var Namespace = xmlns.NewBuilder(NamespaceURI).
	Doc("Mockup data products of the SIR spectra extraction stage.").
	Type("filestatus", (*Filestatus)(nil)).
	Type("dataContainer", (*DataContainer)(nil)).
	Type("grism", (*Grism)(nil)).
	Type("nispImage", (*NispImage)(nil)).
	Type("parentCatalog", (*ParentCatalog)(nil)).
	Type("parameter", (*Parameter)(nil)).
	Type("inputParameters", (*InputParameters)(nil)).
	Type("outputCatalog", (*OutputCatalog)(nil)).
	MustBuild()

// Filestatus is the life-cycle state of a file referenced by a
// DataContainer.
type Filestatus string

const (
	Proposed   Filestatus = "PROPOSED"
	Processing Filestatus = "PROCESSING"
	Committed  Filestatus = "COMMITTED"
	Validated  Filestatus = "VALIDATED"
	Archived   Filestatus = "ARCHIVED"
	Deleted    Filestatus = "DELETED"
)

// A DataContainer references a data file stored next to the XML
// product. The filestatus attribute defaults to PROPOSED.
type DataContainer struct {
	Filestatus Filestatus `xml:"filestatus,attr,omitempty"`
	FileName   string     `xml:"FileName"`
}

func (t *DataContainer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type T DataContainer
	overlay := (*T)(t)
	overlay.Filestatus = Proposed
	return d.DecodeElement(overlay, &start)
}

// Grism identifies the NISP grism used for a frame.
type Grism string

const (
	RGS000 Grism = "RGS000"
	RGS180 Grism = "RGS180"
	BGS000 Grism = "BGS000"
)

// A NispImage is one NISP spectroscopic frame.
type NispImage struct {
	ObservationId   int           `xml:"ObservationId"`
	PointingId      int           `xml:"PointingId"`
	ObservationDate time.Time     `xml:"ObservationDate"`
	Grism           Grism         `xml:"Grism"`
	Filter          string        `xml:"Filter,omitempty"`
	ExposureTime    float64       `xml:"ExposureTime"`
	DetectorCount   int           `xml:"DetectorCount"`
	Frame           DataContainer `xml:"Frame"`
}

func (t *NispImage) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type T NispImage
	var layout struct {
		*T
		ObservationDate *xsdDateTime `xml:"ObservationDate"`
	}
	layout.T = (*T)(t)
	layout.ObservationDate = (*xsdDateTime)(&layout.T.ObservationDate)
	return e.EncodeElement(layout, start)
}
func (t *NispImage) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type T NispImage
	var overlay struct {
		*T
		ObservationDate *xsdDateTime `xml:"ObservationDate"`
	}
	overlay.T = (*T)(t)
	overlay.ObservationDate = (*xsdDateTime)(&overlay.T.ObservationDate)
	return d.DecodeElement(&overlay, &start)
}

// A ParentCatalog is the source catalog the spectra are extracted for.
// Counts are xs:nonNegativeInteger, so negative values fail to decode.
type ParentCatalog struct {
	CatalogOrigin string        `xml:"CatalogOrigin"`
	SourceCount   uint          `xml:"SourceCount"`
	Catalog       DataContainer `xml:"Catalog"`
}

// A Parameter is one named processing parameter. Its value is kept as
// written; use Float or Int to interpret it.
type Parameter struct {
	Name  string `xml:"name,attr"`
	Unit  string `xml:"unit,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Float parses the parameter value as a floating point number.
func (p Parameter) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
}

// Int parses the parameter value as a base-10 integer.
func (p Parameter) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(p.Value))
}

// InputParameters is the parameter set of a SIR run.
type InputParameters struct {
	Parameter []Parameter `xml:"Parameter,omitempty"`
}

// Get returns the first parameter called name.
func (t *InputParameters) Get(name string) (Parameter, bool) {
	for _, p := range t.Parameter {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// An OutputCatalog lists the spectra extracted by a SIR run.
type OutputCatalog struct {
	SourceCount  uint            `xml:"SourceCount"`
	SpectraCount uint            `xml:"SpectraCount"`
	Catalog      DataContainer   `xml:"Catalog"`
	Spectra      []DataContainer `xml:"Spectra,omitempty"`
}

type xsdDateTime time.Time

func (t *xsdDateTime) UnmarshalText(text []byte) error {
	return _unmarshalTime(text, (*time.Time)(t), "2006-01-02T15:04:05.999999999")
}
func (t *xsdDateTime) MarshalText() ([]byte, error) {
	return []byte((*time.Time)(t).Format("2006-01-02T15:04:05.999999999Z07:00")), nil
}
func _unmarshalTime(text []byte, t *time.Time, format string) (err error) {
	s := string(bytes.TrimSpace(text))
	*t, err = time.Parse(format, s)
	if _, ok := err.(*time.ParseError); ok {
		*t, err = time.Parse(format+"Z07:00", s)
	}
	return err
}
