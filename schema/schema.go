// Package schema embeds the XML Schema documents of the SIR interface.
//
// The documents are the source the sirin and mockup bindings were
// written from; they are compiled at run time only when a caller asks
// for schema validation.
package schema

import "embed"

// File names of the embedded schema documents.
const (
	SIRIn     = "sir-in.xsd"
	SIRMockup = "sir-mockup.xsd"
)

// FS holds the schema documents. Relative schemaLocation references
// between them resolve inside FS.
//
//go:embed *.xsd
var FS embed.FS
