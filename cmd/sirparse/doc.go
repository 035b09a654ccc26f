// Command sirparse decodes SIR interface documents.
//
// Usage:
//
//	sirparse [options] FILE ...
//
// Each FILE is parsed as a document of the namespace
// http://euclid.esa.org/schema/Interfaces/pro/sir/in and printed in the
// selected format. When no FILE is given and standard input is not a
// terminal, a single document is read from standard input.
//
// Options:
//
//	--style=stream|dom   parser strategy (default stream)
//	--validate           validate documents against the embedded schema
//	--format=xml|json|name
//	                     print the decoded document as XML, as JSON, or
//	                     print the document element and its Go type
//	--encoding=LABEL     character set of documents without an XML
//	                     declaration naming one
//	--fallback-ns=URI    namespace of unqualified document elements
//	-v, --verbose        log parser activity; repeat for debug output
//
// sirparse stops at the first document that fails and exits with
// status 1.
package main
