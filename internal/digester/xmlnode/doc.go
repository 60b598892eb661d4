// Package xmlnode decodes an XML document into a small, in-memory DOM
// built on encoding/xml. It is the in-scope "bootstrapper" substitute the
// digester walks: spec.md places the XML lexer itself out of the core's
// scope, so this package deliberately stays a thin stdlib-backed reader
// rather than a full XML toolkit.
package xmlnode
