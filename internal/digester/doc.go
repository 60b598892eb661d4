// Package digester recursively parses a .cdrl configuration document into
// a resource.Seq: resolving imports and their @NAME@ parameter
// substitution, registering named conditions, collecting profile sets,
// and dispatching non-core-namespace elements to nested extension
// digesters. It is the Go equivalent of XMLConfigDigester.
package digester
