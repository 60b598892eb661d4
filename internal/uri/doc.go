// Package uri resolves relative configuration references against a base
// URI and derives parent URIs for recursive digestion. It is the Go
// equivalent of the original's URIUtil collaborator: deliberately thin,
// with no fetch, retry or caching behavior of its own.
package uri
