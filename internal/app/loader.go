package app

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// fileLoader is the digester.Loader backing the CLI: every <import>
// resolves to a file:// URI, which fileLoader opens straight off the
// local filesystem.
type fileLoader struct{}

// Open implements digester.Loader.
func (fileLoader) Open(resolvedURI string) (io.Reader, error) {
	p, err := filePathFromURI(resolvedURI)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("app: opening %q: %w", p, err)
	}
	return f, nil
}

// fileURI converts a filesystem path into the file:// URI form the
// digester's uri package expects as a base URI.
func fileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("app: resolving %q: %w", path, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func filePathFromURI(resolvedURI string) (string, error) {
	u, err := url.Parse(resolvedURI)
	if err != nil {
		return "", fmt.Errorf("app: invalid URI %q: %w", resolvedURI, err)
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", fmt.Errorf("app: unsupported URI scheme %q in %q", u.Scheme, resolvedURI)
	}
	if u.Path != "" {
		return filepath.FromSlash(u.Path), nil
	}
	return filepath.FromSlash(u.Opaque), nil
}

// noExtensionResolver rejects every extension namespace: the CLI ships no
// classpath-style "-smooks.xml" extension resources of its own.
type noExtensionResolver struct{}

// Resolve implements digester.ExtensionResolver.
func (noExtensionResolver) Resolve(namespaceURI string) (io.Reader, error) {
	return nil, fmt.Errorf("app: no extension resource registered for namespace %q", namespaceURI)
}
