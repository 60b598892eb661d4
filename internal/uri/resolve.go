package uri

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Resolve resolves ref against base, the way a browser resolves a relative
// link against the page it was found on. base may be empty, in which case
// ref is returned verbatim (after validation).
func Resolve(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("uri: invalid reference %q: %w", ref, err)
	}
	if base == "" {
		return refURL.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("uri: invalid base %q: %w", base, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// Parent returns the parent "directory" URI of u: the same scheme,
// authority and host, with the last path segment removed. It is used as
// the new base URI when digesting an imported file, mirroring
// URIUtil.getParent in the original.
func Parent(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("uri: invalid uri %q: %w", u, err)
	}
	dir := path.Dir(parsed.Path)
	if dir == "." {
		dir = "/"
	}
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	parsed.Path = dir
	return parsed.String(), nil
}

// Normalize reduces u to the scheme+path identity used for import-cycle
// detection, so that trivially distinct string representations of the
// same resource (differing query strings, fragments, trailing slashes)
// cannot bypass the cycle check.
func Normalize(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("uri: invalid uri %q: %w", u, err)
	}
	clean := path.Clean(parsed.Path)
	return parsed.Scheme + "://" + parsed.Host + clean, nil
}
