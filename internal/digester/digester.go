package digester

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/smooks-go/cdrl/internal/digester/xmlnode"
	"github.com/smooks-go/cdrl/internal/evalfactory"
	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/internal/uri"
)

// Loader resolves a URI (as produced by the uri package) to the byte
// stream it names. It is the out-of-scope bootstrapper's file-access
// collaborator: the digester never opens a file itself.
type Loader interface {
	Open(resolvedURI string) (io.Reader, error)
}

// ExtensionResolver looks up the classpath-style "-smooks.xml" resource
// backing an extension namespace. Callers back it with an embed.FS, a
// directory, or any other source; the digester only ever calls Resolve.
type ExtensionResolver interface {
	Resolve(namespaceURI string) (io.Reader, error)
}

// Digest parses r as a root .cdrl document rooted at baseURI, recursively
// resolving imports through loader and extension namespaces through ext,
// and returns the accumulated resource.Seq.
func Digest(ctx context.Context, r io.Reader, baseURI string, loader Loader, ext ExtensionResolver) (*resource.Seq, error) {
	sess := &session{
		factory:        evalfactory.NewFactory(),
		loader:         loader,
		resolver:       ext,
		extensionCache: map[string]*resource.Seq{},
	}

	normalized, err := uri.Normalize(baseURI)
	if err != nil {
		return nil, &ConfigurationError{Kind: SchemaInvalid, Path: "/[" + baseURI + "]", Message: "invalid base URI", Cause: err}
	}
	root := newFrame(path.Base(baseURI), baseURI, normalized, nil)

	seq, err := sess.digestStream(ctx, r, root, baseURI, ModeRoot)
	if err != nil {
		return nil, err
	}

	if len(seq.Configs()) == 0 {
		return nil, &ConfigurationError{Kind: EmptyConfiguration, Path: root.path(), Message: "0 Content Delivery Resource definitions"}
	}
	return seq, nil
}

// session carries the state shared across one top-level Digest call:
// the evaluator factory, the injected collaborators, and the
// extension-digester identity cache.
type session struct {
	factory        *evalfactory.Factory
	loader         Loader
	resolver       ExtensionResolver
	extensionCache map[string]*resource.Seq
}

func (s *session) digestStream(ctx context.Context, r io.Reader, fr *frame, baseURI string, mode DigestMode) (*resource.Seq, error) {
	root, err := xmlnode.Parse(r)
	if err != nil {
		return nil, &ConfigurationError{Kind: SchemaInvalid, Path: fr.path(), Message: "failed to parse document", Cause: err}
	}
	return s.digestRoot(ctx, root, fr, baseURI, mode)
}

func (s *session) digestRoot(ctx context.Context, root *xmlnode.Node, fr *frame, baseURI string, mode DigestMode) (*resource.Seq, error) {
	if mode == ModeRoot && root.Space != ConfigNamespace {
		return nil, &ConfigurationError{
			Kind:    UnsupportedNamespace,
			Path:    fr.path(),
			Message: fmt.Sprintf("unsupported default namespace %q", root.Space),
		}
	}

	if v, ok := root.Attr("default-target-profile"); ok {
		fr.defaultTargetProfile = v
	}
	if v, ok := root.Attr("default-condition-ref"); ok {
		fr.defaultConditionRef = v
	}

	seq := resource.NewSeq(baseURI)
	globals := resource.NewGlobalParametersConfig()
	haveGlobals := false

	for _, child := range root.Children {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if mode == ModeExtension && child.Local != "import" && child.Local != "resource-config" {
			return nil, &ConfigurationError{
				Kind:    IllegalExtensionElement,
				Path:    fr.path(),
				Message: fmt.Sprintf("element %q is not permitted in extension mode", child.Local),
			}
		}

		if child.Space != ConfigNamespace && child.Space != "" {
			extSeq, err := s.digestExtensionElement(ctx, child, fr, baseURI)
			if err != nil {
				return nil, err
			}
			seq.Append(extSeq)
			continue
		}

		switch child.Local {
		case "params":
			if err := s.digestParams(child, globals); err != nil {
				return nil, err
			}
			haveGlobals = true
		case "conditions":
			if err := s.digestConditions(child, fr); err != nil {
				return nil, err
			}
		case "profiles":
			if err := s.digestProfiles(child, seq); err != nil {
				return nil, err
			}
		case "import":
			importedSeq, err := s.digestImport(ctx, child, fr, baseURI)
			if err != nil {
				return nil, err
			}
			seq.Append(importedSeq)
		case "reader":
			cfg, err := s.digestReader(child, fr)
			if err != nil {
				return nil, err
			}
			seq.AddConfig(cfg)
		case "resource-config":
			cfg, err := s.digestResourceConfig(child, fr)
			if err != nil {
				return nil, err
			}
			seq.AddConfig(cfg)
		default:
			return nil, &ConfigurationError{
				Kind:    SchemaInvalid,
				Path:    fr.path(),
				Message: fmt.Sprintf("unrecognized element %q", child.Local),
			}
		}
	}

	if haveGlobals {
		seq.AddConfig(globals)
	}

	return seq, nil
}
