package digester

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/smooks-go/cdrl/internal/digester/xmlnode"
	"github.com/smooks-go/cdrl/internal/resource"
	"github.com/smooks-go/cdrl/internal/selector"
	"github.com/smooks-go/cdrl/internal/uri"
)

func paramValue(p *xmlnode.Node) string {
	if len(p.Children) > 0 {
		return xmlnode.InnerXML(p)
	}
	return strings.TrimSpace(p.Text)
}

func (s *session) digestParams(node *xmlnode.Node, globals *resource.Config) error {
	for _, p := range node.ChildrenNamed("param") {
		name, _ := p.Attr("name")
		typ, _ := p.Attr("type")
		globals.Params.Add(resource.Parameter{Name: name, Type: typ, Value: paramValue(p)})
	}
	return nil
}

func (s *session) digestConditions(node *xmlnode.Node, fr *frame) error {
	for _, c := range node.ChildrenNamed("condition") {
		id, ok := c.Attr("id")
		if !ok || id == "" {
			return &ConfigurationError{Kind: SchemaInvalid, Path: fr.path(), Message: "condition missing id attribute"}
		}
		evaluatorClass, _ := c.Attr("evaluator")
		expr := strings.TrimSpace(c.Text)
		if expr == "" {
			return &ConfigurationError{Kind: EmptyConditionExpression, Path: fr.path(), Message: fmt.Sprintf("condition %q has an empty expression", id)}
		}

		ev, err := s.factory.Create(evaluatorClass, expr)
		if err != nil {
			return &ConfigurationError{Kind: FactoryInstantiationFailure, Path: fr.path(), Message: fmt.Sprintf("condition %q", id), Cause: err}
		}
		if err := fr.registerCondition(id, ev); err != nil {
			return &ConfigurationError{Kind: DuplicateConditionId, Path: fr.path(), Message: err.Error()}
		}
	}
	return nil
}

func (s *session) digestProfiles(node *xmlnode.Node, seq *resource.Seq) error {
	for _, p := range node.ChildrenNamed("profile") {
		base, _ := p.Attr("base-profile")
		subsRaw, _ := p.Attr("sub-profiles")

		var subs []string
		for _, sp := range strings.Split(subsRaw, ",") {
			sp = strings.TrimSpace(sp)
			if sp != "" {
				subs = append(subs, sp)
			}
		}
		seq.AddProfileSet(resource.NewProfileSet(base, subs...))
	}
	return nil
}

// digestImport resolves an <import file="X"> against the current base
// URI, applies @NAME@ textual substitution from the import's own <param>
// children, pushes a new frame for cycle detection, and recursively
// digests the result with the imported file's parent URI as the new base.
func (s *session) digestImport(ctx context.Context, node *xmlnode.Node, fr *frame, baseURI string) (*resource.Seq, error) {
	file, ok := node.Attr("file")
	if !ok || file == "" {
		return nil, &ConfigurationError{Kind: SchemaInvalid, Path: fr.path(), Message: "import element missing file attribute"}
	}

	resolved, err := uri.Resolve(baseURI, file)
	if err != nil {
		return nil, &ConfigurationError{Kind: ImportIOFailure, Path: fr.path(), Message: "failed to resolve import " + file, Cause: err}
	}
	normalized, err := uri.Normalize(resolved)
	if err != nil {
		return nil, &ConfigurationError{Kind: ImportIOFailure, Path: fr.path(), Message: "failed to normalize import " + file, Cause: err}
	}
	if fr.onStack(normalized) {
		return nil, &ConfigurationError{Kind: ImportCycle, Path: fr.path(), Message: fmt.Sprintf("Invalid circular reference to %q", file)}
	}

	raw, err := s.loader.Open(resolved)
	if err != nil {
		return nil, &ConfigurationError{Kind: ImportIOFailure, Path: fr.path(), Message: "failed to load import " + file, Cause: err}
	}
	data, err := io.ReadAll(raw)
	if err != nil {
		return nil, &ConfigurationError{Kind: ImportIOFailure, Path: fr.path(), Message: "failed to read import " + file, Cause: err}
	}

	text := string(data)
	for _, paramNode := range node.ChildrenNamed("param") {
		name, ok := paramNode.Attr("name")
		if !ok || name == "" {
			continue
		}
		text = strings.ReplaceAll(text, "@"+name+"@", xmlnode.InnerXML(paramNode))
	}

	parentURI, err := uri.Parent(resolved)
	if err != nil {
		return nil, &ConfigurationError{Kind: ImportIOFailure, Path: fr.path(), Message: "failed to derive parent of import " + file, Cause: err}
	}

	child := newFrame(path.Base(resolved), resolved, normalized, fr)
	return s.digestStream(ctx, strings.NewReader(text), child, parentURI, ModeRoot)
}

// digestReader produces the org.xml.sax.driver resource-config for a
// <reader> element: repeated "sax-handler" params from handlers/handler,
// "feature-on"/"feature-off" params from features/setOn|setOff, and
// ordinary typed params from params/param.
func (s *session) digestReader(node *xmlnode.Node, fr *frame) (*resource.Config, error) {
	class, ok := node.Attr("class")
	if !ok || class == "" {
		return nil, &ConfigurationError{Kind: SchemaInvalid, Path: fr.path(), Message: "reader element missing class attribute"}
	}

	path, err := selector.Compile("org.xml.sax.driver", nil)
	if err != nil {
		return nil, &ConfigurationError{Kind: SchemaInvalid, Path: fr.path(), Message: "failed to compile reader selector", Cause: err}
	}
	cfg := resource.NewConfig(path, class)

	for _, handlers := range node.ChildrenNamed("handlers") {
		for _, h := range handlers.ChildrenNamed("handler") {
			if cls, ok := h.Attr("class"); ok {
				cfg.Params.Add(resource.Parameter{Name: "sax-handler", Value: cls})
			}
		}
	}
	for _, features := range node.ChildrenNamed("features") {
		for _, on := range features.ChildrenNamed("setOn") {
			if f, ok := on.Attr("feature"); ok {
				cfg.Params.Add(resource.Parameter{Name: "feature-on", Value: f})
			}
		}
		for _, off := range features.ChildrenNamed("setOff") {
			if f, ok := off.Attr("feature"); ok {
				cfg.Params.Add(resource.Parameter{Name: "feature-off", Value: f})
			}
		}
	}
	for _, params := range node.ChildrenNamed("params") {
		for _, p := range params.ChildrenNamed("param") {
			name, _ := p.Attr("name")
			typ, _ := p.Attr("type")
			cfg.Params.Add(resource.Parameter{Name: name, Type: typ, Value: paramValue(p)})
		}
	}

	return cfg, nil
}

// digestResourceConfig builds a Config from a <resource-config> element:
// its selector, an optional inline or idRef condition (falling back to
// the frame's default-condition-ref), the default-target-profile, and
// its <param> children.
func (s *session) digestResourceConfig(node *xmlnode.Node, fr *frame) (*resource.Config, error) {
	selectorAttr, ok := node.Attr("selector")
	if !ok || selectorAttr == "" {
		selectorAttr = "*"
	}

	namespaces := node.EffectiveNamespaces()
	path, err := selector.Compile(selectorAttr, namespaces)
	if err != nil {
		return nil, &ConfigurationError{Kind: SchemaInvalid, Path: fr.path(), Message: fmt.Sprintf("invalid selector %q", selectorAttr), Cause: err}
	}
	if err := s.bindPredicateEvaluators(path, fr); err != nil {
		return nil, err
	}

	resourceLocator, _ := node.Attr("factory")
	if resourceLocator == "" {
		if res, ok := node.Attr("resource"); ok {
			resourceLocator = res
		}
	}

	cfg := resource.NewConfig(path, resourceLocator)

	cfg.TargetProfile = fr.defaultTargetProfile
	if v, ok := node.Attr("target-profile"); ok {
		cfg.TargetProfile = v
	}

	conditionRef := fr.defaultConditionRef
	var conditionNode *xmlnode.Node
	for _, c := range node.ChildrenNamed("condition") {
		conditionNode = c
		break
	}
	switch {
	case conditionNode != nil:
		if idRef, ok := conditionNode.Attr("idRef"); ok && idRef != "" {
			ev, found := fr.lookupCondition(idRef)
			if !found {
				return nil, &ConfigurationError{Kind: UnknownConditionIdRef, Path: fr.path(), Message: fmt.Sprintf("no condition registered for idRef %q", idRef)}
			}
			cfg.Condition = ev
		} else {
			evaluatorClass, _ := conditionNode.Attr("evaluator")
			expr := strings.TrimSpace(conditionNode.Text)
			if expr == "" {
				return nil, &ConfigurationError{Kind: EmptyConditionExpression, Path: fr.path(), Message: "inline condition has an empty expression"}
			}
			ev, err := s.factory.Create(evaluatorClass, expr)
			if err != nil {
				return nil, &ConfigurationError{Kind: FactoryInstantiationFailure, Path: fr.path(), Message: "inline condition", Cause: err}
			}
			cfg.Condition = ev
		}
	case conditionRef != "":
		ev, found := fr.lookupCondition(conditionRef)
		if !found {
			return nil, &ConfigurationError{Kind: UnknownConditionIdRef, Path: fr.path(), Message: fmt.Sprintf("no condition registered for default-condition-ref %q", conditionRef)}
		}
		cfg.Condition = ev
	}

	for _, p := range node.ChildrenNamed("param") {
		name, _ := p.Attr("name")
		typ, _ := p.Attr("type")
		cfg.Params.Add(resource.Parameter{Name: name, Type: typ, Value: paramValue(p), XML: xmlChildOrNil(p)})
	}

	return cfg, nil
}

// bindPredicateEvaluators instantiates the default (MVEL) evaluator for
// every Expression predicate in path, mutating each Predicate in place.
// Expression predicates are an arbitrary-text fallback in the selector
// grammar (spec.md §4.1); unlike resource-config conditions they never
// name a className, so they always use the default evaluator family.
func (s *session) bindPredicateEvaluators(path *selector.Path, fr *frame) error {
	for i := range path.Steps {
		step := &path.Steps[i]
		for j := range step.Predicates {
			pred := &step.Predicates[j]
			if pred.Kind != selector.Expression {
				continue
			}
			ev, err := s.factory.Create("", pred.Expr)
			if err != nil {
				return &ConfigurationError{Kind: FactoryInstantiationFailure, Path: fr.path(), Message: fmt.Sprintf("selector predicate [%s]", pred.Expr), Cause: err}
			}
			pred.Evaluator = ev
		}
	}
	return nil
}

func xmlChildOrNil(p *xmlnode.Node) *xmlnode.Node {
	if len(p.Children) > 0 {
		return p
	}
	return nil
}

// digestExtensionElement resolves the classpath-style "-smooks.xml"
// resource for an extension namespace, digesting it once per namespace
// URI (cached thereafter) in ModeExtension, and returns the resulting
// resource-configs to be appended into the outer sequence.
func (s *session) digestExtensionElement(ctx context.Context, node *xmlnode.Node, fr *frame, baseURI string) (*resource.Seq, error) {
	nsURI := node.Space
	if cached, ok := s.extensionCache[nsURI]; ok {
		return cached, nil
	}

	extPath := classpathPath(nsURI)
	r, err := s.resolver.Resolve(nsURI)
	if err != nil {
		return nil, &ConfigurationError{Kind: ExtensionResourceMissing, Path: fr.path(), Message: fmt.Sprintf("no extension resource found for namespace %q at %q", nsURI, extPath), Cause: err}
	}

	extFrame := newFrame(extPath, extPath, extPath, fr)
	seq, err := s.digestStream(ctx, r, extFrame, baseURI, ModeExtension)
	if err != nil {
		return nil, err
	}

	s.extensionCache[nsURI] = seq
	return seq, nil
}

// classpathPath mirrors the original's classpath lookup convention:
// "/META-INF<namespace-path>-smooks.xml".
func classpathPath(namespaceURI string) string {
	if u, err := url.Parse(namespaceURI); err == nil && strings.Trim(u.Path, "/") != "" {
		return "/META-INF/" + strings.Trim(u.Path, "/") + "-smooks.xml"
	}
	trimmed := strings.TrimPrefix(namespaceURI, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.Trim(trimmed, "/")
	return "/META-INF/" + trimmed + "-smooks.xml"
}
