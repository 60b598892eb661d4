package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Compile parses a selector string against a namespace-prefix table and
// returns the compiled Path. The grammar recognized is:
//
//	'/'? step ('/' step)*
//	step       := name_test predicate*
//	name_test  := '*' | qname | 'text()'
//	predicate  := '[' expr ']'
//	expr       := integer | name '=' literal | arbitrary-expression
//
// A leading '/' yields an initial Document step. text() becomes a Text
// step and marks its enclosing Element step's AccessesText. Integer
// predicates become Position(n); name=literal predicates become
// AttributeEquals; anything else is passed through as an Expression
// predicate carrying the raw text, to be bound to an evalfactory.Evaluator
// by the digester.
func Compile(sel string, namespaces map[string]string) (*Path, error) {
	if namespaces == nil {
		namespaces = map[string]string{}
	}
	path := &Path{Namespaces: namespaces, Raw: sel}

	rest := sel
	if strings.HasPrefix(rest, "/") {
		path.Steps = append(path.Steps, Step{Kind: Document})
		rest = rest[1:]
	}
	if rest == "" {
		return path, nil
	}

	for _, chunk := range splitSteps(rest) {
		if chunk == "" {
			return nil, fmt.Errorf("selector: empty step in %q", sel)
		}
		step, err := compileStep(chunk, namespaces)
		if err != nil {
			return nil, fmt.Errorf("selector: %q: %w", sel, err)
		}
		path.Steps = append(path.Steps, step)
	}

	markTextAccess(path)
	return path, nil
}

// splitSteps splits a selector's step chain on '/', ignoring any '/'
// found inside a bracketed predicate.
func splitSteps(s string) []string {
	var steps []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '/':
			if depth == 0 {
				steps = append(steps, s[start:i])
				start = i + 1
			}
		}
	}
	steps = append(steps, s[start:])
	return steps
}

func compileStep(chunk string, namespaces map[string]string) (Step, error) {
	nameTest, predicateText := splitPredicates(chunk)

	if nameTest == "text()" {
		return Step{Kind: Text}, nil
	}

	var step Step
	if strings.HasPrefix(nameTest, "@") {
		step.Kind = Attribute
		nameTest = nameTest[1:]
	} else {
		step.Kind = Element
	}

	prefix, local, err := splitQName(nameTest)
	if err != nil {
		return Step{}, err
	}
	step.Prefix = prefix
	step.Local = local
	if prefix != "" {
		nsURI, ok := namespaces[prefix]
		if !ok {
			return Step{}, fmt.Errorf("unbound namespace prefix %q", prefix)
		}
		step.NamespaceURI = nsURI
	}

	for _, raw := range predicateText {
		pred, err := compilePredicate(raw)
		if err != nil {
			return Step{}, err
		}
		step.Predicates = append(step.Predicates, pred)
	}

	return step, nil
}

// splitPredicates separates a step's name test from its bracketed
// predicate bodies, e.g. "b[2][@x='y']" -> "b", ["2", "@x='y'"].
func splitPredicates(chunk string) (nameTest string, predicates []string) {
	i := strings.IndexByte(chunk, '[')
	if i < 0 {
		return chunk, nil
	}
	nameTest = chunk[:i]
	rest := chunk[i:]
	depth := 0
	start := -1
	for j, r := range rest {
		switch r {
		case '[':
			if depth == 0 {
				start = j + 1
			}
			depth++
		case ']':
			depth--
			if depth == 0 {
				predicates = append(predicates, rest[start:j])
			}
		}
	}
	return nameTest, predicates
}

func splitQName(s string) (prefix, local string, err error) {
	if s == "*" {
		return "", "*", nil
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:], nil
	}
	if s == "" {
		return "", "", fmt.Errorf("empty name test")
	}
	return "", s, nil
}

func compilePredicate(expr string) (Predicate, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return Predicate{}, fmt.Errorf("empty predicate")
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 1 {
			return Predicate{}, fmt.Errorf("position predicate %q must be >= 1", trimmed)
		}
		return Predicate{Kind: Position, N: n}, nil
	}

	if name, literal, ok := splitAttrEquals(trimmed); ok {
		return Predicate{Kind: AttributeEquals, AttrLocal: name, Literal: literal}, nil
	}

	return Predicate{Kind: Expression, Expr: trimmed}, nil
}

// splitAttrEquals recognizes the "name='literal'" or "@name=\"literal\""
// predicate shape.
func splitAttrEquals(expr string) (name, literal string, ok bool) {
	eq := strings.IndexByte(expr, '=')
	if eq < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(expr[:eq])
	name = strings.TrimPrefix(name, "@")
	if name == "" || strings.ContainsAny(name, " \t()") {
		return "", "", false
	}
	value := strings.TrimSpace(expr[eq+1:])
	if len(value) < 2 {
		return "", "", false
	}
	quote := value[0]
	if (quote != '\'' && quote != '"') || value[len(value)-1] != quote {
		return "", "", false
	}
	return name, value[1 : len(value)-1], true
}

// markTextAccess sets AccessesText on every Element step immediately
// followed by a Text step in the same Path.
func markTextAccess(path *Path) {
	for i := 0; i+1 < len(path.Steps); i++ {
		if path.Steps[i].Kind == Element && path.Steps[i+1].Kind == Text {
			path.Steps[i].accessesText = true
		}
	}
}
