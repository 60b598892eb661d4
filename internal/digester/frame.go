package digester

import (
	"fmt"
	"strings"

	"github.com/smooks-go/cdrl/internal/selector"
)

// ConfigNamespace is the default namespace a root .cdrl document must
// declare. Any other default namespace fails digestion with
// UnsupportedNamespace.
const ConfigNamespace = "https://www.smooks.org/xsd/smooks-2.0.xsd"

// DigestMode records whether the current digestion pass is processing a
// root document or a nested extension namespace. It is threaded
// explicitly through every digestion call rather than kept as
// goroutine-local mutable state, so concurrent digestions on the same
// worker can never corrupt each other.
type DigestMode int

const (
	ModeRoot DigestMode = iota
	ModeExtension
)

// frame is one entry of the digestion stack: one configuration document
// (root or imported). The stack gives lexical scoping for idRef condition
// lookups, which walk parent frames until a match is found.
type frame struct {
	fileName   string
	fileURI    string
	normalized string
	parent     *frame
	defaultNS  string
	conditions map[string]selector.Evaluator

	defaultTargetProfile string
	defaultConditionRef  string
}

func newFrame(fileName, fileURI, normalized string, parent *frame) *frame {
	return &frame{
		fileName:   fileName,
		fileURI:    fileURI,
		normalized: normalized,
		parent:     parent,
		conditions: map[string]selector.Evaluator{},
	}
}

// registerCondition binds id to ev in this frame, failing with
// DuplicateConditionId if id was already registered here.
func (f *frame) registerCondition(id string, ev selector.Evaluator) error {
	if _, exists := f.conditions[id]; exists {
		return fmt.Errorf("duplicate condition id %q", id)
	}
	f.conditions[id] = ev
	return nil
}

// lookupCondition walks f and its ancestors for idRef, as the lexical
// scoping rules require.
func (f *frame) lookupCondition(idRef string) (selector.Evaluator, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if ev, ok := cur.conditions[idRef]; ok {
			return ev, true
		}
	}
	return nil, false
}

// onStack reports whether normalized is already present among f and its
// ancestors, the import-cycle check.
func (f *frame) onStack(normalized string) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if cur.normalized == normalized {
			return true
		}
	}
	return false
}

// path renders the frame's lineage as "/[root]/[imported.xml]", root
// first.
func (f *frame) path() string {
	var names []string
	for cur := f; cur != nil; cur = cur.parent {
		names = append([]string{cur.fileName}, names...)
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString("/[")
		b.WriteString(n)
		b.WriteString("]")
	}
	return b.String()
}
