package resource

import "github.com/smooks-go/cdrl/internal/selector"

// GlobalParametersSelector is the sentinel selector used for the config
// that collects top-level <params> entries, mirroring the original's
// GLOBAL_PARAMETERS resource.
const GlobalParametersSelector = "GLOBAL_PARAMETERS"

// Config is a single (selector-path, resource-locator, parameter-map,
// condition) unit: one <resource-config> (or synthesized equivalent, such
// as a <reader> or the global parameters sentinel).
type Config struct {
	SelectorPath  *selector.Path
	Resource      string
	Params        *ParamList
	TargetProfile string
	Condition     selector.Evaluator
}

// NewConfig returns a Config with an initialized, empty Params list.
func NewConfig(path *selector.Path, resource string) *Config {
	return &Config{SelectorPath: path, Resource: resource, Params: &ParamList{}}
}

// NewGlobalParametersConfig builds the sentinel GLOBAL_PARAMETERS config
// that <params> children are appended to.
func NewGlobalParametersConfig() *Config {
	path, _ := selector.Compile(GlobalParametersSelector, nil)
	return NewConfig(path, GlobalParametersSelector)
}
