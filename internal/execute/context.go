package execute

import "github.com/smooks-go/cdrl/internal/resource"

// elementFrame is the mutable per-element state the engine keeps on its
// ancestor stack: the attributes seen at element start and the character
// content accumulated since.
type elementFrame struct {
	local string
	attrs map[string]string
	text  []byte
}

// elementContext implements selector.Context for one (frame, binding)
// pair: Param resolves against the specific binding's own resource-config
// parameters, so the same frame yields a different Context per handler
// it is evaluated for.
type elementContext struct {
	frame  *elementFrame
	params *resource.ParamList
}

func (c *elementContext) ElementName() string {
	return c.frame.local
}

func (c *elementContext) Attribute(local string) (string, bool) {
	v, ok := c.frame.attrs[local]
	return v, ok
}

func (c *elementContext) Attributes() map[string]string {
	return c.frame.attrs
}

func (c *elementContext) Text() string {
	return string(c.frame.text)
}

func (c *elementContext) Param(name string) (string, bool) {
	if c.params == nil {
		return "", false
	}
	p, ok := c.params.First(name)
	if !ok {
		return "", false
	}
	return p.Value, true
}
