package registry

import "fmt"

// UnknownResourceError is returned when a resource-config names a resource
// locator no registered Module has claimed.
type UnknownResourceError struct {
	Resource string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("registry: no visitor registered for resource %q", e.Resource)
}
