package registry

import (
	"fmt"
	"strings"
)

// Callable is a free function declared against clone-distinct types, e.g. an
// operator declared externally for specific clones
type Callable struct {
	Name       string
	Parameters []string // Parameter type names
	Result     string   // Result type name
}

func (c *Callable) String() string {
	return fmt.Sprintf("%v(%v) -> %v", c.Name, strings.Join(c.Parameters, ", "), c.Result)
}

// RegisterCallable records a free callable for overload resolution
func (r *Registry) RegisterCallable(callable *Callable) {
	r.callables = append(r.callables, callable)
}

// ResolveCall resolves a call by exact parameter-type match. Clones are
// nominally distinct, so an argument of a clone type never matches a parameter
// of its original or of a sibling clone.
func (r *Registry) ResolveCall(name string, args []string) (*Callable, error) {
	var matched []*Callable
	for _, callable := range r.callables {
		if callable.Name != name || len(callable.Parameters) != len(args) {
			continue
		}
		viable := true
		for i, parameter := range callable.Parameters {
			if parameter != args[i] {
				viable = false
				break
			}
		}
		if viable {
			matched = append(matched, callable)
		}
	}
	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("no viable overload for %v(%v)", name, strings.Join(args, ", "))
	case 1:
		return matched[0], nil
	}
	return nil, fmt.Errorf("ambiguous call %v(%v): %v candidates", name, strings.Join(args, ", "), len(matched))
}
