// Package registry holds the lookup tables a solving session binds
// against: the type classes patterns may reference and the functions
// Function constraints may invoke. Classes can be declared in YAML
// (yaml.go); functions are always implemented in Go and registered by
// name, mirroring how internal/ext/config.go separates declarative
// dependency binding from the Go code that backs it.
package registry

import (
	"fmt"

	"github.com/jvanstraten/typeinfer/internal/metavars"
)

// Registry is a mutable set of named classes and functions a scope's
// patterns and constraints are resolved against.
type Registry struct {
	classes   map[string]*metavars.ClassDescriptor
	functions map[string]*metavars.FunctionDescriptor
}

func New() *Registry {
	return &Registry{
		classes:   make(map[string]*metavars.ClassDescriptor),
		functions: make(map[string]*metavars.FunctionDescriptor),
	}
}

// AddClass registers a class descriptor, overwriting any previous
// registration under the same name.
func (r *Registry) AddClass(c *metavars.ClassDescriptor) { r.classes[c.Name] = c }

// AddFunction registers a function descriptor, overwriting any previous
// registration under the same name.
func (r *Registry) AddFunction(f *metavars.FunctionDescriptor) { r.functions[f.Name] = f }

// Class looks up a class by name.
func (r *Registry) Class(name string) (*metavars.ClassDescriptor, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown class %q", name)
	}
	return c, nil
}

// Function looks up a function by name.
func (r *Registry) Function(name string) (*metavars.FunctionDescriptor, error) {
	f, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown function %q", name)
	}
	return f, nil
}

// ClassNames returns every registered class name, for diagnostics and
// CLI listing.
func (r *Registry) ClassNames() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	return names
}

// FunctionNames returns every registered function name.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	return names
}

// Merge copies every class and function from o into r, overwriting
// conflicting names.
func (r *Registry) Merge(o *Registry) {
	for name, c := range o.classes {
		r.classes[name] = c
	}
	for name, f := range o.functions {
		r.functions[name] = f
	}
}
