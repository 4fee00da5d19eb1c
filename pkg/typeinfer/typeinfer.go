// Package typeinfer is the embeddable façade over the constraint-propagation
// type-inference engine: build a Scope, bind metavariables, assert
// constraints, and Solve. cmd/typeinfer's CLI and pkg/typeinfer's gRPC
// service are both thin wrappers around this API; nothing in either
// reaches into internal/metavars or internal/solver directly.
package typeinfer

import (
	"strings"

	"github.com/jvanstraten/typeinfer/internal/diagnostics"
	"github.com/jvanstraten/typeinfer/internal/metavars"
	"github.com/jvanstraten/typeinfer/internal/registry"
	"github.com/jvanstraten/typeinfer/internal/solver"
)

// Engine pairs a registry with a fresh scope. Callers typically build one
// per solve: a scope is explicitly single-use and not safe to reuse across
// independent solves (§5).
type Engine struct {
	reg   *registry.Registry
	scope *metavars.Scope
}

// New builds an Engine over the given registry. Pass nil to use the
// built-in registry (internal/registry.Builtin).
func New(reg *registry.Registry) *Engine {
	if reg == nil {
		reg = registry.Builtin()
	}
	return &Engine{reg: reg, scope: metavars.NewScope()}
}

// Registry returns the registry this Engine resolves class and function
// names against.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// BindInteger returns the integer-kinded metavariable named name, creating it on
// first use.
func (e *Engine) BindInteger(name string) *metavars.Reference {
	return e.scope.Bind(metavars.GenericKey(name), metavars.KindInteger)
}

// BindBoolean returns the boolean-kinded metavariable named name, creating
// it on first use.
func (e *Engine) BindBoolean(name string) *metavars.Reference {
	return e.scope.Bind(metavars.GenericKey(name), metavars.KindBoolean)
}

// BindDataType returns the data-type-kinded metavariable named name,
// creating it on first use.
func (e *Engine) BindDataType(name string) *metavars.Reference {
	return e.scope.Bind(metavars.GenericKey(name), metavars.KindDataType)
}

// ConstrainRange narrows an integer metavariable to the closed interval
// [low, high].
func (e *Engine) ConstrainRange(name string, low, high int64, reason string) error {
	ref := e.BindInteger(name)
	within := metavars.FullValueSet(metavars.KindInteger)
	within.Integers = metavars.NewIntegerSet(metavars.Interval{Low: low, High: high, HasLow: true, HasHigh: true})
	return ref.Constrain(metavars.Within(within), reason)
}

// ConstrainFunction asserts that calling the named function on operands
// (in order) produces result's value, registering a Function constraint on
// result (§4.D).
func (e *Engine) ConstrainFunction(result, function string, operands ...string) error {
	fn, err := e.reg.Function(function)
	if err != nil {
		return err
	}
	resultRef := e.BindInteger(result)
	operandRefs := make([]*metavars.Reference, len(operands))
	for i, name := range operands {
		operandRefs[i] = e.BindInteger(name)
	}
	return resultRef.Constrain(metavars.InFunction(fn, operandRefs...), function+" applied to "+strings.Join(operands, ", "))
}

// Solve runs the worklist fixpoint over every metavariable bound so far and
// returns the solver's verdict.
func (e *Engine) Solve() solver.Result {
	return solver.Solve(e.scope)
}

// Report replays a solver.Result into sink, one Diagnostic at a time, in
// emission order. cmd/typeinfer uses it to print a Solve result through a
// diagnostics.WriterSink.
func Report(result solver.Result, sink diagnostics.Sink) {
	for _, d := range result.Diagnostics {
		sink.Emit(d)
	}
}

// IntegerValue reads back the current value of an integer metavariable, if it has
// been narrowed to a singleton.
func (e *Engine) IntegerValue(name string) (int64, bool) {
	ref := e.BindInteger(name)
	v, ok := ref.Value()
	if !ok {
		return 0, false
	}
	i, ok := v.Int()
	return i, ok
}
