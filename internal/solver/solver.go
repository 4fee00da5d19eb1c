// Package solver implements the worklist fixpoint loop that drives a Scope
// of metavariables to a solution: repeatedly re-evaluating every
// metavariable with pending function constraints until nothing changes,
// then running a mark-complete pass that turns any metavariable still
// holding more than one possible value into an Underdetermined diagnostic
// (§4.E).
package solver

import (
	"github.com/jvanstraten/typeinfer/internal/config"
	"github.com/jvanstraten/typeinfer/internal/diagnostics"
	"github.com/jvanstraten/typeinfer/internal/metavars"
)

// Result is the outcome of running Solve over a Scope.
type Result struct {
	// Diagnostics is empty iff every metavariable in the scope resolved to
	// exactly one value. On contradiction it holds exactly one entry (the
	// first one the worklist encountered, per its deterministic FIFO
	// order); on quiescent-but-underdetermined it holds one entry per
	// metavariable that never narrowed to a single value.
	Diagnostics []*diagnostics.Diagnostic
	Iterations  int
}

func (r Result) Solved() bool { return len(r.Diagnostics) == 0 }

// Solve drives scope's References to a fixpoint. References are
// re-evaluated in the scope's allocation order every sweep, which makes
// the result deterministic: given the same sequence of Bind/Constrain
// calls, the same contradiction (if any) is always the one reported.
func Solve(scope *metavars.Scope) Result {
	refs := scope.References()

	iterations := 0
	for {
		progressed := false
		for _, ref := range refs {
			if !ref.Dirty() {
				continue
			}
			iterations++
			if iterations > config.MaxSolverIterations {
				return Result{Diagnostics: []*diagnostics.Diagnostic{
					diagnostics.New(diagnostics.SystemTooComplex, "",
						"the constraint system did not converge within the solver's iteration budget"),
				}, Iterations: iterations}
			}
			changed, err := ref.CheckUpdates()
			if err != nil {
				return Result{Diagnostics: []*diagnostics.Diagnostic{asDiagnostic(err)}, Iterations: iterations}
			}
			if changed {
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	var diags []*diagnostics.Diagnostic
	for _, ref := range refs {
		if err := ref.MarkComplete(); err != nil {
			diags = append(diags, asDiagnostic(err))
		}
	}
	return Result{Diagnostics: diags, Iterations: iterations}
}

func asDiagnostic(err error) *diagnostics.Diagnostic {
	if d, ok := err.(*diagnostics.Diagnostic); ok {
		return d
	}
	return diagnostics.New(diagnostics.SystemTooComplex, "", err.Error())
}
