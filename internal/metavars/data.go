package metavars

import (
	"fmt"

	"github.com/jvanstraten/typeinfer/internal/diagnostics"
)

// appliedConstraint records one Within constraint that has already been
// folded into a Data block's Possible set, kept only so a later
// contradiction can reconstruct a minimal witness (§7).
type appliedConstraint struct {
	set    ValueSet
	reason string
}

// Data is the canonical state backing one equivalence class of
// metavariables: its current possible-value set, the function constraints
// still awaiting propagation, and the history needed to explain a
// contradiction. Two or more References end up sharing a Data block once
// they are unified (§5, "Reference -> Alias -> Data").
type Data struct {
	key      *Key
	kind     ValueKind
	possible ValueSet
	pending  []Constraint
	history  []appliedConstraint
	dirty    bool
	complete bool

	// dependents lists the blocks holding a Function constraint that reads
	// this block as an operand. Narrowing this block's possible set must
	// re-dirty them even when they have no pending work of their own right
	// now, or a dependent whose operands resolve mid-sweep would go clean
	// and never be revisited (§4.E).
	dependents []*Data
}

func newData(kind ValueKind, key *Key) *Data {
	return &Data{key: key, kind: kind, possible: FullValueSet(kind)}
}

func (d *Data) displayName() string {
	if d.key != nil {
		return d.key.String()
	}
	return "<anonymous>"
}

// within applies a Within-shaped tightening, returning an OverConstrained
// diagnostic carrying a minimal witness if the result would be empty.
func (d *Data) within(s ValueSet, reason string) error {
	next := d.possible.Intersect(s)
	if !next.IsEmpty() {
		d.possible = next
		d.history = append(d.history, appliedConstraint{set: s, reason: reason})
		d.dirty = true
		d.wakeDependents()
		return nil
	}

	hist := append(append([]appliedConstraint(nil), d.history...), appliedConstraint{set: s, reason: reason})
	witness := minimalWitness(d.kind, hist)
	reasons := make([]string, len(witness))
	for i, w := range witness {
		reasons[i] = w.reason
	}
	return diagnostics.New(diagnostics.OverConstrained, d.displayName(),
		fmt.Sprintf("no value of %s satisfies every constraint placed on it", d.displayName()), reasons...)
}

// minimalWitness greedily shrinks the applied-constraint history to the
// smallest prefix-preserving subset that is still jointly unsatisfiable
// (§7): walk the history in reverse, tentatively drop each entry, and keep
// the drop only if the remaining entries are still contradictory.
func minimalWitness(kind ValueKind, hist []appliedConstraint) []appliedConstraint {
	kept := append([]appliedConstraint(nil), hist...)
	for i := len(kept) - 1; i >= 0; i-- {
		candidate := append(append([]appliedConstraint(nil), kept[:i]...), kept[i+1:]...)
		if intersectAll(kind, candidate).IsEmpty() {
			kept = candidate
		}
	}
	return kept
}

func intersectAll(kind ValueKind, cs []appliedConstraint) ValueSet {
	s := FullValueSet(kind)
	for _, c := range cs {
		s = s.Intersect(c.set)
	}
	return s
}

// addPending records a Function constraint for repeated re-evaluation by
// the solver's worklist (§4.E). Each operand block is told to wake d when
// it narrows, so a dependent chain (e.g. c=a+b; d=c+e) keeps propagating
// even if d's own possible set has nothing left to learn from this sweep.
func (d *Data) addPending(c Constraint) {
	d.pending = append(d.pending, c)
	d.dirty = true
	if c.Kind == ConstraintFunction {
		for _, op := range c.Operands {
			op.data().addDependent(d)
		}
	}
}

// addDependent registers dep to be re-dirtied whenever d's possible set
// narrows. Idempotent: the same dependent is never linked twice.
func (d *Data) addDependent(dep *Data) {
	for _, existing := range d.dependents {
		if existing == dep {
			return
		}
	}
	d.dependents = append(d.dependents, dep)
}

// wakeDependents re-dirties every block with a Function constraint that
// reads this one as an operand, so the solver's worklist revisits it even
// when it has no pending constraint of its own left to re-check.
func (d *Data) wakeDependents() {
	for _, dep := range d.dependents {
		dep.dirty = true
	}
}

// checkUpdates re-evaluates every pending function constraint once,
// attempting full evaluation when all operands are resolved and interval
// propagation otherwise. Returns an error on contradiction and reports
// whether anything changed (§4.E, "re-evaluate constraints").
func (d *Data) checkUpdates() (changed bool, err error) {
	d.dirty = false
	remaining := d.pending[:0:0]
	for _, c := range d.pending {
		if c.Kind != ConstraintFunction {
			remaining = append(remaining, c)
			continue
		}
		f := c.Function
		values := make([]Value, len(c.Operands))
		allResolved := true
		inputSets := make([]ValueSet, len(c.Operands))
		for i, op := range c.Operands {
			inputSets[i] = op.PossibleValues()
			if v, ok := inputSets[i].Value(); ok {
				values[i] = v
			} else {
				allResolved = false
			}
		}

		if allResolved && f.Evaluate != nil {
			result, evalErr := f.Evaluate(values)
			if evalErr != nil {
				return changed, diagnostics.New(diagnostics.IllFormedConcreteType, d.displayName(), evalErr.Error())
			}
			if err := d.within(SingletonSet(result), c.Reason); err != nil {
				return changed, err
			}
			changed = true
			// Evaluated once and for all: drop the constraint instead of
			// re-running it every sweep.
			continue
		}

		if f.Propagate == nil {
			remaining = append(remaining, c)
			continue
		}
		newInputs, newOutput, didChange := f.Propagate(inputSets, d.possible)
		if !didChange {
			remaining = append(remaining, c)
			continue
		}
		for i, op := range c.Operands {
			if err := op.Constrain(Within(newInputs[i]), c.Reason); err != nil {
				return changed, err
			}
		}
		if err := d.within(newOutput, c.Reason); err != nil {
			return changed, err
		}
		changed = true
		remaining = append(remaining, c) // may still narrow further in later sweeps
	}
	d.pending = remaining
	return changed, nil
}

// covers implements the three-valued coverage check (§4.C): true only when
// d is stable, meaning either the solver has marked it complete or it is
// already resolved to a single value, and its possible set is a superset of
// other's; false only when the two sets are already disjoint, since a
// possible set only ever shrinks, so no legal future refinement can make a
// disjoint pair overlap, or when d is stable, other is complete, and d's
// set misses some of other's values; anything else is unknown, because a
// refinement of either side could still flip the answer.
func (d *Data) covers(other *Data) Tri {
	if d.possible.Intersect(other.possible).IsEmpty() {
		return False
	}
	_, resolved := d.possible.Value()
	if !resolved && !d.complete {
		return Unknown
	}
	sup := d.possible.SupersetOf(other.possible)
	if sup == False && !other.complete {
		return Unknown
	}
	return sup
}

// markComplete is invoked once the worklist quiesces (§4.E). It latches d
// as complete; on that first call a block with more than one remaining
// possible value yields an Underdetermined diagnostic, and any later call
// returns nil. The solver calls it once per block and runs no further
// pass after marking blocks complete.
func (d *Data) markComplete() error {
	if d.complete {
		return nil
	}
	d.complete = true
	if _, ok := d.possible.Value(); ok {
		return nil
	}
	if d.possible.IsEmpty() {
		return nil // already reported as OverConstrained at the point of contradiction
	}
	return diagnostics.New(diagnostics.Underdetermined, d.displayName(),
		fmt.Sprintf("%s is not fully determined: possible values are %s", d.displayName(), d.possible.String()))
}
