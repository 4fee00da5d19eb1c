package metavars

import "fmt"

// Reference is a handle a Pattern, Constraint, or caller holds onto a
// metavariable. Multiple References can resolve to the same Data block
// once unified (§3, "Reference").
type Reference struct {
	alias *Alias
}

// NewReference allocates a fresh metavariable of the given metatype, with
// no constraints applied yet (possible set starts as the universal set).
func NewReference(kind ValueKind) *Reference {
	return &Reference{alias: newAlias(newData(kind, nil))}
}

// NewNamedReference is like NewReference but records key for display and
// diagnostics.
func NewNamedReference(kind ValueKind, key Key) *Reference {
	return &Reference{alias: newAlias(newData(kind, &key))}
}

// boundReference builds a Reference already resolved to v, used to lift a
// Concrete type's fields into Pattern form (valueset.go,
// concreteAsPattern) without needing a Scope.
func boundReference(v Value) *Reference {
	r := NewReference(v.Kind())
	r.alias.resolve().possible = SingletonSet(v)
	return r
}

func (r *Reference) data() *Data { return r.alias.resolve() }

// DisplayName returns the name this metavariable should be shown under in
// diagnostics and Pattern.String.
func (r *Reference) DisplayName() string { return r.data().displayName() }

// Value returns the single remaining possible value, if the metavariable
// is fully resolved.
func (r *Reference) Value() (Value, bool) { return r.data().possible.Value() }

// PossibleValues returns the metavariable's current possible-value set.
func (r *Reference) PossibleValues() ValueSet { return r.data().possible }

func (r *Reference) requireKind(k ValueKind) error {
	if r.data().kind != k {
		return fmt.Errorf("%s: expected a %s metavariable, got %s", r.DisplayName(), k, r.data().kind)
	}
	return nil
}

// Constrain queues or immediately applies c against this metavariable's
// Data block (§4.E). Within constraints apply eagerly; Function
// constraints are queued for the solver's worklist; Pattern constraints
// are lowered to an equivalent Within constraint over a data-type set.
func (r *Reference) Constrain(c Constraint, reason string) error {
	d := r.data()
	switch c.Kind {
	case ConstraintWithin:
		return d.within(c.Set, reason)
	case ConstraintPattern:
		return d.within(PatternValueSet(c.Pattern), reason)
	case ConstraintFunction:
		d.addPending(c.withReason(reason))
		return nil
	default:
		return fmt.Errorf("%s: unknown constraint kind", r.DisplayName())
	}
}

// Matches reports whether v lies within the metavariable's current
// possible-value set.
func (r *Reference) Matches(v Value) bool { return r.data().possible.Contains(v) }

// Covers reports whether every value other could still resolve to is also
// a value r could resolve to. Three-valued: besides the underlying set's
// own conservative coverage check (data-type metavariables), the answer is
// Unknown whenever r itself could still narrow further, since a later
// refinement could shrink r below other (§4.C; see Data.covers).
func (r *Reference) Covers(other *Reference) Tri {
	return r.data().covers(other.data())
}

// Unify merges r and other into the same equivalence class, intersecting
// their possible-value sets and carrying reason into the combined history
// so a later contradiction can explain itself.
func (r *Reference) Unify(other *Reference, reason string) error {
	if r.requireSameKind(other) != nil {
		return r.requireSameKind(other)
	}
	return r.alias.mergeInto(other.alias, reason)
}

func (r *Reference) requireSameKind(other *Reference) error {
	if r.data().kind != other.data().kind {
		return fmt.Errorf("%s and %s: cannot unify metavariables of different metatypes", r.DisplayName(), other.DisplayName())
	}
	return nil
}

// Dirty reports whether this metavariable's Data block has pending work
// for the solver's worklist (§4.E).
func (r *Reference) Dirty() bool { return r.data().dirty }

// CheckUpdates re-evaluates this metavariable's pending function
// constraints once. See Data.checkUpdates.
func (r *Reference) CheckUpdates() (changed bool, err error) { return r.data().checkUpdates() }

// MarkComplete signals that the worklist has quiesced and this
// metavariable will receive no further constraints. See Data.markComplete.
func (r *Reference) MarkComplete() error { return r.data().markComplete() }

// Key returns the identifying key this metavariable was bound under, if
// any (references produced by boundReference or NewReference carry none).
func (r *Reference) Key() (Key, bool) {
	d := r.data()
	if d.key == nil {
		return Key{}, false
	}
	return *d.key, true
}
