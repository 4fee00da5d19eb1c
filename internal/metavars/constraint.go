package metavars

// ConstraintKind distinguishes the three things a Constraint can assert
// about a metavariable (§3, "Constraint").
type ConstraintKind int

const (
	ConstraintWithin ConstraintKind = iota
	ConstraintFunction
	ConstraintPattern
)

// Constraint is one assertion queued against a metavariable: either that
// its value lies within a given ValueSet, that it participates in a
// function relationship with other metavariables, or that a data-type
// metavariable must match a given Pattern. Reason is a short, human
// readable label surfaced in diagnostics (e.g. "return type of add_decimal").
type Constraint struct {
	Kind     ConstraintKind
	Set      ValueSet
	Function *FunctionDescriptor
	Operands []*Reference
	Pattern  *Pattern
	Reason   string
}

// Within builds a Constraint asserting membership in s. The Reason is
// filled in by Reference.Constrain from its own parameter.
func Within(s ValueSet) Constraint {
	return Constraint{Kind: ConstraintWithin, Set: s}
}

// InFunction builds a Constraint tying a metavariable to a function over
// the given operands (the metavariable's own reference is expected to be
// one of, or derived from, this list by the caller's convention).
func InFunction(f *FunctionDescriptor, operands ...*Reference) Constraint {
	return Constraint{Kind: ConstraintFunction, Function: f, Operands: operands}
}

// MatchesPattern builds a Constraint asserting that a data-type
// metavariable matches p.
func MatchesPattern(p *Pattern) Constraint {
	return Constraint{Kind: ConstraintPattern, Pattern: p}
}

func (c Constraint) withReason(reason string) Constraint {
	c.Reason = reason
	return c
}
