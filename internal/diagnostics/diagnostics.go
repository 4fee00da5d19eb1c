// Package diagnostics defines the structured error kinds the constraint
// solver can raise, and the sink interface through which a caller receives
// them. It is the lowest-level package in the module: nothing else here
// depends on it being anything more than error values plus a place to send
// them.
package diagnostics

import (
	"fmt"
	"strings"
)

// Kind identifies which of the six error kinds a Diagnostic carries.
type Kind int

const (
	// OverConstrained means a metavariable's value set became empty.
	OverConstrained Kind = iota
	// ArityMismatch means a pattern's parameter pack had the wrong length,
	// or named/unnamed parameters disagreed with the class.
	ArityMismatch
	// TypeKindMismatch means a metavariable was used where its metatype
	// (boolean, integer, data-type) does not match what was required.
	TypeKindMismatch
	// Underdetermined means the solver quiesced with non-singleton sets.
	Underdetermined
	// SystemTooComplex means a superset/covers query returned unknown and
	// the result was load-bearing.
	SystemTooComplex
	// IllFormedConcreteType means concretization produced a type that
	// fails its class's well-formedness predicate.
	IllFormedConcreteType
)

func (k Kind) String() string {
	switch k {
	case OverConstrained:
		return "over-constrained"
	case ArityMismatch:
		return "arity mismatch"
	case TypeKindMismatch:
		return "type kind mismatch"
	case Underdetermined:
		return "underdetermined"
	case SystemTooComplex:
		return "system too complex"
	case IllFormedConcreteType:
		return "ill-formed concrete type"
	default:
		return "unknown diagnostic"
	}
}

// Diagnostic is the structured report the solver hands to a Sink. Reasons
// carries the human-readable reason strings of the Constraints it
// references, in insertion order (§7: "All diagnostics carry the
// human-readable reason strings from the Constraints they reference, in
// insertion order").
type Diagnostic struct {
	Kind     Kind
	Variable string // display name of the primary metavariable involved, if any
	Message  string
	Reasons  []string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.headline())
	for _, r := range d.Reasons {
		fmt.Fprintf(&b, "\n  - %s", r)
	}
	return b.String()
}

// headline renders the Kind/Variable/Message portion of the diagnostic
// without its trailing Reasons, so sinks that list reasons separately
// (sink_tty.go's colorized branch) don't have to reparse Error's output.
func (d *Diagnostic) headline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", d.Kind)
	if d.Variable != "" {
		fmt.Fprintf(&b, " (%s)", d.Variable)
	}
	if d.Message != "" {
		fmt.Fprintf(&b, ": %s", d.Message)
	}
	return b.String()
}

// New builds a Diagnostic. Reasons are copied in insertion order.
func New(kind Kind, variable, message string, reasons ...string) *Diagnostic {
	return &Diagnostic{
		Kind:     kind,
		Variable: variable,
		Message:  message,
		Reasons:  append([]string(nil), reasons...),
	}
}

// Sink is the interface the solver emits structured diagnostics to. It is
// one of the two interfaces the engine consumes from its caller (§6).
type Sink interface {
	Emit(*Diagnostic)
}

// CollectingSink gathers every emitted Diagnostic into a slice, in emission
// order. Used by tests and by callers that want to batch-report at the end
// of a run.
type CollectingSink struct {
	Diagnostics []*Diagnostic
}

func (s *CollectingSink) Emit(d *Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// DiscardSink drops every diagnostic. Useful as a zero-value default so
// library consumers opt into reporting rather than being forced to wire
// one up for every call site.
type DiscardSink struct{}

func (DiscardSink) Emit(*Diagnostic) {}
