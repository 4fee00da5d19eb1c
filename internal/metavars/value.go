// Package metavars implements the constraint-propagation core of the
// type-inference engine: metavalue sets (component A), data-type patterns
// (component B), metavariable storage (component C), and the
// reference/alias layer (component D). The four components share one
// package because they are mutually recursive: a DataTypeSet holds
// Patterns, a Pattern holds References, a Reference points at a Data
// block, and a Data block's ValueSet can itself hold a DataTypeSet of
// Patterns. See DESIGN.md for why Go's import graph forces this, where
// the original Rust crate could spread the same cycle across five
// modules.
package metavars

import "fmt"

// Tri is a three-valued logic result: True, False, or Unknown. All partial
// predicates in this package (Covers, DataTypeSet.SupersetOf) return Tri
// rather than bool, and callers must propagate Unknown rather than
// defaulting it to either boolean (§9, "Three-valued logic").
type Tri int

const (
	False Tri = iota
	True
	Unknown
)

func (t Tri) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// And is logical conjunction lifted to three-valued logic: Unknown
// propagates unless the other operand is already False.
func (t Tri) And(o Tri) Tri {
	if t == False || o == False {
		return False
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return True
}

// FromBool lifts a definite boolean into Tri.
func FromBool(b bool) Tri {
	if b {
		return True
	}
	return False
}

// ValueKind identifies which metatype a MetaValue or metavariable holds.
type ValueKind int

const (
	KindBoolean ValueKind = iota
	KindInteger
	KindDataType
)

func (k ValueKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindDataType:
		return "data-type"
	default:
		return "unknown kind"
	}
}

// Value is a tagged union over the three metatypes (§3, "MetaValue").
// Exactly one of the Bool, Int and Type accessors reports ok for any Value
// produced by the constructors below.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	d    Concrete
}

func BoolValue(b bool) Value   { return Value{kind: KindBoolean, b: b} }
func IntValue(i int64) Value   { return Value{kind: KindInteger, i: i} }
func TypeValue(d Concrete) Value { return Value{kind: KindDataType, d: d} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

func (v Value) Int() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

func (v Value) Type() (Concrete, bool) {
	if v.kind != KindDataType {
		return Concrete{}, false
	}
	return v.d, true
}

func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return fmt.Sprintf("%t", v.b)
	case KindInteger:
		return fmt.Sprintf("%d", v.i)
	case KindDataType:
		return v.d.String()
	default:
		return "<invalid value>"
	}
}
