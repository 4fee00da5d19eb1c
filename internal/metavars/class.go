package metavars

import "fmt"

// ClassKind distinguishes the three flavors of type class a Pattern's class
// field may name (§3, "class").
type ClassKind int

const (
	ClassSimple ClassKind = iota
	ClassCompound
	ClassUserDefined
)

// ParameterKind is the metatype a class requires at a given parameter
// position: a nested data type, an unsigned integer (e.g. DECIMAL's
// precision/scale), or a named-type slot (STRUCT members).
type ParameterKind int

const (
	ParamDataType ParameterKind = iota
	ParamUnsignedInteger
	ParamNamedType
)

func (k ParameterKind) valueKind() ValueKind {
	if k == ParamUnsignedInteger {
		return KindInteger
	}
	return KindDataType
}

// ClassDescriptor is the registry's description of one type class: its
// arity rules, the metatype expected at each parameter position, whether
// parameters are named, its declared variations, and a class-local
// validity predicate consulted by Concretize.
type ClassDescriptor struct {
	Name     string
	Kind     ClassKind
	Variadic bool // true for classes with unbounded arity, e.g. a wide STRUCT
	MinArity int
	MaxArity int // ignored when Variadic; -1 is not a valid value

	// ParameterKinds gives the metatype expected at each position
	// 0..len(ParameterKinds)-1. For a Variadic class, the last entry also
	// describes every position beyond the end of the list (classes we model
	// don't mix kinds in their variadic tail).
	ParameterKinds []ParameterKind

	Named      bool // true iff every parameter position carries a name (STRUCT)
	Variations []string

	// WellFormed validates a concretized instance of this class beyond
	// arity/kind (e.g. DECIMAL requires 0 <= scale <= precision <= 38).
	// May be nil, meaning every arity/kind-valid instance is well-formed.
	WellFormed func(Concrete) error
}

// ParameterKindAt returns the parameter kind expected at position i, or
// false if i is out of range for this class's arity rules.
func (c *ClassDescriptor) ParameterKindAt(i int) (ParameterKind, bool) {
	if i < 0 {
		return 0, false
	}
	if c.Variadic {
		if i < len(c.ParameterKinds) {
			return c.ParameterKinds[i], true
		}
		if len(c.ParameterKinds) == 0 {
			return 0, false
		}
		return c.ParameterKinds[len(c.ParameterKinds)-1], true
	}
	if i >= len(c.ParameterKinds) {
		return 0, false
	}
	return c.ParameterKinds[i], true
}

// AcceptsArity reports whether n parameters is a legal arity for this
// class.
func (c *ClassDescriptor) AcceptsArity(n int) bool {
	if c.Variadic {
		return n >= c.MinArity
	}
	return n >= c.MinArity && n <= c.MaxArity
}

// HasVariation reports whether name is one of the class's declared
// variations (the base variation, "", is always implicitly valid).
func (c *ClassDescriptor) HasVariation(name string) bool {
	if name == "" {
		return true
	}
	for _, v := range c.Variations {
		if v == name {
			return true
		}
	}
	return false
}

// FunctionDescriptor is a pure, deterministic function drawn from the
// closed vocabulary a Function constraint may reference (§3, "Function(f,
// refs)"). Evaluate requires every input to be fully resolved. Propagate
// is optional (of the built-ins, only add_integer implements it): it
// narrows from partial information and returns a ValueSet per argument
// position (same length and order as the inputs passed in), the output's
// ValueSet, and whether anything was narrowed.
type FunctionDescriptor struct {
	Name     string
	Arity    int
	Evaluate func(inputs []Value) (Value, error)
	Propagate func(inputSets []ValueSet, outputSet ValueSet) (newInputSets []ValueSet, newOutputSet ValueSet, changed bool)
}

// ConcreteParameter is one resolved parameter of a Concrete type.
type ConcreteParameter struct {
	Name  string // empty unless the class names parameters
	Value Value
}

// Concrete is a fully resolved data type: fixed class, resolved
// nullability, fixed (possibly base, i.e. "") variation, and fully
// resolved parameters. It is the target type Pattern.Concretize produces
// (§4.B, "Concretize").
type Concrete struct {
	Class      *ClassDescriptor
	Nullable   bool
	Variation  string
	Parameters []ConcreteParameter
}

func (c Concrete) String() string {
	s := c.Class.Name
	if c.Nullable {
		s += "?"
	}
	if c.Variation != "" {
		s += "[" + c.Variation + "]"
	}
	if c.Class.Kind != ClassSimple || len(c.Parameters) > 0 {
		if c.Parameters != nil {
			s += "<"
			for i, p := range c.Parameters {
				if i > 0 {
					s += ", "
				}
				if p.Name != "" {
					s += p.Name + ": "
				}
				s += p.Value.String()
			}
			s += ">"
		}
	}
	return s
}

// matchesClassShape reports whether a parameter list's length and naming
// are legal for this class, independent of the parameter values
// themselves. Used by both pattern arity checking (ApplyStaticConstraints)
// and Concrete validation.
func (c *ClassDescriptor) matchesClassShape(n int, named []bool) error {
	if !c.AcceptsArity(n) {
		return fmt.Errorf("class %s expects %s parameters, got %d", c.Name, c.arityDescription(), n)
	}
	for i, isNamed := range named {
		if isNamed != c.Named {
			if c.Named {
				return fmt.Errorf("class %s requires named parameters, position %d is unnamed", c.Name, i)
			}
			return fmt.Errorf("class %s does not accept named parameters, position %d is named", c.Name, i)
		}
	}
	return nil
}

func (c *ClassDescriptor) arityDescription() string {
	if c.Variadic {
		return fmt.Sprintf("at least %d", c.MinArity)
	}
	if c.MinArity == c.MaxArity {
		return fmt.Sprintf("exactly %d", c.MinArity)
	}
	return fmt.Sprintf("between %d and %d", c.MinArity, c.MaxArity)
}
