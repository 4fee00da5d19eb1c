package metavars

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Variation describes a Pattern's variation field (§3, "Pattern"):
// unspecified (matches any variation), the base variation, or a specific
// named variation.
type Variation struct {
	Specified bool
	Name      string // "" means the base variation, when Specified is true
}

func UnspecifiedVariation() Variation    { return Variation{} }
func BaseVariation() Variation           { return Variation{Specified: true} }
func NamedVariation(name string) Variation { return Variation{Specified: true, Name: name} }

// Parameter is one entry of a Pattern's parameter pack: an optional name
// (used only when the class expects named members) and a reference to the
// metavariable holding its value.
type Parameter struct {
	Name  string
	Value *Reference
}

// Pattern is a symbolic description of a data type with embedded
// metavariable references (§3, "Pattern"; §4.B).
type Pattern struct {
	Class      *ClassDescriptor
	Nullable   *Reference
	Variation  Variation
	Parameters *[]Parameter // nil = unspecified
}

// String renders a Pattern per the fixed display grammar of §6: "class
// nullability variation parameters".
func (p *Pattern) String() string {
	var b strings.Builder
	b.WriteString(p.Class.Name)

	if v, ok := boolValueOfRef(p.Nullable); ok {
		if v {
			b.WriteString("?")
		}
		// false nullable prints nothing
	} else if p.Nullable == nil {
		b.WriteString("??")
	} else {
		b.WriteString("?" + p.Nullable.DisplayName())
	}

	switch {
	case !p.Variation.Specified:
		b.WriteString("[?]")
	case p.Variation.Name == "":
		// base variation: nothing printed
	default:
		b.WriteString("[" + p.Variation.Name + "]")
	}

	if p.Parameters != nil {
		b.WriteString("<")
		for i, param := range *p.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			if param.Name != "" {
				b.WriteString(identOrQuoted(param.Name) + ": ")
			}
			b.WriteString(param.Value.DisplayName())
		}
		b.WriteString(">")
	}
	return b.String()
}

func identOrQuoted(s string) string {
	if s == "" {
		return `""`
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return strconv.Quote(s)
		}
		if i > 0 && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return strconv.Quote(s)
		}
	}
	return s
}

func boolValueOfRef(r *Reference) (bool, bool) {
	if r == nil {
		return false, false
	}
	v, ok := r.Value()
	if !ok {
		return false, false
	}
	return v.Bool()
}

// ApplyStaticConstraints emits, once at binding time, the constraints
// implied by this pattern's shape (§4.B, "Apply-static-constraints"): the
// nullable reference must be boolean, each parameter position must carry
// its class-declared metatype, the parameter pack length must satisfy the
// class's arity rules, and named-ness must match. Any mismatch is
// reported immediately and the pattern is not otherwise touched.
func (p *Pattern) ApplyStaticConstraints() error {
	if p.Nullable == nil {
		return fmt.Errorf("pattern %s: nullability reference is required", p.Class.Name)
	}
	if err := p.Nullable.requireKind(KindBoolean); err != nil {
		return fmt.Errorf("pattern %s: nullability: %w", p.Class.Name, err)
	}

	if p.Parameters == nil {
		return nil
	}
	params := *p.Parameters
	named := make([]bool, len(params))
	for i, prm := range params {
		named[i] = prm.Name != ""
	}
	if err := p.Class.matchesClassShape(len(params), named); err != nil {
		return err
	}
	for i, prm := range params {
		pk, ok := p.Class.ParameterKindAt(i)
		if !ok {
			return fmt.Errorf("class %s has no parameter kind at position %d", p.Class.Name, i)
		}
		if err := prm.Value.requireKind(pk.valueKind()); err != nil {
			return fmt.Errorf("pattern %s: parameter %d: %w", p.Class.Name, i, err)
		}
	}
	return nil
}

// Matches reports whether the given concrete type matches this pattern
// (§4.B, "Match"). Class identity is required; nullability and variation
// are checked only when resolved (an unresolved dimension always
// succeeds, deferring the constraint to apply_match_constraints);
// parameters, when specified, must match length and element-wise.
func (p *Pattern) Matches(t Concrete) bool {
	if p.Class != t.Class {
		return false
	}
	if nb, ok := boolValueOfRef(p.Nullable); ok && nb != t.Nullable {
		return false
	}
	if p.Variation.Specified && p.Variation.Name != t.Variation {
		return false
	}
	if p.Parameters != nil {
		params := *p.Parameters
		if len(params) != len(t.Parameters) {
			return false
		}
		for i, prm := range params {
			if !prm.matches(t.Parameters[i]) {
				return false
			}
		}
	}
	return true
}

func (prm Parameter) matches(cp ConcreteParameter) bool {
	return prm.Value.Matches(cp.Value)
}

// ApplyMatchConstraints forces the value of every metavariable this
// pattern references to the corresponding field of a matched concrete
// type, and copies the concrete type's variation into the pattern's
// variation field (§4.B, "Apply-match-constraints"). Requires Matches(t)
// to already hold.
func (p *Pattern) ApplyMatchConstraints(t Concrete, reason string) error {
	if err := p.Nullable.Constrain(Within(SingletonSet(BoolValue(t.Nullable))), reason); err != nil {
		return err
	}
	p.Variation = NamedVariation(t.Variation)
	if p.Variation.Name == "" {
		p.Variation = BaseVariation()
	}
	if p.Parameters != nil {
		params := *p.Parameters
		if len(params) != len(t.Parameters) {
			return fmt.Errorf("pattern %s: parameter count mismatch applying match constraints: %d vs %d", p.Class.Name, len(params), len(t.Parameters))
		}
		for i, prm := range params {
			if err := prm.Value.Constrain(Within(SingletonSet(t.Parameters[i].Value)), reason); err != nil {
				return err
			}
		}
	}
	return nil
}

// Covers reports whether every concrete type that matches other also
// matches p (§4.B, "Covers"), three-valued: Unknown propagates from any
// sub-query (nullability delegates to Data.Covers; parameters delegate
// recursively) rather than being resolved to a guess.
func (p *Pattern) Covers(other *Pattern) Tri {
	if p.Class != other.Class {
		return False
	}

	result := p.Nullable.Covers(other.Nullable)
	if result == False {
		return False
	}

	if p.Variation.Specified {
		if !other.Variation.Specified || p.Variation.Name != other.Variation.Name {
			return False
		}
	}

	if p.Parameters != nil {
		if other.Parameters == nil {
			return False
		}
		pParams, oParams := *p.Parameters, *other.Parameters
		if len(pParams) != len(oParams) {
			return False
		}
		for i := range pParams {
			r := pParams[i].Value.Covers(oParams[i].Value)
			if r == False {
				return False
			}
			if r == Unknown {
				result = Unknown
			}
		}
	}
	return result
}

// IntersectsWith reports whether some concrete type could match both
// patterns (§4.B, "Intersects with"). Always a definite boolean: it is
// safe to over-report intersection since it only blocks the too-complex
// fast path, never admits a wrong result.
func (p *Pattern) IntersectsWith(other *Pattern) bool {
	if p.Class != other.Class {
		return false
	}
	if p.Nullable != nil && other.Nullable != nil {
		if p.Nullable.PossibleValues().Booleans.Intersect(other.Nullable.PossibleValues().Booleans).IsEmpty() {
			return false
		}
	}
	if p.Variation.Specified && other.Variation.Specified && p.Variation.Name != other.Variation.Name {
		return false
	}
	if p.Parameters != nil && other.Parameters != nil {
		pParams, oParams := *p.Parameters, *other.Parameters
		if len(pParams) != len(oParams) {
			return false
		}
		for i := range pParams {
			if pParams[i].Value.PossibleValues().Intersect(oParams[i].Value.PossibleValues()).IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Concretize yields a concrete type iff the class is fixed (always true),
// nullability is resolved, variation is fixed (specified, base or named),
// and every parameter metavariable is resolved (§4.B, "Concretize"). A
// pattern with unspecified parameters concretizes only when its class
// takes no parameters. If the resulting type would be ill-formed per the
// class's WellFormed rule, an error is returned instead of
// (Concrete{}, false, nil).
func (p *Pattern) Concretize() (Concrete, bool, error) {
	nb, ok := boolValueOfRef(p.Nullable)
	if !ok {
		return Concrete{}, false, nil
	}
	if !p.Variation.Specified {
		return Concrete{}, false, nil
	}
	var params []Parameter
	if p.Parameters != nil {
		params = *p.Parameters
	} else if p.Class.Variadic || p.Class.MaxArity > 0 {
		return Concrete{}, false, nil
	}
	resolved := make([]ConcreteParameter, len(params))
	for i, prm := range params {
		v, ok := prm.Value.Value()
		if !ok {
			return Concrete{}, false, nil
		}
		resolved[i] = ConcreteParameter{Name: prm.Name, Value: v}
	}
	c := Concrete{Class: p.Class, Nullable: nb, Variation: p.Variation.Name, Parameters: resolved}
	if p.Class.WellFormed != nil {
		if err := p.Class.WellFormed(c); err != nil {
			return Concrete{}, true, fmt.Errorf("ill-formed concrete type %s: %w", c, err)
		}
	}
	return c, true, nil
}
