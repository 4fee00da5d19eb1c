package metavars

import "testing"

// i32ClassDesc is shared so that patterns built from separate i32Class()
// calls name the same class (classes are compared by identity).
var i32ClassDesc = &ClassDescriptor{Name: "I32", Kind: ClassSimple, MinArity: 0, MaxArity: 0}

func i32Class() *ClassDescriptor {
	return i32ClassDesc
}

func decimalClass() *ClassDescriptor {
	return &ClassDescriptor{
		Name:           "DECIMAL",
		Kind:           ClassCompound,
		MinArity:       2,
		MaxArity:       2,
		ParameterKinds: []ParameterKind{ParamUnsignedInteger, ParamUnsignedInteger},
		WellFormed: func(c Concrete) error {
			p, _ := c.Parameters[0].Value.Int()
			s, _ := c.Parameters[1].Value.Int()
			if s < 0 || s > p || p > 38 {
				return errInvalidDecimal
			}
			return nil
		},
	}
}

var errInvalidDecimal = &testError{"scale must be between 0 and precision, precision must be at most 38"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

func boolRef(v bool) *Reference { return boundReference(BoolValue(v)) }

func simplePattern(class *ClassDescriptor, nullable bool) *Pattern {
	return &Pattern{Class: class, Nullable: boolRef(nullable), Variation: BaseVariation()}
}

func TestPatternMatchesSimpleClass(t *testing.T) {
	p := simplePattern(i32Class(), false)
	concrete := Concrete{Class: i32Class(), Nullable: false, Variation: ""}
	if !p.Matches(concrete) {
		t.Fatalf("expected pattern %s to match %s", p, concrete)
	}
	nullableConcrete := Concrete{Class: i32Class(), Nullable: true, Variation: ""}
	if p.Matches(nullableConcrete) {
		t.Fatalf("non-nullable pattern %s should not match nullable type %s", p, nullableConcrete)
	}
}

func TestPatternConcretizeRequiresResolution(t *testing.T) {
	cls := i32Class()
	p := &Pattern{Class: cls, Nullable: NewReference(KindBoolean), Variation: BaseVariation()}
	if _, ok, err := p.Concretize(); ok || err != nil {
		t.Fatalf("expected concretize to fail while nullability is unresolved, got ok=%v err=%v", ok, err)
	}

	if err := p.Nullable.Constrain(Within(SingletonSet(BoolValue(false))), "test"); err != nil {
		t.Fatalf("constrain failed: %v", err)
	}
	c, ok, err := p.Concretize()
	if err != nil || !ok {
		t.Fatalf("expected concretize to succeed, got ok=%v err=%v", ok, err)
	}
	if c.Nullable {
		t.Errorf("expected non-nullable concrete type, got %s", c)
	}
}

func TestPatternConcretizeRejectsIllFormedDecimal(t *testing.T) {
	cls := decimalClass()
	params := []Parameter{
		{Value: boundReference(IntValue(2))},
		{Value: boundReference(IntValue(5))}, // scale > precision
	}
	p := &Pattern{Class: cls, Nullable: boolRef(false), Variation: BaseVariation(), Parameters: &params}
	_, _, err := p.Concretize()
	if err == nil {
		t.Fatal("expected ill-formed decimal to be rejected")
	}
}

func TestPatternCoversIdentical(t *testing.T) {
	p := simplePattern(i32Class(), false)
	q := simplePattern(i32Class(), false)
	if got := p.Covers(q); got != True {
		t.Errorf("identical patterns should cover each other definitely, got %s", got)
	}
}

func TestPatternCoversDifferentClass(t *testing.T) {
	p := simplePattern(i32Class(), false)
	q := simplePattern(decimalClass(), false)
	if got := p.Covers(q); got != False {
		t.Errorf("patterns of different classes can never cover, got %s", got)
	}
}

func TestPatternCoversUnknownNullability(t *testing.T) {
	p := &Pattern{Class: i32Class(), Nullable: NewReference(KindBoolean), Variation: BaseVariation()}
	q := simplePattern(i32Class(), false)
	if got := p.Covers(q); got != Unknown {
		t.Errorf("unresolved nullability should make coverage unknown, got %s", got)
	}
}

func TestPatternIntersectsWith(t *testing.T) {
	p := simplePattern(i32Class(), true)
	q := simplePattern(i32Class(), false)
	if p.IntersectsWith(q) {
		t.Error("nullable=true and nullable=false patterns should not intersect")
	}

	r := &Pattern{Class: i32Class(), Nullable: NewReference(KindBoolean), Variation: BaseVariation()}
	if !p.IntersectsWith(r) {
		t.Error("an unresolved nullability should intersect with either concrete nullability")
	}
}

func TestPatternString(t *testing.T) {
	p := simplePattern(i32Class(), true)
	if got, want := p.String(), "I32?"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	unspecified := &Pattern{Class: i32Class(), Nullable: nil, Variation: UnspecifiedVariation()}
	if got, want := unspecified.String(), "I32??[?]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	named := &Pattern{Class: i32Class(), Nullable: NewNamedReference(KindBoolean, GenericKey("n")), Variation: BaseVariation()}
	if got, want := named.String(), "I32?n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
