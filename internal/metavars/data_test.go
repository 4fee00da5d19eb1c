package metavars

import "testing"

func TestReferenceConstrainNarrows(t *testing.T) {
	r := NewReference(KindInteger)
	if err := r.Constrain(Within(ValueSet{Kind: KindInteger, Integers: NewIntegerSet(bounded(0, 10))}), "bound 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Constrain(Within(ValueSet{Kind: KindInteger, Integers: NewIntegerSet(bounded(5, 20))}), "bound 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := r.PossibleValues().Integers.Value()
	if ok {
		t.Fatalf("expected a range, not a singleton, got %d", v)
	}
	if !r.PossibleValues().Integers.Contains(7) || r.PossibleValues().Integers.Contains(11) {
		t.Errorf("expected possible values to be [5,10], got %s", r.PossibleValues())
	}
}

func TestReferenceConstrainContradictionReportsMinimalWitness(t *testing.T) {
	r := NewNamedReference(KindInteger, GenericKey("p"))
	must(t, r.Constrain(Within(ValueSet{Kind: KindInteger, Integers: NewIntegerSet(bounded(0, 10))}), "precision range"))
	must(t, r.Constrain(Within(ValueSet{Kind: KindInteger, Integers: SingletonIntegerSet(3)}), "exactly 3"))
	err := r.Constrain(Within(ValueSet{Kind: KindInteger, Integers: SingletonIntegerSet(4)}), "exactly 4")
	if err == nil {
		t.Fatal("expected a contradiction")
	}
	diag, ok := err.(interface{ Error() string })
	if !ok {
		t.Fatalf("expected an error, got %T", err)
	}
	// The "precision range" constraint is consistent with {4} on its own
	// and should be dropped from the witness; only "exactly 3" and
	// "exactly 4" are jointly unsatisfiable.
	msg := diag.Error()
	if !contains(msg, "exactly 3") || !contains(msg, "exactly 4") {
		t.Errorf("expected witness to name the conflicting constraints, got: %s", msg)
	}
	if contains(msg, "precision range") {
		t.Errorf("expected the minimal witness to drop the non-conflicting constraint, got: %s", msg)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}

func TestReferenceUnifyMerges(t *testing.T) {
	a := NewNamedReference(KindInteger, GenericKey("a"))
	b := NewNamedReference(KindInteger, GenericKey("b"))
	must(t, a.Constrain(Within(ValueSet{Kind: KindInteger, Integers: NewIntegerSet(bounded(0, 10))}), "a bound"))
	must(t, b.Constrain(Within(ValueSet{Kind: KindInteger, Integers: NewIntegerSet(bounded(5, 20))}), "b bound"))
	must(t, a.Unify(b, "unify a and b"))

	if !a.PossibleValues().Integers.Contains(7) {
		t.Error("expected merged possible values to retain the overlap")
	}
	if a.PossibleValues().Integers.Contains(11) || a.PossibleValues().Integers.Contains(1) {
		t.Errorf("expected merged possible values to be exactly the overlap, got %s", a.PossibleValues())
	}
	bv, _ := b.PossibleValues().Integers.Value()
	av, _ := a.PossibleValues().Integers.Value()
	_ = bv
	_ = av
}

func TestReferenceCoversRequiresStability(t *testing.T) {
	self := NewReference(KindBoolean) // full {false, true}, not complete
	resolvedOther := boundReference(BoolValue(false))
	if got := self.Covers(resolvedOther); got != Unknown {
		t.Errorf("an unresolved, incomplete reference should report Unknown, got %s", got)
	}

	// MarkComplete reports Underdetermined for a {false, true} block with no
	// further narrowing, which is expected here; only the complete latch
	// matters for this assertion.
	_ = self.MarkComplete()
	if got := self.Covers(resolvedOther); got != True {
		t.Errorf("a complete superset should report True once stable, got %s", got)
	}

	disjoint := NewReference(KindInteger)
	must(t, disjoint.Constrain(Within(ValueSet{Kind: KindInteger, Integers: SingletonIntegerSet(1)}), "fixture"))
	otherDisjoint := NewReference(KindInteger)
	must(t, otherDisjoint.Constrain(Within(ValueSet{Kind: KindInteger, Integers: SingletonIntegerSet(2)}), "fixture"))
	if got := disjoint.Covers(otherDisjoint); got != False {
		t.Errorf("disjoint possible sets can never come to cover one another, got %s", got)
	}
}

func TestReferenceUnifyRejectsDifferentKinds(t *testing.T) {
	a := NewReference(KindInteger)
	b := NewReference(KindBoolean)
	if err := a.Unify(b, "bad unify"); err == nil {
		t.Fatal("expected unify across metatypes to fail")
	}
}
