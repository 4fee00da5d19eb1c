package typeinfer

import "testing"

func TestEngineSolvesAddInteger(t *testing.T) {
	e := New(nil)
	if err := e.ConstrainRange("a", 3, 3, "fixture"); err != nil {
		t.Fatalf("ConstrainRange a failed: %v", err)
	}
	if err := e.ConstrainRange("b", 4, 4, "fixture"); err != nil {
		t.Fatalf("ConstrainRange b failed: %v", err)
	}
	if err := e.ConstrainFunction("c", "add_integer", "a", "b"); err != nil {
		t.Fatalf("ConstrainFunction failed: %v", err)
	}

	result := e.Solve()
	if !result.Solved() {
		t.Fatalf("expected the scope to solve, got diagnostics: %v", result.Diagnostics)
	}
	c, ok := e.IntegerValue("c")
	if !ok || c != 7 {
		t.Errorf("IntegerValue(c) = %d, ok=%v, want 7, true", c, ok)
	}
}

func TestEngineReportsContradiction(t *testing.T) {
	e := New(nil)
	if err := e.ConstrainRange("a", 3, 3, "fixture"); err != nil {
		t.Fatalf("ConstrainRange failed: %v", err)
	}
	err := e.ConstrainRange("a", 4, 4, "fixture")
	if err == nil {
		t.Fatal("expected a contradiction constraining a to a disjoint range")
	}
}

func TestEngineUnknownFunctionErrors(t *testing.T) {
	e := New(nil)
	if err := e.ConstrainFunction("c", "not_a_function", "a", "b"); err == nil {
		t.Error("expected an error for an unregistered function name")
	}
}
