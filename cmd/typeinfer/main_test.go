package main

import "testing"

func TestParseRange(t *testing.T) {
	low, high, err := parseRange("3,7")
	if err != nil {
		t.Fatalf("parseRange failed: %v", err)
	}
	if low != 3 || high != 7 {
		t.Errorf("parseRange(\"3,7\") = %d, %d, want 3, 7", low, high)
	}
}

func TestParseRangeRejectsMalformed(t *testing.T) {
	if _, _, err := parseRange("3"); err == nil {
		t.Error("expected an error for a single-bound range")
	}
}

func TestParseCall(t *testing.T) {
	name, operands, err := parseCall("add_integer(a, b)")
	if err != nil {
		t.Fatalf("parseCall failed: %v", err)
	}
	if name != "add_integer" {
		t.Errorf("parseCall name = %q, want add_integer", name)
	}
	if len(operands) != 2 || operands[0] != "a" || operands[1] != "b" {
		t.Errorf("parseCall operands = %v, want [a b]", operands)
	}
}

func TestParseCallNoOperands(t *testing.T) {
	name, operands, err := parseCall("noop()")
	if err != nil {
		t.Fatalf("parseCall failed: %v", err)
	}
	if name != "noop" || len(operands) != 0 {
		t.Errorf("parseCall(\"noop()\") = %q, %v, want noop, []", name, operands)
	}
}

// TestRunSolveAddIntegerScenario exercises the CLI's solve path end to end:
// two fixed integers tied together by add_integer should resolve to a
// single concrete sum with no diagnostics.
func TestRunSolveAddIntegerScenario(t *testing.T) {
	err := runSolve([]string{
		"--range", "a=3,3",
		"--range", "b=4,4",
		"--func", "c=add_integer(a,b)",
		"--no-color",
	})
	if err != nil {
		t.Fatalf("runSolve failed: %v", err)
	}
}

func TestRunSolveContradiction(t *testing.T) {
	err := runSolve([]string{
		"--range", "a=3,3",
		"--range", "a=4,4",
		"--no-color",
	})
	if err == nil {
		t.Fatal("expected an error reporting the contradiction")
	}
}
