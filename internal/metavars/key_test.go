package metavars

import (
	"testing"

	"github.com/jvanstraten/typeinfer/internal/config"
)

func TestGenericKeyFoldsCaseForLookup(t *testing.T) {
	scope := NewScope()
	upper := scope.Bind(GenericKey("T"), KindInteger)
	lower := scope.Bind(GenericKey("t"), KindInteger)
	if upper != lower {
		t.Fatal("GenericKey(\"T\") and GenericKey(\"t\") should bind to the same metavariable")
	}
}

func TestGenericKeyPreservesDisplaySpelling(t *testing.T) {
	k := GenericKey("T")
	if got, want := k.String(), "T"; got != want {
		t.Errorf("String() = %q, want %q (original spelling preserved for display)", got, want)
	}
	if k.Name != "t" {
		t.Errorf("Name = %q, want case-folded %q", k.Name, "t")
	}
}

func TestInferredKeyDisplayNormalizesInTestMode(t *testing.T) {
	prev := config.IsTestMode
	defer func() { config.IsTestMode = prev }()

	a, b := InferredKey(), InferredKey()

	config.IsTestMode = false
	if a.String() == b.String() {
		t.Fatal("two distinct inferred keys should not collide outside test mode")
	}

	config.IsTestMode = true
	if got, want := a.String(), "?inferred"; got != want {
		t.Errorf("String() in test mode = %q, want stable placeholder %q", got, want)
	}
	if a.String() != b.String() {
		t.Errorf("distinct inferred keys should normalize to the same placeholder in test mode")
	}
}
