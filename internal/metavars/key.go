package metavars

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jvanstraten/typeinfer/internal/config"
)

// KeyKind distinguishes the four ways a metavariable can be named within a
// scope (§3, "Key").
type KeyKind int

const (
	KeyGeneric KeyKind = iota
	KeyInferred
	KeyFunctionParameterType
	KeyFunctionReturnType
)

// Key identifies one metavariable slot inside a Scope. Generic keys come
// from user-facing names bound in the source; Inferred keys are minted
// internally, one per call to solver plumbing that needs a fresh unnamed
// metavariable (disambiguated by a random UUID so two fresh metavariables
// never collide); FunctionParameterType/FunctionReturnType address the
// dedicated per-call-site slots a function invocation allocates for its
// own argument and result types.
type Key struct {
	Kind           KeyKind
	Name           string // KeyGeneric, case-folded so lookups are case-insensitive
	Display        string // KeyGeneric, original spelling shown in diagnostics
	ID             uuid.UUID
	ParameterIndex int // KeyFunctionParameterType
}

// GenericKey builds the key for a user-facing generic name, folding case on
// the lookup field so "T" and "t" bind to the same metavariable while
// Display keeps the spelling the caller actually used, mirroring the
// original engine's generic-reference constructor (it lowercases the name
// it indexes by but keeps the original string for display).
func GenericKey(name string) Key {
	return Key{Kind: KeyGeneric, Name: strings.ToLower(name), Display: name}
}

// canonical strips the display-only field so two Keys naming the same
// metavariable under different spellings compare equal as map keys.
func (k Key) canonical() Key {
	k.Display = ""
	return k
}

func InferredKey() Key { return Key{Kind: KeyInferred, ID: uuid.New()} }

func FunctionParameterKey(i int) Key {
	return Key{Kind: KeyFunctionParameterType, ParameterIndex: i}
}

func FunctionReturnKey() Key { return Key{Kind: KeyFunctionReturnType} }

func (k Key) String() string {
	switch k.Kind {
	case KeyGeneric:
		if k.Display != "" {
			return k.Display
		}
		return k.Name
	case KeyInferred:
		// Normalize every auto-generated metavariable to the same
		// placeholder in test mode, the same way the teacher collapses
		// t1, t2, ... to t? for deterministic output.
		if config.IsTestMode {
			return "?inferred"
		}
		return "?" + k.ID.String()
	case KeyFunctionParameterType:
		return "$arg" + strconv.Itoa(k.ParameterIndex)
	case KeyFunctionReturnType:
		return "$return"
	default:
		return "<unknown key>"
	}
}
