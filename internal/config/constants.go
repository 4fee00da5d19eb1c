// Package config holds process-wide knobs for the type-inference engine:
// test-mode display normalization, solver safety bounds, and the names of
// the built-in classes and functions internal/registry.Builtin registers.
package config

// IsTestMode normalizes the display of Inferred metavariables (normally
// named after a process-local UUID) to a stable placeholder, the same way
// the teacher normalizes auto-generated type variable names to "t?" in
// test mode and LSP mode.
var IsTestMode = false

// MaxSolverIterations bounds the worklist fixpoint loop. Every step
// strictly shrinks some value set (§4.E, "Termination"), so a well-formed
// registry and constraint set always converges well under this; it exists
// as a safety net against a registry whose WellFormed/Evaluate callbacks
// violate that guarantee.
const MaxSolverIterations = 1_000_000

// Built-in class names registered by registry.Builtin.
const (
	ClassBoolean = "BOOLEAN"
	ClassI8      = "I8"
	ClassI16     = "I16"
	ClassI32     = "I32"
	ClassI64     = "I64"
	ClassFP32    = "FP32"
	ClassFP64    = "FP64"
	ClassString  = "STRING"
	ClassDecimal = "DECIMAL"
	ClassList    = "LIST"
	ClassMap     = "MAP"
	ClassStruct  = "STRUCT"
)

// Built-in function names registered by registry.Builtin, used in Function
// constraints.
const (
	FuncAddDecimal = "add_decimal"
	FuncMin        = "min"
	FuncMax        = "max"
	FuncAddInteger = "add_integer"
)
