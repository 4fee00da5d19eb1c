package registry

import (
	"fmt"

	"github.com/jvanstraten/typeinfer/internal/config"
	"github.com/jvanstraten/typeinfer/internal/metavars"
)

// Builtin returns a Registry pre-populated with the fixed-width numeric,
// string, and compound classes most call sites need, plus the small
// function vocabulary this engine evaluates directly (§6, EXPANSION).
// Extension packages layer additional classes on top via LoadYAML/Merge.
func Builtin() *Registry {
	reg := New()
	for _, name := range []string{
		config.ClassBoolean, config.ClassI8, config.ClassI16, config.ClassI32, config.ClassI64,
		config.ClassFP32, config.ClassFP64, config.ClassString,
	} {
		reg.AddClass(&metavars.ClassDescriptor{Name: name, Kind: metavars.ClassSimple})
	}

	reg.AddClass(&metavars.ClassDescriptor{
		Name:           config.ClassDecimal,
		Kind:           metavars.ClassCompound,
		MinArity:       2,
		MaxArity:       2,
		ParameterKinds: []metavars.ParameterKind{metavars.ParamUnsignedInteger, metavars.ParamUnsignedInteger},
		WellFormed:     wellFormedDecimal,
	})

	reg.AddClass(&metavars.ClassDescriptor{
		Name:           config.ClassList,
		Kind:           metavars.ClassCompound,
		MinArity:       1,
		MaxArity:       1,
		ParameterKinds: []metavars.ParameterKind{metavars.ParamDataType},
	})

	reg.AddClass(&metavars.ClassDescriptor{
		Name:           config.ClassMap,
		Kind:           metavars.ClassCompound,
		MinArity:       2,
		MaxArity:       2,
		ParameterKinds: []metavars.ParameterKind{metavars.ParamDataType, metavars.ParamDataType},
	})

	reg.AddClass(&metavars.ClassDescriptor{
		Name:           config.ClassStruct,
		Kind:           metavars.ClassCompound,
		Variadic:       true,
		MinArity:       0,
		ParameterKinds: []metavars.ParameterKind{metavars.ParamNamedType},
		Named:          true,
	})

	reg.AddFunction(&metavars.FunctionDescriptor{
		Name:     config.FuncAddInteger,
		Arity:    2,
		Evaluate: evalAddInteger,
		Propagate: propagateAddInteger,
	})
	reg.AddFunction(&metavars.FunctionDescriptor{
		Name:     config.FuncMin,
		Arity:    2,
		Evaluate: evalMin,
	})
	reg.AddFunction(&metavars.FunctionDescriptor{
		Name:     config.FuncMax,
		Arity:    2,
		Evaluate: evalMax,
	})
	// add_decimal models Substrait's decimal-promotion precision rule:
	// the result needs one more digit than the wider of its two operands.
	// Scale isn't modeled since that would need a two-output function,
	// which this engine's single-valued FunctionDescriptor doesn't support.
	reg.AddFunction(&metavars.FunctionDescriptor{
		Name:     config.FuncAddDecimal,
		Arity:    2,
		Evaluate: evalAddDecimalPrecision,
	})

	return reg
}

func wellFormedDecimal(c metavars.Concrete) error {
	precision, _ := c.Parameters[0].Value.Int()
	scale, _ := c.Parameters[1].Value.Int()
	if precision < 0 || precision > 38 {
		return fmt.Errorf("precision %d out of range [0, 38]", precision)
	}
	if scale < 0 || scale > precision {
		return fmt.Errorf("scale %d out of range [0, %d]", scale, precision)
	}
	return nil
}

func evalAddInteger(inputs []metavars.Value) (metavars.Value, error) {
	a, _ := inputs[0].Int()
	b, _ := inputs[1].Int()
	return metavars.IntValue(a + b), nil
}

// propagateAddInteger narrows c in a+b=c to the interval sum of a's and
// b's bounds, using plain interval arithmetic. It narrows only c: a and b
// are returned unchanged, and nothing is narrowed unless both a and b have
// finite lower and upper bounds.
func propagateAddInteger(inputSets []metavars.ValueSet, outputSet metavars.ValueSet) ([]metavars.ValueSet, metavars.ValueSet, bool) {
	a, b := inputSets[0].Integers, inputSets[1].Integers
	sumLow, sumHigh, ok := intervalSum(a, b)
	if !ok {
		return inputSets, outputSet, false
	}
	newOutput := outputSet
	newOutput.Integers = outputSet.Integers.Intersect(metavars.NewIntegerSet(metavars.Interval{
		Low: sumLow, High: sumHigh, HasLow: true, HasHigh: true,
	}))
	return inputSets, newOutput, !integerSetsEqual(newOutput.Integers, outputSet.Integers)
}

func integerSetsEqual(a, b metavars.IntegerSet) bool {
	return a.SupersetOf(b) && b.SupersetOf(a)
}

func intervalSum(a, b metavars.IntegerSet) (low, high int64, ok bool) {
	aIvs, bIvs := a.Intervals(), b.Intervals()
	if len(aIvs) == 0 || len(bIvs) == 0 {
		return 0, 0, false
	}
	var lowOK, highOK bool
	for _, x := range aIvs {
		for _, y := range bIvs {
			if x.HasLow && y.HasLow {
				v := x.Low + y.Low
				if !lowOK || v < low {
					low, lowOK = v, true
				}
			}
			if x.HasHigh && y.HasHigh {
				v := x.High + y.High
				if !highOK || v > high {
					high, highOK = v, true
				}
			}
		}
	}
	return low, high, lowOK && highOK
}

func evalMin(inputs []metavars.Value) (metavars.Value, error) {
	a, _ := inputs[0].Int()
	b, _ := inputs[1].Int()
	if a < b {
		return metavars.IntValue(a), nil
	}
	return metavars.IntValue(b), nil
}

func evalMax(inputs []metavars.Value) (metavars.Value, error) {
	a, _ := inputs[0].Int()
	b, _ := inputs[1].Int()
	if a > b {
		return metavars.IntValue(a), nil
	}
	return metavars.IntValue(b), nil
}

func evalAddDecimalPrecision(inputs []metavars.Value) (metavars.Value, error) {
	p1, _ := inputs[0].Int()
	p2, _ := inputs[1].Int()
	wider := p1
	if p2 > wider {
		wider = p2
	}
	return metavars.IntValue(wider + 1), nil
}
