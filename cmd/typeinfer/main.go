// Command typeinfer is a small CLI front door onto the constraint solver:
// bind a handful of named metavariables from flags, assert range and
// function constraints, and print the solver's verdict. It is not a
// Substrait plan reader — no protobuf plan parsing, no YAML extension
// schema beyond the class-registry subset internal/registry understands.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jvanstraten/typeinfer/internal/diagnostics"
	"github.com/jvanstraten/typeinfer/internal/registry"
	"github.com/jvanstraten/typeinfer/pkg/typeinfer"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s solve [options]

Options:
  --bind NAME:KIND          declare a metavariable (KIND is integer, boolean, or data_type)
  --range NAME=LOW,HIGH     narrow an integer metavariable to a closed range
  --func RESULT=FN(A,B,...) assert RESULT equals FN applied to the listed operands
  --registry PATH           load additional classes from a YAML file
  --no-color                disable colorized diagnostics even on a terminal
`, os.Args[0])
}

func main() {
	if len(os.Args) < 2 || os.Args[1] != "solve" {
		usage()
		os.Exit(2)
	}
	if err := runSolve(os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolve(args []string) error {
	reg := registry.Builtin()
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	var binds, ranges, funcs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--no-color":
			color = false
		case arg == "--bind" && i+1 < len(args):
			i++
			binds = append(binds, args[i])
		case arg == "--range" && i+1 < len(args):
			i++
			ranges = append(ranges, args[i])
		case arg == "--func" && i+1 < len(args):
			i++
			funcs = append(funcs, args[i])
		case arg == "--registry" && i+1 < len(args):
			i++
			loaded, err := registry.LoadYAMLFile(args[i])
			if err != nil {
				return err
			}
			reg.Merge(loaded)
		default:
			return fmt.Errorf("unrecognized argument %q", arg)
		}
	}

	engine := typeinfer.New(reg)
	for _, b := range binds {
		name, kind, ok := strings.Cut(b, ":")
		if !ok {
			return fmt.Errorf("--bind %q: expected NAME:KIND", b)
		}
		switch kind {
		case "integer":
			engine.BindInteger(name)
		case "boolean":
			engine.BindBoolean(name)
		case "data_type":
			engine.BindDataType(name)
		default:
			return fmt.Errorf("--bind %q: unknown kind %q", b, kind)
		}
	}
	for _, r := range ranges {
		name, bounds, ok := strings.Cut(r, "=")
		if !ok {
			return fmt.Errorf("--range %q: expected NAME=LOW,HIGH", r)
		}
		low, high, err := parseRange(bounds)
		if err != nil {
			return fmt.Errorf("--range %q: %w", r, err)
		}
		if err := engine.ConstrainRange(name, low, high, "--range flag"); err != nil {
			return err
		}
	}
	for _, f := range funcs {
		result, call, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("--func %q: expected RESULT=FN(A,B,...)", f)
		}
		name, operands, err := parseCall(call)
		if err != nil {
			return fmt.Errorf("--func %q: %w", f, err)
		}
		if err := engine.ConstrainFunction(result, name, operands...); err != nil {
			return err
		}
	}

	result := engine.Solve()
	sink := &diagnostics.WriterSink{W: os.Stdout, Color: color}
	typeinfer.Report(result, sink)

	if result.Solved() {
		fmt.Printf("solved in %d iteration(s)\n", result.Iterations)
		return nil
	}
	return fmt.Errorf("unsolved after %d iteration(s), %d diagnostic(s) reported", result.Iterations, len(result.Diagnostics))
}

func parseRange(s string) (low, high int64, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected LOW,HIGH")
	}
	low, err = strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	high, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return low, high, nil
}

func parseCall(s string) (name string, operands []string, err error) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, fmt.Errorf("expected FN(A,B,...)")
	}
	name = s[:open]
	inner := s[open+1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil, nil
	}
	for _, part := range strings.Split(inner, ",") {
		operands = append(operands, strings.TrimSpace(part))
	}
	return name, operands, nil
}
