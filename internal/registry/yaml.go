package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jvanstraten/typeinfer/internal/metavars"
)

// classFile is the YAML shape a class declaration file parses into.
// Function bodies can't be declared this way — they're Go code — so a
// classFile only ever grows the class table; callers register functions
// separately via AddFunction (builtin.go does this for the built-in
// vocabulary).
type classFile struct {
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Name       string            `yaml:"name"`
	Kind       string            `yaml:"kind"` // "simple", "compound", or "user_defined"
	Variadic   bool              `yaml:"variadic,omitempty"`
	MinArity   int               `yaml:"min_arity,omitempty"`
	MaxArity   int               `yaml:"max_arity,omitempty"`
	Parameters []parameterEntry  `yaml:"parameters,omitempty"`
	Named      bool              `yaml:"named,omitempty"`
	Variations []string          `yaml:"variations,omitempty"`
}

type parameterEntry struct {
	Kind string `yaml:"kind"` // "data_type", "unsigned_integer", or "named_type"
}

// LoadYAMLFile reads and parses a class declaration file from disk.
func LoadYAMLFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file %s: %w", path, err)
	}
	return LoadYAML(data, path)
}

// LoadYAML parses class declarations from bytes. path is used only for
// error messages.
func LoadYAML(data []byte, path string) (*Registry, error) {
	var file classFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	reg := New()
	for i, ce := range file.Classes {
		cls, err := ce.toDescriptor()
		if err != nil {
			return nil, fmt.Errorf("%s: classes[%d] (%s): %w", path, i, ce.Name, err)
		}
		reg.AddClass(cls)
	}
	return reg, nil
}

func (ce classEntry) toDescriptor() (*metavars.ClassDescriptor, error) {
	if ce.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	kind, err := parseClassKind(ce.Kind)
	if err != nil {
		return nil, err
	}

	params := make([]metavars.ParameterKind, len(ce.Parameters))
	for i, p := range ce.Parameters {
		pk, err := parseParameterKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("parameters[%d]: %w", i, err)
		}
		params[i] = pk
	}

	maxArity := ce.MaxArity
	if !ce.Variadic && maxArity == 0 && ce.MinArity == 0 && len(params) > 0 {
		maxArity = len(params)
	}

	return &metavars.ClassDescriptor{
		Name:           ce.Name,
		Kind:           kind,
		Variadic:       ce.Variadic,
		MinArity:       ce.MinArity,
		MaxArity:       maxArity,
		ParameterKinds: params,
		Named:          ce.Named,
		Variations:     ce.Variations,
	}, nil
}

func parseClassKind(s string) (metavars.ClassKind, error) {
	switch s {
	case "", "simple":
		return metavars.ClassSimple, nil
	case "compound":
		return metavars.ClassCompound, nil
	case "user_defined":
		return metavars.ClassUserDefined, nil
	default:
		return 0, fmt.Errorf("unknown class kind %q", s)
	}
}

func parseParameterKind(s string) (metavars.ParameterKind, error) {
	switch s {
	case "data_type":
		return metavars.ParamDataType, nil
	case "unsigned_integer":
		return metavars.ParamUnsignedInteger, nil
	case "named_type":
		return metavars.ParamNamedType, nil
	default:
		return 0, fmt.Errorf("unknown parameter kind %q", s)
	}
}
