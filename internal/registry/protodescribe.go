package registry

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"

	"github.com/jvanstraten/typeinfer/internal/metavars"
)

// DescribeFromProto bootstraps a single compound class from a field of a
// message defined in a .proto source, the way Substrait's own YAML
// extensions describe some built-in classes in terms of a protobuf Type
// message rather than spelling out parameter kinds by hand. It is
// deliberately narrow: one field, one class, used by extension loaders
// that already have a protobuf schema lying around and don't want to
// duplicate it as YAML.
//
// protoSource is parsed in memory via protoparse (no protoc invocation,
// same approach internal/evaluator/builtins_grpc.go in the teacher uses
// for ad hoc proto loading); messageName and fieldName select the field
// whose repeated-ness and scalar kind determine the resulting class's
// arity and parameter kind.
func DescribeFromProto(className, protoSource, messageName, fieldName string) (*metavars.ClassDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{"class.proto": protoSource}),
	}
	fds, err := parser.ParseFiles("class.proto")
	if err != nil {
		return nil, fmt.Errorf("registry: parsing proto source for class %s: %w", className, err)
	}
	msg := fds[0].FindMessage(messageName)
	if msg == nil {
		msg = fds[0].FindMessage(fds[0].GetPackage() + "." + messageName)
	}
	if msg == nil {
		return nil, fmt.Errorf("registry: message %q not found describing class %s", messageName, className)
	}
	field := msg.FindFieldByName(fieldName)
	if field == nil {
		return nil, fmt.Errorf("registry: field %q not found on %q describing class %s", fieldName, messageName, className)
	}

	paramKind, err := parameterKindFromProto(field)
	if err != nil {
		return nil, fmt.Errorf("registry: class %s: %w", className, err)
	}

	arity := 1
	if field.IsRepeated() {
		// A repeated field describes a variadic class (e.g. STRUCT's field
		// list): any arity from zero up is well-formed.
		return &metavars.ClassDescriptor{
			Name:           className,
			Kind:           metavars.ClassCompound,
			Variadic:       true,
			ParameterKinds: []metavars.ParameterKind{paramKind},
		}, nil
	}
	return &metavars.ClassDescriptor{
		Name:           className,
		Kind:           metavars.ClassCompound,
		MinArity:       arity,
		MaxArity:       arity,
		ParameterKinds: []metavars.ParameterKind{paramKind},
	}, nil
}

func parameterKindFromProto(field *desc.FieldDescriptor) (metavars.ParameterKind, error) {
	switch field.GetType().String() {
	case "TYPE_MESSAGE", "TYPE_GROUP":
		return metavars.ParamDataType, nil
	case "TYPE_UINT32", "TYPE_UINT64", "TYPE_INT32", "TYPE_INT64":
		return metavars.ParamUnsignedInteger, nil
	default:
		return 0, fmt.Errorf("field %s has no corresponding parameter kind (proto type %s)", field.GetName(), field.GetType())
	}
}
