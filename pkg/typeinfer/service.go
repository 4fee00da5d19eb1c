package typeinfer

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/jvanstraten/typeinfer/api"
	"github.com/jvanstraten/typeinfer/internal/registry"
)

// The wire contract is parsed once at package init from the embedded
// proto source (api.TypeInferProto), the same way the teacher's
// grpcLoadProto builtin compiles a .proto at runtime via protoparse rather
// than requiring generated code checked in from a protoc run. Embedding
// the source rather than reading api/typeinfer.proto from a relative path
// means this works regardless of the calling binary's working directory.
var (
	solveServiceDescriptor *desc.ServiceDescriptor
	solveRequestType       *desc.MessageDescriptor
	solveResponseType      *desc.MessageDescriptor
)

func init() {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{"typeinfer.proto": api.TypeInferProto}),
	}
	fds, err := parser.ParseFiles("typeinfer.proto")
	if err != nil {
		// A malformed wire contract is a build-time defect, not a runtime
		// one worth propagating through every RegisterSolveService caller.
		panic(fmt.Sprintf("typeinfer: parsing the embedded wire contract: %v", err))
	}
	fd := fds[0]
	solveServiceDescriptor = fd.FindService("typeinfer.TypeInferService")
	solveRequestType = fd.FindMessage("typeinfer.SolveRequest")
	solveResponseType = fd.FindMessage("typeinfer.SolveResponse")
}

// SolveService implements the TypeInferService RPC defined in
// api/typeinfer.proto by delegating to a fresh Engine per request.
// Scopes are per-call, matching §5's "a scope is owned and solved by a
// single actor" invariant even when many RPCs are in flight concurrently.
type SolveService struct {
	Registry *registry.Registry
}

// ServiceDesc builds the grpc.ServiceDesc for this service. Hand-built
// rather than generated, mirroring the teacher's builtinGrpcRegister,
// which constructs a grpc.ServiceDesc from a dynamically loaded
// desc.ServiceDescriptor instead of protoc-gen-go output.
func (s *SolveService) ServiceDesc() *grpc.ServiceDesc {
	sd := &grpc.ServiceDesc{
		ServiceName: solveServiceDescriptor.GetFullyQualifiedName(),
		HandlerType: (*any)(nil),
		Metadata:    "api/typeinfer.proto",
	}
	for _, method := range solveServiceDescriptor.GetMethods() {
		name := method.GetName()
		sd.Methods = append(sd.Methods, grpc.MethodDesc{
			MethodName: name,
			Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
				impl := srv.(*SolveService)
				req := dynamic.NewMessage(solveRequestType)
				if err := dec(req); err != nil {
					return nil, err
				}
				return impl.handleSolve(ctx, req)
			},
		})
	}
	return sd
}

// Register attaches this service to server.
func (s *SolveService) Register(server *grpc.Server) {
	server.RegisterService(s.ServiceDesc(), s)
}

func (s *SolveService) handleSolve(_ context.Context, req *dynamic.Message) (*dynamic.Message, error) {
	reg := s.Registry
	if reg == nil {
		reg = registry.Builtin()
	}
	engine := New(reg)

	for _, raw := range req.GetField(solveRequestType.FindFieldByName("bindings")).([]any) {
		b := raw.(*dynamic.Message)
		name, _ := b.GetFieldByName("name").(string)
		kind, _ := b.GetFieldByName("kind").(string)
		hasValue, _ := b.GetFieldByName("has_value").(bool)
		switch kind {
		case "integer":
			ref := engine.BindInteger(name)
			if hasValue {
				v, _ := b.GetFieldByName("int_value").(int64)
				if err := engine.ConstrainRange(name, v, v, "bound via SolveRequest"); err != nil {
					return nil, err
				}
			}
			_ = ref
		case "boolean":
			engine.BindBoolean(name)
		case "data_type":
			engine.BindDataType(name)
		default:
			return nil, fmt.Errorf("unknown binding kind %q for %s", kind, name)
		}
	}

	for _, raw := range req.GetField(solveRequestType.FindFieldByName("constraints")).([]any) {
		c := raw.(*dynamic.Message)
		variable, _ := c.GetFieldByName("variable").(string)
		hasRange, _ := c.GetFieldByName("has_range").(bool)
		if hasRange {
			low, _ := c.GetFieldByName("low").(int64)
			high, _ := c.GetFieldByName("high").(int64)
			if err := engine.ConstrainRange(variable, low, high, "bound via SolveRequest"); err != nil {
				return nil, err
			}
			continue
		}
		function, _ := c.GetFieldByName("function").(string)
		if function == "" {
			continue
		}
		operandsRaw, _ := c.GetFieldByName("operands").([]any)
		operands := make([]string, len(operandsRaw))
		for i, o := range operandsRaw {
			operands[i] = o.(string)
		}
		if err := engine.ConstrainFunction(variable, function, operands...); err != nil {
			return nil, err
		}
	}

	result := engine.Solve()

	resp := dynamic.NewMessage(solveResponseType)
	resp.SetFieldByName("solved", result.Solved())
	resp.SetFieldByName("iterations", int32(result.Iterations))
	reasons := make([]any, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		reasons[i] = d.Error()
	}
	resp.SetFieldByName("diagnostics", reasons)
	return resp, nil
}
