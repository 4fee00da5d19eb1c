package typeinfer

import (
	"context"
	"testing"

	"github.com/jhump/protoreflect/dynamic"
)

func newSolveRequest(t *testing.T) *dynamic.Message {
	t.Helper()
	req := dynamic.NewMessage(solveRequestType)

	bindingA := dynamic.NewMessage(solveRequestType.FindFieldByName("bindings").GetMessageType())
	bindingA.SetFieldByName("name", "a")
	bindingA.SetFieldByName("kind", "integer")
	bindingA.SetFieldByName("has_value", true)
	bindingA.SetFieldByName("int_value", int64(3))

	bindingB := dynamic.NewMessage(solveRequestType.FindFieldByName("bindings").GetMessageType())
	bindingB.SetFieldByName("name", "b")
	bindingB.SetFieldByName("kind", "integer")
	bindingB.SetFieldByName("has_value", true)
	bindingB.SetFieldByName("int_value", int64(4))

	req.SetFieldByName("bindings", []any{bindingA, bindingB})

	constraint := dynamic.NewMessage(solveRequestType.FindFieldByName("constraints").GetMessageType())
	constraint.SetFieldByName("variable", "c")
	constraint.SetFieldByName("function", "add_integer")
	constraint.SetFieldByName("operands", []any{"a", "b"})
	req.SetFieldByName("constraints", []any{constraint})

	return req
}

func TestHandleSolveResolvesAddInteger(t *testing.T) {
	svc := &SolveService{}
	resp, err := svc.handleSolve(context.Background(), newSolveRequest(t))
	if err != nil {
		t.Fatalf("handleSolve failed: %v", err)
	}
	solved, _ := resp.GetFieldByName("solved").(bool)
	if !solved {
		diags, _ := resp.GetFieldByName("diagnostics").([]any)
		t.Fatalf("expected the request to solve, diagnostics: %v", diags)
	}
}

func TestServiceDescMethodCount(t *testing.T) {
	svc := &SolveService{}
	desc := svc.ServiceDesc()
	if len(desc.Methods) != 1 {
		t.Errorf("ServiceDesc().Methods has %d entries, want 1 (Solve)", len(desc.Methods))
	}
}
