package registry

import (
	"testing"

	"github.com/jvanstraten/typeinfer/internal/metavars"
)

const listFieldProto = `
syntax = "proto3";
package sample;
message ListType {
  repeated uint32 element_sizes = 1;
}
`

func TestDescribeFromProtoRepeatedField(t *testing.T) {
	cls, err := DescribeFromProto("PROTO_LIST", listFieldProto, "ListType", "element_sizes")
	if err != nil {
		t.Fatalf("DescribeFromProto failed: %v", err)
	}
	if !cls.Variadic {
		t.Errorf("expected a repeated proto field to describe a variadic class")
	}
	if pk, ok := cls.ParameterKindAt(0); !ok || pk != metavars.ParamUnsignedInteger {
		t.Errorf("expected an unsigned-integer parameter kind, got %v, ok=%v", pk, ok)
	}
}

func TestDescribeFromProtoUnknownMessage(t *testing.T) {
	_, err := DescribeFromProto("X", listFieldProto, "NoSuchMessage", "element_sizes")
	if err == nil {
		t.Fatal("expected an error for an unknown message name")
	}
}
