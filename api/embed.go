// Package api embeds the wire contract for the type-inference engine's
// gRPC front door. Keeping the .proto text embedded rather than read from
// disk at a relative path means pkg/typeinfer.SolveService works the same
// whether it's running as a CLI subprocess, an embedded library, or a long
// running service with an unrelated working directory.
package api

import _ "embed"

//go:embed typeinfer.proto
var TypeInferProto string
