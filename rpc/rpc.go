// Package rpc defines the transport seam generated service clients call
// through. The runtime itself only produces and consumes wire bytes
// (pmessage/field/wire); opening a connection and framing a call is left to
// whatever transport a caller wires in, the same way the teacher's
// generated TypeScript left call, request, and response framing to its own
// gRPC runtime rather than inlining a transport into generated code.
package rpc

import "context"

// ClientConn is the interface a generated unary client method invokes
// through. A concrete implementation dials a server and performs request
// and response marshaling using the same pmessage.Message the generated
// code already traffics in.
type ClientConn interface {
	Invoke(ctx context.Context, method string, in, out interface{}) error
}
