package generator

import (
	"strings"

	"github.com/protox-go/protox/descriptor"
	"github.com/protox-go/protox/pmessage"
)

// Cardinality tags for a service method, grounded on the teacher's
// plugin.go gRPC plugin (generateClientMethod/generateServerMethod), which
// branches the same four ways on client_streaming/server_streaming.
const (
	UnaryUnary   = "UNARY_UNARY"
	UnaryStream  = "UNARY_STREAM"
	StreamUnary  = "STREAM_UNARY"
	StreamStream = "STREAM_STREAM"
)

func cardinality(clientStreaming, serverStreaming bool) string {
	switch {
	case clientStreaming && serverStreaming:
		return StreamStream
	case clientStreaming:
		return StreamUnary
	case serverStreaming:
		return UnaryStream
	default:
		return UnaryUnary
	}
}

// generateService emits a gRPC-shaped client interface and struct, a
// server interface, and per-method handler functions keyed by their full
// RPC path. Grounded directly on the teacher's plugin.go typeScript plugin
// (generateService/generateClientSignature/generateServerSignature),
// adapted from its TypeScript output to plain Go method signatures and
// from its grpc.ServiceDesc table to an explicit cardinality tag per
// method, per the UNARY_UNARY/UNARY_STREAM/STREAM_UNARY/STREAM_STREAM
// vocabulary this module's own service layer uses.
func (g *Generator) generateService(p *Printer, fd *descriptor.FileDescriptor, svc *descriptor.ServiceDescriptor) {
	servName := descriptor.CamelCase(svc.Name())
	fullServName := svc.Name()
	if pkg := fd.Package(); pkg != "" {
		fullServName = pkg + "." + fullServName
	}

	pkg := fd.Package()

	p.P("// Client API for ", servName)
	p.P("type ", servName, "Client interface {")
	p.In()
	for _, m := range svc.Methods() {
		p.P(clientMethodSignature(pkg, servName, m))
	}
	p.Out()
	p.P("}")
	p.P()

	unexported := unexport(servName)
	p.P("type ", unexported, "Client struct {")
	p.In()
	p.P("conn rpc.ClientConn")
	p.Out()
	p.P("}")
	p.P()
	p.P("func New", servName, "Client(conn rpc.ClientConn) ", servName, "Client {")
	p.In()
	p.P("return &", unexported, "Client{conn: conn}")
	p.Out()
	p.P("}")
	p.P()

	for _, m := range svc.Methods() {
		generateClientMethod(p, pkg, unexported, fullServName, servName, m)
	}

	p.P("// Server API for ", servName)
	p.P("type ", servName, "Server interface {")
	p.In()
	for _, m := range svc.Methods() {
		p.P(serverMethodSignature(pkg, m))
	}
	p.Out()
	p.P("}")
	p.P()

	p.P("var ", servName, "MethodCardinality = map[string]string{")
	p.In()
	for _, m := range svc.Methods() {
		rpcPath := "/" + fullServName + "/" + descriptor.MethodName(m)
		card := cardinality(descriptor.MethodClientStreaming(m), descriptor.MethodServerStreaming(m))
		p.P(quote(rpcPath), ": ", quote(card), ",")
	}
	p.Out()
	p.P("}")
	p.P()

	for _, m := range svc.Methods() {
		generateServerHandler(p, pkg, servName, fullServName, m)
	}
}

func clientMethodSignature(pkg, servName string, m *pmessage.Message) string {
	name := descriptor.CamelCase(descriptor.MethodName(m))
	in := goTypeRef(pkg, descriptor.MethodInputType(m))
	out := goTypeRef(pkg, descriptor.MethodOutputType(m))
	clientStream := descriptor.MethodClientStreaming(m)
	serverStream := descriptor.MethodServerStreaming(m)
	switch {
	case !clientStream && !serverStream:
		return name + "(ctx context.Context, in *" + in + ") (*" + out + ", error)"
	case clientStream && !serverStream:
		return name + "(ctx context.Context) (" + servName + "_" + name + "Client, error)"
	case !clientStream && serverStream:
		return name + "(ctx context.Context, in *" + in + ") (" + servName + "_" + name + "Client, error)"
	default:
		return name + "(ctx context.Context) (" + servName + "_" + name + "Client, error)"
	}
}

func serverMethodSignature(pkg string, m *pmessage.Message) string {
	name := descriptor.CamelCase(descriptor.MethodName(m))
	in := goTypeRef(pkg, descriptor.MethodInputType(m))
	out := goTypeRef(pkg, descriptor.MethodOutputType(m))
	return name + "(ctx context.Context, in *" + in + ") (*" + out + ", error)"
}

// generateClientMethod emits one client method body. Unary calls go
// through ClientConn.Invoke directly; streaming methods are declared on
// the client interface but their body reports unimplemented, since a
// concrete stream transport is outside this module's scope (the runtime
// produces and consumes wire bytes, it does not open connections).
func generateClientMethod(p *Printer, pkg, unexportedClient, fullServName, servName string, m *pmessage.Message) {
	rpcPath := "/" + fullServName + "/" + descriptor.MethodName(m)
	out := goTypeRef(pkg, descriptor.MethodOutputType(m))

	p.P("func (c *", unexportedClient, "Client) ", clientMethodSignature(pkg, servName, m), " {")
	p.In()
	if !descriptor.MethodClientStreaming(m) && !descriptor.MethodServerStreaming(m) {
		p.P("out := new(", out, ")")
		p.P("if err := c.conn.Invoke(ctx, ", quote(rpcPath), ", in, out); err != nil {")
		p.In()
		p.P("return nil, err")
		p.Out()
		p.P("}")
		p.P("return out, nil")
	} else {
		p.P("return nil, fmt.Errorf(\"streaming rpc %s not supported by this client\", ", quote(rpcPath), ")")
	}
	p.Out()
	p.P("}")
	p.P()
}

func generateServerHandler(p *Printer, pkg, servName, fullServName string, m *pmessage.Message) {
	name := descriptor.CamelCase(descriptor.MethodName(m))
	rpcPath := "/" + fullServName + "/" + descriptor.MethodName(m)
	in := goTypeRef(pkg, descriptor.MethodInputType(m))

	p.P("// Handler for ", quote(rpcPath))
	p.P("func _", servName, "_", name, "_Handler(srv ", servName, "Server, ctx context.Context, dec func(interface{}) error) (interface{}, error) {")
	p.In()
	p.P("in := new(", in, ")")
	p.P("if err := dec(in); err != nil { return nil, err }")
	p.P("return srv.", name, "(ctx, in)")
	p.Out()
	p.P("}")
	p.P()
}

// goTypeRef renders a fully-qualified protobuf type name as the Go
// identifier a generated file can reference. A message declared in the
// same package as the service is emitted bare, as its CamelCased message
// name (the receiver type generateMessage's accessors use in the sibling
// <stem>_pb.go file);
// anything else falls back to its full dotted path CamelCased, since
// resolving it to another file's import alias is out of scope here.
func goTypeRef(pkg, protoTypeName string) string {
	trimmed := strings.TrimPrefix(protoTypeName, ".")
	if pkg != "" && strings.HasPrefix(trimmed, pkg+".") {
		trimmed = strings.TrimPrefix(trimmed, pkg+".")
	}
	return descriptor.CamelCaseSlice(strings.Split(trimmed, "."))
}

func unexport(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
