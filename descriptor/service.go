package descriptor

import "github.com/protox-go/protox/pmessage"

// ServiceDescriptor wraps a ServiceDescriptorProto instance.
type ServiceDescriptor struct {
	common
	Raw   *pmessage.Message
	Index int
}

func wrapServices(file *pmessage.Message) []*ServiceDescriptor {
	var sl []*ServiceDescriptor
	for i, svc := range getMessageList(file, "service") {
		sl = append(sl, &ServiceDescriptor{common: common{file}, Raw: svc, Index: i})
	}
	return sl
}

// Name is the service's own name.
func (s *ServiceDescriptor) Name() string { return getString(s.Raw, "name") }

// Methods returns the service's MethodDescriptorProto instances.
func (s *ServiceDescriptor) Methods() []*pmessage.Message { return getMessageList(s.Raw, "method") }

// MethodDescriptor-level accessors, kept as free functions since
// MethodDescriptorProto has no wrapper type of its own: the generator never
// needs to walk into it beyond these fields.

// MethodName returns a method's own name.
func MethodName(m *pmessage.Message) string { return getString(m, "name") }

// MethodInputType returns a method's fully-qualified input type name.
func MethodInputType(m *pmessage.Message) string { return getString(m, "input_type") }

// MethodOutputType returns a method's fully-qualified output type name.
func MethodOutputType(m *pmessage.Message) string { return getString(m, "output_type") }

// MethodClientStreaming reports whether the client streams requests.
func MethodClientStreaming(m *pmessage.Message) bool { return getBool(m, "client_streaming") }

// MethodServerStreaming reports whether the server streams responses.
func MethodServerStreaming(m *pmessage.Message) bool { return getBool(m, "server_streaming") }
