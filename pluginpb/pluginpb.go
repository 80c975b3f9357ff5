// Package pluginpb implements the protoc compiler-plugin protocol messages:
// the CodeGeneratorRequest a compiler plugin reads from stdin and the
// CodeGeneratorResponse it writes to stdout. Grounded on
// original_source/protox/well_known_types/plugin.py, with the
// supported_features bitmask added per the upstream plugin.proto so a
// FEATURE_PROTO3_OPTIONAL-aware caller can detect this plugin's level of
// support.
package pluginpb

import (
	"github.com/protox-go/protox/descriptorpb"
	"github.com/protox-go/protox/field"
	"github.com/protox-go/protox/pmessage"
)

// CodeGeneratorResponse.Feature bits.
const (
	FeatureNone           uint64 = 0
	FeatureProto3Optional uint64 = 1
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var (
	VersionType = pmessage.NewMessageType("google.protobuf.compiler.Version", pmessage.Proto2)

	CodeGeneratorRequestType = pmessage.NewMessageType("google.protobuf.compiler.CodeGeneratorRequest", pmessage.Proto2)

	CodeGeneratorResponseType     = pmessage.NewMessageType("google.protobuf.compiler.CodeGeneratorResponse", pmessage.Proto2)
	codeGeneratorResponseFileType = pmessage.NewMessageType("google.protobuf.compiler.CodeGeneratorResponse.File", pmessage.Proto2)
)

func init() {
	must0(pmessage.DefineFields(VersionType,
		pmessage.FieldDef{Name: "major", Field: must(field.NewInt32(1, false))},
		pmessage.FieldDef{Name: "minor", Field: must(field.NewInt32(2, false))},
		pmessage.FieldDef{Name: "patch", Field: must(field.NewInt32(3, false))},
		pmessage.FieldDef{Name: "suffix", Field: must(field.NewString(4, false))},
	))

	versionField := must(field.NewMessageField(3, false, "google.protobuf.compiler.Version", func() field.Message { return VersionType.New() }))
	protoFileElem := must(field.NewMessageField(15, false, "google.protobuf.FileDescriptorProto", func() field.Message {
		return descriptorpb.FileDescriptorProtoType.New()
	}))
	must0(pmessage.DefineFields(CodeGeneratorRequestType,
		pmessage.FieldDef{Name: "file_to_generate", Field: must(field.NewRepeated(1, must(field.NewString(1, false)), false))},
		pmessage.FieldDef{Name: "parameter", Field: must(field.NewString(2, false))},
		pmessage.FieldDef{Name: "proto_file", Field: must(field.NewRepeated(15, protoFileElem, false))},
		pmessage.FieldDef{Name: "compiler_version", Field: versionField},
	))

	must0(pmessage.DefineFields(codeGeneratorResponseFileType,
		pmessage.FieldDef{Name: "name", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "insertion_point", Field: must(field.NewString(2, false))},
		pmessage.FieldDef{Name: "content", Field: must(field.NewString(15, false))},
	))
	fileElem := must(field.NewMessageField(15, false, "google.protobuf.compiler.CodeGeneratorResponse.File", func() field.Message {
		return codeGeneratorResponseFileType.New()
	}))
	must0(pmessage.DefineFields(CodeGeneratorResponseType,
		pmessage.FieldDef{Name: "error", Field: must(field.NewString(1, false))},
		pmessage.FieldDef{Name: "supported_features", Field: must(field.NewUInt64(2, false, FeatureNone))},
		pmessage.FieldDef{Name: "file", Field: must(field.NewRepeated(15, fileElem, false))},
	))
}

func must0(err error) {
	if err != nil {
		panic(err)
	}
}

// NewFile builds a CodeGeneratorResponse.File instance; a small convenience
// since callers construct many of these per response.
func NewFile(name, content string) *pmessage.Message {
	f := codeGeneratorResponseFileType.New()
	_ = f.Set("name", name)
	_ = f.Set("content", content)
	return f
}
