package descriptor

import (
	"path"
	"strconv"
	"strings"

	"github.com/protox-go/protox/pmessage"
)

// FileDescriptor wraps a FileDescriptorProto instance together with the
// Messages/Enums/Services it declares, collected by WrapFile. Grounded on
// the teacher's descriptor/file.go.
type FileDescriptor struct {
	Raw      *pmessage.Message
	Messages []*MessageDescriptor
	Enums    []*EnumDescriptor
	Services []*ServiceDescriptor

	// Comments maps a SourceCodeInfo path (comma-separated integers) to its
	// leading comment text.
	Comments map[string]string

	Index  int
	Proto3 bool
}

// WrapFile builds the full descriptor tree for one FileDescriptorProto:
// messages (with nesting resolved), their enums, and top-level enums and
// services. Mirrors the teacher's Generator.WrapTypes, scoped to a single
// file since this module's Generator processes files independently
// (spec.md's per-file emission invariant, backed by errgroup).
func WrapFile(file *pmessage.Message, index int) *FileDescriptor {
	msgs := wrapMessages(file)
	buildNestedMessages(msgs)
	enums := wrapEnums(file, msgs)
	buildNestedEnums(msgs, enums)

	fd := &FileDescriptor{
		Raw:      file,
		Messages: msgs,
		Enums:    topLevelEnums(enums),
		Services: wrapServices(file),
		Index:    index,
		Proto3:   fileIsProto3(file),
	}
	extractComments(fd)
	return fd
}

func topLevelEnums(enums []*EnumDescriptor) []*EnumDescriptor {
	var top []*EnumDescriptor
	for _, e := range enums {
		if e.parent == nil {
			top = append(top, e)
		}
	}
	return top
}

// Name is the .proto source path, e.g. "a/b/c.proto".
func (d *FileDescriptor) Name() string { return getString(d.Raw, "name") }

// Package is the declared protobuf package, possibly empty.
func (d *FileDescriptor) Package() string { return getString(d.Raw, "package") }

// Dependencies lists the imported .proto file paths.
func (d *FileDescriptor) Dependencies() []string { return getStringList(d.Raw, "dependency") }

// PackageAlias is the import alias this file is referred to by from other
// generated files: "a/b/c.proto" -> "a__b__c_pb".
func (d *FileDescriptor) PackageAlias() string { return ImportAlias(d.Name()) }

// OutputFileName is the generated Go source path for this .proto file's
// message bindings: "<stem>_pb.go".
func (d *FileDescriptor) OutputFileName() string { return d.stem() + "_pb.go" }

// GrpclibFileName is the companion file carrying this .proto file's service
// stubs, emitted alongside OutputFileName when the grpclib option is set
// and the file declares services: "<stem>_grpclib.go".
func (d *FileDescriptor) GrpclibFileName() string { return d.stem() + "_grpclib.go" }

func (d *FileDescriptor) stem() string {
	name := d.Name()
	if ext := path.Ext(name); ext == ".proto" {
		name = name[:len(name)-len(ext)]
	}
	return name
}

func extractComments(fd *FileDescriptor) {
	fd.Comments = make(map[string]string)
	info := getMessage(fd.Raw, "source_code_info")
	if info == nil {
		return
	}
	for _, loc := range getMessageList(info, "location") {
		leading := getString(loc, "leading_comments")
		if leading == "" {
			continue
		}
		fd.Comments[pathKey(loc)] = leading
	}
}

func pathKey(loc *pmessage.Message) string {
	v, err := loc.Get("path")
	if err != nil || v == nil {
		return ""
	}
	lst, ok := v.(listLike)
	if !ok {
		return ""
	}
	parts := make([]string, 0, lst.Len())
	for i := 0; i < lst.Len(); i++ {
		switch n := lst.Get(i).(type) {
		case int32:
			parts = append(parts, strconv.FormatInt(int64(n), 10))
		case int64:
			parts = append(parts, strconv.FormatInt(n, 10))
		}
	}
	return strings.Join(parts, ",")
}
