package generator

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/descriptor"
	"github.com/protox-go/protox/internal/perr"
	"github.com/protox-go/protox/internal/plog"
	"github.com/protox-go/protox/pluginpb"
	"github.com/protox-go/protox/pmessage"
)

// Printer accumulates generated source text with a simple indent stack.
// Grounded on the teacher's Generator, which embeds a *bytes.Buffer and
// tracks indentation the same way (P/In/Out), so per-file emission reads
// like ordinary printf-style code generation rather than an AST builder.
type Printer struct {
	buf    bytes.Buffer
	indent string
}

// P writes its arguments, each stringified, followed by a newline prefixed
// with the current indent.
func (p *Printer) P(args ...interface{}) {
	p.buf.WriteString(p.indent)
	for _, a := range args {
		fmt.Fprint(&p.buf, a)
	}
	p.buf.WriteByte('\n')
}

// In increases the indent by one tab stop.
func (p *Printer) In() { p.indent += "\t" }

// Out decreases the indent by one tab stop, if any remains.
func (p *Printer) Out() {
	if len(p.indent) > 0 {
		p.indent = p.indent[:len(p.indent)-1]
	}
}

func (p *Printer) String() string { return p.buf.String() }

// Generator drives the per-file emission pass over a CodeGeneratorRequest.
// Grounded on the teacher's root Generator struct (Request/Response/Param
// fields), adapted so the request and response are this module's own
// pluginpb dynamic messages rather than golang/protobuf generated structs.
type Generator struct {
	Index  *Index
	Params *Params
}

// Generate runs the full code-generation pass: parse parameters, wrap
// every FileDescriptorProto named in the request into a descriptor tree,
// then emit Go source for each file named in file_to_generate. Files are
// generated concurrently via errgroup (spec.md's per-file independence
// invariant) and reassembled in request order.
func Generate(req *pmessage.Message) (*pmessage.Message, error) {
	parameter, _ := req.Get("parameter")
	params := ParseParameters(stringOrEmpty(parameter))

	if cv, _ := req.Get("compiler_version"); cv != nil {
		if v, ok := cv.(*pmessage.Message); ok {
			if err := checkRequestVersion(v); err != nil {
				return errorResponse(err), nil
			}
		}
	}

	protoFileVal, _ := req.Get("proto_file")
	protoFiles := messagesOf(protoFileVal)

	idx, err := NewIndex(protoFiles)
	if err != nil {
		return nil, perr.Wrap(err, "building generator index")
	}
	g := &Generator{Index: idx, Params: params}

	toGenerateVal, _ := req.Get("file_to_generate")
	names := stringsOf(toGenerateVal)

	files := make([]*descriptor.FileDescriptor, 0, len(names))
	for _, name := range names {
		fd, err := idx.FileByName(name)
		if err != nil {
			return errorResponse(err), nil
		}
		files = append(files, fd)
	}

	results := make([]string, len(files))
	grpcResults := make([]string, len(files))
	grp, _ := errgroup.WithContext(context.Background())
	for i, fd := range files {
		i, fd := i, fd
		grp.Go(func() error {
			src, grpcSrc, err := g.generateFile(fd)
			if err != nil {
				return perr.Wrap(err, "generating %q", fd.Name())
			}
			results[i] = src
			grpcResults[i] = grpcSrc
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		plog.Errorf("generation failed: %v", err)
		return errorResponse(err), nil
	}

	resp := pluginpb.CodeGeneratorResponseType.New()
	if err := resp.Set("supported_features", pluginpb.FeatureProto3Optional); err != nil {
		return nil, err
	}
	fileList, err := resp.Get("file")
	if err != nil {
		return nil, err
	}
	for i, fd := range files {
		if err := fileList.(*container.List).Append(pluginpb.NewFile(fd.OutputFileName(), results[i])); err != nil {
			return nil, err
		}
		if grpcResults[i] != "" {
			if err := fileList.(*container.List).Append(pluginpb.NewFile(fd.GrpclibFileName(), grpcResults[i])); err != nil {
				return nil, err
			}
		}
	}
	return resp, nil
}

func checkRequestVersion(v *pmessage.Message) error {
	major, _ := v.Get("major")
	minor, _ := v.Get("minor")
	patch, _ := v.Get("patch")
	ma, _ := major.(int32)
	mi, _ := minor.(int32)
	pa, _ := patch.(int32)
	if ma == 0 && mi == 0 && pa == 0 {
		return nil
	}
	return CheckCompilerVersion(ma, mi, pa)
}

func errorResponse(err error) *pmessage.Message {
	resp := pluginpb.CodeGeneratorResponseType.New()
	_ = resp.Set("error", err.Error())
	return resp
}

func stringOrEmpty(v interface{}) string {
	s, _ := v.(string)
	return s
}

type listLike interface {
	Len() int
	Get(i int) interface{}
}

func messagesOf(v interface{}) []*pmessage.Message {
	lst, ok := v.(listLike)
	if !ok {
		return nil
	}
	out := make([]*pmessage.Message, 0, lst.Len())
	for i := 0; i < lst.Len(); i++ {
		if m, ok := lst.Get(i).(*pmessage.Message); ok {
			out = append(out, m)
		}
	}
	return out
}

func stringsOf(v interface{}) []string {
	lst, ok := v.(listLike)
	if !ok {
		return nil
	}
	out := make([]string, 0, lst.Len())
	for i := 0; i < lst.Len(); i++ {
		if s, ok := lst.Get(i).(string); ok {
			out = append(out, s)
		}
	}
	return out
}
