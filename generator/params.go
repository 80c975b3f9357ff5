package generator

import (
	"strconv"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/protox-go/protox/internal/perr"
)

// generatedCodeVersion is the minimum protoc-compiler version this
// generator declares compatibility with, mirroring the teacher's
// generatedCodeVersion constant but expressed as a real semver value so it
// can be compared against CodeGeneratorRequest.compiler_version instead of
// only emitted as a literal into generated output.
var generatedCodeVersion = semver.MustParse("3.0.0")

// Params holds the parsed --go_out (here: --protox_out) plugin parameter
// string, spec.md §6's comma-separated key=value / bare-key list.
type Params struct {
	BasePackage      string
	WithDependencies bool
	GRPCLib          bool
	SnakeCase        bool
	raw              map[string]string
}

// ParseParameters splits the parameter string on commas or spaces, then on
// the first "=" in each entry, exactly as the teacher's
// CommandLineParameters does, and recognizes the option set spec.md §6
// names instead of protoc-gen-go's import_prefix/import_path/plugins/
// M<file>=<path> set.
func ParseParameters(parameter string) *Params {
	p := &Params{raw: make(map[string]string)}
	if parameter == "" {
		return p
	}
	for _, kv := range strings.Fields(strings.ReplaceAll(parameter, ",", " ")) {
		if kv == "" {
			continue
		}
		if i := strings.Index(kv, "="); i < 0 {
			p.raw[kv] = ""
		} else {
			p.raw[kv[:i]] = kv[i+1:]
		}
	}
	for k, v := range p.raw {
		switch k {
		case "base-package":
			p.BasePackage = v
		case "with-dependencies":
			p.WithDependencies = true
		case "grpclib":
			p.GRPCLib = true
		case "snake-case":
			p.SnakeCase = true
		}
	}
	return p
}

// Get returns the raw string value of a bare or key=value parameter.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.raw[key]
	return v, ok
}

// CheckCompilerVersion verifies the compiler that issued the request is new
// enough for this generator to trust the request's descriptor encoding.
// Grounded on the teacher's generatedCodeVersion compatibility constant,
// generalized into an actual semver.Version comparison against
// CodeGeneratorRequest.compiler_version instead of a compile-time literal
// baked into every generated file.
func CheckCompilerVersion(major, minor, patch int32) error {
	v, err := semver.New(formatVersion(major, minor, patch))
	if err != nil {
		return perr.Wrap(err, "parsing compiler_version")
	}
	if v.LT(generatedCodeVersion) {
		return perr.ValueError("protoc compiler version %s is older than the minimum supported %s", v, generatedCodeVersion)
	}
	return nil
}

func formatVersion(major, minor, patch int32) string {
	return strconv.Itoa(int(major)) + "." + strconv.Itoa(int(minor)) + "." + strconv.Itoa(int(patch))
}
