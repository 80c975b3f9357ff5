package descriptor

import (
	"strings"
	"unicode"

	"github.com/protox-go/protox/descriptorpb"
	"github.com/protox-go/protox/pmessage"
)

func isASCIILower(c byte) bool { return 'a' <= c && c <= 'z' }
func isASCIIDigit(c byte) bool { return '0' <= c && c <= '9' }

// CamelCase converts a snake_case (or already-mixed-case) identifier to
// CamelCase. An interior underscore followed by a lower-case letter is
// dropped and the letter upper-cased; a leading underscore becomes a
// leading X. Verbatim algorithm from the teacher's generator.go, since this
// exact byte-level behavior is what keeps generated names stable across
// runs.
func CamelCase(s string) string {
	if s == "" {
		return ""
	}
	t := make([]byte, 0, 32)
	i := 0
	if s[0] == '_' {
		t = append(t, 'X')
		i++
	}
	for ; i < len(s); i++ {
		c := s[i]
		if c == '_' && i+1 < len(s) && isASCIILower(s[i+1]) {
			continue
		}
		if isASCIIDigit(c) {
			t = append(t, c)
			continue
		}
		if isASCIILower(c) {
			c ^= ' '
		}
		t = append(t, c)
		for i+1 < len(s) && isASCIILower(s[i+1]) {
			i++
			t = append(t, s[i])
		}
	}
	return string(t)
}

// CamelCaseSlice joins elem with "_" before CamelCasing, for dotted type
// names.
func CamelCaseSlice(elem []string) string { return CamelCase(strings.Join(elem, "_")) }

// dottedSlice turns a sliced name into a dotted name.
func dottedSlice(elem []string) string { return strings.Join(elem, ".") }

// badToUnderscore maps any non-identifier rune to '_'; used to build a Go
// identifier out of a dotted or slashed .proto path.
func badToUnderscore(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return r
	}
	return '_'
}

// baseName returns the last path element of name with its final dotted
// suffix removed, e.g. "a/b/c.proto" -> "c".
func baseName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

// ImportAlias turns a .proto file path into the package alias the
// generator uses to refer to it: "a/b/c.proto" -> "a__b__c_pb", grounded on
// the teacher's uniquePackageOf/RegisterUniquePackageName scheme.
func ImportAlias(protoPath string) string {
	trimmed := strings.TrimSuffix(protoPath, ".proto")
	return strings.Map(badToUnderscore, strings.ReplaceAll(trimmed, "/", "__")) + "_pb"
}

func fieldLabel(f *pmessage.Message) int32 { return getInt32(f, "label") }
func fieldType(f *pmessage.Message) int32  { return getInt32(f, "type") }

// IsOptional reports whether a FieldDescriptorProto has LABEL_OPTIONAL.
func IsOptional(f *pmessage.Message) bool { return fieldLabel(f) == descriptorpb.LabelOptional }

// IsRequired reports whether a FieldDescriptorProto has LABEL_REQUIRED.
func IsRequired(f *pmessage.Message) bool { return fieldLabel(f) == descriptorpb.LabelRequired }

// IsRepeated reports whether a FieldDescriptorProto has LABEL_REPEATED.
func IsRepeated(f *pmessage.Message) bool { return fieldLabel(f) == descriptorpb.LabelRepeated }

// IsScalar reports whether a FieldDescriptorProto names one of the plain
// numeric/bool/enum wire kinds, as opposed to message, group, string or
// bytes.
func IsScalar(f *pmessage.Message) bool {
	switch fieldType(f) {
	case descriptorpb.TypeDouble, descriptorpb.TypeFloat, descriptorpb.TypeInt64,
		descriptorpb.TypeUint64, descriptorpb.TypeInt32, descriptorpb.TypeFixed64,
		descriptorpb.TypeFixed32, descriptorpb.TypeBool, descriptorpb.TypeUint32,
		descriptorpb.TypeEnum, descriptorpb.TypeSfixed32, descriptorpb.TypeSfixed64,
		descriptorpb.TypeSint32, descriptorpb.TypeSint64:
		return true
	default:
		return false
	}
}

// IsMessage reports whether the field is a nested-message-typed field.
func IsMessage(f *pmessage.Message) bool { return fieldType(f) == descriptorpb.TypeMessage }

// IsBytesLike reports whether the field holds a string or bytes payload.
func IsBytesLike(f *pmessage.Message) bool {
	t := fieldType(f)
	return t == descriptorpb.TypeString || t == descriptorpb.TypeBytes
}
