package generator

import (
	"strconv"

	"github.com/protox-go/protox/descriptor"
)

// isGoKeyword is the keyword/predeclared-identifier table a generated
// field or method name must not collide with. Grounded on the teacher's
// isGoKeyword map, trimmed to reserved words (predeclared identifiers are
// handled by the fact that generated names are always capitalized, so they
// cannot collide with the lower-case builtins).
var isGoKeyword = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// disambiguate appends a numeric suffix until name is not already present
// in used, then records the result. Mirrors the teacher's collision
// handling for getter/field names within a single message.
func disambiguate(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = name + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}

// goFieldName maps a FieldDescriptorProto's snake_case name to the
// exported Go identifier the generated accessor uses, mangling away any Go
// keyword collision.
func goFieldName(protoName string, used map[string]bool) string {
	if isKeyword(protoName) {
		protoName += "_"
	}
	name := descriptor.CamelCase(protoName)
	return disambiguate(name, used)
}

func isKeyword(s string) bool { return isGoKeyword[s] }
