package pmessage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/protox-go/protox/container"
)

const (
	maxFormattedItems = 10
	maxFormattedBytes = 200
)

// Format returns a deterministic, indented textual form for diagnostics.
// It is not a wire or stable interchange surface: field order follows
// declaration order, repeated fields truncate past ten items with an
// overflow annotation, and byte/text strings truncate past a fixed length.
func (m *Message) Format() string {
	var b strings.Builder
	m.format(&b, 0)
	return b.String()
}

func (m *Message) format(b *strings.Builder, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%s {\n", m.mtype.Name)
	for _, entry := range m.mtype.fields {
		v, present := m.values[entry.name]
		if !present {
			continue
		}
		fmt.Fprintf(b, "%s  %s: ", pad, entry.name)
		formatValue(b, v, indent+1)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s}", pad)
}

func formatValue(b *strings.Builder, v interface{}, indent int) {
	switch x := v.(type) {
	case *Message:
		x.format(b, indent)
	case *container.List:
		items := x.Slice()
		b.WriteString("[")
		n := len(items)
		if n > maxFormattedItems {
			n = maxFormattedItems
		}
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			formatValue(b, items[i], indent)
		}
		if len(items) > maxFormattedItems {
			fmt.Fprintf(b, ", ... (%d more)", len(items)-maxFormattedItems)
		}
		b.WriteString("]")
	case *container.Dict:
		entries := x.Map()
		keys := make([]interface{}, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j]) })
		b.WriteString("{")
		for i, k := range keys {
			if i >= maxFormattedItems {
				fmt.Fprintf(b, ", ... (%d more)", len(keys)-maxFormattedItems)
				break
			}
			if i > 0 {
				b.WriteString(", ")
			}
			formatValue(b, k, indent)
			b.WriteString(": ")
			formatValue(b, entries[k], indent)
		}
		b.WriteString("}")
	case string:
		b.WriteString(truncateString(x))
	case []byte:
		b.WriteString(truncateBytes(x))
	default:
		fmt.Fprintf(b, "%v", x)
	}
}

func truncateString(s string) string {
	if len(s) <= maxFormattedBytes {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%q...(%d bytes)", s[:maxFormattedBytes], len(s))
}

func truncateBytes(bs []byte) string {
	if len(bs) <= maxFormattedBytes {
		return fmt.Sprintf("%x", bs)
	}
	return fmt.Sprintf("%x...(%d bytes)", bs[:maxFormattedBytes], len(bs))
}
