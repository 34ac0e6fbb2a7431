// Package present renders lifecycle events and streamed tokens for the
// console front-end.
package present

import (
	"fmt"
	"strings"

	"deepsearch/internal/event"
)

// NoDataText is shown for events that carry no payload.
const NoDataText = "no event data"

// TreeLines flattens a payload tree into one line per datum. Mapping
// keys and list indices stay visible at every depth, and multi-line
// leaves produce one line per source line under the same key context.
func TreeLines(v event.Value) []string {
	if v.IsNil() {
		return []string{NoDataText}
	}
	var out []string
	walkValue("", v, &out)
	return out
}

func walkValue(prefix string, v event.Value, out *[]string) {
	switch v.Kind {
	case event.ValueNil:
		*out = append(*out, contextLine(prefix, NoDataText))
	case event.ValueLeaf:
		for _, line := range strings.Split(v.Leaf, "\n") {
			*out = append(*out, contextLine(prefix, line))
		}
	case event.ValueList:
		if len(v.Items) == 0 {
			*out = append(*out, contextLine(prefix, "(empty list)"))
			return
		}
		for i, item := range v.Items {
			walkValue(fmt.Sprintf("%s[%d]", prefix, i), item, out)
		}
	case event.ValueMapping:
		if len(v.Keys) == 0 {
			*out = append(*out, contextLine(prefix, "(empty mapping)"))
			return
		}
		for i, key := range v.Keys {
			walkValue(joinKey(prefix, key), v.Fields[i], out)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func contextLine(prefix, text string) string {
	if prefix == "" {
		return text
	}
	return prefix + ": " + text
}
