package event

import (
	"fmt"
	"sort"
	"strconv"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// ValueNil marks an absent payload.
	ValueNil ValueKind = iota
	// ValueLeaf holds a single textual datum.
	ValueLeaf
	// ValueList holds an ordered sequence of values.
	ValueList
	// ValueMapping holds key-ordered named values.
	ValueMapping
)

// Value is a tagged-variant payload tree. Exactly one of Leaf, Items, or
// the Keys/Fields pair is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Leaf  string
	Items []Value
	// Keys and Fields are parallel slices; Keys fixes the mapping order.
	Keys   []string
	Fields []Value
}

// LeafValue builds a leaf value from formatted text.
func LeafValue(text string) Value {
	return Value{Kind: ValueLeaf, Leaf: text}
}

// IsNil reports whether the value carries no data.
func (v Value) IsNil() bool {
	return v.Kind == ValueNil
}

// Field returns the field for key and whether it exists.
func (v Value) Field(key string) (Value, bool) {
	for i, k := range v.Keys {
		if k == key {
			return v.Fields[i], true
		}
	}
	return Value{}, false
}

// FromAny converts arbitrary payload data into a value tree. Maps become
// mappings with sorted keys, slices and arrays become lists, everything
// else becomes a leaf via fmt. Nil input yields the nil value.
func FromAny(data any) Value {
	if data == nil {
		return Value{}
	}
	switch d := data.(type) {
	case Value:
		return d
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := Value{Kind: ValueMapping, Keys: keys, Fields: make([]Value, len(keys))}
		for i, k := range keys {
			out.Fields[i] = FromAny(d[k])
		}
		return out
	case map[string]string:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := Value{Kind: ValueMapping, Keys: keys, Fields: make([]Value, len(keys))}
		for i, k := range keys {
			out.Fields[i] = LeafValue(d[k])
		}
		return out
	case []any:
		out := Value{Kind: ValueList, Items: make([]Value, len(d))}
		for i, item := range d {
			out.Items[i] = FromAny(item)
		}
		return out
	case []string:
		out := Value{Kind: ValueList, Items: make([]Value, len(d))}
		for i, item := range d {
			out.Items[i] = LeafValue(item)
		}
		return out
	case string:
		return LeafValue(d)
	case bool:
		return LeafValue(strconv.FormatBool(d))
	case int:
		return LeafValue(strconv.Itoa(d))
	case int64:
		return LeafValue(strconv.FormatInt(d, 10))
	case float64:
		return LeafValue(formatFloat(d))
	case error:
		return LeafValue(d.Error())
	case fmt.Stringer:
		return LeafValue(d.String())
	default:
		return LeafValue(fmt.Sprintf("%v", d))
	}
}

// Mapping builds a mapping value from alternating key/data pairs,
// preserving the given order.
func Mapping(pairs ...any) Value {
	out := Value{Kind: ValueMapping}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", pairs[i])
		}
		out.Keys = append(out.Keys, key)
		out.Fields = append(out.Fields, FromAny(pairs[i+1]))
	}
	return out
}

func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
