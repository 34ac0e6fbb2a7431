package history

import (
	"encoding/json"
	"fmt"

	"deepsearch/internal/event"
)

// PayloadJSON encodes a payload tree as deterministic JSON. Mapping key
// order is the tree's own order, which FromAny already sorts.
func PayloadJSON(v event.Value) (string, error) {
	data, err := json.Marshal(payloadAny(v))
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

func payloadAny(v event.Value) any {
	switch v.Kind {
	case event.ValueNil:
		return nil
	case event.ValueLeaf:
		return v.Leaf
	case event.ValueList:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = payloadAny(item)
		}
		return items
	case event.ValueMapping:
		fields := make(map[string]any, len(v.Keys))
		for i, key := range v.Keys {
			fields[key] = payloadAny(v.Fields[i])
		}
		return fields
	default:
		return nil
	}
}
