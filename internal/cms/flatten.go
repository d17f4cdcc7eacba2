package cms

import (
	"bytes"
	"encoding/json"
)

// flatten rewrites the legacy nested response shape into the flat one:
// {"id":1,"attributes":{...}} becomes {"id":1,...} and relation wrappers
// {"data": X} become X. Flat documents pass through unchanged.
func flatten(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '{' && raw[0] != '[') {
		return raw
	}
	if !bytes.Contains(raw, []byte(`"attributes"`)) && !bytes.Contains(raw, []byte(`"data"`)) {
		return raw
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	out, err := json.Marshal(flattenValue(v))
	if err != nil {
		return raw
	}
	return out
}

func flattenValue(v any) any {
	switch t := v.(type) {
	case []any:
		for i := range t {
			t[i] = flattenValue(t[i])
		}
		return t
	case map[string]any:
		if inner, ok := relationWrapper(t); ok {
			return flattenValue(inner)
		}
		if attrs, ok := t["attributes"].(map[string]any); ok {
			merged := make(map[string]any, len(attrs)+1)
			for k, val := range attrs {
				merged[k] = val
			}
			if id, ok := t["id"]; ok {
				merged["id"] = id
			}
			t = merged
		}
		for k, val := range t {
			t[k] = flattenValue(val)
		}
		return t
	default:
		return v
	}
}

// relationWrapper matches {"data": X} with an optional "meta" sibling.
func relationWrapper(m map[string]any) (any, bool) {
	inner, ok := m["data"]
	if !ok {
		return nil, false
	}
	switch len(m) {
	case 1:
		return inner, true
	case 2:
		if _, ok := m["meta"]; ok {
			return inner, true
		}
	}
	return nil, false
}
