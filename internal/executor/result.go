package executor

import (
	"bytes"
	"encoding/json"
)

// Result is the success envelope emitted by the operation stream.
type Result struct {
	Data *ResultMap `json:"data"`
}

// ResultMap is an insertion-ordered string-keyed map. Serialization preserves
// the declared selection order, which plain Go maps cannot guarantee.
type ResultMap struct {
	keys   []string
	values map[string]any
}

func NewResultMap() *ResultMap {
	return &ResultMap{values: make(map[string]any)}
}

// Set stores v under key, keeping the key's first insertion position.
func (m *ResultMap) Set(key string, v any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *ResultMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *ResultMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *ResultMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// ToMap converts to plain nested Go values, recursing into nested result maps
// and lists. Key order is lost; intended for assertions and programmatic
// consumers that do not care about serialization order.
func (m *ResultMap) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plainValue(m.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case *ResultMap:
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

func (m *ResultMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
