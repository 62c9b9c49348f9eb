// Package xmlnorm folds XML documents into JSON-shaped values.
//
// Repeated sibling elements become sequences, singletons collapse into a
// scalar or mapping, attributes are dropped. A field can therefore be a
// single object in one response and a list of objects in another, depending
// only on how many siblings share its tag.
package xmlnorm

import (
	"bytes"
	"encoding/json"
)

// Value is a normalized XML value: String, List or *Map.
type Value interface {
	isValue()
}

// String is element text. It is never coerced to a number or boolean.
type String string

// List holds the values of repeated sibling elements in document order.
type List []Value

// Map is a mapping from child tag name to value that remembers the order in
// which keys were first inserted.
type Map struct {
	keys   []string
	values map[string]Value
}

func (String) isValue() {}
func (List) isValue()   {}
func (*Map) isValue()   {}

// NewMap returns an empty mapping.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// MarshalJSON writes the mapping with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeInto(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeInto(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeInto appends the JSON encoding of v without HTML escaping, so
// text such as "<b>" in vulnerability descriptions stays readable.
func encodeInto(buf *bytes.Buffer, v interface{}) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
