// Package template implements the tag-preserving document model for
// CloudFormation-style YAML templates: loading a file into an ordered tree,
// carrying short-form intrinsic tags (!Ref, !Sub, !GetAtt, ...) opaquely, and
// serializing the tree back to YAML without reordering keys.
package template

// Value is one decoded template value: a Go scalar (string, bool, int,
// float64 or nil), a Sequence, a *Mapping, or a *Tagged.
type Value = any

// Sequence is an ordered list of values.
type Sequence []Value

// Tagged wraps a value annotated with a custom YAML tag. The tag is kept
// verbatim (including the leading `!`) and is never interpreted; the shape of
// Value (scalar, Sequence or *Mapping) decides how it is serialized.
type Tagged struct {
	Tag   string
	Value Value
}

// Document is the root mapping decoded from one template file. Path is the
// source file path, carried for error messages only.
type Document struct {
	Path string
	Root *Mapping
}

// Mapping is a string-keyed map that preserves insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Has reports whether the key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Get returns the value stored under the key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores the value under the key. Setting an existing key replaces its
// value in place without changing its position.
func (m *Mapping) Set(key string, value Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Clone returns a shallow copy: the key order and the key-to-value table are
// copied, the values themselves are shared.
func (m *Mapping) Clone() *Mapping {
	c := &Mapping{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]Value, len(m.values)),
	}
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}
