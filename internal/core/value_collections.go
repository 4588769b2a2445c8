package core

import (
	"sort"
	"strings"

	"github.com/funvibe/palang/internal/diagnostics"
)

// List is an ordered, mutable sequence. Lists are shared by reference:
// every Value holding the same *List sees the same elements.
type List struct {
	Elements []Value
}

// NewList creates a list holding the given elements in order.
func NewList(elements ...Value) *List {
	l := &List{Elements: make([]Value, 0, len(elements))}
	for _, el := range elements {
		l.Elements = append(l.Elements, orNil(el))
	}
	return l
}

func (l *List) Type() ValueType { return LIST_VALUE }
func (l *List) Inspect() string { return inspect(l, make(map[Value]bool)) }

func (l *List) Len() int { return len(l.Elements) }

// At returns the i-th element, or false when i is outside [0, Len()).
func (l *List) At(i int64) (Value, bool) {
	if i < 0 || i >= int64(len(l.Elements)) {
		return nil, false
	}
	return l.Elements[i], true
}

// Put replaces the i-th element. It reports false when i is out of range.
func (l *List) Put(i int64, v Value) bool {
	if i < 0 || i >= int64(len(l.Elements)) {
		return false
	}
	l.Elements[i] = orNil(v)
	return true
}

func (l *List) Append(v Value) {
	l.Elements = append(l.Elements, orNil(v))
}

// Dictionary maps hashed keys to values. Only Strings hash; see HashKey.
type Dictionary struct {
	entries map[string]Value
}

func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string]Value)}
}

// DictionaryFrom builds a dictionary from alternating key/value operands,
// hashing each key. It fails on the first non-hashable key.
func DictionaryFrom(pairs ...Value) (*Dictionary, error) {
	d := NewDictionary()
	if len(pairs)%2 != 0 {
		return nil, diagnostics.NewError(diagnostics.ErrR004, "dictionary literal needs key/value pairs.")
	}
	for i := 0; i < len(pairs); i += 2 {
		key, err := HashKey(pairs[i])
		if err != nil {
			return nil, err
		}
		d.Set(key, pairs[i+1])
	}
	return d, nil
}

// HashKey derives the dictionary key of v.
func HashKey(v Value) (string, error) {
	if s, ok := v.(*String); ok {
		return s.Value, nil
	}
	return "", diagnostics.NewError(diagnostics.ErrR006, "Non-hashable.")
}

func (d *Dictionary) Type() ValueType { return DICTIONARY_VALUE }
func (d *Dictionary) Inspect() string { return inspect(d, make(map[Value]bool)) }

// Get distinguishes an absent key from one bound to nil.
func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

func (d *Dictionary) Set(key string, v Value) {
	d.entries[key] = orNil(v)
}

func (d *Dictionary) Len() int { return len(d.entries) }

// Keys returns the keys in sorted order. Dictionaries have no insertion
// order; sorting keeps output stable.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// inspect renders containers already on the path as [...] or {...}.
func inspect(v Value, path map[Value]bool) string {
	switch c := v.(type) {
	case *List:
		if path[c] {
			return "[...]"
		}
		path[c] = true
		defer delete(path, c)
		parts := make([]string, len(c.Elements))
		for i, el := range c.Elements {
			parts[i] = inspect(el, path)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Dictionary:
		if path[c] {
			return "{...}"
		}
		path[c] = true
		defer delete(path, c)
		keys := c.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = NewString(k).Inspect() + ": " + inspect(c.entries[k], path)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return v.Inspect()
}
