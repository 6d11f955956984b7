package interp

import (
	"strconv"
	"strings"
)

// ListValue represents a mutable ordered sequence.
type ListValue struct {
	Elements []Value
}

// Type returns "list".
func (l *ListValue) Type() string { return "list" }

// String returns "[e1, e2, ...]" using the elements' Repr forms.
func (l *ListValue) String() string { return "[" + joinRepr(l.Elements) + "]" }

// Repr returns the same form as String.
func (l *ListValue) Repr() string { return l.String() }

// TupleValue represents an immutable ordered sequence.
type TupleValue struct {
	Elements []Value
}

// Type returns "tuple".
func (t *TupleValue) Type() string { return "tuple" }

// String returns "(e1, e2)"; a one-element tuple keeps its trailing comma.
func (t *TupleValue) String() string {
	if len(t.Elements) == 1 {
		return "(" + t.Elements[0].Repr() + ",)"
	}
	return "(" + joinRepr(t.Elements) + ")"
}

// Repr returns the same form as String.
func (t *TupleValue) Repr() string { return t.String() }

// DequeValue represents a double-ended queue of values.
type DequeValue struct {
	Elements []Value
}

// Type returns "deque".
func (d *DequeValue) Type() string { return "deque" }

// String returns "deque([e1, e2])".
func (d *DequeValue) String() string { return "deque([" + joinRepr(d.Elements) + "])" }

// Repr returns the same form as String.
func (d *DequeValue) Repr() string { return d.String() }

// dictEntry is one key/value pair of a DictValue.
type dictEntry struct {
	Key   Value
	Value Value
}

// DictValue represents a mapping with value-equality keys and
// insertion-order iteration. Lookup goes through a hash-key index; the
// entries slice preserves insertion order.
type DictValue struct {
	entries []dictEntry
	index   map[string]int
}

// NewDict creates an empty dict.
func NewDict() *DictValue {
	return &DictValue{index: map[string]int{}}
}

// Type returns "dict".
func (d *DictValue) Type() string { return "dict" }

// String returns "{k1: v1, k2: v2}" using Repr forms.
func (d *DictValue) String() string {
	parts := make([]string, 0, len(d.entries))
	for _, entry := range d.entries {
		parts = append(parts, entry.Key.Repr()+": "+entry.Value.Repr())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Repr returns the same form as String.
func (d *DictValue) Repr() string { return d.String() }

// Len returns the number of entries.
func (d *DictValue) Len() int { return len(d.entries) }

// Set stores value under key, replacing an existing entry but keeping its
// insertion position.
func (d *DictValue) Set(key, value Value) error {
	hash, err := hashKey(key)
	if err != nil {
		return err
	}
	if at, ok := d.index[hash]; ok {
		d.entries[at].Value = value
		return nil
	}
	d.index[hash] = len(d.entries)
	d.entries = append(d.entries, dictEntry{Key: key, Value: value})
	return nil
}

// Get looks up key, reporting whether it was present.
func (d *DictValue) Get(key Value) (Value, bool, error) {
	hash, err := hashKey(key)
	if err != nil {
		return nil, false, err
	}
	at, ok := d.index[hash]
	if !ok {
		return nil, false, nil
	}
	return d.entries[at].Value, true, nil
}

// Entries returns the key/value pairs in insertion order.
func (d *DictValue) Entries() []dictEntry { return d.entries }

// hashKey derives the lookup key for a dict entry. Mutable containers are
// unhashable. Numeric keys that compare equal hash equally, so True, 1
// and 1.0 share an entry.
func hashKey(key Value) (string, error) {
	switch k := key.(type) {
	case *NoneValue:
		return "none", nil
	case *BoolValue:
		if k.Value {
			return "i:1", nil
		}
		return "i:0", nil
	case *IntValue:
		return "i:" + strconv.FormatInt(k.Value, 10), nil
	case *FloatValue:
		if k.Value == float64(int64(k.Value)) {
			return "i:" + strconv.FormatInt(int64(k.Value), 10), nil
		}
		return "f:" + strconv.FormatFloat(k.Value, 'g', -1, 64), nil
	case *StringValue:
		return "s:" + k.Value, nil
	case *BytesValue:
		return "b:" + string(k.Value), nil
	case *TupleValue:
		parts := make([]string, 0, len(k.Elements))
		for _, element := range k.Elements {
			sub, err := hashKey(element)
			if err != nil {
				return "", err
			}
			parts = append(parts, sub)
		}
		return "t:(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", newError(TypeErr, "unhashable type: %q", key.Type())
	}
}

// IteratorValue is a lazy cursor over a container or generated sequence.
// Next returns the next element and false once exhausted.
type IteratorValue struct {
	NextFn func() (Value, bool)
}

// Type returns "iterator".
func (i *IteratorValue) Type() string { return "iterator" }

// String returns an opaque marker.
func (i *IteratorValue) String() string { return "<iterator>" }

// Repr returns the same form as String.
func (i *IteratorValue) Repr() string { return i.String() }

// Next advances the iterator.
func (i *IteratorValue) Next() (Value, bool) { return i.NextFn() }

// sliceIterator returns an iterator over a snapshot of elements.
func sliceIterator(elements []Value) *IteratorValue {
	at := 0
	return &IteratorValue{NextFn: func() (Value, bool) {
		if at >= len(elements) {
			return nil, false
		}
		element := elements[at]
		at++
		return element, true
	}}
}

// joinRepr renders elements with Repr, comma-separated.
func joinRepr(elements []Value) string {
	parts := make([]string, 0, len(elements))
	for _, element := range elements {
		parts = append(parts, element.Repr())
	}
	return strings.Join(parts, ", ")
}
