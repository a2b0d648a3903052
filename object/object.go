// Package object defines the runtime values of Natural++ and the variable environment.
package object

import (
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/iancoleman/orderedmap"
)

// ObjectType is a string representation of a value's type.
type ObjectType string

const (
	NUMBER_OBJ ObjectType = "NUMBER"
	TEXT_OBJ   ObjectType = "TEXT"
	LIST_OBJ   ObjectType = "LIST"
	OBJECT_OBJ ObjectType = "OBJECT"
)

// Value is the interface that all runtime values implement.
//
// Number and Text are immutable, so sharing a pointer to one behaves like a
// copy. List and Object are reference types: every copy of the handle sees
// the same backing container.
type Value interface {
	// Type returns the type of the value.
	Type() ObjectType
	// Inspect returns the display form of the value.
	Inspect() string
}

// ZERO is the placeholder produced by failed lookups and list growth.
var ZERO = &Number{Value: 0}

// --- Number ---

// Number is a double-precision number.
type Number struct {
	Value float64
}

// Type returns the type of the Number.
func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect renders the number in fixed-point notation without trailing zeros,
// so whole numbers have no fractional part.
func (n *Number) Inspect() string { return FormatNumber(n.Value) }

// FormatNumber renders f with six fractional digits and then strips trailing
// zeros and a trailing decimal point. Negative zero renders as "0".
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// --- Text ---

// Text is an immutable string.
type Text struct {
	Value string
}

// Type returns the type of the Text.
func (t *Text) Type() ObjectType { return TEXT_OBJ }

// Inspect returns the text itself.
func (t *Text) Inspect() string { return t.Value }

// --- List ---

// List is a shared, growable, ordered sequence of values.
type List struct {
	elements *arraylist.List
}

// NewList returns a list holding elems.
func NewList(elems ...Value) *List {
	l := &List{elements: arraylist.New()}
	for _, e := range elems {
		l.elements.Add(e)
	}
	return l
}

// Type returns the type of the List.
func (l *List) Type() ObjectType { return LIST_OBJ }

// Inspect renders the list as [v0, v1, ...].
func (l *List) Inspect() string {
	var b strings.Builder
	inspect(&b, l, map[Value]bool{})
	return b.String()
}

// Len returns the number of elements.
func (l *List) Len() int { return l.elements.Size() }

// At returns the element at index i, or false if i is out of range.
func (l *List) At(i int) (Value, bool) {
	v, ok := l.elements.Get(i)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Set stores v at index i. If i is past the end, the list first grows with
// ZERO placeholders up to and including i. Negative indexes are ignored.
func (l *List) Set(i int, v Value) {
	if i < 0 {
		return
	}
	for l.elements.Size() <= i {
		l.elements.Add(ZERO)
	}
	l.elements.Set(i, v)
}

// Append adds v at the end.
func (l *List) Append(v Value) { l.elements.Add(v) }

// Elements returns a snapshot of the elements in order.
func (l *List) Elements() []Value {
	out := make([]Value, 0, l.elements.Size())
	l.elements.Each(func(_ int, v interface{}) {
		out = append(out, v.(Value))
	})
	return out
}

// --- Object ---

// Object is a shared mapping from string keys to values.
// Iteration follows insertion order; callers must not rely on it.
type Object struct {
	pairs *orderedmap.OrderedMap
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{pairs: orderedmap.New()}
}

// Type returns the type of the Object.
func (o *Object) Type() ObjectType { return OBJECT_OBJ }

// Inspect renders the object as {k: v, ...}.
func (o *Object) Inspect() string {
	var b strings.Builder
	inspect(&b, o, map[Value]bool{})
	return b.String()
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.pairs.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Set inserts or overwrites key.
func (o *Object) Set(key string, v Value) { o.pairs.Set(key, v) }

// Keys returns the keys currently stored.
func (o *Object) Keys() []string { return o.pairs.Keys() }

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.pairs.Keys()) }

// inspect writes containers recursively. A container that is already being
// written further up the stack is rendered as [...] or {...}.
func inspect(b *strings.Builder, v Value, active map[Value]bool) {
	switch v := v.(type) {
	case *List:
		if active[v] {
			b.WriteString("[...]")
			return
		}
		active[v] = true
		defer delete(active, v)
		b.WriteByte('[')
		for i, e := range v.Elements() {
			if i > 0 {
				b.WriteString(", ")
			}
			inspect(b, e, active)
		}
		b.WriteByte(']')
	case *Object:
		if active[v] {
			b.WriteString("{...}")
			return
		}
		active[v] = true
		defer delete(active, v)
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			e, _ := v.Get(k)
			b.WriteString(k)
			b.WriteString(": ")
			inspect(b, e, active)
		}
		b.WriteByte('}')
	default:
		b.WriteString(v.Inspect())
	}
}

// IsTruthy reports the truthiness of v: non-empty Text, non-zero Number,
// and every List and Object are true.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case *Number:
		return v.Value != 0
	case *Text:
		return v.Value != ""
	case *List, *Object:
		return true
	default:
		return false
	}
}

// NumberOf returns the numeric payload of v; values that are not Numbers count as 0.
func NumberOf(v Value) float64 {
	if n, ok := v.(*Number); ok {
		return n.Value
	}
	return 0
}

// Key coerces v to an object key: Text uses its content, anything else its display form.
func Key(v Value) string {
	if t, ok := v.(*Text); ok {
		return t.Value
	}
	return v.Inspect()
}

// Index converts v to a list index. It reports false for indexes that are
// negative, not finite or too large to address.
func Index(v Value) (int, bool) {
	f := math.Trunc(NumberOf(v))
	if math.IsNaN(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
