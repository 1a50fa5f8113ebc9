package jsonshape

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Value is a node of the input JSON tree. Every node keeps a back-reference
// to its parent plus either the array index or the containing field key that
// reached it, which makes parent-walking in path expressions uniform.
//
// Values are built once (by ParseBytes or the New* constructors) and never
// mutated by validation.
type Value struct {
	kind Kind

	b     bool
	i     int64
	f     float64
	s     string
	elems []*Value
	keys  []string
	byKey map[string]*Value

	parent *Value
	index  int
	key    string
	hasKey bool

	// raw keeps the parser's original output for diagnostic rendering.
	// Numbers keep their exact literal text.
	raw any
}

// NewNull returns a null value.
func NewNull() *Value { return &Value{kind: KindNull, index: -1} }

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: KindBoolean, b: b, index: -1, raw: b} }

// NewInt returns an integer value.
func NewInt(i int64) *Value {
	return &Value{kind: KindInteger, i: i, index: -1, raw: strconv.FormatInt(i, 10)}
}

// NewDouble returns a double value.
func NewDouble(f float64) *Value {
	return &Value{kind: KindDouble, f: f, index: -1, raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: KindString, s: s, index: -1, raw: s} }

// NewArray returns an array value owning the given elements. Each element's
// parent link and array index are set here; an element may belong to at most
// one container.
func NewArray(elems ...*Value) *Value {
	v := &Value{kind: KindArray, elems: elems, index: -1}
	for i, e := range elems {
		e.parent = v
		e.index = i
		e.hasKey = false
		e.key = ""
	}
	return v
}

// NewObject returns an empty object value. Fields are added with SetField and
// keep insertion order.
func NewObject() *Value {
	return &Value{kind: KindObject, byKey: map[string]*Value{}, index: -1}
}

// SetField appends (or replaces) a field, wiring the child's parent link and
// containing-field key. Replacing an existing key keeps its original position.
func (v *Value) SetField(key string, child *Value) *Value {
	if _, exists := v.byKey[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.byKey[key] = child
	child.parent = v
	child.key = key
	child.hasKey = true
	child.index = -1
	return v
}

// NewRoot wraps the top-level value of a document. Validation always begins
// at a root wrapper so that parent-walking is uniform.
func NewRoot(child *Value) *Value {
	v := &Value{kind: KindRoot, elems: []*Value{child}, index: -1}
	child.parent = v
	return v
}

// Kind returns the kind bit of this value.
func (v *Value) Kind() Kind { return v.kind }

// TypeName returns the lowercase kind name used in reports and statistics.
func (v *Value) TypeName() string { return v.kind.String() }

// Parent returns the owning container, or nil for the topmost node.
func (v *Value) Parent() *Value { return v.parent }

// Index returns the array index when this value is an array element.
func (v *Value) Index() (int, bool) {
	if v.index >= 0 {
		return v.index, true
	}
	return 0, false
}

// FieldKey returns the containing field key when this value is an object
// field value.
func (v *Value) FieldKey() (string, bool) { return v.key, v.hasKey }

// Bool returns the boolean payload.
func (v *Value) Bool() bool { return v.b }

// Int64 returns the integer payload.
func (v *Value) Int64() int64 { return v.i }

// Float64 returns the double payload.
func (v *Value) Float64() float64 { return v.f }

// Str returns the string payload.
func (v *Value) Str() string { return v.s }

// Elems returns the elements of an array value.
func (v *Value) Elems() []*Value { return v.elems }

// Keys returns the field keys of an object value in insertion order.
func (v *Value) Keys() []string { return v.keys }

// FieldValue returns the value stored under key in an object value.
func (v *Value) FieldValue(key string) (*Value, bool) {
	c, ok := v.byKey[key]
	return c, ok
}

// Child unwraps a root wrapper; for any other kind it returns the value
// itself.
func (v *Value) Child() *Value {
	if v.kind == KindRoot && len(v.elems) == 1 {
		return v.elems[0]
	}
	return v
}

// IsScalar reports whether this value is a number, boolean or string.
func (v *Value) IsScalar() bool { return v.kind.Has(KindScalar) }

// ScalarString renders a scalar payload for statistics keys and messages.
func (v *Value) ScalarString() string {
	switch v.kind {
	case KindBoolean:
		return cast.ToString(v.b)
	case KindInteger:
		return cast.ToString(v.i)
	case KindDouble:
		return cast.ToString(v.f)
	case KindString:
		return v.s
	case KindNull:
		return "null"
	}
	return v.TypeName()
}

// Raw returns the parser's original output for this value. Containers without
// a stored raw form fall back to AsAny.
func (v *Value) Raw() any {
	if v.raw != nil {
		return v.raw
	}
	return v.AsAny()
}

// AsAny reconstructs the plain Go representation of the subtree. Object key
// order is not preserved by the map; diagnostic rendering only.
func (v *Value) AsAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBoolean:
		return v.b
	case KindInteger:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.AsAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.byKey[k].AsAny()
		}
		return out
	case KindRoot:
		return v.Child().AsAny()
	}
	return nil
}

// Pointer renders the location of this value as a JSON Pointer, with "" for
// the document root.
func (v *Value) Pointer() string {
	if v.parent == nil || v.kind == KindRoot {
		return ""
	}
	var segs []string
	for cur := v; cur != nil && cur.kind != KindRoot; cur = cur.parent {
		if cur.hasKey {
			segs = append(segs, escapePointerSegment(cur.key))
		} else if cur.index >= 0 {
			segs = append(segs, strconv.Itoa(cur.index))
		}
	}
	if len(segs) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segs[i])
	}
	return b.String()
}

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
