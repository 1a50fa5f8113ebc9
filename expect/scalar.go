package expect

import (
	jsonshape "github.com/jsonshape/jsonshape"
	"github.com/spf13/cast"
)

// scalarNode covers every scalar expectation: one kind mask, one type name,
// and an optional literal the input must equal.
type scalarNode struct {
	base
	mask   jsonshape.Kind
	name   string
	lit    any
	hasLit bool
}

var _ jsonshape.Expect = (*scalarNode)(nil)

// Null expects a JSON null.
func Null() *scalarNode {
	return &scalarNode{mask: jsonshape.KindNull, name: "null"}
}

// Boolean expects a boolean, optionally a specific one.
func Boolean(lit ...bool) *scalarNode {
	n := &scalarNode{mask: jsonshape.KindBoolean, name: "boolean"}
	if len(lit) > 0 {
		n.lit, n.hasLit = lit[0], true
	}
	return n
}

// Integer expects an integer, optionally a specific one.
func Integer(lit ...int64) *scalarNode {
	n := &scalarNode{mask: jsonshape.KindInteger, name: "integer"}
	if len(lit) > 0 {
		n.lit, n.hasLit = lit[0], true
	}
	return n
}

// Double expects a double, optionally a specific one.
func Double(lit ...float64) *scalarNode {
	n := &scalarNode{mask: jsonshape.KindDouble, name: "double"}
	if len(lit) > 0 {
		n.lit, n.hasLit = lit[0], true
	}
	return n
}

// String expects a string, optionally a specific one.
func String(lit ...string) *scalarNode {
	n := &scalarNode{mask: jsonshape.KindString, name: "string"}
	if len(lit) > 0 {
		n.lit, n.hasLit = lit[0], true
	}
	return n
}

// Scalar expects any number, boolean or string.
func Scalar() *scalarNode {
	return &scalarNode{mask: jsonshape.KindScalar, name: "scalar"}
}

// ScalarValue synthesizes the typed literal expectation from a Go value: a
// bool becomes Boolean(v), integers Integer(v), floats Double(v), a string
// String(v) and nil Null(). This is a construction convenience only; the
// engine performs no coercion.
func ScalarValue(v any) *scalarNode {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return Boolean(x)
	case int:
		return Integer(int64(x))
	case int8:
		return Integer(int64(x))
	case int16:
		return Integer(int64(x))
	case int32:
		return Integer(int64(x))
	case int64:
		return Integer(x)
	case uint:
		return Integer(int64(x))
	case uint8:
		return Integer(int64(x))
	case uint16:
		return Integer(int64(x))
	case uint32:
		return Integer(int64(x))
	case uint64:
		return Integer(int64(x))
	case float32:
		return Double(float64(x))
	case float64:
		return Double(x)
	case string:
		return String(x)
	default:
		return String(cast.ToString(v))
	}
}

// Nullable marks the node as accepting null input.
func (n *scalarNode) Nullable() *scalarNode { n.MarkNullable(); return n }

// Audit attaches a loud test to the node.
func (n *scalarNode) Audit(a jsonshape.Audit) *scalarNode { n.AddAudit(a); return n }

// RegisterAs binds the node under id for redirects.
func (n *scalarNode) RegisterAs(reg *jsonshape.Registry, id string) *scalarNode {
	reg.Register(id, n)
	return n
}

func (n *scalarNode) Mask() jsonshape.Kind { return n.mask }
func (n *scalarNode) TypeName() string     { return n.name }

func (n *scalarNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool {
	if v.IsScalar() {
		r.Stat(1, "values", v.TypeName(), v.ScalarString())
	}
	if !n.hasLit || v.Kind() == jsonshape.KindNull {
		return true
	}
	if literalMatches(n.lit, v) {
		return true
	}
	want := cast.ToString(n.lit)
	if key, contained := v.FieldKey(); contained {
		r.Report(jsonshape.SeverityWarn, v,
			"Value %s does not match the expected value %s for field %s",
			v.ScalarString(), want, key)
	} else {
		r.Report(jsonshape.SeverityWarn, v,
			"Value %s does not match the expected value %s",
			v.ScalarString(), want)
	}
	return false
}

// literalMatches compares by kind; the mask check upstream guarantees the
// kinds already line up, so mismatched Go types simply fail.
func literalMatches(lit any, v *jsonshape.Value) bool {
	switch l := lit.(type) {
	case bool:
		return v.Kind() == jsonshape.KindBoolean && v.Bool() == l
	case int64:
		return v.Kind() == jsonshape.KindInteger && v.Int64() == l
	case float64:
		return v.Kind() == jsonshape.KindDouble && v.Float64() == l
	case string:
		return v.Kind() == jsonshape.KindString && v.Str() == l
	}
	return false
}
