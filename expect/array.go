package expect

import (
	"strconv"

	jsonshape "github.com/jsonshape/jsonshape"
)

// arrayNode matches arrays leniently: each input element must satisfy every
// template whose kind mask overlaps it; templates that match no element are
// not an error.
type arrayNode struct {
	base
	templates []jsonshape.Expect
}

var _ jsonshape.Expect = (*arrayNode)(nil)

// Array expects an array whose elements satisfy the overlapping templates.
func Array(templates ...jsonshape.Expect) *arrayNode {
	return &arrayNode{templates: templates}
}

// Nullable marks the node as accepting null input.
func (n *arrayNode) Nullable() *arrayNode { n.MarkNullable(); return n }

// Audit attaches a loud test to the node.
func (n *arrayNode) Audit(a jsonshape.Audit) *arrayNode { n.AddAudit(a); return n }

// RegisterAs binds the node under id for redirects.
func (n *arrayNode) RegisterAs(reg *jsonshape.Registry, id string) *arrayNode {
	reg.Register(id, n)
	return n
}

func (n *arrayNode) Mask() jsonshape.Kind { return jsonshape.KindArray }
func (n *arrayNode) TypeName() string     { return "array" }

func (n *arrayNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool {
	ok := true
	for i, e := range v.Elems() {
		matched := false
		// Every overlapping template applies, in declaration order; the
		// element must satisfy all of them.
		for _, t := range n.templates {
			if !e.Kind().Has(t.Mask()) {
				continue
			}
			matched = true
			if !r.Validate(e, t) {
				ok = false
			}
		}
		if !matched {
			pos := strconv.Itoa(i)
			if key, contained := v.FieldKey(); contained {
				r.Report(jsonshape.SeverityWarn, e,
					"Unexpected array element at position %s for field %s", pos, key)
			} else {
				r.Report(jsonshape.SeverityWarn, e,
					"Unexpected array element at position %s", pos)
			}
			ok = false
			continue
		}
		r.Stat(1, "elements", e.TypeName())
	}
	return ok
}
