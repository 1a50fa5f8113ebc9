package expect

import (
	"strings"

	jsonshape "github.com/jsonshape/jsonshape"
)

// mixedNode is a set union of alternative expectations. The input has one
// concrete kind, so at most one alternative is intended to apply: the first
// whose mask overlaps wins. This differs from arrays, which run every
// overlapping template per element.
type mixedNode struct {
	base
	alts []jsonshape.Expect
}

var (
	_ jsonshape.Expect               = (*mixedNode)(nil)
	_ jsonshape.TypeMismatchReporter = (*mixedNode)(nil)
)

// Mixed expects the input to satisfy one of the alternatives.
func Mixed(alts ...jsonshape.Expect) *mixedNode { return &mixedNode{alts: alts} }

// Nullable marks the node as accepting null input.
func (n *mixedNode) Nullable() *mixedNode { n.MarkNullable(); return n }

// Audit attaches a loud test to the node.
func (n *mixedNode) Audit(a jsonshape.Audit) *mixedNode { n.AddAudit(a); return n }

// RegisterAs binds the node under id for redirects.
func (n *mixedNode) RegisterAs(reg *jsonshape.Registry, id string) *mixedNode {
	reg.Register(id, n)
	return n
}

// Mask is the bitwise OR of the alternatives' masks, computed on demand so
// late-bound redirect alternatives resolve first.
func (n *mixedNode) Mask() jsonshape.Kind {
	var m jsonshape.Kind
	for _, a := range n.alts {
		m |= a.Mask()
	}
	return m
}

func (n *mixedNode) TypeName() string { return "mixed" }

func (n *mixedNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool {
	for _, a := range n.alts {
		if v.Kind().Has(a.Mask()) {
			return r.Validate(v, a)
		}
	}
	n.ReportTypeMismatch(r, v)
	return false
}

// ReportTypeMismatch lists the alternatives instead of the generic
// kind-incompatibility message.
func (n *mixedNode) ReportTypeMismatch(r *jsonshape.Run, v *jsonshape.Value) {
	r.Report(jsonshape.SeverityError, v,
		"Invalid type %s, must have been one of: %s",
		v.TypeName(), strings.Join(n.Mask().Names(), ", "))
}
