package expect

import (
	"fmt"

	jsonshape "github.com/jsonshape/jsonshape"
)

// refNode defers to another node resolved by identifier. Resolution is
// deferred to first use so forward references and cycles are permitted
// during schema construction; the result is memoised on the node.
type refNode struct {
	base
	reg      *jsonshape.Registry
	id       string
	resolved jsonshape.Expect
	masking  bool
}

var _ jsonshape.Expect = (*refNode)(nil)

// Ref expects whatever the node registered under id expects. The registry is
// captured here, keeping redirects engine-scoped rather than global.
func Ref(reg *jsonshape.Registry, id string) *refNode {
	return &refNode{reg: reg, id: id}
}

// Nullable marks the redirect itself as accepting null input.
func (n *refNode) Nullable() *refNode { n.MarkNullable(); return n }

// Audit attaches a loud test to the redirect itself.
func (n *refNode) Audit(a jsonshape.Audit) *refNode { n.AddAudit(a); return n }

// RegisterAs binds the redirect under a further id.
func (n *refNode) RegisterAs(reg *jsonshape.Registry, id string) *refNode {
	reg.Register(id, n)
	return n
}

func (n *refNode) target() (jsonshape.Expect, error) {
	if n.resolved != nil {
		return n.resolved, nil
	}
	e, ok := n.reg.Resolve(n.id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", jsonshape.ErrUnknownIdentifier, n.id)
	}
	n.resolved = e
	return e, nil
}

// Mask delegates to the target. While unresolved (or while computing a mask
// cycle through unions) it answers KindAny so that resolution faults surface
// in CompareStructure rather than here.
func (n *refNode) Mask() jsonshape.Kind {
	if n.masking {
		return jsonshape.KindAny
	}
	t, err := n.target()
	if err != nil {
		return jsonshape.KindAny
	}
	n.masking = true
	defer func() { n.masking = false }()
	return t.Mask()
}

func (n *refNode) TypeName() string {
	if t, err := n.target(); err == nil {
		return t.TypeName()
	}
	return "redirect(" + n.id + ")"
}

// IsNullable delegates to the target, OR-ed with the redirect's own flag.
func (n *refNode) IsNullable() bool {
	if n.base.nullable {
		return true
	}
	if t, err := n.target(); err == nil {
		return t.IsNullable()
	}
	return false
}

// Audits returns the target's audits followed by the redirect's own, so a
// redirect validates exactly like its target.
func (n *refNode) Audits() []jsonshape.Audit {
	t, err := n.target()
	if err != nil {
		return n.base.audits
	}
	ta := t.Audits()
	if len(n.base.audits) == 0 {
		return ta
	}
	out := make([]jsonshape.Audit, 0, len(ta)+len(n.base.audits))
	out = append(out, ta...)
	return append(out, n.base.audits...)
}

func (n *refNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool {
	t, err := n.target()
	if err != nil {
		r.Fail(err)
		return false
	}
	return t.CompareStructure(r, v)
}

// rootNode wraps the single expected child of a document top.
type rootNode struct {
	base
	child jsonshape.Expect
}

var _ jsonshape.Expect = (*rootNode)(nil)

// Root marks the expected top of a document.
func Root(child jsonshape.Expect) *rootNode { return &rootNode{child: child} }

// Audit attaches a loud test to the root wrapper.
func (n *rootNode) Audit(a jsonshape.Audit) *rootNode { n.AddAudit(a); return n }

// RegisterAs binds the root wrapper under id.
func (n *rootNode) RegisterAs(reg *jsonshape.Registry, id string) *rootNode {
	reg.Register(id, n)
	return n
}

func (n *rootNode) Mask() jsonshape.Kind { return jsonshape.KindRoot }
func (n *rootNode) TypeName() string     { return "root" }

func (n *rootNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool {
	child := v.Child()
	if child == v {
		r.Fail(jsonshape.ErrNilValue)
		return false
	}
	r.Stat(1, "root", "type", child.TypeName())
	return r.Validate(child, n.child)
}

// anyNode accepts every input.
type anyNode struct {
	base
}

var _ jsonshape.Expect = (*anyNode)(nil)

// Any accepts any input value.
func Any() *anyNode { return &anyNode{} }

// Audit attaches a loud test to the node.
func (n *anyNode) Audit(a jsonshape.Audit) *anyNode { n.AddAudit(a); return n }

// RegisterAs binds the node under id for redirects.
func (n *anyNode) RegisterAs(reg *jsonshape.Registry, id string) *anyNode {
	reg.Register(id, n)
	return n
}

func (n *anyNode) Mask() jsonshape.Kind { return jsonshape.KindAny }
func (n *anyNode) TypeName() string     { return "any" }

func (n *anyNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool { return true }
