package expect

import (
	jsonshape "github.com/jsonshape/jsonshape"
)

// base carries the cross-cutting node state shared by every variant:
// nullability and the attached audits.
type base struct {
	nullable bool
	audits   []jsonshape.Audit
}

// IsNullable implements part of jsonshape.Expect.
func (b *base) IsNullable() bool { return b.nullable }

// Audits implements part of jsonshape.Expect.
func (b *base) Audits() []jsonshape.Audit { return b.audits }

// MarkNullable is the non-chaining form of the per-node Nullable() setter,
// used by schema loaders that hold nodes behind the Expect interface.
func (b *base) MarkNullable() { b.nullable = true }

// AddAudit is the non-chaining form of the per-node Audit() setter.
func (b *base) AddAudit(a jsonshape.Audit) { b.audits = append(b.audits, a) }

// Builder is the loader-facing surface shared by every node constructor
// result: the Expect contract plus the non-chaining mutators.
type Builder interface {
	jsonshape.Expect
	MarkNullable()
	AddAudit(a jsonshape.Audit)
}
