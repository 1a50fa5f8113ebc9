// Package expect provides the node constructors for expected-structure
// trees consumed by the jsonshape engine.
//
// Overview
//   - Scalars: Null(); Boolean()/Integer()/Double()/String() accept an
//     optional literal the input must equal; Scalar() is the union shorthand
//     over numbers, booleans and strings; ScalarValue(v) synthesizes the
//     typed literal node from a Go value.
//   - Containers: Array(templates...) with lenient element matching;
//     Object() with a chainable Field/Required/Placeholder/Branch builder.
//   - Composition: Mixed(alternatives...) picks the first alternative whose
//     kind mask overlaps the input; Ref(registry, id) defers to a node
//     registered under id; Root(child) marks the document top; Any() accepts
//     everything.
//   - Every node supports Audit(a) and RegisterAs(registry, id) chaining,
//     and every node except Root() and Any() supports Nullable();
//     MarkNullable/AddAudit are the non-chaining forms used by schema loaders.
//
// Entry points
//
//	obj := expect.Object()
//	obj.Field("kind", expect.String()).Required()
//	obj.Branch("whenFoo",
//	    jsonshape.TargetHasValue("@.kind", "foo"),
//	    expect.NewField("fooData", expect.Integer(), true))
//
// Design guidelines
//   - Node types stay unexported behind constructors; the engine drives them
//     through the jsonshape.Expect contract.
//   - Branch predicates run against the input being validated, so outcomes
//     extend the active field set per validation pass, never the node.
package expect
