// Package jsonshape validates a parsed JSON document against an expected
// structure built from typed node constructors, producing a stream of
// severity-tagged reports and a boolean verdict.
//
// It provides:
//
//   - A value model (input tree) with parent/field back-references and the
//     raw parser output kept for diagnostic rendering
//   - An expected-node model (see the expect package): scalar expectations,
//     arrays, objects with conditional branches, unions, identifier redirects
//   - A tiny path language ($, @, ^, .key) used by predicates and audits to
//     navigate the input being validated
//   - A report/statistics protocol via pluggable sinks (see the sink package)
//
// Design policy:
//   - Keep only public APIs in the root package; put token plumbing under internal/.
//   - Place node constructors under expect/, schema loading under loader/,
//     sink adapters under sink/, and the CLI under cmd/jsonshape.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	exp := expect.Object()
//	exp.Field("id", expect.String()).Required()
//
//	res, err := jsonshape.ValidateBytes(data, exp, nil, nil)
//	if err != nil {
//	    // fault: parse failure, unknown redirect, depth exceeded, ...
//	}
//	if !res.OK {
//	    // res.Reports carries the diagnostics, res.Stats the counters
//	}
package jsonshape
