package jsonshape

import (
	"strings"

	"github.com/spf13/cast"
)

// Predicate is a silent boolean test over an input value. On failure the
// predicate buffers the reasons; callers that care (audits, debugging) drain
// them via Issues. Branch activation ignores the buffer entirely.
//
// Predicates may keep per-call buffer state and are therefore meant for
// single-threaded validation passes, matching the engine's model.
type Predicate interface {
	Test(v *Value) bool
	Issues() []Report
}

// PredicateFunc adapts a plain function into an issue-free Predicate.
type PredicateFunc func(v *Value) bool

func (f PredicateFunc) Test(v *Value) bool { return f(v) }
func (f PredicateFunc) Issues() []Report   { return nil }

// Audit is the loud twin of a predicate: run after the structural rule, its
// failure routes issues into the report sink.
type Audit interface {
	Check(r *Run, v *Value) bool
}

// AuditOf derives an audit from a predicate by draining the predicate's
// issues into the reports on failure.
func AuditOf(p Predicate) Audit { return predicateAudit{p: p} }

type predicateAudit struct {
	p Predicate
}

func (a predicateAudit) Check(r *Run, v *Value) bool {
	if a.p.Test(v) {
		return true
	}
	for _, iss := range a.p.Issues() {
		r.Add(iss)
	}
	return false
}

// TargetExists returns a predicate that succeeds iff the path evaluates
// without error on the current input. Panics on path syntax errors, which are
// schema-construction faults.
func TargetExists(path string) Predicate {
	return &targetExists{path: MustPath(path)}
}

// MustExist is the audit form of TargetExists.
func MustExist(path string) Audit { return AuditOf(TargetExists(path)) }

type targetExists struct {
	path   *Path
	issues []Report
}

func (t *targetExists) Test(v *Value) bool {
	t.issues = nil
	if _, err := t.path.FindIn(v); err != nil {
		t.issues = append(t.issues, Report{
			Severity: SeverityWarn,
			Context:  v,
			Format:   "Path %s cannot be resolved: %s",
			Args:     []string{t.path.Raw(), err.Error()},
		})
		return false
	}
	return true
}

func (t *targetExists) Issues() []Report { return t.issues }

// TargetHasValue returns a predicate that succeeds iff the path target
// exists, is a scalar, and its value is one of accepted. Panics on path
// syntax errors.
func TargetHasValue(path string, accepted ...any) Predicate {
	return &targetHasValue{path: MustPath(path), accepted: accepted}
}

// HasValue is the audit form of TargetHasValue.
func HasValue(path string, accepted ...any) Audit { return AuditOf(TargetHasValue(path, accepted...)) }

type targetHasValue struct {
	path     *Path
	accepted []any
	issues   []Report
}

func (t *targetHasValue) Test(v *Value) bool {
	t.issues = nil
	target, err := t.path.FindIn(v)
	if err != nil {
		t.issues = append(t.issues, Report{
			Severity: SeverityWarn,
			Context:  v,
			Format:   "Path %s cannot be resolved: %s",
			Args:     []string{t.path.Raw(), err.Error()},
		})
		return false
	}
	if !target.IsScalar() {
		t.issues = append(t.issues, Report{
			Severity: SeverityError,
			Context:  target,
			Format:   "Invalid type %s for path %s, should be a scalar",
			Args:     []string{target.TypeName(), t.path.Raw()},
		})
		return false
	}
	for _, a := range t.accepted {
		if scalarAccepts(target, a) {
			return true
		}
	}
	t.issues = append(t.issues, Report{
		Severity: SeverityWarn,
		Context:  target,
		Format:   "Invalid value %s, should be one of: %s",
		Args:     []string{target.ScalarString(), acceptedList(t.accepted)},
	})
	return false
}

func (t *targetHasValue) Issues() []Report { return t.issues }

// scalarAccepts compares a scalar value against a Go literal by kind; no
// cross-kind coercion.
func scalarAccepts(v *Value, lit any) bool {
	switch l := lit.(type) {
	case string:
		return v.Kind() == KindString && v.Str() == l
	case bool:
		return v.Kind() == KindBoolean && v.Bool() == l
	case int:
		return v.Kind() == KindInteger && v.Int64() == int64(l)
	case int64:
		return v.Kind() == KindInteger && v.Int64() == l
	case float64:
		return v.Kind() == KindDouble && v.Float64() == l
	}
	return false
}

func acceptedList(accepted []any) string {
	parts := make([]string, len(accepted))
	for i, a := range accepted {
		parts[i] = cast.ToString(a)
	}
	return strings.Join(parts, ", ")
}
