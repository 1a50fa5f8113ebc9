package jsonshape

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Faults abort a validation with a typed error; no report is emitted for
// them. Diagnostics, by contrast, go through the report sink and traversal
// continues.
var (
	ErrDepthExceeded = errors.New("jsonshape: maximum validation depth exceeded")
	ErrNilValue      = errors.New("jsonshape: input is not a value")
)

// Expect is a node of the expected-structure tree. Implementations live in
// the expect package; the engine drives them through this contract.
type Expect interface {
	// Mask returns the set of input kinds this node accepts.
	Mask() Kind
	// TypeName names the expectation in diagnostics.
	TypeName() string
	// IsNullable reports whether a null input matches regardless of Mask.
	IsNullable() bool
	// Audits returns the loud tests run after the structural comparison.
	Audits() []Audit
	// CompareStructure applies the node-specific structural rule. It is
	// invoked by Run.Validate after the generic nullability and kind checks.
	CompareStructure(r *Run, v *Value) bool
}

// TypeMismatchReporter lets a node substitute its own diagnostic for the
// generic kind-incompatibility message; unions use it to list their
// alternatives.
type TypeMismatchReporter interface {
	ReportTypeMismatch(r *Run, v *Value)
}

// DefaultMaxDepth bounds recursion through redirect cycles that terminate on
// finite input but may still nest deeply through union and object wrappers.
const DefaultMaxDepth = 256

// IsGlobalKey is the default rule for unconditionally accepted object keys:
// any key containing "comment", case-insensitively.
func IsGlobalKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "comment")
}

// Options configure an Engine. The zero value is usable.
type Options struct {
	// MaxDepth bounds validation recursion; 0 means DefaultMaxDepth.
	MaxDepth int
	// Prettifier is returned by Engine.Prettifier for use with Report.Render.
	// Nil means JSONPrettifier (canonical JSON).
	Prettifier Prettifier
	// GlobalKey overrides the globally-accepted-key rule; nil means
	// IsGlobalKey.
	GlobalKey func(key string) bool
}

// Engine validates value trees against expected nodes. Engines are stateless
// across validations and safe for concurrent use with distinct sinks.
type Engine struct {
	maxDepth  int
	pretty    Prettifier
	globalKey func(string) bool
}

// NewEngine returns an engine with the given options.
func NewEngine(opt Options) *Engine {
	e := &Engine{maxDepth: opt.MaxDepth, pretty: opt.Prettifier, globalKey: opt.GlobalKey}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	if e.pretty == nil {
		e.pretty = JSONPrettifier{}
	}
	if e.globalKey == nil {
		e.globalKey = IsGlobalKey
	}
	return e
}

// Prettifier returns the engine's configured prettifier for rendering the
// reports a validation produced.
func (e *Engine) Prettifier() Prettifier { return e.pretty }

// Result carries the verdict of a top-level validation together with the
// sinks that were populated.
type Result struct {
	OK      bool
	Reports ReportSink
	Stats   StatSink
}

// Validate compares the input value against the expected node, writing
// diagnostics and statistics to the sinks (nil sinks default to fresh
// in-memory ones). The boolean is the structural verdict; a non-nil error is
// a fault that aborted traversal.
func (e *Engine) Validate(v *Value, exp Expect, rep ReportSink, st StatSink) (bool, error) {
	if v == nil {
		return false, ErrNilValue
	}
	if rep == nil {
		rep = NewReports()
	}
	if st == nil {
		st = NewStats()
	}
	r := &Run{eng: e, reports: rep, stats: st}
	// A root-wrapped input handed to a non-root expectation is compared
	// against the wrapped child, so callers can pass either form.
	if m := exp.Mask(); v.Kind() == KindRoot && (m == KindAny || !m.Has(KindRoot)) {
		v = v.Child()
	}
	ok := r.Validate(v, exp)
	if r.fault != nil {
		return false, r.fault
	}
	return ok, nil
}

// ValidateBytes parses one JSON document, wraps it in a root value and
// validates it against exp.
func (e *Engine) ValidateBytes(data []byte, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	v, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return e.validateParsed(v, exp, rep, st)
}

// ValidateString is ValidateBytes for string input.
func (e *Engine) ValidateString(data string, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	return e.ValidateBytes([]byte(data), exp, rep, st)
}

// ValidateReader is ValidateBytes for streaming input.
func (e *Engine) ValidateReader(r io.Reader, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	v, err := ParseReader(r)
	if err != nil {
		return nil, err
	}
	return e.validateParsed(v, exp, rep, st)
}

func (e *Engine) validateParsed(v *Value, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	if rep == nil {
		rep = NewReports()
	}
	if st == nil {
		st = NewStats()
	}
	ok, err := e.Validate(NewRoot(v), exp, rep, st)
	if err != nil {
		return nil, err
	}
	return &Result{OK: ok, Reports: rep, Stats: st}, nil
}

var defaultEngine = NewEngine(Options{})

// Validate runs a validation with default options.
func Validate(v *Value, exp Expect, rep ReportSink, st StatSink) (bool, error) {
	return defaultEngine.Validate(v, exp, rep, st)
}

// ValidateBytes parses and validates one JSON document with default options.
func ValidateBytes(data []byte, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	return defaultEngine.ValidateBytes(data, exp, rep, st)
}

// ValidateString is ValidateBytes for string input.
func ValidateString(data string, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	return defaultEngine.ValidateString(data, exp, rep, st)
}

// ValidateReader is ValidateBytes for streaming input.
func ValidateReader(r io.Reader, exp Expect, rep ReportSink, st StatSink) (*Result, error) {
	return defaultEngine.ValidateReader(r, exp, rep, st)
}

// Run is the state of a single validation pass: the sinks, the recursion
// depth, and the first fault when one occurred. Expected nodes recurse by
// calling Run.Validate and emit diagnostics through Report/Add/Stat.
type Run struct {
	eng     *Engine
	reports ReportSink
	stats   StatSink
	depth   int
	fault   error
}

// Validate applies the generic comparison protocol to one (value, expected)
// pair: nullability, kind compatibility, the node-specific structural rule,
// then the node's audits. Reports accumulate; both the structural rule and
// the audits execute even when one of them fails.
func (r *Run) Validate(v *Value, exp Expect) bool {
	if r.fault != nil {
		return false
	}
	if v == nil {
		r.Fail(ErrNilValue)
		return false
	}
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.eng.maxDepth {
		r.Fail(fmt.Errorf("%w (limit %d)", ErrDepthExceeded, r.eng.maxDepth))
		return false
	}
	r.Stat(1, "types", v.TypeName())
	if v.Kind() == KindNull && exp.IsNullable() {
		return true
	}
	if !v.Kind().Has(exp.Mask()) {
		if tr, ok := exp.(TypeMismatchReporter); ok {
			tr.ReportTypeMismatch(r, v)
		} else if key, contained := v.FieldKey(); contained {
			r.Report(SeverityError, v, "Invalid type %s for field %s, should be %s", v.TypeName(), key, exp.TypeName())
		} else {
			r.Report(SeverityError, v, "Invalid type %s, should be %s", v.TypeName(), exp.TypeName())
		}
		return false
	}
	structuralOK := exp.CompareStructure(r, v)
	auditsOK := true
	for _, a := range exp.Audits() {
		if !a.Check(r, v) {
			auditsOK = false
		}
	}
	return structuralOK && auditsOK
}

// Report emits a diagnostic about ctx.
func (r *Run) Report(sev Severity, ctx *Value, format string, args ...string) {
	r.reports.AddReport(Report{Severity: sev, Context: ctx, Format: format, Args: args})
}

// Add routes an already-built report to the sink; audits use this to drain
// predicate issue buffers.
func (r *Run) Add(rep Report) { r.reports.AddReport(rep) }

// Stat increments the counter at the hierarchical path.
func (r *Run) Stat(delta int64, path ...string) { r.stats.AddStat(delta, path...) }

// Fail records a fault; the first fault wins and traversal unwinds.
func (r *Run) Fail(err error) {
	if r.fault == nil {
		r.fault = err
	}
}

// IsGlobalKey applies the engine's globally-accepted-key rule.
func (r *Run) IsGlobalKey(key string) bool { return r.eng.globalKey(key) }
