package jsonshape_test

import (
	"errors"
	"strings"
	"testing"

	jsonshape "github.com/jsonshape/jsonshape"
	"github.com/jsonshape/jsonshape/expect"
)

func runValidation(t *testing.T, src string, exp jsonshape.Expect) (*jsonshape.Result, *jsonshape.Reports) {
	t.Helper()
	reports := jsonshape.NewReports()
	res, err := jsonshape.ValidateBytes([]byte(src), exp, reports, nil)
	if err != nil {
		t.Fatalf("ValidateBytes(%q): %v", src, err)
	}
	return res, reports
}

func TestValidate_ScalarLiteral(t *testing.T) {
	exp := expect.String("hello")

	res, reports := runValidation(t, `"hello"`, exp)
	if !res.OK {
		t.Fatalf("matching literal rejected: %s", reports.Summary())
	}
	if len(reports.All()) != 0 {
		t.Fatalf("unexpected reports: %s", reports.Summary())
	}

	res, reports = runValidation(t, `"world"`, exp)
	if res.OK {
		t.Fatalf("mismatching literal accepted")
	}
	all := reports.All()
	if len(all) != 1 || all[0].Severity != jsonshape.SeverityWarn {
		t.Fatalf("reports = %s", reports.Summary())
	}
	want := "Value world does not match the expected value hello"
	if all[0].Message() != want {
		t.Errorf("message = %q, want %q", all[0].Message(), want)
	}
}

func TestValidate_MissingRequiredField(t *testing.T) {
	exp := expect.Object()
	exp.Field("a", expect.Integer()).Required()

	res, reports := runValidation(t, `{}`, exp)
	if res.OK {
		t.Fatalf("missing required field accepted")
	}
	all := reports.All()
	if len(all) != 1 || all[0].Severity != jsonshape.SeverityError {
		t.Fatalf("reports = %s", reports.Summary())
	}
	if all[0].Message() != "Missing required field a" {
		t.Errorf("message = %q", all[0].Message())
	}
}

func TestValidate_UnexpectedKeysAndCommentIgnore(t *testing.T) {
	exp := expect.Object()
	exp.Field("x", expect.Boolean()).Required()

	res, reports := runValidation(t, `{"x": true, "__comment": "note", "extra": 1}`, exp)
	if res.OK {
		t.Fatalf("unexpected key accepted")
	}
	var infos, warns []string
	for _, rep := range reports.All() {
		switch rep.Severity {
		case jsonshape.SeverityInfo:
			infos = append(infos, rep.Message())
		case jsonshape.SeverityWarn:
			warns = append(warns, rep.Message())
		}
	}
	if len(infos) != 1 || !strings.Contains(infos[0], "__comment") {
		t.Errorf("infos = %v", infos)
	}
	if len(warns) != 1 || !strings.Contains(warns[0], "extra") {
		t.Errorf("warns = %v", warns)
	}
}

func TestValidate_Placeholder(t *testing.T) {
	exp := expect.Object().Placeholder(expect.String())

	res, _ := runValidation(t, `{"any": "s1", "other": "s2"}`, exp)
	if !res.OK {
		t.Fatalf("placeholder should accept any matching key")
	}

	res, reports := runValidation(t, `{"any": 3}`, exp)
	if res.OK {
		t.Fatalf("non-overlapping key accepted")
	}
	if len(reports.All()) == 0 {
		t.Fatalf("expected a diagnostic")
	}
}

func TestValidate_BranchActivation(t *testing.T) {
	build := func() jsonshape.Expect {
		o := expect.Object()
		o.Field("kind", expect.String()).Required()
		o.Branch("whenFoo",
			jsonshape.TargetHasValue("@.kind", "foo"),
			expect.NewField("fooData", expect.Integer(), true))
		return o
	}

	res, reports := runValidation(t, `{"kind": "foo", "fooData": 7}`, build())
	if !res.OK {
		t.Fatalf("active branch rejected: %s", reports.Summary())
	}
	debugs := reports.AtLeast(jsonshape.SeverityDebug)
	found := false
	for _, rep := range debugs {
		if rep.Message() == "Successfully branched to: whenFoo" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing branch debug report: %s", reports.Summary())
	}

	res, _ = runValidation(t, `{"kind": "foo"}`, build())
	if res.OK {
		t.Fatalf("missing branch outcome accepted")
	}

	res, reports = runValidation(t, `{"kind": "bar"}`, build())
	if !res.OK {
		t.Fatalf("inactive branch must not require outcomes: %s", reports.Summary())
	}
}

func TestValidate_Mixed(t *testing.T) {
	exp := expect.Mixed(expect.Integer(), expect.String())

	for _, src := range []string{`5`, `"x"`} {
		res, reports := runValidation(t, src, exp)
		if !res.OK {
			t.Fatalf("%s rejected: %s", src, reports.Summary())
		}
	}

	res, reports := runValidation(t, `true`, exp)
	if res.OK {
		t.Fatalf("boolean accepted by integer|string union")
	}
	all := reports.All()
	if len(all) != 1 {
		t.Fatalf("reports = %s", reports.Summary())
	}
	want := "Invalid type boolean, must have been one of: integer, string"
	if all[0].Message() != want {
		t.Errorf("message = %q, want %q", all[0].Message(), want)
	}
}

func TestValidate_Nullable(t *testing.T) {
	res, reports := runValidation(t, `null`, expect.String().Nullable())
	if !res.OK || len(reports.All()) != 0 {
		t.Fatalf("nullable null rejected: %s", reports.Summary())
	}

	res, _ = runValidation(t, `null`, expect.String())
	if res.OK {
		t.Fatalf("null accepted by non-nullable string")
	}
}

func TestValidate_TypeMismatchMessages(t *testing.T) {
	exp := expect.Object()
	exp.Field("a", expect.Integer()).Required()

	_, reports := runValidation(t, `{"a": "nope"}`, exp)
	all := reports.All()
	if len(all) != 1 {
		t.Fatalf("reports = %s", reports.Summary())
	}
	want := "Invalid type string for field a, should be integer"
	if all[0].Message() != want {
		t.Errorf("message = %q, want %q", all[0].Message(), want)
	}

	_, reports = runValidation(t, `"nope"`, expect.Integer())
	all = reports.All()
	if len(all) != 1 || all[0].Message() != "Invalid type string, should be integer" {
		t.Errorf("uncontained message = %s", reports.Summary())
	}
}

func TestValidate_ArrayLeniency(t *testing.T) {
	exp := expect.Array(expect.Integer(), expect.String())

	res, reports := runValidation(t, `[1, "a", 2]`, exp)
	if !res.OK {
		t.Fatalf("overlapping elements rejected: %s", reports.Summary())
	}

	res, reports = runValidation(t, `[1, true]`, exp)
	if res.OK {
		t.Fatalf("non-overlapping element accepted")
	}
	all := reports.All()
	if len(all) != 1 || !strings.Contains(all[0].Message(), "position 1") {
		t.Errorf("reports = %s", reports.Summary())
	}

	// Extra templates that match nothing are not an error.
	res, _ = runValidation(t, `[1, 2]`, exp)
	if !res.OK {
		t.Fatalf("unused template must not fail the array")
	}
}

func TestValidate_ArrayElementLiteral(t *testing.T) {
	exp := expect.Array(expect.Integer(3))
	res, reports := runValidation(t, `[3, 4]`, exp)
	if res.OK {
		t.Fatalf("literal-violating element accepted")
	}
	all := reports.All()
	if len(all) != 1 || all[0].Severity != jsonshape.SeverityWarn {
		t.Fatalf("reports = %s", reports.Summary())
	}
}

func TestValidate_Redirect(t *testing.T) {
	reg := jsonshape.NewRegistry()
	ref := expect.Ref(reg, "item")
	// Forward reference: the target registers after the redirect is built.
	expect.String("hello").RegisterAs(reg, "item")

	res, _ := runValidation(t, `"hello"`, ref)
	if !res.OK {
		t.Fatalf("redirect rejected matching input")
	}

	// Redirect fixed point: same verdict and report shape as the target.
	refReports := jsonshape.NewReports()
	directReports := jsonshape.NewReports()
	refRes, err := jsonshape.ValidateBytes([]byte(`"world"`), ref, refReports, nil)
	if err != nil {
		t.Fatalf("ValidateBytes: %v", err)
	}
	target, _ := reg.Resolve("item")
	directRes, err := jsonshape.ValidateBytes([]byte(`"world"`), target, directReports, nil)
	if err != nil {
		t.Fatalf("ValidateBytes: %v", err)
	}
	if refRes.OK != directRes.OK || len(refReports.All()) != len(directReports.All()) {
		t.Errorf("redirect and target disagree: %v/%v", refRes.OK, directRes.OK)
	}
}

func TestValidate_RedirectUnknownIdentifier(t *testing.T) {
	reg := jsonshape.NewRegistry()
	ref := expect.Ref(reg, "nowhere")
	_, err := jsonshape.ValidateBytes([]byte(`1`), ref, nil, nil)
	if !errors.Is(err, jsonshape.ErrUnknownIdentifier) {
		t.Fatalf("err = %v, want ErrUnknownIdentifier", err)
	}
}

func TestValidate_DepthExceeded(t *testing.T) {
	reg := jsonshape.NewRegistry()
	loop := expect.Mixed(expect.Ref(reg, "loop"))
	loop.RegisterAs(reg, "loop")

	eng := jsonshape.NewEngine(jsonshape.Options{MaxDepth: 16})
	_, err := eng.ValidateBytes([]byte(`5`), loop, nil, nil)
	if !errors.Is(err, jsonshape.ErrDepthExceeded) {
		t.Fatalf("err = %v, want ErrDepthExceeded", err)
	}
}

func TestValidate_RootWrapping(t *testing.T) {
	root := expect.Root(expect.Object())
	res, reports := runValidation(t, `{}`, root)
	if !res.OK {
		t.Fatalf("root expectation rejected: %s", reports.Summary())
	}
}

func TestValidate_Stats(t *testing.T) {
	exp := expect.Object()
	exp.Field("x", expect.Boolean()).Required()

	stats := jsonshape.NewStats()
	res, err := jsonshape.ValidateBytes([]byte(`{"x": true}`), expect.Root(exp), nil, stats)
	if err != nil || !res.OK {
		t.Fatalf("validate: %v %v", res, err)
	}
	checks := map[string]int64{
		"root.type.object":    1,
		"types.object":        1,
		"types.boolean":       1,
		"fields.boolean":      1,
		"keys.x":              1,
		"values.boolean.true": 1,
	}
	for path, want := range checks {
		if got := stats.Get(strings.Split(path, ".")...); got != want {
			t.Errorf("stats %s = %d, want %d", path, got, want)
		}
	}
}

func TestValidate_ReportOrderIsDepthFirst(t *testing.T) {
	exp := expect.Object()
	exp.Field("first", expect.Integer()).Required()
	exp.Field("second", expect.String()).Required()

	_, reports := runValidation(t, `{"first": "bad", "second": 1}`, exp)
	all := reports.All()
	if len(all) != 2 {
		t.Fatalf("reports = %s", reports.Summary())
	}
	if !strings.Contains(all[0].Message(), "first") || !strings.Contains(all[1].Message(), "second") {
		t.Errorf("order = %q, %q", all[0].Message(), all[1].Message())
	}
}

func TestValidate_RepeatedRunsAgree(t *testing.T) {
	exp := expect.Object()
	exp.Field("a", expect.Integer()).Required()
	root := mustParseRoot(t, `{"a": "bad"}`)

	for i := 0; i < 2; i++ {
		reports := jsonshape.NewReports()
		ok, err := jsonshape.Validate(root, exp, reports, nil)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if ok || len(reports.All()) != 1 {
			t.Fatalf("run %d: ok=%v reports=%s", i, ok, reports.Summary())
		}
	}
}

func TestValidate_AuditsRunAfterStructure(t *testing.T) {
	exp := expect.Object()
	exp.Field("a", expect.Integer()).Required()
	exp.Audit(jsonshape.MustExist("@.b"))

	res, reports := runValidation(t, `{}`, exp)
	if res.OK {
		t.Fatalf("audit failure accepted")
	}
	// Both the structural error and the audit issue must accumulate.
	if reports.Count(jsonshape.SeverityWarn) < 2 {
		t.Errorf("reports = %s", reports.Summary())
	}
}
