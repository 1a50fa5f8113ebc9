package expect

import (
	"strings"

	jsonshape "github.com/jsonshape/jsonshape"
)

// Field is one (key, expectation, required, placeholder) entry of an object
// expectation. A placeholder field matches any input field whose value
// matches the template; its key is only a label.
type Field struct {
	Key         string
	Value       jsonshape.Expect
	Required    bool
	Placeholder bool
}

// NewField builds a named field entry, for Branch outcomes and loaders.
func NewField(key string, v jsonshape.Expect, required bool) Field {
	return Field{Key: key, Value: v, Required: required}
}

// PlaceholderField builds a placeholder entry; the key is a fixed label.
func PlaceholderField(v jsonshape.Expect) Field {
	return Field{Key: "*", Value: v, Placeholder: true}
}

// Branch conditionally extends an object's field set: when the predicate
// succeeds against the input being validated, the outcomes join the active
// fields for that pass.
type Branch struct {
	Label     string
	Predicate jsonshape.Predicate
	Outcomes  []Field
}

// objectNode matches objects field by field: named fields first, then
// placeholders over the remaining keys, then the globally-accepted-key rule;
// whatever is left is unexpected.
type objectNode struct {
	base
	fields   []Field
	branches []Branch
}

var _ jsonshape.Expect = (*objectNode)(nil)

// Object creates an empty object expectation; chain Field/Placeholder/Branch.
func Object() *objectNode { return &objectNode{} }

// Field registers a named field (optional by default) and returns a step for
// marking it Required or Optional.
func (o *objectNode) Field(key string, v jsonshape.Expect) *fieldStep {
	o.AddField(Field{Key: key, Value: v})
	return &fieldStep{o: o, key: key}
}

// AddField appends a field entry. Non-placeholder keys are unique within one
// object: a duplicate named key replaces the earlier entry in place.
func (o *objectNode) AddField(f Field) *objectNode {
	o.fields = mergeField(o.fields, f)
	return o
}

// Placeholder appends a placeholder field matching any remaining input key
// whose value kind overlaps the template.
func (o *objectNode) Placeholder(v jsonshape.Expect) *objectNode {
	o.fields = append(o.fields, PlaceholderField(v))
	return o
}

// Branch adds a conditional extension of the field set.
func (o *objectNode) Branch(label string, p jsonshape.Predicate, outcomes ...Field) *objectNode {
	o.branches = append(o.branches, Branch{Label: label, Predicate: p, Outcomes: outcomes})
	return o
}

// Nullable marks the node as accepting null input.
func (o *objectNode) Nullable() *objectNode { o.MarkNullable(); return o }

// Audit attaches a loud test to the node.
func (o *objectNode) Audit(a jsonshape.Audit) *objectNode { o.AddAudit(a); return o }

// RegisterAs binds the node under id for redirects.
func (o *objectNode) RegisterAs(reg *jsonshape.Registry, id string) *objectNode {
	reg.Register(id, o)
	return o
}

// fieldStep narrows the builder to the field just added.
type fieldStep struct {
	o   *objectNode
	key string
}

// Required marks the field as required and returns the object builder.
func (f *fieldStep) Required() *objectNode { return f.o.setRequired(f.key, true) }

// Optional marks the field as optional (the default) and returns the builder.
func (f *fieldStep) Optional() *objectNode { return f.o.setRequired(f.key, false) }

func (f *fieldStep) Field(key string, v jsonshape.Expect) *fieldStep { return f.o.Field(key, v) }
func (f *fieldStep) Placeholder(v jsonshape.Expect) *objectNode      { return f.o.Placeholder(v) }
func (f *fieldStep) Branch(label string, p jsonshape.Predicate, outcomes ...Field) *objectNode {
	return f.o.Branch(label, p, outcomes...)
}

func (o *objectNode) setRequired(key string, required bool) *objectNode {
	for i := range o.fields {
		if !o.fields[i].Placeholder && o.fields[i].Key == key {
			o.fields[i].Required = required
		}
	}
	return o
}

func (o *objectNode) Mask() jsonshape.Kind { return jsonshape.KindObject }
func (o *objectNode) TypeName() string     { return "object" }

func (o *objectNode) CompareStructure(r *jsonshape.Run, v *jsonshape.Value) bool {
	active := o.activeFields(r, v)

	// Every input key ends up in exactly one bucket: matched against a named
	// field, claimed by a placeholder, globally ignored, or unexpected.
	present := make(map[string]bool, len(v.Keys()))
	for _, k := range v.Keys() {
		present[k] = true
	}

	ok := true
	for _, f := range active {
		if f.Placeholder {
			continue
		}
		child, exists := v.FieldValue(f.Key)
		if !exists {
			if f.Required {
				if key, contained := v.FieldKey(); contained {
					r.Report(jsonshape.SeverityError, v,
						"Missing required nested field %s for object %s", f.Key, key)
				} else {
					r.Report(jsonshape.SeverityError, v,
						"Missing required field %s", f.Key)
				}
				ok = false
			}
			continue
		}
		if !r.Validate(child, f.Value) {
			ok = false
		}
		r.Stat(1, "fields", child.TypeName())
		r.Stat(1, "keys", f.Key)
		present[f.Key] = false
	}

	// Placeholders claim remaining keys in declaration order; a key that
	// overlaps several placeholders is only ever observed by the first.
	for _, f := range active {
		if !f.Placeholder {
			continue
		}
		for _, k := range v.Keys() {
			if !present[k] {
				continue
			}
			child, _ := v.FieldValue(k)
			if !child.Kind().Has(f.Value.Mask()) {
				continue
			}
			if !r.Validate(child, f.Value) {
				ok = false
			}
			r.Stat(1, "fields", child.TypeName())
			r.Stat(1, "keys", k)
			present[k] = false
		}
	}

	var ignored []string
	for _, k := range v.Keys() {
		if present[k] && r.IsGlobalKey(k) {
			ignored = append(ignored, k)
			present[k] = false
		}
	}
	if len(ignored) > 0 {
		r.Report(jsonshape.SeverityInfo, v,
			"Ignoring globally accepted keys: %s", strings.Join(ignored, ", "))
	}

	var unexpected []string
	for _, k := range v.Keys() {
		if present[k] {
			unexpected = append(unexpected, k)
		}
	}
	if len(unexpected) > 0 {
		r.Report(jsonshape.SeverityWarn, v,
			"Unexpected keys: %s, accepted keys are: %s",
			strings.Join(unexpected, ", "), strings.Join(namedKeys(active), ", "))
		ok = false
	}
	return ok
}

// activeFields computes the field set for this pass: the declared fields plus
// the outcomes of every branch whose predicate succeeds on the input. Branch
// outcomes override base fields with the same key.
func (o *objectNode) activeFields(r *jsonshape.Run, v *jsonshape.Value) []Field {
	active := make([]Field, len(o.fields))
	copy(active, o.fields)
	for _, br := range o.branches {
		if br.Predicate == nil || !br.Predicate.Test(v) {
			continue
		}
		r.Report(jsonshape.SeverityDebug, v, "Successfully branched to: %s", br.Label)
		for _, f := range br.Outcomes {
			active = mergeField(active, f)
		}
	}
	return active
}

func mergeField(fields []Field, f Field) []Field {
	if !f.Placeholder {
		for i := range fields {
			if !fields[i].Placeholder && fields[i].Key == f.Key {
				fields[i] = f
				return fields
			}
		}
	}
	return append(fields, f)
}

func namedKeys(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !f.Placeholder {
			out = append(out, f.Key)
		}
	}
	return out
}
