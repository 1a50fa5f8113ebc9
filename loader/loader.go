// Package loader compiles declarative YAML schema documents into expected
// trees for the jsonshape engine.
//
// Document format (one node per mapping):
//
//	type: object            # null|boolean|integer|double|string|scalar|any|
//	                        # array|object|mixed|ref|root; inferred from the
//	                        # shape keys when omitted
//	nullable: true
//	id: address             # registers the node for redirects
//	value: "hello"          # literal for scalar types
//	fields:                 # ordered; order fixes report emission order
//	  - key: name
//	    required: true
//	    type: string
//	  - placeholder: true
//	    type: string
//	branches:
//	  - label: whenFoo
//	    when: { path: "@.kind", equals: ["foo"] }
//	    fields:
//	      - { key: fooData, required: true, type: integer }
//	elements:               # array templates
//	  - { type: integer }
//	alternatives:           # mixed alternatives
//	  - { type: string }
//	ref: address            # redirect by identifier
//	checks:                 # audits
//	  - exists: "$.meta.version"
//	  - path: "@.kind"
//	    in: ["foo", "bar"]
package loader

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	jsonshape "github.com/jsonshape/jsonshape"
	"github.com/jsonshape/jsonshape/expect"
)

type nodeSpec struct {
	Type         string       `yaml:"type"`
	Nullable     bool         `yaml:"nullable"`
	ID           string       `yaml:"id"`
	Ref          string       `yaml:"ref"`
	Value        *litNode     `yaml:"value"`
	Child        *nodeSpec    `yaml:"child"`
	Fields       []fieldSpec  `yaml:"fields"`
	Branches     []branchSpec `yaml:"branches"`
	Elements     []nodeSpec   `yaml:"elements"`
	Alternatives []nodeSpec   `yaml:"alternatives"`
	Checks       []checkSpec  `yaml:"checks"`
}

// litNode keeps a literal as a YAML node until its expected type is known.
type litNode struct{ yaml.Node }

func (l *litNode) UnmarshalYAML(n *yaml.Node) error { l.Node = *n; return nil }

type fieldSpec struct {
	Key         string `yaml:"key"`
	Required    bool   `yaml:"required"`
	Placeholder bool   `yaml:"placeholder"`
	nodeSpec    `yaml:",inline"`
}

type branchSpec struct {
	Label  string      `yaml:"label"`
	When   whenSpec    `yaml:"when"`
	Fields []fieldSpec `yaml:"fields"`
}

type whenSpec struct {
	Path   string `yaml:"path"`
	Exists bool   `yaml:"exists"`
	Equals []any  `yaml:"equals"`
}

type checkSpec struct {
	Exists string `yaml:"exists"`
	Path   string `yaml:"path"`
	In     []any  `yaml:"in"`
}

// FromYAML compiles a schema document. The registry receives nodes declaring
// an id and resolves ref nodes; it may be nil for documents using neither.
func FromYAML(data []byte, reg *jsonshape.Registry) (jsonshape.Expect, error) {
	var spec nodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	c := compiler{reg: reg}
	n, err := c.compile(&spec)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// FromYAMLFile is FromYAML over a file.
func FromYAMLFile(path string, reg *jsonshape.Registry) (jsonshape.Expect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return FromYAML(data, reg)
}

type compiler struct {
	reg *jsonshape.Registry
}

func (c *compiler) compile(spec *nodeSpec) (expect.Builder, error) {
	typ := spec.Type
	if typ == "" {
		switch {
		case spec.Ref != "":
			typ = "ref"
		case len(spec.Fields) > 0 || len(spec.Branches) > 0:
			typ = "object"
		case len(spec.Elements) > 0:
			typ = "array"
		case len(spec.Alternatives) > 0:
			typ = "mixed"
		default:
			return nil, fmt.Errorf("loader: node needs a type or a recognizable shape")
		}
	}

	node, err := c.compileTyped(typ, spec)
	if err != nil {
		return nil, err
	}
	if spec.Nullable {
		node.MarkNullable()
	}
	for _, chk := range spec.Checks {
		a, err := c.audit(chk)
		if err != nil {
			return nil, err
		}
		node.AddAudit(a)
	}
	if spec.ID != "" {
		if c.reg == nil {
			return nil, fmt.Errorf("loader: node %q declares an id but no registry was given", spec.ID)
		}
		c.reg.Register(spec.ID, node)
	}
	return node, nil
}

func (c *compiler) compileTyped(typ string, spec *nodeSpec) (expect.Builder, error) {
	switch typ {
	case "null":
		return expect.Null(), nil
	case "boolean":
		if spec.Value == nil {
			return expect.Boolean(), nil
		}
		lit, err := decodeLit[bool](spec.Value)
		if err != nil {
			return nil, err
		}
		return expect.Boolean(lit), nil
	case "integer":
		if spec.Value == nil {
			return expect.Integer(), nil
		}
		lit, err := decodeLit[int64](spec.Value)
		if err != nil {
			return nil, err
		}
		return expect.Integer(lit), nil
	case "double":
		if spec.Value == nil {
			return expect.Double(), nil
		}
		lit, err := decodeLit[float64](spec.Value)
		if err != nil {
			return nil, err
		}
		return expect.Double(lit), nil
	case "string":
		if spec.Value == nil {
			return expect.String(), nil
		}
		lit, err := decodeLit[string](spec.Value)
		if err != nil {
			return nil, err
		}
		return expect.String(lit), nil
	case "scalar":
		if spec.Value == nil {
			return expect.Scalar(), nil
		}
		lit, err := decodeLit[any](spec.Value)
		if err != nil {
			return nil, err
		}
		return expect.ScalarValue(lit), nil
	case "any":
		return expect.Any(), nil
	case "array":
		templates := make([]jsonshape.Expect, 0, len(spec.Elements))
		for i := range spec.Elements {
			t, err := c.compile(&spec.Elements[i])
			if err != nil {
				return nil, err
			}
			templates = append(templates, t)
		}
		return expect.Array(templates...), nil
	case "object":
		return c.compileObject(spec)
	case "mixed":
		alts := make([]jsonshape.Expect, 0, len(spec.Alternatives))
		for i := range spec.Alternatives {
			a, err := c.compile(&spec.Alternatives[i])
			if err != nil {
				return nil, err
			}
			alts = append(alts, a)
		}
		return expect.Mixed(alts...), nil
	case "ref":
		if spec.Ref == "" {
			return nil, fmt.Errorf("loader: ref node needs a ref identifier")
		}
		if c.reg == nil {
			return nil, fmt.Errorf("loader: ref %q needs a registry", spec.Ref)
		}
		return expect.Ref(c.reg, spec.Ref), nil
	case "root":
		if spec.Child == nil {
			return nil, fmt.Errorf("loader: root node needs a child")
		}
		child, err := c.compile(spec.Child)
		if err != nil {
			return nil, err
		}
		return expect.Root(child), nil
	default:
		return nil, fmt.Errorf("loader: unknown node type %q", typ)
	}
}

func (c *compiler) compileObject(spec *nodeSpec) (expect.Builder, error) {
	o := expect.Object()
	for i := range spec.Fields {
		f, err := c.compileField(&spec.Fields[i])
		if err != nil {
			return nil, err
		}
		if f.Placeholder {
			o.Placeholder(f.Value)
		} else {
			o.AddField(f)
		}
	}
	for _, br := range spec.Branches {
		pred, err := c.predicate(br.When)
		if err != nil {
			return nil, fmt.Errorf("loader: branch %q: %w", br.Label, err)
		}
		outcomes := make([]expect.Field, 0, len(br.Fields))
		for i := range br.Fields {
			f, err := c.compileField(&br.Fields[i])
			if err != nil {
				return nil, err
			}
			outcomes = append(outcomes, f)
		}
		o.Branch(br.Label, pred, outcomes...)
	}
	return o, nil
}

func (c *compiler) compileField(f *fieldSpec) (expect.Field, error) {
	child, err := c.compile(&f.nodeSpec)
	if err != nil {
		return expect.Field{}, err
	}
	if f.Placeholder {
		pf := expect.PlaceholderField(child)
		pf.Required = f.Required
		return pf, nil
	}
	if f.Key == "" {
		return expect.Field{}, fmt.Errorf("loader: field needs a key")
	}
	return expect.NewField(f.Key, child, f.Required), nil
}

func (c *compiler) predicate(w whenSpec) (jsonshape.Predicate, error) {
	if w.Path == "" {
		return nil, fmt.Errorf("when clause needs a path")
	}
	if _, err := jsonshape.ParsePath(w.Path); err != nil {
		return nil, err
	}
	if len(w.Equals) > 0 {
		return jsonshape.TargetHasValue(w.Path, w.Equals...), nil
	}
	if w.Exists {
		return jsonshape.TargetExists(w.Path), nil
	}
	return nil, fmt.Errorf("when clause needs exists or equals")
}

func (c *compiler) audit(chk checkSpec) (jsonshape.Audit, error) {
	switch {
	case chk.Exists != "":
		if _, err := jsonshape.ParsePath(chk.Exists); err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		return jsonshape.MustExist(chk.Exists), nil
	case chk.Path != "" && len(chk.In) > 0:
		if _, err := jsonshape.ParsePath(chk.Path); err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		return jsonshape.HasValue(chk.Path, chk.In...), nil
	default:
		return nil, fmt.Errorf("loader: check needs exists or path+in")
	}
}

func decodeLit[T any](n *litNode) (T, error) {
	var v T
	if err := n.Decode(&v); err != nil {
		var zero T
		return zero, fmt.Errorf("loader: literal value: %w", err)
	}
	return v, nil
}
