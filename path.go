package jsonshape

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PathError describes a path syntax or evaluation failure. Pos is the byte
// offset of a syntax error, -1 for evaluation failures.
type PathError struct {
	Raw string
	Pos int
	Msg string
}

func (e *PathError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("jsonshape: path %q at offset %d: %s", e.Raw, e.Pos, e.Msg)
	}
	return fmt.Sprintf("jsonshape: path %q: %s", e.Raw, e.Msg)
}

type stepKind uint8

const (
	stepRoot stepKind = iota
	stepCurrent
	stepAscend
	stepChild
)

type pathStep struct {
	kind stepKind
	key  string
}

// Path is a parsed traversal expression in the $/@/^/.key language. Paths are
// immutable value objects; FindIn never mutates the tree it walks.
type Path struct {
	raw   string
	steps []pathStep
}

// Raw returns the original path text.
func (p *Path) Raw() string { return p.raw }

func (p *Path) String() string { return p.raw }

// ParsePath parses raw without consulting the path cache.
//
// Grammar: the first step is "$" (restart at the tree root) or "@" (start at
// the current value); then zero or more "^" (ascend), then zero or more
// ".key" steps. "\" escapes the next character inside a key. An ascend may
// not follow a root or child step.
func ParsePath(raw string) (*Path, error) {
	if raw == "" {
		return nil, &PathError{Raw: raw, Pos: 0, Msg: "empty path"}
	}
	steps := make([]pathStep, 0, 4)
	switch raw[0] {
	case '$':
		steps = append(steps, pathStep{kind: stepRoot})
	case '@':
		steps = append(steps, pathStep{kind: stepCurrent})
	default:
		return nil, &PathError{Raw: raw, Pos: 0, Msg: "path must start with '$' or '@'"}
	}
	ascendClosed := raw[0] == '$'
	i := 1
	for i < len(raw) {
		switch raw[i] {
		case '^':
			if ascendClosed {
				return nil, &PathError{Raw: raw, Pos: i, Msg: "cannot ascend after a root or child step"}
			}
			steps = append(steps, pathStep{kind: stepAscend})
			i++
		case '.':
			i++
			var key strings.Builder
			for i < len(raw) {
				c := raw[i]
				if c == '\\' {
					if i+1 >= len(raw) {
						return nil, &PathError{Raw: raw, Pos: i, Msg: "dangling escape"}
					}
					key.WriteByte(raw[i+1])
					i += 2
					continue
				}
				if c == '$' || c == '^' || c == '.' {
					break
				}
				key.WriteByte(c)
				i++
			}
			steps = append(steps, pathStep{kind: stepChild, key: key.String()})
			ascendClosed = true
		default:
			return nil, &PathError{Raw: raw, Pos: i, Msg: "unexpected character"}
		}
	}
	return &Path{raw: raw, steps: steps}, nil
}

const pathCacheSize = 512

// pathCache memoises parsed paths by raw text. Purely an optimisation;
// correctness does not depend on it.
var pathCache, _ = lru.New[string, *Path](pathCacheSize)

// PathOf parses raw through the shared parsed-path cache. Repeated calls with
// identical raw text return the same parsed object.
func PathOf(raw string) (*Path, error) {
	if p, ok := pathCache.Get(raw); ok {
		return p, nil
	}
	p, err := ParsePath(raw)
	if err != nil {
		return nil, err
	}
	pathCache.Add(raw, p)
	return p, nil
}

// MustPath is like PathOf but panics on syntax errors; intended for
// schema-construction call sites.
func MustPath(raw string) *Path {
	p, err := PathOf(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// FindIn evaluates the path starting at the given value and returns the
// located node. Evaluation failures are returned as *PathError.
func (p *Path) FindIn(start *Value) (*Value, error) {
	cur := start
	if start.Kind() == KindRoot {
		cur = start.Child()
	}
	for _, st := range p.steps {
		switch st.kind {
		case stepCurrent:
			// already positioned
		case stepRoot:
			top := start
			for top.Parent() != nil {
				top = top.Parent()
			}
			if top.Kind() == KindRoot {
				top = top.Child()
			}
			cur = top
		case stepAscend:
			parent := cur.Parent()
			if parent == nil || parent.Kind() == KindRoot {
				return nil, &PathError{Raw: p.raw, Pos: -1, Msg: "could not ascend far enough"}
			}
			cur = parent
		case stepChild:
			if cur.Kind() != KindObject {
				return nil, &PathError{Raw: p.raw, Pos: -1, Msg: fmt.Sprintf("target of field step %q is not an object", st.key)}
			}
			child, ok := cur.FieldValue(st.key)
			if !ok {
				return nil, &PathError{Raw: p.raw, Pos: -1, Msg: fmt.Sprintf("could not find field %q", st.key)}
			}
			cur = child
		}
	}
	return cur, nil
}
