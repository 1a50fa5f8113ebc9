package jsonshape

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEmptyInput indicates the source produced no JSON value at all.
var ErrEmptyInput = errors.New("jsonshape: empty input")

// ParseBytes parses one JSON document into a Value tree using the current
// driver. The result is not root-wrapped; see NewRoot.
func ParseBytes(b []byte) (*Value, error) { return ParseSource(JSONBytes(b)) }

// ParseString parses one JSON document from a string.
func ParseString(s string) (*Value, error) { return ParseSource(JSONBytes([]byte(s))) }

// ParseReader parses one JSON document from a reader.
func ParseReader(r io.Reader) (*Value, error) { return ParseSource(JSONReader(r)) }

// ParseSource materializes a Value tree from a token source, preserving
// object key order and the exact number literals.
func ParseSource(src Source) (*Value, error) {
	p := valueReader{src: src}
	t, err := p.next()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyInput
		}
		return nil, err
	}
	return p.readValue(t)
}

type valueReader struct {
	src Source
}

func (p *valueReader) next() (Token, error) { return p.src.NextToken() }

func (p *valueReader) readValue(t Token) (*Value, error) {
	switch t.Kind {
	case TokenNull:
		return NewNull(), nil
	case TokenBool:
		return NewBool(t.Bool), nil
	case TokenString:
		return NewString(t.String), nil
	case TokenNumber:
		return numberValue(t.Number)
	case TokenBeginArray:
		var elems []*Value
		for {
			et, err := p.next()
			if err != nil {
				return nil, unexpectedEnd(err)
			}
			if et.Kind == TokenEndArray {
				return NewArray(elems...), nil
			}
			e, err := p.readValue(et)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	case TokenBeginObject:
		obj := NewObject()
		for {
			kt, err := p.next()
			if err != nil {
				return nil, unexpectedEnd(err)
			}
			if kt.Kind == TokenEndObject {
				return obj, nil
			}
			if kt.Kind != TokenKey {
				return nil, fmt.Errorf("jsonshape: expected object key, got token kind %d", kt.Kind)
			}
			vt, err := p.next()
			if err != nil {
				return nil, unexpectedEnd(err)
			}
			child, err := p.readValue(vt)
			if err != nil {
				return nil, err
			}
			obj.SetField(kt.String, child)
		}
	default:
		return nil, fmt.Errorf("jsonshape: unexpected token kind %d", t.Kind)
	}
}

func unexpectedEnd(err error) error {
	if err == io.EOF {
		return errors.New("jsonshape: unexpected end of input")
	}
	return err
}

// numberValue picks integer vs double from the literal. Integer syntax that
// overflows int64 degrades to a double.
func numberValue(text string) (*Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			v := NewInt(i)
			v.raw = text
			return v, nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("jsonshape: invalid number literal %q: %w", text, err)
	}
	v := NewDouble(f)
	v.raw = text
	return v, nil
}
