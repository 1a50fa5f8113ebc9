// Package gojson provides a token source backed by goccy/go-json. It is the
// default driver wired by the root package.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/jsonshape/jsonshape/internal/token"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into a token.Source using go-json.
func NewReader(r io.Reader) token.Source {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into a token.Source using go-json.
func NewBytes(b []byte) token.Source { return NewReader(bytes.NewReader(b)) }

// afterValue flips the top object frame back to expecting a key once a value
// token has been produced.
func (s *source) afterValue() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) NextToken() (token.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return token.Token{}, io.EOF
		}
		return token.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return token.Token{Kind: token.KindBeginObject, Offset: -1}, nil
		case '}':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			return token.Token{Kind: token.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return token.Token{Kind: token.KindBeginArray, Offset: -1}, nil
		case ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			return token.Token{Kind: token.KindEndArray, Offset: -1}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return token.Token{Kind: token.KindKey, String: v, Offset: -1}, nil
			}
		}
		s.afterValue()
		return token.Token{Kind: token.KindString, String: v, Offset: -1}, nil
	case bool:
		s.afterValue()
		return token.Token{Kind: token.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.afterValue()
		return token.Token{Kind: token.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.afterValue()
		return token.Token{Kind: token.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	case nil:
		s.afterValue()
		return token.Token{Kind: token.KindNull, Offset: -1}, nil
	}
	s.afterValue()
	return token.Token{Kind: token.KindNull, Offset: -1}, nil
}

func (s *source) Location() int64 { return -1 }
