package jsonshape

import (
	"io"
	"sync"

	tok "github.com/jsonshape/jsonshape/internal/token"
	"github.com/jsonshape/jsonshape/source/gojson"
)

// TokenKind enumerates JSON token kinds surfaced by parser drivers.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // stored for key/string tokens
	Number string // stored as text; the materializer picks integer vs double
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the go-json token source.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &tokenSourceAdapter{inner: gojson.NewReader(r)}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &tokenSourceAdapter{inner: gojson.NewBytes(b)}
}
func (defaultJSONDriver) Name() string { return "go-json" }

// JSONReader wraps an io.Reader as a JSON Source using the current driver.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source using the current driver.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromTokens wraps an internal token source as a Source. Drivers built
// on the internal/token SPI use this to avoid re-implementing the adapter.
func SourceFromTokens(inner tok.Source) Source {
	return &tokenSourceAdapter{inner: inner}
}

type tokenSourceAdapter struct {
	inner tok.Source
}

func (s *tokenSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromTokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *tokenSourceAdapter) Location() int64 { return s.inner.Location() }

func fromTokenKind(k tok.Kind) TokenKind {
	switch k {
	case tok.KindBeginObject:
		return TokenBeginObject
	case tok.KindEndObject:
		return TokenEndObject
	case tok.KindBeginArray:
		return TokenBeginArray
	case tok.KindEndArray:
		return TokenEndArray
	case tok.KindKey:
		return TokenKey
	case tok.KindString:
		return TokenString
	case tok.KindNumber:
		return TokenNumber
	case tok.KindBool:
		return TokenBool
	case tok.KindNull:
		return TokenNull
	default:
		return TokenNull
	}
}
