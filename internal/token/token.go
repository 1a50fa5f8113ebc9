// Package token defines the token stream contract between JSON parser
// drivers and the value materializer.
package token

// Kind enumerates JSON token kinds.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise). Numbers are carried as text so the
// materializer decides integer vs double without losing the literal.
type Token struct {
	Kind   Kind
	String string // stored for key/string tokens
	Number string
	Bool   bool
	Offset int64
}

// Source yields tokens for one JSON document. It returns io.EOF when the
// input is exhausted.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}
