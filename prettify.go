package jsonshape

import (
	j "github.com/goccy/go-json"
)

// Prettifier renders diagnostic context fragments. It never participates in
// validation logic. An engine built with a nil Options.Prettifier uses
// JSONPrettifier (canonical JSON); Report.Render given nil omits the excerpt.
type Prettifier interface {
	Prettify(s string) string
	PrettifyKey(s string) string
	PrettifyValue(s string) string
	PrettifyObject(raw any, exp Expect) string
	PrettifyArray(raw any, exp Expect) string
}

// JSONPrettifier is the default Prettifier, rendering container context with
// canonical (optionally indented) JSON.
type JSONPrettifier struct {
	// Indent is applied to container excerpts; empty means compact output.
	Indent string
}

func (p JSONPrettifier) Prettify(s string) string      { return s }
func (p JSONPrettifier) PrettifyKey(s string) string   { return `"` + s + `"` }
func (p JSONPrettifier) PrettifyValue(s string) string { return s }

func (p JSONPrettifier) PrettifyObject(raw any, exp Expect) string { return p.encode(raw) }
func (p JSONPrettifier) PrettifyArray(raw any, exp Expect) string  { return p.encode(raw) }

func (p JSONPrettifier) encode(raw any) string {
	var (
		b   []byte
		err error
	)
	if p.Indent != "" {
		b, err = j.MarshalIndent(raw, "", p.Indent)
	} else {
		b, err = j.Marshal(raw)
	}
	if err != nil {
		return "<unrenderable>"
	}
	return string(b)
}
