package jsonshape_test

import (
	"testing"

	jsonshape "github.com/jsonshape/jsonshape"
)

func TestStats_AddGet(t *testing.T) {
	s := jsonshape.NewStats()
	s.AddStat(1, "types", "integer")
	s.AddStat(2, "types", "integer")
	s.AddStat(1, "types", "string")

	if got := s.Get("types", "integer"); got != 3 {
		t.Errorf("Get(types.integer) = %d", got)
	}
	if got := s.Get("types", "double"); got != 0 {
		t.Errorf("Get(types.double) = %d", got)
	}
	if got := s.Get("types"); got != 0 {
		t.Errorf("intermediate node counted: %d", got)
	}
}

func TestStats_Flatten(t *testing.T) {
	s := jsonshape.NewStats()
	s.AddStat(1, "keys", "a")
	s.AddStat(4, "values", "string", "hello")

	flat := s.Flatten()
	if flat["keys.a"] != 1 || flat["values.string.hello"] != 4 {
		t.Errorf("Flatten() = %v", flat)
	}
}

func TestStats_Lines(t *testing.T) {
	s := jsonshape.NewStats()
	s.AddStat(2, "b")
	s.AddStat(1, "a")
	lines := s.Lines()
	if len(lines) != 2 || lines[0] != "a=1" || lines[1] != "b=2" {
		t.Errorf("Lines() = %v", lines)
	}
}
