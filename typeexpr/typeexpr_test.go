package typeexpr

import (
	"reflect"
	"testing"
)

func TestParseScalars(t *testing.T) {
	for _, src := range []string{"int", "str", "bool", "float", "Secret", "Path"} {
		ann, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		if ann.Name != src || len(ann.Args) != 0 {
			t.Errorf("Parse(%q) = %+v", src, ann)
		}
		if ann.Raw != src {
			t.Errorf("Parse(%q).Raw = %q", src, ann.Raw)
		}
	}
}

func TestParseNested(t *testing.T) {
	ann, err := Parse("dict[str, list[Optional[int]]]")
	if err != nil {
		t.Fatal(err)
	}
	if ann.Name != "dict" || len(ann.Args) != 2 {
		t.Fatalf("unexpected head: %+v", ann)
	}
	if ann.Args[0].Name != "str" {
		t.Errorf("key arg = %+v", ann.Args[0])
	}
	lst := ann.Args[1]
	if lst.Name != "list" || len(lst.Args) != 1 || lst.Args[0].Name != "Optional" {
		t.Errorf("value arg = %+v", lst)
	}
	// Raw is set on the top-level expression only.
	if lst.Raw != "" {
		t.Errorf("nested Raw should be empty, got %q", lst.Raw)
	}
}

func TestParseUnion(t *testing.T) {
	ann, err := Parse("Union[int, str]")
	if err != nil {
		t.Fatal(err)
	}
	if ann.Name != "Union" || len(ann.Args) != 2 {
		t.Fatalf("Parse(Union) = %+v", ann)
	}
	if ann.Args[0].Name != "int" || ann.Args[1].Name != "str" {
		t.Errorf("union alternatives = %+v", ann.Args)
	}
}

func TestParseLiteralValues(t *testing.T) {
	cases := []struct {
		src  string
		want []any
	}{
		{"Literal['a', 'b']", []any{"a", "b"}},
		{`Literal["x"]`, []any{"x"}},
		{"Literal[1, 2, 3]", []any{int64(1), int64(2), int64(3)}},
		{"Literal[-1]", []any{int64(-1)}},
		{"Literal[1.5]", []any{1.5}},
		{"Literal[true, False]", []any{true, false}},
		{`Literal['it\'s']`, []any{"it's"}},
	}
	for _, tc := range cases {
		ann, err := Parse(tc.src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.src, err)
		}
		if !reflect.DeepEqual(ann.Values, tc.want) {
			t.Errorf("Parse(%q).Values = %#v, want %#v", tc.src, ann.Values, tc.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"list[",
		"list[int",
		"list[int]]",
		"[int]",
		"Literal['a]",
		"Literal[foo]",
		"int str",
	} {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) should fail", src)
		}
	}
}

func TestParseWhitespaceAndDots(t *testing.T) {
	ann, err := Parse("  typing.Optional[ str ]  ")
	if err != nil {
		t.Fatal(err)
	}
	if ann.Name != "typing.Optional" || len(ann.Args) != 1 || ann.Args[0].Name != "str" {
		t.Errorf("Parse dotted = %+v", ann)
	}
	if ann.Raw != "typing.Optional[ str ]" {
		t.Errorf("Raw = %q", ann.Raw)
	}
}
