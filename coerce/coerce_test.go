package coerce

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAsString(t *testing.T) {
	if s, ok := AsString("hello"); !ok || s != "hello" {
		t.Errorf("AsString(\"hello\") = %q, %v", s, ok)
	}
	if _, ok := AsString(42); ok {
		t.Error("AsString should not stringify numbers")
	}
	if _, ok := AsString(nil); ok {
		t.Error("AsString should reject nil")
	}
}

func TestAsInt(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(-3), -3, true},
		{"uint32", uint32(9), 9, true},
		{"whole float64", float64(5), 5, true},
		{"negative whole float", float64(-2), -2, true},
		{"fractional float", 2.5, 0, false},
		{"json.Number int", json.Number("12"), 12, true},
		{"json.Number float", json.Number("1.5"), 0, false},
		{"string", "3", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := AsInt(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s: AsInt(%v) = %d, %v; want %d, %v", tc.name, tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestAsFloat(t *testing.T) {
	if f, ok := AsFloat(3); !ok || f != 3.0 {
		t.Errorf("AsFloat(3) = %v, %v", f, ok)
	}
	if f, ok := AsFloat(2.5); !ok || f != 2.5 {
		t.Errorf("AsFloat(2.5) = %v, %v", f, ok)
	}
	if f, ok := AsFloat(json.Number("0.25")); !ok || f != 0.25 {
		t.Errorf("AsFloat(json.Number) = %v, %v", f, ok)
	}
	if _, ok := AsFloat("2.5"); ok {
		t.Error("AsFloat should not parse strings")
	}
	if _, ok := AsFloat(true); ok {
		t.Error("AsFloat should reject bools")
	}
}

func TestAsBool(t *testing.T) {
	if b, ok := AsBool(true); !ok || !b {
		t.Errorf("AsBool(true) = %v, %v", b, ok)
	}
	if _, ok := AsBool(1); ok {
		t.Error("AsBool should not apply numeric truthiness")
	}
	if _, ok := AsBool("true"); ok {
		t.Error("AsBool should not parse strings")
	}
}

func TestAsSlice(t *testing.T) {
	if s, ok := AsSlice([]any{1, "a"}); !ok || len(s) != 2 {
		t.Errorf("AsSlice([]any) = %v, %v", s, ok)
	}

	// Typed slices convert element by element.
	s, ok := AsSlice([]int{1, 2, 3})
	if !ok {
		t.Fatal("AsSlice([]int) should succeed")
	}
	if !reflect.DeepEqual(s, []any{1, 2, 3}) {
		t.Errorf("AsSlice([]int) = %v", s)
	}

	if _, ok := AsSlice("abc"); ok {
		t.Error("AsSlice should not treat strings as sequences")
	}
	if _, ok := AsSlice([]byte("abc")); ok {
		t.Error("AsSlice should not treat byte slices as sequences")
	}
	if _, ok := AsSlice(nil); ok {
		t.Error("AsSlice should reject nil")
	}
}

func TestAsMap(t *testing.T) {
	if m, ok := AsMap(map[string]any{"a": 1}); !ok || m["a"] != 1 {
		t.Errorf("AsMap(map[string]any) = %v, %v", m, ok)
	}

	m, ok := AsMap(map[string]int{"a": 1, "b": 2})
	if !ok {
		t.Fatal("AsMap(map[string]int) should succeed")
	}
	if !reflect.DeepEqual(m, map[string]any{"a": 1, "b": 2}) {
		t.Errorf("AsMap(map[string]int) = %v", m)
	}

	if _, ok := AsMap(map[int]any{1: "a"}); ok {
		t.Error("AsMap should reject non-string keys")
	}
	if _, ok := AsMap([]any{}); ok {
		t.Error("AsMap should reject slices")
	}
}
