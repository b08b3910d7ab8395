package defaults

import (
	"errors"
	"testing"
)

func TestLiteral_ScalarsPassThrough(t *testing.T) {
	d := Literal(int64(42))
	v, err := d.Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != int64(42) {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestLiteral_ContainersNeverAlias(t *testing.T) {
	d := Literal([]any{int64(1), int64(2)})

	first, err := d.Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fs := first.([]any)
	ss := second.([]any)
	fs[0] = int64(99)

	if ss[0] != int64(1) {
		t.Error("mutating one materialization changed another")
	}

	third, _ := d.Materialize()
	if third.([]any)[0] != int64(1) {
		t.Error("mutation leaked into a subsequent materialization")
	}
}

func TestLiteral_DeepCopiesNestedContainers(t *testing.T) {
	d := Literal(map[string]any{"xs": []any{int64(1)}})

	first, _ := d.Materialize()
	first.(map[string]any)["xs"].([]any)[0] = int64(7)

	second, _ := d.Materialize()
	if second.(map[string]any)["xs"].([]any)[0] != int64(1) {
		t.Error("nested container aliased across materializations")
	}
}

func TestLiteral_NilValue(t *testing.T) {
	v, err := Literal(nil).Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil, got %v", v)
	}
}

func TestFactory_InvokedOncePerMaterialization(t *testing.T) {
	calls := 0
	d := Factory(func() (any, error) {
		calls++
		return []any{}, nil
	})

	if _, err := d.Materialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
	if _, err := d.Materialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly two calls, got %d", calls)
	}
}

func TestFactory_ErrorPropagates(t *testing.T) {
	want := errors.New("no value today")
	d := Factory(func() (any, error) { return nil, want })

	_, err := d.Materialize()
	if !errors.Is(err, want) {
		t.Errorf("expected wrapped factory error, got %v", err)
	}
}

func TestFactory_PanicBecomesError(t *testing.T) {
	d := Factory(func() (any, error) { panic("boom") })

	_, err := d.Materialize()
	if err == nil {
		t.Fatal("expected error from panicking factory")
	}
}

func TestValue_ReportsLiteralsOnly(t *testing.T) {
	if v, ok := Value(Literal("x")); !ok || v != "x" {
		t.Error("expected literal value to be reported")
	}
	if _, ok := Value(Factory(func() (any, error) { return nil, nil })); ok {
		t.Error("expected factory not to report a literal value")
	}
}
