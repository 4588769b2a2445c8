package core

import (
	"errors"
	"testing"

	"github.com/funvibe/palang/internal/diagnostics"
)

// mustInt and mustBool take an operator's results directly:
// mustInt(t)(Add(a, b)).
func mustInt(t *testing.T) func(Value, error) int64 {
	return func(v Value, err error) int64 {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		i, ok := v.(*Integer)
		if !ok {
			t.Fatalf("expected Integer, got %s", v.Type())
		}
		return i.Value
	}
}

func mustBool(t *testing.T) func(Value, error) bool {
	return func(v Value, err error) bool {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, ok := v.(*Boolean)
		if !ok {
			t.Fatalf("expected Boolean, got %s", v.Type())
		}
		return b.Value
	}
}

func TestArithmetic_Integers(t *testing.T) {
	a, b := NewInteger(7), NewInteger(-2)

	if got := mustInt(t)(Add(a, b)); got != 5 {
		t.Errorf("7 + -2 = %d", got)
	}
	if got := mustInt(t)(Subtract(a, b)); got != 9 {
		t.Errorf("7 - -2 = %d", got)
	}
	if got := mustInt(t)(Multiply(a, b)); got != -14 {
		t.Errorf("7 * -2 = %d", got)
	}
	if got := mustInt(t)(Divide(a, b)); got != -3 {
		t.Errorf("7 / -2 = %d, want truncation to -3", got)
	}
	if got := mustInt(t)(Modulo(a, b)); got != 1 {
		t.Errorf("7 %% -2 = %d, want 1", got)
	}
	if got := mustInt(t)(Modulo(NewInteger(-7), NewInteger(2))); got != -1 {
		t.Errorf("-7 %% 2 = %d, want sign of dividend", got)
	}
}

func TestArithmetic_DivisionByZero(t *testing.T) {
	_, err := Divide(NewInteger(1), NewInteger(0))
	if !errors.Is(err, diagnostics.ErrDivisionByZero) {
		t.Errorf("expected division by zero, got %v", err)
	}
	_, err = Modulo(NewInteger(1), NewInteger(0))
	if !errors.Is(err, diagnostics.ErrDivisionByZero) {
		t.Errorf("expected division by zero, got %v", err)
	}
}

func TestArithmetic_NoPromotion(t *testing.T) {
	_, err := Add(NewInteger(1), NewFloat(1))
	if !errors.Is(err, diagnostics.ErrTypeMismatch) {
		t.Fatalf("Integer + Float must not promote, got %v", err)
	}
	if err.Error() != "Runtime Error: Type mismatch(+)." {
		t.Errorf("message = %q", err.Error())
	}

	_, err = Add(NewString("a"), NewInteger(1))
	if !errors.Is(err, diagnostics.ErrTypeMismatch) {
		t.Errorf("String + Integer must not stringify, got %v", err)
	}

	_, err = Subtract(NewString("a"), NewString("b"))
	if err == nil || err.Error() != "Runtime Error: Type mismatch(-)." {
		t.Errorf("got %v", err)
	}
}

func TestAdd_Strings(t *testing.T) {
	v, err := Add(NewString("foo"), NewString("bar"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*String).Value != "foobar" {
		t.Errorf("got %s", v.Inspect())
	}
}

func TestAdd_ListConcatenation(t *testing.T) {
	shared := NewList()
	a := NewList(NewInteger(1), NewString("x"))
	b := NewList(shared, NewInteger(1))

	v, err := Add(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := v.(*List)
	if out.Len() != a.Len()+b.Len() {
		t.Fatalf("len = %d, want %d", out.Len(), a.Len()+b.Len())
	}
	want := append(append([]Value{}, a.Elements...), b.Elements...)
	for i := range want {
		if out.Elements[i] != want[i] {
			t.Errorf("element %d = %s, want %s", i, out.Elements[i].Inspect(), want[i].Inspect())
		}
	}
	if out.Elements[2] != shared {
		t.Error("elements are shared by reference, not copied")
	}

	out.Append(NewInteger(9))
	if a.Len() != 2 || b.Len() != 2 {
		t.Error("operands must not change when the result does")
	}
}

func TestComparisons(t *testing.T) {
	one, two := NewInteger(1), NewInteger(2)
	cases := []struct {
		name string
		op   func(a, b Value) (Value, error)
		want bool
	}{
		{"==", Equal, false},
		{"!=", NotEqual, true},
		{">", Greater, false},
		{">=", GreaterEqual, false},
		{"<", Less, true},
		{"<=", LessEqual, true},
	}
	for _, c := range cases {
		if got := mustBool(t)(c.op(one, two)); got != c.want {
			t.Errorf("1 %s 2 = %v, want %v", c.name, got, c.want)
		}
	}

	if !mustBool(t)(Equal(NewString("a"), NewString("a"))) {
		t.Error(`"a" == "a" should be true`)
	}
	if !mustBool(t)(NotEqual(NewString("a"), NewString("b"))) {
		t.Error(`"a" != "b" should be true`)
	}
	if _, err := Less(NewString("a"), NewString("b")); !errors.Is(err, diagnostics.ErrTypeMismatch) {
		t.Errorf("strings do not order, got %v", err)
	}
}

func TestLogical_BooleansOnly(t *testing.T) {
	if mustBool(t)(And(TRUE, FALSE)) {
		t.Error("true and false")
	}
	if !mustBool(t)(Or(TRUE, FALSE)) {
		t.Error("true or false")
	}
	_, err := Or(NewInteger(1), TRUE)
	if err == nil || err.Error() != "Runtime Error: Type mismatch(or)." {
		t.Errorf("no truthiness coercion expected, got %v", err)
	}
}

func TestLength(t *testing.T) {
	if got := mustInt(t)(Length(NewList(NIL, NIL, NIL))); got != 3 {
		t.Errorf("len(list) = %d", got)
	}
	if got := mustInt(t)(Length(NewString("héllo"))); got != 5 {
		t.Errorf("len(string) = %d, want character count 5", got)
	}
	if _, err := Length(NewInteger(3)); !errors.Is(err, diagnostics.ErrTypeMismatch) {
		t.Errorf("got %v", err)
	}
}

func square(args *List, kwargs *Dictionary, this Value) (Value, error) {
	x, err := Argument(args, kwargs, 0, "x", NIL)
	if err != nil {
		return nil, err
	}
	return Multiply(x, x)
}

func TestFlow_MapsInOrder(t *testing.T) {
	src := NewList(NewInteger(1), NewInteger(2), NewInteger(3))
	v, err := Flow(src, NewFunction("square", square))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := v.(*List)
	want := []int64{1, 4, 9}
	for i, w := range want {
		if out.Elements[i].(*Integer).Value != w {
			t.Errorf("element %d = %s, want %d", i, out.Elements[i].Inspect(), w)
		}
	}
	if src.Elements[1].(*Integer).Value != 2 {
		t.Error("source list was mutated")
	}
}

func TestFlow_RequiresListAndFunction(t *testing.T) {
	_, err := Flow(NewList(), NewInteger(1))
	if err == nil || err.Error() != "Runtime Error: Type mismatch(->)." {
		t.Errorf("got %v", err)
	}
}

func TestFlow_PropagatesFailure(t *testing.T) {
	src := NewList(NewInteger(1), NewString("x"))
	_, err := Flow(src, NewFunction("square", square))
	if !errors.Is(err, diagnostics.ErrTypeMismatch) {
		t.Errorf("expected the element failure to abort the flow, got %v", err)
	}
}

func TestTruthy(t *testing.T) {
	if ok, err := Truthy(TRUE); err != nil || !ok {
		t.Errorf("Truthy(true) = %v, %v", ok, err)
	}
	if ok, err := Truthy(NewInteger(0)); err != nil || ok {
		t.Errorf("Truthy(0) = %v, %v", ok, err)
	}
	_, err := Truthy(NewString("yes"))
	if err == nil || err.Error() != "Runtime Error: Type mismatch(logical)." {
		t.Errorf("got %v", err)
	}
}
