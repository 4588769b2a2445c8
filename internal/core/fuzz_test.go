package core

import (
	"errors"
	"testing"

	"github.com/funvibe/palang/internal/diagnostics"
)

// FuzzIntegerOperators checks that integer arithmetic never panics and
// fails only where division by zero is involved.
func FuzzIntegerOperators(f *testing.F) {
	f.Add(int64(7), int64(-2))
	f.Add(int64(1), int64(0))
	f.Add(int64(-1<<63), int64(-1))

	ops := []func(a, b Value) (Value, error){Add, Subtract, Multiply, Divide, Modulo, Greater, LessEqual, Equal}

	f.Fuzz(func(t *testing.T, x, y int64) {
		a, b := NewInteger(x), NewInteger(y)
		for _, op := range ops {
			v, err := op(a, b)
			if err != nil {
				if y != 0 || !errors.Is(err, diagnostics.ErrDivisionByZero) {
					t.Fatalf("%d op %d: %v", x, y, err)
				}
				continue
			}
			if v == nil {
				t.Fatalf("%d op %d: nil result", x, y)
			}
		}
	})
}

// FuzzListAccess checks bounds handling for arbitrary indices.
func FuzzListAccess(f *testing.F) {
	f.Add(uint8(3), int64(0))
	f.Add(uint8(3), int64(3))
	f.Add(uint8(0), int64(-1))

	f.Fuzz(func(t *testing.T, n uint8, i int64) {
		l := NewList()
		for k := 0; k < int(n); k++ {
			l.Append(NewInteger(int64(k)))
		}
		v, err := GetItem(l, NewInteger(i))
		inRange := i >= 0 && i < int64(n)
		if inRange {
			if err != nil || v.(*Integer).Value != i {
				t.Fatalf("l[%d] of %d = %v, %v", i, n, v, err)
			}
			return
		}
		if !errors.Is(err, diagnostics.ErrOutOfRange) {
			t.Fatalf("l[%d] of %d: %v", i, n, err)
		}
	})
}
