package core

import (
	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/diagnostics"
)

// Every operator switches on the left operand's variant, then on the right
// one. An Object on the left that no built-in case accepts is handed to its
// class's operator table; anything else is a type mismatch naming the
// operator. There is no numeric promotion and no implicit stringification.

// Add implements +: Integer sum, String concatenation, List concatenation.
func Add(a, b Value) (Value, error) {
	switch l := a.(type) {
	case *Integer:
		switch r := b.(type) {
		case *Integer:
			return NewInteger(l.Value + r.Value), nil
		}
	case *String:
		switch r := b.(type) {
		case *String:
			return NewString(l.Value + r.Value), nil
		}
	case *List:
		switch r := b.(type) {
		case *List:
			elements := make([]Value, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return &List{Elements: elements}, nil
		}
	case *Object:
		return dispatchOperator(config.OpAdd, l, b)
	}
	return nil, diagnostics.TypeMismatch(config.OpAdd)
}

func Subtract(a, b Value) (Value, error) {
	return integerOperator(config.OpSubtract, a, b, func(x, y int64) (Value, error) {
		return NewInteger(x - y), nil
	})
}

func Multiply(a, b Value) (Value, error) {
	return integerOperator(config.OpMultiply, a, b, func(x, y int64) (Value, error) {
		return NewInteger(x * y), nil
	})
}

// Divide truncates toward zero.
func Divide(a, b Value) (Value, error) {
	return integerOperator(config.OpDivide, a, b, func(x, y int64) (Value, error) {
		if y == 0 {
			return nil, divisionByZero(config.OpDivide)
		}
		return NewInteger(x / y), nil
	})
}

// Modulo takes the sign of the dividend.
func Modulo(a, b Value) (Value, error) {
	return integerOperator(config.OpModulo, a, b, func(x, y int64) (Value, error) {
		if y == 0 {
			return nil, divisionByZero(config.OpModulo)
		}
		return NewInteger(x % y), nil
	})
}

// Equal compares Integers and Strings by value.
func Equal(a, b Value) (Value, error) {
	return equality(config.OpEqual, a, b, false)
}

func NotEqual(a, b Value) (Value, error) {
	return equality(config.OpNotEqual, a, b, true)
}

func Greater(a, b Value) (Value, error) {
	return integerOperator(config.OpGreater, a, b, func(x, y int64) (Value, error) {
		return NewBoolean(x > y), nil
	})
}

func GreaterEqual(a, b Value) (Value, error) {
	return integerOperator(config.OpGreaterEqual, a, b, func(x, y int64) (Value, error) {
		return NewBoolean(x >= y), nil
	})
}

func Less(a, b Value) (Value, error) {
	return integerOperator(config.OpLess, a, b, func(x, y int64) (Value, error) {
		return NewBoolean(x < y), nil
	})
}

func LessEqual(a, b Value) (Value, error) {
	return integerOperator(config.OpLessEqual, a, b, func(x, y int64) (Value, error) {
		return NewBoolean(x <= y), nil
	})
}

// And accepts Booleans only.
func And(a, b Value) (Value, error) {
	return booleanOperator(config.OpAnd, a, b, func(x, y bool) bool { return x && y })
}

// Or accepts Booleans only.
func Or(a, b Value) (Value, error) {
	return booleanOperator(config.OpOr, a, b, func(x, y bool) bool { return x || y })
}

// Length counts list elements or string characters.
func Length(a Value) (Value, error) {
	switch l := a.(type) {
	case *List:
		return NewInteger(int64(l.Len())), nil
	case *String:
		return NewInteger(int64(l.Len())), nil
	case *Object:
		return dispatchOperator(config.OpLength, l)
	}
	return nil, diagnostics.TypeMismatch(config.OpLength)
}

// Flow implements ->: a new list holding fn applied to each element of the
// source list, in order. The source list is left untouched.
func Flow(a, b Value) (Value, error) {
	switch l := a.(type) {
	case *List:
		switch fn := b.(type) {
		case *Function:
			source := l.Elements
			out := make([]Value, 0, len(source))
			for _, el := range source {
				res, err := CallMethod(fn, NewList(el), NewDictionary(), NIL)
				if err != nil {
					return nil, err
				}
				out = append(out, res)
			}
			return &List{Elements: out}, nil
		}
	case *Object:
		return dispatchOperator(config.OpFlow, l, b)
	}
	return nil, diagnostics.TypeMismatch(config.OpFlow)
}

// Truthy converts the condition of generated if/while code. Booleans are
// taken as is and Integers are true when non-zero.
func Truthy(v Value) (bool, error) {
	switch c := v.(type) {
	case *Boolean:
		return c.Value, nil
	case *Integer:
		return c.Value != 0, nil
	}
	return false, diagnostics.TypeMismatch(config.LogicalSymbol)
}

func integerOperator(op string, a, b Value, fn func(x, y int64) (Value, error)) (Value, error) {
	switch l := a.(type) {
	case *Integer:
		switch r := b.(type) {
		case *Integer:
			return fn(l.Value, r.Value)
		}
	case *Object:
		return dispatchOperator(op, l, b)
	}
	return nil, diagnostics.TypeMismatch(op)
}

func booleanOperator(op string, a, b Value, fn func(x, y bool) bool) (Value, error) {
	switch l := a.(type) {
	case *Boolean:
		switch r := b.(type) {
		case *Boolean:
			return NewBoolean(fn(l.Value, r.Value)), nil
		}
	case *Object:
		return dispatchOperator(op, l, b)
	}
	return nil, diagnostics.TypeMismatch(op)
}

func equality(op string, a, b Value, negate bool) (Value, error) {
	switch l := a.(type) {
	case *Integer:
		switch r := b.(type) {
		case *Integer:
			return NewBoolean((l.Value == r.Value) != negate), nil
		}
	case *String:
		switch r := b.(type) {
		case *String:
			return NewBoolean((l.Value == r.Value) != negate), nil
		}
	case *Object:
		return dispatchOperator(op, l, b)
	}
	return nil, diagnostics.TypeMismatch(op)
}

// dispatchOperator invokes the operator registered under symbol on obj's
// class, passing the remaining operands positionally and obj as receiver.
func dispatchOperator(symbol string, obj *Object, operands ...Value) (Value, error) {
	fn, ok := obj.Class().Operator(symbol)
	if !ok {
		return nil, diagnostics.TypeMismatch(symbol)
	}
	return CallMethod(fn, NewList(operands...), NewDictionary(), obj)
}

func divisionByZero(op string) error {
	return diagnostics.NewError(diagnostics.ErrR008, "Division by zero(%s).", op)
}
