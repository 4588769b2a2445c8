package core

import (
	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/diagnostics"
)

// Call invokes a free function or constructs an object from a class.
func Call(callee Value, args *List, kwargs *Dictionary) (Value, error) {
	return CallMethod(callee, args, kwargs, NIL)
}

// CallMethod is Call with an explicit receiver. The receiver is ignored
// when callee is a Class: construction binds the new object instead.
func CallMethod(callee Value, args *List, kwargs *Dictionary, this Value) (Value, error) {
	if args == nil {
		args = NewList()
	}
	if kwargs == nil {
		kwargs = NewDictionary()
	}

	switch c := callee.(type) {
	case *Function:
		res, err := c.Fn(args, kwargs, orNil(this))
		if err != nil {
			return nil, err
		}
		return orNil(res), nil
	case *Class:
		obj, err := Construct(c, args, kwargs)
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, diagnostics.NewError(diagnostics.ErrR005, "calling a non-callable value.")
	}
}

// Construct allocates an object of c and runs its constructor operator, if
// any, with the object as receiver. The constructor's result is discarded:
// the object itself is always returned.
func Construct(c *Class, args *List, kwargs *Dictionary) (*Object, error) {
	obj := NewObject(c)
	if ctor, ok := c.Operator(config.ConstructorName); ok {
		if args == nil {
			args = NewList()
		}
		if kwargs == nil {
			kwargs = NewDictionary()
		}
		if _, err := ctor.Fn(args, kwargs, obj); err != nil {
			return nil, err
		}
	}
	return obj, nil
}
