package core

import "github.com/funvibe/palang/internal/diagnostics"

// Argument resolves the value of one declared parameter. A named argument
// wins over the positional one at index nth; if neither is supplied the
// default is used, and a NIL default marks the parameter as required.
//
// Native function bodies call it once per parameter; nth may exceed the
// number of positional arguments.
func Argument(args *List, kwargs *Dictionary, nth int, name string, def Value) (Value, error) {
	if kwargs != nil {
		if v, ok := kwargs.Get(name); ok {
			return v, nil
		}
	}
	if args != nil && nth >= 0 && nth < len(args.Elements) {
		return args.Elements[nth], nil
	}
	if !IsNil(def) {
		return def, nil
	}
	return nil, diagnostics.NewError(diagnostics.ErrR004, "%s is required.", name)
}
