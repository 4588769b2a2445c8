package core

// NativeFunction is the calling convention shared by intrinsics, generated
// code and native modules: positional arguments, named arguments and the
// receiver (NIL for free functions).
type NativeFunction func(args *List, kwargs *Dictionary, this Value) (Value, error)

// Function is a callable value. Intrinsics and module exports are
// represented the same way once constructed.
type Function struct {
	Name string
	Fn   NativeFunction
}

func NewFunction(name string, fn NativeFunction) *Function {
	return &Function{Name: name, Fn: fn}
}

func (f *Function) Type() ValueType { return FUNCTION_VALUE }
func (f *Function) Inspect() string {
	if f.Name == "" {
		return "<function>"
	}
	return "<function " + f.Name + ">"
}
