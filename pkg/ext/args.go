package ext

import "github.com/funvibe/palang/internal/core"

// Arg resolves parameter nth, also accepted by name. A nil or NIL default
// makes it required.
func Arg(args *List, kwargs *Dictionary, nth int, name string, def Value) (Value, error) {
	return core.Argument(args, kwargs, nth, name, def)
}

// StringArg is Arg for a required String parameter.
func StringArg(args *List, kwargs *Dictionary, nth int, name string) (string, error) {
	v, err := core.Argument(args, kwargs, nth, name, core.NIL)
	if err != nil {
		return "", err
	}
	s, ok := v.(*core.String)
	if !ok {
		return "", ArgumentError("%s must be a string, got %s.", name, v.Type())
	}
	return s.Value, nil
}

// IntArg is Arg for a required Integer parameter.
func IntArg(args *List, kwargs *Dictionary, nth int, name string) (int64, error) {
	v, err := core.Argument(args, kwargs, nth, name, core.NIL)
	if err != nil {
		return 0, err
	}
	i, ok := v.(*core.Integer)
	if !ok {
		return 0, ArgumentError("%s must be an integer, got %s.", name, v.Type())
	}
	return i.Value, nil
}

// ListArg is Arg for a List parameter that defaults to an empty list.
func ListArg(args *List, kwargs *Dictionary, nth int, name string) (*List, error) {
	v, err := core.Argument(args, kwargs, nth, name, core.NewList())
	if err != nil {
		return nil, err
	}
	l, ok := v.(*core.List)
	if !ok {
		return nil, ArgumentError("%s must be a list, got %s.", name, v.Type())
	}
	return l, nil
}

// DictArg is Arg for a Dictionary parameter that defaults to an empty one.
func DictArg(args *List, kwargs *Dictionary, nth int, name string) (*Dictionary, error) {
	v, err := core.Argument(args, kwargs, nth, name, core.NewDictionary())
	if err != nil {
		return nil, err
	}
	d, ok := v.(*core.Dictionary)
	if !ok {
		return nil, ArgumentError("%s must be a dictionary, got %s.", name, v.Type())
	}
	return d, nil
}
