package core

import (
	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/diagnostics"
)

// GetItem implements a[b] for reading. Reading an absent dictionary key
// yields NIL.
func GetItem(a, b Value) (Value, error) {
	switch l := a.(type) {
	case *String:
		switch r := b.(type) {
		case *Integer:
			ch, ok := l.At(r.Value)
			if !ok {
				return nil, diagnostics.NewError(diagnostics.ErrR002, "String index out of range.")
			}
			return NewString(ch), nil
		}
	case *List:
		switch r := b.(type) {
		case *Integer:
			v, ok := l.At(r.Value)
			if !ok {
				return nil, diagnostics.NewError(diagnostics.ErrR002, "List index out of range.")
			}
			return v, nil
		}
	case *Dictionary:
		key, err := HashKey(b)
		if err != nil {
			return nil, err
		}
		if v, ok := l.Get(key); ok {
			return v, nil
		}
		return NIL, nil
	case *Object:
		return dispatchOperator(config.OpGetItem, l, b)
	}
	return nil, diagnostics.TypeMismatch(config.IndexSymbol)
}

// SetItem implements a[b] = v and returns v. Writing a dictionary key that
// does not exist creates it. Strings are immutable and reject writes.
func SetItem(a, b, v Value) (Value, error) {
	v = orNil(v)
	switch l := a.(type) {
	case *List:
		switch r := b.(type) {
		case *Integer:
			if !l.Put(r.Value, v) {
				return nil, diagnostics.NewError(diagnostics.ErrR002, "List index out of range.")
			}
			return v, nil
		}
	case *Dictionary:
		key, err := HashKey(b)
		if err != nil {
			return nil, err
		}
		l.Set(key, v)
		return v, nil
	case *Object:
		return dispatchOperator(config.OpSetItem, l, b, v)
	}
	return nil, diagnostics.TypeMismatch(config.IndexSymbol)
}

// GetAttr implements a.name. Resolution order: the object's own members,
// its class's members, then the class's getattr hook, whose result is
// returned as is without being stored.
func GetAttr(a Value, name string) (Value, error) {
	obj, ok := a.(*Object)
	if !ok {
		return nil, diagnostics.TypeMismatch(config.AttributeSymbol)
	}
	if v, ok := obj.Member(name); ok {
		return v, nil
	}
	if hook, ok := obj.Class().Operator(config.GetAttrName); ok {
		return CallMethod(hook, NewList(obj, NewString(name)), NewDictionary(), obj)
	}
	return nil, diagnostics.NewError(diagnostics.ErrR003, "no such attribute/method: %s.", name)
}

// SetAttr implements a.name = v and returns v. An existing own member is
// overwritten directly. Otherwise the class's setattr hook, if any, is
// notified first; its result is ignored and the member is stored on the
// object regardless.
func SetAttr(a Value, name string, v Value) (Value, error) {
	v = orNil(v)
	obj, ok := a.(*Object)
	if !ok {
		return nil, diagnostics.TypeMismatch(config.AttributeSymbol)
	}
	if _, own := obj.OwnMember(name); !own {
		if hook, ok := obj.Class().Operator(config.SetAttrName); ok {
			if _, err := CallMethod(hook, NewList(obj, NewString(name), v), NewDictionary(), obj); err != nil {
				return nil, err
			}
		}
	}
	obj.SetMember(name, v)
	return v, nil
}
