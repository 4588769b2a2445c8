package palang

import (
	"fmt"
	"reflect"

	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
)

var (
	valueType = reflect.TypeOf((*core.Value)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Marshaller handles conversion between Go and runtime values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a runtime Value. Structs become
// Dictionaries of their exported fields; pointers are followed.
func (m *Marshaller) ToValue(val interface{}) (core.Value, error) {
	if val == nil {
		return core.NIL, nil
	}
	if v, ok := val.(core.Value); ok {
		return v, nil
	}
	return m.toValue(reflect.ValueOf(val))
}

func (m *Marshaller) toValue(v reflect.Value) (core.Value, error) {
	if !v.IsValid() {
		return core.NIL, nil
	}
	if v.CanInterface() {
		if cv, ok := v.Interface().(core.Value); ok {
			return cv, nil
		}
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return core.NewInteger(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return core.NewInteger(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return core.NewFloat(v.Float()), nil
	case reflect.Bool:
		return core.NewBoolean(v.Bool()), nil
	case reflect.String:
		return core.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return core.NewList(), nil
		}
		l := core.NewList()
		for i := 0; i < v.Len(); i++ {
			el, err := m.toValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			l.Append(el)
		}
		return l, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %s is not hashable", v.Type().Key())
		}
		d := core.NewDictionary()
		iter := v.MapRange()
		for iter.Next() {
			el, err := m.toValue(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("map value: %w", err)
			}
			d.Set(iter.Key().String(), el)
		}
		return d, nil
	case reflect.Struct:
		d := core.NewDictionary()
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" { // Skip unexported fields
				continue
			}
			el, err := m.toValue(v.Field(i))
			if err != nil {
				return nil, err
			}
			d.Set(field.Name, el)
		}
		return d, nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return core.NIL, nil
		}
		return m.toValue(v.Elem())
	case reflect.Func:
		return m.wrapFunc("", v), nil
	}
	return nil, fmt.Errorf("unsupported Go type %s", v.Type())
}

// FromValue converts a runtime Value to Go. targetType is optional; when
// given, the result is converted to it where possible.
func (m *Marshaller) FromValue(obj core.Value, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}
	// If target type is core.Value, return as is
	if targetType == valueType {
		return obj, nil
	}

	switch o := obj.(type) {
	case *core.Nil:
		return nil, nil
	case *core.Integer:
		if targetType != nil && targetType.Kind() != reflect.Interface {
			return o.Value, nil
		}
		return int(o.Value), nil // Default to int
	case *core.Float:
		return o.Value, nil
	case *core.Boolean:
		return o.Value, nil
	case *core.String:
		return o.Value, nil
	case *core.List:
		return m.listToSlice(o, targetType)
	case *core.Dictionary:
		return m.dictionaryToMap(o, targetType)
	}
	return nil, fmt.Errorf("unsupported type for conversion: %s", obj.Type())
}

func (m *Marshaller) listToSlice(l *core.List, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, l.Len())
	for _, el := range l.Elements {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, err
		}
		rv, err := assignable(val, elemType)
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

func (m *Marshaller) dictionaryToMap(d *core.Dictionary, targetType reflect.Type) (interface{}, error) {
	valType := reflect.TypeOf((*interface{})(nil)).Elem()
	mapType := reflect.TypeOf(map[string]interface{}{})
	if targetType != nil && targetType.Kind() == reflect.Map && targetType.Key().Kind() == reflect.String {
		valType = targetType.Elem()
		mapType = targetType
	}

	result := reflect.MakeMapWithSize(mapType, d.Len())
	for _, k := range d.Keys() {
		el, _ := d.Get(k)
		val, err := m.FromValue(el, valType)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		rv, err := assignable(val, valType)
		if err != nil {
			return nil, err
		}
		result.SetMapIndex(reflect.ValueOf(k).Convert(mapType.Key()), rv)
	}
	return result.Interface(), nil
}

// assignable converts val to t without crossing kinds: integers stay
// integers, floats stay floats and strings stay strings. Narrowing that
// would lose the value is an argument error.
func assignable(val interface{}, t reflect.Type) (reflect.Value, error) {
	if val == nil {
		// Handle nil for pointers/interfaces
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	from, to := rv.Kind(), t.Kind()
	switch {
	case isInt(from) && isInt(to):
		if reflect.Zero(t).OverflowInt(rv.Int()) {
			return reflect.Value{}, overflow(rv, t)
		}
		return rv.Convert(t), nil
	case isInt(from) && isUint(to):
		if rv.Int() < 0 || reflect.Zero(t).OverflowUint(uint64(rv.Int())) {
			return reflect.Value{}, overflow(rv, t)
		}
		return rv.Convert(t), nil
	case isFloat(from) && isFloat(to):
		if reflect.Zero(t).OverflowFloat(rv.Float()) {
			return reflect.Value{}, overflow(rv, t)
		}
		return rv.Convert(t), nil
	case from == reflect.String && to == reflect.String,
		from == reflect.Bool && to == reflect.Bool:
		return rv.Convert(t), nil
	}
	return reflect.Value{}, diagnostics.NewError(diagnostics.ErrR004, "cannot convert %s to %s.", rv.Type(), t)
}

func overflow(rv reflect.Value, t reflect.Type) error {
	return diagnostics.NewError(diagnostics.ErrR004, "%v overflows %s.", rv.Interface(), t)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// wrapFunc makes a Go function callable. Arguments are positional only; a
// trailing error result becomes the call's failure and several remaining
// results are returned as a List.
func (m *Marshaller) wrapFunc(name string, fn reflect.Value) *core.Function {
	return core.NewFunction(name, func(args *core.List, kwargs *core.Dictionary, this core.Value) (core.Value, error) {
		if kwargs.Len() > 0 {
			return nil, diagnostics.NewError(diagnostics.ErrR004, "%s takes no named arguments.", name)
		}
		in, err := m.hostArgs(name, fn.Type(), args.Elements)
		if err != nil {
			return nil, err
		}
		return m.hostResults(name, fn.Call(in))
	})
}

func (m *Marshaller) hostArgs(name string, fnType reflect.Type, args []core.Value) ([]reflect.Value, error) {
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	// Check arg count
	if isVariadic {
		if len(args) < numIn-1 {
			return nil, diagnostics.NewError(diagnostics.ErrR004, "%s expects at least %d arguments, got %d.", name, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, diagnostics.NewError(diagnostics.ErrR004, "%s expects %d arguments, got %d.", name, numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var targetType reflect.Type
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(i)
		}

		val, err := m.FromValue(arg, targetType)
		if err != nil {
			return nil, diagnostics.Wrap(diagnostics.ErrR004, err, "%s: argument %d conversion failed.", name, i)
		}
		rv, err := assignable(val, targetType)
		if err != nil {
			return nil, diagnostics.Wrap(diagnostics.ErrR004, err, "%s: argument %d conversion failed.", name, i)
		}
		in[i] = rv
	}
	return in, nil
}

func (m *Marshaller) hostResults(name string, results []reflect.Value) (core.Value, error) {
	if n := len(results); n > 0 && results[n-1].Type() == errorType {
		if err, _ := results[n-1].Interface().(error); err != nil {
			if _, ok := diagnostics.CodeOf(err); ok {
				return nil, err
			}
			return nil, diagnostics.Wrap(diagnostics.ErrR009, err, "%s failed.", name)
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return core.NIL, nil
	case 1:
		return m.toValue(results[0])
	}
	out := core.NewList()
	for _, r := range results {
		v, err := m.toValue(r)
		if err != nil {
			return nil, err
		}
		out.Append(v)
	}
	return out, nil
}
