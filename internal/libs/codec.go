package libs

import (
	"fmt"
	"time"

	"github.com/funvibe/palang/pkg/ext"
)

// toGo converts a value into the plain Go shapes the encoders understand.
// Only data converts; functions, classes and objects fail with a type
// mismatch naming symbol. A container that contains itself is an argument
// error.
func toGo(v ext.Value, symbol string) (interface{}, error) {
	return encoder{symbol: symbol, path: make(map[ext.Value]bool)}.convert(v)
}

// encoder tracks the containers on the current recursion path.
type encoder struct {
	symbol string
	path   map[ext.Value]bool
}

func (e encoder) enter(c ext.Value) error {
	if e.path[c] {
		return ext.ArgumentError("%s: cyclic value.", e.symbol)
	}
	e.path[c] = true
	return nil
}

func (e encoder) convert(v ext.Value) (interface{}, error) {
	switch val := v.(type) {
	case nil, *ext.Nil:
		return nil, nil
	case *ext.Boolean:
		return val.Value, nil
	case *ext.Integer:
		return val.Value, nil
	case *ext.Float:
		return val.Value, nil
	case *ext.String:
		return val.Value, nil
	case *ext.List:
		if err := e.enter(val); err != nil {
			return nil, err
		}
		defer delete(e.path, val)
		out := make([]interface{}, len(val.Elements))
		for i, el := range val.Elements {
			x, err := e.convert(el)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	case *ext.Dictionary:
		if err := e.enter(val); err != nil {
			return nil, err
		}
		defer delete(e.path, val)
		out := make(map[string]interface{}, val.Len())
		for _, k := range val.Keys() {
			el, _ := val.Get(k)
			x, err := e.convert(el)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	}
	return nil, ext.TypeMismatch(e.symbol)
}

// fromGo converts decoded Go data back into values.
func fromGo(data interface{}) ext.Value {
	switch v := data.(type) {
	case nil:
		return ext.NIL
	case bool:
		return ext.Bool(v)
	case int:
		return ext.Int(int64(v))
	case int64:
		return ext.Int(v)
	case uint64:
		return ext.Int(int64(v))
	case float64:
		return ext.Flt(v)
	case string:
		return ext.Str(v)
	case []byte:
		return ext.Str(string(v))
	case time.Time:
		return ext.Str(v.Format(time.RFC3339Nano))
	case []interface{}:
		l := ext.NewList()
		for _, item := range v {
			l.Append(fromGo(item))
		}
		return l
	case map[string]interface{}:
		d := ext.NewDictionary()
		for k, item := range v {
			d.Set(k, fromGo(item))
		}
		return d
	case map[interface{}]interface{}:
		d := ext.NewDictionary()
		for k, item := range v {
			d.Set(fmt.Sprintf("%v", k), fromGo(item))
		}
		return d
	}
	return ext.Str(fmt.Sprintf("%v", data))
}
