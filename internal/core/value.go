package core

type ValueType string

const (
	NIL_VALUE        = "NIL"
	BOOLEAN_VALUE    = "BOOLEAN"
	INTEGER_VALUE    = "INTEGER"
	FLOAT_VALUE      = "FLOAT"
	STRING_VALUE     = "STRING"
	LIST_VALUE       = "LIST"
	DICTIONARY_VALUE = "DICTIONARY"
	FUNCTION_VALUE   = "FUNCTION"
	CLASS_VALUE      = "CLASS"
	OBJECT_VALUE     = "OBJECT"
)

// Value is every runtime datum. The set of implementations is closed: the
// unexported method keeps other packages from adding variants, and a payload
// is only reachable after a type switch or assertion selects its variant.
type Value interface {
	Type() ValueType
	Inspect() string
	sealed()
}

func (*Nil) sealed()        {}
func (*Boolean) sealed()    {}
func (*Integer) sealed()    {}
func (*Float) sealed()      {}
func (*String) sealed()     {}
func (*List) sealed()       {}
func (*Dictionary) sealed() {}
func (*Function) sealed()   {}
func (*Class) sealed()      {}
func (*Object) sealed()     {}

// IsNil reports whether v is the Nil singleton. A Go nil counts as Nil so
// that absent optional arguments behave like an explicit nil.
func IsNil(v Value) bool {
	return v == nil || v == NIL
}

// orNil maps a Go nil to the Nil singleton.
func orNil(v Value) Value {
	if v == nil {
		return NIL
	}
	return v
}
