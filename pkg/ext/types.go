// Package ext is the surface native modules are written against.
//
// A module is a Go plugin (go build -buildmode=plugin) exporting
//
//	func PA_INIT() ext.Value
//
// that returns a Dictionary of the module's names, usually built with
// Exports. The same init function can instead be compiled into a host
// binary and made importable with Register.
package ext

import (
	"sort"

	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
	"github.com/funvibe/palang/internal/modules"
)

// Value types aliases
type Value = core.Value
type Nil = core.Nil
type Boolean = core.Boolean
type Integer = core.Integer
type Float = core.Float
type String = core.String
type List = core.List
type Dictionary = core.Dictionary
type Function = core.Function
type Class = core.Class
type Object = core.Object

type NativeFunction = core.NativeFunction
type InitFunc = modules.InitFunc
type Error = diagnostics.RuntimeError

// EntrySymbol is the name the loader looks up in a shared library.
const EntrySymbol = config.EntrySymbol

// Re-export constants
var (
	NIL   = core.NIL
	TRUE  = core.TRUE
	FALSE = core.FALSE
)

// Register makes a module compiled into the binary importable as name.
// It is safe to call from init functions.
func Register(name string, init InitFunc) {
	modules.Register(name, init)
}

// Exports builds a module's export dictionary from Go functions.
func Exports(fns map[string]NativeFunction) *Dictionary {
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)

	d := core.NewDictionary()
	for _, name := range names {
		d.Set(name, core.NewFunction(name, fns[name]))
	}
	return d
}

// Helpers for building values

func Int(v int64) *Integer       { return core.NewInteger(v) }
func Str(v string) *String       { return core.NewString(v) }
func Bool(v bool) *Boolean       { return core.NewBoolean(v) }
func Flt(v float64) *Float       { return core.NewFloat(v) }
func NewList(vs ...Value) *List  { return core.NewList(vs...) }
func NewDictionary() *Dictionary { return core.NewDictionary() }

// Errors

func ArgumentError(format string, args ...interface{}) *Error {
	return diagnostics.NewError(diagnostics.ErrR004, format, args...)
}

func TypeMismatch(symbol string) *Error {
	return diagnostics.TypeMismatch(symbol)
}

// IOError wraps a failure of the outside world (files, sockets, databases).
func IOError(cause error, format string, args ...interface{}) *Error {
	return diagnostics.Wrap(diagnostics.ErrR009, cause, format, args...)
}
