package modules

import (
	"github.com/google/uuid"

	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
)

// Handle records one completed import.
type Handle struct {
	ID uuid.UUID
	// Name is the dotted module name as imported.
	Name string
	// Path is the shared library that was opened, empty for a bundled module.
	Path    string
	Exports *core.Dictionary
	Object  *core.Object
}

// Bundled reports whether the module came from the static registry.
func (h *Handle) Bundled() bool { return h.Path == "" }

// Wrap turns a module's exports into the object user code sees. Attribute
// reads on it are served from exports by a getattr operator; nothing is
// copied onto the object itself.
func Wrap(name string, exports core.Value) (*core.Object, *core.Dictionary, error) {
	dict, ok := exports.(*core.Dictionary)
	if !ok {
		got := "nothing"
		if exports != nil {
			got = string(exports.Type())
		}
		return nil, nil, diagnostics.NewError(diagnostics.ErrR007,
			"module %s must export a dictionary, got %s", name, got)
	}

	cls := core.NewClass(name)
	cls.SetOperator(config.GetAttrName, core.NewFunction(config.GetAttrName,
		func(args *core.List, kwargs *core.Dictionary, this core.Value) (core.Value, error) {
			attr, err := core.Argument(args, kwargs, 1, "name", core.NIL)
			if err != nil {
				return nil, err
			}
			key, err := core.HashKey(attr)
			if err != nil {
				return nil, err
			}
			if v, ok := dict.Get(key); ok {
				return v, nil
			}
			return nil, diagnostics.NewError(diagnostics.ErrR007, "no such name in the module: %s.%s", name, key)
		}))
	return core.NewObject(cls), dict, nil
}
