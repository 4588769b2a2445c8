package modules

import (
	"plugin"

	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
)

// openPlugin loads a Go plugin and returns its PA_INIT entry point. The
// symbol may be declared as a function or as a variable of function type.
func openPlugin(path string) (InitFunc, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.ErrR007, err, "cannot load the module: %s", path)
	}
	sym, err := p.Lookup(config.EntrySymbol)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.ErrR007, err, "%s does not export %s", path, config.EntrySymbol)
	}
	switch fn := sym.(type) {
	case func() core.Value:
		return fn, nil
	case *func() core.Value:
		return *fn, nil
	case *InitFunc:
		return *fn, nil
	}
	return nil, diagnostics.NewError(diagnostics.ErrR007,
		"%s: %s has type %T, want func() Value", path, config.EntrySymbol, sym)
}
