package modules

import (
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
)

// Loader imports native modules: shared libraries found by its Resolver
// first, then modules bundled into the binary. Nothing is cached; every
// Import runs the module's initializer again and returns a fresh object.
type Loader struct {
	resolver *Resolver
	open     func(path string) (InitFunc, error)

	mu       sync.Mutex
	disabled map[string]bool
	imports  []*Handle
}

func NewLoader(resolver *Resolver) *Loader {
	return &Loader{
		resolver: resolver,
		open:     openPlugin,
		disabled: make(map[string]bool),
	}
}

// Disable hides bundled modules. Shared libraries of the same name are
// still found on disk.
func (l *Loader) Disable(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, name := range names {
		l.disabled[name] = true
	}
}

// Import resolves, initializes and wraps the module called name.
func (l *Loader) Import(name string) (*core.Object, error) {
	init, path, err := l.find(name)
	if err != nil {
		return nil, err
	}

	exports, err := runInit(name, init)
	if err != nil {
		return nil, err
	}
	obj, dict, err := Wrap(name, exports)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.imports = append(l.imports, &Handle{
		ID:      uuid.New(),
		Name:    name,
		Path:    path,
		Exports: dict,
		Object:  obj,
	})
	l.mu.Unlock()
	return obj, nil
}

func (l *Loader) find(name string) (InitFunc, string, error) {
	path, locateErr := l.resolver.Locate(name)
	if locateErr == nil {
		init, err := l.open(path)
		if err != nil {
			return nil, "", err
		}
		return init, path, nil
	}

	l.mu.Lock()
	disabled := l.disabled[name]
	l.mu.Unlock()
	if !disabled {
		if init, ok := Lookup(name); ok {
			return init, "", nil
		}
	}
	return nil, "", locateErr
}

// runInit calls a module initializer, turning a panic into a module error.
func runInit(name string, init InitFunc) (exports core.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = diagnostics.NewError(diagnostics.ErrR007, "module %s failed to initialize: %v", name, r)
		}
	}()
	return init(), nil
}

// Imports returns the import log, oldest first.
func (l *Loader) Imports() []Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Handle, len(l.imports))
	for i, h := range l.imports {
		out[i] = *h
	}
	return out
}
