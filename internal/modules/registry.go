package modules

import (
	"sort"
	"sync"

	"github.com/funvibe/palang/internal/core"
)

// InitFunc builds a module's exports. It is the Go type of the PA_INIT
// symbol and of every statically registered module.
type InitFunc func() core.Value

// registry holds modules compiled into the binary. Registration happens in
// init functions; reads may come from any runtime.
var registry = struct {
	mu      sync.RWMutex
	modules map[string]InitFunc
}{
	modules: make(map[string]InitFunc),
}

// Register makes a bundled module importable under name. A later
// registration under the same name replaces the earlier one.
func Register(name string, init InitFunc) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.modules[name] = init
}

func Lookup(name string) (InitFunc, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	init, ok := registry.modules[name]
	return init, ok
}

// Registered returns the names of all bundled modules, sorted.
func Registered() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.modules))
	for name := range registry.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a bundled module. Used for testing.
func Unregister(name string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.modules, name)
}
