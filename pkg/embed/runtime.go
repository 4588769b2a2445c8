// Package palang is the host side of a compiled palang program: it owns the
// globals, the module loader and the fatal error reporter, and runs the
// program's entry function.
package palang

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
	"github.com/funvibe/palang/internal/modules"

	_ "github.com/funvibe/palang/internal/libs"
)

// EntryFunc is a compiled program's top level.
type EntryFunc func(rt *Runtime) (core.Value, error)

// Options configure New. Zero fields fall back to the process defaults.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is the program's base directory: the first module search
	// directory and the start of the palang.yaml lookup. Defaults to ".".
	Dir string

	// Project overrides palang.yaml discovery.
	Project *config.Project

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Runtime wraps everything a running program shares.
type Runtime struct {
	Globals  *core.Dictionary
	Loader   *modules.Loader
	Reporter *diagnostics.Reporter
	Project  *config.Project

	// Args and Env are recorded by Enter.
	Args []string
	Env  []string

	marshaller *Marshaller
	mu         sync.Mutex
}

// New creates a runtime with the intrinsics bound and the module search
// path derived from Dir, palang.yaml and PA_HOME.
func New(opts Options) (*Runtime, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	project := opts.Project
	if project == nil {
		path, err := config.FindProject(opts.Dir)
		if err != nil {
			return nil, err
		}
		if path != "" {
			if project, err = config.LoadProject(path); err != nil {
				return nil, err
			}
		}
	}

	loader := modules.NewLoader(modules.NewResolver(project.LibraryDirs(opts.Dir, opts.Getenv)))
	loader.Disable(project.Disabled()...)

	return &Runtime{
		Globals:    core.NewIntrinsics(opts.Stdin, opts.Stdout).Globals(),
		Loader:     loader,
		Reporter:   diagnostics.NewReporter(opts.Stderr, project.ColorMode()),
		Project:    project,
		marshaller: NewMarshaller(),
	}, nil
}

// Import loads a native module; see modules.Loader.Import.
func (rt *Runtime) Import(name string) (*core.Object, error) {
	return rt.Loader.Import(name)
}

// Global looks up a global binding.
func (rt *Runtime) Global(name string) (core.Value, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.Globals.Get(name)
}

// Set binds a global to a runtime value.
func (rt *Runtime) Set(name string, v core.Value) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.Globals.Set(name, v)
}

// Bind converts a Go value and makes it a global. Go functions become
// callable Functions taking positional arguments.
func (rt *Runtime) Bind(name string, val interface{}) error {
	var v core.Value
	if fn := reflect.ValueOf(val); fn.Kind() == reflect.Func {
		v = rt.marshaller.wrapFunc(name, fn)
	} else {
		var err error
		if v, err = rt.marshaller.ToValue(val); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	rt.Set(name, v)
	return nil
}

// Call calls a global by name with Go arguments and converts the result
// back to Go.
func (rt *Runtime) Call(name string, args ...interface{}) (interface{}, error) {
	fn, ok := rt.Global(name)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", name)
	}

	list := core.NewList()
	for i, arg := range args {
		v, err := rt.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		list.Append(v)
	}

	result, err := core.Call(fn, list, nil)
	if err != nil {
		return nil, err
	}
	return rt.marshaller.FromValue(result, nil)
}

// Enter records the program's arguments and environment.
func (rt *Runtime) Enter(argv, env []string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.Args = append([]string(nil), argv...)
	rt.Env = append([]string(nil), env...)
}

// Leave turns the entry function's result into a process exit status: an
// Integer in 0..255 is used as is, anything else exits 0.
func (rt *Runtime) Leave(ret core.Value) int {
	if i, ok := ret.(*core.Integer); ok && i.Value >= 0 && i.Value <= 255 {
		return int(i.Value)
	}
	return 0
}

// Main runs entry between Enter and Leave. A failure is reported on the
// runtime's stderr and yields status 1.
func (rt *Runtime) Main(argv, env []string, entry EntryFunc) int {
	rt.Enter(argv, env)
	ret, err := entry(rt)
	if err != nil {
		rt.Reporter.Report(err)
		return 1
	}
	return rt.Leave(ret)
}

// Run is the whole of a generated main package:
//
//	func main() { os.Exit(palang.Run(program)) }
func Run(entry EntryFunc) int {
	rt, err := New(Options{})
	if err != nil {
		diagnostics.NewReporter(os.Stderr, config.ColorAuto).Report(err)
		return 1
	}
	return rt.Main(os.Args, os.Environ(), entry)
}
