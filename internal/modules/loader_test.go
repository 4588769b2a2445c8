package modules

import (
	"errors"
	"fmt"
	"testing"

	"github.com/funvibe/palang/internal/core"
	"github.com/funvibe/palang/internal/diagnostics"
)

// noDisk is a resolver that never finds a shared library.
func noDisk() *Resolver {
	return &Resolver{Suffix: ".so", exists: func(string) bool { return false }}
}

func register(t *testing.T, name string, init InitFunc) {
	t.Helper()
	Register(name, init)
	t.Cleanup(func() { Unregister(name) })
}

func answerModule() core.Value {
	d := core.NewDictionary()
	d.Set("answer", core.NewInteger(42))
	d.Set("double", core.NewFunction("double", func(args *core.List, kwargs *core.Dictionary, this core.Value) (core.Value, error) {
		x, err := core.Argument(args, kwargs, 0, "x", core.NIL)
		if err != nil {
			return nil, err
		}
		return core.Add(x, x)
	}))
	return d
}

func TestImport_Bundled(t *testing.T) {
	register(t, "test.answer", answerModule)
	l := NewLoader(noDisk())

	mod, err := l.Import("test.answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := core.GetAttr(mod, "answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(*core.Integer).Value != 42 {
		t.Errorf("answer = %s", v.Inspect())
	}

	double, err := core.GetAttr(mod, "double")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := core.Call(double, core.NewList(core.NewInteger(4)), nil)
	if err != nil || res.(*core.Integer).Value != 8 {
		t.Errorf("double(4) = %v, %v", res, err)
	}
}

func TestImport_UnknownName(t *testing.T) {
	register(t, "test.answer", answerModule)
	mod, err := NewLoader(noDisk()).Import("test.answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = core.GetAttr(mod, "question")
	if !errors.Is(err, diagnostics.ErrModule) {
		t.Fatalf("expected module error, got %v", err)
	}
	if err.Error() != "Runtime Error: no such name in the module: test.answer.question" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestImport_NotFound(t *testing.T) {
	_, err := NewLoader(noDisk()).Import("test.nowhere")
	if !errors.Is(err, diagnostics.ErrModule) {
		t.Errorf("got %v", err)
	}
}

func TestImport_EachImportReinitializes(t *testing.T) {
	calls := 0
	register(t, "test.counter", func() core.Value {
		calls++
		d := core.NewDictionary()
		d.Set("n", core.NewInteger(int64(calls)))
		return d
	})
	l := NewLoader(noDisk())

	a, err := l.Import("test.counter")
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.Import("test.counter")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("each import should produce a new module object")
	}
	na, _ := core.GetAttr(a, "n")
	nb, _ := core.GetAttr(b, "n")
	if na.(*core.Integer).Value != 1 || nb.(*core.Integer).Value != 2 {
		t.Errorf("n = %s, %s", na.Inspect(), nb.Inspect())
	}

	log := l.Imports()
	if len(log) != 2 {
		t.Fatalf("imports = %d, want 2", len(log))
	}
	if log[0].ID == log[1].ID {
		t.Error("import handles should have distinct ids")
	}
	if !log[0].Bundled() || log[0].Name != "test.counter" {
		t.Errorf("handle = %+v", log[0])
	}
}

func TestImport_Disabled(t *testing.T) {
	register(t, "test.answer", answerModule)
	l := NewLoader(noDisk())
	l.Disable("test.answer")
	if _, err := l.Import("test.answer"); !errors.Is(err, diagnostics.ErrModule) {
		t.Errorf("disabled module imported, err = %v", err)
	}
}

func TestImport_DiskBeforeRegistry(t *testing.T) {
	register(t, "test.answer", answerModule)
	r := &Resolver{Dirs: []string{"libs"}, Suffix: ".so", exists: func(string) bool { return true }}
	l := NewLoader(r)

	var opened string
	l.open = func(path string) (InitFunc, error) {
		opened = path
		return func() core.Value {
			d := core.NewDictionary()
			d.Set("answer", core.NewInteger(7))
			return d
		}, nil
	}

	mod, err := l.Import("test.answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := core.GetAttr(mod, "answer")
	if v.(*core.Integer).Value != 7 {
		t.Errorf("the shared library should win, got %s", v.Inspect())
	}
	if h := l.Imports()[0]; h.Path != opened || h.Bundled() {
		t.Errorf("handle path = %q, opened %q", h.Path, opened)
	}
}

func TestImport_OpenFailure(t *testing.T) {
	r := &Resolver{Dirs: []string{"libs"}, Suffix: ".so", exists: func(string) bool { return true }}
	l := NewLoader(r)
	l.open = func(path string) (InitFunc, error) {
		return nil, diagnostics.Wrap(diagnostics.ErrR007, fmt.Errorf("bad ELF"), "cannot load the module: %s", path)
	}
	_, err := l.Import("broken")
	if !errors.Is(err, diagnostics.ErrModule) {
		t.Errorf("got %v", err)
	}
	if len(l.Imports()) != 0 {
		t.Error("failed imports must not be logged")
	}
}

func TestImport_BadExports(t *testing.T) {
	register(t, "test.list", func() core.Value { return core.NewList() })
	register(t, "test.nothing", func() core.Value { return nil })
	register(t, "test.panic", func() core.Value { panic("boom") })
	l := NewLoader(noDisk())

	for _, name := range []string{"test.list", "test.nothing", "test.panic"} {
		if _, err := l.Import(name); !errors.Is(err, diagnostics.ErrModule) {
			t.Errorf("%s: got %v", name, err)
		}
	}
}

func TestRegistered_Sorted(t *testing.T) {
	register(t, "test.b", answerModule)
	register(t, "test.a", answerModule)
	names := Registered()
	ia, ib := -1, -1
	for i, n := range names {
		switch n {
		case "test.a":
			ia = i
		case "test.b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("Registered() = %v", names)
	}
}
