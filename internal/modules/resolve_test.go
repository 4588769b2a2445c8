package modules

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/palang/internal/diagnostics"
)

func TestRelativePath(t *testing.T) {
	cases := []struct {
		name string
		want string
		ok   bool
	}{
		{"math", "math.so", true},
		{"net.http", filepath.Join("net", "http.so"), true},
		{"a.b.c", filepath.Join("a", "b", "c.so"), true},
		{"", "", false},
		{"a..b", "", false},
		{".a", "", false},
		{"a/b", "", false},
	}
	for _, c := range cases {
		got, ok := RelativePath(c.name, ".so")
		if ok != c.ok || got != c.want {
			t.Errorf("RelativePath(%q) = %q, %v; want %q, %v", c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestResolver_Locate(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	if err := os.MkdirAll(filepath.Join(second, "net"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(second, "net", "http.so")
	if err := os.WriteFile(want, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver([]string{first, second})
	r.Suffix = ".so"
	got, err := r.Locate("net.http")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Locate = %q, want %q", got, want)
	}

	// An earlier directory shadows later ones.
	if err := os.MkdirAll(filepath.Join(first, "net"), 0o755); err != nil {
		t.Fatal(err)
	}
	shadow := filepath.Join(first, "net", "http.so")
	if err := os.WriteFile(shadow, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, _ = r.Locate("net.http")
	if got != shadow {
		t.Errorf("Locate = %q, want %q", got, shadow)
	}
}

func TestResolver_DirectoriesAreNotModules(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "pkg.so"), 0o755); err != nil {
		t.Fatal(err)
	}
	r := NewResolver([]string{dir})
	r.Suffix = ".so"
	if _, err := r.Locate("pkg"); !errors.Is(err, diagnostics.ErrModule) {
		t.Errorf("got %v", err)
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := &Resolver{Dirs: []string{"a", "b"}, Suffix: ".so", exists: func(string) bool { return false }}
	_, err := r.Locate("missing")
	if !errors.Is(err, diagnostics.ErrModule) {
		t.Fatalf("expected module error, got %v", err)
	}
	if err.Error() != "Runtime Error: cannot find the module: missing" {
		t.Errorf("message = %q", err.Error())
	}

	want := []string{filepath.Join("a", "missing.so"), filepath.Join("b", "missing.so")}
	got := r.Candidates("missing")
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Candidates = %v, want %v", got, want)
	}
}

// FuzzRelativePath checks that accepted names never escape the search
// directory.
func FuzzRelativePath(f *testing.F) {
	f.Add("net.http")
	f.Add("..")
	f.Add("a/../../b")

	f.Fuzz(func(t *testing.T, name string) {
		rel, ok := RelativePath(name, ".so")
		if !ok {
			return
		}
		if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			t.Fatalf("RelativePath(%q) = %q escapes", name, rel)
		}
	})
}
