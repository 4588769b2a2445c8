package modules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/diagnostics"
)

// Resolver maps a dotted module name to a shared library on disk.
type Resolver struct {
	// Dirs are searched in order; the first existing candidate wins.
	Dirs []string
	// Suffix is appended to the module's relative path (".so" on Linux).
	Suffix string

	exists func(path string) bool
}

func NewResolver(dirs []string) *Resolver {
	return &Resolver{
		Dirs:   dirs,
		Suffix: config.SharedLibrarySuffix(),
		exists: fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// RelativePath turns "net.http" into "net/http.so" (with the given suffix).
// It reports false for names with empty segments.
func RelativePath(name, suffix string) (string, bool) {
	if name == "" {
		return "", false
	}
	segments := strings.Split(name, ".")
	for _, s := range segments {
		if s == "" || strings.ContainsAny(s, `/\`) {
			return "", false
		}
	}
	return filepath.Join(segments...) + suffix, true
}

// Candidates lists every path Locate would try for name, in order.
func (r *Resolver) Candidates(name string) []string {
	rel, ok := RelativePath(name, r.Suffix)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(r.Dirs))
	for _, dir := range r.Dirs {
		out = append(out, filepath.Join(dir, rel))
	}
	return out
}

// Locate returns the first existing candidate for name.
func (r *Resolver) Locate(name string) (string, error) {
	if _, ok := RelativePath(name, r.Suffix); !ok {
		return "", diagnostics.NewError(diagnostics.ErrR007, "invalid module name: %q", name)
	}
	exists := r.exists
	if exists == nil {
		exists = fileExists
	}
	for _, path := range r.Candidates(name) {
		if exists(path) {
			return path, nil
		}
	}
	return "", diagnostics.NewError(diagnostics.ErrR007, "cannot find the module: %s", name)
}
