package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ColorMode controls colouring of diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Project represents a palang.yaml file.
type Project struct {
	// Home is the installation root used when PA_HOME is unset.
	// Relative paths are resolved against the project file's directory.
	Home string `yaml:"home,omitempty"`

	// SearchPaths are extra module directories searched after ./libs and
	// before the installation root.
	SearchPaths []string `yaml:"search_paths,omitempty"`

	// Color is one of auto, always, never. Defaults to auto.
	Color ColorMode `yaml:"color,omitempty"`

	// Disable hides bundled modules from import.
	Disable []string `yaml:"disable,omitempty"`

	// dir is the directory containing the project file.
	dir string
}

// LoadProject reads and parses a palang.yaml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseProject(data, path)
}

// ParseProject parses palang.yaml content from bytes.
// The path argument locates relative paths and names the file in errors.
func ParseProject(data []byte, path string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(path); err != nil {
		return nil, err
	}
	p.dir = filepath.Dir(path)
	p.setDefaults()
	return &p, nil
}

// FindProject searches for a project file starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none exists.
func FindProject(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ProjectFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (p *Project) validate(path string) error {
	switch p.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color: unknown mode %q (want auto, always or never)", path, p.Color)
	}
	for i, sp := range p.SearchPaths {
		if sp == "" {
			return fmt.Errorf("%s: search_paths[%d]: empty path", path, i)
		}
	}
	for i, name := range p.Disable {
		if name == "" {
			return fmt.Errorf("%s: disable[%d]: empty module name", path, i)
		}
	}
	return nil
}

func (p *Project) setDefaults() {
	if p.Color == "" {
		p.Color = ColorAuto
	}
	for i, sp := range p.SearchPaths {
		if !filepath.IsAbs(sp) {
			p.SearchPaths[i] = filepath.Join(p.dir, sp)
		}
	}
	if p.Home != "" && !filepath.IsAbs(p.Home) {
		p.Home = filepath.Join(p.dir, p.Home)
	}
}

// ColorMode returns the configured colour mode. A nil project means auto.
func (p *Project) ColorMode() ColorMode {
	if p == nil {
		return ColorAuto
	}
	return p.Color
}

// Disabled reports the bundled modules hidden by the project.
func (p *Project) Disabled() []string {
	if p == nil {
		return nil
	}
	return p.Disable
}

// LibraryDirs returns the module search directories in resolution order:
// base, base/libs, the project's search paths, then the libs directory of
// PA_HOME, of the project home, or of FallbackHome, whichever is set first.
// A nil project contributes nothing but the defaults.
func (p *Project) LibraryDirs(base string, getenv func(string) string) []string {
	if base == "" {
		base = "."
	}
	dirs := []string{base, filepath.Join(base, LibsDirName)}
	if p != nil {
		dirs = append(dirs, p.SearchPaths...)
	}

	home := FallbackHome
	if env := getenv(HomeEnvVar); env != "" {
		home = env
	} else if p != nil && p.Home != "" {
		home = p.Home
	}
	return append(dirs, filepath.Join(home, LibsDirName))
}
