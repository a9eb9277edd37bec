package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/uetail/internal/target"
)

// Project is a configured editor project.
type Project struct {
	Key      string `toml:"key" yaml:"key" json:"key"`
	Name     string `toml:"name" yaml:"name" json:"name"`
	UProject string `toml:"uproject" yaml:"uproject" json:"uproject"`
}

// Build is a configured packaged build.
type Build struct {
	Key  string `toml:"key" yaml:"key" json:"key"`
	Name string `toml:"name" yaml:"name" json:"name"`
	Exe  string `toml:"exe" yaml:"exe" json:"exe"`
}

// Config is the parsed projects file.
type Config struct {
	// Path is the file the config was read from, empty when none was found.
	Path string `toml:"-" yaml:"-" json:"-"`

	Projects     []Project `toml:"projects" yaml:"projects" json:"projects"`
	Builds       []Build   `toml:"builds" yaml:"builds" json:"builds"`
	ProjectGlobs []string  `toml:"project_globs" yaml:"project_globs" json:"project_globs"`
}

// FileNames are tried in order in each candidate directory.
var FileNames = []string{"projects.toml", "projects.yaml", "projects.yml", "projects.json"}

// Candidates returns the default search locations: next to the executable,
// then the working directory.
func Candidates() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	var out []string
	for _, dir := range dirs {
		for _, name := range FileNames {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

// Load reads the projects file at path. With an empty path the first
// existing candidate is used. A missing file yields an empty Config so
// discovery alone can populate the target list.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return loadFirst(Candidates())
	}
	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}
	return loadFile(resolved)
}

func loadFirst(candidates []string) (Config, error) {
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return loadFile(c)
		}
	}
	return Config{}, nil
}

func loadFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := decode(path, data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path
	cfg.normalize(filepath.Dir(path))
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// normalize trims fields, fills missing keys and resolves paths relative to
// the config file's directory.
func (c *Config) normalize(base string) {
	for i := range c.Projects {
		p := &c.Projects[i]
		p.Key = strings.TrimSpace(p.Key)
		p.Name = strings.TrimSpace(p.Name)
		p.UProject = resolveAgainst(base, p.UProject)
		if p.Key == "" {
			p.Key = target.Slugify(firstNonEmpty(p.Name, stem(p.UProject)))
		}
	}
	for i := range c.Builds {
		b := &c.Builds[i]
		b.Key = strings.TrimSpace(b.Key)
		b.Name = strings.TrimSpace(b.Name)
		b.Exe = resolveAgainst(base, b.Exe)
		if b.Key == "" {
			b.Key = target.Slugify(firstNonEmpty(b.Name, stem(b.Exe)))
		}
	}
	for i, g := range c.ProjectGlobs {
		c.ProjectGlobs[i] = resolveAgainst(base, g)
	}
}

// Targets converts the config into selectable targets: configured projects,
// then projects matched by project_globs, then builds. A glob match whose
// path is already configured is skipped.
func (c Config) Targets() ([]target.Target, error) {
	var out []target.Target
	seen := make(map[string]struct{})
	for _, p := range c.Projects {
		out = append(out, target.Target{Kind: target.KindProject, Key: p.Key, Name: p.Name, Path: p.UProject})
		seen[strings.ToLower(p.UProject)] = struct{}{}
	}

	for _, pattern := range c.ProjectGlobs {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand project glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[strings.ToLower(m)]; ok {
				continue
			}
			seen[strings.ToLower(m)] = struct{}{}
			name := stem(m)
			out = append(out, target.Target{Kind: target.KindProject, Key: target.Slugify(name), Name: name, Path: m})
		}
	}

	for _, b := range c.Builds {
		out = append(out, target.Target{Kind: target.KindBuild, Key: b.Key, Name: b.Name, Path: b.Exe})
	}
	return out, nil
}

func resolveAgainst(base, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "~") {
		return mustExpand(trimmed)
	}
	if filepath.IsAbs(trimmed) || isWindowsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(base, trimmed)
}

// isWindowsAbs reports drive-letter paths such as D:/Work, which
// filepath.IsAbs rejects on non-Windows hosts.
func isWindowsAbs(path string) bool {
	return len(path) >= 3 && path[1] == ':' && (path[2] == '/' || path[2] == '\\')
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
