package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/uetail/internal/target"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingConfigIsEmpty(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Projects) != 0 || len(cfg.Builds) != 0 || cfg.Path != "" {
		t.Fatalf("Load(missing) = %+v, want empty", cfg)
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "projects.toml",
			content: `
[[projects]]
key = "prj1"
name = "  Shooter  "
uproject = "Shooter/Shooter.uproject"

[[builds]]
key = "dev"
name = "Dev Build"
exe = "dist/Shooter.exe"
`,
		},
		{
			name: "yaml",
			file: "projects.yaml",
			content: `
projects:
  - key: prj1
    name: Shooter
    uproject: Shooter/Shooter.uproject
builds:
  - key: dev
    name: Dev Build
    exe: dist/Shooter.exe
`,
		},
		{
			name: "json",
			file: "projects.json",
			content: `{
  "projects": [{"key": "prj1", "name": "Shooter", "uproject": "Shooter/Shooter.uproject"}],
  "builds": [{"key": "dev", "name": "Dev Build", "exe": "dist/Shooter.exe"}]
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.content)

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.Path != path {
				t.Fatalf("Path = %q, want %q", cfg.Path, path)
			}
			if len(cfg.Projects) != 1 || len(cfg.Builds) != 1 {
				t.Fatalf("Load = %+v, want one project and one build", cfg)
			}
			p := cfg.Projects[0]
			if p.Key != "prj1" || p.Name != "Shooter" {
				t.Fatalf("project = %+v", p)
			}
			if want := filepath.Join(dir, "Shooter", "Shooter.uproject"); p.UProject != want {
				t.Fatalf("UProject = %q, want %q", p.UProject, want)
			}
			if want := filepath.Join(dir, "dist", "Shooter.exe"); cfg.Builds[0].Exe != want {
				t.Fatalf("Exe = %q, want %q", cfg.Builds[0].Exe, want)
			}
		})
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	tests := map[string]string{
		"projects.toml": `projects = [`,
		"projects.yaml": "projects: [unclosed",
		"projects.json": `{"projects": `,
		"projects.ini":  `[projects]`,
	}
	for file, content := range tests {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			writeFile(t, path, content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want parse error")
			}
			if !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
			}
		})
	}
}

func TestLoad_FillsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.toml")
	writeFile(t, path, `
[[projects]]
uproject = "/abs/My Game.uproject"

[[projects]]
name = "Pretty Name"
uproject = "x.uproject"

[[builds]]
exe = "C:/Builds/Game-Win64.exe"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := cfg.Projects[0].Key; got != "my-game" {
		t.Fatalf("Projects[0].Key = %q, want my-game", got)
	}
	if got := cfg.Projects[1].Key; got != "pretty-name" {
		t.Fatalf("Projects[1].Key = %q, want pretty-name", got)
	}
	if got := cfg.Builds[0].Exe; got != "C:/Builds/Game-Win64.exe" {
		t.Fatalf("drive-letter path rewritten to %q", got)
	}
}

func TestLoadFirst_UsesFirstExistingCandidate(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(second, "projects.yml"), "projects:\n  - key: b\n    uproject: /b.uproject\n")
	writeFile(t, filepath.Join(second, "projects.json"), `{"projects":[{"key":"c","uproject":"/c.uproject"}]}`)

	var candidates []string
	for _, dir := range []string{first, second} {
		for _, name := range FileNames {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	cfg, err := loadFirst(candidates)
	if err != nil {
		t.Fatalf("loadFirst returned error: %v", err)
	}
	if len(cfg.Projects) != 1 || cfg.Projects[0].Key != "b" {
		t.Fatalf("loadFirst picked %+v, want the yml file", cfg)
	}

	cfg, err = loadFirst(candidates[:len(FileNames)])
	if err != nil || cfg.Path != "" {
		t.Fatalf("loadFirst(no files) = %+v, %v", cfg, err)
	}
}

func TestTargets_ExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "games", "Alpha", "Alpha.uproject"), "{}")
	writeFile(t, filepath.Join(dir, "games", "deep", "Beta", "Beta.uproject"), "{}")
	writeFile(t, filepath.Join(dir, "games", "Beta", "notes.txt"), "")

	path := filepath.Join(dir, "projects.toml")
	writeFile(t, path, `
project_globs = ["games/**/*.uproject"]

[[projects]]
key = "alpha-main"
uproject = "games/Alpha/Alpha.uproject"

[[builds]]
key = "dev"
exe = "dist/Game.exe"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	targets, err := cfg.Targets()
	if err != nil {
		t.Fatalf("Targets returned error: %v", err)
	}

	var got []string
	for _, tg := range targets {
		got = append(got, tg.Kind.String()+":"+tg.Key)
	}
	want := []string{"project:alpha-main", "project:beta", "build:dev"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Targets = %v, want %v", got, want)
	}
	if targets[1].Kind != target.KindProject || targets[1].Name != "Beta" {
		t.Fatalf("glob target = %+v", targets[1])
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestResolveAgainst(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	base := filepath.Join(home, "cfg")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  rel/Game.uproject ", filepath.Join(base, "rel", "Game.uproject")},
		{"~/Game.uproject", filepath.Join(home, "Game.uproject")},
		{"/abs/Game.uproject", "/abs/Game.uproject"},
		{`D:\Work\Game.uproject`, `D:\Work\Game.uproject`},
	}
	for _, tt := range tests {
		if got := resolveAgainst(base, tt.in); got != tt.want {
			t.Errorf("resolveAgainst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
