package target

import (
	"path/filepath"
	"strings"
)

// Merge returns configured projects, then discovered projects not already
// present, then configured builds. A discovered project is a duplicate when
// its canonical lowercase path or its lowercase key matches a project
// already in the list.
func Merge(configured, discovered []Target) []Target {
	var projects, builds []Target
	paths := make(map[string]struct{})
	keys := make(map[string]struct{})

	for _, t := range configured {
		if t.Kind == KindBuild {
			builds = append(builds, t)
			continue
		}
		projects = append(projects, t)
		paths[canonicalKey(t.Path)] = struct{}{}
		keys[strings.ToLower(t.Key)] = struct{}{}
	}

	for _, t := range discovered {
		if t.Kind == KindBuild {
			continue
		}
		path := canonicalKey(t.Path)
		key := strings.ToLower(t.Key)
		if _, ok := paths[path]; ok {
			continue
		}
		if _, ok := keys[key]; ok {
			continue
		}
		projects = append(projects, t)
		paths[path] = struct{}{}
		keys[key] = struct{}{}
	}

	return append(projects, builds...)
}

// canonicalKey resolves symlinks where the path exists and lowercases the
// result. Unresolvable paths are compared as written.
func canonicalKey(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		if abs, err := filepath.Abs(resolved); err == nil {
			path = abs
		}
	}
	return strings.ToLower(path)
}

// Counts returns the number of projects and discovered projects in targets.
func Counts(targets []Target) (projects, discovered int) {
	for _, t := range targets {
		if t.Kind != KindProject {
			continue
		}
		projects++
		if t.Discovered {
			discovered++
		}
	}
	return projects, discovered
}
