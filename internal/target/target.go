package target

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidDescriptor is returned when a descriptor has no usable file stem.
var ErrInvalidDescriptor = errors.New("invalid target descriptor")

// Kind distinguishes editor projects from packaged builds.
type Kind int

const (
	KindProject Kind = iota
	KindBuild
)

func (k Kind) String() string {
	switch k {
	case KindBuild:
		return "build"
	default:
		return "project"
	}
}

// Target is one selectable log source. Path is the .uproject file for a
// project and the executable for a build.
type Target struct {
	Kind       Kind
	Key        string
	Name       string
	Path       string
	Discovered bool
}

// DisplayName returns Name, or Key when Name is blank.
func (t Target) DisplayName() string {
	if strings.TrimSpace(t.Name) == "" {
		return t.Key
	}
	return t.Name
}

// LogPath derives the log file the target writes to.
func (t Target) LogPath() (string, error) {
	if t.Kind == KindBuild {
		return BuildLogPath(t.Path)
	}
	return ProjectLogPath(t.Path)
}

// ProjectLogPath maps <dir>/<stem>.uproject to <dir>/Saved/Logs/<stem>.log.
func ProjectLogPath(uproject string) (string, error) {
	dir, stem, err := splitStem(uproject)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Saved", "Logs", stem+".log"), nil
}

// BuildLogPath maps <dir>/<stem>.exe to <dir>/<stem>/Saved/Logs/<stem>.log.
func BuildLogPath(exe string) (string, error) {
	dir, stem, err := splitStem(exe)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stem, "Saved", "Logs", stem+".log"), nil
}

func splitStem(path string) (dir, stem string, err error) {
	if strings.TrimSpace(path) == "" {
		return "", "", fmt.Errorf("%w: empty path", ErrInvalidDescriptor)
	}
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "", "", fmt.Errorf("%w: %q has no file name", ErrInvalidDescriptor, path)
	}
	stem = strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Dir(path), stem, nil
}

// Slugify lowercases s and collapses every run of non-alphanumeric ASCII
// into a single dash. An empty result becomes "project".
func Slugify(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastDash = false
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "project"
	}
	return out
}
