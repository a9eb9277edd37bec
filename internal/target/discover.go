package target

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// editorNames are matched case-insensitively against process names.
var editorNames = []string{"unrealeditor.exe", "ue4editor.exe", "ue5editor.exe"}

// Process is the part of a running process discovery looks at.
type Process struct {
	Name string
	Args []string
}

// ProcessLister enumerates running processes.
type ProcessLister func(ctx context.Context) ([]Process, error)

// ListProcesses is the default ProcessLister. Processes whose name or
// arguments cannot be read (exited, or owned by another user) are skipped.
func ListProcesses(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !isEditor(name) {
			continue
		}
		args, err := p.CmdlineSliceWithContext(ctx)
		if err != nil {
			continue
		}
		out = append(out, Process{Name: name, Args: args})
	}
	return out, nil
}

// Discover returns a project target for every running editor that was
// started with a .uproject file.
func Discover(ctx context.Context, list ProcessLister) ([]Target, error) {
	if list == nil {
		list = ListProcesses
	}
	procs, err := list(ctx)
	if err != nil {
		return nil, err
	}
	return FromProcesses(procs), nil
}

// FromProcesses converts editor processes into discovered project targets.
func FromProcesses(procs []Process) []Target {
	var out []Target
	for _, p := range procs {
		if !isEditor(p.Name) {
			continue
		}
		uproject, ok := projectArg(p.Args)
		if !ok {
			continue
		}
		name := stemOf(uproject)
		if name == "" {
			name = "Project"
		}
		out = append(out, Target{
			Kind:       KindProject,
			Key:        Slugify(name),
			Name:       name,
			Path:       uproject,
			Discovered: true,
		})
	}
	return out
}

func isEditor(name string) bool {
	lower := strings.ToLower(name)
	for _, n := range editorNames {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// projectArg finds a .uproject path among args, either bare or following
// a -project flag.
func projectArg(args []string) (string, bool) {
	for i, arg := range args {
		if hasProjectExt(arg) {
			return arg, true
		}
		if strings.EqualFold(arg, "-project") && i+1 < len(args) && hasProjectExt(args[i+1]) {
			return args[i+1], true
		}
	}
	return "", false
}

func hasProjectExt(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), ".uproject")
}

// stemOf accepts both slash styles regardless of host OS.
func stemOf(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
