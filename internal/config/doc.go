// Package config loads the projects file that lists selectable targets.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise try projects.toml, projects.yaml, projects.yml and
//     projects.json next to the executable, then in the working directory
//  3. If no file exists, return an empty Config; running editors found by
//     process discovery still populate the list
//
// The decoder is chosen by file extension: go-toml for .toml, yaml.v3 for
// .yaml and .yml, encoding/json for .json.
//
// # File Format
//
// Example projects.toml:
//
//	project_globs = ["D:/Work/**/*.uproject"]
//
//	[[projects]]
//	key = "prj1"
//	name = "Shooter"
//	uproject = "D:/Work/Shooter/Shooter.uproject"
//
//	[[builds]]
//	key = "game-dev"
//	name = "Shooter (Development)"
//	exe = "D:/Builds/Shooter.exe"
//
// Every field except the path is optional. A missing key is derived from
// the name, or from the file stem when the name is also missing.
//
// # Path Expansion
//
//   - Absolute paths, including Windows drive-letter paths, are used as-is
//   - Tilde paths are expanded to the home directory
//   - Relative paths resolve against the directory holding the config file
//
// project_globs use doublestar syntax, so "**" matches any number of
// directories. Globs are expanded each time Targets is called, which lets
// the discovery poller pick up newly created projects.
//
// # Error Handling
//
// Load returns errors for unreadable files, unknown extensions and parse
// failures. A missing file is not an error.
package config
