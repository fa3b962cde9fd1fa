// Package layout derives build output directories. Everything here is pure:
// no filesystem access, no state.
package layout

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultBuildDir is used when a configuration does not redirect the build
// directory.
const DefaultBuildDir = "build"

// ComputeBuildDir returns the build directory of subproject name under base.
// The result depends only on its arguments, and distinct valid names (see
// ValidateSubprojectName) under the same base never map to the same path.
func ComputeBuildDir(base, name string) string {
	return filepath.Join(base, name)
}

// RootBuildDir resolves the root build directory declared as buildDir
// against the configuration root. Absolute declarations are only cleaned.
func RootBuildDir(root, buildDir string) string {
	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	if filepath.IsAbs(buildDir) {
		return filepath.Clean(buildDir)
	}
	return filepath.Join(root, buildDir)
}

// Encloses reports whether path is dir itself or lies somewhere below it.
// Relative and absolute paths never enclose each other.
func Encloses(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ValidateSubprojectName checks that name is usable as one path element, so
// that ComputeBuildDir cannot escape base or collide with a sibling.
func ValidateSubprojectName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("subproject name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("subproject name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("subproject name %q must not contain path separators", name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("subproject name %q must not have surrounding whitespace", name)
	}
	return nil
}

// NormalizeSubprojectName turns a project path such as ":app" into the plain
// subproject name "app".
func NormalizeSubprojectName(ref string) string {
	return strings.TrimPrefix(ref, ":")
}

// SubprojectDirs maps every name to its build directory under base. It fails
// on an invalid name or when two names resolve to the same directory.
func SubprojectDirs(base string, names []string) (map[string]string, error) {
	dirs := make(map[string]string, len(names))
	owners := make(map[string]string, len(names))
	for _, name := range names {
		if err := ValidateSubprojectName(name); err != nil {
			return nil, err
		}
		dir := ComputeBuildDir(base, name)
		if other, ok := owners[dir]; ok && other != name {
			return nil, fmt.Errorf("subprojects %q and %q share build directory %s", other, name, dir)
		}
		owners[dir] = name
		dirs[name] = dir
	}
	return dirs, nil
}
