package project

import (
	"fmt"
	"strings"
)

// PluginRef is a validated plugin declaration. It is a value type: callers
// get copies and cannot mutate the loader's state.
type PluginRef struct {
	ID             string `json:"id" yaml:"id"`
	Version        string `json:"version" yaml:"version"`
	ApplyByDefault bool   `json:"apply_by_default" yaml:"apply_by_default"`
}

// RepositorySource identifies a package repository. The order of a
// []RepositorySource is lookup priority.
type RepositorySource int

const (
	Google RepositorySource = iota + 1
	MavenCentral
)

// DefaultRepositories is the priority order used when none is declared.
var DefaultRepositories = []RepositorySource{Google, MavenCentral}

func (r RepositorySource) String() string {
	switch r {
	case Google:
		return "google"
	case MavenCentral:
		return "mavenCentral"
	default:
		return fmt.Sprintf("RepositorySource(%d)", int(r))
	}
}

// MarshalText renders the repository by name in YAML and JSON output.
func (r RepositorySource) MarshalText() ([]byte, error) {
	if r != Google && r != MavenCentral {
		return nil, fmt.Errorf("unknown repository source %d", int(r))
	}
	return []byte(r.String()), nil
}

// ParseRepositorySource maps a declared repository name to its source.
// Matching ignores case and the separators people commonly type.
func ParseRepositorySource(name string) (RepositorySource, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(strings.TrimSpace(name)))
	switch normalized {
	case "google":
		return Google, nil
	case "mavencentral":
		return MavenCentral, nil
	default:
		return 0, fmt.Errorf("unknown repository %q (want google or mavenCentral)", name)
	}
}

// SubprojectRef is a subproject and the subprojects that must be evaluated
// before it.
type SubprojectRef struct {
	Name                  string   `json:"name" yaml:"name"`
	DependsOnEvaluationOf []string `json:"depends_on_evaluation_of,omitempty" yaml:"depends_on_evaluation_of,omitempty"`
}

// Resolved is the complete configuration handed to the external build tool.
// It is built once per load and is the only carrier of build-directory state.
type Resolved struct {
	Plugins         []PluginRef        `json:"plugins" yaml:"plugins"`
	Repositories    []RepositorySource `json:"repositories" yaml:"repositories"`
	RootBuildDir    string             `json:"root_build_dir" yaml:"root_build_dir"`
	Subprojects     []SubprojectRef    `json:"subprojects" yaml:"subprojects"`
	BuildDirs       map[string]string  `json:"build_dirs" yaml:"build_dirs"`
	EvaluationOrder []string           `json:"evaluation_order" yaml:"evaluation_order"`
}
