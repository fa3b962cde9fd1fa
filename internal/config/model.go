package config

// Model is the merged, format-agnostic representation of a project build
// configuration.
type Model struct {
	// Root is the directory relative build paths are resolved against. It is
	// the directory holding the configuration (or the config file's directory).
	Root string

	Plugins []*Plugin

	// Repositories holds the repository names in declaration order. Nil means
	// the configuration did not declare any.
	Repositories []string

	// BuildDir is the redirected root build directory as written. Empty means
	// not declared.
	BuildDir string

	Subprojects []*Subproject

	// Defaults applies to every subproject, mirroring an "all subprojects" block.
	Defaults *SubprojectDefaults
}

// Plugin is one declared build plugin.
type Plugin struct {
	ID string
	// Version is the raw version string. VersionSet is false when the
	// attribute was omitted entirely.
	Version    string
	VersionSet bool
	Apply      bool
	File       string
}

// Subproject is one declared subproject and the subprojects whose
// configuration must be evaluated before it.
type Subproject struct {
	Name                string
	EvaluationDependsOn []string
	File                string
}

// SubprojectDefaults carries settings shared by all subprojects.
type SubprojectDefaults struct {
	EvaluationDependsOn []string
	File                string
}
