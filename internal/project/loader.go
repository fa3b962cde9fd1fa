package project

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/buildcfg/internal/cleaner"
	"github.com/vk/buildcfg/internal/config"
	"github.com/vk/buildcfg/internal/ctxlog"
	"github.com/vk/buildcfg/internal/dag"
	"github.com/vk/buildcfg/internal/layout"
)

// ConfigLoader validates one configuration model and answers the questions
// the build tool asks of it. It is not safe for concurrent use.
type ConfigLoader struct {
	logger       *slog.Logger
	model        *config.Model
	repositories []RepositorySource
	rootBuildDir string
	// subprojects keeps declaration order.
	subprojects []string
	graph       *dag.Graph
}

// New validates the parts of model every operation relies on: repository
// names and subproject declarations. Plugins are validated by LoadPlugins.
func New(ctx context.Context, model *config.Model) (*ConfigLoader, error) {
	logger := ctxlog.FromContext(ctx)

	repositories, err := parseRepositories(model.Repositories)
	if err != nil {
		return nil, err
	}

	rootBuildDir := layout.RootBuildDir(model.Root, model.BuildDir)
	if model.Root != "" && layout.Encloses(rootBuildDir, model.Root) {
		return nil, config.Errorf("", "build_dir",
			"%s contains the configuration root %s; cleaning it would delete the configuration", rootBuildDir, model.Root)
	}

	l := &ConfigLoader{
		logger:       logger,
		model:        model,
		repositories: repositories,
		rootBuildDir: rootBuildDir,
		graph:        dag.New(),
	}

	for _, s := range model.Subprojects {
		subject := fmt.Sprintf("subproject %q", s.Name)
		if err := layout.ValidateSubprojectName(s.Name); err != nil {
			return nil, &config.ConfigError{File: s.File, Subject: subject, Msg: "invalid name", Err: err}
		}
		if l.graph.HasNode(s.Name) {
			return nil, config.Errorf(s.File, subject, "declared more than once")
		}
		l.graph.AddNode(s.Name)
		l.subprojects = append(l.subprojects, s.Name)
	}

	logger.Debug("Config loader initialised.",
		"subprojects", len(l.subprojects),
		"repositories", len(l.repositories),
		"root_build_dir", l.rootBuildDir,
	)
	return l, nil
}

// parseRepositories maps declared names to sources, dropping repeats so each
// source appears once at its first position.
func parseRepositories(names []string) ([]RepositorySource, error) {
	if names == nil {
		return slices.Clone(DefaultRepositories), nil
	}
	out := make([]RepositorySource, 0, len(names))
	for _, name := range names {
		src, err := ParseRepositorySource(name)
		if err != nil {
			return nil, &config.ConfigError{Subject: "repositories", Msg: "invalid repository", Err: err}
		}
		if !slices.Contains(out, src) {
			out = append(out, src)
		}
	}
	return out, nil
}

// LoadPlugins returns the declared plugins in declaration order. It fails
// with a *config.ConfigError on a missing or malformed version, a malformed
// id or a duplicate id, and then returns no plugins at all.
func (l *ConfigLoader) LoadPlugins() ([]PluginRef, error) {
	plugins := make([]PluginRef, 0, len(l.model.Plugins))
	seen := make(map[string]string, len(l.model.Plugins))

	for _, p := range l.model.Plugins {
		subject := fmt.Sprintf("plugin %q", p.ID)
		if err := validatePluginID(p.ID); err != nil {
			return nil, &config.ConfigError{File: p.File, Subject: subject, Msg: "invalid id", Err: err}
		}
		if other, ok := seen[p.ID]; ok {
			return nil, config.Errorf(p.File, subject, "already declared in %s", other)
		}
		seen[p.ID] = p.File

		if !p.VersionSet {
			return nil, config.Errorf(p.File, subject, "version is required")
		}
		if err := validateVersion(p.Version); err != nil {
			return nil, &config.ConfigError{File: p.File, Subject: subject, Msg: "invalid version", Err: err}
		}

		plugins = append(plugins, PluginRef{ID: p.ID, Version: p.Version, ApplyByDefault: p.Apply})
	}

	l.logger.Debug("Plugins loaded.", "count", len(plugins))
	return plugins, nil
}

// ResolveRepositories returns the repositories in lookup priority order,
// without duplicates. The result is a fresh copy on every call.
func (l *ConfigLoader) ResolveRepositories() []RepositorySource {
	return slices.Clone(l.repositories)
}

// RootBuildDir returns the redirected root build directory.
func (l *ConfigLoader) RootBuildDir() string {
	return l.rootBuildDir
}

// ComputeBuildDir returns the build directory for subprojectName under base.
func (l *ConfigLoader) ComputeBuildDir(base, subprojectName string) string {
	return layout.ComputeBuildDir(base, subprojectName)
}

// RegisterCleanAction returns the action that deletes targetDir when run.
func (l *ConfigLoader) RegisterCleanAction(targetDir string, opts ...cleaner.Option) *cleaner.Action {
	l.logger.Debug("Clean action registered.", "target", targetDir)
	return cleaner.New(targetDir, opts...)
}

// SetEvaluationOrder records that dependent must be configured after
// dependency. Names may carry a leading ':' project-path prefix. A
// *config.CycleError is returned, and nothing recorded, if the edge would
// close a cycle.
func (l *ConfigLoader) SetEvaluationOrder(dependent, dependency string) error {
	dependent = layout.NormalizeSubprojectName(dependent)
	dependency = layout.NormalizeSubprojectName(dependency)

	for _, name := range []string{dependent, dependency} {
		if !l.graph.HasNode(name) {
			return config.Errorf("", fmt.Sprintf("subproject %q", name), "is not declared")
		}
	}

	if err := l.graph.AddEdge(dependency, dependent); err != nil {
		return err
	}
	l.logger.Debug("Evaluation order recorded.", "dependent", dependent, "dependency", dependency)
	return nil
}

// Resolve validates everything and assembles the configuration for the
// build tool.
func (l *ConfigLoader) Resolve(ctx context.Context) (*Resolved, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving project configuration.")

	plugins, err := l.LoadPlugins()
	if err != nil {
		return nil, err
	}

	if err := l.applyDeclaredOrder(); err != nil {
		return nil, err
	}

	order, err := l.graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	dirs, err := layout.SubprojectDirs(l.rootBuildDir, l.subprojects)
	if err != nil {
		return nil, &config.ConfigError{Subject: "build_dir", Msg: "cannot lay out subproject directories", Err: err}
	}

	refs := make([]SubprojectRef, 0, len(l.subprojects))
	for _, name := range l.subprojects {
		deps, err := l.graph.Dependencies(name)
		if err != nil {
			return nil, err
		}
		ref := SubprojectRef{Name: name}
		if len(deps) > 0 {
			ref.DependsOnEvaluationOf = deps
		}
		refs = append(refs, ref)
	}

	logger.Info("Project configuration resolved.",
		"plugins", len(plugins),
		"subprojects", len(refs),
		"root_build_dir", l.rootBuildDir,
	)
	return &Resolved{
		Plugins:         plugins,
		Repositories:    l.ResolveRepositories(),
		RootBuildDir:    l.rootBuildDir,
		Subprojects:     refs,
		BuildDirs:       dirs,
		EvaluationOrder: order,
	}, nil
}

// applyDeclaredOrder records the evaluation edges from the model: first the
// shared subprojects defaults, then each subproject's own list. A subproject
// never inherits a default edge onto itself.
func (l *ConfigLoader) applyDeclaredOrder() error {
	if d := l.model.Defaults; d != nil {
		for _, name := range l.subprojects {
			for _, dep := range d.EvaluationDependsOn {
				if layout.NormalizeSubprojectName(dep) == name {
					continue
				}
				if err := l.setDeclared(d.File, name, dep); err != nil {
					return err
				}
			}
		}
	}

	for _, s := range l.model.Subprojects {
		for _, dep := range s.EvaluationDependsOn {
			if err := l.setDeclared(s.File, s.Name, dep); err != nil {
				return err
			}
		}
	}
	return nil
}

// setDeclared is SetEvaluationOrder with the declaring file attached to any
// configuration error.
func (l *ConfigLoader) setDeclared(file, dependent, dependency string) error {
	err := l.SetEvaluationOrder(dependent, dependency)
	if cfgErr, ok := err.(*config.ConfigError); ok && cfgErr.File == "" {
		cfgErr.File = file
	}
	return err
}
