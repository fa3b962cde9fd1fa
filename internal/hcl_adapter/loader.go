package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/buildcfg/internal/config"
	"github.com/vk/buildcfg/internal/ctxlog"
	"github.com/vk/buildcfg/internal/fsutil"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file reachable from paths, in sorted order, and
// merges them into one model. Single-valued settings (repositories,
// build_dir, the subprojects block) may be declared by only one file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	if len(paths) == 0 {
		return nil, &config.ConfigError{Msg: "no configuration path given"}
	}

	root, err := configRoot(paths[0])
	if err != nil {
		return nil, err
	}

	hclFiles, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, &config.ConfigError{Msg: "failed to discover configuration files", Err: err}
	}
	if len(hclFiles) == 0 {
		return nil, &config.ConfigError{Msg: fmt.Sprintf("no .hcl configuration files found in %v", paths)}
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{Root: root}
	var repositoriesFrom, buildDirFrom string

	parser := hclparse.NewParser()
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, &config.ConfigError{File: file, Msg: "failed to parse HCL", Err: diags}
		}

		var fr fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &fr); diags.HasErrors() {
			return nil, &config.ConfigError{File: file, Msg: "failed to decode HCL", Err: diags}
		}

		for _, p := range fr.Plugins {
			plugin, err := l.translatePlugin(ctx, file, p)
			if err != nil {
				return nil, err
			}
			model.Plugins = append(model.Plugins, plugin)
		}

		if fr.Repositories != nil {
			if repositoriesFrom != "" {
				return nil, config.Errorf(file, "repositories", "already declared in %s", repositoriesFrom)
			}
			repositoriesFrom = file
			model.Repositories = append([]string{}, (*fr.Repositories)...)
		}

		if fr.BuildDir != nil {
			if buildDirFrom != "" {
				return nil, config.Errorf(file, "build_dir", "already declared in %s", buildDirFrom)
			}
			buildDirFrom = file
			model.BuildDir = *fr.BuildDir
		}

		for _, s := range fr.Subproject {
			model.Subprojects = append(model.Subprojects, l.translateSubproject(file, s))
		}

		if fr.Subprojects != nil {
			if model.Defaults != nil {
				return nil, config.Errorf(file, "subprojects", "block already declared in %s", model.Defaults.File)
			}
			model.Defaults = l.translateDefaults(file, fr.Subprojects)
		}
	}

	logger.Debug("HCL loading complete.",
		"plugins", len(model.Plugins),
		"repositories", len(model.Repositories),
		"subprojects", len(model.Subprojects),
	)
	return model, nil
}

// configRoot returns the absolute directory relative paths in the
// configuration are resolved against.
func configRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &config.ConfigError{Msg: "cannot resolve configuration path", Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &config.ConfigError{Msg: "cannot access configuration path", Err: err}
	}
	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}
