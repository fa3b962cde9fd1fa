// This file translates decoded HCL schema structs into the format-agnostic
// configuration model.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/vk/buildcfg/internal/config"
	"github.com/vk/buildcfg/internal/ctxlog"
)

// translatePlugin converts a plugin block into the agnostic model. Absent
// versions are kept as such; validating them is the project layer's job.
func (l *Loader) translatePlugin(ctx context.Context, file string, p *PluginBlock) (*config.Plugin, error) {
	logger := ctxlog.FromContext(ctx).With("plugin", p.ID)
	ctx = ctxlog.WithLogger(ctx, logger)

	version, set, err := stringExprValue(ctx, p.Version, "version")
	if err != nil {
		return nil, &config.ConfigError{
			File:    file,
			Subject: fmt.Sprintf("plugin %q", p.ID),
			Msg:     "invalid version",
			Err:     err,
		}
	}

	apply := true
	if p.Apply != nil {
		apply = *p.Apply
	}
	logger.Debug("Translated plugin block.", "version", version, "version_set", set, "apply", apply)

	return &config.Plugin{
		ID:         p.ID,
		Version:    version,
		VersionSet: set,
		Apply:      apply,
		File:       file,
	}, nil
}

func (l *Loader) translateSubproject(file string, s *SubprojectBlock) *config.Subproject {
	return &config.Subproject{
		Name:                s.Name,
		EvaluationDependsOn: s.EvaluationDependsOn,
		File:                file,
	}
}

func (l *Loader) translateDefaults(file string, s *SubprojectsBlock) *config.SubprojectDefaults {
	return &config.SubprojectDefaults{
		EvaluationDependsOn: s.EvaluationDependsOn,
		File:                file,
	}
}
