package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/buildcfg/internal/ctxlog"
	"github.com/vk/buildcfg/internal/project"
	"github.com/vk/buildcfg/internal/report"
)

// Run loads and resolves the configuration, runs the clean action when
// requested, and emits the result. Load, validation and cycle errors abort
// the run; a failed clean is logged and does not.
func (a *App) Run(ctx context.Context) (*project.Resolved, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "config_path", a.config.ConfigPath)

	model, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	loader, err := project.New(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	resolved, err := loader.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	if a.config.Clean {
		action := loader.RegisterCleanAction(resolved.RootBuildDir, a.cleanOpts...)
		if err := action.Run(ctx); err != nil {
			a.logger.Error("Clean failed; the resolved configuration is still valid.", "error", err)
		} else {
			a.logger.Info("🧹 Clean finished.", "target", action.Target())
		}
	}

	if err := a.emit(ctx, resolved); err != nil {
		return nil, err
	}

	a.logger.Debug("App.Run method finished.")
	return resolved, nil
}

func (a *App) emit(ctx context.Context, resolved *project.Resolved) error {
	if a.config.OutputPath != "" {
		// The output may live under a build directory the clean step just removed.
		if err := os.MkdirAll(filepath.Dir(a.config.OutputPath), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := report.WriteFile(ctx, a.config.OutputPath, resolved, a.config.Format); err != nil {
			return fmt.Errorf("failed to write resolved configuration: %w", err)
		}
		a.logger.Info("Resolved configuration written.", "path", a.config.OutputPath)
		return nil
	}
	if err := report.Encode(a.outW, resolved, a.config.Format); err != nil {
		return fmt.Errorf("failed to write resolved configuration: %w", err)
	}
	return nil
}
