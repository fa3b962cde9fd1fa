// Package cleaner implements the "clean" action: recursive removal of a
// build output tree.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vk/buildcfg/internal/ctxlog"
)

// Error reports a filesystem failure while cleaning Target.
type Error struct {
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clean %s: %v", e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Action deletes one directory tree when run. It is safe to run repeatedly:
// a target that no longer exists is treated as already clean.
type Action struct {
	target string
	remove func(string) error
}

// Option configures an Action.
type Option func(*Action)

// WithRemoveFunc replaces os.RemoveAll as the function that deletes the tree.
func WithRemoveFunc(remove func(string) error) Option {
	return func(a *Action) {
		a.remove = remove
	}
}

// New registers a clean action for targetDir. Nothing is deleted until Run.
func New(targetDir string, opts ...Option) *Action {
	a := &Action{target: targetDir, remove: os.RemoveAll}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Target returns the directory the action deletes.
func (a *Action) Target() string {
	return a.target
}

// Run deletes the target tree.
func (a *Action) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("target", a.target)

	if err := checkTarget(a.target); err != nil {
		return &Error{Target: a.target, Err: err}
	}

	if _, err := os.Lstat(a.target); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("Clean target does not exist, nothing to do.")
		return nil
	}

	logger.Info("🧹 Removing build directory")
	if err := a.remove(a.target); err != nil {
		return &Error{Target: a.target, Err: err}
	}
	logger.Debug("Build directory removed.")
	return nil
}

// checkTarget refuses targets whose removal is never what a build meant.
func checkTarget(target string) error {
	if target == "" {
		return errors.New("refusing to clean an empty path")
	}
	cleaned := filepath.Clean(target)
	if cleaned == "." {
		return errors.New("refusing to clean the working directory")
	}
	if cleaned == filepath.VolumeName(cleaned)+string(filepath.Separator) {
		return errors.New("refusing to clean a filesystem root")
	}
	return nil
}
