package cleaner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/buildcfg/internal/ctxlog"
)

func TestRun_RemovesTree(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	target := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "app", "intermediates"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "app", "out.apk"), []byte("apk"), 0o600))

	a := New(target)
	assert.Equal(t, target, a.Target())
	require.NoError(t, a.Run(ctx))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Idempotent(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	target := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(target, 0o755))

	a := New(target)
	require.NoError(t, a.Run(ctx))
	assert.NoError(t, a.Run(ctx), "second clean must not fail")
}

func TestRun_MissingTargetIsNotAnError(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	assert.NoError(t, New(filepath.Join(t.TempDir(), "never-built")).Run(ctx))
}

func TestRun_RefusesDangerousTargets(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	for _, target := range []string{"", ".", string(filepath.Separator)} {
		err := New(target).Run(ctx)
		var cleanErr *Error
		require.True(t, errors.As(err, &cleanErr), "target %q", target)
		assert.Contains(t, cleanErr.Error(), "refusing")
	}
}

func TestRun_ReportsFilesystemFailure(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	target := t.TempDir()
	boom := errors.New("permission denied")

	a := New(target, WithRemoveFunc(func(string) error { return boom }))

	err := a.Run(ctx)
	var cleanErr *Error
	require.True(t, errors.As(err, &cleanErr))
	assert.Equal(t, target, cleanErr.Target)
	assert.ErrorIs(t, err, boom)
}
