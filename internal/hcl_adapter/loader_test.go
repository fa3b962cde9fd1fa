package hcl_adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/buildcfg/internal/config"
	"github.com/vk/buildcfg/internal/ctxlog"
)

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	mainFile := writeHCL(t, dir, "build.hcl", `
		plugin "com.google.gms.google-services" {
			version = "4.4.2"
			apply   = false
		}

		repositories = ["google", "mavenCentral"]
		build_dir    = "../../build"

		subprojects {
			evaluation_depends_on = [":app"]
		}
	`)
	modulesFile := writeHCL(t, dir, "modules/subprojects.hcl", `
		subproject "app" {}
		subproject "feature" {
			evaluation_depends_on = ["core"]
		}
		plugin "org.jetbrains.kotlin.android" {
			version = "1.9.22"
		}
	`)

	// --- Act ---
	model, err := NewLoader().Load(ctxlog.Discard(context.Background()), dir)

	// --- Assert ---
	require.NoError(t, err)
	want := &config.Model{
		Root: dir,
		Plugins: []*config.Plugin{
			{ID: "com.google.gms.google-services", Version: "4.4.2", VersionSet: true, Apply: false, File: mainFile},
			{ID: "org.jetbrains.kotlin.android", Version: "1.9.22", VersionSet: true, Apply: true, File: modulesFile},
		},
		Repositories: []string{"google", "mavenCentral"},
		BuildDir:     "../../build",
		Subprojects: []*config.Subproject{
			{Name: "app", File: modulesFile},
			{Name: "feature", EvaluationDependsOn: []string{"core"}, File: modulesFile},
		},
		Defaults: &config.SubprojectDefaults{EvaluationDependsOn: []string{":app"}, File: mainFile},
	}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load_SingleFileRootIsItsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := writeHCL(t, dir, "build.hcl", `subproject "app" {}`)

	model, err := NewLoader().Load(ctxlog.Discard(context.Background()), file)
	require.NoError(t, err)
	assert.Equal(t, dir, model.Root)
	assert.Nil(t, model.Repositories, "undeclared repositories must stay nil")
	assert.Empty(t, model.BuildDir)
}

func TestLoader_Load_MissingVersionIsRecordedNotRejected(t *testing.T) {
	dir := t.TempDir()
	writeHCL(t, dir, "build.hcl", `plugin "com.example.tool" {}`)

	model, err := NewLoader().Load(ctxlog.Discard(context.Background()), dir)
	require.NoError(t, err)
	require.Len(t, model.Plugins, 1)
	assert.False(t, model.Plugins[0].VersionSet)
	assert.Empty(t, model.Plugins[0].Version)
}

func TestLoader_Load_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantMsg string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"build.hcl": `plugin "x" {`},
			wantMsg: "failed to parse HCL",
		},
		{
			name:    "unknown attribute",
			files:   map[string]string{"build.hcl": `compile_sdk = 34`},
			wantMsg: "failed to decode HCL",
		},
		{
			name:    "numeric version",
			files:   map[string]string{"build.hcl": `plugin "com.example" { version = 4 }`},
			wantMsg: "invalid version",
		},
		{
			name:    "version referencing a variable",
			files:   map[string]string{"build.hcl": `plugin "com.example" { version = kotlin_version }`},
			wantMsg: "invalid version",
		},
		{
			name: "repositories declared twice",
			files: map[string]string{
				"a.hcl": `repositories = ["google"]`,
				"b.hcl": `repositories = ["mavenCentral"]`,
			},
			wantMsg: "already declared",
		},
		{
			name: "build_dir declared twice",
			files: map[string]string{
				"a.hcl": `build_dir = "out"`,
				"b.hcl": `build_dir = "build"`,
			},
			wantMsg: "already declared",
		},
		{
			name: "subprojects block declared twice",
			files: map[string]string{
				"a.hcl": `subprojects {}`,
				"b.hcl": `subprojects {}`,
			},
			wantMsg: "block already declared",
		},
		{
			name:    "no configuration files",
			files:   map[string]string{"README.md": "# nothing"},
			wantMsg: "no .hcl configuration files found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeHCL(t, dir, name, content)
			}

			model, err := NewLoader().Load(ctxlog.Discard(context.Background()), dir)
			assert.Nil(t, model, "a failed load must not return partial state")
			var cfgErr *config.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %v", err)
			assert.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestLoader_Load_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(ctxlog.Discard(context.Background()), filepath.Join(t.TempDir(), "absent"))
	var cfgErr *config.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	_, err = NewLoader().Load(ctxlog.Discard(context.Background()))
	assert.ErrorContains(t, err, "no configuration path given")
}
