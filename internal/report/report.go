// Package report serialises a resolved project configuration for the
// external build tool, either to a stream or atomically to a file.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/vk/buildcfg/internal/ctxlog"
	"github.com/vk/buildcfg/internal/project"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" and "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want yaml or json)", s)
	}
}

// Encode writes resolved to w in the given format.
func Encode(w io.Writer, resolved *project.Resolved, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resolved); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resolved); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile replaces path with the encoded configuration. Readers see either
// the old file or the complete new one, never a partial write.
func WriteFile(ctx context.Context, path string, resolved *project.Resolved, format Format) error {
	logger := ctxlog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending output file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug("Cleanup of pending output file failed.", "error", err)
		}
	}()

	if err := Encode(pendingFile, resolved, format); err != nil {
		return err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace output file: %w", err)
	}
	logger.Debug("Resolved configuration written.", "path", path, "format", string(format))
	return nil
}
