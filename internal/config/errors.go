package config

import (
	"fmt"
	"strings"
)

// ConfigError reports a malformed or incomplete configuration. A load that
// fails with a ConfigError retains no partial state.
type ConfigError struct {
	// File is the configuration file the problem was found in, if known.
	File string
	// Subject names the offending declaration, e.g. `plugin "x"`.
	Subject string
	Msg     string
	Err     error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("config error")
	if e.File != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.File)
	}
	sb.WriteString(": ")
	if e.Subject != "" {
		sb.WriteString(e.Subject)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Errorf builds a ConfigError for subject with a formatted message.
func Errorf(file, subject, format string, args ...any) *ConfigError {
	return &ConfigError{File: file, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// CycleError reports an evaluation-order dependency cycle. Path starts and
// ends with the same subproject.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "evaluation order cycle detected"
	}
	return "evaluation order cycle detected: " + strings.Join(e.Path, " -> ")
}
