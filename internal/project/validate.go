package project

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// pluginIDRegex accepts dotted plugin ids such as "com.android.application"
// as well as single-segment core ids such as "java".
var pluginIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)

func validatePluginID(id string) error {
	if id == "" {
		return fmt.Errorf("plugin id must not be empty")
	}
	if !pluginIDRegex.MatchString(id) {
		return fmt.Errorf("plugin id %q is malformed", id)
	}
	return nil
}

// validateVersion accepts semantic versions with an optional "v" prefix,
// including the short "1.9" form and pre-release suffixes.
func validateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version must not be empty")
	}
	canonical := version
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return fmt.Errorf("version %q is malformed", version)
	}
	return nil
}
