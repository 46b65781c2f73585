package homepage

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// templateVar matches Homepage template variables ({{HOMEPAGE_VAR_...}}).
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// ParseServices parses the content of a services.yaml file.
func ParseServices(data []byte) (ServicesConfig, error) {
	return parse[ServicesConfig](data, "services")
}

// ParseBookmarks parses the content of a bookmarks.yaml file.
func ParseBookmarks(data []byte) (BookmarksConfig, error) {
	return parse[BookmarksConfig](data, "bookmarks")
}

func parse[T any](data []byte, kind string) (T, error) {
	// Template variables are resolved by Homepage at runtime and
	// have no meaning for navdir.
	data = stripTemplateVariables(data)

	var config T
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s yaml: %w", kind, err)
	}
	return config, nil
}

// stripTemplateVariables replaces Homepage template variables with an empty string.
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
