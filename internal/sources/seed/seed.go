// Package seed reads directory files: the optional seed that replaces the
// built-in default directory, and the files imported by the CLI.
//
// JSON files may carry comments and trailing commas. YAML files are
// converted to JSON with their key order intact so that category order
// survives. Homepage services.yaml and bookmarks.yaml are mapped through
// the homepage source.
package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/MrSnakeDoc/navdir/internal/domain"
	"github.com/MrSnakeDoc/navdir/internal/sources/homepage"
)

// Format names a directory file format.
type Format string

const (
	FormatAuto              Format = ""
	FormatJSON              Format = "json"
	FormatYAML              Format = "yaml"
	FormatHomepageServices  Format = "homepage-services"
	FormatHomepageBookmarks Format = "homepage-bookmarks"
)

// Formats lists the accepted explicit formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatHomepageServices, FormatHomepageBookmarks}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown file format")

// ParseFormat validates a user supplied format name. An empty name means
// detection by file extension.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == FormatAuto {
		return f, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// DetectFormat guesses the format from the file extension. Homepage files
// are only recognized by their conventional names.
func DetectFormat(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch base {
	case "services.yaml", "services.yml":
		return FormatHomepageServices
	case "bookmarks.yaml", "bookmarks.yml":
		return FormatHomepageBookmarks
	}
	switch filepath.Ext(base) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadFile reads and decodes a directory file. FormatAuto detects the
// format from path.
func ReadFile(path string, format Format) (domain.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("read %s: %w", path, err)
	}
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	payload, err := Parse(data, format)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("parse %s as %s: %w", path, format, err)
	}
	return payload, nil
}

// Parse decodes data in the given format. FormatAuto is treated as JSON.
func Parse(data []byte, format Format) (domain.Payload, error) {
	switch format {
	case FormatAuto, FormatJSON:
		return domain.Decode(jsonc.ToJSON(data))
	case FormatYAML:
		js, err := yamlToJSON(data)
		if err != nil {
			return domain.Payload{}, err
		}
		return domain.Decode(js)
	case FormatHomepageServices:
		config, err := homepage.ParseServices(data)
		if err != nil {
			return domain.Payload{}, err
		}
		patch, err := homepage.NewMapper().MapServices(config)
		if err != nil {
			return domain.Payload{}, err
		}
		return domain.PartialDirectory(patch), nil
	case FormatHomepageBookmarks:
		config, err := homepage.ParseBookmarks(data)
		if err != nil {
			return domain.Payload{}, err
		}
		patch, err := homepage.NewMapper().MapBookmarks(config)
		if err != nil {
			return domain.Payload{}, err
		}
		return domain.PartialDirectory(patch), nil
	default:
		return domain.Payload{}, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// LoadDefaults reads a seed file into a complete directory. Members the seed
// does not carry are empty, not taken from the built-in default.
func LoadDefaults(path string) (domain.Directory, error) {
	payload, err := ReadFile(path, FormatAuto)
	if err != nil {
		return domain.Directory{}, err
	}
	empty := domain.Directory{Links: []domain.Link{}, Categories: domain.Categories{}}
	return domain.Merge(empty, payload), nil
}
