package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/firecomp/internal/derrors"
	"github.com/knadh/koanf/parsers/toml"
	"gopkg.in/yaml.v3"
)

// Document formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatOf returns the document format implied by path's extension
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported document format: %q", ext)
	}
}

// LoadDocument reads the command document at path. "-" reads YAML or JSON
// from stdin.
func LoadDocument(path string) (any, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, derrors.NewDocumentError(path, "failed to read document", err)
		}
		return ParseDocument(path, FormatYAML, data)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, derrors.NewDocumentError(path, "cannot load document", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewDocumentError(path, "failed to read document", err)
	}
	return ParseDocument(path, format, data)
}

// ParseDocument decodes data. YAML and JSON keep key order in a yaml.Node
// tree; TOML becomes a map and is completed in sorted key order.
func ParseDocument(name, format string, data []byte) (any, error) {
	switch format {
	case FormatYAML, FormatJSON:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, derrors.NewDocumentError(name, "failed to parse document", err)
		}
		return &node, nil
	case FormatTOML:
		m, err := toml.Parser().Unmarshal(data)
		if err != nil {
			return nil, derrors.NewDocumentError(name, "failed to parse document", err)
		}
		return m, nil
	default:
		return nil, derrors.NewDocumentError(name, "cannot load document", fmt.Errorf("unsupported document format: %q", format))
	}
}
