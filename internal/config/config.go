// Package config handles loading of firecomp settings files and the command
// documents scripts are generated from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames contains supported settings file names (in order of preference)
var SupportedConfigNames = []string{
	".firecomp.yml",
	".firecomp.yaml",
	".firecomp.toml",
	".firecomp.json",
}

// Defaults applied before any settings file is read
const (
	DefaultShell = "auto"
	DefaultDepth = 3
)

// Settings represents the merged firecomp settings
type Settings struct {
	Name           string   `koanf:"name"`
	Shell          string   `koanf:"shell"`
	Depth          int      `koanf:"depth"`
	Verbose        bool     `koanf:"verbose"`
	DefaultOptions []string `koanf:"default_options"`
	// Document is absolute once loaded, resolved against the declaring file
	Document string `koanf:"document"`
}

// NewSettings returns settings holding the defaults
func NewSettings() *Settings {
	return &Settings{
		Shell: DefaultShell,
		Depth: DefaultDepth,
	}
}

// HasLocalConfig checks if a directory has a settings file
func HasLocalConfig(dir string) bool {
	_, ok := localConfig(dir)
	return ok
}

func localConfig(dir string) (string, bool) {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Loader handles loading and parsing settings files
type Loader struct {
	// Parsed files keyed by path, so a hierarchy reads each file once
	cache map[string]*koanf.Koanf
}

// New creates a new settings loader
func New() *Loader {
	return &Loader{cache: make(map[string]*koanf.Koanf)}
}

// parserFor picks the koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// read parses one settings file into its own koanf instance
func (l *Loader) read(path string) (*koanf.Koanf, error) {
	if k, ok := l.cache[path]; ok {
		return k, nil
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if doc := k.String("document"); doc != "" && !filepath.IsAbs(doc) {
		if err := k.Set("document", filepath.Join(filepath.Dir(path), doc)); err != nil {
			return nil, fmt.Errorf("failed to resolve document path: %w", err)
		}
	}

	l.cache[path] = k
	return k, nil
}

// Load reads a single settings file on top of the defaults
func (l *Loader) Load(path string) (*Settings, error) {
	k, err := l.read(path)
	if err != nil {
		return nil, err
	}

	s := NewSettings()
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return s, nil
}

// FindConfigFiles searches for settings files from startDir up to root.
// Returns paths in order from root to leaf (for proper merging).
func FindConfigFiles(startDir string) ([]string, error) {
	var configs []string
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		if path, ok := localConfig(currentDir); ok {
			configs = append(configs, path)
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	for i, j := 0, len(configs)-1; i < j; i, j = i+1, j-1 {
		configs[i], configs[j] = configs[j], configs[i]
	}

	return configs, nil
}

// LoadHierarchy merges every settings file from root down to dir. Files
// closer to dir win key by key. It returns the merged settings and the files
// that contributed, root first.
func (l *Loader) LoadHierarchy(dir string) (*Settings, []string, error) {
	files, err := FindConfigFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	merged := koanf.New(".")
	for _, path := range files {
		k, err := l.read(path)
		if err != nil {
			return nil, files, err
		}
		if err := merged.Merge(k); err != nil {
			return nil, files, fmt.Errorf("failed to merge %s: %w", path, err)
		}
	}

	s := NewSettings()
	if err := merged.Unmarshal("", s); err != nil {
		return nil, files, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return s, files, nil
}
