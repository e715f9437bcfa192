// Package status collects and renders what firecomp would do in a directory.
package status

import (
	"fmt"

	"github.com/NikitaCOEUR/firecomp/internal/config"
	"github.com/NikitaCOEUR/firecomp/pkg/completion"
	"github.com/NikitaCOEUR/firecomp/pkg/version"
)

// Collect gathers status information for dir. shell is the already
// detected shell and source tells where it came from.
func Collect(dir, shell, source string) (*Data, error) {
	if dir == "" {
		return nil, fmt.Errorf("failed to collect status: empty directory")
	}

	data := &Data{
		CurrentDir:  dir,
		Version:     version.Version,
		Shell:       shell,
		ShellSource: source,
		ConfigFiles: []string{},
		Settings:    config.NewSettings(),
	}

	settings, files, err := config.New().LoadHierarchy(dir)
	data.ConfigFiles = append(data.ConfigFiles, files...)
	if err != nil {
		data.ConfigError = err
		return data, nil
	}
	data.Settings = settings

	if settings.Document != "" {
		data.Document = collectDocument(settings)
	}

	return data, nil
}

func collectDocument(s *config.Settings) *DocumentInfo {
	info := &DocumentInfo{Path: s.Document}

	format, err := config.FormatOf(s.Document)
	if err != nil {
		info.Err = err
		return info
	}
	info.Format = format

	doc, err := config.LoadDocument(s.Document)
	if err != nil {
		info.Err = err
		return info
	}

	engine := completion.NewEngine(completion.WithDepth(s.Depth))
	info.Commands = engine.Completions(doc, s.Verbose)
	info.Paths = len(engine.Commands(doc))
	return info
}
