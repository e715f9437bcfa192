package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/firecomp/internal/config"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Path string // settings file; empty means the one in Dir
	Dir  string
	Out  io.Writer
}

// Validate validates a firecomp settings file
func Validate(params ValidateParams) error {
	out := stdoutOr(params.Out)
	configPath := params.Path

	// If no path provided, look for settings in the directory
	if configPath == "" {
		dir := params.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			dir = wd
		}

		files, err := config.FindConfigFiles(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 || !config.HasLocalConfig(dir) {
			return fmt.Errorf("no config file found in %s", dir)
		}
		configPath = files[len(files)-1]
	}

	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, "✅ Configuration is valid!")
		return nil
	}

	_, _ = fmt.Fprintln(out, "❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
