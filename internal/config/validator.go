package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// Shells accepted by the shell setting
var knownShells = []string{"auto", "bash", "zsh", "fish"}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of settings validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate validates a settings file: schema first, then checks the schema
// cannot express
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	s, err := New().Load(path)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	for _, e := range Check(s) {
		result.addError(e.Field, e.Message)
	}

	return result, nil
}

// Check validates loaded settings
func Check(s *Settings) []ValidationError {
	var errs []ValidationError

	if s.Depth < 0 {
		errs = append(errs, ValidationError{
			Field:   "depth",
			Message: fmt.Sprintf("Depth must not be negative, got %d", s.Depth),
		})
	}

	if !slices.Contains(knownShells, s.Shell) {
		errs = append(errs, ValidationError{
			Field:   "shell",
			Message: fmt.Sprintf("Unknown shell %q, expected one of %s", s.Shell, strings.Join(knownShells, ", ")),
		})
	}

	if strings.ContainsAny(s.Name, " \t\r\n'\"`$\\") {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Program name %q cannot be bound by a shell", s.Name),
		})
	}

	for i, opt := range s.DefaultOptions {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("default_options/%d", i),
				Message: "Default option is empty",
			})
		}
	}

	if s.Document != "" {
		if _, err := os.Stat(s.Document); err != nil {
			errs = append(errs, ValidationError{
				Field:   "document",
				Message: fmt.Sprintf("Document not found: %s", s.Document),
			})
		}
	}

	return errs
}
