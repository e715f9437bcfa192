package config

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for firecomp settings
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidateWithSchema validates settings content against the JSON Schema.
// The format is taken from path's extension.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	data, err := parser.Unmarshal(content)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Invalid syntax: %v", err))
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	for _, e := range validationResult.Errors() {
		result.addError(e.Field(), e.Description())
	}

	return result, nil
}
