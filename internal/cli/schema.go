package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/firecomp/internal/config"
)

// Schema displays or exports the JSON Schema for firecomp settings files
func Schema(outputPath string, out io.Writer) error {
	out = stdoutOr(out)
	schemaJSON := config.GetSchemaJSON()

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, _ = fmt.Fprintf(out, "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	_, err := fmt.Fprintln(out, schemaJSON)
	return err
}
