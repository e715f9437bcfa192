package shell

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// checkBash parses script with the bash dialect of mvdan.cc/sh
func checkBash(script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(script), "completion.bash"); err != nil {
		return fmt.Errorf("generated script does not parse: %w", err)
	}
	return nil
}
