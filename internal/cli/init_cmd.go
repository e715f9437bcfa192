package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/firecomp/internal/derrors"
)

const sampleConfig = `# firecomp settings
# Files named .firecomp.{yml,yaml,toml,json} are merged from / down to the
# current directory; closer files win.

# Program name the completion function is bound to
# name: deploy

# Target shell: auto (from $SHELL), bash, zsh or fish
shell: auto

# Maximum number of tokens in a command path
depth: 3

# Offer mapping keys that start with an underscore
verbose: false

# Tokens offered at every level
# default_options:
#   - --help

# Command document (YAML, JSON or TOML), relative to this file
# document: commands.yml
`

// Init creates a sample .firecomp.yml in dir
func Init(dir string, out io.Writer) error {
	out = stdoutOr(out)

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}
	configPath := filepath.Join(dir, ".firecomp.yml")

	if _, err := os.Stat(configPath); err == nil {
		return derrors.NewConfigurationError(configPath, fmt.Sprintf("config file already exists: %s", configPath), nil)
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	_, _ = fmt.Fprintf(out, "Created sample config: %s\n", configPath)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintln(out, "  1. Set 'name' and 'document'")
	_, _ = fmt.Fprintln(out, "  2. Run 'firecomp validate' to check it")
	_, _ = fmt.Fprintln(out, "  3. Run 'firecomp script > completion.bash' and source the result")

	return nil
}
