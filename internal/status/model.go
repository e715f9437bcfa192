package status

import (
	"github.com/NikitaCOEUR/firecomp/internal/config"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Shell the script would be generated for
	Shell       string
	ShellSource string // "settings", "flag" or "$SHELL"

	// Configuration
	ConfigFiles []string
	Settings    *config.Settings
	ConfigError error

	// Document
	Document *DocumentInfo
}

// DocumentInfo describes the command document named by the settings
type DocumentInfo struct {
	Path     string
	Format   string
	Commands []string // top-level candidates
	Paths    int      // command paths within the depth cap
	Err      error
}
