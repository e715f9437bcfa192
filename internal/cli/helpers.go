// Package cli implements the firecomp commands. Each command takes a Params
// struct so main only maps flags.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/firecomp/internal/config"
	"github.com/NikitaCOEUR/firecomp/internal/logger"
	"github.com/NikitaCOEUR/firecomp/pkg/completion"
	"github.com/NikitaCOEUR/firecomp/pkg/shell"
)

// ShellAuto asks DetectShell to pick the shell from $SHELL
const ShellAuto = "auto"

// DetectShell resolves "auto" (or an empty value) from $SHELL and returns
// any other value unchanged
func DetectShell(shellFlag string) string {
	if shellFlag != "" && shellFlag != ShellAuto {
		return shellFlag
	}

	base := filepath.Base(os.Getenv("SHELL"))
	switch {
	case strings.Contains(base, "zsh"):
		return shell.ShellZsh
	case strings.Contains(base, "fish"):
		return shell.ShellFish
	default:
		return shell.ShellBash
	}
}

// Overrides holds flag values that win over settings files when set
type Overrides struct {
	Name           string
	Shell          string
	Depth          *int
	Verbose        *bool
	DefaultOptions []string
}

// apply overlays the overrides on s
func (o Overrides) apply(s *config.Settings) {
	if o.Name != "" {
		s.Name = o.Name
	}
	if o.Shell != "" {
		s.Shell = o.Shell
	}
	if o.Depth != nil {
		s.Depth = *o.Depth
	}
	if o.Verbose != nil {
		s.Verbose = *o.Verbose
	}
	if len(o.DefaultOptions) > 0 {
		s.DefaultOptions = o.DefaultOptions
	}
}

// session carries what every document command needs
type session struct {
	log      *logger.Logger
	settings *config.Settings
	document any
	engine   *completion.Engine
}

// openSession loads the settings hierarchy from dir, applies overrides and
// loads the document. docArg, when given, wins over the settings.
func openSession(dir, docArg, logLevel string, stderr io.Writer, o Overrides) (*session, error) {
	log := logger.New(logLevel, stderr)

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	settings, files, err := config.New().LoadHierarchy(dir)
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("files", files).Str("dir", dir).Msg("Loaded settings")

	o.apply(settings)
	if docArg != "" {
		settings.Document = docArg
	}
	if settings.Document == "" {
		return nil, fmt.Errorf("no document given: pass one as argument or set 'document' in .firecomp.yml")
	}
	if settings.Depth < 0 {
		return nil, fmt.Errorf("depth must not be negative, got %d", settings.Depth)
	}
	if settings.Name == "" && settings.Document != "-" {
		settings.Name = strings.TrimSuffix(filepath.Base(settings.Document), filepath.Ext(settings.Document))
	}

	doc, err := config.LoadDocument(settings.Document)
	if err != nil {
		return nil, err
	}

	engine := completion.NewEngine(
		completion.WithDepth(settings.Depth),
		completion.WithLogger(log.Logrus()),
	)

	return &session{log: log, settings: settings, document: doc, engine: engine}, nil
}

func stdoutOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func stderrOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}
