package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/firecomp/internal/derrors"
	"github.com/NikitaCOEUR/firecomp/internal/timing"
	"github.com/NikitaCOEUR/firecomp/internal/trace"
	"github.com/NikitaCOEUR/firecomp/pkg/shell"
)

// ScriptParams contains parameters for the Script command
type ScriptParams struct {
	Dir       string // settings lookup starts here; empty means the working directory
	Document  string
	Output    string // file to write; empty means Out
	NoCheck   bool
	LogLevel  string
	Overrides Overrides
	Out       io.Writer
	Err       io.Writer
}

// Script generates a completion script for the document
func Script(ctx context.Context, params ScriptParams) error {
	timer := timing.NewTimer()

	endLoad := trace.Region(ctx, "load")
	s, err := openSession(params.Dir, params.Document, params.LogLevel, stderrOr(params.Err), params.Overrides)
	endLoad()
	if err != nil {
		return err
	}
	timer.Mark("load")

	shellName := DetectShell(s.settings.Shell)
	gen, err := shell.NewGenerator(shellName, shell.WithDefaultOptions(s.settings.DefaultOptions...))
	if err != nil {
		return derrors.NewValidationError("shell", "cannot generate script", err)
	}

	endGenerate := trace.Region(ctx, "generate")
	script, err := s.engine.Script(s.settings.Name, s.document, gen)
	endGenerate()
	if err != nil {
		return derrors.NewScriptError(shellName, "failed to generate script", err)
	}
	timer.Mark("generate")

	if !params.NoCheck {
		if err := gen.Check(script); err != nil {
			return derrors.NewScriptError(shellName, "generated script is invalid", err)
		}
		timer.Mark("check")
	}

	s.log.Debug().
		Str("shell", shellName).
		Str("name", s.settings.Name).
		Int("depth", s.settings.Depth).
		Dur("elapsed", timer.Elapsed()).
		Str("timing", timer.Summary()).
		Msg("Generated completion script")

	if params.Output != "" {
		if err := os.WriteFile(params.Output, []byte(script), 0644); err != nil {
			return fmt.Errorf("failed to write script to %s: %w", params.Output, err)
		}
		s.log.Info().Str("path", params.Output).Msg("Completion script written")
		return nil
	}

	_, err = io.WriteString(stdoutOr(params.Out), script)
	return err
}
