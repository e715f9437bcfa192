package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/firecomp/internal/status"
	"github.com/NikitaCOEUR/firecomp/pkg/shell"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	Dir       string
	ShellFlag string
	Out       io.Writer
}

// Status displays what firecomp would generate in the directory
func Status(params StatusParams) error {
	dir := params.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	data, err := status.Collect(dir, shell.ShellBash, "$SHELL")
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	switch {
	case params.ShellFlag != "" && params.ShellFlag != ShellAuto:
		data.Shell, data.ShellSource = params.ShellFlag, "flag"
	case data.Settings.Shell != ShellAuto:
		data.Shell, data.ShellSource = data.Settings.Shell, "settings"
	default:
		data.Shell = DetectShell(ShellAuto)
	}

	_, err = fmt.Fprintln(stdoutOr(params.Out), status.Render(data))
	return err
}
