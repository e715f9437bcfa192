package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/firecomp/internal/status"
)

// TreeParams contains parameters for the Tree command
type TreeParams struct {
	Dir       string
	Document  string
	LogLevel  string
	Overrides Overrides
	Out       io.Writer
	Err       io.Writer
}

// Tree prints the command paths a script would complete, as a tree
func Tree(params TreeParams) error {
	s, err := openSession(params.Dir, params.Document, params.LogLevel, stderrOr(params.Err), params.Overrides)
	if err != nil {
		return err
	}

	paths := s.engine.Commands(s.document)
	_, err = fmt.Fprintln(stdoutOr(params.Out), status.RenderTree(s.settings.Name, paths))
	return err
}
