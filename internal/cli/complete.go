package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/NikitaCOEUR/firecomp/internal/derrors"
	"github.com/NikitaCOEUR/firecomp/pkg/completion"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Dir       string
	Document  string
	Tokens    []string
	LogLevel  string
	Overrides Overrides
	Out       io.Writer
	Err       io.Writer
}

// Complete prints the candidates of the node reached by Tokens, one per line
func Complete(params CompleteParams) error {
	s, err := openSession(params.Dir, params.Document, params.LogLevel, stderrOr(params.Err), params.Overrides)
	if err != nil {
		return err
	}

	candidates, err := s.engine.CompleteAt(s.document, params.Tokens, s.settings.Verbose)
	if errors.Is(err, completion.ErrNoSuchMember) {
		return derrors.NewNotFoundError(strings.Join(params.Tokens, " "), "nothing to complete", err)
	}
	if err != nil {
		return err
	}

	s.log.Debug().Strs("tokens", params.Tokens).Int("candidates", len(candidates)).Msg("Completed")

	out := stdoutOr(params.Out)
	for _, c := range candidates {
		if _, err := fmt.Fprintln(out, c); err != nil {
			return err
		}
	}
	return nil
}
