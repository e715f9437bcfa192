// Package shell renders command paths into shell completion scripts.
package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/NikitaCOEUR/firecomp/pkg/component"
)

// Supported shells
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

var (
	// ErrUnsupportedShell is returned by NewGenerator for unknown shells
	ErrUnsupportedShell = errors.New("unsupported shell")
	// ErrInvalidName is returned for program names a shell cannot bind
	ErrInvalidName = errors.New("invalid program name")
)

var nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Generator renders command paths into completion code for one shell
type Generator interface {
	// Name returns the shell name (bash, zsh, fish)
	Name() string
	// Generate renders the completion script for program over paths
	Generate(program string, paths []component.Path) (string, error)
	// Check reports whether script is syntactically valid for the shell
	Check(script string) error
}

// Option configures a generator
type Option func(*options)

type options struct {
	defaults []string
}

// WithDefaultOptions offers extra tokens, such as --help, at every level
func WithDefaultOptions(opts ...string) Option {
	return func(o *options) {
		o.defaults = append(o.defaults, opts...)
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// BashGenerator generates bash completion functions
type BashGenerator struct {
	opts options
}

// NewBashGenerator creates a bash generator
func NewBashGenerator(opts ...Option) *BashGenerator {
	return &BashGenerator{opts: buildOptions(opts)}
}

// Name returns the shell name for bash
func (b *BashGenerator) Name() string {
	return ShellBash
}

// Generate renders a bash script with one "$start" check per command prefix
func (b *BashGenerator) Generate(program string, paths []component.Path) (string, error) {
	return execute("bash.tmpl", program, paths, b.opts)
}

// Check parses the script as bash
func (b *BashGenerator) Check(script string) error {
	return checkBash(script)
}

// ZshGenerator generates zsh completion through bashcompinit
type ZshGenerator struct {
	opts options
}

// NewZshGenerator creates a zsh generator
func NewZshGenerator(opts ...Option) *ZshGenerator {
	return &ZshGenerator{opts: buildOptions(opts)}
}

// Name returns the shell name for zsh
func (z *ZshGenerator) Name() string {
	return ShellZsh
}

// Generate renders the bash script behind a bashcompinit preamble
func (z *ZshGenerator) Generate(program string, paths []component.Path) (string, error) {
	return execute("zsh.tmpl", program, paths, z.opts)
}

// Check parses the script as bash, which the zsh output is
func (z *ZshGenerator) Check(script string) error {
	return checkBash(script)
}

// FishGenerator generates fish complete directives
type FishGenerator struct {
	opts options
}

// NewFishGenerator creates a fish generator
func NewFishGenerator(opts ...Option) *FishGenerator {
	return &FishGenerator{opts: buildOptions(opts)}
}

// Name returns the shell name for fish
func (f *FishGenerator) Name() string {
	return ShellFish
}

// Generate renders one complete directive per command prefix
func (f *FishGenerator) Generate(program string, paths []component.Path) (string, error) {
	return execute("fish.tmpl", program, paths, f.opts)
}

// Check is a no-op: no fish parser is available
func (f *FishGenerator) Check(_ string) error {
	return nil
}

// NewGenerator returns the generator for shell
func NewGenerator(shell string, opts ...Option) (Generator, error) {
	switch shell {
	case ShellBash:
		return NewBashGenerator(opts...), nil
	case ShellZsh:
		return NewZshGenerator(opts...), nil
	case ShellFish:
		return NewFishGenerator(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShell, shell)
	}
}

// Render renders the bash completion script for program over paths
func Render(program string, paths []component.Path) (string, error) {
	return NewBashGenerator().Generate(program, paths)
}

// group holds the tokens offered right after one command prefix
type group struct {
	Words  []string // program name followed by the prefix
	Start  string   // Words joined by spaces, as bash sees COMP_WORDS
	Tokens []string
}

type scriptData struct {
	Name       string
	Identifier string
	Defaults   []string
	Groups     []group
}

func execute(tmpl, program string, paths []component.Path, opts options) (string, error) {
	if err := validateName(program); err != nil {
		return "", err
	}

	data := scriptData{
		Name:       program,
		Identifier: nonIdentifier.ReplaceAllString(program, "_"),
		Defaults:   opts.defaults,
		Groups:     groupPaths(program, paths, opts.defaults),
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, tmpl, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl, err)
	}
	return b.String(), nil
}

func validateName(program string) error {
	if program == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(program, " \t\r\n'\"`$\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, program)
	}
	return nil
}

// groupPaths groups the last token of every path under its parent prefix,
// in order of first appearance. The top-level group always comes first.
func groupPaths(program string, paths []component.Path, defaults []string) []group {
	root := component.Path{}
	order := []string{root.Key()}
	parents := map[string]component.Path{root.Key(): root}
	tokens := map[string][]string{}
	seen := map[string]map[string]bool{}

	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		parent := p.Parent()
		key := parent.Key()
		if _, ok := parents[key]; !ok {
			parents[key] = parent
			order = append(order, key)
		}
		if seen[key] == nil {
			seen[key] = map[string]bool{}
		}
		if !seen[key][p.Last()] {
			seen[key][p.Last()] = true
			tokens[key] = append(tokens[key], p.Last())
		}
	}

	groups := make([]group, 0, len(order))
	for _, key := range order {
		words := append([]string{program}, parents[key]...)
		groups = append(groups, group{
			Words:  words,
			Start:  strings.Join(words, " "),
			Tokens: append(append([]string{}, tokens[key]...), defaults...),
		})
	}
	return groups
}

// escapeDoubleQuoted escapes s for use inside a double-quoted shell string
func escapeDoubleQuoted(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`").Replace(s)
}

// singleQuote quotes s for sh, closing and reopening around embedded quotes
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// singleQuoteWords quotes each word for sh and joins them with spaces, so
// tokens land in an array without any further expansion
func singleQuoteWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = singleQuote(w)
	}
	return strings.Join(quoted, " ")
}

// fishQuote quotes s as a fish single-quoted string
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

// fishWords quotes each word and joins them with spaces
func fishWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = fishQuote(w)
	}
	return strings.Join(quoted, " ")
}
