// Package completion enumerates the tokens a user can type next for a
// runtime value and assembles them into command trees for shell scripts.
package completion

import (
	"errors"
	"fmt"

	"github.com/NikitaCOEUR/firecomp/pkg/component"
	"github.com/NikitaCOEUR/firecomp/pkg/describe"
	"github.com/NikitaCOEUR/firecomp/pkg/shell"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// ErrNoSuchMember is returned by Lookup when a token addresses nothing
var ErrNoSuchMember = errors.New("no such member")

// Engine ties a describer, a resolver and a builder together so callers can
// work with plain Go values instead of components
type Engine struct {
	describer component.Describer
	resolver  *Resolver
	builder   *Builder
	depth     int
	log       logrus.FieldLogger
}

// Option configures an Engine
type Option func(*Engine)

// WithDescriber replaces the reflection describer
func WithDescriber(d component.Describer) Option {
	return func(e *Engine) {
		e.describer = d
	}
}

// WithDepth sets the depth cap used by Commands and Script
func WithDepth(depth int) Option {
	return func(e *Engine) {
		e.depth = depth
	}
}

// WithLogger sets the logger used for degraded results
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates an engine with DefaultDepth and a describe.Describer
func NewEngine(opts ...Option) *Engine {
	e := &Engine{depth: DefaultDepth}
	for _, opt := range opts {
		opt(e)
	}

	if e.describer == nil {
		e.describer = describe.New()
	}
	if e.log == nil {
		e.log = discardLogger()
	}
	e.resolver = NewResolver(e.log)
	e.builder = NewBuilder(e.describer, e.resolver)
	return e
}

// Depth returns the configured depth cap
func (e *Engine) Depth() int {
	return e.depth
}

// Completions returns the candidates of v
func (e *Engine) Completions(v any, verbose bool) []string {
	return e.resolver.Resolve(e.describer.Describe(v), verbose)
}

// Commands returns every command path reachable from v within the depth cap
func (e *Engine) Commands(v any) []component.Path {
	paths := e.builder.BuildPaths(e.describer.Describe(v), e.depth)
	e.log.WithField("paths", len(paths)).WithField("depth", e.depth).Debug("Built command paths")
	return paths
}

// Lookup follows tokens from v and returns the value they address. Hidden
// mapping keys are reachable. Callable flags address nothing.
func (e *Engine) Lookup(v any, tokens []string) (any, error) {
	current := v
	for i, token := range tokens {
		candidates := e.resolver.candidates(e.describer.Describe(current), true)
		cand, ok := lo.Find(candidates, func(c candidate) bool {
			return c.token == token
		})
		if !ok || !cand.traversable {
			return nil, fmt.Errorf("%w: %q under %q", ErrNoSuchMember, token, component.Path(tokens[:i]).String())
		}
		current = cand.child
	}
	return current, nil
}

// CompleteAt returns the candidates of the value reached by tokens
func (e *Engine) CompleteAt(v any, tokens []string, verbose bool) ([]string, error) {
	target, err := e.Lookup(v, tokens)
	if err != nil {
		return nil, err
	}
	return e.Completions(target, verbose), nil
}

// Script renders a completion script for program name over v.
// A nil generator renders bash.
func (e *Engine) Script(name string, v any, gen shell.Generator) (string, error) {
	if gen == nil {
		gen = shell.NewBashGenerator()
	}
	return gen.Generate(name, e.Commands(v))
}
