package completion

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/firecomp/pkg/component"
	"github.com/NikitaCOEUR/firecomp/pkg/repr"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// candidate is one completion token together with the child it addresses
type candidate struct {
	token       string
	child       any
	traversable bool
}

// Resolver computes the immediate completion candidates of one component
type Resolver struct {
	log logrus.FieldLogger
}

// NewResolver creates a resolver. A nil logger discards output.
func NewResolver(log logrus.FieldLogger) *Resolver {
	if log == nil {
		log = discardLogger()
	}
	return &Resolver{log: log}
}

// Resolve returns the candidates of c with a resolver that does not log
func Resolve(c component.Component, verbose bool) []string {
	return NewResolver(nil).Resolve(c, verbose)
}

// Resolve returns the ordered, duplicate-free completion tokens of c.
// The result is never nil.
func (r *Resolver) Resolve(c component.Component, verbose bool) []string {
	candidates := r.candidates(c, verbose)
	tokens := make([]string, len(candidates))
	for i, cand := range candidates {
		tokens[i] = cand.token
	}
	return tokens
}

func (r *Resolver) candidates(c component.Component, verbose bool) []candidate {
	var all []candidate

	switch c := c.(type) {
	case component.Callable:
		params := c.Params
		if c.Bound && len(params) > 0 {
			params = params[1:]
		}
		for _, p := range params {
			all = append(all, candidate{token: "--" + p.Name})
		}
	case component.Sequence:
		for i, item := range c.Items {
			all = append(all, candidate{token: strconv.Itoa(i), child: item, traversable: true})
		}
	case component.Mapping:
		for i, entry := range c.Entries {
			token := r.keyToken(entry.Key, i)
			if strings.HasPrefix(token, "_") && !verbose {
				continue
			}
			all = append(all, candidate{token: token, child: entry.Value, traversable: true})
		}
	case component.Object:
		for _, m := range c.Members {
			if strings.HasPrefix(m.Name, "_") {
				continue
			}
			all = append(all, candidate{token: m.Name, child: m.Value, traversable: true})
		}
	case component.Class, component.LazyStream, component.Primitive:
		// nothing is safely enumerable
	}

	return lo.UniqBy(all, func(c candidate) string { return c.token })
}

// keyToken renders a mapping key. A key without a canonical text gets a
// placeholder built from its type and position, so it stays unique.
func (r *Resolver) keyToken(key any, index int) string {
	token, err := repr.Key(key)
	if err == nil {
		return token
	}

	placeholder := fmt.Sprintf("<%s#%d>", typeName(key), index)
	r.log.WithError(err).
		WithField("placeholder", placeholder).
		Warn("Mapping key has no canonical text")
	return placeholder
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
