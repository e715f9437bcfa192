package completion

import (
	"github.com/NikitaCOEUR/firecomp/pkg/component"
)

// DefaultDepth is the depth cap used for script generation unless overridden
const DefaultDepth = 3

// Builder walks a component tree and collects every reachable command path
type Builder struct {
	describer component.Describer
	resolver  *Resolver
}

// NewBuilder creates a builder that describes children with d
func NewBuilder(d component.Describer, r *Resolver) *Builder {
	if r == nil {
		r = NewResolver(nil)
	}
	return &Builder{describer: d, resolver: r}
}

// BuildPaths collects command paths with a non-logging resolver
func BuildPaths(root component.Component, d component.Describer, depthCap int) []component.Path {
	return NewBuilder(d, nil).BuildPaths(root, depthCap)
}

// BuildPaths walks root depth first. A node at depth d reports its
// candidates as paths of length d+1 and descends into a child only while
// d+1 < depthCap, so paths never exceed depthCap tokens and self-referencing
// values terminate. Candidates are resolved non-verbose.
func (b *Builder) BuildPaths(root component.Component, depthCap int) []component.Path {
	paths := []component.Path{}
	b.walk(root, nil, depthCap, &paths)
	return paths
}

func (b *Builder) walk(c component.Component, prefix component.Path, depthCap int, paths *[]component.Path) {
	depth := len(prefix)
	if depth >= depthCap {
		return
	}

	for _, cand := range b.resolver.candidates(c, false) {
		path := prefix.Child(cand.token)
		*paths = append(*paths, path)

		// the cap is checked before describing so nothing below it is touched
		if !cand.traversable || depth+1 >= depthCap {
			continue
		}
		b.walk(b.describer.Describe(cand.child), path, depthCap, paths)
	}
}
