// Package component defines the closed set of value kinds the completion
// engine knows how to enumerate.
package component

import "strings"

// Kind identifies which variant of Component a value was classified as
type Kind uint8

// Component kinds
const (
	KindPrimitive Kind = iota
	KindCallable
	KindSequence
	KindMapping
	KindObject
	KindClass
	KindLazyStream
)

var kindNames = [...]string{
	KindPrimitive:  "primitive",
	KindCallable:   "callable",
	KindSequence:   "sequence",
	KindMapping:    "mapping",
	KindObject:     "object",
	KindClass:      "class",
	KindLazyStream: "lazy-stream",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Component is a classified runtime value. The set of implementations is
// closed: Callable, Sequence, Mapping, Object, Class, LazyStream and Primitive.
type Component interface {
	Kind() Kind
	component()
}

// Param describes one declared parameter of a callable
type Param struct {
	Name       string
	HasDefault bool
	Variadic   bool
}

// Callable is a function or method. When Bound is true the first parameter
// is the implicit receiver.
type Callable struct {
	Params []Param
	Bound  bool
}

// Sequence is an ordered, indexable collection. Items are raw, undescribed values.
type Sequence struct {
	Items []any
}

// Len returns the number of elements
func (s Sequence) Len() int { return len(s.Items) }

// Entry is one key/value pair of a Mapping
type Entry struct {
	Key   any
	Value any
}

// Mapping is an ordered key/value collection
type Mapping struct {
	Entries []Entry
}

// Member is a named attribute or method of an Object
type Member struct {
	Name  string
	Value any
}

// Object is an instance exposing named members
type Object struct {
	Members []Member
}

// Class is an uninstantiated type. It carries no enumerable members.
type Class struct {
	Name string
}

// LazyStream is a stateful, possibly unbounded iterator or channel.
// It must never be consumed to find out what it holds.
type LazyStream struct {
	Name string
}

// Primitive is a value with no further structure
type Primitive struct{}

func (Callable) Kind() Kind   { return KindCallable }
func (Sequence) Kind() Kind   { return KindSequence }
func (Mapping) Kind() Kind    { return KindMapping }
func (Object) Kind() Kind     { return KindObject }
func (Class) Kind() Kind      { return KindClass }
func (LazyStream) Kind() Kind { return KindLazyStream }
func (Primitive) Kind() Kind  { return KindPrimitive }

func (Callable) component()   {}
func (Sequence) component()   {}
func (Mapping) component()    {}
func (Object) component()     {}
func (Class) component()      {}
func (LazyStream) component() {}
func (Primitive) component()  {}

// Describer classifies arbitrary values into a Component without invoking
// or mutating them. Implementations must be total: unknown values map to
// Primitive.
type Describer interface {
	Describe(v any) Component
}

// DescriberFunc adapts a function to the Describer interface
type DescriberFunc func(v any) Component

// Describe calls f(v)
func (f DescriberFunc) Describe(v any) Component { return f(v) }

// Path is the sequence of tokens from the script root to one reachable node
type Path []string

// String joins the tokens with single spaces
func (p Path) String() string {
	return strings.Join(p, " ")
}

// Key identifies the token sequence for use as a map key. Unlike String it
// keeps ["a b"] apart from ["a", "b"] and the empty path apart from [""].
func (p Path) Key() string {
	var b strings.Builder
	for _, token := range p {
		b.WriteString(token)
		b.WriteByte(0)
	}
	return b.String()
}

// Parent returns the path without its last token
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the final token, or "" for an empty path
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child returns a new path extended by token. The receiver is not modified.
func (p Path) Child(token string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, token)
}
