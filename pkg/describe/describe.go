// Package describe classifies arbitrary Go values into completion components
// using reflection. It never calls a func, receives from a channel or ranges
// an iterator: everything it reports comes from types and stored fields.
package describe

import (
	"cmp"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/NikitaCOEUR/firecomp/pkg/component"
	"github.com/NikitaCOEUR/firecomp/pkg/repr"
	"github.com/huandu/xstrings"
	"gopkg.in/yaml.v3"
)

// DefaultTagKey is the struct tag consulted for member names
const DefaultTagKey = "complete"

var nexterType = reflect.TypeFor[interface{ Next() bool }]()

// Describer is the reflection-backed component.Describer
type Describer struct {
	tagKey  string
	methods map[string][]component.Param
}

// Option configures a Describer
type Option func(*Describer)

// WithTagKey sets the struct tag used to rename or hide fields
func WithTagKey(key string) Option {
	return func(d *Describer) {
		d.tagKey = key
	}
}

// WithMethodParams declares parameter names for a method of recv's type.
// recv is either a reflect.Type or a value of the receiver type; pointer and
// value receivers share one declaration. Declarations follow Func.
func WithMethodParams(recv any, method string, params ...string) Option {
	return func(d *Describer) {
		t, ok := recv.(reflect.Type)
		if !ok {
			t = reflect.TypeOf(recv)
		}
		if t == nil {
			return
		}

		declared := make([]component.Param, len(params))
		for i, decl := range params {
			declared[i] = ParseParam(decl)
		}
		d.methods[qualifiedName(baseType(t))+"."+method] = declared
	}
}

// New creates a Describer
func New(opts ...Option) *Describer {
	d := &Describer{
		tagKey:  DefaultTagKey,
		methods: make(map[string][]component.Param),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Describe classifies v with a default Describer
func Describe(v any) component.Component {
	return New().Describe(v)
}

// Describe classifies v. It is total: anything unrecognised is a Primitive.
func (d *Describer) Describe(v any) component.Component {
	switch x := v.(type) {
	case nil:
		return component.Primitive{}
	case component.Component:
		return x
	case reflect.Type:
		return component.Class{Name: x.String()}
	case *Function:
		if x == nil || !x.valid() {
			return component.Primitive{}
		}
		return component.Callable{Params: x.Params()}
	case boundMethod:
		return d.describeMethod(x)
	case *yaml.Node:
		return d.describeNode(x)
	}
	return d.describeValue(reflect.ValueOf(v))
}

func (d *Describer) describeValue(rv reflect.Value) component.Component {
	for {
		if !rv.IsValid() {
			return component.Primitive{}
		}
		if isLazy(rv.Type()) {
			return component.LazyStream{Name: rv.Type().String()}
		}

		switch rv.Kind() {
		case reflect.Interface:
			if rv.IsNil() {
				return component.Primitive{}
			}
			rv = rv.Elem()
		case reflect.Pointer:
			if rv.IsNil() {
				return component.Primitive{}
			}
			if rv.Elem().Kind() == reflect.Struct {
				return d.describeObject(rv)
			}
			rv = rv.Elem()
		case reflect.Func:
			if rv.IsNil() {
				return component.Primitive{}
			}
			if recv, method, ok := methodValue(rv); ok {
				params := []component.Param{{Name: receiverName(recv)}}
				params = append(params, signature(rv.Type(), 0, d.methods[recv+"."+method])...)
				return component.Callable{Params: params, Bound: true}
			}
			return component.Callable{Params: signature(rv.Type(), 0, nil)}
		case reflect.Map:
			return describeMap(rv)
		case reflect.Slice:
			if rv.Type().Elem().Kind() == reflect.Uint8 {
				return component.Primitive{}
			}
			return describeSequence(rv)
		case reflect.Array:
			return describeSequence(rv)
		case reflect.Struct:
			return d.describeObject(rv)
		default:
			return component.Primitive{}
		}
	}
}

// isLazy reports channels, iter.Seq-style funcs and Next()-driven iterators
func isLazy(t reflect.Type) bool {
	if t.Kind() == reflect.Chan {
		return true
	}
	if t.PkgPath() == "iter" {
		return true
	}
	return t.Implements(nexterType)
}

func describeSequence(rv reflect.Value) component.Component {
	items := make([]any, rv.Len())
	for i := range items {
		if elem := rv.Index(i); elem.CanInterface() {
			items[i] = elem.Interface()
		}
	}
	return component.Sequence{Items: items}
}

type sortableEntry struct {
	entry component.Entry
	text  string
	ok    bool
	typ   string
	addr  uintptr
}

// describeMap orders entries by their rendered key. Keys without a
// canonical text sort last, by type and then by address.
func describeMap(rv reflect.Value) component.Component {
	sortable := make([]sortableEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, v := iter.Key(), iter.Value()
		if !k.CanInterface() || !v.CanInterface() {
			continue
		}

		text, err := repr.Value(k)
		sortable = append(sortable, sortableEntry{
			entry: component.Entry{Key: k.Interface(), Value: v.Interface()},
			text:  text,
			ok:    err == nil,
			typ:   k.Type().String(),
			addr:  addressOf(k),
		})
	}

	slices.SortStableFunc(sortable, func(a, b sortableEntry) int {
		if a.ok != b.ok {
			if a.ok {
				return -1
			}
			return 1
		}
		return cmp.Or(
			cmp.Compare(a.text, b.text),
			cmp.Compare(a.typ, b.typ),
			cmp.Compare(a.addr, b.addr),
		)
	})

	entries := make([]component.Entry, len(sortable))
	for i, s := range sortable {
		entries[i] = s.entry
	}
	return component.Mapping{Entries: entries}
}

func addressOf(v reflect.Value) uintptr {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.Map, reflect.UnsafePointer:
		return v.Pointer()
	}
	return 0
}

func (d *Describer) describeObject(rv reflect.Value) component.Component {
	members := []component.Member{}

	sv := reflect.Indirect(rv)
	for _, f := range reflect.VisibleFields(sv.Type()) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, ok := d.fieldName(f)
		if !ok {
			continue
		}
		fv, err := sv.FieldByIndexErr(f.Index)
		if err != nil || !fv.CanInterface() {
			continue
		}
		members = append(members, component.Member{Name: name, Value: fv.Interface()})
	}

	t := rv.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		members = append(members, component.Member{
			Name:  MemberName(m.Name),
			Value: boundMethod{recv: t, method: m},
		})
	}

	return component.Object{Members: members}
}

func (d *Describer) fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get(d.tagKey)
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return MemberName(f.Name), true
}

func (d *Describer) describeMethod(m boundMethod) component.Component {
	recv := qualifiedName(baseType(m.recv))
	declared := d.methods[recv+"."+m.method.Name]

	params := []component.Param{{Name: receiverName(recv)}}
	params = append(params, signature(m.method.Type, 1, declared)...)
	return component.Callable{Params: params, Bound: true}
}

func (d *Describer) describeNode(n *yaml.Node) component.Component {
	if n == nil {
		return component.Primitive{}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return component.Primitive{}
		}
		return d.describeNode(n.Content[0])
	case yaml.MappingNode:
		entries := make([]component.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			entries = append(entries, component.Entry{
				Key:   nodeKey(n.Content[i]),
				Value: n.Content[i+1],
			})
		}
		return component.Mapping{Entries: entries}
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, child := range n.Content {
			items[i] = child
		}
		return component.Sequence{Items: items}
	case yaml.AliasNode:
		if n.Alias == nil || n.Alias.Kind == yaml.AliasNode {
			return component.Primitive{}
		}
		return d.describeNode(n.Alias)
	default:
		return component.Primitive{}
	}
}

// nodeKey returns the Go value of a mapping key node. Scalars keep their
// source text; complex keys are decoded.
func nodeKey(k *yaml.Node) any {
	if k.Kind == yaml.ScalarNode {
		return k.Value
	}
	var v any
	if err := k.Decode(&v); err != nil {
		return k
	}
	return v
}

// MemberName converts a Go identifier into its completion token, e.g.
// DryRun -> dry-run
func MemberName(name string) string {
	return xstrings.ToKebabCase(name)
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func qualifiedName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// methodValue recognises a method value such as obj.Double. The runtime
// names its wrapper "pkg.T.Double-fm" or "pkg.(*T).Double-fm".
func methodValue(fn reflect.Value) (recv, method string, ok bool) {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return "", "", false
	}
	name, found := strings.CutSuffix(f.Name(), "-fm")
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return "", "", false
	}
	recv = strings.NewReplacer("(*", "", ")", "").Replace(name[:i])
	return recv, name[i+1:], true
}

// receiverName lower-cases the first letter of the unqualified type name
func receiverName(qualified string) string {
	name := qualified
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "recv"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
