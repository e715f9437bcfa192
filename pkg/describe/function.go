package describe

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/NikitaCOEUR/firecomp/pkg/component"
)

// Function annotates a func value with its parameter names, which Go
// reflection cannot recover. Build one with Func.
type Function struct {
	fn     reflect.Value
	params []component.Param
}

// Func wraps fn with parameter declarations. A declaration is a bare name,
// "name=default" for a parameter with a default, or "...name" for a
// variadic parameter. When fn is a func, its arity wins: missing names are
// filled with argN, extra declarations are dropped, and the last parameter of a
// variadic func is marked variadic. fn may be nil to declare a signature
// without an implementation.
func Func(fn any, params ...string) *Function {
	f := &Function{}
	if fn != nil {
		f.fn = reflect.ValueOf(fn)
	}

	declared := make([]component.Param, len(params))
	for i, decl := range params {
		declared[i] = ParseParam(decl)
	}

	if !f.fn.IsValid() || f.fn.Kind() != reflect.Func {
		f.params = declared
		return f
	}

	f.params = signature(f.fn.Type(), 0, declared)
	return f
}

// Params returns a copy of the declared parameters
func (f *Function) Params() []component.Param {
	return append([]component.Param(nil), f.params...)
}

// valid reports whether the wrapped value can be described as a callable
func (f *Function) valid() bool {
	return !f.fn.IsValid() || (f.fn.Kind() == reflect.Func && !f.fn.IsNil())
}

// ParseParam parses a parameter declaration as accepted by Func
func ParseParam(decl string) component.Param {
	p := component.Param{Name: strings.TrimSpace(decl)}
	if rest, ok := strings.CutPrefix(p.Name, "..."); ok {
		p.Name = rest
		p.Variadic = true
	}
	if name, _, ok := strings.Cut(p.Name, "="); ok {
		p.Name = strings.TrimSpace(name)
		p.HasDefault = true
	}
	return p
}

// signature lists the parameters of t starting at input index skip, taking
// names from declared when present.
func signature(t reflect.Type, skip int, declared []component.Param) []component.Param {
	n := t.NumIn() - skip
	if n < 0 {
		n = 0
	}

	params := make([]component.Param, n)
	for i := range params {
		if i < len(declared) {
			params[i] = declared[i]
		} else {
			params[i] = component.Param{Name: fmt.Sprintf("arg%d", i)}
		}
	}
	if t.IsVariadic() && n > 0 {
		params[n-1].Variadic = true
	}
	return params
}

// boundMethod is an exported method reached through an object instance.
// It is stored as the member value so the method is never evaluated.
type boundMethod struct {
	recv   reflect.Type
	method reflect.Method
}

func (m boundMethod) String() string {
	return fmt.Sprintf("(%s).%s", m.recv, m.method.Name)
}
