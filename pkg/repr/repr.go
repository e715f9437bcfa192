// Package repr renders mapping keys into the canonical text used as
// completion tokens.
package repr

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnrepresentable is returned for values whose text form would not be
// stable across runs (pointers, channels, funcs) or that cannot be keys.
var ErrUnrepresentable = errors.New("value has no canonical representation")

// Key returns the canonical text of a mapping key.
// Strings render literally, numbers in decimal, and tuple-like composites
// (arrays, slices, structs) as a parenthesized list of quoted elements:
//
//	Key("red")                 // red
//	Key(3.14)                  // 3.14
//	Key([2]string{"t1", "t2"}) // ('t1', 't2')
func Key(v any) (string, error) {
	if v == nil {
		return "nil", nil
	}
	return Value(reflect.ValueOf(v))
}

// Value is Key for a reflect.Value. Unexported struct fields are read
// without calling any method on the value.
func Value(v reflect.Value) (string, error) {
	var b strings.Builder
	if err := write(&b, v, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

func write(b *strings.Builder, v reflect.Value, nested bool) error {
	if !v.IsValid() {
		b.WriteString("nil")
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		if nested {
			b.WriteString(quote(v.String()))
		} else {
			b.WriteString(v.String())
		}
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return nil
		}
		return write(b, v.Elem(), nested)
	case reflect.Array, reflect.Slice:
		return writeTuple(b, v.Len(), v.Index)
	case reflect.Struct:
		return writeTuple(b, v.NumField(), v.Field)
	default:
		return fmt.Errorf("%w: %s", ErrUnrepresentable, v.Type())
	}
	return nil
}

func writeTuple(b *strings.Builder, n int, elem func(int) reflect.Value) error {
	b.WriteByte('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := write(b, elem(i), true); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
