// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/huandu/xstrings"
)

// Marshaler is implemented by types that build their own Value.
type Marshaler interface {
	MarshalMetrics() (Value, error)
}

var (
	valueType     = reflect.TypeOf(Value{})
	byteType      = reflect.TypeOf(byte(0))
	marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
)

// FromGo converts a Go value into a Value.
//
// Struct fields become record fields in declaration order. The field name is
// taken from the `prom` tag, then the `json` tag, then the snake_cased Go
// name. `prom:"-"` skips a field and untagged embedded structs are inlined.
// Pointers map to None/Some, slices and arrays to Sequence ([]byte to Bytes),
// maps to Map. Channels, functions and complex numbers become Unit.
func FromGo(v any) (Value, error) {
	c := converter{seen: make(map[uintptr]struct{})}
	return c.convert(reflect.ValueOf(v), "")
}

type converter struct {
	seen map[uintptr]struct{}
}

func (c *converter) convert(rv reflect.Value, path string) (Value, error) {
	if !rv.IsValid() {
		return None(), nil
	}

	if rv.CanInterface() {
		if rv.Type() == valueType {
			return rv.Interface().(Value), nil
		}
		if val, ok, err := c.marshal(rv, path); ok {
			return val, err
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return None(), nil
		}
		ptr := rv.Pointer()
		if _, ok := c.seen[ptr]; ok {
			return Value{}, fmt.Errorf("%w: pointer cycle at '%s'", ErrEncoding, path)
		}
		c.seen[ptr] = struct{}{}
		val, err := c.convert(rv.Elem(), path)
		delete(c.seen, ptr)
		if err != nil {
			return Value{}, err
		}
		return Some(val), nil
	case reflect.Interface:
		if rv.IsNil() {
			return None(), nil
		}
		return c.convert(rv.Elem(), path)
	case reflect.Struct:
		fields := make([]Field, 0, rv.NumField())
		if err := c.appendFields(&fields, rv, path); err != nil {
			return Value{}, err
		}
		return Record(fields...), nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(byteSlice(rv)), nil
		}
		elems := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			val, err := c.convert(rv.Index(i), path)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, val)
		}
		return Sequence(elems...), nil
	case reflect.Map:
		return Map(), nil
	default:
		return Unit(), nil
	}
}

func (c *converter) marshal(rv reflect.Value, path string) (Value, bool, error) {
	var m Marshaler

	switch {
	case rv.Type().Implements(marshalerType):
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return None(), true, nil
		}
		m = rv.Interface().(Marshaler)
	case rv.Kind() != reflect.Pointer && rv.CanAddr() && rv.Addr().Type().Implements(marshalerType):
		m = rv.Addr().Interface().(Marshaler)
	default:
		return Value{}, false, nil
	}

	val, err := m.MarshalMetrics()
	if err != nil {
		return Value{}, true, fmt.Errorf("%w: '%s': %w", ErrEncoding, path, err)
	}
	return val, true, nil
}

func (c *converter) appendFields(dst *[]Field, rv reflect.Value, path string) error {
	typ := rv.Type()

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)

		name, inline, skip := fieldName(sf)
		if skip {
			continue
		}

		fv := rv.Field(i)

		if inline {
			if fv.Kind() != reflect.Pointer {
				if err := c.appendFields(dst, fv, path); err != nil {
					return err
				}
				continue
			}
			if fv.IsNil() {
				continue
			}
			ptr := fv.Pointer()
			if _, ok := c.seen[ptr]; ok {
				return fmt.Errorf("%w: pointer cycle at embedded '%s'", ErrEncoding, sf.Name)
			}
			c.seen[ptr] = struct{}{}
			err := c.appendFields(dst, fv.Elem(), path)
			delete(c.seen, ptr)
			if err != nil {
				return err
			}
			continue
		}

		val, err := c.convert(fv, joinPath(path, name))
		if err != nil {
			return err
		}
		*dst = append(*dst, NewField(name, val))
	}
	return nil
}

func fieldName(sf reflect.StructField) (name string, inline, skip bool) {
	if tag, ok := sf.Tag.Lookup("prom"); ok {
		name, _, _ = strings.Cut(tag, ",")
	} else if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ = strings.Cut(tag, ",")
	}
	if name == "-" {
		return "", false, true
	}

	if sf.Anonymous && name == "" {
		t := sf.Type
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() == reflect.Struct {
			return "", true, false
		}
	}

	if !sf.IsExported() {
		return "", false, true
	}
	if name == "" {
		name = xstrings.ToSnakeCase(sf.Name)
	}
	return name, false, false
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "_" + name
}

// byteSlice copies a slice or array of uint8 kind, including named byte types.
func byteSlice(rv reflect.Value) []byte {
	if rv.Kind() == reflect.Slice && rv.Type().Elem() == byteType {
		return append([]byte(nil), rv.Bytes()...)
	}
	bs := make([]byte, rv.Len())
	for i := range bs {
		bs[i] = byte(rv.Index(i).Uint())
	}
	return bs
}
