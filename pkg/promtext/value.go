// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"math"
	"strconv"
)

// Kind is the closed set of value shapes the encoder understands.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindText
	KindBytes
	KindChar
	KindNone
	KindSome
	KindUnit
	KindRecord
	KindSequence
	KindTuple
	KindMap
	KindVariant
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindBool:     "bool",
	KindInt:      "int",
	KindUint:     "uint",
	KindFloat:    "float",
	KindText:     "text",
	KindBytes:    "bytes",
	KindChar:     "char",
	KindNone:     "none",
	KindSome:     "some",
	KindUnit:     "unit",
	KindRecord:   "record",
	KindSequence: "sequence",
	KindTuple:    "tuple",
	KindMap:      "map",
	KindVariant:  "variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable node of a structured value tree.
// The zero Value is invalid and fails encoding.
type Value struct {
	kind Kind

	b    bool
	i    int64
	u    uint64
	f    float64
	bits int
	s    string
	bs   []byte
	r    rune

	name    string
	inner   *Value
	fields  []Field
	elems   []Value
	entries []MapEntry
}

// Field is a named member of a record.
type Field struct {
	Name  string
	Value Value
}

// MapEntry is a key/value pair of a map. Map contents are never encoded.
type MapEntry struct {
	Key   Value
	Value Value
}

func Bool(v bool) Value { return Value{kind: KindBool, b: v} }
func Int(v int64) Value { return Value{kind: KindInt, i: v} }
func Uint(v uint64) Value { return Value{kind: KindUint, u: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v, bits: 64} }
func Float32(v float32) Value { return Value{kind: KindFloat, f: float64(v), bits: 32} }
func Text(v string) Value { return Value{kind: KindText, s: v} }
func Bytes(v []byte) Value { return Value{kind: KindBytes, bs: v} }
func Char(v rune) Value { return Value{kind: KindChar, r: v} }
func None() Value { return Value{kind: KindNone} }
func Unit() Value { return Value{kind: KindUnit} }

// Some wraps a present optional value.
func Some(v Value) Value {
	return Value{kind: KindSome, inner: &v}
}

// NewField returns a record field.
func NewField(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Record returns a struct-like value with fields in declaration order.
func Record(fields ...Field) Value {
	return Value{kind: KindRecord, fields: fields}
}

// Sequence returns a list of anonymous elements.
func Sequence(elems ...Value) Value {
	return Value{kind: KindSequence, elems: elems}
}

// Tuple returns a fixed-size list of anonymous elements.
func Tuple(elems ...Value) Value {
	return Value{kind: KindTuple, elems: elems}
}

func Map(entries ...MapEntry) Value {
	return Value{kind: KindMap, entries: entries}
}

// UnitVariant returns an enum variant without payload.
func UnitVariant(name string) Value {
	return Value{kind: KindVariant, name: name}
}

// Variant returns an enum variant carrying a payload.
func Variant(name string, payload Value) Value {
	return Value{kind: KindVariant, name: name, inner: &payload}
}

func (v Value) Kind() Kind { return v.kind }

// Fields returns the fields of a record, nil for other kinds.
func (v Value) Fields() []Field { return v.fields }

// Elems returns the elements of a sequence or tuple, nil for other kinds.
func (v Value) Elems() []Value { return v.elems }

// Inner returns the wrapped value of Some and of variants with payload.
func (v Value) Inner() (Value, bool) {
	if v.inner == nil {
		return Value{}, false
	}
	return *v.inner, true
}

// sampleText returns the exposition text of a numeric leaf.
func (v Value) sampleText() (string, bool) {
	switch v.kind {
	case KindBool:
		if v.b {
			return "1", true
		}
		return "0", true
	case KindInt:
		return strconv.FormatInt(v.i, 10), true
	case KindUint:
		return strconv.FormatUint(v.u, 10), true
	case KindFloat:
		return formatFloat(v.f, v.bits), true
	default:
		return "", false
	}
}

// formatFloat uses the shortest representation that round-trips.
// NaN and infinities come out as NaN, +Inf and -Inf.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	if bits != 32 {
		bits = 64
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
