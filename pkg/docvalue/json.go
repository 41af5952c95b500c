// SPDX-License-Identifier: GPL-3.0-or-later

package docvalue

import (
	"bytes"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

// JSONParser converts JSON documents. A parser is not safe for concurrent use
// and may be reused for many documents.
type JSONParser struct {
	parser fastjson.Parser
	buf    []byte
}

// FromJSON converts a single JSON document.
func FromJSON(data []byte) (promtext.Value, error) {
	var p JSONParser
	return p.Parse(data)
}

func (p *JSONParser) Parse(data []byte) (promtext.Value, error) {
	val, err := p.parser.ParseBytes(data)
	if err != nil {
		return promtext.Value{}, fmt.Errorf("json parse: %v", err)
	}
	return p.convert(val)
}

func (p *JSONParser) convert(v *fastjson.Value) (promtext.Value, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		return p.convertObject(v)
	case fastjson.TypeArray:
		return p.convertArray(v)
	case fastjson.TypeNumber:
		return p.convertNumber(v)
	case fastjson.TypeString:
		bs, err := v.StringBytes()
		if err != nil {
			return promtext.Value{}, err
		}
		return promtext.Text(string(bs)), nil
	case fastjson.TypeTrue:
		return promtext.Bool(true), nil
	case fastjson.TypeFalse:
		return promtext.Bool(false), nil
	default:
		return promtext.None(), nil
	}
}

func (p *JSONParser) convertObject(val *fastjson.Value) (promtext.Value, error) {
	obj, err := val.Object()
	if err != nil {
		return promtext.Value{}, err
	}

	fields := make([]promtext.Field, 0, obj.Len())

	obj.Visit(func(key []byte, v *fastjson.Value) {
		if err != nil {
			return
		}
		var fv promtext.Value
		if fv, err = p.convert(v); err == nil {
			fields = append(fields, promtext.NewField(string(key), fv))
		}
	})
	if err != nil {
		return promtext.Value{}, err
	}

	return promtext.Record(fields...), nil
}

func (p *JSONParser) convertArray(val *fastjson.Value) (promtext.Value, error) {
	arr, err := val.Array()
	if err != nil {
		return promtext.Value{}, err
	}

	elems := make([]promtext.Value, 0, len(arr))
	for _, v := range arr {
		ev, err := p.convert(v)
		if err != nil {
			return promtext.Value{}, err
		}
		elems = append(elems, ev)
	}

	return promtext.Sequence(elems...), nil
}

// convertNumber keeps integers exact: unsigned literals become Uint, negative
// ones Int, anything with a fraction, an exponent or out of range Float.
func (p *JSONParser) convertNumber(v *fastjson.Value) (promtext.Value, error) {
	p.buf = v.MarshalTo(p.buf[:0])

	if !bytes.ContainsAny(p.buf, ".eE") {
		if p.buf[0] == '-' {
			if n, err := v.Int64(); err == nil {
				return promtext.Int(n), nil
			}
		} else if n, err := v.Uint64(); err == nil {
			return promtext.Uint(n), nil
		}
	}

	f, err := v.Float64()
	if err != nil {
		return promtext.Value{}, err
	}
	return promtext.Float(f), nil
}
