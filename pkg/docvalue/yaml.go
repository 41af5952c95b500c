// SPDX-License-Identifier: GPL-3.0-or-later

package docvalue

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

// FromYAML converts a single YAML document. Mapping key order is preserved
// for a top-level mapping and for a top-level sequence of mappings.
func FromYAML(data []byte) (promtext.Value, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return promtext.Value{}, fmt.Errorf("yaml parse: %v", err)
	}

	switch v := doc.(type) {
	case map[any]any:
		var ms yaml.MapSlice
		if err := yaml.Unmarshal(data, &ms); err != nil {
			return promtext.Value{}, fmt.Errorf("yaml parse: %v", err)
		}
		return fromYAMLValue(ms)
	case []any:
		if !allMappings(v) {
			break
		}
		var seq []yaml.MapSlice
		if err := yaml.Unmarshal(data, &seq); err != nil {
			return promtext.Value{}, fmt.Errorf("yaml parse: %v", err)
		}
		return fromYAMLValue(seq)
	}

	return fromYAMLValue(doc)
}

func allMappings(items []any) bool {
	for _, item := range items {
		if _, ok := item.(map[any]any); !ok {
			return false
		}
	}
	return true
}

func fromYAMLValue(v any) (promtext.Value, error) {
	switch v := v.(type) {
	case nil:
		return promtext.None(), nil
	case yaml.MapSlice:
		fields := make([]promtext.Field, 0, len(v))
		for _, item := range v {
			fv, err := fromYAMLValue(item.Value)
			if err != nil {
				return promtext.Value{}, err
			}
			fields = append(fields, promtext.NewField(yamlKey(item.Key), fv))
		}
		return promtext.Record(fields...), nil
	case []yaml.MapSlice:
		elems := make([]promtext.Value, 0, len(v))
		for _, ms := range v {
			ev, err := fromYAMLValue(ms)
			if err != nil {
				return promtext.Value{}, err
			}
			elems = append(elems, ev)
		}
		return promtext.Sequence(elems...), nil
	case []any:
		elems := make([]promtext.Value, 0, len(v))
		for _, item := range v {
			ev, err := fromYAMLValue(item)
			if err != nil {
				return promtext.Value{}, err
			}
			elems = append(elems, ev)
		}
		return promtext.Sequence(elems...), nil
	case map[any]any:
		// mappings inside a mixed top-level sequence; keys are sorted
		keys := make([]string, 0, len(v))
		byKey := make(map[string]any, len(v))
		for k, item := range v {
			key := yamlKey(k)
			keys = append(keys, key)
			byKey[key] = item
		}
		sort.Strings(keys)
		ms := make(yaml.MapSlice, 0, len(keys))
		for _, k := range keys {
			ms = append(ms, yaml.MapItem{Key: k, Value: byKey[k]})
		}
		return fromYAMLValue(ms)
	case bool:
		return promtext.Bool(v), nil
	case int:
		return promtext.Int(int64(v)), nil
	case int64:
		return promtext.Int(v), nil
	case uint64:
		return promtext.Uint(v), nil
	case float64:
		return promtext.Float(v), nil
	case string:
		return promtext.Text(v), nil
	default:
		return promtext.Text(fmt.Sprint(v)), nil
	}
}

func yamlKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
