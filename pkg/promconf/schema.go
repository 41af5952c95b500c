// SPDX-License-Identifier: GPL-3.0-or-later

package promconf

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v2"
)

var mapSliceType = reflect.TypeOf(yaml.MapSlice{})

// Schema returns the JSON schema of the configuration file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == mapSliceType {
				return &jsonschema.Schema{Type: "object"}
			}
			return nil
		},
	}
	return r.Reflect(&Config{})
}
