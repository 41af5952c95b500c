// SPDX-License-Identifier: GPL-3.0-or-later

package docvalue

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// SelectJSON returns the raw JSON found at path (gjson syntax, e.g.
// "data.stats" or "nodes.#.metrics"). An empty path returns data unchanged.
func SelectJSON(data []byte, path string) ([]byte, error) {
	if path == "" {
		return data, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("select '%s': invalid json", path)
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("select '%s': path not found", path)
	}
	return []byte(res.Raw), nil
}
