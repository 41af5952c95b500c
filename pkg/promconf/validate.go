// SPDX-License-Identifier: GPL-3.0-or-later

package promconf

import (
	"errors"
	"fmt"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v2"

	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Namespace != "" && !model.IsValidLegacyMetricName(c.Namespace) {
		errs = append(errs, fmt.Errorf("invalid namespace '%s'", c.Namespace))
	}

	errs = append(errs, validateLabels("labels", c.Labels)...)

	for _, name := range c.MetricNames() {
		mc := c.Metrics[name]
		where := fmt.Sprintf("metrics.%s", name)

		if !model.IsValidLegacyMetricName(name) {
			errs = append(errs, fmt.Errorf("%s: invalid metric name", where))
		}
		if _, err := promtext.ParseMetricType(mc.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
		if mc.Rename != "" && !model.IsValidLegacyMetricName(mc.Rename) {
			errs = append(errs, fmt.Errorf("%s: invalid rename '%s'", where, mc.Rename))
		}
		errs = append(errs, validateLabels(where+".labels", mc.Labels)...)
	}

	if !c.Filter.Empty() {
		if _, err := c.Filter.Parse(); err != nil {
			errs = append(errs, fmt.Errorf("filter: %w", err))
		}
	}

	return errors.Join(errs...)
}

func validateLabels(where string, ms yaml.MapSlice) []error {
	var errs []error
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok || !model.LabelName(key).IsValidLegacy() {
			errs = append(errs, fmt.Errorf("%s: invalid label name '%v'", where, item.Key))
			continue
		}
		switch item.Value.(type) {
		case yaml.MapSlice, []any:
			errs = append(errs, fmt.Errorf("%s: label '%s' value must be a scalar", where, key))
		}
	}
	return errs
}
