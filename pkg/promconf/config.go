// SPDX-License-Identifier: GPL-3.0-or-later

// Package promconf loads the encoder configuration: namespace, common labels,
// per-metric metadata and the metric name filter.
package promconf

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/netdata/netdata/go/promtext/pkg/matcher"
	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

// Config is the on-disk configuration.
//
//	namespace: my
//	labels:
//	  app: myapp
//	metrics:
//	  requests:
//	    type: counter
//	    help: Total number of requests processed
//	    rename: requests_total
//	    labels:
//	      endpoint: login
//	filter:
//	  includes: ["my_*"]
//	  excludes: ["*_debug"]
type Config struct {
	Namespace string                  `yaml:"namespace" jsonschema:"description=Prefix of every metric name"`
	Labels    yaml.MapSlice           `yaml:"labels" jsonschema:"description=Labels added to every sample"`
	Metrics   map[string]MetricConfig `yaml:"metrics" jsonschema:"description=Metadata by bare or namespaced metric name"`
	Filter    matcher.SimpleExpr      `yaml:"filter" jsonschema:"description=Metric name selector"`
}

type MetricConfig struct {
	Type   string        `yaml:"type" jsonschema:"enum=untyped,enum=unknown,enum=counter,enum=gauge,enum=histogram,enum=summary"`
	Help   string        `yaml:"help"`
	Labels yaml.MapSlice `yaml:"labels"`
	Rename string        `yaml:"rename" jsonschema:"description=Final metric name (namespace is still applied)"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CommonLabels returns the top-level labels in file order.
func (c *Config) CommonLabels() promtext.Labels {
	return toLabels(c.Labels)
}

// Metadata converts the metrics table.
func (c *Config) Metadata() (promtext.Metadata, error) {
	md := make(promtext.Metadata, len(c.Metrics))
	for name, mc := range c.Metrics {
		typ, err := promtext.ParseMetricType(mc.Type)
		if err != nil {
			return nil, fmt.Errorf("metric '%s': %w", name, err)
		}
		md[name] = promtext.MetricDescriptor{
			Type:   typ,
			Help:   mc.Help,
			Labels: toLabels(mc.Labels),
			Rename: mc.Rename,
		}
	}
	return md, nil
}

// NameFilter returns nil when no filter is configured.
func (c *Config) NameFilter() (matcher.Matcher, error) {
	if c.Filter.Empty() {
		return nil, nil
	}
	m, err := c.Filter.Parse()
	if err != nil {
		return nil, err
	}
	return matcher.WithCache(m), nil
}

// EncoderOptions returns the promtext options described by the configuration.
func (c *Config) EncoderOptions() ([]promtext.Option, error) {
	md, err := c.Metadata()
	if err != nil {
		return nil, err
	}
	opts := []promtext.Option{
		promtext.WithNamespace(c.Namespace),
		promtext.WithMetadata(md),
		promtext.WithCommonLabels(c.CommonLabels()...),
	}

	filter, err := c.NameFilter()
	if err != nil {
		return nil, err
	}
	if filter != nil {
		opts = append(opts, promtext.WithNameFilter(filter))
	}
	return opts, nil
}

// MetricNames returns the metrics table keys sorted.
func (c *Config) MetricNames() []string {
	names := make([]string, 0, len(c.Metrics))
	for name := range c.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func toLabels(ms yaml.MapSlice) promtext.Labels {
	if len(ms) == 0 {
		return nil
	}
	labels := make(promtext.Labels, 0, len(ms))
	for _, item := range ms {
		labels = append(labels, promtext.Label{Key: fmt.Sprint(item.Key), Value: scalarString(item.Value)})
	}
	return labels
}

func scalarString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
