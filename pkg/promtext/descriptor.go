// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"fmt"
	"strings"

	"github.com/prometheus/common/model"
)

// MetricType is the value of a "# TYPE" line.
type MetricType uint8

const (
	Untyped MetricType = iota
	Counter
	Gauge
	Histogram
	Summary
)

func (t MetricType) String() string {
	switch t {
	case Counter:
		return string(model.MetricTypeCounter)
	case Gauge:
		return string(model.MetricTypeGauge)
	case Histogram:
		return string(model.MetricTypeHistogram)
	case Summary:
		return string(model.MetricTypeSummary)
	default:
		return "untyped"
	}
}

// ParseMetricType parses a metric type name. The empty string and the
// OpenMetrics "unknown" spelling map to Untyped.
func ParseMetricType(s string) (MetricType, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "untyped", string(model.MetricTypeUnknown):
		return Untyped, nil
	case string(model.MetricTypeCounter):
		return Counter, nil
	case string(model.MetricTypeGauge):
		return Gauge, nil
	case string(model.MetricTypeHistogram):
		return Histogram, nil
	case string(model.MetricTypeSummary):
		return Summary, nil
	default:
		return Untyped, fmt.Errorf("unknown metric type '%s'", s)
	}
}

// MetricDescriptor is the per-metric metadata. The zero value is the default
// descriptor: untyped, no help, no labels, no rename.
type MetricDescriptor struct {
	Type   MetricType
	Help   string
	Labels Labels
	Rename string
}

// Metadata maps a bare path name or a namespaced name to its descriptor.
// It is only read during encoding and may be shared between goroutines.
type Metadata map[string]MetricDescriptor

type resolver struct {
	namespace string
	metadata  Metadata
}

// resolve returns the final metric name and descriptor for a path.
// The bare path takes precedence over the namespaced one.
func (r resolver) resolve(path string) (string, MetricDescriptor) {
	nsName := r.withNamespace(path)

	desc, ok := r.metadata[path]
	if !ok && r.namespace != "" {
		desc, ok = r.metadata[nsName]
	}
	if !ok {
		return nsName, MetricDescriptor{}
	}
	if desc.Rename != "" {
		return r.withNamespace(desc.Rename), desc
	}
	return nsName, desc
}

func (r resolver) withNamespace(name string) string {
	if r.namespace == "" {
		return name
	}
	return r.namespace + "_" + name
}
