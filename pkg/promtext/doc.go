// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package promtext encodes structured values into the Prometheus text exposition format.

A value is walked depth first. Record fields extend the metric name with
"_<field>", sequence elements reuse the current name, and every numeric leaf
becomes one sample:

	{requests: 1024, inner: {value: 3.42}}  =>  requests 1024
	                                             inner_value 3.42

Per-metric metadata (type, help, static labels, rename) comes from a Metadata
table keyed by the bare path name or by the namespaced name. Samples sharing a
final metric name are grouped into one family with a single HELP/TYPE header,
and families are written in the order they were first seen.

Text, bytes, maps, units, enum payloads and empty optionals carry no numeric
series and are skipped.
*/
package promtext
