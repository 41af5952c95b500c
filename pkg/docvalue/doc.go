// SPDX-License-Identifier: GPL-3.0-or-later

// Package docvalue converts JSON and YAML documents into promtext values,
// keeping the key order of the source document.
package docvalue
