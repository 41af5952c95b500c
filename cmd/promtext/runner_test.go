// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdata/netdata/go/promtext/pkg/cli"
	"github.com/netdata/netdata/go/promtext/pkg/promconf"
	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

const testConfig = `
namespace: my
labels:
  app: myapp
metrics:
  requests:
    type: counter
    help: Total number of requests processed
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunner_run_stdout(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"requests": 1, "status": "ok"}`)
	b := writeFile(t, dir, "b.yaml", "requests: 2\n")

	cfg, err := promconf.Parse([]byte(testConfig))
	require.NoError(t, err)

	var out bytes.Buffer
	opts := &cli.Option{Jobs: 2, Format: "auto", SourceLabel: "source", Labels: []string{"env=prod"}}
	r, err := newRunner(opts, []string{a, b}, &out)
	require.NoError(t, err)
	require.NoError(t, r.configure(cfg))

	require.NoError(t, r.run(context.Background()))

	expected := `# HELP my_requests Total number of requests processed
# TYPE my_requests counter
my_requests{source="a",app="myapp",env="prod"} 1

# HELP my_requests Total number of requests processed
# TYPE my_requests counter
my_requests{source="b",app="myapp",env="prod"} 2
`
	assert.Equal(t, expected, out.String())
}

func TestRunner_run_outputDir(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in/app.json", `{"requests": 5}`)
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	r, err := newRunner(&cli.Option{Jobs: 1, Namespace: "ns", OutputDir: outDir}, []string{in}, &out)
	require.NoError(t, err)
	require.NoError(t, r.configure(&promconf.Config{}))

	require.NoError(t, r.run(context.Background()))
	assert.Zero(t, out.Len())

	bs, err := os.ReadFile(filepath.Join(outDir, "app.prom"))
	require.NoError(t, err)
	assert.Equal(t, "# TYPE ns_requests untyped\nns_requests 5\n", string(bs))
}

func TestRunner_run_stdinAndErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"requests": `)

	var out bytes.Buffer
	r, err := newRunner(&cli.Option{Jobs: 2}, []string{stdinInput, bad}, &out)
	require.NoError(t, err)
	r.stdin = strings.NewReader(`{"up": true}`)

	require.Error(t, r.run(context.Background()), "not configured")

	require.NoError(t, r.configure(&promconf.Config{}))

	err = r.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
	assert.Equal(t, "# TYPE up untyped\nup 1\n", out.String())
}

func TestRunner_run_stdinReused(t *testing.T) {
	var out bytes.Buffer
	r, err := newRunner(&cli.Option{Jobs: 1}, []string{stdinInput}, &out)
	require.NoError(t, err)
	r.stdin = strings.NewReader(`{"up": true}`)

	require.NoError(t, r.configure(&promconf.Config{}))
	require.NoError(t, r.run(context.Background()))

	require.NoError(t, r.configure(&promconf.Config{Namespace: "ns"}))
	require.NoError(t, r.run(context.Background()))

	assert.Equal(t, "# TYPE up untyped\nup 1\n# TYPE ns_up untyped\nns_up 1\n", out.String())
}

func TestRunner_run_select(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "api.json", `{"status": "ok", "data": {"stats": {"requests": 7}}}`)

	var out bytes.Buffer
	r, err := newRunner(&cli.Option{Jobs: 1, Select: "data.stats"}, []string{in}, &out)
	require.NoError(t, err)
	require.NoError(t, r.configure(&promconf.Config{}))

	require.NoError(t, r.run(context.Background()))
	assert.Equal(t, "# TYPE requests untyped\nrequests 7\n", out.String())
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", "{}")
	writeFile(t, dir, "sub/b.json", "{}")
	writeFile(t, dir, "sub/c.yaml", "{}")

	inputs, err := expandInputs([]string{filepath.Join(dir, "**", "*.json"), filepath.Join(dir, "a.json"), stdinInput})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "sub", "b.json"), stdinInput}, inputs)

	_, err = expandInputs([]string{filepath.Join(dir, "*.toml")})
	assert.Error(t, err)

	_, err = expandInputs([]string{filepath.Join(dir, "[")})
	assert.Error(t, err)
}

func TestInputFormat(t *testing.T) {
	tests := map[string]struct {
		input    string
		format   string
		expected string
	}{
		"json ext":        {input: "a.json", format: "auto", expected: "json"},
		"yaml ext":        {input: "a.YAML", format: "auto", expected: "yaml"},
		"yml ext":         {input: "a.yml", format: "", expected: "yaml"},
		"unknown ext":     {input: "a.txt", format: "auto", expected: "json"},
		"stdin":           {input: "-", format: "auto", expected: "json"},
		"forced":          {input: "a.json", format: "yaml", expected: "yaml"},
		"forced on stdin": {input: "-", format: "yaml", expected: "yaml"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, inputFormat(test.input, test.format))
		})
	}
}

func TestMergeLabels(t *testing.T) {
	base := promtext.Labels{{Key: "app", Value: "a"}, {Key: "env", Value: "dev"}}

	got := mergeLabels(base, [][2]string{{"env", "prod"}, {"zone", "z1"}})

	assert.Equal(t, promtext.Labels{{Key: "app", Value: "a"}, {Key: "env", Value: "prod"}, {Key: "zone", Value: "z1"}}, got)
	assert.Equal(t, "dev", base[1].Value, "base is not modified")
}

func TestInputStem(t *testing.T) {
	assert.Equal(t, "stdin", inputStem("-"))
	assert.Equal(t, "app", inputStem("/x/y/app.json"))
	assert.Equal(t, "app.v1", inputStem("app.v1.yaml"))
}
