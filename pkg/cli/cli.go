// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/go-homedir"
)

// Option defines command line options.
type Option struct {
	Config      string   `short:"c" long:"config" description:"encoder configuration file (YAML)"`
	Namespace   string   `short:"n" long:"namespace" description:"metric name prefix, overrides the configuration"`
	Labels      []string `short:"l" long:"label" description:"common label key=value, may be repeated"`
	Format      string   `short:"f" long:"format" description:"input format" choice:"auto" choice:"json" choice:"yaml" default:"auto"`
	Select      string   `long:"select" description:"encode only the JSON sub-document at this path (gjson syntax)"`
	OutputDir   string   `short:"o" long:"output-dir" description:"write one <input>.prom file per input into this directory"`
	SourceLabel string   `short:"s" long:"source-label" description:"label name set to the input file name"`
	Jobs        int      `short:"j" long:"jobs" description:"number of inputs encoded concurrently" default:"4"`
	Watch       bool     `short:"w" long:"watch" description:"re-encode inputs when the configuration changes"`
	Debug       bool     `short:"d" long:"debug" description:"debug mode"`
	Schema      bool     `long:"config-schema" description:"print the configuration JSON schema and exit"`
	Version     bool     `short:"v" long:"version" description:"display the version and exit"`

	Inputs []string
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = "promtext"
	parser.Usage = "[OPTIONS] <input>..."

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		opt.Inputs = rest[1:]
	}

	if opt.Jobs < 1 {
		return nil, fmt.Errorf("--jobs must be positive, got %d", opt.Jobs)
	}
	if opt.Select != "" && opt.Format == "yaml" {
		return nil, fmt.Errorf("--select applies to JSON inputs only")
	}
	if opt.Watch && opt.Config == "" {
		return nil, fmt.Errorf("--watch requires --config")
	}
	for _, l := range opt.Labels {
		if _, _, ok := strings.Cut(l, "="); !ok {
			return nil, fmt.Errorf("invalid label '%s', want key=value", l)
		}
	}

	if opt.Config, err = homedir.Expand(opt.Config); err != nil {
		return nil, err
	}
	if opt.OutputDir, err = homedir.Expand(opt.OutputDir); err != nil {
		return nil, err
	}
	for i, in := range opt.Inputs {
		if opt.Inputs[i], err = homedir.Expand(in); err != nil {
			return nil, err
		}
	}

	return opt, nil
}

// LabelPairs splits the --label values into key/value pairs.
func (o *Option) LabelPairs() [][2]string {
	pairs := make([][2]string, 0, len(o.Labels))
	for _, l := range o.Labels {
		k, v, _ := strings.Cut(l, "=")
		pairs = append(pairs, [2]string{strings.TrimSpace(k), v})
	}
	return pairs
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
