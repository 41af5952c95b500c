// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/netdata/netdata/go/promtext/logger"
	"github.com/netdata/netdata/go/promtext/pkg/buildinfo"
	"github.com/netdata/netdata/go/promtext/pkg/cli"
	"github.com/netdata/netdata/go/promtext/pkg/promconf"
)

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, args ...interface{}) {}))

	opts := parseCLI()

	if opts.Version {
		fmt.Printf("promtext, version: %s\n", buildinfo.Version)
		return
	}

	if opts.Schema {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(promconf.Schema()); err != nil {
			logger.Error(err)
			os.Exit(1)
		}
		return
	}

	if lvl := os.Getenv("PROMTEXT_LOG_LEVEL"); lvl != "" {
		logger.Level.SetByName(lvl)
	}
	if opts.Debug {
		logger.Level.Set(slog.LevelDebug)
	}

	logger.Debugf("promtext: %s", buildinfo.Info())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		logger.Error(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *cli.Option) error {
	inputs, err := expandInputs(opts.Inputs)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs")
	}

	r, err := newRunner(opts, inputs, os.Stdout)
	if err != nil {
		return err
	}

	if !opts.Watch {
		cfg := &promconf.Config{}
		if opts.Config != "" {
			if cfg, err = promconf.Load(opts.Config); err != nil {
				return err
			}
		}
		if err := r.configure(cfg); err != nil {
			return err
		}
		return r.run(ctx)
	}

	w := promconf.NewWatcher(opts.Config)

	return w.Run(ctx, func(cfg *promconf.Config) {
		if err := r.configure(cfg); err != nil {
			logger.Errorf("configuration rejected: %v", err)
			return
		}
		if err := r.run(ctx); err != nil {
			logger.Error(err)
		}
	})
}

func parseCLI() *cli.Option {
	opt, err := cli.Parse(os.Args)
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		if !isFlagsError(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	return opt
}
