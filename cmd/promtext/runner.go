// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jessevdk/go-flags"
	"github.com/sourcegraph/conc/pool"

	"github.com/netdata/netdata/go/promtext/logger"
	"github.com/netdata/netdata/go/promtext/pkg/cli"
	"github.com/netdata/netdata/go/promtext/pkg/docvalue"
	"github.com/netdata/netdata/go/promtext/pkg/promconf"
	"github.com/netdata/netdata/go/promtext/pkg/promtext"
	"github.com/netdata/netdata/go/promtext/pkg/textfile"
)

const stdinInput = "-"

type runner struct {
	*logger.Logger

	opts   *cli.Option
	inputs []string
	stdin  io.Reader
	out    io.Writer
	files  *textfile.Writer

	stdinOnce sync.Once
	stdinData []byte
	stdinErr  error

	mu  sync.RWMutex
	enc *promtext.Encoder
}

func newRunner(opts *cli.Option, inputs []string, out io.Writer) (*runner, error) {
	r := &runner{
		Logger: logger.New().With("component", "runner"),
		opts:   opts,
		inputs: inputs,
		stdin:  os.Stdin,
		out:    out,
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, err
		}
		r.files = textfile.New(opts.OutputDir)
	}

	return r, nil
}

// configure builds the encoder from cfg and the command line overrides.
func (r *runner) configure(cfg *promconf.Config) error {
	encOpts, err := cfg.EncoderOptions()
	if err != nil {
		return err
	}

	if r.opts.Namespace != "" {
		encOpts = append(encOpts, promtext.WithNamespace(r.opts.Namespace))
	}
	encOpts = append(encOpts,
		promtext.WithCommonLabels(mergeLabels(cfg.CommonLabels(), r.opts.LabelPairs())...),
		promtext.WithLogger(logger.New().With("component", "encoder")),
	)

	r.mu.Lock()
	r.enc = promtext.New(encOpts...)
	r.mu.Unlock()

	return nil
}

// run encodes every input. Errors of single inputs are collected and the
// remaining inputs are still processed.
func (r *runner) run(ctx context.Context) error {
	r.mu.RLock()
	enc := r.enc
	r.mu.RUnlock()

	if enc == nil {
		return errors.New("encoder is not configured")
	}

	results := make([][]byte, len(r.inputs))

	p := pool.New().WithErrors().WithMaxGoroutines(r.opts.Jobs)
	for i, input := range r.inputs {
		p.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.encodeInput(enc, input)
			if err != nil {
				return fmt.Errorf("'%s': %w", input, err)
			}
			results[i] = out
			return nil
		})
	}
	err := p.Wait()

	if r.files == nil {
		if werr := r.writeResults(results); werr != nil {
			err = errors.Join(err, werr)
		}
	}

	return err
}

func (r *runner) encodeInput(enc *promtext.Encoder, input string) ([]byte, error) {
	data, err := r.read(input)
	if err != nil {
		return nil, err
	}

	format := inputFormat(input, r.opts.Format)
	if format == "json" {
		if data, err = docvalue.SelectJSON(data, r.opts.Select); err != nil {
			return nil, err
		}
	}

	v, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	stem := inputStem(input)

	var current promtext.Labels
	if r.opts.SourceLabel != "" {
		current = promtext.Labels{{Key: r.opts.SourceLabel, Value: stem}}
	}

	if r.files != nil {
		changed, err := r.files.Write(stem, enc, v, current...)
		if err != nil {
			return nil, err
		}
		if changed {
			r.Debugf("'%s' written to '%s'", input, r.files.Path(stem))
		} else {
			r.Debugf("'%s' unchanged", r.files.Path(stem))
		}
		return nil, nil
	}

	var buf bytes.Buffer
	if err := enc.EncodeToSink(&buf, v, current...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *runner) writeResults(results [][]byte) error {
	first := true
	for _, res := range results {
		if len(res) == 0 {
			continue
		}
		if !first {
			if _, err := io.WriteString(r.out, "\n"); err != nil {
				return err
			}
		}
		first = false
		if _, err := r.out.Write(res); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) read(input string) ([]byte, error) {
	if input == stdinInput {
		// stdin is drained on first use, reloads reuse the same document
		r.stdinOnce.Do(func() { r.stdinData, r.stdinErr = io.ReadAll(r.stdin) })
		return r.stdinData, r.stdinErr
	}
	return os.ReadFile(input)
}

func decode(data []byte, format string) (promtext.Value, error) {
	switch format {
	case "yaml":
		return docvalue.FromYAML(data)
	default:
		return docvalue.FromJSON(data)
	}
}

// inputFormat resolves "auto" by file extension; stdin and unknown
// extensions are JSON.
func inputFormat(input, format string) string {
	if format != "" && format != "auto" {
		return format
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func inputStem(input string) string {
	if input == stdinInput {
		return "stdin"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// expandInputs resolves glob patterns. A pattern matching nothing is an error.
func expandInputs(patterns []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if pattern == stdinInput {
			inputs = append(inputs, pattern)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid input pattern '%s'", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match '%s'", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}

	return inputs, nil
}

// mergeLabels applies the command line labels over the configured ones.
// An overridden key keeps its position.
func mergeLabels(base promtext.Labels, overrides [][2]string) promtext.Labels {
	labels := append(promtext.Labels(nil), base...)

	for _, kv := range overrides {
		replaced := false
		for i := range labels {
			if labels[i].Key == kv[0] {
				labels[i].Value = kv[1]
				replaced = true
			}
		}
		if !replaced {
			labels = append(labels, promtext.Label{Key: kv[0], Value: kv[1]})
		}
	}

	return labels
}

func isFlagsError(err error) bool {
	var fe *flags.Error
	return errors.As(err, &fe)
}
