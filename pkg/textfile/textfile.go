// SPDX-License-Identifier: GPL-3.0-or-later

// Package textfile writes exposition files into a textfile-collector
// directory. Files are replaced atomically and rewritten only when their
// content changes.
package textfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

const fileExt = ".prom"

type Writer struct {
	Dir string

	mu     sync.Mutex
	hashes map[string]uint64
}

func New(dir string) *Writer {
	return &Writer{Dir: dir, hashes: make(map[string]uint64)}
}

// Path returns the file path for name.
func (w *Writer) Path(name string) string {
	if !strings.HasSuffix(name, fileExt) {
		name += fileExt
	}
	return filepath.Join(w.Dir, name)
}

// WriteFunc streams the output of fn into the file for name. It reports
// whether the file was replaced. Writers of the same name, in this or other
// processes, are serialized with a lock file next to the target.
func (w *Writer) WriteFunc(name string, fn func(io.Writer) error) (bool, error) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return false, fmt.Errorf("invalid file name '%s'", name)
	}

	path := w.Path(name)

	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("lock '%s': %w", lock.Path(), err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(w.Dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := xxhash.New()
	if err := fn(io.MultiWriter(tmp, h)); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	sum := h.Sum64()
	if prev, ok := w.hash(path); ok && prev == sum {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	w.setHash(path, sum)

	return true, nil
}

// Write encodes v into the file for name.
func (w *Writer) Write(name string, enc *promtext.Encoder, v promtext.Value, current ...promtext.Label) (bool, error) {
	return w.WriteFunc(name, func(out io.Writer) error {
		return enc.EncodeToSink(out, v, current...)
	})
}

// Remove deletes the file for name. A missing file is not an error.
func (w *Writer) Remove(name string) error {
	path := w.Path(name)
	w.mu.Lock()
	delete(w.hashes, path)
	w.mu.Unlock()

	for _, p := range []string{path, lockPath(path)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func lockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}

func (w *Writer) hash(path string) (uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.hashes[path]
	return v, ok
}

func (w *Writer) setHash(path string, sum uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hashes == nil {
		w.hashes = make(map[string]uint64)
	}
	w.hashes[path] = sum
}
