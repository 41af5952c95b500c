// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/netdata/netdata/go/promtext/logger"
	"github.com/netdata/netdata/go/promtext/pkg/matcher"
)

// Encoder holds the configuration shared by many encode calls.
// It is immutable after New and safe for concurrent use.
type Encoder struct {
	namespace string
	metadata  Metadata
	common    Labels
	filter    matcher.Matcher
	log       *logger.Logger
}

type Option func(*Encoder)

// WithNamespace prefixes every metric name with "<ns>_".
func WithNamespace(ns string) Option {
	return func(e *Encoder) { e.namespace = ns }
}

// WithMetadata sets the per-path descriptors. md is copied.
func WithMetadata(md Metadata) Option {
	md = cloneMetadata(md)
	return func(e *Encoder) { e.metadata = md }
}

// WithCommonLabels sets the labels added to every sample after the call-scoped ones.
func WithCommonLabels(labels ...Label) Option {
	labels = append(Labels(nil), labels...)
	return func(e *Encoder) { e.common = labels }
}

func cloneMetadata(md Metadata) Metadata {
	if md == nil {
		return nil
	}
	out := make(Metadata, len(md))
	for k, desc := range md {
		desc.Labels = append(Labels(nil), desc.Labels...)
		out[k] = desc
	}
	return out
}

// WithNameFilter drops samples whose final metric name does not match m.
func WithNameFilter(m matcher.Matcher) Option {
	return func(e *Encoder) { e.filter = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Encoder) { e.log = l }
}

func New(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeToText encodes v and returns the exposition text.
// current labels are placed before the common and per-metric labels.
func (e *Encoder) EncodeToText(v Value, current ...Label) (string, error) {
	var buf bytes.Buffer
	if err := e.EncodeToSink(&buf, v, current...); err != nil {
		return "", err
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", ErrTextValidity
	}
	return buf.String(), nil
}

// EncodeToSink encodes v into w. On a write error w may hold the families
// written before the failure.
func (e *Encoder) EncodeToSink(w io.Writer, v Value, current ...Label) error {
	st := e.newState(current)

	if err := st.visit(v); err != nil {
		return err
	}

	e.log.Debugf("encoded %d metric families", st.families.len())

	return st.families.writeTo(w)
}

// Marshal converts a Go value with FromGo and encodes it.
func (e *Encoder) Marshal(v any, current ...Label) (string, error) {
	val, err := FromGo(v)
	if err != nil {
		return "", err
	}
	return e.EncodeToText(val, current...)
}

// Write converts a Go value with FromGo and encodes it into w.
func (e *Encoder) Write(w io.Writer, v any, current ...Label) error {
	val, err := FromGo(v)
	if err != nil {
		return err
	}
	return e.EncodeToSink(w, val, current...)
}

func (e *Encoder) newState(current Labels) *encodeState {
	return &encodeState{
		resolver: resolver{namespace: e.namespace, metadata: e.metadata},
		common:   e.common,
		current:  current,
		filter:   e.filter,
		families: newFamilySet(),
		log:      e.log,
	}
}

// EncodeToText encodes v with a one-off configuration.
func EncodeToText(v Value, namespace string, md Metadata, common, current Labels) (string, error) {
	return newEncoder(namespace, md, common).EncodeToText(v, current...)
}

// EncodeToSink encodes v into w with a one-off configuration.
func EncodeToSink(w io.Writer, v Value, namespace string, md Metadata, common, current Labels) error {
	return newEncoder(namespace, md, common).EncodeToSink(w, v, current...)
}

// ToText encodes a Go value.
func ToText(v any, namespace string, md Metadata, common Labels) (string, error) {
	return newEncoder(namespace, md, common).Marshal(v)
}

// WriteText encodes a Go value into w.
func WriteText(w io.Writer, v any, namespace string, md Metadata, common Labels) error {
	return newEncoder(namespace, md, common).Write(w, v)
}

func newEncoder(namespace string, md Metadata, common Labels) *Encoder {
	return New(WithNamespace(namespace), WithMetadata(md), WithCommonLabels(common...))
}
