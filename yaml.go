// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package streamyaml is a streaming YAML parser.
//
// The package exposes three layers. The event layer pulls one Event at a
// time from the input, allocating nothing between events; the tree layer
// composes events into generic Node trees, one Document per "---" section;
// the dump layer renders composed trees back to text.
//
// This file contains:
// - Type and constant re-exports from internal/yamlcore
// - The event-level Parser API (pull and push)
// - The tree-level Load API

package streamyaml

import (
	"io"

	"github.com/streamyaml/streamyaml/internal/yamlcore"
)

//-----------------------------------------------------------------------------
// Type re-exports
//-----------------------------------------------------------------------------

type (
	// Mark is a position in the source text.
	// See internal/yamlcore.Mark.
	Mark = yamlcore.Mark
	// Span bounds the source extent of an event or node.
	// See internal/yamlcore.Span.
	Span = yamlcore.Span
	// Event is one structural step of a YAML stream.
	// See internal/yamlcore.Event.
	Event = yamlcore.Event
	// EventType discriminates the Event union.
	EventType = yamlcore.EventType
	// Encoding identifies the detected input encoding.
	Encoding = yamlcore.Encoding
	// ScalarStyle is the presentation style of a scalar.
	ScalarStyle = yamlcore.ScalarStyle
	// CollectionStyle records block or flow form for collections.
	CollectionStyle = yamlcore.CollectionStyle
	// VersionDirective is a %YAML directive value.
	VersionDirective = yamlcore.VersionDirective
	// TagDirective is a %TAG handle/prefix binding.
	TagDirective = yamlcore.TagDirective

	// Parser pulls events from an input.
	// See internal/yamlcore.Parser.
	Parser = yamlcore.Parser
	// Composer builds Document trees from a parser's events.
	// See internal/yamlcore.Composer.
	Composer = yamlcore.Composer
)

// Error types. Every error this package returns carries the position it
// applies to.
type (
	// ScannerError reports a malformed token.
	ScannerError = yamlcore.ScannerError
	// ParserError reports a token the grammar does not admit, or an
	// exceeded nesting depth limit.
	ParserError = yamlcore.ParserError
	// AnchorError reports an alias to an undefined anchor.
	AnchorError = yamlcore.AnchorError
	// DuplicateKeyError reports a repeated mapping key under the
	// ErrorOnDuplicateKey policy.
	DuplicateKeyError = yamlcore.DuplicateKeyError
	// ComposerError reports a structural problem while building trees.
	ComposerError = yamlcore.ComposerError
	// ReaderError reports a failure to obtain or decode the input.
	ReaderError = yamlcore.ReaderError
)

// Re-export EventType constants
const (
	StreamStartEvent   = yamlcore.StreamStartEvent
	StreamEndEvent     = yamlcore.StreamEndEvent
	DocumentStartEvent = yamlcore.DocumentStartEvent
	DocumentEndEvent   = yamlcore.DocumentEndEvent
	AliasEvent         = yamlcore.AliasEvent
	ScalarEvent        = yamlcore.ScalarEvent
	SequenceStartEvent = yamlcore.SequenceStartEvent
	SequenceEndEvent   = yamlcore.SequenceEndEvent
	MappingStartEvent  = yamlcore.MappingStartEvent
	MappingEndEvent    = yamlcore.MappingEndEvent
)

// Re-export Encoding constants
const (
	UTF8Encoding    = yamlcore.UTF8Encoding
	UTF16LEEncoding = yamlcore.UTF16LEEncoding
	UTF16BEEncoding = yamlcore.UTF16BEEncoding
)

//-----------------------------------------------------------------------------
// Event-level API
//-----------------------------------------------------------------------------

// NewParser returns a Parser over in. The input encoding (UTF-8 or UTF-16,
// with or without BOM) is detected up front.
//
// Call Parse repeatedly to pull events; after the StreamEnd event it returns
// io.EOF. The first parse error is sticky.
func NewParser(in []byte, opts ...Option) (*Parser, error) {
	o, err := yamlcore.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return yamlcore.NewParser(in, o.MaxDepth())
}

// NewParserString returns a Parser over the string s.
func NewParserString(s string, opts ...Option) (*Parser, error) {
	return NewParser([]byte(s), opts...)
}

// NewParserReader drains r and returns a Parser over its contents.
func NewParserReader(r io.Reader, opts ...Option) (*Parser, error) {
	o, err := yamlcore.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return yamlcore.NewParserFromReader(r, o.MaxDepth())
}

// EventReceiver consumes events during a push-mode parse.
type EventReceiver interface {
	Event(e *Event) error
}

// EventFunc adapts a function to the EventReceiver interface.
type EventFunc func(e *Event) error

func (f EventFunc) Event(e *Event) error { return f(e) }

// ParseAll parses in and hands every event, StreamStart through StreamEnd,
// to recv. It returns the first parse error or the first error returned by
// recv.
func ParseAll(in []byte, recv EventReceiver, opts ...Option) error {
	p, err := NewParser(in, opts...)
	if err != nil {
		return err
	}
	var event Event
	for {
		if err := p.Parse(&event); err != nil {
			return err
		}
		if err := recv.Event(&event); err != nil {
			return err
		}
		if event.Type == StreamEndEvent {
			return nil
		}
	}
}

// EventTrace parses in and renders every event in a compact one-line-per-
// event notation. Intended for debugging and tests.
func EventTrace(in []byte, opts ...Option) (string, error) {
	o, err := yamlcore.ApplyOptions(opts...)
	if err != nil {
		return "", err
	}
	return yamlcore.EventsString(in, o.MaxDepth())
}

//-----------------------------------------------------------------------------
// Tree-level API
//-----------------------------------------------------------------------------

// NewComposer returns a Composer over in. Call NextDocument to pull composed
// documents one at a time.
func NewComposer(in []byte, opts ...Option) (*Composer, error) {
	o, err := yamlcore.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	p, err := yamlcore.NewParser(in, o.MaxDepth())
	if err != nil {
		return nil, err
	}
	return yamlcore.NewComposer(p, yamlcore.ComposerOptions{
		DuplicateKeys:  o.DuplicateKeys(),
		SingleDocument: o.SingleDocument(),
	}), nil
}

// NewComposerReader drains r and returns a Composer over its contents.
func NewComposerReader(r io.Reader, opts ...Option) (*Composer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewComposer(data, opts...)
}

// Load parses in and composes every document into a Stream.
//
// On error, the returned Stream is still non-nil and carries the documents
// completed before the failure.
func Load(in []byte, opts ...Option) (*Stream, error) {
	c, err := NewComposer(in, opts...)
	if err != nil {
		return &Stream{}, err
	}
	return c.Compose()
}

// LoadString parses the string s. See Load.
func LoadString(s string, opts ...Option) (*Stream, error) {
	return Load([]byte(s), opts...)
}

// LoadReader drains r and parses its contents. See Load.
func LoadReader(r io.Reader, opts ...Option) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Stream{}, err
	}
	return Load(data, opts...)
}
