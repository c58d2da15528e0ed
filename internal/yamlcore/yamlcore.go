// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Core types shared by the scanner, parser and composer: source positions,
// styles, tokens and events.

package yamlcore

import (
	"fmt"
	"strings"
)

// Mark is a position in the source text.
//
// Index is a 0-based character index, Line is 1-based and Column is 0-based.
// Errors render Column 1-based for humans; the stored value stays 0-based.
type Mark struct {
	Index  int
	Line   int
	Column int
}

func (m Mark) String() string {
	if m.Line == 0 {
		return "<unknown position>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "line %d", m.Line)
	fmt.Fprintf(&b, ", column %d", m.Column+1)
	return b.String()
}

// Span bounds the source extent of a token, event or node.
// Start is inclusive, End exclusive.
type Span struct {
	Start Mark
	End   Mark
}

// EmptySpan returns a zero-length span at the given position.
func EmptySpan(m Mark) Span {
	return Span{Start: m, End: m}
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int { return s.End.Index - s.Start.Index }

// Encoding identifies the detected encoding of the input stream.
type Encoding int

const (
	UTF8Encoding Encoding = iota
	UTF16LEEncoding
	UTF16BEEncoding
)

func (e Encoding) String() string {
	switch e {
	case UTF16LEEncoding:
		return "UTF-16LE"
	case UTF16BEEncoding:
		return "UTF-16BE"
	default:
		return "UTF-8"
	}
}

// ScalarStyle is the presentation style a scalar was written in. It selects
// termination and escaping rules during scanning; it says nothing about the
// semantic type of the value.
type ScalarStyle int8

const (
	PlainStyle ScalarStyle = iota
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainStyle:
		return "Plain"
	case SingleQuotedStyle:
		return "SingleQuoted"
	case DoubleQuotedStyle:
		return "DoubleQuoted"
	case LiteralStyle:
		return "Literal"
	case FoldedStyle:
		return "Folded"
	}
	return "<unknown scalar style>"
}

// CollectionStyle records whether a sequence or mapping was written in
// indentation-based block form or bracketed flow form.
type CollectionStyle int8

const (
	BlockStyle CollectionStyle = iota
	FlowStyle
)

func (s CollectionStyle) String() string {
	if s == FlowStyle {
		return "Flow"
	}
	return "Block"
}

// VersionDirective is a %YAML directive value.
type VersionDirective struct {
	Major int
	Minor int
}

// TagDirective is a %TAG handle/prefix binding. Bindings are document-scoped.
type TagDirective struct {
	Handle string
	Prefix string
}

// Default tag directives implicitly in effect for every document.
var defaultTagDirectives = []TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
}

// Well-known tags for the failsafe schema. The composer stamps untagged
// collections with the seq/map tags; scalar resolution beyond that is left to
// schema layers above this package.
const (
	StrTag = "tag:yaml.org,2002:str"
	SeqTag = "tag:yaml.org,2002:seq"
	MapTag = "tag:yaml.org,2002:map"
)

// Tokens. The token stream is internal to the scanner/parser boundary and is
// not part of the public API.

type tokenType int8

const (
	noToken tokenType = iota

	tokenStreamStart
	tokenStreamEnd

	tokenVersionDirective
	tokenTagDirective
	tokenDocumentStart
	tokenDocumentEnd

	tokenBlockSequenceStart
	tokenBlockMappingStart
	tokenBlockEnd

	tokenFlowSequenceStart
	tokenFlowSequenceEnd
	tokenFlowMappingStart
	tokenFlowMappingEnd

	tokenBlockEntry
	tokenFlowEntry
	tokenKey
	tokenValue

	tokenAlias
	tokenAnchor
	tokenTag
	tokenScalar
)

var tokenNames = []string{
	noToken:                 "NONE",
	tokenStreamStart:        "STREAM-START",
	tokenStreamEnd:          "STREAM-END",
	tokenVersionDirective:   "VERSION-DIRECTIVE",
	tokenTagDirective:       "TAG-DIRECTIVE",
	tokenDocumentStart:      "DOCUMENT-START",
	tokenDocumentEnd:        "DOCUMENT-END",
	tokenBlockSequenceStart: "BLOCK-SEQUENCE-START",
	tokenBlockMappingStart:  "BLOCK-MAPPING-START",
	tokenBlockEnd:           "BLOCK-END",
	tokenFlowSequenceStart:  "FLOW-SEQUENCE-START",
	tokenFlowSequenceEnd:    "FLOW-SEQUENCE-END",
	tokenFlowMappingStart:   "FLOW-MAPPING-START",
	tokenFlowMappingEnd:     "FLOW-MAPPING-END",
	tokenBlockEntry:         "BLOCK-ENTRY",
	tokenFlowEntry:          "FLOW-ENTRY",
	tokenKey:                "KEY",
	tokenValue:              "VALUE",
	tokenAlias:              "ALIAS",
	tokenAnchor:             "ANCHOR",
	tokenTag:                "TAG",
	tokenScalar:             "SCALAR",
}

func (t tokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "<unknown token>"
	}
	return tokenNames[t]
}

// token is the smallest lexical unit produced by the scanner.
type token struct {
	typ  tokenType
	span Span

	// The anchor/alias name, scalar text, tag handle or directive handle.
	value string
	// The tag suffix (tag tokens) or directive prefix (tag directive tokens).
	suffix string

	style ScalarStyle

	// Version directive numbers.
	major, minor int
}

// Events.

// EventType discriminates the Event union.
type EventType int8

const (
	NoEvent EventType = iota

	StreamStartEvent
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	AliasEvent
	ScalarEvent
	SequenceStartEvent
	SequenceEndEvent
	MappingStartEvent
	MappingEndEvent
)

var eventNames = []string{
	NoEvent:            "none",
	StreamStartEvent:   "stream start",
	StreamEndEvent:     "stream end",
	DocumentStartEvent: "document start",
	DocumentEndEvent:   "document end",
	AliasEvent:         "alias",
	ScalarEvent:        "scalar",
	SequenceStartEvent: "sequence start",
	SequenceEndEvent:   "sequence end",
	MappingStartEvent:  "mapping start",
	MappingEndEvent:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventNames[e]
}

// Event is one structural step of a YAML stream. The parser emits events in
// document order; every Start event is matched by exactly one End event at
// the same nesting depth.
type Event struct {
	Type EventType

	// Source extent of the event.
	Span Span

	// The detected input encoding (stream start only).
	Encoding Encoding

	// The version directive, if any, and tag directives declared for the
	// document (document start only).
	Version       *VersionDirective
	TagDirectives []TagDirective

	// Whether the document boundary was written in the source ("---"/"...")
	// rather than implied (document start/end only).
	Explicit bool

	// Anchor id bound to this node, or referenced by this alias. Zero means
	// no anchor. Ids are assigned in document order starting at 1 and reset
	// at every document start.
	Anchor int

	// Resolved tag (scalar, sequence start, mapping start). Empty when the
	// node carries no explicit tag.
	Tag string

	// Scalar text and style (scalar events only).
	Value string
	Style ScalarStyle

	// Collection style (sequence/mapping start only).
	CollectionStyle CollectionStyle
}
