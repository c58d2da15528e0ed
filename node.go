// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package streamyaml

import "github.com/streamyaml/streamyaml/internal/yamlcore"

//-----------------------------------------------------------------------------
// Node-related type aliases and constants
//-----------------------------------------------------------------------------

type (
	// Node is one vertex of a composed document tree. Aliased nodes are
	// shared pointers, so trees may be cyclic.
	// See internal/yamlcore.Node.
	Node = yamlcore.Node
	// Kind identifies the type of a node.
	// See internal/yamlcore.Kind.
	Kind = yamlcore.Kind
	// Pair is one key/value entry of a mapping node.
	Pair = yamlcore.Pair
	// Document is one composed document of a stream.
	// See internal/yamlcore.Document.
	Document = yamlcore.Document
	// Stream is the result of composing a whole input.
	Stream = yamlcore.Stream
)

// Re-export Kind constants
const (
	ScalarNode   = yamlcore.ScalarNode
	SequenceNode = yamlcore.SequenceNode
	MappingNode  = yamlcore.MappingNode
)

// Re-export ScalarStyle constants
const (
	PlainStyle        = yamlcore.PlainStyle
	SingleQuotedStyle = yamlcore.SingleQuotedStyle
	DoubleQuotedStyle = yamlcore.DoubleQuotedStyle
	LiteralStyle      = yamlcore.LiteralStyle
	FoldedStyle       = yamlcore.FoldedStyle
)

// Re-export CollectionStyle constants
const (
	BlockStyle = yamlcore.BlockStyle
	FlowStyle  = yamlcore.FlowStyle
)

// Well-known failsafe schema tags.
const (
	StrTag = yamlcore.StrTag
	SeqTag = yamlcore.SeqTag
	MapTag = yamlcore.MapTag
)
