// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

// Kind identifies the type of a node.
type Kind int8

const (
	// ScalarNode holds a scalar value in Value.
	ScalarNode Kind = 1 << iota
	// SequenceNode holds its items in Content.
	SequenceNode
	// MappingNode holds interleaved key/value pairs in Content:
	// Content[0] is the first key, Content[1] its value, and so on.
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	}
	return "<unknown node kind>"
}

// Node is one vertex of a composed document tree.
//
// Aliased nodes are shared: an alias inserts the anchored node's pointer
// into the referring collection, so the same *Node may appear any number of
// times in a tree, and a tree may be cyclic when an alias refers to one of
// its own ancestors. Walkers that must terminate on arbitrary input have to
// track visited nodes.
type Node struct {
	// Kind is the node type; the zero value marks an uninitialized node.
	Kind Kind

	// Style is the presentation style of a scalar node.
	Style ScalarStyle

	// CollectionStyle records block or flow form for collection nodes.
	CollectionStyle CollectionStyle

	// Tag is the resolved tag. Untagged collections carry the seq/map tags;
	// untagged non-plain scalars carry the str tag; untagged plain scalars
	// are left empty for a schema layer to resolve.
	Tag string

	// Value is the text of a scalar node.
	Value string

	// Content holds sequence items, or interleaved mapping keys and values.
	Content []*Node

	// AnchorID is the anchor bound to this node, zero if none. Ids are
	// document-scoped and assigned in document order starting at 1.
	AnchorID int

	// Span is the source extent of the node.
	Span Span
}

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key, Value *Node
}

// Pairs returns the entries of a mapping node in insertion order. It returns
// nil for other kinds.
func (n *Node) Pairs() []Pair {
	if n.Kind != MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, Pair{Key: n.Content[i], Value: n.Content[i+1]})
	}
	return pairs
}

// Get returns the value of the first mapping entry whose key is a scalar with
// the given text, or nil.
func (n *Node) Get(key string) *Node {
	if n.Kind != MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; k.Kind == ScalarNode && k.Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// IsNull reports whether the node is an empty plain scalar, the form omitted
// values take.
func (n *Node) IsNull() bool {
	return n.Kind == ScalarNode && n.Style == PlainStyle && n.Value == "" && n.Tag == ""
}

// Document is one composed document of a stream.
type Document struct {
	// Root is the document's root node. An empty document has an empty
	// plain scalar root rather than a nil one.
	Root *Node

	// Whether the document's boundaries were marked in the source with
	// "---" and "..." respectively.
	ExplicitStart bool
	ExplicitEnd   bool

	// Version is the %YAML directive value, if the document declared one.
	Version *VersionDirective

	// TagDirectives are the %TAG bindings the document declared, without
	// the implicit default bindings.
	TagDirectives []TagDirective

	// Span runs from the first directive or "---" to the end of "..." or
	// of the root node.
	Span Span
}

// Stream is the result of composing a whole input.
type Stream struct {
	Documents []*Document
	Encoding  Encoding
}
