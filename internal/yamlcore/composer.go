// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Composer stage: folds the event stream into document trees. Aliases are
// resolved against an id-indexed arena so aliased nodes are shared, not
// copied.

package yamlcore

import "fmt"

// DuplicateKeyPolicy selects what happens when a mapping contains two scalar
// keys with the same raw text. Equality is textual at this layer; "0x10" and
// "16" are different keys regardless of schema.
type DuplicateKeyPolicy int8

const (
	// ErrorOnDuplicateKey fails composition with a DuplicateKeyError.
	ErrorOnDuplicateKey DuplicateKeyPolicy = iota
	// KeepFirstKey silently drops later entries for the same key.
	KeepFirstKey
	// KeepLastKey keeps the latest value at the key's original position.
	KeepLastKey
)

// ComposerOptions configures a Composer.
type ComposerOptions struct {
	DuplicateKeys DuplicateKeyPolicy

	// SingleDocument rejects streams with more than one document.
	SingleDocument bool
}

// Composer builds Document trees from a parser's events.
type Composer struct {
	parser *Parser
	opts   ComposerOptions

	event      Event
	eventValid bool

	// arena maps anchor ids to the nodes they were bound to, within the
	// current document.
	arena map[int]*Node

	encoding Encoding
	doneInit bool
	docCount int
}

// NewComposer wires a composer over p. The parser must not have been advanced.
func NewComposer(p *Parser, opts ComposerOptions) *Composer {
	return &Composer{
		parser: p,
		opts:   opts,
		arena:  make(map[int]*Node),
	}
}

// peek makes the next event available without consuming it.
func (c *Composer) peek() (EventType, error) {
	if !c.eventValid {
		if err := c.parser.Parse(&c.event); err != nil {
			return NoEvent, err
		}
		c.eventValid = true
	}
	return c.event.Type, nil
}

// expect consumes the next event, checking its type.
func (c *Composer) expect(t EventType) error {
	typ, err := c.peek()
	if err != nil {
		return err
	}
	if typ != t {
		return composerErr(
			fmt.Sprintf("expected %s event but got %s", t, typ),
			c.event.Span.Start)
	}
	c.eventValid = false
	return nil
}

func (c *Composer) init() error {
	if c.doneInit {
		return nil
	}
	if _, err := c.peek(); err != nil {
		return err
	}
	c.encoding = c.event.Encoding
	if err := c.expect(StreamStartEvent); err != nil {
		return err
	}
	c.doneInit = true
	return nil
}

// Encoding returns the detected input encoding. Valid after the first
// document has been requested.
func (c *Composer) Encoding() Encoding { return c.encoding }

// NextDocument composes and returns the next document of the stream, or
// (nil, nil) once the stream is exhausted. Documents already returned stay
// valid when a later one fails.
func (c *Composer) NextDocument() (*Document, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	typ, err := c.peek()
	if err != nil {
		return nil, err
	}
	if typ == StreamEndEvent {
		c.eventValid = false
		return nil, nil
	}
	doc, err := c.document()
	if err != nil {
		return nil, err
	}
	c.docCount++
	if c.opts.SingleDocument && c.docCount > 1 {
		return nil, composerErr("expected a single document in the stream", doc.Span.Start)
	}
	return doc, nil
}

// Compose drains the stream into a Stream value. On error, the returned
// Stream still carries every document completed before the failure, alongside
// the error.
func (c *Composer) Compose() (*Stream, error) {
	stream := &Stream{}
	for {
		doc, err := c.NextDocument()
		if err != nil {
			stream.Encoding = c.encoding
			return stream, err
		}
		if doc == nil {
			stream.Encoding = c.encoding
			return stream, nil
		}
		stream.Documents = append(stream.Documents, doc)
	}
}

func (c *Composer) document() (*Document, error) {
	if _, err := c.peek(); err != nil {
		return nil, err
	}
	doc := &Document{
		ExplicitStart: c.event.Explicit,
		Version:       c.event.Version,
		TagDirectives: c.event.TagDirectives,
		Span:          Span{Start: c.event.Span.Start},
	}
	clear(c.arena)
	if err := c.expect(DocumentStartEvent); err != nil {
		return nil, err
	}
	root, err := c.node()
	if err != nil {
		return nil, err
	}
	doc.Root = root
	if _, err := c.peek(); err != nil {
		return nil, err
	}
	doc.ExplicitEnd = c.event.Explicit
	doc.Span.End = c.event.Span.End
	if err := c.expect(DocumentEndEvent); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Composer) node() (*Node, error) {
	typ, err := c.peek()
	if err != nil {
		return nil, err
	}
	switch typ {
	case ScalarEvent:
		return c.scalar()
	case AliasEvent:
		return c.alias()
	case SequenceStartEvent:
		return c.sequence()
	case MappingStartEvent:
		return c.mapping()
	}
	return nil, composerErr(
		fmt.Sprintf("unexpected %s event in document content", typ),
		c.event.Span.Start)
}

// bind records an anchored node in the arena. Binding happens before the
// node's children are composed so that an alias inside a collection can refer
// to the collection itself.
func (c *Composer) bind(n *Node) {
	if n.AnchorID != 0 {
		c.arena[n.AnchorID] = n
	}
}

func (c *Composer) alias() (*Node, error) {
	n := c.arena[c.event.Anchor]
	if n == nil {
		// The parser resolves names; an unbound id here means the event
		// stream was not produced by it.
		return nil, composerErr("alias references an unbound anchor id", c.event.Span.Start)
	}
	c.eventValid = false
	return n, nil
}

func (c *Composer) scalar() (*Node, error) {
	tag := c.event.Tag
	if tag == "" || tag == "!" {
		if c.event.Style != PlainStyle {
			tag = StrTag
		} else {
			tag = ""
		}
	}
	n := &Node{
		Kind:     ScalarNode,
		Style:    c.event.Style,
		Tag:      tag,
		Value:    c.event.Value,
		AnchorID: c.event.Anchor,
		Span:     c.event.Span,
	}
	c.bind(n)
	c.eventValid = false
	return n, nil
}

func (c *Composer) sequence() (*Node, error) {
	n := &Node{
		Kind:            SequenceNode,
		CollectionStyle: c.event.CollectionStyle,
		Tag:             c.event.Tag,
		AnchorID:        c.event.Anchor,
		Span:            c.event.Span,
	}
	if n.Tag == "" || n.Tag == "!" {
		n.Tag = SeqTag
	}
	c.bind(n)
	c.eventValid = false
	for {
		typ, err := c.peek()
		if err != nil {
			return nil, err
		}
		if typ == SequenceEndEvent {
			break
		}
		child, err := c.node()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, child)
	}
	n.Span.End = c.event.Span.End
	c.eventValid = false
	return n, nil
}

func (c *Composer) mapping() (*Node, error) {
	n := &Node{
		Kind:            MappingNode,
		CollectionStyle: c.event.CollectionStyle,
		Tag:             c.event.Tag,
		AnchorID:        c.event.Anchor,
		Span:            c.event.Span,
	}
	if n.Tag == "" || n.Tag == "!" {
		n.Tag = MapTag
	}
	c.bind(n)
	c.eventValid = false

	// Index of the key slot in Content for each scalar key text seen.
	seen := make(map[string]int)
	for {
		typ, err := c.peek()
		if err != nil {
			return nil, err
		}
		if typ == MappingEndEvent {
			break
		}
		key, err := c.node()
		if err != nil {
			return nil, err
		}
		value, err := c.node()
		if err != nil {
			return nil, err
		}

		// Only scalar keys are comparable at this layer; collection keys
		// are always kept.
		if key.Kind == ScalarNode {
			if at, dup := seen[key.Value]; dup {
				switch c.opts.DuplicateKeys {
				case ErrorOnDuplicateKey:
					return nil, duplicateKeyErr(
						key.Value, n.Content[at].Span.Start, key.Span.Start)
				case KeepFirstKey:
					continue
				case KeepLastKey:
					n.Content[at+1] = value
					continue
				}
			}
			seen[key.Value] = len(n.Content)
		}
		n.Content = append(n.Content, key, value)
	}
	n.Span.End = c.event.Span.End
	c.eventValid = false
	return n, nil
}
