// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Emitter stage: renders composed trees back to text. Output is structural,
// not byte-faithful: re-parsing it yields an equivalent tree, but formatting
// details of the source are not preserved. Shared nodes come out as anchors
// and aliases, which keeps cyclic trees emittable.

package yamlcore

import (
	"fmt"
	"strings"
)

// Emitter renders node trees. The zero value is not usable; construct with
// NewEmitter.
type Emitter struct {
	buf    strings.Builder
	indent int

	// Nodes appearing more than once in the tree being emitted get an
	// anchor on first occurrence and aliases afterwards.
	shared  map[*Node]bool
	anchors map[*Node]int
	nextID  int
}

// NewEmitter returns an emitter using the given indentation step.
// Steps outside 1..9 fall back to 2.
func NewEmitter(indent int) *Emitter {
	if indent < 1 || indent > 9 {
		indent = 2
	}
	return &Emitter{indent: indent}
}

// EmitStream renders every document of the stream, separating documents with
// explicit "---" markers from the second one on.
func (e *Emitter) EmitStream(s *Stream) ([]byte, error) {
	e.buf.Reset()
	for i, doc := range s.Documents {
		if err := e.emitDocument(doc, i > 0); err != nil {
			return nil, err
		}
	}
	return []byte(e.buf.String()), nil
}

// EmitDocument renders a single document.
func (e *Emitter) EmitDocument(doc *Document) ([]byte, error) {
	e.buf.Reset()
	if err := e.emitDocument(doc, false); err != nil {
		return nil, err
	}
	return []byte(e.buf.String()), nil
}

func (e *Emitter) emitDocument(doc *Document, forceStart bool) error {
	if doc.Root == nil {
		return composerErr("cannot emit a document without a root node", Mark{})
	}

	explicit := forceStart || doc.ExplicitStart
	if doc.Version != nil {
		fmt.Fprintf(&e.buf, "%%YAML %d.%d\n", doc.Version.Major, doc.Version.Minor)
		explicit = true
	}
	for _, td := range doc.TagDirectives {
		fmt.Fprintf(&e.buf, "%%TAG %s %s\n", td.Handle, td.Prefix)
		explicit = true
	}
	if explicit {
		e.buf.WriteString("---\n")
	}

	e.shared = make(map[*Node]bool)
	e.anchors = make(map[*Node]int)
	e.nextID = 0
	markShared(doc.Root, make(map[*Node]bool), e.shared)

	if err := e.emitNode(doc.Root, 0); err != nil {
		return err
	}
	e.buf.WriteByte('\n')
	if doc.ExplicitEnd {
		e.buf.WriteString("...\n")
	}
	return nil
}

// markShared walks the tree and records every node reached twice. Cycles
// terminate because a node is never descended into a second time.
func markShared(n *Node, visited, shared map[*Node]bool) {
	if visited[n] {
		shared[n] = true
		return
	}
	visited[n] = true
	for _, child := range n.Content {
		markShared(child, visited, shared)
	}
}

// props renders the anchor and tag prefix of a node, returning an alias
// instead when the node was already emitted.
func (e *Emitter) props(n *Node) (prefix string, alias bool) {
	if id, ok := e.anchors[n]; ok {
		return fmt.Sprintf("*a%d", id), true
	}
	var b strings.Builder
	if e.shared[n] {
		e.nextID++
		e.anchors[n] = e.nextID
		fmt.Fprintf(&b, "&a%d ", e.nextID)
	}
	if tag := e.emittedTag(n); tag != "" {
		b.WriteString(tag)
		b.WriteByte(' ')
	}
	return b.String(), false
}

// emittedTag returns the tag to write for n, empty when the tag is the one
// the composer would stamp back on anyway.
func (e *Emitter) emittedTag(n *Node) string {
	tag := n.Tag
	switch n.Kind {
	case SequenceNode:
		if tag == SeqTag || tag == "" {
			return ""
		}
	case MappingNode:
		if tag == MapTag || tag == "" {
			return ""
		}
	case ScalarNode:
		if tag == "" {
			return ""
		}
		if tag == StrTag && n.Style != PlainStyle {
			return ""
		}
	}
	if suffix, ok := strings.CutPrefix(tag, "tag:yaml.org,2002:"); ok {
		return "!!" + suffix
	}
	return "!<" + tag + ">"
}

func (e *Emitter) emitNode(n *Node, depth int) error {
	prefix, alias := e.props(n)
	if alias {
		e.buf.WriteString(prefix)
		return nil
	}
	switch n.Kind {
	case ScalarNode:
		e.buf.WriteString(prefix)
		e.buf.WriteString(renderScalar(n.Value, false))
		return nil
	case SequenceNode:
		return e.emitSequence(n, prefix, depth)
	case MappingNode:
		return e.emitMapping(n, prefix, depth)
	}
	return composerErr("cannot emit a node of unknown kind", n.Span.Start)
}

// emitFlowNode renders n on the current line in flow context.
func (e *Emitter) emitFlowNode(n *Node) error {
	prefix, alias := e.props(n)
	e.buf.WriteString(prefix)
	if alias {
		return nil
	}
	switch n.Kind {
	case ScalarNode:
		e.buf.WriteString(renderScalar(n.Value, true))
		return nil
	case SequenceNode:
		e.buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.emitFlowNode(item); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
		return nil
	case MappingNode:
		e.buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			aliasKey := e.isAliasNext(n.Content[i])
			if err := e.emitFlowNode(n.Content[i]); err != nil {
				return err
			}
			// An alias name would swallow an adjacent ':'.
			if aliasKey {
				e.buf.WriteByte(' ')
			}
			e.buf.WriteString(": ")
			if err := e.emitFlowNode(n.Content[i+1]); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
		return nil
	}
	return composerErr("cannot emit a node of unknown kind", n.Span.Start)
}

func (e *Emitter) emitSequence(n *Node, prefix string, depth int) error {
	if n.CollectionStyle == FlowStyle || len(n.Content) == 0 {
		e.buf.WriteString(prefix)
		return e.emitFlowNode(&Node{Kind: SequenceNode, Content: n.Content})
	}
	if prefix != "" {
		e.buf.WriteString(strings.TrimSuffix(prefix, " "))
		e.newline(depth)
	}
	for i, item := range n.Content {
		if i > 0 {
			e.newline(depth)
		}
		if e.inlineable(item) {
			e.buf.WriteString("- ")
			if err := e.emitNode(item, depth); err != nil {
				return err
			}
		} else {
			e.buf.WriteByte('-')
			e.newline(depth + 1)
			if err := e.emitNode(item, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Emitter) emitMapping(n *Node, prefix string, depth int) error {
	if n.CollectionStyle == FlowStyle || len(n.Content) == 0 {
		e.buf.WriteString(prefix)
		return e.emitFlowNode(&Node{Kind: MappingNode, Content: n.Content})
	}
	if prefix != "" {
		e.buf.WriteString(strings.TrimSuffix(prefix, " "))
		e.newline(depth)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if i > 0 {
			e.newline(depth)
		}
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind == ScalarNode {
			kp, alias := e.props(key)
			e.buf.WriteString(kp)
			if alias {
				e.buf.WriteByte(' ')
			} else {
				e.buf.WriteString(renderScalar(key.Value, false))
			}
			e.buf.WriteByte(':')
		} else {
			// Collection keys need the explicit key form.
			if e.inlineable(key) {
				e.buf.WriteString("? ")
				if err := e.emitNode(key, depth); err != nil {
					return err
				}
			} else {
				e.buf.WriteByte('?')
				e.newline(depth + 1)
				if err := e.emitNode(key, depth+1); err != nil {
					return err
				}
			}
			e.newline(depth)
			e.buf.WriteByte(':')
		}
		if e.inlineable(value) {
			e.buf.WriteByte(' ')
			if err := e.emitNode(value, depth); err != nil {
				return err
			}
		} else {
			e.newline(depth + 1)
			if err := e.emitNode(value, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// inlineable reports whether n can be rendered on the current line rather
// than as an indented block underneath it.
func (e *Emitter) inlineable(n *Node) bool {
	return n.Kind == ScalarNode || e.isAliasNext(n) ||
		n.CollectionStyle == FlowStyle || len(n.Content) == 0
}

func (e *Emitter) isAliasNext(n *Node) bool {
	_, ok := e.anchors[n]
	return ok
}

func (e *Emitter) newline(depth int) {
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(" ", depth*e.indent))
}

// renderScalar emits value in plain style when that parses back to the same
// text, double-quoted otherwise.
func renderScalar(value string, flow bool) string {
	if plainSafe(value, flow) {
		return value
	}
	return quoteScalar(value)
}

// plainSafe reports whether value may be written as a plain scalar without
// changing its meaning. The check is conservative: quoting a scalar that
// could have stayed plain only costs bytes.
func plainSafe(value string, flow bool) bool {
	if value == "" || value == "---" || value == "..." {
		return false
	}
	if strings.ContainsAny(value[:1], "-?:,[]{}#&*!|>'\"%@` \t") {
		return false
	}
	last := value[len(value)-1]
	if last == ':' || last == ' ' || last == '\t' {
		return false
	}
	if strings.ContainsAny(value, "\n\r") ||
		strings.Contains(value, ": ") ||
		strings.Contains(value, " #") {
		return false
	}
	if flow && strings.ContainsAny(value, ",[]{}:") {
		return false
	}
	for _, r := range value {
		if r < 0x20 || r == 0x7F || isBOM(r) {
			return false
		}
	}
	return true
}

// quoteScalar renders value as a double-quoted scalar.
func quoteScalar(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else if isBOM(r) || r == 0x2028 || r == 0x2029 || r == 0x85 || r == 0xA0 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
