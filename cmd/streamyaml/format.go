// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	yaml "github.com/streamyaml/streamyaml"
)

// printTree writes one line per node, indented by depth. Nodes reached a
// second time print as an alias reference, which also terminates cycles.
func printTree(w io.Writer, n *yaml.Node, depth int, visited map[*yaml.Node]bool) {
	pad := strings.Repeat("  ", depth)
	if visited[n] {
		fmt.Fprintf(w, "%s*%d\n", pad, n.AnchorID)
		return
	}
	visited[n] = true

	var props strings.Builder
	if n.AnchorID != 0 {
		fmt.Fprintf(&props, " &%d", n.AnchorID)
	}
	if n.Tag != "" {
		fmt.Fprintf(&props, " <%s>", n.Tag)
	}
	loc := fmt.Sprintf(" @%d:%d", n.Span.Start.Line, n.Span.Start.Column+1)

	switch n.Kind {
	case yaml.ScalarNode:
		fmt.Fprintf(w, "%sscalar%s %s%s\n", pad, props.String(), strconv.Quote(n.Value), loc)
	case yaml.SequenceNode:
		fmt.Fprintf(w, "%ssequence%s%s\n", pad, props.String(), loc)
		for _, item := range n.Content {
			printTree(w, item, depth+1, visited)
		}
	case yaml.MappingNode:
		fmt.Fprintf(w, "%smapping%s%s\n", pad, props.String(), loc)
		for _, pair := range n.Pairs() {
			printTree(w, pair.Key, depth+1, visited)
			printTree(w, pair.Value, depth+2, visited)
		}
	}
	delete(visited, n)
}

// toJSON renders a document tree as compact JSON. Mapping order is
// preserved; all scalars render as JSON strings since this layer does no
// schema resolution.
func toJSON(n *yaml.Node) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, n, map[*yaml.Node]bool{}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(b *strings.Builder, n *yaml.Node, active map[*yaml.Node]bool) error {
	if active[n] {
		return errors.New("cannot represent a cyclic document as JSON")
	}
	active[n] = true
	defer delete(active, n)

	switch n.Kind {
	case yaml.ScalarNode:
		b.WriteString(strconv.Quote(n.Value))
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item, active); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case yaml.MappingNode:
		b.WriteByte('{')
		for i, pair := range n.Pairs() {
			if i > 0 {
				b.WriteByte(',')
			}
			if pair.Key.Kind == yaml.ScalarNode {
				b.WriteString(strconv.Quote(pair.Key.Value))
			} else {
				// JSON keys must be strings; re-emit complex keys as YAML.
				text, err := yaml.DumpNode(pair.Key)
				if err != nil {
					return err
				}
				b.WriteString(strconv.Quote(strings.TrimSuffix(string(text), "\n")))
			}
			b.WriteByte(':')
			if err := writeJSON(b, pair.Value, active); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}
	return nil
}
