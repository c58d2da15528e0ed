// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodesEqual compares two trees structurally: kind, value and content,
// ignoring styles, tags on untagged nodes and source positions. Shared and
// cyclic structure must match: nodes aliased together on one side must be
// aliased together on the other.
func nodesEqual(a, b *Node, seen map[*Node]*Node) bool {
	if prior, ok := seen[a]; ok {
		return prior == b
	}
	seen[a] = b
	if a.Kind != b.Kind || a.Value != b.Value || len(a.Content) != len(b.Content) {
		return false
	}
	for i := range a.Content {
		if !nodesEqual(a.Content[i], b.Content[i], seen) {
			return false
		}
	}
	return true
}

// roundTrip loads in, dumps the result and loads it again, requiring the two
// trees to be structurally identical.
func roundTrip(t *testing.T, in string) {
	t.Helper()
	first := mustCompose(t, in)
	out, err := NewEmitter(2).EmitStream(first)
	require.NoError(t, err)

	second, err := compose(t, string(out), ComposerOptions{})
	require.NoError(t, err, "re-parse of emitted output:\n%s", out)
	require.Len(t, second.Documents, len(first.Documents), "emitted output:\n%s", out)
	for i := range first.Documents {
		assert.True(t,
			nodesEqual(first.Documents[i].Root, second.Documents[i].Root, map[*Node]*Node{}),
			"document %d of emitted output:\n%s", i, out)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"scalar", "hello\n"},
		{"mapping", "a: 1\nb: 2\n"},
		{"sequence", "- 1\n- 2\n"},
		{"nested", "a:\n  b:\n    - 1\n    - c: 2\n"},
		{"flow styles", "a: [1, 2]\nb: {x: y}\n"},
		{"empty collections", "a: []\nb: {}\n"},
		{"empty values", "a:\nb: 1\n"},
		{"quoting needed", "- 'hello world'\n- \"a:b\"\n- ': leading'\n- '#hash'\n"},
		{"multiline scalar", "a: |\n  line one\n  line two\n"},
		{"special characters", "- \"tab\\there\"\n- \"quote\\\"inside\"\n"},
		{"aliases", "a: &x [1, 2]\nb: *x\n"},
		{"aliased scalar", "a: &v same\nb: *v\n"},
		{"multi document", "a: 1\n---\nb: 2\n"},
		{"explicit markers", "---\na: 1\n...\n"},
		{"complex key", "? [1, 2]\n: value\n"},
		{"tagged scalar", "!!binary aGk=\n"},
		{"deep sequence nesting", "- - - 1\n"},
		{"numericish strings", "- 007\n- \"12\"\n- -3\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			roundTrip(t, tc.in)
		})
	}
}

func TestRoundTripCycle(t *testing.T) {
	roundTrip(t, "&a [*a, 1]\n")
}

func TestEmitScalarQuoting(t *testing.T) {
	for _, tc := range []struct {
		value string
		exp   string
	}{
		{"plain", "plain\n"},
		{"", "\"\"\n"},
		{"---", "\"---\"\n"},
		{"a: b", "\"a: b\"\n"},
		{"#comment", "\"#comment\"\n"},
		{"line\nbreak", "\"line\\nbreak\"\n"},
		{"trailing ", "\"trailing \"\n"},
		{"ends:", "\"ends:\"\n"},
		{"\ufeffmarked", "\"\\ufeffmarked\"\n"},
	} {
		out, err := NewEmitter(2).EmitDocument(&Document{
			Root: &Node{Kind: ScalarNode, Value: tc.value},
		})
		require.NoError(t, err)
		assert.Equal(t, tc.exp, string(out))
	}
}

func TestEmitBlockLayout(t *testing.T) {
	stream := mustCompose(t, "a:\n  - 1\n  - x: 2\n")
	out, err := NewEmitter(2).EmitStream(stream)
	require.NoError(t, err)
	assert.Equal(t, "a:\n  - 1\n  -\n    x: 2\n", string(out))
}

func TestEmitAnchorsForSharedNodes(t *testing.T) {
	stream := mustCompose(t, "a: &x [1]\nb: *x\n")
	out, err := NewEmitter(2).EmitStream(stream)
	require.NoError(t, err)
	assert.Contains(t, string(out), "&a1")
	assert.Contains(t, string(out), "*a1")
}

func TestEmitMultiDocumentSeparators(t *testing.T) {
	stream := mustCompose(t, "a\n---\nb\n")
	out, err := NewEmitter(2).EmitStream(stream)
	require.NoError(t, err)
	assert.Equal(t, "a\n---\nb\n", string(out))
}

func TestEmitDirectives(t *testing.T) {
	stream := mustCompose(t, "%YAML 1.2\n---\na\n")
	out, err := NewEmitter(2).EmitStream(stream)
	require.NoError(t, err)
	assert.Equal(t, "%YAML 1.2\n---\na\n", string(out))
}

func TestEmitMissingRoot(t *testing.T) {
	_, err := NewEmitter(2).EmitDocument(&Document{})
	require.Error(t, err)
}
