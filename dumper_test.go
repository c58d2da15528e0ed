// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package streamyaml_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yaml "github.com/streamyaml/streamyaml"
)

func TestDump(t *testing.T) {
	stream, err := yaml.LoadString("a: 1\nb:\n  - x\n  - y\n")
	require.NoError(t, err)
	out, err := yaml.Dump(stream)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb:\n  - x\n  - y\n", string(out))
}

func TestDumpIndent(t *testing.T) {
	stream, err := yaml.LoadString("b:\n  - x\n")
	require.NoError(t, err)
	out, err := yaml.Dump(stream, yaml.WithIndent(4))
	require.NoError(t, err)
	assert.Equal(t, "b:\n    - x\n", string(out))
}

func TestDumpNode(t *testing.T) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: "hello world"}
	out, err := yaml.DumpNode(n)
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(out))
}

func TestDumpDocumentDirectives(t *testing.T) {
	stream, err := yaml.LoadString("%YAML 1.2\n---\na: 1\n")
	require.NoError(t, err)
	out, err := yaml.DumpDocument(stream.Documents[0])
	require.NoError(t, err)
	assert.Equal(t, "%YAML 1.2\n---\na: 1\n", string(out))
}

func TestDumpTo(t *testing.T) {
	stream, err := yaml.LoadString("a: 1\n")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, yaml.DumpTo(&buf, stream))
	assert.Equal(t, "a: 1\n", buf.String())
}

func TestDumpSharedNodes(t *testing.T) {
	stream, err := yaml.LoadString("a: &x\n  k: v\nb: *x\n")
	require.NoError(t, err)
	out, err := yaml.Dump(stream)
	require.NoError(t, err)

	reloaded, err := yaml.Load(out)
	require.NoError(t, err)
	root := reloaded.Documents[0].Root
	assert.Same(t, root.Get("a"), root.Get("b"))
}

func TestDumpCycle(t *testing.T) {
	stream, err := yaml.LoadString("me: &self\n  inner: *self\n")
	require.NoError(t, err)
	out, err := yaml.Dump(stream)
	require.NoError(t, err)

	reloaded, err := yaml.Load(out)
	require.NoError(t, err)
	m := reloaded.Documents[0].Root.Get("me")
	require.NotNil(t, m)
	assert.Same(t, m, m.Get("inner"))
}
