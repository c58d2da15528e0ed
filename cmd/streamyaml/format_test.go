// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yaml "github.com/streamyaml/streamyaml"
)

func loadRoot(t *testing.T, in string) *yaml.Node {
	t.Helper()
	stream, err := yaml.LoadString(in)
	require.NoError(t, err)
	require.Len(t, stream.Documents, 1)
	return stream.Documents[0].Root
}

func TestPrintTree(t *testing.T) {
	root := loadRoot(t, "a: 1\nb:\n  - x\n")
	var b strings.Builder
	printTree(&b, root, 0, map[*yaml.Node]bool{})
	assert.Equal(t, `mapping <tag:yaml.org,2002:map> @1:1
  scalar "a" @1:1
    scalar "1" @1:4
  scalar "b" @2:1
    sequence <tag:yaml.org,2002:seq> @3:3
      scalar "x" @3:5
`, b.String())
}

func TestPrintTreeCycle(t *testing.T) {
	root := loadRoot(t, "a: &m\n  self: *m\n")
	var b strings.Builder
	printTree(&b, root, 0, map[*yaml.Node]bool{})
	out := b.String()
	assert.Contains(t, out, "&1")
	assert.Contains(t, out, "*1")
}

func TestToJSON(t *testing.T) {
	root := loadRoot(t, "a: 1\nb: [x, {c: d}]\nempty:\n")
	out, err := toJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"1","b":["x",{"c":"d"}],"empty":""}`, out)
}

func TestToJSONPreservesKeyOrder(t *testing.T) {
	root := loadRoot(t, "z: 1\na: 2\nm: 3\n")
	out, err := toJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":"2","m":"3"}`, out)
}

func TestToJSONSharedNodes(t *testing.T) {
	// Shared subtrees expand at each reference; only cycles are an error.
	root := loadRoot(t, "a: &x [1]\nb: *x\n")
	out, err := toJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"a":["1"],"b":["1"]}`, out)
}

func TestToJSONCycle(t *testing.T) {
	root := loadRoot(t, "a: &m\n  self: *m\n")
	_, err := toJSON(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic")
}

func TestToJSONComplexKey(t *testing.T) {
	root := loadRoot(t, "? [1, 2]\n: v\n")
	out, err := toJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"[1, 2]":"v"}`, out)
}

func TestEscapedScalarsInJSON(t *testing.T) {
	root := loadRoot(t, "a: \"line\\nbreak\"\n")
	out, err := toJSON(root)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"line\nbreak"}`, out)
}
