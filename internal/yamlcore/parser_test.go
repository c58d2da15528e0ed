// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserEvents(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		exp  string
	}{
		{
			name: "implicit document",
			in:   "a: b\n",
			exp: `+STR
+DOC
+MAP
=VAL :a
=VAL :b
-MAP
-DOC
-STR`,
		},
		{
			name: "explicit document",
			in:   "---\na: b\n",
			exp: `+STR
+DOC ---
+MAP
=VAL :a
=VAL :b
-MAP
-DOC
-STR`,
		},
		{
			name: "block sequence",
			in:   "- 1\n- 2\n- 3\n",
			exp: `+STR
+DOC
+SEQ
=VAL :1
=VAL :2
=VAL :3
-SEQ
-DOC
-STR`,
		},
		{
			name: "flow sequence",
			in:   "[1, 2, 3]\n",
			exp: `+STR
+DOC
+SEQ []
=VAL :1
=VAL :2
=VAL :3
-SEQ
-DOC
-STR`,
		},
		{
			name: "nested collections",
			in:   "a:\n  - x\n  - y: 1\n",
			exp: `+STR
+DOC
+MAP
=VAL :a
+SEQ
=VAL :x
+MAP
=VAL :y
=VAL :1
-MAP
-SEQ
-MAP
-DOC
-STR`,
		},
		{
			name: "literal chomping clip",
			in:   "|\n  text\n",
			exp: `+STR
+DOC
=VAL |text\n
-DOC
-STR`,
		},
		{
			name: "literal chomping strip",
			in:   "|-\n  text\n",
			exp: `+STR
+DOC
=VAL |text
-DOC
-STR`,
		},
		{
			name: "folded scalar",
			in:   ">\n  a\n  b\n",
			exp: `+STR
+DOC
=VAL >a b\n
-DOC
-STR`,
		},
		{
			name: "multi document",
			in:   "---\na: 1\n---\nb: 2\n",
			exp: `+STR
+DOC ---
+MAP
=VAL :a
=VAL :1
-MAP
-DOC
+DOC ---
+MAP
=VAL :b
=VAL :2
-MAP
-DOC
-STR`,
		},
		{
			name: "explicit document end",
			in:   "---\na\n...\n",
			exp: `+STR
+DOC ---
=VAL :a
-DOC ...
-STR`,
		},
		{
			name: "anchor and alias",
			in:   "a: &x 1\nb: *x\n",
			exp: `+STR
+DOC
+MAP
=VAL :a
=VAL &1 :1
=VAL :b
=ALI *1
-MAP
-DOC
-STR`,
		},
		{
			name: "anchored collection",
			in:   "a: &s [1, 2]\nb: *s\n",
			exp: `+STR
+DOC
+MAP
=VAL :a
+SEQ &1 []
=VAL :1
=VAL :2
-SEQ
=VAL :b
=ALI *1
-MAP
-DOC
-STR`,
		},
		{
			name: "anchor ids reset per document",
			in:   "--- &a 1\n--- &b 2\n",
			exp: `+STR
+DOC ---
=VAL &1 :1
-DOC
+DOC ---
=VAL &1 :2
-DOC
-STR`,
		},
		{
			name: "anchor rebinding last definition wins",
			in:   "- &x 1\n- &x 2\n- *x\n",
			exp: `+STR
+DOC
+SEQ
=VAL &1 :1
=VAL &2 :2
=ALI *2
-SEQ
-DOC
-STR`,
		},
		{
			name: "implicit flow mapping in sequence",
			in:   "[a: b]\n",
			exp: `+STR
+DOC
+SEQ []
+MAP {}
=VAL :a
=VAL :b
-MAP
-SEQ
-DOC
-STR`,
		},
		{
			name: "empty document",
			in:   "---\n",
			exp: `+STR
+DOC ---
=VAL :
-DOC
-STR`,
		},
		{
			name: "empty stream",
			in:   "",
			exp: `+STR
-STR`,
		},
		{
			name: "omitted values",
			in:   "a:\nb: 1\n",
			exp: `+STR
+DOC
+MAP
=VAL :a
=VAL :
=VAL :b
=VAL :1
-MAP
-DOC
-STR`,
		},
		{
			name: "explicit key form",
			in:   "? a\n: 1\n",
			exp: `+STR
+DOC
+MAP
=VAL :a
=VAL :1
-MAP
-DOC
-STR`,
		},
		{
			name: "tag shorthand",
			in:   "!!str a\n",
			exp: `+STR
+DOC
=VAL <tag:yaml.org,2002:str> :a
-DOC
-STR`,
		},
		{
			name: "tag directive",
			in:   "%TAG !e! tag:example.com,2000:\n---\n!e!foo bar\n",
			exp: `+STR
+DOC ---
=VAL <tag:example.com,2000:foo> :bar
-DOC
-STR`,
		},
		{
			name: "verbatim tag",
			in:   "!<tag:example.com,2000:x> a\n",
			exp: `+STR
+DOC
=VAL <tag:example.com,2000:x> :a
-DOC
-STR`,
		},
		{
			name: "version directive accepted",
			in:   "%YAML 1.2\n---\na\n",
			exp: `+STR
+DOC ---
=VAL :a
-DOC
-STR`,
		},
		{
			name: "unknown directive ignored",
			in:   "%FOO bar\n---\na\n",
			exp: `+STR
+DOC ---
=VAL :a
-DOC
-STR`,
		},
		{
			name: "quoted styles",
			in:   "- 'single'\n- \"double\"\n",
			exp: `+STR
+DOC
+SEQ
=VAL 'single
=VAL "double
-SEQ
-DOC
-STR`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			events, err := EventsString([]byte(tc.in), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, events)
		})
	}
}

func TestParserErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		in     string
		target any
		msg    string
	}{
		{
			name:   "unknown alias",
			in:     "a: *missing\n",
			target: new(*AnchorError),
			msg:    "unknown anchor 'missing' referenced",
		},
		{
			name:   "cross document alias",
			in:     "--- &a 1\n--- *a\n",
			target: new(*AnchorError),
			msg:    "unknown anchor 'a' referenced",
		},
		{
			name:   "incompatible version",
			in:     "%YAML 2.0\n---\na\n",
			target: new(*ParserError),
			msg:    "found incompatible YAML document",
		},
		{
			name:   "duplicate version directive",
			in:     "%YAML 1.1\n%YAML 1.2\n---\na\n",
			target: new(*ParserError),
			msg:    "found duplicate %YAML directive",
		},
		{
			name:   "duplicate tag directive",
			in:     "%TAG !e! tag:a\n%TAG !e! tag:b\n---\na\n",
			target: new(*ParserError),
			msg:    "found duplicate %TAG directive",
		},
		{
			name:   "undefined tag handle",
			in:     "!e!foo a\n",
			target: new(*ParserError),
			msg:    "found undefined tag handle",
		},
		{
			name:   "directives without document start",
			in:     "%YAML 1.2\na\n",
			target: new(*ParserError),
			msg:    "did not find expected <document start>",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EventsString([]byte(tc.in), 0)
			require.Error(t, err)
			assert.ErrorAs(t, err, tc.target)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParserDepthLimit(t *testing.T) {
	_, err := EventsString([]byte("[[[[[1]]]]]"), 3)
	require.Error(t, err)
	var perr *ParserError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "exceeded maximum nesting depth of 3")

	// The same input passes with a roomier limit.
	_, err = EventsString([]byte("[[[[[1]]]]]"), 100)
	assert.NoError(t, err)
}

func TestParserStickyError(t *testing.T) {
	p, err := NewParser([]byte("a: *missing\n"), 0)
	require.NoError(t, err)
	var event Event
	var first error
	for {
		if first = p.Parse(&event); first != nil {
			break
		}
	}
	require.Error(t, first)
	assert.Equal(t, first, p.Parse(&event))
	assert.Equal(t, first, p.Err())
}

func TestParserEOFAfterStreamEnd(t *testing.T) {
	p, err := NewParser([]byte("a\n"), 0)
	require.NoError(t, err)
	var event Event
	for {
		require.NoError(t, p.Parse(&event))
		if event.Type == StreamEndEvent {
			break
		}
	}
	assert.Equal(t, io.EOF, p.Parse(&event))
}

func TestParserEventSpans(t *testing.T) {
	p, err := NewParser([]byte("a: b\n"), 0)
	require.NoError(t, err)
	var event Event
	var scalars []Span
	for {
		require.NoError(t, p.Parse(&event))
		if event.Type == ScalarEvent {
			scalars = append(scalars, event.Span)
		}
		if event.Type == StreamEndEvent {
			break
		}
	}
	require.Len(t, scalars, 2)
	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 0}, scalars[0].Start)
	assert.Equal(t, Mark{Index: 1, Line: 1, Column: 1}, scalars[0].End)
	assert.Equal(t, Mark{Index: 3, Line: 1, Column: 3}, scalars[1].Start)
}
