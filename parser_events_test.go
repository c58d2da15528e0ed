// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package streamyaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yaml "github.com/streamyaml/streamyaml"
)

func TestEventTrace(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		exp  string
	}{
		{
			name: "mapping",
			in:   "key: value\n",
			exp: `+STR
+DOC
+MAP
=VAL :key
=VAL :value
-MAP
-DOC
-STR`,
		},
		{
			name: "anchored subtree",
			in:   "base: &b\n  x: 1\nother: *b\n",
			exp: `+STR
+DOC
+MAP
=VAL :base
+MAP &1
=VAL :x
=VAL :1
-MAP
=VAL :other
=ALI *1
-MAP
-DOC
-STR`,
		},
		{
			name: "mixed styles",
			in:   "- plain\n- 'single'\n- \"double\"\n- |\n  literal\n- >\n  folded\n",
			exp: `+STR
+DOC
+SEQ
=VAL :plain
=VAL 'single
=VAL "double
=VAL |literal\n
=VAL >folded\n
-SEQ
-DOC
-STR`,
		},
		{
			name: "value escaping",
			in:   "\"a\\tb\\\\c\"\n",
			exp: `+STR
+DOC
=VAL "a\tb\\c
-DOC
-STR`,
		},
		{
			name: "bare document markers",
			in:   "---\n---\n",
			exp: `+STR
+DOC ---
=VAL :
-DOC
+DOC ---
=VAL :
-DOC
-STR`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			events, err := yaml.EventTrace([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.exp, events)
		})
	}
}

func TestEventTraceError(t *testing.T) {
	_, err := yaml.EventTrace([]byte("a: *nope\n"))
	require.Error(t, err)
	var aerr *yaml.AnchorError
	assert.ErrorAs(t, err, &aerr)
}
