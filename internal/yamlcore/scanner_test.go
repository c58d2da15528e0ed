// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll drains the scanner, failing the test on any error.
func scanAll(t *testing.T, in string) []token {
	t.Helper()
	s := newScanner([]rune(in))
	var toks []token
	for {
		tok, ok, err := s.nextToken()
		require.NoError(t, err)
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// scanError drains the scanner and returns the first error.
func scanError(t *testing.T, in string) error {
	t.Helper()
	s := newScanner([]rune(in))
	for {
		_, ok, err := s.nextToken()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func types(toks []token) []tokenType {
	out := make([]tokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.typ
	}
	return out
}

func TestScannerBlockMapping(t *testing.T) {
	toks := scanAll(t, "a: b\n")
	assert.Equal(t, []tokenType{
		tokenStreamStart,
		tokenBlockMappingStart,
		tokenKey, tokenScalar,
		tokenValue, tokenScalar,
		tokenBlockEnd,
		tokenStreamEnd,
	}, types(toks))
	assert.Equal(t, "a", toks[3].value)
	assert.Equal(t, "b", toks[5].value)
}

func TestScannerBlockSequence(t *testing.T) {
	toks := scanAll(t, "- 1\n- 2\n")
	assert.Equal(t, []tokenType{
		tokenStreamStart,
		tokenBlockSequenceStart,
		tokenBlockEntry, tokenScalar,
		tokenBlockEntry, tokenScalar,
		tokenBlockEnd,
		tokenStreamEnd,
	}, types(toks))
}

func TestScannerFlow(t *testing.T) {
	toks := scanAll(t, "{a: 1, b: [x, y]}\n")
	assert.Equal(t, []tokenType{
		tokenStreamStart,
		tokenFlowMappingStart,
		tokenKey, tokenScalar, tokenValue, tokenScalar,
		tokenFlowEntry,
		tokenKey, tokenScalar, tokenValue,
		tokenFlowSequenceStart,
		tokenScalar, tokenFlowEntry, tokenScalar,
		tokenFlowSequenceEnd,
		tokenFlowMappingEnd,
		tokenStreamEnd,
	}, types(toks))
}

func TestScannerScalarStyles(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    string
		value string
		style ScalarStyle
	}{
		{"plain", "hello world\n", "hello world", PlainStyle},
		{"plain with interior hash", "b#c\n", "b#c", PlainStyle},
		{"single quoted", "'it''s'\n", "it's", SingleQuotedStyle},
		{"double quoted escapes", "\"a\\tb\\u0041\"\n", "a\tbA", DoubleQuotedStyle},
		{"literal clip", "|\n  text\n", "text\n", LiteralStyle},
		{"literal strip", "|-\n  text\n", "text", LiteralStyle},
		{"literal keep", "|+\n  text\n\n", "text\n\n", LiteralStyle},
		{"folded", ">\n  a\n  b\n", "a b\n", FoldedStyle},
		{"folded more indented", ">\n  a\n    b\n", "a\n  b\n", FoldedStyle},
		{"literal explicit indent", "|2\n   text\n", " text\n", LiteralStyle},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks := scanAll(t, tc.in)
			require.Equal(t, []tokenType{
				tokenStreamStart, tokenScalar, tokenStreamEnd,
			}, types(toks))
			assert.Equal(t, tc.value, toks[1].value)
			assert.Equal(t, tc.style, toks[1].style)
		})
	}
}

func TestScannerDirectives(t *testing.T) {
	t.Run("version", func(t *testing.T) {
		toks := scanAll(t, "%YAML 1.2\n---\n")
		require.Equal(t, []tokenType{
			tokenStreamStart, tokenVersionDirective, tokenDocumentStart,
			tokenStreamEnd,
		}, types(toks))
		assert.Equal(t, 1, toks[1].major)
		assert.Equal(t, 2, toks[1].minor)
	})
	t.Run("tag", func(t *testing.T) {
		toks := scanAll(t, "%TAG !e! tag:example.com,2000:\n---\n")
		require.Equal(t, tokenTagDirective, toks[1].typ)
		assert.Equal(t, "!e!", toks[1].value)
		assert.Equal(t, "tag:example.com,2000:", toks[1].suffix)
	})
	t.Run("unknown skipped", func(t *testing.T) {
		toks := scanAll(t, "%FOO bar baz\n---\n")
		require.Equal(t, tokenTagDirective, toks[1].typ)
		assert.Empty(t, toks[1].value)
	})
}

func TestScannerAnchorAlias(t *testing.T) {
	toks := scanAll(t, "a: &x 1\nb: *x\n")
	assert.Equal(t, []tokenType{
		tokenStreamStart,
		tokenBlockMappingStart,
		tokenKey, tokenScalar,
		tokenValue, tokenAnchor, tokenScalar,
		tokenKey, tokenScalar,
		tokenValue, tokenAlias,
		tokenBlockEnd,
		tokenStreamEnd,
	}, types(toks))
	assert.Equal(t, "x", toks[5].value)
	assert.Equal(t, "x", toks[10].value)
}

func TestScannerDocumentMarkers(t *testing.T) {
	toks := scanAll(t, "---\na\n...\n")
	assert.Equal(t, []tokenType{
		tokenStreamStart,
		tokenDocumentStart, tokenScalar, tokenDocumentEnd,
		tokenStreamEnd,
	}, types(toks))
}

func TestScannerTags(t *testing.T) {
	t.Run("shorthand", func(t *testing.T) {
		toks := scanAll(t, "!!str a\n")
		require.Equal(t, tokenTag, toks[1].typ)
		assert.Equal(t, "!!", toks[1].value)
		assert.Equal(t, "str", toks[1].suffix)
	})
	t.Run("verbatim", func(t *testing.T) {
		toks := scanAll(t, "!<tag:example.com,2000:x> a\n")
		require.Equal(t, tokenTag, toks[1].typ)
		assert.Empty(t, toks[1].value)
		assert.Equal(t, "tag:example.com,2000:x", toks[1].suffix)
	})
}

func TestScannerComments(t *testing.T) {
	// Comments never become tokens.
	toks := scanAll(t, "# leading\na: b # trailing\n# final\n")
	assert.Equal(t, []tokenType{
		tokenStreamStart,
		tokenBlockMappingStart,
		tokenKey, tokenScalar,
		tokenValue, tokenScalar,
		tokenBlockEnd,
		tokenStreamEnd,
	}, types(toks))
}

func TestScannerMarks(t *testing.T) {
	toks := scanAll(t, "a: b\n")
	key := toks[3]
	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 0}, key.span.Start)
	val := toks[5]
	assert.Equal(t, Mark{Index: 3, Line: 1, Column: 3}, val.span.Start)
	assert.Equal(t, Mark{Index: 4, Line: 1, Column: 4}, val.span.End)
}

func TestScannerErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		msg  string
	}{
		{"unterminated single quoted", "'x",
			"while scanning a quoted scalar, found unexpected end of stream"},
		{"unterminated double quoted", "\"x\n",
			"while scanning a quoted scalar, found unexpected end of stream"},
		{"unknown escape", "\"\\q\"\n",
			"while parsing a quoted scalar, found unknown escape character"},
		{"bad hex escape", "\"\\x2z\"\n",
			"while parsing a quoted scalar, did not find expected hexadecimal number"},
		{"surrogate escape", "\"\\ud800\"\n",
			"while parsing a quoted scalar, found invalid Unicode character escape code"},
		{"tab indentation", "a:\n\tb: c\n", ""},
		{"block entry in flow", "[- ]\n",
			`"-" is only valid inside a block`},
		{"colon before bracket in flow mapping", "{a:[b]}\n",
			"':' may not precede any of"},
		{"comment without separation", "a: 'b'#c\n",
			"comments must be separated from other tokens by whitespace"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := scanError(t, tc.in)
			require.Error(t, err)
			var serr *ScannerError
			require.ErrorAs(t, err, &serr)
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
		})
	}
}
