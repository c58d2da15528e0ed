// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utf16le encodes an ASCII string as UTF-16LE, optionally with a BOM.
func utf16le(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFF, 0xFE)
	}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func utf16be(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFE, 0xFF)
	}
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

func TestDetectEncoding(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		exp  Encoding
	}{
		{"plain ascii", []byte("a: b"), UTF8Encoding},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8Encoding},
		{"utf16le bom", utf16le("a", true), UTF16LEEncoding},
		{"utf16be bom", utf16be("a", true), UTF16BEEncoding},
		{"utf16le no bom", utf16le("a", false), UTF16LEEncoding},
		{"utf16be no bom", utf16be("a", false), UTF16BEEncoding},
		{"empty", nil, UTF8Encoding},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, detectEncoding(tc.in))
		})
	}
}

func TestPrepareInputStripsBOM(t *testing.T) {
	runes, enc, err := prepareInput([]byte{0xEF, 0xBB, 0xBF, 'a', ':', ' ', 'b'})
	require.NoError(t, err)
	assert.Equal(t, UTF8Encoding, enc)
	assert.Equal(t, []rune("a: b"), runes)
}

func TestPrepareInputUTF16(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		enc  Encoding
	}{
		{"le with bom", utf16le("a: b", true), UTF16LEEncoding},
		{"le without bom", utf16le("a: b", false), UTF16LEEncoding},
		{"be with bom", utf16be("a: b", true), UTF16BEEncoding},
		{"be without bom", utf16be("a: b", false), UTF16BEEncoding},
	} {
		t.Run(tc.name, func(t *testing.T) {
			runes, enc, err := prepareInput(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.enc, enc)
			assert.Equal(t, []rune("a: b"), runes)
		})
	}
}

func TestPrepareInputInvalidUTF8(t *testing.T) {
	_, _, err := prepareInput([]byte{'a', 0xFF, 0xFE, 0xFD})
	require.Error(t, err)
	var rerr *ReaderError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, err.Error(), "invalid UTF-8 byte sequence")
}

func TestParseUTF16Document(t *testing.T) {
	p, err := NewParser(utf16le("a: 1\n", true), 0)
	require.NoError(t, err)
	assert.Equal(t, UTF16LEEncoding, p.Encoding())

	stream, err := NewComposer(p, ComposerOptions{}).Compose()
	require.NoError(t, err)
	require.Len(t, stream.Documents, 1)
	assert.Equal(t, "1", stream.Documents[0].Root.Get("a").Value)
	assert.Equal(t, UTF16LEEncoding, stream.Encoding)
}
