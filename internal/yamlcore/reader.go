// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detectEncoding inspects the first bytes of the input. Without a BOM, a NUL
// in the first two bytes indicates UTF-16 of the corresponding endianness,
// since a YAML stream must begin with an ASCII indicator or printable.
func detectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LEEncoding
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BEEncoding
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8Encoding
	case len(data) >= 2 && data[0] == 0:
		return UTF16BEEncoding
	case len(data) >= 2 && data[1] == 0 && data[0] != 0:
		return UTF16LEEncoding
	}
	return UTF8Encoding
}

// prepareInput decodes the raw input into the rune buffer the scanner works
// on. UTF-16 input is transcoded to UTF-8 first; a leading BOM is dropped in
// any encoding. Invalid byte sequences fail with a ReaderError carrying the
// position of the offending character.
func prepareInput(data []byte) ([]rune, Encoding, error) {
	enc := detectEncoding(data)

	switch enc {
	case UTF16LEEncoding, UTF16BEEncoding:
		endian := unicode.LittleEndian
		if enc == UTF16BEEncoding {
			endian = unicode.BigEndian
		}
		dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return nil, enc, readerErr("invalid UTF-16 input", Mark{Line: 1}, err)
		}
		data = out
		// The decoder maps the BOM to U+FEFF; strip it below like a UTF-8 BOM.
		data = bytes.TrimPrefix(data, bomUTF8)
	case UTF8Encoding:
		data = bytes.TrimPrefix(data, bomUTF8)
	}

	runes := make([]rune, 0, len(data))
	mark := Mark{Line: 1}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, enc, readerErr("invalid UTF-8 byte sequence", mark, nil)
		}
		runes = append(runes, r)
		mark.Index++
		if r == '\n' {
			mark.Line++
			mark.Column = 0
		} else {
			mark.Column++
		}
		i += size
	}
	return runes, enc, nil
}

// readAll drains r, mapping I/O failures to ReaderErrors.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readerErr("cannot read input", Mark{}, err)
	}
	return data, nil
}
