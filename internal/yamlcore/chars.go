// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import "strings"

// Character classification helpers. These operate on decoded runes; the end of
// input is represented by the zero rune.

func isZ(c rune) bool { return c == 0 }

func isBreak(c rune) bool { return c == '\n' || c == '\r' }

func isBreakz(c rune) bool { return isBreak(c) || isZ(c) }

func isBlank(c rune) bool { return c == ' ' || c == '\t' }

func isBlankz(c rune) bool { return isBlank(c) || isBreakz(c) }

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isAlpha(c rune) bool {
	return c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c == '_' || c == '-'
}

func isHex(c rune) bool {
	return c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'f' ||
		c >= 'A' && c <= 'F'
}

func asHex(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// isFlow reports whether c is one of the flow indicators `,[]{}`.
func isFlow(c rune) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

func isBOM(c rune) bool { return c == '\uFEFF' }

// isAnchorChar reports whether c may appear in an anchor or alias name:
// any non-space, non-break character that is not a flow indicator.
func isAnchorChar(c rune) bool {
	return !isBlankz(c) && !isFlow(c) && !isBOM(c)
}

func isWordChar(c rune) bool { return isAlpha(c) && c != '_' }

func isURIChar(c rune) bool {
	return isWordChar(c) || strings.ContainsRune("#;/?:@&=+$,_.!~*'()[]%", c)
}

func isTagChar(c rune) bool {
	return isURIChar(c) && !isFlow(c) && c != '!'
}
