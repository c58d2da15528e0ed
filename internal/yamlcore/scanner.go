// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// chomping selects how a block scalar's final line break and trailing empty
// lines are interpreted.
type chomping int8

const (
	chompClip chomping = iota
	chompStrip
	chompKeep
)

// simpleKey tracks a token that may retroactively become a mapping key.
//
// When scanning `a: b` we do not know that `a` is a key until the `:` is
// reached. The scalar token for `a` is buffered, and this record remembers
// where it sits in the token queue so that a Key token can be inserted in
// front of it once the `:` confirms it.
type simpleKey struct {
	// Whether the token may still become a key. Cleared once context rules
	// it out (a newline in block context, more than 1024 characters, ...).
	possible bool
	// Whether the token must be a key. Staling a required key is an error.
	required bool
	// Queue position of the token, counted over all tokens ever produced.
	tokenNumber int
	mark        Mark
}

// indentLevel is an entry on the indentation stack.
//
// Not every level closes a block: the one-column indents opened after `- ` or
// `: ` exist only to require deeper indentation of the entry's value and must
// not produce a BlockEnd of their own.
type indentLevel struct {
	indent        int
	needsBlockEnd bool
}

// scanner is the tokenizer. It reads the decoded input a character at a time
// and maintains enough context (indentation, flow nesting, pending simple
// keys) to emit an unambiguous token stream for the parser.
type scanner struct {
	input []rune
	mark  Mark

	// Queue of tokens not yet handed to the parser. Simple-key resolution
	// may insert Key/FlowMappingStart tokens in front of buffered ones.
	tokens []token
	// Number of tokens already handed out, used to translate a simpleKey's
	// tokenNumber into a queue position.
	tokensParsed   int
	tokenAvailable bool

	streamStartProduced bool
	streamEndProduced   bool

	// Position at which a `:` may directly follow a JSON-like key with no
	// separating space, e.g. {"a":1}.
	adjacentValueAllowedAt int

	simpleKeyAllowed bool
	// One entry per flow level plus one for block context.
	simpleKeys []simpleKey

	indent  int
	indents []indentLevel

	flowLevel int

	// Whether everything since the last line break was whitespace.
	leadingWhitespace bool

	// Whether the current flow mapping was opened with an explicit `{`.
	flowMappingStarted bool
	// One entry per nested flow sequence; true while inside an implicit
	// mapping such as the `a: b` in `[a: b]`.
	implicitFlowMappingInside []bool
}

func newScanner(input []rune) *scanner {
	return &scanner{
		input:             input,
		mark:              Mark{Line: 1},
		indent:            -1,
		simpleKeyAllowed:  true,
		leadingWhitespace: true,
	}
}

// peek returns the current character, or 0 at the end of input.
func (s *scanner) peek() rune { return s.peekN(0) }

func (s *scanner) peekN(n int) rune {
	if s.mark.Index+n >= len(s.input) {
		return 0
	}
	return s.input[s.mark.Index+n]
}

func (s *scanner) atEOF() bool { return s.mark.Index >= len(s.input) }

func (s *scanner) skipBlank() {
	s.mark.Index++
	s.mark.Column++
}

func (s *scanner) skipNonBlank() {
	s.mark.Index++
	s.mark.Column++
	s.leadingWhitespace = false
}

func (s *scanner) skipNNonBlank(n int) {
	s.mark.Index += n
	s.mark.Column += n
	s.leadingWhitespace = false
}

func (s *scanner) skipNL() {
	s.mark.Index++
	s.mark.Column = 0
	s.mark.Line++
	s.leadingWhitespace = true
}

// skipLinebreak consumes a CR, LF or CRLF if one is next.
func (s *scanner) skipLinebreak() {
	if s.peek() == '\r' && s.peekN(1) == '\n' {
		s.skipBlank()
		s.skipNL()
	} else if isBreak(s.peek()) {
		s.skipNL()
	}
}

// skipBreak consumes the line break at the cursor (CR, LF or CRLF).
func (s *scanner) skipBreak() {
	if s.peek() == '\r' && s.peekN(1) == '\n' {
		s.skipBlank()
	}
	s.skipNL()
}

// readBreak consumes a line break and appends a normalized \n to b.
func (s *scanner) readBreak(b *strings.Builder) {
	s.skipBreak()
	b.WriteByte('\n')
}

func (s *scanner) push(tok token) { s.tokens = append(s.tokens, tok) }

func (s *scanner) insertToken(pos int, tok token) {
	s.tokens = append(s.tokens, token{})
	copy(s.tokens[pos+1:], s.tokens[pos:])
	s.tokens[pos] = tok
}

func (s *scanner) allowSimpleKey()    { s.simpleKeyAllowed = true }
func (s *scanner) disallowSimpleKey() { s.simpleKeyAllowed = false }

// nextIs3 reports whether the next three characters are all c, followed by a
// blank, break or end of input.
func (s *scanner) nextIs3(c rune) bool {
	return s.peek() == c && s.peekN(1) == c && s.peekN(2) == c &&
		isBlankz(s.peekN(3))
}

func (s *scanner) nextIsDocumentStart() bool { return s.nextIs3('-') }
func (s *scanner) nextIsDocumentEnd() bool   { return s.nextIs3('.') }

func (s *scanner) nextIsDocumentIndicator() bool {
	return s.nextIsDocumentStart() || s.nextIsDocumentEnd()
}

// canBePlainScalar reports whether the character at the cursor may be part of
// a plain scalar in the current context.
func (s *scanner) canBePlainScalar(inFlow bool) bool {
	c := s.peek()
	nc := s.peekN(1)
	if c == ':' && (isBlankz(nc) || (inFlow && isFlow(nc))) {
		return false
	}
	if inFlow && isFlow(c) {
		return false
	}
	return true
}

// skipWsToEol consumes spaces (and tabs, when allowed) up to the next content
// character, consuming a trailing comment as well. It reports whether a tab
// and whether a space was consumed.
func (s *scanner) skipWsToEol(skipTabs bool) (foundTabs, foundWs bool, err error) {
	for {
		c := s.peek()
		if c == ' ' {
			foundWs = true
			s.skipBlank()
		} else if c == '\t' && skipTabs {
			foundTabs = true
			s.skipBlank()
		} else {
			break
		}
	}
	if s.peek() == '#' {
		if !foundTabs && !foundWs {
			return foundTabs, foundWs, scannerErr(
				"comments must be separated from other tokens by whitespace", s.mark)
		}
		for !isBreakz(s.peek()) {
			s.skipBlank()
		}
	}
	return foundTabs, foundWs, nil
}

// nextToken returns the next token of the stream, or ok=false once the
// StreamEnd token has been handed out.
func (s *scanner) nextToken() (token, bool, error) {
	if s.streamEndProduced {
		return token{}, false, nil
	}
	if !s.tokenAvailable {
		if err := s.fetchMoreTokens(); err != nil {
			return token{}, false, err
		}
	}
	if len(s.tokens) == 0 {
		return token{}, false, scannerErr("did not find expected next token", s.mark)
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	s.tokenAvailable = false
	s.tokensParsed++
	if t.typ == tokenStreamEnd {
		s.streamEndProduced = true
	}
	return t, true, nil
}

// fetchMoreTokens fetches tokens until the head of the queue is known not to
// be affected by pending simple-key resolution.
func (s *scanner) fetchMoreTokens() error {
	for {
		needMore := len(s.tokens) == 0
		if !needMore {
			if err := s.staleSimpleKeys(); err != nil {
				return err
			}
			for i := range s.simpleKeys {
				sk := &s.simpleKeys[i]
				if sk.possible && sk.tokenNumber == s.tokensParsed {
					needMore = true
					break
				}
			}
		}
		if !needMore {
			break
		}
		if err := s.fetchNextToken(); err != nil {
			return err
		}
	}
	s.tokenAvailable = true
	return nil
}

// staleSimpleKeys clears the possible flag of keys that can no longer be
// keys: in block context a simple key must sit on the same line as its `:`
// and within 1024 characters of it.
func (s *scanner) staleSimpleKeys() error {
	for i := range s.simpleKeys {
		sk := &s.simpleKeys[i]
		if sk.possible && s.flowLevel == 0 &&
			(sk.mark.Line < s.mark.Line || sk.mark.Index+1024 < s.mark.Index) {
			if sk.required {
				return scannerErr("simple key expect ':'", s.mark)
			}
			sk.possible = false
		}
	}
	return nil
}

// skipToNextToken moves the cursor past whitespace, line breaks and comments.
func (s *scanner) skipToNextToken() error {
	for {
		switch c := s.peek(); {
		case c == '\t' && len(s.indents) > 0 && s.leadingWhitespace && s.mark.Column < s.indent:
			// Tabs may not be used as block indentation. A whitespace-only
			// line is fine; content after the tab is not.
			if _, _, err := s.skipWsToEol(true); err != nil {
				return err
			}
			if !isBreakz(s.peek()) {
				return scannerErr(
					"tabs disallowed within this context (block indentation)", s.mark)
			}
		case c == '\t' || c == ' ':
			s.skipBlank()
		case isBreak(c):
			s.skipLinebreak()
			if s.flowLevel == 0 {
				s.allowSimpleKey()
			}
		case c == '#':
			for !isBreakz(s.peek()) {
				s.skipBlank()
			}
		default:
			return nil
		}
	}
}

// skipYAMLWhitespace requires and consumes at least one space, line break or
// comment. Tabs do not count.
func (s *scanner) skipYAMLWhitespace() error {
	needWhitespace := true
	for {
		switch c := s.peek(); {
		case c == ' ':
			s.skipBlank()
			needWhitespace = false
		case isBreak(c):
			s.skipLinebreak()
			if s.flowLevel == 0 {
				s.allowSimpleKey()
			}
			needWhitespace = false
		case c == '#':
			for !isBreakz(s.peek()) {
				s.skipBlank()
			}
		default:
			if needWhitespace {
				return scannerErr("expected whitespace", s.mark)
			}
			return nil
		}
	}
}

// fetchNextToken scans one construct and pushes its token(s) onto the queue.
func (s *scanner) fetchNextToken() error {
	if !s.streamStartProduced {
		s.fetchStreamStart()
		return nil
	}
	if err := s.skipToNextToken(); err != nil {
		return err
	}
	if err := s.staleSimpleKeys(); err != nil {
		return err
	}
	s.unrollIndent(s.mark.Column)

	if s.atEOF() {
		return s.fetchStreamEnd()
	}

	if s.mark.Column == 0 {
		switch {
		case s.peek() == '%':
			return s.fetchDirective()
		case s.nextIsDocumentStart():
			return s.fetchDocumentIndicator(tokenDocumentStart)
		case s.nextIsDocumentEnd():
			if err := s.fetchDocumentIndicator(tokenDocumentEnd); err != nil {
				return err
			}
			if _, _, err := s.skipWsToEol(true); err != nil {
				return err
			}
			if !isBreakz(s.peek()) {
				return scannerErr("invalid content after document end marker", s.mark)
			}
			return nil
		}
	}

	if s.mark.Column < s.indent {
		return scannerErr("invalid indentation", s.mark)
	}

	c := s.peek()
	nc := s.peekN(1)
	switch {
	case c == '[':
		return s.fetchFlowCollectionStart(tokenFlowSequenceStart)
	case c == '{':
		return s.fetchFlowCollectionStart(tokenFlowMappingStart)
	case c == ']':
		return s.fetchFlowCollectionEnd(tokenFlowSequenceEnd)
	case c == '}':
		return s.fetchFlowCollectionEnd(tokenFlowMappingEnd)
	case c == ',':
		return s.fetchFlowEntry()
	case c == '-' && isBlankz(nc):
		return s.fetchBlockEntry()
	case c == '?' && isBlankz(nc):
		return s.fetchKey()
	case c == ':' && isBlankz(nc):
		return s.fetchValue()
	case c == ':' && s.flowLevel > 0 &&
		(isFlow(nc) || s.mark.Index == s.adjacentValueAllowedAt):
		return s.fetchFlowValue()
	case c == '*':
		return s.fetchAnchor(true)
	case c == '&':
		return s.fetchAnchor(false)
	case c == '!':
		return s.fetchTag()
	case c == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(true)
	case c == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(false)
	case c == '\'':
		return s.fetchFlowScalar(true)
	case c == '"':
		return s.fetchFlowScalar(false)
	case c == '-' && !isBlankz(nc):
		return s.fetchPlainScalar()
	case (c == ':' || c == '?') && !isBlankz(nc) && s.flowLevel == 0:
		return s.fetchPlainScalar()
	case c == '%' || c == '@' || c == '`':
		return scannerErr(fmt.Sprintf("unexpected character: `%c'", c), s.mark)
	default:
		return s.fetchPlainScalar()
	}
}

func (s *scanner) fetchStreamStart() {
	mark := s.mark
	s.indent = -1
	s.streamStartProduced = true
	s.allowSimpleKey()
	s.push(token{typ: tokenStreamStart, span: EmptySpan(mark)})
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
}

func (s *scanner) fetchStreamEnd() error {
	if s.mark.Column != 0 {
		s.mark.Column = 0
		s.mark.Line++
	}

	// No further context will come; a still-required pending key is an error.
	for i := range s.simpleKeys {
		sk := &s.simpleKeys[i]
		if sk.required && sk.possible {
			return scannerErr("simple key expected", s.mark)
		}
		sk.possible = false
	}

	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()
	s.push(token{typ: tokenStreamEnd, span: EmptySpan(s.mark)})
	return nil
}

func (s *scanner) fetchDirective() error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()

	tok, err := s.scanDirective()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *scanner) scanDirective() (token, error) {
	startMark := s.mark
	s.skipNonBlank()

	name, err := s.scanDirectiveName()
	if err != nil {
		return token{}, err
	}

	var tok token
	switch name {
	case "YAML":
		tok, err = s.scanVersionDirectiveValue(startMark)
	case "TAG":
		tok, err = s.scanTagDirectiveValue(startMark)
	default:
		// Unknown directives are skipped. An empty tag directive token keeps
		// the queue moving; the parser drops it.
		for !isBreakz(s.peek()) {
			s.skipBlank()
		}
		tok = token{typ: tokenTagDirective, span: Span{Start: startMark, End: s.mark}}
	}
	if err != nil {
		return token{}, err
	}

	if _, _, err := s.skipWsToEol(true); err != nil {
		return token{}, err
	}
	if !isBreakz(s.peek()) {
		return token{}, scannerErr(
			"while scanning a directive, did not find expected comment or line break", startMark)
	}
	s.skipLinebreak()
	return tok, nil
}

func (s *scanner) scanDirectiveName() (string, error) {
	startMark := s.mark
	var b strings.Builder
	for isAlpha(s.peek()) {
		b.WriteRune(s.peek())
		s.skipNonBlank()
	}
	if b.Len() == 0 {
		return "", scannerErr(
			"while scanning a directive, could not find expected directive name", startMark)
	}
	if !isBlankz(s.peek()) {
		return "", scannerErr(
			"while scanning a directive, found unexpected non-alphabetical character", startMark)
	}
	return b.String(), nil
}

func (s *scanner) scanVersionDirectiveValue(mark Mark) (token, error) {
	for isBlank(s.peek()) {
		s.skipBlank()
	}
	major, err := s.scanVersionDirectiveNumber(mark)
	if err != nil {
		return token{}, err
	}
	if s.peek() != '.' {
		return token{}, scannerErr(
			"while scanning a YAML directive, did not find expected digit or '.' character", mark)
	}
	s.skipNonBlank()
	minor, err := s.scanVersionDirectiveNumber(mark)
	if err != nil {
		return token{}, err
	}
	return token{
		typ:   tokenVersionDirective,
		span:  Span{Start: mark, End: s.mark},
		major: major,
		minor: minor,
	}, nil
}

func (s *scanner) scanVersionDirectiveNumber(mark Mark) (int, error) {
	val, length := 0, 0
	for isDigit(s.peek()) {
		if length+1 > 9 {
			return 0, scannerErr(
				"while scanning a YAML directive, found extremely long version number", mark)
		}
		length++
		val = val*10 + int(s.peek()-'0')
		s.skipNonBlank()
	}
	if length == 0 {
		return 0, scannerErr(
			"while scanning a YAML directive, did not find expected version number", mark)
	}
	return val, nil
}

func (s *scanner) scanTagDirectiveValue(mark Mark) (token, error) {
	for isBlank(s.peek()) {
		s.skipBlank()
	}
	handle, err := s.scanTagHandle(true, mark)
	if err != nil {
		return token{}, err
	}
	for isBlank(s.peek()) {
		s.skipBlank()
	}
	prefix, err := s.scanTagPrefix(mark)
	if err != nil {
		return token{}, err
	}
	if !isBlankz(s.peek()) {
		return token{}, scannerErr(
			"while scanning TAG, did not find expected whitespace or line break", mark)
	}
	return token{
		typ:    tokenTagDirective,
		span:   Span{Start: mark, End: s.mark},
		value:  handle,
		suffix: prefix,
	}, nil
}

func (s *scanner) fetchTag() error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanTag()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *scanner) scanTag() (token, error) {
	startMark := s.mark
	var handle, suffix string
	var err error

	if s.peekN(1) == '<' {
		suffix, err = s.scanVerbatimTag(startMark)
		if err != nil {
			return token{}, err
		}
	} else {
		// Either the '!suffix' or the '!handle!suffix' form.
		handle, err = s.scanTagHandle(false, startMark)
		if err != nil {
			return token{}, err
		}
		if len(handle) >= 2 && strings.HasPrefix(handle, "!") && strings.HasSuffix(handle, "!") {
			suffix, err = s.scanTagShorthandSuffix("", startMark)
		} else {
			suffix, err = s.scanTagShorthandSuffix(handle, startMark)
			handle = "!"
			// The bare '!' tag: empty handle, '!' suffix.
			if suffix == "" {
				handle = ""
				suffix = "!"
			}
		}
		if err != nil {
			return token{}, err
		}
	}

	if isBlankz(s.peek()) || (s.flowLevel > 0 && isFlow(s.peek())) {
		return token{
			typ:    tokenTag,
			span:   Span{Start: startMark, End: s.mark},
			value:  handle,
			suffix: suffix,
		}, nil
	}
	return token{}, scannerErr(
		"while scanning a tag, did not find expected whitespace or line break", startMark)
}

func (s *scanner) scanTagHandle(directive bool, mark Mark) (string, error) {
	if s.peek() != '!' {
		return "", scannerErr("while scanning a tag, did not find expected '!'", mark)
	}
	var b strings.Builder
	b.WriteRune(s.peek())
	s.skipNonBlank()

	for isAlpha(s.peek()) {
		b.WriteRune(s.peek())
		s.skipNonBlank()
	}

	if s.peek() == '!' {
		b.WriteRune(s.peek())
		s.skipNonBlank()
	} else if directive && b.String() != "!" {
		// In a %TAG directive the handle must be closed with a '!'.
		return "", scannerErr(
			"while parsing a tag directive, did not find expected '!'", mark)
	}
	return b.String(), nil
}

// scanTagPrefix scans a %TAG directive's prefix: either a local prefix
// starting with '!' or a global one starting with a tag character.
func (s *scanner) scanTagPrefix(startMark Mark) (string, error) {
	var b strings.Builder

	if c := s.peek(); c == '!' {
		b.WriteRune(c)
		s.skipNonBlank()
	} else if !isTagChar(c) {
		return "", scannerErr("invalid global tag character", startMark)
	} else if c == '%' {
		r, err := s.scanURIEscapes(startMark)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	} else {
		b.WriteRune(c)
		s.skipNonBlank()
	}

	for isURIChar(s.peek()) {
		if s.peek() == '%' {
			r, err := s.scanURIEscapes(startMark)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		} else {
			b.WriteRune(s.peek())
			s.skipNonBlank()
		}
	}
	return b.String(), nil
}

// scanVerbatimTag scans the URI of a `!<uri>` tag, cursor on the '!'.
func (s *scanner) scanVerbatimTag(startMark Mark) (string, error) {
	s.skipNonBlank()
	s.skipNonBlank()

	var b strings.Builder
	for isURIChar(s.peek()) {
		if s.peek() == '%' {
			r, err := s.scanURIEscapes(startMark)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		} else {
			b.WriteRune(s.peek())
			s.skipNonBlank()
		}
	}
	if s.peek() != '>' {
		return "", scannerErr(
			"while scanning a verbatim tag, did not find the expected '>'", startMark)
	}
	s.skipNonBlank()
	return b.String(), nil
}

func (s *scanner) scanTagShorthandSuffix(head string, mark Mark) (string, error) {
	length := len(head)
	var b strings.Builder
	// The head is copied without its leading '!'.
	if length > 1 {
		b.WriteString(head[1:])
	}

	for isTagChar(s.peek()) {
		if s.peek() == '%' {
			r, err := s.scanURIEscapes(mark)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		} else {
			b.WriteRune(s.peek())
			s.skipNonBlank()
		}
		length++
	}
	if length == 0 {
		return "", scannerErr("while parsing a tag, did not find expected tag URI", mark)
	}
	return b.String(), nil
}

// scanURIEscapes decodes one %xx escape sequence group into the character it
// encodes, validating the UTF-8 byte structure. The cursor is on the '%'.
func (s *scanner) scanURIEscapes(mark Mark) (rune, error) {
	width := 0
	var raw []byte
	for {
		c, nc := s.peekN(1), s.peekN(2)
		if !(s.peek() == '%' && isHex(c) && isHex(nc)) {
			return 0, scannerErr("while parsing a tag, found an invalid escape sequence", mark)
		}
		b := byte(asHex(c)<<4 + asHex(nc))
		if width == 0 {
			switch {
			case b&0x80 == 0x00:
				width = 1
			case b&0xE0 == 0xC0:
				width = 2
			case b&0xF0 == 0xE0:
				width = 3
			case b&0xF8 == 0xF0:
				width = 4
			default:
				return 0, scannerErr(
					"while parsing a tag, found an incorrect leading UTF-8 byte", mark)
			}
		} else if b&0xC0 != 0x80 {
			return 0, scannerErr(
				"while parsing a tag, found an incorrect trailing UTF-8 byte", mark)
		}
		raw = append(raw, b)
		s.skipNNonBlank(3)
		width--
		if width == 0 {
			break
		}
	}
	r, size := utf8.DecodeRune(raw)
	if r == utf8.RuneError && size <= 1 || size != len(raw) {
		return 0, scannerErr("while parsing a tag, found an invalid UTF-8 codepoint", mark)
	}
	return r, nil
}

func (s *scanner) fetchAnchor(alias bool) error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanAnchor(alias)
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *scanner) scanAnchor(alias bool) (token, error) {
	startMark := s.mark
	s.skipNonBlank()

	var b strings.Builder
	for isAnchorChar(s.peek()) {
		b.WriteRune(s.peek())
		s.skipNonBlank()
	}
	if b.Len() == 0 {
		return token{}, scannerErr(
			"while scanning an anchor or alias, did not find expected alphabetic or numeric character", startMark)
	}

	typ := tokenAnchor
	if alias {
		typ = tokenAlias
	}
	return token{typ: typ, span: Span{Start: startMark, End: s.mark}, value: b.String()}, nil
}

func (s *scanner) fetchFlowCollectionStart(typ tokenType) error {
	// '[' and '{' may start a simple key (the collection as a whole).
	s.saveSimpleKey()

	s.rollOneColIndent()
	s.increaseFlowLevel()

	s.allowSimpleKey()

	startMark := s.mark
	s.skipNonBlank()

	if typ == tokenFlowMappingStart {
		s.flowMappingStarted = true
	} else {
		s.implicitFlowMappingInside = append(s.implicitFlowMappingInside, false)
	}

	if _, _, err := s.skipWsToEol(true); err != nil {
		return err
	}

	s.push(token{typ: typ, span: Span{Start: startMark, End: s.mark}})
	return nil
}

func (s *scanner) fetchFlowCollectionEnd(typ tokenType) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.decreaseFlowLevel()
	s.disallowSimpleKey()

	if typ == tokenFlowSequenceEnd {
		s.endImplicitMapping(s.mark)
		if n := len(s.implicitFlowMappingInside); n > 0 {
			s.implicitFlowMappingInside = s.implicitFlowMappingInside[:n-1]
		}
	}

	startMark := s.mark
	s.skipNonBlank()
	if _, _, err := s.skipWsToEol(true); err != nil {
		return err
	}

	// A closed flow collection can itself be a key; its value may then be
	// adjacent to the ':', e.g. `[ {a: b}:value ]`.
	if s.flowLevel > 0 {
		s.adjacentValueAllowedAt = s.mark.Index
	}

	s.push(token{typ: typ, span: Span{Start: startMark, End: s.mark}})
	return nil
}

func (s *scanner) fetchFlowEntry() error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.allowSimpleKey()

	s.endImplicitMapping(s.mark)

	startMark := s.mark
	s.skipNonBlank()
	if _, _, err := s.skipWsToEol(true); err != nil {
		return err
	}
	s.push(token{typ: tokenFlowEntry, span: Span{Start: startMark, End: s.mark}})
	return nil
}

func (s *scanner) increaseFlowLevel() {
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	s.flowLevel++
}

func (s *scanner) decreaseFlowLevel() {
	if s.flowLevel > 0 {
		s.flowLevel--
		s.simpleKeys = s.simpleKeys[:len(s.simpleKeys)-1]
	}
}

// fetchBlockEntry handles a `- ` indicator: opens a block sequence at this
// indent if one is not already open, then pushes a BlockEntry token.
func (s *scanner) fetchBlockEntry() error {
	if s.flowLevel > 0 {
		return scannerErr(`"-" is only valid inside a block`, s.mark)
	}
	if !s.simpleKeyAllowed {
		return scannerErr("block sequence entries are not allowed in this context", s.mark)
	}

	// An anchor or tag at column 0 cannot belong to a sequence entry that is
	// itself at column 0 of a nested context.
	if n := len(s.tokens); n > 0 {
		last := &s.tokens[n-1]
		if (last.typ == tokenAnchor || last.typ == tokenTag) &&
			s.mark.Column == 0 && last.span.Start.Column == 0 && s.indent > -1 {
			return scannerErr("invalid indentation for anchor", last.span.Start)
		}
	}

	mark := s.mark
	s.skipNonBlank()

	s.rollIndent(mark.Column, -1, tokenBlockSequenceStart, mark)
	foundTabs, _, err := s.skipWsToEol(true)
	if err != nil {
		return err
	}
	if foundTabs && s.peek() == '-' && isBlankz(s.peekN(1)) {
		return scannerErr("'-' must be followed by a valid YAML whitespace", s.mark)
	}
	if _, _, err := s.skipWsToEol(false); err != nil {
		return err
	}
	if isBreak(s.peek()) || isFlow(s.peek()) {
		s.rollOneColIndent()
	}

	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.allowSimpleKey()

	s.push(token{typ: tokenBlockEntry, span: EmptySpan(s.mark)})
	return nil
}

func (s *scanner) fetchDocumentIndicator(typ tokenType) error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.disallowSimpleKey()

	mark := s.mark
	s.skipNNonBlank(3)
	s.push(token{typ: typ, span: Span{Start: mark, End: s.mark}})
	return nil
}

func (s *scanner) fetchBlockScalar(literal bool) error {
	s.saveSimpleKey()
	s.allowSimpleKey()

	tok, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *scanner) scanBlockScalar(literal bool) (token, error) {
	startMark := s.mark
	chomp := chompClip
	increment := 0
	indent := 0
	leadingBlank := false
	style := FoldedStyle
	if literal {
		style = LiteralStyle
	}

	var content strings.Builder
	var leadingBreak, trailingBreaks, chompingBreak strings.Builder

	// Skip '|' or '>'.
	s.skipNonBlank()
	s.unrollNonBlockIndents()

	// Header: chomping indicator and explicit indent increment, either order.
	if c := s.peek(); c == '+' || c == '-' {
		if c == '+' {
			chomp = chompKeep
		} else {
			chomp = chompStrip
		}
		s.skipNonBlank()
		if isDigit(s.peek()) {
			if s.peek() == '0' {
				return token{}, scannerErr(
					"while scanning a block scalar, found an indentation indicator equal to 0", startMark)
			}
			increment = int(s.peek() - '0')
			s.skipNonBlank()
		}
	} else if isDigit(c) {
		if c == '0' {
			return token{}, scannerErr(
				"while scanning a block scalar, found an indentation indicator equal to 0", startMark)
		}
		increment = int(c - '0')
		s.skipNonBlank()
		if c := s.peek(); c == '+' || c == '-' {
			if c == '+' {
				chomp = chompKeep
			} else {
				chomp = chompStrip
			}
			s.skipNonBlank()
		}
	}

	if _, _, err := s.skipWsToEol(true); err != nil {
		return token{}, err
	}
	if !isBreakz(s.peek()) {
		return token{}, scannerErr(
			"while scanning a block scalar, did not find expected comment or line break", startMark)
	}
	if isBreak(s.peek()) {
		s.readBreak(&chompingBreak)
	}

	if s.peek() == '\t' {
		return token{}, scannerErr("a block scalar content cannot start with a tab", startMark)
	}

	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	// Leading breaks, and content-indent auto-detection when no explicit
	// increment was given.
	if indent == 0 {
		s.skipBlockScalarFirstLineIndent(&indent, &trailingBreaks)
	} else {
		s.skipBlockScalarIndent(indent, &trailingBreaks)
	}

	// End of stream with no content line, e.g. `- |+` as the last entry.
	if s.atEOF() {
		var contents string
		switch {
		case chomp == chompStrip:
		case s.mark.Line == startMark.Line:
		case chomp == chompClip:
			contents = chompingBreak.String()
		case trailingBreaks.Len() == 0: // Keep
			contents = chompingBreak.String()
		default: // Keep
			contents = trailingBreaks.String()
		}
		return token{
			typ:   tokenScalar,
			span:  Span{Start: startMark, End: s.mark},
			value: contents,
			style: style,
		}, nil
	}

	if s.mark.Column < indent && s.mark.Column > s.indent {
		return token{}, scannerErr("wrongly indented line in block scalar", s.mark)
	}

	contentStart := s.mark
	for s.mark.Column == indent && !s.atEOF() {
		if indent == 0 && s.nextIsDocumentIndicator() {
			break
		}

		// At the first content character of a content line.
		trailingBlank := isBlank(s.peek())
		if !literal && leadingBreak.Len() > 0 && !leadingBlank && !trailingBlank {
			content.WriteString(trailingBreaks.String())
			if trailingBreaks.Len() == 0 {
				content.WriteByte(' ')
			}
		} else {
			content.WriteString(leadingBreak.String())
			content.WriteString(trailingBreaks.String())
		}
		leadingBreak.Reset()
		trailingBreaks.Reset()

		leadingBlank = isBlank(s.peek())

		for !isBreakz(s.peek()) {
			content.WriteRune(s.peek())
			s.skipBlank()
		}
		if s.atEOF() {
			break
		}

		s.readBreak(&leadingBreak)
		s.skipBlockScalarIndent(indent, &trailingBreaks)
	}

	// Chomp the tail.
	if chomp != chompStrip {
		content.WriteString(leadingBreak.String())
		// An unterminated final line still counts as a line if indented as
		// scalar content.
		if s.atEOF() && s.mark.Column >= max(indent, 1) {
			content.WriteByte('\n')
		}
	}
	if chomp == chompKeep {
		content.WriteString(trailingBreaks.String())
	}

	return token{
		typ:   tokenScalar,
		span:  Span{Start: contentStart, End: s.mark},
		value: content.String(),
		style: style,
	}, nil
}

// skipBlockScalarIndent consumes indentation spaces up to indent and any
// whitespace-only lines, appending their breaks to breaks.
func (s *scanner) skipBlockScalarIndent(indent int, breaks *strings.Builder) {
	for {
		for s.mark.Column < indent && s.peek() == ' ' {
			s.skipBlank()
		}
		if isBreak(s.peek()) {
			s.readBreak(breaks)
		} else {
			break
		}
	}
}

// skipBlockScalarFirstLineIndent determines the content indent of a block
// scalar from its first non-empty line, skipping whitespace-only lines.
func (s *scanner) skipBlockScalarFirstLineIndent(indent *int, breaks *strings.Builder) {
	maxIndent := 0
	for {
		for s.peek() == ' ' {
			s.skipBlank()
		}
		if s.mark.Column > maxIndent {
			maxIndent = s.mark.Column
		}
		if isBreak(s.peek()) {
			s.readBreak(breaks)
		} else {
			break
		}
	}

	// At top level (indent -1), `|` followed by column-0 content must give an
	// indent of 0, not 1. Nested, the content indent is at least 1.
	*indent = max(maxIndent, s.indent+1)
	if s.indent > 0 {
		*indent = max(*indent, 1)
	}
}

func (s *scanner) fetchFlowScalar(single bool) error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanFlowScalar(single)
	if err != nil {
		return err
	}

	// A JSON-like key allows its value to sit adjacent to the ':'.
	if err := s.skipToNextToken(); err != nil {
		return err
	}
	s.adjacentValueAllowedAt = s.mark.Index

	s.push(tok)
	return nil
}

func (s *scanner) scanFlowScalar(single bool) (token, error) {
	startMark := s.mark

	var content strings.Builder
	var leadingBreak, trailingBreaks, whitespaces strings.Builder
	var leadingBlanks bool

	// Eat the left quote.
	s.skipNonBlank()

	for {
		if s.mark.Column == 0 && s.nextIsDocumentIndicator() {
			return token{}, scannerErr(
				"while scanning a quoted scalar, found unexpected document indicator", startMark)
		}
		if s.atEOF() {
			return token{}, scannerErr(
				"while scanning a quoted scalar, found unexpected end of stream", startMark)
		}
		if s.mark.Column < s.indent {
			break
		}

		leadingBlanks = false
		if err := s.consumeFlowScalarNonWhitespace(single, &content, &leadingBlanks, startMark); err != nil {
			return token{}, err
		}

		if c := s.peek(); (c == '\'' && single) || (c == '"' && !single) {
			break
		}

		// Consume blank characters.
		for isBlank(s.peek()) || isBreak(s.peek()) {
			if isBlank(s.peek()) {
				if leadingBlanks {
					if s.peek() == '\t' && s.mark.Column < s.indent {
						return token{}, scannerErr("tab cannot be used as indentation", s.mark)
					}
					s.skipBlank()
				} else {
					whitespaces.WriteRune(s.peek())
					s.skipBlank()
				}
			} else {
				if leadingBlanks {
					s.readBreak(&trailingBreaks)
				} else {
					whitespaces.Reset()
					s.readBreak(&leadingBreak)
					leadingBlanks = true
				}
			}
		}

		// Join whitespaces or fold line breaks.
		if leadingBlanks {
			if leadingBreak.Len() != 0 {
				if trailingBreaks.Len() == 0 {
					content.WriteByte(' ')
				} else {
					content.WriteString(trailingBreaks.String())
					trailingBreaks.Reset()
				}
				leadingBreak.Reset()
			} else {
				content.WriteString(trailingBreaks.String())
				trailingBreaks.Reset()
			}
		} else {
			content.WriteString(whitespaces.String())
			whitespaces.Reset()
		}
	}

	// Eat the right quote.
	s.skipNonBlank()

	// No content may trail the closing quote on the same line, bar the few
	// indicators that legitimately follow a key or flow entry.
	if _, _, err := s.skipWsToEol(true); err != nil {
		return token{}, err
	}
	switch c := s.peek(); {
	case (c == ',' || c == '}' || c == ']') && s.flowLevel > 0:
	case isBreakz(c):
	case c == ':' && s.flowLevel == 0 && startMark.Line == s.mark.Line:
	case c == ':' && s.flowLevel > 0:
	default:
		return token{}, scannerErr("invalid trailing content after double-quoted scalar", s.mark)
	}

	style := DoubleQuotedStyle
	if single {
		style = SingleQuotedStyle
	}
	return token{
		typ:   tokenScalar,
		span:  Span{Start: startMark, End: s.mark},
		value: content.String(),
		style: style,
	}, nil
}

// consumeFlowScalarNonWhitespace appends successive non-whitespace characters
// of a quoted scalar to content, resolving escapes, until whitespace, the
// closing quote or the end of input.
func (s *scanner) consumeFlowScalarNonWhitespace(single bool, content *strings.Builder, leadingBlanks *bool, startMark Mark) error {
	for !isBlankz(s.peek()) {
		c := s.peek()
		switch {
		case c == '\'' && s.peekN(1) == '\'' && single:
			content.WriteByte('\'')
			s.skipNNonBlank(2)
		case c == '\'' && single:
			return nil
		case c == '"' && !single:
			return nil
		case c == '\\' && !single && isBreak(s.peekN(1)):
			// An escaped line break is removed along with the break.
			s.skipNonBlank()
			s.skipLinebreak()
			*leadingBlanks = true
			return nil
		case c == '\\' && !single:
			r, err := s.resolveFlowScalarEscape(startMark)
			if err != nil {
				return err
			}
			content.WriteRune(r)
		default:
			content.WriteRune(c)
			s.skipNonBlank()
		}
	}
	return nil
}

// resolveFlowScalarEscape decodes the escape sequence at the cursor (which
// must be on the backslash) and returns the character it denotes.
func (s *scanner) resolveFlowScalarEscape(startMark Mark) (rune, error) {
	codeLength := 0
	var ret rune

	switch s.peekN(1) {
	case '0':
		ret = 0
	case 'a':
		ret = '\x07'
	case 'b':
		ret = '\x08'
	case 't', '\t':
		ret = '\t'
	case 'n':
		ret = '\n'
	case 'v':
		ret = '\x0b'
	case 'f':
		ret = '\x0c'
	case 'r':
		ret = '\x0d'
	case 'e':
		ret = '\x1b'
	case ' ':
		ret = ' '
	case '"':
		ret = '"'
	case '/':
		ret = '/'
	case '\\':
		ret = '\\'
	case 'N': // next line
		ret = '\u0085'
	case '_': // non-breaking space
		ret = '\u00a0'
	case 'L': // line separator
		ret = '\u2028'
	case 'P': // paragraph separator
		ret = '\u2029'
	case 'x':
		codeLength = 2
	case 'u':
		codeLength = 4
	case 'U':
		codeLength = 8
	default:
		return 0, scannerErr(
			"while parsing a quoted scalar, found unknown escape character", startMark)
	}
	s.skipNNonBlank(2)

	if codeLength > 0 {
		value := 0
		for i := 0; i < codeLength; i++ {
			c := s.peekN(i)
			if !isHex(c) {
				return 0, scannerErr(
					"while parsing a quoted scalar, did not find expected hexadecimal number", startMark)
			}
			value = value<<4 + asHex(c)
		}
		if value > utf8.MaxRune || value >= 0xD800 && value <= 0xDFFF {
			return 0, scannerErr(
				"while parsing a quoted scalar, found invalid Unicode character escape code", startMark)
		}
		ret = rune(value)
		s.skipNNonBlank(codeLength)
	}
	return ret, nil
}

func (s *scanner) fetchPlainScalar() error {
	s.saveSimpleKey()
	s.disallowSimpleKey()

	tok, err := s.scanPlainScalar()
	if err != nil {
		return err
	}
	s.push(tok)
	return nil
}

func (s *scanner) scanPlainScalar() (token, error) {
	s.unrollNonBlockIndents()
	indent := s.indent + 1
	startMark := s.mark

	if s.flowLevel > 0 && startMark.Column < indent {
		return token{}, scannerErr("invalid indentation in flow construct", startMark)
	}

	var content strings.Builder
	var whitespaces, leadingBreak, trailingBreaks strings.Builder
	endMark := s.mark

	for {
		if (s.leadingWhitespace && s.nextIsDocumentIndicator()) || s.peek() == '#' {
			break
		}

		if s.flowLevel > 0 && s.peek() == '-' && isFlow(s.peekN(1)) {
			return token{}, scannerErr(
				"plain scalar cannot start with '-' followed by ,[]{}", s.mark)
		}

		if !isBlankz(s.peek()) && s.canBePlainScalar(s.flowLevel > 0) {
			if s.leadingWhitespace {
				if leadingBreak.Len() != 0 {
					if trailingBreaks.Len() == 0 {
						content.WriteByte(' ')
					} else {
						content.WriteString(trailingBreaks.String())
						trailingBreaks.Reset()
					}
					leadingBreak.Reset()
				} else {
					content.WriteString(trailingBreaks.String())
					trailingBreaks.Reset()
				}
				s.leadingWhitespace = false
			} else if whitespaces.Len() != 0 {
				content.WriteString(whitespaces.String())
				whitespaces.Reset()
			}

			for !isBlankz(s.peek()) && s.canBePlainScalar(s.flowLevel > 0) {
				content.WriteRune(s.peek())
				s.skipNonBlank()
			}
			endMark = s.mark
		}

		// The scalar ends at eof, at ": ", or at a flow character in flow
		// context.
		if !(isBlank(s.peek()) || isBreak(s.peek())) {
			break
		}

		// Process blank characters.
		for isBlank(s.peek()) || isBreak(s.peek()) {
			if isBlank(s.peek()) {
				if !s.leadingWhitespace {
					whitespaces.WriteRune(s.peek())
					s.skipBlank()
				} else if s.mark.Column < indent && s.peek() == '\t' {
					// A tab in the indentation columns is only allowed on an
					// empty line.
					if _, _, err := s.skipWsToEol(true); err != nil {
						return token{}, err
					}
					if !isBreakz(s.peek()) {
						return token{}, scannerErr(
							"while scanning a plain scalar, found a tab", startMark)
					}
				} else {
					s.skipBlank()
				}
			} else {
				if s.leadingWhitespace {
					s.skipBreak()
					trailingBreaks.WriteByte('\n')
				} else {
					whitespaces.Reset()
					s.skipBreak()
					leadingBreak.WriteByte('\n')
					s.leadingWhitespace = true
				}
			}
		}

		// Dedenting below the node's indent ends the scalar in block context.
		if s.flowLevel == 0 && s.mark.Column < indent {
			break
		}
	}

	if s.leadingWhitespace {
		s.allowSimpleKey()
	}

	if content.Len() == 0 {
		// At least one character must be consumed or token fetching would
		// never advance. Happens on erroneous inputs such as "{...".
		return token{}, scannerErr("unexpected end of plain scalar", startMark)
	}
	return token{
		typ:   tokenScalar,
		span:  Span{Start: startMark, End: endMark},
		value: content.String(),
		style: PlainStyle,
	}, nil
}

// fetchKey handles an explicit `? ` key indicator.
func (s *scanner) fetchKey() error {
	startMark := s.mark
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			return scannerErr("mapping keys are not allowed in this context", s.mark)
		}
		s.rollIndent(startMark.Column, -1, tokenBlockMappingStart, startMark)
	} else {
		s.flowMappingStarted = true
	}

	if err := s.removeSimpleKey(); err != nil {
		return err
	}

	if s.flowLevel == 0 {
		s.allowSimpleKey()
	} else {
		s.disallowSimpleKey()
	}

	s.skipNonBlank()
	if err := s.skipYAMLWhitespace(); err != nil {
		return err
	}
	if s.peek() == '\t' {
		return scannerErr("tabs disallowed in this context", s.mark)
	}
	s.push(token{typ: tokenKey, span: Span{Start: startMark, End: s.mark}})
	return nil
}

// fetchFlowValue handles a `:` inside a flow collection, enforcing the
// JSON-compatibility adjacency rules before delegating to fetchValue.
func (s *scanner) fetchFlowValue() error {
	// `["a":[]]` is fine (adjacent value after a JSON-like key) while
	// `[a:[]]` is not. `[a:]` is fine; the ']' is not the value.
	if nc := s.peekN(1); s.mark.Index != s.adjacentValueAllowedAt && (nc == '[' || nc == '{') {
		return scannerErr("':' may not precede any of `[{` in flow mapping", s.mark)
	}
	return s.fetchValue()
}

// fetchValue handles a `:` indicator. If a pending simple key exists, a Key
// token (and the containing mapping start, if new) is inserted in front of
// the buffered key token.
func (s *scanner) fetchValue() error {
	sk := s.simpleKeys[len(s.simpleKeys)-1]
	startMark := s.mark
	isImplicitFlowMapping := len(s.implicitFlowMappingInside) > 0 && !s.flowMappingStarted
	if isImplicitFlowMapping {
		s.implicitFlowMappingInside[len(s.implicitFlowMappingInside)-1] = true
	}

	// Skip over ':'.
	s.skipNonBlank()
	if s.peek() == '\t' {
		_, ws, err := s.skipWsToEol(true)
		if err != nil {
			return err
		}
		if !ws && (s.peek() == '-' || isAlpha(s.peek())) {
			return scannerErr("':' must be followed by a valid YAML whitespace", s.mark)
		}
	}

	if sk.possible {
		// Turn the buffered token into a key.
		s.insertToken(sk.tokenNumber-s.tokensParsed,
			token{typ: tokenKey, span: EmptySpan(sk.mark)})
		if isImplicitFlowMapping {
			if sk.mark.Line < startMark.Line {
				return scannerErr("illegal placement of ':' indicator", startMark)
			}
			s.insertToken(sk.tokenNumber-s.tokensParsed,
				token{typ: tokenFlowMappingStart, span: EmptySpan(sk.mark)})
		}

		s.rollIndent(sk.mark.Column, sk.tokenNumber, tokenBlockMappingStart, sk.mark)
		s.rollOneColIndent()

		s.simpleKeys[len(s.simpleKeys)-1].possible = false
		s.disallowSimpleKey()
	} else {
		if isImplicitFlowMapping {
			s.push(token{typ: tokenFlowMappingStart, span: EmptySpan(startMark)})
		}
		// The ':' follows a complex key.
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				return scannerErr("mapping values are not allowed in this context", startMark)
			}
			s.rollIndent(startMark.Column, -1, tokenBlockMappingStart, startMark)
		}
		s.rollOneColIndent()

		if s.flowLevel == 0 {
			s.allowSimpleKey()
		} else {
			s.disallowSimpleKey()
		}
	}
	s.push(token{typ: tokenValue, span: EmptySpan(startMark)})
	return nil
}

// rollIndent pushes a block indentation level at col if the current level is
// shallower, emitting the given collection-start token. When number is >= 0
// the token is inserted at that queue position instead of appended.
func (s *scanner) rollIndent(col, number int, typ tokenType, mark Mark) {
	if s.flowLevel > 0 {
		return
	}

	// A pending one-column indent that turns out to start a block is replaced
	// by the block indent.
	if s.indent <= col && len(s.indents) > 0 {
		if last := s.indents[len(s.indents)-1]; !last.needsBlockEnd {
			s.indent = last.indent
			s.indents = s.indents[:len(s.indents)-1]
		}
	}

	if s.indent < col {
		s.indents = append(s.indents, indentLevel{indent: s.indent, needsBlockEnd: true})
		s.indent = col
		tok := token{typ: typ, span: EmptySpan(mark)}
		if number >= 0 {
			s.insertToken(number-s.tokensParsed, tok)
		} else {
			s.push(tok)
		}
	}
}

// unrollIndent pops indentation levels deeper than col, emitting a BlockEnd
// for each level that opened a block.
func (s *scanner) unrollIndent(col int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > col {
		last := s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
		s.indent = last.indent
		if last.needsBlockEnd {
			s.push(token{typ: tokenBlockEnd, span: EmptySpan(s.mark)})
		}
	}
}

// rollOneColIndent pushes a one-column indentation level that does not open a
// block. Used after `- `/`: ` so that the entry's value must be indented
// deeper than the indicator, without a BlockEnd per entry.
func (s *scanner) rollOneColIndent() {
	if s.flowLevel == 0 && len(s.indents) > 0 && s.indents[len(s.indents)-1].needsBlockEnd {
		s.indents = append(s.indents, indentLevel{indent: s.indent, needsBlockEnd: false})
		s.indent++
	}
}

// unrollNonBlockIndents pops all trailing one-column non-block indents.
func (s *scanner) unrollNonBlockIndents() {
	for len(s.indents) > 0 {
		last := s.indents[len(s.indents)-1]
		if last.needsBlockEnd {
			break
		}
		s.indent = last.indent
		s.indents = s.indents[:len(s.indents)-1]
	}
}

// saveSimpleKey records that the token about to be pushed may become a key.
func (s *scanner) saveSimpleKey() {
	if !s.simpleKeyAllowed {
		return
	}
	required := s.flowLevel == 0 && s.indent == s.mark.Column &&
		len(s.indents) > 0 && s.indents[len(s.indents)-1].needsBlockEnd
	s.simpleKeys[len(s.simpleKeys)-1] = simpleKey{
		possible:    true,
		required:    required,
		tokenNumber: s.tokensParsed + len(s.tokens),
		mark:        s.mark,
	}
}

func (s *scanner) removeSimpleKey() error {
	last := &s.simpleKeys[len(s.simpleKeys)-1]
	if last.possible && last.required {
		return scannerErr("simple key expected", s.mark)
	}
	last.possible = false
	return nil
}

// endImplicitMapping closes the implicit flow mapping at the current flow
// sequence level, if one is open. The per-level state itself is popped by
// fetchFlowCollectionEnd.
func (s *scanner) endImplicitMapping(mark Mark) {
	if n := len(s.implicitFlowMappingInside); n > 0 && s.implicitFlowMappingInside[n-1] {
		s.flowMappingStarted = false
		s.implicitFlowMappingInside[n-1] = false
		s.push(token{typ: tokenFlowMappingEnd, span: EmptySpan(mark)})
	}
}
