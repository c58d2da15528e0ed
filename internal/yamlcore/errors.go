// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"fmt"
	"strings"
)

// markedError is the common shape of every error produced by this package:
// a message, the position it applies to, and optionally a second position
// describing the surrounding construct ("while parsing a flow mapping").
type markedError struct {
	Message string
	Mark    Mark

	ContextMessage string
	ContextMark    Mark
}

func (e *markedError) Error() string {
	var b strings.Builder
	b.WriteString("yaml: ")
	if e.ContextMessage != "" {
		fmt.Fprintf(&b, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if e.Mark.Line != 0 {
		fmt.Fprintf(&b, "%s: ", e.Mark)
	}
	b.WriteString(e.Message)
	return b.String()
}

// ScannerError reports a lexical error: malformed escapes, bad indentation,
// stray indicator characters and the like.
type ScannerError struct {
	markedError
}

func scannerErr(msg string, m Mark) *ScannerError {
	return &ScannerError{markedError{Message: msg, Mark: m}}
}

func scannerErrContext(ctx string, ctxMark Mark, msg string, m Mark) *ScannerError {
	return &ScannerError{markedError{
		Message: msg, Mark: m,
		ContextMessage: ctx, ContextMark: ctxMark,
	}}
}

// ParserError reports a grammatical error: a token that no rule of the
// grammar admits at the current state, or a depth limit being exceeded.
type ParserError struct {
	markedError
}

func parserErr(msg string, m Mark) *ParserError {
	return &ParserError{markedError{Message: msg, Mark: m}}
}

func parserErrContext(ctx string, ctxMark Mark, msg string, m Mark) *ParserError {
	return &ParserError{markedError{
		Message: msg, Mark: m,
		ContextMessage: ctx, ContextMark: ctxMark,
	}}
}

// AnchorError reports an alias that references an anchor name with no prior
// definition in the current document. Name is the referenced anchor name and
// Mark the position of the alias.
type AnchorError struct {
	markedError
	Name string
}

func anchorErr(name string, m Mark) *AnchorError {
	return &AnchorError{
		markedError: markedError{
			Message: fmt.Sprintf("unknown anchor '%s' referenced", name),
			Mark:    m,
		},
		Name: name,
	}
}

// DuplicateKeyError reports a repeated mapping key under the Error duplicate
// key policy. Key is the raw scalar text; Mark is the second occurrence,
// FirstMark the first.
type DuplicateKeyError struct {
	markedError
	Key       string
	FirstMark Mark
}

func duplicateKeyErr(key string, first, second Mark) *DuplicateKeyError {
	return &DuplicateKeyError{
		markedError: markedError{
			Message: fmt.Sprintf("mapping key %q already defined at %s", key, first),
			Mark:    second,
		},
		Key:       key,
		FirstMark: first,
	}
}

// ComposerError reports a structural problem while building node trees from
// events, such as a second root in single-document mode.
type ComposerError struct {
	markedError
}

func composerErr(msg string, m Mark) *ComposerError {
	return &ComposerError{markedError{Message: msg, Mark: m}}
}

// ReaderError reports a failure to obtain or decode the input: an I/O error
// from the source reader or a byte sequence invalid in the detected encoding.
type ReaderError struct {
	markedError
	Err error // underlying cause, may be nil for encoding errors
}

func readerErr(msg string, m Mark, cause error) *ReaderError {
	return &ReaderError{
		markedError: markedError{Message: msg, Mark: m},
		Err:         cause,
	}
}

func (e *ReaderError) Unwrap() error { return e.Err }
