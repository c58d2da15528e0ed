// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import "errors"

const defaultIndent = 2

// Options holds the resolved configuration for parsing, composing and
// emitting. Construct with ApplyOptions.
type Options struct {
	maxDepth       int
	duplicateKeys  DuplicateKeyPolicy
	singleDocument bool
	indent         int
}

// Option configures loading and dumping operations.
type Option func(*Options) error

// ApplyOptions resolves opts over the defaults.
func ApplyOptions(opts ...Option) (*Options, error) {
	o := &Options{
		maxDepth:      DefaultMaxDepth,
		duplicateKeys: ErrorOnDuplicateKey,
		indent:        defaultIndent,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithMaxDepth bounds the nesting depth of parsed collections. Inputs nested
// deeper fail with a ParserError instead of exhausting the stack.
//
// A negative depth is an error; 0 resets the default.
func WithMaxDepth(depth int) Option {
	return func(o *Options) error {
		if depth < 0 {
			return errors.New("yaml: maximum nesting depth cannot be negative")
		}
		if depth == 0 {
			depth = DefaultMaxDepth
		}
		o.maxDepth = depth
		return nil
	}
}

// WithDuplicateKeyPolicy selects how repeated mapping keys are handled when
// composing trees. The default is ErrorOnDuplicateKey.
func WithDuplicateKeyPolicy(policy DuplicateKeyPolicy) Option {
	return func(o *Options) error {
		switch policy {
		case ErrorOnDuplicateKey, KeepFirstKey, KeepLastKey:
			o.duplicateKeys = policy
		default:
			return errors.New("yaml: unknown duplicate key policy")
		}
		return nil
	}
}

// WithSingleDocument rejects streams containing more than one document.
func WithSingleDocument() Option {
	return func(o *Options) error {
		o.singleDocument = true
		return nil
	}
}

// WithIndent sets the number of spaces used per indentation level when
// dumping. Valid steps are 1 through 9; 0 resets the default.
func WithIndent(indent int) Option {
	return func(o *Options) error {
		if indent < 0 || indent > 9 {
			return errors.New("yaml: indent must be between 1 and 9 spaces")
		}
		if indent == 0 {
			indent = defaultIndent
		}
		o.indent = indent
		return nil
	}
}

// MaxDepth returns the configured nesting depth limit.
func (o *Options) MaxDepth() int { return o.maxDepth }

// DuplicateKeys returns the configured duplicate key policy.
func (o *Options) DuplicateKeys() DuplicateKeyPolicy { return o.duplicateKeys }

// SingleDocument reports whether multi-document streams are rejected.
func (o *Options) SingleDocument() bool { return o.singleDocument }

// Indent returns the configured dump indentation step.
func (o *Options) Indent() int { return o.indent }
