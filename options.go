// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package streamyaml

import "github.com/streamyaml/streamyaml/internal/yamlcore"

// Option allows configuring loading and dumping operations.
type Option = yamlcore.Option

// DuplicateKeyPolicy selects how repeated mapping keys are handled when
// composing trees.
type DuplicateKeyPolicy = yamlcore.DuplicateKeyPolicy

// Re-export DuplicateKeyPolicy constants
const (
	ErrorOnDuplicateKey = yamlcore.ErrorOnDuplicateKey
	KeepFirstKey        = yamlcore.KeepFirstKey
	KeepLastKey         = yamlcore.KeepLastKey
)

// Option configuration functions
var (
	// WithMaxDepth bounds the nesting depth of parsed collections.
	// Inputs nested deeper fail with a ParserError instead of exhausting
	// the stack. A negative depth is an error; 0 resets the default.
	WithMaxDepth = yamlcore.WithMaxDepth

	// WithDuplicateKeyPolicy selects how repeated mapping keys are handled
	// when composing trees. The default is ErrorOnDuplicateKey.
	WithDuplicateKeyPolicy = yamlcore.WithDuplicateKeyPolicy

	// WithSingleDocument rejects streams containing more than one
	// document.
	WithSingleDocument = yamlcore.WithSingleDocument

	// WithIndent sets the number of spaces used per indentation level
	// when dumping. Valid steps are 1 through 9; 0 resets the default.
	WithIndent = yamlcore.WithIndent
)

// Options combines multiple options into a single Option.
//
// Usage:
//
//	opts := streamyaml.Options(streamyaml.WithMaxDepth(100), streamyaml.WithSingleDocument())
//	stream, err := streamyaml.Load(in, opts)
func Options(opts ...Option) Option {
	return func(o *yamlcore.Options) error {
		for _, opt := range opts {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}
