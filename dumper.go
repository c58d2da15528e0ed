// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This file contains the Dump API for rendering composed trees back to text.
//
// Primary functions:
// - Dump: Render a whole Stream
// - DumpDocument: Render a single Document
// - DumpNode: Render a bare Node as an implicit document

package streamyaml

import (
	"io"

	"github.com/streamyaml/streamyaml/internal/yamlcore"
)

// Dump renders every document of the stream. Output is structural, not
// byte-faithful: parsing it back yields an equivalent tree, while the source
// formatting is not preserved. Shared nodes come out as anchors and aliases.
func Dump(s *Stream, opts ...Option) ([]byte, error) {
	o, err := yamlcore.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return yamlcore.NewEmitter(o.Indent()).EmitStream(s)
}

// DumpDocument renders a single document.
func DumpDocument(doc *Document, opts ...Option) ([]byte, error) {
	o, err := yamlcore.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return yamlcore.NewEmitter(o.Indent()).EmitDocument(doc)
}

// DumpNode renders a bare node as an implicit document.
func DumpNode(n *Node, opts ...Option) ([]byte, error) {
	return DumpDocument(&Document{Root: n}, opts...)
}

// DumpTo renders the stream to w.
func DumpTo(w io.Writer, s *Stream, opts ...Option) error {
	out, err := Dump(s, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
