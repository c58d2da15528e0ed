// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This binary is an inspection tool for the streamyaml library. It reads
// YAML from a file or stdin and prints the event trace, the composed node
// tree, a JSON rendering, or re-emitted YAML.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	yaml "github.com/streamyaml/streamyaml"
)

// CLI is the top-level command-line interface for streamyaml.
type CLI struct {
	MaxDepth      int    `help:"Maximum collection nesting depth (0 for the default)." default:"0"`
	DuplicateKeys string `help:"Duplicate mapping key handling." enum:"error,first,last" default:"error"`
	Single        bool   `help:"Reject streams with more than one document."`

	Events EventsCmd `cmd:"" default:"withargs" help:"Print the event trace (default)."`
	Tree   TreeCmd   `cmd:"" help:"Print the composed node tree."`
	JSON   JSONCmd   `cmd:"" name:"json" help:"Print documents as JSON."`
	Dump   DumpCmd   `cmd:"" help:"Parse and re-emit as YAML."`
}

// options translates the global flags.
func (c *CLI) options() []yaml.Option {
	opts := []yaml.Option{yaml.WithMaxDepth(c.MaxDepth)}
	switch c.DuplicateKeys {
	case "first":
		opts = append(opts, yaml.WithDuplicateKeyPolicy(yaml.KeepFirstKey))
	case "last":
		opts = append(opts, yaml.WithDuplicateKeyPolicy(yaml.KeepLastKey))
	}
	if c.Single {
		opts = append(opts, yaml.WithSingleDocument())
	}
	return opts
}

// readInput returns the contents of file, or of stdin when file is empty
// or "-".
func readInput(file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

// EventsCmd prints one event per line in the compact trace notation.
type EventsCmd struct {
	File string `arg:"" optional:"" help:"Input file, or '-' for stdin."`
}

func (cmd *EventsCmd) Run(cli *CLI) error {
	in, err := readInput(cmd.File)
	if err != nil {
		return err
	}
	trace, err := yaml.EventTrace(in, cli.options()...)
	if err != nil {
		return err
	}
	fmt.Println(trace)
	return nil
}

// TreeCmd prints the composed node trees, one indented line per node.
type TreeCmd struct {
	File string `arg:"" optional:"" help:"Input file, or '-' for stdin."`
}

func (cmd *TreeCmd) Run(cli *CLI) error {
	in, err := readInput(cmd.File)
	if err != nil {
		return err
	}
	stream, err := yaml.Load(in, cli.options()...)
	if err != nil {
		return err
	}
	for i, doc := range stream.Documents {
		if i > 0 {
			fmt.Println("---")
		}
		printTree(os.Stdout, doc.Root, 0, map[*yaml.Node]bool{})
	}
	return nil
}

// JSONCmd prints each document as one line of JSON. Multi-document streams
// produce one line per document.
type JSONCmd struct {
	File string `arg:"" optional:"" help:"Input file, or '-' for stdin."`
}

func (cmd *JSONCmd) Run(cli *CLI) error {
	in, err := readInput(cmd.File)
	if err != nil {
		return err
	}
	stream, err := yaml.Load(in, cli.options()...)
	if err != nil {
		return err
	}
	for _, doc := range stream.Documents {
		line, err := toJSON(doc.Root)
		if err != nil {
			return err
		}
		fmt.Println(line)
	}
	return nil
}

// DumpCmd parses the input and re-emits it.
type DumpCmd struct {
	File   string `arg:"" optional:"" help:"Input file, or '-' for stdin."`
	Indent int    `help:"Indentation step (1-9, 0 for the default)." default:"0"`
}

func (cmd *DumpCmd) Run(cli *CLI) error {
	in, err := readInput(cmd.File)
	if err != nil {
		return err
	}
	stream, err := yaml.Load(in, cli.options()...)
	if err != nil {
		return err
	}
	out, err := yaml.Dump(stream, yaml.WithIndent(cmd.Indent))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("streamyaml"),
		kong.Description("Inspect YAML streams: events, trees, JSON, round-trips."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
