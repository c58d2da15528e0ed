// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package streamyaml_test

import (
	"testing"

	yaml "github.com/streamyaml/streamyaml"
)

// FuzzLoadDump checks that any input that loads cleanly survives a dump and
// reload: the emitted text must parse, with the same number of documents.
func FuzzLoadDump(f *testing.F) {
	for _, seed := range []string{
		"a: b\n",
		"- 1\n- 2\n",
		"a: [1, {b: c}]\n",
		"--- &x\n- *x\n",
		"%YAML 1.2\n---\n? [k]\n: v\n",
		"|\n  text\n",
		"'quoted': \"scalars\"\n",
		"a: 1\n---\nb: 2\n...\n",
	} {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, in []byte) {
		stream, err := yaml.Load(in)
		if err != nil {
			return
		}
		out, err := yaml.Dump(stream)
		if err != nil {
			t.Fatalf("dump of loadable input %q: %v", in, err)
		}
		reloaded, err := yaml.Load(out)
		if err != nil {
			t.Fatalf("reload of dumped output %q: %v", out, err)
		}
		if len(reloaded.Documents) != len(stream.Documents) {
			t.Fatalf("document count changed: %d != %d for %q",
				len(reloaded.Documents), len(stream.Documents), out)
		}
	})
}
