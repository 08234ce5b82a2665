package main

import (
	"testing"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"run", "status", "history", "config"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected subcommand %q", name)
		}
	}

	if root.PersistentFlags().Lookup("config") == nil {
		t.Fatal("expected persistent --config flag")
	}
}

func TestRunCommandFlags(t *testing.T) {
	root := newRootCommand()
	run, _, err := root.Find([]string{"run"})
	if err != nil {
		t.Fatalf("find run: %v", err)
	}
	for _, name := range []string{"input", "out", "work", "seg", "audio-bitrate", "preset", "av1-encoder", "cpu-used", "max-height"} {
		if run.Flags().Lookup(name) == nil {
			t.Fatalf("run command missing --%s", name)
		}
	}
}
