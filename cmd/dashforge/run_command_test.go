package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"dashforge/internal/config"
	"dashforge/internal/deps"
	"dashforge/internal/pipeline"
	"dashforge/internal/services"
)

func TestApplyRunFlagsOverridesConfig(t *testing.T) {
	cfg := config.Default()
	cmd := newRunCommand(newCommandContext(nil))
	if err := cmd.Flags().Parse([]string{
		"--input", "/srv/in",
		"--seg", "6",
		"--audio-bitrate", "128k",
		"--preset", "medium",
		"--av1-encoder", "aom",
		"--cpu-used", "4",
		"--max-height", "720",
	}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if err := applyRunFlags(&cfg, cmd.Flags()); err != nil {
		t.Fatalf("apply flags: %v", err)
	}

	if cfg.Paths.InputDir != "/srv/in" {
		t.Fatalf("input override not applied: %q", cfg.Paths.InputDir)
	}
	if cfg.Packaging.SegmentSeconds != 6 {
		t.Fatalf("seg override not applied: %d", cfg.Packaging.SegmentSeconds)
	}
	if cfg.Audio.Bitrate != "128k" || cfg.Video.X264Preset != "medium" {
		t.Fatalf("audio/preset overrides not applied: %+v", cfg)
	}
	if cfg.Video.AV1Encoder != "aom" || cfg.Video.AOMCPUUsed != 4 || cfg.Video.MaxHeight != 720 {
		t.Fatalf("video overrides not applied: %+v", cfg.Video)
	}
	// Untouched fields keep their defaults.
	if cfg.Paths.OutputDir != "out" {
		t.Fatalf("output dir should be untouched, got %q", cfg.Paths.OutputDir)
	}
}

func TestApplyRunFlagsLeavesConfigWhenUnset(t *testing.T) {
	cfg := config.Default()
	want := cfg
	cmd := newRunCommand(newCommandContext(nil))
	if err := applyRunFlags(&cfg, cmd.Flags()); err != nil {
		t.Fatalf("apply flags: %v", err)
	}
	if cfg != want {
		t.Fatalf("config changed without flags:\n got %+v\nwant %+v", cfg, want)
	}
}

func writeStubBinary(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestResolveCapabilitiesForcedBackend(t *testing.T) {
	bin := t.TempDir()
	writeStubBinary(t, bin, "MP4Box")
	t.Setenv("PATH", bin)

	cfg := config.Default()
	cfg.Packaging.Backend = "mp4box"
	cfg.Video.AV1Encoder = "svt"

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	caps, err := resolveCapabilities(cmd, &cfg, services.NewRunner(quietStatusLogger()), quietStatusLogger())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if caps.Packager != deps.PackagerMP4Box {
		t.Fatalf("expected mp4box backend, got %s", caps.Packager)
	}
	if caps.AV1Encoder != deps.AV1EncoderSVT {
		t.Fatalf("forced svt not honored, got %s", caps.AV1Encoder)
	}
}

func TestResolveCapabilitiesForcedBackendMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	cfg := config.Default()
	cfg.Packaging.Backend = "shaka"
	cfg.Video.AV1Encoder = "aom"

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := resolveCapabilities(cmd, &cfg, services.NewRunner(quietStatusLogger()), quietStatusLogger())
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing-dependency error, got %v", err)
	}
}

func TestRenderRunSummary(t *testing.T) {
	summary := pipeline.Summary{
		Results: []pipeline.SourceResult{
			{Name: "movie", Ladder: []int{1080, 720, 480}, Tracks: 7, Manifest: "/out/movie/dash/manifest.mpd", Duration: 90 * time.Second},
			{Name: "broken", Ladder: []int{480}, Err: errors.New("encode failed"), Duration: 3 * time.Second},
		},
	}
	rendered := renderRunSummary(summary)
	for _, want := range []string{"movie", "1080,720,480", "manifest.mpd", "broken", "failed", "encode failed"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("summary missing %q:\n%s", want, rendered)
		}
	}
}
