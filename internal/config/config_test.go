package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.InputDir) {
		t.Fatalf("expected absolute input dir, got %q", cfg.Paths.InputDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashforge.toml")
	content := `
[paths]
input_dir = "` + filepath.Join(dir, "in") + `"
output_dir = "` + filepath.Join(dir, "dash") + `"
work_dir = "` + filepath.Join(dir, "scratch") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[video]
max_height = 1440
av1_encoder = "SVT"

[audio]
language = "en-US"

[packaging]
segment_seconds = 6
backend = "mp4box"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Video.MaxHeight != 1440 {
		t.Fatalf("expected max height 1440, got %d", cfg.Video.MaxHeight)
	}
	if cfg.Video.AV1Encoder != "svt" {
		t.Fatalf("expected normalized encoder svt, got %q", cfg.Video.AV1Encoder)
	}
	if cfg.Packaging.SegmentSeconds != 6 || cfg.Packaging.Backend != "mp4box" {
		t.Fatalf("unexpected packaging config: %+v", cfg.Packaging)
	}
	if cfg.Video.X264Preset != "slow" {
		t.Fatalf("expected default preset to survive partial config, got %q", cfg.Video.X264Preset)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Audio.Bitrate != "192k" {
		t.Fatalf("expected default audio bitrate, got %q", cfg.Audio.Bitrate)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad av1 encoder", func(c *Config) { c.Video.AV1Encoder = "rav1e" }, "av1_encoder"},
		{"cpu used range", func(c *Config) { c.Video.AOMCPUUsed = 9 }, "aom_cpu_used"},
		{"negative cap", func(c *Config) { c.Video.MaxHeight = -1 }, "max_height"},
		{"bad bitrate", func(c *Config) { c.Audio.Bitrate = "lots" }, "audio.bitrate"},
		{"bad language", func(c *Config) { c.Audio.Language = "not a tag!" }, "audio.language"},
		{"segment seconds", func(c *Config) { c.Packaging.SegmentSeconds = 0 }, "segment_seconds"},
		{"bad backend", func(c *Config) { c.Packaging.Backend = "bento4" }, "backend"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"same work and out", func(c *Config) { c.Paths.WorkDir = c.Paths.OutputDir }, "must differ"},
	}
	for _, tc := range cases {
		cfg := Default()
		if err := cfg.normalize(); err != nil {
			t.Fatalf("%s: normalize: %v", tc.name, err)
		}
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation failure", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected %q in error, got %q", tc.name, tc.want, err.Error())
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Packaging.SegmentSeconds != 4 {
		t.Fatalf("unexpected sample segment duration %d", cfg.Packaging.SegmentSeconds)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// Idempotent on re-run.
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}
	for _, d := range []string{cfg.Paths.OutputDir, cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q", d)
		}
	}
}
