package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeAudio()
	c.normalizePackaging()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.X264Preset = strings.TrimSpace(c.Video.X264Preset)
	if c.Video.X264Preset == "" {
		c.Video.X264Preset = defaultX264Preset
	}
	c.Video.AV1Encoder = strings.ToLower(strings.TrimSpace(c.Video.AV1Encoder))
	if c.Video.AV1Encoder == "" {
		c.Video.AV1Encoder = defaultAV1Encoder
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Bitrate = strings.ToLower(strings.TrimSpace(c.Audio.Bitrate))
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = defaultAudioBitrate
	}
	c.Audio.Language = strings.TrimSpace(c.Audio.Language)
	if c.Audio.Language == "" {
		c.Audio.Language = defaultAudioLanguage
	}
}

func (c *Config) normalizePackaging() {
	c.Packaging.Backend = strings.ToLower(strings.TrimSpace(c.Packaging.Backend))
	if c.Packaging.Backend == "" {
		c.Packaging.Backend = defaultBackend
	}
	if c.Packaging.SegmentSeconds == 0 {
		c.Packaging.SegmentSeconds = defaultSegmentSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
