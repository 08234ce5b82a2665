package config

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validatePackaging(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.InputDir == "" {
		return errors.New("paths.input_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.WorkDir == c.Paths.OutputDir {
		return errors.New("paths.work_dir and paths.output_dir must differ")
	}
	return nil
}

func (c *Config) validateVideo() error {
	switch c.Video.AV1Encoder {
	case "auto", "svt", "aom":
	default:
		return fmt.Errorf("video.av1_encoder must be auto, svt, or aom (got %q)", c.Video.AV1Encoder)
	}
	if c.Video.AOMCPUUsed < 0 || c.Video.AOMCPUUsed > 8 {
		return fmt.Errorf("video.aom_cpu_used must be between 0 and 8 (got %d)", c.Video.AOMCPUUsed)
	}
	if c.Video.MaxHeight < 0 {
		return fmt.Errorf("video.max_height must not be negative (got %d)", c.Video.MaxHeight)
	}
	return nil
}

var bitratePattern = regexp.MustCompile(`^[0-9]+k$`)

func (c *Config) validateAudio() error {
	if !bitratePattern.MatchString(c.Audio.Bitrate) {
		return fmt.Errorf("audio.bitrate must look like \"192k\" (got %q)", c.Audio.Bitrate)
	}
	// "und" is valid BCP-47 but language.Parse rejects it as non-canonical
	// in some table versions, so it is allowed explicitly.
	if c.Audio.Language != "und" {
		if _, err := language.Parse(c.Audio.Language); err != nil {
			return fmt.Errorf("audio.language %q is not a valid BCP-47 tag: %w", c.Audio.Language, err)
		}
	}
	return nil
}

func (c *Config) validatePackaging() error {
	if c.Packaging.SegmentSeconds < 1 {
		return fmt.Errorf("packaging.segment_seconds must be at least 1 (got %d)", c.Packaging.SegmentSeconds)
	}
	switch c.Packaging.Backend {
	case "auto", "shaka", "mp4box":
	default:
		return fmt.Errorf("packaging.backend must be auto, shaka, or mp4box (got %q)", c.Packaging.Backend)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be auto, console, or json (got %q)", c.Logging.Format)
	}
	return nil
}
