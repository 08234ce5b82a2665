package main

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dashforge/internal/config"
	"dashforge/internal/deps"
	"dashforge/internal/encoding"
	"dashforge/internal/history"
	"dashforge/internal/logging"
	"dashforge/internal/packaging"
	"dashforge/internal/pipeline"
	"dashforge/internal/preflight"
	"dashforge/internal/runlock"
	"dashforge/internal/services"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Encode and package every .mp4 in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunFlags(cfg, cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return executeRun(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Directory scanned for source .mp4 files")
	flags.String("out", "", "Directory receiving packaged output")
	flags.String("work", "", "Directory for intermediate encodes")
	flags.Int("seg", 0, "Segment duration in seconds")
	flags.String("audio-bitrate", "", "AAC audio bitrate, e.g. 192k")
	flags.String("preset", "", "libx264 preset")
	flags.String("av1-encoder", "", "AV1 backend: auto, svt, or aom")
	flags.Int("cpu-used", -1, "libaom cpu-used (0 best .. 8 fastest)")
	flags.Int("max-height", -1, "Cap the encoding ladder; 0 disables the cap")

	return cmd
}

// applyRunFlags folds explicitly-set run flags over the loaded config.
// Path flags go through the same expansion as config file values.
func applyRunFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	pathFlag := func(name string, target *string) error {
		if !flags.Changed(name) {
			return nil
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return err
		}
		*target = expanded
		return nil
	}
	if err := pathFlag("input", &cfg.Paths.InputDir); err != nil {
		return err
	}
	if err := pathFlag("out", &cfg.Paths.OutputDir); err != nil {
		return err
	}
	if err := pathFlag("work", &cfg.Paths.WorkDir); err != nil {
		return err
	}

	if flags.Changed("seg") {
		value, err := flags.GetInt("seg")
		if err != nil {
			return err
		}
		cfg.Packaging.SegmentSeconds = value
	}
	if flags.Changed("audio-bitrate") {
		value, err := flags.GetString("audio-bitrate")
		if err != nil {
			return err
		}
		cfg.Audio.Bitrate = value
	}
	if flags.Changed("preset") {
		value, err := flags.GetString("preset")
		if err != nil {
			return err
		}
		cfg.Video.X264Preset = value
	}
	if flags.Changed("av1-encoder") {
		value, err := flags.GetString("av1-encoder")
		if err != nil {
			return err
		}
		cfg.Video.AV1Encoder = value
	}
	if flags.Changed("cpu-used") {
		value, err := flags.GetInt("cpu-used")
		if err != nil {
			return err
		}
		cfg.Video.AOMCPUUsed = value
	}
	if flags.Changed("max-height") {
		value, err := flags.GetInt("max-height")
		if err != nil {
			return err
		}
		cfg.Video.MaxHeight = value
	}
	return nil
}

func executeRun(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewWithFile(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.OutOrStdout(),
	}, cfg.Paths.LogDir)
	if err != nil {
		return err
	}

	statuses := preflight.CheckSystemDeps(cfg)
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return services.Wrap(services.ErrMissingDependency, "run", "preflight",
			fmt.Sprintf("missing required tools: %v", missing), nil)
	}

	runner := services.NewRunner(logger)
	caps, err := resolveCapabilities(cmd, cfg, runner, logger)
	if err != nil {
		return err
	}

	lock := runlock.New(cfg.Paths.WorkDir)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := history.Open(cfg.Paths.LogDir)
	if err != nil {
		return err
	}
	defer store.Close()

	encoder := encoding.New(encoding.Options{
		FFmpegBinary: cfg.FFmpegBinary(),
		X264Preset:   cfg.Video.X264Preset,
		AOMCPUUsed:   cfg.Video.AOMCPUUsed,
		AudioBitrate: cfg.Audio.Bitrate,
	}, runner, logger)

	packager, err := packaging.New(caps.Packager, runner, logger)
	if err != nil {
		return err
	}

	manager := pipeline.NewManager(cfg, caps, encoder, packager, store, logger)
	summary, err := manager.Run(cmd.Context())
	if err != nil {
		return err
	}

	if len(summary.Results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderRunSummary(summary))
	}
	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(summary.Results))
	}
	return nil
}

// resolveCapabilities pins the packager backend and AV1 encoder for the whole
// run. Config values other than "auto" are honored without re-detection.
func resolveCapabilities(cmd *cobra.Command, cfg *config.Config, runner *services.Runner, logger *slog.Logger) (deps.Capabilities, error) {
	var caps deps.Capabilities

	switch cfg.Packaging.Backend {
	case "shaka":
		if _, err := exec.LookPath(deps.ShakaBinary); err != nil {
			return caps, services.Wrap(services.ErrMissingDependency, "packaging", "detect",
				"packaging.backend is shaka but the packager binary is not in PATH", err)
		}
		caps.Packager = deps.PackagerShaka
	case "mp4box":
		if _, err := exec.LookPath(deps.MP4BoxBinary); err != nil {
			return caps, services.Wrap(services.ErrMissingDependency, "packaging", "detect",
				"packaging.backend is mp4box but MP4Box is not in PATH", err)
		}
		caps.Packager = deps.PackagerMP4Box
	default:
		backend, err := deps.DetectPackager()
		if err != nil {
			return caps, err
		}
		caps.Packager = backend
	}

	switch cfg.Video.AV1Encoder {
	case "svt":
		caps.AV1Encoder = deps.AV1EncoderSVT
	case "aom":
		caps.AV1Encoder = deps.AV1EncoderAOM
	default:
		caps.AV1Encoder = deps.DetectAV1Encoder(cmd.Context(), runner, cfg.FFmpegBinary())
	}

	logger.Info("resolved capabilities",
		"packager", string(caps.Packager),
		"av1", string(caps.AV1Encoder))
	return caps, nil
}

func renderRunSummary(summary pipeline.Summary) string {
	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		status := "completed"
		detail := result.Manifest
		if result.Err != nil {
			status = "failed"
			detail = result.Err.Error()
		}
		rows = append(rows, []string{
			result.Name,
			formatHeights(result.Ladder),
			strconv.Itoa(result.Tracks),
			result.Duration.Round(time.Second).String(),
			status,
			detail,
		})
	}
	headers := []string{"Source", "Ladder", "Tracks", "Duration", "Status", "Manifest"}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft})
}

func formatHeights(heights []int) string {
	parts := make([]string, 0, len(heights))
	for _, h := range heights {
		parts = append(parts, strconv.Itoa(h))
	}
	return strings.Join(parts, ",")
}
