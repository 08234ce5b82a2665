package encoding

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"dashforge/internal/deps"
	"dashforge/internal/ladder"
	"dashforge/internal/services"
)

// Filter-graph label prefixes per codec family. Disjoint so the two ffmpeg
// invocations never share stream labels.
const (
	h264LabelPrefix = "s"
	av1LabelPrefix  = "t"
)

// Options carries the encoder knobs resolved from configuration.
type Options struct {
	FFmpegBinary string
	X264Preset   string
	AOMCPUUsed   int
	AudioBitrate string
}

// Encoder drives ffmpeg ladder encodes: one invocation per codec family per
// source, all rungs produced in a single decode pass.
type Encoder struct {
	opts   Options
	runner *services.Runner
	logger *slog.Logger
}

// New constructs an Encoder.
func New(opts Options, runner *services.Runner, logger *slog.Logger) *Encoder {
	if opts.FFmpegBinary == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Encoder{opts: opts, runner: runner, logger: logger.With("component", "encoding")}
}

// H264OutputName returns the file name of one H.264 rung.
func H264OutputName(height int) string {
	return fmt.Sprintf("h264_%d.mp4", height)
}

// AV1OutputName returns the file name of one AV1 rung.
func AV1OutputName(height int) string {
	return fmt.Sprintf("av1_%d.mp4", height)
}

// EncodeH264 produces the full H.264 ladder for one source in a single
// ffmpeg pass. A non-zero exit is fatal for the whole family: the rungs
// share one decode, so there is no partial-rung recovery.
func (e *Encoder) EncodeH264(ctx context.Context, sourcePath, outDir string, heights []int, gop int) error {
	args := e.h264Args(sourcePath, outDir, heights, gop)
	e.logger.Info("encoding h264 ladder",
		"source", filepath.Base(sourcePath), "rungs", len(heights), "gop", gop, "preset", e.opts.X264Preset)
	return e.runner.Run(ctx, e.opts.FFmpegBinary, args...)
}

func (e *Encoder) h264Args(sourcePath, outDir string, heights []int, gop int) []string {
	graph, labels := ladder.BuildScaleGraph(heights, h264LabelPrefix)
	args := []string{"-y", "-i", sourcePath, "-filter_complex", graph}
	gopValue := fmt.Sprintf("%d", gop)
	for i, height := range heights {
		params := ladder.H264ParamsFor(height)
		args = append(args,
			"-map", "["+labels[i]+"]",
			"-c:v", "libx264", "-preset", e.opts.X264Preset, "-pix_fmt", "yuv420p",
			"-crf", fmt.Sprintf("%d", params.CRF), "-profile:v", "high",
			"-g", gopValue, "-keyint_min", gopValue, "-sc_threshold", "0",
			"-b:v", params.Bitrate, "-maxrate", params.MaxRate, "-bufsize", params.BufSize,
			"-movflags", "+faststart",
			filepath.Join(outDir, H264OutputName(height)),
		)
	}
	return args
}

// EncodeAV1 produces the AV1 ladder using the detected back-end. The CRF
// table is shared between back-ends; only speed and tiling flags differ.
func (e *Encoder) EncodeAV1(ctx context.Context, sourcePath, outDir string, heights []int, gop int, backend deps.AV1Encoder) error {
	args := e.av1Args(sourcePath, outDir, heights, gop, backend)
	e.logger.Info("encoding av1 ladder",
		"source", filepath.Base(sourcePath), "rungs", len(heights), "gop", gop, "backend", string(backend))
	return e.runner.Run(ctx, e.opts.FFmpegBinary, args...)
}

func (e *Encoder) av1Args(sourcePath, outDir string, heights []int, gop int, backend deps.AV1Encoder) []string {
	graph, labels := ladder.BuildScaleGraph(heights, av1LabelPrefix)
	args := []string{"-y", "-i", sourcePath, "-filter_complex", graph}
	gopValue := fmt.Sprintf("%d", gop)
	for i, height := range heights {
		crf := fmt.Sprintf("%d", ladder.AV1CRFFor(height))
		output := filepath.Join(outDir, AV1OutputName(height))
		if backend == deps.AV1EncoderSVT {
			args = append(args,
				"-map", "["+labels[i]+"]",
				"-c:v", "libsvtav1", "-pix_fmt", "yuv420p",
				"-crf", crf, "-g", gopValue,
				"-preset", "8",
				"-movflags", "+faststart",
				output,
			)
			continue
		}
		args = append(args,
			"-map", "["+labels[i]+"]",
			"-c:v", "libaom-av1", "-pix_fmt", "yuv420p",
			"-crf", crf, "-b:v", "0",
			"-g", gopValue, "-row-mt", "1", "-cpu-used", fmt.Sprintf("%d", e.opts.AOMCPUUsed),
			"-tile-columns", "1", "-tile-rows", "1",
			"-movflags", "+faststart",
			output,
		)
	}
	return args
}

// ExtractAudio produces one stereo AAC track when the source has audio.
// The bool reports whether a file was written; sources without audio are
// not an error.
func (e *Encoder) ExtractAudio(ctx context.Context, sourcePath, outPath string, hasAudio bool) (bool, error) {
	if !hasAudio {
		e.logger.Info("no audio stream, skipping extraction", "source", filepath.Base(sourcePath))
		return false, nil
	}
	e.logger.Info("extracting audio", "source", filepath.Base(sourcePath), "bitrate", e.opts.AudioBitrate)
	args := e.audioArgs(sourcePath, outPath)
	if err := e.runner.Run(ctx, e.opts.FFmpegBinary, args...); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Encoder) audioArgs(sourcePath, outPath string) []string {
	return []string{
		"-y", "-i", sourcePath,
		"-vn", "-c:a", "aac", "-b:a", e.opts.AudioBitrate, "-ac", "2",
		outPath,
	}
}
