package ffprobe

import (
	"context"
	"log/slog"
)

// Probe failure defaults. An unreadable source still gets a usable ladder
// rather than aborting the batch.
const (
	DefaultHeight   = 1080
	DefaultAvgFPS   = 25.0
	DefaultHasAudio = false
)

// Source carries the probed properties the pipeline needs from one input
// file. Immutable once produced.
type Source struct {
	Height   int
	AvgFPS   float64
	HasAudio bool
}

var inspect = Inspect

// InspectSource probes a single input and reduces the result to the source
// properties driving ladder selection. Probe or parse failures are absorbed:
// the documented defaults come back and the reason is logged at warn level,
// never returned.
func InspectSource(ctx context.Context, binary, path string, logger *slog.Logger) Source {
	if logger == nil {
		logger = slog.Default()
	}
	src := Source{Height: DefaultHeight, AvgFPS: DefaultAvgFPS, HasAudio: DefaultHasAudio}

	result, err := inspect(ctx, binary, path)
	if err != nil {
		logger.Warn("probe failed, using defaults", "path", path, "error", err)
		return src
	}

	video, ok := result.FirstVideoStream()
	if !ok {
		logger.Warn("no video stream found, using defaults", "path", path)
		src.HasAudio = result.AudioStreamCount() > 0
		return src
	}

	if video.Height > 0 {
		src.Height = video.Height
	} else {
		logger.Warn("probe reported no height, using default", "path", path)
	}

	if fps, err := ParseFrameRate(video.AvgFrameRate); err != nil {
		logger.Warn("unparseable frame rate, using default", "path", path, "value", video.AvgFrameRate, "error", err)
	} else {
		src.AvgFPS = fps
	}

	src.HasAudio = result.AudioStreamCount() > 0
	return src
}

// SetInspectForTests overrides the ffprobe invocation during tests.
func SetInspectForTests(fn func(context.Context, string, string) (Result, error)) func() {
	previous := inspect
	inspect = fn
	return func() {
		inspect = previous
	}
}
