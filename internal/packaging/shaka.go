package packaging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"dashforge/internal/deps"
	"dashforge/internal/services"
)

// shakaPackager drives Shaka Packager. Each representation gets an explicit
// sub-directory with init.mp4 plus numbered media segments.
type shakaPackager struct {
	runner *services.Runner
	logger *slog.Logger
}

func (p *shakaPackager) Package(ctx context.Context, job Job) (string, error) {
	if err := validateJob(job); err != nil {
		return "", err
	}

	args, err := shakaArgs(job)
	if err != nil {
		return "", err
	}

	manifestPath := filepath.Join(job.OutDir, ManifestName)
	p.logger.Info("packaging with shaka", "representations", job.RepresentationCount(), "manifest", manifestPath)
	if err := p.runner.Run(ctx, deps.ShakaBinary, args...); err != nil {
		return "", err
	}
	return manifestPath, nil
}

// shakaArgs builds the stream descriptors and flags. Segment directories
// are created here because packager expects the template paths to exist.
func shakaArgs(job Job) ([]string, error) {
	args := make([]string, 0, len(job.Videos)+4)

	for _, track := range job.Videos {
		segDir := filepath.Join(job.OutDir, track.RepresentationID())
		if err := os.MkdirAll(segDir, 0o755); err != nil {
			return nil, fmt.Errorf("create segment directory %q: %w", segDir, err)
		}
		args = append(args, fmt.Sprintf("in=%s,stream=video,init_segment=%s,segment_template=%s",
			track.Path,
			filepath.Join(segDir, "init.mp4"),
			filepath.Join(segDir, "seg_$Number$.m4s")))
	}

	if job.Audio != nil {
		segDir := filepath.Join(job.OutDir, AudioRepresentationID)
		if err := os.MkdirAll(segDir, 0o755); err != nil {
			return nil, fmt.Errorf("create segment directory %q: %w", segDir, err)
		}
		lang := job.Audio.Language
		if lang == "" {
			lang = "und"
		}
		args = append(args, fmt.Sprintf("in=%s,stream=audio,lang=%s,init_segment=%s,segment_template=%s",
			job.Audio.Path,
			lang,
			filepath.Join(segDir, "init.mp4"),
			filepath.Join(segDir, "seg_$Number$.m4s")))
	}

	args = append(args,
		"--segment_duration", strconv.Itoa(job.SegmentSeconds),
		"--generate_static_mpd",
		"--mpd_output", filepath.Join(job.OutDir, ManifestName),
	)
	return args, nil
}
