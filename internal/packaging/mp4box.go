package packaging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"dashforge/internal/deps"
	"dashforge/internal/services"
)

// mp4boxPackager drives GPAC MP4Box. Representation ids are assigned on the
// inputs and the segment-name template derives a directory per
// representation from them, matching the shaka layout.
type mp4boxPackager struct {
	runner *services.Runner
	logger *slog.Logger
}

func (p *mp4boxPackager) Package(ctx context.Context, job Job) (string, error) {
	if err := validateJob(job); err != nil {
		return "", err
	}

	manifestPath := filepath.Join(job.OutDir, ManifestName)
	p.logger.Info("packaging with mp4box", "representations", job.RepresentationCount(), "manifest", manifestPath)
	if err := p.runner.Run(ctx, deps.MP4BoxBinary, mp4boxArgs(job)...); err != nil {
		return "", err
	}
	return manifestPath, nil
}

func mp4boxArgs(job Job) []string {
	segMillis := strconv.Itoa(job.SegmentSeconds * 1000)
	args := []string{
		"-dash", segMillis,
		"-rap", "-frag", segMillis,
		"-profile", "live",
		"-segment-name", "$RepresentationID$/",
		"-segment-ext", "m4s",
		"-init-segment-ext", "mp4",
		"-no-frags-default",
		"-out", filepath.Join(job.OutDir, ManifestName),
	}
	for _, track := range job.Videos {
		args = append(args, fmt.Sprintf("%s#video:id=%s", track.Path, track.RepresentationID()))
	}
	if job.Audio != nil {
		args = append(args, fmt.Sprintf("%s#audio:id=%s", job.Audio.Path, AudioRepresentationID))
	}
	return args
}
