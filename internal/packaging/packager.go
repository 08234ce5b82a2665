package packaging

import (
	"context"
	"errors"
	"log/slog"

	"dashforge/internal/deps"
	"dashforge/internal/services"
)

// ManifestName is the fixed manifest file name inside a job's output
// directory, regardless of backend.
const ManifestName = "manifest.mpd"

// Packager segments all tracks of one job and writes one manifest. The two
// implementations must be interchangeable: same identifiers, same manifest
// location, same segment duration semantics.
type Packager interface {
	Package(ctx context.Context, job Job) (string, error)
}

// New returns the Packager for the backend detected at run start. The
// choice is made once per run; every source file in the run goes through
// the same backend.
func New(backend deps.Packager, runner *services.Runner, logger *slog.Logger) (Packager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "packaging")
	switch backend {
	case deps.PackagerShaka:
		return &shakaPackager{runner: runner, logger: logger}, nil
	case deps.PackagerMP4Box:
		return &mp4boxPackager{runner: runner, logger: logger}, nil
	default:
		return nil, errors.New("packaging: unknown backend " + string(backend))
	}
}

func validateJob(job Job) error {
	if job.OutDir == "" {
		return errors.New("packaging: empty output directory")
	}
	if job.SegmentSeconds < 1 {
		return errors.New("packaging: segment duration must be at least 1s")
	}
	if len(job.Videos) == 0 {
		return errors.New("packaging: no video tracks")
	}
	return nil
}
