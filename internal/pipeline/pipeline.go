package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dashforge/internal/config"
	"dashforge/internal/deps"
	"dashforge/internal/encoding"
	"dashforge/internal/fileutil"
	"dashforge/internal/history"
	"dashforge/internal/ladder"
	"dashforge/internal/media/ffprobe"
	"dashforge/internal/packaging"
)

// Encoder is the ladder-encoding surface the pipeline drives.
type Encoder interface {
	EncodeH264(ctx context.Context, sourcePath, outDir string, heights []int, gop int) error
	EncodeAV1(ctx context.Context, sourcePath, outDir string, heights []int, gop int, backend deps.AV1Encoder) error
	ExtractAudio(ctx context.Context, sourcePath, outPath string, hasAudio bool) (bool, error)
}

// ProbeFunc inspects one source file. Matches ffprobe.InspectSource.
type ProbeFunc func(ctx context.Context, binary, path string, logger *slog.Logger) ffprobe.Source

// SourceResult is the outcome of one source file.
type SourceResult struct {
	Name     string
	Ladder   []int
	Tracks   int
	Manifest string
	Duration time.Duration
	Err      error
}

// Summary aggregates one run.
type Summary struct {
	RunID   string
	Results []SourceResult
}

// Failed counts sources that did not complete.
func (s Summary) Failed() int {
	count := 0
	for _, result := range s.Results {
		if result.Err != nil {
			count++
		}
	}
	return count
}

// Manager processes the batch: every source runs end-to-end (probe, encode,
// extract, package) before the next one starts. All runtime capabilities
// were resolved before construction and never re-probed per file.
type Manager struct {
	cfg      *config.Config
	caps     deps.Capabilities
	encoder  Encoder
	packager packaging.Packager
	store    *history.Store
	logger   *slog.Logger
	probe    ProbeFunc
	runID    string
}

// NewManager constructs a pipeline manager. The history store may be nil.
func NewManager(cfg *config.Config, caps deps.Capabilities, encoder Encoder, packager packaging.Packager, store *history.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:      cfg,
		caps:     caps,
		encoder:  encoder,
		packager: packager,
		store:    store,
		logger:   logger.With("component", "pipeline"),
		probe:    ffprobe.InspectSource,
		runID:    uuid.NewString(),
	}
}

// RunID identifies this batch in logs and history rows.
func (m *Manager) RunID() string {
	return m.runID
}

// SetProbeForTests overrides source inspection during tests.
func (m *Manager) SetProbeForTests(fn ProbeFunc) {
	m.probe = fn
}

// Run processes every source in the input directory sequentially. An empty
// input directory is not an error. Per-source failures are recorded and the
// batch moves on; the caller decides the process exit from Summary.Failed.
func (m *Manager) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: m.runID}

	sources, err := fileutil.CollectSources(m.cfg.Paths.InputDir)
	if err != nil {
		return summary, err
	}
	if len(sources) == 0 {
		m.logger.Info("no .mp4 files found", "dir", m.cfg.Paths.InputDir)
		return summary, nil
	}

	m.logger.Info("starting run",
		"run_id", m.runID,
		"sources", len(sources),
		"packager", string(m.caps.Packager),
		"av1", string(m.caps.AV1Encoder))
	if m.caps.AV1Encoder == deps.AV1EncoderNone {
		m.logger.Warn("no AV1 encoder in ffmpeg build, proceeding with H.264 only")
	}

	for _, source := range sources {
		result := m.processSource(ctx, source)
		summary.Results = append(summary.Results, result)
		m.record(ctx, result)
		if result.Err != nil {
			m.logger.Error("source failed", "source", result.Name, "error", result.Err)
			continue
		}
		m.logger.Info("source complete", "source", result.Name, "manifest", result.Manifest, "tracks", result.Tracks)
	}

	// Static assets only stream correctly when served with the right types.
	m.logger.Info("run complete",
		"failed", summary.Failed(),
		"manifest_mime", "application/dash+xml",
		"segment_mime", "video/iso.segment")
	return summary, nil
}

func (m *Manager) processSource(ctx context.Context, sourcePath string) SourceResult {
	started := time.Now()
	name := fileutil.Stem(sourcePath)
	result := SourceResult{Name: name}
	fail := func(err error) SourceResult {
		result.Duration = time.Since(started)
		result.Err = err
		return result
	}

	src := m.probe(ctx, m.cfg.FFprobeBinary(), sourcePath, m.logger)
	heights := ladder.Select(src.Height, m.cfg.Video.MaxHeight)
	gop := ladder.GOP(src.AvgFPS)
	result.Ladder = heights

	workDir := filepath.Join(m.cfg.Paths.WorkDir, name)
	h264Dir := filepath.Join(workDir, "h264")
	av1Dir := filepath.Join(workDir, "av1")
	audioDir := filepath.Join(workDir, "audio")
	dashDir := filepath.Join(m.cfg.Paths.OutputDir, name, "dash")
	for _, dir := range []string{h264Dir, av1Dir, audioDir, dashDir} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fail(err)
		}
	}

	m.logger.Info("processing source",
		"source", name,
		"height", src.Height,
		"gop", gop,
		"segment_seconds", m.cfg.Packaging.SegmentSeconds,
		"ladder", formatLadder(heights))

	if err := m.encoder.EncodeH264(ctx, sourcePath, h264Dir, heights, gop); err != nil {
		return fail(err)
	}
	if m.caps.AV1Encoder != deps.AV1EncoderNone {
		if err := m.encoder.EncodeAV1(ctx, sourcePath, av1Dir, heights, gop, m.caps.AV1Encoder); err != nil {
			return fail(err)
		}
	}

	audioPath := filepath.Join(audioDir, "audio.m4a")
	audioWritten, err := m.encoder.ExtractAudio(ctx, sourcePath, audioPath, src.HasAudio)
	if err != nil {
		return fail(err)
	}

	job := packaging.Job{
		OutDir:         dashDir,
		SegmentSeconds: m.cfg.Packaging.SegmentSeconds,
	}
	for _, height := range heights {
		job.Videos = append(job.Videos, packaging.Track{
			Family: packaging.FamilyH264,
			Height: height,
			Path:   filepath.Join(h264Dir, encoding.H264OutputName(height)),
		})
	}
	for _, height := range heights {
		path := filepath.Join(av1Dir, encoding.AV1OutputName(height))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		job.Videos = append(job.Videos, packaging.Track{
			Family: packaging.FamilyAV1,
			Height: height,
			Path:   path,
		})
	}
	if audioWritten {
		job.Audio = &packaging.AudioTrack{Path: audioPath, Language: m.cfg.Audio.Language}
	}

	manifest, err := m.packager.Package(ctx, job)
	if err != nil {
		return fail(err)
	}

	result.Tracks = job.RepresentationCount()
	result.Manifest = manifest
	result.Duration = time.Since(started)
	return result
}

func (m *Manager) record(ctx context.Context, result SourceResult) {
	if m.store == nil {
		return
	}
	record := history.Record{
		RunID:        m.runID,
		Source:       result.Name,
		Ladder:       formatLadder(result.Ladder),
		TrackCount:   result.Tracks,
		ManifestPath: result.Manifest,
		Status:       history.StatusCompleted,
	}
	if result.Err != nil {
		record.Status = history.StatusFailed
		record.ErrorDetail = result.Err.Error()
	}
	if err := m.store.Append(ctx, record); err != nil {
		m.logger.Warn("failed to record run result", "source", result.Name, "error", err)
	}
}

func formatLadder(heights []int) string {
	parts := make([]string, 0, len(heights))
	for _, h := range heights {
		parts = append(parts, fmt.Sprintf("%d", h))
	}
	return strings.Join(parts, ",")
}
