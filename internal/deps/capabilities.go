package deps

import (
	"context"
	"os/exec"
	"strings"

	"dashforge/internal/services"
)

// AV1Encoder identifies which AV1 back-end the detected ffmpeg build offers.
type AV1Encoder string

const (
	AV1EncoderSVT  AV1Encoder = "svt"
	AV1EncoderAOM  AV1Encoder = "aom"
	AV1EncoderNone AV1Encoder = "none"
)

// Packager identifies which segmentation tool will package this run.
type Packager string

const (
	PackagerShaka  Packager = "shaka"
	PackagerMP4Box Packager = "mp4box"
)

// Capabilities is the once-per-run resolution of every runtime choice. It is
// computed before the first source is touched and passed down unchanged, so
// no component re-probes tool availability per file.
type Capabilities struct {
	Packager   Packager
	AV1Encoder AV1Encoder
}

// encoderLister lets tests substitute the `ffmpeg -encoders` invocation.
type encoderLister interface {
	CaptureOutput(ctx context.Context, binary string, args ...string) (string, error)
}

// DetectAV1Encoder queries the ffmpeg build for its AV1 encoders. SVT-AV1 is
// preferred over libaom when both are present; neither is a hard failure,
// the run just carries the H.264 family alone.
func DetectAV1Encoder(ctx context.Context, runner encoderLister, ffmpegBinary string) AV1Encoder {
	output, err := runner.CaptureOutput(ctx, ffmpegBinary, "-hide_banner", "-encoders")
	if err != nil {
		return AV1EncoderNone
	}
	switch {
	case strings.Contains(output, "libsvtav1"):
		return AV1EncoderSVT
	case strings.Contains(output, "libaom-av1"):
		return AV1EncoderAOM
	default:
		return AV1EncoderNone
	}
}

// Packager binary names as shipped by Shaka Packager and GPAC.
const (
	ShakaBinary  = "packager"
	MP4BoxBinary = "MP4Box"
)

// DetectPackager resolves which segmentation tool is present, preferring
// Shaka packager. Exactly one backend serves the whole run; having neither
// is a missing-dependency failure reported before any file is processed.
func DetectPackager() (Packager, error) {
	if _, err := exec.LookPath(ShakaBinary); err == nil {
		return PackagerShaka, nil
	}
	if _, err := exec.LookPath(MP4BoxBinary); err == nil {
		return PackagerMP4Box, nil
	}
	return "", services.Wrap(services.ErrMissingDependency, "packaging", "detect",
		"need Shaka Packager (packager) or GPAC (MP4Box) in PATH", nil)
}

// Binary returns the executable name for the packager backend.
func (p Packager) Binary() string {
	if p == PackagerMP4Box {
		return MP4BoxBinary
	}
	return ShakaBinary
}
