// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns the parsed Result; InspectSource
// reduces that to the three properties the pipeline cares about (height,
// average frame rate, audio presence) with defensive defaults when the
// probe fails. Frame rates arrive as "N/D" fractions and are parsed by
// ParseFrameRate.
package ffprobe
