// Package services holds the shared plumbing for talking to external tools.
//
// Runner is the single invocation surface for ffmpeg, ffprobe, and the
// packagers: blocking execution, output streamed to the debug log, and the
// tail of the output replayed verbatim when a tool exits non-zero. The
// sentinel errors classify failures (missing binary, tool exit, bad
// configuration) so callers can decide what is fatal for the run versus
// fatal for one source file.
package services
