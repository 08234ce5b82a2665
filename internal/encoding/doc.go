// Package encoding assembles and runs the ffmpeg invocations that produce
// the per-rung video tracks and the optional audio track.
//
// Each codec family is one multi-output invocation: the source decodes
// once, the scale graph fans the frames out, and per-rung rate-control
// flags attach to the mapped output labels in order. The shared GOP keeps
// every rung keyframe-aligned so the packager can cut identical segment
// boundaries across renditions.
package encoding
