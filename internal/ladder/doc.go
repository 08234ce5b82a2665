// Package ladder owns the encoding-ladder domain logic: rung selection from
// the canonical height set, keyframe-interval derivation from the source
// frame rate, the per-family rate-control tables, and the multi-output
// scaling graph fed to ffmpeg.
//
// Everything here is a pure function over immutable tables. The encoder and
// packager stay coordinated because they both consume the same Select and
// GOP results for a source: every rendition shares one keyframe cadence and
// one rung set, which is what lets all tracks segment identically under one
// manifest.
package ladder
