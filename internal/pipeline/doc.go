// Package pipeline sequences the per-source work: probe, ladder selection,
// the two family encodes, audio extraction, and packaging. Strictly one
// source at a time; each source owns its own work and output subtree, so a
// future bounded-parallel driver would need no changes below this layer.
package pipeline
