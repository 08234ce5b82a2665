// Package packaging turns a job's encoded single-track files into segmented
// DASH output plus one manifest, through whichever of the two supported
// tools the run detected: Shaka Packager or GPAC MP4Box.
//
// The backend split stays inside this package. Both variants produce the
// same representation identifiers ({family}_{height}, "audio"), the same
// directory-per-representation layout, and the manifest at the same
// location, so callers never branch on the tool.
package packaging
