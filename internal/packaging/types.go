package packaging

import "fmt"

// Family names a video codec family.
type Family string

const (
	FamilyH264 Family = "h264"
	FamilyAV1  Family = "av1"
)

// Track is one encoded single-track video file awaiting packaging. Never
// mutated after creation.
type Track struct {
	Family Family
	Height int
	Path   string
}

// RepresentationID returns the stable manifest identifier for the track.
// Families are disjoint and ladder heights strictly descending, so the ids
// are unique by construction.
func (t Track) RepresentationID() string {
	return fmt.Sprintf("%s_%d", t.Family, t.Height)
}

// AudioRepresentationID is the identifier of the single optional audio track.
const AudioRepresentationID = "audio"

// AudioTrack is the optional stereo AAC track for one source.
type AudioTrack struct {
	Path     string
	Language string
}

// Job collects everything needed to package one source: all encoded tracks
// plus the output location. Exactly one manifest comes out of one job.
type Job struct {
	OutDir         string
	SegmentSeconds int
	Videos         []Track
	Audio          *AudioTrack
}

// RepresentationCount returns the number of representations the manifest
// will describe.
func (j Job) RepresentationCount() int {
	count := len(j.Videos)
	if j.Audio != nil {
		count++
	}
	return count
}
