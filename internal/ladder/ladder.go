package ladder

import "math"

// canonicalHeights is the fixed rung set, highest first.
var canonicalHeights = []int{2160, 1440, 1080, 720, 480}

// CanonicalHeights returns a copy of the fixed rung set in descending order.
func CanonicalHeights() []int {
	out := make([]int, len(canonicalHeights))
	copy(out, canonicalHeights)
	return out
}

// Select filters the canonical rung set to heights no taller than the source
// and, when maxHeight is positive, no taller than the cap. Descending order
// is preserved. When nothing qualifies the source height itself becomes the
// only rung, so a ladder is never empty.
func Select(sourceHeight, maxHeight int) []int {
	heights := make([]int, 0, len(canonicalHeights))
	for _, h := range canonicalHeights {
		if h > sourceHeight {
			continue
		}
		if maxHeight > 0 && h > maxHeight {
			continue
		}
		heights = append(heights, h)
	}
	if len(heights) == 0 {
		heights = append(heights, sourceHeight)
	}
	return heights
}

// GOP derives the keyframe interval from the source frame rate: roughly two
// seconds of frames, never below one. Every rung of both codec families
// shares this value so segment boundaries line up across renditions.
func GOP(avgFPS float64) int {
	gop := int(math.Round(avgFPS * 2))
	if gop < 1 {
		return 1
	}
	return gop
}
