package ladder

// H264Params holds the rate-control settings for one H.264 rung. The encode
// runs capped-CRF: CRF targets perceptual quality while the VBV triplet
// bounds the worst-case bitrate on complex content.
type H264Params struct {
	Bitrate string
	MaxRate string
	BufSize string
	CRF     int
}

var h264Table = map[int]H264Params{
	2160: {Bitrate: "12000k", MaxRate: "12840k", BufSize: "24000k", CRF: 19},
	1440: {Bitrate: "7000k", MaxRate: "7490k", BufSize: "14000k", CRF: 20},
	1080: {Bitrate: "5000k", MaxRate: "5350k", BufSize: "10000k", CRF: 20},
	720:  {Bitrate: "2800k", MaxRate: "2996k", BufSize: "5600k", CRF: 21},
	480:  {Bitrate: "1400k", MaxRate: "1498k", BufSize: "2800k", CRF: 22},
}

// h264Fallback covers non-canonical heights, e.g. a 360p source encoded at
// its own height after the ladder fallback.
var h264Fallback = H264Params{Bitrate: "2500k", MaxRate: "2680k", BufSize: "5000k", CRF: 21}

// H264ParamsFor returns the rate-control settings for the given height. The
// lookup is total: unknown heights get the documented fallback. The result
// is a value copy, the table itself is never exposed.
func H264ParamsFor(height int) H264Params {
	if params, ok := h264Table[height]; ok {
		return params
	}
	return h264Fallback
}

var av1CRFTable = map[int]int{
	2160: 30,
	1440: 31,
	1080: 32,
	720:  33,
	480:  34,
}

const av1CRFFallback = 32

// AV1CRFFor returns the constant-quality CRF for the given height. AV1 runs
// uncapped; the encoder back-end (SVT vs aom) changes speed and tiling flags
// only, never the CRF.
func AV1CRFFor(height int) int {
	if crf, ok := av1CRFTable[height]; ok {
		return crf
	}
	return av1CRFFallback
}
