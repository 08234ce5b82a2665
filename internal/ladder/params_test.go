package ladder

import "testing"

func TestH264ParamsForKnownHeights(t *testing.T) {
	p := H264ParamsFor(1080)
	if p.Bitrate != "5000k" || p.MaxRate != "5350k" || p.BufSize != "10000k" || p.CRF != 20 {
		t.Fatalf("unexpected 1080p params: %+v", p)
	}
	p = H264ParamsFor(2160)
	if p.Bitrate != "12000k" || p.CRF != 19 {
		t.Fatalf("unexpected 2160p params: %+v", p)
	}
}

func TestH264ParamsForIsTotal(t *testing.T) {
	for _, h := range []int{360, 576, 0, -1, 99999} {
		p := H264ParamsFor(h)
		if p.Bitrate != "2500k" || p.MaxRate != "2680k" || p.BufSize != "5000k" || p.CRF != 21 {
			t.Fatalf("expected fallback params for height %d, got %+v", h, p)
		}
	}
}

func TestAV1CRFFor(t *testing.T) {
	cases := map[int]int{2160: 30, 1440: 31, 1080: 32, 720: 33, 480: 34, 360: 32, 0: 32}
	for height, want := range cases {
		if got := AV1CRFFor(height); got != want {
			t.Fatalf("AV1CRFFor(%d) = %d, want %d", height, got, want)
		}
	}
}
