package ladder

import (
	"reflect"
	"testing"
)

func TestSelectFiltersBySourceHeight(t *testing.T) {
	got := Select(1080, 0)
	want := []int{1080, 720, 480}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectHonorsCap(t *testing.T) {
	got := Select(2160, 1440)
	want := []int{1440, 1080, 720, 480}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSelectFallsBackToSourceHeight(t *testing.T) {
	got := Select(360, 0)
	if !reflect.DeepEqual(got, []int{360}) {
		t.Fatalf("expected fallback [360], got %v", got)
	}
	got = Select(1080, 240)
	if !reflect.DeepEqual(got, []int{1080}) {
		t.Fatalf("expected cap fallback [1080], got %v", got)
	}
}

func TestSelectIsStrictlyDescendingAndBounded(t *testing.T) {
	for _, tc := range []struct{ source, cap int }{
		{2160, 0}, {2160, 1440}, {1440, 0}, {1080, 720}, {720, 0}, {480, 0}, {481, 0}, {4320, 0},
	} {
		heights := Select(tc.source, tc.cap)
		if len(heights) == 0 {
			t.Fatalf("Select(%d,%d) returned empty ladder", tc.source, tc.cap)
		}
		for i, h := range heights {
			if h > tc.source {
				t.Fatalf("Select(%d,%d): rung %d above source", tc.source, tc.cap, h)
			}
			if tc.cap > 0 && h > tc.cap && len(heights) > 1 {
				t.Fatalf("Select(%d,%d): rung %d above cap", tc.source, tc.cap, h)
			}
			if i > 0 && heights[i-1] <= h {
				t.Fatalf("Select(%d,%d): not strictly descending: %v", tc.source, tc.cap, heights)
			}
		}
	}
}

func TestGOP(t *testing.T) {
	cases := []struct {
		fps  float64
		want int
	}{
		{23.976, 48},
		{24, 48},
		{25, 50},
		{29.97, 60},
		{60, 120},
		{0, 1},
		{0.2, 1},
	}
	for _, tc := range cases {
		if got := GOP(tc.fps); got != tc.want {
			t.Fatalf("GOP(%v) = %d, want %d", tc.fps, got, tc.want)
		}
	}
}

func TestCanonicalHeightsIsACopy(t *testing.T) {
	first := CanonicalHeights()
	first[0] = 1
	second := CanonicalHeights()
	if second[0] != 2160 {
		t.Fatalf("canonical heights mutated: %v", second)
	}
}
