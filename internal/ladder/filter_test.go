package ladder

import (
	"strings"
	"testing"
)

func TestBuildScaleGraph(t *testing.T) {
	graph, labels := BuildScaleGraph([]int{1080, 720, 480}, "s")
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	for i, want := range []string{"s1080", "s720", "s480"} {
		if labels[i] != want {
			t.Fatalf("label %d: expected %q, got %q", i, want, labels[i])
		}
	}
	if !strings.HasPrefix(graph, "[0:v]split=3[s0][s1][s2];") {
		t.Fatalf("unexpected split stanza: %q", graph)
	}
	for _, fragment := range []string{
		"[s0]scale=-2:1080:flags=bicubic[s1080];",
		"[s1]scale=-2:720:flags=bicubic[s720];",
		"[s2]scale=-2:480:flags=bicubic[s480];",
	} {
		if !strings.Contains(graph, fragment) {
			t.Fatalf("graph missing %q: %q", fragment, graph)
		}
	}
}

func TestBuildScaleGraphPrefixesAreDisjoint(t *testing.T) {
	heights := []int{1080, 480}
	_, h264Labels := BuildScaleGraph(heights, "s")
	_, av1Labels := BuildScaleGraph(heights, "t")
	seen := map[string]bool{}
	for _, l := range h264Labels {
		seen[l] = true
	}
	for _, l := range av1Labels {
		if seen[l] {
			t.Fatalf("label %q collides across prefixes", l)
		}
	}
}

func TestBuildScaleGraphSingleRung(t *testing.T) {
	graph, labels := BuildScaleGraph([]int{360}, "s")
	if len(labels) != 1 || labels[0] != "s360" {
		t.Fatalf("unexpected labels %v", labels)
	}
	if !strings.Contains(graph, "split=1[s0];") {
		t.Fatalf("unexpected graph %q", graph)
	}
}

func TestBuildScaleGraphEmpty(t *testing.T) {
	graph, labels := BuildScaleGraph(nil, "s")
	if graph != "" || labels != nil {
		t.Fatalf("expected empty graph, got %q %v", graph, labels)
	}
}
