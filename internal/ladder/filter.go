package ladder

import (
	"fmt"
	"strings"
)

// BuildScaleGraph assembles an ffmpeg filter_complex that splits the first
// decoded video stream into one branch per target height and scales each
// branch independently. Widths stay even and aspect-preserving (-2) with
// bicubic resampling. Output labels are labelPrefix+height in input order;
// the two codec families use disjoint prefixes so their graphs never share
// labels.
func BuildScaleGraph(heights []int, labelPrefix string) (string, []string) {
	n := len(heights)
	if n == 0 {
		return "", nil
	}

	var graph strings.Builder
	graph.WriteString(fmt.Sprintf("[0:v]split=%d", n))
	for i := 0; i < n; i++ {
		graph.WriteString(fmt.Sprintf("[%s%d]", labelPrefix, i))
	}
	graph.WriteString(";")

	labels := make([]string, 0, n)
	for i, h := range heights {
		label := fmt.Sprintf("%s%d", labelPrefix, h)
		graph.WriteString(fmt.Sprintf("[%s%d]scale=-2:%d:flags=bicubic[%s];", labelPrefix, i, h, label))
		labels = append(labels, label)
	}
	return graph.String(), labels
}
