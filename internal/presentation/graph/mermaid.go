package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/slipbox/internal/runtime"
)

// GenerateMermaid produces a Mermaid gantt chart of a draw timeline.
// Each step lasts until the next one starts; the last is a milestone.
func GenerateMermaid(title string, steps []runtime.PlannedStep) string {
	var sb strings.Builder
	sb.WriteString("gantt\n")
	fmt.Fprintf(&sb, "    title %s\n", sanitizeTitle(title))
	sb.WriteString("    dateFormat x\n")
	sb.WriteString("    axisFormat %S.%L\n")
	sb.WriteString("    section draw\n")

	for i, st := range steps {
		start := st.Offset.Milliseconds()
		label := fmt.Sprintf("%s (%s)", st.Name, st.Phase)

		if i == len(steps)-1 {
			fmt.Fprintf(&sb, "    %s : milestone, %d, %d\n", label, start, start)
			continue
		}
		end := steps[i+1].Offset.Milliseconds()
		if end == start {
			// Same-instant steps still need a visible bar.
			end = start + 1
		}
		fmt.Fprintf(&sb, "    %s : %d, %d\n", label, start, end)
	}
	return sb.String()
}

// sanitizeTitle keeps the title on one line.
func sanitizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
