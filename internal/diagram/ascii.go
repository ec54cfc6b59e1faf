package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/goframe/internal/frame"
)

// Sketch symbols
const (
	jointMark  = 'o'
	fixedMark  = '#'
	pinMark    = '^'
	rollerMark = '~'
)

// DrawASCIIFrame sketches the frame on a character grid of at most
// width x height cells, with +y pointing up. Members are drawn first so
// nodes and supports stay visible where they overlap.
func DrawASCIIFrame(s frame.Structure, width, height int) string {
	if len(s.Nodes) == 0 {
		return "  (empty structure)\n"
	}
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}

	b := boundsOf(s.Nodes)
	cols, rows := width, height
	if b.maxX == b.minX {
		cols = 1
	}
	if b.maxY == b.minY {
		rows = 1
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	cell := func(n frame.Node) (int, int) {
		c, r := 0, 0
		if cols > 1 {
			c = int(math.Round((n.X - b.minX) / (b.maxX - b.minX) * float64(cols-1)))
		}
		if rows > 1 {
			r = int(math.Round((b.maxY - n.Y) / (b.maxY - b.minY) * float64(rows-1)))
		}
		return c, r
	}

	index := s.NodeIndex()
	for _, m := range s.Members {
		i, okI := index[m.StartNodeID]
		j, okJ := index[m.EndNodeID]
		if !okI || !okJ {
			continue
		}
		c0, r0 := cell(s.Nodes[i])
		c1, r1 := cell(s.Nodes[j])
		drawLine(grid, c0, r0, c1, r1)
	}

	for _, n := range s.Nodes {
		c, r := cell(n)
		grid[r][c] = jointMark
	}
	for _, sp := range s.Supports {
		if i, ok := index[sp.NodeID]; ok {
			c, r := cell(s.Nodes[i])
			grid[r][c] = supportMark(sp.Type)
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n  %c joint  %c fixed  %c pin  %c roller\n", jointMark, fixedMark, pinMark, rollerMark))
	return sb.String()
}

func supportMark(t frame.SupportType) rune {
	switch t {
	case frame.Fixed:
		return fixedMark
	case frame.Pin:
		return pinMark
	case frame.Roller:
		return rollerMark
	}
	return jointMark
}

// drawLine rasterizes a segment between two cells (Bresenham)
func drawLine(grid [][]rune, c0, r0, c1, r1 int) {
	mark := lineMark(c1-c0, r1-r0)
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		grid[r0][c0] = mark
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// lineMark picks a character for a segment; rows grow downwards
func lineMark(dc, dr int) rune {
	switch {
	case dr == 0:
		return '-'
	case dc == 0:
		return '|'
	case (dc > 0) == (dr > 0):
		return '\\'
	}
	return '/'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// DrawReactionTable renders reactions as fixed-width rows
func DrawReactionTable(res *frame.AnalysisResults) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %-12s %-12s %12s %12s %12s\n", "Support", "Node", "Fx (kN)", "Fy (kN)", "Mz (kN-m)"))
	sb.WriteString("  " + strings.Repeat("─", 64) + "\n")
	for _, rx := range res.Reactions {
		sb.WriteString(fmt.Sprintf("  %-12s %-12s %12.4f %12.4f %12.4f\n", rx.ID, rx.NodeID, rx.Fx, rx.Fy, rx.Mz))
	}
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
