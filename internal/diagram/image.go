package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/goframe/internal/frame"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	memberColor  = color.Black
	skippedColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	loadColor    = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	supportColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// FrameDiagramData holds what ExportFrameDiagram draws
type FrameDiagramData struct {
	Title     string
	Structure frame.Structure

	// Optional; reactions are labelled and skipped members dashed when set
	Results *frame.AnalysisResults
}

// ExportFrameDiagram exports a frame diagram to an image file. The format
// follows the extension (.png, .svg or .pdf); any other name gets ".png"
// appended. It returns the path written.
func ExportFrameDiagram(data FrameDiagramData, filename string) (string, error) {
	p, err := FramePlot(data)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// FramePlot builds the plot of a frame: members as lines, nodes as points,
// a glyph per support type, and labels for loads and reactions.
func FramePlot(data FrameDiagramData) (*plot.Plot, error) {
	s := data.Structure
	if len(s.Nodes) == 0 {
		return nil, errors.New("nothing to draw: structure has no nodes")
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Frame"
	}
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	index := s.NodeIndex()
	b := boundsOf(s.Nodes)
	arrow := 0.15 * b.span()

	skipped := map[string]bool{}
	if data.Results != nil {
		for _, sk := range data.Results.SkippedMembers {
			skipped[sk.MemberID] = true
		}
	}

	// Members
	for _, m := range s.Members {
		i, okI := index[m.StartNodeID]
		j, okJ := index[m.EndNodeID]
		if !okI || !okJ {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{
			{X: s.Nodes[i].X, Y: s.Nodes[i].Y},
			{X: s.Nodes[j].X, Y: s.Nodes[j].Y},
		})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = memberColor
		if skipped[m.ID] {
			line.LineStyle.Color = skippedColor
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		p.Add(line)
	}

	// Nodes
	nodePts := make(plotter.XYs, len(s.Nodes))
	nodeLabels := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		nodePts[i] = plotter.XY{X: n.X, Y: n.Y}
		nodeLabels[i] = n.ID
	}
	nodes, err := plotter.NewScatter(nodePts)
	if err != nil {
		return nil, err
	}
	nodes.GlyphStyle.Color = memberColor
	nodes.GlyphStyle.Radius = vg.Points(3)
	nodes.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(nodes)

	if err := addLabels(p, nodePts, nodeLabels); err != nil {
		return nil, err
	}

	// Supports, one scatter per type so each gets a legend entry
	for _, typ := range frame.SupportTypes {
		var pts plotter.XYs
		for _, sp := range s.Supports {
			if i, ok := index[sp.NodeID]; ok && sp.Type == typ {
				pts = append(pts, plotter.XY{X: s.Nodes[i].X, Y: s.Nodes[i].Y})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = supportColor
		sc.GlyphStyle.Radius = vg.Points(7)
		sc.GlyphStyle.Shape = supportGlyph(typ)
		p.Add(sc)
		p.Legend.Add(typ.String(), sc)
	}

	// Point loads as arrows ending at the node
	var loadPts plotter.XYs
	var loadLabels []string
	for _, pl := range s.PointLoads {
		i, ok := index[pl.NodeID]
		if !ok {
			continue
		}
		mag := math.Hypot(pl.Fx, pl.Fy)
		if mag == 0 {
			continue
		}
		n := s.Nodes[i]
		tail := plotter.XY{X: n.X - arrow*pl.Fx/mag, Y: n.Y - arrow*pl.Fy/mag}
		line, err := plotter.NewLine(plotter.XYs{tail, {X: n.X, Y: n.Y}})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = loadColor
		p.Add(line)

		loadPts = append(loadPts, tail)
		loadLabels = append(loadLabels, fmt.Sprintf("%s (%.2f, %.2f) kN", pl.ID, pl.Fx, pl.Fy))
	}
	for _, ml := range s.MomentLoads {
		i, ok := index[ml.NodeID]
		if !ok {
			continue
		}
		n := s.Nodes[i]
		loadPts = append(loadPts, plotter.XY{X: n.X, Y: n.Y - arrow/2})
		loadLabels = append(loadLabels, fmt.Sprintf("%s %.2f kN-m", ml.ID, ml.Mz))
	}
	if err := addLabels(p, loadPts, loadLabels); err != nil {
		return nil, err
	}

	// Reactions
	if data.Results != nil {
		var pts plotter.XYs
		var labels []string
		for _, rx := range data.Results.Reactions {
			i, ok := index[rx.NodeID]
			if !ok {
				continue
			}
			n := s.Nodes[i]
			pts = append(pts, plotter.XY{X: n.X, Y: n.Y - arrow})
			labels = append(labels, fmt.Sprintf("R %s: %.2f, %.2f, %.2f", rx.ID, rx.Fx, rx.Fy, rx.Mz))
		}
		if err := addLabels(p, pts, labels); err != nil {
			return nil, err
		}
	}

	pad := 0.25 * b.span()
	p.X.Min, p.X.Max = b.minX-pad, b.maxX+pad
	p.Y.Min, p.Y.Max = b.minY-pad, b.maxY+pad

	return p, nil
}

func addLabels(p *plot.Plot, pts plotter.XYs, text []string) error {
	if len(pts) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: text})
	if err != nil {
		return err
	}
	l.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	p.Add(l)
	return nil
}

func supportGlyph(t frame.SupportType) draw.GlyphDrawer {
	switch t {
	case frame.Fixed:
		return draw.BoxGlyph{}
	case frame.Pin:
		return draw.PyramidGlyph{}
	}
	return draw.RingGlyph{}
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(nodes []frame.Node) bounds {
	b := bounds{minX: nodes[0].X, maxX: nodes[0].X, minY: nodes[0].Y, maxY: nodes[0].Y}
	for _, n := range nodes[1:] {
		b.minX = math.Min(b.minX, n.X)
		b.maxX = math.Max(b.maxX, n.X)
		b.minY = math.Min(b.minY, n.Y)
		b.maxY = math.Max(b.maxY, n.Y)
	}
	return b
}

// span is the larger extent of the box, or 1 for a single point
func (b bounds) span() float64 {
	s := math.Max(b.maxX-b.minX, b.maxY-b.minY)
	if s == 0 {
		return 1
	}
	return s
}
